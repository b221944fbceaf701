package models

import (
	"time"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
)

// ListReservationsRequest запрос на получение бронирований на дату
type ListReservationsRequest struct {
	Date            string  `json:"date"`
	Slot            *string `json:"slot,omitempty"`
	IncludeInactive bool    `json:"includeInactive,omitempty"`
}

// ReservationResponse бронирование
type ReservationResponse struct {
	Reference   string     `json:"reference"`
	Date        string     `json:"date"`
	Slot        string     `json:"slot"`
	Time        string     `json:"time"`
	Guests      int        `json:"guests"`
	Status      string     `json:"status"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       *string    `json:"phone,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ReservationListResponse список бронирований на дату
type ReservationListResponse struct {
	Date         string                `json:"date"`
	Reservations []ReservationResponse `json:"reservations"`
	TotalGuests  int                   `json:"totalGuests"` // Только активные бронирования
}

// FromDomainReservation конвертирует доменное бронирование в ответ
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		Reference:   r.Reference.String(),
		Date:        r.Date.String(),
		Slot:        r.Slot.String(),
		Time:        r.Time.String(),
		Guests:      r.Guests,
		Status:      string(r.Status),
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		Notes:       r.Notes,
		CancelledAt: r.CancelledAt,
		CreatedAt:   r.CreatedAt,
	}
}

// FromDomainReservationList конвертирует список бронирований
func FromDomainReservationList(date string, list []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Date:         date,
		Reservations: make([]ReservationResponse, 0, len(list)),
	}
	for _, r := range list {
		resp.Reservations = append(resp.Reservations, *FromDomainReservation(r))
		if r.IsActive() {
			resp.TotalGuests += r.Guests
		}
	}
	return resp
}
