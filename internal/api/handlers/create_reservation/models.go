package create_reservation

import (
	"time"

	createReservation "github.com/m04kA/SMC-TableBooking/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	Date   string  `json:"date"` // "2025-10-14"
	Slot   string  `json:"slot"` // "lunch"
	Time   string  `json:"time"` // "12:30"
	Guests int     `json:"guests"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Phone  *string `json:"phone,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	Reference string `json:"reference"`
	Date      string `json:"date"`
	Slot      string `json:"slot"`
	Time      string `json:"time"`
	Guests    int    `json:"guests"`
	Status    string `json:"status"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest() *createReservation.Request {
	return &createReservation.Request{
		Date:   r.Date,
		Slot:   r.Slot,
		Time:   r.Time,
		Guests: r.Guests,
		Name:   r.Name,
		Email:  r.Email,
		Phone:  r.Phone,
		Notes:  r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		Reference: resp.Reference.String(),
		Date:      resp.Date.String(),
		Slot:      resp.Slot.String(),
		Time:      resp.Time.String(),
		Guests:    resp.Guests,
		Status:    string(resp.Status),
		Name:      resp.Name,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}
