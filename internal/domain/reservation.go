package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation represents a table reservation
type Reservation struct {
	ID        int64
	Reference uuid.UUID // Публичный идентификатор для гостя
	Date      types.DateString
	Slot      Slot
	Time      types.TimeString
	Guests    int
	Status    ReservationStatus

	Name  string
	Email string
	Phone *string
	Notes *string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the reservation occupies seats
func (r *Reservation) IsActive() bool {
	return r.Status == StatusConfirmed
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusConfirmed
}

// ReservationsFilter фильтр для выборки бронирований на дату
type ReservationsFilter struct {
	Date            types.DateString // Обязательный параметр
	Slot            *Slot            // Фильтр по слоту (опционально, если nil - все слоты)
	IncludeInactive bool             // Включать ли отменённые бронирования
}

// CapacityOverride ручное переопределение вместимости слота на дату
type CapacityOverride struct {
	Date    types.DateString
	Slot    Slot
	Ceiling int
}
