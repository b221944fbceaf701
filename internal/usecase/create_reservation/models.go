package create_reservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Date   string  `validate:"required"`
	Slot   string  `validate:"required"`
	Time   string  `validate:"required"`
	Guests int     `validate:"min=1"`
	Name   string  `validate:"required,max=120"`
	Email  string  `validate:"required,email,max=254"`
	Phone  *string `validate:"omitempty,max=32"`
	Notes  *string `validate:"omitempty,max=500"`
}

// Response модель ответа с созданным бронированием
type Response struct {
	Reference uuid.UUID
	Date      types.DateString
	Slot      domain.Slot
	Time      types.TimeString
	Guests    int
	Status    domain.ReservationStatus
	Name      string
	CreatedAt time.Time
}
