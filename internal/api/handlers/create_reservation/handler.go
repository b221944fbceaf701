package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableBooking/internal/api/handlers"
	createReservation "github.com/m04kA/SMC-TableBooking/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные бронирования"
	msgTimeNotAvailable   = "выбранное время недоступно"
	msgNotEnoughSeats     = "недостаточно свободных мест"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
// Требует заголовок с nonce (проверяется middleware)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput+": "+err.Error())

		case errors.Is(err, createReservation.ErrTimeNotAvailable):
			h.logger.Warn("POST /reservations - Time not available: date=%s slot=%s time=%s", req.Date, req.Slot, req.Time)
			handlers.RespondConflict(w, msgTimeNotAvailable)

		case errors.Is(err, createReservation.ErrNotEnoughSeats):
			h.logger.Warn("POST /reservations - Not enough seats: date=%s slot=%s guests=%d", req.Date, req.Slot, req.Guests)
			handlers.RespondConflict(w, msgNotEnoughSeats)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: date=%s slot=%s, error=%v", req.Date, req.Slot, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reference=%s", result.Reference)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
