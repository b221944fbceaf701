package list_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-TableBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TableBooking/internal/service/reservations"
	"github.com/m04kA/SMC-TableBooking/internal/service/reservations/models"
)

const (
	msgInvalidQuery = "некорректные параметры запроса"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/reservations
// Query params: date (required), slot (optional), includeInactive (optional, bool)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.ListReservationsRequest{Date: query.Get("date")}

	if slot := query.Get("slot"); slot != "" {
		req.Slot = &slot
	}

	if raw := query.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /admin/reservations - Invalid includeInactive: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		req.IncludeInactive = includeInactive
	}

	result, err := h.service.ListForDate(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /admin/reservations - Invalid query: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /admin/reservations - Failed to list reservations: date=%q, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/reservations - Retrieved %d reservations for %s", len(result.Reservations), result.Date)
	handlers.RespondJSON(w, http.StatusOK, result)
}
