package update_capacity_override

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TableBooking/internal/service/settings"
	"github.com/m04kA/SMC-TableBooking/internal/service/settings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные переопределения"
	msgNotFound           = "переопределение вместимости не найдено"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/capacity-overrides
// "ceiling": null снимает переопределение
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CapacityOverrideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/capacity-overrides - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetCapacityOverride(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PUT /admin/capacity-overrides - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput+": "+err.Error())

		case errors.Is(err, settings.ErrOverrideNotFound):
			h.logger.Warn("PUT /admin/capacity-overrides - Override not found: date=%s slot=%s", req.Date, req.Slot)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PUT /admin/capacity-overrides - Failed to set override: date=%s slot=%s, error=%v", req.Date, req.Slot, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/capacity-overrides - Override saved: date=%s slot=%s", result.Date, result.Slot)
	handlers.RespondJSON(w, http.StatusOK, result)
}
