package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableBooking/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-TableBooking/internal/usecase/get_availability"
)

const (
	msgInvalidQuery = "некорректный запрос: ожидаются date (YYYY-MM-DD) и slot (lunch, dinner, aperitif)"
	msgInvalidForm  = "некорректные данные формы"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: date (required, YYYY-MM-DD), slot (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &getAvailability.Request{
		Date: r.URL.Query().Get("date"),
		Slot: r.URL.Query().Get("slot"),
	}

	result, ok := h.execute(w, r, "GET /availability", req)
	if !ok {
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// HandleForm POST /ajax/availability
// Form fields: date, slot. Ответ - массив [{slot, time}]
func (h *Handler) HandleForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("POST /ajax/availability - Invalid form: %v", err)
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}

	req := &getAvailability.Request{
		Date: r.PostForm.Get("date"),
		Slot: r.PostForm.Get("slot"),
	}

	result, ok := h.execute(w, r, "POST /ajax/availability", req)
	if !ok {
		return
	}

	handlers.RespondJSON(w, http.StatusOK, toOptions(result))
}

func (h *Handler) execute(w http.ResponseWriter, r *http.Request, route string, req *getAvailability.Request) (*getAvailability.Response, bool) {
	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidQuery):
			h.logger.Warn("%s - Invalid query: date=%q slot=%q: %v", route, req.Date, req.Slot, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("%s - Failed to get availability: date=%q slot=%q, error=%v", route, req.Date, req.Slot, err)
			handlers.RespondInternalError(w)
		}
		return nil, false
	}

	h.logger.Info("%s - Availability retrieved: date=%s slot=%s options=%d",
		route, result.Date, result.Slot, len(result.Options))
	return result, true
}
