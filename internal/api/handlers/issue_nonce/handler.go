package issue_nonce

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-TableBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TableBooking/internal/domain"
)

// NonceResponse HTTP response model
type NonceResponse struct {
	Nonce     string `json:"nonce"`
	Header    string `json:"header"`
	ExpiresAt string `json:"expiresAt"`
}

type Handler struct {
	issuer NonceIssuer
	header string
	logger Logger
}

// NewHandler header - имя заголовка, в котором nonce ожидается при отправке формы
func NewHandler(issuer NonceIssuer, header string, logger Logger) *Handler {
	return &Handler{
		issuer: issuer,
		header: header,
		logger: logger,
	}
}

// Handle GET /api/v1/nonce
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token, expiresAt, err := h.issuer.Issue(domain.ActionCreateReservation)
	if err != nil {
		h.logger.Error("GET /nonce - Failed to issue nonce: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	handlers.RespondJSON(w, http.StatusOK, &NonceResponse{
		Nonce:     token,
		Header:    h.header,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	})
}
