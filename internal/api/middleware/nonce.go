package middleware

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TableBooking/pkg/nonce"
)

// NonceHeader заголовок с токеном, выданным GET /api/v1/nonce
const NonceHeader = "X-Booking-Nonce"

const (
	msgMissingNonce = "отсутствует токен отправки формы"
	msgInvalidNonce = "недействительный токен отправки формы"
	msgExpiredNonce = "срок действия токена истёк, обновите страницу"
)

type NonceVerifier interface {
	Verify(token, action string) error
}

type Logger interface {
	Warn(format string, v ...interface{})
}

// RequireNonce проверяет подписанный токен для действия action
func RequireNonce(verifier NonceVerifier, action string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(NonceHeader)
			if token == "" {
				logger.Warn("%s %s - Missing nonce", r.Method, r.URL.Path)
				handlers.RespondForbidden(w, msgMissingNonce)
				return
			}

			if err := verifier.Verify(token, action); err != nil {
				logger.Warn("%s %s - Nonce rejected: %v", r.Method, r.URL.Path, err)
				if errors.Is(err, nonce.ErrExpiredNonce) {
					handlers.RespondForbidden(w, msgExpiredNonce)
					return
				}
				handlers.RespondForbidden(w, msgInvalidNonce)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
