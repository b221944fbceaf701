package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/m04kA/SMC-TableBooking/internal/api/handlers"
)

// RateLimit ограничивает число запросов с одного IP за минуту
func RateLimit(requestsPerMinute int) func(http.Handler) http.Handler {
	return httprate.Limit(
		requestsPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			handlers.RespondTooManyRequests(w)
		}),
	)
}
