package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/SMC-TableBooking/internal/api/handlers"
)

// AdminKeyHeader заголовок со статическим ключом администратора
const AdminKeyHeader = "X-Admin-Key"

const msgUnauthorized = "требуется ключ администратора"

// AdminKey пропускает запрос только с верным X-Admin-Key
func AdminKey(key string) func(http.Handler) http.Handler {
	expected := []byte(key)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := []byte(r.Header.Get(AdminKeyHeader))
			if len(expected) == 0 || subtle.ConstantTimeCompare(provided, expected) != 1 {
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
