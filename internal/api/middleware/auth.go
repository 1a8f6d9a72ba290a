package middleware

import (
	"net/http"
	"strings"

	"github.com/m04kA/SMC-AppointmentScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentScheduler/pkg/reqctx"
)

const (
	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "

	msgMissingToken = "отсутствует токен авторизации"
)

// Auth достает bearer токен из заголовка Authorization и кладет его в контекст.
// Токен не проверяется локально, он передается в сервис маркетплейса.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(authorizationHeader)
		if !strings.HasPrefix(header, bearerPrefix) {
			handlers.RespondUnauthorized(w, msgMissingToken)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if token == "" {
			handlers.RespondUnauthorized(w, msgMissingToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(reqctx.WithToken(r.Context(), token)))
	})
}
