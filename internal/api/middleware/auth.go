package middleware

import (
	"net/http"
	"strings"

	"github.com/m04kA/SMC-TrainingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingPortal/internal/integrations/studioapi"
)

const msgMissingToken = "missing authorization token"

// Auth требует заголовок Authorization и кладет токен в контекст запроса.
// Портал токен не проверяет, это делает бэкенд студии.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r.Header.Get("Authorization"))
		if token == "" {
			handlers.RespondUnauthorized(w, msgMissingToken)
			return
		}

		ctx := studioapi.WithToken(r.Context(), token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
