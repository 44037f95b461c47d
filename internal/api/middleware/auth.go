package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
)

type contextKey string

const (
	userIDKey contextKey = "userID"

	// UserIDHeader заголовок с ID пользователя от доверенного шлюза
	UserIDHeader = "X-User-ID"

	bearerPrefix = "Bearer "

	msgMissingCredentials = "требуется аутентификация"
	msgInvalidToken       = "недействительный токен"
)

// TokenParser извлекает ID пользователя из токена доступа
type TokenParser interface {
	Parse(token string) (string, error)
}

// Auth проверяет Bearer токен и кладёт ID пользователя в контекст.
// При trustUserHeader запрос без токена может передать ID в заголовке X-User-ID
func Auth(parser TokenParser, trustUserHeader bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")

			if strings.HasPrefix(authHeader, bearerPrefix) && parser != nil {
				userID, err := parser.Parse(strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix)))
				if err != nil {
					handlers.RespondUnauthorized(w, msgInvalidToken)
					return
				}
				next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
				return
			}

			if trustUserHeader {
				if userID := strings.TrimSpace(r.Header.Get(UserIDHeader)); userID != "" {
					next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
					return
				}
			}

			handlers.RespondUnauthorized(w, msgMissingCredentials)
		})
	}
}

// WithUserID возвращает контекст с ID пользователя
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}
