package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	msgInvalidIdentity = "некорректные заголовки X-User-ID / X-User-Role"
	msgUnauthorized    = "требуется аутентификация"
	msgForbidden       = "доступ запрещен"
)

type principalKey struct{}

// Auth разбирает заголовки идентификации в domain.Principal и кладет его в контекст.
// Запрос без заголовков проходит анонимно; некорректные заголовки отклоняются.
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawID := r.Header.Get(HeaderUserID)
			rawRole := r.Header.Get(HeaderUserRole)

			if rawID == "" && rawRole == "" {
				next.ServeHTTP(w, r)
				return
			}

			principal, ok := parsePrincipal(rawID, rawRole)
			if !ok {
				logger.Warn("Auth: invalid identity headers: id=%q role=%q", rawID, rawRole)
				handlers.RespondUnauthorized(w, msgInvalidIdentity)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// RequireRole пропускает только аутентифицированные запросы с одной из ролей
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := GetPrincipal(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			for _, role := range roles {
				if principal.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			handlers.RespondForbidden(w, msgForbidden)
		})
	}
}

// WithPrincipal кладет вызывающую сторону в контекст
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// GetPrincipal возвращает вызывающую сторону из контекста
func GetPrincipal(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(domain.Principal)
	return p, ok
}

// GetUserID возвращает ID вызывающей стороны из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	p, ok := GetPrincipal(ctx)
	if !ok {
		return 0, false
	}
	return p.ID, true
}

func parsePrincipal(rawID, rawRole string) (domain.Principal, bool) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return domain.Principal{}, false
	}

	role := domain.Role(rawRole)
	if !role.IsValid() {
		return domain.Principal{}, false
	}

	return domain.Principal{Role: role, ID: id}, true
}
