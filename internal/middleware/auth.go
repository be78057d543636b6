// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/carterperez-dev/wear-shop/internal/account"
	"github.com/carterperez-dev/wear-shop/internal/core"
)

type ActorResolver interface {
	Resolve(ctx context.Context, token string) (*account.Actor, error)
}

// Authenticator resolves the bearer token into an actor and stores it on
// the request context. Requests without a resolvable actor never reach next.
func Authenticator(resolver ActorResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				core.Unauthorized(w, "missing authorization token")
				return
			}

			actor, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				core.WriteError(w, r, err, "account")
				return
			}

			ctx := account.WithActor(r.Context(), *actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireElevated lets through only actors holding ROLE_ADMIN or
// ROLE_SUPERADMIN. Finer checks stay with the account service.
func RequireElevated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := account.ActorFromContext(r.Context())
		if !ok {
			core.Unauthorized(w, "")
			return
		}

		if !actor.Roles.IsElevated() {
			core.Forbidden(w, "")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
