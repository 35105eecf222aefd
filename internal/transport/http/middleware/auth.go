package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-shop-auth/internal/domain"
	jwtinfra "github.com/go-shop-auth/internal/infrastructure/jwt"
)

type contextKey string

const accountKey contextKey = "account"

type accessVerifier interface {
	VerifyAccess(token string) (*jwtinfra.Claims, error)
}

type accountResolver interface {
	Resolve(ctx context.Context, role domain.Role, subject string) (*domain.Account, error)
}

// Auth returns middleware that accepts an access token for role from the
// role's cookie or a Bearer header, loads the account it names and injects
// it into the context. A valid token for the other role is refused with 403.
func Auth(verifier accessVerifier, resolver accountResolver, role domain.Role) func(http.Handler) http.Handler {
	cookie := CookiesFor(role).Access
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := TokenFromRequest(r, cookie)
			if tokenStr == "" {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized: token missing")
				return
			}
			claims, err := verifier.VerifyAccess(tokenStr)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized: invalid or expired token")
				return
			}
			tokenRole := domain.RoleBuyer
			if claims.Role != "" {
				if tokenRole, err = domain.ParseRole(claims.Role); err != nil {
					writeJSONError(w, http.StatusUnauthorized, "unauthorized: invalid token role")
					return
				}
			}
			if tokenRole != role {
				writeJSONError(w, http.StatusForbidden, "forbidden: "+string(role)+" only")
				return
			}
			acc, err := resolver.Resolve(r.Context(), role, claims.Subject)
			if err != nil {
				status := http.StatusInternalServerError
				switch {
				case errors.Is(err, domain.ErrForbidden):
					status = http.StatusForbidden
				case errors.Is(err, domain.ErrUnauthorized):
					status = http.StatusUnauthorized
				}
				writeJSONError(w, status, err.Error())
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), accountKey, acc)))
		})
	}
}

// TokenFromRequest returns the first non-empty cookie among names, falling
// back to a Bearer Authorization header.
func TokenFromRequest(r *http.Request, names ...string) string {
	for _, name := range names {
		if c, err := r.Cookie(name); err == nil && c.Value != "" {
			return c.Value
		}
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// AccountFromContext returns the account Auth resolved for this request.
func AccountFromContext(ctx context.Context) (*domain.Account, bool) {
	a, ok := ctx.Value(accountKey).(*domain.Account)
	return a, ok
}
