// Guard chain for protected routes. Order matters: RequireAuth attaches the
// verified claims, RequireTenant reconciles the tenant hint against them and
// establishes the ambient tenant, RequireRoles gates on the role claim.
// Each guard terminates the request on first failure.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/afroforma/roommaster/internal/http/response"
	"github.com/afroforma/roommaster/internal/tenancy"
	"github.com/afroforma/roommaster/pkg/auth"
	"github.com/afroforma/roommaster/pkg/logger"
	"github.com/afroforma/roommaster/pkg/observability"
)

type ctxKey string

const ctxClaims ctxKey = "claims"

// RequireAuth verifies the bearer token and attaches its claims to the
// request context. Any verification failure (absent header, wrong scheme,
// malformed, expired, bad signature) produces the same 401.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				observability.AuthFailuresTotal.WithLabelValues("credential").Inc()
				response.Unauthorized(w, "authentication required")
				return
			}

			claims, err := auth.Parse(strings.TrimPrefix(authz, "Bearer "), secret)
			if err != nil {
				logger.DebugContext(r.Context(), "token rejected", "error", err)
				observability.AuthFailuresTotal.WithLabelValues("credential").Inc()
				response.Unauthorized(w, "authentication required")
				return
			}

			ctx := context.WithValue(r.Context(), ctxClaims, claims)
			ctx = context.WithValue(ctx, logger.UserIDKey, claims.Sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireTenant reconciles the advisory tenant hint with the authoritative
// tenant claim and publishes the claim into the request-scoped tenant
// context. Runs after RequireAuth.
func RequireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		if claims == nil || claims.TenantID == "" {
			logger.WarnContext(r.Context(), "credential without tenant binding")
			observability.AuthFailuresTotal.WithLabelValues("tenant").Inc()
			response.Forbidden(w, "forbidden")
			return
		}

		if hint := tenancy.ResolveHint(r); hint != "" && hint != claims.TenantID {
			logger.WarnContext(r.Context(), "tenant hint mismatch",
				"hint", hint, "claim", claims.TenantID)
			observability.AuthFailuresTotal.WithLabelValues("tenant").Inc()
			response.Forbidden(w, "forbidden")
			return
		}

		ctx := tenancy.WithTenant(r.Context(), claims.TenantID)
		ctx = context.WithValue(ctx, logger.TenantIDKey, claims.TenantID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles gates an operation on a declared role set. An empty set means
// any authenticated caller. Runs after RequireAuth.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(allowed) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			claims := ClaimsFromContext(r.Context())
			if claims == nil || !allowed[claims.Role] {
				role := ""
				if claims != nil {
					role = claims.Role
				}
				logger.WarnContext(r.Context(), "role not permitted", "role", role)
				observability.AuthFailuresTotal.WithLabelValues("role").Inc()
				response.Forbidden(w, "forbidden")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClaimsFromContext returns the verified claims attached by RequireAuth.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(ctxClaims).(*auth.Claims)
	return claims
}
