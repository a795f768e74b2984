package httpx

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/pavemint/claimdesk/pkg/jwtx"
	"github.com/pavemint/claimdesk/pkg/slogx"
)

// AuthnMiddleware verifies the bearer session token and injects the manager
// identity into the request context. Only tokens carrying the Manager role
// pass; this service never mints anything else, so a different role claim
// means a forged or foreign token.
func AuthnMiddleware(v jwtx.Verifier, role string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("session token verification failed", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}

			if claims.Role != role {
				writeBearerError(w, "wrong role")
				return
			}

			userID, err := strconv.ParseInt(claims.Subject, 10, 64)
			if err != nil {
				writeBearerError(w, "malformed subject")
				return
			}

			ctx = contextWithPrincipal(ctx, userID, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithPrincipal(ctx context.Context, userID int64, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, userID)
	ctx = context.WithValue(ctx, CtxKeyUsername, c.Username)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}
