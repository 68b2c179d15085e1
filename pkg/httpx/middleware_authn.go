package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/eytanenglard/HebrewClubBackend/pkg/jwtx"
	"github.com/eytanenglard/HebrewClubBackend/pkg/slogx"
)

// SessionCookieName is the cookie the login handler sets and the session
// middleware reads back.
const SessionCookieName = "accessToken"

// SessionToken extracts the raw session token from the request, preferring
// the session cookie and falling back to an Authorization bearer header.
// Returns "" when the request carries neither.
func SessionToken(r *http.Request) string {
	if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
	}
	return ""
}

// SessionMiddleware verifies the session token, if any, and attaches the
// account id to the request context. Requests without a valid token pass
// through anonymously; handlers that require authentication check
// AccountIDFromCtx themselves.
func SessionMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw := SessionToken(r)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				slogx.FromContext(ctx).Debug("session token rejected", "err", err)
				next.ServeHTTP(w, r)
				return
			}

			ctx = context.WithValue(ctx, CtxKeyAccountID, claims.AccountID())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
