package http

import (
	"net/http"

	"github.com/eytanenglard/HebrewClubBackend/internal/auth/service"
	"github.com/eytanenglard/HebrewClubBackend/pkg/httpx"
	"github.com/eytanenglard/HebrewClubBackend/pkg/slogx"
)

// Request headers carrying the anti-forgery pair.
const (
	HeaderCsrfToken = "X-CSRF-Token"
	HeaderSessionID = "X-Session-ID"
)

// csrfExemptPaths are state-changing endpoints that cannot carry a CSRF
// token: they are reached from emailed links or run before the client has a
// session to bind a token to.
var csrfExemptPaths = map[string]struct{}{
	"/v1/auth/csrf-token":          {},
	"/v1/auth/verify-email":        {},
	"/v1/auth/resend-verification": {},
	"/v1/auth/forgot-password":     {},
	"/v1/auth/logout":              {},
}

// CsrfMiddleware enforces the session-bound anti-forgery token on
// state-changing requests. Safe methods and exempt paths pass through.
func CsrfMiddleware(csrf *service.CsrfService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}
			if _, exempt := csrfExemptPaths[r.URL.Path]; exempt {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			log := slogx.FromContext(ctx)

			sessionID := r.Header.Get(HeaderSessionID)
			token := r.Header.Get(HeaderCsrfToken)

			ok, err := csrf.Validate(ctx, sessionID, token)
			if err != nil {
				log.Error("csrf validation failed", "err", err)
				httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
					Error:            "server_error",
					ErrorDescription: "Failed to validate CSRF token",
				})
				return
			}
			if !ok {
				log.Warn("request rejected with invalid csrf token",
					"path", r.URL.Path,
				)
				httpx.WriteJSON(w, http.StatusForbidden, ErrorResponse{
					Error:            "invalid_csrf_token",
					ErrorDescription: "Invalid CSRF token",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
