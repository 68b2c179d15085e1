package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/eytanenglard/HebrewClubBackend/internal/auth/service"
	"github.com/eytanenglard/HebrewClubBackend/pkg/httpx"
	"github.com/eytanenglard/HebrewClubBackend/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService

	// SessionTTL sets the cookie lifetime; it should match the token TTL.
	SessionTTL time.Duration

	// CookieSecure marks the session cookie Secure; off only in local dev.
	CookieSecure bool
}

type loginRequest struct {
	// Identifier is an email address or a username.
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Authenticate with email or username plus password.
//	@Description	On success a session token is returned and also set as an HttpOnly cookie.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		loginRequest	true	"identifier, password"
//	@Success		200		{object}	SessionResponse	"user, access_token"
//	@Failure		401		{object}	ErrorResponse	"error, error_description"
//	@Failure		500		{object}	ErrorResponse	"error, error_description"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	user, token, err := h.AuthService.Login(ctx, req.Identifier, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
				Error:            "invalid_credentials",
				ErrorDescription: "Incorrect identifier or password",
			})
		case errors.Is(err, service.ErrEmailNotVerified):
			httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
				Error:            "email_not_verified",
				ErrorDescription: "Please verify your email address before logging in",
			})
		default:
			log.Error("login failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error:            "server_error",
				ErrorDescription: "Failed to log in",
			})
		}
		return
	}

	setSessionCookie(w, token, h.SessionTTL, h.CookieSecure)
	httpx.WriteJSON(w, http.StatusOK, SessionResponse{
		User:        user,
		AccessToken: token,
	})
}

// setSessionCookie installs the session token as an HttpOnly cookie with the
// same lifetime as the token itself.
func setSessionCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	http.SetCookie(w, &http.Cookie{
		Name:     httpx.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearSessionCookie expires the session cookie immediately.
func clearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     httpx.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}
