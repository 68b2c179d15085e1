package http

import "github.com/eytanenglard/HebrewClubBackend/internal/auth/domain"

// ErrorResponse is the error envelope for every failure.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// MessageResponse acknowledges an operation with no other payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// RegisterResponse is returned on successful registration. The account is
// created unverified; the message tells the user to check their inbox.
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

// SessionResponse is returned by login and by email verification, which
// logs the user straight in.
type SessionResponse struct {
	User        domain.Summary `json:"user"`
	AccessToken string         `json:"access_token"`
}

// CurrentUserResponse is returned by the current-user probe. User is null
// when the request carried no valid session.
type CurrentUserResponse struct {
	User *domain.Summary `json:"user"`
}

// CsrfTokenResponse carries the anti-forgery token and the session id it is
// bound to.
type CsrfTokenResponse struct {
	SessionID string `json:"session_id"`
	CsrfToken string `json:"csrf_token"`
}

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
	Cache    string `json:"cache"`
}
