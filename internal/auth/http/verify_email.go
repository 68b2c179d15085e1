package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/eytanenglard/HebrewClubBackend/internal/auth/domain"
	"github.com/eytanenglard/HebrewClubBackend/internal/auth/service"
	"github.com/eytanenglard/HebrewClubBackend/pkg/httpx"
	"github.com/eytanenglard/HebrewClubBackend/pkg/slogx"
)

type VerifyEmailHandler struct {
	VerificationService *service.VerificationService
	AuthService         *service.AuthService

	SessionTTL   time.Duration
	CookieSecure bool
}

type verifyEmailRequest struct {
	Email string `json:"email"`
	Token string `json:"token,omitempty"`
	Code  string `json:"code,omitempty"`
}

// ServeHTTP godoc
//
//	@Summary		Verify Email Endpoint
//	@Description	Redeem the emailed verification token or the 6-digit code.
//	@Description	Exactly one of the two must be supplied. On success the user is logged in.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		verifyEmailRequest	true	"email plus token or code"
//	@Success		200		{object}	SessionResponse		"user, access_token"
//	@Failure		400		{object}	ErrorResponse		"error, error_description"
//	@Failure		500		{object}	ErrorResponse		"error, error_description"
//	@Router			/v1/auth/verify-email [post].
func (h *VerifyEmailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req verifyEmailRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	// The proof comes through exactly one channel.
	var proof domain.VerificationProof
	switch {
	case req.Token != "" && req.Code != "":
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Supply either token or code, not both",
		})
		return
	case req.Token != "":
		proof = domain.TokenProof(req.Token)
	case req.Code != "":
		proof = domain.CodeProof(req.Code)
	}

	account, err := h.VerificationService.Verify(ctx, req.Email, proof)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountNotFound):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:            "account_not_found",
				ErrorDescription: "No account exists for this email",
			})
		case errors.Is(err, service.ErrAlreadyVerified):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:            "already_verified",
				ErrorDescription: "Email is already verified",
			})
		case errors.Is(err, service.ErrVerificationExpired):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:            "verification_expired",
				ErrorDescription: "Verification token or code has expired",
			})
		case errors.Is(err, service.ErrInvalidVerification):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:            "invalid_verification",
				ErrorDescription: "Invalid verification token or code",
			})
		default:
			log.Error("email verification failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error:            "server_error",
				ErrorDescription: "Failed to verify email",
			})
		}
		return
	}

	// Verification doubles as login: mint a session so the user lands in
	// the app without a second round trip.
	token, err := h.AuthService.IssueSession(ctx, account.ID)
	if err != nil {
		log.Error("failed to issue session after verification", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Email verified but session could not be issued",
		})
		return
	}

	setSessionCookie(w, token, h.SessionTTL, h.CookieSecure)
	httpx.WriteJSON(w, http.StatusOK, SessionResponse{
		User:        account.Summarize(),
		AccessToken: token,
	})
}
