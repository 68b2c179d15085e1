package http

import (
	"errors"
	"net/http"

	"github.com/eytanenglard/HebrewClubBackend/internal/auth/service"
	"github.com/eytanenglard/HebrewClubBackend/pkg/httpx"
	"github.com/eytanenglard/HebrewClubBackend/pkg/slogx"
)

type ResendVerificationHandler struct {
	VerificationService *service.VerificationService
}

type resendVerificationRequest struct {
	Email string `json:"email"`
}

// ServeHTTP godoc
//
//	@Summary		Resend Verification Endpoint
//	@Description	Replace the verification credentials with a fresh pair and email them.
//	@Description	The previously issued token and code stop working immediately.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		resendVerificationRequest	true	"email"
//	@Success		200		{object}	MessageResponse				"message"
//	@Failure		400		{object}	ErrorResponse				"error, error_description"
//	@Failure		404		{object}	ErrorResponse				"error, error_description"
//	@Failure		500		{object}	ErrorResponse				"error, error_description"
//	@Router			/v1/auth/resend-verification [post].
func (h *ResendVerificationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req resendVerificationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	if _, err := h.VerificationService.Resend(ctx, req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrAccountNotFound):
			httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{
				Error:            "account_not_found",
				ErrorDescription: "No account exists for this email",
			})
		case errors.Is(err, service.ErrAlreadyVerified):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:            "already_verified",
				ErrorDescription: "Email is already verified",
			})
		case errors.Is(err, service.ErrVerificationSendFailed):
			httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error:            "email_send_failed",
				ErrorDescription: "Failed to send verification email",
			})
		default:
			log.Error("verification resend failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error:            "server_error",
				ErrorDescription: "Failed to resend verification email",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{
		Message: "Verification email sent. Please check your inbox.",
	})
}
