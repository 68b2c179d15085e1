package http

import (
	"errors"
	"net/http"

	"github.com/eytanenglard/HebrewClubBackend/internal/auth/service"
	"github.com/eytanenglard/HebrewClubBackend/pkg/httpx"
	"github.com/eytanenglard/HebrewClubBackend/pkg/slogx"
)

type ResetPasswordHandler struct {
	ResetService *service.ResetService
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// ServeHTTP godoc
//
//	@Summary		Reset Password Endpoint
//	@Description	Exchange a live reset token for a new password.
//	@Description	Completion clears the whole reset state, including any lockout.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		resetPasswordRequest	true	"token, new_password"
//	@Success		200		{object}	MessageResponse			"message"
//	@Failure		400		{object}	ErrorResponse			"error, error_description"
//	@Failure		500		{object}	ErrorResponse			"error, error_description"
//	@Router			/v1/auth/reset-password [post].
func (h *ResetPasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req resetPasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	if err := h.ResetService.Complete(ctx, req.Token, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidResetRequest):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "new_password is required",
			})
		case errors.Is(err, service.ErrInvalidResetToken):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:            "invalid_reset_token",
				ErrorDescription: "Password reset token is invalid or has expired",
			})
		default:
			log.Error("password reset completion failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error:            "server_error",
				ErrorDescription: "Failed to reset password",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{
		Message: "Password has been reset. You can now log in with your new password.",
	})
}
