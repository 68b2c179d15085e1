package http

import (
	"errors"
	"net/http"

	"github.com/eytanenglard/HebrewClubBackend/internal/auth/service"
	"github.com/eytanenglard/HebrewClubBackend/pkg/httpx"
	"github.com/eytanenglard/HebrewClubBackend/pkg/slogx"
)

type ForgotPasswordHandler struct {
	ResetService *service.ResetService
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ServeHTTP godoc
//
//	@Summary		Forgot Password Endpoint
//	@Description	Start a password reset: mint a one-hour single-use token and email it.
//	@Description	The third request within the window locks the account for 24 hours.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		forgotPasswordRequest	true	"email"
//	@Success		200		{object}	MessageResponse			"message"
//	@Failure		403		{object}	ErrorResponse			"error, error_description"
//	@Failure		404		{object}	ErrorResponse			"error, error_description"
//	@Failure		500		{object}	ErrorResponse			"error, error_description"
//	@Router			/v1/auth/forgot-password [post].
func (h *ForgotPasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req forgotPasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	if err := h.ResetService.Initiate(ctx, req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrAccountNotFound):
			httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{
				Error:            "account_not_found",
				ErrorDescription: "No account exists for this email",
			})
		case errors.Is(err, service.ErrAccountLocked):
			httpx.WriteJSON(w, http.StatusForbidden, ErrorResponse{
				Error:            "account_locked",
				ErrorDescription: "Account is locked due to too many reset requests. Try again later.",
			})
		case errors.Is(err, service.ErrResetSendFailed):
			httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error:            "email_send_failed",
				ErrorDescription: "Failed to send password reset email",
			})
		default:
			log.Error("password reset initiation failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error:            "server_error",
				ErrorDescription: "Failed to initiate password reset",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{
		Message: "Password reset email sent. Please check your inbox.",
	})
}
