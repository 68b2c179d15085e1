package http

import (
	"errors"
	"net/http"

	"github.com/eytanenglard/HebrewClubBackend/internal/auth/service"
	"github.com/eytanenglard/HebrewClubBackend/pkg/httpx"
	"github.com/eytanenglard/HebrewClubBackend/pkg/slogx"
)

type RegisterHandler struct {
	VerificationService *service.VerificationService
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// ServeHTTP godoc
//
//	@Summary		Register Endpoint
//	@Description	Create a new account and email its verification credentials.
//	@Description	The account stays unverified until the emailed token or code is redeemed.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		registerRequest		true	"name, email, username, password"
//	@Success		200		{object}	RegisterResponse	"message, user_id"
//	@Failure		400		{object}	ErrorResponse		"error, error_description"
//	@Failure		500		{object}	ErrorResponse		"error, error_description"
//	@Router			/v1/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	account, err := h.VerificationService.Register(ctx, req.Name, req.Email, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRegistration):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "name, email, username and password are required",
			})
		case errors.Is(err, service.ErrAccountExists):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:            "account_exists",
				ErrorDescription: "An account with this email or username already exists",
			})
		case errors.Is(err, service.ErrVerificationSendFailed):
			// The account exists; the user can request a resend.
			httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error:            "email_send_failed",
				ErrorDescription: "Account created but the verification email could not be sent",
			})
		default:
			log.Error("registration failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error:            "server_error",
				ErrorDescription: "Failed to register account",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, RegisterResponse{
		Message: "Registered successfully. Please check your email for verification.",
		UserID:  account.ID,
	})
}
