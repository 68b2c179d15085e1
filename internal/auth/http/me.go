package http

import (
	"net/http"

	"github.com/eytanenglard/HebrewClubBackend/internal/auth/service"
	"github.com/eytanenglard/HebrewClubBackend/pkg/httpx"
	"github.com/eytanenglard/HebrewClubBackend/pkg/slogx"
)

type MeHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Current User Endpoint
//	@Description	Return the account behind the request's session, if any.
//	@Description	A missing, expired, or forged session yields a null user, not an error.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	CurrentUserResponse	"user (null when unauthenticated)"
//	@Failure		500	{object}	ErrorResponse		"error, error_description"
//	@Router			/v1/auth/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, err := h.AuthService.CurrentUser(ctx, httpx.AccountIDFromCtx(ctx))
	if err != nil {
		log.Error("current user lookup failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Failed to resolve current user",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, CurrentUserResponse{User: user})
}
