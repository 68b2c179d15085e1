package http

import (
	"net/http"

	"github.com/eytanenglard/HebrewClubBackend/internal/auth/service"
	"github.com/eytanenglard/HebrewClubBackend/pkg/httpx"
	"github.com/eytanenglard/HebrewClubBackend/pkg/slogx"
)

type CsrfTokenHandler struct {
	CsrfService *service.CsrfService
}

// ServeHTTP godoc
//
//	@Summary		CSRF Token Endpoint
//	@Description	Return the anti-forgery token bound to the caller's session id.
//	@Description	Callers without a live binding get a fresh session id minted alongside the token.
//	@Tags			Auth
//	@Produce		json
//	@Param			X-Session-ID	header		string				false	"Existing session id"
//	@Success		200				{object}	CsrfTokenResponse	"session_id, csrf_token"
//	@Failure		500				{object}	ErrorResponse		"error, error_description"
//	@Router			/v1/auth/csrf-token [get].
func (h *CsrfTokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	sid, token, err := h.CsrfService.GetOrCreate(ctx, r.Header.Get(HeaderSessionID))
	if err != nil {
		log.Error("csrf token issuance failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Failed to issue CSRF token",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, CsrfTokenResponse{
		SessionID: sid,
		CsrfToken: token,
	})
}
