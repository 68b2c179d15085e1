package http

import (
	"net/http"

	"github.com/eytanenglard/HebrewClubBackend/pkg/httpx"
)

type LogoutHandler struct {
	CookieSecure bool
}

// ServeHTTP godoc
//
//	@Summary		Logout Endpoint
//	@Description	Clear the session cookie. Sessions are stateless, so the token
//	@Description	itself stays valid until expiry; logout only removes it from the client.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	MessageResponse	"message"
//	@Router			/v1/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w, h.CookieSecure)
	httpx.WriteJSON(w, http.StatusOK, MessageResponse{
		Message: "Logged out successfully",
	})
}
