package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eytanenglard/HebrewClubBackend/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestChain(t *testing.T) {
	t.Parallel()

	var order []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(okHandler(), tag("outer"), tag("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"outer", "inner"}, order)
}

func TestSessionMiddleware(t *testing.T) {
	t.Parallel()

	signer, err := jwtx.NewHS256([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	capture := func(got *string) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*got = AccountIDFromCtx(r.Context())
		})
	}

	t.Run("valid cookie attaches the account id", func(t *testing.T) {
		token, err := signer.Sign(jwtx.NewSessionClaims("acc-1", time.Hour, time.Now()))
		require.NoError(t, err)

		var got string
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
		SessionMiddleware(signer)(capture(&got)).ServeHTTP(httptest.NewRecorder(), req)

		require.Equal(t, "acc-1", got)
	})

	t.Run("bearer header works as fallback", func(t *testing.T) {
		token, err := signer.Sign(jwtx.NewSessionClaims("acc-2", time.Hour, time.Now()))
		require.NoError(t, err)

		var got string
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		SessionMiddleware(signer)(capture(&got)).ServeHTTP(httptest.NewRecorder(), req)

		require.Equal(t, "acc-2", got)
	})

	t.Run("invalid token passes through anonymously", func(t *testing.T) {
		var got string
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "garbage"})
		rec := httptest.NewRecorder()
		SessionMiddleware(signer)(capture(&got)).ServeHTTP(rec, req)

		require.Empty(t, got)
	})

	t.Run("no token passes through anonymously", func(t *testing.T) {
		var got string
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		SessionMiddleware(signer)(capture(&got)).ServeHTTP(httptest.NewRecorder(), req)

		require.Empty(t, got)
	})
}
