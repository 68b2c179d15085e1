package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Parallel()

	cfg := RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2}

	t.Run("allows up to burst then rejects", func(t *testing.T) {
		h := RateLimitMiddleware(cfg, func(*http.Request) string { return "fixed" })(okHandler())

		for range 2 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			require.Equal(t, http.StatusOK, rec.Code)
		}

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
	})

	t.Run("separate keys get separate buckets", func(t *testing.T) {
		h := RateLimitMiddleware(cfg, IPKeyExtractor)(okHandler())

		for _, ip := range []string{"10.0.0.1", "10.0.0.2"} {
			for range 2 {
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				req.Header.Set("X-Real-IP", ip)
				rec := httptest.NewRecorder()
				h.ServeHTTP(rec, req)
				require.Equal(t, http.StatusOK, rec.Code)
			}
		}
	})

	t.Run("missing key allows the request", func(t *testing.T) {
		h := RateLimitMiddleware(cfg, func(*http.Request) string { return "" })(okHandler())

		for range 5 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			require.Equal(t, http.StatusOK, rec.Code)
		}
	})
}

func TestIPKeyExtractor(t *testing.T) {
	t.Parallel()

	t.Run("prefers first X-Forwarded-For entry", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		require.Equal(t, "203.0.113.7", IPKeyExtractor(req))
	})

	t.Run("falls back to X-Real-IP then RemoteAddr", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Real-IP", "198.51.100.4")
		require.Equal(t, "198.51.100.4", IPKeyExtractor(req))

		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.9:51234"
		require.Equal(t, "192.0.2.9", IPKeyExtractor(req))
	})
}

func TestCompositeKeyExtractor(t *testing.T) {
	t.Parallel()

	extractor := CompositeKeyExtractor(":",
		func(*http.Request) string { return "a" },
		func(*http.Request) string { return "" },
		func(*http.Request) string { return "b" },
	)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.Equal(t, "a:b", extractor(req))
}

func TestParseRateLimitFromEnv(t *testing.T) {
	defaults := RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5}

	t.Setenv("RATELIMIT_TEST_REQUESTS", "42")
	t.Setenv("RATELIMIT_TEST_WINDOW_SEC", "30")
	t.Setenv("RATELIMIT_TEST_BURST", "7")

	cfg := ParseRateLimitFromEnv("TEST", defaults)
	require.Equal(t, 42, cfg.RequestsPerWindow)
	require.Equal(t, 30*time.Second, cfg.Window)
	require.Equal(t, 7, cfg.Burst)

	t.Setenv("RATELIMIT_TEST_REQUESTS", "not-a-number")
	cfg = ParseRateLimitFromEnv("TEST", defaults)
	require.Equal(t, defaults.RequestsPerWindow, cfg.RequestsPerWindow)
}
