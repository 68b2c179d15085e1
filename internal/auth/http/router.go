package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/eytanenglard/HebrewClubBackend/internal/auth/service"
	"github.com/eytanenglard/HebrewClubBackend/internal/auth/store"
	"github.com/eytanenglard/HebrewClubBackend/pkg/httpx"
	"github.com/eytanenglard/HebrewClubBackend/pkg/jwtx"
	"github.com/eytanenglard/HebrewClubBackend/pkg/slogx"

	_ "github.com/eytanenglard/HebrewClubBackend/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store
	kv    store.Ephemeral

	SessionTTL   time.Duration
	CookieSecure bool

	AuthService         *service.AuthService
	VerificationService *service.VerificationService
	ResetService        *service.ResetService
	CsrfService         *service.CsrfService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	kv store.Ephemeral,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		kv:           kv,
		logger:       logger,
	}

	// Set default middleware chain. The session middleware runs globally so
	// rate limiting and the current-user probe both see the account id; the
	// CSRF middleware guards every state-changing route except the exempt
	// auth endpoints.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.SessionMiddleware(verifier),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.middlewares = append(r.middlewares, CsrfMiddleware(r.CsrfService))

	r.registerAuth()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Hebrew Club Auth Service API
//	@version		0.1.0
//	@description	Credential and session integrity service for the Hebrew Club platform:
//	@description	registration with dual-channel email verification, stateless HS256
//	@description	sessions, password reset with lockout, and session-bound CSRF tokens.
//
//	@contact.name	Hebrew Club
//	@contact.url	https://github.com/eytanenglard/HebrewClubBackend
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /v1/auth/register - strict rate limit (abuse prevention)
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(&RegisterHandler{VerificationService: r.VerificationService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /v1/auth/login - strict rate limit (brute force prevention)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(&LoginHandler{
			AuthService:  r.AuthService,
			SessionTTL:   r.SessionTTL,
			CookieSecure: r.CookieSecure,
		},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /v1/auth/logout - lenient rate limit (clears a cookie)
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(&LogoutHandler{CookieSecure: r.CookieSecure},
			httpx.RateLimitByAccount(httpx.LenientLimit),
		),
	)

	// GET /v1/auth/me - lenient rate limit (read-only probe)
	r.Mux.Handle("GET /v1/auth/me",
		httpx.Chain(&MeHandler{AuthService: r.AuthService},
			httpx.RateLimitByAccount(httpx.LenientLimit),
		),
	)

	// POST /v1/auth/verify-email - moderate rate limit
	r.Mux.Handle("POST /v1/auth/verify-email",
		httpx.Chain(&VerifyEmailHandler{
			VerificationService: r.VerificationService,
			AuthService:         r.AuthService,
			SessionTTL:          r.SessionTTL,
			CookieSecure:        r.CookieSecure,
		},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /v1/auth/resend-verification - moderate rate limit
	r.Mux.Handle("POST /v1/auth/resend-verification",
		httpx.Chain(&ResendVerificationHandler{VerificationService: r.VerificationService},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// GET /v1/auth/csrf-token - lenient rate limit
	r.Mux.Handle("GET /v1/auth/csrf-token",
		httpx.Chain(&CsrfTokenHandler{CsrfService: r.CsrfService},
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// POST /v1/auth/forgot-password - strict rate limit (abuse prevention)
	r.Mux.Handle("POST /v1/auth/forgot-password",
		httpx.Chain(&ForgotPasswordHandler{ResetService: r.ResetService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /v1/auth/reset-password - strict rate limit (token guessing prevention)
	r.Mux.Handle("POST /v1/auth/reset-password",
		httpx.Chain(&ResetPasswordHandler{ResetService: r.ResetService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// GET /livez - public rate limit (load balancer probes)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	// GET /readyz - public rate limit (load balancer probes)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.kv),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
