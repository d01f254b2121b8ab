package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
	"github.com/unrolled/secure"

	_ "github.com/aussiebroadwan/accounts/api/accounts" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterConfig holds the settings the router takes from the process config.
type RouterConfig struct {
	BuildVersion string

	// LoginURL is linked from the registration result pages.
	LoginURL string

	// Production turns on HSTS. SSLRedirect additionally redirects plain
	// HTTP requests to HTTPS.
	Production  bool
	SSLRedirect bool
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware
	handler     http.Handler

	cfg       RouterConfig
	startTime time.Time
	logger    *slog.Logger
	db        Pinger

	Registration *service.RegistrationService
	Sessions     *service.SessionService
	Users        *service.UserService
	Gate         *service.AuthGate
}

func NewRouter(cfg RouterConfig, db Pinger, logger *slog.Logger) *Router {
	r := &Router{
		Mux:       http.NewServeMux(),
		cfg:       cfg,
		startTime: time.Now(),
		logger:    logger,
		db:        db,
	}

	// Outermost first. The request logger must wrap the mux directly so it
	// sees the matched route pattern.
	r.middlewares = []httpx.Middleware{
		securityHeaders(cfg),
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerRegistrations()
	r.registerSessions()
	r.registerAccount()
	r.registerSystem()

	r.Mux.Handle("GET /swagger/", httpSwagger.Handler())

	r.handler = httpx.Chain(r.Mux, r.middlewares...)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Accounts Service API
//	@version		0.1.0
//	@description	Email-verified registration, password login and session-token authentication.
//	@description
//	@description				Session tokens are HS256 JWTs. Send them as "Authorization: Bearer {token}".
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/accounts
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if r.handler == nil {
		r.handler = httpx.Chain(r.Mux, r.middlewares...)
	}
	r.handler.ServeHTTP(w, req)
}

func (r *Router) registerRegistrations() {
	h := &RegistrationHandler{
		Registration: r.Registration,
		Pages:        PageRenderer{LoginURL: r.cfg.LoginURL},
	}

	r.Mux.HandleFunc("POST /v1/registrations", h.HandleInitiate)
	r.Mux.HandleFunc("POST /v1/registrations/complete", h.HandleComplete)

	// Target of the emailed link.
	r.Mux.HandleFunc("GET /v1/registrations/{token}", h.HandleLink)
}

func (r *Router) registerSessions() {
	r.Mux.Handle("POST /v1/sessions", &SessionHandler{Sessions: r.Sessions})
}

func (r *Router) registerAccount() {
	h := &AccountHandler{Sessions: r.Sessions, Users: r.Users}
	authn := Authn(r.Gate)

	r.Mux.Handle("GET /v1/account", httpx.Chain(http.HandlerFunc(h.HandleWhoami), authn))
	r.Mux.Handle("PUT /v1/account/password", httpx.Chain(http.HandlerFunc(h.HandleChangePassword), authn))
	r.Mux.Handle("DELETE /v1/account", httpx.Chain(http.HandlerFunc(h.HandleDelete), authn))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.cfg.BuildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.cfg.BuildVersion, r.db))
}

// securityHeaders sets the standard hardening headers on every response.
// Result pages add their own Content-Security-Policy.
func securityHeaders(cfg RouterConfig) httpx.Middleware {
	sm := secure.New(secure.Options{
		FrameDeny:            true,
		ContentTypeNosniff:   true,
		BrowserXssFilter:     true,
		ReferrerPolicy:       "no-referrer",
		SSLRedirect:          cfg.SSLRedirect,
		SSLProxyHeaders:      map[string]string{"X-Forwarded-Proto": "https"},
		STSSeconds:           stsSeconds(cfg.Production),
		STSIncludeSubdomains: cfg.Production,
		IsDevelopment:        !cfg.Production,
	})
	return sm.Handler
}

func stsSeconds(production bool) int64 {
	if production {
		return 31536000
	}
	return 0
}
