// Package http wires the account-management use cases onto a net/http mux.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/msgmaciel/adc-2024-2025/internal/accounts/service"
	"github.com/msgmaciel/adc-2024-2025/internal/accounts/store"
	"github.com/msgmaciel/adc-2024-2025/pkg/httpx"
	"github.com/msgmaciel/adc-2024-2025/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store            store.Store
	SessionService   *service.SessionService
	AccountService   *service.AccountService
	WorksheetService *service.WorksheetService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerAccounts()
	r.registerWorksheets()
	r.registerSystem()
}

func (r *Router) registerAuth() {
	// POST /login - strict rate limit by IP (authentication attempts)
	loginHandler := &LoginHandler{SessionService: r.SessionService}
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /logout - moderate rate limit
	logoutHandler := &LogoutHandler{SessionService: r.SessionService}
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(logoutHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAccounts() {
	// POST /accounts - strict rate limit by IP (public signup endpoint)
	registerHandler := &RegisterHandler{AccountService: r.AccountService}
	r.Mux.Handle("POST /v1/accounts",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /accounts - role-dependent listing, lenient limit
	listHandler := &AccountListHandler{AccountService: r.AccountService}
	r.Mux.Handle("GET /v1/accounts",
		httpx.Chain(listHandler,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// PATCH /accounts/{username} - attribute changes, moderate limit
	attributesHandler := &AccountAttributesHandler{AccountService: r.AccountService}
	r.Mux.Handle("PATCH /v1/accounts/{username}",
		httpx.Chain(attributesHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// PUT /accounts/{username}/role - moderate limit
	roleHandler := &AccountRoleHandler{AccountService: r.AccountService}
	r.Mux.Handle("PUT /v1/accounts/{username}/role",
		httpx.Chain(roleHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// PUT /accounts/{username}/state - moderate limit
	stateHandler := &AccountStateHandler{AccountService: r.AccountService}
	r.Mux.Handle("PUT /v1/accounts/{username}/state",
		httpx.Chain(stateHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// DELETE /accounts/{target} - target is a username or an email
	removeHandler := &AccountRemoveHandler{AccountService: r.AccountService}
	r.Mux.Handle("DELETE /v1/accounts/{target}",
		httpx.Chain(removeHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /password - self-service rotation, strict limit (password guessing)
	passwordHandler := &PasswordHandler{AccountService: r.AccountService}
	r.Mux.Handle("POST /v1/password",
		httpx.Chain(passwordHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerWorksheets() {
	createHandler := &WorksheetCreateHandler{WorksheetService: r.WorksheetService}
	r.Mux.Handle("POST /v1/worksheets",
		httpx.Chain(createHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	updateHandler := &WorksheetUpdateHandler{WorksheetService: r.WorksheetService}
	r.Mux.Handle("PATCH /v1/worksheets/{ref}",
		httpx.Chain(updateHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
