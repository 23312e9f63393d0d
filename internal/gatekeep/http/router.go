package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/gatekeep/internal/gatekeep/service"
	"github.com/aussiebroadwan/gatekeep/internal/gatekeep/store"
	"github.com/aussiebroadwan/gatekeep/pkg/httpx"
	"github.com/aussiebroadwan/gatekeep/pkg/jwtx"
	"github.com/aussiebroadwan/gatekeep/pkg/slogx"

	_ "github.com/aussiebroadwan/gatekeep/api/gatekeep" // Swagger docs
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

	store            store.Store
	WhitelistService *service.WhitelistService
	InviteService    *service.InviteService
	GateService      *service.GateService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
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

func (r *Router) ApplyRoutes() {
	r.registerWhitelist()
	r.registerRegistration()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Gatekeep Registration Gate API
//	@version		0.1.0
//	@description	Email whitelist and invitation service gating account registration.
//	@description
//	@description				Anyone may request access for their email; admins review requests and approval can
//	@description				issue a single-use invitation token delivered by email. Registration is admitted by
//	@description				a valid invite, an approved whitelist entry under private beta, or open registration.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/gatekeep
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
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerWhitelist() {
	submitHandler := &WhitelistSubmitHandler{WhitelistService: r.WhitelistService}
	adminHandler := &WhitelistAdminHandler{WhitelistService: r.WhitelistService}

	// POST /whitelist-requests - strict rate limit by IP (public, unauthenticated)
	r.Mux.Handle("POST /v1/whitelist-requests",
		httpx.Chain(submitHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /whitelist-requests - moderate rate limit by user (admin read operation)
	securedList := httpx.Chain(http.HandlerFunc(adminHandler.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("admin:read"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	// PUT /whitelist-requests/{id} - moderate rate limit by user (admin write operation)
	securedReview := httpx.Chain(http.HandlerFunc(adminHandler.HandleReview),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("admin:write"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	// DELETE /whitelist-requests/{id} - moderate rate limit by user (admin write operation)
	securedDelete := httpx.Chain(http.HandlerFunc(adminHandler.HandleDelete),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("admin:write"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("GET /v1/whitelist-requests", securedList)
	r.Mux.Handle("PUT /v1/whitelist-requests/{id}", securedReview)
	r.Mux.Handle("DELETE /v1/whitelist-requests/{id}", securedDelete)
}

func (r *Router) registerRegistration() {
	// POST /register - strict rate limit by IP (public signup endpoint)
	registerHandler := &RegisterHandler{GateService: r.GateService}
	r.Mux.Handle("POST /v1/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
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
