package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/taskflowhq/taskflow/internal/api/domain"
	"github.com/taskflowhq/taskflow/internal/api/service"
	"github.com/taskflowhq/taskflow/internal/api/store"
	"github.com/taskflowhq/taskflow/pkg/httpx"
	"github.com/taskflowhq/taskflow/pkg/slogx"

	_ "github.com/taskflowhq/taskflow/api/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store               store.Store
	IdentityService     *service.IdentityService
	AuthService         *service.AuthService
	OrganizationService *service.OrganizationService
	UserService         *service.UserService
	TaskService         *service.TaskService
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

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerOrganizations()
	r.registerUsers()
	r.registerTasks()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			TaskFlow API
//	@version		0.1.0
//	@description	Multi-tenant task management API. Every organization is an isolated
//	@description	tenant: users and tasks belong to exactly one organization, and no
//	@description	request can read or write another tenant's data.
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

// authn builds the standard secured chain: resolve identity, enforce roles,
// rate limit per user. Routes gate with the domain role sets (AdminOnly,
// MemberOrHigher) so the tier convention lives in one place.
func (r *Router) authn(h http.Handler, roles []domain.Role, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		AuthnMiddleware(r.IdentityService),
		RequireRole(roles...),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerAuth() {
	registerHandler := &RegisterHandler{AuthService: r.AuthService}
	loginHandler := &LoginHandler{AuthService: r.AuthService}

	// Credential endpoints get the strict per-IP limit: they are the only
	// surface an attacker can hammer without a token.
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		))
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		))

	// Who-am-I lives under /v1/auth because it answers about the token, not
	// the user collection.
	meHandler := &UsersHandler{UserService: r.UserService}
	r.Mux.Handle("GET /v1/auth/me",
		r.authn(http.HandlerFunc(meHandler.HandleMe), domain.MemberOrHigher, httpx.LenientLimit))
}

func (r *Router) registerOrganizations() {
	h := &OrganizationHandler{OrganizationService: r.OrganizationService}

	r.Mux.Handle("GET /v1/organizations/me",
		r.authn(http.HandlerFunc(h.HandleGet), domain.MemberOrHigher, httpx.LenientLimit))

	// Organization changes are admin-only.
	r.Mux.Handle("PATCH /v1/organizations/me",
		r.authn(http.HandlerFunc(h.HandlePatch), domain.AdminOnly, httpx.ModerateLimit))
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	r.Mux.Handle("GET /v1/users",
		r.authn(http.HandlerFunc(h.HandleList), domain.MemberOrHigher, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/users/{id}",
		r.authn(http.HandlerFunc(h.HandleGet), domain.MemberOrHigher, httpx.LenientLimit))

	// Removing members is admin-only.
	r.Mux.Handle("DELETE /v1/users/{id}",
		r.authn(http.HandlerFunc(h.HandleDelete), domain.AdminOnly, httpx.ModerateLimit))
}

func (r *Router) registerTasks() {
	h := &TasksHandler{TaskService: r.TaskService}

	r.Mux.Handle("POST /v1/tasks",
		r.authn(http.HandlerFunc(h.HandleCreate), domain.MemberOrHigher, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/tasks",
		r.authn(http.HandlerFunc(h.HandleList), domain.MemberOrHigher, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/tasks/{id}",
		r.authn(http.HandlerFunc(h.HandleGet), domain.MemberOrHigher, httpx.LenientLimit))
	r.Mux.Handle("PATCH /v1/tasks/{id}",
		r.authn(http.HandlerFunc(h.HandlePatch), domain.MemberOrHigher, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /v1/tasks/{id}",
		r.authn(http.HandlerFunc(h.HandleDelete), domain.MemberOrHigher, httpx.ModerateLimit))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
