// Package quoterequests provides the public quote form and wizard module.
package quoterequests

import (
	"nexus_backend/internal/events"
	apphttp "nexus_backend/internal/http"
	"nexus_backend/internal/quoterequests/handler"
	"nexus_backend/internal/quoterequests/repository"
	"nexus_backend/internal/quoterequests/service"
	"nexus_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the quote requests domain module.
type Module struct {
	handler *handler.Handler
	Service *service.Service
	Repo    *repository.Repository
}

// NewModule creates the quote requests module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, bus events.Bus) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		Service: svc,
		Repo:    repo,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "quoterequests"
}

// RegisterRoutes registers the public form routes and the admin workflow routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := ctx.V1.Group("/public")
	m.handler.RegisterPublicRoutes(public, ctx.FormRateLimiter.RateLimit())

	m.handler.RegisterAdminRoutes(ctx.Admin)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
