// Package opportunities provides the weighted sales pipeline.
package opportunities

import (
	"nexus_backend/internal/events"
	apphttp "nexus_backend/internal/http"
	"nexus_backend/internal/opportunities/handler"
	"nexus_backend/internal/opportunities/repository"
	"nexus_backend/internal/opportunities/service"
	"nexus_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the opportunities domain module.
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates the opportunities module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, bus events.Bus) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		Service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "opportunities"
}

// RegisterRoutes registers the admin pipeline routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterAdminRoutes(ctx.Admin)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
