// Package projects provides client project tracking for the admin portal.
package projects

import (
	"nexus_backend/internal/events"
	apphttp "nexus_backend/internal/http"
	"nexus_backend/internal/projects/handler"
	"nexus_backend/internal/projects/repository"
	"nexus_backend/internal/projects/service"
	"nexus_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the projects domain module.
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates the projects module with all dependencies wired.
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
	return "projects"
}

// RegisterRoutes registers the admin project routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterAdminRoutes(ctx.Admin)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
