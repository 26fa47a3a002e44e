// Package clients provides the derived client aggregation module, the core
// of the admin dashboard.
package clients

import (
	"nexus_backend/internal/clients/handler"
	"nexus_backend/internal/clients/repository"
	"nexus_backend/internal/clients/service"
	"nexus_backend/internal/events"
	apphttp "nexus_backend/internal/http"
	"nexus_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the clients domain module.
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates the clients module. Quote and booking sources come from
// the sibling modules that own those tables.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, bus events.Bus, quotes service.QuoteSource, bookings service.BookingSource) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, quotes, bookings, bus)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		Service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "clients"
}

// RegisterRoutes registers the admin dashboard routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterAdminRoutes(ctx.Admin)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
