// Package partners provides the sales partner portal and commission tracking.
package partners

import (
	"nexus_backend/internal/events"
	apphttp "nexus_backend/internal/http"
	"nexus_backend/internal/partners/handler"
	"nexus_backend/internal/partners/repository"
	"nexus_backend/internal/partners/service"
	"nexus_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the partners domain module.
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates the partners module and subscribes it to quote
// acceptances so commissions are recorded automatically.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, bus events.Bus) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	h := handler.New(svc, val)

	bus.Subscribe(events.QuoteAccepted{}.EventName(), events.HandlerFunc(svc.HandleQuoteAccepted))

	return &Module{
		handler: h,
		Service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "partners"
}

// RegisterRoutes registers the sales portal routes and the admin routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterSalesRoutes(ctx.Sales)
	m.handler.RegisterAdminRoutes(ctx.Admin)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
