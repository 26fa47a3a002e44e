// Package bookings provides the consultation call booking module.
package bookings

import (
	"nexus_backend/internal/bookings/handler"
	"nexus_backend/internal/bookings/repository"
	"nexus_backend/internal/bookings/service"
	"nexus_backend/internal/events"
	apphttp "nexus_backend/internal/http"
	"nexus_backend/internal/scheduler"
	"nexus_backend/platform/logger"
	"nexus_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the call bookings domain module.
type Module struct {
	handler *handler.Handler
	Service *service.Service
	Repo    *repository.Repository
}

// NewModule creates the bookings module with all dependencies wired. The
// reminder scheduler may be nil when Redis is not configured.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, bus events.Bus, reminders scheduler.ReminderScheduler, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, reminders, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		Service: svc,
		Repo:    repo,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "bookings"
}

// RegisterRoutes registers the public booking routes and the admin workflow.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := ctx.V1.Group("/public")
	m.handler.RegisterPublicRoutes(public, ctx.FormRateLimiter.RateLimit())

	m.handler.RegisterAdminRoutes(ctx.Admin)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
