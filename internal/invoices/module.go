// Package invoices provides invoice management with PDF rendering.
package invoices

import (
	"nexus_backend/internal/adapters/storage"
	"nexus_backend/internal/events"
	apphttp "nexus_backend/internal/http"
	"nexus_backend/internal/invoices/handler"
	"nexus_backend/internal/invoices/repository"
	"nexus_backend/internal/invoices/service"
	"nexus_backend/platform/config"
	"nexus_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config is the configuration surface the invoices module needs.
type Config interface {
	config.AgencyConfig
	GetBucketInvoicePDFs() string
}

// Module represents the invoices domain module.
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates the invoices module with all dependencies wired. The store
// may be nil when object storage is not configured; PDF generation then
// reports a validation error instead of failing at startup.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, bus events.Bus, store storage.DocumentStore, cfg Config) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, store, cfg, cfg.GetBucketInvoicePDFs())
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		Service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "invoices"
}

// RegisterRoutes registers the admin invoice routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterAdminRoutes(ctx.Admin)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
