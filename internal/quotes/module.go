// Package quotes provides quote documents with public token acceptance.
package quotes

import (
	"context"

	"nexus_backend/internal/adapters/storage"
	"nexus_backend/internal/events"
	apphttp "nexus_backend/internal/http"
	"nexus_backend/internal/quotes/handler"
	"nexus_backend/internal/quotes/repository"
	"nexus_backend/internal/quotes/service"
	"nexus_backend/platform/config"
	"nexus_backend/platform/httpkit"
	"nexus_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Config is the configuration surface the quotes module needs.
type Config interface {
	config.AgencyConfig
	GetBucketQuotePDFs() string
	GetAppBaseURL() string
}

// PartnerLookup resolves the partner behind a signed-in sales user.
type PartnerLookup interface {
	PartnerIDByUserID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
}

// Module represents the quotes domain module.
type Module struct {
	handler       *handler.Handler
	publicHandler *handler.PublicHandler
	Service       *service.Service
}

// NewModule creates the quotes module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, bus events.Bus, store storage.DocumentStore, cfg Config, partners PartnerLookup) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, store, cfg, cfg.GetBucketQuotePDFs(), cfg.GetAppBaseURL())
	h := handler.New(svc, val, partnerResolver{partners})
	ph := handler.NewPublic(svc, val)

	return &Module{
		handler:       h,
		publicHandler: ph,
		Service:       svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "quotes"
}

// RegisterRoutes registers the public quote page, the sales generator and
// the admin routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := ctx.V1.Group("/public")
	m.publicHandler.RegisterRoutes(public, ctx.FormRateLimiter.RateLimit())

	m.handler.RegisterSalesRoutes(ctx.Sales)
	m.handler.RegisterAdminRoutes(ctx.Admin)
}

// partnerResolver adapts the partner lookup to the request context.
type partnerResolver struct {
	partners PartnerLookup
}

func (r partnerResolver) PartnerIDForUser(c *gin.Context) (uuid.UUID, bool) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return uuid.Nil, false
	}

	partnerID, err := r.partners.PartnerIDByUserID(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return uuid.Nil, false
	}
	return partnerID, true
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
