// Package auth provides sign-in, token refresh and invite-only user
// management.
package auth

import (
	"nexus_backend/internal/auth/handler"
	"nexus_backend/internal/auth/repository"
	"nexus_backend/internal/auth/service"
	"nexus_backend/internal/events"
	apphttp "nexus_backend/internal/http"
	"nexus_backend/platform/config"
	"nexus_backend/platform/logger"
	"nexus_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the authentication domain module.
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates the auth module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, cfg config.AuthServiceConfig, val *validator.Validator, bus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		Service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "auth"
}

// RegisterRoutes registers the credential routes, the profile route and the
// admin user management routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	authGroup := ctx.V1.Group("/auth")
	authGroup.Use(ctx.AuthRateLimiter.RateLimit())
	m.handler.RegisterAuthRoutes(authGroup)

	m.handler.RegisterProtectedRoutes(ctx.Protected)
	m.handler.RegisterAdminRoutes(ctx.Admin)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
