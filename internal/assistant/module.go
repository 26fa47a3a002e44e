// Package assistant provides the admin AI assistant backed by the Kimi model.
package assistant

import (
	"nexus_backend/internal/assistant/handler"
	"nexus_backend/internal/assistant/service"
	apphttp "nexus_backend/internal/http"
	"nexus_backend/platform/config"
	"nexus_backend/platform/logger"
	"nexus_backend/platform/validator"
)

// Module bundles the assistant service and its HTTP handler.
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates the assistant module. Fails when the agent or runner
// cannot be initialized.
func NewModule(cfg config.AssistantConfig, val *validator.Validator, log *logger.Logger) (*Module, error) {
	svc, err := service.New(cfg, log)
	if err != nil {
		return nil, err
	}
	h := handler.New(svc, val)
	return &Module{handler: h, Service: svc}, nil
}

func (m *Module) Name() string { return "assistant" }

// RegisterRoutes registers the assistant routes on the admin group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Admin)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
