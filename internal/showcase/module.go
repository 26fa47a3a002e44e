package showcase

import (
	"net/http"

	apphttp "nexus_backend/internal/http"
	"nexus_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module serves showcase site content on public routes.
type Module struct{}

// NewModule creates the showcase module.
func NewModule() *Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "showcase"
}

// RegisterRoutes registers the public showcase routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := ctx.V1.Group("/public")
	public.GET("/showcase", m.List)
	public.GET("/showcase/:site", m.Get)
}

func (m *Module) List(c *gin.Context) {
	httpkit.OK(c, gin.H{"sites": Sites()})
}

func (m *Module) Get(c *gin.Context) {
	content, ok := Get(c.Param("site"))
	if !ok {
		httpkit.Error(c, http.StatusNotFound, "unknown showcase site", nil)
		return
	}
	httpkit.OK(c, content)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
