package catalog

import (
	"net/http"

	apphttp "nexus_backend/internal/http"
	"nexus_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module serves the static marketing catalog on public routes.
type Module struct{}

// NewModule creates the catalog module.
func NewModule() *Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "catalog"
}

// RegisterRoutes registers the public catalog routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := ctx.V1.Group("/public")
	public.GET("/services", m.ListCategories)
	public.GET("/pricing", m.ListAllPlans)
	public.GET("/pricing/:category", m.ListPlans)
}

func (m *Module) ListCategories(c *gin.Context) {
	httpkit.OK(c, gin.H{"categories": Categories()})
}

func (m *Module) ListAllPlans(c *gin.Context) {
	out := make(map[ServiceCategory][]Plan, len(categories))
	for _, cat := range Categories() {
		plans, _ := PlansFor(cat.ID)
		out[cat.ID] = plans
	}
	httpkit.OK(c, gin.H{"plans": out})
}

func (m *Module) ListPlans(c *gin.Context) {
	category := ServiceCategory(c.Param("category"))
	plans, ok := PlansFor(category)
	if !ok {
		httpkit.Error(c, http.StatusNotFound, "unknown service category", nil)
		return
	}
	httpkit.OK(c, gin.H{"plans": plans})
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
