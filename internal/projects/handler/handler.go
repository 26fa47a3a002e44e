package handler

import (
	"net/http"

	"nexus_backend/internal/projects/repository"
	"nexus_backend/internal/projects/service"
	"nexus_backend/internal/projects/transport"
	"nexus_backend/platform/httpkit"
	"nexus_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidProjectID = "invalid project ID"
)

// Handler handles HTTP requests for projects.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterAdminRoutes registers the project management routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/projects", h.Create)
	rg.GET("/projects", h.List)
	rg.GET("/projects/:id", h.GetByID)
	rg.PUT("/projects/:id", h.Update)
	rg.PATCH("/projects/:id/status", h.UpdateStatus)
}

// Create handles POST /api/v1/admin/projects
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	project, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, toResponse(project))
}

// List handles GET /api/v1/admin/projects
func (h *Handler) List(c *gin.Context) {
	var status *transport.ProjectStatus
	if raw := c.Query("status"); raw != "" {
		if err := h.val.Var(raw, "oneof=planning in_progress review delivered maintenance cancelled"); err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid status filter", nil)
			return
		}
		value := transport.ProjectStatus(raw)
		status = &value
	}

	items, err := h.svc.List(c.Request.Context(), status, c.Query("clientEmail"), 0)
	if httpkit.HandleError(c, err) {
		return
	}

	resp := transport.ProjectListResponse{
		Items: make([]transport.ProjectResponse, 0, len(items)),
		Total: len(items),
	}
	for _, project := range items {
		resp.Items = append(resp.Items, toResponse(project))
	}

	httpkit.OK(c, resp)
}

// GetByID handles GET /api/v1/admin/projects/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidProjectID, nil)
		return
	}

	project, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toResponse(project))
}

// Update handles PUT /api/v1/admin/projects/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidProjectID, nil)
		return
	}

	var req transport.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	project, err := h.svc.Update(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toResponse(project))
}

// UpdateStatus handles PATCH /api/v1/admin/projects/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidProjectID, nil)
		return
	}

	var req transport.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	project, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toResponse(project))
}

func toResponse(p repository.Project) transport.ProjectResponse {
	resp := transport.ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		ClientEmail: p.ClientEmail,
		ServiceType: p.ServiceType,
		Status:      transport.ProjectStatus(p.Status),
		BudgetCents: p.BudgetCents,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Deadline != nil {
		formatted := p.Deadline.Format("2006-01-02")
		resp.Deadline = &formatted
	}
	return resp
}
