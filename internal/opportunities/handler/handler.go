package handler

import (
	"net/http"

	"nexus_backend/internal/opportunities/repository"
	"nexus_backend/internal/opportunities/service"
	"nexus_backend/internal/opportunities/transport"
	"nexus_backend/platform/httpkit"
	"nexus_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest       = "invalid request"
	msgValidationFailed     = "validation failed"
	msgInvalidOpportunityID = "invalid opportunity ID"
)

// Handler handles HTTP requests for the sales pipeline.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterAdminRoutes registers the pipeline management routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/opportunities", h.Create)
	rg.GET("/opportunities", h.List)
	rg.GET("/opportunities/pipeline", h.PipelineSummary)
	rg.GET("/opportunities/:id", h.GetByID)
	rg.PUT("/opportunities/:id", h.Update)
	rg.PATCH("/opportunities/:id/stage", h.UpdateStage)
}

// Create handles POST /api/v1/admin/opportunities
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	opp, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, toResponse(opp))
}

// List handles GET /api/v1/admin/opportunities
func (h *Handler) List(c *gin.Context) {
	var stage *transport.Stage
	if raw := c.Query("stage"); raw != "" {
		if err := h.val.Var(raw, "oneof=prospecting qualification proposal negotiation closed_won closed_lost"); err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid stage filter", nil)
			return
		}
		value := transport.Stage(raw)
		stage = &value
	}

	items, err := h.svc.List(c.Request.Context(), stage, 0)
	if httpkit.HandleError(c, err) {
		return
	}

	resp := transport.OpportunityListResponse{
		Items: make([]transport.OpportunityResponse, 0, len(items)),
		Total: len(items),
	}
	for _, opp := range items {
		resp.Items = append(resp.Items, toResponse(opp))
	}

	httpkit.OK(c, resp)
}

// PipelineSummary handles GET /api/v1/admin/opportunities/pipeline
func (h *Handler) PipelineSummary(c *gin.Context) {
	summary, err := h.svc.PipelineSummary(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, summary)
}

// GetByID handles GET /api/v1/admin/opportunities/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidOpportunityID, nil)
		return
	}

	opp, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toResponse(opp))
}

// Update handles PUT /api/v1/admin/opportunities/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidOpportunityID, nil)
		return
	}

	var req transport.UpdateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	opp, err := h.svc.Update(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toResponse(opp))
}

// UpdateStage handles PATCH /api/v1/admin/opportunities/:id/stage
func (h *Handler) UpdateStage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidOpportunityID, nil)
		return
	}

	var req transport.UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	opp, err := h.svc.UpdateStage(c.Request.Context(), id, req.Stage)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toResponse(opp))
}

func toResponse(o repository.Opportunity) transport.OpportunityResponse {
	stage := transport.Stage(o.Stage)
	resp := transport.OpportunityResponse{
		ID:             o.ID,
		Name:           o.Name,
		ClientEmail:    o.ClientEmail,
		Stage:          stage,
		AmountCents:    o.AmountCents,
		ProbabilityBps: service.Probability(stage),
		WeightedCents:  service.WeightedValue(o.AmountCents, stage),
		Notes:          o.Notes,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	if o.ExpectedCloseDate != nil {
		formatted := o.ExpectedCloseDate.Format("2006-01-02")
		resp.ExpectedCloseDate = &formatted
	}
	return resp
}
