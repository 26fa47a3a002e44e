package handler

import (
	"net/http"

	"nexus_backend/internal/quoterequests/repository"
	"nexus_backend/internal/quoterequests/service"
	"nexus_backend/internal/quoterequests/transport"
	"nexus_backend/platform/httpkit"
	"nexus_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for quote requests and the quote wizard.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterPublicRoutes registers the unauthenticated quote form routes. The
// form limiter only guards the submission, the wizard flow is a cheap read.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup, formLimit gin.HandlerFunc) {
	rg.POST("/quote-requests", formLimit, h.Submit)
	rg.GET("/quote-wizard/:serviceType", h.WizardFlow)
}

// RegisterAdminRoutes registers the admin workflow routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/quote-requests", h.List)
	rg.GET("/quote-requests/:id", h.GetByID)
	rg.PATCH("/quote-requests/:id/status", h.UpdateStatus)
}

// Submit handles POST /api/v1/public/quote-requests
func (h *Handler) Submit(c *gin.Context) {
	var req transport.SubmitQuoteRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	qr, err := h.svc.Submit(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, transport.SubmitQuoteRequestResponse{
		ID:     qr.ID,
		Status: transport.RequestStatus(qr.Status),
	})
}

// WizardFlow handles GET /api/v1/public/quote-wizard/:serviceType
func (h *Handler) WizardFlow(c *gin.Context) {
	serviceType, steps := h.svc.ResolveWizardFlow(c.Param("serviceType"))

	resp := transport.WizardFlowResponse{
		ServiceType: string(serviceType),
		StepCount:   len(steps),
		Steps:       make([]transport.WizardStepResponse, 0, len(steps)),
	}
	for _, step := range steps {
		resp.Steps = append(resp.Steps, transport.WizardStepResponse{
			ID:        step.ID,
			Label:     step.Label,
			Component: step.Component,
		})
	}

	httpkit.OK(c, resp)
}

// List handles GET /api/v1/admin/quote-requests
func (h *Handler) List(c *gin.Context) {
	var status *transport.RequestStatus
	if raw := c.Query("status"); raw != "" {
		value := transport.RequestStatus(raw)
		if err := h.val.Var(raw, "oneof=pending contacted in_progress completed archived"); err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid status filter", nil)
			return
		}
		status = &value
	}

	items, err := h.svc.List(c.Request.Context(), status, 0)
	if httpkit.HandleError(c, err) {
		return
	}

	resp := transport.QuoteRequestListResponse{
		Items: make([]transport.QuoteRequestResponse, 0, len(items)),
		Total: len(items),
	}
	for _, qr := range items {
		resp.Items = append(resp.Items, toResponse(qr))
	}

	httpkit.OK(c, resp)
}

// GetByID handles GET /api/v1/admin/quote-requests/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid quote request ID", nil)
		return
	}

	qr, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toResponse(qr))
}

// UpdateStatus handles PATCH /api/v1/admin/quote-requests/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid quote request ID", nil)
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

	qr, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toResponse(qr))
}

func toResponse(qr repository.QuoteRequest) transport.QuoteRequestResponse {
	return transport.QuoteRequestResponse{
		ID:             qr.ID,
		Name:           qr.Name,
		Email:          qr.Email,
		Phone:          qr.Phone,
		BusinessType:   qr.BusinessType,
		Services:       qr.Services,
		ProjectDetails: qr.ProjectDetails,
		Budget:         qr.Budget,
		Timeline:       qr.Timeline,
		Status:         transport.RequestStatus(qr.Status),
		CreatedAt:      qr.CreatedAt,
	}
}
