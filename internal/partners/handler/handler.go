package handler

import (
	"net/http"

	"nexus_backend/internal/partners/repository"
	"nexus_backend/internal/partners/service"
	"nexus_backend/internal/partners/transport"
	"nexus_backend/platform/httpkit"
	"nexus_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for the partner portal.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterSalesRoutes registers the partner-facing routes.
func (h *Handler) RegisterSalesRoutes(rg *gin.RouterGroup) {
	rg.GET("/partners/me", h.MyProfile)
	rg.GET("/prospects", h.ListProspects)
	rg.POST("/prospects", h.CreateProspect)
	rg.PUT("/prospects/:id", h.UpdateProspect)
	rg.DELETE("/prospects/:id", h.DeleteProspect)
	rg.GET("/commissions", h.MyCommissions)
}

// RegisterAdminRoutes registers partner administration routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/partners", h.CreatePartner)
	rg.GET("/partners", h.ListPartners)
	rg.PUT("/partners/:id", h.UpdatePartner)
	rg.PATCH("/commissions/:id/paid", h.MarkCommissionPaid)
}

// MyProfile handles GET /api/v1/sales/partners/me
func (h *Handler) MyProfile(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	partner, err := h.svc.ProfileByUserID(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toPartnerResponse(partner))
}

// ListProspects handles GET /api/v1/sales/prospects
func (h *Handler) ListProspects(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	items, err := h.svc.ListProspects(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}

	resp := transport.ProspectListResponse{
		Items: make([]transport.ProspectResponse, 0, len(items)),
		Total: len(items),
	}
	for _, prospect := range items {
		resp.Items = append(resp.Items, toProspectResponse(prospect))
	}

	httpkit.OK(c, resp)
}

// CreateProspect handles POST /api/v1/sales/prospects
func (h *Handler) CreateProspect(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.CreateProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	prospect, err := h.svc.CreateProspect(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, toProspectResponse(prospect))
}

// UpdateProspect handles PUT /api/v1/sales/prospects/:id
func (h *Handler) UpdateProspect(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid prospect ID", nil)
		return
	}

	var req transport.UpdateProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	prospect, err := h.svc.UpdateProspect(c.Request.Context(), identity.UserID(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toProspectResponse(prospect))
}

// DeleteProspect handles DELETE /api/v1/sales/prospects/:id
func (h *Handler) DeleteProspect(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid prospect ID", nil)
		return
	}

	if err := h.svc.DeleteProspect(c.Request.Context(), identity.UserID(), id); httpkit.HandleError(c, err) {
		return
	}

	c.Status(http.StatusNoContent)
}

// MyCommissions handles GET /api/v1/sales/commissions
func (h *Handler) MyCommissions(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	items, err := h.svc.ListCommissions(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}

	resp := transport.CommissionListResponse{
		Items:             make([]transport.CommissionResponse, 0, len(items)),
		Total:             len(items),
		PendingTotalCents: service.PendingTotal(items),
	}
	for _, commission := range items {
		resp.Items = append(resp.Items, toCommissionResponse(commission))
	}

	httpkit.OK(c, resp)
}

// CreatePartner handles POST /api/v1/admin/partners
func (h *Handler) CreatePartner(c *gin.Context) {
	var req transport.CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	partner, err := h.svc.CreatePartner(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, toPartnerResponse(partner))
}

// ListPartners handles GET /api/v1/admin/partners
func (h *Handler) ListPartners(c *gin.Context) {
	items, err := h.svc.ListPartners(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	resp := transport.PartnerListResponse{
		Items: make([]transport.PartnerResponse, 0, len(items)),
		Total: len(items),
	}
	for _, partner := range items {
		resp.Items = append(resp.Items, toPartnerResponse(partner))
	}

	httpkit.OK(c, resp)
}

// UpdatePartner handles PUT /api/v1/admin/partners/:id
func (h *Handler) UpdatePartner(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid partner ID", nil)
		return
	}

	var req transport.UpdatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	partner, err := h.svc.UpdatePartner(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toPartnerResponse(partner))
}

// MarkCommissionPaid handles PATCH /api/v1/admin/commissions/:id/paid
func (h *Handler) MarkCommissionPaid(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid commission ID", nil)
		return
	}

	commission, err := h.svc.MarkCommissionPaid(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toCommissionResponse(commission))
}

func toPartnerResponse(p repository.Partner) transport.PartnerResponse {
	return transport.PartnerResponse{
		ID:                p.ID,
		UserID:            p.UserID,
		DisplayName:       p.DisplayName,
		Company:           p.Company,
		CommissionRateBps: p.CommissionRateBps,
		Active:            p.Active,
		CreatedAt:         p.CreatedAt,
	}
}

func toProspectResponse(p repository.Prospect) transport.ProspectResponse {
	return transport.ProspectResponse{
		ID:        p.ID,
		Name:      p.Name,
		Company:   p.Company,
		Email:     p.Email,
		Phone:     p.Phone,
		Stage:     transport.ProspectStage(p.Stage),
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toCommissionResponse(c repository.Commission) transport.CommissionResponse {
	return transport.CommissionResponse{
		ID:              c.ID,
		QuoteID:         c.QuoteID,
		QuoteNumber:     c.QuoteNumber,
		BaseAmountCents: c.BaseAmountCents,
		RateBps:         c.RateBps,
		CommissionCents: c.CommissionCents,
		Status:          transport.CommissionStatus(c.Status),
		CreatedAt:       c.CreatedAt,
		PaidAt:          c.PaidAt,
	}
}
