package handler

import (
	"net/http"

	"nexus_backend/internal/quotes/service"
	"nexus_backend/internal/quotes/transport"
	"nexus_backend/platform/httpkit"
	"nexus_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidQuoteID   = "invalid quote ID"
)

// PartnerResolver maps a signed-in sales user to their partner ID.
type PartnerResolver interface {
	PartnerIDForUser(c *gin.Context) (uuid.UUID, bool)
}

// Handler handles internal HTTP requests for quotes.
type Handler struct {
	svc      *service.Service
	val      *validator.Validator
	partners PartnerResolver
}

func New(svc *service.Service, val *validator.Validator, partners PartnerResolver) *Handler {
	return &Handler{svc: svc, val: val, partners: partners}
}

// RegisterAdminRoutes registers the admin quote routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/quotes", h.AdminCreate)
	rg.GET("/quotes", h.AdminList)
	rg.GET("/quotes/:id", h.AdminGetByID)
	rg.PUT("/quotes/:id", h.AdminUpdate)
	rg.PUT("/quotes/:id/items", h.AdminReplaceItems)
	rg.POST("/quotes/:id/send", h.AdminSend)
	rg.POST("/quotes/:id/pdf", h.AdminGeneratePDF)
}

// RegisterSalesRoutes registers the partner quote generator routes.
func (h *Handler) RegisterSalesRoutes(rg *gin.RouterGroup) {
	rg.POST("/quotes", h.SalesCreate)
	rg.GET("/quotes", h.SalesList)
	rg.GET("/quotes/:id", h.SalesGetByID)
	rg.POST("/quotes/:id/send", h.SalesSend)
	rg.POST("/quotes/:id/pdf", h.SalesGeneratePDF)
}

// AdminCreate handles POST /api/v1/admin/quotes
func (h *Handler) AdminCreate(c *gin.Context) {
	h.create(c, nil)
}

// SalesCreate handles POST /api/v1/sales/quotes
func (h *Handler) SalesCreate(c *gin.Context) {
	partnerID, ok := h.partners.PartnerIDForUser(c)
	if !ok {
		return
	}
	h.create(c, &partnerID)
}

func (h *Handler) create(c *gin.Context, partnerID *uuid.UUID) {
	var req transport.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	quote, err := h.svc.Create(c.Request.Context(), partnerID, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, toResponse(quote))
}

// AdminList handles GET /api/v1/admin/quotes
func (h *Handler) AdminList(c *gin.Context) {
	status, ok := h.statusFilter(c)
	if !ok {
		return
	}

	items, err := h.svc.List(c.Request.Context(), status, nil, 0)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toListResponse(items))
}

// SalesList handles GET /api/v1/sales/quotes
func (h *Handler) SalesList(c *gin.Context) {
	partnerID, ok := h.partners.PartnerIDForUser(c)
	if !ok {
		return
	}
	status, ok := h.statusFilter(c)
	if !ok {
		return
	}

	items, err := h.svc.List(c.Request.Context(), status, &partnerID, 0)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toListResponse(items))
}

// AdminGetByID handles GET /api/v1/admin/quotes/:id
func (h *Handler) AdminGetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidQuoteID, nil)
		return
	}

	quote, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toResponse(quote))
}

// SalesGetByID handles GET /api/v1/sales/quotes/:id
func (h *Handler) SalesGetByID(c *gin.Context) {
	partnerID, ok := h.partners.PartnerIDForUser(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidQuoteID, nil)
		return
	}

	quote, err := h.svc.GetOwned(c.Request.Context(), id, partnerID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toResponse(quote))
}

// AdminUpdate handles PUT /api/v1/admin/quotes/:id
func (h *Handler) AdminUpdate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidQuoteID, nil)
		return
	}

	var req transport.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	quote, err := h.svc.Update(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toResponse(quote))
}

// AdminReplaceItems handles PUT /api/v1/admin/quotes/:id/items
func (h *Handler) AdminReplaceItems(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidQuoteID, nil)
		return
	}

	var req transport.ReplaceItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	quote, err := h.svc.ReplaceItems(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toResponse(quote))
}

// AdminSend handles POST /api/v1/admin/quotes/:id/send
func (h *Handler) AdminSend(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidQuoteID, nil)
		return
	}

	quote, err := h.svc.Send(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toResponse(quote))
}

// SalesSend handles POST /api/v1/sales/quotes/:id/send
func (h *Handler) SalesSend(c *gin.Context) {
	partnerID, ok := h.partners.PartnerIDForUser(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidQuoteID, nil)
		return
	}

	if _, err := h.svc.GetOwned(c.Request.Context(), id, partnerID); httpkit.HandleError(c, err) {
		return
	}

	quote, err := h.svc.Send(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toResponse(quote))
}

// AdminGeneratePDF handles POST /api/v1/admin/quotes/:id/pdf
func (h *Handler) AdminGeneratePDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidQuoteID, nil)
		return
	}
	h.generatePDF(c, id)
}

// SalesGeneratePDF handles POST /api/v1/sales/quotes/:id/pdf
func (h *Handler) SalesGeneratePDF(c *gin.Context) {
	partnerID, ok := h.partners.PartnerIDForUser(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidQuoteID, nil)
		return
	}

	if _, err := h.svc.GetOwned(c.Request.Context(), id, partnerID); httpkit.HandleError(c, err) {
		return
	}
	h.generatePDF(c, id)
}

func (h *Handler) generatePDF(c *gin.Context, id uuid.UUID) {
	link, err := h.svc.GeneratePDF(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.PDFResponse{
		URL:       link.URL,
		FileKey:   link.FileKey,
		ExpiresAt: link.ExpiresAt,
	})
}

func (h *Handler) statusFilter(c *gin.Context) (*transport.QuoteStatus, bool) {
	raw := c.Query("status")
	if raw == "" {
		return nil, true
	}
	if err := h.val.Var(raw, "oneof=draft sent accepted rejected expired"); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid status filter", nil)
		return nil, false
	}
	value := transport.QuoteStatus(raw)
	return &value, true
}

func toListResponse(items []service.Quote) transport.QuoteListResponse {
	resp := transport.QuoteListResponse{
		Items: make([]transport.QuoteResponse, 0, len(items)),
		Total: len(items),
	}
	for _, quote := range items {
		resp.Items = append(resp.Items, toResponse(quote))
	}
	return resp
}

func toResponse(q service.Quote) transport.QuoteResponse {
	resp := transport.QuoteResponse{
		ID:            q.ID,
		Number:        q.Number,
		PartnerID:     q.PartnerID,
		ClientName:    q.ClientName,
		ClientEmail:   q.ClientEmail,
		ClientCompany: q.ClientCompany,
		Status:        transport.QuoteStatus(q.Status),
		TaxRateBps:    q.TaxRateBps,
		DiscountValue: q.DiscountValue,
		Notes:         q.Notes,
		PublicToken:   q.PublicToken,
		Items:         toItemResponses(q),
		SubtotalCents: q.Totals.SubtotalCents,
		DiscountCents: q.Totals.DiscountCents,
		TaxCents:      q.Totals.TaxCents,
		TotalCents:    q.Totals.TotalCents,
		AcceptedAt:    q.AcceptedAt,
		AcceptedBy:    q.AcceptedBy,
		CreatedAt:     q.CreatedAt,
	}
	if q.DiscountType != nil {
		value := transport.DiscountType(*q.DiscountType)
		resp.DiscountType = &value
	}
	if q.ValidUntil != nil {
		formatted := q.ValidUntil.Format("2006-01-02")
		resp.ValidUntil = &formatted
	}
	return resp
}

func toItemResponses(q service.Quote) []transport.ItemResponse {
	items := make([]transport.ItemResponse, 0, len(q.Items))
	for i, item := range q.Items {
		items = append(items, transport.ItemResponse{
			ID:             item.ID,
			Description:    item.Description,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			LineTotalCents: q.Totals.LineTotals[i],
		})
	}
	return items
}
