package handler

import (
	"net/http"

	"nexus_backend/internal/invoices/service"
	"nexus_backend/internal/invoices/transport"
	"nexus_backend/platform/httpkit"
	"nexus_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidInvoiceID = "invalid invoice ID"
)

// Handler handles HTTP requests for invoices.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterAdminRoutes registers the invoice management routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/invoices", h.Create)
	rg.GET("/invoices", h.List)
	rg.GET("/invoices/:id", h.GetByID)
	rg.PUT("/invoices/:id", h.Update)
	rg.PUT("/invoices/:id/items", h.ReplaceItems)
	rg.PATCH("/invoices/:id/status", h.UpdateStatus)
	rg.POST("/invoices/:id/pdf", h.GeneratePDF)
}

// Create handles POST /api/v1/admin/invoices
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	inv, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, toResponse(inv))
}

// List handles GET /api/v1/admin/invoices
func (h *Handler) List(c *gin.Context) {
	var status *transport.InvoiceStatus
	if raw := c.Query("status"); raw != "" {
		if err := h.val.Var(raw, "oneof=draft sent paid overdue cancelled"); err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid status filter", nil)
			return
		}
		value := transport.InvoiceStatus(raw)
		status = &value
	}

	items, err := h.svc.List(c.Request.Context(), status, c.Query("clientEmail"), 0)
	if httpkit.HandleError(c, err) {
		return
	}

	resp := transport.InvoiceListResponse{
		Items: make([]transport.InvoiceResponse, 0, len(items)),
		Total: len(items),
	}
	for _, inv := range items {
		resp.Items = append(resp.Items, toResponse(inv))
	}

	httpkit.OK(c, resp)
}

// GetByID handles GET /api/v1/admin/invoices/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidInvoiceID, nil)
		return
	}

	inv, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toResponse(inv))
}

// Update handles PUT /api/v1/admin/invoices/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidInvoiceID, nil)
		return
	}

	var req transport.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	inv, err := h.svc.Update(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toResponse(inv))
}

// ReplaceItems handles PUT /api/v1/admin/invoices/:id/items
func (h *Handler) ReplaceItems(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidInvoiceID, nil)
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

	inv, err := h.svc.ReplaceItems(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toResponse(inv))
}

// UpdateStatus handles PATCH /api/v1/admin/invoices/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidInvoiceID, nil)
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

	inv, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toResponse(inv))
}

// GeneratePDF handles POST /api/v1/admin/invoices/:id/pdf
func (h *Handler) GeneratePDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidInvoiceID, nil)
		return
	}

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

func toResponse(inv service.Invoice) transport.InvoiceResponse {
	items := make([]transport.ItemResponse, 0, len(inv.Items))
	for i, item := range inv.Items {
		items = append(items, transport.ItemResponse{
			ID:             item.ID,
			Description:    item.Description,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			LineTotalCents: inv.Totals.LineTotals[i],
		})
	}

	return transport.InvoiceResponse{
		ID:            inv.ID,
		Number:        inv.Number,
		ClientName:    inv.ClientName,
		ClientEmail:   inv.ClientEmail,
		IssueDate:     inv.IssueDate.Format("2006-01-02"),
		DueDate:       inv.DueDate.Format("2006-01-02"),
		Status:        transport.InvoiceStatus(inv.Status),
		TaxRateBps:    inv.TaxRateBps,
		Notes:         inv.Notes,
		Items:         items,
		SubtotalCents: inv.Totals.SubtotalCents,
		TaxCents:      inv.Totals.TaxCents,
		TotalCents:    inv.Totals.TotalCents,
		CreatedAt:     inv.CreatedAt,
	}
}
