package handler

import (
	"net/http"

	"nexus_backend/internal/clients/service"
	"nexus_backend/internal/clients/transport"
	"nexus_backend/platform/httpkit"
	"nexus_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler serves the derived client list and the status upsert.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterAdminRoutes registers the client dashboard routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/clients", h.List)
	rg.PUT("/clients/status", h.UpsertStatus)
}

// List handles GET /api/v1/admin/clients
func (h *Handler) List(c *gin.Context) {
	var status *transport.ClientStatus
	if raw := c.Query("status"); raw != "" {
		if err := h.val.Var(raw, "oneof=lead prospect client lost"); err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid status filter", nil)
			return
		}
		value := transport.ClientStatus(raw)
		status = &value
	}

	clients, err := h.svc.List(c.Request.Context(), status)
	if httpkit.HandleError(c, err) {
		return
	}

	resp := transport.ClientListResponse{
		Items: make([]transport.ClientResponse, 0, len(clients)),
		Total: len(clients),
	}
	for _, cl := range clients {
		resp.Items = append(resp.Items, transport.ClientResponse{
			Email:        cl.Email,
			Name:         cl.Name,
			Phone:        cl.Phone,
			Status:       transport.ClientStatus(cl.Status),
			Notes:        cl.Notes,
			QuoteCount:   cl.QuoteCount,
			BookingCount: cl.BookingCount,
			StatusOnly:   cl.StatusOnly,
			FirstContact: cl.FirstContact,
			LastContact:  cl.LastContact,
		})
	}

	httpkit.OK(c, resp)
}

// UpsertStatus handles PUT /api/v1/admin/clients/status
func (h *Handler) UpsertStatus(c *gin.Context) {
	var req transport.UpsertStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	cs, err := h.svc.UpsertStatus(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.StatusResponse{
		Email:     cs.Email,
		Status:    transport.ClientStatus(cs.Status),
		Notes:     cs.Notes,
		UpdatedAt: cs.UpdatedAt,
	})
}
