package handler

import (
	"net/http"

	"nexus_backend/internal/quotes/service"
	"nexus_backend/internal/quotes/transport"
	"nexus_backend/platform/httpkit"
	"nexus_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// PublicHandler serves the unauthenticated quote page behind share tokens.
type PublicHandler struct {
	svc *service.Service
	val *validator.Validator
}

func NewPublic(svc *service.Service, val *validator.Validator) *PublicHandler {
	return &PublicHandler{svc: svc, val: val}
}

// RegisterRoutes registers the token-scoped public routes. Decisions go
// through the form limiter; the read is cheap and unthrottled.
func (h *PublicHandler) RegisterRoutes(rg *gin.RouterGroup, formLimit gin.HandlerFunc) {
	rg.GET("/quotes/:token", h.Get)
	rg.POST("/quotes/:token/accept", formLimit, h.Accept)
	rg.POST("/quotes/:token/reject", formLimit, h.Reject)
	rg.GET("/quotes/:token/pdf", h.DownloadPDF)
}

// Get handles GET /api/v1/public/quotes/:token
func (h *PublicHandler) Get(c *gin.Context) {
	quote, err := h.svc.GetPublic(c.Request.Context(), c.Param("token"))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toPublicResponse(quote))
}

// Accept handles POST /api/v1/public/quotes/:token/accept
func (h *PublicHandler) Accept(c *gin.Context) {
	var req transport.AcceptQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	quote, err := h.svc.Accept(c.Request.Context(), c.Param("token"), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toPublicResponse(quote))
}

// Reject handles POST /api/v1/public/quotes/:token/reject
func (h *PublicHandler) Reject(c *gin.Context) {
	var req transport.RejectQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	quote, err := h.svc.Reject(c.Request.Context(), c.Param("token"), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toPublicResponse(quote))
}

// DownloadPDF handles GET /api/v1/public/quotes/:token/pdf
func (h *PublicHandler) DownloadPDF(c *gin.Context) {
	link, err := h.svc.PublicPDF(c.Request.Context(), c.Param("token"))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.PDFResponse{
		URL:       link.URL,
		FileKey:   link.FileKey,
		ExpiresAt: link.ExpiresAt,
	})
}

func toPublicResponse(q service.Quote) transport.PublicQuoteResponse {
	resp := transport.PublicQuoteResponse{
		Number:        q.Number,
		ClientName:    q.ClientName,
		ClientCompany: q.ClientCompany,
		Status:        transport.QuoteStatus(q.Status),
		TaxRateBps:    q.TaxRateBps,
		Items:         toItemResponses(q),
		SubtotalCents: q.Totals.SubtotalCents,
		DiscountCents: q.Totals.DiscountCents,
		TaxCents:      q.Totals.TaxCents,
		TotalCents:    q.Totals.TotalCents,
		AcceptedAt:    q.AcceptedAt,
	}
	if q.ValidUntil != nil {
		formatted := q.ValidUntil.Format("2006-01-02")
		resp.ValidUntil = &formatted
	}
	return resp
}
