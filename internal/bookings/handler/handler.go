package handler

import (
	"net/http"
	"time"

	"nexus_backend/internal/bookings/repository"
	"nexus_backend/internal/bookings/service"
	"nexus_backend/internal/bookings/transport"
	"nexus_backend/platform/httpkit"
	"nexus_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for consultation call bookings.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterPublicRoutes registers the unauthenticated booking routes.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup, formLimit gin.HandlerFunc) {
	rg.POST("/call-bookings", formLimit, h.Create)
	rg.GET("/call-bookings/availability", h.Availability)
	rg.POST("/call-bookings/:id/cancel", formLimit, h.PublicCancel)
}

// RegisterAdminRoutes registers the admin booking workflow routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/call-bookings", h.List)
	rg.GET("/call-bookings/:id", h.GetByID)
	rg.POST("/call-bookings/:id/confirm", h.Confirm)
	rg.POST("/call-bookings/:id/complete", h.Complete)
	rg.POST("/call-bookings/:id/cancel", h.Cancel)
	rg.GET("/call-bookings/:id/notes", h.ListNotes)
	rg.POST("/call-bookings/:id/notes", h.AddNote)
}

// Create handles POST /api/v1/public/call-bookings
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	booking, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, transport.CreateBookingResponse{
		ID:          booking.ID,
		Status:      transport.BookingStatus(booking.Status),
		BookingDate: booking.BookingDate.Format("2006-01-02"),
		TimeSlot:    booking.TimeSlot,
		CancelToken: booking.CancelToken,
	})
}

// Availability handles GET /api/v1/public/call-bookings/availability?date=YYYY-MM-DD
func (h *Handler) Availability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httpkit.Error(c, http.StatusBadRequest, "date query parameter is required", nil)
		return
	}

	slots, err := h.svc.Availability(c.Request.Context(), date)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.AvailabilityResponse{Date: date, Slots: slots})
}

// PublicCancel handles POST /api/v1/public/call-bookings/:id/cancel?token=...
func (h *Handler) PublicCancel(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	token, err := uuid.Parse(c.Query("token"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "cancellation token is required", nil)
		return
	}

	booking, err := h.svc.CancelWithToken(c.Request.Context(), id, token)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toResponse(booking))
}

// List handles GET /api/v1/admin/call-bookings
func (h *Handler) List(c *gin.Context) {
	var status *transport.BookingStatus
	if raw := c.Query("status"); raw != "" {
		if err := h.val.Var(raw, "oneof=pending confirmed cancelled completed"); err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid status filter", nil)
			return
		}
		value := transport.BookingStatus(raw)
		status = &value
	}

	var from *time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "from must be formatted YYYY-MM-DD", nil)
			return
		}
		from = &parsed
	}

	items, err := h.svc.List(c.Request.Context(), status, from, 0)
	if httpkit.HandleError(c, err) {
		return
	}

	resp := transport.BookingListResponse{
		Items: make([]transport.BookingResponse, 0, len(items)),
		Total: len(items),
	}
	for _, b := range items {
		resp.Items = append(resp.Items, toResponse(b))
	}

	httpkit.OK(c, resp)
}

// GetByID handles GET /api/v1/admin/call-bookings/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	booking, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toResponse(booking))
}

// Confirm handles POST /api/v1/admin/call-bookings/:id/confirm
func (h *Handler) Confirm(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	booking, err := h.svc.Confirm(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toResponse(booking))
}

// Complete handles POST /api/v1/admin/call-bookings/:id/complete
func (h *Handler) Complete(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	booking, err := h.svc.Complete(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toResponse(booking))
}

// Cancel handles POST /api/v1/admin/call-bookings/:id/cancel
func (h *Handler) Cancel(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	var req transport.CancelBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
			return
		}
	}

	booking, err := h.svc.Cancel(c.Request.Context(), id, "admin")
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toResponse(booking))
}

// ListNotes handles GET /api/v1/admin/call-bookings/:id/notes
func (h *Handler) ListNotes(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	notes, err := h.svc.ListNotes(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	resp := make([]transport.NoteResponse, 0, len(notes))
	for _, n := range notes {
		resp = append(resp, toNoteResponse(n))
	}

	httpkit.OK(c, resp)
}

// AddNote handles POST /api/v1/admin/call-bookings/:id/notes
func (h *Handler) AddNote(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	var req transport.AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	note, err := h.svc.AddNote(c.Request.Context(), id, identity.UserID(), req.Body)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, toNoteResponse(note))
}

func (h *Handler) bookingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid booking ID", nil)
		return uuid.UUID{}, false
	}
	return id, true
}

func toResponse(b repository.Booking) transport.BookingResponse {
	return transport.BookingResponse{
		ID:          b.ID,
		Name:        b.Name,
		Email:       b.Email,
		Phone:       b.Phone,
		BookingDate: b.BookingDate.Format("2006-01-02"),
		TimeSlot:    b.TimeSlot,
		DurationMin: b.DurationMin,
		Topic:       b.Topic,
		Status:      transport.BookingStatus(b.Status),
		CreatedAt:   b.CreatedAt,
	}
}

func toNoteResponse(n repository.Note) transport.NoteResponse {
	return transport.NoteResponse{
		ID:        n.ID,
		AuthorID:  n.AuthorID,
		Body:      n.Body,
		CreatedAt: n.CreatedAt,
	}
}
