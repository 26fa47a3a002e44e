// Package handler exposes the assistant chat endpoint.
package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"nexus_backend/internal/assistant/service"
	"nexus_backend/internal/assistant/transport"
	"nexus_backend/platform/httpkit"
	"nexus_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/assistant/chat", h.Chat)
}

// Chat streams the assistant answer as SSE token lines.
func (h *Handler) Chat(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", validator.FieldErrors(err))
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Writer.Flush()

	err := h.svc.Stream(c.Request.Context(), identity.UserID(), req, func(token string) error {
		payload, err := json.Marshal(gin.H{"token": token})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", payload); err != nil {
			return err
		}
		c.Writer.Flush()
		return nil
	})
	if err != nil {
		// Headers are already out, report the failure in-band.
		payload, _ := json.Marshal(gin.H{"error": "assistant unavailable"})
		fmt.Fprintf(c.Writer, "data: %s\n\n", payload)
	}

	fmt.Fprint(c.Writer, "data: [DONE]\n\n")
	c.Writer.Flush()
}
