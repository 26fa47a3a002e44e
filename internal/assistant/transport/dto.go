// Package transport defines request DTOs for the assistant module.
package transport

import "encoding/json"

// ChatRequest is a single assistant question with optional dashboard context.
type ChatRequest struct {
	Type  string          `json:"type" validate:"required,oneof=clients invoices opportunities general"`
	Query string          `json:"query" validate:"required,min=2,max=4000"`
	Data  json.RawMessage `json:"data,omitempty"`
}
