// Package sanitize provides text sanitization for user-submitted form fields.
package sanitize

import (
	"regexp"
	"strings"
)

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// StripHTML removes HTML tags from a string so it is safe for text-only
// storage and display. Entities are decoded and the result re-stripped to
// catch encoded tags.
func StripHTML(s string) string {
	result := htmlTagRegex.ReplaceAllString(s, "")
	result = strings.ReplaceAll(result, "&lt;", "<")
	result = strings.ReplaceAll(result, "&gt;", ">")
	result = strings.ReplaceAll(result, "&amp;", "&")
	result = strings.ReplaceAll(result, "&quot;", "\"")
	result = strings.ReplaceAll(result, "&#39;", "'")
	result = htmlTagRegex.ReplaceAllString(result, "")
	return strings.TrimSpace(result)
}

// Text sanitizes a user-provided text field (project details, notes).
func Text(s string) string {
	return StripHTML(s)
}

// TextPtr applies Text to an optional string.
func TextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	result := Text(*s)
	return &result
}

// Email lower-cases and trims an email address. This is the normalization
// used as the join key across quote requests, call bookings and client
// statuses.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
