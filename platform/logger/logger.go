// Package logger provides structured logging infrastructure.
// This is part of the platform layer and contains no business logic.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger for structured logging.
type Logger struct {
	*slog.Logger
}

// New creates a logger. Development environments get human-readable text at
// debug level, everything else JSON at info level.
func New(env string) *Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler
	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// WithRequestID returns a logger bound to a request ID.
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{Logger: l.With(slog.String("request_id", requestID))}
}

// HTTPRequest logs a completed HTTP request.
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

// AuthEvent logs sign-in and token events.
func (l *Logger) AuthEvent(event, email string, success bool, reason string) {
	if success {
		l.Info("auth_event", slog.String("event", event), slog.String("email", email), slog.Bool("success", true))
		return
	}
	l.Warn("auth_event",
		slog.String("event", event),
		slog.String("email", email),
		slog.Bool("success", false),
		slog.String("reason", reason),
	)
}

// EmailEvent logs an outgoing email attempt.
func (l *Logger) EmailEvent(template, toEmail string, err error) {
	if err != nil {
		l.Error("email_send_failed", slog.String("template", template), slog.String("to", toEmail), slog.String("error", err.Error()))
		return
	}
	l.Info("email_sent", slog.String("template", template), slog.String("to", toEmail))
}

// JobEvent logs a background job execution.
func (l *Logger) JobEvent(task string, err error) {
	if err != nil {
		l.Error("job_failed", slog.String("task", task), slog.String("error", err.Error()))
		return
	}
	l.Info("job_completed", slog.String("task", task))
}

// DatabaseError logs a database failure.
func (l *Logger) DatabaseError(operation string, err error) {
	l.Error("database_error", slog.String("operation", operation), slog.String("error", err.Error()))
}

// RateLimitExceeded logs a throttled request.
func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded", slog.String("client_ip", clientIP), slog.String("path", path))
}
