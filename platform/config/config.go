// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-specific config interfaces (principle of least privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// AuthServiceConfig provides settings needed by the auth service.
type AuthServiceConfig interface {
	JWTConfig
	GetJWTRefreshSecret() string
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
	GetInviteTokenTTL() time.Duration
	GetAppBaseURL() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// EmailConfig provides settings for the SMTP sender.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	GetAgencyInboxAddress() string
	GetAppBaseURL() string
}

// StorageConfig provides settings for MinIO object storage.
type StorageConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetBucketQuotePDFs() string
	GetBucketInvoicePDFs() string
	IsStorageEnabled() bool
}

// AgencyConfig is the agency identity printed on generated documents.
type AgencyConfig interface {
	GetAgencyName() string
	GetAgencyAddress() string
	GetAgencyPhone() string
	GetAgencySIRET() string
	GetAgencyTVANumber() string
}

// SchedulerConfig provides settings for the asynq scheduler.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetQueueName() string
	GetWorkerConcurrency() int
}

// AssistantConfig provides settings for the AI assistant.
type AssistantConfig interface {
	GetAssistantAPIKey() string
	GetAssistantBaseURL() string
	GetAssistantModel() string
	IsAssistantEnabled() bool
}

// =============================================================================
// Main config struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                string
	HTTPAddr           string
	DatabaseURL        string
	JWTAccessSecret    string
	JWTRefreshSecret   string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	InviteTokenTTL     time.Duration
	CORSOrigins        []string
	CORSAllowCreds     bool
	AppBaseURL         string
	EmailEnabled       bool
	SMTPHost           string
	SMTPPort           int
	SMTPUsername       string
	SMTPPassword       string
	EmailFromName      string
	EmailFromAddress   string
	AgencyInboxAddress string
	AgencyName         string
	AgencyAddress      string
	AgencyPhone        string
	AgencySIRET        string
	AgencyTVANumber    string
	MinIOEndpoint      string
	MinIOAccessKey     string
	MinIOSecretKey     string
	MinIOUseSSL        bool
	BucketQuotePDFs    string
	BucketInvoicePDFs  string
	RedisURL           string
	RedisTLSInsecure   bool
	QueueName          string
	WorkerConcurrency  int
	AssistantAPIKey    string
	AssistantBaseURL   string
	AssistantModel     string
}

func (c *Config) GetDatabaseURL() string           { return c.DatabaseURL }
func (c *Config) GetJWTAccessSecret() string       { return c.JWTAccessSecret }
func (c *Config) GetJWTRefreshSecret() string      { return c.JWTRefreshSecret }
func (c *Config) GetAccessTokenTTL() time.Duration { return c.AccessTokenTTL }
func (c *Config) GetRefreshTokenTTL() time.Duration {
	return c.RefreshTokenTTL
}
func (c *Config) GetInviteTokenTTL() time.Duration { return c.InviteTokenTTL }
func (c *Config) GetHTTPAddr() string              { return c.HTTPAddr }
func (c *Config) GetCORSOrigins() []string         { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool          { return c.CORSAllowCreds }
func (c *Config) GetAppBaseURL() string            { return c.AppBaseURL }
func (c *Config) GetEmailEnabled() bool            { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string              { return c.SMTPHost }
func (c *Config) GetSMTPPort() int                 { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string          { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string          { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string         { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string      { return c.EmailFromAddress }
func (c *Config) GetAgencyInboxAddress() string    { return c.AgencyInboxAddress }
func (c *Config) GetAgencyName() string            { return c.AgencyName }
func (c *Config) GetAgencyAddress() string         { return c.AgencyAddress }
func (c *Config) GetAgencyPhone() string           { return c.AgencyPhone }
func (c *Config) GetAgencySIRET() string           { return c.AgencySIRET }
func (c *Config) GetAgencyTVANumber() string       { return c.AgencyTVANumber }
func (c *Config) GetMinIOEndpoint() string         { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string        { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string        { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool             { return c.MinIOUseSSL }
func (c *Config) GetBucketQuotePDFs() string       { return c.BucketQuotePDFs }
func (c *Config) GetBucketInvoicePDFs() string     { return c.BucketInvoicePDFs }
func (c *Config) IsStorageEnabled() bool           { return c.MinIOEndpoint != "" }
func (c *Config) GetRedisURL() string              { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool        { return c.RedisTLSInsecure }
func (c *Config) GetQueueName() string             { return c.QueueName }
func (c *Config) GetWorkerConcurrency() int        { return c.WorkerConcurrency }
func (c *Config) GetAssistantAPIKey() string       { return c.AssistantAPIKey }
func (c *Config) GetAssistantBaseURL() string      { return c.AssistantBaseURL }
func (c *Config) GetAssistantModel() string        { return c.AssistantModel }
func (c *Config) IsAssistantEnabled() bool         { return c.AssistantAPIKey != "" }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	emailEnabled := strings.EqualFold(getEnv("EMAIL_ENABLED", "true"), "true")
	smtpHost := getEnv("SMTP_HOST", "")

	cfg := &Config{
		Env:                getEnv("APP_ENV", "development"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		JWTAccessSecret:    getEnv("JWT_ACCESS_SECRET", ""),
		JWTRefreshSecret:   getEnv("JWT_REFRESH_SECRET", ""),
		AccessTokenTTL:     mustDuration(getEnv("JWT_ACCESS_TTL", "15m")),
		RefreshTokenTTL:    mustDuration(getEnv("JWT_REFRESH_TTL", "720h")),
		InviteTokenTTL:     mustDuration(getEnv("INVITE_TOKEN_TTL", "72h")),
		CORSOrigins:        splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		CORSAllowCreds:     strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		AppBaseURL:         getEnv("APP_BASE_URL", "http://localhost:5173"),
		EmailEnabled:       emailEnabled && smtpHost != "",
		SMTPHost:           smtpHost,
		SMTPPort:           mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:       getEnv("SMTP_USERNAME", ""),
		SMTPPassword:       getEnv("SMTP_PASSWORD", ""),
		EmailFromName:      getEnv("EMAIL_FROM_NAME", "Nexus Développement"),
		EmailFromAddress:   getEnv("EMAIL_FROM_ADDRESS", ""),
		AgencyInboxAddress: getEnv("AGENCY_INBOX_ADDRESS", ""),
		AgencyName:         getEnv("AGENCY_NAME", "Nexus Développement"),
		AgencyAddress:      getEnv("AGENCY_ADDRESS", ""),
		AgencyPhone:        getEnv("AGENCY_PHONE", ""),
		AgencySIRET:        getEnv("AGENCY_SIRET", ""),
		AgencyTVANumber:    getEnv("AGENCY_TVA_NUMBER", ""),
		MinIOEndpoint:      getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:     getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:     getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:        strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		BucketQuotePDFs:    getEnv("MINIO_BUCKET_QUOTE_PDFS", "quote-pdfs"),
		BucketInvoicePDFs:  getEnv("MINIO_BUCKET_INVOICE_PDFS", "invoice-pdfs"),
		RedisURL:           getEnv("REDIS_URL", ""),
		RedisTLSInsecure:   strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		QueueName:          getEnv("ASYNQ_QUEUE", "default"),
		WorkerConcurrency:  mustInt(getEnv("WORKER_CONCURRENCY", "10")),
		AssistantAPIKey:    getEnv("ASSISTANT_API_KEY", ""),
		AssistantBaseURL:   getEnv("ASSISTANT_BASE_URL", ""),
		AssistantModel:     getEnv("ASSISTANT_MODEL", ""),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAccessSecret == "" || cfg.JWTRefreshSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required")
	}
	if cfg.EmailEnabled && cfg.EmailFromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when email is enabled")
	}
	if cfg.EmailEnabled && cfg.AgencyInboxAddress == "" {
		return nil, fmt.Errorf("AGENCY_INBOX_ADDRESS is required when email is enabled")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}
