// Package config loads and validates the VolunteerHub configuration using Viper.
//
// Configuration is layered: built-in defaults < YAML config file < environment
// variables. Environment variables use the VHUB_ prefix (e.g., VHUB_DATABASE_HOST
// overrides database.host in the YAML). This layering allows the same binary to
// run with a config.yaml in local development and with pure environment variables
// in containerized deployments — no recompilation or different binaries needed.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Auth          AuthConfig          `mapstructure:"auth"`
	Profiles      ProfilesConfig      `mapstructure:"profiles"`
	Security      SecurityConfig      `mapstructure:"security"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Telemetry     TelemetryConfig     `mapstructure:"telemetry"`
	Audit         AuditConfig         `mapstructure:"audit"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	BaseURL      string        `mapstructure:"base_url"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// GetAddress returns the host:port listen address for the HTTP server.
func (s *ServerConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port"`
	Name               string `mapstructure:"name"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode"`
	MaxConnections     int    `mapstructure:"max_connections"`
	MinIdleConnections int    `mapstructure:"min_idle_connections"`
}

// GetDSN builds the PostgreSQL connection string from the individual fields.
func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// AuthConfig holds token issuance configuration.
type AuthConfig struct {
	// TokenTTL is how long issued volunteer session tokens remain valid.
	TokenTTL time.Duration `mapstructure:"token_ttl"`
	// AdminEmails lists the email addresses that receive the admin role on login.
	AdminEmails []string `mapstructure:"admin_emails"`
}

// IsAdminEmail reports whether the given (already normalized) email is configured
// as a platform administrator.
func (a *AuthConfig) IsAdminEmail(email string) bool {
	for _, e := range a.AdminEmails {
		if strings.EqualFold(strings.TrimSpace(e), email) {
			return true
		}
	}
	return false
}

// ProfilesConfig holds volunteer-profile capability configuration.
type ProfilesConfig struct {
	// DescriptionMaxLength bounds the free-text profile description.
	DescriptionMaxLength int `mapstructure:"description_max_length"`
	// CVEnabled reports whether CV references are supported by this deployment.
	// When false the profile API declares "cv" in unavailableFields and ignores
	// CV values on update.
	CVEnabled bool `mapstructure:"cv_enabled"`
}

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	CORS         CORSConfig         `mapstructure:"cors"`
	RateLimiting RateLimitingConfig `mapstructure:"rate_limiting"`
	TLS          TLSConfig          `mapstructure:"tls"`
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
}

// RateLimitingConfig holds rate limiting configuration
type RateLimitingConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
	Burst             int  `mapstructure:"burst"`
	// Backend selects the limiter implementation: "memory" (single replica)
	// or "redis" (shared counters across replicas).
	Backend string      `mapstructure:"backend"`
	Redis   RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds connection settings for the Redis-backed rate limiter.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// TLSConfig holds TLS/HTTPS configuration
type TLSConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// TelemetryConfig holds observability configuration
type TelemetryConfig struct {
	Enabled     bool            `mapstructure:"enabled"`
	ServiceName string          `mapstructure:"service_name"`
	Metrics     MetricsConfig   `mapstructure:"metrics"`
	Profiling   ProfilingConfig `mapstructure:"profiling"`
}

// MetricsConfig holds Prometheus metrics configuration
type MetricsConfig struct {
	Enabled        bool `mapstructure:"enabled"`
	PrometheusPort int  `mapstructure:"prometheus_port"`
}

// ProfilingConfig holds profiling configuration
type ProfilingConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// AuditConfig holds audit logging configuration
type AuditConfig struct {
	// Enabled determines if audit logging is active
	Enabled bool `mapstructure:"enabled"`
	// LogReadOperations determines if GET requests should be logged
	LogReadOperations bool `mapstructure:"log_read_operations"`
	// LogFailedRequests determines if failed requests (4xx/5xx) should be logged
	LogFailedRequests bool `mapstructure:"log_failed_requests"`
}

// NotificationsConfig holds settings for outbound notification emails
type NotificationsConfig struct {
	// Enabled globally toggles all outbound notification emails. Requires SMTP to be configured.
	Enabled bool `mapstructure:"enabled"`
	// SMTP holds the outbound mail server settings
	SMTP SMTPConfig `mapstructure:"smtp"`
	// AdminEmail is the address that receives new-signup and reminder notifications.
	AdminEmail string `mapstructure:"admin_email"`
	// PendingReminderAfterDays is how old a pending organization request must be
	// before it appears in the reminder digest (default 3)
	PendingReminderAfterDays int `mapstructure:"pending_reminder_after_days"`
	// PendingReminderCheckIntervalHours determines how often the reminder job runs (default 24)
	PendingReminderCheckIntervalHours int `mapstructure:"pending_reminder_check_interval_hours"`
}

// SMTPConfig holds outbound mail server configuration for notification emails
type SMTPConfig struct {
	// Host is the SMTP server hostname (e.g. smtp.sendgrid.net)
	Host string `mapstructure:"host"`
	// Port is the SMTP server port (587 for STARTTLS, 465 for SMTPS, 25 for plain)
	Port int `mapstructure:"port"`
	// Username for SMTP authentication
	Username string `mapstructure:"username"`
	// Password for SMTP authentication
	Password string `mapstructure:"password"`
	// From is the sender address shown in notification emails
	From string `mapstructure:"from"`
	// UseTLS enables STARTTLS (port 587) or implicit TLS (port 465); false = plain SMTP
	UseTLS bool `mapstructure:"use_tls"`
}

// bindEnvVars explicitly binds environment variables to config keys.
// This is necessary because AutomaticEnv() doesn't work well with nested structs during Unmarshal.
// viper.BindEnv only errors when called with zero keys; since every key here is a non-empty
// hardcoded string, any error indicates a programming bug and is surfaced to the caller.
func bindEnvVars(v *viper.Viper) error {
	keys := []string{
		// Database
		"database.host",
		"database.port",
		"database.name",
		"database.user",
		"database.password",
		"database.ssl_mode",
		"database.max_connections",
		"database.min_idle_connections",

		// Server
		"server.host",
		"server.port",
		"server.base_url",
		"server.read_timeout",
		"server.write_timeout",

		// Auth
		"auth.token_ttl",
		"auth.admin_emails",

		// Profiles
		"profiles.description_max_length",
		"profiles.cv_enabled",

		// Security
		"security.cors.allowed_origins",
		"security.cors.allowed_methods",
		"security.rate_limiting.enabled",
		"security.rate_limiting.requests_per_minute",
		"security.rate_limiting.burst",
		"security.rate_limiting.backend",
		"security.rate_limiting.redis.addr",
		"security.rate_limiting.redis.password",
		"security.rate_limiting.redis.db",
		"security.tls.enabled",
		"security.tls.cert_file",
		"security.tls.key_file",

		// Logging
		"logging.level",
		"logging.format",
		"logging.output",

		// Telemetry
		"telemetry.enabled",
		"telemetry.service_name",
		"telemetry.metrics.enabled",
		"telemetry.metrics.prometheus_port",
		"telemetry.profiling.enabled",
		"telemetry.profiling.port",

		// Audit
		"audit.enabled",
		"audit.log_read_operations",
		"audit.log_failed_requests",

		// Notifications / SMTP
		"notifications.enabled",
		"notifications.smtp.host",
		"notifications.smtp.port",
		"notifications.smtp.username",
		"notifications.smtp.password",
		"notifications.smtp.from",
		"notifications.smtp.use_tls",
		"notifications.admin_email",
		"notifications.pending_reminder_after_days",
		"notifications.pending_reminder_check_interval_hours",
	}
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind env var %q: %w", key, err)
		}
	}
	return nil
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	cfg, _, err := load(configPath)
	return cfg, err
}

// LoadAndWatch loads the configuration and additionally watches the config file
// for changes, invoking onChange with the re-parsed configuration. Only safe-to-
// reload settings (currently logging level/format) should be applied by the
// callback; structural settings such as the listen port require a restart.
func LoadAndWatch(configPath string, onChange func(*Config)) (*Config, error) {
	cfg, v, err := load(configPath)
	if err != nil {
		return nil, err
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		var updated Config
		if err := v.Unmarshal(&updated); err != nil {
			return
		}
		if err := updated.Validate(); err != nil {
			return
		}
		onChange(&updated)
	})
	v.WatchConfig()

	return cfg, nil
}

func load(configPath string) (*Config, *viper.Viper, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Set config file path if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config.yaml in common locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/volunteerhub")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; use defaults and environment variables
	}

	// Enable environment variable support
	v.SetEnvPrefix("VHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind environment variables for nested structures
	if err := bindEnvVars(v); err != nil {
		return nil, nil, err
	}

	// Unmarshal configuration
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Expand environment variables in sensitive fields
	cfg.Database.Password = expandEnv(cfg.Database.Password)
	cfg.Notifications.SMTP.Password = expandEnv(cfg.Notifications.SMTP.Password)
	cfg.Security.RateLimiting.Redis.Password = expandEnv(cfg.Security.RateLimiting.Redis.Password)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, v, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "volunteerhub")
	v.SetDefault("database.user", "volunteerhub")
	v.SetDefault("database.ssl_mode", "require")
	v.SetDefault("database.max_connections", 25)
	v.SetDefault("database.min_idle_connections", 5)

	// Auth defaults
	v.SetDefault("auth.token_ttl", "12h")
	v.SetDefault("auth.admin_emails", []string{})

	// Profile defaults
	v.SetDefault("profiles.description_max_length", 500)
	v.SetDefault("profiles.cv_enabled", true)

	// Security defaults
	v.SetDefault("security.cors.allowed_origins", []string{"*"})
	v.SetDefault("security.cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("security.rate_limiting.enabled", true)
	v.SetDefault("security.rate_limiting.requests_per_minute", 60)
	v.SetDefault("security.rate_limiting.burst", 10)
	v.SetDefault("security.rate_limiting.backend", "memory")
	v.SetDefault("security.rate_limiting.redis.addr", "localhost:6379")
	v.SetDefault("security.rate_limiting.redis.db", 0)
	v.SetDefault("security.tls.enabled", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", true)
	v.SetDefault("telemetry.service_name", "volunteerhub")
	v.SetDefault("telemetry.metrics.enabled", true)
	v.SetDefault("telemetry.metrics.prometheus_port", 9090)
	v.SetDefault("telemetry.profiling.enabled", false)
	v.SetDefault("telemetry.profiling.port", 6060)

	// Audit defaults
	v.SetDefault("audit.enabled", true)
	v.SetDefault("audit.log_read_operations", false)
	v.SetDefault("audit.log_failed_requests", true)

	// Notifications defaults
	v.SetDefault("notifications.enabled", false)
	v.SetDefault("notifications.smtp.port", 587)
	v.SetDefault("notifications.smtp.use_tls", true)
	v.SetDefault("notifications.pending_reminder_after_days", 3)
	v.SetDefault("notifications.pending_reminder_check_interval_hours", 24)
}

// expandEnv expands environment variables in the format ${VAR_NAME}
func expandEnv(s string) string {
	return os.ExpandEnv(s)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate server
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.BaseURL == "" {
		return fmt.Errorf("server.base_url is required")
	}

	// Validate database
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}

	// Validate profile bounds
	if c.Profiles.DescriptionMaxLength < 1 {
		return fmt.Errorf("profiles.description_max_length must be positive, got %d", c.Profiles.DescriptionMaxLength)
	}

	// Validate rate limiter backend
	switch c.Security.RateLimiting.Backend {
	case "", "memory":
	case "redis":
		if c.Security.RateLimiting.Redis.Addr == "" {
			return fmt.Errorf("security.rate_limiting.redis.addr is required when using the redis backend")
		}
	default:
		return fmt.Errorf("invalid rate limiting backend: %s (must be memory or redis)", c.Security.RateLimiting.Backend)
	}

	// Validate TLS
	if c.Security.TLS.Enabled {
		if c.Security.TLS.CertFile == "" || c.Security.TLS.KeyFile == "" {
			return fmt.Errorf("security.tls.cert_file and key_file are required when TLS is enabled")
		}
	}

	// Validate notifications
	if c.Notifications.Enabled {
		if c.Notifications.SMTP.Host == "" {
			return fmt.Errorf("notifications.smtp.host is required when notifications are enabled")
		}
		if c.Notifications.AdminEmail == "" {
			return fmt.Errorf("notifications.admin_email is required when notifications are enabled")
		}
	}

	return nil
}
