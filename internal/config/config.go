package config

import (
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"
)

const (
	// FileName is the default configuration file name.
	FileName = "techcorp.json"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "TECHCORP_"
)

// Config is the complete site configuration.
type Config struct {
	Server  ServerConfig  `koanf:"server" json:"server"`
	Log     LogConfig     `koanf:"log" json:"log"`
	Contact ContactConfig `koanf:"contact" json:"contact"`
	Session SessionConfig `koanf:"session" json:"session"`
	Inbox   InboxConfig   `koanf:"inbox" json:"inbox"`
	Metrics MetricsConfig `koanf:"metrics" json:"metrics"`
	Tracing TracingConfig `koanf:"tracing" json:"tracing"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host          string        `koanf:"host" json:"host" validate:"required"`
	Port          int           `koanf:"port" json:"port" validate:"min=1,max=65535"`
	ReadTimeout   time.Duration `koanf:"read_timeout" json:"read_timeout" validate:"gt=0"`
	WriteTimeout  time.Duration `koanf:"write_timeout" json:"write_timeout" validate:"gt=0"`
	ShutdownGrace time.Duration `koanf:"shutdown_grace" json:"shutdown_grace" validate:"gt=0"`

	// Dev enables text logs and disables response caching of static files.
	Dev bool `koanf:"dev" json:"dev"`

	// SecureCookies marks the visitor cookie Secure.
	SecureCookies bool `koanf:"secure_cookies" json:"secure_cookies"`

	// TrustedProxies lists the IPs or CIDRs of reverse proxies whose
	// Forwarded and X-Forwarded-For headers name the client. Headers from
	// any other peer are ignored.
	TrustedProxies []string `koanf:"trusted_proxies" json:"trusted_proxies" validate:"dive,ip|cidr"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `koanf:"level" json:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" json:"format" validate:"oneof=text json"`
}

// ContactConfig tunes the contact form.
type ContactConfig struct {
	SubmitDelay time.Duration `koanf:"submit_delay" json:"submit_delay" validate:"gte=0"`
	ResetDelay  time.Duration `koanf:"reset_delay" json:"reset_delay" validate:"gt=0"`

	// RateLimit is the number of submissions allowed per client IP per
	// minute. Zero disables limiting.
	RateLimit int `koanf:"rate_limit" json:"rate_limit" validate:"gte=0"`
}

// SessionConfig bounds visitor sessions.
type SessionConfig struct {
	IdleTimeout      time.Duration `koanf:"idle_timeout" json:"idle_timeout" validate:"gt=0"`
	CleanupInterval  time.Duration `koanf:"cleanup_interval" json:"cleanup_interval" validate:"gt=0"`
	MaxSessions      int           `koanf:"max_sessions" json:"max_sessions" validate:"gte=0"`
	MaxSessionsPerIP int           `koanf:"max_sessions_per_ip" json:"max_sessions_per_ip" validate:"gte=0"`
}

// InboxConfig selects where submitted inquiries are delivered.
type InboxConfig struct {
	Driver string `koanf:"driver" json:"driver" validate:"oneof=log memory disk redis s3"`

	Dir string `koanf:"dir" json:"dir" validate:"required_if=Driver disk"`

	RedisAddr     string        `koanf:"redis_addr" json:"redis_addr" validate:"required_if=Driver redis"`
	RedisPassword string        `koanf:"redis_password" json:"-"`
	RedisDB       int           `koanf:"redis_db" json:"redis_db" validate:"gte=0"`
	RedisPrefix   string        `koanf:"redis_prefix" json:"redis_prefix"`
	RedisTTL      time.Duration `koanf:"redis_ttl" json:"redis_ttl" validate:"gte=0"`

	S3Bucket    string `koanf:"s3_bucket" json:"s3_bucket" validate:"required_if=Driver s3"`
	S3Prefix    string `koanf:"s3_prefix" json:"s3_prefix"`
	S3Region    string `koanf:"s3_region" json:"s3_region"`
	S3Endpoint  string `koanf:"s3_endpoint" json:"s3_endpoint" validate:"omitempty,url"`
	S3PathStyle bool   `koanf:"s3_path_style" json:"s3_path_style"`

	Retries int           `koanf:"retries" json:"retries" validate:"gte=0,lte=10"`
	Backoff time.Duration `koanf:"backoff" json:"backoff" validate:"gte=0"`
}

// MetricsConfig configures Prometheus instrumentation.
type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled" json:"enabled"`
	Namespace string `koanf:"namespace" json:"namespace" validate:"required_if=Enabled true"`
	Path      string `koanf:"path" json:"path" validate:"startswith=/"`
}

// TracingConfig configures OpenTelemetry spans.
type TracingConfig struct {
	Enabled    bool   `koanf:"enabled" json:"enabled"`
	TracerName string `koanf:"tracer_name" json:"tracer_name"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:          "localhost",
			Port:          8080,
			ReadTimeout:   15 * time.Second,
			WriteTimeout:  15 * time.Second,
			ShutdownGrace: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Contact: ContactConfig{
			SubmitDelay: 1500 * time.Millisecond,
			ResetDelay:  3 * time.Second,
			RateLimit:   5,
		},
		Session: SessionConfig{
			IdleTimeout:      30 * time.Minute,
			CleanupInterval:  time.Minute,
			MaxSessions:      10000,
			MaxSessionsPerIP: 100,
		},
		Inbox: InboxConfig{
			Driver:      "log",
			Dir:         "data/inquiries",
			RedisAddr:   "localhost:6379",
			RedisPrefix: "techcorp",
			S3Prefix:    "inquiries",
			S3Region:    "us-east-1",
			Retries:     3,
			Backoff:     200 * time.Millisecond,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "techcorp",
			Path:      "/metrics",
		},
		Tracing: TracingConfig{
			TracerName: "github.com/vango-dev/techcorp",
		},
	}
}

// ParseLevel maps a level name to a slog.Level. Unknown names map to Info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the site logger: JSON in production, text in dev.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(l.Level)}
	var h slog.Handler
	if l.Format == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

// String summarises the configuration for startup logs.
func (c *Config) String() string {
	return fmt.Sprintf("addr=%s inbox=%s metrics=%t tracing=%t",
		c.Server.Addr(), c.Inbox.Driver, c.Metrics.Enabled, c.Tracing.Enabled)
}
