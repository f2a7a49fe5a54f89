package server

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/ulule/limiter/v3"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/techcorp/pkg/catalog"
	"github.com/vango-dev/techcorp/pkg/inbox"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithCatalog replaces the embedded content catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Server) { s.catalog = c }
}

// WithSink delivers inquiries to sink instead of opening the configured
// inbox. The caller keeps ownership of sink.
func WithSink(sink inbox.Sink) Option {
	return func(s *Server) { s.sink = sink }
}

// WithRegistry registers metrics on reg and serves them from it.
// Default: a fresh registry with Go and process collectors.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

// WithRateLimitStore shares submission counters through store, e.g. one
// built by middleware.NewRedisStore.
func WithRateLimitStore(store limiter.Store) Option {
	return func(s *Server) { s.limitStore = store }
}

// WithTracerProvider sets the provider used when tracing is enabled.
// Default: the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Server) { s.tracerProvider = tp }
}

// WithVersion sets the version reported by /api/health.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}
