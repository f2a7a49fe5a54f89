package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// DefaultRateLimitPrefix namespaces limiter keys in the backing store.
const DefaultRateLimitPrefix = "techcorp:ratelimit"

// RateLimitConfig configures a RateLimiter.
type RateLimitConfig struct {
	// Store holds the counters. Default: an in-process memory store.
	Store limiter.Store

	// ExcludedPaths are path prefixes that bypass the limiter.
	ExcludedPaths []string

	// OnLimit writes the response for a rejected request.
	// Default: plain-text 429.
	OnLimit http.Handler

	// Metrics receives a count for every rejection.
	Metrics *Metrics

	// Logger reports store failures. Default: slog.Default().
	Logger *slog.Logger

	// Key identifies the client of a request. Default: ClientKey.
	Key func(*http.Request) string
}

// RateLimitOption configures a RateLimiter.
type RateLimitOption func(*RateLimitConfig)

// WithStore sets the counter store.
func WithStore(store limiter.Store) RateLimitOption {
	return func(c *RateLimitConfig) {
		c.Store = store
	}
}

// WithExcludedPaths skips limiting for requests under the given prefixes.
func WithExcludedPaths(paths ...string) RateLimitOption {
	return func(c *RateLimitConfig) {
		c.ExcludedPaths = append(c.ExcludedPaths, paths...)
	}
}

// WithLimitHandler sets the handler that answers rejected requests.
func WithLimitHandler(h http.Handler) RateLimitOption {
	return func(c *RateLimitConfig) {
		c.OnLimit = h
	}
}

// WithRateLimitMetrics counts rejections on m.
func WithRateLimitMetrics(m *Metrics) RateLimitOption {
	return func(c *RateLimitConfig) {
		c.Metrics = m
	}
}

// WithRateLimitLogger sets the logger for store failures.
func WithRateLimitLogger(logger *slog.Logger) RateLimitOption {
	return func(c *RateLimitConfig) {
		c.Logger = logger
	}
}

// WithKeyFunc sets how requests are mapped to a client.
func WithKeyFunc(key func(*http.Request) string) RateLimitOption {
	return func(c *RateLimitConfig) {
		c.Key = key
	}
}

// NewRedisStore returns a limiter store that keeps counters in Redis, so
// several server instances share one budget per client.
func NewRedisStore(client redis.UniversalClient, prefix string) (limiter.Store, error) {
	if prefix == "" {
		prefix = DefaultRateLimitPrefix
	}
	return sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix:          prefix,
		CleanUpInterval: limiter.DefaultCleanUpInterval,
	})
}

// RateLimiter limits requests per client IP over a fixed window.
type RateLimiter struct {
	config  RateLimitConfig
	limiter *limiter.Limiter
}

// NewRateLimiter allows limit requests per period for each client.
func NewRateLimiter(limit int64, period time.Duration, opts ...RateLimitOption) *RateLimiter {
	config := RateLimitConfig{}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Store == nil {
		config.Store = memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          DefaultRateLimitPrefix,
			CleanUpInterval: limiter.DefaultCleanUpInterval,
		})
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Key == nil {
		config.Key = ClientKey
	}
	if config.OnLimit == nil {
		config.OnLimit = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		})
	}

	rate := limiter.Rate{Period: period, Limit: limit}
	return &RateLimiter{
		config:  config,
		limiter: limiter.New(config.Store, rate),
	}
}

// Allow consumes one unit of key's budget and reports whether it was
// available. Store failures let the request through.
func (l *RateLimiter) Allow(ctx context.Context, key string) bool {
	lctx, err := l.limiter.Get(ctx, key)
	if err != nil {
		l.config.Logger.Warn("rate limiter store failed", "key", key, "error", err)
		return true
	}
	if lctx.Reached {
		l.config.Metrics.RecordRateLimited()
		return false
	}
	return true
}

// Handler limits next per client IP and sets the X-RateLimit-* headers.
func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	mw := stdlib.NewMiddleware(l.limiter,
		stdlib.WithKeyGetter(l.config.Key),
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			l.config.Metrics.RecordRateLimited()
			l.config.OnLimit.ServeHTTP(w, r)
		}),
		stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			l.config.Logger.Warn("rate limiter store failed", "path", r.URL.Path, "error", err)
			next.ServeHTTP(w, r)
		}),
	)
	limited := mw.Handler(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.excluded(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}
		limited.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) excluded(path string) bool {
	for _, p := range l.config.ExcludedPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

