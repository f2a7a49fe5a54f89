package server

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/ulule/limiter/v3"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/techcorp/internal/config"
	"github.com/vango-dev/techcorp/internal/errors"
	"github.com/vango-dev/techcorp/pkg/catalog"
	"github.com/vango-dev/techcorp/pkg/contact"
	"github.com/vango-dev/techcorp/pkg/inbox"
	"github.com/vango-dev/techcorp/pkg/middleware"
	"github.com/vango-dev/techcorp/pkg/owner"
	"github.com/vango-dev/techcorp/pkg/render"
	"github.com/vango-dev/techcorp/pkg/session"
)

// Server serves the site.
type Server struct {
	config  *config.Config
	logger  *slog.Logger
	version string

	catalog    *catalog.Catalog
	sink       inbox.Sink
	sinkCloser io.Closer

	registry       *prometheus.Registry
	metrics        *middleware.Metrics
	limitStore     limiter.Store
	limiter        *middleware.RateLimiter
	clientKey      func(*http.Request) string
	tracerProvider trace.TracerProvider

	sessions *session.Manager[*contact.Controller]
	cookies  session.CookieOptions
	renderer *render.Renderer
	upgrader websocket.Upgrader
	router   chi.Router

	httpServer *http.Server

	// now is overridable for tests.
	now func() time.Time
}

// New builds a Server from cfg. A nil cfg uses config.Default().
// Unless WithSink is given, the inbox named by cfg.Inbox is opened and
// closed again by Close.
func New(cfg *config.Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	s := &Server{
		config:  cfg,
		version: "dev",
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	if s.catalog == nil {
		c, err := catalog.Default()
		if err != nil {
			return nil, errors.New("T201").Wrap(err)
		}
		s.catalog = c
	}

	if s.sink == nil {
		sink, closer, err := inbox.Open(context.Background(), InboxOptions(cfg, s.logger))
		if err != nil {
			return nil, errors.New("T301").
				WithSuggestion("Check the inbox section of " + config.FileName).
				Wrap(err)
		}
		s.sink, s.sinkCloser = sink, closer
	}

	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
		s.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	if cfg.Metrics.Enabled {
		s.metrics = middleware.NewMetrics(
			middleware.WithRegistry(s.registry),
			middleware.WithNamespace(cfg.Metrics.Namespace),
		)
	}

	s.clientKey = middleware.ClientKeyFunc(middleware.NewProxyMatcher(cfg.Server.TrustedProxies, s.logger))

	if cfg.Contact.RateLimit > 0 {
		s.limiter = middleware.NewRateLimiter(int64(cfg.Contact.RateLimit), time.Minute,
			middleware.WithStore(s.limitStore),
			middleware.WithKeyFunc(s.clientKey),
			middleware.WithRateLimitMetrics(s.metrics),
			middleware.WithRateLimitLogger(s.logger),
			middleware.WithLimitHandler(http.HandlerFunc(s.tooManyRequests)),
		)
	}

	s.sessions = session.NewManager(context.Background(), s.newController, session.Config{
		IdleTimeout:      cfg.Session.IdleTimeout,
		CleanupInterval:  cfg.Session.CleanupInterval,
		MaxSessions:      cfg.Session.MaxSessions,
		MaxSessionsPerIP: cfg.Session.MaxSessionsPerIP,
	}, s.logger)
	s.sessions.OnEvict(func(reason string) {
		s.metrics.RecordEviction(reason)
		s.metrics.SetActiveSessions(s.sessions.Len())
	})
	s.cookies = session.CookieOptions{Secure: cfg.Server.SecureCookies}

	s.renderer = render.NewRenderer(render.RendererConfig{Pretty: cfg.Server.Dev})
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     SameOriginCheck,
	}
	s.router = s.routes()
	return s, nil
}

// InboxOptions maps the inbox section of cfg onto inbox.Options.
func InboxOptions(cfg *config.Config, logger *slog.Logger) inbox.Options {
	in := cfg.Inbox
	return inbox.Options{
		Driver:        in.Driver,
		Dir:           in.Dir,
		RedisAddr:     in.RedisAddr,
		RedisPassword: in.RedisPassword,
		RedisDB:       in.RedisDB,
		RedisPrefix:   in.RedisPrefix,
		RedisTTL:      in.RedisTTL,
		S3Bucket:      in.S3Bucket,
		S3Prefix:      in.S3Prefix,
		S3Region:      in.S3Region,
		S3Endpoint:    in.S3Endpoint,
		S3PathStyle:   in.S3PathStyle,
		Retries:       uint64(in.Retries),
		Backoff:       in.Backoff,
		Tracing:       cfg.Tracing.Enabled,
		Logger:        logger,
	}
}

// newController builds the contact form state of one visitor.
func (s *Server) newController(o *owner.Owner) *contact.Controller {
	return contact.New(o,
		contact.WithSink(s.sink),
		contact.WithLogger(s.logger),
		contact.WithSubmitDelay(s.config.Contact.SubmitDelay),
		contact.WithResetDelay(s.config.Contact.ResetDelay),
		contact.WithPhaseHook(func(from, to contact.Phase) {
			s.metrics.RecordTransition(from.String(), to.String())
		}),
	)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Router returns the chi router, e.g. to list its routes.
func (s *Server) Router() chi.Router {
	return s.router
}

// Sessions returns the visitor manager.
func (s *Server) Sessions() *session.Manager[*contact.Controller] {
	return s.sessions
}

// Run listens on the configured address and serves until ctx is done,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Server.Addr())
	if err != nil {
		return errors.New("T401").
			WithSuggestion("Choose another port with --port or TECHCORP_SERVER_PORT").
			Wrap(err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       s.config.Server.ReadTimeout,
		WriteTimeout:      s.config.Server.WriteTimeout,
		IdleTimeout:       2 * time.Minute,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String(), "config", s.config.String())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if !stderrors.Is(err, http.ErrServerClosed) {
			return errors.New("T401").Wrap(err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownGrace)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

// Shutdown stops accepting requests, waits for in-flight ones and then
// releases every visitor and the inbox.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.httpServer != nil {
		if err = s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
		}
	}
	if cerr := s.Close(); err == nil {
		err = cerr
	}
	s.logger.Info("server shutdown complete")
	return err
}

// Close disposes every visitor, which cancels pending submissions, and
// closes the inbox opened by New.
func (s *Server) Close() error {
	s.sessions.Close()
	s.metrics.SetActiveSessions(0)
	if s.sinkCloser != nil {
		closer := s.sinkCloser
		s.sinkCloser = nil
		return closer.Close()
	}
	return nil
}
