package server

import (
	"bytes"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/techcorp/app/routes"
	"github.com/vango-dev/techcorp/app/routes/api"
	"github.com/vango-dev/techcorp/internal/errors"
	"github.com/vango-dev/techcorp/pkg/middleware"
)

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(s.logger))
	r.Use(s.recoverer)
	r.Use(s.metrics.Handler)
	if s.config.Tracing.Enabled {
		otelOpts := []middleware.OTelOption{
			middleware.WithRequestFilter(func(r *http.Request) bool {
				return !strings.HasPrefix(r.URL.Path, "/static/") && r.URL.Path != s.config.Metrics.Path
			}),
		}
		if s.config.Tracing.TracerName != "" {
			otelOpts = append(otelOpts, middleware.WithTracerName(s.config.Tracing.TracerName))
		}
		if s.tracerProvider != nil {
			otelOpts = append(otelOpts, middleware.WithTracerProvider(s.tracerProvider))
		}
		r.Use(middleware.OpenTelemetry(otelOpts...))
	}
	r.Use(chimw.RedirectSlashes)

	r.Get("/", s.page(routes.Home))
	r.Get("/products", s.page(routes.Products))
	r.Get("/products/{id}", s.productDetail)
	r.Get("/downloads", s.page(routes.Downloads))
	r.Get("/support", s.page(routes.Support))
	r.Get("/videos", s.page(routes.Videos))

	r.Route("/contact", func(r chi.Router) {
		r.Get("/", s.contactPage)
		r.With(s.limit).Post("/", s.contactSubmit)
		r.With(s.limit).Post("/retry", s.contactRetry)
		r.Post("/dismiss", s.contactDismiss)
		r.Get("/live", s.contactLive)
	})

	r.Mount("/api", api.New(s.catalog, s.version).Routes())

	if s.config.Metrics.Enabled {
		r.Method(http.MethodGet, s.config.Metrics.Path, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
			ErrorLog: slogErrorLogger{s.logger},
		}))
	}

	r.Method(http.MethodGet, "/static/*", http.HandlerFunc(s.serveStatic))
	r.Method(http.MethodHead, "/static/*", http.HandlerFunc(s.serveStatic))

	r.NotFound(s.notFound)
	return r
}

// limit applies the contact submission rate limit when one is configured.
func (s *Server) limit(next http.Handler) http.Handler {
	if s.limiter == nil {
		return next
	}
	return s.limiter.Handler(next)
}

// page adapts a route function into a handler.
func (s *Server) page(fn func(routes.Ctx) routes.Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusOK, fn(s.pageCtx(r)))
	}
}

func (s *Server) productDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.notFound(w, r)
		return
	}
	page, ok := routes.ProductDetail(s.pageCtx(r), id)
	if !ok {
		s.notFound(w, r)
		return
	}
	s.render(w, r, http.StatusOK, page)
}

func (s *Server) pageCtx(r *http.Request) routes.Ctx {
	return routes.Ctx{
		Path:    r.URL.Path,
		Query:   r.URL.Query(),
		Catalog: s.catalog,
		Now:     s.now(),
	}
}

// render writes page inside the site layout. The document is buffered so
// a render failure can still become a 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page routes.Page) {
	var buf bytes.Buffer
	if err := s.renderer.RenderPage(&buf, routes.Layout(s.pageCtx(r), page)); err != nil {
		s.logger.Error("render failed",
			"path", r.URL.Path,
			"request_id", chimw.GetReqID(r.Context()),
			"error", errors.New("T402").Wrap(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, routes.NotFound(s.pageCtx(r)))
}

func (s *Server) tooManyRequests(w http.ResponseWriter, r *http.Request) {
	s.logger.Warn("rate limited",
		"path", r.URL.Path,
		"client", s.clientKey(r),
		"error", errors.New("T403"))
	s.render(w, r, http.StatusTooManyRequests, routes.TooManyRequests(s.pageCtx(r)))
}

// recoverer turns a handler panic into the 500 page.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}
			s.logger.Error("panic recovered",
				"path", r.URL.Path,
				"request_id", chimw.GetReqID(r.Context()),
				"panic", rvr,
				"stack", string(debug.Stack()))
			if r.Header.Get("Connection") != "Upgrade" {
				s.render(w, r, http.StatusInternalServerError, routes.ServerError(s.pageCtx(r)))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// slogErrorLogger adapts the server logger to promhttp.Logger.
type slogErrorLogger struct {
	logger interface{ Error(msg string, args ...any) }
}

func (l slogErrorLogger) Println(v ...any) {
	l.logger.Error("metrics handler error", "detail", strings.TrimSpace(fmt.Sprintln(v...)))
}
