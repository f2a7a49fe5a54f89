package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/embedded"
	"go.opentelemetry.io/otel/trace/noop"
)

type recordingProvider struct {
	embedded.TracerProvider

	mu    sync.Mutex
	spans []*recordingSpan
}

func (p *recordingProvider) Tracer(string, ...trace.TracerOption) trace.Tracer {
	return &recordingTracer{provider: p}
}

func (p *recordingProvider) recorded() []*recordingSpan {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*recordingSpan(nil), p.spans...)
}

type recordingTracer struct {
	embedded.Tracer
	provider *recordingProvider
}

func (t *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	s := &recordingSpan{
		name:  name,
		kind:  cfg.SpanKind(),
		attrs: map[attribute.Key]attribute.Value{},
	}
	for _, kv := range cfg.Attributes() {
		s.attrs[kv.Key] = kv.Value
	}
	t.provider.mu.Lock()
	t.provider.spans = append(t.provider.spans, s)
	t.provider.mu.Unlock()
	return trace.ContextWithSpan(ctx, s), s
}

type recordingSpan struct {
	noop.Span

	name   string
	kind   trace.SpanKind
	attrs  map[attribute.Key]attribute.Value
	status codes.Code
	ended  bool
}

func (s *recordingSpan) End(...trace.SpanEndOption) { s.ended = true }
func (s *recordingSpan) SetName(name string)        { s.name = name }
func (s *recordingSpan) SetStatus(code codes.Code, _ string) {
	s.status = code
}
func (s *recordingSpan) SetAttributes(kv ...attribute.KeyValue) {
	for _, a := range kv {
		s.attrs[a.Key] = a.Value
	}
}

// =============================================================================
// OpenTelemetry middleware
// =============================================================================

func TestOpenTelemetry_RecordsServerSpan(t *testing.T) {
	tp := &recordingProvider{}

	var inHandler trace.Span
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(OpenTelemetry(
		WithTracerProvider(tp),
		WithAttributeExtractor(func(*http.Request) []attribute.KeyValue {
			return []attribute.KeyValue{attribute.String("test.attr", "ok")}
		}),
	))
	r.Get("/products", func(w http.ResponseWriter, r *http.Request) {
		inHandler = trace.SpanFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products?category=CRM", nil))

	spans := tp.recorded()
	if len(spans) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(spans))
	}
	span := spans[0]
	if inHandler != trace.Span(span) {
		t.Error("handler context does not carry the server span")
	}
	if span.name != "HTTP GET /products" {
		t.Errorf("name = %q, want %q", span.name, "HTTP GET /products")
	}
	if span.kind != trace.SpanKindServer {
		t.Errorf("kind = %v, want server", span.kind)
	}
	if !span.ended {
		t.Error("span not ended")
	}
	if span.status != codes.Ok {
		t.Errorf("status = %v, want Ok", span.status)
	}
	checks := map[attribute.Key]string{
		"http.method": "GET",
		"http.target": "/products",
		"http.route":  "/products",
		"test.attr":   "ok",
	}
	for key, want := range checks {
		if got := span.attrs[key].AsString(); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
	if got := span.attrs["http.status_code"].AsInt64(); got != http.StatusOK {
		t.Errorf("http.status_code = %d, want 200", got)
	}
	if span.attrs["http.request_id"].AsString() == "" {
		t.Error("http.request_id missing")
	}
}

func TestOpenTelemetry_ServerErrorMarksSpan(t *testing.T) {
	tp := &recordingProvider{}
	h := OpenTelemetry(WithTracerProvider(tp))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/contact", nil))

	spans := tp.recorded()
	if len(spans) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(spans))
	}
	if spans[0].status != codes.Error {
		t.Errorf("status = %v, want Error", spans[0].status)
	}
	if spans[0].name != "HTTP POST unmatched" {
		t.Errorf("name = %q", spans[0].name)
	}
}

func TestOpenTelemetry_FilterSkipsTracing(t *testing.T) {
	tp := &recordingProvider{}
	called := false
	h := OpenTelemetry(
		WithTracerProvider(tp),
		WithRequestFilter(func(r *http.Request) bool { return r.URL.Path != "/metrics" }),
	)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if !called {
		t.Error("filtered request did not reach the handler")
	}
	if n := len(tp.recorded()); n != 0 {
		t.Errorf("recorded %d spans for a filtered request", n)
	}
}

func TestOpenTelemetryConfig(t *testing.T) {
	config := OTelConfig{TracerName: defaultTracerName}
	WithTracerName("custom")(&config)
	if config.TracerName != "custom" {
		t.Errorf("TracerName = %q, want custom", config.TracerName)
	}
	tp := &recordingProvider{}
	WithTracerProvider(tp)(&config)
	if config.TracerProvider != tp {
		t.Error("TracerProvider not applied")
	}
}
