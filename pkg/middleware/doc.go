// Package middleware provides the HTTP middleware of the TechCorp site.
//
// This package includes:
//   - Prometheus metrics for requests, contact form phases and sessions
//   - OpenTelemetry server spans
//   - structured request logging with slog
//   - per-client rate limiting backed by ulule/limiter, keyed by the peer
//     address or the forwarded client behind a trusted proxy
//
// Every constructor returns a plain func(http.Handler) http.Handler so the
// pieces compose with chi:
//
//	m := middleware.NewMetrics(middleware.WithNamespace("techcorp"))
//	r := chi.NewRouter()
//	r.Use(chimw.RequestID)
//	r.Use(middleware.RequestLogger(logger))
//	r.Use(m.Handler)
//	r.Use(middleware.OpenTelemetry())
//
// # Prometheus Metrics
//
//   - techcorp_http_requests_total: requests by route, method and status
//   - techcorp_http_request_duration_seconds: latency histogram by route
//   - techcorp_contact_transitions_total: contact form phase changes
//   - techcorp_contact_submissions_total: submit attempts by outcome
//   - techcorp_active_sessions: live visitor sessions
//   - techcorp_session_evictions_total: sessions dropped by reason
//   - techcorp_live_connections: open contact form websockets
//   - techcorp_websocket_errors_total: websocket errors by type
//   - techcorp_rate_limited_total: requests rejected by the rate limiter
//
// A nil *Metrics is valid and records nothing, so callers do not need to
// branch on whether metrics are enabled.
package middleware
