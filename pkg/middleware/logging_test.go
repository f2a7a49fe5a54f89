package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{"ok", http.StatusOK, "INFO"},
		{"not found", http.StatusNotFound, "WARN"},
		{"server error", http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			h := chimw.RequestID(RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("hello"))
			})))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/videos", nil))

			var entry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("log line is not JSON: %v\n%s", err, buf.String())
			}
			if entry["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %s", entry["level"], tt.wantLevel)
			}
			if entry["msg"] != "request" {
				t.Errorf("msg = %v, want request", entry["msg"])
			}
			if entry["method"] != "GET" || entry["path"] != "/videos" {
				t.Errorf("method/path = %v %v", entry["method"], entry["path"])
			}
			if got, _ := entry["status"].(float64); int(got) != tt.status {
				t.Errorf("status = %v, want %d", entry["status"], tt.status)
			}
			if got, _ := entry["bytes"].(float64); got != 5 {
				t.Errorf("bytes = %v, want 5", entry["bytes"])
			}
			if id, _ := entry["request_id"].(string); id == "" {
				t.Error("request_id missing")
			}
			if _, ok := entry["duration"]; !ok {
				t.Error("duration missing")
			}
		})
	}
}

func TestRequestLogger_ImplicitOK(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if got, _ := entry["status"].(float64); got != http.StatusOK {
		t.Errorf("status = %v, want 200", entry["status"])
	}
	if _, ok := entry["request_id"]; ok {
		t.Error("request_id logged without RequestID middleware")
	}
}
