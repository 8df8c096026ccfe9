package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/peaks-baseball/internal/platform/logging"
)

func TestRequireAdminToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	tests := []struct {
		name       string
		configured string
		provided   string
		wantCode   int
	}{
		{name: "valid", configured: "s3cret", provided: "s3cret", wantCode: http.StatusTeapot},
		{name: "wrong", configured: "s3cret", provided: "nope", wantCode: http.StatusUnauthorized},
		{name: "missing", configured: "s3cret", provided: "", wantCode: http.StatusUnauthorized},
		{name: "not configured", configured: " ", provided: "anything", wantCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/games", nil)
			if tt.provided != "" {
				req.Header.Set(adminTokenHeader, tt.provided)
			}
			rec := httptest.NewRecorder()
			RequireAdminToken(tt.configured, next).ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d", tt.wantCode, rec.Code)
			}
		})
	}
}

func TestRequestID_PropagatesToContext(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/games", nil)
	req.Header.Set(requestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	RequestID(next).ServeHTTP(rec, req)

	if seen != "req-42" {
		t.Fatalf("expected request id in context, got %q", seen)
	}
	if got := rec.Header().Get(requestIDHeader); got != "req-42" {
		t.Fatalf("expected request id header, got %q", got)
	}
}

func TestRequestID_ReplacesOversizedHeader(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	long := make([]byte, maxRequestIDLen+1)
	for i := range long {
		long[i] = 'a'
	}
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, string(long))
	rec := httptest.NewRecorder()
	RequestID(next).ServeHTTP(rec, req)

	if got := rec.Header().Get(requestIDHeader); got == string(long) || len(got) != 36 {
		t.Fatalf("expected a fresh uuid, got %q", got)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.9:5123"
	if got := clientIP(req); got != "10.0.0.9" {
		t.Fatalf("expected remote addr host, got %q", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := clientIP(req); got != "203.0.113.7" {
		t.Fatalf("expected first forwarded hop, got %q", got)
	}

	req.Header.Set("Fly-Client-IP", "not-an-ip")
	if got := clientIP(req); got != "203.0.113.7" {
		t.Fatalf("expected invalid header to be skipped, got %q", got)
	}
}
