package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestMetricsEndpoint(t *testing.T) {
	h := NewMux(&mockService{})
	_ = do(t, h, http.MethodGet, "/health", "", "")
	_ = do(t, h, http.MethodPost, "/api/pii/detect", "text/plain", "x")
	w := do(t, h, http.MethodGet, "/metrics", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		`glinerd_http_requests_total{method="GET",path="/health",status="200"}`,
		`glinerd_http_transport_errors_total{reason="unsupported_media_type"}`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics missing %s", want)
		}
	}
}

func TestRoutePatternOrPath(t *testing.T) {
	r := chi.NewRouter()
	var got string
	r.Get("/api/{x}", func(w http.ResponseWriter, req *http.Request) { got = routePatternOrPath(req) })
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/abc", nil))
	if got != "/api/{x}" {
		t.Fatalf("pattern=%q", got)
	}
	if p := routePatternOrPath(httptest.NewRequest(http.MethodGet, "/random/123", nil)); p != unmatchedPath {
		t.Fatalf("unmatched=%q", p)
	}
	if p := routePatternOrPath(httptest.NewRequest(http.MethodGet, "/health", nil)); p != "/health" {
		t.Fatalf("known=%q", p)
	}
}

func TestIncrementTransportError_DefaultReason(t *testing.T) {
	IncrementTransportError("")
	w := do(t, NewMux(&mockService{}), http.MethodGet, "/metrics", "", "")
	if !strings.Contains(w.Body.String(), `reason="unspecified"`) {
		t.Fatalf("default reason not recorded")
	}
}
