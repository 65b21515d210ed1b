package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"asteroid-watch/backend-go/internal/config"
	"asteroid-watch/backend-go/internal/handlers"
	"asteroid-watch/backend-go/internal/metrics"
	"asteroid-watch/backend-go/internal/services"
)

func newTestRouter(t *testing.T, upstream http.HandlerFunc, perMin int) http.Handler {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	cfg := config.Config{
		NasaAPIKey:       "k",
		NeoBaseURL:       srv.URL,
		RequestTimeout:   time.Second,
		RateLimitPerMin:  perMin,
		CircuitFailLimit: 5,
	}
	reg := prometheus.NewRegistry()
	rec := metrics.New(reg)
	api := handlers.New(cfg, nil, services.NewNeoWsClient(cfg, rec), rec, zerolog.Nop())
	return NewRouter(cfg, api, reg, rec, zerolog.Nop())
}

func emptyFeed(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(`{"near_earth_objects":{}}`))
}

func TestCORSPreflight(t *testing.T) {
	h := newTestRouter(t, emptyFeed, 0)
	req := httptest.NewRequest(http.MethodOptions, "/api/asteroids", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected wildcard origin")
	}
}

func TestAsteroidsRouteAndRequestID(t *testing.T) {
	h := newTestRouter(t, emptyFeed, 0)
	req := httptest.NewRequest(http.MethodGet, "/api/asteroids", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Fatalf("expected empty list, got %s", rr.Body.String())
	}
	if rr.Header().Get("X-Request-ID") != "abc-123" {
		t.Fatalf("expected request id to be echoed")
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected CORS header on GET")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestRouter(t, emptyFeed, 0)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/asteroids", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
}

func TestRateLimit(t *testing.T) {
	h := newTestRouter(t, emptyFeed, 2)
	codes := []int{}
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/asteroids", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}
}

func TestRecoveryReturnsGenericError(t *testing.T) {
	h := withRequestID(zerolog.Nop())(withRecovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("secret internal detail")
	})))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "secret") {
		t.Fatalf("panic detail leaked: %s", rr.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestRouter(t, emptyFeed, 0)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/asteroids", nil))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `asteroidwatch_http_requests_total{code="200",route="GET /api/asteroids"} 1`) {
		t.Fatalf("request counter missing from metrics:\n%s", body)
	}
	if !strings.Contains(body, `asteroidwatch_upstream_requests_total{endpoint="feed",outcome="ok"} 1`) {
		t.Fatalf("upstream counter missing from metrics:\n%s", body)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", " 1.2.3.4 , 5.6.7.8")
	if got := clientIP(req); got != "1.2.3.4" {
		t.Fatalf("unexpected ip %q", got)
	}
}
