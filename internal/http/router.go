package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"asteroid-watch/backend-go/internal/config"
	"asteroid-watch/backend-go/internal/handlers"
	"asteroid-watch/backend-go/internal/metrics"
)

func NewRouter(cfg config.Config, api *handlers.API, gatherer prometheus.Gatherer, rec *metrics.Recorder, log zerolog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/asteroids", api.Asteroids)
	mux.HandleFunc("GET /api/asteroids/{id}", api.Asteroid)
	mux.HandleFunc("GET /api/health", api.Health)
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	h := http.Handler(mux)
	h = withRecovery(h)
	h = withLogging(rec)(h)
	h = withRateLimit(cfg.RateLimitPerMin)(h)
	h = withRequestID(log)(h)
	h = withCORS(h)
	return h
}
