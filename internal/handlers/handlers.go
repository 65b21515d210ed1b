package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"asteroid-watch/backend-go/internal/config"
	"asteroid-watch/backend-go/internal/metrics"
	"asteroid-watch/backend-go/internal/models"
	"asteroid-watch/backend-go/internal/services"
)

// NeoWs is the upstream the handlers read from.
type NeoWs interface {
	Feed(ctx context.Context, start, end string) ([]byte, error)
	Lookup(ctx context.Context, id string) ([]byte, error)
	Health(ctx context.Context) error
}

type API struct {
	cfg   config.Config
	cache services.Cache
	neows NeoWs
	rec   *metrics.Recorder
	log   zerolog.Logger
	now   func() time.Time
}

func New(cfg config.Config, cache services.Cache, neows NeoWs, rec *metrics.Recorder, log zerolog.Logger) *API {
	return &API{
		cfg:   cfg,
		cache: cache,
		neows: neows,
		rec:   rec,
		log:   log,
		now:   time.Now,
	}
}

// WithClock replaces the wall clock used to pick the feed window.
func (a *API) WithClock(now func() time.Time) *API {
	a.now = now
	return a
}

// logger prefers the request-scoped logger installed by the middleware.
func (a *API) logger(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &a.log
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		code = http.StatusInternalServerError
		b, _ = json.Marshal(models.ErrorResponse{Error: internalErrorMessage})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(b)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, models.ErrorResponse{Error: msg})
}

func timeboxed(r *http.Request, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), d)
}

// cachedFetch serves key from the cache, or calls fetch and stores a
// successful body for ttl. A zero ttl disables caching.
func (a *API) cachedFetch(ctx context.Context, key string, ttl time.Duration, fetch func(context.Context) ([]byte, error)) ([]byte, bool, error) {
	if a.cache != nil && ttl > 0 {
		if b, ok := a.cache.Get(ctx, key); ok {
			return b, true, nil
		}
	}
	b, err := fetch(ctx)
	if err != nil {
		return nil, false, err
	}
	if a.cache != nil && ttl > 0 {
		if err := a.cache.Set(ctx, key, b, ttl); err != nil {
			a.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}
	return b, false, nil
}

func (a *API) nowISO() string {
	return a.now().UTC().Format(time.RFC3339)
}
