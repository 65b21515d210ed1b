package handlers

import (
	"context"
	"errors"
	"net/http"
	"regexp"

	"github.com/rs/zerolog"

	"asteroid-watch/backend-go/internal/neo"
	"asteroid-watch/backend-go/internal/services"
)

var asteroidIDPattern = regexp.MustCompile(`^[0-9]{1,12}$`)

// Asteroids serves the normalized NeoWs feed for the next seven days.
func (a *API) Asteroids(w http.ResponseWriter, r *http.Request) {
	log := a.logger(r)
	start, end := neo.DateRange(a.now())

	ctx, cancel := timeboxed(r, a.cfg.RequestTimeout)
	defer cancel()

	body, cached, err := a.cachedFetch(ctx, services.FeedCacheKey(start, end), a.cfg.CacheTTLFeed,
		func(ctx context.Context) ([]byte, error) {
			log.Info().Str("start_date", start).Str("end_date", end).Msg("requesting detailed NeoWs feed")
			return a.neows.Feed(ctx, start, end)
		})
	if err != nil {
		writeUpstreamError(w, log, err)
		return
	}
	a.respondNormalized(w, log, body, cached)
}

// Asteroid serves a single normalized asteroid by its NeoWs id.
func (a *API) Asteroid(w http.ResponseWriter, r *http.Request) {
	log := a.logger(r)
	id := r.PathValue("id")
	if !asteroidIDPattern.MatchString(id) {
		writeError(w, http.StatusBadRequest, "asteroid id must be numeric")
		return
	}

	ctx, cancel := timeboxed(r, a.cfg.RequestTimeout)
	defer cancel()

	body, cached, err := a.cachedFetch(ctx, services.LookupCacheKey(id), a.cfg.CacheTTLLookup,
		func(ctx context.Context) ([]byte, error) {
			return a.neows.Lookup(ctx, id)
		})
	if err != nil {
		var upErr *services.UpstreamError
		if errors.As(err, &upErr) && upErr.Status == http.StatusNotFound {
			writeError(w, http.StatusNotFound, "asteroid not found")
			return
		}
		writeUpstreamError(w, log, err)
		return
	}
	a.respondNormalized(w, log, body, cached)
}

func (a *API) respondNormalized(w http.ResponseWriter, log *zerolog.Logger, body []byte, cached bool) {
	payload, err := neo.Decode(body)
	if err != nil {
		writeInternalError(w, log, err)
		return
	}

	out, sum := neo.Transform(payload, *log)
	for reason, n := range sum.Skipped {
		a.rec.RecordSkipped(string(reason), n)
	}
	a.rec.RecordEmitted(sum.Emitted)

	lvl := zerolog.InfoLevel
	if len(out) == 0 {
		lvl = zerolog.WarnLevel
	}
	log.WithLevel(lvl).Str("shape", sum.Kind.String()).
		Int("records", sum.Total).
		Int("emitted", sum.Emitted).
		Bool("cache_hit", cached).
		Msg("normalized NeoWs payload")

	writeJSON(w, http.StatusOK, out)
}
