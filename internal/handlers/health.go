package handlers

import (
	"context"
	"net/http"
	"time"

	"asteroid-watch/backend-go/internal/models"
)

func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	deps := []string{}
	missing := []string{}
	depsStatus := map[string]models.DepStatus{}
	if err := a.neows.Health(ctx); err != nil {
		missing = append(missing, "neows_unreachable")
		depsStatus["neows"] = models.DepStatus{Ok: false, Error: err.Error()}
	} else {
		deps = append(deps, "neows")
		depsStatus["neows"] = models.DepStatus{Ok: true}
	}

	resp := models.HealthResponse{
		Ok:          len(missing) == 0,
		TsISO:       a.nowISO(),
		Service:     "backend-go",
		Version:     a.cfg.Version,
		Deps:        deps,
		DepsStatus:  depsStatus,
		DataMissing: missing,
		Env: map[string]bool{
			"NASA_API_KEY": a.cfg.NasaAPIKey != "",
			"NEO_BASE_URL": a.cfg.NeoBaseURL != "",
			"REDIS_URL":    a.cfg.RedisURL != "",
		},
		Features: map[string]bool{
			"feed_cache_enabled":   a.cache != nil && a.cfg.CacheTTLFeed > 0,
			"lookup_cache_enabled": a.cache != nil && a.cfg.CacheTTLLookup > 0,
		},
	}
	writeJSON(w, http.StatusOK, resp)
}
