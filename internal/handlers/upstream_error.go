package handlers

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"

	"asteroid-watch/backend-go/internal/services"
)

const (
	upstreamTimeoutMessage = "timeout connecting to the NASA NeoWs API"
	upstreamErrorMessage   = "error connecting to the NASA NeoWs API"
	internalErrorMessage   = "unexpected server error"
)

// writeUpstreamError maps a NeoWs failure to 504 for timeouts and 502 for
// everything else.
func writeUpstreamError(w http.ResponseWriter, log *zerolog.Logger, err error) {
	if services.IsTimeout(err) {
		log.Error().Err(err).Msg("NeoWs request timed out")
		writeError(w, http.StatusGatewayTimeout, upstreamTimeoutMessage)
		return
	}

	ev := log.Error().Err(err)
	var upErr *services.UpstreamError
	if errors.As(err, &upErr) {
		ev = ev.Int("upstream_status", upErr.Status).Str("upstream_body", upErr.Body)
	}
	ev.Msg("NeoWs request failed")
	writeError(w, http.StatusBadGateway, upstreamErrorMessage+": "+err.Error())
}

// writeInternalError never exposes err to the client.
func writeInternalError(w http.ResponseWriter, log *zerolog.Logger, err error) {
	log.Error().Err(err).Str("stack", string(debug.Stack())).Msg("unexpected server error")
	writeError(w, http.StatusInternalServerError, internalErrorMessage)
}
