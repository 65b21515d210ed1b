// Package neo turns NeoWs feed and lookup payloads into flat asteroid
// records for the front-end.
package neo

import (
	"fmt"

	"github.com/rs/zerolog"

	"asteroid-watch/backend-go/internal/models"
)

const notAvailable = "N/A"

type SkipReason string

const (
	SkipNone            SkipReason = ""
	SkipNoCloseApproach SkipReason = "no_close_approach"
	SkipMissingDiameter SkipReason = "missing_diameter"
	SkipMalformed       SkipReason = "malformed_record"
)

// Result is the outcome of normalizing one raw record. Exactly one of
// Asteroid and Skip is set.
type Result struct {
	Asteroid *models.Asteroid
	Skip     SkipReason
	ID       string
	Err      error
}

// Summary counts what happened to the records of one payload.
type Summary struct {
	Kind    PayloadKind
	Total   int
	Emitted int
	Skipped map[SkipReason]int
}

// Transform classifies payload and normalizes every record it carries.
// The returned slice is never nil.
func Transform(payload any, log zerolog.Logger) ([]models.Asteroid, Summary) {
	p := Classify(payload)
	sum := Summary{Kind: p.Kind, Total: len(p.Records), Skipped: map[SkipReason]int{}}
	out := make([]models.Asteroid, 0, len(p.Records))

	if p.Kind == Unrecognized {
		log.Warn().Str("detail", p.Detail).Msg("unrecognized NeoWs payload format")
		return out, sum
	}

	for _, raw := range p.Records {
		res := NormalizeSafe(raw)
		if res.Skip != SkipNone {
			sum.Skipped[res.Skip]++
			lvl := zerolog.DebugLevel
			if res.Skip == SkipMalformed {
				lvl = zerolog.WarnLevel
			}
			log.WithLevel(lvl).Err(res.Err).Str("id", res.ID).Str("reason", string(res.Skip)).Msg("skipping asteroid record")
			continue
		}
		out = append(out, *res.Asteroid)
	}
	sum.Emitted = len(out)
	return out, sum
}

// NormalizeSafe is Normalize with any panic turned into a malformed skip.
func NormalizeSafe(raw any) Result {
	return guard(raw, Normalize)
}

func guard(raw any, normalize func(any) Result) (res Result) {
	defer func() {
		if rec := recover(); rec != nil {
			res = Result{Skip: SkipMalformed, ID: recordID(raw), Err: fmt.Errorf("panic: %v", rec)}
		}
	}()
	return normalize(raw)
}

// Normalize maps a single raw asteroid onto models.Asteroid. Records with
// no close-approach event or without numeric diameter bounds are skipped.
func Normalize(raw any) Result {
	ast, ok := raw.(map[string]any)
	if !ok {
		return Result{Skip: SkipMalformed, Err: fmt.Errorf("record is %T, not an object", raw)}
	}
	id := recordID(raw)

	approaches, _ := ast["close_approach_data"].([]any)
	if len(approaches) == 0 || approaches[0] == nil {
		return Result{Skip: SkipNoCloseApproach, ID: id}
	}
	approach, ok := approaches[0].(map[string]any)
	if !ok {
		return Result{Skip: SkipMalformed, ID: id, Err: fmt.Errorf("close approach is %T", approaches[0])}
	}
	if len(approach) == 0 {
		return Result{Skip: SkipNoCloseApproach, ID: id}
	}

	km := object(object(ast, "estimated_diameter"), "kilometers")
	dMin := CoerceFloat(km["estimated_diameter_min"], nil)
	dMax := CoerceFloat(km["estimated_diameter_max"], nil)
	if dMin == nil || dMax == nil {
		return Result{Skip: SkipMissingDiameter, ID: id}
	}

	orbit := object(ast, "orbital_data")
	class := object(orbit, "orbit_class")
	name := text(ast, "name", "Unknown Asteroid")

	a := models.Asteroid{
		ID:                  text(ast, "id", notAvailable),
		Name:                name,
		Designation:         text(ast, "designation", text(ast, "name", notAvailable)),
		EstimatedDiameterKm: models.DiameterRange{Min: *dMin, Max: *dMax},
		CloseApproachData: []models.CloseApproach{{
			RelativeVelocityKph:   CoerceFloat(object(approach, "relative_velocity")["kilometers_per_hour"], nil),
			MissDistanceKm:        CoerceFloat(object(approach, "miss_distance")["kilometers"], nil),
			OrbitingBody:          text(approach, "orbiting_body", notAvailable),
			CloseApproachDateFull: text(approach, "close_approach_date_full", notAvailable),
		}},
		IsPotentiallyHazardous:     flag(ast, "is_potentially_hazardous_asteroid"),
		AbsoluteMagnitudeH:         CoerceFloat(ast["absolute_magnitude_h"], nil),
		NasaJplURL:                 text(ast, "nasa_jpl_url", "#"),
		IsSentryObject:             flag(ast, "is_sentry_object"),
		FirstObservationDate:       text(orbit, "first_observation_date", notAvailable),
		LastObservationDate:        text(orbit, "last_observation_date", notAvailable),
		DataArcInDays:              CoerceFloatOr(orbit["data_arc_in_days"], 0),
		ObservationsUsed:           CoerceInt(orbit["observations_used"], 0),
		OrbitUncertainty:           text(orbit, "orbit_uncertainty", notAvailable),
		MinimumOrbitIntersectionAU: CoerceFloat(orbit["minimum_orbit_intersection"], nil),
		OrbitalPeriodDays:          CoerceFloat(orbit["orbital_period"], nil),
		Eccentricity:               CoerceFloat(orbit["eccentricity"], nil),
		SemiMajorAxisAU:            CoerceFloat(orbit["semi_major_axis"], nil),
		InclinationDeg:             CoerceFloat(orbit["inclination"], nil),
		PerihelionDistanceAU:       CoerceFloat(orbit["perihelion_distance"], nil),
		AphelionDistanceAU:         CoerceFloat(orbit["aphelion_distance"], nil),
		OrbitClassType:             text(class, "orbit_class_type", notAvailable),
		OrbitClassDescription:      text(class, "orbit_class_description", notAvailable),
	}
	return Result{Asteroid: &a, ID: id}
}

func recordID(raw any) string {
	if m, ok := raw.(map[string]any); ok {
		return text(m, "id", notAvailable)
	}
	return notAvailable
}
