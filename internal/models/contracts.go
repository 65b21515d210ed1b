package models

// Asteroid is the flattened near-Earth-object record served to the front-end.
// Nullable numerics are pointers so absent upstream values encode as null.
type Asteroid struct {
	ID                         string          `json:"id"`
	Name                       string          `json:"name"`
	Designation                string          `json:"designation"`
	EstimatedDiameterKm        DiameterRange   `json:"estimated_diameter_km"`
	CloseApproachData          []CloseApproach `json:"close_approach_data"`
	IsPotentiallyHazardous     bool            `json:"is_potentially_hazardous_asteroid"`
	AbsoluteMagnitudeH         *float64        `json:"absolute_magnitude_h"`
	NasaJplURL                 string          `json:"nasa_jpl_url"`
	IsSentryObject             bool            `json:"is_sentry_object"`
	FirstObservationDate       string          `json:"first_observation_date"`
	LastObservationDate        string          `json:"last_observation_date"`
	DataArcInDays              float64         `json:"data_arc_in_days"`
	ObservationsUsed           int             `json:"observations_used"`
	OrbitUncertainty           string          `json:"orbit_uncertainty"`
	MinimumOrbitIntersectionAU *float64        `json:"minimum_orbit_intersection_au"`
	OrbitalPeriodDays          *float64        `json:"orbital_period_days"`
	Eccentricity               *float64        `json:"eccentricity"`
	SemiMajorAxisAU            *float64        `json:"semi_major_axis_au"`
	InclinationDeg             *float64        `json:"inclination_deg"`
	PerihelionDistanceAU       *float64        `json:"perihelion_distance_au"`
	AphelionDistanceAU         *float64        `json:"aphelion_distance_au"`
	OrbitClassType             string          `json:"orbit_class_type"`
	OrbitClassDescription      string          `json:"orbit_class_description"`
}

type DiameterRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// CloseApproach is the first close-approach event of an asteroid.
type CloseApproach struct {
	RelativeVelocityKph   *float64 `json:"relative_velocity_kph"`
	MissDistanceKm        *float64 `json:"miss_distance_km"`
	OrbitingBody          string   `json:"orbiting_body"`
	CloseApproachDateFull string   `json:"close_approach_date_full"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type DepStatus struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type HealthResponse struct {
	Ok          bool                 `json:"ok"`
	TsISO       string               `json:"tsISO"`
	Service     string               `json:"service"`
	Version     string               `json:"version,omitempty"`
	Deps        []string             `json:"deps"`
	DepsStatus  map[string]DepStatus `json:"deps_status"`
	DataMissing []string             `json:"data_missing"`
	Env         map[string]bool      `json:"env"`
	Features    map[string]bool      `json:"features"`
}
