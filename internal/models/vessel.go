package models

// Vessel is a row of the vessel reference table
type Vessel struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// VesselSummary is the aggregate projection of a vessel over its transects.
// It is computed per request and never persisted.
type VesselSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	NumberOfTransects               int64   `json:"number_of_transects"`
	NumberOfSightings               int64   `json:"number_of_sightings"`
	NumberOfAnimals                 int64   `json:"number_of_animals"`
	TotalDurationOfAllTransectsSecs int64   `json:"total_duration_of_all_transects_secs"`
	TotalDistanceOfAllTransectsKm   float64 `json:"total_distance_of_all_transects_km"`
}

// SightingTotals holds the result of the sighting aggregate query for a vessel
type SightingTotals struct {
	Sightings int64
	Animals   int64
}
