package models

// ObsTypeSighting marks an observation as a wildlife sighting
const ObsTypeSighting = "Sighting"

// Observation represents one logged event within a transect
type Observation struct {
	ID         string `json:"id" db:"id"`
	TransectID string `json:"transect_id" db:"transect_id"` // Owning transect
	ObsType    string `json:"obs_type" db:"obs_type"`       // "Sighting", weather notes, ...
	Date       int64  `json:"date" db:"date"`               // Unix timestamp (UTC)

	// Position
	Lat float32 `json:"lat" db:"lat"`
	Lon float32 `json:"lon" db:"lon"`

	// Optional fields
	Bearing      *int64   `json:"bearing" db:"bearing"`
	Count        *int64   `json:"count" db:"count"` // Number of animals, sightings only
	DistanceKm   *float32 `json:"distance_km" db:"distance_km"`
	GroupType    *string  `json:"group_type" db:"group_type"`
	BeaufortType *string  `json:"beaufort_type" db:"beaufort_type"`
	WeatherType  *string  `json:"weather_type" db:"weather_type"`
}

// IsSighting reports whether the observation counts towards sighting totals
func (o *Observation) IsSighting() bool {
	return o.ObsType == ObsTypeSighting
}
