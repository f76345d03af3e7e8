package models

// Transect represents a single vessel survey leg
type Transect struct {
	ID string `json:"id" db:"id"`

	// Temporal info
	StartDate int64 `json:"start_date" db:"start_date"` // Unix timestamp (UTC)
	EndDate   int64 `json:"end_date" db:"end_date"`     // Unix timestamp (UTC)

	// Path endpoints
	StartLat float32 `json:"start_lat" db:"start_lat"`
	StartLon float32 `json:"start_lon" db:"start_lon"`
	EndLat   float32 `json:"end_lat" db:"end_lat"`
	EndLon   float32 `json:"end_lon" db:"end_lon"`
	Bearing  int32   `json:"bearing" db:"bearing"` // Compass heading in degrees

	// References
	VesselID    string  `json:"vessel_id" db:"vessel_id"`
	Observer1ID string  `json:"observer1_id" db:"observer1_id"`
	Observer2ID *string `json:"observer2_id" db:"observer2_id"`

	// Observations is never nil for transects loaded with their observations
	Observations []Observation `json:"observations"`
}

// DurationSeconds returns end_date - start_date. Negative when the stored
// dates are inverted.
func (t *Transect) DurationSeconds() int64 {
	return t.EndDate - t.StartDate
}

// Storable dates span years 0001 to 9999 UTC
const (
	MinDate int64 = -62135596800 // 0001-01-01 00:00:00
	MaxDate int64 = 253402300799 // 9999-12-31 23:59:59
)

// DateInRange reports whether an epoch-UTC second count can be stored and
// read back unchanged
func DateInRange(epoch int64) bool {
	return epoch >= MinDate && epoch <= MaxDate
}
