package spatial

import (
	"github.com/golang/geo/s2"
)

// Constants
const (
	EarthRadiusKm = 6371.0 // Earth's mean radius in kilometers
)

// Point is a geographic position in degrees, stored at single precision
type Point struct {
	Lat float32
	Lon float32
}

// HaversineDistance calculates the great-circle distance between two points in kilometers.
// Inputs are widened to float64 before any trigonometry.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// DistanceKm returns the great-circle distance between a and b in kilometers
func DistanceKm(a, b Point) float64 {
	return HaversineDistance(float64(a.Lat), float64(a.Lon), float64(b.Lat), float64(b.Lon))
}

