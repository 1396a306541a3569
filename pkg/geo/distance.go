// Package geo has the great-circle helpers used for job matching.
package geo

import "math"

const earthRadiusKm = 6371.0

// Distance returns the haversine distance in kilometres between two points
// given in decimal degrees.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// Point is an optional coordinate pair as stored on teachers, schools and jobs.
type Point struct {
	Lat *float64
	Lng *float64
}

func (p Point) Valid() bool {
	return p.Lat != nil && p.Lng != nil
}

// Between returns the distance between two points and false when either side
// has no coordinates.
func Between(a, b Point) (float64, bool) {
	if !a.Valid() || !b.Valid() {
		return 0, false
	}
	return Distance(*a.Lat, *a.Lng, *b.Lat, *b.Lng), true
}

// Round1 rounds to one decimal place for display.
func Round1(km float64) float64 {
	return math.Round(km*10) / 10
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
