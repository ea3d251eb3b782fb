package domain

import "strconv"

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// String renders the point as the "lat,lng" form the Static Maps API
// expects for centers, markers, and path points.
func (p GeoPoint) String() string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," +
		strconv.FormatFloat(p.Lon, 'f', -1, 64)
}
