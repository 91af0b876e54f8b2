package domain

// metersPerDegree approximates one degree of latitude in meters. Dividing a
// radius in meters by it converts the search radius to a degree radius for
// the planar point-in-circle test.
const metersPerDegree = 111139.0

// SearchArea is the geographic circle a digest run covers. Constructed once
// per run from caller input and never mutated.
type SearchArea struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters int
}

// Contains reports whether the point lies within the search circle. Both
// axes are treated as metersPerDegree-sized degrees (a planar approximation,
// not geodesic). Points exactly on the boundary pass.
func (a SearchArea) Contains(lat, lon float64) bool {
	r := float64(a.RadiusMeters) / metersPerDegree
	dLat := lat - a.Latitude
	dLon := lon - a.Longitude
	return dLat*dLat+dLon*dLon <= r*r
}
