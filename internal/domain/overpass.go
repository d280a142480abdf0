package domain

import "fmt"

// LatLon is a bare coordinate pair.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// OverpassElement is one raw element from an Overpass API response.
// Nodes carry lat/lon directly; ways and relations carry a centroid in
// center when the query asks for "out center".
type OverpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat,omitempty"`
	Lon    *float64          `json:"lon,omitempty"`
	Center *LatLon           `json:"center,omitempty"`
	Tags   map[string]string `json:"tags,omitempty"`
}

// SourceID returns the element identity key, e.g. "node/123".
func (e OverpassElement) SourceID() string {
	return fmt.Sprintf("%s/%d", e.Type, e.ID)
}

// Coordinate resolves the representative point: direct for nodes, centroid
// for ways/relations. ok is false when neither is present.
func (e OverpassElement) Coordinate() (lat, lon float64, ok bool) {
	if e.Lat != nil && e.Lon != nil {
		return *e.Lat, *e.Lon, true
	}
	if e.Center != nil {
		return e.Center.Lat, e.Center.Lon, true
	}
	return 0, 0, false
}

// OverpassResponse is the JSON envelope of an Overpass interpreter call.
type OverpassResponse struct {
	Elements []OverpassElement `json:"elements"`
}
