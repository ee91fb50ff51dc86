// Package geocode resolves free-text location searches for the map search box.
package geocode

import (
	"context"
	"strings"
)

// MaxSuggestions is how many results the search box shows.
const MaxSuggestions = 5

// Geocoder looks up place suggestions for a query.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]Suggestion, error)
}

// Suggestion is one autocomplete entry. Center is lng/lat, Bbox is
// minLng,minLat,maxLng,maxLat when the upstream knows the extent.
type Suggestion struct {
	Id        string     `json:"id"`
	PlaceName string     `json:"place_name"`
	Center    [2]float64 `json:"center"`
	Bbox      []float64  `json:"bbox,omitempty"`
	Viewport  Viewport   `json:"viewport"`
}

// Viewport tells the client how to move the map once a suggestion is picked.
type Viewport struct {
	Mode    string    `json:"mode"` // "fit" or "fly"
	Bounds  []float64 `json:"bounds,omitempty"`
	Padding int       `json:"padding,omitempty"`
	MaxZoom float64   `json:"max_zoom,omitempty"`
	Center  []float64 `json:"center,omitempty"`
	Zoom    float64   `json:"zoom,omitempty"`
}

// ViewportFor fits the bbox when there is one, otherwise flies to the center.
func ViewportFor(center [2]float64, bbox []float64) Viewport {
	if len(bbox) == 4 {
		return Viewport{Mode: "fit", Bounds: bbox, Padding: 50, MaxZoom: 15}
	}
	return Viewport{Mode: "fly", Center: []float64{center[0], center[1]}, Zoom: 12}
}

func normalize(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
