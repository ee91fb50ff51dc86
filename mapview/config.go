package mapview

import "net/url"

const (
	SourceId = "pfas-points"
	LayerId  = "pfas-circles"
)

// DefaultCenter is India, lng/lat.
var DefaultCenter = [2]float64{78.9629, 20.5737}

const DefaultZoom = 4

type LegendItem struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var Legend = []LegendItem{
	{"Low (< 50)", "#4CAF50"},
	{"Medium (50 - 90)", "#FFC107"},
	{"High (> 90)", "#F44336"},
}

type Layer struct {
	Id     string                 `json:"id"`
	Type   string                 `json:"type"`
	Source string                 `json:"source"`
	Paint  map[string]interface{} `json:"paint"`
}

type PopupOptions struct {
	CloseButton  bool   `json:"closeButton"`
	CloseOnClick bool   `json:"closeOnClick"`
	Offset       int    `json:"offset"`
	MaxWidth     string `json:"maxWidth"`
}

type Config struct {
	StyleURL string       `json:"style_url"`
	SitesURL string       `json:"sites_url"`
	Center   [2]float64   `json:"center"`
	Zoom     float64      `json:"zoom"`
	Source   string       `json:"source"`
	Layer    Layer        `json:"layer"`
	Popup    PopupOptions `json:"popup"`
	Legend   []LegendItem `json:"legend"`
}

// ColorExpression is the MapLibre expression equivalent of LevelColor.
func ColorExpression() []interface{} {
	expr := []interface{}{"interpolate", []interface{}{"linear"}, []interface{}{"get", "level"}}
	for _, s := range Stops {
		expr = append(expr, s.Level, s.Color)
	}
	return expr
}

func CircleLayer() Layer {
	return Layer{
		Id:     LayerId,
		Type:   "circle",
		Source: SourceId,
		Paint: map[string]interface{}{
			"circle-color":        ColorExpression(),
			"circle-radius":       8,
			"circle-stroke-width": 2,
			"circle-stroke-color": "#ffffff",
		},
	}
}

// NewConfig builds the client map setup. tilesBase is the MapTiler base URL.
func NewConfig(tilesBase, key, apiBase string) *Config {
	style := tilesBase + "/maps/dataviz-light/style.json"
	if key != "" {
		style += "?key=" + url.QueryEscape(key)
	}
	return &Config{
		StyleURL: style,
		SitesURL: apiBase + "/sites",
		Center:   DefaultCenter,
		Zoom:     DefaultZoom,
		Source:   SourceId,
		Layer:    CircleLayer(),
		Popup:    PopupOptions{Offset: 15, MaxWidth: "320px"},
		Legend:   Legend,
	}
}
