package mapview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("https://api.maptiler.com", "k&y", "http://localhost:5000/api")

	assert.Equal(t, "https://api.maptiler.com/maps/dataviz-light/style.json?key=k%26y", cfg.StyleURL)
	assert.Equal(t, "http://localhost:5000/api/sites", cfg.SitesURL)
	assert.Equal(t, [2]float64{78.9629, 20.5737}, cfg.Center)
	assert.Equal(t, 4.0, cfg.Zoom)
	assert.Equal(t, SourceId, cfg.Layer.Source)
	assert.Equal(t, "circle", cfg.Layer.Type)
	assert.Equal(t, 8, cfg.Layer.Paint["circle-radius"])
	assert.Equal(t, 15, cfg.Popup.Offset)
	assert.Len(t, cfg.Legend, 3)
}

func TestNewConfig_NoKey(t *testing.T) {
	cfg := NewConfig("https://tiles.example", "", "/api")
	assert.Equal(t, "https://tiles.example/maps/dataviz-light/style.json", cfg.StyleURL)
}
