package mapview

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/pfas-tracker/api/model"
	"github.com/stretchr/testify/assert"
)

func TestPFOA(t *testing.T) {
	assert.Equal(t, "80.00", PFOA(100))
	assert.Equal(t, "26.40", PFOA(33))
	assert.Equal(t, "0.00", PFOA(0))
}

func TestNewPopup(t *testing.T) {
	site := &model.Site{
		Id:         5,
		Name:       "Harbour",
		PfasLevel:  80,
		SampleType: "Water",
		SampleDate: "2023",
		Status:     model.StatusHotspot,
		Location:   orb.Point{72.8, 19.0},
		Chemicals:  model.Chemicals{"PFOA": 10},
	}

	p := NewPopup(site)
	assert.True(t, p.Hotspot)
	assert.Equal(t, "KNOWN CONTAMINATION SITE | ", p.Header)
	assert.Equal(t, "Water (2023)", p.Sample)
	// derived from the level, not from the chemicals breakdown
	assert.Equal(t, "64.00", p.PFOA)
	assert.Equal(t, "ng/kg", p.Unit)
	assert.Equal(t, LevelColor(80), p.Color)
	assert.Equal(t, [2]float64{72.8, 19.0}, p.Coordinates)

	site.PfasLevel = 79
	p = NewPopup(site)
	assert.False(t, p.Hotspot)
	assert.Equal(t, "KNOWN CONTAMINATION SITE", p.Header)
}
