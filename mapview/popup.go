package mapview

import (
	"strconv"

	"github.com/pfas-tracker/api/model"
)

const (
	// HotspotLevel is where the popup starts flagging a site as a hotspot.
	HotspotLevel = 80
	// PFOAFactor estimates the PFOA sub-metric from the total level; the
	// chemicals breakdown is not consulted.
	PFOAFactor = 0.8
)

// Popup is the hover card for one site.
type Popup struct {
	Id          int        `json:"id"`
	Name        string     `json:"name"`
	Header      string     `json:"header"`
	Hotspot     bool       `json:"hotspot"`
	Status      string     `json:"status"`
	Sample      string     `json:"sample"`
	Level       int        `json:"level"`
	PFOA        string     `json:"pfoa"`
	Unit        string     `json:"unit"`
	Color       string     `json:"color"`
	Coordinates [2]float64 `json:"coordinates"`
}

func IsHotspot(level int) bool {
	return level >= HotspotLevel
}

// PFOA returns 0.8 x level with two decimals.
func PFOA(level int) string {
	return strconv.FormatFloat(float64(level)*PFOAFactor, 'f', 2, 64)
}

func NewPopup(site *model.Site) *Popup {
	hot := IsHotspot(site.PfasLevel)
	header := "KNOWN CONTAMINATION SITE"
	if hot {
		header += " | "
	}
	return &Popup{
		Id:          site.Id,
		Name:        site.Name,
		Header:      header,
		Hotspot:     hot,
		Status:      site.Status,
		Sample:      site.Sample(),
		Level:       site.PfasLevel,
		PFOA:        PFOA(site.PfasLevel),
		Unit:        "ng/kg",
		Color:       LevelColor(float64(site.PfasLevel)),
		Coordinates: [2]float64{site.Lng(), site.Lat()},
	}
}
