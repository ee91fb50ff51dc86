package model

import (
	"fmt"

	"github.com/paulmach/orb"
)

const (
	StatusKnown   = "Known Contamination Site"
	StatusHotspot = "Hotspot"
)

// Chemicals maps a chemical name to its level in ng/kg.
type Chemicals map[string]float64

// Site is a single contamination site. Location is (lng, lat).
type Site struct {
	Id         int
	Name       string
	PfasLevel  int
	SampleType string
	SampleDate string
	Status     string
	Location   orb.Point
	Chemicals  Chemicals
}

func (s *Site) Lng() float64 { return s.Location.X() }
func (s *Site) Lat() float64 { return s.Location.Y() }

// Sample is the display string "<type> (<date>)", empty unless both parts are set.
func (s *Site) Sample() string {
	if s.SampleType == "" || s.SampleDate == "" {
		return ""
	}
	return fmt.Sprintf("%s (%s)", s.SampleType, s.SampleDate)
}

// Clone returns a deep copy so stores never share chemical maps with callers.
func (s *Site) Clone() *Site {
	c := *s
	c.Chemicals = make(Chemicals, len(s.Chemicals))
	for k, v := range s.Chemicals {
		c.Chemicals[k] = v
	}
	return &c
}

// SiteFilter narrows a site listing. The zero value lists everything.
type SiteFilter struct {
	Bound *orb.Bound
	Query string
}
