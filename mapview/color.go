// Package mapview computes what the map client draws: the circle color ramp
// over pfas_level, the hover popup and the initial map configuration.
package mapview

import (
	"fmt"
	"math"
	"strconv"
)

// Stop is one point of the linear color ramp.
type Stop struct {
	Level float64
	Color string
}

// Stops are the ramp used by the pfas-circles layer, ordered by level.
var Stops = []Stop{
	{0, "#4CAF50"},
	{50, "#FFC107"},
	{100, "#F44336"},
}

// LevelColor interpolates linearly in RGB between the surrounding stops.
// Levels outside the ramp take the end colors.
func LevelColor(level float64) string {
	if level <= Stops[0].Level {
		return Stops[0].Color
	}
	last := Stops[len(Stops)-1]
	if level >= last.Level {
		return last.Color
	}
	for i := 1; i < len(Stops); i++ {
		lo, hi := Stops[i-1], Stops[i]
		if level > hi.Level {
			continue
		}
		t := (level - lo.Level) / (hi.Level - lo.Level)
		return mix(parseHex(lo.Color), parseHex(hi.Color), t)
	}
	return last.Color
}

type rgb [3]float64

func parseHex(hex string) rgb {
	var c rgb
	for i := range c {
		v, _ := strconv.ParseUint(hex[1+2*i:3+2*i], 16, 8)
		c[i] = float64(v)
	}
	return c
}

func mix(a, b rgb, t float64) string {
	var out [3]uint8
	for i := range out {
		out[i] = uint8(math.Round(a[i] + (b[i]-a[i])*t))
	}
	return fmt.Sprintf("#%02X%02X%02X", out[0], out[1], out[2])
}
