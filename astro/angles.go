package astro

import (
	"fmt"
	"math"
)

// Normalize maps an angle in degrees onto [0, 360).
func Normalize(angle float64) float64 {
	a := math.Mod(angle, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// AngularDistance returns the shortest angular separation between two
// longitudes, in [0, 180]. Symmetric in its arguments.
func AngularDistance(a, b float64) float64 {
	d := math.Abs(Normalize(a) - Normalize(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// DegMinSec is a sexagesimal rendering of an angle.
type DegMinSec struct {
	Degrees int `json:"degrees"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// DMS converts an angle to whole degrees and minutes with rounded seconds.
// Carries propagate upward: 60 seconds becomes a minute and 60 minutes a
// degree (mod 360), so 29.9999999 renders as 30°0'0", never 29°59'60".
func DMS(angle float64) DegMinSec {
	a := Normalize(angle)
	deg := int(a)
	frac := (a - float64(deg)) * 60
	min := int(frac)
	sec := int(math.Round((frac - float64(min)) * 60))
	if sec == 60 {
		sec = 0
		min++
	}
	if min == 60 {
		min = 0
		deg = (deg + 1) % 360
	}
	return DegMinSec{Degrees: deg, Minutes: min, Seconds: sec}
}

// Degrees returns the decimal-degree value of the rendering.
func (d DegMinSec) Degrees64() float64 {
	return float64(d.Degrees) + float64(d.Minutes)/60 + float64(d.Seconds)/3600
}

// String renders the angle as D°M'S".
func (d DegMinSec) String() string {
	return fmt.Sprintf("%d°%d'%d\"", d.Degrees, d.Minutes, d.Seconds)
}
