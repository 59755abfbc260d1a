package chart

import (
	"github.com/jonwraymond/astrochart/astro"
)

// Instant is the fully resolved birth instant: the wall-clock time, the
// IANA zone it was interpreted in, and the fixed UTC offset at that moment.
type Instant struct {
	Local       string  `json:"local"`
	Zone        string  `json:"zone"`
	OffsetHours float64 `json:"utc_offset_hours"`
}

// Position is one longitude-bearing point of the chart.
type Position struct {
	Point     string          `json:"point"`
	Longitude float64         `json:"longitude"`
	DMS       astro.DegMinSec `json:"longitude_dms"`
	Derived   bool            `json:"derived,omitempty"`
}

// Cusp is one of the twelve house cusps.
type Cusp struct {
	House     int     `json:"house"`
	Longitude float64 `json:"longitude"`
}

// Result is the complete computed chart. It is immutable once assembled
// and serializes verbatim into the cached JSON artifact, so field order
// and types here are part of the cache contract.
type Result struct {
	Request     Request        `json:"request"`
	Instant     Instant        `json:"instant"`
	Latitude    float64        `json:"latitude"`
	Longitude   float64        `json:"longitude"`
	HouseSystem string         `json:"house_system"`
	Positions   []Position     `json:"positions"`
	Cusps       []Cusp         `json:"cusps"`
	Aspects     []astro.Aspect `json:"aspects"`
}

// PositionOf returns the longitude for a point ID, if present.
func (r *Result) PositionOf(id string) (float64, bool) {
	for _, p := range r.Positions {
		if p.Point == id {
			return p.Longitude, true
		}
	}
	return 0, false
}
