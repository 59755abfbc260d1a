package ephemeris

import (
	"context"
	"errors"
	"time"

	"github.com/jonwraymond/astrochart/astro"
)

// Sentinel errors for ephemeris computation.
var (
	// ErrUnsupportedSystem means the provider rejected the requested house
	// system. The orchestrator tries the next system in its fallback order.
	ErrUnsupportedSystem = errors.New("ephemeris: house system not supported")

	// ErrUnavailable means the provider could not compute the chart at all.
	ErrUnavailable = errors.New("ephemeris: provider unavailable")
)

// HouseSystem identifies a house-division system.
type HouseSystem string

// Known house systems.
const (
	SystemPlacidus      HouseSystem = "placidus"
	SystemWholeSign     HouseSystem = "whole_sign"
	SystemEqual         HouseSystem = "equal"
	SystemKoch          HouseSystem = "koch"
	SystemRegiomontanus HouseSystem = "regiomontanus"
	SystemCampanus      HouseSystem = "campanus"
	SystemTopocentric   HouseSystem = "topocentric"
	SystemAlcabitius    HouseSystem = "alcabitius"
	SystemMorinus       HouseSystem = "morinus"

	// SystemDefault asks the provider to pick whatever it supports.
	SystemDefault HouseSystem = ""
)

// FallbackOrder is the fixed sequence of house systems the orchestrator
// attempts before falling back to the provider default.
func FallbackOrder() []HouseSystem {
	return []HouseSystem{
		SystemPlacidus, SystemWholeSign, SystemEqual, SystemKoch,
		SystemRegiomontanus, SystemCampanus, SystemTopocentric,
		SystemAlcabitius, SystemMorinus,
	}
}

// Spec is one chart computation request. Local carries the wall-clock birth
// instant; OffsetHours is the fixed UTC offset already resolved for that
// instant and zone (DST included), reused for every downstream call.
type Spec struct {
	Local       time.Time
	OffsetHours float64
	Latitude    float64
	Longitude   float64
	System      HouseSystem
}

// Chart is the provider's answer: whatever longitudes it could compute.
// All maps may be partial; lookups report absence explicitly.
type Chart struct {
	system HouseSystem
	angles map[astro.ChartAngle]float64
	bodies map[astro.Body]float64
	cusps  map[int]float64
}

// NewChart builds a Chart, copying the input maps. Nil maps are fine.
func NewChart(system HouseSystem, angles map[astro.ChartAngle]float64, bodies map[astro.Body]float64, cusps map[int]float64) *Chart {
	ch := &Chart{
		system: system,
		angles: make(map[astro.ChartAngle]float64, len(angles)),
		bodies: make(map[astro.Body]float64, len(bodies)),
		cusps:  make(map[int]float64, len(cusps)),
	}
	for k, v := range angles {
		ch.angles[k] = astro.Normalize(v)
	}
	for k, v := range bodies {
		ch.bodies[k] = astro.Normalize(v)
	}
	for k, v := range cusps {
		ch.cusps[k] = astro.Normalize(v)
	}
	return ch
}

// System returns the house system the chart was computed under.
func (c *Chart) System() HouseSystem {
	return c.system
}

// Angle returns a chart-angle longitude, if the provider exposed it.
func (c *Chart) Angle(a astro.ChartAngle) (float64, bool) {
	lon, ok := c.angles[a]
	return lon, ok
}

// Body returns a body longitude, if the provider exposed it.
func (c *Chart) Body(b astro.Body) (float64, bool) {
	lon, ok := c.bodies[b]
	return lon, ok
}

// Cusp returns a house cusp longitude, if the provider exposed it.
func (c *Chart) Cusp(index int) (float64, bool) {
	lon, ok := c.cusps[index]
	return lon, ok
}

// Ascendant returns the ascendant longitude, if known.
func (c *Chart) Ascendant() (float64, bool) {
	return c.Angle(astro.AngleASC)
}

// Chart satisfies the house resolver's cusp source.
var _ astro.CuspSource = (*Chart)(nil)

// Provider computes charts.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: Compute must honor cancellation/deadlines.
// - Errors: ErrUnsupportedSystem (possibly wrapped) when the requested house
//   system is rejected; ErrUnavailable for everything else fatal. Partial
//   body/angle/cusp coverage is NOT an error.
type Provider interface {
	Compute(ctx context.Context, spec Spec) (*Chart, error)
}
