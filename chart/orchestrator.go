package chart

import (
	"context"
	"fmt"
	"time"

	"github.com/jonwraymond/astrochart/astro"
	"github.com/jonwraymond/astrochart/ephemeris"
	"github.com/jonwraymond/astrochart/geo"
	"github.com/jonwraymond/astrochart/observe"
)

// OrchestratorConfig wires the collaborators and catalogs.
type OrchestratorConfig struct {
	// Geocoder resolves the place field. Required.
	Geocoder geo.Geocoder

	// Timezones resolves coordinates to a zone. Required.
	Timezones geo.TimezoneResolver

	// Provider computes the raw chart. Required.
	Provider ephemeris.Provider

	// AspectCatalog overrides the default aspect table.
	AspectCatalog []astro.AspectDef

	// HouseSystems overrides the default house-system fallback order.
	HouseSystems []ephemeris.HouseSystem

	// CuspOrigin is the equal-house origin used when even the ascendant is
	// unavailable. Default: 0.
	CuspOrigin float64

	// Logger receives step-level diagnostics. Default: no logging.
	Logger observe.Logger
}

// Orchestrator runs the whole computation pipeline for one request.
// A failure at any step aborts the request with a typed error; partial
// results never escape.
type Orchestrator struct {
	config OrchestratorConfig
}

// NewOrchestrator creates an orchestrator, applying catalog defaults.
func NewOrchestrator(config OrchestratorConfig) *Orchestrator {
	if config.AspectCatalog == nil {
		config.AspectCatalog = astro.DefaultAspectCatalog()
	}
	if config.HouseSystems == nil {
		config.HouseSystems = ephemeris.FallbackOrder()
	}
	if config.Logger == nil {
		config.Logger = observe.NopLogger()
	}
	return &Orchestrator{config: config}
}

// Compute runs the pipeline: geocode, timezone, instant resolution, chart
// construction with house-system fallback, angle derivation, cusp
// resolution and aspect detection.
func (o *Orchestrator) Compute(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	log := o.config.Logger

	pos, err := o.config.Geocoder.Geocode(ctx, req.Place)
	if err != nil {
		return nil, err
	}

	// Timezone resolution never fails; unknown positions fall back to UTC.
	zone := o.config.Timezones.Resolve(ctx, pos)
	loc, err := time.LoadLocation(zone)
	if err != nil {
		log.Warn(ctx, "unknown zone id, using UTC", observe.Field{Key: "zone", Value: zone})
		zone = geo.UTCZone
		loc = time.UTC
	}

	local, err := req.LocalClock(loc)
	if err != nil {
		return nil, &ValidationError{Field: "time", Reason: err.Error()}
	}
	// The offset is fixed once here, at this exact local instant, so DST
	// transitions cannot skew later ephemeris calls.
	_, offsetSec := local.Zone()
	offsetHours := float64(offsetSec) / 3600

	raw, system, err := o.buildChart(ctx, ephemeris.Spec{
		Local:       local,
		OffsetHours: offsetHours,
		Latitude:    pos.Latitude,
		Longitude:   pos.Longitude,
	})
	if err != nil {
		return nil, err
	}

	positions := o.collectPositions(raw)

	cusps := make([]Cusp, 0, 12)
	for idx := 1; idx <= 12; idx++ {
		lon, err := astro.ResolveCusp(raw, idx, o.config.CuspOrigin)
		if err != nil {
			return nil, fmt.Errorf("%w: cusp %d: %v", ErrConstruction, idx, err)
		}
		cusps = append(cusps, Cusp{House: idx, Longitude: lon})
	}

	aspectInput := make(map[astro.Point]float64, len(positions))
	for _, p := range positions {
		point, ok := parsePointID(p.Point)
		if !ok {
			continue
		}
		aspectInput[point] = p.Longitude
	}
	aspects := astro.DetectAspects(aspectInput, o.config.AspectCatalog)

	result := &Result{
		Request:     req,
		Instant:     Instant{Local: local.Format("2006-01-02T15:04:05"), Zone: zone, OffsetHours: offsetHours},
		Latitude:    pos.Latitude,
		Longitude:   pos.Longitude,
		HouseSystem: string(system),
		Positions:   positions,
		Cusps:       cusps,
		Aspects:     aspects,
	}
	log.Debug(ctx, "chart computed",
		observe.Field{Key: "zone", Value: zone},
		observe.Field{Key: "house_system", Value: string(system)},
		observe.Field{Key: "aspects", Value: len(aspects)},
	)
	return result, nil
}

// buildChart walks the house-system fallback order, then the provider
// default. Only when every attempt fails does the request die.
func (o *Orchestrator) buildChart(ctx context.Context, spec ephemeris.Spec) (*ephemeris.Chart, ephemeris.HouseSystem, error) {
	var lastErr error
	for _, sys := range o.config.HouseSystems {
		spec.System = sys
		raw, err := o.config.Provider.Compute(ctx, spec)
		if err == nil {
			return raw, sys, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrConstruction, ctx.Err())
		}
		o.config.Logger.Debug(ctx, "house system rejected",
			observe.Field{Key: "system", Value: string(sys)},
			observe.Field{Key: "error", Value: err.Error()},
		)
	}

	spec.System = ephemeris.SystemDefault
	raw, err := o.config.Provider.Compute(ctx, spec)
	if err == nil {
		return raw, ephemeris.SystemDefault, nil
	}
	if lastErr == nil {
		lastErr = err
	}
	return nil, "", fmt.Errorf("%w: %v", ErrConstruction, lastErr)
}

// collectPositions reads bodies and angles in catalog order. Bodies the
// provider does not expose are skipped. DSC and IC are derived from the
// opposite angle when the provider does not return them directly.
func (o *Orchestrator) collectPositions(raw *ephemeris.Chart) []Position {
	var positions []Position

	for _, b := range astro.Bodies() {
		if lon, ok := raw.Body(b); ok {
			positions = append(positions, Position{Point: string(b), Longitude: lon, DMS: astro.DMS(lon)})
		}
	}

	angleLon := make(map[astro.ChartAngle]float64, 4)
	derived := make(map[astro.ChartAngle]bool, 2)
	for _, a := range []astro.ChartAngle{astro.AngleASC, astro.AngleMC} {
		if lon, ok := raw.Angle(a); ok {
			angleLon[a] = lon
		}
	}
	for opposite, base := range map[astro.ChartAngle]astro.ChartAngle{
		astro.AngleDSC: astro.AngleASC,
		astro.AngleIC:  astro.AngleMC,
	} {
		if lon, ok := raw.Angle(opposite); ok {
			angleLon[opposite] = lon
			continue
		}
		if lon, ok := angleLon[base]; ok {
			angleLon[opposite] = astro.Normalize(lon + 180)
			derived[opposite] = true
		}
	}

	for _, a := range astro.ChartAngles() {
		if lon, ok := angleLon[a]; ok {
			positions = append(positions, Position{
				Point:     string(a),
				Longitude: lon,
				DMS:       astro.DMS(lon),
				Derived:   derived[a],
			})
		}
	}
	return positions
}

// parsePointID maps a serialized point ID back to a catalog Point.
func parsePointID(id string) (astro.Point, bool) {
	for _, p := range astro.PointOrder() {
		if p.ID() == id {
			return p, true
		}
	}
	return astro.Point{}, false
}
