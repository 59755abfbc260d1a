package chart

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/jonwraymond/astrochart/astro"
	"github.com/jonwraymond/astrochart/ephemeris"
	"github.com/jonwraymond/astrochart/geo"
)

type fakeGeocoder struct {
	pos   geo.Position
	err   error
	calls atomic.Int32
}

func (f *fakeGeocoder) Geocode(_ context.Context, _ string) (geo.Position, error) {
	f.calls.Add(1)
	if f.err != nil {
		return geo.Position{}, f.err
	}
	return f.pos, nil
}

// fakeProvider accepts a scripted set of house systems and serves one
// canned chart for all of them.
type fakeProvider struct {
	accepts map[ephemeris.HouseSystem]bool
	angles  map[astro.ChartAngle]float64
	bodies  map[astro.Body]float64
	cusps   map[int]float64
	err     error
	calls   atomic.Int32
	tried   []ephemeris.HouseSystem
}

func (f *fakeProvider) Compute(_ context.Context, spec ephemeris.Spec) (*ephemeris.Chart, error) {
	f.calls.Add(1)
	f.tried = append(f.tried, spec.System)
	if f.err != nil {
		return nil, f.err
	}
	if !f.accepts[spec.System] {
		return nil, ephemeris.ErrUnsupportedSystem
	}
	return ephemeris.NewChart(spec.System, f.angles, f.bodies, f.cusps), nil
}

func defaultProvider() *fakeProvider {
	cusps := make(map[int]float64, 12)
	for i := 1; i <= 12; i++ {
		cusps[i] = float64(i-1)*30 + 250.1
	}
	return &fakeProvider{
		accepts: map[ephemeris.HouseSystem]bool{ephemeris.SystemPlacidus: true},
		angles:  map[astro.ChartAngle]float64{astro.AngleASC: 250.1, astro.AngleMC: 160.2},
		bodies: map[astro.Body]float64{
			astro.BodySun:   280.5,
			astro.BodyMoon:  222.3,
			astro.BodyVenus: 280.9,
			astro.BodyMars:  357.6,
		},
		cusps: cusps,
	}
}

func newTestOrchestrator(g geo.Geocoder, p ephemeris.Provider) *Orchestrator {
	return NewOrchestrator(OrchestratorConfig{
		Geocoder:  g,
		Timezones: geo.StaticResolver{Zone: "Europe/Kyiv"},
		Provider:  p,
	})
}

func TestOrchestrator_Compute(t *testing.T) {
	gc := &fakeGeocoder{pos: geo.Position{Latitude: 50.45, Longitude: 30.52}}
	p := defaultProvider()
	o := newTestOrchestrator(gc, p)

	res, err := o.Compute(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if len(res.Cusps) != 12 {
		t.Fatalf("cusps = %d, want 12", len(res.Cusps))
	}
	if res.HouseSystem != string(ephemeris.SystemPlacidus) {
		t.Errorf("house system = %q", res.HouseSystem)
	}

	// All four chart angles present; DSC and IC derived from ASC/MC.
	for _, id := range []string{"asc", "mc", "dsc", "ic"} {
		if _, ok := res.PositionOf(id); !ok {
			t.Errorf("missing angle %q", id)
		}
	}
	if dsc, _ := res.PositionOf("dsc"); dsc != astro.Normalize(250.1+180) {
		t.Errorf("dsc = %v, want %v", dsc, astro.Normalize(250.1+180))
	}

	if len(res.Aspects) == 0 {
		t.Error("expected at least one aspect")
	}

	// Winter in Kyiv: UTC+2, no DST.
	if res.Instant.OffsetHours != 2 {
		t.Errorf("offset = %v, want 2", res.Instant.OffsetHours)
	}
	if res.Instant.Zone != "Europe/Kyiv" {
		t.Errorf("zone = %q", res.Instant.Zone)
	}
}

func TestOrchestrator_SkipsMissingBodies(t *testing.T) {
	p := defaultProvider()
	delete(p.bodies, astro.BodyMoon)
	o := newTestOrchestrator(&fakeGeocoder{pos: geo.Position{Latitude: 1, Longitude: 1}}, p)

	res, err := o.Compute(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if _, ok := res.PositionOf("moon"); ok {
		t.Error("moon should be absent")
	}
	if _, ok := res.PositionOf("sun"); !ok {
		t.Error("sun should be present")
	}
}

func TestOrchestrator_HouseSystemFallback(t *testing.T) {
	p := defaultProvider()
	p.accepts = map[ephemeris.HouseSystem]bool{ephemeris.SystemKoch: true}
	o := newTestOrchestrator(&fakeGeocoder{pos: geo.Position{Latitude: 1, Longitude: 1}}, p)

	res, err := o.Compute(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if res.HouseSystem != string(ephemeris.SystemKoch) {
		t.Errorf("house system = %q, want koch", res.HouseSystem)
	}
	want := []ephemeris.HouseSystem{
		ephemeris.SystemPlacidus, ephemeris.SystemWholeSign,
		ephemeris.SystemEqual, ephemeris.SystemKoch,
	}
	if len(p.tried) != len(want) {
		t.Fatalf("tried %v, want %v", p.tried, want)
	}
	for i := range want {
		if p.tried[i] != want[i] {
			t.Errorf("tried[%d] = %q, want %q", i, p.tried[i], want[i])
		}
	}
}

func TestOrchestrator_ProviderDefaultFallback(t *testing.T) {
	p := defaultProvider()
	// Reject every named system, accept only the unconstrained default.
	p.accepts = map[ephemeris.HouseSystem]bool{ephemeris.SystemDefault: true}
	o := newTestOrchestrator(&fakeGeocoder{pos: geo.Position{Latitude: 1, Longitude: 1}}, p)

	res, err := o.Compute(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if res.HouseSystem != "" {
		t.Errorf("house system = %q, want provider default", res.HouseSystem)
	}
}

func TestOrchestrator_ConstructionFailed(t *testing.T) {
	p := defaultProvider()
	p.accepts = nil // rejects everything, including the default
	o := newTestOrchestrator(&fakeGeocoder{pos: geo.Position{Latitude: 1, Longitude: 1}}, p)

	_, err := o.Compute(context.Background(), validRequest())
	if !errors.Is(err, ErrConstruction) {
		t.Fatalf("err = %v, want ErrConstruction", err)
	}
	// One attempt per named system plus the default.
	if got := int(p.calls.Load()); got != len(ephemeris.FallbackOrder())+1 {
		t.Errorf("provider calls = %d, want %d", got, len(ephemeris.FallbackOrder())+1)
	}
}

func TestOrchestrator_PlaceNotFound(t *testing.T) {
	o := newTestOrchestrator(&fakeGeocoder{err: geo.ErrPlaceNotFound}, defaultProvider())
	_, err := o.Compute(context.Background(), validRequest())
	if !errors.Is(err, geo.ErrPlaceNotFound) {
		t.Fatalf("err = %v, want ErrPlaceNotFound", err)
	}
}

func TestOrchestrator_InvalidRequestShortCircuits(t *testing.T) {
	gc := &fakeGeocoder{pos: geo.Position{}}
	o := newTestOrchestrator(gc, defaultProvider())

	_, err := o.Compute(context.Background(), Request{})
	if !IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if gc.calls.Load() != 0 {
		t.Error("geocoder must not be called for invalid requests")
	}
}

func TestOrchestrator_UnknownZoneFallsBackToUTC(t *testing.T) {
	p := defaultProvider()
	o := NewOrchestrator(OrchestratorConfig{
		Geocoder:  &fakeGeocoder{pos: geo.Position{Latitude: 1, Longitude: 1}},
		Timezones: geo.StaticResolver{Zone: "Not/AZone"},
		Provider:  p,
	})

	res, err := o.Compute(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if res.Instant.Zone != geo.UTCZone || res.Instant.OffsetHours != 0 {
		t.Errorf("instant = %+v, want UTC with zero offset", res.Instant)
	}
}
