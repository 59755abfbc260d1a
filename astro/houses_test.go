package astro

import (
	"errors"
	"math"
	"testing"
)

// fakeCuspSource scripts per-index availability.
type fakeCuspSource struct {
	cusps map[int]float64
	asc   float64
	noAsc bool
}

func (f *fakeCuspSource) Cusp(index int) (float64, bool) {
	lon, ok := f.cusps[index]
	return lon, ok
}

func (f *fakeCuspSource) Ascendant() (float64, bool) {
	if f.noAsc {
		return 0, false
	}
	return f.asc, true
}

func TestResolveCusp_ProviderValue(t *testing.T) {
	src := &fakeCuspSource{cusps: map[int]float64{3: 412.5}, asc: 100}
	got, err := ResolveCusp(src, 3, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Provider values come back normalized.
	if math.Abs(got-52.5) > 1e-9 {
		t.Errorf("cusp 3 = %v, want 52.5", got)
	}
}

// TestResolveCusp_AscendantFallback covers the case where the provider has
// no value for house 7 but the ascendant is known.
func TestResolveCusp_AscendantFallback(t *testing.T) {
	src := &fakeCuspSource{cusps: map[int]float64{1: 100}, asc: 100}
	got, err := ResolveCusp(src, 7, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Normalize(100 + 6*30)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("cusp 7 = %v, want %v", got, want)
	}
}

func TestResolveCusp_OriginFallback(t *testing.T) {
	src := &fakeCuspSource{noAsc: true}
	tests := []struct {
		index  int
		origin float64
		want   float64
	}{
		{1, 0, 0},
		{2, 0, 30},
		{12, 0, 330},
		{4, 15, 105},
		{12, 350, 300},
	}
	for _, tt := range tests {
		got, err := ResolveCusp(src, tt.index, tt.origin)
		if err != nil {
			t.Fatalf("ResolveCusp(%d): %v", tt.index, err)
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ResolveCusp(%d, origin=%v) = %v, want %v", tt.index, tt.origin, got, tt.want)
		}
	}
}

func TestResolveCusp_NilSource(t *testing.T) {
	got, err := ResolveCusp(nil, 5, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-130) > 1e-9 {
		t.Errorf("cusp 5 = %v, want 130", got)
	}
}

func TestResolveCusp_IndexRange(t *testing.T) {
	for _, idx := range []int{0, -1, 13} {
		if _, err := ResolveCusp(nil, idx, 0); !errors.Is(err, ErrHouseIndex) {
			t.Errorf("ResolveCusp(%d) err = %v, want ErrHouseIndex", idx, err)
		}
	}
}

// TestResolveCusp_IndependentIndexes verifies a partial provider failure
// degrades per index rather than per chart.
func TestResolveCusp_IndependentIndexes(t *testing.T) {
	src := &fakeCuspSource{cusps: map[int]float64{1: 15, 2: 48}, asc: 15}
	for idx := 1; idx <= 12; idx++ {
		got, err := ResolveCusp(src, idx, 0)
		if err != nil {
			t.Fatalf("ResolveCusp(%d): %v", idx, err)
		}
		var want float64
		if lon, ok := src.cusps[idx]; ok {
			want = lon
		} else {
			want = Normalize(15 + float64(idx-1)*30)
		}
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("cusp %d = %v, want %v", idx, got, want)
		}
	}
}
