package astro

import (
	"math"
	"testing"
)

// TestNormalize_Range verifies results land in [0, 360).
func TestNormalize_Range(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		want  float64
	}{
		{"zero", 0, 0},
		{"in range", 123.45, 123.45},
		{"exactly 360", 360, 0},
		{"over 360", 370, 10},
		{"negative", -30, 330},
		{"large negative", -750, 330},
		{"large positive", 1085, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.angle)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Normalize(%v) = %v, want %v", tt.angle, got, tt.want)
			}
			if got < 0 || got >= 360 {
				t.Errorf("Normalize(%v) = %v, outside [0,360)", tt.angle, got)
			}
		})
	}
}

// TestNormalize_Periodicity checks Normalize(a) == Normalize(a + 360k).
func TestNormalize_Periodicity(t *testing.T) {
	angles := []float64{0, 1.5, 90, 179.999, 270, 359.9}
	for _, a := range angles {
		base := Normalize(a)
		for k := -3; k <= 3; k++ {
			got := Normalize(a + 360*float64(k))
			if math.Abs(got-base) > 1e-9 {
				t.Errorf("Normalize(%v + 360*%d) = %v, want %v", a, k, got, base)
			}
		}
	}
}

// TestAngularDistance_Symmetry checks symmetry and the [0,180] range.
func TestAngularDistance_Symmetry(t *testing.T) {
	pairs := [][2]float64{
		{0, 0}, {0, 180}, {10, 350}, {359, 1}, {90, 270}, {-30, 30}, {720, 90},
	}
	for _, p := range pairs {
		ab := AngularDistance(p[0], p[1])
		ba := AngularDistance(p[1], p[0])
		if ab != ba {
			t.Errorf("AngularDistance(%v,%v)=%v != AngularDistance(%v,%v)=%v",
				p[0], p[1], ab, p[1], p[0], ba)
		}
		if ab < 0 || ab > 180 {
			t.Errorf("AngularDistance(%v,%v) = %v, outside [0,180]", p[0], p[1], ab)
		}
	}
}

// TestAngularDistance_Values checks the short-arc rule.
func TestAngularDistance_Values(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{0, 90, 90},
		{0, 180, 180},
		{0, 181, 179},
		{10, 350, 20},
		{359, 1, 2},
	}
	for _, tt := range tests {
		if got := AngularDistance(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("AngularDistance(%v,%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

// TestDMS_Boundaries verifies carry behavior at sexagesimal boundaries.
func TestDMS_Boundaries(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		want  DegMinSec
	}{
		{"zero", 0, DegMinSec{0, 0, 0}},
		{"whole degrees", 45, DegMinSec{45, 0, 0}},
		{"half degree", 10.5, DegMinSec{10, 30, 0}},
		{"seconds carry", 29.9999999999, DegMinSec{30, 0, 0}},
		{"minute carry", 10.999999, DegMinSec{11, 0, 0}},
		{"degree wrap", 359.9999999999, DegMinSec{0, 0, 0}},
		{"plain seconds", 0.5097222222, DegMinSec{0, 30, 35}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DMS(tt.angle); got != tt.want {
				t.Errorf("DMS(%v) = %+v, want %+v", tt.angle, got, tt.want)
			}
		})
	}
}

// TestDMS_RoundTrip checks the reconstruction stays within one arcsecond.
func TestDMS_RoundTrip(t *testing.T) {
	angles := []float64{0, 0.001, 12.3456, 100.9999, 255.5, 359.5}
	for _, a := range angles {
		dms := DMS(a)
		back := dms.Degrees64()
		if AngularDistance(a, back) > 1.0/3600 {
			t.Errorf("DMS round trip for %v: got %v (%+v)", a, back, dms)
		}
	}
}

// TestDMS_NeverSixty guards against 60 appearing in minutes or seconds.
func TestDMS_NeverSixty(t *testing.T) {
	for a := 0.0; a < 360; a += 0.4999 {
		dms := DMS(a)
		if dms.Minutes >= 60 || dms.Seconds >= 60 {
			t.Fatalf("DMS(%v) = %+v, has field >= 60", a, dms)
		}
		if dms.Degrees < 0 || dms.Degrees >= 360 {
			t.Fatalf("DMS(%v) = %+v, degrees out of range", a, dms)
		}
	}
}

func TestDegMinSec_String(t *testing.T) {
	got := DegMinSec{29, 59, 59}.String()
	if got != `29°59'59"` {
		t.Errorf("String() = %q", got)
	}
}
