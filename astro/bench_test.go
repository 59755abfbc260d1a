package astro

import "testing"

func BenchmarkDetectAspects(b *testing.B) {
	positions := make(map[Point]float64, 14)
	for i, p := range PointOrder() {
		positions[p] = float64(i*37) + 3.7
	}
	catalog := DefaultAspectCatalog()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		DetectAspects(positions, catalog)
	}
}

func BenchmarkDMS(b *testing.B) {
	for i := 0; i < b.N; i++ {
		DMS(123.456789)
	}
}
