package astro

import "errors"

// ErrHouseIndex is returned for house indexes outside 1..12.
var ErrHouseIndex = errors.New("astro: house index out of range")

// CuspSource exposes whatever cusp and ascendant longitudes an ephemeris
// provider was able to compute. Both lookups report absence rather than
// erroring so the fallback chain stays explicit.
type CuspSource interface {
	// Cusp returns the longitude for a house index, if the provider has it.
	Cusp(index int) (float64, bool)

	// Ascendant returns the ascendant longitude, if known.
	Ascendant() (float64, bool)
}

// ResolveCusp returns the cusp longitude for houses 1..12, falling through:
//
//  1. the provider's own cusp for that index,
//  2. ascendant + (index-1)*30° when the ascendant is known (equal houses),
//  3. origin + (index-1)*30° as the final equal-house approximation.
//
// Each call is independent, so a provider that fails for a single index
// degrades that one house to equal spacing without touching the others.
// The result is always normalized to [0, 360).
func ResolveCusp(src CuspSource, index int, origin float64) (float64, error) {
	if index < 1 || index > 12 {
		return 0, ErrHouseIndex
	}
	if src != nil {
		if lon, ok := src.Cusp(index); ok {
			return Normalize(lon), nil
		}
		if asc, ok := src.Ascendant(); ok {
			return Normalize(asc + float64(index-1)*30), nil
		}
	}
	return Normalize(origin + float64(index-1)*30), nil
}
