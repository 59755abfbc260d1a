// Package render turns a computed chart into a PNG wheel.
//
// Rendering is a pure function of the chart result and a fixed Style:
// the same result rendered twice yields byte-identical output, so the
// image can live next to the JSON artifact in the content-addressed
// cache without a separate freshness check.
//
// The wheel is drawn in polar projection rotated so the Ascendant lands
// on the left edge. The zodiac ring, house cusp spokes, body markers
// and aspect chords are each drawn from longitudes already present in
// the result; the renderer performs no astronomical derivation of its
// own. A point with no configured label still gets a marker, and a
// point missing from the result is skipped. Rendering never fails for
// cosmetic reasons.
//
// Example:
//
//	r := render.NewRenderer(render.Style{})
//	png, err := r.Render(result)
//	if err != nil {
//		log.Fatal(err)
//	}
//	os.WriteFile("chart.png", png, 0o644)
package render
