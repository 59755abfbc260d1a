package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"

	"github.com/jonwraymond/astrochart/astro"
	"github.com/jonwraymond/astrochart/chart"
)

// Renderer draws chart wheels under a fixed Style.
//
// A Renderer is stateless after construction and safe for concurrent use.
type Renderer struct {
	style Style
}

// NewRenderer creates a Renderer, applying defaults for zero-value
// Style fields.
func NewRenderer(style Style) *Renderer {
	return &Renderer{style: style.withDefaults()}
}

// Render draws the chart wheel for a computed result and returns the
// encoded PNG. Output is deterministic: identical results render to
// identical bytes.
func (r *Renderer) Render(res *chart.Result) ([]byte, error) {
	if res == nil {
		return nil, ErrNilResult
	}

	s := r.style
	dc := gg.NewContext(s.Size, s.Size)
	dc.SetFontFace(s.Font)

	dc.SetHexColor(s.Background)
	dc.Clear()

	// All longitudes rotate so the Ascendant projects to the left edge.
	// With no Ascendant in the result the wheel stays in absolute
	// orientation, 0 degrees Aries on the left.
	asc, _ := res.PositionOf(string(astro.AngleASC))

	w := wheel{
		dc:     dc,
		cx:     float64(s.Size) / 2,
		cy:     float64(s.Size) / 2,
		rotate: asc,
	}
	outer := w.cx - s.Margin
	zodiacInner := outer * 0.85
	bodyRing := outer * 0.72
	chordRing := outer * 0.60
	houseLabelRing := outer * 0.42

	r.drawZodiacRing(w, outer, zodiacInner)
	r.drawCusps(w, res.Cusps, zodiacInner, houseLabelRing)
	r.drawAspects(w, res, chordRing)
	r.drawPoints(w, res.Positions, bodyRing)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodeImage, err)
	}
	return buf.Bytes(), nil
}

// wheel carries the polar projection shared by all drawing passes.
type wheel struct {
	dc     *gg.Context
	cx, cy float64
	rotate float64
}

// project maps an ecliptic longitude and radius to canvas coordinates.
// Longitude increases counterclockwise; the rotation reference lands at
// nine o'clock.
func (w wheel) project(lon, radius float64) (x, y float64) {
	theta := gg.Radians(180 + astro.Normalize(lon-w.rotate))
	return w.cx + radius*math.Cos(theta), w.cy - radius*math.Sin(theta)
}

func (r *Renderer) drawZodiacRing(w wheel, outer, inner float64) {
	dc := w.dc
	dc.SetLineWidth(r.style.RingWidth)
	dc.SetHexColor(r.style.RingColor)
	dc.DrawCircle(w.cx, w.cy, outer)
	dc.Stroke()
	dc.DrawCircle(w.cx, w.cy, inner)
	dc.Stroke()

	for i := 0; i < 12; i++ {
		lon := float64(i) * 30
		x1, y1 := w.project(lon, inner)
		x2, y2 := w.project(lon, outer)
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
	}

	dc.SetHexColor(r.style.TextColor)
	mid := (outer + inner) / 2
	for i, label := range signLabels {
		x, y := w.project(float64(i)*30+15, mid)
		dc.DrawStringAnchored(label, x, y, 0.5, 0.5)
	}
}

func (r *Renderer) drawCusps(w wheel, cusps []chart.Cusp, outer, labelRing float64) {
	dc := w.dc
	dc.SetLineWidth(r.style.RingWidth)
	dc.SetHexColor(r.style.SpokeColor)
	for _, c := range cusps {
		x, y := w.project(c.Longitude, outer)
		dc.DrawLine(w.cx, w.cy, x, y)
		dc.Stroke()
	}

	if len(cusps) != 12 {
		return
	}
	dc.SetHexColor(r.style.TextColor)
	for i, c := range cusps {
		next := cusps[(i+1)%12]
		span := astro.Normalize(next.Longitude - c.Longitude)
		if span == 0 {
			span = 30
		}
		x, y := w.project(c.Longitude+span/2, labelRing)
		dc.DrawStringAnchored(fmt.Sprintf("%d", c.House), x, y, 0.5, 0.5)
	}
}

func (r *Renderer) drawAspects(w wheel, res *chart.Result, ring float64) {
	dc := w.dc
	dc.SetLineWidth(r.style.ChordWidth)
	for _, a := range res.Aspects {
		lon1, ok1 := res.PositionOf(a.First)
		lon2, ok2 := res.PositionOf(a.Second)
		if !ok1 || !ok2 {
			continue
		}
		color := a.Color
		if color == "" {
			color = r.style.PointColor
		}
		dc.SetHexColor(color)
		x1, y1 := w.project(lon1, ring)
		x2, y2 := w.project(lon2, ring)
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
	}
}

func (r *Renderer) drawPoints(w wheel, positions []chart.Position, ring float64) {
	dc := w.dc
	for _, p := range positions {
		x, y := w.project(p.Longitude, ring)
		dc.SetHexColor(r.style.PointColor)
		dc.DrawCircle(x, y, 4)
		dc.Fill()

		label, ok := r.style.Labels[p.Point]
		if !ok {
			continue
		}
		lx, ly := w.project(p.Longitude, ring+18)
		dc.SetHexColor(r.style.TextColor)
		dc.DrawStringAnchored(label, lx, ly, 0.5, 0.5)
	}
}
