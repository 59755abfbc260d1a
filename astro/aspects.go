package astro

import "math"

// AspectType names an angular relationship between two chart points.
type AspectType string

// Aspect catalog entries.
const (
	Conjunction AspectType = "conjunction"
	Sextile     AspectType = "sextile"
	Square      AspectType = "square"
	Trine       AspectType = "trine"
	Opposition  AspectType = "opposition"
	Semisextile AspectType = "semisextile"
	Semisquare  AspectType = "semisquare"
	Quincunx    AspectType = "quincunx"
	Quintile    AspectType = "quintile"
	Biquintile  AspectType = "biquintile"
)

// AspectDef is one catalog entry: the exact angle, the maximum orb within
// which a pair matches, and the color tag used by the renderer.
type AspectDef struct {
	Type  AspectType `json:"type"`
	Angle float64    `json:"angle"`
	Orb   float64    `json:"orb"`
	Color string     `json:"color"`
}

// DefaultAspectCatalog returns the aspect catalog in its fixed declaration
// order. The scan order decides tie-breaks when orbs overlap (a pair at 90°
// matches square before quincunx is ever considered), so entries must not be
// re-sorted by angle or name.
func DefaultAspectCatalog() []AspectDef {
	return []AspectDef{
		{Type: Conjunction, Angle: 0, Orb: 8, Color: "#e0b000"},
		{Type: Sextile, Angle: 60, Orb: 4, Color: "#2e8b57"},
		{Type: Square, Angle: 90, Orb: 6, Color: "#c03030"},
		{Type: Trine, Angle: 120, Orb: 6, Color: "#2060c0"},
		{Type: Opposition, Angle: 180, Orb: 8, Color: "#803080"},
		{Type: Semisextile, Angle: 30, Orb: 2, Color: "#70a070"},
		{Type: Semisquare, Angle: 45, Orb: 2, Color: "#c07040"},
		{Type: Quincunx, Angle: 150, Orb: 3, Color: "#508080"},
		{Type: Quintile, Angle: 72, Orb: 2, Color: "#8080c0"},
		{Type: Biquintile, Angle: 144, Orb: 2, Color: "#a060a0"},
	}
}

// Aspect is one matched relationship between two points. First and Second
// hold the point IDs in catalog order, so the same unordered pair always
// serializes identically.
type Aspect struct {
	First    string     `json:"first"`
	Second   string     `json:"second"`
	Type     AspectType `json:"type"`
	Angle    float64    `json:"angle"`
	Orb      float64    `json:"orb"`
	AngleDMS DegMinSec  `json:"angle_dms"`
	Color    string     `json:"color"`
}

// DetectAspects finds every matched pair among the given point longitudes.
//
// Pairs are enumerated in catalog point order regardless of the iteration
// order of the input map, and the catalog is scanned in declaration order:
// the first entry whose orb covers the measured separation wins and ends the
// scan for that pair. A pair therefore contributes at most one aspect.
func DetectAspects(positions map[Point]float64, catalog []AspectDef) []Aspect {
	pts := make([]Point, 0, len(positions))
	for p := range positions {
		pts = append(pts, p)
	}
	SortPoints(pts)

	var aspects []Aspect
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			dist := AngularDistance(positions[pts[i]], positions[pts[j]])
			for _, def := range catalog {
				if math.Abs(dist-def.Angle) <= def.Orb {
					aspects = append(aspects, Aspect{
						First:    pts[i].ID(),
						Second:   pts[j].ID(),
						Type:     def.Type,
						Angle:    dist,
						Orb:      math.Abs(dist - def.Angle),
						AngleDMS: DMS(dist),
						Color:    def.Color,
					})
					break
				}
			}
		}
	}
	return aspects
}
