package astro

import "sort"

// Body identifies a celestial body.
type Body string

// Supported bodies.
const (
	BodySun     Body = "sun"
	BodyMoon    Body = "moon"
	BodyMercury Body = "mercury"
	BodyVenus   Body = "venus"
	BodyMars    Body = "mars"
	BodyJupiter Body = "jupiter"
	BodySaturn  Body = "saturn"
	BodyUranus  Body = "uranus"
	BodyNeptune Body = "neptune"
	BodyPluto   Body = "pluto"
)

// ChartAngle identifies one of the four derived chart angles.
type ChartAngle string

// Supported chart angles.
const (
	AngleASC ChartAngle = "asc"
	AngleMC  ChartAngle = "mc"
	AngleDSC ChartAngle = "dsc"
	AngleIC  ChartAngle = "ic"
)

// PointKind discriminates a Point.
type PointKind int

const (
	// KindBody marks a celestial body point.
	KindBody PointKind = iota
	// KindAngle marks a chart-angle point.
	KindAngle
)

// Point is a longitude-bearing chart point: either a celestial body or a
// chart angle. It unifies aspect detection input regardless of origin.
type Point struct {
	Kind  PointKind
	Body  Body
	Angle ChartAngle
}

// BodyPoint wraps a Body as a Point.
func BodyPoint(b Body) Point {
	return Point{Kind: KindBody, Body: b}
}

// AnglePoint wraps a ChartAngle as a Point.
func AnglePoint(a ChartAngle) Point {
	return Point{Kind: KindAngle, Angle: a}
}

// ID returns the stable identifier for the point ("sun", "asc", ...).
func (p Point) ID() string {
	if p.Kind == KindAngle {
		return string(p.Angle)
	}
	return string(p.Body)
}

// Bodies lists all supported bodies in catalog declaration order.
func Bodies() []Body {
	return []Body{
		BodySun, BodyMoon, BodyMercury, BodyVenus, BodyMars,
		BodyJupiter, BodySaturn, BodyUranus, BodyNeptune, BodyPluto,
	}
}

// ChartAngles lists the four chart angles in catalog declaration order.
func ChartAngles() []ChartAngle {
	return []ChartAngle{AngleASC, AngleMC, AngleDSC, AngleIC}
}

// PointOrder lists every supported point in the fixed catalog order used for
// pair enumeration. The order is load-bearing: it fixes which element of an
// aspect pair comes first, independent of input map iteration.
func PointOrder() []Point {
	order := make([]Point, 0, 14)
	for _, b := range Bodies() {
		order = append(order, BodyPoint(b))
	}
	for _, a := range ChartAngles() {
		order = append(order, AnglePoint(a))
	}
	return order
}

var pointRank = buildPointRank()

func buildPointRank() map[Point]int {
	rank := make(map[Point]int, 14)
	for i, p := range PointOrder() {
		rank[p] = i
	}
	return rank
}

// SortPoints orders points by catalog rank. Points outside the catalog sort
// after known points, by ID, so detection stays deterministic even for
// provider-specific extras.
func SortPoints(pts []Point) {
	sort.Slice(pts, func(i, j int) bool {
		ri, iKnown := pointRank[pts[i]]
		rj, jKnown := pointRank[pts[j]]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return pts[i].ID() < pts[j].ID()
		}
	})
}
