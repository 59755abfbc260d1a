package render

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Style is the fixed visual configuration for a chart wheel. Two renders
// of the same result under the same Style produce identical bytes, so a
// Style change is the only reason to invalidate cached images.
type Style struct {
	// Size is the canvas width and height in pixels.
	// Default: 800.
	Size int

	// Margin is the gap between the canvas edge and the outer ring.
	// Default: 20.
	Margin float64

	// Background is the canvas fill color as a hex string.
	// Default: "#ffffff".
	Background string

	// RingColor strokes the zodiac ring and sign boundaries.
	// Default: "#333333".
	RingColor string

	// SpokeColor strokes the house cusp spokes.
	// Default: "#999999".
	SpokeColor string

	// PointColor fills the body and angle markers.
	// Default: "#111111".
	PointColor string

	// TextColor draws labels.
	// Default: "#111111".
	TextColor string

	// RingWidth is the stroke width for rings and spokes.
	// Default: 1.5.
	RingWidth float64

	// ChordWidth is the stroke width for aspect chords.
	// Default: 1.0.
	ChordWidth float64

	// Font draws all labels. Default: basicfont.Face7x13.
	Font font.Face

	// Labels maps a point ID to the text drawn beside its marker. A point
	// absent from the map gets a marker with no label. Default: short
	// names for every supported body and angle.
	Labels map[string]string
}

// defaultLabels covers every supported point ID.
var defaultLabels = map[string]string{
	"sun":     "Sun",
	"moon":    "Moon",
	"mercury": "Mer",
	"venus":   "Ven",
	"mars":    "Mar",
	"jupiter": "Jup",
	"saturn":  "Sat",
	"uranus":  "Ura",
	"neptune": "Nep",
	"pluto":   "Plu",
	"asc":     "ASC",
	"mc":      "MC",
	"dsc":     "DSC",
	"ic":      "IC",
}

// signLabels in zodiac order starting at 0 degrees Aries.
var signLabels = [12]string{
	"Ari", "Tau", "Gem", "Can", "Leo", "Vir",
	"Lib", "Sco", "Sag", "Cap", "Aqu", "Pis",
}

func (s Style) withDefaults() Style {
	if s.Size <= 0 {
		s.Size = 800
	}
	if s.Margin <= 0 {
		s.Margin = 20
	}
	if s.Background == "" {
		s.Background = "#ffffff"
	}
	if s.RingColor == "" {
		s.RingColor = "#333333"
	}
	if s.SpokeColor == "" {
		s.SpokeColor = "#999999"
	}
	if s.PointColor == "" {
		s.PointColor = "#111111"
	}
	if s.TextColor == "" {
		s.TextColor = "#111111"
	}
	if s.RingWidth <= 0 {
		s.RingWidth = 1.5
	}
	if s.ChordWidth <= 0 {
		s.ChordWidth = 1.0
	}
	if s.Font == nil {
		s.Font = basicfont.Face7x13
	}
	if s.Labels == nil {
		s.Labels = defaultLabels
	}
	return s
}
