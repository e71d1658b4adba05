// Package scene builds the drawable primitive tree for one render pass and
// owns the mutable view state: strand colors, the pan/zoom transform, and
// the shared tooltip overlay.
package scene

import (
	"github.com/jjovelc/CheckleyS-ButterA-EcoliGen/internal/genome"
	"github.com/jjovelc/CheckleyS-ButterA-EcoliGen/internal/geometry"
)

// DefaultFontFamily is the font stack used by the live view. Export pins it
// to a concrete family during the prepare step.
const DefaultFontFamily = "Helvetica, Arial, sans-serif"

// Ring is a stroked, unfilled circle centered on the map.
type Ring struct {
	Radius      float64
	Stroke      string
	StrokeWidth float64
}

// Label is a text node positioned in scene space.
type Label struct {
	X, Y       float64
	Text       string
	FontSize   float64
	FontFamily string
	Fill       string
	Anchor     string // "start" or "middle"
}

// Arc is one gene's rendered shape. The Index field is the stable
// back-reference to the source gene; recoloring and tooltip lookup go
// through it and never re-derive data from visual position.
type Arc struct {
	Geometry geometry.Arc
	Fill     string
	Name     string
	Product  string
	Strand   genome.Strand
	Index    int
}

// LegendEntry is one strand class row in the legend.
type LegendEntry struct {
	Strand genome.Strand
	Label  string
	Swatch string // current swatch fill, kept in sync with the color state
}

// Legend is pinned to a screen-relative corner and excluded from the
// zoomable group, so it is unaffected by pan and zoom.
type Legend struct {
	X, Y    float64
	Entries []*LegendEntry
}

// Tooltip is the single reusable hover overlay. It transitions between
// hidden and showing and is repositioned rather than recreated, so at most
// one overlay exists in the scene by construction.
type Tooltip struct {
	Visible  bool
	X, Y     float64 // position in scene space
	Title    string
	Subtitle string
	ArcIndex int // arc currently owning the overlay, -1 when hidden
}

// Scene is the full primitive tree for one render pass. Geometry is
// immutable after Build; only fills, the transform, and the tooltip mutate.
type Scene struct {
	Width, Height    float64
	CenterX, CenterY float64
	TrackInner       float64
	TrackOuter       float64

	Rings   []*Ring
	Title   *Label
	Arcs    []*Arc
	Legend  *Legend
	Tooltip Tooltip

	// Transform is the canonical pan/zoom state applied to everything
	// except the legend and is replaced wholesale on every gesture.
	Transform Transform

	byStrand map[genome.Strand][]*Arc
}

// ArcsFor returns the arcs owned by a strand class.
func (s *Scene) ArcsFor(strand genome.Strand) []*Arc {
	return s.byStrand[strand]
}

// SetStrandColor recolors every arc of one strand class and its legend
// swatch in place. Geometry, transform, and tooltip state are untouched.
func (s *Scene) SetStrandColor(strand genome.Strand, color string) {
	for _, a := range s.byStrand[strand] {
		a.Fill = color
	}
	for _, e := range s.Legend.Entries {
		if e.Strand == strand {
			e.Swatch = color
		}
	}
}
