// Package export serializes a prepared scene snapshot to vector and raster
// artifacts. Exports never read live view state directly: the prepare step
// produces a deterministic snapshot first, so concurrent exports and hover
// churn cannot leak into the output.
package export

import (
	"path/filepath"
	"strings"

	"github.com/jjovelc/CheckleyS-ButterA-EcoliGen/internal/scene"
)

// FontFamily is the concrete family pinned into every export, replacing the
// live view's font stack so output never depends on ambient styling.
const FontFamily = "Helvetica"

// DefaultBaseName is the artifact base name used when the genome has no
// display filename.
const DefaultBaseName = "genome_map"

// Legend layout shared by both writers.
const (
	legendSwatchSize = 12.0
	legendRowHeight  = 18.0
	legendTextGap    = 6.0
	legendFontSize   = 12.0
	legendTextFill   = "#333333"
)

// Prepare returns a deterministic snapshot of the scene: the tooltip is
// stripped, arc fills and legend swatches are forced to the live color
// state, and the title font is pinned to FontFamily. The pan/zoom transform
// is retained so exports match the live view. Prepare never mutates its
// input and is idempotent.
func Prepare(s *scene.Scene, colors *scene.ColorState) *scene.Scene {
	snap := &scene.Scene{
		Width:      s.Width,
		Height:     s.Height,
		CenterX:    s.CenterX,
		CenterY:    s.CenterY,
		TrackInner: s.TrackInner,
		TrackOuter: s.TrackOuter,
		Transform:  s.Transform,
		Tooltip:    scene.Tooltip{ArcIndex: -1},
	}

	for _, r := range s.Rings {
		ring := *r
		snap.Rings = append(snap.Rings, &ring)
	}

	if s.Title != nil {
		title := *s.Title
		title.FontFamily = FontFamily
		snap.Title = &title
	}

	for _, a := range s.Arcs {
		arc := *a
		arc.Fill = colors.Color(a.Strand)
		snap.Arcs = append(snap.Arcs, &arc)
	}

	if s.Legend != nil {
		legend := &scene.Legend{X: s.Legend.X, Y: s.Legend.Y}
		for _, e := range s.Legend.Entries {
			entry := *e
			entry.Swatch = colors.Color(e.Strand)
			legend.Entries = append(legend.Entries, &entry)
		}
		snap.Legend = legend
	}

	return snap
}

// baseName derives the artifact base name from the genome display filename.
func baseName(filename string) string {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return DefaultBaseName
	}
	return name
}

// SVGName returns the vector artifact filename for a genome label.
func SVGName(filename string) string {
	return baseName(filename) + ".svg"
}

// PNGName returns the raster artifact filename for a genome label.
func PNGName(filename string) string {
	return baseName(filename) + ".png"
}
