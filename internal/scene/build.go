package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jjovelc/CheckleyS-ButterA-EcoliGen/internal/genome"
	"github.com/jjovelc/CheckleyS-ButterA-EcoliGen/internal/geometry"
)

// Layout constants for the non-track parts of the scene.
const (
	ringStroke      = "#555555"
	ringStrokeWidth = 1.0
	titleFontSize   = 16.0
	titleFill       = "#333333"
	legendInset     = 16.0
)

// Builder constructs scenes from gene lists.
type Builder struct {
	logger *zap.Logger
}

// NewBuilder creates a scene builder.
func NewBuilder() *Builder {
	return &Builder{logger: zap.NewNop()}
}

// SetLogger sets the logger for skipped-gene warnings.
func (b *Builder) SetLogger(l *zap.Logger) {
	b.logger = l
}

// Build lays out one render pass: rings, center title, one arc per valid
// gene, and the legend. Genes whose end precedes their start are logged and
// skipped. An empty gene list yields rings and title only, not an error.
func (b *Builder) Build(genes []genome.Gene, ctx genome.Context, width, height float64, colors *ColorState) (*Scene, error) {
	scale, err := geometry.NewScale(ctx.Length)
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}

	outer := geometry.BaseRadius(width, height)
	inner := outer - geometry.TrackWidth
	cx, cy := width/2, height/2

	s := &Scene{
		Width:      width,
		Height:     height,
		CenterX:    cx,
		CenterY:    cy,
		TrackInner: inner,
		TrackOuter: outer,
		Transform:  IdentityTransform(),
		Tooltip:    Tooltip{ArcIndex: -1},
		byStrand:   make(map[genome.Strand][]*Arc),
	}

	s.Rings = []*Ring{
		{Radius: outer, Stroke: ringStroke, StrokeWidth: ringStrokeWidth},
		{Radius: inner, Stroke: ringStroke, StrokeWidth: ringStrokeWidth},
	}

	s.Title = &Label{
		X:          cx,
		Y:          cy,
		Text:       ctx.Filename,
		FontSize:   titleFontSize,
		FontFamily: DefaultFontFamily,
		Fill:       titleFill,
		Anchor:     "middle",
	}

	for i, g := range genes {
		arc, err := scale.ArcFor(g.Start, g.End, inner, outer)
		if err != nil {
			b.logger.Warn("skipping gene with invalid span",
				zap.String("gene", g.DisplayName()),
				zap.Int64("start", g.Start),
				zap.Int64("end", g.End),
				zap.Error(err))
			continue
		}

		node := &Arc{
			Geometry: arc,
			Fill:     colors.Color(g.Strand),
			Name:     g.DisplayName(),
			Product:  g.Product,
			Strand:   g.Strand,
			Index:    i,
		}
		s.Arcs = append(s.Arcs, node)
		s.byStrand[g.Strand] = append(s.byStrand[g.Strand], node)
	}

	s.Legend = &Legend{
		X: legendInset,
		Y: legendInset,
		Entries: []*LegendEntry{
			{Strand: genome.StrandForward, Label: "Forward (+)", Swatch: colors.Color(genome.StrandForward)},
			{Strand: genome.StrandReverse, Label: "Reverse (-)", Swatch: colors.Color(genome.StrandReverse)},
		},
	}

	return s, nil
}
