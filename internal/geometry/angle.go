// Package geometry maps genomic coordinates onto a circular track.
//
// Genome angles are measured in radians on [0, 2π], with position 0 at the
// top of the circle and angles growing clockwise. Canvas drawing conventions
// put angle zero at the right, so CanvasAngle applies the fixed rotation when
// shapes are emitted.
package geometry

import (
	"errors"
	"fmt"
	"math"
)

const (
	// TrackWidth is the radial thickness of the gene track in display units.
	TrackWidth = 20.0

	// LabelMargin is the space reserved between the outer ring and the
	// viewport edge for the title and legend.
	LabelMargin = 60.0
)

// ErrWrapAround reports a gene whose end precedes its start. Wrap-around
// spans across the origin are a data-contract violation; callers log and
// skip the gene rather than rendering inverted angles.
var ErrWrapAround = errors.New("gene wraps around the origin")

// Scale is the linear map from [0, Length] to [0, 2π].
type Scale struct {
	Length int64
}

// NewScale creates an angle scale for a genome of the given length.
func NewScale(length int64) (*Scale, error) {
	if length <= 0 {
		return nil, fmt.Errorf("genome length must be positive, got %d", length)
	}
	return &Scale{Length: length}, nil
}

// AngleOf returns the genome angle of a position. AngleOf(0) == 0 and
// AngleOf(Length) == 2π. Positions outside [0, Length] extrapolate linearly;
// out-of-range annotations are rendered as delivered, not repaired.
func (s *Scale) AngleOf(pos int64) float64 {
	return 2 * math.Pi * float64(pos) / float64(s.Length)
}

// Arc is the angular footprint of one gene on the track.
type Arc struct {
	StartAngle  float64
	EndAngle    float64
	InnerRadius float64
	OuterRadius float64
}

// Span returns the angular extent of the arc.
func (a Arc) Span() float64 {
	return a.EndAngle - a.StartAngle
}

// ArcFor computes the arc for a gene span between the given radii.
// Returns ErrWrapAround when end < start.
func (s *Scale) ArcFor(start, end int64, inner, outer float64) (Arc, error) {
	if end < start {
		return Arc{}, fmt.Errorf("span %d-%d: %w", start, end, ErrWrapAround)
	}
	return Arc{
		StartAngle:  s.AngleOf(start),
		EndAngle:    s.AngleOf(end),
		InnerRadius: inner,
		OuterRadius: outer,
	}, nil
}

// BaseRadius derives the outer track radius from the viewport size: half the
// smaller dimension, minus the label margin.
func BaseRadius(width, height float64) float64 {
	r := math.Min(width, height)/2 - LabelMargin
	if r < TrackWidth {
		r = TrackWidth
	}
	return r
}

// CanvasAngle converts a genome angle to the canvas convention where angle
// zero points right and y grows downward.
func CanvasAngle(theta float64) float64 {
	return theta - math.Pi/2
}

// PolarAt returns the radius and genome angle of a canvas point relative to
// the circle center. The angle is normalized to [0, 2π).
func PolarAt(x, y, cx, cy float64) (radius, angle float64) {
	dx, dy := x-cx, y-cy
	radius = math.Hypot(dx, dy)
	angle = math.Atan2(dy, dx) + math.Pi/2
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return radius, angle
}
