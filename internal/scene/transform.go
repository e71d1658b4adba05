package scene

// Zoom scale clamp. One canonical policy for all gestures.
const (
	MinScale = 0.5
	MaxScale = 10.0
)

// Transform is the single pan/zoom state applied to the zoomable group.
// It is stored as one canonical value and gestures replace it wholesale,
// so reapplying the same gesture delta can never compound.
type Transform struct {
	TranslateX float64
	TranslateY float64
	Scale      float64
}

// IdentityTransform returns the neutral transform.
func IdentityTransform() Transform {
	return Transform{Scale: 1}
}

// ClampScale bounds a scale factor to [MinScale, MaxScale].
func ClampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}

// ZoomedAt returns the transform after scaling by factor about the fixed
// canvas point (x, y). The point stays stationary on screen; the scale is
// clamped and the translation adjusted for the clamp-effective factor.
func (t Transform) ZoomedAt(factor, x, y float64) Transform {
	scaled := ClampScale(t.Scale * factor)
	effective := scaled / t.Scale
	return Transform{
		TranslateX: x - effective*(x-t.TranslateX),
		TranslateY: y - effective*(y-t.TranslateY),
		Scale:      scaled,
	}
}

// PannedBy returns the transform shifted by a canvas-space delta.
func (t Transform) PannedBy(dx, dy float64) Transform {
	t.TranslateX += dx
	t.TranslateY += dy
	return t
}

// Apply maps a scene-space point to canvas space.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.TranslateX + t.Scale*x, t.TranslateY + t.Scale*y
}

// Invert maps a canvas-space point back to scene space.
func (t Transform) Invert(x, y float64) (float64, float64) {
	return (x - t.TranslateX) / t.Scale, (y - t.TranslateY) / t.Scale
}
