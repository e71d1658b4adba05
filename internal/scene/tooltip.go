package scene

// ProductCharBudget is the display budget for the tooltip's product line.
const ProductCharBudget = 25

// TruncateProduct shortens a product description to the character budget,
// appending an ellipsis when it was cut.
func TruncateProduct(product string) string {
	runes := []rune(product)
	if len(runes) <= ProductCharBudget {
		return product
	}
	return string(runes[:ProductCharBudget]) + "…"
}

// ShowTooltip moves the shared overlay over the given arc at a scene-space
// position. Any previously showing state is overwritten, never duplicated.
func (s *Scene) ShowTooltip(a *Arc, x, y float64) {
	s.Tooltip = Tooltip{
		Visible:  true,
		X:        x,
		Y:        y,
		Title:    a.Name,
		Subtitle: TruncateProduct(a.Product),
		ArcIndex: a.Index,
	}
}

// MoveTooltip repositions a showing overlay without changing its content.
func (s *Scene) MoveTooltip(x, y float64) {
	if !s.Tooltip.Visible {
		return
	}
	s.Tooltip.X = x
	s.Tooltip.Y = y
}

// HideTooltip returns the overlay to the hidden state.
func (s *Scene) HideTooltip() {
	s.Tooltip = Tooltip{ArcIndex: -1}
}
