package scene

import "github.com/jjovelc/CheckleyS-ButterA-EcoliGen/internal/genome"

// Default strand colors.
const (
	DefaultForwardColor = "#2c7bb6"
	DefaultReverseColor = "#d7601c"
)

// ColorState is the strand-class color assignment owned by one renderer
// instance. It always holds exactly the two strand classes and lives for
// the instance lifetime; it is never shared between instances.
type ColorState struct {
	byStrand map[genome.Strand]string
}

// NewColorState returns a color state with the default assignment.
func NewColorState() *ColorState {
	return &ColorState{
		byStrand: map[genome.Strand]string{
			genome.StrandForward: DefaultForwardColor,
			genome.StrandReverse: DefaultReverseColor,
		},
	}
}

// Color returns the current color of a strand class.
func (c *ColorState) Color(strand genome.Strand) string {
	return c.byStrand[strand]
}

// Set reassigns one strand class. Unknown strands are ignored so the state
// can never grow past its two keys.
func (c *ColorState) Set(strand genome.Strand, color string) {
	if !strand.Valid() {
		return
	}
	c.byStrand[strand] = color
}
