package scene

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjovelc/CheckleyS-ButterA-EcoliGen/internal/genome"
)

func TestTruncateProduct(t *testing.T) {
	assert.Equal(t, "", TruncateProduct(""))
	assert.Equal(t, "short product", TruncateProduct("short product"))

	exact := strings.Repeat("a", ProductCharBudget)
	assert.Equal(t, exact, TruncateProduct(exact), "exactly at budget is not cut")

	long := strings.Repeat("a", ProductCharBudget+10)
	got := TruncateProduct(long)
	assert.Equal(t, strings.Repeat("a", ProductCharBudget)+"…", got)
}

func TestTooltip_SingleOverlay(t *testing.T) {
	genes := []genome.Gene{
		{Start: 0, End: 100, Strand: genome.StrandForward, Name: "a", Product: "alpha"},
		{Start: 50, End: 150, Strand: genome.StrandReverse, Name: "b", Product: "beta"},
	}
	s := buildScene(t, genes, 1000, "g")

	assert.False(t, s.Tooltip.Visible)
	assert.Equal(t, -1, s.Tooltip.ArcIndex)

	s.ShowTooltip(s.Arcs[0], 10, 20)
	require.True(t, s.Tooltip.Visible)
	assert.Equal(t, "a", s.Tooltip.Title)
	assert.Equal(t, "alpha", s.Tooltip.Subtitle)
	assert.Equal(t, 0, s.Tooltip.ArcIndex)

	// Moving onto an overlapping arc replaces the overlay, never duplicates.
	s.ShowTooltip(s.Arcs[1], 15, 25)
	assert.Equal(t, "b", s.Tooltip.Title)
	assert.Equal(t, 1, s.Tooltip.ArcIndex)

	s.MoveTooltip(30, 40)
	assert.Equal(t, 30.0, s.Tooltip.X)
	assert.Equal(t, "b", s.Tooltip.Title, "move keeps content")

	s.HideTooltip()
	assert.False(t, s.Tooltip.Visible)
	assert.Equal(t, -1, s.Tooltip.ArcIndex)

	s.MoveTooltip(99, 99)
	assert.False(t, s.Tooltip.Visible, "moving a hidden overlay does nothing")
	assert.Equal(t, 0.0, s.Tooltip.X)
}
