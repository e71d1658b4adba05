package render

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjovelc/CheckleyS-ButterA-EcoliGen/internal/genome"
	"github.com/jjovelc/CheckleyS-ButterA-EcoliGen/internal/scene"
)

// Geometry facts for the 400x400 viewport used throughout: center (200,200),
// outer radius 140, inner radius 120.
func newTestRenderer(t *testing.T) (*Renderer, *MemoryContainer) {
	t.Helper()
	mc := NewMemoryContainer()
	r, err := New(mc, Options{Width: 400, Height: 400})
	require.NoError(t, err)
	return r, mc
}

func loadTwoGenes(t *testing.T, r *Renderer) {
	t.Helper()
	err := r.LoadPayload(&genome.Payload{
		Genes: []genome.Gene{
			// Angles [0, π].
			{Start: 0, End: 500, Strand: genome.StrandForward, Name: "dnaA", Product: "DNA replication initiator protein X"},
			// Angles [π/2, 3π/2], overlapping the first.
			{Start: 250, End: 750, Strand: genome.StrandReverse, Name: "lacZ"},
		},
		GenomeLength: 1000,
		Filename:     "k12",
	})
	require.NoError(t, err)
}

func TestNew_RequiresContainer(t *testing.T) {
	_, err := New(nil, Options{})
	assert.Error(t, err)
}

func TestLoad_MalformedPayloadAborts(t *testing.T) {
	r, mc := newTestRenderer(t)
	loadTwoGenes(t, r)
	require.NotNil(t, mc.Scene())

	before := mc.Scene()
	err := r.Load([]byte(`{broken`))
	assert.Error(t, err)
	assert.Same(t, before, mc.Scene(), "decode failure aborts before the render pass starts")
}

func TestLoad_MountsScene(t *testing.T) {
	r, mc := newTestRenderer(t)

	err := r.Load([]byte(`{
		"genes": [{"contig": "c", "start": 0, "end": 500, "strand": "+", "name": "dnaA"}],
		"genomeLength": 1000,
		"filename": "k12"
	}`))
	require.NoError(t, err)

	s := r.Scene()
	require.NotNil(t, s)
	assert.Same(t, s, mc.Scene(), "renderer scene is what the container shows")
	assert.Len(t, s.Arcs, 1)
	assert.Equal(t, "k12", s.Title.Text)
}

func TestLoad_ResetsTransform(t *testing.T) {
	r, _ := newTestRenderer(t)
	loadTwoGenes(t, r)

	r.ZoomAt(2, 200, 200)
	r.PanBy(30, 40)
	require.NotEqual(t, scene.IdentityTransform(), r.Scene().Transform)

	loadTwoGenes(t, r)
	assert.Equal(t, scene.IdentityTransform(), r.Scene().Transform, "full reload resets pan/zoom")
}

func TestPointerMove_HoverLifecycle(t *testing.T) {
	r, _ := newTestRenderer(t)
	loadTwoGenes(t, r)
	s := r.Scene()

	// Genome angle π/4, radius 130: inside the first arc only.
	r.PointerMove(291.92, 108.08)
	require.True(t, s.Tooltip.Visible)
	assert.Equal(t, "dnaA", s.Tooltip.Title)
	assert.Equal(t, "DNA replication initiator…", s.Tooltip.Subtitle, "product truncated to budget")
	assert.Equal(t, 0, s.Tooltip.ArcIndex)

	// Same arc, new position: overlay repositioned, not recreated.
	r.PointerMove(290, 110)
	assert.Equal(t, 0, s.Tooltip.ArcIndex)
	assert.InDelta(t, 290, s.Tooltip.X, 1e-9)

	// Genome angle π/2: both arcs overlap, the last drawn wins and the
	// overlay is handed over rather than duplicated.
	r.PointerMove(330, 200)
	require.True(t, s.Tooltip.Visible)
	assert.Equal(t, 1, s.Tooltip.ArcIndex)
	assert.Equal(t, "lacZ", s.Tooltip.Title)

	// Center of the circle is off the track.
	r.PointerMove(200, 200)
	assert.False(t, s.Tooltip.Visible)

	r.PointerMove(330, 200)
	require.True(t, s.Tooltip.Visible)
	r.PointerLeave()
	assert.False(t, s.Tooltip.Visible)
}

func TestPointerMove_SceneSpaceUnderZoom(t *testing.T) {
	r, _ := newTestRenderer(t)
	err := r.LoadPayload(&genome.Payload{
		Genes:        []genome.Gene{{Start: 0, End: 500, Strand: genome.StrandForward, Name: "dnaA"}},
		GenomeLength: 1000,
		Filename:     "k12",
	})
	require.NoError(t, err)
	s := r.Scene()

	r.ZoomAt(2, 200, 200)

	// Scene point (291.92, 108.08) maps to canvas (383.84, 16.16) at 2x.
	r.PointerMove(383.84, 16.16)
	require.True(t, s.Tooltip.Visible, "hit-testing works through the zoom transform")
	assert.InDelta(t, 291.92, s.Tooltip.X, 1e-6, "tooltip stored in scene space")
	assert.InDelta(t, 108.08, s.Tooltip.Y, 1e-6)
}

func TestSetStrandColor(t *testing.T) {
	r, _ := newTestRenderer(t)
	loadTwoGenes(t, r)
	s := r.Scene()

	r.ZoomAt(2, 200, 200)
	before := s.Transform

	require.NoError(t, r.SetStrandColor(genome.StrandForward, "#112233"))

	assert.Equal(t, "#112233", s.Arcs[0].Fill)
	assert.Equal(t, scene.DefaultReverseColor, s.Arcs[1].Fill, "other strand untouched")
	assert.Equal(t, before, s.Transform, "recolor preserves pan/zoom")

	assert.Error(t, r.SetStrandColor(genome.Strand("?"), "#fff"))
}

func TestResize_KeepsStateRebuildsGeometry(t *testing.T) {
	r, _ := newTestRenderer(t)
	loadTwoGenes(t, r)

	require.NoError(t, r.SetStrandColor(genome.StrandForward, "#445566"))
	r.ZoomAt(2, 200, 200)
	transform := r.Scene().Transform

	require.NoError(t, r.Resize(600, 600))

	s := r.Scene()
	assert.Equal(t, 300.0, s.CenterX, "geometry recomputed for new viewport")
	assert.Equal(t, 240.0, s.TrackOuter)
	assert.Equal(t, "#445566", s.Arcs[0].Fill, "color state survives")
	assert.Equal(t, transform, s.Transform, "transform survives")
}

func TestExport_RequiresScene(t *testing.T) {
	r, _ := newTestRenderer(t)
	var buf bytes.Buffer
	assert.ErrorIs(t, r.ExportSVG(&buf), ErrNoScene)
	assert.ErrorIs(t, r.ExportPNG(&buf), ErrNoScene)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestExport_FailureNotifies(t *testing.T) {
	r, _ := newTestRenderer(t)
	loadTwoGenes(t, r)

	var notified string
	r.SetNotifier(func(msg string) { notified = msg })

	err := r.ExportSVG(failingWriter{})
	require.Error(t, err)
	assert.Contains(t, notified, "SVG export failed")
	assert.NotNil(t, r.Scene(), "live view unaffected by export failure")
}

func TestSaveArtifacts(t *testing.T) {
	r, _ := newTestRenderer(t)
	loadTwoGenes(t, r)
	dir := t.TempDir()

	svgDone := make(chan error, 1)
	pngDone := make(chan error, 1)
	r.SaveSVG(dir, func(err error) { svgDone <- err })
	r.SavePNG(dir, func(err error) { pngDone <- err })

	require.NoError(t, <-svgDone)
	require.NoError(t, <-pngDone)

	svg, err := os.ReadFile(filepath.Join(dir, "k12.svg"))
	require.NoError(t, err)
	assert.NotEmpty(t, svg)

	png, err := os.ReadFile(filepath.Join(dir, "k12.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), png[:8], "png signature")
}

func TestExportSVG_ReflectsCurrentView(t *testing.T) {
	r, _ := newTestRenderer(t)
	loadTwoGenes(t, r)
	r.ZoomAt(2, 200, 200)

	var buf bytes.Buffer
	require.NoError(t, r.ExportSVG(&buf))
	assert.Contains(t, buf.String(), "scale(2)", "export keeps current zoom")
}
