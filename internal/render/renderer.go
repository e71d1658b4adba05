package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/jjovelc/CheckleyS-ButterA-EcoliGen/internal/export"
	"github.com/jjovelc/CheckleyS-ButterA-EcoliGen/internal/genome"
	"github.com/jjovelc/CheckleyS-ButterA-EcoliGen/internal/geometry"
	"github.com/jjovelc/CheckleyS-ButterA-EcoliGen/internal/scene"
)

// Default viewport size when the host specifies none.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 800.0
)

// ErrNoScene is returned by operations that require a loaded genome.
var ErrNoScene = errors.New("no genome loaded")

// Options configures a renderer instance.
type Options struct {
	Width        float64
	Height       float64
	ForwardColor string
	ReverseColor string
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	return o
}

// Notifier receives user-facing messages, such as export failures. The
// default notifier only logs.
type Notifier func(msg string)

// Renderer is the circular genome map engine. One instance serves one
// "load genome" event at a time: Load tears the previous scene down
// synchronously and rebuilds everything, so stale shapes and handlers can
// never linger from a previous dataset.
//
// All scene mutation happens on the caller's event context; only export
// encoding runs off it, and then only against a prepared snapshot.
type Renderer struct {
	container Container
	opts      Options
	logger    *zap.Logger
	notify    Notifier

	builder *scene.Builder
	colors  *scene.ColorState

	genes []genome.Gene
	ctx   genome.Context

	scene   *scene.Scene
	index   *geometry.AngleIndex
	hovered int // arc slice index under the pointer, -1 when none
}

// New creates a renderer bound to the given container.
func New(container Container, opts Options) (*Renderer, error) {
	if container == nil {
		return nil, errors.New("renderer requires a container")
	}

	opts = opts.withDefaults()
	colors := scene.NewColorState()
	if opts.ForwardColor != "" {
		colors.Set(genome.StrandForward, opts.ForwardColor)
	}
	if opts.ReverseColor != "" {
		colors.Set(genome.StrandReverse, opts.ReverseColor)
	}

	r := &Renderer{
		container: container,
		opts:      opts,
		logger:    zap.NewNop(),
		builder:   scene.NewBuilder(),
		colors:    colors,
		hovered:   -1,
	}
	r.notify = func(msg string) {
		r.logger.Warn("notification", zap.String("message", msg))
	}
	return r, nil
}

// SetLogger sets the logger for warnings and render diagnostics.
func (r *Renderer) SetLogger(l *zap.Logger) {
	r.logger = l
	r.builder.SetLogger(l)
}

// SetNotifier sets the user-facing notification hook.
func (r *Renderer) SetNotifier(n Notifier) {
	if n != nil {
		r.notify = n
	}
}

// Scene returns the current scene, nil before the first load.
func (r *Renderer) Scene() *scene.Scene {
	return r.scene
}

// Load decodes an inbound payload and renders it. A malformed payload aborts
// the render: the previous scene stays torn down and nothing partial is
// mounted.
func (r *Renderer) Load(data []byte) error {
	payload, err := genome.DecodePayload(data)
	if err != nil {
		r.logger.Error("aborting render: malformed payload", zap.Error(err))
		return fmt.Errorf("load genome: %w", err)
	}
	return r.LoadPayload(payload)
}

// LoadPayload renders a decoded payload. The previous scene, hover state and
// transform are discarded synchronously before the new scene is built.
func (r *Renderer) LoadPayload(p *genome.Payload) error {
	r.teardown()

	ctx := genome.Context{Length: p.GenomeLength, Filename: p.Filename}
	s, err := r.builder.Build(p.Genes, ctx, r.opts.Width, r.opts.Height, r.colors)
	if err != nil {
		r.logger.Error("aborting render", zap.Error(err))
		return fmt.Errorf("load genome: %w", err)
	}

	r.genes = p.Genes
	r.ctx = ctx
	r.mount(s)

	r.logger.Info("genome rendered",
		zap.String("filename", ctx.Filename),
		zap.Int64("length", ctx.Length),
		zap.Int("genes", len(p.Genes)),
		zap.Int("arcs", len(s.Arcs)))
	return nil
}

// Resize rebuilds geometry for a new viewport size, keeping the loaded
// genome, color assignment, and transform.
func (r *Renderer) Resize(width, height float64) error {
	if r.scene == nil {
		return ErrNoScene
	}

	transform := r.scene.Transform
	r.opts.Width, r.opts.Height = width, height
	r.opts = r.opts.withDefaults()

	s, err := r.builder.Build(r.genes, r.ctx, r.opts.Width, r.opts.Height, r.colors)
	if err != nil {
		return fmt.Errorf("resize: %w", err)
	}
	s.Transform = transform

	r.container.Clear()
	r.hovered = -1
	r.mount(s)
	return nil
}

func (r *Renderer) teardown() {
	r.container.Clear()
	r.scene = nil
	r.index = nil
	r.hovered = -1
	r.genes = nil
	r.ctx = genome.Context{}
}

func (r *Renderer) mount(s *scene.Scene) {
	spans := make([]geometry.AngleSpan, len(s.Arcs))
	for i, a := range s.Arcs {
		spans[i] = geometry.AngleSpan{Start: a.Geometry.StartAngle, End: a.Geometry.EndAngle, Index: i}
	}
	r.index = geometry.BuildAngleIndex(spans)
	r.scene = s
	r.container.SetScene(s)
}

// PointerMove drives the hover/tooltip state machine from canvas
// coordinates. Entering an arc shows the shared overlay, leaving hides it;
// overlapping arcs hand the overlay over instead of duplicating it.
func (r *Renderer) PointerMove(x, y float64) {
	if r.scene == nil {
		return
	}

	sx, sy := r.scene.Transform.Invert(x, y)
	hit := r.hitTest(sx, sy)

	if hit == r.hovered {
		if hit >= 0 {
			r.scene.MoveTooltip(sx, sy)
		}
		return
	}

	if r.hovered >= 0 {
		r.scene.HideTooltip()
	}
	r.hovered = hit
	if hit >= 0 {
		r.scene.ShowTooltip(r.scene.Arcs[hit], sx, sy)
	}
}

// PointerLeave clears hover state when the pointer exits the container.
func (r *Renderer) PointerLeave() {
	if r.scene == nil {
		return
	}
	if r.hovered >= 0 {
		r.scene.HideTooltip()
		r.hovered = -1
	}
}

// hitTest returns the arc slice index at a scene-space point, -1 for none.
// Of overlapping arcs the last drawn wins, matching what is visually on top.
func (r *Renderer) hitTest(sx, sy float64) int {
	radius, angle := geometry.PolarAt(sx, sy, r.scene.CenterX, r.scene.CenterY)
	if radius < r.scene.TrackInner || radius > r.scene.TrackOuter {
		return -1
	}
	hits := r.index.FindOverlaps(angle)
	if len(hits) == 0 {
		return -1
	}
	top := hits[0]
	for _, h := range hits[1:] {
		if h > top {
			top = h
		}
	}
	return top
}

// ZoomAt scales the view by factor about the canvas point (x, y), clamped
// to the configured scale range.
func (r *Renderer) ZoomAt(factor, x, y float64) {
	if r.scene == nil {
		return
	}
	r.scene.Transform = r.scene.Transform.ZoomedAt(factor, x, y)
}

// PanBy shifts the view by a canvas-space delta.
func (r *Renderer) PanBy(dx, dy float64) {
	if r.scene == nil {
		return
	}
	r.scene.Transform = r.scene.Transform.PannedBy(dx, dy)
}

// SetStrandColor reassigns one strand class and recolors the rendered arcs
// and legend swatch in place. Geometry, transform and tooltip state are
// preserved.
func (r *Renderer) SetStrandColor(strand genome.Strand, color string) error {
	if !strand.Valid() {
		return fmt.Errorf("unknown strand class %q", strand)
	}
	r.colors.Set(strand, color)
	if r.scene != nil {
		r.scene.SetStrandColor(strand, color)
	}
	return nil
}

// ExportSVG snapshots the current scene and writes a self-contained SVG.
func (r *Renderer) ExportSVG(w io.Writer) error {
	snap, err := r.snapshot()
	if err != nil {
		return err
	}
	if err := export.WriteSVG(w, snap); err != nil {
		r.reportExportError("SVG", err)
		return err
	}
	return nil
}

// ExportPNG snapshots the current scene and writes the rasterized image.
func (r *Renderer) ExportPNG(w io.Writer) error {
	snap, err := r.snapshot()
	if err != nil {
		return err
	}
	if err := export.WritePNG(w, snap); err != nil {
		r.reportExportError("PNG", err)
		return err
	}
	return nil
}

// SaveSVG writes the vector artifact into dir, named after the loaded
// genome. The snapshot is taken synchronously; file writing and encoding run
// off the event context. done may be nil.
func (r *Renderer) SaveSVG(dir string, done func(error)) {
	r.saveArtifact(dir, export.SVGName(r.ctx.Filename), "SVG", export.WriteSVG, done)
}

// SavePNG writes the raster artifact into dir; see SaveSVG.
func (r *Renderer) SavePNG(dir string, done func(error)) {
	r.saveArtifact(dir, export.PNGName(r.ctx.Filename), "PNG", export.WritePNG, done)
}

func (r *Renderer) saveArtifact(dir, name, kind string, write func(io.Writer, *scene.Scene) error, done func(error)) {
	finish := func(err error) {
		if done != nil {
			done(err)
		}
	}

	// Prepare runs synchronously so the snapshot cannot observe later
	// mutations; encoding proceeds independently of any other export.
	snap, err := r.snapshot()
	if err != nil {
		finish(err)
		return
	}
	path := filepath.Join(dir, name)

	go func() {
		err := writeFile(path, snap, write)
		if err != nil {
			r.reportExportError(kind, err)
		} else {
			r.logger.Info("artifact written", zap.String("path", path))
		}
		finish(err)
	}()
}

func writeFile(path string, snap *scene.Scene, write func(io.Writer, *scene.Scene) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f, snap); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func (r *Renderer) snapshot() (*scene.Scene, error) {
	if r.scene == nil {
		return nil, ErrNoScene
	}
	return export.Prepare(r.scene, r.colors), nil
}

func (r *Renderer) reportExportError(kind string, err error) {
	r.logger.Error("export failed", zap.String("format", kind), zap.Error(err))
	r.notify(fmt.Sprintf("%s export failed: %v", kind, err))
}
