package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jjovelc/CheckleyS-ButterA-EcoliGen/internal/render"
)

type renderOptions struct {
	outDir  string
	width   float64
	height  float64
	forward string
	reverse string
	zoom    float64
	panX    float64
	panY    float64
	svgOnly bool
	pngOnly bool
	verbose bool
}

func newRenderCmd() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render <payload.json>",
		Short: "Render a genome payload to SVG and PNG artifacts",
		Long: `Render a genome payload file to a circular map.

The payload is the JSON message the renderer accepts from a host
application: a genes array (or JSON-encoded string of one), the total
genome length, and a display filename. Artifacts are named after the
payload's filename, falling back to "genome_map".`,
		Example: `  genomemap render genes.json
  genomemap render --out maps --zoom 2 genes.json
  genomemap render --forward-color "#006d2c" --png-only genes.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "out", "o", ".", "Output directory for artifacts")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "Canvas width in pixels (default from config, else 800)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "Canvas height in pixels (default from config, else 800)")
	cmd.Flags().StringVar(&opts.forward, "forward-color", "", "Color for forward-strand genes")
	cmd.Flags().StringVar(&opts.reverse, "reverse-color", "", "Color for reverse-strand genes")
	cmd.Flags().Float64Var(&opts.zoom, "zoom", 1, "Zoom factor about the canvas center, clamped to [0.5, 10]")
	cmd.Flags().Float64Var(&opts.panX, "pan-x", 0, "Horizontal pan in pixels")
	cmd.Flags().Float64Var(&opts.panY, "pan-y", 0, "Vertical pan in pixels")
	cmd.Flags().BoolVar(&opts.svgOnly, "svg-only", false, "Only write the SVG artifact")
	cmd.Flags().BoolVar(&opts.pngOnly, "png-only", false, "Only write the PNG artifact")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")

	return cmd
}

func runRender(path string, opts renderOptions) error {
	logger := newLogger(opts.verbose)
	defer logger.Sync()

	if opts.svgOnly && opts.pngOnly {
		return fmt.Errorf("--svg-only and --png-only are mutually exclusive")
	}

	// Flags win over persisted config.
	if opts.width == 0 {
		opts.width = viper.GetFloat64("canvas.width")
	}
	if opts.height == 0 {
		opts.height = viper.GetFloat64("canvas.height")
	}
	if opts.forward == "" {
		opts.forward = viper.GetString("colors.forward")
	}
	if opts.reverse == "" {
		opts.reverse = viper.GetString("colors.reverse")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}

	r, err := render.New(render.NewMemoryContainer(), render.Options{
		Width:        opts.width,
		Height:       opts.height,
		ForwardColor: opts.forward,
		ReverseColor: opts.reverse,
	})
	if err != nil {
		return err
	}
	r.SetLogger(logger)
	r.SetNotifier(func(msg string) {
		fmt.Fprintln(os.Stderr, msg)
	})

	if err := r.Load(data); err != nil {
		return err
	}

	if opts.zoom != 1 {
		s := r.Scene()
		r.ZoomAt(opts.zoom, s.Width/2, s.Height/2)
	}
	if opts.panX != 0 || opts.panY != 0 {
		r.PanBy(opts.panX, opts.panY)
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	done := make(chan error, 2)
	pending := 0
	if !opts.pngOnly {
		r.SaveSVG(opts.outDir, func(err error) { done <- err })
		pending++
	}
	if !opts.svgOnly {
		r.SavePNG(opts.outDir, func(err error) { done <- err })
		pending++
	}

	for i := 0; i < pending; i++ {
		if err := <-done; err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stderr, "Artifacts written to %s\n", opts.outDir)
	return nil
}

func newLogger(verbose bool) *zap.Logger {
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return zap.NewNop()
		}
		return l
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}
