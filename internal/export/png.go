package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/jjovelc/CheckleyS-ButterA-EcoliGen/internal/geometry"
	"github.com/jjovelc/CheckleyS-ButterA-EcoliGen/internal/scene"
)

// Supersample is the raster oversampling factor. The scene is rasterized at
// this multiple of the viewport size and downsampled before encoding.
const Supersample = 2

var (
	fontOnce sync.Once
	fontTTF  *truetype.Font
	fontErr  error
)

// exportFace returns the embedded Go Regular face at the given pixel size.
// Using an embedded font keeps raster output independent of whatever fonts
// the host environment has installed.
func exportFace(size float64) (font.Face, error) {
	fontOnce.Do(func() {
		fontTTF, fontErr = truetype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fmt.Errorf("parse embedded font: %w", fontErr)
	}
	return truetype.NewFace(fontTTF, &truetype.Options{Size: size}), nil
}

// WritePNG rasterizes a prepared snapshot onto an opaque white background at
// Supersample resolution, downsamples, and encodes it as PNG.
func WritePNG(w io.Writer, snap *scene.Scene) error {
	width := int(math.Round(snap.Width)) * Supersample
	height := int(math.Round(snap.Height)) * Supersample
	if width <= 0 || height <= 0 {
		return fmt.Errorf("rasterize: invalid canvas size %dx%d", width, height)
	}

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	t := snap.Transform

	// Device mapping for the zoomable group: view transform, then
	// supersampling. Radii scale by the same uniform factor.
	dev := func(x, y float64) (float64, float64) {
		cx, cy := t.Apply(x, y)
		return cx * Supersample, cy * Supersample
	}
	rscale := t.Scale * Supersample

	cx, cy := dev(snap.CenterX, snap.CenterY)

	for _, r := range snap.Rings {
		dc.DrawCircle(cx, cy, r.Radius*rscale)
		dc.SetHexColor(r.Stroke)
		dc.SetLineWidth(r.StrokeWidth * rscale)
		dc.Stroke()
	}

	for _, a := range snap.Arcs {
		fillArc(dc, cx, cy, a.Geometry, rscale, a.Fill)
	}

	if snap.Title != nil && snap.Title.Text != "" {
		face, err := exportFace(snap.Title.FontSize * rscale)
		if err != nil {
			return err
		}
		dc.SetFontFace(face)
		dc.SetHexColor(snap.Title.Fill)
		tx, ty := dev(snap.Title.X, snap.Title.Y)
		dc.DrawStringAnchored(snap.Title.Text, tx, ty, 0.5, 0.5)
	}

	// Legend is screen-fixed: supersampling only, no view transform.
	if snap.Legend != nil {
		face, err := exportFace(legendFontSize * Supersample)
		if err != nil {
			return err
		}
		dc.SetFontFace(face)
		for i, e := range snap.Legend.Entries {
			x := snap.Legend.X * Supersample
			y := (snap.Legend.Y + float64(i)*legendRowHeight) * Supersample

			dc.SetHexColor(e.Swatch)
			dc.DrawRectangle(x, y, legendSwatchSize*Supersample, legendSwatchSize*Supersample)
			dc.Fill()

			dc.SetHexColor(legendTextFill)
			dc.DrawStringAnchored(e.Label,
				x+(legendSwatchSize+legendTextGap)*Supersample,
				y+legendSwatchSize*Supersample/2,
				0, 0.35)
		}
	}

	full := dc.Image()
	out := image.NewRGBA(image.Rect(0, 0, width/Supersample, height/Supersample))
	draw.CatmullRom.Scale(out, out.Bounds(), full, full.Bounds(), draw.Src, nil)

	if err := png.Encode(w, out); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// fillArc paths one annulus sector in device space and fills it.
func fillArc(dc *gg.Context, cx, cy float64, a geometry.Arc, rscale float64, fill string) {
	a0, a1 := drawableAngles(a)
	ca0 := geometry.CanvasAngle(a0)
	ca1 := geometry.CanvasAngle(a1)
	outer := a.OuterRadius * rscale
	inner := a.InnerRadius * rscale

	dc.MoveTo(cx+outer*math.Cos(ca0), cy+outer*math.Sin(ca0))
	dc.DrawArc(cx, cy, outer, ca0, ca1)
	dc.LineTo(cx+inner*math.Cos(ca1), cy+inner*math.Sin(ca1))
	dc.DrawArc(cx, cy, inner, ca1, ca0)
	dc.ClosePath()
	dc.SetHexColor(fill)
	dc.Fill()
}
