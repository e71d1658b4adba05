package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"

	"github.com/jjovelc/CheckleyS-ButterA-EcoliGen/internal/geometry"
	"github.com/jjovelc/CheckleyS-ButterA-EcoliGen/internal/scene"
)

// Angular spans of a full circle are pulled in by this much so the two arc
// endpoints never coincide, which would make the path render as empty.
const fullCircleEpsilon = 1e-4

type svgDocument struct {
	XMLName    xml.Name `xml:"svg"`
	Xmlns      string   `xml:"xmlns,attr"`
	Width      float64  `xml:"width,attr"`
	Height     float64  `xml:"height,attr"`
	ViewBox    string   `xml:"viewBox,attr"`
	FontFamily string   `xml:"font-family,attr"`

	Background svgRect
	// View and legend groups, in that order. Held in a slice because
	// encoding/xml rejects two sibling fields whose XMLName is both "g".
	Groups []svgGroup
}

type svgGroup struct {
	XMLName   xml.Name `xml:"g"`
	Transform string   `xml:"transform,attr,omitempty"`

	Circles []svgCircle
	Paths   []svgPath
	Rects   []svgRect
	Texts   []svgText
}

type svgCircle struct {
	XMLName     xml.Name `xml:"circle"`
	Cx          float64  `xml:"cx,attr"`
	Cy          float64  `xml:"cy,attr"`
	R           float64  `xml:"r,attr"`
	Fill        string   `xml:"fill,attr"`
	Stroke      string   `xml:"stroke,attr"`
	StrokeWidth float64  `xml:"stroke-width,attr"`
}

type svgPath struct {
	XMLName xml.Name `xml:"path"`
	D       string   `xml:"d,attr"`
	Fill    string   `xml:"fill,attr"`
}

type svgRect struct {
	XMLName xml.Name `xml:"rect"`
	X       float64  `xml:"x,attr"`
	Y       float64  `xml:"y,attr"`
	Width   float64  `xml:"width,attr"`
	Height  float64  `xml:"height,attr"`
	Fill    string   `xml:"fill,attr"`
}

type svgText struct {
	XMLName    xml.Name `xml:"text"`
	X          float64  `xml:"x,attr"`
	Y          float64  `xml:"y,attr"`
	FontSize   float64  `xml:"font-size,attr"`
	TextAnchor string   `xml:"text-anchor,attr,omitempty"`
	Fill       string   `xml:"fill,attr"`
	Value      string   `xml:",chardata"`
}

// WriteSVG serializes a prepared snapshot to a self-contained SVG document.
func WriteSVG(w io.Writer, snap *scene.Scene) error {
	t := snap.Transform

	doc := svgDocument{
		Xmlns:      "http://www.w3.org/2000/svg",
		Width:      snap.Width,
		Height:     snap.Height,
		ViewBox:    fmt.Sprintf("0 0 %g %g", snap.Width, snap.Height),
		FontFamily: FontFamily,
		Background: svgRect{Width: snap.Width, Height: snap.Height, Fill: "#ffffff"},
	}

	view := svgGroup{
		Transform: fmt.Sprintf("translate(%g %g) scale(%g)", t.TranslateX, t.TranslateY, t.Scale),
	}
	var legend svgGroup

	for _, r := range snap.Rings {
		view.Circles = append(view.Circles, svgCircle{
			Cx:          snap.CenterX,
			Cy:          snap.CenterY,
			R:           r.Radius,
			Fill:        "none",
			Stroke:      r.Stroke,
			StrokeWidth: r.StrokeWidth,
		})
	}

	for _, a := range snap.Arcs {
		view.Paths = append(view.Paths, svgPath{
			D:    arcPath(snap.CenterX, snap.CenterY, a.Geometry),
			Fill: a.Fill,
		})
	}

	if snap.Title != nil {
		view.Texts = append(view.Texts, svgText{
			X:          snap.Title.X,
			Y:          snap.Title.Y,
			FontSize:   snap.Title.FontSize,
			TextAnchor: snap.Title.Anchor,
			Fill:       snap.Title.Fill,
			Value:      snap.Title.Text,
		})
	}

	if snap.Legend != nil {
		for i, e := range snap.Legend.Entries {
			y := snap.Legend.Y + float64(i)*legendRowHeight
			legend.Rects = append(legend.Rects, svgRect{
				X:      snap.Legend.X,
				Y:      y,
				Width:  legendSwatchSize,
				Height: legendSwatchSize,
				Fill:   e.Swatch,
			})
			legend.Texts = append(legend.Texts, svgText{
				X:        snap.Legend.X + legendSwatchSize + legendTextGap,
				Y:        y + legendSwatchSize - 2,
				FontSize: legendFontSize,
				Fill:     legendTextFill,
				Value:    e.Label,
			})
		}
	}

	doc.Groups = []svgGroup{view, legend}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal svg: %w", err)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

// arcPath emits the annulus-sector path for one gene arc: along the outer
// radius, radially in, back along the inner radius, and closed.
func arcPath(cx, cy float64, a geometry.Arc) string {
	a0, a1 := drawableAngles(a)
	ca0 := geometry.CanvasAngle(a0)
	ca1 := geometry.CanvasAngle(a1)

	ox0 := cx + a.OuterRadius*math.Cos(ca0)
	oy0 := cy + a.OuterRadius*math.Sin(ca0)
	ox1 := cx + a.OuterRadius*math.Cos(ca1)
	oy1 := cy + a.OuterRadius*math.Sin(ca1)
	ix0 := cx + a.InnerRadius*math.Cos(ca0)
	iy0 := cy + a.InnerRadius*math.Sin(ca0)
	ix1 := cx + a.InnerRadius*math.Cos(ca1)
	iy1 := cy + a.InnerRadius*math.Sin(ca1)

	large := 0
	if a1-a0 > math.Pi {
		large = 1
	}

	return fmt.Sprintf("M%.3f,%.3f A%.3f,%.3f 0 %d 1 %.3f,%.3f L%.3f,%.3f A%.3f,%.3f 0 %d 0 %.3f,%.3f Z",
		ox0, oy0,
		a.OuterRadius, a.OuterRadius, large, ox1, oy1,
		ix1, iy1,
		a.InnerRadius, a.InnerRadius, large, ix0, iy0)
}

// drawableAngles clamps a span to just under a full circle so the path's
// endpoints stay distinct.
func drawableAngles(a geometry.Arc) (float64, float64) {
	if a.Span() >= 2*math.Pi {
		return a.StartAngle, a.StartAngle + 2*math.Pi - fullCircleEpsilon
	}
	return a.StartAngle, a.EndAngle
}
