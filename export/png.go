package export

import (
	"bytes"
	"fmt"
	"image/color"

	"vellum/edge"
	"vellum/editor"
	"vellum/geometry"
	"vellum/shape"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// PNG rendering defaults.
const (
	pngPadding  float32 = 20
	pngFontSize         = 12.0
	pngMinSize          = 64
)

// PNGExporter rasterizes the document with fogleman/gg. Edges are drawn
// first so shapes sit on top of them.
type PNGExporter struct{}

// NewPNGExporter creates a new PNG exporter.
func NewPNGExporter() *PNGExporter {
	return &PNGExporter{}
}

// Export renders the editor's current document.
func (e *PNGExporter) Export(ed *editor.Editor) ([]byte, error) {
	bounds := ed.ContentBounds()
	bounds.X -= pngPadding
	bounds.Y -= pngPadding
	bounds.W += 2 * pngPadding
	bounds.H += 2 * pngPadding

	w := int(bounds.W)
	h := int(bounds.H)
	if w < pngMinSize {
		w = pngMinSize
	}
	if h < pngMinSize {
		h = pngMinSize
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()
	dc.Translate(float64(-bounds.X), float64(-bounds.Y))

	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    pngFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	for _, l := range ed.Links() {
		drawEdgePNG(dc, l)
	}
	for _, s := range ed.Nodes() {
		drawShapePNG(dc, s)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// FileExtension returns the file extension for PNG.
func (e *PNGExporter) FileExtension() string {
	return ".png"
}

// FormatName returns the format name.
func (e *PNGExporter) FormatName() string {
	return "PNG"
}

func drawEdgePNG(dc *gg.Context, l *edge.Edge) {
	pts := l.Path().Flatten()
	if len(pts) < 2 {
		return
	}
	dc.SetColor(color.Black)
	dc.SetLineWidth(1.5)
	dc.MoveTo(float64(pts[0].X), float64(pts[0].Y))
	for _, p := range pts[1:] {
		dc.LineTo(float64(p.X), float64(p.Y))
	}
	dc.Stroke()

	if l.Label() != "" {
		mid := l.LabelPoint()
		dc.DrawStringAnchored(l.Label(), float64(mid.X), float64(mid.Y), 0.5, -0.3)
	}
}

func drawShapePNG(dc *gg.Context, s *shape.Shape) {
	b := s.Bounds()
	switch s.Kind() {
	case shape.KindEllipse:
		c := b.Center()
		dc.DrawEllipse(float64(c.X), float64(c.Y), float64(b.W/2), float64(b.H/2))
	case shape.KindCircle:
		c := b.Center()
		r := geometry.Min(b.W, b.H) / 2
		dc.DrawCircle(float64(c.X), float64(c.Y), float64(r))
	case shape.KindDiamond:
		c := b.Center()
		dc.MoveTo(float64(c.X), float64(b.Y))
		dc.LineTo(float64(b.X+b.W), float64(c.Y))
		dc.LineTo(float64(c.X), float64(b.Y+b.H))
		dc.LineTo(float64(b.X), float64(c.Y))
		dc.ClosePath()
	default:
		dc.DrawRoundedRectangle(float64(b.X), float64(b.Y), float64(b.W), float64(b.H), 4)
	}
	dc.SetColor(color.White)
	dc.FillPreserve()
	dc.SetColor(color.Black)
	dc.SetLineWidth(1.5)
	dc.Stroke()

	for _, p := range s.Ports() {
		if pt, ok := s.PortPoint(p.ID); ok {
			dc.DrawCircle(float64(pt.X), float64(pt.Y), 3)
			dc.Fill()
		}
	}

	lines := s.Lines()
	if len(lines) == 0 {
		return
	}
	c := b.Center()
	lineHeight := pngFontSize * 1.3
	startY := float64(c.Y) - lineHeight*float64(len(lines)-1)/2
	for i, line := range lines {
		dc.DrawStringAnchored(line, float64(c.X), startY+lineHeight*float64(i), 0.5, 0.35)
	}
}
