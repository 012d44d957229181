package export

import (
	"bytes"
	"fmt"
	"html"

	"vellum/edge"
	"vellum/editor"
	"vellum/geometry"
	"vellum/shape"
)

// SVG document defaults.
const (
	svgPadding    float32 = 20
	svgLineHeight float32 = 14
	svgPortRadius float32 = 3
	defaultFill           = "#ffffff"
	defaultStroke         = "#333333"
)

// SVGExporter renders the document as a standalone SVG: edges first so
// they sit behind shapes, then shape bodies, ports and labels.
type SVGExporter struct{}

// NewSVGExporter creates a new SVG exporter.
func NewSVGExporter() *SVGExporter {
	return &SVGExporter{}
}

// Export renders the editor's current document.
func (e *SVGExporter) Export(ed *editor.Editor) ([]byte, error) {
	bounds := ed.ContentBounds()
	bounds.X -= svgPadding
	bounds.Y -= svgPadding
	bounds.W += 2 * svgPadding
	bounds.H += 2 * svgPadding

	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s">`+"\n",
		f(bounds.X), f(bounds.Y), f(bounds.W), f(bounds.H))

	for _, l := range ed.Links() {
		writeEdge(&buf, l)
	}
	for _, s := range ed.Nodes() {
		writeShape(&buf, s)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// FileExtension returns the file extension for SVG.
func (e *SVGExporter) FileExtension() string {
	return ".svg"
}

// FormatName returns the format name.
func (e *SVGExporter) FormatName() string {
	return "SVG"
}

func writeEdge(buf *bytes.Buffer, l *edge.Edge) {
	p := l.Path()
	if p.IsEmpty() {
		return
	}
	pts := p.Points
	var d string
	switch p.Kind {
	case edge.KindCurved:
		d = fmt.Sprintf("M %s %s C %s %s, %s %s, %s %s",
			f(pts[0].X), f(pts[0].Y),
			f(pts[1].X), f(pts[1].Y),
			f(pts[2].X), f(pts[2].Y),
			f(pts[3].X), f(pts[3].Y))
	default:
		d = fmt.Sprintf("M %s %s", f(pts[0].X), f(pts[0].Y))
		for _, pt := range pts[1:] {
			d += fmt.Sprintf(" L %s %s", f(pt.X), f(pt.Y))
		}
	}
	fmt.Fprintf(buf, `  <path d="%s" fill="none" stroke="%s" stroke-width="1.5"/>`+"\n", d, defaultStroke)

	if l.Label() != "" {
		mid := l.LabelPoint()
		fmt.Fprintf(buf,
			`  <text x="%s" y="%s" text-anchor="middle" font-size="12">%s</text>`+"\n",
			f(mid.X), f(mid.Y), html.EscapeString(l.Label()))
	}
}

func writeShape(buf *bytes.Buffer, s *shape.Shape) {
	b := s.Bounds()
	fill := s.Fill()
	if fill == "" {
		fill = defaultFill
	}
	stroke := s.Stroke()
	if stroke == "" {
		stroke = defaultStroke
	}
	style := fmt.Sprintf(`fill="%s" stroke="%s" stroke-width="1.5"`, fill, stroke)

	switch s.Kind() {
	case shape.KindEllipse:
		c := b.Center()
		fmt.Fprintf(buf, `  <ellipse cx="%s" cy="%s" rx="%s" ry="%s" %s/>`+"\n",
			f(c.X), f(c.Y), f(b.W/2), f(b.H/2), style)
	case shape.KindCircle:
		c := b.Center()
		r := geometry.Min(b.W, b.H) / 2
		fmt.Fprintf(buf, `  <circle cx="%s" cy="%s" r="%s" %s/>`+"\n",
			f(c.X), f(c.Y), f(r), style)
	case shape.KindDiamond:
		c := b.Center()
		fmt.Fprintf(buf, `  <polygon points="%s,%s %s,%s %s,%s %s,%s" %s/>`+"\n",
			f(c.X), f(b.Y),
			f(b.X+b.W), f(c.Y),
			f(c.X), f(b.Y+b.H),
			f(b.X), f(c.Y), style)
	default:
		fmt.Fprintf(buf, `  <rect x="%s" y="%s" width="%s" height="%s" rx="4" %s/>`+"\n",
			f(b.X), f(b.Y), f(b.W), f(b.H), style)
	}

	for _, p := range s.Ports() {
		pt, ok := s.PortPoint(p.ID)
		if !ok {
			continue
		}
		fmt.Fprintf(buf, `  <circle cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n",
			f(pt.X), f(pt.Y), f(svgPortRadius), stroke)
	}

	writeShapeLabel(buf, s)
}

func writeShapeLabel(buf *bytes.Buffer, s *shape.Shape) {
	lines := s.Lines()
	if len(lines) == 0 {
		return
	}
	b := s.Bounds()
	c := b.Center()
	anchor := "middle"
	x := c.X
	switch s.Align() {
	case shape.AlignLeft:
		anchor = "start"
		x = b.X + 4
	case shape.AlignRight:
		anchor = "end"
		x = b.X + b.W - 4
	}
	// Center the line block vertically.
	startY := c.Y - svgLineHeight*float32(len(lines)-1)/2 + 4
	fmt.Fprintf(buf, `  <text x="%s" y="%s" text-anchor="%s" font-size="12">`+"\n", f(x), f(startY), anchor)
	for i, line := range lines {
		dy := "0"
		if i > 0 {
			dy = f(svgLineHeight)
		}
		fmt.Fprintf(buf, `    <tspan x="%s" dy="%s">%s</tspan>`+"\n", f(x), dy, html.EscapeString(line))
	}
	buf.WriteString("  </text>\n")
}

// f formats a coordinate compactly.
func f(v float32) string {
	return fmt.Sprintf("%g", v)
}
