package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"vellum/geometry"
	"vellum/shape"
)

// Box-drawing rune sets for node borders.
var (
	singleBox = [6]rune{'┌', '┐', '└', '┘', '─', '│'}
	doubleBox = [6]rune{'╔', '╗', '╚', '╝', '═', '║'}
)

func (a *App) render() {
	a.screen.Clear()
	style := tcell.StyleDefault

	for _, l := range a.ed.Links() {
		a.renderEdge(l.Path().Flatten(), style)
	}
	for _, s := range a.ed.Nodes() {
		a.renderNode(s, style)
	}
	a.renderStatus(style.Reverse(true))
	a.screen.Show()
}

func (a *App) renderNode(s *shape.Shape, style tcell.Style) {
	x0, y0 := a.toScreen(s.Bounds().Min())
	x1, y1 := a.toScreen(s.Bounds().Max())
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	box := singleBox
	if a.ed.NodeSelected(s) {
		box = doubleBox
	}

	a.screen.SetContent(x0, y0, box[0], nil, style)
	a.screen.SetContent(x1, y0, box[1], nil, style)
	a.screen.SetContent(x0, y1, box[2], nil, style)
	a.screen.SetContent(x1, y1, box[3], nil, style)
	for x := x0 + 1; x < x1; x++ {
		a.screen.SetContent(x, y0, box[4], nil, style)
		a.screen.SetContent(x, y1, box[4], nil, style)
	}
	for y := y0 + 1; y < y1; y++ {
		a.screen.SetContent(x0, y, box[5], nil, style)
		a.screen.SetContent(x1, y, box[5], nil, style)
	}

	// First label line, centered and clipped to the box interior.
	lines := s.Lines()
	if len(lines) == 0 {
		return
	}
	inner := x1 - x0 - 1
	if inner < 1 {
		return
	}
	text := []rune(lines[0])
	if len(text) > inner {
		text = text[:inner]
	}
	cy := (y0 + y1) / 2
	cx := x0 + 1 + (inner-len(text))/2
	for i, r := range text {
		a.screen.SetContent(cx+i, cy, r, nil, style)
	}
}

// renderEdge plots the flattened path by sampling each segment densely
// enough to leave no cell gaps.
func (a *App) renderEdge(pts []geometry.Point, style tcell.Style) {
	for i := 1; i < len(pts); i++ {
		a.renderSegment(pts[i-1], pts[i], style)
	}
}

func (a *App) renderSegment(from, to geometry.Point, style tcell.Style) {
	x0, y0 := a.toScreen(from)
	x1, y1 := a.toScreen(to)
	steps := abs(x1-x0) + abs(y1-y0)
	if steps == 0 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float32(i) / float32(steps)
		x := x0 + int(t*float32(x1-x0))
		y := y0 + int(t*float32(y1-y0))
		a.screen.SetContent(x, y, '·', nil, style)
	}
}

func (a *App) renderStatus(style tcell.Style) {
	w, h := a.screen.Size()
	status := fmt.Sprintf(" %d nodes  %d links | u undo  r redo  s save  y copy  q quit | %s",
		a.ed.NodeCount(), a.ed.LinkCount(), a.message)
	runes := []rune(status)
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		a.screen.SetContent(x, h-1, r, nil, style)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
