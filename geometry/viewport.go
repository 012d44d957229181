package geometry

// Viewport is the visible document-space rectangle used for pan and zoom.
// It is independent of the underlying document coordinate system: panning
// moves the origin, zooming scales the size.
type Viewport struct {
	X, Y, W, H float32
}

// Rect returns the viewport as a Rect.
func (v Viewport) Rect() Rect {
	return Rect{v.X, v.Y, v.W, v.H}
}

// Pan translates the viewport origin by (dx, dy).
func (v *Viewport) Pan(dx, dy float32) {
	v.X += dx
	v.Y += dy
}

// ZoomAt scales the viewport by the given factor anchored at a document
// point, so that the anchor stays visually fixed:
//
//	origin' = anchor - (anchor - origin) * scale
func (v *Viewport) ZoomAt(anchor Point, scale float32) {
	v.X = anchor.X - (anchor.X-v.X)*scale
	v.Y = anchor.Y - (anchor.Y-v.Y)*scale
	v.W *= scale
	v.H *= scale
}

// ToDocument converts a screen point into document coordinates, given the
// screen extent the viewport is projected onto. This is the screen-to-local
// conversion used by gesture handling so drags work under any pan/zoom.
func (v Viewport) ToDocument(screen Point, screenW, screenH float32) Point {
	if screenW <= 0 || screenH <= 0 {
		return Point{v.X, v.Y}
	}
	return Point{
		X: v.X + screen.X/screenW*v.W,
		Y: v.Y + screen.Y/screenH*v.H,
	}
}

// ToScreen converts a document point into screen coordinates, given the
// screen extent the viewport is projected onto.
func (v Viewport) ToScreen(doc Point, screenW, screenH float32) Point {
	if v.W <= 0 || v.H <= 0 {
		return Point{}
	}
	return Point{
		X: (doc.X - v.X) / v.W * screenW,
		Y: (doc.Y - v.Y) / v.H * screenH,
	}
}
