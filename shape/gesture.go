package shape

import (
	"vellum/event"
	"vellum/geometry"
)

// Gesture sessions are created on pointer-down and torn down on pointer-up.
// A session owns all state for one drag; there are no ambient listeners, so
// an orphaned gesture is impossible. Points are in document coordinates —
// the caller is responsible for screen-to-document conversion.

// DragSession moves a shape by the delta between the initial pointer
// position and the current one.
type DragSession struct {
	s      *Shape
	start  geometry.Point
	origin geometry.Point
	from   geometry.Rect
}

// BeginDrag starts a drag gesture at the given document point.
func (s *Shape) BeginDrag(start geometry.Point) *DragSession {
	return &DragSession{
		s:      s,
		start:  start,
		origin: s.Position(),
		from:   s.Bounds(),
	}
}

// Move updates the shape position from the current pointer position.
func (d *DragSession) Move(p geometry.Point) {
	delta := p.Sub(d.start)
	d.s.SetPosition(d.origin.X+delta.X, d.origin.Y+delta.Y)
}

// Up ends the gesture, emitting a terminal DragEnd event carrying the
// bounds at gesture start and at release.
func (d *DragSession) Up(p geometry.Point) {
	d.Move(p)
	d.s.bus.Emit(event.DragEnd, DragInfo{From: d.from, To: d.s.Bounds()})
}

// Origin returns the shape's position when the gesture started.
func (d *DragSession) Origin() geometry.Point { return d.origin }

// ResizeSession grows or shrinks a shape from its bottom-right handle.
// Position stays fixed at the opposite (top-left) corner.
type ResizeSession struct {
	s     *Shape
	start geometry.Point
	size  geometry.Size
	from  geometry.Rect
}

// BeginResize starts a resize gesture at the given document point.
func (s *Shape) BeginResize(start geometry.Point) *ResizeSession {
	return &ResizeSession{
		s:     s,
		start: start,
		size:  s.Size(),
		from:  s.Bounds(),
	}
}

// Move updates the shape size from the current pointer position.
func (r *ResizeSession) Move(p geometry.Point) {
	delta := p.Sub(r.start)
	r.s.SetSize(r.size.W+delta.X, r.size.H+delta.Y)
}

// Up ends the gesture, emitting a terminal ResizeEnd event.
func (r *ResizeSession) Up(p geometry.Point) {
	r.Move(p)
	r.s.bus.Emit(event.ResizeEnd, DragInfo{From: r.from, To: r.s.Bounds()})
}
