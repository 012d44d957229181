package edge

import "vellum/geometry"

// BendSession drags the mid-point bend handle of an orthogonal edge. Like
// shape gestures, the session is created on pointer-down and torn down on
// pointer-up, with no ambient listeners.
type BendSession struct {
	e *Edge
}

// BeginBendDrag starts a bend-handle drag. It returns nil for any kind
// other than orthogonal; only that kind has a bend handle.
func (e *Edge) BeginBendDrag(start geometry.Point) *BendSession {
	if e.kind != KindOrthogonal {
		return nil
	}
	return &BendSession{e: e}
}

// Move updates the bend point and recomputes the path.
func (b *BendSession) Move(p geometry.Point) {
	b.e.SetBend(p)
}

// Up ends the gesture.
func (b *BendSession) Up(p geometry.Point) {
	b.e.SetBend(p)
}
