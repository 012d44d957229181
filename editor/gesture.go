package editor

import (
	"vellum/edge"
	"vellum/geometry"
	"vellum/shape"
)

// Modifiers qualify a pointer-down.
type Modifiers struct {
	Append bool // append to selection, or reconnect when over an edge
	Lasso  bool // rubber-band select on empty canvas
	Pan    bool // pan on empty canvas
}

// session is one active pointer gesture: created on pointer-down, fed
// moves, and torn down by the matching pointer-up. Shape and edge gesture
// types satisfy it structurally.
type session interface {
	Move(p geometry.Point)
	Up(p geometry.Point)
}

// PointerDown begins a gesture at a document-space point. Callers are
// responsible for converting screen coordinates through the viewport
// first (geometry.Viewport.ToDocument). Exactly one gesture is active at
// a time; a second down while one is active is ignored.
func (e *Editor) PointerDown(p geometry.Point, mods Modifiers) {
	if e.session != nil {
		return
	}

	// Resize handle of a selected shape takes priority over the body.
	for _, s := range e.selNodes {
		if p.Distance(s.HandlePoint()) <= e.opts.HandleRadius {
			e.session = s.BeginResize(p)
			return
		}
	}

	// A port starts a connect gesture.
	if shapeID, portID, ok := e.PortAt(p, ""); ok {
		e.session = &connectSession{e: e, from: edge.PortRef{ShapeID: shapeID, PortID: portID}}
		return
	}

	// Topmost shape body: select then drag.
	if s := e.NodeAt(p); s != nil {
		e.SelectNode(s, mods.Append)
		e.session = s.BeginDrag(p)
		return
	}

	// Edge: bend handle first, then click/reconnect signals.
	if l := e.LinkAt(p); l != nil {
		if l.Kind() == edge.KindOrthogonal && p.Distance(l.Bend()) <= e.opts.HandleRadius {
			e.session = l.BeginBendDrag(p)
			return
		}
		// The edge only signals; the wiring installed at insertLink
		// decides the effect (select, or a reconnect session).
		l.Click(p, mods.Append)
		return
	}

	// Empty canvas.
	switch {
	case mods.Lasso:
		e.session = &lassoSession{e: e, start: p}
	case mods.Pan:
		e.session = &panSession{e: e, anchor: p}
	default:
		e.SelectNode(nil, false)
		e.SelectLink(nil, false)
	}
}

// PointerMove feeds the active gesture, if any.
func (e *Editor) PointerMove(p geometry.Point) {
	if e.session != nil {
		e.session.Move(p)
	}
}

// PointerUp ends the active gesture. The session is detached before Up
// runs so the transition back to idle is guaranteed even if a handler
// starts something new.
func (e *Editor) PointerUp(p geometry.Point) {
	s := e.session
	e.session = nil
	if s != nil {
		s.Up(p)
	}
}

// DoubleClick signals a removal request on the edge under the pointer.
func (e *Editor) DoubleClick(p geometry.Point) {
	if l := e.LinkAt(p); l != nil {
		l.DoubleClick(p)
	}
}

// Dragging reports whether a gesture is in progress.
func (e *Editor) Dragging() bool { return e.session != nil }

// NodeAt returns the topmost shape whose bounds contain p.
func (e *Editor) NodeAt(p geometry.Point) *shape.Shape {
	for i := len(e.order) - 1; i >= 0; i-- {
		s := e.nodes[e.order[i]]
		if s.Bounds().Contains(p) {
			return s
		}
	}
	return nil
}

// LinkAt returns the first edge whose rendered path passes within the
// configured radius of p.
func (e *Editor) LinkAt(p geometry.Point) *edge.Edge {
	for _, l := range e.links {
		if geometry.PointPolylineDistance(p, l.Path().Flatten()) <= e.opts.EdgeHitRadius {
			return l
		}
	}
	return nil
}

// PortAt scans all shapes' ports, skipping the excluded shape, and returns
// the first port whose absolute coordinate is within the configured
// radius of p. The tie-break is deterministic: shape-insertion order, then
// port-insertion order — not geometric nearest-neighbor.
func (e *Editor) PortAt(p geometry.Point, excludeShapeID string) (string, string, bool) {
	for _, id := range e.order {
		if id == excludeShapeID {
			continue
		}
		s := e.nodes[id]
		for _, port := range s.Ports() {
			pt, ok := s.PortPoint(port.ID)
			if ok && p.Distance(pt) <= e.opts.PortHitRadius {
				return id, port.ID, true
			}
		}
	}
	return "", "", false
}

// finishNodeDrag applies the drag-acceptance policy: after a drag
// completes, the dragged node's bounding box is tested against every other
// node's. On the first overlap the node reverts to its pre-drag position —
// the exact captured coordinates, with no fresh grid snapping — and the
// scan stops. An accepted drag records a move for undo.
func (e *Editor) finishNodeDrag(s *shape.Shape, info shape.DragInfo) {
	bounds := s.Bounds()
	for _, id := range e.order {
		other := e.nodes[id]
		if other == s {
			continue
		}
		if bounds.Overlaps(other.Bounds()) {
			s.SetPosition(info.From.X, info.From.Y)
			return
		}
	}
	if info.From.Min() == info.To.Min() {
		return
	}
	e.push(Record{
		Forward: []Command{{Kind: CmdMoveNode, NodeID: s.ID(), From: info.From.Min(), To: info.To.Min()}},
		Inverse: []Command{{Kind: CmdMoveNode, NodeID: s.ID(), From: info.To.Min(), To: info.From.Min()}},
	})
}

// finishNodeResize records a completed resize for undo.
func (e *Editor) finishNodeResize(s *shape.Shape, info shape.DragInfo) {
	from := geometry.Size{W: info.From.W, H: info.From.H}
	to := geometry.Size{W: info.To.W, H: info.To.H}
	if from == to {
		return
	}
	e.push(Record{
		Forward: []Command{{Kind: CmdResizeNode, NodeID: s.ID(), FromSize: from, ToSize: to}},
		Inverse: []Command{{Kind: CmdResizeNode, NodeID: s.ID(), FromSize: to, ToSize: from}},
	})
}

// connectSession is a drag from a port; on release it hit-tests other
// shapes' ports and creates a link on the first match. Connection
// resolution happens entirely here — before any collision logic could
// run — and a miss is a legitimate outcome, not an error.
type connectSession struct {
	e    *Editor
	from edge.PortRef
	last geometry.Point
}

func (c *connectSession) Move(p geometry.Point) {
	c.last = p
}

func (c *connectSession) Up(p geometry.Point) {
	shapeID, portID, ok := c.e.PortAt(p, c.from.ShapeID)
	if !ok {
		return
	}
	c.e.AddLink(c.from, edge.PortRef{ShapeID: shapeID, PortID: portID}, edge.Config{})
}

// reconnectSession replaces an edge's target endpoint with the port the
// pointer is released over. Installed by the edge's reconnect signal.
type reconnectSession struct {
	e    *Editor
	link *edge.Edge
}

func (r *reconnectSession) Move(p geometry.Point) {}

func (r *reconnectSession) Up(p geometry.Point) {
	shapeID, portID, ok := r.e.PortAt(p, "")
	if !ok {
		return
	}
	r.e.ReconnectLink(r.link, r.link.Source(), edge.PortRef{ShapeID: shapeID, PortID: portID})
}

// lassoSession tracks a rubber-band rectangle; on release it selects every
// node whose bounding box is fully contained — not merely intersecting —
// and replaces the prior selection.
type lassoSession struct {
	e     *Editor
	start geometry.Point
	rect  geometry.Rect
}

func (l *lassoSession) Move(p geometry.Point) {
	l.rect = geometry.RectFromPoints(l.start, p)
}

func (l *lassoSession) Up(p geometry.Point) {
	l.rect = geometry.RectFromPoints(l.start, p)
	var selected []*shape.Shape
	for _, id := range l.e.order {
		s := l.e.nodes[id]
		if l.rect.ContainsRect(s.Bounds()) {
			selected = append(selected, s)
		}
	}
	l.e.selNodes = selected
	l.e.emitNodeSelect()
}

// Rect returns the current lasso rectangle, for front-ends that draw it.
func (l *lassoSession) Rect() geometry.Rect { return l.rect }

// panSession translates the viewport origin against the drag so the
// anchor point stays under the pointer: dragging right moves the view
// left. Viewport size is untouched.
type panSession struct {
	e      *Editor
	anchor geometry.Point
}

func (s *panSession) Move(p geometry.Point) {
	s.e.viewport.Pan(s.anchor.X-p.X, s.anchor.Y-p.Y)
}

func (s *panSession) Up(p geometry.Point) {
	s.Move(p)
}
