// Package editor implements the diagram editor core: it owns the shape and
// edge collections, selection state, undo/redo history, the pan/zoom
// viewport, port hit-testing, drag-end collision rejection and JSON
// serialization. Entities never mutate these collections directly; every
// change flows through an editor method, and structural mutation always
// happens before the corresponding change notification is emitted.
package editor

import (
	"vellum/edge"
	"vellum/event"
	"vellum/geometry"
	"vellum/shape"
)

// Options tune editor behavior. Zero fields fall back to defaults.
type Options struct {
	MinNodeWidth  float32
	MinNodeHeight float32
	GridStep      float32 // 0 disables snapping
	ZoomStep      float32 // fractional scale per wheel step
	HistoryLimit  int     // max undo records kept
	PortHitRadius float32 // port hit-test radius in document units
	EdgeHitRadius float32 // edge click radius in document units
	HandleRadius  float32 // resize-handle grab radius
	CurveFactor   float32 // control offset factor for curved edges
	Viewport      geometry.Viewport
}

func (o *Options) applyDefaults() {
	if o.MinNodeWidth <= 0 {
		o.MinNodeWidth = shape.DefaultMinWidth
	}
	if o.MinNodeHeight <= 0 {
		o.MinNodeHeight = shape.DefaultMinHeight
	}
	if o.ZoomStep <= 0 {
		o.ZoomStep = 0.1
	}
	if o.HistoryLimit <= 0 {
		o.HistoryLimit = 100
	}
	if o.PortHitRadius <= 0 {
		o.PortHitRadius = 12
	}
	if o.EdgeHitRadius <= 0 {
		o.EdgeHitRadius = 6
	}
	if o.HandleRadius <= 0 {
		o.HandleRadius = 8
	}
	if o.CurveFactor <= 0 {
		o.CurveFactor = edge.DefaultCurveFactor
	}
	if o.Viewport.W <= 0 || o.Viewport.H <= 0 {
		o.Viewport = geometry.Viewport{X: 0, Y: 0, W: 800, H: 600}
	}
}

// ChangeInfo is the payload of DiagramChanged events.
type ChangeInfo struct {
	Kind string // "node:add", "node:remove", "link:add", "link:remove", "load", "clear"
	Node *shape.Shape
	Link *edge.Edge
}

// Editor is the diagram editor core.
type Editor struct {
	opts  Options
	bus   *event.Bus
	state *event.State

	nodes map[string]*shape.Shape
	order []string // shape insertion order, the hit-test tie-break
	links []*edge.Edge

	selNodes []*shape.Shape
	selLinks []*edge.Edge

	undo     []Record
	redo     []Record
	applying bool // true while replaying history commands

	viewport geometry.Viewport
	session  session

	nodeSubs map[string][]func()
	linkSubs map[string][]func()
}

// New creates an empty editor.
func New(opts Options) *Editor {
	opts.applyDefaults()
	e := &Editor{
		opts:     opts,
		bus:      event.NewBus(),
		state:    event.NewState(),
		nodes:    make(map[string]*shape.Shape),
		viewport: opts.Viewport,
		nodeSubs: make(map[string][]func()),
		linkSubs: make(map[string][]func()),
	}
	e.syncState()
	return e
}

// Events returns the editor's bus, the boundary observed by UI
// collaborators.
func (e *Editor) Events() *event.Bus { return e.bus }

// State returns the read-only derived state container.
func (e *Editor) State() *event.State { return e.state }

// Options returns the editor's effective options.
func (e *Editor) Options() Options { return e.opts }

// Node looks up a shape by id.
func (e *Editor) Node(id string) (*shape.Shape, bool) {
	s, ok := e.nodes[id]
	return s, ok
}

// Nodes returns all shapes in insertion order.
func (e *Editor) Nodes() []*shape.Shape {
	out := make([]*shape.Shape, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.nodes[id])
	}
	return out
}

// Links returns all edges in insertion order.
func (e *Editor) Links() []*edge.Edge {
	out := make([]*edge.Edge, len(e.links))
	copy(out, e.links)
	return out
}

// NodeCount returns the number of shapes.
func (e *Editor) NodeCount() int { return len(e.nodes) }

// LinkCount returns the number of edges.
func (e *Editor) LinkCount() int { return len(e.links) }

// AddNode constructs a shape from the config, wires it into the editor and
// records an undo entry whose inverse removes it again. Editor defaults
// fill in min sizes and grid step when the config leaves them zero.
func (e *Editor) AddNode(cfg shape.Config) *shape.Shape {
	if cfg.MinWidth <= 0 {
		cfg.MinWidth = e.opts.MinNodeWidth
	}
	if cfg.MinHeight <= 0 {
		cfg.MinHeight = e.opts.MinNodeHeight
	}
	if cfg.GridStep <= 0 {
		cfg.GridStep = e.opts.GridStep
	}
	s := shape.New(cfg)
	e.insertNode(s)
	e.push(Record{
		Forward: []Command{{Kind: CmdAddNode, Node: captureNode(s)}},
		Inverse: []Command{{Kind: CmdRemoveNode, Node: captureNode(s)}},
	})
	return s
}

// RemoveNode removes a shape and cascades removal of every edge with an
// endpoint referencing it; each cascaded removal emits its own LinkRemove.
// Unknown ids are a silent no-op.
func (e *Editor) RemoveNode(id string) {
	s, ok := e.nodes[id]
	if !ok {
		return
	}
	attached := e.linksReferencing(id)

	var forward, inverse []Command
	for _, l := range attached {
		forward = append(forward, Command{Kind: CmdRemoveLink, Link: captureLink(l)})
	}
	forward = append(forward, Command{Kind: CmdRemoveNode, Node: captureNode(s)})
	inverse = append(inverse, Command{Kind: CmdAddNode, Node: captureNode(s)})
	for _, l := range attached {
		inverse = append(inverse, Command{Kind: CmdAddLink, Link: captureLink(l)})
	}

	for _, l := range attached {
		e.removeLinkInternal(l)
	}
	e.removeNodeInternal(s)
	e.push(Record{Forward: forward, Inverse: inverse})
}

// AddLink constructs an edge between the given endpoints, wires its
// signals into editor-level selection and removal handling, and records an
// undo entry whose inverse removes it.
func (e *Editor) AddLink(source, target edge.Endpoint, cfg edge.Config) *edge.Edge {
	if cfg.CurveFactor <= 0 {
		cfg.CurveFactor = e.opts.CurveFactor
	}
	l := edge.New(source, target, cfg, e.resolveEndpoint)
	e.insertLink(l)
	e.push(Record{
		Forward: []Command{{Kind: CmdAddLink, Link: captureLink(l)}},
		Inverse: []Command{{Kind: CmdRemoveLink, Link: captureLink(l)}},
	})
	return l
}

// RemoveLink detaches and removes an edge. Untracked edges are a silent
// no-op.
func (e *Editor) RemoveLink(l *edge.Edge) {
	if l == nil || !e.tracksLink(l) {
		return
	}
	snap := captureLink(l)
	e.removeLinkInternal(l)
	e.push(Record{
		Forward: []Command{{Kind: CmdRemoveLink, Link: snap}},
		Inverse: []Command{{Kind: CmdAddLink, Link: snap}},
	})
}

// ReconnectLink replaces both endpoints of a tracked edge and records an
// undo entry restoring the previous ones.
func (e *Editor) ReconnectLink(l *edge.Edge, source, target edge.Endpoint) {
	if l == nil || !e.tracksLink(l) {
		return
	}
	oldSource, oldTarget := l.Source(), l.Target()
	l.SetEndpoints(source, target)
	e.push(Record{
		Forward: []Command{{Kind: CmdRetargetLink, LinkID: l.ID(), Source: source, Target: target}},
		Inverse: []Command{{Kind: CmdRetargetLink, LinkID: l.ID(), Source: oldSource, Target: oldTarget}},
	})
	e.bus.Emit(event.DiagramChanged, ChangeInfo{Kind: "link:reconnect", Link: l})
}

// SelectNode updates the node selection. A nil shape clears it; append
// mode adds to it; otherwise the selection is replaced. Selection is
// purely observational and always emits NodeSelect.
func (e *Editor) SelectNode(s *shape.Shape, appendMode bool) {
	switch {
	case s == nil:
		e.selNodes = nil
	case appendMode:
		for _, sel := range e.selNodes {
			if sel == s {
				e.emitNodeSelect()
				return
			}
		}
		e.selNodes = append(e.selNodes, s)
	default:
		e.selNodes = []*shape.Shape{s}
	}
	e.emitNodeSelect()
}

// SelectLink updates the link selection, mirroring SelectNode.
func (e *Editor) SelectLink(l *edge.Edge, appendMode bool) {
	switch {
	case l == nil:
		e.selLinks = nil
	case appendMode:
		for _, sel := range e.selLinks {
			if sel == l {
				e.emitLinkSelect()
				return
			}
		}
		e.selLinks = append(e.selLinks, l)
	default:
		e.selLinks = []*edge.Edge{l}
	}
	e.emitLinkSelect()
}

// SelectedNodes returns the current node selection.
func (e *Editor) SelectedNodes() []*shape.Shape {
	out := make([]*shape.Shape, len(e.selNodes))
	copy(out, e.selNodes)
	return out
}

// SelectedLinks returns the current link selection.
func (e *Editor) SelectedLinks() []*edge.Edge {
	out := make([]*edge.Edge, len(e.selLinks))
	copy(out, e.selLinks)
	return out
}

// NodeSelected reports whether a shape is in the current selection.
func (e *Editor) NodeSelected(s *shape.Shape) bool {
	for _, sel := range e.selNodes {
		if sel == s {
			return true
		}
	}
	return false
}

// Viewport returns the current viewport.
func (e *Editor) Viewport() geometry.Viewport { return e.viewport }

// SetViewport replaces the viewport.
func (e *Editor) SetViewport(v geometry.Viewport) { e.viewport = v }

// Zoom scales the viewport by the configured step, anchored at the given
// document point so it stays visually fixed.
func (e *Editor) Zoom(anchor geometry.Point, zoomIn bool) {
	scale := 1 + e.opts.ZoomStep
	if zoomIn {
		scale = 1 - e.opts.ZoomStep
	}
	e.viewport.ZoomAt(anchor, scale)
}

// ContentBounds returns the union of all node bounds, or a zero rect when
// the document is empty.
func (e *Editor) ContentBounds() geometry.Rect {
	var bounds geometry.Rect
	for i, id := range e.order {
		b := e.nodes[id].Bounds()
		if i == 0 {
			bounds = b
		} else {
			bounds = bounds.Union(b)
		}
	}
	for _, l := range e.links {
		for _, p := range l.Path().Flatten() {
			bounds = bounds.Union(geometry.Rect{X: p.X, Y: p.Y})
		}
	}
	return bounds
}

// Clear removes everything and resets history and selection.
func (e *Editor) Clear() {
	for _, l := range e.Links() {
		e.removeLinkInternal(l)
	}
	for _, id := range append([]string(nil), e.order...) {
		e.removeNodeInternal(e.nodes[id])
	}
	e.undo = nil
	e.redo = nil
	e.selNodes = nil
	e.selLinks = nil
	e.bus.Emit(event.DiagramChanged, ChangeInfo{Kind: "clear"})
}

// insertNode wires a shape's signals and adds it to the owning map. The
// map mutation happens before any notification goes out.
func (e *Editor) insertNode(s *shape.Shape) {
	e.nodes[s.ID()] = s
	e.order = append(e.order, s.ID())

	var subs []func()
	refresh := func(event.Event) {
		e.refreshLinks()
		e.syncState()
	}
	subs = append(subs, s.Events().On(event.Move, refresh))
	subs = append(subs, s.Events().On(event.Resize, refresh))
	subs = append(subs, s.Events().On(event.DragEnd, func(ev event.Event) {
		e.finishNodeDrag(s, ev.Payload.(shape.DragInfo))
	}))
	subs = append(subs, s.Events().On(event.ResizeEnd, func(ev event.Event) {
		e.finishNodeResize(s, ev.Payload.(shape.DragInfo))
	}))
	e.nodeSubs[s.ID()] = subs

	e.syncState()
	e.bus.Emit(event.NodeAdd, s)
	e.bus.Emit(event.DiagramChanged, ChangeInfo{Kind: "node:add", Node: s})
}

// removeNodeInternal removes a shape without recording history. Any edges
// still referencing the shape are cascaded first, keeping the collections
// mutually consistent no matter which path removal takes.
func (e *Editor) removeNodeInternal(s *shape.Shape) {
	if _, ok := e.nodes[s.ID()]; !ok {
		return
	}
	for _, l := range e.linksReferencing(s.ID()) {
		e.removeLinkInternal(l)
	}
	for _, off := range e.nodeSubs[s.ID()] {
		off()
	}
	delete(e.nodeSubs, s.ID())
	delete(e.nodes, s.ID())
	for i, id := range e.order {
		if id == s.ID() {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	e.pruneNodeSelection(s)
	e.syncState()
	e.bus.Emit(event.NodeRemove, s)
	e.bus.Emit(event.DiagramChanged, ChangeInfo{Kind: "node:remove", Node: s})
}

// insertLink wires an edge's signals and adds it to the edge set.
func (e *Editor) insertLink(l *edge.Edge) {
	e.links = append(e.links, l)

	var subs []func()
	subs = append(subs, l.Events().On(event.Click, func(event.Event) {
		e.SelectLink(l, false)
	}))
	subs = append(subs, l.Events().On(event.Reconnect, func(event.Event) {
		e.session = &reconnectSession{e: e, link: l}
	}))
	subs = append(subs, l.Events().On(event.RemoveRequest, func(event.Event) {
		e.RemoveLink(l)
	}))
	e.linkSubs[l.ID()] = subs

	e.syncState()
	e.bus.Emit(event.LinkAdd, l)
	e.bus.Emit(event.DiagramChanged, ChangeInfo{Kind: "link:add", Link: l})
}

// removeLinkInternal removes an edge without recording history.
func (e *Editor) removeLinkInternal(l *edge.Edge) {
	idx := -1
	for i, cur := range e.links {
		if cur == l {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	for _, off := range e.linkSubs[l.ID()] {
		off()
	}
	delete(e.linkSubs, l.ID())
	e.links = append(e.links[:idx], e.links[idx+1:]...)
	e.pruneLinkSelection(l)
	e.syncState()
	e.bus.Emit(event.LinkRemove, l)
	e.bus.Emit(event.DiagramChanged, ChangeInfo{Kind: "link:remove", Link: l})
}

func (e *Editor) tracksLink(l *edge.Edge) bool {
	for _, cur := range e.links {
		if cur == l {
			return true
		}
	}
	return false
}

// linksReferencing returns every edge with an endpoint on the given shape.
func (e *Editor) linksReferencing(shapeID string) []*edge.Edge {
	var out []*edge.Edge
	for _, l := range e.links {
		if endpointShape(l.Source()) == shapeID || endpointShape(l.Target()) == shapeID {
			out = append(out, l)
		}
	}
	return out
}

func endpointShape(ep edge.Endpoint) string {
	if ref, ok := ep.(edge.PortRef); ok {
		return ref.ShapeID
	}
	return ""
}

// resolveEndpoint is the single resolver shared by every edge: port
// references are looked up through the owning maps at call time, so a
// resolved coordinate is always the live one.
func (e *Editor) resolveEndpoint(ep edge.Endpoint) (geometry.Point, bool) {
	switch v := ep.(type) {
	case edge.PortRef:
		s, ok := e.nodes[v.ShapeID]
		if !ok {
			return geometry.Point{}, false
		}
		return s.PortPoint(v.PortID)
	case edge.FreePoint:
		return geometry.Point{X: v.X, Y: v.Y}, true
	default:
		return geometry.Point{}, false
	}
}

// refreshLinks recomputes every edge's geometry. Called whenever any shape
// moves or resizes.
func (e *Editor) refreshLinks() {
	for _, l := range e.links {
		l.Update()
	}
}

// syncState re-derives the read-only state snapshot.
func (e *Editor) syncState() {
	e.state.Set("nodes", len(e.nodes))
	e.state.Set("links", len(e.links))
	e.state.Set("bounds", e.ContentBounds())
}

func (e *Editor) emitNodeSelect() {
	e.bus.Emit(event.NodeSelect, e.SelectedNodes())
}

func (e *Editor) emitLinkSelect() {
	e.bus.Emit(event.LinkSelect, e.SelectedLinks())
}

func (e *Editor) pruneNodeSelection(s *shape.Shape) {
	for i, sel := range e.selNodes {
		if sel == s {
			e.selNodes = append(e.selNodes[:i], e.selNodes[i+1:]...)
			return
		}
	}
}

func (e *Editor) pruneLinkSelection(l *edge.Edge) {
	for i, sel := range e.selLinks {
		if sel == l {
			e.selLinks = append(e.selLinks[:i], e.selLinks[i+1:]...)
			return
		}
	}
}
