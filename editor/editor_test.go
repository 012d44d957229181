package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vellum/edge"
	"vellum/event"
	"vellum/geometry"
	"vellum/shape"
)

func newTestEditor() *Editor {
	return New(Options{})
}

// addPair creates the canonical two-node fixture: A at the origin with a
// right-side port, B at (300,0) with a left-side port, both 100x100.
func addPair(e *Editor) (*shape.Shape, *shape.Shape) {
	a := e.AddNode(shape.Config{X: 0, Y: 0, Width: 100, Height: 100, Label: "A",
		Ports: []shape.PortConfig{{Name: "out", Side: shape.SideRight, Offset: 0.5}}})
	b := e.AddNode(shape.Config{X: 300, Y: 0, Width: 100, Height: 100, Label: "B",
		Ports: []shape.PortConfig{{Name: "in", Side: shape.SideLeft, Offset: 0.5}}})
	return a, b
}

func link(e *Editor, a, b *shape.Shape) *edge.Edge {
	return e.AddLink(
		edge.PortRef{ShapeID: a.ID(), PortID: a.Ports()[0].ID},
		edge.PortRef{ShapeID: b.ID(), PortID: b.Ports()[0].ID},
		edge.Config{},
	)
}

func TestLinkFollowsNodeMovement(t *testing.T) {
	e := newTestEditor()
	a, b := addPair(e)
	l := link(e, a, b)

	pts := l.Path().Points
	require.Equal(t, geometry.Point{X: 100, Y: 50}, pts[0])
	require.Equal(t, geometry.Point{X: 300, Y: 50}, pts[1])

	b.SetPosition(300, 200)

	pts = l.Path().Points
	assert.Equal(t, geometry.Point{X: 100, Y: 50}, pts[0])
	assert.Equal(t, geometry.Point{X: 300, Y: 250}, pts[1])
}

func TestConnectGesture(t *testing.T) {
	e := newTestEditor()
	a, b := addPair(e)

	e.PointerDown(geometry.Point{X: 100, Y: 50}, Modifiers{})
	e.PointerMove(geometry.Point{X: 200, Y: 50})
	e.PointerUp(geometry.Point{X: 300, Y: 50})

	require.Equal(t, 1, e.LinkCount())
	l := e.Links()[0]
	assert.Equal(t, a.ID(), l.Source().(edge.PortRef).ShapeID)
	assert.Equal(t, b.ID(), l.Target().(edge.PortRef).ShapeID)
}

func TestConnectGestureMissIsNoOp(t *testing.T) {
	e := newTestEditor()
	addPair(e)

	e.PointerDown(geometry.Point{X: 100, Y: 50}, Modifiers{})
	e.PointerUp(geometry.Point{X: 200, Y: 200})

	assert.Zero(t, e.LinkCount())
	assert.False(t, e.Dragging())
}

func TestRemoveNodeCascades(t *testing.T) {
	e := newTestEditor()
	a, b := addPair(e)
	link(e, a, b)

	var removals []string
	e.Events().On(event.LinkRemove, func(event.Event) { removals = append(removals, "link") })
	e.Events().On(event.NodeRemove, func(event.Event) { removals = append(removals, "node") })

	e.RemoveNode(a.ID())

	assert.Equal(t, 1, e.NodeCount())
	assert.Zero(t, e.LinkCount())
	// Each cascaded link removal emits before the node's own removal.
	assert.Equal(t, []string{"link", "node"}, removals)
}

func TestUndoRestoresCascade(t *testing.T) {
	e := newTestEditor()
	a, b := addPair(e)
	l := link(e, a, b)

	e.RemoveNode(a.ID())
	e.Undo()

	require.Equal(t, 2, e.NodeCount())
	require.Equal(t, 1, e.LinkCount())
	restored, ok := e.Node(a.ID())
	require.True(t, ok, "node identity must survive undo")
	assert.Equal(t, a.Ports()[0].ID, restored.Ports()[0].ID)
	assert.Equal(t, l.ID(), e.Links()[0].ID())
	// The restored link resolves against the restored node.
	assert.Equal(t, geometry.Point{X: 100, Y: 50}, e.Links()[0].Path().Points[0])

	e.Redo()
	assert.Equal(t, 1, e.NodeCount())
	assert.Zero(t, e.LinkCount())
}

func TestUndoRedoInverseLaw(t *testing.T) {
	e := newTestEditor()
	a, b := addPair(e)
	link(e, a, b)
	after := e.Snapshot()

	for e.CanUndo() {
		e.Undo()
	}
	assert.Zero(t, e.NodeCount())
	assert.Zero(t, e.LinkCount())

	for e.CanRedo() {
		e.Redo()
	}
	assert.Equal(t, after, e.Snapshot())
	_, ok := e.Node(a.ID())
	assert.True(t, ok)
	_, ok = e.Node(b.ID())
	assert.True(t, ok)
}

func TestNewActionClearsRedo(t *testing.T) {
	e := newTestEditor()
	e.AddNode(shape.Config{Width: 50, Height: 50})
	e.Undo()
	require.True(t, e.CanRedo())

	e.AddNode(shape.Config{X: 200, Width: 50, Height: 50})
	assert.False(t, e.CanRedo())
}

func TestHistoryLimit(t *testing.T) {
	e := New(Options{HistoryLimit: 2})
	e.AddNode(shape.Config{Width: 50, Height: 50})
	e.AddNode(shape.Config{X: 100, Width: 50, Height: 50})
	e.AddNode(shape.Config{X: 200, Width: 50, Height: 50})

	e.Undo()
	e.Undo()
	assert.False(t, e.CanUndo(), "oldest record should have been dropped")
	assert.Equal(t, 1, e.NodeCount())
}

func TestUndoEmptyIsNoOp(t *testing.T) {
	e := newTestEditor()
	var fired bool
	e.Events().On(event.HistoryUndo, func(event.Event) { fired = true })
	e.Undo()
	e.Redo()
	assert.False(t, fired)
}

func TestDragUndo(t *testing.T) {
	e := newTestEditor()
	a, _ := addPair(e)

	e.PointerDown(geometry.Point{X: 50, Y: 50}, Modifiers{})
	e.PointerMove(geometry.Point{X: 100, Y: 200})
	e.PointerUp(geometry.Point{X: 100, Y: 200})
	require.Equal(t, geometry.Point{X: 50, Y: 150}, a.Position())

	e.Undo()
	assert.Equal(t, geometry.Point{X: 0, Y: 0}, a.Position())
	e.Redo()
	assert.Equal(t, geometry.Point{X: 50, Y: 150}, a.Position())
}

func TestCollisionRevertsDrag(t *testing.T) {
	e := newTestEditor()
	a, b := addPair(e)

	e.PointerDown(geometry.Point{X: 50, Y: 50}, Modifiers{})
	e.PointerMove(geometry.Point{X: 330, Y: 50})
	e.PointerUp(geometry.Point{X: 330, Y: 50})

	// A landed overlapping B, so it reverts to its exact pre-drag
	// position and no move is recorded beyond the two fixture adds.
	assert.Equal(t, geometry.Point{X: 0, Y: 0}, a.Position())
	assert.Equal(t, geometry.Point{X: 300, Y: 0}, b.Position())
	assert.Len(t, e.undo, 2)
}

func TestTouchingEdgesIsNotCollision(t *testing.T) {
	e := newTestEditor()
	a, _ := addPair(e)

	// Drag A flush against B: right edge at x=300 exactly.
	e.PointerDown(geometry.Point{X: 50, Y: 50}, Modifiers{})
	e.PointerUp(geometry.Point{X: 250, Y: 50})

	assert.Equal(t, geometry.Point{X: 200, Y: 0}, a.Position())
}

func TestResizeUndo(t *testing.T) {
	e := newTestEditor()
	a, _ := addPair(e)
	e.SelectNode(a, false)

	e.PointerDown(geometry.Point{X: 100, Y: 100}, Modifiers{})
	e.PointerMove(geometry.Point{X: 150, Y: 130})
	e.PointerUp(geometry.Point{X: 150, Y: 130})
	require.Equal(t, geometry.Size{W: 150, H: 130}, a.Size())

	e.Undo()
	assert.Equal(t, geometry.Size{W: 100, H: 100}, a.Size())
}

func TestReconnectGesture(t *testing.T) {
	e := newTestEditor()
	a, b := addPair(e)
	c := e.AddNode(shape.Config{X: 300, Y: 300, Width: 100, Height: 100, Label: "C",
		Ports: []shape.PortConfig{{Name: "in", Side: shape.SideLeft, Offset: 0.5}}})
	l := link(e, a, b)

	// A modified click on the edge body starts a reconnect; release over
	// C's port retargets the link.
	e.PointerDown(geometry.Point{X: 200, Y: 50}, Modifiers{Append: true})
	e.PointerUp(geometry.Point{X: 300, Y: 350})

	require.Equal(t, c.ID(), l.Target().(edge.PortRef).ShapeID)
	assert.Equal(t, geometry.Point{X: 300, Y: 350}, l.Path().Points[1])

	e.Undo()
	assert.Equal(t, b.ID(), l.Target().(edge.PortRef).ShapeID)
}

func TestDoubleClickRemovesLink(t *testing.T) {
	e := newTestEditor()
	a, b := addPair(e)
	link(e, a, b)

	e.DoubleClick(geometry.Point{X: 200, Y: 50})
	require.Zero(t, e.LinkCount())

	e.Undo()
	assert.Equal(t, 1, e.LinkCount())
}

func TestSelection(t *testing.T) {
	e := newTestEditor()
	a, b := addPair(e)

	var last []*shape.Shape
	e.Events().On(event.NodeSelect, func(ev event.Event) {
		last = ev.Payload.([]*shape.Shape)
	})

	e.SelectNode(a, false)
	require.Equal(t, []*shape.Shape{a}, last)

	e.SelectNode(b, true)
	require.Equal(t, []*shape.Shape{a, b}, last)

	// Re-appending an already selected shape does not duplicate it but
	// still notifies.
	last = nil
	e.SelectNode(a, true)
	require.Equal(t, []*shape.Shape{a, b}, last)

	e.SelectNode(nil, false)
	assert.Empty(t, last)
}

func TestEmptyCanvasClickClearsSelection(t *testing.T) {
	e := newTestEditor()
	a, _ := addPair(e)
	e.SelectNode(a, false)

	e.PointerDown(geometry.Point{X: 600, Y: 600}, Modifiers{})
	e.PointerUp(geometry.Point{X: 600, Y: 600})

	assert.Empty(t, e.SelectedNodes())
	assert.Empty(t, e.SelectedLinks())
}

func TestRemovalPrunesSelection(t *testing.T) {
	e := newTestEditor()
	a, b := addPair(e)
	e.SelectNode(a, false)
	e.SelectNode(b, true)

	e.RemoveNode(a.ID())
	assert.Equal(t, []*shape.Shape{b}, e.SelectedNodes())
}

func TestLassoSelectsFullyContainedOnly(t *testing.T) {
	e := newTestEditor()
	a, b := addPair(e)

	e.PointerDown(geometry.Point{X: -10, Y: -10}, Modifiers{Lasso: true})
	e.PointerMove(geometry.Point{X: 200, Y: 200})
	// Release covers all of A but only part of B.
	e.PointerUp(geometry.Point{X: 350, Y: 200})

	assert.Equal(t, []*shape.Shape{a}, e.SelectedNodes())
	_ = b
}

func TestLassoReplacesSelection(t *testing.T) {
	e := newTestEditor()
	a, b := addPair(e)
	e.SelectNode(a, false)

	// Lasso around B only.
	e.PointerDown(geometry.Point{X: 290, Y: -10}, Modifiers{Lasso: true})
	e.PointerUp(geometry.Point{X: 410, Y: 110})

	assert.Equal(t, []*shape.Shape{b}, e.SelectedNodes())
}

func TestPanGesture(t *testing.T) {
	// Feed points the way a front-end does: each pointer event is
	// converted through the current viewport, so the conversion of a
	// stationary screen point changes as the viewport pans underneath it.
	e := newTestEditor()
	doc := func(screen geometry.Point) geometry.Point {
		return e.Viewport().ToDocument(screen, 800, 600)
	}

	e.PointerDown(doc(geometry.Point{X: 100, Y: 100}), Modifiers{Pan: true})
	e.PointerMove(doc(geometry.Point{X: 60, Y: 90}))
	e.PointerUp(doc(geometry.Point{X: 60, Y: 90}))

	v := e.Viewport()
	assert.InDelta(t, 40, v.X, 1e-4)
	assert.InDelta(t, 10, v.Y, 1e-4)
	// The anchor document point ends up under the released screen point.
	got := doc(geometry.Point{X: 60, Y: 90})
	assert.InDelta(t, 100, got.X, 1e-4)
	assert.InDelta(t, 100, got.Y, 1e-4)
}

func TestZoomAnchored(t *testing.T) {
	e := newTestEditor()
	e.Zoom(geometry.Point{X: 400, Y: 300}, true)

	v := e.Viewport()
	assert.InDelta(t, 40, v.X, 1e-4)
	assert.InDelta(t, 30, v.Y, 1e-4)
	assert.InDelta(t, 720, v.W, 1e-4)
	assert.InDelta(t, 540, v.H, 1e-4)

	e.Zoom(geometry.Point{X: 400, Y: 300}, false)
	v = e.Viewport()
	assert.InDelta(t, 400-360*1.1, v.X, 1e-3)
	assert.InDelta(t, 792, v.W, 1e-3)
}

func TestPortAtTieBreak(t *testing.T) {
	e := newTestEditor()
	// Two ports at the same coordinate: A's right edge and B's left edge
	// both resolve to (100,50). Insertion order wins, not distance.
	a := e.AddNode(shape.Config{X: 0, Y: 0, Width: 100, Height: 100,
		Ports: []shape.PortConfig{{Side: shape.SideRight, Offset: 0.5}}})
	e.AddNode(shape.Config{X: 100, Y: 0, Width: 100, Height: 100,
		Ports: []shape.PortConfig{{Side: shape.SideLeft, Offset: 0.5}}})

	shapeID, portID, ok := e.PortAt(geometry.Point{X: 100, Y: 50}, "")
	require.True(t, ok)
	assert.Equal(t, a.ID(), shapeID)
	assert.Equal(t, a.Ports()[0].ID, portID)

	// Excluding A hands the hit to B.
	shapeID, _, ok = e.PortAt(geometry.Point{X: 100, Y: 50}, a.ID())
	require.True(t, ok)
	assert.NotEqual(t, a.ID(), shapeID)
}

func TestNodeAtTopmost(t *testing.T) {
	e := newTestEditor()
	e.AddNode(shape.Config{X: 0, Y: 0, Width: 100, Height: 100})
	top := e.AddNode(shape.Config{X: 50, Y: 50, Width: 100, Height: 100})

	assert.Same(t, top, e.NodeAt(geometry.Point{X: 75, Y: 75}))
}

func TestJSONRoundTrip(t *testing.T) {
	e := newTestEditor()
	a, b := addPair(e)
	link(e, a, b)

	data, err := e.ExportJSON()
	require.NoError(t, err)

	e2 := newTestEditor()
	require.NoError(t, e2.Load(data))

	assert.Equal(t, e.Snapshot(), e2.Snapshot())
	// Identity survives: same node and port ids, and links resolve.
	n, ok := e2.Node(a.ID())
	require.True(t, ok)
	assert.Equal(t, a.Ports()[0].ID, n.Ports()[0].ID)
	require.Equal(t, 1, e2.LinkCount())
	assert.Equal(t, geometry.Point{X: 100, Y: 50}, e2.Links()[0].Path().Points[0])
}

func TestLoadSkipsMalformedLinks(t *testing.T) {
	e := newTestEditor()
	a, b := addPair(e)
	aID, bID, ghost := a.ID(), b.ID(), "no-such-node"

	doc := e.Snapshot()
	doc.Links = []DocumentLink{
		{Source: &aID, Target: &bID},   // valid
		{Source: &aID, Target: nil},    // free endpoint, skipped
		{Source: &ghost, Target: &bID}, // unknown node, skipped
	}

	e2 := newTestEditor()
	e2.LoadDocument(doc)

	assert.Equal(t, 2, e2.NodeCount())
	assert.Equal(t, 1, e2.LinkCount())
}

func TestLoadResetsHistory(t *testing.T) {
	e := newTestEditor()
	a, b := addPair(e)
	link(e, a, b)
	data, err := e.ExportJSON()
	require.NoError(t, err)

	e2 := newTestEditor()
	e2.AddNode(shape.Config{Width: 50, Height: 50})
	require.NoError(t, e2.Load(data))

	assert.False(t, e2.CanUndo())
	assert.False(t, e2.CanRedo())
	assert.Equal(t, 2, e2.NodeCount())
}

func TestMutationPrecedesNotification(t *testing.T) {
	e := newTestEditor()

	e.Events().Once(event.NodeAdd, func(ev event.Event) {
		s := ev.Payload.(*shape.Shape)
		_, ok := e.Node(s.ID())
		assert.True(t, ok, "shape must be queryable from inside the add handler")
		assert.Equal(t, 1, e.NodeCount())
	})
	e.AddNode(shape.Config{Width: 50, Height: 50})

	e.Events().On(event.LinkRemove, func(event.Event) {
		assert.Zero(t, e.LinkCount(), "link must be gone from inside the remove handler")
	})
	a, b := addPair(e)
	l := link(e, a, b)
	e.RemoveLink(l)
}

func TestContentBounds(t *testing.T) {
	e := newTestEditor()
	assert.Equal(t, geometry.Rect{}, e.ContentBounds())

	addPair(e)
	bounds := e.ContentBounds()
	assert.Equal(t, float32(0), bounds.X)
	assert.Equal(t, float32(400), bounds.X+bounds.W)
	assert.Equal(t, float32(100), bounds.Y+bounds.H)
}

func TestClear(t *testing.T) {
	e := newTestEditor()
	a, b := addPair(e)
	link(e, a, b)
	e.SelectNode(a, false)
	_ = b

	e.Clear()

	assert.Zero(t, e.NodeCount())
	assert.Zero(t, e.LinkCount())
	assert.Empty(t, e.SelectedNodes())
	assert.False(t, e.CanUndo())
}

func TestStateTracksCounts(t *testing.T) {
	e := newTestEditor()
	a, b := addPair(e)
	link(e, a, b)

	assert.Equal(t, 2, e.State().Get("nodes"))
	assert.Equal(t, 1, e.State().Get("links"))

	e.RemoveNode(a.ID())
	assert.Equal(t, 1, e.State().Get("nodes"))
	assert.Equal(t, 0, e.State().Get("links"))
	_ = b
}
