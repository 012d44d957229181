package edge

import (
	"vellum/event"
	"vellum/geometry"

	"github.com/google/uuid"
)

// Kind selects how an edge's path is constructed.
type Kind string

const (
	KindStraight   Kind = "straight"
	KindCurved     Kind = "curved"
	KindOrthogonal Kind = "orthogonal"
)

// DefaultCurveFactor scales the control-point offset of curved edges
// relative to the larger endpoint span, keeping curvature visually
// proportionate regardless of edge length or orientation.
const DefaultCurveFactor float32 = 0.25

// Config describes an edge to create.
type Config struct {
	Kind        Kind
	Label       string
	CurveFactor float32 // 0 means DefaultCurveFactor
}

// ClickInfo is the payload of Click events.
type ClickInfo struct {
	Point    geometry.Point
	Modified bool // held-shift variant, requests a reconnect
}

// Edge is a connector between two endpoints.
type Edge struct {
	id          string
	source      Endpoint
	target      Endpoint
	kind        Kind
	label       string
	curveFactor float32
	bend        geometry.Point
	bendSet     bool
	path        Path
	resolve     Resolver
	bus         *event.Bus
}

// New creates an edge between two endpoints and immediately computes its
// initial geometry through the given resolver.
func New(source, target Endpoint, cfg Config, resolve Resolver) *Edge {
	e := &Edge{
		id:          uuid.NewString(),
		source:      source,
		target:      target,
		kind:        cfg.Kind,
		label:       cfg.Label,
		curveFactor: cfg.CurveFactor,
		resolve:     resolve,
		bus:         event.NewBus(),
	}
	if e.kind == "" {
		e.kind = KindStraight
	}
	if e.curveFactor <= 0 {
		e.curveFactor = DefaultCurveFactor
	}
	if e.resolve == nil {
		e.resolve = ResolveFree
	}
	e.Update()
	return e
}

// ID returns the edge's stable unique identifier.
func (e *Edge) ID() string { return e.id }

// Kind returns the path-rendering kind.
func (e *Edge) Kind() Kind { return e.kind }

// Events returns the edge's event bus.
func (e *Edge) Events() *event.Bus { return e.bus }

// Source returns the source endpoint.
func (e *Edge) Source() Endpoint { return e.source }

// Target returns the target endpoint.
func (e *Edge) Target() Endpoint { return e.target }

// Label returns the optional label text.
func (e *Edge) Label() string { return e.label }

// SetLabel replaces the label text.
func (e *Edge) SetLabel(text string) { e.label = text }

// Path returns the last computed geometry.
func (e *Edge) Path() Path { return e.path }

// LabelPoint returns where the label is anchored: the path midpoint by
// arc length.
func (e *Edge) LabelPoint() geometry.Point {
	return e.path.Midpoint()
}

// SetResolver replaces the endpoint resolver and recomputes geometry.
func (e *Edge) SetResolver(r Resolver) {
	if r == nil {
		r = ResolveFree
	}
	e.resolve = r
	e.Update()
}

// SetEndpoints replaces both endpoints and recomputes geometry.
func (e *Edge) SetEndpoints(source, target Endpoint) {
	e.source = source
	e.target = target
	e.Update()
}

// Bend returns the orthogonal bend point.
func (e *Edge) Bend() geometry.Point { return e.bend }

// SetBend moves the orthogonal bend point and recomputes geometry. Once
// set, the bend no longer follows the endpoint midpoint.
func (e *Edge) SetBend(p geometry.Point) {
	e.bend = p
	e.bendSet = true
	e.Update()
}

// Update recomputes the rendered path from the endpoints' current resolved
// coordinates. Resolving a port reference reads the live position of its
// owning shape. If either endpoint fails to resolve the previous path is
// kept; the editor removes edges whose shapes are gone, so a transient
// failure here is not an error.
func (e *Edge) Update() {
	a, okA := e.resolve(e.source)
	b, okB := e.resolve(e.target)
	if !okA || !okB {
		return
	}
	switch e.kind {
	case KindCurved:
		off := e.curveFactor * geometry.Max(geometry.Abs(b.X-a.X), geometry.Abs(b.Y-a.Y))
		c1, c2 := curveControls(a, b, off)
		e.path = Path{Kind: KindCurved, Points: []geometry.Point{a, c1, c2, b}}
	case KindOrthogonal:
		if !e.bendSet {
			// First render: default the bend to the endpoint midpoint.
			// It persists afterward until the user drags the handle.
			e.bend = a.Mid(b)
			e.bendSet = true
		}
		e.path = Path{Kind: KindOrthogonal, Points: []geometry.Point{
			a,
			{X: e.bend.X, Y: a.Y},
			{X: e.bend.X, Y: b.Y},
			b,
		}}
	default:
		e.path = Path{Kind: KindStraight, Points: []geometry.Point{a, b}}
	}
}

// curveControls places cubic control points off the endpoints along the
// dominant axis of the span.
func curveControls(a, b geometry.Point, off float32) (geometry.Point, geometry.Point) {
	if geometry.Abs(b.X-a.X) >= geometry.Abs(b.Y-a.Y) {
		sign := float32(1)
		if b.X < a.X {
			sign = -1
		}
		return geometry.Point{X: a.X + sign*off, Y: a.Y},
			geometry.Point{X: b.X - sign*off, Y: b.Y}
	}
	sign := float32(1)
	if b.Y < a.Y {
		sign = -1
	}
	return geometry.Point{X: a.X, Y: a.Y + sign*off},
		geometry.Point{X: b.X, Y: b.Y - sign*off}
}

// Click signals an ordinary selection, or a reconnect request when the
// modifier is held. Double-click signals a removal request. These are
// signals only; the editor decides the actual effect.
func (e *Edge) Click(p geometry.Point, modified bool) {
	if modified {
		e.bus.Emit(event.Reconnect, ClickInfo{Point: p, Modified: true})
		return
	}
	e.bus.Emit(event.Click, ClickInfo{Point: p})
}

// DoubleClick signals a removal request.
func (e *Edge) DoubleClick(p geometry.Point) {
	e.bus.Emit(event.RemoveRequest, ClickInfo{Point: p})
}
