package edge

import "vellum/geometry"

// Config returns a config that reproduces the edge's creation parameters.
func (e *Edge) Config() Config {
	return Config{Kind: e.kind, Label: e.label, CurveFactor: e.curveFactor}
}

// BendSet reports whether the bend point has been established (either
// defaulted on first render or dragged by the user).
func (e *Edge) BendSet() bool { return e.bendSet }

// Restore recreates an edge from previously captured data, preserving its
// identity and, when bendSet is true, its bend point.
func Restore(id string, source, target Endpoint, cfg Config, bend geometry.Point, bendSet bool, resolve Resolver) *Edge {
	e := New(source, target, cfg, resolve)
	e.id = id
	if bendSet {
		e.bend = bend
		e.bendSet = true
		e.Update()
	}
	return e
}
