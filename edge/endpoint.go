// Package edge implements the connector entity between two endpoints. An
// endpoint is either a reference to a port on a shape or a free-standing
// coordinate; references are resolved through the owning editor at update
// time, never cached, so edge geometry follows shape movement.
package edge

import "vellum/geometry"

// Endpoint is a tagged union: PortRef or FreePoint.
type Endpoint interface {
	isEndpoint()
}

// PortRef references a port on a shape by id. Holding ids rather than live
// object references means a removed shape can never leave a dangling
// pointer behind; resolution simply fails.
type PortRef struct {
	ShapeID string
	PortID  string
}

func (PortRef) isEndpoint() {}

// FreePoint is a free-standing document coordinate.
type FreePoint struct {
	X, Y float32
}

func (FreePoint) isEndpoint() {}

// Resolver turns an endpoint into its current document coordinate. The
// second result is false when a referenced shape or port no longer exists.
type Resolver func(Endpoint) (geometry.Point, bool)

// ResolveFree is a resolver that only handles free points; it is the
// zero-dependency fallback used when no editor is attached.
func ResolveFree(ep Endpoint) (geometry.Point, bool) {
	if fp, ok := ep.(FreePoint); ok {
		return geometry.Point{X: fp.X, Y: fp.Y}, true
	}
	return geometry.Point{}, false
}
