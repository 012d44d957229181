package shape

import (
	"vellum/geometry"

	"github.com/google/uuid"
)

// Side names the edge of a shape a port sits on.
type Side string

const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// Port is a named attachment point on a shape's perimeter, defined by a
// side and a fractional offset along it. Its absolute coordinate is never
// stored; it is derived from the owning shape's current bounds on demand.
type Port struct {
	ID     string
	Name   string
	Side   Side
	Offset float32
}

// AddPort appends a port with a freshly generated id. The offset is
// clamped to [0, 1].
func (s *Shape) AddPort(name string, side Side, offset float32) Port {
	p := Port{
		ID:     uuid.NewString(),
		Name:   name,
		Side:   side,
		Offset: geometry.Clamp(offset, 0, 1),
	}
	s.ports = append(s.ports, p)
	return p
}

// Ports returns the shape's ports in insertion order.
func (s *Shape) Ports() []Port {
	return s.ports
}

// Port looks up a port by id.
func (s *Shape) Port(id string) (Port, bool) {
	for _, p := range s.ports {
		if p.ID == id {
			return p, true
		}
	}
	return Port{}, false
}

// PortPoint resolves a port's absolute coordinate from the shape's
// current bounds.
func (s *Shape) PortPoint(id string) (geometry.Point, bool) {
	p, ok := s.Port(id)
	if !ok {
		return geometry.Point{}, false
	}
	return portPoint(s.Bounds(), p), true
}

// portPoint derives the absolute coordinate of a port on the given bounds.
func portPoint(b geometry.Rect, p Port) geometry.Point {
	switch p.Side {
	case SideTop:
		return geometry.Point{X: b.X + b.W*p.Offset, Y: b.Y}
	case SideBottom:
		return geometry.Point{X: b.X + b.W*p.Offset, Y: b.Y + b.H}
	case SideLeft:
		return geometry.Point{X: b.X, Y: b.Y + b.H*p.Offset}
	case SideRight:
		return geometry.Point{X: b.X + b.W, Y: b.Y + b.H*p.Offset}
	default:
		return b.Center()
	}
}
