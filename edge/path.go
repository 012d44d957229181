package edge

import "vellum/geometry"

// curveSamples is the number of segments a cubic curve is flattened into
// for arc-length math.
const curveSamples = 32

// Path is the rendered geometry of an edge.
//
//   - straight: Points holds the two endpoints.
//   - orthogonal: Points holds the four corners of the three axis-aligned
//     segments.
//   - curved: Points holds [start, control1, control2, end] of a cubic.
type Path struct {
	Kind   Kind
	Points []geometry.Point
}

// IsEmpty reports whether the path has no geometry yet.
func (p Path) IsEmpty() bool {
	return len(p.Points) == 0
}

// Flatten returns the path as a polyline. Straight and orthogonal paths
// are returned as-is; curved paths are sampled.
func (p Path) Flatten() []geometry.Point {
	if p.Kind != KindCurved || len(p.Points) != 4 {
		return p.Points
	}
	pts := make([]geometry.Point, 0, curveSamples+1)
	for i := 0; i <= curveSamples; i++ {
		t := float32(i) / curveSamples
		pts = append(pts, cubicAt(p.Points[0], p.Points[1], p.Points[2], p.Points[3], t))
	}
	return pts
}

// Length returns the total rendered length of the path.
func (p Path) Length() float32 {
	pts := p.Flatten()
	var total float32
	for i := 1; i < len(pts); i++ {
		total += pts[i-1].Distance(pts[i])
	}
	return total
}

// PointAtLength returns the point at the given distance along the rendered
// path, clamped to its ends.
func (p Path) PointAtLength(dist float32) geometry.Point {
	pts := p.Flatten()
	if len(pts) == 0 {
		return geometry.Point{}
	}
	if dist <= 0 {
		return pts[0]
	}
	for i := 1; i < len(pts); i++ {
		seg := pts[i-1].Distance(pts[i])
		if dist <= seg && seg > 0 {
			t := dist / seg
			return geometry.Point{
				X: geometry.Lerp(pts[i-1].X, pts[i].X, t),
				Y: geometry.Lerp(pts[i-1].Y, pts[i].Y, t),
			}
		}
		dist -= seg
	}
	return pts[len(pts)-1]
}

// Midpoint returns the point halfway along the path by arc length. This is
// where edge labels are anchored; for curved and bent paths it differs
// from the geometric midpoint of the endpoints.
func (p Path) Midpoint() geometry.Point {
	return p.PointAtLength(p.Length() / 2)
}

// cubicAt evaluates a cubic Bezier at t.
func cubicAt(p0, c1, c2, p1 geometry.Point, t float32) geometry.Point {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return geometry.Point{
		X: a*p0.X + b*c1.X + c*c2.X + d*p1.X,
		Y: a*p0.Y + b*c1.Y + c*c2.Y + d*p1.Y,
	}
}
