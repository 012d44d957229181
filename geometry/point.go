package geometry

import "github.com/chewxy/math32"

// Point is a 2D coordinate in document space.
type Point struct {
	X, Y float32
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Mul returns p scaled by s.
func (p Point) Mul(s float32) Point {
	return Point{p.X * s, p.Y * s}
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float32 {
	return math32.Hypot(q.X-p.X, q.Y-p.Y)
}

// Mid returns the midpoint between p and q.
func (p Point) Mid(q Point) Point {
	return Point{(p.X + q.X) / 2, (p.Y + q.Y) / 2}
}

// Size is a 2D extent.
type Size struct {
	W, H float32
}
