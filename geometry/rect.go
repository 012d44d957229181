package geometry

// Rect is an axis-aligned rectangle defined by its top-left origin and size.
type Rect struct {
	X, Y, W, H float32
}

// RectFromPoints returns the normalized rectangle spanned by two corners,
// in any order.
func RectFromPoints(a, b Point) Rect {
	x := Min(a.X, b.X)
	y := Min(a.Y, b.Y)
	return Rect{X: x, Y: y, W: Abs(b.X - a.X), H: Abs(b.Y - a.Y)}
}

// Min returns the top-left corner.
func (r Rect) Min() Point {
	return Point{r.X, r.Y}
}

// Max returns the bottom-right corner.
func (r Rect) Max() Point {
	return Point{r.X + r.W, r.Y + r.H}
}

// Center returns the center point.
func (r Rect) Center() Point {
	return Point{r.X + r.W/2, r.Y + r.H/2}
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W &&
		p.Y >= r.Y && p.Y <= r.Y+r.H
}

// ContainsRect reports whether o lies entirely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y &&
		o.X+o.W <= r.X+r.W && o.Y+o.H <= r.Y+r.H
}

// Overlaps reports whether r and o intersect. This is the standard AABB
// test: all four separating-axis conditions must be false.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	x := Min(r.X, o.X)
	y := Min(r.Y, o.Y)
	return Rect{
		X: x,
		Y: y,
		W: Max(r.X+r.W, o.X+o.W) - x,
		H: Max(r.Y+r.H, o.Y+o.H) - y,
	}
}
