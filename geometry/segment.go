package geometry

// PointSegmentDistance returns the distance from p to the segment a-b.
func PointSegmentDistance(p, a, b Point) float32 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return p.Distance(a)
	}
	ap := p.Sub(a)
	t := Clamp((ap.X*ab.X+ap.Y*ab.Y)/lenSq, 0, 1)
	closest := Point{X: a.X + ab.X*t, Y: a.Y + ab.Y*t}
	return p.Distance(closest)
}

// PointPolylineDistance returns the minimum distance from p to any segment
// of the polyline.
func PointPolylineDistance(p Point, pts []Point) float32 {
	if len(pts) == 0 {
		return MaxDistance
	}
	if len(pts) == 1 {
		return p.Distance(pts[0])
	}
	best := MaxDistance
	for i := 1; i < len(pts); i++ {
		if d := PointSegmentDistance(p, pts[i-1], pts[i]); d < best {
			best = d
		}
	}
	return best
}

// MaxDistance is returned when there is nothing to measure against.
const MaxDistance float32 = 3.4e38
