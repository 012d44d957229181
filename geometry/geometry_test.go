package geometry

import "testing"

func TestZoomAtAnchor(t *testing.T) {
	// Zoom-in by factor 0.9 at (400,300) on an 800x600 viewport must move
	// the origin to (40,30) and shrink the size to 720x540.
	v := Viewport{X: 0, Y: 0, W: 800, H: 600}
	v.ZoomAt(Point{X: 400, Y: 300}, 0.9)

	if v.X != 40 || v.Y != 30 {
		t.Errorf("origin = (%v,%v), want (40,30)", v.X, v.Y)
	}
	if v.W != 720 || v.H != 540 {
		t.Errorf("size = (%v,%v), want (720,540)", v.W, v.H)
	}
}

func TestZoomKeepsAnchorFixed(t *testing.T) {
	v := Viewport{X: 10, Y: 20, W: 400, H: 300}
	anchor := Point{X: 120, Y: 80}
	before := v.ToScreen(anchor, 100, 50)
	v.ZoomAt(anchor, 1.1)
	after := v.ToScreen(anchor, 100, 50)

	if Abs(before.X-after.X) > 0.001 || Abs(before.Y-after.Y) > 0.001 {
		t.Errorf("anchor moved from %v to %v", before, after)
	}
}

func TestViewportRoundTrip(t *testing.T) {
	v := Viewport{X: 50, Y: -20, W: 640, H: 480}
	doc := Point{X: 123, Y: 45}
	screen := v.ToScreen(doc, 80, 24)
	back := v.ToDocument(screen, 80, 24)

	if Abs(back.X-doc.X) > 0.01 || Abs(back.Y-doc.Y) > 0.01 {
		t.Errorf("round trip %v -> %v -> %v", doc, screen, back)
	}
}

func TestRectOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"identical", Rect{0, 0, 10, 10}, Rect{0, 0, 10, 10}, true},
		{"partial", Rect{0, 0, 10, 10}, Rect{5, 5, 10, 10}, true},
		{"touching edges", Rect{0, 0, 10, 10}, Rect{10, 0, 10, 10}, false},
		{"separate x", Rect{0, 0, 10, 10}, Rect{20, 0, 10, 10}, false},
		{"separate y", Rect{0, 0, 10, 10}, Rect{0, 20, 10, 10}, false},
		{"contained", Rect{0, 0, 100, 100}, Rect{10, 10, 5, 5}, true},
	}
	for _, tt := range tests {
		if got := tt.a.Overlaps(tt.b); got != tt.want {
			t.Errorf("%s: Overlaps = %v, want %v", tt.name, got, tt.want)
		}
		if got := tt.b.Overlaps(tt.a); got != tt.want {
			t.Errorf("%s (swapped): Overlaps = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRectContainsRect(t *testing.T) {
	outer := Rect{0, 0, 100, 100}

	if !outer.ContainsRect(Rect{10, 10, 50, 50}) {
		t.Error("fully inside rect not contained")
	}
	if outer.ContainsRect(Rect{80, 80, 50, 50}) {
		t.Error("overlapping rect should not count as contained")
	}
	if !outer.ContainsRect(outer) {
		t.Error("rect should contain itself")
	}
}

func TestRectFromPoints(t *testing.T) {
	r := RectFromPoints(Point{X: 50, Y: 60}, Point{X: 10, Y: 20})
	want := Rect{10, 20, 40, 40}
	if r != want {
		t.Errorf("RectFromPoints = %+v, want %+v", r, want)
	}
}

func TestSnap(t *testing.T) {
	tests := []struct {
		v, step, want float32
	}{
		{13, 10, 10},
		{17, 10, 20},
		{15, 10, 20}, // round half away from zero
		{7, 0, 7},    // no step, unchanged
		{-13, 10, -10},
	}
	for _, tt := range tests {
		if got := Snap(tt.v, tt.step); got != tt.want {
			t.Errorf("Snap(%v, %v) = %v, want %v", tt.v, tt.step, got, tt.want)
		}
	}
}

func TestPointSegmentDistance(t *testing.T) {
	a := Point{X: 0, Y: 0}
	b := Point{X: 10, Y: 0}

	if d := PointSegmentDistance(Point{X: 5, Y: 3}, a, b); Abs(d-3) > 0.001 {
		t.Errorf("perpendicular distance = %v, want 3", d)
	}
	if d := PointSegmentDistance(Point{X: -4, Y: 0}, a, b); Abs(d-4) > 0.001 {
		t.Errorf("distance past segment start = %v, want 4", d)
	}
	if d := PointSegmentDistance(Point{X: 13, Y: 4}, a, b); Abs(d-5) > 0.001 {
		t.Errorf("distance past segment end = %v, want 5", d)
	}
}
