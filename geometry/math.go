// Package geometry provides the float32 point, rectangle and viewport math
// used throughout vellum. Scalar helpers wrap chewxy/math32, which has
// optimized float32 implementations.
package geometry

import "github.com/chewxy/math32"

// Abs returns the absolute value of x.
func Abs(x float32) float32 {
	return math32.Abs(x)
}

// Min returns the minimum of two values.
func Min(a, b float32) float32 {
	return math32.Min(a, b)
}

// Max returns the maximum of two values.
func Max(a, b float32) float32 {
	return math32.Max(a, b)
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Snap rounds v to the nearest multiple of step. A step of zero or less
// leaves v unchanged.
func Snap(v, step float32) float32 {
	if step <= 0 {
		return v
	}
	return math32.Round(v/step) * step
}
