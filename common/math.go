package common

import "math"

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// PixelsPerUnit converts world units to screen pixels.
	PixelsPerUnit = 100.0

	// Gravity is the world gravity along Y in units/s^2 (Y points up).
	Gravity = -9.81

	// FixedDelta is the physics step in seconds.
	FixedDelta = 1.0 / 60.0
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// WorldToScreen maps a world position (origin at screen center, Y up) to
// screen pixels (origin top left, Y down).
func WorldToScreen(x, y float64) (float64, float64) {
	return BaseWidth/2 + x*PixelsPerUnit, BaseHeight/2 - y*PixelsPerUnit
}
