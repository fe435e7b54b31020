// Package sim implements the stochastic compute kernel: viewport-biased
// sampling of orbit constants, the two-pass escape/retrace evaluation of
// each path, the 4D rotation projection, and the shared atomic histogram
// the paths accumulate into. The package has no rendering dependencies;
// the host drives it through Kernel dispatches.
package sim

import "math"

// IterationCeiling bounds the per-path worst case regardless of
// user-configured channel thresholds.
const IterationCeiling = 2000

// escapeRadiusSq is the squared bailout radius for |Z|.
const escapeRadiusSq = 4.0

// GlobalRegion covers the full Mandelbrot parameter space. Unbiased
// samples are drawn uniformly from it, and importance-sampling boxes are
// clamped to it.
var GlobalRegion = Region{MinRe: -2.5, MaxRe: 1.0, MinIm: -1.5, MaxIm: 1.5}

// Region is an axis-aligned box in the complex parameter plane.
type Region struct {
	MinRe, MaxRe float64
	MinIm, MaxIm float64
}

// Contains reports whether the point (re, im) lies inside the region.
func (r Region) Contains(re, im float64) bool {
	return re >= r.MinRe && re <= r.MaxRe && im >= r.MinIm && im <= r.MaxIm
}

// Clamp restricts the region to the bounds of outer.
func (r Region) Clamp(outer Region) Region {
	return Region{
		MinRe: math.Max(r.MinRe, outer.MinRe),
		MaxRe: math.Min(r.MaxRe, outer.MaxRe),
		MinIm: math.Max(r.MinIm, outer.MinIm),
		MaxIm: math.Min(r.MaxIm, outer.MaxIm),
	}
}

// Thresholds holds the per-channel iteration thresholds. A channel is
// written during retrace iff the path's escape iteration does not exceed
// its threshold. MaxAll bounds how long any path is tracked.
type Thresholds struct {
	Red, Green, Blue int
	MaxAll           int
}

// EffectiveThresholds caps each channel at the iteration ceiling and
// computes MaxAll. Slider values above the ceiling are silently capped.
func EffectiveThresholds(red, green, blue int) Thresholds {
	t := Thresholds{
		Red:   capIters(red),
		Green: capIters(green),
		Blue:  capIters(blue),
	}
	t.MaxAll = t.Red
	if t.Green > t.MaxAll {
		t.MaxAll = t.Green
	}
	if t.Blue > t.MaxAll {
		t.MaxAll = t.Blue
	}
	return t
}

// ClassicThresholds uses a single threshold for all three channels.
func ClassicThresholds(n int) Thresholds {
	return EffectiveThresholds(n, n, n)
}

func capIters(n int) int {
	if n < 0 {
		return 0
	}
	if n > IterationCeiling {
		return IterationCeiling
	}
	return n
}

// Rotation holds the precomputed (cos, sin) pairs for the two independent
// 2D rotations applied to the 4D (Z, C) state.
type Rotation struct {
	CosXZ, SinXZ float64
	CosYW, SinYW float64
}

// NewRotation precomputes the rotation pairs for the given angles in radians.
func NewRotation(angleXZ, angleYW float64) Rotation {
	return Rotation{
		CosXZ: math.Cos(angleXZ), SinXZ: math.Sin(angleXZ),
		CosYW: math.Cos(angleYW), SinYW: math.Sin(angleYW),
	}
}

// PassParams is the immutable parameter block for one dispatch. The host
// rebuilds it whenever view, iteration or rotation state changes; every
// lane reads the same copy and nothing in the kernel mutates it.
type PassParams struct {
	// Seed is the per-dispatch seed scalar in [0, 1).
	Seed float64

	Thresholds Thresholds
	Rot        Rotation

	// View center and half-extents in projected (frac) coordinates.
	CenterX, CenterY float64
	HalfX, HalfY     float64

	// BiasFraction of lanes sample C from BiasRegion instead of the
	// global region.
	BiasFraction float64
	BiasRegion   Region

	// QuickRejectIters is the length of the cheap early-discard window.
	QuickRejectIters int

	// Histogram dimensions.
	Width, Height int
}
