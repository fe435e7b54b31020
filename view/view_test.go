package view

import (
	"math"
	"testing"

	"github.com/mossfall/nebula/sim"
)

func testParams() Params {
	return Params{
		MinZoom:      0.5,
		MaxZoom:      5000,
		Damping:      0.15,
		BaseHalf:     1.6,
		RegionExpand: 1.5,
		BiasCap:      0.85,
	}
}

func TestNewCentered(t *testing.T) {
	c := New(1024, 768, testParams())

	st := c.State()
	if st.CenterX != 0 || st.CenterY != 0 || st.Zoom != 1 {
		t.Errorf("expected origin at zoom 1, got %+v", st)
	}
	if c.Animating() {
		t.Error("expected settled controller on creation")
	}
}

func TestHalfExtentsAspect(t *testing.T) {
	c := New(1024, 768, testParams())

	hx, hy := c.HalfExtents()
	if math.Abs(hy-1.6) > 1e-12 {
		t.Errorf("expected vertical half extent 1.6 at zoom 1, got %f", hy)
	}
	if math.Abs(hx-1.6*1024/768) > 1e-12 {
		t.Errorf("expected horizontal half extent scaled by aspect, got %f", hx)
	}
}

func TestStepConvergesAndSnaps(t *testing.T) {
	c := New(1024, 768, testParams())
	c.SetTarget(0.1, 0.75, 30)

	steps := 0
	for c.Animating() {
		if !c.Step() {
			t.Fatal("Step returned false while animating")
		}
		steps++
		if steps > 1000 {
			t.Fatal("animation did not settle")
		}
	}

	// Settling snaps exactly to the target
	st := c.State()
	if st.CenterX != 0.1 || st.CenterY != 0.75 || st.Zoom != 30 {
		t.Errorf("expected exact snap to target, got %+v", st)
	}
	if c.Step() {
		t.Error("expected settled controller to report no change")
	}
}

func TestSetTargetClampsZoom(t *testing.T) {
	c := New(1024, 768, testParams())

	c.SetTarget(0, 0, 1e9)
	for c.Animating() {
		c.Step()
	}
	if c.Zoom() != 5000 {
		t.Errorf("expected zoom clamped to 5000, got %f", c.Zoom())
	}

	c.SetTarget(0, 0, 0.01)
	for c.Animating() {
		c.Step()
	}
	if c.Zoom() != 0.5 {
		t.Errorf("expected zoom clamped to 0.5, got %f", c.Zoom())
	}
}

func TestScreenToComplexCenter(t *testing.T) {
	c := New(1024, 768, testParams())

	// Pointer at the screen center of the home view is the origin
	cre, cim, ok := c.ScreenToComplex(512, 384)
	if !ok {
		t.Fatal("expected center to be inside the render area")
	}
	if math.Abs(cre) > 1e-12 || math.Abs(cim) > 1e-12 {
		t.Errorf("expected origin, got (%f, %f)", cre, cim)
	}
}

func TestScreenToComplexOutside(t *testing.T) {
	c := New(1024, 768, testParams())

	cases := []struct{ px, py float64 }{
		{-1, 100}, {1024, 100}, {100, -1}, {100, 768},
	}
	for _, tc := range cases {
		if _, _, ok := c.ScreenToComplex(tc.px, tc.py); ok {
			t.Errorf("expected (%f, %f) to be outside the render area", tc.px, tc.py)
		}
	}
}

func TestScreenToComplexAxes(t *testing.T) {
	c := New(1024, 768, testParams())

	// Moving right on screen increases the imaginary part
	_, cimLeft, _ := c.ScreenToComplex(100, 384)
	_, cimRight, _ := c.ScreenToComplex(900, 384)
	if cimRight <= cimLeft {
		t.Errorf("expected imaginary part to grow rightward, got %f -> %f", cimLeft, cimRight)
	}

	// Moving down on screen decreases the real part
	creTop, _, _ := c.ScreenToComplex(512, 100)
	creBottom, _, _ := c.ScreenToComplex(512, 700)
	if creBottom >= creTop {
		t.Errorf("expected real part to shrink downward, got %f -> %f", creTop, creBottom)
	}
}

func TestZoomAtKeepsPointFixed(t *testing.T) {
	c := New(1024, 768, testParams())
	px, py := 700.0, 200.0

	before, beforeIm, ok := c.ScreenToComplex(px, py)
	if !ok {
		t.Fatal("probe point outside render area")
	}

	c.ZoomAt(px, py, 3)
	for c.Animating() {
		c.Step()
	}

	after, afterIm, ok := c.ScreenToComplex(px, py)
	if !ok {
		t.Fatal("probe point outside render area after zoom")
	}
	if math.Abs(after-before) > 1e-9 || math.Abs(afterIm-beforeIm) > 1e-9 {
		t.Errorf("expected point under cursor fixed across zoom: (%f, %f) -> (%f, %f)",
			before, beforeIm, after, afterIm)
	}
	if math.Abs(c.Zoom()-3) > 1e-12 {
		t.Errorf("expected zoom 3, got %f", c.Zoom())
	}
}

func TestPanShiftsInstantly(t *testing.T) {
	c := New(1024, 768, testParams())

	if c.Pan(0, 0) {
		t.Error("expected zero pan to be a no-op")
	}

	if !c.Pan(100, 50) {
		t.Error("expected pan to report a change")
	}
	st := c.State()
	if st.CenterX == 0 || st.CenterY == 0 {
		t.Errorf("expected pan to move the center, got %+v", st)
	}
	if c.Animating() {
		t.Error("expected pan not to start an animation")
	}

	// Dragging left by 100px moves the view right: content follows the
	// pointer, so the center shifts opposite the drag.
	if st.CenterX >= 0 {
		t.Errorf("expected rightward drag to shift center negative, got %f", st.CenterX)
	}
}

func TestPanRetargetsAnimation(t *testing.T) {
	c := New(1024, 768, testParams())
	c.SetTarget(0, 0, 10)
	c.Step()

	c.Pan(100, 0)
	shifted := c.State().CenterX

	for c.Animating() {
		c.Step()
	}

	// The animation finishes at the panned position, not the original
	// target.
	final := c.State().CenterX
	if math.Abs(final-shifted) > 0.5 {
		t.Errorf("expected animation to respect the pan, center drifted %f -> %f", shifted, final)
	}
	if final == 0 {
		t.Error("expected final center away from the pre-pan target")
	}
}

func TestReset(t *testing.T) {
	c := New(1024, 768, testParams())
	c.SetTarget(0.1, 0.75, 30)
	for c.Animating() {
		c.Step()
	}

	c.Reset()
	for c.Animating() {
		c.Step()
	}

	st := c.State()
	if st.CenterX != 0 || st.CenterY != 0 || st.Zoom != 1 {
		t.Errorf("expected home view after reset, got %+v", st)
	}
}

func TestSampleRegionClampedToGlobal(t *testing.T) {
	c := New(1024, 768, testParams())

	// At zoom 1 the expanded viewport exceeds the global region
	r := c.SampleRegion()
	g := sim.GlobalRegion
	if r.MinRe < g.MinRe || r.MaxRe > g.MaxRe || r.MinIm < g.MinIm || r.MaxIm > g.MaxIm {
		t.Errorf("expected region clamped to global bounds, got %+v", r)
	}
}

func TestSampleRegionTracksView(t *testing.T) {
	c := New(1024, 768, testParams())
	c.SetTarget(0.1, 0.75, 30)
	for c.Animating() {
		c.Step()
	}

	// The sampling box must cover the orbit constant under the view
	// center: screen center at (cx, cy) corresponds to c = (-cy, cx).
	r := c.SampleRegion()
	if !r.Contains(-0.75, 0.1) {
		t.Errorf("expected region %+v to contain the view center constant (-0.75, 0.1)", r)
	}

	// Deep zoom shrinks the box
	hx, _ := c.HalfExtents()
	if r.MaxIm-r.MinIm > 2*hx*1.5+1e-9 {
		t.Errorf("expected region width bounded by expanded viewport, got %f", r.MaxIm-r.MinIm)
	}
}

func TestBiasFractionFollowsZoom(t *testing.T) {
	c := New(1024, 768, testParams())
	if c.BiasFraction() != 0 {
		t.Errorf("expected zero bias at zoom 1, got %f", c.BiasFraction())
	}

	c.SetTarget(0, 0, 5000)
	for c.Animating() {
		c.Step()
	}
	if c.BiasFraction() != 0.85 {
		t.Errorf("expected capped bias at deep zoom, got %f", c.BiasFraction())
	}
}
