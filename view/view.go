// Package view owns the viewport into the projected complex plane:
// pan/zoom state, the damped zoom animation, screen/complex transforms,
// and the importance-sampling region derived from the visible extent.
package view

import (
	"math"

	"github.com/mossfall/nebula/sim"
)

// Convergence tolerances for the damped zoom animation. Once the state is
// this close to the target it snaps exactly, avoiding an infinite
// asymptotic approach.
const (
	zoomSettleRel = 0.001
	posSettleAbs  = 1e-5
)

// State is the current viewport: center in projected (frac) coordinates
// and magnification.
type State struct {
	CenterX, CenterY float64
	Zoom             float64
}

// Target is the destination of a zoom gesture. While Animating, the state
// moves a fixed fraction of the remaining distance toward it each frame.
type Target struct {
	CenterX, CenterY float64
	Zoom             float64
	Animating        bool
}

// Params holds the controller's fixed tuning, from config.
type Params struct {
	MinZoom, MaxZoom float64
	Damping          float64 // fraction of remaining distance per frame
	BaseHalf         float64 // vertical half-extent at zoom 1
	RegionExpand     float64 // sampling box expansion around the viewport
	BiasCap          float64 // ceiling for the viewport bias fraction
}

// Controller owns the view state machine. It is *settled* until a gesture
// sets a target, *animating* until the damped approach converges. Every
// accepted adjustment invalidates accumulated state; callers learn about
// that through the return values of Step, Pan, ZoomAt and SetTarget.
type Controller struct {
	state  State
	target Target
	params Params

	width, height float64 // screen pixels
	aspect        float64
}

// New creates a controller centered on the origin at 1:1 zoom.
func New(width, height int, p Params) *Controller {
	return &Controller{
		state:  State{Zoom: 1},
		target: Target{Zoom: 1},
		params: p,
		width:  float64(width),
		height: float64(height),
		aspect: float64(width) / float64(height),
	}
}

// State returns the current viewport.
func (c *Controller) State() State {
	return c.state
}

// Zoom returns the current magnification.
func (c *Controller) Zoom() float64 {
	return c.state.Zoom
}

// Animating reports whether a zoom animation is in flight.
func (c *Controller) Animating() bool {
	return c.target.Animating
}

// HalfExtents returns the viewport half-sizes in frac coordinates at the
// current zoom.
func (c *Controller) HalfExtents() (hx, hy float64) {
	hy = c.params.BaseHalf / c.state.Zoom
	hx = hy * c.aspect
	return hx, hy
}

// SetTarget starts a damped animation toward the given viewport.
func (c *Controller) SetTarget(centerX, centerY, zoom float64) {
	c.target = Target{
		CenterX:   centerX,
		CenterY:   centerY,
		Zoom:      clamp(zoom, c.params.MinZoom, c.params.MaxZoom),
		Animating: true,
	}
}

// ZoomAt re-targets the animation so the complex point under the screen
// position (px, py) stays fixed while zoom is multiplied by factor.
// Successive wheel events stack on the in-flight target.
func (c *Controller) ZoomAt(px, py, factor float64) {
	base := State{CenterX: c.target.CenterX, CenterY: c.target.CenterY, Zoom: c.target.Zoom}

	newZoom := clamp(base.Zoom*factor, c.params.MinZoom, c.params.MaxZoom)
	u := px/c.width - 0.5
	v := py/c.height - 0.5

	oldHy := c.params.BaseHalf / base.Zoom
	oldHx := oldHy * c.aspect
	newHy := c.params.BaseHalf / newZoom
	newHx := newHy * c.aspect

	// Keep the frac point under the cursor invariant across the zoom.
	fracX := base.CenterX + u*2*oldHx
	fracY := base.CenterY + v*2*oldHy
	c.SetTarget(fracX-u*2*newHx, fracY-v*2*newHy, newZoom)
}

// Pan shifts the view by a screen-pixel delta. The shift applies
// instantly and re-targets any in-flight animation so it finishes at the
// panned position. Returns true: a pan always invalidates.
func (c *Controller) Pan(dxPix, dyPix float64) bool {
	if dxPix == 0 && dyPix == 0 {
		return false
	}
	hx, hy := c.HalfExtents()
	dx := -dxPix / c.width * 2 * hx
	dy := -dyPix / c.height * 2 * hy

	c.state.CenterX += dx
	c.state.CenterY += dy
	c.target.CenterX += dx
	c.target.CenterY += dy
	return true
}

// Step advances the damped animation by one frame. Returns true when the
// view changed, which invalidates accumulation.
func (c *Controller) Step() bool {
	if !c.target.Animating {
		return false
	}

	d := c.params.Damping
	c.state.CenterX += (c.target.CenterX - c.state.CenterX) * d
	c.state.CenterY += (c.target.CenterY - c.state.CenterY) * d
	c.state.Zoom += (c.target.Zoom - c.state.Zoom) * d

	zoomClose := math.Abs(c.state.Zoom-c.target.Zoom) < zoomSettleRel*c.target.Zoom
	posClose := math.Abs(c.state.CenterX-c.target.CenterX) < posSettleAbs &&
		math.Abs(c.state.CenterY-c.target.CenterY) < posSettleAbs
	if zoomClose && posClose {
		c.state = State{CenterX: c.target.CenterX, CenterY: c.target.CenterY, Zoom: c.target.Zoom}
		c.target.Animating = false
	}
	return true
}

// Reset returns the view to the home position and re-targets there.
func (c *Controller) Reset() {
	c.SetTarget(0, 0, 1)
}

// ScreenToComplex inverts the screen normalization and the projection's
// axis swap, yielding the orbit constant a pointer position corresponds
// to. ok is false outside the render area.
func (c *Controller) ScreenToComplex(px, py float64) (cre, cim float64, ok bool) {
	if px < 0 || px >= c.width || py < 0 || py >= c.height {
		return 0, 0, false
	}
	hx, hy := c.HalfExtents()
	fracX := c.state.CenterX + (px/c.width-0.5)*2*hx
	fracY := c.state.CenterY + (py/c.height-0.5)*2*hy

	// Inverse of fracX = im, fracY = -re.
	return -fracY, fracX, true
}

// SampleRegion returns the importance-sampling box: the viewport's extent
// in the complex parameter plane, expanded so paths entering from just
// outside are still sampled, clamped to the global region.
func (c *Controller) SampleRegion() sim.Region {
	hx, hy := c.HalfExtents()
	ex := hx * c.params.RegionExpand
	ey := hy * c.params.RegionExpand

	// The screen x axis spans the imaginary direction and the screen y
	// axis the negated real direction.
	r := sim.Region{
		MinRe: -c.state.CenterY - ey,
		MaxRe: -c.state.CenterY + ey,
		MinIm: c.state.CenterX - ex,
		MaxIm: c.state.CenterX + ex,
	}
	return r.Clamp(sim.GlobalRegion)
}

// BiasFraction returns the viewport bias share for the current zoom.
func (c *Controller) BiasFraction() float64 {
	return sim.BiasFraction(c.state.Zoom, c.params.BiasCap)
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
