// Package ui renders the control panel: iteration thresholds, rotation
// angles, display mode and orbit tracking. The panel edits a State value;
// the host maps accepted edits to its invalidation rule.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Display modes, in cycle order.
const (
	ModeClassic = iota
	ModeNebula
	ModeAesthetic
	numModes
)

// ModeName returns the display label for a mode.
func ModeName(mode int) string {
	switch mode {
	case ModeClassic:
		return "Classic"
	case ModeNebula:
		return "Nebulabrot"
	case ModeAesthetic:
		return "Nebula aesthetic"
	}
	return "?"
}

// CycleMode returns the next mode after the given one.
func CycleMode(mode int) int {
	return (mode + 1) % numModes
}

// State holds the user-editable parameters shown in the panel.
type State struct {
	Red, Green, Blue float32 // per-channel iteration thresholds
	AngleXZ, AngleYW float32 // 4D rotation angles in radians
	Mode             int
	Tracking         bool
}

// Panel is the left-side control panel.
type Panel struct {
	bounds  rl.Rectangle
	visible bool
}

// NewPanel creates a hidden panel anchored at the given position.
func NewPanel(x, y float32) *Panel {
	return &Panel{
		bounds: rl.Rectangle{X: x, Y: y, Width: 260, Height: 330},
	}
}

// Toggle switches panel visibility and returns the new state.
func (p *Panel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Visible reports whether the panel is shown.
func (p *Panel) Visible() bool {
	return p.visible
}

// Hovered reports whether the mouse is over the panel, so the host can
// suppress pan/trace gestures underneath it.
func (p *Panel) Hovered() bool {
	return p.visible && rl.CheckCollisionPointRec(rl.GetMousePosition(), p.bounds)
}

// Draw renders the panel and applies edits to s. Returns true when any
// accumulation-affecting value changed this frame.
func (p *Panel) Draw(s *State) bool {
	if !p.visible {
		return false
	}

	rl.DrawRectangleRec(p.bounds, rl.Color{R: 20, G: 20, B: 28, A: 220})
	rl.DrawRectangleLinesEx(p.bounds, 1, rl.DarkGray)

	x := p.bounds.X + 10
	y := p.bounds.Y + 10
	w := p.bounds.Width - 20
	changed := false

	rl.DrawText("Controls", int32(x), int32(y), 16, rl.White)
	y += 28

	slider := func(label string, value, min, max float32) float32 {
		rl.DrawText(fmt.Sprintf("%s: %.0f", label, value), int32(x), int32(y), 12, rl.LightGray)
		y += 16
		v := gui.SliderBar(
			rl.Rectangle{X: x, Y: y, Width: w - 50, Height: 16},
			"", "",
			value, min, max,
		)
		y += 24
		if v != value {
			changed = true
		}
		return v
	}

	s.Red = slider("Red iters", s.Red, 1, 500)
	s.Green = slider("Green iters", s.Green, 1, 2000)
	s.Blue = slider("Blue iters", s.Blue, 1, 5000)

	rl.DrawText(fmt.Sprintf("Rotate XZ: %.2f", s.AngleXZ), int32(x), int32(y), 12, rl.LightGray)
	y += 16
	axz := gui.SliderBar(rl.Rectangle{X: x, Y: y, Width: w - 50, Height: 16}, "", "", s.AngleXZ, -3.14, 3.14)
	y += 24
	if axz != s.AngleXZ {
		s.AngleXZ = axz
		changed = true
	}

	rl.DrawText(fmt.Sprintf("Rotate YW: %.2f", s.AngleYW), int32(x), int32(y), 12, rl.LightGray)
	y += 16
	ayw := gui.SliderBar(rl.Rectangle{X: x, Y: y, Width: w - 50, Height: 16}, "", "", s.AngleYW, -3.14, 3.14)
	y += 24
	if ayw != s.AngleYW {
		s.AngleYW = ayw
		changed = true
	}

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: 24}, "Mode: "+ModeName(s.Mode)) {
		s.Mode = CycleMode(s.Mode)
		changed = true
	}
	y += 32

	// Tracking does not affect accumulation; toggling it never invalidates.
	label := "Orbit tracking: off"
	if s.Tracking {
		label = "Orbit tracking: on"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: 24}, label) {
		s.Tracking = !s.Tracking
	}

	return changed
}
