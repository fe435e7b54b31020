package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mossfall/nebula/telemetry"
	"github.com/mossfall/nebula/ui"
)

// handleInput processes keyboard and mouse input for one frame.
func (v *Viewer) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		v.paused = !v.paused
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		v.panel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyT) {
		v.controls.Tracking = !v.controls.Tracking
		if !v.controls.Tracking {
			v.orbit = nil
		}
	}
	if rl.IsKeyPressed(rl.KeyM) {
		v.controls.Mode = ui.CycleMode(v.controls.Mode)
		v.invalidate()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		v.view.Reset()
	}

	// Landmark jumps on the number row.
	for key, lm := range landmarks {
		if rl.IsKeyPressed(key) {
			v.view.SetTarget(lm.centerX, lm.centerY, lm.zoom)
		}
	}

	overPanel := v.panel.Hovered()
	mouse := rl.GetMousePosition()

	// Wheel zoom toward the cursor.
	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !overPanel {
		factor := 1.0 + float64(wheel)*0.15
		v.view.ZoomAt(float64(mouse.X), float64(mouse.Y), factor)
	}

	// Drag pan: applies instantly and invalidates.
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !overPanel {
		v.dragging = true
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		v.dragging = false
	}
	if v.dragging {
		delta := rl.GetMouseDelta()
		if v.view.Pan(float64(delta.X), float64(delta.Y)) {
			v.invalidate()
		}
	}

	// Orbit trace on pointer position. The record is replaced wholesale
	// every query; outside the render area it becomes nil and the
	// overlay draws nothing.
	v.perf.StartPhase(telemetry.PhaseTrace)
	if v.controls.Tracking && !overPanel && !v.dragging {
		params := v.passParams()
		v.orbit = v.tracer.Trace(float64(mouse.X), float64(mouse.Y), v.view, &params)
	} else if overPanel {
		v.orbit = nil
	}
}
