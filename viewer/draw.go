package viewer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mossfall/nebula/telemetry"
	"github.com/mossfall/nebula/ui"
)

// Draw tone-maps the histogram, uploads it and renders overlays.
func (v *Viewer) Draw() {
	v.perf.StartPhase(telemetry.PhaseToneMap)
	pix := v.tones.Map(v.hist, v.epoch.Frames(), v.toneMode())
	rl.UpdateTexture(v.texture, pix)

	v.perf.StartPhase(telemetry.PhaseDraw)
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	rl.DrawTexture(v.texture, 0, 0, rl.White)

	v.drawOrbit()
	v.drawHUD()

	if v.panel.Draw(&v.controls) {
		v.invalidate()
	}

	rl.EndDrawing()
	v.perf.EndFrame()
}

// drawOrbit paints the latest traced orbit as a line strip.
func (v *Viewer) drawOrbit() {
	rec := v.orbit
	if rec == nil || len(rec.Points) < 2 {
		return
	}

	lineColor := rl.Color{R: 90, G: 200, B: 255, A: 150}
	if rec.Escaped {
		lineColor = rl.Color{R: 255, G: 190, B: 70, A: 170}
	}

	prev := rec.Points[0]
	for _, pt := range rec.Points[1:] {
		rl.DrawLineV(
			rl.Vector2{X: float32(prev.X), Y: float32(prev.Y)},
			rl.Vector2{X: float32(pt.X), Y: float32(pt.Y)},
			lineColor,
		)
		prev = pt
	}

	start := rec.Points[0]
	rl.DrawCircleV(rl.Vector2{X: float32(start.X), Y: float32(start.Y)}, 3, rl.White)
}

// drawHUD renders the status line.
func (v *Viewer) drawHUD() {
	y := v.cfg.Derived.Height32 - 26

	text := fmt.Sprintf("zoom %.1fx  passes %d  %d fps  %.1fms/pass  %s  [Tab] controls",
		v.view.Zoom(), v.epoch.Frames(), rl.GetFPS(), v.sched.EstimatedPassMS(),
		ui.ModeName(v.controls.Mode))
	rl.DrawText(text, 10, y, 18, rl.RayWhite)

	if v.paused {
		rl.DrawText("PAUSED", 10, y-24, 18, rl.Yellow)
	}
	if rec := v.orbit; rec != nil && rec.Escaped {
		rl.DrawText(fmt.Sprintf("escape @ %d", rec.EscapeIter), 10, y-48, 18, rl.Orange)
	}
}
