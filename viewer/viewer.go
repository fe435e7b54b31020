// Package viewer orchestrates the renderer: it owns the compute kernel,
// view controller, scheduler, tone mapper, orbit tracer and control
// panel, and drives them once per display frame.
package viewer

import (
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mossfall/nebula/config"
	"github.com/mossfall/nebula/entropy"
	"github.com/mossfall/nebula/render"
	"github.com/mossfall/nebula/sim"
	"github.com/mossfall/nebula/telemetry"
	"github.com/mossfall/nebula/trace"
	"github.com/mossfall/nebula/ui"
	"github.com/mossfall/nebula/view"
)

// Options configures viewer construction.
type Options struct {
	Seed      uint64
	Headless  bool
	LogStats  bool
	OutputDir string

	// Entropy may supply an external seed source; nil uses the fallback.
	Entropy entropy.Source
}

// Viewer holds the complete renderer state. All fields are owned and
// mutated by the host thread; the compute kernel sees only per-dispatch
// parameter copies and the shared atomic histogram.
type Viewer struct {
	cfg *config.Config

	hist   *sim.Histogram
	kernel *sim.Kernel
	epoch  *sim.Epoch
	view   *view.Controller
	sched  *Scheduler
	tones  *render.ToneMapper
	tracer *trace.Tracer
	seeder entropy.Source

	perf   *telemetry.PerfCollector
	output *telemetry.OutputManager

	panel    *ui.Panel
	controls ui.State

	// Latest orbit record: single-writer slot, superseded each query,
	// nil when tracking is off or the pointer left the render area.
	orbit *trace.OrbitRecord

	lanes    int
	invalid  bool
	paused   bool
	headless bool
	logStats bool

	frame     int64
	lastStats time.Time

	texture    rl.Texture2D
	hasTexture bool

	dragging bool
}

// New builds the full pipeline. The capability check happens here: if the
// compute kernel cannot start, no dispatch is ever attempted.
func New(opts Options) (*Viewer, error) {
	cfg := config.Cfg()

	hist := sim.NewHistogram(cfg.Screen.Width, cfg.Screen.Height)
	kernel, err := sim.NewKernel(hist, 0)
	if err != nil {
		return nil, fmt.Errorf("starting compute kernel: %w", err)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		kernel.Close()
		return nil, err
	}

	v := &Viewer{
		cfg:    cfg,
		hist:   hist,
		kernel: kernel,
		epoch:  sim.NewEpoch(),
		view: view.New(cfg.Screen.Width, cfg.Screen.Height, view.Params{
			MinZoom:      cfg.View.MinZoom,
			MaxZoom:      cfg.View.MaxZoom,
			Damping:      cfg.View.Damping,
			BaseHalf:     cfg.View.BaseHalf,
			RegionExpand: cfg.Sampling.RegionExpand,
			BiasCap:      cfg.Sampling.BiasCap,
		}),
		sched:  NewScheduler(cfg.Scheduler.BudgetMS, cfg.Scheduler.InitialPassMS),
		tones:  render.NewToneMapper(cfg.Screen.Width, cfg.Screen.Height),
		tracer: trace.NewTracer(cfg.Screen.Width, cfg.Screen.Height, cfg.Trace.MaxIters),
		seeder: entropy.NewSeeder(opts.Entropy, opts.Seed),
		perf:   telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		output: output,
		panel:  ui.NewPanel(10, 10),
		controls: ui.State{
			Red:      float32(cfg.Iterations.Red),
			Green:    float32(cfg.Iterations.Green),
			Blue:     float32(cfg.Iterations.Blue),
			AngleXZ:  float32(cfg.Rotation.AngleXZ),
			AngleYW:  float32(cfg.Rotation.AngleYW),
			Mode:     modeFromConfig(cfg.Tone.Mode),
			Tracking: cfg.Trace.Enabled,
		},
		lanes:     cfg.Sampling.LanesPerDispatch,
		invalid:   true, // first frame clears the fresh histogram
		headless:  opts.Headless,
		logStats:  opts.LogStats,
		lastStats: time.Now(),
	}

	if !opts.Headless {
		img := rl.GenImageColor(cfg.Screen.Width, cfg.Screen.Height, rl.Black)
		v.texture = rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
		v.hasTexture = true
	}

	slog.Info("viewer ready",
		"resolution", fmt.Sprintf("%dx%d", cfg.Screen.Width, cfg.Screen.Height),
		"workers", kernel.Workers(),
		"lanes_per_dispatch", v.lanes,
	)
	return v, nil
}

func modeFromConfig(mode string) int {
	switch mode {
	case "classic":
		return ui.ModeClassic
	case "nebula_aesthetic":
		return ui.ModeAesthetic
	default:
		return ui.ModeNebula
	}
}

// thresholds returns the effective per-channel thresholds for the
// current display mode.
func (v *Viewer) thresholds() sim.Thresholds {
	if v.controls.Mode == ui.ModeClassic {
		return sim.ClassicThresholds(v.cfg.Iterations.Classic)
	}
	return sim.EffectiveThresholds(
		int(v.controls.Red),
		int(v.controls.Green),
		int(v.controls.Blue),
	)
}

// toneMode maps the display mode to a tone curve.
func (v *Viewer) toneMode() render.Mode {
	if v.controls.Mode == ui.ModeAesthetic {
		return render.ModeAesthetic
	}
	return render.ModeClassic
}

// passParams rebuilds the per-dispatch parameter block from current host
// state. Each dispatch receives its own copy; the kernel never sees the
// live state.
func (v *Viewer) passParams() sim.PassParams {
	st := v.view.State()
	hx, hy := v.view.HalfExtents()
	return sim.PassParams{
		Thresholds:       v.thresholds(),
		Rot:              sim.NewRotation(float64(v.controls.AngleXZ), float64(v.controls.AngleYW)),
		CenterX:          st.CenterX,
		CenterY:          st.CenterY,
		HalfX:            hx,
		HalfY:            hy,
		BiasFraction:     v.view.BiasFraction(),
		BiasRegion:       v.view.SampleRegion(),
		QuickRejectIters: v.cfg.Sampling.QuickRejectIters,
		Width:            v.hist.Width,
		Height:           v.hist.Height,
	}
}

// invalidate discards accumulated state; the next frame clears the
// histogram and restarts the epoch.
func (v *Viewer) invalidate() {
	v.invalid = true
}

// Update runs one interactive frame: input, view animation, scheduling.
func (v *Viewer) Update() {
	v.perf.StartFrame()
	v.handleInput()
	v.step()
}

// UpdateHeadless runs one frame without input handling or drawing.
func (v *Viewer) UpdateHeadless() {
	v.perf.StartFrame()
	v.step()
	v.perf.EndFrame()
}

// step advances the view animation and issues this frame's dispatches.
func (v *Viewer) step() {
	if v.view.Step() {
		v.invalidate()
	}

	v.perf.StartPhase(telemetry.PhaseClear)
	if v.invalid {
		// The clear must complete before any simulate dispatch of the
		// new epoch; Dispatch blocks until all chunks finish.
		v.kernel.Dispatch(sim.OpClear, 0, sim.PassParams{})
		v.epoch.Reset()
		v.invalid = false
	}

	v.perf.StartPhase(telemetry.PhaseSimulate)
	if !v.paused {
		n := v.sched.PlanDispatches()
		params := v.passParams()
		batchStart := time.Now()
		for i := 0; i < n; i++ {
			params.Seed = v.seeder.NextSeed()
			t0 := time.Now()
			v.kernel.Dispatch(sim.OpSimulate, v.lanes, params)
			v.perf.RecordDispatch(time.Since(t0))
		}
		v.sched.Observe(time.Since(batchStart), n)
		v.epoch.Add(n)
	}

	v.frame++
	v.maybeLogStats()
}

// maybeLogStats emits windowed stats on the configured cadence.
func (v *Viewer) maybeLogStats() {
	window := time.Duration(v.cfg.Telemetry.StatsWindow * float64(time.Second))
	if window <= 0 || time.Since(v.lastStats) < window {
		return
	}
	v.lastStats = time.Now()

	stats := v.perf.Stats()
	if v.logStats {
		stats.LogStats()
	}
	if v.output != nil {
		row := stats.Row(v.frame, v.epoch.Frames(), v.view.Zoom(), v.sched.EstimatedPassMS())
		if err := v.output.Append(row); err != nil {
			slog.Error("writing stats row", "error", err)
		}
	}
}

// Frame returns the number of display frames since startup.
func (v *Viewer) Frame() int64 {
	return v.frame
}

// Passes returns the accumulation epoch's pass count.
func (v *Viewer) Passes() int64 {
	return v.epoch.Frames()
}

// ExportPNG tone-maps the current histogram and writes it to path.
func (v *Viewer) ExportPNG(path string) error {
	v.tones.Map(v.hist, v.epoch.Frames(), v.toneMode())
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, v.tones.Image()); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

// Unload releases the kernel and output resources.
func (v *Viewer) Unload() {
	v.kernel.Close()
	if v.hasTexture {
		rl.UnloadTexture(v.texture)
	}
	if err := v.output.Close(); err != nil {
		slog.Error("closing output", "error", err)
	}
}
