// Package telemetry tracks frame and dispatch timing for the renderer
// and exports windowed statistics via slog and CSV.
package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase names for one display frame.
const (
	PhaseClear    = "clear"
	PhaseSimulate = "simulate"
	PhaseToneMap  = "tonemap"
	PhaseDraw     = "draw"
	PhaseTrace    = "trace"
)

// FrameSample holds timing data for a single frame.
type FrameSample struct {
	FrameDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector tracks performance metrics over a rolling frame window.
type PerfCollector struct {
	windowSize    int
	samples       []FrameSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string

	// Per-dispatch durations for the current window, in milliseconds.
	dispatchMS []float64
}

// NewPerfCollector creates a collector averaging over windowSize frames.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 120
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]FrameSample, windowSize),
		currentPhases: make(map[string]time.Duration),
		dispatchMS:    make([]float64, 0, windowSize*4),
	}
}

// StartFrame begins timing a new display frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase within the current frame.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame finishes the current frame and records the sample.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = FrameSample{
		FrameDuration: now.Sub(p.frameStart),
		Phases:        p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordDispatch records the wall-clock time of one simulate dispatch.
func (p *PerfCollector) RecordDispatch(d time.Duration) {
	p.dispatchMS = append(p.dispatchMS, float64(d.Microseconds())/1000.0)
	if len(p.dispatchMS) > p.windowSize*8 {
		p.dispatchMS = p.dispatchMS[len(p.dispatchMS)-p.windowSize*8:]
	}
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgFrameDuration time.Duration
	MinFrameDuration time.Duration
	MaxFrameDuration time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	FPS float64

	// Dispatch timing over the window.
	DispatchCount int
	DispatchP95MS float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
	}

	if n := len(p.dispatchMS); n > 0 {
		sorted := make([]float64, n)
		copy(sorted, p.dispatchMS)
		sort.Float64s(sorted)
		s.DispatchCount = n
		s.DispatchP95MS = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	}

	if p.sampleCount == 0 {
		return s
	}

	var totalFrame time.Duration
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		fs := p.samples[i]
		totalFrame += fs.FrameDuration
		if i == 0 || fs.FrameDuration < s.MinFrameDuration {
			s.MinFrameDuration = fs.FrameDuration
		}
		if fs.FrameDuration > s.MaxFrameDuration {
			s.MaxFrameDuration = fs.FrameDuration
		}
		for phase, dur := range fs.Phases {
			phaseSum[phase] += dur
		}
	}

	s.AvgFrameDuration = totalFrame / time.Duration(p.sampleCount)
	for phase, sum := range phaseSum {
		avg := sum / time.Duration(p.sampleCount)
		s.PhaseAvg[phase] = avg
		if s.AvgFrameDuration > 0 {
			s.PhasePct[phase] = float64(avg) / float64(s.AvgFrameDuration) * 100
		}
	}
	if s.AvgFrameDuration > 0 {
		s.FPS = float64(time.Second) / float64(s.AvgFrameDuration)
	}
	return s
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_frame_us", s.AvgFrameDuration.Microseconds(),
		"min_frame_us", s.MinFrameDuration.Microseconds(),
		"max_frame_us", s.MaxFrameDuration.Microseconds(),
		"fps", int(s.FPS),
		"dispatches", s.DispatchCount,
		"dispatch_p95_ms", s.DispatchP95MS,
	}

	for _, phase := range []string{PhaseClear, PhaseSimulate, PhaseToneMap, PhaseDraw, PhaseTrace} {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrameDuration.Microseconds()),
		slog.Float64("fps", s.FPS),
		slog.Int("dispatches", s.DispatchCount),
		slog.Float64("dispatch_p95_ms", s.DispatchP95MS),
	}
	for phase, pct := range s.PhasePct {
		attrs = append(attrs, slog.Float64(phase+"_pct", pct))
	}
	return slog.GroupValue(attrs...)
}
