package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// WindowCSV is a flat per-stats-window row for CSV export.
type WindowCSV struct {
	Frame         int64   `csv:"frame"`
	Passes        int64   `csv:"passes"`
	Zoom          float64 `csv:"zoom"`
	AvgFrameUS    int64   `csv:"avg_frame_us"`
	FPS           float64 `csv:"fps"`
	DispatchCount int     `csv:"dispatches"`
	DispatchP95MS float64 `csv:"dispatch_p95_ms"`
	EstPassMS     float64 `csv:"est_pass_ms"`
	SimulatePct   float64 `csv:"simulate_pct"`
	ToneMapPct    float64 `csv:"tonemap_pct"`
	DrawPct       float64 `csv:"draw_pct"`
}

// Row builds a CSV row from windowed stats plus scheduler context.
func (s PerfStats) Row(frame, passes int64, zoom, estPassMS float64) WindowCSV {
	return WindowCSV{
		Frame:         frame,
		Passes:        passes,
		Zoom:          zoom,
		AvgFrameUS:    s.AvgFrameDuration.Microseconds(),
		FPS:           s.FPS,
		DispatchCount: s.DispatchCount,
		DispatchP95MS: s.DispatchP95MS,
		EstPassMS:     estPassMS,
		SimulatePct:   s.PhasePct[PhaseSimulate],
		ToneMapPct:    s.PhasePct[PhaseToneMap],
		DrawPct:       s.PhasePct[PhaseDraw],
	}
}

// OutputManager appends windowed stats rows to stats.csv in the output
// directory.
type OutputManager struct {
	file          *os.File
	headerWritten bool
}

// NewOutputManager creates the output directory and stats file.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "stats.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating stats.csv: %w", err)
	}
	return &OutputManager{file: f}, nil
}

// Append writes one stats row, emitting the header on first use.
func (om *OutputManager) Append(row WindowCSV) error {
	if om == nil {
		return nil
	}
	rows := []WindowCSV{row}
	if !om.headerWritten {
		om.headerWritten = true
		return gocsv.MarshalFile(&rows, om.file)
	}
	return gocsv.MarshalWithoutHeaders(&rows, om.file)
}

// Close flushes and closes the stats file.
func (om *OutputManager) Close() error {
	if om == nil || om.file == nil {
		return nil
	}
	return om.file.Close()
}
