// Package trace runs a single orbit on the host for interactive hover
// feedback. It reuses the kernel's iteration and projection arithmetic so
// the traced path matches what the compute lanes would plot.
package trace

import (
	"github.com/mossfall/nebula/sim"
	"github.com/mossfall/nebula/view"
)

// Point is a screen-space position along a traced orbit, in pixels.
type Point struct {
	X, Y float64
}

// OrbitRecord captures one traced orbit. It is produced wholly anew per
// query and holds no history; the overlay renderer consumes the latest
// record and discards it on the next query.
type OrbitRecord struct {
	Points     []Point
	Escaped    bool
	EscapeIter int
	CX, CY     float64

	RedIter, GreenIter, BlueIter int
}

// Tracer converts pointer positions into orbit records.
type Tracer struct {
	width, height float64
	maxIters      int
}

// NewTracer creates a tracer for the given render area. maxIters caps the
// traced orbit length; it is additionally bounded by the kernel's
// iteration ceiling.
func NewTracer(width, height, maxIters int) *Tracer {
	if maxIters <= 0 || maxIters > sim.IterationCeiling {
		maxIters = sim.IterationCeiling
	}
	return &Tracer{
		width:    float64(width),
		height:   float64(height),
		maxIters: maxIters,
	}
}

// Trace maps the pointer position to an orbit constant and iterates it,
// recording the rotated-and-projected screen position at every step.
// Returns nil when the pointer is outside the render area; that is not an
// error, the overlay simply has nothing to draw. The histogram is never
// touched.
func (t *Tracer) Trace(px, py float64, vc *view.Controller, p *sim.PassParams) *OrbitRecord {
	cre, cim, ok := vc.ScreenToComplex(px, py)
	if !ok {
		return nil
	}

	rec := &OrbitRecord{
		CX:        cre,
		CY:        cim,
		RedIter:   p.Thresholds.Red,
		GreenIter: p.Thresholds.Green,
		BlueIter:  p.Thresholds.Blue,
		Points:    make([]Point, 0, 64),
	}

	zre, zim := 0.0, 0.0
	for i := 0; i < t.maxIters; i++ {
		zre, zim = zre*zre-zim*zim+cre, 2*zre*zim+cim

		u, v := sim.Project(zre, zim, cre, cim, p)
		rec.Points = append(rec.Points, Point{X: u * t.width, Y: v * t.height})

		if zre*zre+zim*zim > 4 {
			rec.Escaped = true
			rec.EscapeIter = i + 1
			break
		}
	}
	return rec
}
