package viewer

import "time"

// EWMA weights for the per-dispatch time estimate.
const (
	estKeep = 0.7
	estNew  = 0.3
)

// Scheduler decides how many simulate dispatches to issue each display
// frame from a fixed wall-clock budget and a smoothed measurement of the
// time one dispatch takes. Host-side latency stays roughly constant;
// faster hardware simply gets more dispatches per frame.
type Scheduler struct {
	budgetMS  float64
	estPassMS float64
}

// NewScheduler creates a scheduler with the given frame budget and an
// initial per-dispatch estimate.
func NewScheduler(budgetMS, initialPassMS float64) *Scheduler {
	if initialPassMS <= 0 {
		initialPassMS = 1
	}
	return &Scheduler{budgetMS: budgetMS, estPassMS: initialPassMS}
}

// PlanDispatches returns the dispatch count for this frame: at least one,
// otherwise the budget divided by the estimated cost of one dispatch.
func (s *Scheduler) PlanDispatches() int {
	n := int(s.budgetMS / s.estPassMS)
	if n < 1 {
		n = 1
	}
	return n
}

// Observe updates the smoothed estimate from a completed batch of n
// dispatches.
func (s *Scheduler) Observe(batch time.Duration, n int) {
	if n <= 0 {
		return
	}
	measured := batch.Seconds() * 1000 / float64(n)
	s.estPassMS = estKeep*s.estPassMS + estNew*measured
}

// EstimatedPassMS returns the current smoothed per-dispatch estimate.
func (s *Scheduler) EstimatedPassMS() float64 {
	return s.estPassMS
}
