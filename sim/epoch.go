package sim

// Epoch counts simulate passes accumulated since the last invalidation.
// It is owned and mutated only by the host thread; tone mapping divides
// raw hit counts by it, which keeps displayed brightness stable while
// absolute counts grow across refinement passes.
type Epoch struct {
	frames int64
}

// NewEpoch starts a fresh epoch.
func NewEpoch() *Epoch {
	return &Epoch{frames: 1}
}

// Reset restarts the epoch. The count restarts at 1, never 0, so the
// normalization denominator is always valid.
func (e *Epoch) Reset() {
	e.frames = 1
}

// Add records n completed simulate passes.
func (e *Epoch) Add(n int) {
	e.frames += int64(n)
}

// Frames returns the pass count for the current epoch.
func (e *Epoch) Frames() int64 {
	return e.frames
}
