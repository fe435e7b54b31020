package sim

import "sync/atomic"

// Histogram holds three per-pixel hit counters, one per color channel,
// addressed by row*Width + col. Atomic increment is the only mutation
// lanes may perform concurrently; clears run as ordered dispatches through
// the kernel so they are never interleaved with increments.
type Histogram struct {
	Width, Height int
	red           []uint64
	green         []uint64
	blue          []uint64
}

// NewHistogram allocates a zeroed histogram of the given dimensions.
func NewHistogram(width, height int) *Histogram {
	n := width * height
	return &Histogram{
		Width:  width,
		Height: height,
		red:    make([]uint64, n),
		green:  make([]uint64, n),
		blue:   make([]uint64, n),
	}
}

// Pixels returns the number of counters per channel.
func (h *Histogram) Pixels() int {
	return len(h.red)
}

// Add atomically increments the selected channels at the given pixel index.
func (h *Histogram) Add(idx int, r, g, b bool) {
	if r {
		atomic.AddUint64(&h.red[idx], 1)
	}
	if g {
		atomic.AddUint64(&h.green[idx], 1)
	}
	if b {
		atomic.AddUint64(&h.blue[idx], 1)
	}
}

// At returns the three channel counts at the given pixel index.
func (h *Histogram) At(idx int) (r, g, b uint64) {
	return atomic.LoadUint64(&h.red[idx]),
		atomic.LoadUint64(&h.green[idx]),
		atomic.LoadUint64(&h.blue[idx])
}

// Total sums all three channels over every pixel.
func (h *Histogram) Total() uint64 {
	var sum uint64
	for i := range h.red {
		sum += atomic.LoadUint64(&h.red[i])
		sum += atomic.LoadUint64(&h.green[i])
		sum += atomic.LoadUint64(&h.blue[i])
	}
	return sum
}

// clearRange zeroes all three channels for pixel indices [lo, hi).
// Called only from clear dispatches, which the kernel orders before any
// subsequent simulate dispatch.
func (h *Histogram) clearRange(lo, hi int) {
	for i := lo; i < hi; i++ {
		atomic.StoreUint64(&h.red[i], 0)
		atomic.StoreUint64(&h.green[i], 0)
		atomic.StoreUint64(&h.blue[i], 0)
	}
}
