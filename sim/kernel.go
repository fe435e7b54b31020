package sim

import (
	"errors"
	"runtime"
	"sync"
)

// Op identifies a kernel entry point.
type Op int

const (
	// OpClear zeroes the histogram.
	OpClear Op = iota
	// OpSimulate runs one sampled path per lane.
	OpSimulate
)

// inlineThreshold is the minimum lane count worth fanning out to the
// worker pool.
const inlineThreshold = 1024

// kernelChunk is a contiguous lane range handed to one worker.
type kernelChunk struct {
	op         Op
	start, end int
	params     *PassParams
}

// Kernel executes dispatches over the shared histogram using a persistent
// pool of worker goroutines. One logical lane corresponds to one sampled
// path; lanes share nothing but the histogram's atomic counters.
//
// Dispatch returns only after every chunk has completed, so a clear
// dispatch is fully observed by any simulate dispatch issued after it.
type Kernel struct {
	hist       *Histogram
	numWorkers int

	workChan chan kernelChunk
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewKernel validates the compute substrate and starts the worker pool.
// Errors here are fatal to the pipeline and reported before any dispatch
// is attempted.
func NewKernel(hist *Histogram, workers int) (*Kernel, error) {
	if hist == nil || hist.Pixels() == 0 {
		return nil, errors.New("sim: kernel requires a non-empty histogram")
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers <= 0 {
		return nil, errors.New("sim: no execution lanes available")
	}

	k := &Kernel{
		hist:       hist,
		numWorkers: workers,
		workChan:   make(chan kernelChunk, workers),
		doneChan:   make(chan struct{}, workers),
		stopChan:   make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		k.wg.Add(1)
		go k.worker()
	}
	return k, nil
}

// Workers returns the pool size.
func (k *Kernel) Workers() int {
	return k.numWorkers
}

// Histogram returns the buffer the kernel accumulates into.
func (k *Kernel) Histogram() *Histogram {
	return k.hist
}

// worker processes chunks until the kernel is closed.
func (k *Kernel) worker() {
	defer k.wg.Done()
	for {
		select {
		case <-k.stopChan:
			return
		case chunk, ok := <-k.workChan:
			if !ok {
				return
			}
			k.runChunk(chunk)
			k.doneChan <- struct{}{}
		}
	}
}

// Dispatch issues one kernel invocation over the given number of lanes
// and blocks until it completes. For OpClear the lane count is ignored;
// the clear always covers the whole histogram.
func (k *Kernel) Dispatch(op Op, lanes int, params PassParams) {
	total := lanes
	if op == OpClear {
		total = k.hist.Pixels()
	}
	if total <= 0 {
		return
	}

	// Small dispatches are cheaper inline than through the pool.
	if total < inlineThreshold || k.numWorkers == 1 {
		k.runChunk(kernelChunk{op: op, start: 0, end: total, params: &params})
		return
	}

	chunkSize := (total + k.numWorkers - 1) / k.numWorkers
	dispatched := 0
	for w := 0; w < k.numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > total {
			end = total
		}
		if start >= end {
			continue
		}
		k.workChan <- kernelChunk{op: op, start: start, end: end, params: &params}
		dispatched++
	}

	// Barrier: the dispatch is not complete until every chunk reports.
	for i := 0; i < dispatched; i++ {
		<-k.doneChan
	}
}

// runChunk executes one lane range on the calling goroutine.
func (k *Kernel) runChunk(c kernelChunk) {
	switch c.op {
	case OpClear:
		k.hist.clearRange(c.start, c.end)
	case OpSimulate:
		for lane := c.start; lane < c.end; lane++ {
			SimulateLane(uint32(lane), c.params, k.hist)
		}
	}
}

// Close stops the worker pool and waits for in-flight chunks.
func (k *Kernel) Close() {
	close(k.stopChan)
	k.wg.Wait()
}
