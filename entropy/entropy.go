// Package entropy supplies per-dispatch seed scalars. The pipeline only
// depends on the Source interface; an external beacon can be plugged in,
// and a uniform fallback generator covers the gaps. Which source produced
// a seed makes no observable difference to the algorithm.
package entropy

import "math/rand/v2"

// Source yields seed scalars for simulate dispatches.
type Source interface {
	// NextSeed returns a uniform value in [0, 1).
	NextSeed() float64
	// Ready reports whether the source can currently produce seeds.
	Ready() bool
}

// Fallback is an always-ready uniform generator.
type Fallback struct {
	rng *rand.Rand
}

// NewFallback seeds a fallback generator.
func NewFallback(seed uint64) *Fallback {
	return &Fallback{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NextSeed returns a uniform value in [0, 1).
func (f *Fallback) NextSeed() float64 {
	return f.rng.Float64()
}

// Ready always reports true.
func (f *Fallback) Ready() bool {
	return true
}

// Seeder prefers a primary source while it is ready and substitutes the
// fallback otherwise. Entropy-source unavailability is recovered here and
// never surfaces to the pipeline.
type Seeder struct {
	primary  Source
	fallback *Fallback
}

// NewSeeder wraps an optional primary source. primary may be nil.
func NewSeeder(primary Source, seed uint64) *Seeder {
	return &Seeder{
		primary:  primary,
		fallback: NewFallback(seed),
	}
}

// NextSeed draws from the primary source when ready, else the fallback.
func (s *Seeder) NextSeed() float64 {
	if s.primary != nil && s.primary.Ready() {
		return s.primary.NextSeed()
	}
	return s.fallback.NextSeed()
}

// Ready always reports true; the fallback guarantees a seed.
func (s *Seeder) Ready() bool {
	return true
}
