package sim

// Per-stream seed multipliers. Distinct large odd constants decorrelate
// the three streams even though they are derived from the same lane index.
const (
	streamReal uint32 = 2654435761 // Knuth multiplicative hash constant
	streamImag uint32 = 1597334677
	streamBias uint32 = 3812015801
)

// mix32 is an invertible 32-bit finalizer: alternating shift-xor and
// odd-constant multiply rounds, so distinct inputs map to distinct,
// well-scrambled outputs.
func mix32(x uint32) uint32 {
	x ^= x >> 17
	x *= 0xed5ad4bb
	x ^= x >> 11
	x *= 0xac4c1b51
	x ^= x >> 15
	x *= 0x31848bab
	x ^= x >> 14
	return x
}

// laneUniform derives a uniform value in [0, 1) for one lane and one
// stream from the dispatch seed.
func laneUniform(lane uint32, seed float64, stream uint32) float64 {
	x := lane + uint32(seed*float64(stream))
	return float64(mix32(x)) * (1.0 / 4294967296.0)
}

// BiasFraction computes the share of lanes that sample from the viewport
// box at the given zoom: clamp(1 - 1/zoom, 0, cap). At zoom 1 sampling is
// fully global; the cap keeps a floor of global samples so paths that
// originate far away but cross the viewport are never excluded.
func BiasFraction(zoom, biasCap float64) float64 {
	if zoom <= 0 {
		return 0
	}
	f := 1 - 1/zoom
	if f < 0 {
		return 0
	}
	if f > biasCap {
		return biasCap
	}
	return f
}

// SampleC draws the orbit constant for one lane: three decorrelated
// uniforms position C either inside the importance-sampling box or
// uniformly over the global parameter space.
func SampleC(lane uint32, p *PassParams) (cre, cim float64) {
	r1 := laneUniform(lane, p.Seed, streamReal)
	r2 := laneUniform(lane, p.Seed, streamImag)
	r3 := laneUniform(lane, p.Seed, streamBias)

	region := GlobalRegion
	if r3 < p.BiasFraction {
		region = p.BiasRegion
	}

	cre = region.MinRe + r1*(region.MaxRe-region.MinRe)
	cim = region.MinIm + r2*(region.MaxIm-region.MinIm)
	return cre, cim
}
