package sim

import (
	"math"
	"testing"
)

func TestBiasFraction(t *testing.T) {
	// Zoom 1 (or below) means fully global sampling
	if f := BiasFraction(1, 0.85); f != 0 {
		t.Errorf("expected bias 0 at zoom 1, got %f", f)
	}
	if f := BiasFraction(0.5, 0.85); f != 0 {
		t.Errorf("expected bias 0 at zoom 0.5, got %f", f)
	}
	if f := BiasFraction(0, 0.85); f != 0 {
		t.Errorf("expected bias 0 at zoom 0, got %f", f)
	}

	// Zoom 2 gives 1 - 1/2 = 0.5
	if f := BiasFraction(2, 0.85); math.Abs(f-0.5) > 1e-12 {
		t.Errorf("expected bias 0.5 at zoom 2, got %f", f)
	}

	// Deep zoom is capped so a floor of global samples survives
	if f := BiasFraction(1e6, 0.85); f != 0.85 {
		t.Errorf("expected bias capped at 0.85, got %f", f)
	}
}

func TestLaneUniformRange(t *testing.T) {
	sum := 0.0
	const n = 20000
	for lane := uint32(0); lane < n; lane++ {
		u := laneUniform(lane, 0.37, streamReal)
		if u < 0 || u >= 1 {
			t.Fatalf("lane %d: value %f out of [0,1)", lane, u)
		}
		sum += u
	}

	// Mean of a uniform stream should sit near 0.5
	mean := sum / n
	if math.Abs(mean-0.5) > 0.02 {
		t.Errorf("expected mean near 0.5, got %f", mean)
	}
}

func TestLaneUniformStreamsDiffer(t *testing.T) {
	same := 0
	for lane := uint32(0); lane < 1000; lane++ {
		a := laneUniform(lane, 0.37, streamReal)
		b := laneUniform(lane, 0.37, streamImag)
		c := laneUniform(lane, 0.37, streamBias)
		if a == b || b == c || a == c {
			same++
		}
	}
	if same > 0 {
		t.Errorf("expected decorrelated streams, %d lanes collided", same)
	}
}

func TestLaneUniformSeedChangesValues(t *testing.T) {
	changed := 0
	for lane := uint32(0); lane < 1000; lane++ {
		if laneUniform(lane, 0.1, streamReal) != laneUniform(lane, 0.7, streamReal) {
			changed++
		}
	}
	// A seed change reshuffles essentially every lane
	if changed < 990 {
		t.Errorf("expected nearly all lanes to change with seed, got %d/1000", changed)
	}
}

func TestSampleCGlobal(t *testing.T) {
	p := &PassParams{Seed: 0.42, BiasFraction: 0}

	for lane := uint32(0); lane < 5000; lane++ {
		cre, cim := SampleC(lane, p)
		if !GlobalRegion.Contains(cre, cim) {
			t.Fatalf("lane %d: sample (%f, %f) outside global region", lane, cre, cim)
		}
	}
}

func TestSampleCBiased(t *testing.T) {
	box := Region{MinRe: -0.8, MaxRe: -0.7, MinIm: 0.1, MaxIm: 0.2}
	p := &PassParams{Seed: 0.42, BiasFraction: 1, BiasRegion: box}

	for lane := uint32(0); lane < 5000; lane++ {
		cre, cim := SampleC(lane, p)
		if !box.Contains(cre, cim) {
			t.Fatalf("lane %d: sample (%f, %f) outside bias region", lane, cre, cim)
		}
	}
}

func TestSampleCBiasSplit(t *testing.T) {
	box := Region{MinRe: -0.8, MaxRe: -0.7, MinIm: 0.1, MaxIm: 0.2}
	p := &PassParams{Seed: 0.42, BiasFraction: 0.5, BiasRegion: box}

	inBox := 0
	const n = 20000
	for lane := uint32(0); lane < n; lane++ {
		cre, cim := SampleC(lane, p)
		if box.Contains(cre, cim) {
			inBox++
		}
	}

	// Roughly half the lanes should draw from the box
	frac := float64(inBox) / n
	if frac < 0.45 || frac > 0.55 {
		t.Errorf("expected ~0.5 of samples in bias region, got %f", frac)
	}
}

func TestRegionClamp(t *testing.T) {
	r := Region{MinRe: -10, MaxRe: 10, MinIm: -10, MaxIm: 10}
	c := r.Clamp(GlobalRegion)
	if c != GlobalRegion {
		t.Errorf("expected clamp to global region, got %+v", c)
	}

	inner := Region{MinRe: -0.5, MaxRe: 0.5, MinIm: -0.5, MaxIm: 0.5}
	if got := inner.Clamp(GlobalRegion); got != inner {
		t.Errorf("expected inner region unchanged, got %+v", got)
	}
}

func TestEffectiveThresholds(t *testing.T) {
	th := EffectiveThresholds(50, 500, 5000)
	if th.Red != 50 || th.Green != 500 {
		t.Errorf("expected red 50 green 500, got %d %d", th.Red, th.Green)
	}
	if th.Blue != IterationCeiling {
		t.Errorf("expected blue capped at %d, got %d", IterationCeiling, th.Blue)
	}
	if th.MaxAll != IterationCeiling {
		t.Errorf("expected MaxAll %d, got %d", IterationCeiling, th.MaxAll)
	}

	classic := ClassicThresholds(1000)
	if classic.Red != 1000 || classic.Green != 1000 || classic.Blue != 1000 || classic.MaxAll != 1000 {
		t.Errorf("expected uniform classic thresholds, got %+v", classic)
	}
}
