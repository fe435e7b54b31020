package sim

// PathResult summarizes the evaluation of one sampled path.
type PathResult struct {
	Escaped    bool
	EscapeIter int // iteration at which |Z|^2 first exceeded 4
	Plotted    int // histogram writes performed during retrace
}

// EvaluatePath runs the two-pass escape/retrace algorithm for the orbit
// constant C = (cre, cim).
//
// Pass 1 determines whether and when the orbit escapes without recording
// anything: a short quick-reject window discards orbits that diverge
// almost immediately, then iteration continues up to MaxAll looking for
// the escape point. Orbits that never escape are discarded; the
// Buddhabrot plots only escaping orbits.
//
// Pass 2 re-runs the identical iteration from Z = 0 for exactly
// EscapeIter steps. The map is deterministic, so the replay visits the
// same Z sequence; each visited Z is projected and, when it lands inside
// the unit square, the channels whose threshold admits this escape count
// are incremented.
func EvaluatePath(cre, cim float64, p *PassParams, hist *Histogram) PathResult {
	zre, zim := 0.0, 0.0

	// Quick reject: orbits escaping this fast are visually uninteresting.
	for i := 0; i < p.QuickRejectIters; i++ {
		zre, zim = zre*zre-zim*zim+cre, 2*zre*zim+cim
		if zre*zre+zim*zim > escapeRadiusSq {
			return PathResult{}
		}
	}

	// Escape detection.
	escapeIter := 0
	for i := p.QuickRejectIters; i < p.Thresholds.MaxAll; i++ {
		zre, zim = zre*zre-zim*zim+cre, 2*zre*zim+cim
		if zre*zre+zim*zim > escapeRadiusSq {
			escapeIter = i + 1
			break
		}
	}
	if escapeIter == 0 {
		return PathResult{}
	}

	writeR := escapeIter <= p.Thresholds.Red
	writeG := escapeIter <= p.Thresholds.Green
	writeB := escapeIter <= p.Thresholds.Blue

	// Retrace and plot.
	res := PathResult{Escaped: true, EscapeIter: escapeIter}
	zre, zim = 0.0, 0.0
	fw, fh := float64(p.Width), float64(p.Height)
	for i := 0; i < escapeIter; i++ {
		zre, zim = zre*zre-zim*zim+cre, 2*zre*zim+cim

		u, v := Project(zre, zim, cre, cim, p)
		if u >= 0 && u < 1 && v >= 0 && v < 1 {
			idx := int(v*fh)*p.Width + int(u*fw)
			hist.Add(idx, writeR, writeG, writeB)
			res.Plotted++
		}

		if zre*zre+zim*zim > escapeRadiusSq {
			break
		}
	}
	return res
}

// SimulateLane runs one full lane: sample an orbit constant, evaluate it.
func SimulateLane(lane uint32, p *PassParams, hist *Histogram) PathResult {
	cre, cim := SampleC(lane, p)
	return EvaluatePath(cre, cim, p, hist)
}
