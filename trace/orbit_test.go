package trace

import (
	"testing"

	"github.com/mossfall/nebula/sim"
	"github.com/mossfall/nebula/view"
)

func testView() *view.Controller {
	return view.New(1024, 768, view.Params{
		MinZoom:      0.5,
		MaxZoom:      5000,
		Damping:      0.15,
		BaseHalf:     1.6,
		RegionExpand: 1.5,
		BiasCap:      0.85,
	})
}

func testPassParams(vc *view.Controller) *sim.PassParams {
	st := vc.State()
	hx, hy := vc.HalfExtents()
	return &sim.PassParams{
		Thresholds:       sim.EffectiveThresholds(50, 500, 2000),
		Rot:              sim.NewRotation(0, 0),
		CenterX:          st.CenterX,
		CenterY:          st.CenterY,
		HalfX:            hx,
		HalfY:            hy,
		QuickRejectIters: 20,
		Width:            1024,
		Height:           768,
	}
}

func TestTraceOutsideReturnsNil(t *testing.T) {
	vc := testView()
	tr := NewTracer(1024, 768, 2000)

	if rec := tr.Trace(-5, 100, vc, testPassParams(vc)); rec != nil {
		t.Error("expected nil record outside the render area")
	}
	if rec := tr.Trace(100, 800, vc, testPassParams(vc)); rec != nil {
		t.Error("expected nil record below the render area")
	}
}

func TestTraceBoundedOrbit(t *testing.T) {
	vc := testView()
	tr := NewTracer(1024, 768, 500)

	// Screen center of the home view is C = 0, which never escapes
	rec := tr.Trace(512, 384, vc, testPassParams(vc))
	if rec == nil {
		t.Fatal("expected a record for an in-area pointer")
	}
	if rec.Escaped {
		t.Error("expected bounded orbit")
	}
	if len(rec.Points) != 500 {
		t.Errorf("expected trace to run to its iteration cap, got %d points", len(rec.Points))
	}

	// C = 0 keeps Z at the origin, which projects to screen center
	for i, pt := range rec.Points {
		if pt.X != 512 || pt.Y != 384 {
			t.Fatalf("point %d: expected fixed point at screen center, got (%f, %f)", i, pt.X, pt.Y)
		}
	}
}

func TestTraceEscapingOrbit(t *testing.T) {
	vc := testView()
	tr := NewTracer(1024, 768, 2000)
	p := testPassParams(vc)

	// Near the top edge the real part is large and positive, outside
	// the set, so the orbit escapes quickly.
	rec := tr.Trace(512, 10, vc, p)
	if rec == nil {
		t.Fatal("expected a record")
	}
	if !rec.Escaped || rec.EscapeIter == 0 {
		t.Errorf("expected escape, got %+v", rec)
	}
	if len(rec.Points) != rec.EscapeIter {
		t.Errorf("expected one point per iteration, got %d points for escape at %d",
			len(rec.Points), rec.EscapeIter)
	}
}

func TestTraceMatchesKernelEvaluation(t *testing.T) {
	vc := testView()
	tr := NewTracer(1024, 768, 2000)
	p := testPassParams(vc)
	// The tracer records every orbit; disable the kernel's early
	// discard so fast escapers compare equal too.
	p.QuickRejectIters = 0

	// The traced orbit and the kernel's evaluation of the same constant
	// must agree on escape behavior. Probe a spread of pixels.
	hist := sim.NewHistogram(1024, 768)
	probes := []struct{ px, py float64 }{
		{512, 100}, {300, 300}, {700, 500}, {512, 700}, {100, 384},
	}
	for _, pr := range probes {
		rec := tr.Trace(pr.px, pr.py, vc, p)
		if rec == nil {
			t.Fatalf("probe (%f, %f) outside render area", pr.px, pr.py)
		}

		res := sim.EvaluatePath(rec.CX, rec.CY, p, hist)
		if res.Escaped != rec.Escaped {
			t.Errorf("probe (%f, %f): kernel escaped=%v, trace escaped=%v",
				pr.px, pr.py, res.Escaped, rec.Escaped)
		}
		if res.Escaped && res.EscapeIter != rec.EscapeIter {
			t.Errorf("probe (%f, %f): kernel escape iter %d, trace %d",
				pr.px, pr.py, res.EscapeIter, rec.EscapeIter)
		}
	}
}

func TestTraceLeavesHistogramUntouched(t *testing.T) {
	vc := testView()
	tr := NewTracer(1024, 768, 2000)

	// The tracer has no histogram access at all; its record carries the
	// threshold context instead.
	rec := tr.Trace(512, 100, vc, testPassParams(vc))
	if rec == nil {
		t.Fatal("expected a record")
	}
	if rec.RedIter != 50 || rec.GreenIter != 500 || rec.BlueIter != 2000 {
		t.Errorf("expected threshold context (50, 500, 2000), got (%d, %d, %d)",
			rec.RedIter, rec.GreenIter, rec.BlueIter)
	}
}

func TestNewTracerCapsIterations(t *testing.T) {
	tr := NewTracer(100, 100, 100000)
	if tr.maxIters != sim.IterationCeiling {
		t.Errorf("expected cap at %d, got %d", sim.IterationCeiling, tr.maxIters)
	}

	tr = NewTracer(100, 100, 0)
	if tr.maxIters != sim.IterationCeiling {
		t.Errorf("expected default %d, got %d", sim.IterationCeiling, tr.maxIters)
	}
}
