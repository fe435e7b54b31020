package sim

import (
	"math"
	"testing"
)

func identityParams() *PassParams {
	return &PassParams{
		Rot:     NewRotation(0, 0),
		CenterX: 0, CenterY: 0,
		HalfX: 1, HalfY: 1,
	}
}

func TestProjectZeroRotation(t *testing.T) {
	p := identityParams()

	// At zero rotation the projection is fracX = Zim, fracY = -Zre,
	// normalized into [0,1) around the center.
	u, v := Project(0.4, -0.6, 0.2, 0.3, p)
	wantU := -0.6/2 + 0.5
	wantV := -0.4/2 + 0.5
	if math.Abs(u-wantU) > 1e-12 || math.Abs(v-wantV) > 1e-12 {
		t.Errorf("expected (%f, %f), got (%f, %f)", wantU, wantV, u, v)
	}

	// C does not influence the projection at zero rotation
	u2, v2 := Project(0.4, -0.6, -1.9, 1.1, p)
	if u2 != u || v2 != v {
		t.Errorf("expected C-independent projection at zero rotation, got (%f, %f) vs (%f, %f)", u2, v2, u, v)
	}
}

func TestProjectCenter(t *testing.T) {
	p := identityParams()
	p.CenterX = 0.3
	p.CenterY = -0.2

	// Z whose frac coordinates equal the view center lands mid-screen.
	// fracX = Zim = 0.3, fracY = -Zre = -0.2.
	u, v := Project(0.2, 0.3, 0, 0, p)
	if math.Abs(u-0.5) > 1e-12 || math.Abs(v-0.5) > 1e-12 {
		t.Errorf("expected view center to map to (0.5, 0.5), got (%f, %f)", u, v)
	}
}

func TestProjectFullRotationMixesC(t *testing.T) {
	p := identityParams()
	p.Rot = NewRotation(math.Pi/2, math.Pi/2)

	// At a quarter turn the projection reads C instead of Z.
	u, v := Project(0.4, -0.6, 0.2, 0.3, p)
	wantU := -0.3/2 + 0.5 // fracX = -Cim
	wantV := 0.2/2 + 0.5  // fracY = Cre
	if math.Abs(u-wantU) > 1e-9 || math.Abs(v-wantV) > 1e-9 {
		t.Errorf("expected (%f, %f), got (%f, %f)", wantU, wantV, u, v)
	}
}

func TestProjectHalfExtentScaling(t *testing.T) {
	p := identityParams()
	p.HalfX = 0.5
	p.HalfY = 0.5

	// Halving the extents doubles the offset from screen center
	u, _ := Project(0, 0.25, 0, 0, p)
	if math.Abs(u-0.75) > 1e-12 {
		t.Errorf("expected u 0.75 with half extent 0.5, got %f", u)
	}
}
