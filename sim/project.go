package sim

// Project maps a 4D orbit state (Z, C) to normalized screen coordinates.
// The two rotation pairs act independently on (Zre, Cre) and (Zim, Cim);
// the axis swap and negation keep the figure upright. At zero rotation
// this reduces to the plain 2D projection fracX = Zim, fracY = -Zre.
// Returned coordinates are inside [0,1)x[0,1) only when the point is
// visible in the current view.
func Project(zre, zim, cre, cim float64, p *PassParams) (u, v float64) {
	rzX := zre*p.Rot.CosXZ - cre*p.Rot.SinXZ
	rzY := zim*p.Rot.CosYW - cim*p.Rot.SinYW

	fracX := rzY
	fracY := -rzX

	u = (fracX-p.CenterX)/(2*p.HalfX) + 0.5
	v = (fracY-p.CenterY)/(2*p.HalfY) + 0.5
	return u, v
}
