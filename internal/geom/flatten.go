package geom

// Curve flattening by recursive subdivision against a flatness tolerance.
// The tolerance is the maximum distance between the true curve and its
// polyline approximation, in the space the points live in.

const flattenTolerance = 0.1

const maxDepth = 16

// FlattenQuad appends a polyline approximation of the quadratic Bezier
// (p0, p1, p2) to dst, excluding p0 and including p2.
func FlattenQuad(dst []Point, p0, p1, p2 Point) []Point {
	return flattenQuad(dst, p0, p1, p2, 0)
}

func flattenQuad(dst []Point, p0, p1, p2 Point, depth int) []Point {
	if depth >= maxDepth || quadFlat(p0, p1, p2) {
		return append(dst, p2)
	}
	// de Casteljau split at t = 0.5
	p01 := p0.Lerp(p1, 0.5)
	p12 := p1.Lerp(p2, 0.5)
	mid := p01.Lerp(p12, 0.5)
	dst = flattenQuad(dst, p0, p01, mid, depth+1)
	return flattenQuad(dst, mid, p12, p2, depth+1)
}

// FlattenCubic appends a polyline approximation of the cubic Bezier
// (p0, p1, p2, p3) to dst, excluding p0 and including p3.
func FlattenCubic(dst []Point, p0, p1, p2, p3 Point) []Point {
	return flattenCubic(dst, p0, p1, p2, p3, 0)
}

func flattenCubic(dst []Point, p0, p1, p2, p3 Point, depth int) []Point {
	if depth >= maxDepth || cubicFlat(p0, p1, p2, p3) {
		return append(dst, p3)
	}
	p01 := p0.Lerp(p1, 0.5)
	p12 := p1.Lerp(p2, 0.5)
	p23 := p2.Lerp(p3, 0.5)
	p012 := p01.Lerp(p12, 0.5)
	p123 := p12.Lerp(p23, 0.5)
	mid := p012.Lerp(p123, 0.5)
	dst = flattenCubic(dst, p0, p01, p012, mid, depth+1)
	return flattenCubic(dst, mid, p123, p23, p3, depth+1)
}

// quadFlat reports whether the control point is within tolerance of the
// chord, using the distance bound d(curve, chord) <= |p1 - mid(p0,p2)| / 2.
func quadFlat(p0, p1, p2 Point) bool {
	dx := p1.X - (p0.X+p2.X)*0.5
	dy := p1.Y - (p0.Y+p2.Y)*0.5
	return dx*dx+dy*dy <= 4*flattenTolerance*flattenTolerance
}

// cubicFlat uses the standard control-polygon deviation bound: the curve is
// within 3/4 of the larger control point deviation from the chord endpoints.
func cubicFlat(p0, p1, p2, p3 Point) bool {
	d1x := 3*p1.X - 2*p0.X - p3.X
	d1y := 3*p1.Y - 2*p0.Y - p3.Y
	d2x := 3*p2.X - p0.X - 2*p3.X
	d2y := 3*p2.Y - p0.Y - 2*p3.Y
	dx := d1x * d1x
	if d2x*d2x > dx {
		dx = d2x * d2x
	}
	dy := d1y * d1y
	if d2y*d2y > dy {
		dy = d2y * d2y
	}
	return dx+dy <= 16*flattenTolerance*flattenTolerance
}
