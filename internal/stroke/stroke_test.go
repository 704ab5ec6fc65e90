package stroke

import (
	"math"
	"testing"

	"github.com/osdkit/osd/internal/geom"
)

func seg(pts ...geom.Point) geom.Subpath {
	return geom.Subpath{Pts: pts}
}

func outlineBounds(t *testing.T, subs []geom.Subpath) (minX, minY, maxX, maxY float64) {
	t.Helper()
	minX, minY, maxX, maxY, any := geom.Bounds(subs)
	if !any {
		t.Fatal("empty outline")
	}
	return minX, minY, maxX, maxY
}

func TestExpandDegenerateInput(t *testing.T) {
	line := []geom.Subpath{seg(geom.Pt(0, 0), geom.Pt(10, 0))}
	if got := Expand(line, Options{Width: 0}); got != nil {
		t.Errorf("zero width produced %d contours", len(got))
	}
	if got := Expand(line, Options{Width: -2}); got != nil {
		t.Errorf("negative width produced %d contours", len(got))
	}
	if got := Expand(nil, Options{Width: 2}); len(got) != 0 {
		t.Errorf("empty input produced %d contours", len(got))
	}
}

func TestExpandSegmentButt(t *testing.T) {
	out := Expand([]geom.Subpath{seg(geom.Pt(2, 5), geom.Pt(8, 5))}, Options{Width: 2})
	minX, minY, maxX, maxY := outlineBounds(t, out)
	const eps = 1e-9
	if math.Abs(minX-2) > eps || math.Abs(maxX-8) > eps {
		t.Errorf("butt outline x range [%g, %g], want [2, 8]", minX, maxX)
	}
	if math.Abs(minY-4) > eps || math.Abs(maxY-6) > eps {
		t.Errorf("outline y range [%g, %g], want [4, 6]", minY, maxY)
	}
}

func TestExpandSegmentSquareCap(t *testing.T) {
	out := Expand([]geom.Subpath{seg(geom.Pt(2, 5), geom.Pt(8, 5))},
		Options{Width: 2, Cap: CapSquare})
	minX, _, maxX, _ := outlineBounds(t, out)
	const eps = 1e-9
	if math.Abs(minX-1) > eps || math.Abs(maxX-9) > eps {
		t.Errorf("square cap x range [%g, %g], want [1, 9]", minX, maxX)
	}
}

func TestExpandSegmentRoundCap(t *testing.T) {
	out := Expand([]geom.Subpath{seg(geom.Pt(2, 5), geom.Pt(8, 5))},
		Options{Width: 2, Cap: CapRound})
	minX, minY, maxX, maxY := outlineBounds(t, out)
	// The cap arcs are sampled, so they stay within the exact half circle.
	if minX < 1-1e-9 || maxX > 9+1e-9 {
		t.Errorf("round cap x range [%g, %g], want within [1, 9]", minX, maxX)
	}
	if minX > 1.2 || maxX < 8.8 {
		t.Errorf("round cap x range [%g, %g] does not reach the cap tips", minX, maxX)
	}
	if minY < 4-1e-9 || maxY > 6+1e-9 {
		t.Errorf("round cap y range [%g, %g], want within [4, 6]", minY, maxY)
	}
}

func TestExpandMiterJoin(t *testing.T) {
	// A right angle with r=1: the miter tip sits one unit outside the
	// corner on both axes, at (11, -1).
	pts := seg(geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10))
	out := Expand([]geom.Subpath{pts}, Options{Width: 2})
	found := false
	for _, s := range out {
		for _, p := range s.Pts {
			if math.Abs(p.X-11) < 1e-6 && math.Abs(p.Y+1) < 1e-6 {
				found = true
			}
		}
	}
	if !found {
		t.Error("no outline point at the miter tip (11, -1)")
	}
}

func TestExpandMiterLimitFallsBackToBevel(t *testing.T) {
	// A near reversal exceeds any reasonable miter limit.
	pts := seg(geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(0, 0.5))
	out := Expand([]geom.Subpath{pts}, Options{Width: 2, MiterLimit: 2})
	_, _, maxX, _ := outlineBounds(t, out)
	if maxX > 13 {
		t.Errorf("outline reaches x=%g, miter spike not clamped", maxX)
	}
}

func TestExpandDotRoundCap(t *testing.T) {
	out := Expand([]geom.Subpath{seg(geom.Pt(5, 5))}, Options{Width: 4, Cap: CapRound})
	if len(out) == 0 {
		t.Fatal("round-cap dot produced no outline")
	}
	minX, minY, maxX, maxY := outlineBounds(t, out)
	if minX < 3-1e-9 || maxX > 7+1e-9 || minY < 3-1e-9 || maxY > 7+1e-9 {
		t.Errorf("dot outline [%g, %g]x[%g, %g] escapes its radius", minX, maxX, minY, maxY)
	}
	// Butt caps draw nothing for a dot.
	if got := Expand([]geom.Subpath{seg(geom.Pt(5, 5))}, Options{Width: 4}); len(got) != 0 {
		t.Errorf("butt-cap dot produced %d contours", len(got))
	}
}

func TestExpandClosedContourHasNoCaps(t *testing.T) {
	square := geom.Subpath{Pts: []geom.Point{
		geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10), geom.Pt(0, 10),
	}, Closed: true}
	out := Expand([]geom.Subpath{square}, Options{Width: 2})
	minX, minY, maxX, maxY := outlineBounds(t, out)
	const eps = 1e-6
	// Segment quads plus right-angle miter tips give exactly [-1, 11].
	if math.Abs(minX+1) > eps || math.Abs(maxX-11) > eps ||
		math.Abs(minY+1) > eps || math.Abs(maxY-11) > eps {
		t.Errorf("closed outline bounds [%g, %g]x[%g, %g], want [-1, 11] both axes",
			minX, maxX, minY, maxY)
	}
}
