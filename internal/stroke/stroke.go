// Package stroke expands flattened contours into fillable outline polygons.
//
// Expansion happens in the space the input points live in; the caller
// transforms the resulting outline afterwards, so stroke width scales with
// the current transform. The output contours all share one winding
// direction and are meant to be filled with the nonzero rule, which makes
// overlapping segment quads, join wedges and caps union cleanly.
package stroke

import (
	"math"

	"github.com/osdkit/osd/internal/geom"
)

// Cap selects the line cap applied to open contour ends.
type Cap int

const (
	CapButt Cap = iota
	CapRound
	CapSquare
)

// Join selects the joint style between adjacent segments.
type Join int

const (
	JoinMiter Join = iota
	JoinRound
	JoinBevel
)

// Options carries the stroke style.
type Options struct {
	Width      float64
	Cap        Cap
	Join       Join
	MiterLimit float64
	Dash       []float64
	DashPhase  float64
}

// Expand converts the contours into outline polygons covering the stroked
// region. Degenerate input (width <= 0, empty contours) yields nil.
func Expand(subs []geom.Subpath, o Options) []geom.Subpath {
	if o.Width <= 0 {
		return nil
	}
	if o.MiterLimit <= 0 {
		o.MiterLimit = 4
	}
	if pattern, phase, ok := normalizeDash(o.Dash, o.DashPhase); ok {
		subs = applyDash(subs, pattern, phase)
	}
	r := o.Width / 2
	var out []geom.Subpath
	for _, s := range subs {
		pts := dedupe(s.Pts)
		switch {
		case len(pts) == 0:
			continue
		case len(pts) == 1:
			out = appendDot(out, pts[0], r, o.Cap)
			continue
		}
		out = expandContour(out, pts, s.Closed, r, o)
	}
	return out
}

func expandContour(out []geom.Subpath, pts []geom.Point, closed bool, r float64, o Options) []geom.Subpath {
	n := len(pts)
	segs := n - 1
	if closed {
		segs = n
	}
	// One quad per segment.
	for i := 0; i < segs; i++ {
		p0 := pts[i]
		p1 := pts[(i+1)%n]
		d := p1.Sub(p0).Normalize()
		if d == (geom.Point{}) {
			continue
		}
		nv := d.Perp().Mul(r)
		out = append(out, geom.Subpath{
			Pts: []geom.Point{
				p0.Add(nv), p1.Add(nv), p1.Sub(nv), p0.Sub(nv),
			},
			Closed: true,
		})
	}
	// Join wedges at interior vertices.
	first, last := 1, n-2
	if closed {
		first, last = 0, n-1
	}
	for i := first; i <= last; i++ {
		prev := pts[(i-1+n)%n]
		cur := pts[i]
		next := pts[(i+1)%n]
		d0 := cur.Sub(prev).Normalize()
		d1 := next.Sub(cur).Normalize()
		if d0 == (geom.Point{}) || d1 == (geom.Point{}) {
			continue
		}
		out = appendJoin(out, cur, d0, d1, r, o.Join, o.MiterLimit)
	}
	if !closed {
		d0 := pts[1].Sub(pts[0]).Normalize()
		dn := pts[n-1].Sub(pts[n-2]).Normalize()
		out = appendCap(out, pts[0], d0.Mul(-1), r, o.Cap)
		out = appendCap(out, pts[n-1], dn, r, o.Cap)
	}
	return out
}

func appendJoin(out []geom.Subpath, p, d0, d1 geom.Point, r float64, join Join, miterLimit float64) []geom.Subpath {
	cross := d0.Cross(d1)
	if math.Abs(cross) < 1e-9 {
		return out // collinear, segment quads already cover it
	}
	s := 1.0
	if cross < 0 {
		s = -1
	}
	n0 := d0.Perp().Mul(s)
	n1 := d1.Perp().Mul(s)
	a := p.Add(n0.Mul(r))
	b := p.Add(n1.Mul(r))
	switch join {
	case JoinRound:
		return append(out, arcFan(p, r, n0, n1, s))
	case JoinMiter:
		m := n0.Add(n1).Normalize()
		cosHalf := m.Dot(n0)
		if cosHalf > 1e-6 && 1/cosHalf <= miterLimit {
			tip := p.Add(m.Mul(r / cosHalf))
			return append(out, geom.Subpath{Pts: []geom.Point{p, a, tip, b}, Closed: true})
		}
		fallthrough
	default: // bevel, and miter past the limit
		return append(out, geom.Subpath{Pts: []geom.Point{p, a, b}, Closed: true})
	}
}

func appendCap(out []geom.Subpath, p, dir geom.Point, r float64, cap Cap) []geom.Subpath {
	nv := dir.Perp().Mul(r)
	switch cap {
	case CapSquare:
		ext := dir.Mul(r)
		return append(out, geom.Subpath{
			Pts: []geom.Point{
				p.Add(nv), p.Add(nv).Add(ext), p.Sub(nv).Add(ext), p.Sub(nv),
			},
			Closed: true,
		})
	case CapRound:
		return append(out, arcFan(p, r, nv.Normalize(), nv.Normalize().Mul(-1), 1))
	default:
		return out
	}
}

// appendDot renders a zero-length contour as its cap shape.
func appendDot(out []geom.Subpath, p geom.Point, r float64, cap Cap) []geom.Subpath {
	switch cap {
	case CapRound:
		return append(out, arcFan(p, r, geom.Pt(0, -1), geom.Pt(0, 1), 1),
			arcFan(p, r, geom.Pt(0, 1), geom.Pt(0, -1), 1))
	case CapSquare:
		return append(out, geom.Subpath{
			Pts: []geom.Point{
				geom.Pt(p.X-r, p.Y-r), geom.Pt(p.X+r, p.Y-r),
				geom.Pt(p.X+r, p.Y+r), geom.Pt(p.X-r, p.Y+r),
			},
			Closed: true,
		})
	default:
		return out
	}
}

// arcFan builds a pie wedge from unit normal n0 to n1 around center, swept
// in the direction selected by s (the outer side of the turn).
func arcFan(center geom.Point, r float64, n0, n1 geom.Point, s float64) geom.Subpath {
	a0 := math.Atan2(n0.Y, n0.X)
	a1 := math.Atan2(n1.Y, n1.X)
	sweep := a1 - a0
	if s > 0 {
		for sweep < 0 {
			sweep += 2 * math.Pi
		}
	} else {
		for sweep > 0 {
			sweep -= 2 * math.Pi
		}
	}
	steps := int(math.Abs(sweep) * math.Max(r, 1) / 2)
	if steps < 4 {
		steps = 4
	}
	pts := make([]geom.Point, 0, steps+2)
	pts = append(pts, center)
	for i := 0; i <= steps; i++ {
		t := a0 + sweep*float64(i)/float64(steps)
		pts = append(pts, geom.Pt(center.X+r*math.Cos(t), center.Y+r*math.Sin(t)))
	}
	return geom.Subpath{Pts: pts, Closed: true}
}

func dedupe(pts []geom.Point) []geom.Point {
	if len(pts) == 0 {
		return pts
	}
	out := pts[:1]
	for _, p := range pts[1:] {
		last := out[len(out)-1]
		if math.Abs(p.X-last.X) > 1e-12 || math.Abs(p.Y-last.Y) > 1e-12 {
			out = append(out, p)
		}
	}
	return out
}
