package osd

import (
	"math"

	"github.com/osdkit/osd/internal/geom"
	"github.com/osdkit/osd/internal/stroke"
)

// kappa is the control point offset for approximating a quarter circle
// with one cubic Bezier.
const kappa = 0.5522847498

// pathElement is one command of a path's append-only command list.
type pathElement interface {
	isPathElement()
}

type moveTo struct{ X, Y float64 }

type lineTo struct{ X, Y float64 }

type quadTo struct{ CX, CY, X, Y float64 }

type cubicTo struct{ C1X, C1Y, C2X, C2Y, X, Y float64 }

// arcTo is kept as a command and tessellated when the path is realized.
type arcTo struct {
	CX, CY, R  float64
	Start, End float64 // radians
	Clockwise  bool
}

type closePath struct{}

func (moveTo) isPathElement()    {}
func (lineTo) isPathElement()    {}
func (quadTo) isPathElement()    {}
func (cubicTo) isPathElement()   {}
func (arcTo) isPathElement()     {}
func (closePath) isPathElement() {}

// Path is a registry-managed geometry plus stroke styling. The command
// list is append-only; styling setters may be called at any time.
type Path struct {
	elems     []pathElement
	lineWidth float64
	lineCap   uint8
	lineJoin  uint8
	dash      []float64
	dashPhase float64
	evenOdd   bool
}

func newPath() *Path {
	return &Path{lineWidth: 1}
}

var paths = newRegistry[Path]()

// CreatePath registers an empty path and returns its handle. The path
// starts with line width 1, butt caps, miter joins, no dash, and the
// nonzero fill rule.
func CreatePath() Handle {
	return paths.add(newPath())
}

// DestroyPath releases a path handle. Unknown handles are ignored.
func DestroyPath(h Handle) {
	paths.remove(h)
}

// PathMoveTo starts a new subpath at (x, y).
func PathMoveTo(h Handle, x, y float64) {
	paths.with(h, func(p *Path) {
		p.elems = append(p.elems, moveTo{x, y})
	})
}

// PathLineTo appends a line segment to (x, y).
func PathLineTo(h Handle, x, y float64) {
	paths.with(h, func(p *Path) {
		p.elems = append(p.elems, lineTo{x, y})
	})
}

// PathAddCurve appends a cubic Bezier through control points
// (c1x, c1y) and (c2x, c2y) to (x, y).
func PathAddCurve(h Handle, c1x, c1y, c2x, c2y, x, y float64) {
	paths.with(h, func(p *Path) {
		p.elems = append(p.elems, cubicTo{c1x, c1y, c2x, c2y, x, y})
	})
}

// PathAddQuadCurve appends a quadratic Bezier through (cx, cy) to (x, y).
func PathAddQuadCurve(h Handle, cx, cy, x, y float64) {
	paths.with(h, func(p *Path) {
		p.elems = append(p.elems, quadTo{cx, cy, x, y})
	})
}

// PathAddArc appends a circular arc around (cx, cy) with radius r from
// angle start to end (radians). The arc opens a new subpath when realized.
func PathAddArc(h Handle, cx, cy, r, start, end float64, clockwise bool) {
	paths.with(h, func(p *Path) {
		p.elems = append(p.elems, arcTo{cx, cy, r, start, end, clockwise})
	})
}

// PathClose closes the current subpath.
func PathClose(h Handle) {
	paths.with(h, func(p *Path) {
		p.elems = append(p.elems, closePath{})
	})
}

// PathAppend appends the command list of src to dst. Styling is not
// copied. A stale src leaves dst untouched.
func PathAppend(dst, src Handle) {
	var cmds []pathElement
	if !paths.with(src, func(p *Path) {
		cmds = append(cmds, p.elems...)
	}) {
		return
	}
	paths.with(dst, func(p *Path) {
		p.elems = append(p.elems, cmds...)
	})
}

// PathRect creates a new path containing the rectangle (x, y, w, h).
func PathRect(x, y, w, h float64) Handle {
	id := CreatePath()
	paths.with(id, func(p *Path) {
		p.elems = append(p.elems,
			moveTo{x, y},
			lineTo{x + w, y},
			lineTo{x + w, y + h},
			lineTo{x, y + h},
			closePath{},
		)
	})
	return id
}

// PathOval creates a new path containing the ellipse inscribed in
// (x, y, w, h), built from four cubic Beziers starting at 12 o'clock.
func PathOval(x, y, w, h float64) Handle {
	id := CreatePath()
	paths.with(id, func(p *Path) {
		cx, cy := x+w/2, y+h/2
		rx, ry := w/2, h/2
		kx, ky := kappa*rx, kappa*ry
		p.elems = append(p.elems,
			moveTo{cx, cy - ry},
			cubicTo{cx + kx, cy - ry, cx + rx, cy - ky, cx + rx, cy},
			cubicTo{cx + rx, cy + ky, cx + kx, cy + ry, cx, cy + ry},
			cubicTo{cx - kx, cy + ry, cx - rx, cy + ky, cx - rx, cy},
			cubicTo{cx - rx, cy - ky, cx - kx, cy - ry, cx, cy - ry},
			closePath{},
		)
	})
	return id
}

// PathRoundedRect creates a new path containing the rectangle (x, y, w, h)
// with corners rounded by r. The radius is clamped to half the smaller
// dimension; corner arcs are quarter-circle cubics.
func PathRoundedRect(x, y, w, h, r float64) Handle {
	id := CreatePath()
	paths.with(id, func(p *Path) {
		p.elems = appendRoundedRect(p.elems, x, y, w, h, r)
	})
	return id
}

func appendRoundedRect(elems []pathElement, x, y, w, h, r float64) []pathElement {
	r = math.Max(0, math.Min(r, math.Min(w/2, h/2)))
	if r < 0.5 {
		return append(elems,
			moveTo{x, y},
			lineTo{x + w, y},
			lineTo{x + w, y + h},
			lineTo{x, y + h},
			closePath{},
		)
	}
	kr := kappa * r
	return append(elems,
		moveTo{x + r, y},
		lineTo{x + w - r, y},
		cubicTo{x + w - r + kr, y, x + w, y + r - kr, x + w, y + r},
		lineTo{x + w, y + h - r},
		cubicTo{x + w, y + h - r + kr, x + w - r + kr, y + h, x + w - r, y + h},
		lineTo{x + r, y + h},
		cubicTo{x + r - kr, y + h, x, y + h - r + kr, x, y + h - r},
		lineTo{x, y + r},
		cubicTo{x, y + r - kr, x + r - kr, y, x + r, y},
		closePath{},
	)
}

// PathSetLineWidth sets the stroke width.
func PathSetLineWidth(h Handle, width float64) {
	paths.with(h, func(p *Path) { p.lineWidth = width })
}

// PathSetLineCap sets the stroke cap: 1 round, 2 square, anything else butt.
func PathSetLineCap(h Handle, cap uint8) {
	paths.with(h, func(p *Path) { p.lineCap = cap })
}

// PathSetLineJoin sets the stroke join: 1 round, 2 bevel, anything else miter.
func PathSetLineJoin(h Handle, join uint8) {
	paths.with(h, func(p *Path) { p.lineJoin = join })
}

// PathSetLineDash sets the dash pattern and phase. An empty interval list
// clears the dash and resets the phase.
func PathSetLineDash(h Handle, intervals []float64, phase float64) {
	if len(intervals) == 0 {
		paths.with(h, func(p *Path) {
			p.dash = nil
			p.dashPhase = 0
		})
		return
	}
	dash := append([]float64(nil), intervals...)
	paths.with(h, func(p *Path) {
		p.dash = dash
		p.dashPhase = phase
	})
}

// PathSetEoFillRule switches between the even-odd (true) and nonzero
// (false) fill rules.
func PathSetEoFillRule(h Handle, on bool) {
	paths.with(h, func(p *Path) { p.evenOdd = on })
}

// PathGetBounds reports the path's bounding rectangle, control points
// included. ok is false for stale handles and empty paths.
func PathGetBounds(h Handle) (x, y, w, hgt float64, ok bool) {
	var subs []geom.Subpath
	if !paths.with(h, func(p *Path) {
		subs = p.flatten()
	}) {
		return 0, 0, 0, 0, false
	}
	minX, minY, maxX, maxY, any := geom.Bounds(subs)
	if !any {
		return 0, 0, 0, 0, false
	}
	return minX, minY, maxX - minX, maxY - minY, true
}

// snapshot returns a deep copy of the path under its slot lock, so drawing
// can proceed without holding the lock.
func (p *Path) snapshot() *Path {
	cp := *p
	cp.elems = append([]pathElement(nil), p.elems...)
	cp.dash = append([]float64(nil), p.dash...)
	return &cp
}

func (p *Path) strokeOptions() stroke.Options {
	o := stroke.Options{
		Width:      p.lineWidth,
		MiterLimit: 4,
		Dash:       p.dash,
		DashPhase:  p.dashPhase,
	}
	switch p.lineCap {
	case 1:
		o.Cap = stroke.CapRound
	case 2:
		o.Cap = stroke.CapSquare
	}
	switch p.lineJoin {
	case 1:
		o.Join = stroke.JoinRound
	case 2:
		o.Join = stroke.JoinBevel
	}
	return o
}

// flatten realizes the command list into polyline contours. Curves are
// subdivided against a flatness tolerance; arcs are sampled with
// max(4, sweep*max(r,1)/2) steps and always open a fresh contour.
func (p *Path) flatten() []geom.Subpath {
	var subs []geom.Subpath
	var cur []geom.Point
	var start geom.Point

	flush := func(closed bool) {
		if len(cur) > 0 {
			subs = append(subs, geom.Subpath{Pts: cur, Closed: closed})
		}
		cur = nil
	}
	pos := func() geom.Point {
		if len(cur) == 0 {
			return start
		}
		return cur[len(cur)-1]
	}
	ensure := func() {
		if len(cur) == 0 {
			cur = append(cur, start)
		}
	}

	for _, e := range p.elems {
		switch e := e.(type) {
		case moveTo:
			flush(false)
			start = geom.Pt(e.X, e.Y)
			cur = append(cur, start)
		case lineTo:
			ensure()
			cur = append(cur, geom.Pt(e.X, e.Y))
		case quadTo:
			ensure()
			cur = geom.FlattenQuad(cur, pos(), geom.Pt(e.CX, e.CY), geom.Pt(e.X, e.Y))
		case cubicTo:
			ensure()
			cur = geom.FlattenCubic(cur, pos(),
				geom.Pt(e.C1X, e.C1Y), geom.Pt(e.C2X, e.C2Y), geom.Pt(e.X, e.Y))
		case arcTo:
			flush(false)
			pts := arcPoints(e.CX, e.CY, e.R, e.Start, e.End, e.Clockwise)
			if len(pts) > 0 {
				start = pts[0]
				cur = append(cur, pts...)
			}
		case closePath:
			if len(cur) > 0 {
				flush(true)
				// The subpath origin stays current, matching the usual
				// builder behavior of drawing from the seam after close.
				cur = append(cur, start)
			}
		}
	}
	flush(false)

	// Trailing single-point contours from the post-close origin are noise.
	n := 0
	for _, s := range subs {
		if len(s.Pts) >= 2 {
			subs[n] = s
			n++
		}
	}
	return subs[:n]
}

// arcPoints samples a circular arc; a clockwise arc sweeps positively in
// screen space.
func arcPoints(cx, cy, r, start, end float64, clockwise bool) []geom.Point {
	sweep := end - start
	if clockwise {
		if sweep < 0 {
			sweep += 2 * math.Pi
		}
	} else {
		if sweep > 0 {
			sweep -= 2 * math.Pi
		}
	}
	steps := int(math.Abs(sweep) * math.Max(r, 1) / 2)
	if steps < 4 {
		steps = 4
	}
	pts := make([]geom.Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := start + sweep*float64(i)/float64(steps)
		pts = append(pts, geom.Pt(cx+r*math.Cos(t), cy+r*math.Sin(t)))
	}
	return pts
}
