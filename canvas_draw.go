package osd

import (
	"math"

	"github.com/osdkit/osd/internal/geom"
	"github.com/osdkit/osd/internal/raster"
	"github.com/osdkit/osd/internal/stroke"
)

// Shape drawing. Integer-coordinate outline variants (Line, Rect, Circle,
// Ellipse, RoundedRect, EllipseArc) draw hairlines through pixel centers in
// raw pixel space, ignoring the CTM, the way a terminal-style overlay
// expects. The float Fill*/Stroke* variants go through the CTM.

func rectContours(x, y, w, h float64) []geom.Subpath {
	if w <= 0 || h <= 0 || !isFinite(x, y, w, h) {
		return nil
	}
	return []geom.Subpath{{
		Pts: []geom.Point{
			geom.Pt(x, y), geom.Pt(x+w, y), geom.Pt(x+w, y+h), geom.Pt(x, y+h),
		},
		Closed: true,
	}}
}

func ovalContours(x, y, w, h float64) []geom.Subpath {
	if w <= 0 || h <= 0 || !isFinite(x, y, w, h) {
		return nil
	}
	p := Path{elems: ovalElems(x, y, w, h)}
	return p.flatten()
}

func ovalElems(x, y, w, h float64) []pathElement {
	cx, cy := x+w/2, y+h/2
	rx, ry := w/2, h/2
	kx, ky := kappa*rx, kappa*ry
	return []pathElement{
		moveTo{cx, cy - ry},
		cubicTo{cx + kx, cy - ry, cx + rx, cy - ky, cx + rx, cy},
		cubicTo{cx + rx, cy + ky, cx + kx, cy + ry, cx, cy + ry},
		cubicTo{cx - kx, cy + ry, cx - rx, cy + ky, cx - rx, cy},
		cubicTo{cx - rx, cy - ky, cx - kx, cy - ry, cx, cy - ry},
		closePath{},
	}
}

func roundedRectContours(x, y, w, h, r float64) []geom.Subpath {
	if w <= 0 || h <= 0 || !isFinite(x, y, w, h, r) {
		return nil
	}
	p := Path{elems: appendRoundedRect(nil, x, y, w, h, r)}
	return p.flatten()
}

func hairline(width float64) stroke.Options {
	return stroke.Options{Width: width, MiterLimit: 4}
}

func strokeOpts(width float64, cap, join uint8) stroke.Options {
	o := hairline(width)
	switch cap {
	case 1:
		o.Cap = stroke.CapRound
	case 2:
		o.Cap = stroke.CapSquare
	}
	switch join {
	case 1:
		o.Join = stroke.JoinRound
	case 2:
		o.Join = stroke.JoinBevel
	}
	return o
}

// Line draws a 1-pixel line between integer points, offset to pixel
// centers, in raw pixel space.
func Line(h Handle, x0, y0, x1, y1 int, color uint32, mode uint8) {
	seg := []geom.Subpath{{Pts: []geom.Point{
		geom.Pt(float64(x0)+0.5, float64(y0)+0.5),
		geom.Pt(float64(x1)+0.5, float64(y1)+0.5),
	}}}
	canvases.with(h, func(c *Canvas) {
		c.strokeContours(seg, hairline(1), Identity(), c.antialias, color, mode, false)
	})
}

// LineStroke draws a styled line segment under the canvas CTM.
func LineStroke(h Handle, x0, y0, x1, y1, width float64, cap, join uint8, color uint32, mode uint8) {
	if !isFinite(x0, y0, x1, y1, width) {
		return
	}
	seg := []geom.Subpath{{Pts: []geom.Point{geom.Pt(x0, y0), geom.Pt(x1, y1)}}}
	canvases.with(h, func(c *Canvas) {
		c.strokeContours(seg, strokeOpts(width, cap, join), c.ctm, c.antialias, color, mode, false)
	})
}

// HLine fills a w x 1 pixel row in raw pixel space, never antialiased.
func HLine(h Handle, x, y, w int, color uint32, mode uint8) {
	subs := rectContours(float64(x), float64(y), float64(w), 1)
	canvases.with(h, func(c *Canvas) {
		c.fillContours(subs, raster.NonZero, false, color, mode, false)
	})
}

// VLine fills a 1 x h pixel column in raw pixel space, never antialiased.
func VLine(h Handle, x, y, hgt int, color uint32, mode uint8) {
	subs := rectContours(float64(x), float64(y), 1, float64(hgt))
	canvases.with(h, func(c *Canvas) {
		c.fillContours(subs, raster.NonZero, false, color, mode, false)
	})
}

// Rect outlines a rectangle with 1-pixel edges in raw pixel space.
// Degenerate sizes draw nothing.
func Rect(h Handle, x, y, w, hgt int, color uint32, mode uint8) {
	if w <= 0 || hgt <= 0 {
		return
	}
	HLine(h, x, y, w, color, mode)
	HLine(h, x, y+hgt-1, w, color, mode)
	VLine(h, x, y, hgt, color, mode)
	VLine(h, x+w-1, y, hgt, color, mode)
}

// FillRect fills a rectangle under the canvas CTM.
func FillRect(h Handle, x, y, w, hgt float64, color uint32, mode uint8) {
	subs := rectContours(x, y, w, hgt)
	if subs == nil {
		return
	}
	canvases.with(h, func(c *Canvas) {
		transformContours(subs, c.ctm)
		c.fillContours(subs, raster.NonZero, c.antialias, color, mode, false)
	})
}

// RectStroke outlines a rectangle with the given border width, inset so
// the stroke stays inside (x, y, w, h), under the canvas CTM.
func RectStroke(h Handle, x, y, w, hgt, width float64, join uint8, color uint32, mode uint8) {
	half := width / 2
	subs := rectContours(x+half, y+half, math.Max(w-width, 0), math.Max(hgt-width, 0))
	if subs == nil {
		return
	}
	canvases.with(h, func(c *Canvas) {
		c.strokeContours(subs, strokeOpts(width, 0, join), c.ctm, c.antialias, color, mode, false)
	})
}

// RoundedRect outlines a rounded rectangle with a 1-pixel hairline through
// pixel centers in raw pixel space.
func RoundedRect(h Handle, x, y, w, hgt, radius int, color uint32, mode uint8) {
	subs := roundedRectContours(float64(x)+0.5, float64(y)+0.5, float64(w)-1, float64(hgt)-1, float64(radius))
	if subs == nil {
		return
	}
	canvases.with(h, func(c *Canvas) {
		c.strokeContours(subs, hairline(1), Identity(), c.antialias, color, mode, false)
	})
}

// FillRoundedRect fills a rounded rectangle under the canvas CTM.
func FillRoundedRect(h Handle, x, y, w, hgt, radius float64, color uint32, mode uint8) {
	subs := roundedRectContours(x, y, w, hgt, radius)
	if subs == nil {
		return
	}
	canvases.with(h, func(c *Canvas) {
		transformContours(subs, c.ctm)
		c.fillContours(subs, raster.NonZero, c.antialias, color, mode, false)
	})
}

// StrokeRoundedRect outlines a rounded rectangle with border width bw,
// inset to stay inside the given rectangle, under the canvas CTM.
func StrokeRoundedRect(h Handle, x, y, w, hgt, radius, bw float64, join uint8, color uint32, mode uint8) {
	half := bw / 2
	subs := roundedRectContours(x+half, y+half,
		math.Max(w-bw, 0), math.Max(hgt-bw, 0), math.Max(radius-half, 0))
	if subs == nil {
		return
	}
	canvases.with(h, func(c *Canvas) {
		c.strokeContours(subs, strokeOpts(bw, 0, join), c.ctm, c.antialias, color, mode, false)
	})
}

// Circle outlines a circle with a 1-pixel hairline centered on the pixel
// grid in raw pixel space.
func Circle(h Handle, cx, cy, r int, color uint32, mode uint8) {
	subs := ovalContours(float64(cx-r)+0.5, float64(cy-r)+0.5, float64(2*r), float64(2*r))
	if subs == nil {
		return
	}
	canvases.with(h, func(c *Canvas) {
		c.strokeContours(subs, hairline(1), Identity(), c.antialias, color, mode, false)
	})
}

// FillCircle fills a circle under the canvas CTM.
func FillCircle(h Handle, cx, cy, r float64, color uint32, mode uint8) {
	subs := ovalContours(cx-r, cy-r, 2*r, 2*r)
	if subs == nil {
		return
	}
	canvases.with(h, func(c *Canvas) {
		transformContours(subs, c.ctm)
		c.fillContours(subs, raster.NonZero, c.antialias, color, mode, false)
	})
}

// Ellipse outlines an axis-aligned ellipse with a 1-pixel hairline in raw
// pixel space.
func Ellipse(h Handle, cx, cy, rx, ry int, color uint32, mode uint8) {
	subs := ovalContours(float64(cx-rx)+0.5, float64(cy-ry)+0.5, float64(2*rx), float64(2*ry))
	if subs == nil {
		return
	}
	canvases.with(h, func(c *Canvas) {
		c.strokeContours(subs, hairline(1), Identity(), c.antialias, color, mode, false)
	})
}

// FillEllipse fills an axis-aligned ellipse under the canvas CTM.
func FillEllipse(h Handle, cx, cy, rx, ry float64, color uint32, mode uint8) {
	subs := ovalContours(cx-rx, cy-ry, 2*rx, 2*ry)
	if subs == nil {
		return
	}
	canvases.with(h, func(c *Canvas) {
		transformContours(subs, c.ctm)
		c.fillContours(subs, raster.NonZero, c.antialias, color, mode, false)
	})
}

// EllipseStroke outlines an ellipse with the given stroke width under the
// canvas CTM.
func EllipseStroke(h Handle, cx, cy, rx, ry, width float64, color uint32, mode uint8) {
	subs := ovalContours(cx-rx, cy-ry, 2*rx, 2*ry)
	if subs == nil {
		return
	}
	canvases.with(h, func(c *Canvas) {
		c.strokeContours(subs, hairline(width), c.ctm, c.antialias, color, mode, false)
	})
}

// EllipseArc draws an elliptical arc hairline in raw pixel space. Angles
// are in degrees measured clockwise from 12 o'clock; the arc always sweeps
// clockwise from start to end.
func EllipseArc(h Handle, cx, cy, rx, ry int, startDeg, endDeg float64, color uint32, mode uint8) {
	pts := ellipseArcPoints(float64(cx), float64(cy), float64(rx), float64(ry), startDeg, endDeg)
	if len(pts) < 2 {
		return
	}
	subs := []geom.Subpath{{Pts: pts}}
	canvases.with(h, func(c *Canvas) {
		c.strokeContours(subs, hairline(1), Identity(), c.antialias, color, mode, false)
	})
}

// ellipseArcPoints samples the arc as a polyline with one point per 0.05
// radians of sweep (at least 8 segments).
func ellipseArcPoints(cx, cy, rx, ry, startDeg, endDeg float64) []geom.Point {
	const pi2 = 2 * math.Pi
	normalize := func(rad float64) float64 {
		rad = math.Mod(rad, pi2)
		if rad < 0 {
			rad += pi2
		}
		return rad
	}
	s := normalize(startDeg * math.Pi / 180)
	e := normalize(endDeg * math.Pi / 180)
	sweep := e - s
	if e <= s {
		sweep += pi2
	}
	steps := int(sweep / 0.05)
	if steps < 8 {
		steps = 8
	}
	pts := make([]geom.Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := s + sweep*float64(i)/float64(steps)
		pts = append(pts, geom.Pt(cx+rx*math.Sin(t), cy-ry*math.Cos(t)))
	}
	return pts
}
