package osd

import (
	"github.com/osdkit/osd/internal/blend"
	"github.com/osdkit/osd/internal/geom"
	"github.com/osdkit/osd/internal/raster"
	"github.com/osdkit/osd/internal/stroke"
)

// The general drawing funnel: realize geometry in user space, transform,
// clip, rasterize to coverage spans, and composite under the blend mode.
// Registered-path operations honor the clip mask; the raw pixel-space fast
// paths elsewhere do not.

// transformContours maps contours through m in place.
func transformContours(subs []geom.Subpath, m Matrix) {
	if m.IsIdentity() {
		return
	}
	for _, s := range subs {
		for i, p := range s.Pts {
			x, y := m.Apply(p.X, p.Y)
			s.Pts[i] = geom.Pt(x, y)
		}
	}
}

// fillContours rasterizes device-space contours and composites color over
// the canvas. clipped selects whether the canvas clip mask applies.
func (c *Canvas) fillContours(subs []geom.Subpath, rule raster.FillRule, aa bool, color uint32, mode uint8, clipped bool) {
	pr, pg, pb, pa := premultiply(unpackColor(color))
	f := blend.FuncFor(blend.FromCode(int(mode)))
	clip := c.clip
	if !clipped {
		clip = nil
	}
	raster.Fill(subs, c.w, c.h, rule, aa, func(y, x0 int, cov []uint8) {
		row := c.pix[y*c.w*4:]
		for i, cv := range cov {
			x := x0 + i
			if clip != nil {
				cv = mulRound255(cv, clip.at(x, y))
				if cv == 0 {
					continue
				}
			}
			o := x * 4
			dr, dg, db, da := row[o], row[o+1], row[o+2], row[o+3]
			br, bg, bb, ba := f(pr, pg, pb, pa, dr, dg, db, da)
			if cv == 255 {
				row[o], row[o+1], row[o+2], row[o+3] = br, bg, bb, ba
			} else {
				row[o] = lerp8(dr, br, cv)
				row[o+1] = lerp8(dg, bg, cv)
				row[o+2] = lerp8(db, bb, cv)
				row[o+3] = lerp8(da, ba, cv)
			}
		}
	})
}

// strokeContours expands user-space contours with the stroke options,
// transforms the outline by m, and fills it. Stroke width therefore scales
// with the transform, matching how filled geometry behaves.
func (c *Canvas) strokeContours(subs []geom.Subpath, o stroke.Options, m Matrix, aa bool, color uint32, mode uint8, clipped bool) {
	outline := stroke.Expand(subs, o)
	if len(outline) == 0 {
		return
	}
	transformContours(outline, m)
	c.fillContours(outline, raster.NonZero, aa, color, mode, clipped)
}

func fillRuleOf(evenOdd bool) raster.FillRule {
	if evenOdd {
		return raster.EvenOdd
	}
	return raster.NonZero
}

// PathFill fills a registered path onto a canvas under the canvas CTM,
// clip mask, and antialias flag.
func PathFill(canvas, path Handle, color uint32, mode uint8) {
	var p *Path
	if !paths.with(path, func(pp *Path) { p = pp.snapshot() }) {
		return
	}
	canvases.with(canvas, func(c *Canvas) {
		subs := p.flatten()
		transformContours(subs, c.ctm)
		c.fillContours(subs, fillRuleOf(p.evenOdd), c.antialias, color, mode, true)
	})
}

// PathStroke strokes a registered path with its own styling (width, cap,
// join, dash) under the canvas CTM and clip mask.
func PathStroke(canvas, path Handle, color uint32, mode uint8) {
	var p *Path
	if !paths.with(path, func(pp *Path) { p = pp.snapshot() }) {
		return
	}
	canvases.with(canvas, func(c *Canvas) {
		c.strokeContours(p.flatten(), p.strokeOptions(), c.ctm, c.antialias, color, mode, true)
	})
}

// PathHitTest reports whether the untransformed path covers the point
// (x, y), honoring the path's fill rule. Implemented as a 1x1 probe fill.
func PathHitTest(path Handle, x, y float64) bool {
	var p *Path
	if !paths.with(path, func(pp *Path) { p = pp.snapshot() }) {
		return false
	}
	subs := p.flatten()
	transformContours(subs, Translation(-x+0.5, -y+0.5))
	hit := false
	raster.Fill(subs, 1, 1, fillRuleOf(p.evenOdd), false, func(_, _ int, cov []uint8) {
		if len(cov) > 0 && cov[0] > 0 {
			hit = true
		}
	})
	return hit
}

// PathAddClip rasterizes the path under the canvas CTM into a fresh
// canvas-sized clip mask, replacing any previous clip. Subsequent
// registered-path draws are scaled by the mask coverage.
func PathAddClip(canvas, path Handle) {
	var p *Path
	if !paths.with(path, func(pp *Path) { p = pp.snapshot() }) {
		return
	}
	canvases.with(canvas, func(c *Canvas) {
		subs := p.flatten()
		transformContours(subs, c.ctm)
		mask := newClipMask(c.w, c.h)
		raster.Fill(subs, c.w, c.h, raster.NonZero, c.antialias, mask.set)
		c.clip = mask
	})
}

// FillPathData decodes a compact encoded path and fills it with the
// nonzero rule under the canvas CTM. Decoding is best effort; whatever
// parsed before a truncation is drawn.
func FillPathData(canvas Handle, data []byte, color uint32, mode uint8) {
	elems := decodePathData(data)
	if len(elems) == 0 {
		return
	}
	p := &Path{elems: elems}
	canvases.with(canvas, func(c *Canvas) {
		subs := p.flatten()
		transformContours(subs, c.ctm)
		c.fillContours(subs, raster.NonZero, c.antialias, color, mode, false)
	})
}

// StrokePathData decodes a compact encoded path and strokes it with the
// given width, cap code (1 round, 2 square, else butt) and join code
// (1 round, 2 bevel, else miter) under the canvas CTM.
func StrokePathData(canvas Handle, data []byte, width float64, cap, join uint8, color uint32, mode uint8) {
	elems := decodePathData(data)
	if len(elems) == 0 {
		return
	}
	p := &Path{elems: elems, lineWidth: width, lineCap: cap, lineJoin: join}
	canvases.with(canvas, func(c *Canvas) {
		c.strokeContours(p.flatten(), p.strokeOptions(), c.ctm, c.antialias, color, mode, false)
	})
}
