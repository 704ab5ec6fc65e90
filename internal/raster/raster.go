// Package raster fills flattened contours into per-row coverage spans.
//
// The rasterizer is a classic sorted-edge scanline fill. Antialiased fills
// take 4 vertical subsamples per pixel row with exact fractional horizontal
// coverage, so a fully covered pixel always reaches coverage 255. Aliased
// fills sample once through the pixel centers.
package raster

import (
	"math"
	"sort"

	"github.com/osdkit/osd/internal/geom"
)

// FillRule selects how winding numbers map to insideness.
type FillRule int

const (
	NonZero FillRule = iota
	EvenOdd
)

const subSamples = 4

type edge struct {
	y0, y1 float64 // y0 < y1
	x0     float64 // x at y0
	dxdy   float64
	dir    int
}

type crossing struct {
	x   float64
	dir int
}

// Fill rasterizes the contours into coverage spans clipped to the
// width x height device rectangle. Every contour is treated as closed.
// span is invoked once per covered run per row; cov is only valid for the
// duration of the call.
func Fill(subs []geom.Subpath, width, height int, rule FillRule, aa bool, span func(y, x0 int, cov []uint8)) {
	if width <= 0 || height <= 0 {
		return
	}
	edges, yMin, yMax := buildEdges(subs)
	if len(edges) == 0 {
		return
	}
	y0 := int(math.Floor(yMin))
	y1 := int(math.Ceil(yMax))
	if y0 < 0 {
		y0 = 0
	}
	if y1 > height {
		y1 = height
	}
	if y0 >= y1 {
		return
	}

	sort.Slice(edges, func(i, j int) bool { return edges[i].y0 < edges[j].y0 })

	acc := make([]float64, width)
	cov := make([]uint8, width)
	var active []*edge
	next := 0

	for y := y0; y < y1; y++ {
		rowTop := float64(y)
		rowBot := float64(y + 1)
		for next < len(edges) && edges[next].y0 < rowBot {
			active = append(active, &edges[next])
			next++
		}
		n := 0
		for _, e := range active {
			if e.y1 > rowTop {
				active[n] = e
				n++
			}
		}
		active = active[:n]
		if len(active) == 0 {
			continue
		}

		for i := range acc {
			acc[i] = 0
		}
		if aa {
			for s := 0; s < subSamples; s++ {
				sy := rowTop + (float64(s)+0.5)/subSamples
				sampleRow(active, sy, rule, func(xa, xb float64) {
					accumulate(acc, width, xa, xb)
				})
			}
		} else {
			sampleRow(active, rowTop+0.5, rule, func(xa, xb float64) {
				// Hard coverage: a pixel is in when its center is.
				lo := int(math.Ceil(xa - 0.5))
				hi := int(math.Ceil(xb-0.5)) - 1
				if lo < 0 {
					lo = 0
				}
				if hi >= width {
					hi = width - 1
				}
				for i := lo; i <= hi; i++ {
					acc[i] = subSamples
				}
			})
		}
		emitRow(y, acc, cov, span)
	}
}

// sampleRow computes the inside intervals of one horizontal sample line and
// hands each to emit.
func sampleRow(active []*edge, sy float64, rule FillRule, emit func(xa, xb float64)) {
	var xs []crossing
	for _, e := range active {
		if sy < e.y0 || sy >= e.y1 {
			continue
		}
		xs = append(xs, crossing{x: e.x0 + (sy-e.y0)*e.dxdy, dir: e.dir})
	}
	if len(xs) < 2 {
		return
	}
	sort.Slice(xs, func(i, j int) bool { return xs[i].x < xs[j].x })
	winding := 0
	start := 0.0
	inside := false
	for _, c := range xs {
		wasInside := inside
		winding += c.dir
		if rule == NonZero {
			inside = winding != 0
		} else {
			inside = winding&1 != 0
		}
		if !wasInside && inside {
			start = c.x
		} else if wasInside && !inside && c.x > start {
			emit(start, c.x)
		}
	}
}

// accumulate adds the fractional coverage of the interval [xa, xb] to the
// row accumulator, one unit per fully covered pixel.
func accumulate(acc []float64, width int, xa, xb float64) {
	if xa < 0 {
		xa = 0
	}
	if xb > float64(width) {
		xb = float64(width)
	}
	if xb <= xa {
		return
	}
	ia := int(xa)
	ib := int(xb)
	if ia == ib {
		acc[ia] += xb - xa
		return
	}
	acc[ia] += float64(ia+1) - xa
	for i := ia + 1; i < ib; i++ {
		acc[i] += 1
	}
	if ib < width {
		acc[ib] += xb - float64(ib)
	}
}

func emitRow(y int, acc []float64, cov []uint8, span func(y, x0 int, cov []uint8)) {
	runStart := -1
	for x := range acc {
		v := acc[x] * (255.0 / subSamples)
		c := uint8(0)
		if v > 0 {
			if v >= 254.5 {
				c = 255
			} else {
				c = uint8(v + 0.5)
			}
		}
		cov[x] = c
		if c != 0 {
			if runStart < 0 {
				runStart = x
			}
		} else if runStart >= 0 {
			span(y, runStart, cov[runStart:x])
			runStart = -1
		}
	}
	if runStart >= 0 {
		span(y, runStart, cov[runStart:])
	}
}

func buildEdges(subs []geom.Subpath) (edges []edge, yMin, yMax float64) {
	yMin, yMax = math.Inf(1), math.Inf(-1)
	for _, s := range subs {
		n := len(s.Pts)
		if n < 2 {
			continue
		}
		for i := 0; i < n; i++ {
			p0 := s.Pts[i]
			p1 := s.Pts[(i+1)%n] // fills always close the contour
			if p0.Y == p1.Y {
				continue
			}
			dir := 1
			if p0.Y > p1.Y {
				p0, p1 = p1, p0
				dir = -1
			}
			edges = append(edges, edge{
				y0:   p0.Y,
				y1:   p1.Y,
				x0:   p0.X,
				dxdy: (p1.X - p0.X) / (p1.Y - p0.Y),
				dir:  dir,
			})
			yMin = math.Min(yMin, p0.Y)
			yMax = math.Max(yMax, p1.Y)
		}
	}
	return edges, yMin, yMax
}
