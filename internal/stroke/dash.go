package stroke

import (
	"math"

	"github.com/osdkit/osd/internal/geom"
)

// normalizeDash validates and canonicalizes a dash pattern. A pattern with
// an odd number of intervals is repeated once so on/off pairs line up. The
// phase is wrapped into [0, patternLength). ok is false when the pattern is
// empty or has no positive interval, which means solid stroking.
func normalizeDash(pattern []float64, phase float64) ([]float64, float64, bool) {
	if len(pattern) == 0 {
		return nil, 0, false
	}
	total := 0.0
	for _, d := range pattern {
		if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return nil, 0, false
		}
		total += d
	}
	if total <= 0 {
		return nil, 0, false
	}
	if len(pattern)%2 != 0 {
		pattern = append(append([]float64(nil), pattern...), pattern...)
		total *= 2
	}
	phase = math.Mod(phase, total)
	if phase < 0 {
		phase += total
	}
	return pattern, phase, true
}

// applyDash slices the contours into the open "on" runs of the pattern.
// Closed contours are walked as if their closing segment were explicit; the
// pattern does not rejoin across the seam.
func applyDash(subs []geom.Subpath, pattern []float64, phase float64) []geom.Subpath {
	var out []geom.Subpath
	for _, s := range subs {
		pts := s.Pts
		if len(pts) < 2 {
			continue
		}
		if s.Closed {
			pts = append(append([]geom.Point(nil), pts...), pts[0])
		}
		out = dashPolyline(out, pts, pattern, phase)
	}
	return out
}

func dashPolyline(out []geom.Subpath, pts []geom.Point, pattern []float64, phase float64) []geom.Subpath {
	idx := 0
	remain := pattern[0]
	for phase > 0 {
		if phase < remain {
			remain -= phase
			break
		}
		phase -= remain
		idx = (idx + 1) % len(pattern)
		remain = pattern[idx]
	}
	on := idx%2 == 0

	var run []geom.Point
	flush := func() {
		if len(run) >= 2 {
			out = append(out, geom.Subpath{Pts: run})
		}
		run = nil
	}

	for i := 0; i+1 < len(pts); i++ {
		p0, p1 := pts[i], pts[i+1]
		segLen := p1.Sub(p0).Length()
		pos := 0.0
		if on && len(run) == 0 {
			run = append(run, p0)
		}
		for segLen-pos > remain {
			pos += remain
			cut := p0.Lerp(p1, pos/segLen)
			if on {
				run = append(run, cut)
				flush()
			} else {
				run = append(run, cut)
			}
			on = !on
			idx = (idx + 1) % len(pattern)
			remain = pattern[idx]
			// Zero-length intervals toggle without advancing.
			for remain == 0 {
				if on {
					flush()
				} else {
					run = append(run, cut)
				}
				on = !on
				idx = (idx + 1) % len(pattern)
				remain = pattern[idx]
			}
		}
		remain -= segLen - pos
		if on {
			run = append(run, p1)
		}
	}
	flush()
	return out
}
