package blend

import "math"

// Non-separable blend modes (hue, saturation, color, luminosity) per the
// CSS compositing spec, operating on straight unit-float triples.

func nonSeparableFunc(m Mode) Func {
	var b func(cb, cs [3]float64) [3]float64
	switch m {
	case Hue:
		b = func(cb, cs [3]float64) [3]float64 {
			return setLum(setSat(cs, sat(cb)), lum(cb))
		}
	case Saturation:
		b = func(cb, cs [3]float64) [3]float64 {
			return setLum(setSat(cb, sat(cs)), lum(cb))
		}
	case Color:
		b = func(cb, cs [3]float64) [3]float64 {
			return setLum(cs, lum(cb))
		}
	case Luminosity:
		b = func(cb, cs [3]float64) [3]float64 {
			return setLum(cb, lum(cs))
		}
	default:
		return srcOver
	}
	return func(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
		as, ab := float64(sa)/255, float64(da)/255
		cs := unpremulF(sr, sg, sb, sa)
		cb := unpremulF(dr, dg, db, da)
		blended := b(cb, cs)
		ao := as + ab*(1-as)
		var out [3]float64
		for i := 0; i < 3; i++ {
			out[i] = as*(1-ab)*cs[i] + as*ab*blended[i] + (1-as)*ab*cb[i]
		}
		return toByte(out[0]), toByte(out[1]), toByte(out[2]), toByte(ao)
	}
}

func lum(c [3]float64) float64 {
	return 0.3*c[0] + 0.59*c[1] + 0.11*c[2]
}

func sat(c [3]float64) float64 {
	return math.Max(c[0], math.Max(c[1], c[2])) - math.Min(c[0], math.Min(c[1], c[2]))
}

func clipColor(c [3]float64) [3]float64 {
	l := lum(c)
	n := math.Min(c[0], math.Min(c[1], c[2]))
	x := math.Max(c[0], math.Max(c[1], c[2]))
	if n < 0 && l > n {
		for i := range c {
			c[i] = l + (c[i]-l)*l/(l-n)
		}
	}
	if x > 1 && x > l {
		for i := range c {
			c[i] = l + (c[i]-l)*(1-l)/(x-l)
		}
	}
	return c
}

func setLum(c [3]float64, l float64) [3]float64 {
	d := l - lum(c)
	for i := range c {
		c[i] += d
	}
	return clipColor(c)
}

func setSat(c [3]float64, s float64) [3]float64 {
	// Order the channels, spread the middle proportionally.
	iMin, iMid, iMax := 0, 1, 2
	if c[iMin] > c[iMid] {
		iMin, iMid = iMid, iMin
	}
	if c[iMid] > c[iMax] {
		iMid, iMax = iMax, iMid
	}
	if c[iMin] > c[iMid] {
		iMin, iMid = iMid, iMin
	}
	var out [3]float64
	if c[iMax] > c[iMin] {
		out[iMid] = (c[iMid] - c[iMin]) * s / (c[iMax] - c[iMin])
		out[iMax] = s
	}
	return out
}
