package blend

import "math"

// The separable blend modes operate on straight (non-premultiplied) unit
// floats per channel, then compose with both alphas:
//
//	co = as*(1-ab)*cs + as*ab*B(cb, cs) + (1-as)*ab*cb
//	ao = as + ab*(1-as)

type channelBlend func(cb, cs float64) float64

func separableFunc(m Mode) Func {
	var b channelBlend
	switch m {
	case Multiply:
		b = func(cb, cs float64) float64 { return cb * cs }
	case Screen:
		b = screen
	case Overlay:
		// overlay(cb, cs) = hardLight(cs, cb)
		b = func(cb, cs float64) float64 { return hardLight(cs, cb) }
	case Darken:
		b = math.Min
	case Lighten:
		b = math.Max
	case ColorDodge:
		b = colorDodge
	case ColorBurn:
		b = colorBurn
	case SoftLight:
		b = softLight
	case HardLight:
		b = hardLight
	case Difference:
		b = func(cb, cs float64) float64 { return math.Abs(cb - cs) }
	case Exclusion:
		b = func(cb, cs float64) float64 { return cb + cs - 2*cb*cs }
	default:
		return srcOver
	}
	return composeSeparable(b)
}

func composeSeparable(b channelBlend) Func {
	return func(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
		as, ab := float64(sa)/255, float64(da)/255
		cs := unpremulF(sr, sg, sb, sa)
		cb := unpremulF(dr, dg, db, da)
		ao := as + ab*(1-as)
		var out [3]float64
		for i := 0; i < 3; i++ {
			out[i] = as*(1-ab)*cs[i] + as*ab*b(cb[i], cs[i]) + (1-as)*ab*cb[i]
		}
		return toByte(out[0]), toByte(out[1]), toByte(out[2]), toByte(ao)
	}
}

func screen(cb, cs float64) float64 {
	return cb + cs - cb*cs
}

func hardLight(cb, cs float64) float64 {
	if cs <= 0.5 {
		return cb * 2 * cs
	}
	return screen(cb, 2*cs-1)
}

func colorDodge(cb, cs float64) float64 {
	if cb == 0 {
		return 0
	}
	if cs == 1 {
		return 1
	}
	return math.Min(1, cb/(1-cs))
}

func colorBurn(cb, cs float64) float64 {
	if cb == 1 {
		return 1
	}
	if cs == 0 {
		return 0
	}
	return 1 - math.Min(1, (1-cb)/cs)
}

func softLight(cb, cs float64) float64 {
	if cs <= 0.5 {
		return cb - (1-2*cs)*cb*(1-cb)
	}
	var d float64
	if cb <= 0.25 {
		d = ((16*cb-12)*cb + 4) * cb
	} else {
		d = math.Sqrt(cb)
	}
	return cb + (2*cs-1)*(d-cb)
}

// unpremulF recovers straight unit-float channels from a premultiplied pixel.
func unpremulF(r, g, b, a uint8) [3]float64 {
	if a == 0 {
		return [3]float64{}
	}
	fa := float64(a)
	return [3]float64{float64(r) / fa, float64(g) / fa, float64(b) / fa}
}

// toByte converts a unit float back to a rounded, clamped byte.
func toByte(v float64) uint8 {
	v = v * 255
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
