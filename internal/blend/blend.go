// Package blend implements the compositing operators over premultiplied
// RGBA8 pixels.
//
// Modes are identified by their external wire codes. Porter-Duff operators
// run in integer byte math; the separable and non-separable (HSL) blend
// modes unpremultiply to unit floats, apply the blend formula, and compose
// per the usual co = as*(1-ab)*cs + as*ab*B(cb,cs) + (1-as)*ab*cb.
package blend

// Mode is an external compositing operator code.
type Mode int

const (
	SourceOver      Mode = 0
	Multiply        Mode = 1
	Screen          Mode = 2
	Overlay         Mode = 3
	Darken          Mode = 4
	Lighten         Mode = 5
	ColorDodge      Mode = 6
	ColorBurn       Mode = 7
	SoftLight       Mode = 8
	HardLight       Mode = 9
	Difference      Mode = 10
	Exclusion       Mode = 11
	Hue             Mode = 12
	Saturation      Mode = 13
	Color           Mode = 14
	Luminosity      Mode = 15
	Clear           Mode = 16
	Source          Mode = 17
	SourceIn        Mode = 18
	SourceOut       Mode = 19
	SourceAtop      Mode = 20
	DestinationOver Mode = 21
	DestinationIn   Mode = 22
	DestinationOut  Mode = 23
	DestinationAtop Mode = 24
	Xor             Mode = 25
	Modulate        Mode = 26
	Plus            Mode = 27
)

// FromCode maps an external code to a Mode. Unknown codes fall back to
// SourceOver.
func FromCode(code int) Mode {
	if code < 0 || code > 27 {
		return SourceOver
	}
	return Mode(code)
}

// Func combines one premultiplied source pixel with one premultiplied
// destination pixel.
type Func func(sr, sg, sb, sa, dr, dg, db, da uint8) (r, g, b, a uint8)

// FuncFor returns the pixel combiner for m.
func FuncFor(m Mode) Func {
	switch m {
	case Clear:
		return clear
	case Source:
		return src
	case SourceIn:
		return srcIn
	case SourceOut:
		return srcOut
	case SourceAtop:
		return srcAtop
	case DestinationOver:
		return dstOver
	case DestinationIn:
		return dstIn
	case DestinationOut:
		return dstOut
	case DestinationAtop:
		return dstAtop
	case Xor:
		return xor
	case Modulate:
		return modulate
	case Plus:
		return plus
	case Multiply, Screen, Overlay, Darken, Lighten, ColorDodge,
		ColorBurn, SoftLight, HardLight, Difference, Exclusion:
		return separableFunc(m)
	case Hue, Saturation, Color, Luminosity:
		return nonSeparableFunc(m)
	default:
		return srcOver
	}
}

// mulDiv255 computes round(a * b / 255).
func mulDiv255(a, b uint8) uint8 {
	return uint8((uint32(a)*uint32(b) + 127) / 255)
}

func addSat(a, b uint8) uint8 {
	s := uint32(a) + uint32(b)
	if s > 255 {
		return 255
	}
	return uint8(s)
}

func srcOver(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	inv := 255 - sa
	return addSat(sr, mulDiv255(dr, inv)),
		addSat(sg, mulDiv255(dg, inv)),
		addSat(sb, mulDiv255(db, inv)),
		addSat(sa, mulDiv255(da, inv))
}

func clear(_, _, _, _, _, _, _, _ uint8) (uint8, uint8, uint8, uint8) {
	return 0, 0, 0, 0
}

func src(sr, sg, sb, sa, _, _, _, _ uint8) (uint8, uint8, uint8, uint8) {
	return sr, sg, sb, sa
}

func srcIn(sr, sg, sb, sa, _, _, _, da uint8) (uint8, uint8, uint8, uint8) {
	return mulDiv255(sr, da), mulDiv255(sg, da), mulDiv255(sb, da), mulDiv255(sa, da)
}

func srcOut(sr, sg, sb, sa, _, _, _, da uint8) (uint8, uint8, uint8, uint8) {
	inv := 255 - da
	return mulDiv255(sr, inv), mulDiv255(sg, inv), mulDiv255(sb, inv), mulDiv255(sa, inv)
}

func srcAtop(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	inv := 255 - sa
	return addSat(mulDiv255(sr, da), mulDiv255(dr, inv)),
		addSat(mulDiv255(sg, da), mulDiv255(dg, inv)),
		addSat(mulDiv255(sb, da), mulDiv255(db, inv)),
		da
}

func dstOver(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	inv := 255 - da
	return addSat(dr, mulDiv255(sr, inv)),
		addSat(dg, mulDiv255(sg, inv)),
		addSat(db, mulDiv255(sb, inv)),
		addSat(da, mulDiv255(sa, inv))
}

func dstIn(_, _, _, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	return mulDiv255(dr, sa), mulDiv255(dg, sa), mulDiv255(db, sa), mulDiv255(da, sa)
}

func dstOut(_, _, _, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	inv := 255 - sa
	return mulDiv255(dr, inv), mulDiv255(dg, inv), mulDiv255(db, inv), mulDiv255(da, inv)
}

func dstAtop(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	inv := 255 - da
	return addSat(mulDiv255(dr, sa), mulDiv255(sr, inv)),
		addSat(mulDiv255(dg, sa), mulDiv255(sg, inv)),
		addSat(mulDiv255(db, sa), mulDiv255(sb, inv)),
		sa
}

func xor(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	invS := 255 - sa
	invD := 255 - da
	return addSat(mulDiv255(sr, invD), mulDiv255(dr, invS)),
		addSat(mulDiv255(sg, invD), mulDiv255(dg, invS)),
		addSat(mulDiv255(sb, invD), mulDiv255(db, invS)),
		addSat(mulDiv255(sa, invD), mulDiv255(da, invS))
}

// modulate multiplies the pixels channel-wise; it stands in for the
// plus-darker operator.
func modulate(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	return mulDiv255(sr, dr), mulDiv255(sg, dg), mulDiv255(sb, db), mulDiv255(sa, da)
}

// plus is the saturating additive (plus-lighter) operator.
func plus(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	return addSat(sr, dr), addSat(sg, dg), addSat(sb, db), addSat(sa, da)
}
