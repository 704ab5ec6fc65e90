package osd

import "math"

// Colors cross the API packed as 0xRRGGBBAA, byte order R,G,B,A from most
// to least significant byte. Pixel storage is premultiplied RGBA8.

// unpackColor splits a packed 0xRRGGBBAA color into straight components.
func unpackColor(c uint32) (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// packColor assembles straight components into a packed 0xRRGGBBAA value.
func packColor(r, g, b, a uint8) uint32 {
	return uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a)
}

// premultiply converts straight components to premultiplied storage form,
// rounding to nearest: stored = round(c * a / 255).
func premultiply(r, g, b, a uint8) (pr, pg, pb, pa uint8) {
	return mulRound255(r, a), mulRound255(g, a), mulRound255(b, a), a
}

// unpremultiply recovers straight components from premultiplied storage:
// c = min(255, round(stored * 255 / a)). Fully transparent pixels report
// all-zero; the color information is unrecoverable once alpha is zero.
func unpremultiply(pr, pg, pb, pa uint8) (r, g, b, a uint8) {
	if pa == 0 {
		return 0, 0, 0, 0
	}
	return divRound255(pr, pa), divRound255(pg, pa), divRound255(pb, pa), pa
}

// mulRound255 computes round(a * b / 255) for bytes.
func mulRound255(a, b uint8) uint8 {
	return uint8((uint32(a)*uint32(b) + 127) / 255)
}

// divRound255 computes min(255, round(v * 255 / a)) for a > 0.
func divRound255(v, a uint8) uint8 {
	x := (uint32(v)*255 + uint32(a)/2) / uint32(a)
	if x > 255 {
		return 255
	}
	return uint8(x)
}

// addSat8 adds two bytes, saturating at 255. Keeps malformed premultiplied
// input (color > alpha) from wrapping around.
func addSat8(a, b uint8) uint8 {
	s := uint32(a) + uint32(b)
	if s > 255 {
		return 255
	}
	return uint8(s)
}

// lerp8 interpolates dst toward v by t/255.
// Used to apply fractional coverage on top of an arbitrary blend result.
func lerp8(dst, v, t uint8) uint8 {
	return uint8((uint32(dst)*(255-uint32(t)) + uint32(v)*uint32(t) + 127) / 255)
}

// isFinite reports whether every value is a usable coordinate.
func isFinite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
