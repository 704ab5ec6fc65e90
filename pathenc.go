package osd

import (
	"encoding/binary"
	"math"
)

// Compact binary path encoding: one opcode byte followed by little-endian
// float32 operands.
//
//	0x00  MoveTo   x y                        (8 bytes)
//	0x01  LineTo   x y                        (8 bytes)
//	0x02  CubicTo  c1x c1y c2x c2y x y        (24 bytes)
//	0x03  QuadTo   cx cy x y                  (16 bytes)
//	0x04  Close                               (0 bytes)
//
// Decoding is best effort: a truncated operand block or an unknown opcode
// ends the stream, keeping every command parsed before it.

const (
	opMoveTo  = 0x00
	opLineTo  = 0x01
	opCubicTo = 0x02
	opQuadTo  = 0x03
	opClose   = 0x04
)

func decodePathData(data []byte) []pathElement {
	var elems []pathElement
	i := 0
	f32 := func(off int) float64 {
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(data[off:])))
	}
	for i < len(data) {
		op := data[i]
		i++
		switch op {
		case opMoveTo:
			if i+8 > len(data) {
				return elems
			}
			elems = append(elems, moveTo{f32(i), f32(i + 4)})
			i += 8
		case opLineTo:
			if i+8 > len(data) {
				return elems
			}
			elems = append(elems, lineTo{f32(i), f32(i + 4)})
			i += 8
		case opCubicTo:
			if i+24 > len(data) {
				return elems
			}
			elems = append(elems, cubicTo{
				f32(i), f32(i + 4), f32(i + 8), f32(i + 12), f32(i + 16), f32(i + 20),
			})
			i += 24
		case opQuadTo:
			if i+16 > len(data) {
				return elems
			}
			elems = append(elems, quadTo{f32(i), f32(i + 4), f32(i + 8), f32(i + 12)})
			i += 16
		case opClose:
			elems = append(elems, closePath{})
		default:
			return elems
		}
	}
	return elems
}
