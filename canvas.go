package osd

// Canvas borrows a caller-owned premultiplied RGBA8 pixel buffer. The
// engine never reallocates or resizes the buffer; every drawing operation
// writes into it in place.
type Canvas struct {
	pix  []uint8
	w, h int

	// Origin hint, defaults to the buffer center.
	cx, cy int

	antialias bool
	ctm       Matrix
	clip      *clipMask
	gstates   []gstate
}

// gstate is one saved graphics state. A nil clip snapshot means no clip
// was set at push time.
type gstate struct {
	ctm  Matrix
	clip []uint8
}

var canvases = newRegistry[Canvas]()

// CreateCanvas registers a canvas over pix, which must hold at least
// width*height*4 bytes of premultiplied RGBA. The canvas keeps the slice;
// the caller retains ownership of the memory. Returns InvalidHandle for
// non-positive dimensions or a short buffer.
func CreateCanvas(pix []uint8, width, height int) Handle {
	if width <= 0 || height <= 0 || len(pix) < width*height*4 {
		return InvalidHandle
	}
	return canvases.add(&Canvas{
		pix:       pix[:width*height*4],
		w:         width,
		h:         height,
		cx:        width / 2,
		cy:        height / 2,
		antialias: true,
		ctm:       Identity(),
	})
}

// DestroyCanvas releases a canvas handle. The pixel buffer stays with the
// caller. Unknown handles are ignored.
func DestroyCanvas(h Handle) {
	canvases.remove(h)
}

// SetAntiAlias toggles antialiased rasterization (default on).
func SetAntiAlias(h Handle, enabled bool) {
	canvases.with(h, func(c *Canvas) { c.antialias = enabled })
}

// GetAntiAlias reports the antialias flag; false for stale handles.
func GetAntiAlias(h Handle) bool {
	var v bool
	canvases.with(h, func(c *Canvas) { v = c.antialias })
	return v
}

// SetCTM replaces the canvas's current transformation matrix with
// (a, b, c, d, tx, ty).
func SetCTM(h Handle, a, b, c, d, tx, ty float64) {
	canvases.with(h, func(cv *Canvas) {
		cv.ctm = Matrix{A: a, B: b, C: c, D: d, TX: tx, TY: ty}
	})
}

// GStatePush saves the current transform and clip mask.
func GStatePush(h Handle) {
	canvases.with(h, func(c *Canvas) {
		g := gstate{ctm: c.ctm}
		if c.clip != nil {
			g.clip = append([]uint8(nil), c.clip.data...)
		}
		c.gstates = append(c.gstates, g)
	})
}

// GStatePop restores the most recently pushed state byte for byte.
// Popping an empty stack is a no-op.
func GStatePop(h Handle) {
	canvases.with(h, func(c *Canvas) {
		n := len(c.gstates)
		if n == 0 {
			return
		}
		g := c.gstates[n-1]
		c.gstates = c.gstates[:n-1]
		c.ctm = g.ctm
		if g.clip == nil {
			c.clip = nil
		} else {
			c.clip = &clipMask{w: c.w, h: c.h, data: g.clip}
		}
	})
}

// Fill overwrites every pixel with color (Source semantics).
func Fill(h Handle, color uint32) {
	pr, pg, pb, pa := premultiply(unpackColor(color))
	canvases.with(h, func(c *Canvas) {
		for i := 0; i < len(c.pix); i += 4 {
			c.pix[i] = pr
			c.pix[i+1] = pg
			c.pix[i+2] = pb
			c.pix[i+3] = pa
		}
	})
}

// FillOver composites color over the whole buffer. A fully opaque color
// degenerates to Fill.
func FillOver(h Handle, color uint32) {
	r, g, b, a := unpackColor(color)
	if a == 255 {
		Fill(h, color)
		return
	}
	if a == 0 {
		return
	}
	pr, pg, pb, pa := premultiply(r, g, b, a)
	inv := 255 - pa
	canvases.with(h, func(c *Canvas) {
		for i := 0; i < len(c.pix); i += 4 {
			c.pix[i] = addSat8(pr, mulRound255(c.pix[i], inv))
			c.pix[i+1] = addSat8(pg, mulRound255(c.pix[i+1], inv))
			c.pix[i+2] = addSat8(pb, mulRound255(c.pix[i+2], inv))
			c.pix[i+3] = addSat8(pa, mulRound255(c.pix[i+3], inv))
		}
	})
}

// SetPixel writes one pixel with Source semantics. Out-of-bounds writes
// are ignored.
func SetPixel(h Handle, x, y int, color uint32) {
	pr, pg, pb, pa := premultiply(unpackColor(color))
	canvases.with(h, func(c *Canvas) {
		if x < 0 || x >= c.w || y < 0 || y >= c.h {
			return
		}
		i := (y*c.w + x) * 4
		c.pix[i] = pr
		c.pix[i+1] = pg
		c.pix[i+2] = pb
		c.pix[i+3] = pa
	})
}

// GetPixel reads one pixel, un-premultiplies it, and packs it as
// 0xRRGGBBAA. Out-of-bounds reads and fully transparent pixels return 0.
func GetPixel(h Handle, x, y int) uint32 {
	var out uint32
	canvases.with(h, func(c *Canvas) {
		if x < 0 || x >= c.w || y < 0 || y >= c.h {
			return
		}
		i := (y*c.w + x) * 4
		r, g, b, a := unpremultiply(c.pix[i], c.pix[i+1], c.pix[i+2], c.pix[i+3])
		out = packColor(r, g, b, a)
	})
	return out
}

// Scroll shifts the buffer contents by (dx, dy) pixels, zero-filling the
// revealed edges. A shift of at least a full dimension clears the buffer.
func Scroll(h Handle, dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}
	canvases.with(h, func(c *Canvas) {
		rowSize := c.w * 4
		if dy != 0 {
			absDy := dy
			if absDy < 0 {
				absDy = -absDy
			}
			if absDy >= c.h {
				clearBytes(c.pix)
			} else if dy > 0 {
				for y := c.h - 1; y >= absDy; y-- {
					copy(c.pix[y*rowSize:(y+1)*rowSize], c.pix[(y-absDy)*rowSize:])
				}
				clearBytes(c.pix[:absDy*rowSize])
			} else {
				for y := 0; y < c.h-absDy; y++ {
					copy(c.pix[y*rowSize:(y+1)*rowSize], c.pix[(y+absDy)*rowSize:])
				}
				clearBytes(c.pix[(c.h-absDy)*rowSize:])
			}
		}
		if dx != 0 {
			absDx := dx
			if absDx < 0 {
				absDx = -absDx
			}
			shift := absDx * 4
			if shift >= rowSize {
				clearBytes(c.pix)
				return
			}
			for y := 0; y < c.h; y++ {
				row := c.pix[y*rowSize : (y+1)*rowSize]
				if dx > 0 {
					copy(row[shift:], row[:rowSize-shift])
					clearBytes(row[:shift])
				} else {
					copy(row[:rowSize-shift], row[shift:])
					clearBytes(row[rowSize-shift:])
				}
			}
		}
	})
}

// BlitRGBA copies a straight-alpha RGBA source image onto the canvas at
// (dstX, dstY). The source is premultiplied on entry; over selects
// SourceOver compositing instead of a plain copy.
func BlitRGBA(h Handle, src []uint8, srcW, srcH, dstX, dstY int, over bool) {
	if srcW <= 0 || srcH <= 0 || len(src) < srcW*srcH*4 {
		return
	}
	canvases.with(h, func(c *Canvas) {
		for sy := 0; sy < srcH; sy++ {
			dy := dstY + sy
			if dy < 0 || dy >= c.h {
				continue
			}
			for sx := 0; sx < srcW; sx++ {
				dx := dstX + sx
				if dx < 0 || dx >= c.w {
					continue
				}
				si := (sy*srcW + sx) * 4
				pr, pg, pb, pa := premultiply(src[si], src[si+1], src[si+2], src[si+3])
				di := (dy*c.w + dx) * 4
				if over {
					inv := 255 - pa
					c.pix[di] = addSat8(pr, mulRound255(c.pix[di], inv))
					c.pix[di+1] = addSat8(pg, mulRound255(c.pix[di+1], inv))
					c.pix[di+2] = addSat8(pb, mulRound255(c.pix[di+2], inv))
					c.pix[di+3] = addSat8(pa, mulRound255(c.pix[di+3], inv))
				} else {
					c.pix[di] = pr
					c.pix[di+1] = pg
					c.pix[di+2] = pb
					c.pix[di+3] = pa
				}
			}
		}
	})
}

// ChromaCompensate scans even-aligned horizontal pixel pairs inside the
// given rectangle. When exactly one pixel of a pair is visible, its color
// is copied into the transparent partner at 20% of its alpha. This softens
// chroma bleed when the buffer is later downsampled to 4:2:2.
func ChromaCompensate(h Handle, x, y, w, hgt int) {
	const fade = 0.2
	canvases.with(h, func(c *Canvas) {
		x1 := maxInt(x, 0) &^ 1
		x2 := minInt(x+w, c.w) &^ 1
		y1 := maxInt(y, 0)
		y2 := minInt(y+hgt, c.h)
		for iy := y1; iy < y2; iy++ {
			for ix := x1; ix < x2; ix += 2 {
				i1 := (iy*c.w + ix) * 4
				i2 := i1 + 4
				a1, a2 := c.pix[i1+3], c.pix[i2+3]
				if (a1 == 0) == (a2 == 0) {
					continue
				}
				vi, ti := i1, i2
				if a2 > 0 {
					vi, ti = i2, i1
				}
				c.pix[ti] = c.pix[vi]
				c.pix[ti+1] = c.pix[vi+1]
				c.pix[ti+2] = c.pix[vi+2]
				c.pix[ti+3] = uint8(float64(c.pix[vi+3]) * fade)
			}
		}
	})
}

// Checkerboard fills the canvas with an opaque gray checker pattern of the
// given tile size. Intended for visual inspection in tests and demos.
func Checkerboard(h Handle, size int) {
	if size <= 0 {
		return
	}
	canvases.with(h, func(c *Canvas) {
		for y := 0; y < c.h; y++ {
			for x := 0; x < c.w; x++ {
				v := uint8(0xCC)
				if ((y/size)+(x/size))&1 == 1 {
					v = 0x99
				}
				i := (y*c.w + x) * 4
				c.pix[i] = v
				c.pix[i+1] = v
				c.pix[i+2] = v
				c.pix[i+3] = 0xFF
			}
		}
	})
}

func clearBytes(b []uint8) {
	for i := range b {
		b[i] = 0
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
