package osd

import (
	"math"
	"unicode"

	"github.com/osdkit/osd/text"
)

// Anchor codes for DrawText. The low two bits select vertical alignment,
// the next two horizontal; zero bits mean centered on that axis.
const (
	AnchorCenter uint32 = 0
	AnchorTop    uint32 = 0b0001
	AnchorBottom uint32 = 0b0010
	AnchorLeft   uint32 = 0b0100
	AnchorRight  uint32 = 0b1000
)

// DrawText renders a single line of text. (x, y) is the anchor point per
// the anchor code; the glyphs composite SourceOver in raw pixel space.
// Control characters are skipped. A font handle below 1 selects the
// default font. Returns false when the font or canvas handle is stale.
func DrawText(canvas, font Handle, size float64, s string, x, y float64, anchor uint32, color uint32, spacing float64) bool {
	if font < 1 {
		font = DefaultFont()
	}
	src, ok := fonts.get(font)
	if !ok {
		return false
	}
	width, height, ascent := textLayout(src, s, size, spacing)
	sx, sy := anchorPos(anchor, x, y, width, height, ascent)
	return canvases.with(canvas, func(c *Canvas) {
		c.drawText(src, s, size, sx, sy, color, spacing)
	})
}

// MeasureText returns the advance width of the text in pixels, rounded to
// the nearest integer. Stale font handles measure 0.
func MeasureText(font Handle, size float64, s string, spacing float64) int {
	src, ok := fonts.get(font)
	if !ok {
		return 0
	}
	w, _, _ := textLayout(src, s, size, spacing)
	return int(math.Round(w))
}

// TextMetrics reports the font's ascent, descent (negative below the
// baseline) and line height at the given size, rounded to integers.
// ok is false for stale handles.
func TextMetrics(font Handle, size float64) (ascent, descent, height int, ok bool) {
	src, found := fonts.get(font)
	if !found {
		return 0, 0, 0, false
	}
	m, found := src.LineMetrics(size)
	if !found {
		return 0, 0, 0, false
	}
	return int(math.Round(m.Ascent)),
		int(math.Round(m.Descent)),
		int(math.Round(m.Height())),
		true
}

// TextHeight returns the line height at the given size, or -1 for stale
// handles.
func TextHeight(font Handle, size float64) int {
	src, ok := fonts.get(font)
	if !ok {
		return -1
	}
	m, ok := src.LineMetrics(size)
	if !ok {
		return -1
	}
	return int(math.Round(m.Height()))
}

// textLayout measures one line: total advance width (inter-glyph spacing
// included between glyphs only), line height, and ascent.
func textLayout(src *text.Source, s string, size, spacing float64) (width, height, ascent float64) {
	count := 0
	for _, r := range s {
		if unicode.IsControl(r) {
			continue
		}
		width += src.Advance(r, size)
		count++
	}
	if count > 1 {
		width += spacing * float64(count-1)
	}
	if m, ok := src.LineMetrics(size); ok {
		height = m.Height()
		ascent = m.Ascent
	}
	return width, height, ascent
}

// anchorPos converts an anchor point into the pen start position (left
// edge, baseline) for the measured text box.
func anchorPos(anchor uint32, baseX, baseY, width, height, ascent float64) (float64, float64) {
	left := anchor&AnchorLeft != 0
	right := anchor&AnchorRight != 0
	x := baseX - width/2
	if left && !right {
		x = baseX
	} else if right && !left {
		x = baseX - width
	}

	top := anchor&AnchorTop != 0
	bottom := anchor&AnchorBottom != 0
	y := baseY + (ascent - height/2)
	if top && !bottom {
		y = baseY + ascent
	} else if bottom && !top {
		y = baseY + ascent - height
	}
	return x, y
}

// drawText rasterizes glyphs one by one and composites them SourceOver.
// Antialiased draws scale the color alpha by glyph coverage; aliased draws
// threshold coverage at 128.
func (c *Canvas) drawText(src *text.Source, s string, size, startX, startY float64, color uint32, spacing float64) {
	r, g, b, a := unpackColor(color)
	curX := startX
	for _, ch := range s {
		if unicode.IsControl(ch) {
			continue
		}
		m, mask, ok := src.Rasterize(ch, size)
		if !ok {
			continue
		}
		if mask != nil {
			drawX := int(curX + float64(m.XMin))
			drawY := int(startY - float64(m.Height+m.YMin))
			for row := 0; row < m.Height; row++ {
				for col := 0; col < m.Width; col++ {
					cov := mask.Pix[row*mask.Stride+col]
					if cov == 0 {
						continue
					}
					if c.antialias {
						c.setPixelOver(drawX+col, drawY+row, r, g, b, mulRound255(a, cov))
					} else if cov >= 128 {
						c.setPixelOver(drawX+col, drawY+row, r, g, b, a)
					}
				}
			}
		}
		curX += m.Advance + spacing
	}
}

// setPixelOver composites one straight-alpha color SourceOver at (x, y).
func (c *Canvas) setPixelOver(x, y int, r, g, b, a uint8) {
	if a == 0 || x < 0 || x >= c.w || y < 0 || y >= c.h {
		return
	}
	pr, pg, pb, pa := premultiply(r, g, b, a)
	inv := 255 - pa
	i := (y*c.w + x) * 4
	c.pix[i] = addSat8(pr, mulRound255(c.pix[i], inv))
	c.pix[i+1] = addSat8(pg, mulRound255(c.pix[i+1], inv))
	c.pix[i+2] = addSat8(pb, mulRound255(c.pix[i+2], inv))
	c.pix[i+3] = addSat8(pa, mulRound255(c.pix[i+3], inv))
}
