package text

import (
	"image"
	"image/draw"

	"golang.org/x/image/math/fixed"
)

// GlyphMetrics locates a rasterized glyph relative to the pen position on
// the baseline, y growing upward:
//
//	draw x = pen x + XMin
//	bitmap bottom sits YMin above (negative: below) the baseline
type GlyphMetrics struct {
	XMin    int
	YMin    int
	Width   int
	Height  int
	Advance float64
}

// Rasterize renders one glyph at the given pixel size. The returned mask is
// a Width x Height coverage bitmap with a zero-origin bounds rectangle; it
// is nil (with valid metrics) for blank glyphs such as spaces. ok is false
// when the font has no usable glyph for r.
func (s *Source) Rasterize(r rune, size float64) (GlyphMetrics, *image.Alpha, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.face(size)
	if err != nil {
		return GlyphMetrics{}, nil, false
	}
	bounds, advance, ok := f.GlyphBounds(r)
	if !ok {
		return GlyphMetrics{}, nil, false
	}
	minX := int(bounds.Min.X >> 6)
	minY := int(bounds.Min.Y >> 6)
	maxX := int((bounds.Max.X + 63) >> 6)
	maxY := int((bounds.Max.Y + 63) >> 6)

	m := GlyphMetrics{
		XMin:    minX,
		YMin:    -maxY,
		Width:   maxX - minX,
		Height:  maxY - minY,
		Advance: float64(advance) / 64,
	}
	if m.Width <= 0 || m.Height <= 0 {
		m.Width, m.Height = 0, 0
		return m, nil, true
	}

	// Place the dot so the glyph box lands at the mask origin.
	dot := fixed.Point26_6{X: fixed.I(-minX), Y: fixed.I(-minY)}
	dr, srcMask, maskp, _, ok := f.Glyph(dot, r)
	if !ok {
		return GlyphMetrics{}, nil, false
	}
	dst := image.NewAlpha(image.Rect(0, 0, m.Width, m.Height))
	draw.Draw(dst, dr, srcMask, maskp, draw.Src)
	return m, dst, true
}

// Advance returns the horizontal advance of r at the given size, or 0 when
// the glyph is missing.
func (s *Source) Advance(r rune, size float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.face(size)
	if err != nil {
		return 0
	}
	adv, ok := f.GlyphAdvance(r)
	if !ok {
		return 0
	}
	return float64(adv) / 64
}
