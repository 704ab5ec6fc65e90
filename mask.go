package osd

// clipMask is a canvas-sized 8-bit coverage mask. A nil mask means no
// clipping; a present mask scales the coverage of every clipped drawing
// operation per pixel.
type clipMask struct {
	w, h int
	data []uint8
}

func newClipMask(w, h int) *clipMask {
	return &clipMask{w: w, h: h, data: make([]uint8, w*h)}
}

// set ORs coverage into the mask, keeping the maximum where spans overlap.
func (m *clipMask) set(y, x0 int, cov []uint8) {
	row := m.data[y*m.w:]
	for i, c := range cov {
		x := x0 + i
		if c > row[x] {
			row[x] = c
		}
	}
}

func (m *clipMask) at(x, y int) uint8 {
	return m.data[y*m.w+x]
}
