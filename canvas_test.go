package osd

import (
	"bytes"
	"testing"
)

func newTestCanvas(t *testing.T, w, h int) (Handle, []uint8) {
	t.Helper()
	buf := make([]uint8, w*h*4)
	cv := CreateCanvas(buf, w, h)
	if cv == InvalidHandle {
		t.Fatalf("CreateCanvas(%d, %d) failed", w, h)
	}
	t.Cleanup(func() { DestroyCanvas(cv) })
	return cv, buf
}

func TestCreateCanvasValidation(t *testing.T) {
	tests := []struct {
		name   string
		buf    []uint8
		w, h   int
		wantOK bool
	}{
		{"valid", make([]uint8, 64), 4, 4, true},
		{"oversized buffer", make([]uint8, 100), 4, 4, true},
		{"short buffer", make([]uint8, 63), 4, 4, false},
		{"zero width", make([]uint8, 64), 0, 4, false},
		{"negative height", make([]uint8, 64), 4, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := CreateCanvas(tt.buf, tt.w, tt.h)
			defer DestroyCanvas(h)
			if (h != InvalidHandle) != tt.wantOK {
				t.Errorf("CreateCanvas = %d, want ok=%v", h, tt.wantOK)
			}
		})
	}
}

func TestFillOpaqueRoundTrip(t *testing.T) {
	cv, _ := newTestCanvas(t, 4, 4)
	Fill(cv, 0x102030FF)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := GetPixel(cv, x, y); got != 0x102030FF {
				t.Fatalf("GetPixel(%d, %d) = %08x, want 102030FF", x, y, got)
			}
		}
	}
}

func TestSetPixelGetPixel(t *testing.T) {
	cv, buf := newTestCanvas(t, 3, 3)
	SetPixel(cv, 1, 1, 0xFF000080)
	// Stored premultiplied: round(255*128/255) = 128.
	i := (1*3 + 1) * 4
	if buf[i] != 128 || buf[i+3] != 128 {
		t.Fatalf("stored pixel = %v", buf[i:i+4])
	}
	if got := GetPixel(cv, 1, 1); got != 0xFF000080 {
		t.Errorf("GetPixel = %08x, want FF000080", got)
	}
	// Out of bounds is a silent no-op / zero.
	SetPixel(cv, -1, 0, 0xFFFFFFFF)
	SetPixel(cv, 3, 0, 0xFFFFFFFF)
	if got := GetPixel(cv, 3, 0); got != 0 {
		t.Errorf("out-of-bounds GetPixel = %08x, want 0", got)
	}
}

func TestGetPixelTransparentIsZero(t *testing.T) {
	cv, _ := newTestCanvas(t, 2, 2)
	SetPixel(cv, 0, 0, 0xAABBCC00)
	if got := GetPixel(cv, 0, 0); got != 0 {
		t.Errorf("GetPixel of transparent pixel = %08x, want 0", got)
	}
}

func TestFillOver(t *testing.T) {
	cv, _ := newTestCanvas(t, 2, 1)
	Fill(cv, 0x000000FF)
	FillOver(cv, 0xFFFFFF80) // half-strength white over black
	got := GetPixel(cv, 0, 0)
	r := uint8(got >> 24)
	if r < 126 || r > 130 {
		t.Errorf("FillOver result channel = %d, want ~128", r)
	}
	if uint8(got) != 255 {
		t.Errorf("FillOver alpha = %d, want 255", uint8(got))
	}
	// Opaque color replaces outright.
	FillOver(cv, 0x123456FF)
	if got := GetPixel(cv, 1, 0); got != 0x123456FF {
		t.Errorf("opaque FillOver = %08x, want 123456FF", got)
	}
}

func TestScrollVertical(t *testing.T) {
	cv, _ := newTestCanvas(t, 2, 3)
	colors := []uint32{0xFF0000FF, 0x00FF00FF, 0x0000FFFF}
	for y, col := range colors {
		SetPixel(cv, 0, y, col)
		SetPixel(cv, 1, y, col)
	}
	Scroll(cv, 0, 1)
	if got := GetPixel(cv, 0, 0); got != 0 {
		t.Errorf("revealed row = %08x, want 0", got)
	}
	if got := GetPixel(cv, 0, 1); got != colors[0] {
		t.Errorf("shifted row 1 = %08x, want %08x", got, colors[0])
	}
	if got := GetPixel(cv, 1, 2); got != colors[1] {
		t.Errorf("shifted row 2 = %08x, want %08x", got, colors[1])
	}
}

func TestScrollHorizontal(t *testing.T) {
	cv, _ := newTestCanvas(t, 3, 1)
	SetPixel(cv, 0, 0, 0xFF0000FF)
	SetPixel(cv, 1, 0, 0x00FF00FF)
	SetPixel(cv, 2, 0, 0x0000FFFF)
	Scroll(cv, -1, 0)
	if got := GetPixel(cv, 0, 0); got != 0x00FF00FF {
		t.Errorf("pixel 0 = %08x, want 00FF00FF", got)
	}
	if got := GetPixel(cv, 2, 0); got != 0 {
		t.Errorf("revealed column = %08x, want 0", got)
	}
}

func TestScrollFullDimensionClears(t *testing.T) {
	cv, buf := newTestCanvas(t, 2, 2)
	Fill(cv, 0xFFFFFFFF)
	Scroll(cv, 0, 2)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d = %d after full-height scroll, want 0", i, b)
		}
	}
	Fill(cv, 0xFFFFFFFF)
	Scroll(cv, -5, 0)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d = %d after over-width scroll, want 0", i, b)
		}
	}
}

func TestGStatePushPopRestoresExactly(t *testing.T) {
	cv, _ := newTestCanvas(t, 4, 4)
	SetCTM(cv, 2, 0, 0, 2, 1, 1)
	clip := PathRect(0, 0, 2, 4)
	defer DestroyPath(clip)
	PathAddClip(cv, clip)

	var ctmBefore Matrix
	var clipBefore []uint8
	canvases.with(cv, func(c *Canvas) {
		ctmBefore = c.ctm
		clipBefore = append([]uint8(nil), c.clip.data...)
	})

	GStatePush(cv)
	SetCTM(cv, 1, 0, 0, 1, 0, 0)
	clip2 := PathRect(1, 1, 1, 1)
	defer DestroyPath(clip2)
	PathAddClip(cv, clip2)
	GStatePop(cv)

	canvases.with(cv, func(c *Canvas) {
		if c.ctm != ctmBefore {
			t.Errorf("ctm after pop = %+v, want %+v", c.ctm, ctmBefore)
		}
		if c.clip == nil || !bytes.Equal(c.clip.data, clipBefore) {
			t.Error("clip mask after pop is not byte-identical")
		}
	})
}

func TestGStatePopEmptyIsNoop(t *testing.T) {
	cv, _ := newTestCanvas(t, 2, 2)
	SetCTM(cv, 3, 0, 0, 3, 0, 0)
	GStatePop(cv)
	canvases.with(cv, func(c *Canvas) {
		if c.ctm != (Matrix{A: 3, D: 3}) {
			t.Errorf("ctm after empty pop = %+v", c.ctm)
		}
	})
}

func TestBlitRGBA(t *testing.T) {
	cv, _ := newTestCanvas(t, 4, 4)
	Fill(cv, 0x000000FF)
	// 2x2 straight-alpha source: opaque red, transparent, half green, opaque blue.
	src := []uint8{
		255, 0, 0, 255 /**/, 0, 0, 0, 0,
		0, 255, 0, 128 /**/, 0, 0, 255, 255,
	}
	BlitRGBA(cv, src, 2, 2, 1, 1, true)
	if got := GetPixel(cv, 1, 1); got != 0xFF0000FF {
		t.Errorf("blit over opaque red = %08x", got)
	}
	if got := GetPixel(cv, 2, 1); got != 0x000000FF {
		t.Errorf("blit over transparent pixel = %08x, want untouched black", got)
	}
	g := uint8(GetPixel(cv, 1, 2) >> 16)
	if g < 126 || g > 130 {
		t.Errorf("blended green channel = %d, want ~128", g)
	}

	// Copy mode overwrites, including with transparency.
	BlitRGBA(cv, src, 2, 2, 1, 1, false)
	if got := GetPixel(cv, 2, 1); got != 0 {
		t.Errorf("blit copy of transparent pixel = %08x, want 0", got)
	}
}

func TestBlitRGBAClipsToCanvas(t *testing.T) {
	cv, _ := newTestCanvas(t, 2, 2)
	src := []uint8{255, 255, 255, 255}
	BlitRGBA(cv, src, 1, 1, -1, 0, false) // off canvas, no panic
	BlitRGBA(cv, src, 1, 1, 1, 1, false)
	if got := GetPixel(cv, 1, 1); got != 0xFFFFFFFF {
		t.Errorf("in-bounds blit = %08x", got)
	}
}

func TestChromaCompensate(t *testing.T) {
	cv, buf := newTestCanvas(t, 4, 1)
	SetPixel(cv, 0, 0, 0xFF0000FF) // visible, partner transparent
	SetPixel(cv, 2, 0, 0x00FF00FF)
	SetPixel(cv, 3, 0, 0x0000FFFF) // both visible, untouched
	ChromaCompensate(cv, 0, 0, 4, 1)

	// Pixel 1 received pixel 0's color at 20% alpha.
	i := 1 * 4
	if buf[i] != 255 || buf[i+3] != 51 {
		t.Errorf("compensated pixel = %v, want r=255 a=51", buf[i:i+4])
	}
	// The fully populated pair stays as is.
	if got := GetPixel(cv, 2, 0); got != 0x00FF00FF {
		t.Errorf("populated pair changed: %08x", got)
	}
}

func TestCheckerboard(t *testing.T) {
	cv, _ := newTestCanvas(t, 4, 4)
	Checkerboard(cv, 2)
	if got := GetPixel(cv, 0, 0); got != 0xCCCCCCFF {
		t.Errorf("light tile = %08x", got)
	}
	if got := GetPixel(cv, 2, 0); got != 0x999999FF {
		t.Errorf("dark tile = %08x", got)
	}
	if got := GetPixel(cv, 2, 2); got != 0xCCCCCCFF {
		t.Errorf("diagonal tile = %08x", got)
	}
}

func TestStaleCanvasHandleIsNoop(t *testing.T) {
	buf := make([]uint8, 16)
	cv := CreateCanvas(buf, 2, 2)
	DestroyCanvas(cv)
	Fill(cv, 0xFFFFFFFF)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d = %d, stale handle wrote to buffer", i, b)
		}
	}
	if got := GetPixel(cv, 0, 0); got != 0 {
		t.Errorf("stale GetPixel = %08x", got)
	}
	if GetAntiAlias(cv) {
		t.Error("stale GetAntiAlias = true")
	}
}
