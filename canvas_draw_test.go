package osd

import "testing"

func TestFillRectEndToEnd(t *testing.T) {
	// Red background, green rectangle over the left half.
	cv, _ := newTestCanvas(t, 4, 4)
	Fill(cv, 0xFF0000FF)
	FillRect(cv, 0, 0, 2, 4, 0x00FF00FF, 0)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := uint32(0xFF0000FF)
			if x < 2 {
				want = 0x00FF00FF
			}
			if got := GetPixel(cv, x, y); got != want {
				t.Fatalf("pixel (%d, %d) = %08x, want %08x", x, y, got, want)
			}
		}
	}
}

func TestFillRectAntialiasedIntegerRectIsExact(t *testing.T) {
	// Integer-aligned edges must reach full coverage even with AA on.
	cv, _ := newTestCanvas(t, 4, 4)
	FillRect(cv, 1, 1, 2, 2, 0x0000FFFF, 0)
	if got := GetPixel(cv, 1, 1); got != 0x0000FFFF {
		t.Errorf("interior pixel = %08x, want 0000FFFF", got)
	}
	if got := GetPixel(cv, 2, 2); got != 0x0000FFFF {
		t.Errorf("interior pixel = %08x, want 0000FFFF", got)
	}
	if got := GetPixel(cv, 0, 0); got != 0 {
		t.Errorf("outside pixel = %08x, want 0", got)
	}
	if got := GetPixel(cv, 3, 1); got != 0 {
		t.Errorf("outside pixel = %08x, want 0", got)
	}
}

func TestFillRectFractionalCoverage(t *testing.T) {
	cv, _ := newTestCanvas(t, 4, 1)
	FillRect(cv, 0, 0, 2.5, 1, 0xFFFFFFFF, 0)
	if got := GetPixel(cv, 1, 0); got != 0xFFFFFFFF {
		t.Errorf("full pixel = %08x", got)
	}
	a := uint8(GetPixel(cv, 2, 0))
	if a < 126 || a > 130 {
		t.Errorf("half-covered pixel alpha = %d, want ~128", a)
	}
	if got := GetPixel(cv, 3, 0); got != 0 {
		t.Errorf("uncovered pixel = %08x", got)
	}
}

func TestFillRectHonorsCTM(t *testing.T) {
	cv, _ := newTestCanvas(t, 4, 4)
	SetCTM(cv, 1, 0, 0, 1, 2, 0)
	FillRect(cv, 0, 0, 2, 4, 0xFFFFFFFF, 0)
	if got := GetPixel(cv, 1, 0); got != 0 {
		t.Errorf("pixel left of translated rect = %08x, want 0", got)
	}
	if got := GetPixel(cv, 2, 0); got != 0xFFFFFFFF {
		t.Errorf("pixel inside translated rect = %08x", got)
	}
}

func TestHLineVLineIgnoreCTM(t *testing.T) {
	cv, _ := newTestCanvas(t, 4, 4)
	SetCTM(cv, 2, 0, 0, 2, 10, 10) // must not affect raw pixel ops
	HLine(cv, 0, 1, 4, 0xFF0000FF, 0)
	VLine(cv, 2, 0, 4, 0x00FF00FF, 0)
	if got := GetPixel(cv, 0, 1); got != 0xFF0000FF {
		t.Errorf("hline pixel = %08x", got)
	}
	if got := GetPixel(cv, 2, 3); got != 0x00FF00FF {
		t.Errorf("vline pixel = %08x", got)
	}
	if got := GetPixel(cv, 2, 1); got != 0x00FF00FF {
		t.Errorf("vline over hline = %08x, want vline color on top", got)
	}
	if got := GetPixel(cv, 0, 0); got != 0 {
		t.Errorf("untouched pixel = %08x", got)
	}
}

func TestRectOutline(t *testing.T) {
	cv, _ := newTestCanvas(t, 5, 5)
	Rect(cv, 0, 0, 5, 5, 0xFFFFFFFF, 0)
	if got := GetPixel(cv, 0, 2); got != 0xFFFFFFFF {
		t.Errorf("left edge = %08x", got)
	}
	if got := GetPixel(cv, 4, 2); got != 0xFFFFFFFF {
		t.Errorf("right edge = %08x", got)
	}
	if got := GetPixel(cv, 2, 0); got != 0xFFFFFFFF {
		t.Errorf("top edge = %08x", got)
	}
	if got := GetPixel(cv, 2, 4); got != 0xFFFFFFFF {
		t.Errorf("bottom edge = %08x", got)
	}
	if got := GetPixel(cv, 2, 2); got != 0 {
		t.Errorf("interior = %08x, want empty", got)
	}
	// Degenerate sizes draw nothing.
	cv2, buf := newTestCanvas(t, 2, 2)
	Rect(cv2, 0, 0, 0, 2, 0xFFFFFFFF, 0)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("degenerate rect wrote byte %d", i)
		}
	}
}

func TestLineHorizontal(t *testing.T) {
	cv, _ := newTestCanvas(t, 5, 3)
	SetAntiAlias(cv, false)
	Line(cv, 0, 1, 4, 1, 0xFFFFFFFF, 0)
	for x := 0; x <= 3; x++ {
		if got := GetPixel(cv, x, 1); got != 0xFFFFFFFF {
			t.Errorf("line pixel (%d, 1) = %08x", x, got)
		}
	}
	if got := GetPixel(cv, 2, 0); got != 0 {
		t.Errorf("pixel above line = %08x", got)
	}
}

func TestFillCircleCoversCenter(t *testing.T) {
	cv, _ := newTestCanvas(t, 9, 9)
	FillCircle(cv, 4.5, 4.5, 3, 0xFF0000FF, 0)
	if got := GetPixel(cv, 4, 4); got != 0xFF0000FF {
		t.Errorf("circle center = %08x", got)
	}
	if got := GetPixel(cv, 0, 0); got != 0 {
		t.Errorf("circle corner = %08x, want 0", got)
	}
}

func TestFillRoundedRectDegeneratesToRect(t *testing.T) {
	a, _ := newTestCanvas(t, 6, 6)
	b, _ := newTestCanvas(t, 6, 6)
	SetAntiAlias(a, false)
	SetAntiAlias(b, false)
	FillRoundedRect(a, 1, 1, 4, 4, 0.3, 0xFFFFFFFF, 0) // radius < 0.5
	FillRect(b, 1, 1, 4, 4, 0xFFFFFFFF, 0)
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			if ga, gb := GetPixel(a, x, y), GetPixel(b, x, y); ga != gb {
				t.Fatalf("pixel (%d, %d): rounded %08x vs plain %08x", x, y, ga, gb)
			}
		}
	}
}

func TestFillRoundedRectClampsRadius(t *testing.T) {
	// An oversized radius clamps to half the smaller dimension; corners
	// stay inside the rectangle.
	cv, _ := newTestCanvas(t, 8, 8)
	FillRoundedRect(cv, 0, 0, 8, 8, 100, 0xFFFFFFFF, 0)
	if got := GetPixel(cv, 4, 4); got != 0xFFFFFFFF {
		t.Errorf("center = %08x", got)
	}
	if got := GetPixel(cv, 0, 0); got != 0 {
		t.Errorf("corner = %08x, want rounded away", got)
	}
}

func TestBlendModeClear(t *testing.T) {
	cv, _ := newTestCanvas(t, 2, 2)
	Fill(cv, 0xFFFFFFFF)
	SetAntiAlias(cv, false)
	FillRect(cv, 0, 0, 1, 2, 0x00000000, 16) // clear
	if got := GetPixel(cv, 0, 0); got != 0 {
		t.Errorf("cleared pixel = %08x", got)
	}
	if got := GetPixel(cv, 1, 0); got != 0xFFFFFFFF {
		t.Errorf("untouched pixel = %08x", got)
	}
}

func TestBlendModeUnknownFallsBackToSourceOver(t *testing.T) {
	cv, _ := newTestCanvas(t, 1, 1)
	Fill(cv, 0x000000FF)
	SetAntiAlias(cv, false)
	FillRect(cv, 0, 0, 1, 1, 0xFF0000FF, 200)
	if got := GetPixel(cv, 0, 0); got != 0xFF0000FF {
		t.Errorf("unknown blend code result = %08x, want source-over red", got)
	}
}

func TestEllipseArcDrawsOnPerimeter(t *testing.T) {
	cv, _ := newTestCanvas(t, 11, 11)
	SetAntiAlias(cv, false)
	// Quarter sweep from 12 o'clock clockwise ends at 3 o'clock.
	EllipseArc(cv, 5, 5, 4, 4, 0, 90, 0xFFFFFFFF, 0)
	anyNear := func(x, y int) bool {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if GetPixel(cv, x+dx, y+dy) != 0 {
					return true
				}
			}
		}
		return false
	}
	if !anyNear(5, 1) {
		t.Error("nothing drawn near 12 o'clock")
	}
	if !anyNear(9, 5) {
		t.Error("nothing drawn near 3 o'clock")
	}
	if anyNear(1, 5) {
		t.Error("pixels drawn near 9 o'clock, outside the sweep")
	}
}
