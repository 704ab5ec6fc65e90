package text

// LineMetrics carries the vertical line layout values for one font size,
// baseline-up: Ascent is positive, Descent negative.
type LineMetrics struct {
	Ascent  float64
	Descent float64
	LineGap float64
}

// Height returns the recommended baseline-to-baseline distance,
// ascent - descent + line gap.
func (m LineMetrics) Height() float64 {
	return m.Ascent - m.Descent + m.LineGap
}

// LineMetrics reports the font's horizontal line metrics at the given
// pixel size. ok is false when the face cannot be instantiated.
func (s *Source) LineMetrics(size float64) (LineMetrics, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.face(size)
	if err != nil {
		return LineMetrics{}, false
	}
	fm := f.Metrics()
	ascent := float64(fm.Ascent) / 64
	descent := -float64(fm.Descent) / 64
	height := float64(fm.Height) / 64
	gap := height - (ascent - descent)
	if gap < 0 {
		gap = 0
	}
	return LineMetrics{Ascent: ascent, Descent: descent, LineGap: gap}, true
}
