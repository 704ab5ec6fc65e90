// Package text parses fonts and rasterizes glyphs into coverage masks.
//
// A Source wraps one parsed font. Glyph rasterization goes through
// golang.org/x/image/font/opentype faces, cached per size; font metadata
// (the family name) is read with go-text/typesetting. Metrics follow the
// baseline-up convention: ascent is positive, descent negative.
package text

import (
	"bytes"
	"fmt"
	"sync"

	gotext "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Source is a parsed font plus a per-size face cache.
//
// The underlying sfnt.Font and the cached faces are not safe for concurrent
// use, so every rasterization and measurement call serializes on the
// source mutex. Sources themselves are immutable after Parse.
type Source struct {
	font   *sfnt.Font
	family string

	mu    sync.Mutex
	faces map[float64]font.Face
}

// Parse builds a Source from raw font bytes (TTF/OTF).
func Parse(data []byte) (*Source, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	s := &Source{
		font:  f,
		faces: make(map[float64]font.Face),
	}
	// Family name is cosmetic; a font that rasterizes but carries broken
	// name tables is still usable.
	if face, err := gotext.ParseTTF(bytes.NewReader(data)); err == nil {
		s.family = face.Describe().Family
	}
	return s, nil
}

// Family returns the font family name, or "" when the name table could not
// be read.
func (s *Source) Family() string {
	return s.family
}

// face returns the cached face for size, creating it on demand.
// Callers must hold s.mu.
func (s *Source) face(size float64) (font.Face, error) {
	if f, ok := s.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("text: face size %g: %w", size, err)
	}
	s.faces[size] = f
	return f, nil
}
