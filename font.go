package osd

import (
	"os"

	"github.com/osdkit/osd/text"
)

// Fonts are immutable once registered and shared between callers without a
// per-slot lock; the text.Source serializes its own face access.

var fonts = newRegistry[text.Source]()

// RegisterFont parses raw font bytes (TTF/OTF) and registers the font.
// Returns InvalidHandle when the data does not parse.
func RegisterFont(data []byte) Handle {
	src, err := text.Parse(data)
	if err != nil {
		Logger().Warn("font registration failed", "error", err)
		return InvalidHandle
	}
	return fonts.add(src)
}

// LoadFont reads a font file and registers it.
// Returns InvalidHandle when the file cannot be read or parsed.
func LoadFont(path string) Handle {
	data, err := os.ReadFile(path)
	if err != nil {
		Logger().Warn("font load failed", "path", path, "error", err)
		return InvalidHandle
	}
	return RegisterFont(data)
}

// UnloadFont releases a font handle. Returns whether the handle was live.
func UnloadFont(h Handle) bool {
	return fonts.remove(h)
}

// DefaultFont returns handle 1 when the first registered font is still
// live, InvalidHandle otherwise.
func DefaultFont() Handle {
	if fonts.contains(1) {
		return 1
	}
	return InvalidHandle
}

// FontCount returns the number of registered fonts.
func FontCount() int {
	return fonts.count()
}

// FontHandles returns all live font handles in ascending order.
func FontHandles() []Handle {
	return fonts.handles()
}

// FontFamily returns the family name of a registered font, or "" for stale
// handles and fonts with unreadable name tables.
func FontFamily(h Handle) string {
	src, ok := fonts.get(h)
	if !ok {
		return ""
	}
	return src.Family()
}
