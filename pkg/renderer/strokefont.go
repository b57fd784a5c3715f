// pkg/renderer/strokefont.go
// Copyright(c) 2024-2026 ppiscope contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

// The scope's text (range ring labels, bearing marks, the target data
// block) is drawn with a small stroke font: each glyph is a handful of
// line segments in a 2x2 design box with y up and the origin at the
// glyph's lower left. Drawing text as lines keeps the renderer free of
// font atlases and texturing and scales cleanly with the display.

// glyphSegments maps a rune to its line segments. Runes that aren't
// present are drawn as an 'x'-ish placeholder so that missing glyphs are
// visible rather than silent.
var glyphSegments = map[rune][][2][2]float32{
	'0': {{{0, 2}, {2, 2}}, {{2, 2}, {2, 0}}, {{2, 0}, {0, 0}}, {{0, 0}, {0, 2}}},
	'1': {{{1, 2}, {1, 0}}, {{1, 2}, {0.5, 1.5}}},
	'2': {{{0, 2}, {2, 2}}, {{2, 2}, {2, 1}}, {{2, 1}, {0, 1}}, {{0, 1}, {0, 0}}, {{0, 0}, {2, 0}}},
	'3': {{{0, 2}, {2, 2}}, {{2, 2}, {2, 0}}, {{2, 0}, {0, 0}}, {{1, 1}, {2, 1}}},
	'4': {{{0, 1}, {2, 1}}, {{2, 2}, {2, 0}}, {{0, 2}, {0, 1}}},
	'5': {{{2, 2}, {0, 2}}, {{0, 2}, {0, 1}}, {{0, 1}, {2, 1}}, {{2, 1}, {2, 0}}, {{2, 0}, {0, 0}}},
	'6': {{{0, 0}, {2, 0}}, {{2, 0}, {2, 1}}, {{2, 1}, {0, 1}}, {{0, 0}, {0, 2}}, {{0, 2}, {1, 2}}},
	'7': {{{0, 2}, {2, 2}}, {{2, 2}, {1, 0}}},
	'8': {{{0, 2}, {2, 2}}, {{2, 2}, {2, 1}}, {{2, 1}, {0, 1}}, {{0, 1}, {0, 2}}, {{0, 1}, {2, 1}}, {{2, 1}, {2, 0}}, {{2, 0}, {0, 0}}, {{0, 0}, {0, 1}}},
	'9': {{{1, 0}, {2, 0}}, {{2, 0}, {2, 2}}, {{2, 2}, {0, 2}}, {{0, 2}, {0, 1}}, {{0, 1}, {2, 1}}},

	'A': {{{0, 0}, {1, 2}}, {{1, 2}, {2, 0}}, {{0.5, 1}, {1.5, 1}}},
	'B': {{{0, 0}, {0, 2}}, {{0, 2}, {1.5, 2}}, {{1.5, 2}, {1.5, 1}}, {{0, 1}, {2, 1}}, {{2, 1}, {2, 0}}, {{2, 0}, {0, 0}}},
	'C': {{{2, 2}, {0, 2}}, {{0, 2}, {0, 0}}, {{0, 0}, {2, 0}}},
	'D': {{{0, 0}, {0, 2}}, {{0, 2}, {1.2, 2}}, {{1.2, 2}, {2, 1}}, {{2, 1}, {1.2, 0}}, {{1.2, 0}, {0, 0}}},
	'E': {{{2, 2}, {0, 2}}, {{0, 2}, {0, 0}}, {{0, 0}, {2, 0}}, {{0, 1}, {1.4, 1}}},
	'F': {{{2, 2}, {0, 2}}, {{0, 2}, {0, 0}}, {{0, 1}, {1.4, 1}}},
	'G': {{{2, 2}, {0, 2}}, {{0, 2}, {0, 0}}, {{0, 0}, {2, 0}}, {{2, 0}, {2, 1}}, {{2, 1}, {1, 1}}},
	'H': {{{0, 0}, {0, 2}}, {{2, 0}, {2, 2}}, {{0, 1}, {2, 1}}},
	'I': {{{0.5, 2}, {1.5, 2}}, {{1, 2}, {1, 0}}, {{0.5, 0}, {1.5, 0}}},
	'J': {{{2, 2}, {2, 0}}, {{2, 0}, {0, 0}}, {{0, 0}, {0, 0.7}}},
	'K': {{{0, 0}, {0, 2}}, {{2, 2}, {0, 1}}, {{0, 1}, {2, 0}}},
	'L': {{{0, 2}, {0, 0}}, {{0, 0}, {2, 0}}},
	'M': {{{0, 0}, {0, 2}}, {{0, 2}, {1, 1}}, {{1, 1}, {2, 2}}, {{2, 2}, {2, 0}}},
	'N': {{{0, 0}, {0, 2}}, {{0, 2}, {2, 0}}, {{2, 0}, {2, 2}}},
	'O': {{{0, 2}, {2, 2}}, {{2, 2}, {2, 0}}, {{2, 0}, {0, 0}}, {{0, 0}, {0, 2}}},
	'P': {{{0, 0}, {0, 2}}, {{0, 2}, {2, 2}}, {{2, 2}, {2, 1}}, {{2, 1}, {0, 1}}},
	'Q': {{{0, 2}, {2, 2}}, {{2, 2}, {2, 0}}, {{2, 0}, {0, 0}}, {{0, 0}, {0, 2}}, {{1.2, 0.8}, {2, 0}}},
	'R': {{{0, 0}, {0, 2}}, {{0, 2}, {2, 2}}, {{2, 2}, {2, 1}}, {{2, 1}, {0, 1}}, {{1, 1}, {2, 0}}},
	'S': {{{2, 2}, {0, 2}}, {{0, 2}, {0, 1}}, {{0, 1}, {2, 1}}, {{2, 1}, {2, 0}}, {{2, 0}, {0, 0}}},
	'T': {{{0, 2}, {2, 2}}, {{1, 2}, {1, 0}}},
	'U': {{{0, 2}, {0, 0}}, {{0, 0}, {2, 0}}, {{2, 0}, {2, 2}}},
	'V': {{{0, 2}, {1, 0}}, {{1, 0}, {2, 2}}},
	'W': {{{0, 2}, {0.5, 0}}, {{0.5, 0}, {1, 1}}, {{1, 1}, {1.5, 0}}, {{1.5, 0}, {2, 2}}},
	'X': {{{0, 0}, {2, 2}}, {{0, 2}, {2, 0}}},
	'Y': {{{0, 2}, {1, 1}}, {{2, 2}, {1, 1}}, {{1, 1}, {1, 0}}},
	'Z': {{{0, 2}, {2, 2}}, {{2, 2}, {0, 0}}, {{0, 0}, {2, 0}}},

	'°': {{{0.4, 1.6}, {1, 1.6}}, {{1, 1.6}, {1, 2}}, {{1, 2}, {0.4, 2}}, {{0.4, 2}, {0.4, 1.6}}},
	'.': {{{0.9, 0}, {1.1, 0}}, {{1.1, 0}, {1.1, 0.2}}, {{1.1, 0.2}, {0.9, 0.2}}, {{0.9, 0.2}, {0.9, 0}}},
	',': {{{1, 0.3}, {0.8, -0.2}}},
	':': {{{0.9, 0.3}, {1.1, 0.3}}, {{0.9, 1.3}, {1.1, 1.3}}},
	'-': {{{0.4, 1}, {1.6, 1}}},
	'+': {{{0.4, 1}, {1.6, 1}}, {{1, 0.4}, {1, 1.6}}},
	'/': {{{0, 0}, {2, 2}}},
	'%': {{{0, 0}, {2, 2}}, {{0.1, 1.7}, {0.5, 1.7}}, {{1.5, 0.3}, {1.9, 0.3}}},
	' ': {},
}

// glyphPlaceholder is drawn for runes missing from the table.
var glyphPlaceholder = [][2][2]float32{{{0, 0}, {2, 2}}, {{2, 0}, {0, 2}}}

// lookupGlyph returns the segments for ch, falling back to the
// placeholder.
func lookupGlyph(ch rune) [][2][2]float32 {
	if segs, ok := glyphSegments[ch]; ok {
		return segs
	}
	return glyphPlaceholder
}
