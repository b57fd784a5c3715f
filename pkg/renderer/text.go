// pkg/renderer/text.go
// Copyright(c) 2024-2026 ppiscope contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"sync"
)

// TextStyle specifies the style of text drawn with a TextDrawBuilder.
type TextStyle struct {
	// Size gives the height of a glyph cell in window coordinate units.
	Size  float32
	Color RGB
}

// glyphAdvance returns the horizontal pen advance for the style; glyphs
// occupy a 2-unit design box with half a unit of tracking.
func glyphAdvance(scale float32) float32 {
	return 2.5 * scale
}

// TextDrawBuilder accumulates text to be drawn, expanding each glyph to
// stroke segments at GenerateCommands time via an underlying
// ColoredLinesDrawBuilder.
type TextDrawBuilder struct {
	lines ColoredLinesDrawBuilder
}

func (t *TextDrawBuilder) Reset() {
	t.lines.Reset()
}

// AddText draws the given text with the top-left corner of its first
// glyph cell at p; window coordinates have y increasing downward, so the
// glyph outlines (which are designed y-up) are flipped as they are
// emitted. The returned point is the pen position after the last glyph,
// suitable for appending further text.
func (t *TextDrawBuilder) AddText(s string, p [2]float32, style TextStyle) [2]float32 {
	scale := style.Size / 2
	x, y := p[0], p[1]
	for _, ch := range s {
		if ch == '\n' {
			x = p[0]
			y += 1.4 * style.Size
			continue
		}
		for _, seg := range lookupGlyph(ch) {
			p0 := [2]float32{x + seg[0][0]*scale, y + (2-seg[0][1])*scale}
			p1 := [2]float32{x + seg[1][0]*scale, y + (2-seg[1][1])*scale}
			t.lines.AddLine(p0, p1, style.Color)
		}
		x += glyphAdvance(scale)
	}
	return [2]float32{x, y}
}

// BoundText returns the width and height in window coordinates that the
// text will occupy when drawn with the given style.
func (t *TextDrawBuilder) BoundText(s string, style TextStyle) (w, h float32) {
	scale := style.Size / 2
	var lineWidth float32
	h = style.Size
	for _, ch := range s {
		if ch == '\n' {
			h += 1.4 * style.Size
			lineWidth = 0
			continue
		}
		lineWidth += glyphAdvance(scale)
		if lineWidth > w {
			w = lineWidth
		}
	}
	return
}

// AddTextCentered draws the text horizontally and vertically centered at
// p.
func (t *TextDrawBuilder) AddTextCentered(s string, p [2]float32, style TextStyle) {
	w, h := t.BoundText(s, style)
	t.AddText(s, [2]float32{p[0] - w/2, p[1] - h/2}, style)
}

func (t *TextDrawBuilder) GenerateCommands(cb *CommandBuffer) {
	t.lines.GenerateCommands(cb)
}

var textDrawBuilderPool = sync.Pool{New: func() any { return &TextDrawBuilder{} }}

func GetTextDrawBuilder() *TextDrawBuilder {
	return textDrawBuilderPool.Get().(*TextDrawBuilder)
}

func ReturnTextDrawBuilder(td *TextDrawBuilder) {
	td.Reset()
	textDrawBuilderPool.Put(td)
}
