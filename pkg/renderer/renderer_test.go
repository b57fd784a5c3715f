// pkg/renderer/renderer_test.go
// Copyright(c) 2024-2026 ppiscope contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	gomath "math"
	"testing"
)

func TestCommandBufferFloat2Buffer(t *testing.T) {
	cb := GetCommandBuffer()
	defer ReturnCommandBuffer(cb)

	pts := [][2]float32{{1, 2}, {3, 4}, {5, 6}}
	offset := cb.Float2Buffer(pts)

	if offset%4 != 0 {
		t.Errorf("buffer offset %d is not 4-byte aligned", offset)
	}

	// The command and size precede the values.
	if cb.Buf[0] != RendererFloatBuffer {
		t.Errorf("expected RendererFloatBuffer command, got %d", cb.Buf[0])
	}
	if n := cb.Buf[1]; n != 6 {
		t.Errorf("expected size 6, got %d", n)
	}

	idx := offset / 4
	want := []float32{1, 2, 3, 4, 5, 6}
	for i, w := range want {
		if got := gomath.Float32frombits(cb.Buf[idx+i]); got != w {
			t.Errorf("value %d: got %g, want %g", i, got, w)
		}
	}
}

func TestCommandBufferIntBuffer(t *testing.T) {
	cb := GetCommandBuffer()
	defer ReturnCommandBuffer(cb)

	indices := []int32{0, 1, 1, 2, 2, 0}
	offset := cb.IntBuffer(indices)

	idx := offset / 4
	for i, w := range indices {
		if got := int32(cb.Buf[idx+i]); got != w {
			t.Errorf("index %d: got %d, want %d", i, got, w)
		}
	}
}

func TestCommandBufferGrow(t *testing.T) {
	cb := GetCommandBuffer()
	defer ReturnCommandBuffer(cb)

	// Store enough data to force multiple reallocations and make sure
	// offsets stay valid.
	var offsets []int
	var bufs [][][2]float32
	for i := 0; i < 8; i++ {
		var pts [][2]float32
		for j := 0; j < 256; j++ {
			pts = append(pts, [2]float32{float32(i), float32(j)})
		}
		bufs = append(bufs, pts)
		offsets = append(offsets, cb.Float2Buffer(pts))
	}

	for i, offset := range offsets {
		idx := offset / 4
		for j, p := range bufs[i] {
			if got := gomath.Float32frombits(cb.Buf[idx+2*j]); got != p[0] {
				t.Errorf("buffer %d point %d x: got %g, want %g", i, j, got, p[0])
			}
			if got := gomath.Float32frombits(cb.Buf[idx+2*j+1]); got != p[1] {
				t.Errorf("buffer %d point %d y: got %g, want %g", i, j, got, p[1])
			}
		}
	}
}

func TestLinesDrawBuilder(t *testing.T) {
	ld := GetLinesDrawBuilder()
	defer ReturnLinesDrawBuilder(ld)

	ld.AddLine([2]float32{0, 0}, [2]float32{1, 1})
	ld.AddLineStrip([][2]float32{{0, 0}, {1, 0}, {1, 1}})
	ld.AddLineLoop([][2]float32{{0, 0}, {2, 0}, {2, 2}})

	// 1 + 2 + 3 lines in total.
	if n := len(ld.indices); n != 2*6 {
		t.Errorf("expected 12 indices, got %d", n)
	}

	cb := GetCommandBuffer()
	defer ReturnCommandBuffer(cb)
	ld.GenerateCommands(cb)
	if len(cb.Buf) == 0 {
		t.Errorf("no commands generated")
	}

	ld.Reset()
	cb.Reset()
	ld.GenerateCommands(cb)
	if len(cb.Buf) != 0 {
		t.Errorf("empty builder generated %d words of commands", len(cb.Buf))
	}
}

func TestTrianglesDrawBuilderEllipse(t *testing.T) {
	td := GetTrianglesDrawBuilder()
	defer ReturnTrianglesDrawBuilder(td)

	td.AddEllipse([2]float32{10, 10}, 4, 2, 16)

	// Center plus rim vertices, one fan triangle per segment.
	if n := len(td.p); n != 17 {
		t.Errorf("expected 17 vertices, got %d", n)
	}
	if n := len(td.indices); n != 3*16 {
		t.Errorf("expected 48 indices, got %d", n)
	}
	for _, p := range td.p[1:] {
		dx, dy := (p[0]-10)/4, (p[1]-10)/2
		if d := dx*dx + dy*dy; d < 0.99 || d > 1.01 {
			t.Errorf("rim vertex %v not on the ellipse (d=%g)", p, d)
		}
	}
}

func TestRGBFromHex(t *testing.T) {
	c := RGBFromHex(0xff8040)
	if c.R != 1 {
		t.Errorf("red: got %g, want 1", c.R)
	}
	if d := c.G - 128./255.; d < -1e-6 || d > 1e-6 {
		t.Errorf("green: got %g, want %g", c.G, 128./255.)
	}
	if d := c.B - 64./255.; d < -1e-6 || d > 1e-6 {
		t.Errorf("blue: got %g, want %g", c.B, 64./255.)
	}
}

func TestLerpRGB(t *testing.T) {
	a := RGB{R: 0, G: 0, B: 0}
	b := RGB{R: 1, G: 0.5, B: 0.25}
	c := LerpRGB(0.5, a, b)
	if c.R != 0.5 || c.G != 0.25 || c.B != 0.125 {
		t.Errorf("lerp gave %+v", c)
	}
}

func TestTextBound(t *testing.T) {
	td := GetTextDrawBuilder()
	defer ReturnTextDrawBuilder(td)

	style := TextStyle{Size: 10, Color: RGB{R: 1, G: 1, B: 1}}
	w, h := td.BoundText("R24", style)
	if w != 3*12.5 {
		t.Errorf("width: got %g, want %g", w, 3*12.5)
	}
	if h != 10 {
		t.Errorf("height: got %g, want 10", h)
	}

	_, h = td.BoundText("A\nB", style)
	if h != 24 {
		t.Errorf("two-line height: got %g, want 24", h)
	}
}

func TestTextGeneratesSegments(t *testing.T) {
	td := GetTextDrawBuilder()
	defer ReturnTextDrawBuilder(td)

	style := TextStyle{Size: 8, Color: RGB{R: 0, G: 1, B: 0}}
	end := td.AddText("N42", [2]float32{100, 50}, style)
	if end[0] <= 100 {
		t.Errorf("pen did not advance: %v", end)
	}
	if end[1] != 50 {
		t.Errorf("pen moved vertically: %v", end)
	}

	cb := GetCommandBuffer()
	defer ReturnCommandBuffer(cb)
	td.GenerateCommands(cb)
	if len(cb.Buf) == 0 {
		t.Errorf("no commands generated for text")
	}
}

func TestRendererStatsMerge(t *testing.T) {
	a := RendererStats{nBuffers: 1, bufferBytes: 100, nDrawCalls: 2, nLines: 10, nTriangles: 5}
	b := RendererStats{nBuffers: 2, bufferBytes: 50, nDrawCalls: 1, nLines: 3, nTriangles: 7}
	a.Merge(b)
	if a.nBuffers != 3 || a.bufferBytes != 150 || a.nDrawCalls != 3 || a.nLines != 13 || a.nTriangles != 12 {
		t.Errorf("merge gave %+v", a)
	}
}
