// cmd/ppiscope/tty.go
// Copyright(c) 2024-2026 ppiscope contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	gomath "math"

	"github.com/gdamore/tcell/v2"

	"ppiscope/pkg/log"
	"ppiscope/pkg/math"
	"ppiscope/pkg/renderer"
)

// TTYRenderer executes command buffers by rasterizing into a framebuffer
// with one pixel per terminal cell and presenting it through tcell as
// background-colored cells. It implements the same client-state model as
// a fixed-function GL backend: bound vertex and color arrays, a current
// color, matrices, scissor, and viewport.
type TTYRenderer struct {
	screen tcell.Screen
	lg     *log.Logger

	width, height int
	fb            []renderer.RGB

	proj      [16]float32
	modelView [16]float32

	color         [4]float32
	blend         bool
	lineWidth     float32
	scissor       [4]int // x, y, w, h in window coordinates, valid if scissorOn
	scissorOn     bool
	viewport      [4]int
	vertexArray   arrayPointer
	colorArray    arrayPointer
	vertexArrayOn bool
	colorArrayOn  bool
}

// arrayPointer mirrors the arguments of the vertex-array binding
// commands: a byte offset into the command buffer plus layout.
type arrayPointer struct {
	offset, nComps, stride int
}

func NewTTYRenderer(screen tcell.Screen, lg *log.Logger) *TTYRenderer {
	w, h := screen.Size()
	r := &TTYRenderer{screen: screen, lg: lg}
	r.Resize(w, h)
	lg.Infof("TTY renderer initialized: %dx%d cells", w, h)
	return r
}

func (t *TTYRenderer) Resize(w, h int) {
	t.width, t.height = w, h
	t.fb = make([]renderer.RGB, w*h)
	t.viewport = [4]int{0, 0, w, h}
}

func (t *TTYRenderer) Dispose() {}

// Present copies the framebuffer to the terminal's content buffer; the
// caller shows the screen once any overlay text has been added.
func (t *TTYRenderer) Present() {
	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			c := t.fb[y*t.width+x]
			st := tcell.StyleDefault.Background(tcell.NewRGBColor(
				int32(math.Clamp(c.R, 0, 1)*255),
				int32(math.Clamp(c.G, 0, 1)*255),
				int32(math.Clamp(c.B, 0, 1)*255)))
			t.screen.SetContent(x, y, ' ', nil, st)
		}
	}
}

func identityMatrix() [16]float32 {
	var m [16]float32
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

// matMul4 composes two column-major 4x4 matrices.
func matMul4(a, b [16]float32) [16]float32 {
	var r [16]float32
	for c := 0; c < 4; c++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[c*4+k]
			}
			r[c*4+row] = sum
		}
	}
	return r
}

// windowFromVertex runs a vertex through the current matrices and
// viewport, returning framebuffer coordinates.
func (t *TTYRenderer) windowFromVertex(x, y float32) (int, int) {
	m := matMul4(t.proj, t.modelView)
	cx := m[0]*x + m[4]*y + m[12]
	cy := m[1]*x + m[5]*y + m[13]
	cw := m[3]*x + m[7]*y + m[15]
	if cw != 0 {
		cx /= cw
		cy /= cw
	}
	px := float32(t.viewport[0]) + (cx+1)/2*float32(t.viewport[2])
	py := float32(t.viewport[1]) + (1-cy)/2*float32(t.viewport[3])
	return int(px), int(py)
}

func (t *TTYRenderer) plot(x, y int, c renderer.RGB, alpha float32) {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return
	}
	if t.scissorOn {
		sx, sy, sw, sh := t.scissor[0], t.scissor[1], t.scissor[2], t.scissor[3]
		if x < sx || x >= sx+sw || y < sy || y >= sy+sh {
			return
		}
	}
	idx := y*t.width + x
	if t.blend && alpha < 1 {
		t.fb[idx] = renderer.LerpRGB(alpha, t.fb[idx], c)
	} else {
		t.fb[idx] = c
	}
}

// stamp draws a disc covering the current line width at a point.
func (t *TTYRenderer) stamp(x, y int, c renderer.RGB, alpha float32) {
	r := int(t.lineWidth / 2)
	if r == 0 {
		t.plot(x, y, c, alpha)
		return
	}
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				t.plot(x+dx, y+dy, c, alpha)
			}
		}
	}
}

// drawLine rasterizes with the usual integer Bresenham walk.
func (t *TTYRenderer) drawLine(x0, y0, x1, y1 int, c0, c1 renderer.RGB, alpha float32) {
	dx, dy := math.Abs(x1-x0), -math.Abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	steps := max(dx, -dy)
	n := 0
	for {
		frac := float32(0)
		if steps > 0 {
			frac = float32(n) / float32(steps)
		}
		t.stamp(x0, y0, renderer.LerpRGB(frac, c0, c1), alpha)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
		n++
	}
}

// drawTriangle fills with an edge-function walk over the bounding box,
// interpolating vertex colors barycentrically.
func (t *TTYRenderer) drawTriangle(x [3]int, y [3]int, c [3]renderer.RGB, alpha float32) {
	minx := max(min(x[0], min(x[1], x[2])), 0)
	maxx := min(max(x[0], max(x[1], x[2])), t.width-1)
	miny := max(min(y[0], min(y[1], y[2])), 0)
	maxy := min(max(y[0], max(y[1], y[2])), t.height-1)

	area := (x[1]-x[0])*(y[2]-y[0]) - (y[1]-y[0])*(x[2]-x[0])
	if area == 0 {
		// Degenerate; at cell resolution small blobs collapse easily,
		// so draw the edge rather than dropping the primitive.
		t.drawLine(minx, miny, maxx, maxy, c[0], c[2], alpha)
		return
	}

	for py := miny; py <= maxy; py++ {
		for px := minx; px <= maxx; px++ {
			w0 := (x[2]-x[1])*(py-y[1]) - (y[2]-y[1])*(px-x[1])
			w1 := (x[0]-x[2])*(py-y[2]) - (y[0]-y[2])*(px-x[2])
			w2 := (x[1]-x[0])*(py-y[0]) - (y[1]-y[0])*(px-x[0])
			if area < 0 {
				w0, w1, w2 = -w0, -w1, -w2
			}
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			a := math.Abs(float32(area))
			col := renderer.RGB{
				R: (float32(w0)*c[0].R + float32(w1)*c[1].R + float32(w2)*c[2].R) / a,
				G: (float32(w0)*c[0].G + float32(w1)*c[1].G + float32(w2)*c[2].G) / a,
				B: (float32(w0)*c[0].B + float32(w1)*c[1].B + float32(w2)*c[2].B) / a,
			}
			t.plot(px, py, col, alpha)
		}
	}
}

// vertex fetches the i'th element of the bound vertex array.
func (t *TTYRenderer) vertex(buf []uint32, i int) (float32, float32) {
	base := t.vertexArray.offset/4 + i*t.vertexArray.stride/4
	x := gomath.Float32frombits(buf[base])
	y := gomath.Float32frombits(buf[base+1])
	return x, y
}

// vertexColor fetches the i'th element of the bound color array, falling
// back to the current color when no array is bound.
func (t *TTYRenderer) vertexColor(buf []uint32, i int) renderer.RGB {
	if !t.colorArrayOn {
		return renderer.RGB{R: t.color[0], G: t.color[1], B: t.color[2]}
	}
	base := t.colorArray.offset/4 + i*t.colorArray.stride/4
	return renderer.RGB{
		R: gomath.Float32frombits(buf[base]),
		G: gomath.Float32frombits(buf[base+1]),
		B: gomath.Float32frombits(buf[base+2]),
	}
}

func (t *TTYRenderer) RenderCommandBuffer(cb *renderer.CommandBuffer) renderer.RendererStats {
	var stats renderer.RendererStats
	stats.AccountBuffer(4 * len(cb.Buf))

	i := 0
	ui32 := func() uint32 {
		v := cb.Buf[i]
		i++
		return v
	}
	int32arg := func() int {
		return int(int32(ui32()))
	}
	float := func() float32 {
		return gomath.Float32frombits(ui32())
	}

	for i < len(cb.Buf) {
		cmd := cb.Buf[i]
		i++
		switch cmd {
		case renderer.RendererLoadProjectionMatrix:
			copy(t.proj[:], floatSlice(cb.Buf[i:i+16]))
			i += 16

		case renderer.RendererLoadModelViewMatrix:
			copy(t.modelView[:], floatSlice(cb.Buf[i:i+16]))
			i += 16

		case renderer.RendererClearRGBA:
			r, g, b := float(), float(), float()
			_ = float() // alpha
			clear := renderer.RGB{R: r, G: g, B: b}
			for j := range t.fb {
				t.fb[j] = clear
			}

		case renderer.RendererScissor:
			t.scissor = [4]int{int32arg(), int32arg(), int32arg(), int32arg()}
			t.scissorOn = true

		case renderer.RendererViewport:
			t.viewport = [4]int{int32arg(), int32arg(), int32arg(), int32arg()}

		case renderer.RendererBlend:
			t.blend = true

		case renderer.RendererDisableBlend:
			t.blend = false

		case renderer.RendererSetRGBA:
			t.colorArrayOn = false
			t.color = [4]float32{float(), float(), float(), float()}

		case renderer.RendererFloatBuffer, renderer.RendererIntBuffer:
			// Nothing to do for the moment but skip ahead
			i += int(ui32())

		case renderer.RendererVertexArray:
			t.vertexArrayOn = true
			t.vertexArray = arrayPointer{offset: int32arg(), nComps: int32arg(), stride: int32arg()}

		case renderer.RendererDisableVertexArray:
			t.vertexArrayOn = false

		case renderer.RendererRGB32Array:
			t.colorArrayOn = true
			t.colorArray = arrayPointer{offset: int32arg(), nComps: int32arg(), stride: int32arg()}

		case renderer.RendererDisableColorArray:
			t.colorArrayOn = false

		case renderer.RendererLineWidth:
			t.lineWidth = float()

		case renderer.RendererDrawLines:
			offset := int32arg()
			count := int32arg()
			if t.vertexArrayOn {
				for j := 0; j+1 < count; j += 2 {
					i0 := int(int32(cb.Buf[offset/4+j]))
					i1 := int(int32(cb.Buf[offset/4+j+1]))
					x0, y0 := t.windowFromVertex(t.vertex(cb.Buf, i0))
					x1, y1 := t.windowFromVertex(t.vertex(cb.Buf, i1))
					t.drawLine(x0, y0, x1, y1,
						t.vertexColor(cb.Buf, i0), t.vertexColor(cb.Buf, i1), t.color[3])
				}
			}
			stats.AccountDraw(count/2, 0)

		case renderer.RendererDrawTriangles:
			offset := int32arg()
			count := int32arg()
			if t.vertexArrayOn {
				for j := 0; j+2 < count; j += 3 {
					var xs, ys [3]int
					var cols [3]renderer.RGB
					for k := 0; k < 3; k++ {
						idx := int(int32(cb.Buf[offset/4+j+k]))
						xs[k], ys[k] = t.windowFromVertex(t.vertex(cb.Buf, idx))
						cols[k] = t.vertexColor(cb.Buf, idx)
					}
					t.drawTriangle(xs, ys, cols, t.color[3])
				}
			}
			stats.AccountDraw(0, count/3)

		case renderer.RendererResetState:
			t.scissorOn = false
			t.blend = false
			t.vertexArrayOn = false
			t.colorArrayOn = false
			t.lineWidth = 1

		default:
			t.lg.Errorf("unhandled command in command buffer: %d", cmd)
		}
	}

	return stats
}

// floatSlice decodes a run of encoded float words.
func floatSlice(buf []uint32) []float32 {
	f := make([]float32, len(buf))
	for i, v := range buf {
		f[i] = gomath.Float32frombits(v)
	}
	return f
}
