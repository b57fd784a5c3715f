// pkg/renderer/renderer.go
// Copyright(c) 2024-2026 ppiscope contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"fmt"
	"log/slog"
)

// Renderer abstracts the device that the radar scene is drawn to. The scope
// code describes a frame as a CommandBuffer and never touches a display API
// directly, so backends (the terminal renderer in cmd/ppiscope, or a GL
// renderer) only need to implement this interface.
type Renderer interface {
	// RenderCommandBuffer executes all of the commands encoded in the
	// provided command buffer, returning statistics about what was
	// rendered.
	RenderCommandBuffer(*CommandBuffer) RendererStats

	// Dispose releases resources allocated by the renderer.
	Dispose()
}

// RendererStats encapsulates assorted statistics from rendering.
type RendererStats struct {
	nBuffers, bufferBytes int
	nDrawCalls            int
	nLines, nTriangles    int
}

func (rs *RendererStats) String() string {
	return fmt.Sprintf("%d buffers (%.2f MB), %d draw calls: %d lines, %d tris",
		rs.nBuffers, float32(rs.bufferBytes)/(1024*1024), rs.nDrawCalls, rs.nLines, rs.nTriangles)
}

// AccountBuffer records execution of a command buffer of the given size
// in bytes.
func (rs *RendererStats) AccountBuffer(bytes int) {
	rs.nBuffers++
	rs.bufferBytes += bytes
}

// AccountDraw records one draw call and the primitives it drew.
func (rs *RendererStats) AccountDraw(lines, triangles int) {
	rs.nDrawCalls++
	rs.nLines += lines
	rs.nTriangles += triangles
}

func (rs *RendererStats) Merge(s RendererStats) {
	rs.nBuffers += s.nBuffers
	rs.bufferBytes += s.bufferBytes
	rs.nDrawCalls += s.nDrawCalls
	rs.nLines += s.nLines
	rs.nTriangles += s.nTriangles
}

func (rs RendererStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("buffers", rs.nBuffers),
		slog.Int("buffer_memory", rs.bufferBytes),
		slog.Int("draw_calls", rs.nDrawCalls),
		slog.Int("lines", rs.nLines),
		slog.Int("tris", rs.nTriangles),
	)
}
