// pkg/radar/transforms.go
// Copyright(c) 2024-2026 ppiscope contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package radar

import (
	"ppiscope/pkg/math"
	"ppiscope/pkg/renderer"
)

// labelMargin is the border in window units reserved around the outer
// ring for range and bearing labels.
const labelMargin = 40

// ScopeTransforms is the single point of conversion between polar scope
// coordinates (compass bearing in degrees, range in nautical miles) and
// window coordinates on the display surface. Window coordinates have the
// origin at the top left with y increasing downward, so bearing 0 points
// toward the top of the surface.
type ScopeTransforms struct {
	bounds        math.Extent2D
	center        [2]float32
	pixelsPerMile float32
	rangeScale    float32
}

// MakeScopeTransforms returns transforms for a scope occupying the given
// window extent at the given range scale; it must be remade whenever the
// surface is resized or the range scale changes.
func MakeScopeTransforms(bounds math.Extent2D, rangeScale float32) ScopeTransforms {
	halfSize := min(bounds.Width(), bounds.Height()) / 2
	return ScopeTransforms{
		bounds:        bounds,
		center:        bounds.Center(),
		pixelsPerMile: max(1, (halfSize-labelMargin)/rangeScale),
		rangeScale:    rangeScale,
	}
}

func (st *ScopeTransforms) Center() [2]float32 { return st.center }

func (st *ScopeTransforms) PixelsPerMile() float32 { return st.pixelsPerMile }

// WindowFromPolar projects a (bearing, range) position to window
// coordinates. Bearing 0 is up and bearings increase clockwise; the
// compass bearing is converted to a math angle and the y axis flipped for
// the y-down window convention.
func (st *ScopeTransforms) WindowFromPolar(bearing, rangeNm float32) [2]float32 {
	theta := math.Radians(90 - bearing)
	return [2]float32{
		st.center[0] + rangeNm*st.pixelsPerMile*math.Cos(theta),
		st.center[1] - rangeNm*st.pixelsPerMile*math.Sin(theta),
	}
}

// PolarFromWindow is the inverse of WindowFromPolar; the returned bearing
// is normalized to [0,360). The center maps to range 0 with bearing 0.
func (st *ScopeTransforms) PolarFromWindow(p [2]float32) (bearing, rangeNm float32) {
	dx := p[0] - st.center[0]
	dy := st.center[1] - p[1]
	rangeNm = math.Hypot(dx, dy) / st.pixelsPerMile
	if rangeNm == 0 {
		return 0, 0
	}
	theta := math.Degrees(math.Atan2(dy, dx))
	bearing = math.NormalizeHeading(90 - theta)
	return
}

// LoadWindowViewingMatrices adds commands to the command buffer to set up
// the projection matrix so that subsequent draw commands can provide
// window coordinates directly. The ortho projection flips y so that window
// row 0 lands at the top of the viewport.
func (st *ScopeTransforms) LoadWindowViewingMatrices(cb *renderer.CommandBuffer) {
	proj := math.Identity3x3().Ortho(st.bounds.P0[0], st.bounds.P1[0], st.bounds.P1[1], st.bounds.P0[1])
	cb.LoadProjectionMatrix(proj)
	cb.LoadModelViewMatrix(math.Identity3x3())
}
