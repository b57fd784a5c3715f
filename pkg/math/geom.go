// pkg/math/geom.go
// Copyright(c) 2024-2026 ppiscope contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

///////////////////////////////////////////////////////////////////////////
// Extent2D

// Extent2D represents a 2D bounding box with the two vertices at its
// opposite minimum and maximum corners.
type Extent2D struct {
	P0, P1 [2]float32
}

func (e Extent2D) Width() float32 {
	return e.P1[0] - e.P0[0]
}

func (e Extent2D) Height() float32 {
	return e.P1[1] - e.P0[1]
}

func (e Extent2D) Center() [2]float32 {
	return [2]float32{(e.P0[0] + e.P1[0]) / 2, (e.P0[1] + e.P1[1]) / 2}
}

func (e Extent2D) Inside(p [2]float32) bool {
	return p[0] >= e.P0[0] && p[0] <= e.P1[0] && p[1] >= e.P0[1] && p[1] <= e.P1[1]
}

///////////////////////////////////////////////////////////////////////////
// Circles

// circlePoints caches the vertices of unit circles at tessellation rates
// that have been requested before so that the per-frame clutter and blip
// drawing doesn't reevaluate them constantly.
var circlePoints map[int][][2]float32

// CirclePoints returns the vertices of a unit circle at the origin with the
// given number of segments, creating and caching the slice the first time a
// tessellation rate is seen.
func CirclePoints(nsegs int) [][2]float32 {
	if circlePoints == nil {
		circlePoints = make(map[int][][2]float32)
	}
	if _, ok := circlePoints[nsegs]; !ok {
		var pts [][2]float32
		for d := 0; d < nsegs; d++ {
			angle := Radians(float32(d) / float32(nsegs) * 360)
			pts = append(pts, [2]float32{Sin(angle), Cos(angle)})
		}
		circlePoints[nsegs] = pts
	}
	return circlePoints[nsegs]
}
