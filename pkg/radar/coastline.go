// pkg/radar/coastline.go
// Copyright(c) 2024-2026 ppiscope contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package radar

import (
	"ppiscope/pkg/math"
	"ppiscope/pkg/rand"
)

// CoastPoint is one vertex of the procedural coastline in polar scope
// coordinates.
type CoastPoint struct {
	Bearing float32
	Range   float32
}

const coastlineSegments = 40

// GenerateCoastline produces a smoothed procedural shoreline: a polyline
// of coastlineSegments vertices spanning a 120 degree arc biased away
// from the target's bearing, lying in the outer part of the scope. It is
// generated once per session and again on explicit request, never per
// frame.
func GenerateCoastline(targetBearing, rangeScale float32, r *rand.Rand) []CoastPoint {
	baseDir := math.NormalizeHeading(targetBearing + 120 + r.Float32InRange(-20, 20))
	baseDistance := 0.75 * rangeScale

	points := make([]CoastPoint, coastlineSegments)
	for i := range points {
		angle := (baseDir - 60) + float32(i)/float32(coastlineSegments-1)*120
		rng := baseDistance +
			math.Sin(math.Radians(float32(i)*8+r.Float32InRange(-10, 10)))*0.15*rangeScale +
			r.Float32InRange(-0.05*rangeScale, 0.05*rangeScale)
		points[i] = CoastPoint{
			Bearing: math.NormalizeHeading(angle),
			Range:   math.Clamp(rng, 0.5*rangeScale, rangeScale-1),
		}
	}

	// Moving-average smoothing of the range component over a circular
	// window of five samples; bearings stay put.
	smooth := make([]CoastPoint, coastlineSegments)
	for i := range points {
		var acc float32
		for j := -2; j <= 2; j++ {
			acc += points[(i+j+coastlineSegments)%coastlineSegments].Range
		}
		smooth[i] = CoastPoint{Bearing: points[i].Bearing, Range: acc / 5}
	}
	return smooth
}
