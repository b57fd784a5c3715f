// pkg/radar/kinematics.go
// Copyright(c) 2024-2026 ppiscope contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package radar

import (
	"ppiscope/pkg/math"
)

// scopeExitMargin is how close to the outer ring, in nm, the target may
// get before it is considered to have left the scope.
const scopeExitMargin = 0.5

// StepPosition advances a (bearing, range) position along the given
// compass course at the given speed in knots over dt seconds. The polar
// position is taken to a local north-up cartesian frame, translated, and
// taken back; bearings come out normalized to [0,360).
func StepPosition(bearing, rangeNm, course, speed, dt float32) (newBearing, newRange float32) {
	distance := speed * dt / 3600

	x := rangeNm * math.Sin(math.Radians(bearing))
	y := rangeNm * math.Cos(math.Radians(bearing))
	x += distance * math.Sin(math.Radians(course))
	y += distance * math.Cos(math.Radians(course))

	newRange = math.Hypot(x, y)
	newBearing = math.NormalizeHeading(math.Degrees(math.Atan2(x, y)))
	return
}

// LeftScope reports whether a target at the given range has moved off the
// usable display area for the given range scale.
func LeftScope(rangeNm, rangeScale float32) bool {
	return rangeNm >= rangeScale-scopeExitMargin
}
