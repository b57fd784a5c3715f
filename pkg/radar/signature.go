// pkg/radar/signature.go
// Copyright(c) 2024-2026 ppiscope contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package radar

import (
	"strings"

	"ppiscope/pkg/math"
)

const metersPerNm = 1852

// AngularWidth returns the angular extent in degrees that a target with
// the given dimensions presents at the given aspect angle and range. The
// projected silhouette is length dominated at broadside aspect and width
// dominated bow/stern-on; the subtended angle is then compressed to the
// effective azimuth resolution of the display and clamped so that extreme
// range or size combinations still give a usable mark.
func AngularWidth(length, width, aspectDeg, rangeNm float32) float32 {
	l, w := max(length, 0.1), max(width, 0.1)
	a := math.Radians(aspectDeg)
	projected := l*math.Abs(math.Sin(a)) + w*math.Abs(math.Cos(a))
	distance := max(rangeNm*metersPerNm, 1)
	deg := math.Degrees(projected/distance) * 0.3
	return math.Clamp(deg, 0.18, 3.5)
}

// Brightness returns the display brightness in [0.05, 1] for a target
// with the given radar cross-section at the given aspect and range. The
// return grows with the log of the cross-section, peaks at broadside
// aspect, and falls off toward the edge of the scope.
func Brightness(epr, aspectDeg, rangeNm, rangeScale float32) float32 {
	eprFactor := math.Log10(max(epr, 0.01) + 1)
	aspectFactor := math.Clamp(math.Abs(math.Sin(math.Radians(aspectDeg))), 0, 1)
	rangeFactor := max(1-(rangeNm/rangeScale)*0.6, 0.12)
	return math.Clamp(0.12+eprFactor*aspectFactor*rangeFactor*1.5, 0.05, 1)
}

// materialReflectivity gives the relative radar reflectivity of common
// hull materials; unknown materials are treated as poor reflectors.
var materialReflectivity = map[string]float32{
	"metal":      1,
	"steel":      0.95,
	"iron":       0.92,
	"aluminum":   0.9,
	"plastic":    0.1,
	"fiberglass": 0.08,
	"composite":  0.07,
	"wood":       0.05,
	"rubber":     0.03,
}

// EPRFromDimensions estimates an effective radar cross-section in m^2
// from a target's physical dimensions, hull material, and aspect angle.
// The estimate scales with the 2/3 power of the volume, as for a compact
// reflector, and retains a floor so that downstream math never sees a
// zero cross-section.
func EPRFromDimensions(length, width, height float32, material string, aspectDeg float32) float32 {
	refl, ok := materialReflectivity[strings.ToLower(material)]
	if !ok {
		refl = 0.1
	}
	base := math.Pow(length*width*max(height, 0.1), 2./3.)
	aspect := math.Abs(math.Sin(math.Radians(aspectDeg)))
	return max(base*refl*(0.3+0.7*aspect)*0.7, 0.001)
}
