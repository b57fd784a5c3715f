// pkg/radar/clutter.go
// Copyright(c) 2024-2026 ppiscope contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package radar

import (
	"ppiscope/pkg/math"
	"ppiscope/pkg/rand"
)

// ClutterBlob is one spurious sea return to be drawn on the scope: a
// small ellipse at a polar position. Sizes are in window units. Sparkle
// blobs are the occasional strong instantaneous spikes and are drawn
// brighter than regular cluster returns.
type ClutterBlob struct {
	Bearing    float32
	Range      float32
	HalfWidth  float32
	HalfHeight float32
	Brightness float32
	Sparkle    bool
}

// GenerateClutter returns a fresh field of sea clutter blobs. It is
// called every frame so that the clutter boils the way decorrelating sea
// return does on a real scope; none of its output is retained. Clutter
// comes in clusters of returns scattered around a common center plus a
// thin layer of bright isolated spikes.
func GenerateClutter(intensity float32, density int, rangeScale float32, r *rand.Rand) []ClutterBlob {
	if intensity <= 0.01 {
		return nil
	}

	nClusters := max(4, int(float32(density)*intensity/40))
	spread := max(0.25*rangeScale, 0.5)

	var blobs []ClutterBlob
	for range nClusters {
		clusterBearing := r.Float32InRange(0, 360)
		clusterRange := r.Float32InRange(1, 0.9*rangeScale)
		for range r.IntInRange(8, 30) {
			b := clusterBearing + r.Float32InRange(-8, 8)
			rng := max(clusterRange+r.Float32InRange(-spread*0.1, spread*0.1), 0.2)
			size := r.Float32InRange(0.8, 4) * (1 + 2*intensity)
			blobs = append(blobs, ClutterBlob{
				Bearing:    math.NormalizeHeading(b),
				Range:      rng,
				HalfWidth:  max(math.Floor(size), 1),
				HalfHeight: max(math.Floor(size*r.Float32InRange(0.6, 1.4)), 1),
				Brightness: clutterBrightness(r.Float32InRange(0.05, 0.6)*intensity, rng, rangeScale),
			})
		}
	}

	for range int(20 * intensity) {
		rng := r.Float32InRange(0.2, 0.9*rangeScale)
		size := r.Float32InRange(1, 3.5)
		blobs = append(blobs, ClutterBlob{
			Bearing:    r.Float32InRange(0, 360),
			Range:      rng,
			HalfWidth:  size,
			HalfHeight: size,
			Brightness: clutterBrightness(r.Float32InRange(0.4, 0.9)*intensity, rng, rangeScale),
			Sparkle:    true,
		})
	}

	return blobs
}

// clutterBrightness attenuates a base return intensity with range; near
// field sea return is stronger, like the target signature's range
// falloff but with a higher floor and a 0.8 ceiling.
func clutterBrightness(base, rangeNm, rangeScale float32) float32 {
	b := base * 0.8 * max(1-(rangeNm/rangeScale)*0.45, 0.2)
	return math.Clamp(b, 0.05, 0.8)
}
