// pkg/radar/params.go
// Copyright(c) 2024-2026 ppiscope contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package radar

import (
	"ppiscope/pkg/math"
)

// Parameters collects the scalar state that drives the scope: the target's
// position and physical description, the clutter settings, the display
// toggles, and the target's commanded motion. All angles are compass
// degrees and all distances nautical miles unless noted otherwise.
//
// Out of range values are clamped by the setters rather than rejected;
// sliders and config files may hand us anything.
type Parameters struct {
	RangeScale float32 // nm represented by the outer ring

	Bearing     float32 // [0,360)
	Range       float32 // (0, RangeScale]
	AspectAngle float32 // [0,90]: 0 bow/stern-on, 90 broadside
	EPR         float32 // m^2
	Length      float32 // meters
	Width       float32 // meters
	Number      int     // target identifier shown in the data block

	ClutterIntensity float32 // [0,1]
	ClutterDensity   int

	Course float32 // degrees, clockwise from north
	Speed  float32 // knots

	ShowTrails    bool
	ShowCoastline bool
	ShowDataBlock bool

	TrailMaxLength int
}

func DefaultParameters() Parameters {
	return Parameters{
		RangeScale:       24,
		Bearing:          40,
		Range:            8,
		AspectAngle:      70,
		EPR:              1,
		Length:           30,
		Width:            7,
		Number:           1,
		ClutterIntensity: 0.45,
		ClutterDensity:   140,
		Course:           45,
		Speed:            10,
		ShowTrails:       true,
		ShowCoastline:    true,
		ShowDataBlock:    false,
		TrailMaxLength:   30,
	}
}

func (p *Parameters) SetBearing(b float32) { p.Bearing = math.NormalizeHeading(b) }

func (p *Parameters) SetRange(r float32) { p.Range = math.Clamp(r, 0.1, p.RangeScale) }

func (p *Parameters) SetAspectAngle(a float32) { p.AspectAngle = math.Clamp(a, 0, 90) }

func (p *Parameters) SetEPR(epr float32) { p.EPR = max(epr, 0.01) }

func (p *Parameters) SetLength(l float32) { p.Length = max(l, 0.1) }

func (p *Parameters) SetWidth(w float32) { p.Width = max(w, 0.1) }

func (p *Parameters) SetCourse(c float32) { p.Course = math.NormalizeHeading(c) }

func (p *Parameters) SetSpeed(s float32) { p.Speed = max(s, 0) }

func (p *Parameters) SetClutterIntensity(ci float32) {
	p.ClutterIntensity = math.Clamp(ci, 0, 1)
}

func (p *Parameters) SetRangeScale(rs float32) {
	p.RangeScale = max(rs, 1)
	p.Range = math.Clamp(p.Range, 0.1, p.RangeScale)
}
