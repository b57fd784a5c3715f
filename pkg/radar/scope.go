// pkg/radar/scope.go
// Copyright(c) 2024-2026 ppiscope contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package radar

import (
	"fmt"

	"ppiscope/pkg/math"
	"ppiscope/pkg/rand"
	"ppiscope/pkg/renderer"
)

// Scene is everything needed to draw one frame of the scope: a snapshot
// of the parameters plus the session-owned coastline and trail. Drawing
// never mutates the scene, so a snapshot taken under the session lock can
// be rendered without holding it.
type Scene struct {
	Params    Parameters
	Coastline []CoastPoint
	Trail     []TargetFix // newest first
}

var (
	ringColor        = renderer.RGBFromHex(0x222222)
	ringLabelColor   = renderer.RGBFromHex(0x666666)
	tickLabelColor   = renderer.RGBFromHex(0x444444)
	coastlineColor   = renderer.RGBFromHex(0xcc9900)
	cursorColor      = renderer.RGB{R: 1}
	dataBlockOutline = renderer.RGB{R: 1, G: 1, B: 1}
	dataBlockText    = renderer.RGB{G: 1}
)

const labelTextSize = 9

// Draw renders the scene into the command buffer for a scope filling the
// given window extent. The clutter field is regenerated from r on every
// call so that the sea return decorrelates frame to frame; everything
// else is drawn from the scene's state. Draw order is fixed, back to
// front: grid, range rings, bearing ticks, clutter, coastline, trail,
// target, then the cursor and data block overlay.
func (s *Scene) Draw(cb *renderer.CommandBuffer, bounds math.Extent2D, r *rand.Rand) {
	st := MakeScopeTransforms(bounds, s.Params.RangeScale)

	cb.SetDrawBounds(bounds)
	st.LoadWindowViewingMatrices(cb)
	cb.ClearRGB(renderer.RGB{})
	cb.LineWidth(1)

	s.drawGridBackground(cb, &st, bounds)
	s.drawRangeRings(cb, &st)
	s.drawBearingMarks(cb, &st)
	s.drawClutter(cb, &st, r)
	if s.Params.ShowCoastline {
		s.drawCoastline(cb, &st)
	}
	if s.Params.ShowTrails {
		s.drawTrail(cb, &st)
	}
	s.drawTarget(cb, &st)
	if s.Params.ShowDataBlock {
		s.drawCursor(cb, &st)
		s.drawDataBlock(cb, &st, bounds)
	}

	cb.ResetState()
}

// drawGridBackground draws the concentric background rings that give the
// scope face its depth; the shade brightens slightly with radius.
func (s *Scene) drawGridBackground(cb *renderer.CommandBuffer, st *ScopeTransforms, bounds math.Extent2D) {
	ld := renderer.GetColoredLinesDrawBuilder()
	defer renderer.ReturnColoredLinesDrawBuilder(ld)

	size := int(min(bounds.Width(), bounds.Height()))
	step := max(20, size/12)
	for i := step; i < size; i += step {
		shade := min(12+(i/step)*3, 80)
		ld.AddCircle(st.Center(), float32(i)/2, 60, renderer.RGBFromUInt8(uint8(shade), uint8(shade), uint8(shade)))
	}

	ld.GenerateCommands(cb)
}

// drawRangeRings draws four evenly spaced range rings with their range in
// nm labeled just inside each ring at the top of the scope.
func (s *Scene) drawRangeRings(cb *renderer.CommandBuffer, st *ScopeTransforms) {
	ld := renderer.GetColoredLinesDrawBuilder()
	defer renderer.ReturnColoredLinesDrawBuilder(ld)
	td := renderer.GetTextDrawBuilder()
	defer renderer.ReturnTextDrawBuilder(td)

	const nRings = 4
	style := renderer.TextStyle{Size: labelTextSize, Color: ringLabelColor}
	for i := 1; i <= nRings; i++ {
		rangeNm := s.Params.RangeScale / nRings * float32(i)
		ld.AddCircle(st.Center(), rangeNm*st.PixelsPerMile(), 90, ringColor)

		p := st.WindowFromPolar(0, rangeNm)
		td.AddTextCentered(fmt.Sprintf("%d", int(rangeNm)), [2]float32{p[0] + 8, p[1] - 8}, style)
	}

	ld.GenerateCommands(cb)
	td.GenerateCommands(cb)
}

// drawBearingMarks draws a tick every 30 degrees from 92% of full range
// out to the edge, with the bearing labeled just outside the outer ring.
func (s *Scene) drawBearingMarks(cb *renderer.CommandBuffer, st *ScopeTransforms) {
	ld := renderer.GetColoredLinesDrawBuilder()
	defer renderer.ReturnColoredLinesDrawBuilder(ld)
	td := renderer.GetTextDrawBuilder()
	defer renderer.ReturnTextDrawBuilder(td)

	style := renderer.TextStyle{Size: labelTextSize, Color: tickLabelColor}
	for bearing := 0; bearing < 360; bearing += 30 {
		b := float32(bearing)
		p0 := st.WindowFromPolar(b, s.Params.RangeScale*0.92)
		p1 := st.WindowFromPolar(b, s.Params.RangeScale)
		ld.AddLine(p0, p1, ringColor)

		pt := st.WindowFromPolar(b, s.Params.RangeScale*1.03)
		td.AddTextCentered(fmt.Sprintf("%d°", bearing), pt, style)
	}

	ld.GenerateCommands(cb)
	td.GenerateCommands(cb)
}

func (s *Scene) drawClutter(cb *renderer.CommandBuffer, st *ScopeTransforms, r *rand.Rand) {
	blobs := GenerateClutter(s.Params.ClutterIntensity, s.Params.ClutterDensity, s.Params.RangeScale, r)
	if len(blobs) == 0 {
		return
	}

	trid := renderer.GetColoredTrianglesDrawBuilder()
	defer renderer.ReturnColoredTrianglesDrawBuilder(trid)

	for _, blob := range blobs {
		var color renderer.RGB
		if blob.Sparkle {
			// Spikes get a lifted color floor toward white-yellow.
			c := (200 + 55*blob.Brightness) / 255
			color = renderer.RGB{R: c, G: c}
		} else {
			color = renderer.RGB{R: blob.Brightness, G: blob.Brightness}
		}
		p := st.WindowFromPolar(blob.Bearing, blob.Range)
		trid.AddEllipse(p, blob.HalfWidth, blob.HalfHeight, 8, color)
	}

	trid.GenerateCommands(cb)
}

// drawCoastline draws the shoreline polyline with a few wider, darker
// strokes over it to fake a glow.
func (s *Scene) drawCoastline(cb *renderer.CommandBuffer, st *ScopeTransforms) {
	if len(s.Coastline) < 2 {
		return
	}

	pts := make([][2]float32, len(s.Coastline))
	for i, cp := range s.Coastline {
		pts[i] = st.WindowFromPolar(cp.Bearing, cp.Range)
	}

	ld := renderer.GetColoredLinesDrawBuilder()
	defer renderer.ReturnColoredLinesDrawBuilder(ld)

	cb.LineWidth(2)
	ld.AddLineStrip(coastlineColor, pts)
	ld.GenerateCommands(cb)

	for i := 1; i <= 3; i++ {
		shade := max(200-i*30, 40)
		color := renderer.RGBFromUInt8(uint8(shade), uint8(float32(shade)*0.85), 0x30)

		ld.Reset()
		cb.LineWidth(float32(2 + i))
		ld.AddLineStrip(color, pts)
		ld.GenerateCommands(cb)
	}
	cb.LineWidth(1)
}

// drawTrail draws the position history: connecting segments between
// consecutive fixes, then a dot per fix, both fading and shrinking with
// age. Dots are emitted oldest first so the newest draws on top.
func (s *Scene) drawTrail(cb *renderer.CommandBuffer, st *ScopeTransforms) {
	if len(s.Trail) < 2 {
		return
	}

	ld := renderer.GetColoredLinesDrawBuilder()
	defer renderer.ReturnColoredLinesDrawBuilder(ld)
	trid := renderer.GetColoredTrianglesDrawBuilder()
	defer renderer.ReturnColoredTrianglesDrawBuilder(trid)

	cb.LineWidth(2)
	for i := 0; i+1 < len(s.Trail); i++ {
		t := float32(i) / float32(max(len(s.Trail)-2, 1))
		fade := 0.3 + 0.7*(1-t)
		p0 := st.WindowFromPolar(s.Trail[i].Bearing, s.Trail[i].Range)
		p1 := st.WindowFromPolar(s.Trail[i+1].Bearing, s.Trail[i+1].Range)
		ld.AddLine(p0, p1, renderer.RGB{G: 1, B: fade})
	}

	for i := len(s.Trail) - 1; i >= 0; i-- {
		fix := s.Trail[i]
		t := float32(i) / float32(max(len(s.Trail)-1, 1))
		fade := 0.4 + 0.6*(1-t)
		size := max((3+0.5*fix.EPR)*fade, 2)
		color := renderer.RGBFromUInt8(
			uint8(100+155*(1-fade)),
			uint8(200+55*fade),
			uint8(50*(1-fade)))
		trid.AddCircle(st.WindowFromPolar(fix.Bearing, fix.Range), size, 12, color)
	}

	ld.GenerateCommands(cb)
	cb.LineWidth(1)
	trid.GenerateCommands(cb)
}

// drawTarget draws the blip: a filled core whose size grows with both
// brightness and the signature's angular width, a halo ring, and a second
// halo for large cross-sections.
func (s *Scene) drawTarget(cb *renderer.CommandBuffer, st *ScopeTransforms) {
	p := &s.Params
	brightness := Brightness(p.EPR, p.AspectAngle, p.Range, p.RangeScale)
	angular := AngularWidth(p.Length, p.Width, p.AspectAngle, p.Range)

	val := math.Clamp(brightness, 0.15, 1)
	mainColor := renderer.RGB{R: val, G: val}

	center := st.WindowFromPolar(p.Bearing, p.Range)
	coreR := max(3+brightness*4, 3) * math.Clamp(angular/1.5, 1, 1.6)

	trid := renderer.GetColoredTrianglesDrawBuilder()
	defer renderer.ReturnColoredTrianglesDrawBuilder(trid)
	trid.AddCircle(center, coreR, 24, mainColor)
	trid.GenerateCommands(cb)

	ld := renderer.GetColoredLinesDrawBuilder()
	defer renderer.ReturnColoredLinesDrawBuilder(ld)

	haloR := coreR + 2
	halo := renderer.RGB{R: min(val+50./255, 1), G: min(val+30./255, 1)}
	ld.AddCircle(center, haloR, 24, halo)

	if p.EPR > 2 {
		outer := renderer.RGB{R: min(val+20./255, 1), G: min(val+10./255, 1)}
		ld.AddCircle(center, haloR+3, 24, outer)
	}

	ld.GenerateCommands(cb)
}

func (s *Scene) drawCursor(cb *renderer.CommandBuffer, st *ScopeTransforms) {
	center := st.WindowFromPolar(s.Params.Bearing, s.Params.Range)
	const sz = 12
	p0 := [2]float32{center[0] - sz, center[1] - sz}
	p1 := [2]float32{center[0] + sz, center[1] + sz}

	ld := renderer.GetColoredLinesDrawBuilder()
	defer renderer.ReturnColoredLinesDrawBuilder(ld)

	cb.LineWidth(2)
	ld.AddLineStrip(cursorColor, [][2]float32{
		p0, {p1[0], p0[1]}, p1, {p0[0], p1[1]}, p0,
	})
	ld.GenerateCommands(cb)

	ld.Reset()
	cb.LineWidth(1)
	ld.AddLine(p0, p1, cursorColor)
	ld.AddLine([2]float32{p0[0], p1[1]}, [2]float32{p1[0], p0[1]}, cursorColor)
	ld.GenerateCommands(cb)
}

// drawDataBlock draws the target's data block in a box beside the blip,
// flipped to the left side when it would run off the surface.
func (s *Scene) drawDataBlock(cb *renderer.CommandBuffer, st *ScopeTransforms, bounds math.Extent2D) {
	p := &s.Params
	center := st.WindowFromPolar(p.Bearing, p.Range)

	const blockWidth, blockHeight = 110, 70
	x := center[0] + 15
	if x+blockWidth > bounds.P1[0] {
		x = center[0] - blockWidth - 5
	}
	y := center[1] - 35

	trid := renderer.GetColoredTrianglesDrawBuilder()
	defer renderer.ReturnColoredTrianglesDrawBuilder(trid)
	trid.AddQuad([2]float32{x, y}, [2]float32{x + blockWidth, y},
		[2]float32{x + blockWidth, y + blockHeight}, [2]float32{x, y + blockHeight},
		renderer.RGB{})
	trid.GenerateCommands(cb)

	ld := renderer.GetColoredLinesDrawBuilder()
	defer renderer.ReturnColoredLinesDrawBuilder(ld)
	ld.AddLineStrip(dataBlockOutline, [][2]float32{
		{x, y}, {x + blockWidth, y}, {x + blockWidth, y + blockHeight}, {x, y + blockHeight}, {x, y},
	})
	ld.GenerateCommands(cb)

	td := renderer.GetTextDrawBuilder()
	defer renderer.ReturnTextDrawBuilder(td)

	lines := []string{
		fmt.Sprintf("N%02d", p.Number),
		fmt.Sprintf("B%.0f°", p.Bearing),
		fmt.Sprintf("R%.1f", p.Range),
		fmt.Sprintf("C%.0f°", p.Course),
		fmt.Sprintf("V%.1f", p.Speed),
	}
	style := renderer.TextStyle{Size: 8, Color: dataBlockText}
	for i, line := range lines {
		td.AddText(line, [2]float32{x + 8, y + 8 + float32(i)*14}, style)
	}
	td.GenerateCommands(cb)
}
