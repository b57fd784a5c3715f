// pkg/radar/radar_test.go
// Copyright(c) 2024-2026 ppiscope contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package radar

import (
	"testing"

	"ppiscope/pkg/math"
	"ppiscope/pkg/rand"
	"ppiscope/pkg/renderer"
)

func testTransforms() ScopeTransforms {
	return MakeScopeTransforms(math.Extent2D{P0: [2]float32{0, 0}, P1: [2]float32{800, 800}}, 24)
}

func TestProjectionRoundTrip(t *testing.T) {
	st := testTransforms()
	for b := float32(0); b < 360; b += 7.3 {
		for _, r := range []float32{0.5, 5, 12, 23.9} {
			p := st.WindowFromPolar(b, r)
			gotB, gotR := st.PolarFromWindow(p)
			if d := math.HeadingDifference(gotB, b); d > 1e-2 {
				t.Errorf("bearing %g range %g: round trip gave bearing %g", b, r, gotB)
			}
			if d := math.Abs(gotR - r); d > 1e-3 {
				t.Errorf("bearing %g range %g: round trip gave range %g", b, r, gotR)
			}
		}
	}
}

func TestProjectionConvention(t *testing.T) {
	st := testTransforms()
	c := st.Center()

	// Bearing 0 is up (smaller y), 90 is right, 180 down, 270 left.
	up := st.WindowFromPolar(0, 10)
	if up[1] >= c[1] || math.Abs(up[0]-c[0]) > 1e-3 {
		t.Errorf("bearing 0 projected to %v from center %v", up, c)
	}
	right := st.WindowFromPolar(90, 10)
	if right[0] <= c[0] || math.Abs(right[1]-c[1]) > 1e-3 {
		t.Errorf("bearing 90 projected to %v from center %v", right, c)
	}
}

func TestPixelsPerMile(t *testing.T) {
	st := testTransforms()
	if want := (400 - 40) / float32(24); st.PixelsPerMile() != want {
		t.Errorf("pixels per mile: got %g, want %g", st.PixelsPerMile(), want)
	}

	// A tiny surface still gives a positive scale.
	tiny := MakeScopeTransforms(math.Extent2D{P1: [2]float32{10, 10}}, 24)
	if tiny.PixelsPerMile() != 1 {
		t.Errorf("tiny surface pixels per mile: got %g, want 1", tiny.PixelsPerMile())
	}
}

func TestBrightnessBounds(t *testing.T) {
	for _, epr := range []float32{0, 0.01, 1, 10, 1e6} {
		for _, aspect := range []float32{0, 30, 90} {
			for _, r := range []float32{0.1, 12, 24} {
				b := Brightness(epr, aspect, r, 24)
				if b < 0.05 || b > 1 {
					t.Errorf("brightness(%g, %g, %g) = %g out of [0.05, 1]", epr, aspect, r, b)
				}
			}
		}
	}
}

func TestBrightnessMonotonicInEPR(t *testing.T) {
	prev := float32(0)
	for _, epr := range []float32{0.1, 0.5, 1, 2, 5, 10, 100} {
		b := Brightness(epr, 70, 8, 24)
		if b < prev {
			t.Errorf("brightness decreased to %g at epr %g", b, epr)
		}
		prev = b
	}
}

func TestAngularWidthBounds(t *testing.T) {
	cases := []struct{ l, w, a, r float32 }{
		{0, 0, 0, 0},
		{1e9, 1e9, 90, 0.001},
		{30, 7, 70, 8},
		{5, 2, 0, 24},
		{200, 50, 90, 0.5},
	}
	for _, c := range cases {
		deg := AngularWidth(c.l, c.w, c.a, c.r)
		if deg < 0.18 || deg > 3.5 {
			t.Errorf("angularWidth(%g, %g, %g, %g) = %g out of [0.18, 3.5]", c.l, c.w, c.a, c.r, deg)
		}
	}

	// Broadside at close range subtends more than bow-on far away.
	near := AngularWidth(200, 10, 90, 1)
	far := AngularWidth(20, 10, 0, 20)
	if near <= far {
		t.Errorf("expected %g > %g", near, far)
	}
}

func TestEPRFromDimensions(t *testing.T) {
	metal := EPRFromDimensions(30, 7, 5, "metal", 90)
	wood := EPRFromDimensions(30, 7, 5, "wood", 90)
	if metal <= wood {
		t.Errorf("metal %g should exceed wood %g", metal, wood)
	}
	if epr := EPRFromDimensions(0, 0, 0, "unobtainium", 0); epr < 0.001 {
		t.Errorf("degenerate dimensions gave %g, want >= 0.001", epr)
	}

	broadside := EPRFromDimensions(30, 7, 5, "steel", 90)
	bowOn := EPRFromDimensions(30, 7, 5, "steel", 0)
	if broadside <= bowOn {
		t.Errorf("broadside %g should exceed bow-on %g", broadside, bowOn)
	}
}

func TestClutterField(t *testing.T) {
	r := rand.NewSeeded(1)

	if blobs := GenerateClutter(0, 140, 24, &r); blobs != nil {
		t.Errorf("zero intensity gave %d blobs", len(blobs))
	}
	if blobs := GenerateClutter(0.005, 140, 24, &r); blobs != nil {
		t.Errorf("near-zero intensity gave %d blobs", len(blobs))
	}

	blobs := GenerateClutter(0.45, 140, 24, &r)
	if len(blobs) == 0 {
		t.Fatalf("no clutter generated")
	}
	var sparkles int
	for _, b := range blobs {
		if b.Brightness < 0.05 || b.Brightness > 0.8 {
			t.Errorf("blob brightness %g out of [0.05, 0.8]", b.Brightness)
		}
		if b.Range < 0.2 {
			t.Errorf("blob range %g below floor", b.Range)
		}
		if b.Bearing < 0 || b.Bearing >= 360 {
			t.Errorf("blob bearing %g out of [0, 360)", b.Bearing)
		}
		if b.Sparkle {
			sparkles++
		}
	}
	if want := int(20 * 0.45); sparkles != want {
		t.Errorf("got %d sparkle blobs, want %d", sparkles, want)
	}
}

func TestClutterReproducible(t *testing.T) {
	r0, r1 := rand.NewSeeded(42), rand.NewSeeded(42)
	a := GenerateClutter(0.6, 140, 24, &r0)
	b := GenerateClutter(0.6, 140, 24, &r1)
	if len(a) != len(b) {
		t.Fatalf("field sizes differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("blob %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestCoastline(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		r := rand.NewSeeded(seed)
		const rangeScale = 24
		pts := GenerateCoastline(40, rangeScale, &r)
		if len(pts) != 40 {
			t.Fatalf("seed %d: got %d vertices, want 40", seed, len(pts))
		}
		for i, p := range pts {
			if p.Range < 0.5*rangeScale || p.Range > rangeScale-1 {
				t.Errorf("seed %d vertex %d: range %g out of [%g, %g]", seed, i, p.Range, 0.5*float32(rangeScale), float32(rangeScale)-1)
			}
			if p.Bearing < 0 || p.Bearing >= 360 {
				t.Errorf("seed %d vertex %d: bearing %g out of [0, 360)", seed, i, p.Bearing)
			}
		}
	}
}

func TestCoastlineSmoothness(t *testing.T) {
	r := rand.NewSeeded(7)
	pts := GenerateCoastline(40, 24, &r)
	for i := 1; i < len(pts); i++ {
		if d := math.Abs(pts[i].Range - pts[i-1].Range); d > 3 {
			t.Errorf("adjacent smoothed ranges differ by %g at vertex %d", d, i)
		}
	}
}

func TestTrailDeadband(t *testing.T) {
	tr := MakeTrail(30)
	tr.Add(TargetFix{Bearing: 40, Range: 8, EPR: 1})
	if tr.Len() != 1 {
		t.Fatalf("first fix not added")
	}

	// Inside the deadband: dropped.
	tr.Add(TargetFix{Bearing: 40.5, Range: 8.05, EPR: 1})
	if tr.Len() != 1 {
		t.Errorf("deadband fix was added")
	}

	// Outside on bearing alone.
	tr.Add(TargetFix{Bearing: 42, Range: 8, EPR: 1})
	if tr.Len() != 2 {
		t.Errorf("bearing change not added")
	}
	if tr.Fixes()[0].Bearing != 42 {
		t.Errorf("newest fix not first: %+v", tr.Fixes())
	}

	// Outside on range alone.
	tr.Add(TargetFix{Bearing: 42, Range: 8.2, EPR: 1})
	if tr.Len() != 3 {
		t.Errorf("range change not added")
	}
}

func TestTrailBounded(t *testing.T) {
	tr := MakeTrail(5)
	for i := 0; i < 20; i++ {
		tr.Add(TargetFix{Bearing: float32(i * 5), Range: 8})
	}
	if tr.Len() != 5 {
		t.Errorf("trail length %d exceeds capacity 5", tr.Len())
	}
	if tr.Fixes()[0].Bearing != 95 {
		t.Errorf("newest fix is %+v", tr.Fixes()[0])
	}

	tr.SetCapacity(10)
	if tr.Len() != 0 {
		t.Errorf("capacity change did not clear the trail")
	}

	zero := MakeTrail(0)
	zero.Add(TargetFix{Bearing: 1, Range: 1})
	if zero.Len() != 0 {
		t.Errorf("zero-capacity trail accepted a fix")
	}
}

func TestStepPositionDueNorth(t *testing.T) {
	// 3600 kn due north for one second is exactly one nm.
	b, r := StepPosition(0, 5, 0, 3600, 1)
	if math.Abs(r-6) > 1e-3 {
		t.Errorf("range: got %g, want 6", r)
	}
	if d := math.HeadingDifference(b, 0); d > 1e-2 {
		t.Errorf("bearing: got %g, want 0", b)
	}
}

func TestStepPositionCrossingCenter(t *testing.T) {
	// Due south past the center flips the bearing.
	b, r := StepPosition(0, 1, 180, 7200, 1)
	if math.Abs(r-1) > 1e-3 {
		t.Errorf("range: got %g, want 1", r)
	}
	if d := math.HeadingDifference(b, 180); d > 1e-2 {
		t.Errorf("bearing: got %g, want 180", b)
	}
}

func TestLeftScope(t *testing.T) {
	if LeftScope(23.4, 24) {
		t.Errorf("target inside the margin reported as exited")
	}
	if !LeftScope(23.6, 24) {
		t.Errorf("target beyond the margin not reported as exited")
	}
}

func TestSceneDraw(t *testing.T) {
	r := rand.NewSeeded(3)
	params := DefaultParameters()
	params.ShowDataBlock = true

	scene := Scene{
		Params:    params,
		Coastline: GenerateCoastline(params.Bearing, params.RangeScale, &r),
		Trail: []TargetFix{
			{Bearing: 40, Range: 8, EPR: 1},
			{Bearing: 38, Range: 7.8, EPR: 1},
			{Bearing: 36, Range: 7.6, EPR: 1},
		},
	}

	cb := renderer.GetCommandBuffer()
	defer renderer.ReturnCommandBuffer(cb)
	scene.Draw(cb, math.Extent2D{P1: [2]float32{800, 800}}, &r)
	if len(cb.Buf) == 0 {
		t.Fatalf("no commands generated")
	}

	// Toggles off and an empty trail must still render the base scope.
	cb.Reset()
	scene.Params.ShowCoastline = false
	scene.Params.ShowTrails = false
	scene.Params.ShowDataBlock = false
	scene.Trail = nil
	scene.Draw(cb, math.Extent2D{P1: [2]float32{200, 200}}, &r)
	if len(cb.Buf) == 0 {
		t.Fatalf("no commands generated for minimal scene")
	}
}

func TestParameterClamping(t *testing.T) {
	p := DefaultParameters()

	p.SetBearing(400)
	if p.Bearing != 40 {
		t.Errorf("bearing: got %g, want 40", p.Bearing)
	}
	p.SetRange(100)
	if p.Range != p.RangeScale {
		t.Errorf("range: got %g, want %g", p.Range, p.RangeScale)
	}
	p.SetRange(-5)
	if p.Range != 0.1 {
		t.Errorf("range floor: got %g, want 0.1", p.Range)
	}
	p.SetAspectAngle(120)
	if p.AspectAngle != 90 {
		t.Errorf("aspect: got %g, want 90", p.AspectAngle)
	}
	p.SetEPR(0)
	if p.EPR != 0.01 {
		t.Errorf("epr floor: got %g, want 0.01", p.EPR)
	}
	p.SetClutterIntensity(1.5)
	if p.ClutterIntensity != 1 {
		t.Errorf("clutter intensity: got %g, want 1", p.ClutterIntensity)
	}
	p.SetRangeScale(12)
	if p.Range > 12 {
		t.Errorf("range not reclamped after range scale change: %g", p.Range)
	}
}
