// pkg/math/math_test.go
// Copyright(c) 2024-2026 ppiscope contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"testing"
)

func TestNormalizeHeading(t *testing.T) {
	cases := []struct {
		h, expect float32
	}{
		{0, 0},
		{90, 90},
		{360, 0},
		{361, 1},
		{720, 0},
		{-10, 350},
		{-370, 350},
		{539.5, 179.5},
	}
	for _, c := range cases {
		if got := NormalizeHeading(c.h); Abs(got-c.expect) > 1e-3 {
			t.Errorf("NormalizeHeading(%g) = %g, expected %g", c.h, got, c.expect)
		}
	}
}

func TestHeadingDifference(t *testing.T) {
	cases := []struct {
		a, b, expect float32
	}{
		{0, 0, 0},
		{10, 350, 20},
		{350, 10, 20},
		{90, 270, 180},
		{45, 50, 5},
	}
	for _, c := range cases {
		if got := HeadingDifference(c.a, c.b); Abs(got-c.expect) > 1e-3 {
			t.Errorf("HeadingDifference(%g, %g) = %g, expected %g", c.a, c.b, got, c.expect)
		}
	}
}

func TestShortCompass(t *testing.T) {
	cases := []struct {
		h      float32
		expect string
	}{
		{0, "N"},
		{44, "NE"},
		{90, "E"},
		{180, "S"},
		{359, "N"},
		{225, "SW"},
	}
	for _, c := range cases {
		if got := ShortCompass(c.h); got != c.expect {
			t.Errorf("ShortCompass(%g) = %q, expected %q", c.h, got, c.expect)
		}
	}
}

func TestMatrix3Ortho(t *testing.T) {
	// Map a 100x50 window to NDC, then check the corners and center.
	m := Identity3x3().Ortho(0, 100, 0, 50)

	check := func(p, expect [2]float32) {
		got := m.TransformPoint(p)
		if Abs(got[0]-expect[0]) > 1e-5 || Abs(got[1]-expect[1]) > 1e-5 {
			t.Errorf("Ortho transform of %v = %v, expected %v", p, got, expect)
		}
	}
	check([2]float32{0, 0}, [2]float32{-1, -1})
	check([2]float32{100, 50}, [2]float32{1, 1})
	check([2]float32{50, 25}, [2]float32{0, 0})
}

func TestMatrix3ComposedTransform(t *testing.T) {
	// Scale then translate should match manual evaluation.
	m := Identity3x3().Translate(10, 20).Scale(2, 3)
	got := m.TransformPoint([2]float32{1, 1})
	expect := [2]float32{12, 23}
	if Abs(got[0]-expect[0]) > 1e-5 || Abs(got[1]-expect[1]) > 1e-5 {
		t.Errorf("composed transform = %v, expected %v", got, expect)
	}
}

func TestCirclePoints(t *testing.T) {
	pts := CirclePoints(64)
	if len(pts) != 64 {
		t.Fatalf("expected 64 circle points, got %d", len(pts))
	}
	for i, p := range pts {
		if r := Length2f(p); Abs(r-1) > 1e-5 {
			t.Errorf("circle point %d has radius %g, expected 1", i, r)
		}
	}
	// First point is north (up), per the compass convention.
	if Abs(pts[0][0]) > 1e-6 || Abs(pts[0][1]-1) > 1e-6 {
		t.Errorf("first circle point %v isn't at (0,1)", pts[0])
	}
}
