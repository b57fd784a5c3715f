// pkg/sim/session_test.go
// Copyright(c) 2024-2026 ppiscope contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"strings"
	"testing"
	"time"

	"ppiscope/pkg/math"
	"ppiscope/pkg/radar"
	"ppiscope/pkg/renderer"
)

func testSession() *Session {
	// A long tick interval so that no timer fires during a test unless
	// the test drives the step itself.
	return NewSession(radar.DefaultParameters(), time.Hour, 1, nil)
}

func TestRandomizeTargetRanges(t *testing.T) {
	s := testSession()
	defer s.Destroy()

	for i := 0; i < 200; i++ {
		s.RandomizeTarget()
		p := s.Parameters()
		if p.EPR < 0.1 || p.EPR > 10 {
			t.Errorf("epr %g out of [0.1, 10]", p.EPR)
		}
		if p.Length < 5 || p.Length > 200 {
			t.Errorf("length %g out of [5, 200]", p.Length)
		}
		if p.Width < 2 || p.Width > 50 {
			t.Errorf("width %g out of [2, 50]", p.Width)
		}
		if p.AspectAngle < 0 || p.AspectAngle > 90 {
			t.Errorf("aspect %g out of [0, 90]", p.AspectAngle)
		}
		if p.Bearing < 0 || p.Bearing >= 360 {
			t.Errorf("bearing %g out of [0, 360)", p.Bearing)
		}
		if p.Range < 2 || p.Range > p.RangeScale-2 {
			t.Errorf("range %g out of [2, %g]", p.Range, p.RangeScale-2)
		}
		if p.Number < 1 || p.Number > 99 {
			t.Errorf("target number %d out of [1, 99]", p.Number)
		}
	}
}

func TestRandomizeClutterRange(t *testing.T) {
	s := testSession()
	defer s.Destroy()

	for i := 0; i < 100; i++ {
		s.RandomizeClutter()
		if ci := s.Parameters().ClutterIntensity; ci < 0.05 || ci > 0.95 {
			t.Errorf("clutter intensity %g out of [0.05, 0.95]", ci)
		}
	}
}

func TestMovementStep(t *testing.T) {
	s := testSession()
	defer s.Destroy()

	// Due north at 3600 kn for one second moves the target exactly one
	// nm farther out.
	s.SetBearing(0)
	s.SetRange(5)
	s.SetCourse(0)
	s.SetSpeed(3600)

	s.StartMovement()
	if !s.Moving() {
		t.Fatalf("session not moving after start")
	}

	s.mu.Lock()
	s.stepLocked(1)
	s.mu.Unlock()

	p := s.Parameters()
	if math.Abs(p.Range-6) > 1e-3 {
		t.Errorf("range: got %g, want 6", p.Range)
	}
	if d := math.HeadingDifference(p.Bearing, 0); d > 1e-2 {
		t.Errorf("bearing: got %g, want 0", p.Bearing)
	}
	if !s.Moving() {
		t.Errorf("session stopped unexpectedly")
	}
}

func TestScopeExit(t *testing.T) {
	s := testSession()
	defer s.Destroy()
	sub := s.Events().Subscribe()

	s.SetBearing(0)
	s.SetRange(s.Parameters().RangeScale - 0.55)
	s.SetCourse(0)
	s.SetSpeed(3600)

	s.StartMovement()
	s.mu.Lock()
	s.stepLocked(1)
	s.mu.Unlock()

	if s.Moving() {
		t.Errorf("session still moving after scope exit")
	}

	var sawExit bool
	for _, ev := range sub.Get() {
		if ev.Type == TargetLeftScopeEvent {
			sawExit = true
		}
	}
	if !sawExit {
		t.Errorf("no scope-exit event posted")
	}

	// The exiting step must not commit the out-of-scope position.
	if p := s.Parameters(); p.Range >= p.RangeScale {
		t.Errorf("out-of-scope range %g committed", p.Range)
	}
}

func TestStaleTickNoOps(t *testing.T) {
	s := testSession()
	defer s.Destroy()

	s.SetBearing(0)
	s.SetRange(5)
	s.SetSpeed(3600)
	s.StartMovement()

	s.mu.Lock()
	staleGen := s.tickGen
	s.mu.Unlock()

	s.StopMovement()

	// A callback armed before the stop carries the old generation and
	// must not move the target.
	s.tick(staleGen)

	if p := s.Parameters(); math.Abs(p.Range-5) > 1e-6 {
		t.Errorf("stale tick moved the target to range %g", p.Range)
	}
}

func TestStartStopIdempotent(t *testing.T) {
	s := testSession()
	defer s.Destroy()
	sub := s.Events().Subscribe()

	s.StartMovement()
	s.StartMovement()
	s.StopMovement()
	s.StopMovement()

	var starts, stops int
	for _, ev := range sub.Get() {
		switch ev.Type {
		case MovementStartedEvent:
			starts++
		case MovementStoppedEvent:
			stops++
		}
	}
	if starts != 1 || stops != 1 {
		t.Errorf("got %d start and %d stop events, want 1 and 1", starts, stops)
	}
}

func TestMovementTimer(t *testing.T) {
	s := NewSession(radar.DefaultParameters(), 10*time.Millisecond, 1, nil)
	defer s.Destroy()

	s.SetBearing(0)
	s.SetRange(5)
	s.SetCourse(0)
	s.SetSpeed(3600)
	s.StartMovement()

	// At 3600 kn with a 10 ms tick the target gains 0.01 nm per tick;
	// wait for a few ticks to land.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.Parameters().Range > 5.02 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if r := s.Parameters().Range; r <= 5.02 {
		t.Fatalf("target did not advance: range %g", r)
	}

	s.StopMovement()
	r0 := s.Parameters().Range
	time.Sleep(50 * time.Millisecond)
	if r1 := s.Parameters().Range; r1 != r0 {
		t.Errorf("target moved after stop: %g to %g", r0, r1)
	}
}

func TestTrailFollowsSetters(t *testing.T) {
	s := testSession()
	defer s.Destroy()

	n0 := len(s.snapshotTrail())

	// Below the deadband: no new fix.
	p := s.Parameters()
	s.SetBearing(p.Bearing + 0.5)
	if n := len(s.snapshotTrail()); n != n0 {
		t.Errorf("deadband bearing change grew the trail to %d", n)
	}

	s.SetBearing(p.Bearing + 10)
	if n := len(s.snapshotTrail()); n != n0+1 {
		t.Errorf("bearing change did not grow the trail: %d", n)
	}

	s.SetTrailMaxLength(5)
	if n := len(s.snapshotTrail()); n != 0 {
		t.Errorf("trail not cleared on capacity change: %d", n)
	}
}

// snapshotTrail returns a copy of the trail for test inspection.
func (s *Session) snapshotTrail() []radar.TargetFix {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]radar.TargetFix(nil), s.trail.Fixes()...)
}

func TestRenderSnapshot(t *testing.T) {
	s := testSession()
	defer s.Destroy()

	s.OnSurfaceResized(640, 640)

	cb := renderer.GetCommandBuffer()
	defer renderer.ReturnCommandBuffer(cb)
	s.Render(cb)
	if len(cb.Buf) == 0 {
		t.Fatalf("render generated no commands")
	}

	// Two renders of the same scene differ only in the stochastic
	// clutter; both must succeed.
	cb.Reset()
	s.Render(cb)
	if len(cb.Buf) == 0 {
		t.Fatalf("second render generated no commands")
	}
}

func TestTargetInfo(t *testing.T) {
	s := testSession()
	defer s.Destroy()

	info := s.TargetInfo()
	if info == "" {
		t.Fatalf("empty target info")
	}
	for _, want := range []string{"Range", "Bearing", "EPR", "Aspect"} {
		if !strings.Contains(info, want) {
			t.Errorf("target info %q missing %q", info, want)
		}
	}
}
