// pkg/sim/session.go
// Copyright(c) 2024-2026 ppiscope contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"sync"
	"time"

	"github.com/brunoga/deep"

	"ppiscope/pkg/log"
	"ppiscope/pkg/math"
	"ppiscope/pkg/radar"
	"ppiscope/pkg/rand"
	"ppiscope/pkg/renderer"
)

type movementState int

const (
	// Stopped is both the initial state and where every anomaly lands;
	// no tick is ever scheduled from Stopped.
	Stopped movementState = iota
	Moving
)

// Session owns all of the mutable scope state: the radar parameters, the
// coastline, the position history, and the movement state machine. All
// methods are safe to call concurrently; rendering works from a deep
// snapshot so a tick can never land mid-frame.
type Session struct {
	mu sync.Mutex

	params    radar.Parameters
	coastline []radar.CoastPoint
	trail     radar.Trail
	bounds    math.Extent2D

	state        movementState
	activeCourse float32
	activeSpeed  float32
	tickInterval time.Duration
	tickTimer    *time.Timer
	// tickGen invalidates callbacks from timers that were already in
	// flight when movement stopped; a stale tick sees a mismatched
	// generation and no-ops.
	tickGen int

	rand     rand.Rand // parameter randomization and the coastline
	drawRand rand.Rand // per-frame clutter; only touched by Render

	events *EventStream
	lg     *log.Logger
}

// NewSession returns a session with the given initial parameters, a
// generated coastline, and the target's starting position already in the
// history trail.
func NewSession(params radar.Parameters, tickInterval time.Duration, seed int64, lg *log.Logger) *Session {
	s := &Session{
		params:       params,
		trail:        radar.MakeTrail(params.TrailMaxLength),
		bounds:       math.Extent2D{P1: [2]float32{800, 800}},
		tickInterval: tickInterval,
		rand:         rand.NewSeeded(seed),
		drawRand:     rand.NewSeeded(seed + 1),
		events:       NewEventStream(lg),
		lg:           lg,
	}
	s.coastline = radar.GenerateCoastline(s.params.Bearing, s.params.RangeScale, &s.rand)
	s.trail.Add(radar.TargetFix{Bearing: s.params.Bearing, Range: s.params.Range, EPR: s.params.EPR})
	return s
}

func (s *Session) Events() *EventStream { return s.events }

// Parameters returns a copy of the current parameter state.
func (s *Session) Parameters() radar.Parameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

func (s *Session) Moving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == Moving
}

///////////////////////////////////////////////////////////////////////////
// Setters

// SetBearing moves the target to a new bearing; position changes feed the
// history trail, subject to its deadband.
func (s *Session) SetBearing(b float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.SetBearing(b)
	s.addFix()
}

func (s *Session) SetRange(r float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.SetRange(r)
	s.addFix()
}

func (s *Session) SetAspectAngle(a float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.SetAspectAngle(a)
}

func (s *Session) SetEPR(epr float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.SetEPR(epr)
}

func (s *Session) SetLength(l float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.SetLength(l)
}

func (s *Session) SetWidth(w float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.SetWidth(w)
}

func (s *Session) SetClutterIntensity(ci float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.SetClutterIntensity(ci)
}

func (s *Session) SetCourse(c float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.SetCourse(c)
}

func (s *Session) SetSpeed(sp float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.SetSpeed(sp)
}

// SetTrailMaxLength rebounds the history trail; the existing history is
// discarded along with the old bound.
func (s *Session) SetTrailMaxLength(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.TrailMaxLength = max(n, 0)
	s.trail.SetCapacity(s.params.TrailMaxLength)
}

func (s *Session) SetShowTrails(show bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.ShowTrails = show
}

func (s *Session) SetShowCoastline(show bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.ShowCoastline = show
}

func (s *Session) SetShowDataBlock(show bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.ShowDataBlock = show
}

// addFix records the current position in the trail; callers hold s.mu.
func (s *Session) addFix() {
	s.trail.Add(radar.TargetFix{Bearing: s.params.Bearing, Range: s.params.Range, EPR: s.params.EPR})
}

///////////////////////////////////////////////////////////////////////////
// Commands

// RandomizeTarget draws a fresh target uniformly from the legal parameter
// ranges and gives it a new identifier.
func (s *Session) RandomizeTarget() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.params.Bearing = s.rand.Float32InRange(0, 360)
	s.params.Range = s.rand.Float32InRange(2, max(s.params.RangeScale-2, 3))
	s.params.EPR = s.rand.Float32InRange(0.1, 10)
	s.params.Length = s.rand.Float32InRange(5, 200)
	s.params.Width = s.rand.Float32InRange(2, 50)
	s.params.AspectAngle = s.rand.Float32InRange(0, 90)
	s.params.Number = s.rand.IntInRange(1, 99)
	s.addFix()

	s.lg.Info("randomized target", "params", s.params)
	s.events.Post(Event{Type: StatusMessageEvent, Message: "new random target"})
}

func (s *Session) RandomizeClutter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.ClutterIntensity = s.rand.Float32InRange(0.05, 0.95)
}

func (s *Session) RegenerateCoastline() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coastline = radar.GenerateCoastline(s.params.Bearing, s.params.RangeScale, &s.rand)
}

// OnSurfaceResized updates the extent of the display surface that Render
// draws into.
func (s *Session) OnSurfaceResized(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bounds = math.Extent2D{P1: [2]float32{float32(width), float32(height)}}
}

// Render bakes the current scene into the command buffer. It snapshots
// the session state under the lock and draws from the copy, so ticks and
// setters proceed unhindered while the frame is generated. Render itself
// must be called from a single goroutine.
func (s *Session) Render(cb *renderer.CommandBuffer) {
	s.mu.Lock()
	scene := radar.Scene{
		Params:    s.params,
		Coastline: deep.MustCopy(s.coastline),
		Trail:     deep.MustCopy(s.trail.Fixes()),
	}
	bounds := s.bounds
	s.mu.Unlock()

	scene.Draw(cb, bounds, &s.drawRand)
}

// TargetInfo returns a multi-line summary of the target's current state
// for the front-end's status area.
func (s *Session) TargetInfo() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("Range:   %.2f NM\nBearing: %.1f°\nEPR:     %.2f m²\nAspect:  %.1f°",
		s.params.Range, s.params.Bearing, s.params.EPR, s.params.AspectAngle)
}

///////////////////////////////////////////////////////////////////////////
// Movement state machine

// StartMovement transitions Stopped to Moving, capturing the current
// course and speed as the active heading, and arms the first tick.
// Starting while already Moving is a no-op.
func (s *Session) StartMovement() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Moving {
		return
	}
	s.state = Moving
	s.activeCourse = s.params.Course
	s.activeSpeed = s.params.Speed

	s.lg.Info("movement started", "course", s.activeCourse, "speed", s.activeSpeed)
	s.events.Post(Event{Type: MovementStartedEvent, Message: "movement started"})

	s.scheduleTick()
}

// StopMovement transitions to Stopped and cancels any pending tick;
// stopping an already stopped session is a no-op.
func (s *Session) StopMovement() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Stopped {
		return
	}
	s.stopLocked()

	s.lg.Info("movement stopped")
	s.events.Post(Event{Type: MovementStoppedEvent, Message: "movement stopped"})
}

// stopLocked forces the state machine to Stopped and invalidates
// outstanding timers; callers hold s.mu.
func (s *Session) stopLocked() {
	s.state = Stopped
	s.tickGen++
	if s.tickTimer != nil {
		s.tickTimer.Stop()
		s.tickTimer = nil
	}
}

// scheduleTick arms the next movement tick; callers hold s.mu and have
// checked that the state is Moving.
func (s *Session) scheduleTick() {
	gen := s.tickGen
	s.tickTimer = time.AfterFunc(s.tickInterval, func() { s.tick(gen) })
}

func (s *Session) tick(gen int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A tick that was in flight when the session stopped or restarted
	// carries a stale generation and must not advance anything.
	if s.state != Moving || gen != s.tickGen {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			s.lg.Error("tick fault", "recovered", r, "callstack", log.Callstack())
			s.stopLocked()
			s.events.Post(Event{Type: StatusMessageEvent,
				Message: fmt.Sprintf("movement error: %v", r)})
		}
	}()

	s.stepLocked(float32(s.tickInterval.Seconds()))

	if s.state == Moving {
		s.scheduleTick()
	}
}

// stepLocked advances the target one time step of dt seconds along the
// active course and handles scope exit; callers hold s.mu.
func (s *Session) stepLocked(dt float32) {
	newBearing, newRange := radar.StepPosition(s.params.Bearing, s.params.Range,
		s.activeCourse, s.activeSpeed, dt)

	if radar.LeftScope(newRange, s.params.RangeScale) {
		s.stopLocked()
		s.lg.Info("target left scope", "range", newRange)
		s.events.Post(Event{Type: TargetLeftScopeEvent, Message: "target left scope"})
		return
	}

	s.params.Bearing = newBearing
	s.params.Range = newRange
	s.addFix()
}

// Destroy shuts the session down: movement stops and the event stream's
// monitor goroutine exits.
func (s *Session) Destroy() {
	s.mu.Lock()
	s.stopLocked()
	s.mu.Unlock()
	s.events.Destroy()
}
