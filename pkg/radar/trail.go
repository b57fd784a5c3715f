// pkg/radar/trail.go
// Copyright(c) 2024-2026 ppiscope contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package radar

import (
	"ppiscope/pkg/math"
)

// TargetFix is a snapshot of the target's position (and cross-section,
// which sizes the trail dots) at some past moment.
type TargetFix struct {
	Bearing float32
	Range   float32
	EPR     float32
}

// Trail holds the target's recent position history, newest first, bounded
// to a maximum number of fixes.
type Trail struct {
	fixes    []TargetFix
	capacity int
}

func MakeTrail(capacity int) Trail {
	return Trail{capacity: max(capacity, 0)}
}

// Add records a fix at the head of the trail. A fix that differs from the
// most recent one by no more than 1 degree of bearing and 0.1 nm of range
// is dropped so that a stationary target does not flood the history with
// near-duplicates. The oldest fix is evicted once the trail is full.
func (t *Trail) Add(fix TargetFix) {
	if len(t.fixes) > 0 {
		last := t.fixes[0]
		if math.Abs(fix.Bearing-last.Bearing) <= 1 && math.Abs(fix.Range-last.Range) <= 0.1 {
			return
		}
	}
	if t.capacity == 0 {
		return
	}
	t.fixes = append(t.fixes, TargetFix{})
	copy(t.fixes[1:], t.fixes)
	t.fixes[0] = fix
	if len(t.fixes) > t.capacity {
		t.fixes = t.fixes[:t.capacity]
	}
}

// Fixes returns the trail's contents, newest first. The returned slice
// aliases the trail's storage and is only valid until the next Add.
func (t *Trail) Fixes() []TargetFix { return t.fixes }

func (t *Trail) Len() int { return len(t.fixes) }

// SetCapacity sets the bound on the trail's length and clears it; the
// history restarts from the next fix added.
func (t *Trail) SetCapacity(capacity int) {
	t.capacity = max(capacity, 0)
	t.fixes = nil
}
