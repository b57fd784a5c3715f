// pkg/rand/rand_test.go
// Copyright(c) 2024-2026 ppiscope contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package rand

import (
	"testing"
)

func TestSeededReproducibility(t *testing.T) {
	a := NewSeeded(12345)
	b := NewSeeded(12345)
	for i := 0; i < 100; i++ {
		if av, bv := a.Uint32(), b.Uint32(); av != bv {
			t.Fatalf("iteration %d: same seed gave %d and %d", i, av, bv)
		}
	}
}

func TestFloat32InRange(t *testing.T) {
	r := NewSeeded(1)
	for i := 0; i < 10000; i++ {
		v := r.Float32InRange(-2.5, 7.5)
		if v < -2.5 || v >= 7.5 {
			t.Fatalf("Float32InRange returned %g, outside [-2.5, 7.5)", v)
		}
	}
}

func TestIntInRange(t *testing.T) {
	r := NewSeeded(2)
	seen := make(map[int]bool)
	for i := 0; i < 10000; i++ {
		v := r.IntInRange(8, 30)
		if v < 8 || v > 30 {
			t.Fatalf("IntInRange returned %d, outside [8, 30]", v)
		}
		seen[v] = true
	}
	if len(seen) != 23 {
		t.Errorf("expected all 23 values in [8,30] to be sampled, got %d", len(seen))
	}
}
