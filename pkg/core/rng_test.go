package core

import (
	"math"
	"testing"
)

func TestRNGIsDeterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 100; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d differs: %f vs %f", i, x, y)
		}
	}
}

func TestRNGRanges(t *testing.T) {
	r := NewRNG(7)
	for i := 0; i < 1000; i++ {
		if v := r.Between(2, 3); v < 2 || v >= 3 {
			t.Fatalf("Between(2,3) = %f", v)
		}
		if a := r.Angle(); a < 0 || a >= 2*math.Pi {
			t.Fatalf("Angle() = %f", a)
		}
		if n := r.IntN(5); n < 0 || n >= 5 {
			t.Fatalf("IntN(5) = %d", n)
		}
	}
	if r.IntN(0) != 0 {
		t.Fatal("IntN(0) should be 0")
	}
}

func TestRNGSeedRestartsSequence(t *testing.T) {
	r := NewRNG(3)
	first := r.Float64()
	r.Float64()
	r.Seed(3)
	if again := r.Float64(); again != first {
		t.Fatalf("reseeded draw = %f, want %f", again, first)
	}
}
