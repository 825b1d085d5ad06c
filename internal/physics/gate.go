package physics

// Rand is the random source consumed by merge gates and spawn policies.
// *pkg/core.RNG and *math/rand/v2.Rand satisfy it.
type Rand interface {
	Float64() float64
}

// MergeGate decides whether two bodies that are already within merge range
// actually fuse. A nil gate never merges.
type MergeGate interface {
	AllowMerge(a, b *Body) bool
}

// ProbabilityGate fuses when a uniform draw exceeds Threshold.
type ProbabilityGate struct {
	Threshold float64
	Rand      Rand
}

// AllowMerge draws exactly once per call.
func (g ProbabilityGate) AllowMerge(a, b *Body) bool {
	if g.Rand == nil {
		return false
	}
	return g.Rand.Float64() > g.Threshold
}

// FusedCounter reports how many fused bodies are currently alive.
type FusedCounter interface {
	FusedCount() int
}

// CapacityGate fuses while fewer than Max fused bodies exist and the combined
// radius stays within MaxRadius.
type CapacityGate struct {
	Max       int
	MaxRadius float64
	Counter   FusedCounter
}

// AllowMerge never consumes randomness.
func (g CapacityGate) AllowMerge(a, b *Body) bool {
	if g.Counter != nil && g.Counter.FusedCount() >= g.Max {
		return false
	}
	return a.Radius+b.Radius <= g.MaxRadius
}

// NeverMerge turns every overlap into a bounce.
type NeverMerge struct{}

// AllowMerge always refuses.
func (NeverMerge) AllowMerge(*Body, *Body) bool { return false }
