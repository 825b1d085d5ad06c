package physics

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

type scriptedRand struct {
	draws []float64
	calls int
}

func (s *scriptedRand) Float64() float64 {
	v := s.draws[s.calls%len(s.draws)]
	s.calls++
	return v
}

type fixedCount int

func (f fixedCount) FusedCount() int { return int(f) }

func mustBody(t *testing.T, id uint64, p BodyParams) *Body {
	t.Helper()
	b, err := NewBody(id, p)
	if err != nil {
		t.Fatalf("NewBody(%d): %v", id, err)
	}
	return b
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestHeadOnElasticBounceSwapsVelocities(t *testing.T) {
	a := mustBody(t, 1, BodyParams{Pos: V(0, 0), Vel: V(2, 0), Radius: 5, Mass: 5, Elasticity: 1})
	b := mustBody(t, 2, BodyParams{Pos: V(9, 0), Vel: V(-2, 0), Radius: 5, Mass: 5, Elasticity: 1})

	r := &Resolver{Gate: NeverMerge{}}
	c := r.Classify(a, b)
	if c.Outcome != OutcomeBounce {
		t.Fatalf("outcome = %v, want bounce", c.Outcome)
	}
	r.Resolve(c, 7)

	if !near(a.Vel.X, -2) || !near(a.Vel.Y, 0) {
		t.Fatalf("a velocity = %+v, want (-2,0)", a.Vel)
	}
	if !near(b.Vel.X, 2) || !near(b.Vel.Y, 0) {
		t.Fatalf("b velocity = %+v, want (2,0)", b.Vel)
	}
	if d := a.Pos.Dist(b.Pos); !near(d, 10) {
		t.Fatalf("separation = %f, want 10", d)
	}
	if a.State != StateHit || b.State != StateHit {
		t.Fatalf("states = %v/%v, want hit/hit", a.State, b.State)
	}
	if a.HitTick != 7 || b.HitTick != 7 {
		t.Fatalf("hit ticks = %d/%d, want 7", a.HitTick, b.HitTick)
	}
}

func TestElasticBounceConservesNormalMomentum(t *testing.T) {
	cases := []struct {
		name       string
		a, b       BodyParams
		elasticity float64
	}{
		{
			name: "unequal masses oblique",
			a:    BodyParams{Pos: V(0, 0), Vel: V(3, 1), Radius: 4, Mass: 2, Elasticity: 1},
			b:    BodyParams{Pos: V(5, 3), Vel: V(-1, -2), Radius: 3, Mass: 7, Elasticity: 1},
		},
		{
			name: "one at rest",
			a:    BodyParams{Pos: V(10, 10), Vel: V(0, 0), Radius: 2, Mass: 1, Elasticity: 1},
			b:    BodyParams{Pos: V(12, 11), Vel: V(-4, 0.5), Radius: 2, Mass: 9, Elasticity: 1},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := mustBody(t, 1, tc.a)
			b := mustBody(t, 2, tc.b)
			sep := a.Pos.Sub(b.Pos)
			n := sep.Normalize()
			before := a.Mass*a.Vel.Dot(n) + b.Mass*b.Vel.Dot(n)
			tangentA := a.Vel.Dot(V(n.Y, -n.X))
			energyBefore := a.Mass*a.Vel.Dot(a.Vel) + b.Mass*b.Vel.Dot(b.Vel)

			Bounce(a, b, sep, sep.Len())

			after := a.Mass*a.Vel.Dot(n) + b.Mass*b.Vel.Dot(n)
			if !near(before, after) {
				t.Fatalf("normal momentum %f -> %f", before, after)
			}
			if got := a.Vel.Dot(V(n.Y, -n.X)); !near(got, tangentA) {
				t.Fatalf("tangential component changed: %f -> %f", tangentA, got)
			}
			energyAfter := a.Mass*a.Vel.Dot(a.Vel) + b.Mass*b.Vel.Dot(b.Vel)
			if !near(energyBefore, energyAfter) {
				t.Fatalf("kinetic energy %f -> %f with cr=1", energyBefore, energyAfter)
			}
		})
	}
}

func TestInelasticBounceUsesLowerElasticity(t *testing.T) {
	a := mustBody(t, 1, BodyParams{Pos: V(0, 0), Vel: V(1, 0), Radius: 1, Mass: 1, Elasticity: 1})
	b := mustBody(t, 2, BodyParams{Pos: V(1.5, 0), Vel: V(-1, 0), Radius: 1, Mass: 1, Elasticity: 0.5})

	Bounce(a, b, a.Pos.Sub(b.Pos), 1.5)

	// Along n = (-1,0): v1 = -1, v2 = 1; n1 = (0.5*(2) + -1 + 1)/2 = 0.5.
	if !near(a.Vel.X, -0.5) || !near(b.Vel.X, 0.5) {
		t.Fatalf("velocities = %+v / %+v, want (-0.5,0) / (0.5,0)", a.Vel, b.Vel)
	}
}

func TestBounceSeparatesToSumOfRadii(t *testing.T) {
	a := mustBody(t, 1, BodyParams{Pos: V(3, 4), Vel: V(0, 0), Radius: 6, Mass: 1, Elasticity: 0.8})
	b := mustBody(t, 2, BodyParams{Pos: V(5, 5), Vel: V(1, 1), Radius: 2, Mass: 10, Elasticity: 0.9})
	heavyBefore := b.Pos

	Bounce(a, b, a.Pos.Sub(b.Pos), a.Pos.Dist(b.Pos))

	if d := a.Pos.Dist(b.Pos); d < a.Radius+b.Radius-1e-9 {
		t.Fatalf("bodies still interpenetrate: distance %f < %f", d, a.Radius+b.Radius)
	}
	if moved := b.Pos.Dist(heavyBefore); moved > 1 {
		t.Fatalf("heavy body displaced by %f, expected the light body to move most", moved)
	}
}

func TestBounceCoincidentCentersUsesFallbackNormal(t *testing.T) {
	a := mustBody(t, 1, BodyParams{Pos: V(50, 50), Radius: 2, Mass: 1, Elasticity: 1})
	b := mustBody(t, 2, BodyParams{Pos: V(50, 50), Radius: 2, Mass: 1, Elasticity: 1})

	Bounce(a, b, a.Pos.Sub(b.Pos), 0)

	if math.IsNaN(a.Pos.X) || math.IsNaN(b.Pos.X) || math.IsNaN(a.Vel.X) {
		t.Fatal("coincident bounce produced NaN")
	}
	if !near(a.Pos.X, 52) || !near(b.Pos.X, 48) {
		t.Fatalf("positions = %+v / %+v, want separation along +x", a.Pos, b.Pos)
	}
}

func TestFuseConservesMassAndMomentum(t *testing.T) {
	a := mustBody(t, 1, BodyParams{Pos: V(1, 1), Vel: V(2, 0), Radius: 3, Mass: 3, Elasticity: 1})
	b := mustBody(t, 2, BodyParams{Pos: V(4, 1), Vel: V(-1, 1), Radius: 7, Mass: 7, Elasticity: 0.6})

	f := Fuse(a, b)

	if f.Mass != 10 {
		t.Fatalf("mass = %f, want 10", f.Mass)
	}
	wantVel := V((2*3+(-1)*7)/10.0, (0*3+1*7)/10.0)
	if !near(f.Vel.X, wantVel.X) || !near(f.Vel.Y, wantVel.Y) {
		t.Fatalf("velocity = %+v, want %+v", f.Vel, wantVel)
	}
	if f.Pos != b.Pos {
		t.Fatalf("position = %+v, want heavier parent %+v", f.Pos, b.Pos)
	}
	if f.Radius != 10 {
		t.Fatalf("radius = %f, want 10", f.Radius)
	}
	if f.Elasticity != 0.6 {
		t.Fatalf("elasticity = %f, want 0.6", f.Elasticity)
	}
}

func TestFuseTiePrefersFirstParent(t *testing.T) {
	a := mustBody(t, 1, BodyParams{Pos: V(1, 2), Radius: 2, Elasticity: 1})
	b := mustBody(t, 2, BodyParams{Pos: V(3, 2), Radius: 2, Elasticity: 1})
	if f := Fuse(a, b); f.Pos != a.Pos {
		t.Fatalf("tie placed fusion at %+v, want %+v", f.Pos, a.Pos)
	}
}

func TestProbabilityGate(t *testing.T) {
	overlapping := func() (*Body, *Body) {
		a := mustBody(t, 1, BodyParams{Pos: V(0, 0), Radius: 2, Elasticity: 1})
		b := mustBody(t, 2, BodyParams{Pos: V(1, 0), Radius: 2, Elasticity: 1})
		return a, b
	}

	t.Run("draw above threshold merges", func(t *testing.T) {
		rnd := &scriptedRand{draws: []float64{0.97}}
		r := &Resolver{Gate: ProbabilityGate{Threshold: 0.95, Rand: rnd}}
		a, b := overlapping()
		if c := r.Classify(a, b); c.Outcome != OutcomeMerge {
			t.Fatalf("outcome = %v, want merge", c.Outcome)
		}
		if rnd.calls != 1 {
			t.Fatalf("gate drew %d times, want 1", rnd.calls)
		}
	})

	t.Run("draw below threshold bounces", func(t *testing.T) {
		rnd := &scriptedRand{draws: []float64{0.5}}
		r := &Resolver{Gate: ProbabilityGate{Threshold: 0.95, Rand: rnd}}
		a, b := overlapping()
		if c := r.Classify(a, b); c.Outcome != OutcomeBounce {
			t.Fatalf("outcome = %v, want bounce", c.Outcome)
		}
	})

	t.Run("draw equal to threshold bounces", func(t *testing.T) {
		r := &Resolver{Gate: ProbabilityGate{Threshold: 0.95, Rand: &scriptedRand{draws: []float64{0.95}}}}
		a, b := overlapping()
		if c := r.Classify(a, b); c.Outcome != OutcomeBounce {
			t.Fatalf("outcome = %v, want bounce", c.Outcome)
		}
	})

	t.Run("outside merge radius never draws", func(t *testing.T) {
		rnd := &scriptedRand{draws: []float64{0.99}}
		r := &Resolver{Gate: ProbabilityGate{Threshold: 0.95, Rand: rnd}}
		a := mustBody(t, 1, BodyParams{Pos: V(0, 0), Radius: 2, MergeRadius: 1, Elasticity: 1})
		b := mustBody(t, 2, BodyParams{Pos: V(3, 0), Radius: 2, MergeRadius: 1, Elasticity: 1})
		if c := r.Classify(a, b); c.Outcome != OutcomeBounce {
			t.Fatalf("outcome = %v, want bounce", c.Outcome)
		}
		if rnd.calls != 0 {
			t.Fatalf("gate drew %d times outside merge radius", rnd.calls)
		}
	})
}

func TestCapacityGate(t *testing.T) {
	a := mustBody(t, 1, BodyParams{Pos: V(0, 0), Radius: 2, Elasticity: 1, Base: true})
	b := mustBody(t, 2, BodyParams{Pos: V(1, 0), Radius: 2, Elasticity: 1, Base: true})

	cases := []struct {
		name      string
		fused     int
		maxRadius float64
		want      Outcome
	}{
		{name: "below cap", fused: 2, maxRadius: 22, want: OutcomeMerge},
		{name: "at cap", fused: 3, maxRadius: 22, want: OutcomeBounce},
		{name: "too large", fused: 0, maxRadius: 3, want: OutcomeBounce},
		{name: "exactly max radius", fused: 0, maxRadius: 4, want: OutcomeMerge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := &Resolver{Gate: CapacityGate{Max: 3, MaxRadius: tc.maxRadius, Counter: fixedCount(tc.fused)}}
			if c := r.Classify(a, b); c.Outcome != tc.want {
				t.Fatalf("outcome = %v, want %v", c.Outcome, tc.want)
			}
		})
	}
}

func TestAnchorInteractions(t *testing.T) {
	anchor := mustBody(t, 0, BodyParams{Pos: V(100, 100), Radius: 50, Mass: 1e6, Elasticity: 0.5, Anchor: true})
	base := mustBody(t, 1, BodyParams{Pos: V(140, 100), Radius: 2, Elasticity: 1, Base: true})
	fused := mustBody(t, 2, BodyParams{Pos: V(60, 100), Radius: 22, Elasticity: 1, Fused: true})
	r := &Resolver{Gate: ProbabilityGate{Threshold: 0, Rand: &scriptedRand{draws: []float64{1}}}}

	if c := r.Classify(base, anchor); c.Outcome != OutcomePass {
		t.Fatalf("base vs anchor = %v, want pass", c.Outcome)
	}
	if c := r.Classify(anchor, fused); c.Outcome != OutcomeBounce {
		t.Fatalf("anchor vs fused = %v, want bounce (anchors never merge)", c.Outcome)
	}
}

func TestScanStopsAtFirstInteraction(t *testing.T) {
	a := mustBody(t, 1, BodyParams{Pos: V(10, 10), Radius: 3, Elasticity: 1})
	far := mustBody(t, 2, BodyParams{Pos: V(50, 50), Radius: 3, Elasticity: 1})
	first := mustBody(t, 3, BodyParams{Pos: V(14, 10), Radius: 3, Elasticity: 1})
	second := mustBody(t, 4, BodyParams{Pos: V(10, 14), Radius: 3, Elasticity: 1})
	gone := mustBody(t, 5, BodyParams{Pos: V(10, 10), Radius: 3, Elasticity: 1})
	gone.MarkDestroy()

	r := &Resolver{Gate: NeverMerge{}}
	c, ok := r.Scan(a, nil, []*Body{a, gone, far, first, second})
	if !ok {
		t.Fatal("expected an interaction")
	}
	if c.B != first {
		t.Fatalf("scan matched body %d, want %d", c.B.ID, first.ID)
	}
}

func TestScanChecksAnchorFirstAndSkipsPassThrough(t *testing.T) {
	anchor := mustBody(t, 0, BodyParams{Pos: V(0, 0), Radius: 20, Mass: 1e6, Elasticity: 0.5, Anchor: true})
	base := mustBody(t, 1, BodyParams{Pos: V(21, 0), Radius: 2, Elasticity: 1, Base: true})
	other := mustBody(t, 2, BodyParams{Pos: V(24, 0), Radius: 2, Elasticity: 1, Base: true})

	r := &Resolver{Gate: NeverMerge{}}
	c, ok := r.Scan(base, anchor, []*Body{base, other})
	if !ok || c.B != other {
		t.Fatalf("scan = %+v ok=%v, want bounce with body %d", c, ok, other.ID)
	}

	big := mustBody(t, 3, BodyParams{Pos: V(25, 0), Radius: 6, Elasticity: 1, Fused: true})
	c, ok = r.Scan(big, anchor, []*Body{other, big})
	if !ok || c.B != anchor {
		t.Fatalf("fused body should hit the anchor before other candidates, got %+v", c)
	}
}

func TestNewBodyValidation(t *testing.T) {
	cases := []struct {
		name string
		p    BodyParams
	}{
		{name: "zero radius", p: BodyParams{Radius: 0, Elasticity: 1}},
		{name: "negative mass", p: BodyParams{Radius: 1, Mass: -1, Elasticity: 1}},
		{name: "zero elasticity", p: BodyParams{Radius: 1}},
		{name: "merge radius above radius", p: BodyParams{Radius: 1, MergeRadius: 2, Elasticity: 1}},
		{name: "nan position", p: BodyParams{Radius: 1, Elasticity: 1, Pos: V(math.NaN(), 0)}},
		{name: "infinite radius", p: BodyParams{Radius: math.Inf(1), Elasticity: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewBody(1, tc.p); !errors.Is(err, ErrInvalidBody) {
				t.Fatalf("err = %v, want ErrInvalidBody", err)
			}
		})
	}

	b, err := NewBody(9, BodyParams{Radius: 4, Elasticity: 1})
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}
	if b.Mass != 4 || b.MergeRadius != 4 {
		t.Fatalf("defaults mass=%f merge=%f, want 4/4", b.Mass, b.MergeRadius)
	}
}

func TestDestroyWinsOverHit(t *testing.T) {
	b := mustBody(t, 1, BodyParams{Radius: 1, Elasticity: 1})
	b.MarkDestroy()
	b.MarkHit(3)
	if b.State != StateDestroy {
		t.Fatalf("state = %v, want destroy", b.State)
	}
}

func TestVectorOps(t *testing.T) {
	v := V(3, 4)
	if v.Len() != 5 || v.Magnitude() != 5 {
		t.Fatalf("length = %f", v.Len())
	}
	if n := v.Normalize(); math.Abs(n.Len()-1) > eps {
		t.Fatalf("normalized length = %f", n.Len())
	}
	if z := (Vec2{}).Normalize(); !z.IsZero() {
		t.Fatalf("zero normalize = %+v", z)
	}
	if d := v.Dot(V(-4, 3)); d != 0 {
		t.Fatalf("dot = %f", d)
	}
	w := v
	w.Translate(V(1, 1))
	if w != V(4, 5) || v != V(3, 4) {
		t.Fatalf("translate mutated wrong operand: v=%+v w=%+v", v, w)
	}
	if s := v.Scale(2).Sub(V(1, 1)).Add(V(0, 1)); s != V(5, 8) {
		t.Fatalf("chain = %+v", s)
	}
}
