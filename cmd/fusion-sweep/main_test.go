package main

import (
	"os"
	"path/filepath"
	"testing"

	"mad-fusion/internal/sims/fusion"
)

func TestBuildSetsFollowsGate(t *testing.T) {
	cfg := fusion.DefaultConfig()
	if got := len(buildSets(cfg, 2)); got != 3*2*5 {
		t.Fatalf("probability sets = %d, want 30", got)
	}
	cfg.Gate = fusion.GateCapacity
	sets := buildSets(cfg, 1)
	if len(sets) != 3*4 {
		t.Fatalf("capacity sets = %d, want 12", len(sets))
	}
	for _, s := range sets {
		if s.maxFused == 0 || s.threshold != 0 {
			t.Fatalf("capacity set carries wrong knob: %+v", s)
		}
	}
}

func TestRunScenarioIsDeterministic(t *testing.T) {
	cfg := fusion.DefaultConfig()
	cfg.Width, cfg.Height = 200, 200
	cfg.ViewWidth, cfg.ViewHeight = 200, 200
	params := paramSet{gate: fusion.GateProbability, threshold: 0.5, bodies: 80, seed: 9}

	a := runScenario(cfg, params, 120)
	b := runScenario(cfg, params, 120)
	if a.err != nil {
		t.Fatalf("run: %v", a.err)
	}
	if a.merges != b.merges || a.bounces != b.bounces || a.finalCount != b.finalCount {
		t.Fatalf("runs differ: %+v vs %+v", a, b)
	}
	if a.finalCount != 80-a.merges {
		t.Fatalf("final = %d, want %d after %d merges", a.finalCount, 80-a.merges, a.merges)
	}
}

func TestRunScenarioRejectsBadConfig(t *testing.T) {
	cfg := fusion.DefaultConfig()
	cfg.Width = 0
	res := runScenario(cfg, paramSet{gate: fusion.GateNone, bodies: 10, seed: 1}, 10)
	if res.err == nil {
		t.Fatal("expected config error")
	}
}

func TestParseOptionsLayersFlagsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.toml")
	body := "max_bodies = 120\nmax_fused = 2\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	opts, err := parseOptions([]string{"-well", "-config", path, "-max-fused", "6", "-gate", "capacity", "-steps", "10"})
	if err != nil {
		t.Fatalf("parseOptions: %v", err)
	}
	cfg := opts.base
	if !cfg.Anchor || cfg.Gate != fusion.GateCapacity {
		t.Fatalf("variant = anchor %v gate %q, want gravity well", cfg.Anchor, cfg.Gate)
	}
	if cfg.MaxBodies != 120 {
		t.Fatalf("max bodies = %d, want the file's 120", cfg.MaxBodies)
	}
	if cfg.MaxFused != 6 {
		t.Fatalf("max fused = %d, want the flag's 6", cfg.MaxFused)
	}
	if opts.steps != 10 {
		t.Fatalf("steps = %d", opts.steps)
	}
}

func TestParseOptionsRejectsUnknownGate(t *testing.T) {
	_, err := parseOptions([]string{"-gate", "sometimes"})
	if err == nil {
		t.Fatal("expected an error for an unknown gate")
	}
}
