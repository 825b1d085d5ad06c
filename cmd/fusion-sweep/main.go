package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"mad-fusion/internal/sims/fusion"
)

type paramSet struct {
	gate      fusion.GateKind
	threshold float64
	maxFused  int
	bodies    int
	seed      int64
}

func (p paramSet) String() string {
	switch p.gate {
	case fusion.GateCapacity:
		return fmt.Sprintf("gate=%s maxFused=%d bodies=%d seed=%d", p.gate, p.maxFused, p.bodies, p.seed)
	default:
		return fmt.Sprintf("gate=%s threshold=%.3f bodies=%d seed=%d", p.gate, p.threshold, p.bodies, p.seed)
	}
}

type scenarioResult struct {
	params     paramSet
	merges     int
	bounces    int
	captures   int
	fusedPeak  int
	finalCount int
	firstMerge uint64
	err        error
}

type options struct {
	base    fusion.Config
	steps   int
	workers int
	seeds   int
}

// parseOptions layers the base configuration: defaults for the chosen variant,
// then the TOML file, then the world flags given explicitly on the command line.
func parseOptions(args []string) (options, error) {
	fs := flag.NewFlagSet("fusion-sweep", flag.ContinueOnError)
	steps := fs.Int("steps", 600, "ticks to simulate per scenario")
	workers := fs.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	seeds := fs.Int("seeds", 3, "seeds per parameter set")
	well := fs.Bool("well", false, "sweep the gravity-well variant")
	config := fs.String("config", "", "TOML file overriding the base configuration")
	// Bind only registers the world flags; their values are read back through
	// Visit so unset flags do not mask the TOML file.
	world := fusion.DefaultConfig()
	world.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	base := fusion.DefaultConfig()
	if *well {
		base = fusion.GravityWellConfig()
	}
	if *config != "" {
		loaded, err := fusion.LoadConfig(*config, base)
		if err != nil {
			return options{}, err
		}
		base = loaded
	}
	explicit := map[string]string{}
	fs.Visit(func(f *flag.Flag) {
		explicit[strings.ReplaceAll(f.Name, "-", "_")] = f.Value.String()
	})
	base = fusion.ApplyMap(base, explicit)
	if err := base.Validate(); err != nil {
		return options{}, err
	}
	return options{base: base, steps: *steps, workers: max(*workers, 1), seeds: *seeds}, nil
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("fusion-sweep: %v", err)
	}
	baseCfg := opts.base

	sets := buildSets(baseCfg, opts.seeds)
	fmt.Printf("Sweeping %d parameter sets (%d workers, %d steps)\n", len(sets), opts.workers, opts.steps)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < opts.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(baseCfg, params, opts.steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		if res.err != nil {
			log.Printf("%s: %v", res.params, res.err)
			continue
		}
		all = append(all, res)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].merges != all[j].merges {
			return all[i].merges > all[j].merges
		}
		return all[i].params.String() < all[j].params.String()
	})
	elapsed := time.Since(start)

	fmt.Printf("\nTop 5 results (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < 5; i++ {
		res := all[i]
		fmt.Printf("%2d) merges=%d first=%d bounces=%d captures=%d fusedPeak=%d final=%d params=%s\n",
			i+1, res.merges, res.firstMerge, res.bounces, res.captures, res.fusedPeak, res.finalCount, res.params)
	}
}

// buildSets crosses the merge knob of the configured gate with a few
// population sizes.
func buildSets(base fusion.Config, seeds int) []paramSet {
	if seeds < 1 {
		seeds = 1
	}
	populations := []int{base.MaxBodies / 4, base.MaxBodies / 2, base.MaxBodies}
	thresholds := []float64{0.5, 0.8, 0.9, 0.95, 0.99}
	capacities := []int{1, 3, 5, 10}

	var sets []paramSet
	for _, bodies := range populations {
		if bodies <= 0 {
			continue
		}
		for s := 0; s < seeds; s++ {
			seed := base.Seed + int64(s)
			switch base.Gate {
			case fusion.GateCapacity:
				for _, c := range capacities {
					sets = append(sets, paramSet{gate: base.Gate, maxFused: c, bodies: bodies, seed: seed})
				}
			case fusion.GateNone:
				sets = append(sets, paramSet{gate: base.Gate, bodies: bodies, seed: seed})
			default:
				for _, th := range thresholds {
					sets = append(sets, paramSet{gate: base.Gate, threshold: th, bodies: bodies, seed: seed})
				}
			}
		}
	}
	return sets
}

func runScenario(base fusion.Config, params paramSet, steps int) scenarioResult {
	cfg := base
	cfg.Gate = params.gate
	cfg.Bodies = params.bodies
	cfg.Seed = params.seed
	if params.gate == fusion.GateCapacity {
		cfg.MaxFused = params.maxFused
	} else {
		cfg.MergeThreshold = params.threshold
	}

	res := scenarioResult{params: params}
	world, err := fusion.NewWithConfig(cfg)
	if err != nil {
		res.err = err
		return res
	}
	world.Reset(params.seed)

	tps := cfg.TPS
	if tps <= 0 {
		tps = 60
	}
	interval := time.Second / time.Duration(tps)
	now := time.Unix(0, 0)
	for step := 0; step < steps; step++ {
		now = now.Add(interval)
		world.Step(now)
		st := world.Stats()
		res.merges += st.Merges
		res.bounces += st.Bounces
		res.captures += st.Captures
		if st.Merges > 0 && res.firstMerge == 0 {
			res.firstMerge = st.Tick
		}
		if st.Fused > res.fusedPeak {
			res.fusedPeak = st.Fused
		}
	}
	res.finalCount = len(world.Bodies())
	return res
}
