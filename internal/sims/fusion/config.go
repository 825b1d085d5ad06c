package fusion

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"strconv"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig reports a configuration that cannot produce a world.
var ErrInvalidConfig = errors.New("invalid fusion config")

// GateKind selects the merge policy.
type GateKind string

const (
	// GateProbability merges when a uniform draw exceeds MergeThreshold.
	GateProbability GateKind = "probability"
	// GateCapacity merges while fewer than MaxFused fused bodies exist and the
	// result stays within MaxRadius.
	GateCapacity GateKind = "capacity"
	// GateNone never merges.
	GateNone GateKind = "none"
)

// Config controls a fusion world. It is fixed once the world is built.
type Config struct {
	Width      int   `toml:"width"`
	Height     int   `toml:"height"`
	ViewWidth  int   `toml:"view_width"`
	ViewHeight int   `toml:"view_height"`
	Seed       int64 `toml:"seed"`
	TPS        int   `toml:"tps"`

	// Bodies is the initial population. Zero picks a random count in
	// [2/3 MaxBodies, MaxBodies).
	Bodies    int `toml:"bodies"`
	MaxBodies int `toml:"max_bodies"`

	BaseRadius     float64 `toml:"base_radius"`
	BaseMass       float64 `toml:"base_mass"`
	BaseElasticity float64 `toml:"base_elasticity"`
	MinSpeed       float64 `toml:"min_speed"`
	MaxSpeed       float64 `toml:"max_speed"`

	Gate              GateKind `toml:"gate"`
	MergeThreshold    float64  `toml:"merge_threshold"`
	MergeRadiusFactor float64  `toml:"merge_radius_factor"`
	MaxRadius         float64  `toml:"max_radius"`
	FusedRadius       float64  `toml:"fused_radius"`
	MaxFused          int      `toml:"max_fused"`

	Anchor           bool    `toml:"anchor"`
	AnchorRadius     float64 `toml:"anchor_radius"`
	AnchorMass       float64 `toml:"anchor_mass"`
	AnchorElasticity float64 `toml:"anchor_elasticity"`
}

// DefaultConfig returns the free variant: no anchor, probabilistic merging and
// momentum-conserving fusion.
func DefaultConfig() Config {
	return Config{
		Width:             1000,
		Height:            1000,
		ViewWidth:         600,
		ViewHeight:        600,
		Seed:              1337,
		TPS:               60,
		MaxBodies:         600,
		BaseRadius:        2,
		BaseMass:          2,
		BaseElasticity:    1,
		MinSpeed:          0.5,
		MaxSpeed:          10,
		Gate:              GateProbability,
		MergeThreshold:    0.95,
		MergeRadiusFactor: 1,
		MaxRadius:         22,
		FusedRadius:       22,
		MaxFused:          3,
		AnchorRadius:      220,
		AnchorMass:        9990000,
		AnchorElasticity:  0.5,
	}
}

// GravityWellConfig returns the anchor variant: a massive body at the
// viewport center, base bodies orbiting it and a capped number of fused
// bodies.
func GravityWellConfig() Config {
	c := DefaultConfig()
	c.Anchor = true
	c.Gate = GateCapacity
	c.MaxBodies = 2000
	return c
}

// Validate reports the first parameter that cannot produce a world.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: arena %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.ViewWidth <= 0 || c.ViewHeight <= 0:
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalidConfig, c.ViewWidth, c.ViewHeight)
	case c.Bodies < 0 || c.MaxBodies < 0:
		return fmt.Errorf("%w: population %d/%d", ErrInvalidConfig, c.Bodies, c.MaxBodies)
	case !positive(c.BaseRadius) || !positive(c.BaseMass) || !positive(c.BaseElasticity):
		return fmt.Errorf("%w: base body r=%v m=%v e=%v", ErrInvalidConfig, c.BaseRadius, c.BaseMass, c.BaseElasticity)
	case c.MinSpeed < 0 || !finite(c.MinSpeed) || c.MaxSpeed < 0 || !finite(c.MaxSpeed):
		return fmt.Errorf("%w: speed %v..%v", ErrInvalidConfig, c.MinSpeed, c.MaxSpeed)
	case !positive(c.MergeRadiusFactor) || c.MergeRadiusFactor > 1:
		return fmt.Errorf("%w: merge radius factor %v", ErrInvalidConfig, c.MergeRadiusFactor)
	case !finite(c.MergeThreshold):
		return fmt.Errorf("%w: merge threshold %v", ErrInvalidConfig, c.MergeThreshold)
	case !positive(c.MaxRadius) || !positive(c.FusedRadius) || c.MaxFused < 0:
		return fmt.Errorf("%w: fused limits r=%v fused=%v n=%d", ErrInvalidConfig, c.MaxRadius, c.FusedRadius, c.MaxFused)
	}
	switch c.Gate {
	case GateProbability, GateCapacity, GateNone:
	default:
		return fmt.Errorf("%w: unknown gate %q", ErrInvalidConfig, c.Gate)
	}
	if c.Anchor && (!positive(c.AnchorRadius) || !positive(c.AnchorMass) || !positive(c.AnchorElasticity)) {
		return fmt.Errorf("%w: anchor r=%v m=%v e=%v", ErrInvalidConfig, c.AnchorRadius, c.AnchorMass, c.AnchorElasticity)
	}
	return nil
}

// LoadConfig decodes the TOML file at path over base.
func LoadConfig(path string, base Config) (Config, error) {
	c := base
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return base, fmt.Errorf("load config %s: %w", path, err)
	}
	return c, nil
}

// FromMap populates the default config from a string map (flag-style
// key/value pairs).
func FromMap(cfg map[string]string) Config {
	return ApplyMap(DefaultConfig(), cfg)
}

// ApplyMap overrides fields of c with parseable entries of cfg. Unparseable
// or out-of-range values are ignored.
func ApplyMap(c Config, cfg map[string]string) Config {
	if cfg == nil {
		return c
	}
	setInt(cfg, "w", &c.Width, 1)
	setInt(cfg, "h", &c.Height, 1)
	setInt(cfg, "view_w", &c.ViewWidth, 1)
	setInt(cfg, "view_h", &c.ViewHeight, 1)
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	setInt(cfg, "tps", &c.TPS, 1)
	setInt(cfg, "bodies", &c.Bodies, 0)
	setInt(cfg, "max_bodies", &c.MaxBodies, 0)
	setFloat(cfg, "base_radius", &c.BaseRadius)
	setFloat(cfg, "base_mass", &c.BaseMass)
	setFloat(cfg, "base_elasticity", &c.BaseElasticity)
	setFloat(cfg, "min_speed", &c.MinSpeed)
	setFloat(cfg, "max_speed", &c.MaxSpeed)
	if v, ok := cfg["gate"]; ok {
		c.Gate = GateKind(v)
	}
	if v, ok := cfg["merge_threshold"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.MergeThreshold = parsed
		}
	}
	setFloat(cfg, "merge_radius_factor", &c.MergeRadiusFactor)
	setFloat(cfg, "max_radius", &c.MaxRadius)
	setFloat(cfg, "fused_radius", &c.FusedRadius)
	setInt(cfg, "max_fused", &c.MaxFused, 0)
	if v, ok := cfg["anchor"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Anchor = parsed
		}
	}
	setFloat(cfg, "anchor_radius", &c.AnchorRadius)
	setFloat(cfg, "anchor_mass", &c.AnchorMass)
	setFloat(cfg, "anchor_elasticity", &c.AnchorElasticity)
	return c
}

// Bind registers command-line flags that override c.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "w", c.Width, "arena width")
	fs.IntVar(&c.Height, "h", c.Height, "arena height")
	fs.IntVar(&c.ViewWidth, "view-w", c.ViewWidth, "viewport width")
	fs.IntVar(&c.ViewHeight, "view-h", c.ViewHeight, "viewport height")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.Bodies, "bodies", c.Bodies, "initial population (0 = random)")
	fs.IntVar(&c.MaxBodies, "max-bodies", c.MaxBodies, "population ceiling")
	fs.Float64Var(&c.MaxSpeed, "max-speed", c.MaxSpeed, "maximum spawn speed")
	fs.Float64Var(&c.MergeThreshold, "merge-threshold", c.MergeThreshold, "probability gate threshold")
	fs.IntVar(&c.MaxFused, "max-fused", c.MaxFused, "capacity gate limit")
	fs.BoolVar(&c.Anchor, "anchor", c.Anchor, "enable the gravity well anchor")
	fs.Var(&c.Gate, "gate", "merge policy: probability, capacity or none")
}

// String implements flag.Value.
func (g *GateKind) String() string { return string(*g) }

// Set implements flag.Value and rejects unknown policies.
func (g *GateKind) Set(s string) error {
	switch k := GateKind(s); k {
	case GateProbability, GateCapacity, GateNone:
		*g = k
		return nil
	}
	return fmt.Errorf("%w: unknown gate %q", ErrInvalidConfig, s)
}

func setInt(cfg map[string]string, key string, dst *int, floor int) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= floor {
			*dst = parsed
		}
	}
}

func setFloat(cfg map[string]string, key string, dst *float64) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			*dst = parsed
		}
	}
}

func positive(v float64) bool { return v > 0 && finite(v) }

func finite(v float64) bool { return !math.IsInf(v, 0) && !math.IsNaN(v) }
