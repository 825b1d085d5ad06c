package app

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix marks dotenv entries that override simulation settings, so
// FUSION_MAX_FUSED=5 sets max_fused.
const EnvPrefix = "FUSION_"

// Config carries the viewer options shared by the GUI and terminal programs.
type Config struct {
	Sim      string
	Seed     int64
	Scale    float64
	TPS      int
	HUDWidth int
	File     string
	EnvFile  string
	// Set holds key=value overrides forwarded to the simulation factory.
	Set map[string]string
}

// NewConfig returns the defaults.
func NewConfig() *Config {
	return &Config{
		Sim:      "gravity-well",
		Scale:    1,
		TPS:      60,
		HUDWidth: 240,
		Set:      map[string]string{},
	}
}

// Bind registers the viewer flags on fs.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation name")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed (0 = configured seed)")
	fs.Float64Var(&c.Scale, "scale", c.Scale, "screen pixels per arena unit")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels (0 hides it)")
	fs.StringVar(&c.File, "config", c.File, "TOML file with simulation settings")
	fs.StringVar(&c.EnvFile, "env", c.EnvFile, "dotenv file with FUSION_* simulation overrides")
	fs.Func("set", "simulation override key=value (repeatable)", func(s string) error {
		key, value, ok := strings.Cut(s, "=")
		if !ok || key == "" {
			return errBadOverride
		}
		c.Set[key] = value
		return nil
	})
}

// SimConfig returns the map passed to the simulation factory.
func (c *Config) SimConfig() map[string]string {
	out := make(map[string]string, len(c.Set)+2)
	for k, v := range c.Set {
		out[k] = v
	}
	if c.File != "" {
		out["config"] = c.File
	}
	if _, ok := out["tps"]; !ok && c.TPS > 0 {
		out["tps"] = strconv.Itoa(c.TPS)
	}
	return out
}

// LoadEnv merges FUSION_* entries from EnvFile into Set. Keys already set on
// the command line win. An empty EnvFile path is a no-op.
func (c *Config) LoadEnv() error {
	if c.EnvFile == "" {
		return nil
	}
	env, err := godotenv.Read(c.EnvFile)
	if err != nil {
		return fmt.Errorf("env %s: %w", c.EnvFile, err)
	}
	for k, v := range env {
		name, ok := strings.CutPrefix(k, EnvPrefix)
		if !ok || name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, set := c.Set[key]; !set {
			c.Set[key] = v
		}
	}
	return nil
}
