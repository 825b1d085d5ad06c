package core

import (
	"fmt"
	"sort"
	"time"
)

// Size describes the pixel dimensions a simulation wants its viewer to use.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a body simulation must implement.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step(now time.Time)
}

// BodyView is the read-only record a renderer receives for one body.
// Coordinates are in arena space.
type BodyView struct {
	ID          uint64
	X, Y        float64
	VX, VY      float64
	Radius      float64
	MergeRadius float64
	Hit         bool
	Anchor      bool
	Fused       bool
	Visible     bool
}

// Scene is a Sim that exposes its bodies to renderers.
type Scene interface {
	Sim
	// Snapshot appends the live bodies to dst and returns it.
	Snapshot(dst []BodyView) []BodyView
	// Viewport is the arena rectangle a renderer should show.
	Viewport() Rect
}

// RunState enumerates the start/stop lifecycle of a running simulation.
type RunState uint8

const (
	RunIdle RunState = iota
	RunRunning
	RunPaused
)

func (s RunState) String() string {
	switch s {
	case RunIdle:
		return "idle"
	case RunRunning:
		return "running"
	case RunPaused:
		return "paused"
	default:
		return fmt.Sprintf("RunState(%d)", uint8(s))
	}
}

// Controller is implemented by simulations that drive themselves through an
// injected Clock and Scheduler.
type Controller interface {
	Attach(clock Clock, sched Scheduler)
	Start() error
	Stop()
	Pause()
	RunState() RunState
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// SimNames lists the registered simulations in sorted order.
func SimNames() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
