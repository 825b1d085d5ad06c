package app

import (
	"errors"
	"fmt"

	"mad-fusion/internal/core"
)

var errBadOverride = errors.New("override must look like key=value")

// Command is a user action shared by every viewer.
type Command uint8

const (
	CmdNone Command = iota
	CmdStart
	CmdPause
	CmdStop
	CmdReset
	CmdStep
	CmdQuit
)

func (c Command) String() string {
	switch c {
	case CmdNone:
		return "none"
	case CmdStart:
		return "start"
	case CmdPause:
		return "pause"
	case CmdStop:
		return "stop"
	case CmdReset:
		return "reset"
	case CmdStep:
		return "step"
	case CmdQuit:
		return "quit"
	default:
		return fmt.Sprintf("Command(%d)", uint8(c))
	}
}

// CommandForKey maps the viewer key bindings to commands.
//
//	Enter  start or resume
//	Space  pause, or resume when paused
//	s      stop
//	r      reset with the current seed
//	n      single tick while not running
//	q      quit
func CommandForKey(key rune, state core.RunState) Command {
	switch key {
	case '\r', '\n':
		return CmdStart
	case ' ':
		if state == core.RunRunning {
			return CmdPause
		}
		return CmdStart
	case 's', 'S':
		return CmdStop
	case 'r', 'R':
		return CmdReset
	case 'n', 'N':
		return CmdStep
	case 'q', 'Q':
		return CmdQuit
	}
	return CmdNone
}

// Session ties a simulation to its run controller and remembers the seed used
// for resets.
type Session struct {
	Sim   core.Sim
	Ctrl  core.Controller
	Clock core.Clock
	Seed  int64
}

// NewSession attaches sched to sim when sim drives itself.
func NewSession(sim core.Sim, clock core.Clock, sched core.Scheduler, seed int64) *Session {
	if clock == nil {
		clock = core.SystemClock{}
	}
	s := &Session{Sim: sim, Clock: clock, Seed: seed}
	if ctrl, ok := sim.(core.Controller); ok {
		ctrl.Attach(clock, sched)
		s.Ctrl = ctrl
	}
	return s
}

// Running reports whether the simulation is stepping on its own.
func (s *Session) Running() bool {
	return s.Ctrl != nil && s.Ctrl.RunState() == core.RunRunning
}

// State returns the run state, Idle for simulations without a controller.
func (s *Session) State() core.RunState {
	if s.Ctrl == nil {
		return core.RunIdle
	}
	return s.Ctrl.RunState()
}

// Apply executes cmd. It reports false when the viewer should exit.
func (s *Session) Apply(cmd Command) (bool, error) {
	switch cmd {
	case CmdStart:
		if s.Ctrl != nil {
			return true, s.Ctrl.Start()
		}
	case CmdPause:
		if s.Ctrl != nil {
			s.Ctrl.Pause()
		}
	case CmdStop:
		if s.Ctrl != nil {
			s.Ctrl.Stop()
		}
	case CmdReset:
		s.Sim.Reset(s.Seed)
	case CmdStep:
		if !s.Running() {
			s.Sim.Step(s.Clock.Now())
		}
	case CmdQuit:
		if s.Ctrl != nil {
			s.Ctrl.Stop()
		}
		return false, nil
	}
	return true, nil
}
