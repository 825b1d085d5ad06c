package fusion

import (
	"errors"

	"mad-fusion/internal/core"
)

// ErrNotAttached reports Start on a world without a scheduler.
var ErrNotAttached = errors.New("world has no scheduler attached")

// Attach wires the clock that stamps each tick and the scheduler that drives
// frames. A nil clock keeps the current one.
func (w *World) Attach(clock core.Clock, sched core.Scheduler) {
	if clock != nil {
		w.clock = clock
	}
	w.sched = sched
}

// RunState reports the lifecycle state.
func (w *World) RunState() core.RunState { return w.state }

// Start begins self-driven stepping. From Idle the world is repopulated with
// its current seed; from Paused it resumes where it stopped.
func (w *World) Start() error {
	if w.sched == nil {
		return ErrNotAttached
	}
	switch w.state {
	case core.RunRunning:
		return nil
	case core.RunIdle:
		w.Reset(w.seed)
	}
	w.state = core.RunRunning
	w.sched.Schedule(w.frame)
	return nil
}

// Stop cancels the pending frame and returns to Idle. Bodies stay in place
// until the next Start.
func (w *World) Stop() {
	if w.sched != nil {
		w.sched.Cancel()
	}
	w.state = core.RunIdle
}

// Pause cancels the pending frame and keeps the world for a later Start.
func (w *World) Pause() {
	if w.state != core.RunRunning {
		return
	}
	if w.sched != nil {
		w.sched.Cancel()
	}
	w.state = core.RunPaused
}

func (w *World) frame() {
	if w.state != core.RunRunning {
		return
	}
	w.Step(w.clock.Now())
	if w.state == core.RunRunning {
		w.sched.Schedule(w.frame)
	}
}
