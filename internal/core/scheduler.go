package core

import (
	"context"
	"time"
)

// Scheduler requests and cancels the next frame of a self-driving simulation.
// Implementations invoke the scheduled frame on the goroutine that owns the
// simulation.
type Scheduler interface {
	Schedule(frame func())
	Cancel()
}

// FrameLoop is a single-goroutine Scheduler. Frames scheduled through it and
// commands posted to it all run on the goroutine executing Run, so the
// simulation never sees concurrent access.
type FrameLoop struct {
	pacer   *FixedStep
	inbox   chan func()
	done    chan struct{}
	pending func()
	frames  uint64
}

// NewFrameLoop creates a loop that runs at most tps frames per second.
func NewFrameLoop(tps int, clock Clock) *FrameLoop {
	return &FrameLoop{
		pacer: NewFixedStep(tps, clock),
		inbox: make(chan func(), 64),
		done:  make(chan struct{}),
	}
}

// Schedule replaces the pending frame. Call it from the loop goroutine.
func (l *FrameLoop) Schedule(frame func()) { l.pending = frame }

// Cancel drops the pending frame. Call it from the loop goroutine.
func (l *FrameLoop) Cancel() { l.pending = nil }

// Pending reports whether a frame is waiting to run.
func (l *FrameLoop) Pending() bool { return l.pending != nil }

// Frames returns how many frames have run.
func (l *FrameLoop) Frames() uint64 { return l.frames }

// RunPending executes the pending frame, if any. The frame may schedule its
// successor.
func (l *FrameLoop) RunPending() bool {
	if l.pending == nil {
		return false
	}
	frame := l.pending
	l.pending = nil
	frame()
	l.frames++
	return true
}

// Post queues cmd to run on the loop goroutine. It is safe to call from any
// goroutine and reports false once the loop has stopped.
func (l *FrameLoop) Post(cmd func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.inbox <- cmd:
		return true
	case <-l.done:
		return false
	}
}

// Run drives the loop until ctx is cancelled.
func (l *FrameLoop) Run(ctx context.Context) error {
	defer close(l.done)
	poll := l.pacer.Interval() / 2
	if poll <= 0 {
		poll = time.Millisecond
	}
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-l.inbox:
			cmd()
		case <-ticker.C:
			if l.pacer.ShouldStep() {
				l.RunPending()
			}
		}
	}
}
