package app

// FrameSlot is a Scheduler for hosts that already pace themselves, such as
// ebiten's Update loop. It holds at most one pending frame and runs it when
// the host calls Run.
type FrameSlot struct {
	pending func()
}

// Schedule replaces the pending frame.
func (s *FrameSlot) Schedule(frame func()) { s.pending = frame }

// Cancel drops the pending frame.
func (s *FrameSlot) Cancel() { s.pending = nil }

// Run executes the pending frame, if any. The frame may schedule its
// successor, which then waits for the next Run.
func (s *FrameSlot) Run() bool {
	if s.pending == nil {
		return false
	}
	frame := s.pending
	s.pending = nil
	frame()
	return true
}
