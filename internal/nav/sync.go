package nav

import "time"

// FrameInterval is the cadence hosts use to deliver frames to a
// Synchronizer, roughly one display refresh.
const FrameInterval = time.Second / 60

// Synchronizer recomputes the active section from scroll events. Bursts of
// scroll events are coalesced so the recomputation runs at most once per
// frame.
//
// The host calls Attach when the page mounts and Detach when it is torn
// down. For each scroll event it calls Scrolled and, when that returns true,
// schedules one call to Frame after FrameInterval.
type Synchronizer struct {
	state    *State
	attached bool
	pending  bool
}

// NewSynchronizer returns a detached Synchronizer driving state.
func NewSynchronizer(state *State) *Synchronizer {
	return &Synchronizer{state: state}
}

// Attach starts listening for scroll events. Calling it twice is harmless.
func (s *Synchronizer) Attach() {
	s.attached = true
}

// Detach stops listening and drops any frame still pending.
func (s *Synchronizer) Detach() {
	s.attached = false
	s.pending = false
}

// Attached reports whether the synchronizer is listening.
func (s *Synchronizer) Attached() bool { return s.attached }

// Scrolled records a scroll event. It returns true when the caller must
// request a frame, which is only for the first event since the last frame.
func (s *Synchronizer) Scrolled() bool {
	if !s.attached || s.pending {
		return false
	}
	s.pending = true
	return true
}

// Frame runs the recomputation deferred by Scrolled. It reports whether the
// active section was recomputed.
func (s *Synchronizer) Frame() bool {
	if !s.attached || !s.pending {
		return false
	}
	s.pending = false
	return s.state.Sync()
}
