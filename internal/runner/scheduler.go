package runner

import "time"

// Handle identifies a pending frame request. The zero Handle is never issued.
type Handle uint64

// FrameFunc is called once per granted frame with the host's frame time.
type FrameFunc func(now time.Time)

// Scheduler is the host's frame-scheduling primitive. A request is granted at
// most once; the callback must request again to keep running.
type Scheduler interface {
	RequestTick(fn FrameFunc) Handle
	CancelTick(h Handle)
}

// FrameScheduler holds at most one pending request and runs it when the host
// calls Fire. Terminal and window frontends call Fire from their own frame
// callback; tests and the headless simulator call it directly with a
// synthetic clock.
type FrameScheduler struct {
	next    Handle
	pending Handle
	fn      FrameFunc
}

// NewFrameScheduler creates an empty scheduler.
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

// RequestTick replaces any pending request with fn.
func (f *FrameScheduler) RequestTick(fn FrameFunc) Handle {
	f.next++
	f.pending = f.next
	f.fn = fn
	return f.pending
}

// CancelTick drops the pending request if h still identifies it.
func (f *FrameScheduler) CancelTick(h Handle) {
	if h != 0 && h == f.pending {
		f.pending = 0
		f.fn = nil
	}
}

// Pending reports whether a request is waiting for the next frame.
func (f *FrameScheduler) Pending() bool {
	return f.fn != nil
}

// Fire runs the pending request, if any. The request is consumed before the
// callback runs, so the callback may request the next frame.
func (f *FrameScheduler) Fire(now time.Time) bool {
	fn := f.fn
	if fn == nil {
		return false
	}
	f.pending = 0
	f.fn = nil
	fn(now)
	return true
}
