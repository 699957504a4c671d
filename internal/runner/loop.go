package runner

import "time"

// Loop keeps requesting frames from a Scheduler for as long as its frame
// function returns true.
type Loop struct {
	sched  Scheduler
	frame  func(now time.Time) bool
	handle Handle
	active bool
}

// NewLoop creates a stopped loop.
func NewLoop(sched Scheduler, frame func(now time.Time) bool) *Loop {
	return &Loop{sched: sched, frame: frame}
}

// Start requests the first frame. Calling Start on an active loop is a no-op.
func (l *Loop) Start() {
	if l.active {
		return
	}
	l.active = true
	l.handle = l.sched.RequestTick(l.run)
}

// Stop cancels the pending frame.
func (l *Loop) Stop() {
	if !l.active {
		return
	}
	l.active = false
	l.sched.CancelTick(l.handle)
	l.handle = 0
}

// Active reports whether a frame is scheduled.
func (l *Loop) Active() bool {
	return l.active
}

func (l *Loop) run(now time.Time) {
	l.handle = 0
	if !l.active {
		return
	}
	if !l.frame(now) {
		l.active = false
		return
	}
	// The frame may have stopped the loop itself.
	if l.active && l.handle == 0 {
		l.handle = l.sched.RequestTick(l.run)
	}
}
