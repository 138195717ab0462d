package window

import "context"

// Loop serializes all controller access onto a single goroutine: every
// submitted operation runs to completion before the next one starts, so
// state transitions triggered by one event never interleave with another.
// Toolkit events, IPC handlers and hotkey callbacks all funnel through it.
type Loop struct {
	ops  chan func()
	done chan struct{}
}

// NewLoop returns a loop ready to run.
func NewLoop() *Loop {
	return &Loop{
		ops:  make(chan func(), 64),
		done: make(chan struct{}),
	}
}

// Run dispatches operations until ctx is cancelled. It must be called
// exactly once.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return
		case op := <-l.ops:
			op()
		}
	}
}

// Do queues fn for execution on the loop. After shutdown it is a no-op.
func (l *Loop) Do(fn func()) {
	select {
	case l.ops <- fn:
	case <-l.done:
	}
}

// Call runs fn on the loop and waits for it to finish. Returns false if
// the loop has shut down before fn could run.
func (l *Loop) Call(fn func()) bool {
	ran := make(chan struct{})
	select {
	case l.ops <- func() {
		fn()
		close(ran)
	}:
	case <-l.done:
		return false
	}

	select {
	case <-ran:
		return true
	case <-l.done:
		return false
	}
}
