package viewmodel

import "context"

// latest tracks the newest in-flight fetch of a view-model.
// It is guarded by the owning view-model's mutex.
type latest struct {
	gen    uint64
	cancel context.CancelFunc
}

// next cancels the fetch in flight, if any, and starts a new generation.
func (l *latest) next(parent context.Context) (context.Context, uint64) {
	if l.cancel != nil {
		l.cancel()
	}

	ctx, cancel := context.WithCancel(parent)
	l.gen++
	l.cancel = cancel
	return ctx, l.gen
}

// done reports whether gen is still the newest generation and releases it.
func (l *latest) done(gen uint64) bool {
	if gen != l.gen {
		return false
	}
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	return true
}

// stop cancels the fetch in flight and invalidates its result.
func (l *latest) stop() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
}
