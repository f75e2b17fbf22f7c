package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
)

// RefreshWorker calls Refresh on a ticker while its gate is open.
type RefreshWorker struct {
	target   Refresher
	interval time.Duration
	gate     func() bool
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRefreshWorker creates a worker that refreshes target every interval
// while gate returns true. A zero or negative interval disables the worker.
// A nil gate is always open.
func NewRefreshWorker(target Refresher, interval time.Duration, gate func() bool, logger *logger.Logger) *RefreshWorker {
	if gate == nil {
		gate = func() bool { return true }
	}
	return &RefreshWorker{
		target:   target,
		interval: interval,
		gate:     gate,
		logger:   logger,
	}
}

// Start stops any previous run, then launches the ticker goroutine. It exits
// when ctx is cancelled or Stop is called.
func (w *RefreshWorker) Start(ctx context.Context) {
	if w.interval <= 0 {
		return
	}

	w.Stop()

	w.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		t := time.NewTicker(w.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				w.tick(jobCtx)
			}
		}
	}()
}

func (w *RefreshWorker) tick(ctx context.Context) {
	if !w.gate() {
		return
	}

	err := w.target.Refresh(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		w.logger.Debug().Err(err).Str("func", "RefreshWorker.tick").Msg("background refresh failed")
	}
}

// Stop cancels the goroutine and waits for it. Calling Stop on a worker that
// is not running is a no-op.
func (w *RefreshWorker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}
