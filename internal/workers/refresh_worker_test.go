package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyRefresher counts Refresh calls.
type spyRefresher struct {
	calls atomic.Int64
	err   error
}

func (s *spyRefresher) Refresh(context.Context) error {
	s.calls.Add(1)
	return s.err
}

// ── Start / Stop ─────────────────────────────────────────────────────────────

func TestRefreshWorker_Start_CallsRefresh(t *testing.T) {
	spy := &spyRefresher{}
	w := NewRefreshWorker(spy, 10*time.Millisecond, nil, logger.Nop())

	w.Start(context.Background())
	time.Sleep(55 * time.Millisecond)
	w.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "Refresh called %d times", got)
}

func TestRefreshWorker_Stop_StopsGoroutine(t *testing.T) {
	spy := &spyRefresher{}
	w := NewRefreshWorker(spy, 10*time.Millisecond, nil, logger.Nop())

	w.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	w.Stop()

	callsAfterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, callsAfterStop, spy.calls.Load(), "no refresh after Stop")
}

func TestRefreshWorker_Stop_BeforeStart_NoPanic(t *testing.T) {
	w := NewRefreshWorker(&spyRefresher{}, time.Second, nil, logger.Nop())

	assert.NotPanics(t, func() { w.Stop() })
	assert.NotPanics(t, func() { w.Stop() })
}

func TestRefreshWorker_ZeroInterval_Disabled(t *testing.T) {
	spy := &spyRefresher{}
	w := NewRefreshWorker(spy, 0, nil, logger.Nop())

	w.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	w.Stop()

	assert.Equal(t, int64(0), spy.calls.Load())
}

func TestRefreshWorker_ClosedGate_SkipsRefresh(t *testing.T) {
	spy := &spyRefresher{}
	var open atomic.Bool
	w := NewRefreshWorker(spy, 10*time.Millisecond, open.Load, logger.Nop())

	w.Start(context.Background())
	time.Sleep(35 * time.Millisecond)
	assert.Equal(t, int64(0), spy.calls.Load(), "gate is closed")

	open.Store(true)
	time.Sleep(35 * time.Millisecond)
	w.Stop()

	assert.Greater(t, spy.calls.Load(), int64(0))
}

func TestRefreshWorker_Restart_StopsPrevious(t *testing.T) {
	spy := &spyRefresher{}
	w := NewRefreshWorker(spy, 10*time.Millisecond, nil, logger.Nop())
	ctx := context.Background()

	w.Start(ctx)
	time.Sleep(30 * time.Millisecond)
	callsBefore := spy.calls.Load()
	require.Greater(t, callsBefore, int64(0))

	// second Start stops the first goroutine internally
	w.Start(ctx)
	time.Sleep(30 * time.Millisecond)
	w.Stop()

	assert.Greater(t, spy.calls.Load(), callsBefore)
}

func TestRefreshWorker_ContextCancel_StopsWorker(t *testing.T) {
	w := NewRefreshWorker(&spyRefresher{}, 10*time.Millisecond, nil, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	w.Start(ctx)
	time.Sleep(20 * time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop hung after context cancel")
	}
}

func TestRefreshWorker_RefreshError_DoesNotStopWorker(t *testing.T) {
	spy := &spyRefresher{err: assert.AnError}
	w := NewRefreshWorker(spy, 10*time.Millisecond, nil, logger.Nop())

	w.Start(context.Background())
	time.Sleep(55 * time.Millisecond)
	w.Stop()

	assert.GreaterOrEqual(t, spy.calls.Load(), int64(3))
}
