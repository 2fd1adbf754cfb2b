package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/menkalian/worklock/internal/aggregate"
)

// restartRefreshLocked cancels any in-flight background recomputation and
// starts a fresh one. Every mutation calls this so a live duration display
// reflects the latest state after the initial delay instead of waiting for
// the next periodic tick. Callers must hold t.mu.
func (t *Tracker) restartRefreshLocked() {
	if t.cancel != nil {
		t.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	go t.refreshLoop(ctx)
}

func (t *Tracker) refreshLoop(ctx context.Context) {
	timer := time.NewTimer(t.initialDelay)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		t.recalculate(ctx)
		timer.Reset(t.interval)
	}
}

// Recalculate recomputes today's totals immediately, with the current
// clock time as the cutoff.
func (t *Tracker) Recalculate() {
	t.recalculate(context.Background())
}

func (t *Tracker) recalculate(ctx context.Context) {
	now := time.Now()
	records, err := t.store.RecordsForDay(now, false, false)
	if err != nil {
		slog.Warn("failed to recompute day totals", "error", err)
		return
	}
	hasError, minutes := aggregate.WorkMinutes(records, aggregate.SecondOfDay(now))

	t.mu.Lock()
	defer t.mu.Unlock()
	if ctx.Err() != nil {
		return // a newer refresh owns the state by now
	}
	t.dayHasError = hasError
	t.dayMinutes = minutes
}
