package chat

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultRateWindow = 60 * time.Second
	DefaultRPMLimit   = 12
)

// Limiter caps outbound chat calls. Record must only be called right before a
// real outbound call; cache hits and canned replies never consume budget.
type Limiter interface {
	Limited(ctx context.Context) bool
	Record(ctx context.Context)
}

// RateWindow is a rolling-window limiter. All stored timestamps fall inside
// the trailing window; older ones are pruned before every capacity check.
type RateWindow struct {
	mu     sync.Mutex
	stamps []time.Time
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRateWindow(limit int, window time.Duration) *RateWindow {
	if limit <= 0 {
		limit = DefaultRPMLimit
	}
	if window <= 0 {
		window = DefaultRateWindow
	}
	return &RateWindow{limit: limit, window: window, now: time.Now}
}

func (w *RateWindow) Limited(_ context.Context) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.prune()
	return len(w.stamps) >= w.limit
}

func (w *RateWindow) Record(_ context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stamps = append(w.stamps, w.now())
}

// Len reports how many requests are inside the window right now.
func (w *RateWindow) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.prune()
	return len(w.stamps)
}

func (w *RateWindow) prune() {
	cutoff := w.now().Add(-w.window)
	i := 0
	for i < len(w.stamps) && !w.stamps[i].After(cutoff) {
		i++
	}
	if i > 0 {
		w.stamps = append(w.stamps[:0], w.stamps[i:]...)
	}
}
