package services

import (
	"context"
	"fmt"
	"time"
)

const slotWait = 2 * time.Minute

// newRateSlots returns a token bucket with n slots, all available.
func newRateSlots(n int) chan struct{} {
	if n <= 0 {
		n = 4
	}
	slots := make(chan struct{}, n)
	for i := 0; i < n; i++ {
		slots <- struct{}{}
	}
	return slots
}

// acquireRate blocks until a slot is available.
func acquireRate(ctx context.Context, slots chan struct{}) error {
	select {
	case <-slots:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(slotWait):
		return fmt.Errorf("timeout waiting for chat backend slot")
	}
}

func releaseRate(slots chan struct{}) {
	slots <- struct{}{}
}
