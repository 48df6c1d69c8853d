package healthcheck

import (
	"context"
	"errors"
	"time"

	"github.com/einride/clock-go/pkg/clock"
)

var (
	// ErrInvalidPeriod is returned when a timer is created with a non-positive period.
	ErrInvalidPeriod = errors.New("timer period must be positive")
	// ErrNilCallback is returned when a timer is created without a callback.
	ErrNilCallback = errors.New("timer callback must not be nil")
)

// Timer invokes a callback every period, driven by the ticker of a clock.
//
// The callback runs on the goroutine calling Run, so two invocations never overlap.
type Timer struct {
	clock      clock.Clock
	period     time.Duration
	autoReload bool
	callback   func(time.Time)
}

// NewTimer creates a timer. The timer does not fire until Run is called.
//
// A timer without auto-reload fires once and then stops.
func NewTimer(clk clock.Clock, period time.Duration, autoReload bool, callback func(time.Time)) (*Timer, error) {
	if period <= 0 {
		return nil, ErrInvalidPeriod
	}
	if callback == nil {
		return nil, ErrNilCallback
	}
	return &Timer{clock: clk, period: period, autoReload: autoReload, callback: callback}, nil
}

// Period returns the period of the timer.
func (t *Timer) Period() time.Duration {
	return t.period
}

// Run the timer until the context is done, or until the first expiry of a timer without auto-reload.
func (t *Timer) Run(ctx context.Context) error {
	ticker := t.clock.NewTicker(t.period)
	defer ticker.Stop()
	ticks := ticker.C()
	ctxDone := ctx.Done()
	for {
		select {
		case <-ctxDone:
			return nil
		case now := <-ticks:
			t.callback(now)
			if !t.autoReload {
				return nil
			}
		}
	}
}
