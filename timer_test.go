package healthcheck

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestNewTimer_Errors(t *testing.T) {
	clk := &mockClock{}
	_, err := NewTimer(clk, 0, true, func(time.Time) {})
	assert.Equal(t, ErrInvalidPeriod, err)
	_, err = NewTimer(clk, -time.Second, true, func(time.Time) {})
	assert.Equal(t, ErrInvalidPeriod, err)
	_, err = NewTimer(clk, time.Second, true, nil)
	assert.Equal(t, ErrNilCallback, err)
}

func TestTimer_AutoReload(t *testing.T) {
	// given an auto-reloading timer on a mock clock
	tickChan := make(chan time.Time)
	fired := make(chan time.Time, 3)
	timer, err := NewTimer(&mockClock{tickChan: tickChan}, time.Second, true, func(now time.Time) {
		fired <- now
	})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	var g errgroup.Group
	g.Go(func() error {
		return timer.Run(ctx)
	})
	// when ticking three times
	for i := 0; i < 3; i++ {
		tickChan <- time.Unix(int64(i), 0)
	}
	// then the callback has fired on every tick, in order
	for i := 0; i < 3; i++ {
		select {
		case now := <-fired:
			assert.Equal(t, time.Unix(int64(i), 0), now)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for expiry %d", i)
		}
	}
	cancel()
	require.NoError(t, g.Wait())
}

func TestTimer_OneShot(t *testing.T) {
	tickChan := make(chan time.Time, 1)
	var fired int
	timer, err := NewTimer(&mockClock{tickChan: tickChan}, time.Second, false, func(time.Time) {
		fired++
	})
	require.NoError(t, err)
	tickChan <- time.Unix(0, 0)
	// returns by itself after the first expiry
	require.NoError(t, timer.Run(context.Background()))
	assert.Equal(t, 1, fired)
}

func TestTimer_Cancelled(t *testing.T) {
	timer, err := NewTimer(&mockClock{tickChan: make(chan time.Time)}, time.Second, true, func(time.Time) {
		t.Fatal("unexpected expiry")
	})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, timer.Run(ctx))
}
