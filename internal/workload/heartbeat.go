// Package workload provides heartbeat activities: background loops that prove their liveness to a health check
// supervisor by advancing a counter on every successful step.
package workload

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/einride/clock-go/pkg/clock"
	"go.uber.org/zap"
)

// Step is one unit of work. A non-nil error marks the heartbeat as failed for the rest of its lifetime.
type Step func(ctx context.Context) error

// stepFailure gives atomic.Value a single concrete type to hold.
type stepFailure struct {
	err error
}

// Heartbeat runs a Step at a fixed interval and reports whether it is still making progress.
type Heartbeat struct {
	// 64-bit atomics first for alignment on 32-bit platforms
	cycles   uint64 // written by Run
	lastSeen uint64 // written by StillHealthy

	name     string
	interval time.Duration
	step     Step
	clock    clock.Clock
	logger   *zap.Logger
	err      atomic.Value
}

// NewHeartbeat creates a heartbeat. Run must be called for it to make progress.
func NewHeartbeat(name string, interval time.Duration, step Step, clk clock.Clock, logger *zap.Logger) *Heartbeat {
	return &Heartbeat{
		name:     name,
		interval: interval,
		step:     step,
		clock:    clk,
		logger:   logger.With(zap.String("workload", name)),
	}
}

// String returns the name of the heartbeat.
func (h *Heartbeat) String() string {
	return h.name
}

// Cycles returns the number of successful steps so far.
func (h *Heartbeat) Cycles() uint64 {
	return atomic.LoadUint64(&h.cycles)
}

// Err returns the error that stopped the heartbeat, if any.
func (h *Heartbeat) Err() error {
	if failure, ok := h.err.Load().(stepFailure); ok {
		return failure.err
	}
	return nil
}

// StillHealthy returns true if no step has failed and at least one step succeeded since the previous call.
func (h *Heartbeat) StillHealthy() bool {
	if h.Err() != nil {
		return false
	}
	cycles := atomic.LoadUint64(&h.cycles)
	return atomic.SwapUint64(&h.lastSeen, cycles) != cycles
}

// Run steps until the context is done. A failed step stops the progress counter but Run keeps waiting for the
// context, so the failure stays visible to the supervisor.
func (h *Heartbeat) Run(ctx context.Context) error {
	ticker := h.clock.NewTicker(h.interval)
	defer ticker.Stop()
	ticks := ticker.C()
	ctxDone := ctx.Done()
	h.logger.Debug("running", zap.Duration("interval", h.interval))
	defer func() {
		h.logger.Debug("stopped", zap.Uint64("cycles", h.Cycles()))
	}()
	for {
		select {
		case <-ctxDone:
			return nil
		case <-ticks:
			if h.Err() != nil {
				continue
			}
			if err := h.step(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				h.logger.Warn("step failed", zap.Error(err))
				h.err.Store(stepFailure{err: err})
				continue
			}
			atomic.AddUint64(&h.cycles, 1)
		}
	}
}
