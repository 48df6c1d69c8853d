package workload

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/semaphore"
)

// Kinds of workloads known to New.
const (
	KindIntegerMath       = "integer-math"
	KindPolledQueue       = "polled-queue"
	KindCountingSemaphore = "counting-semaphore"
)

var steps = map[string]func() Step{
	KindIntegerMath:       IntegerMath,
	KindPolledQueue:       PolledQueue,
	KindCountingSemaphore: CountingSemaphore,
}

// Kinds returns the known workload kinds, sorted.
func Kinds() []string {
	kinds := make([]string, 0, len(steps))
	for kind := range steps {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// NewStep returns a fresh step of the given kind.
func NewStep(kind string) (Step, error) {
	newStep, ok := steps[kind]
	if !ok {
		return nil, fmt.Errorf("unknown workload kind %q", kind)
	}
	return newStep(), nil
}

// IntegerMath computes a fixed arithmetic series and verifies the result.
func IntegerMath() Step {
	const (
		n        = 1000
		expected = n * (n + 1) / 2
	)
	return func(context.Context) error {
		var sum int64
		for i := int64(1); i <= n; i++ {
			sum += i
		}
		if sum != expected {
			return fmt.Errorf("integer math: got %d, want %d", sum, expected)
		}
		return nil
	}
}

// PolledQueue pushes a sequence through a bounded queue without blocking and verifies it comes out in order.
func PolledQueue() Step {
	const depth = 16
	queue := make(chan uint32, depth)
	var next uint32
	return func(context.Context) error {
		first := next
		for i := 0; i < depth; i++ {
			select {
			case queue <- next:
				next++
			default:
				return fmt.Errorf("polled queue: full after %d items", i)
			}
		}
		for want := first; want != next; want++ {
			select {
			case got := <-queue:
				if got != want {
					return fmt.Errorf("polled queue: got %d, want %d", got, want)
				}
			default:
				return fmt.Errorf("polled queue: empty, want %d", want)
			}
		}
		return nil
	}
}

// CountingSemaphore takes every permit of a weighted semaphore, checks that no more can be taken and hands them back.
func CountingSemaphore() Step {
	const permits = 8
	sem := semaphore.NewWeighted(permits)
	return func(ctx context.Context) error {
		for i := 0; i < permits; i++ {
			if err := sem.Acquire(ctx, 1); err != nil {
				return err
			}
		}
		if sem.TryAcquire(1) {
			return fmt.Errorf("counting semaphore: acquired more than %d permits", permits)
		}
		sem.Release(permits)
		if !sem.TryAcquire(permits) {
			return fmt.Errorf("counting semaphore: %d permits not released", permits)
		}
		sem.Release(permits)
		return nil
	}
}
