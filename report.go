package healthcheck

import (
	"time"

	"go.uber.org/zap/zapcore"
)

// Result is the outcome of a single activity's predicate in one period.
type Result struct {
	// Index is the 1-based position of the activity, and the bit it owns in the failure mask.
	Index int
	Name  string
	// Healthy is the value returned by the activity's predicate.
	Healthy bool
	// Streak is the number of consecutive failed periods, including this one.
	Streak uint
}

func (r Result) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("index", r.Index)
	enc.AddString("name", r.Name)
	enc.AddBool("healthy", r.Healthy)
	if !r.Healthy {
		enc.AddUint("streak", r.Streak)
	}
	return nil
}

// Report is the status report produced by one check period.
type Report struct {
	Period      uint64
	Time        time.Time
	FailureMask uint64
	Results     []Result
}

// Outcome returns OutcomePass when no bit in the failure mask is set.
func (r Report) Outcome() Outcome {
	if r.FailureMask == 0 {
		return OutcomePass
	}
	return OutcomeFail
}

// Failed returns the results of the activities that failed during the period, in check order.
func (r Report) Failed() []Result {
	var failed []Result
	for _, result := range r.Results {
		if !result.Healthy {
			failed = append(failed, result)
		}
	}
	return failed
}

func (r Report) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddUint64("period", r.Period)
	enc.AddTime("time", r.Time)
	enc.AddString("outcome", r.Outcome().String())
	enc.AddUint64("failureMask", r.FailureMask)
	return enc.AddArray("failed", zapcore.ArrayMarshalerFunc(func(arr zapcore.ArrayEncoder) error {
		for _, result := range r.Failed() {
			if err := arr.AppendObject(result); err != nil {
				return err
			}
		}
		return nil
	}))
}
