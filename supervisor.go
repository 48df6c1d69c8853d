// Package healthcheck provides a supervisor that periodically checks the liveness of a fixed set of activities
// and reports pass or fail for every period.
package healthcheck

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/einride/clock-go/pkg/clock"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

// DefaultPeriod is the check period used when none is configured.
const DefaultPeriod = 3000 * time.Millisecond

// MaxActivities is the maximum number of activities a supervisor can check.
//
// Activity #k owns bit k of the failure mask, bit 0 is unused.
const MaxActivities = 63

var (
	// ErrNilActivity is returned by New when the config contains a nil activity.
	ErrNilActivity = errors.New("nil activity")
	// ErrTooManyActivities is returned by New when the config contains more than MaxActivities activities.
	ErrTooManyActivities = errors.New("too many activities")
	// ErrCheckInProgress is returned by Check when called while another check is still running.
	ErrCheckInProgress = errors.New("check in progress")
)

// DiagnosticHook is invoked once per period with the overall outcome and the full report.
//
// Hooks run on the timer goroutine and must return promptly.
type DiagnosticHook func(Outcome, Report)

// Config contains the full set of dependencies for a supervisor.
type Config struct {
	Activities []Activity
	// Period between checks, DefaultPeriod when zero.
	Period time.Duration
	// EscalateAfter is the number of consecutive failed periods after which an activity's failure is escalated.
	// Zero disables escalation.
	EscalateAfter   uint
	Clock           clock.Clock
	Logger          *zap.Logger
	Console         Console
	DiagnosticHooks []DiagnosticHook
}

type supervisedActivity struct {
	activity Activity
	index    int
	name     string
}

type Supervisor struct {
	cfg   Config
	timer *Timer
	// immutable, initialized by constructor
	activities []*supervisedActivity
	// guards the mutable state below, which is only accessed from within Check
	checking int32
	period   uint64
	streaks  []uint
}

// New creates a new supervisor from a config.
//
// An error is returned when the check timer can not be created, the supervisor must then not be used.
func New(config *Config) (*Supervisor, error) {
	cfg := *config
	if len(cfg.Activities) > MaxActivities {
		return nil, xerrors.Errorf("new supervisor: %d activities: %w", len(cfg.Activities), ErrTooManyActivities)
	}
	if cfg.Period == 0 {
		cfg.Period = DefaultPeriod
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.System()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Console == nil {
		cfg.Console = &nopConsole{}
	}
	s := &Supervisor{
		cfg:        cfg,
		activities: make([]*supervisedActivity, len(cfg.Activities)),
		streaks:    make([]uint, len(cfg.Activities)),
	}
	for i, activity := range cfg.Activities {
		if isNilActivity(activity) {
			return nil, xerrors.Errorf("new supervisor: activity #%d: %w", i+1, ErrNilActivity)
		}
		s.activities[i] = &supervisedActivity{
			activity: activity,
			index:    i + 1,
			name:     activityName(activity),
		}
	}
	timer, err := NewTimer(cfg.Clock, cfg.Period, true, s.onTimer)
	if err != nil {
		return nil, xerrors.Errorf("new supervisor: create check timer: %w", err)
	}
	s.timer = timer
	return s, nil
}

// Run the periodic health checks until the context is done.
func (s *Supervisor) Run(ctx context.Context) error {
	s.cfg.Logger.Info(
		"Starting health checks",
		zap.Duration("period", s.timer.Period()),
		zap.Int("activities", len(s.activities)),
	)
	defer s.cfg.Logger.Info("Stopped health checks")
	return s.timer.Run(ctx)
}

func (s *Supervisor) onTimer(time.Time) {
	if _, err := s.Check(); err != nil {
		s.cfg.Logger.Warn("Health check skipped", zap.Error(err))
	}
}

// Check evaluates every activity once and reports the result.
//
// Every predicate is invoked, in order, regardless of earlier failures. The period counter advances on every
// completed check, whether it passed or failed.
func (s *Supervisor) Check() (Report, error) {
	if !atomic.CompareAndSwapInt32(&s.checking, 0, 1) {
		return Report{}, ErrCheckInProgress
	}
	defer atomic.StoreInt32(&s.checking, 0)
	report := Report{
		Period:  s.period,
		Time:    s.cfg.Clock.Now(),
		Results: make([]Result, len(s.activities)),
	}
	for i, sa := range s.activities {
		result := Result{Index: sa.index, Name: sa.name, Healthy: s.evaluate(sa)}
		if result.Healthy {
			s.streaks[i] = 0
		} else {
			s.streaks[i]++
			result.Streak = s.streaks[i]
			report.FailureMask |= 1 << uint(sa.index)
			s.reportFailure(report.Period, result)
		}
		report.Results[i] = result
	}
	outcome := report.Outcome()
	switch outcome {
	case OutcomePass:
		s.cfg.Console.Printf("[%d] All activities still alive!", report.Period)
		s.cfg.Logger.Debug("Health check passed", zap.Object("report", report))
	default:
		s.cfg.Console.Printf("[%d] One or more activities failed! (mask 0x%x)", report.Period, report.FailureMask)
		s.cfg.Logger.Warn("Health check failed", zap.Object("report", report))
	}
	for _, hook := range s.cfg.DiagnosticHooks {
		hook(outcome, report)
	}
	s.period++
	return report, nil
}

func (s *Supervisor) evaluate(sa *supervisedActivity) (healthy bool) {
	defer func() {
		if r := recover(); r != nil {
			s.cfg.Logger.Error(
				"Activity predicate panicked",
				zap.String("activityName", sa.name),
				zap.Int("activityIndex", sa.index),
				zap.Any("panic", r),
			)
			healthy = false
		}
	}()
	return sa.activity.StillHealthy()
}

func (s *Supervisor) reportFailure(period uint64, result Result) {
	if s.isEscalated(result) {
		s.cfg.Console.Printf("[%d] Error in %s (failed %d consecutive periods)", period, result.Name, result.Streak)
		s.cfg.Logger.Error("Activity failing persistently", zap.Object("result", result))
		return
	}
	s.cfg.Console.Printf("[%d] Error in %s", period, result.Name)
	s.cfg.Logger.Warn("Activity failed", zap.Object("result", result))
}

func (s *Supervisor) isEscalated(result Result) bool {
	return s.cfg.EscalateAfter > 0 && result.Streak >= s.cfg.EscalateAfter
}
