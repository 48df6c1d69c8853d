package healthmetrics

import (
	"context"
	"testing"
	"time"

	"github.com/einride/healthcheck-go"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func TestInitDisabled(t *testing.T) {
	s, err := Init(zap.NewExample(), &Config{Enabled: false})
	require.NoError(t, err)
	require.Nil(t, s)
}

func TestInitWithoutAddr(t *testing.T) {
	_, err := Init(zap.NewExample(), &Config{Enabled: true})
	require.Error(t, err)
}

func TestObserve(t *testing.T) {
	s, err := Init(zap.NewExample(), &Config{Enabled: true, Addr: "127.0.0.1:0"})
	require.NoError(t, err)
	report := healthcheck.Report{
		Period:      2,
		FailureMask: 1 << 2,
		Results: []healthcheck.Result{
			{Index: 1, Name: "integer-math", Healthy: true},
			{Index: 2, Name: "polled-queue", Streak: 3},
		},
	}
	s.Observe(report.Outcome(), report)
	s.Observe(report.Outcome(), report)
	require.Equal(t, float64(2), testutil.ToFloat64(s.checks))
	require.Equal(t, float64(4), testutil.ToFloat64(s.mask))
	require.Equal(t, float64(2), testutil.ToFloat64(s.period))
	require.Equal(t, float64(0xbeefdead), testutil.ToFloat64(s.marker))
	require.Equal(t, float64(1), testutil.ToFloat64(s.healthy.WithLabelValues("integer-math", "1")))
	require.Equal(t, float64(0), testutil.ToFloat64(s.healthy.WithLabelValues("polled-queue", "2")))
	require.Equal(t, float64(2), testutil.ToFloat64(s.failures.WithLabelValues("polled-queue", "2")))
	require.Equal(t, float64(3), testutil.ToFloat64(s.streak.WithLabelValues("polled-queue", "2")))
	families, err := s.Registry().Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
}

func TestObserveFromSupervisor(t *testing.T) {
	s, err := Init(zap.NewExample(), &Config{Enabled: true, Addr: "127.0.0.1:0"})
	require.NoError(t, err)
	supervisor, err := healthcheck.New(&healthcheck.Config{
		Activities:      []healthcheck.Activity{healthcheck.NewActivity("integer-math", func() bool { return true })},
		DiagnosticHooks: []healthcheck.DiagnosticHook{s.Observe},
	})
	require.NoError(t, err)
	_, err = supervisor.Check()
	require.NoError(t, err)
	require.Equal(t, float64(0xdeadbeef), testutil.ToFloat64(s.marker))
	require.Equal(t, float64(1), testutil.ToFloat64(s.healthy.WithLabelValues("integer-math", "1")))
}

func TestRun(t *testing.T) {
	s, err := Init(zap.NewExample(), &Config{Enabled: true, Addr: "127.0.0.1:0", ShutdownTimeout: time.Second})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	var g errgroup.Group
	g.Go(func() error {
		return s.Run(ctx)
	})
	cancel()
	require.NoError(t, g.Wait())
}
