// Package healthmetrics publishes health check reports as Prometheus metrics.
package healthmetrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/einride/healthcheck-go"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const namespace = "healthcheck"

type Config struct {
	Enabled         bool
	Addr            string
	Path            string
	ShutdownTimeout time.Duration
}

type Service struct {
	logger   *zap.Logger
	cfg      Config
	registry *prometheus.Registry
	checks   prometheus.Counter
	failures *prometheus.CounterVec
	healthy  *prometheus.GaugeVec
	streak   *prometheus.GaugeVec
	mask     prometheus.Gauge
	period   prometheus.Gauge
	marker   prometheus.Gauge
}

// Init creates the metrics service, or returns nil when metrics are disabled.
func Init(logger *zap.Logger, cfg *Config) (*Service, error) {
	if !cfg.Enabled {
		logger.Info("health metrics not enabled", zap.Any("cfg", cfg))
		return nil, nil
	}
	if cfg.Addr == "" {
		return nil, errors.New("health metrics enabled without listen address")
	}
	s := &Service{
		logger:   logger,
		cfg:      *cfg,
		registry: prometheus.NewRegistry(),
		checks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checks_total",
			Help:      "Number of completed check periods.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activity_failures_total",
			Help:      "Number of check periods in which the activity reported a failure.",
		}, []string{"activity", "index"}),
		healthy: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "activity_healthy",
			Help:      "1 if the activity was healthy in the latest check period, else 0.",
		}, []string{"activity", "index"}),
		streak: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "activity_failure_streak",
			Help:      "Consecutive check periods in which the activity failed.",
		}, []string{"activity", "index"}),
		mask: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "failure_mask",
			Help:      "Failure bitmask of the latest check period.",
		}),
		period: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "period",
			Help:      "Period counter of the latest check.",
		}),
		marker: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "marker",
			Help:      "Debugger marker of the latest outcome, 0xdeadbeef on pass and 0xbeefdead on fail.",
		}),
	}
	if cfg.Path == "" {
		s.cfg.Path = "/metrics"
	}
	if cfg.ShutdownTimeout == 0 {
		s.cfg.ShutdownTimeout = 5 * time.Second
	}
	for _, c := range []prometheus.Collector{s.checks, s.failures, s.healthy, s.streak, s.mask, s.period, s.marker} {
		if err := s.registry.Register(c); err != nil {
			return nil, errors.Wrap(err, "init health metrics")
		}
	}
	return s, nil
}

// Registry returns the registry holding the health metrics.
func (s *Service) Registry() *prometheus.Registry {
	return s.registry
}

// Observe records a report. It has the signature of a healthcheck.DiagnosticHook.
func (s *Service) Observe(outcome healthcheck.Outcome, report healthcheck.Report) {
	s.checks.Inc()
	s.mask.Set(float64(report.FailureMask))
	s.period.Set(float64(report.Period))
	s.marker.Set(float64(outcome.Marker()))
	for _, result := range report.Results {
		labels := prometheus.Labels{"activity": result.Name, "index": strconv.Itoa(result.Index)}
		if result.Healthy {
			s.healthy.With(labels).Set(1)
		} else {
			s.healthy.With(labels).Set(0)
			s.failures.With(labels).Inc()
		}
		s.streak.With(labels).Set(float64(result.Streak))
	}
}

// Run serves the metrics over HTTP until the context is done.
func (s *Service) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle(s.cfg.Path, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: s.cfg.Addr, Handler: mux}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		s.logger.Info("serving health metrics", zap.String("addr", s.cfg.Addr), zap.String("path", s.cfg.Path))
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	defer s.logger.Debug("stopped")
	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "health metrics")
	}
	return nil
}
