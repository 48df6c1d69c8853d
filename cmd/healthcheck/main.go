// Command healthcheck runs a set of heartbeat workloads and periodically reports whether all of them are still alive.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/einride/clock-go/pkg/clock"
	"github.com/einride/healthcheck-go"
	"github.com/einride/healthcheck-go/internal/config"
	"github.com/einride/healthcheck-go/internal/workload"
	"github.com/einride/healthcheck-go/pkg/healthmetrics"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfgPath := flag.String("config", "", "path to the YAML config file")
	flag.Parse()
	if *cfgPath == "" {
		fmt.Fprintln(os.Stderr, "usage: healthcheck -config <config.yaml>")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}
	if err := config.Validate(cfg, workload.Kinds()); err != nil {
		fmt.Fprintf(os.Stderr, "config validation failed: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, cfg, logger, newConsole(cfg.HealthCheck.Console)); err != nil {
		logger.Fatal("healthcheck failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, console healthcheck.Console) error {
	clk := clock.System()

	heartbeats := make([]*workload.Heartbeat, 0, len(cfg.Workloads))
	activities := make([]healthcheck.Activity, 0, len(cfg.Workloads))
	for _, w := range cfg.Workloads {
		step, err := workload.NewStep(w.Kind)
		if err != nil {
			return err
		}
		h := workload.NewHeartbeat(w.Name, w.Interval(), step, clk, logger)
		heartbeats = append(heartbeats, h)
		activities = append(activities, h)
	}

	metrics, err := healthmetrics.Init(logger, &healthmetrics.Config{
		Enabled: cfg.Metrics.Enabled,
		Addr:    cfg.Metrics.Addr,
		Path:    cfg.Metrics.Path,
	})
	if err != nil {
		return err
	}

	supervisorCfg := &healthcheck.Config{
		Activities:    activities,
		Period:        cfg.HealthCheck.Period(),
		EscalateAfter: cfg.HealthCheck.EscalateAfter,
		Clock:         clk,
		Logger:        logger.Named("supervisor"),
		Console:       console,
	}
	if metrics != nil {
		supervisorCfg.DiagnosticHooks = append(supervisorCfg.DiagnosticHooks, metrics.Observe)
	}
	// without its timer nothing would ever be checked, so this is fatal
	supervisor, err := healthcheck.New(supervisorCfg)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, h := range heartbeats {
		h := h
		g.Go(func() error {
			return h.Run(ctx)
		})
	}
	g.Go(func() error {
		return supervisor.Run(ctx)
	})
	if metrics != nil {
		g.Go(func() error {
			return metrics.Run(ctx)
		})
	}
	return g.Wait()
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, err
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}

func newConsole(destination string) healthcheck.Console {
	var out io.Writer
	switch destination {
	case config.ConsoleStderr:
		out = os.Stderr
	case config.ConsoleNone:
		out = io.Discard
	default:
		out = os.Stdout
	}
	return healthcheck.NewStdConsole(out)
}
