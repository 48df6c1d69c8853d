package config

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// MaxWorkloads is the number of activities a single supervisor can check.
const MaxWorkloads = 63

// Validate checks configuration correctness.
// It performs declarative validation only and never mutates the configuration.
// knownKinds lists the workload kinds the caller can build.
func Validate(cfg *Config, knownKinds []string) error {
	if cfg.HealthCheck.PeriodMs <= 0 {
		return fmt.Errorf("healthcheck: period_ms must be positive, got %d", cfg.HealthCheck.PeriodMs)
	}

	switch cfg.HealthCheck.Console {
	case ConsoleStdout, ConsoleStderr, ConsoleNone:
	default:
		return fmt.Errorf("healthcheck: unknown console %q", cfg.HealthCheck.Console)
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	if len(cfg.Workloads) > MaxWorkloads {
		return fmt.Errorf("workloads: at most %d supported, got %d", MaxWorkloads, len(cfg.Workloads))
	}

	kinds := make(map[string]bool, len(knownKinds))
	for _, k := range knownKinds {
		kinds[k] = true
	}

	names := make(map[string]bool, len(cfg.Workloads))
	for i, w := range cfg.Workloads {
		if w.Name == "" {
			return fmt.Errorf("workload #%d: name is required", i+1)
		}
		if names[w.Name] {
			return fmt.Errorf("workload %q: duplicate name", w.Name)
		}
		names[w.Name] = true

		if !kinds[w.Kind] {
			return fmt.Errorf("workload %q: unknown kind %q", w.Name, w.Kind)
		}

		// the counter must advance at least once between two checks
		if w.IntervalMs <= 0 || w.IntervalMs >= cfg.HealthCheck.PeriodMs {
			return fmt.Errorf(
				"workload %q: interval_ms must be in (0, %d), got %d",
				w.Name,
				cfg.HealthCheck.PeriodMs,
				w.IntervalMs,
			)
		}
	}
	return nil
}
