package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPeriodMs        = 3000
	DefaultMetricsAddr     = ":9100"
	DefaultMetricsPath     = "/metrics"
	DefaultLogLevel        = "info"
	DefaultConsole         = ConsoleStdout
	DefaultWorkloadDivisor = 10
)

// Console destinations.
const (
	ConsoleStdout = "stdout"
	ConsoleStderr = "stderr"
	ConsoleNone   = "none"
)

type Config struct {
	HealthCheck HealthCheckConfig `yaml:"healthcheck"`
	Log         LogConfig         `yaml:"log"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Workloads   []WorkloadConfig  `yaml:"workloads"`
}

// ---- HEALTH CHECK ----

type HealthCheckConfig struct {
	PeriodMs      int    `yaml:"period_ms"`
	EscalateAfter uint   `yaml:"escalate_after"` // 0 disables escalation
	Console       string `yaml:"console"`
}

// Period returns the check period as a duration.
func (c HealthCheckConfig) Period() time.Duration {
	return time.Duration(c.PeriodMs) * time.Millisecond
}

// ---- LOG ----

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// ---- METRICS ----

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Path    string `yaml:"path"`
}

// ---- WORKLOADS ----

type WorkloadConfig struct {
	Name       string `yaml:"name"`
	Kind       string `yaml:"kind"`
	IntervalMs int    `yaml:"interval_ms"` // 0 => period / DefaultWorkloadDivisor
}

// Interval returns the step interval of the workload as a duration.
func (c WorkloadConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

// Load reads a YAML config file and applies defaults.
// Unknown fields are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML document and applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// an empty document leaves every field at its default
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.HealthCheck.PeriodMs == 0 {
		cfg.HealthCheck.PeriodMs = DefaultPeriodMs
	}
	if cfg.HealthCheck.Console == "" {
		cfg.HealthCheck.Console = DefaultConsole
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = DefaultMetricsAddr
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
	for i := range cfg.Workloads {
		if cfg.Workloads[i].IntervalMs == 0 {
			cfg.Workloads[i].IntervalMs = cfg.HealthCheck.PeriodMs / DefaultWorkloadDivisor
			if cfg.Workloads[i].IntervalMs < 1 {
				cfg.Workloads[i].IntervalMs = 1
			}
		}
	}
}
