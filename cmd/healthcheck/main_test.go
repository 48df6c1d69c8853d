package main

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/einride/healthcheck-go/internal/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestRun(t *testing.T) {
	cfg, err := config.Parse([]byte(`
healthcheck:
  period_ms: 20
  console: none
workloads:
  - name: math
    kind: integer-math
    interval_ms: 2
  - name: queue
    kind: polled-queue
    interval_ms: 2
  - name: semaphore
    kind: counting-semaphore
    interval_ms: 2
`))
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	console := &recordingConsole{}
	require.NoError(t, run(ctx, cfg, zaptest.NewLogger(t), console))
	// every heartbeat steps many times per period, so checks pass
	var passed int
	for _, line := range console.Lines() {
		if strings.HasSuffix(line, "] All activities still alive!") {
			passed++
		}
	}
	require.NotZero(t, passed)
}

type recordingConsole struct {
	mu    sync.Mutex
	lines []string
}

func (c *recordingConsole) Printf(format string, values ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, fmt.Sprintf(format, values...))
}

func (c *recordingConsole) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]string, len(c.lines))
	copy(result, c.lines)
	return result
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger(config.LogConfig{Level: "debug", Development: true})
	require.NoError(t, err)
	require.NotNil(t, logger)
	_, err = newLogger(config.LogConfig{Level: "loud"})
	require.Error(t, err)
}
