package healthcheck

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestReport_MarshalLogObject(t *testing.T) {
	report := Report{
		Period:      4,
		Time:        time.Unix(10, 0).UTC(),
		FailureMask: 1 << 2,
		Results: []Result{
			{Index: 1, Name: "activity1", Healthy: true},
			{Index: 2, Name: "activity2", Streak: 5},
		},
	}
	enc := zapcore.NewMapObjectEncoder()
	require.NoError(t, report.MarshalLogObject(enc))
	assert.Equal(t, uint64(4), enc.Fields["period"])
	assert.Equal(t, "Fail", enc.Fields["outcome"])
	assert.Equal(t, uint64(4), enc.Fields["failureMask"])
	assert.Equal(t, []interface{}{
		map[string]interface{}{"index": 2, "name": "activity2", "healthy": false, "streak": uint(5)},
	}, enc.Fields["failed"])
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "Pass", OutcomePass.String())
	assert.Equal(t, "Fail", OutcomeFail.String())
	assert.Equal(t, "Outcome(7)", Outcome(7).String())
	assert.Equal(t, uint32(0xdeadbeef), OutcomePass.Marker())
	assert.Equal(t, uint32(0xbeefdead), OutcomeFail.Marker())
}

func TestActivityName(t *testing.T) {
	assert.Equal(t, "named", activityName(NewActivity("named", nil)))
	assert.Equal(t, "healthcheck.unnamedActivity", activityName(&unnamedActivity{}))
}

type unnamedActivity struct{}

func (unnamedActivity) StillHealthy() bool { return true }
