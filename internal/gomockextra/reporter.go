package gomockextra

import (
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
)

// GoroutineReporter returns a reporter that works when mocks are called from other goroutines.
//
// Predicates of supervised activities are invoked from the supervisor's timer goroutine, where t.Fatalf would
// only exit that goroutine and leave the test hanging. The reporter panics on Fatalf instead, crashing the test.
func GoroutineReporter(t *testing.T) gomock.TestReporter {
	return &goroutineReporter{T: t}
}

type goroutineReporter struct {
	T *testing.T
}

func (r goroutineReporter) Errorf(format string, args ...interface{}) {
	r.T.Errorf(format, args...)
}

func (r goroutineReporter) Fatalf(format string, args ...interface{}) {
	r.T.Helper()
	panic(fmt.Sprintf(format, args...))
}

func (r goroutineReporter) Helper() {
	r.T.Helper()
}
