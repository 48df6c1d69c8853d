package workload

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKinds(t *testing.T) {
	require.Equal(t, []string{KindCountingSemaphore, KindIntegerMath, KindPolledQueue}, Kinds())
}

func TestNewStep_Unknown(t *testing.T) {
	_, err := NewStep("recursive-mutex")
	require.Error(t, err)
}

func TestSteps(t *testing.T) {
	for _, kind := range Kinds() {
		kind := kind
		t.Run(kind, func(t *testing.T) {
			step, err := NewStep(kind)
			require.NoError(t, err)
			// steps keep state between calls and must keep succeeding
			for i := 0; i < 100; i++ {
				require.NoError(t, step(context.Background()))
			}
		})
	}
}
