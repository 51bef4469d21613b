package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestDo_SucceedsAfterFailures(t *testing.T) {
	policy := Policy{MaxAttempts: 3, Delay: time.Millisecond}
	calls := 0

	err := policy.Do(context.Background(), zap.NewNop().Sugar(), "test op", func() error {
		calls++
		if calls < 3 {
			return errors.New("flaky")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	policy := Policy{MaxAttempts: 2, Delay: time.Millisecond}
	calls := 0
	boom := errors.New("boom")

	err := policy.Do(context.Background(), zap.NewNop().Sugar(), "test op", func() error {
		calls++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestDo_ContextCancelDuringBackoff(t *testing.T) {
	policy := Policy{MaxAttempts: 3, Delay: time.Minute}
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := policy.Do(ctx, zap.NewNop().Sugar(), "test op", func() error {
		return errors.New("always fails")
	})

	assert.ErrorIs(t, err, context.Canceled)
}
