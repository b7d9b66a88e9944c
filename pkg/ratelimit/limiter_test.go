package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucketTake(t *testing.T) {
	tb := NewTokenBucket(2, time.Hour)

	assert.True(t, tb.take())
	assert.True(t, tb.take())
	assert.False(t, tb.take())
}

func TestTokenBucketRefill(t *testing.T) {
	tb := NewTokenBucket(1, 20*time.Millisecond)
	require.True(t, tb.take())
	require.False(t, tb.take())

	time.Sleep(30 * time.Millisecond)
	assert.True(t, tb.take())
}

func TestTokenBucketWait(t *testing.T) {
	tb := NewTokenBucket(1, 50*time.Millisecond)
	require.NoError(t, tb.Wait(context.Background()))

	start := time.Now()
	require.NoError(t, tb.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestTokenBucketWaitCancelled(t *testing.T) {
	tb := NewTokenBucket(1, time.Hour)
	require.True(t, tb.take())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := tb.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestPerMinute(t *testing.T) {
	assert.IsType(t, Unlimited{}, PerMinute(0))
	assert.IsType(t, Unlimited{}, PerMinute(-3))

	tb, ok := PerMinute(30).(*TokenBucket)
	require.True(t, ok)
	assert.Equal(t, 2*time.Second, tb.refillPeriod)
	assert.Equal(t, 1, tb.capacity)
}

func TestUnlimited(t *testing.T) {
	var u Unlimited
	for i := 0; i < 100; i++ {
		assert.NoError(t, u.Wait(context.Background()))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, u.Wait(ctx), context.Canceled)
}
