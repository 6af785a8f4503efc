package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_BurstThenReject(t *testing.T) {
	ml := NewMemoryLimiter(0.001, 3, time.Minute)
	defer ml.Stop()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := ml.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok, i)
	}

	ok, _ := ml.Allow(ctx, "10.0.0.1")
	assert.False(t, ok)

	ok, _ = ml.Allow(ctx, "10.0.0.2")
	assert.True(t, ok, "keys are independent")
}

func TestMemoryLimiterPerWindow(t *testing.T) {
	ml := NewMemoryLimiterPerWindow(2, time.Hour)
	defer ml.Stop()
	ctx := context.Background()

	a, _ := ml.Allow(ctx, "k")
	b, _ := ml.Allow(ctx, "k")
	c, _ := ml.Allow(ctx, "k")

	assert.True(t, a)
	assert.True(t, b)
	assert.False(t, c)
}

func TestMemoryLimiter_EvictsIdleKeys(t *testing.T) {
	ml := NewMemoryLimiter(1, 1, time.Minute)
	defer ml.Stop()

	_, _ = ml.Allow(context.Background(), "idle")
	ml.evict(time.Now().Add(2 * time.Minute))

	ml.mu.Lock()
	defer ml.mu.Unlock()
	assert.Empty(t, ml.visitors)
}

func expectHit(mock redismock.ClientMock, key string, count int64) {
	mock.ExpectTxPipeline()
	mock.ExpectIncr(key).SetVal(count)
	mock.ExpectExpireNX(key, time.Minute).SetVal(count == 1)
	mock.ExpectTxPipelineExec()
}

func TestRedisLimiter_CountsWithinWindow(t *testing.T) {
	db, mock := redismock.NewClientMock()
	rl := NewRedisLimiter(db, "ironpeak:verify", 2, time.Minute)
	ctx := context.Background()

	expectHit(mock, "ironpeak:verify:1.2.3.4", 1)
	expectHit(mock, "ironpeak:verify:1.2.3.4", 2)
	expectHit(mock, "ironpeak:verify:1.2.3.4", 3)

	first, err := rl.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	second, err := rl.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	third, err := rl.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)

	assert.True(t, first)
	assert.True(t, second)
	assert.False(t, third)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLimiter_PropagatesErrors(t *testing.T) {
	db, mock := redismock.NewClientMock()
	rl := NewRedisLimiter(db, "", 5, time.Minute)

	mock.ExpectTxPipeline()
	mock.ExpectIncr("ironpeak:rate_limit:k").SetErr(errors.New("redis down"))

	ok, err := rl.Allow(context.Background(), "k")

	assert.Error(t, err)
	assert.False(t, ok)
}

func TestRedisLimiter_DisabledAllows(t *testing.T) {
	var rl *RedisLimiter
	ok, err := rl.Allow(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
}
