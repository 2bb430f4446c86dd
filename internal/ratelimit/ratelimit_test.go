package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowCountsDownToZero(t *testing.T) {
	limiter := New(3, time.Minute)

	allowed, remaining := limiter.Allow("10.0.0.1")
	assert.True(t, allowed)
	assert.Equal(t, 2, remaining)

	limiter.Allow("10.0.0.1")
	allowed, remaining = limiter.Allow("10.0.0.1")
	assert.True(t, allowed)
	assert.Equal(t, 0, remaining)

	allowed, remaining = limiter.Allow("10.0.0.1")
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
}

func TestAllowKeysAreIndependent(t *testing.T) {
	limiter := New(1, time.Minute)

	allowed, _ := limiter.Allow("10.0.0.1")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("10.0.0.1")
	assert.False(t, allowed)

	allowed, _ = limiter.Allow("10.0.0.2")
	assert.True(t, allowed)
}

func TestWindowExpiryFreesAttempts(t *testing.T) {
	limiter := New(1, time.Minute)
	now := time.Now()
	limiter.nowFn = func() time.Time { return now }

	allowed, _ := limiter.Allow("10.0.0.1")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("10.0.0.1")
	assert.False(t, allowed)

	now = now.Add(time.Minute + time.Second)
	allowed, remaining := limiter.Allow("10.0.0.1")
	assert.True(t, allowed)
	assert.Equal(t, 0, remaining)
}

func TestSweepDropsIdleKeys(t *testing.T) {
	limiter := New(2, time.Minute)
	now := time.Now()
	limiter.nowFn = func() time.Time { return now }

	limiter.Allow("idle")
	now = now.Add(2 * time.Minute)
	limiter.Allow("active")

	limiter.Sweep()

	assert.NotContains(t, limiter.clients, "idle")
	assert.Contains(t, limiter.clients, "active")
}
