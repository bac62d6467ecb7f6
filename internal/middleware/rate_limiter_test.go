package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAttemptLimiterBlocksAfterMaxAttempts(t *testing.T) {
	current := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewAttemptLimiterWithClock(3, 15*time.Minute, func() time.Time { return current })

	for i := 0; i < 3; i++ {
		allowed, remaining, _ := limiter.Allow("user@example.com")
		assert.True(t, allowed)
		assert.Equal(t, 2-i, remaining)
	}

	allowed, remaining, resetTime := limiter.Allow("user@example.com")
	assert.False(t, allowed)
	assert.Zero(t, remaining)
	assert.Equal(t, current.Add(15*time.Minute), resetTime)
}

func TestAttemptLimiterWindowExpires(t *testing.T) {
	current := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewAttemptLimiterWithClock(2, 15*time.Minute, func() time.Time { return current })

	limiter.Allow("user@example.com")
	limiter.Allow("user@example.com")

	allowed, _, _ := limiter.Allow("user@example.com")
	assert.False(t, allowed)

	// Pasada la ventana, la cuenta arranca de nuevo
	current = current.Add(16 * time.Minute)
	allowed, remaining, _ := limiter.Allow("user@example.com")
	assert.True(t, allowed)
	assert.Equal(t, 1, remaining)
}

func TestAttemptLimiterIsolatesIdentifiers(t *testing.T) {
	current := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewAttemptLimiterWithClock(1, time.Hour, func() time.Time { return current })

	allowed, _, _ := limiter.Allow("a@example.com")
	assert.True(t, allowed)

	allowed, _, _ = limiter.Allow("a@example.com")
	assert.False(t, allowed)

	// Otro identificador no comparte la cuenta
	allowed, _, _ = limiter.Allow("b@example.com")
	assert.True(t, allowed)
}

func TestAttemptLimiterReset(t *testing.T) {
	current := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewAttemptLimiterWithClock(1, time.Hour, func() time.Time { return current })

	limiter.Allow("user@example.com")
	allowed, _, _ := limiter.Allow("user@example.com")
	assert.False(t, allowed)

	limiter.Reset("user@example.com")

	allowed, _, _ = limiter.Allow("user@example.com")
	assert.True(t, allowed)
}
