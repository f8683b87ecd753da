package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketExhausts(t *testing.T) {
	bucket := NewTokenBucket(3, 1, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, _ := bucket.Allow()
		assert.True(t, allowed)
	}

	allowed, wait := bucket.Allow()
	assert.False(t, allowed)
	assert.Greater(t, wait, time.Duration(0))
}

func TestCleanupConcurrentWithAllow(t *testing.T) {
	rl := NewRateLimiter()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			rl.Allow("alice", "send_message")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			rl.Cleanup()
		}
	}()
	wg.Wait()

	// Active bucket survives cleanup.
	allowed, _ := rl.Allow("bob", "send_message")
	assert.True(t, allowed)
}

func TestRateLimiterIsolatesUsersAndActions(t *testing.T) {
	rl := NewRateLimiter()

	for i := 0; i < 10; i++ {
		allowed, _ := rl.Allow("alice", "send_message")
		assert.True(t, allowed)
	}

	allowed, _ := rl.Allow("alice", "send_message")
	assert.False(t, allowed)

	// A different user and a different action each get their own bucket.
	allowed, _ = rl.Allow("bob", "send_message")
	assert.True(t, allowed)
	allowed, _ = rl.Allow("alice", "other")
	assert.True(t, allowed)
}
