package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_AllowWithinWindow(t *testing.T) {
	l := New(2, time.Minute)
	defer l.Stop()

	assert.True(t, l.Allow("+911"))
	assert.Equal(t, 1, l.Remaining("+911"))
	assert.True(t, l.Allow("+911"))
	assert.False(t, l.Allow("+911"))
	assert.Equal(t, 0, l.Remaining("+911"))

	// other keys are independent
	assert.True(t, l.Allow("+912"))
}

func TestLimiter_WindowExpires(t *testing.T) {
	l := New(1, time.Minute)
	defer l.Stop()

	now := time.Now()
	l.now = func() time.Time { return now }
	assert.True(t, l.Allow("k"))
	assert.False(t, l.Allow("k"))

	now = now.Add(time.Minute)
	assert.True(t, l.Allow("k"))
}

func TestLimiter_ResetAndDisabled(t *testing.T) {
	l := New(1, time.Minute)
	defer l.Stop()
	assert.True(t, l.Allow("k"))
	l.Reset("k")
	assert.True(t, l.Allow("k"))

	off := New(0, time.Minute)
	defer off.Stop()
	for i := 0; i < 10; i++ {
		assert.True(t, off.Allow("k"))
	}
}
