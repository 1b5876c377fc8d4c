package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStopwatch(t *testing.T) {
	sw := NewStopwatch("test")
	time.Sleep(5 * time.Millisecond)
	lap := sw.Lap("first")
	assert.GreaterOrEqual(t, lap, 5*time.Millisecond)

	second := sw.Lap("second")
	assert.Less(t, second, lap+time.Second)
	assert.GreaterOrEqual(t, sw.Total(), lap)
}

func TestTrack(t *testing.T) {
	done := Track("noop")
	assert.NotPanics(t, done)
}
