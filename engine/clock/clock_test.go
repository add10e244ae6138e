package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClockIsIdle(t *testing.T) {
	c := NewClock()
	assert.Equal(t, StateIdle, c.State())
	assert.Zero(t, c.Elapsed())
	assert.False(t, c.IsRunning())
}

func TestStartRunsFromZero(t *testing.T) {
	c := NewClock()
	c.Start()
	assert.Equal(t, StateRunning, c.State())
	assert.Zero(t, c.Elapsed())
}

func TestTickAccumulatesOnlyWhileRunning(t *testing.T) {
	c := NewClock()

	c.Tick(0.5)
	assert.Zero(t, c.Elapsed(), "idle clock must not advance")

	c.Start()
	c.Tick(0.25)
	c.Tick(0.25)
	assert.InDelta(t, 0.5, c.Elapsed(), 1e-12)

	c.TogglePause()
	c.Tick(10.0)
	assert.InDelta(t, 0.5, c.Elapsed(), 1e-12, "paused clock must not advance")

	c.TogglePause()
	c.Tick(0.5)
	assert.InDelta(t, 1.0, c.Elapsed(), 1e-12)
}

func TestTogglePauseFromIdleIsNoOp(t *testing.T) {
	c := NewClock()
	c.TogglePause()
	assert.Equal(t, StateIdle, c.State())
	assert.Zero(t, c.Elapsed())
}

func TestStartRestartsFromAnyState(t *testing.T) {
	c := NewClock()

	c.Start()
	c.Tick(2.0)
	c.Start()
	assert.Equal(t, StateRunning, c.State())
	assert.Zero(t, c.Elapsed(), "restart while running must zero elapsed")

	c.Tick(1.0)
	c.TogglePause()
	c.Start()
	assert.Equal(t, StateRunning, c.State())
	assert.Zero(t, c.Elapsed(), "restart from paused must zero elapsed")
}

func TestResetReturnsToIdle(t *testing.T) {
	c := NewClock()
	c.Start()
	c.Tick(3.5)
	c.Reset()
	assert.Equal(t, StateIdle, c.State())
	assert.Zero(t, c.Elapsed())

	// Ticking after reset stays at zero until the next start.
	c.Tick(1.0)
	assert.Zero(t, c.Elapsed())
}

func TestResetFromPaused(t *testing.T) {
	c := NewClock()
	c.Start()
	c.Tick(1.0)
	c.TogglePause()
	c.Reset()
	assert.Equal(t, StateIdle, c.State())
	assert.Zero(t, c.Elapsed())
}

func TestElapsedIsMonotonicWhileRunning(t *testing.T) {
	c := NewClock()
	c.Start()
	prev := c.Elapsed()
	for i := 0; i < 100; i++ {
		c.Tick(0.016)
		assert.GreaterOrEqual(t, c.Elapsed(), prev)
		prev = c.Elapsed()
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Idle", StateIdle.String())
	assert.Equal(t, "Running", StateRunning.String())
	assert.Equal(t, "Paused", StatePaused.String())
	assert.Equal(t, "Unknown", State(99).String())
}
