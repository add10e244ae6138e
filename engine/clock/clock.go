// Package clock provides the animation clock that gates launch playback.
// The clock is frame-stepped: the owner feeds it wall-clock deltas and the
// clock decides whether animation time advances.
package clock

// State describes what the clock is currently doing.
type State int

const (
	// StateIdle means the launch has not started (or was reset). Time holds at zero.
	StateIdle State = iota
	// StateRunning means animation time advances with every tick.
	StateRunning
	// StatePaused means the launch is frozen mid-flight. Time holds until resumed.
	StatePaused
)

// String returns a human-readable state name for UI and logging.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// Clock accumulates elapsed animation seconds while running. It is owned by
// the simulation tick and is not safe for concurrent use.
type Clock struct {
	state   State
	elapsed float64
}

// NewClock creates an idle clock with zero elapsed time.
//
// Returns:
//   - *Clock: the newly created clock
func NewClock() *Clock {
	return &Clock{state: StateIdle}
}

// Start begins (or restarts) the launch. From any state the clock transitions
// to running with elapsed time reset to zero.
func (c *Clock) Start() {
	c.state = StateRunning
	c.elapsed = 0
}

// TogglePause flips between running and paused. Toggling an idle clock does
// nothing; there is no flight to freeze.
func (c *Clock) TogglePause() {
	switch c.state {
	case StateRunning:
		c.state = StatePaused
	case StatePaused:
		c.state = StateRunning
	}
}

// Reset returns the clock to idle with zero elapsed time.
func (c *Clock) Reset() {
	c.state = StateIdle
	c.elapsed = 0
}

// Tick advances elapsed time by dt seconds when the clock is running. Idle
// and paused clocks ignore the delta entirely. dt is not clamped; the caller
// supplies the wall-clock frame delta.
//
// Parameters:
//   - dt: seconds since the previous tick
func (c *Clock) Tick(dt float64) {
	if c.state == StateRunning {
		c.elapsed += dt
	}
}

// Elapsed returns the accumulated animation time in seconds.
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}

// State returns the clock's current state.
func (c *Clock) State() State {
	return c.state
}

// IsRunning reports whether animation time is currently advancing.
func (c *Clock) IsRunning() bool {
	return c.state == StateRunning
}
