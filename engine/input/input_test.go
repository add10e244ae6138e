package input

import (
	"sync"
	"testing"

	"github.com/Carmen-Shannon/ignition/common"
	"github.com/stretchr/testify/assert"
)

func TestHeldKeysPersistAcrossSnapshots(t *testing.T) {
	tr := NewTracker()
	tr.KeyDown(common.KeyW)
	tr.KeyDown(common.KeyLeftShift)

	s := tr.Snapshot()
	assert.True(t, s.MoveForward)
	assert.True(t, s.SpeedBoost)

	s = tr.Snapshot()
	assert.True(t, s.MoveForward, "held key must survive the snapshot")
	assert.True(t, s.SpeedBoost)

	tr.KeyUp(common.KeyW)
	tr.KeyUp(common.KeyLeftShift)
	s = tr.Snapshot()
	assert.False(t, s.MoveForward)
	assert.False(t, s.SpeedBoost)
}

func TestMovementKeyMapping(t *testing.T) {
	tr := NewTracker()
	for _, code := range []uint32{
		common.KeyW, common.KeyS, common.KeyA,
		common.KeyD, common.KeyE, common.KeyQ,
	} {
		tr.KeyDown(code)
	}

	s := tr.Snapshot()
	assert.True(t, s.MoveForward)
	assert.True(t, s.MoveBackward)
	assert.True(t, s.MoveLeft)
	assert.True(t, s.MoveRight)
	assert.True(t, s.MoveUp)
	assert.True(t, s.MoveDown)
}

func TestOneShotRequestsClearOnSnapshot(t *testing.T) {
	tr := NewTracker()
	tr.KeyDown(common.KeyL)
	tr.KeyDown(common.KeyP)
	tr.KeyDown(common.KeyR)
	tr.KeyDown(common.KeyC)
	tr.KeyDown(common.KeyV)
	tr.KeyDown(common.KeyX)

	s := tr.Snapshot()
	assert.True(t, s.LaunchRequested)
	assert.True(t, s.PauseToggleRequested)
	assert.True(t, s.ResetRequested)
	assert.True(t, s.CycleLeftCamera)
	assert.True(t, s.CycleRightCamera)
	assert.True(t, s.SplitToggleRequested)

	s = tr.Snapshot()
	assert.False(t, s.LaunchRequested, "one-shots must clear after a snapshot")
	assert.False(t, s.PauseToggleRequested)
	assert.False(t, s.ResetRequested)
	assert.False(t, s.CycleLeftCamera)
	assert.False(t, s.CycleRightCamera)
	assert.False(t, s.SplitToggleRequested)
}

func TestLookDeltasAccumulateOnlyWhileActive(t *testing.T) {
	tr := NewTracker(WithSensitivity(0.002))

	tr.MouseMove(100, 100)
	s := tr.Snapshot()
	assert.Zero(t, s.LookDeltaYaw, "movement outside look mode must not rotate")
	assert.Zero(t, s.LookDeltaPitch)

	assert.True(t, tr.ToggleLook(100, 100))
	tr.MouseMove(110, 90)

	s = tr.Snapshot()
	assert.True(t, s.LookActive)
	// +10px right at 0.002 rad/px, +10px up (screen Y shrinks upward).
	assert.InDelta(t, 0.02, s.LookDeltaYaw, 1e-6)
	assert.InDelta(t, 0.02, s.LookDeltaPitch, 1e-6)

	s = tr.Snapshot()
	assert.Zero(t, s.LookDeltaYaw, "deltas must clear after a snapshot")
	assert.Zero(t, s.LookDeltaPitch)
}

func TestLookDeltasChainBetweenMoves(t *testing.T) {
	tr := NewTracker(WithSensitivity(1))

	tr.ToggleLook(0, 0)
	tr.MouseMove(5, 0)
	tr.MouseMove(9, 0)

	s := tr.Snapshot()
	assert.InDelta(t, 9.0, s.LookDeltaYaw, 1e-6, "deltas measure from the previous move")
}

func TestToggleLookAnchorsDeltaOrigin(t *testing.T) {
	tr := NewTracker(WithSensitivity(1))

	// Move far away while inactive, then activate: the first active move
	// must measure from the activation point, not the stale position.
	tr.MouseMove(500, 500)
	assert.True(t, tr.ToggleLook(200, 200))
	tr.MouseMove(201, 199)

	s := tr.Snapshot()
	assert.InDelta(t, 1.0, s.LookDeltaYaw, 1e-6)
	assert.InDelta(t, 1.0, s.LookDeltaPitch, 1e-6)

	assert.False(t, tr.ToggleLook(0, 0), "second toggle leaves look mode")
	assert.False(t, tr.Snapshot().LookActive)
}

func TestPointerStateTracksLeftButton(t *testing.T) {
	tr := NewTracker()

	tr.LeftMouseDown(40, 30)
	s := tr.Snapshot()
	assert.True(t, s.PointerDown)
	assert.Equal(t, float32(40), s.PointerX)
	assert.Equal(t, float32(30), s.PointerY)

	s = tr.Snapshot()
	assert.True(t, s.PointerDown, "button level persists until release")

	tr.LeftMouseUp(42, 31)
	s = tr.Snapshot()
	assert.False(t, s.PointerDown)
	assert.Equal(t, float32(42), s.PointerX)
}

func TestPointerPositionUpdatesWithoutLookMode(t *testing.T) {
	tr := NewTracker()
	tr.MouseMove(320, 240)

	s := tr.Snapshot()
	assert.Equal(t, float32(320), s.PointerX)
	assert.Equal(t, float32(240), s.PointerY)
}

func TestTrackerIsSafeForConcurrentUse(t *testing.T) {
	tr := NewTracker()

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			tr.KeyDown(common.KeyW)
			tr.KeyUp(common.KeyW)
		}
	}()
	go func() {
		defer wg.Done()
		for i := int32(0); i < 1000; i++ {
			tr.MouseMove(i, i)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			_ = tr.Snapshot()
		}
	}()
	wg.Wait()
}
