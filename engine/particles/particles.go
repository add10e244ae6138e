// Package particles runs the exhaust particle effect. Particles live in a
// fixed pool allocated once at construction; a slot's active flag is the only
// lifecycle signal, so steady-state simulation never touches the heap.
package particles

import (
	"math/rand"

	"github.com/Carmen-Shannon/ignition/common"
	"github.com/chewxy/math32"
)

// Particle is one pooled particle. Slots keep their index for as long as the
// particle is active; expiry just clears the flag and frees the slot for the
// next emission.
type Particle struct {
	Position common.Vec3
	Velocity common.Vec3
	Color    [4]float32
	Lifetime float32
	Size     float32
	Active   bool
}

// Emitter owns the particle pool and advances it once per simulation tick.
// It is owned by the simulation tick and is not safe for concurrent use.
type Emitter interface {
	// Update ages every active particle and, when emitting, spawns new ones
	// at the given position. Aging runs first, so a particle emitted this
	// tick holds its spawn state until the next one.
	//
	// Emission accumulates fractionally: rate*dt is added to a carry and only
	// whole particles are spawned, so low rates and high frame rates still
	// average out correctly. When the pool is exhausted the remainder of the
	// frame's emissions is dropped silently.
	//
	// Parameters:
	//   - dt: seconds since the previous tick
	//   - position: world-space emission point for this tick
	//   - emitting: whether new particles should spawn this tick
	Update(dt float32, position common.Vec3, emitting bool)

	// AppendDrawList appends one draw vertex per active particle to dst and
	// returns the extended slice. Particles appear in pool-scan order, which
	// is stable within a tick.
	//
	// Parameters:
	//   - dst: destination slice, typically reused across frames via dst[:0]
	//
	// Returns:
	//   - []GPUParticleVertex: dst extended with the active particles
	AppendDrawList(dst []GPUParticleVertex) []GPUParticleVertex

	// ActiveCount returns the number of live particles.
	//
	// Returns:
	//   - int: active particle count, never above Capacity
	ActiveCount() int

	// Capacity returns the fixed pool size chosen at construction.
	//
	// Returns:
	//   - int: the pool capacity
	Capacity() int
}

type emitterImpl struct {
	pool        []Particle
	capacity    int
	activeCount int
	accumulator float32

	rate        float32
	minLifetime float32
	maxLifetime float32
	minSize     float32
	maxSize     float32
	minSpeed    float32
	maxSpeed    float32
	direction   common.Vec3
	spread      float32
}

var _ Emitter = &emitterImpl{}

// NewEmitter creates an Emitter with the default exhaust tuning: 2000 slot
// pool, 100 particles per second, 1-2 second lifetimes, emitted downward in
// a ~17 degree cone.
//
// Parameters:
//   - options: functional options to configure the emitter
//
// Returns:
//   - Emitter: the newly created emitter
func NewEmitter(options ...EmitterBuilderOption) Emitter {
	e := &emitterImpl{
		capacity:    2000,
		rate:        100.0,
		minLifetime: 1.0,
		maxLifetime: 2.0,
		minSize:     0.5,
		maxSize:     1.5,
		minSpeed:    5.0,
		maxSpeed:    15.0,
		direction:   common.Vec3{X: 0, Y: -1, Z: 0},
		spread:      0.3,
	}
	for _, option := range options {
		option(e)
	}
	if e.capacity <= 0 {
		panic("particles: pool capacity must be positive")
	}
	e.pool = make([]Particle, e.capacity)
	return e
}

func (e *emitterImpl) Update(dt float32, position common.Vec3, emitting bool) {
	for i := range e.pool {
		p := &e.pool[i]
		if !p.Active {
			continue
		}

		p.Lifetime -= dt
		if p.Lifetime <= 0 {
			p.Active = false
			e.activeCount--
			continue
		}

		p.Position = p.Position.Add(p.Velocity.Scale(dt))
		// Alpha is the remaining share of the configured maximum lifetime.
		p.Color[3] = p.Lifetime / e.maxLifetime
	}

	if emitting {
		e.emit(dt, position)
	}
}

func (e *emitterImpl) AppendDrawList(dst []GPUParticleVertex) []GPUParticleVertex {
	for i := range e.pool {
		p := &e.pool[i]
		if !p.Active {
			continue
		}
		dst = append(dst, GPUParticleVertex{
			Position: p.Position.Array(),
			Size:     p.Size,
			Color:    p.Color,
		})
	}
	return dst
}

func (e *emitterImpl) ActiveCount() int {
	return e.activeCount
}

func (e *emitterImpl) Capacity() int {
	return len(e.pool)
}

func (e *emitterImpl) emit(dt float32, position common.Vec3) {
	e.accumulator += e.rate * dt
	count := int(e.accumulator)
	e.accumulator -= float32(count)

	for i := 0; i < count; i++ {
		idx := e.findInactive()
		if idx < 0 {
			break
		}

		p := &e.pool[idx]
		p.Active = true
		p.Position = position
		p.Lifetime = randRange(e.minLifetime, e.maxLifetime)
		p.Size = randRange(e.minSize, e.maxSize)
		p.Velocity = coneDirection(e.direction, e.spread).Scale(randRange(e.minSpeed, e.maxSpeed))
		p.Color = [4]float32{
			randRange(0.8, 1.0),
			randRange(0.5, 0.8),
			randRange(0.1, 0.3),
			1.0,
		}
		e.activeCount++
	}
}

// findInactive scans the pool for the first free slot. Returns -1 when the
// pool is exhausted.
func (e *emitterImpl) findInactive() int {
	for i := range e.pool {
		if !e.pool[i].Active {
			return i
		}
	}
	return -1
}

func randRange(min, max float32) float32 {
	return min + rand.Float32()*(max-min)
}

// coneDirection samples a unit direction inside a cone around base. The cone
// angle is uniform in [0, spread] and the roll around the axis uniform in
// [0, 2pi). The perpendicular frame is built from world up, or world right
// when base is itself nearly vertical.
func coneDirection(base common.Vec3, spread float32) common.Vec3 {
	theta := randRange(0, spread)
	phi := randRange(0, 2*math32.Pi)

	up := common.WorldUp
	if math32.Abs(base.Y) >= 0.9 {
		up = common.WorldRight
	}
	right := up.Cross(base).Normalize()
	up = base.Cross(right).Normalize()

	sinTheta := math32.Sin(theta)
	cosTheta := math32.Cos(theta)
	sinPhi := math32.Sin(phi)
	cosPhi := math32.Cos(phi)

	dir := base.Scale(cosTheta).
		Add(right.Scale(cosPhi).Add(up.Scale(sinPhi)).Scale(sinTheta))
	return dir.Normalize()
}
