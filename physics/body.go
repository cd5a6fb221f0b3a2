// Package physics stores the kinematic state of game entities.
//
// A Body does not integrate itself. The entity that owns it reads and writes
// Position and Velocity in its own per-frame update, applying Gravity and
// bounce damping as its gameplay requires.
package physics

import "github.com/phanxgames/bubbo/mathx"

// Gravity is the downward acceleration applied per frame-scaled tick.
const Gravity = 9.8 / 60

// Default body parameters.
const (
	DefaultDamping = 0.7
	DefaultMass    = 1.0
)

// State selects how a body responds to forces.
type State uint8

const (
	StateStatic    State = iota // ignores forces, keeps its position
	StateDynamic                // forces change its velocity
	StateKinematic              // responds to forces but follows a scripted motion
)

func (s State) String() string {
	switch s {
	case StateStatic:
		return "static"
	case StateDynamic:
		return "dynamic"
	case StateKinematic:
		return "kinematic"
	default:
		return "unknown"
	}
}

// Body is the per-entity kinematic state. It is owned by exactly one entity.
type Body struct {
	UID      int
	Position mathx.Vec2
	Velocity mathx.Vec2
	Damping  float64
	Bounces  int

	force  mathx.Vec2
	state  State
	mass   float64
	radius float64
}

// New creates a static body with the given radius and default mass and damping.
func New(radius float64) *Body {
	return &Body{
		Damping: DefaultDamping,
		mass:    DefaultMass,
		radius:  radius,
	}
}

// NewWithMass creates a static body with an explicit mass. Panics if mass is
// not positive.
func NewWithMass(radius, mass float64) *Body {
	if mass <= 0 {
		panic("physics: mass must be positive")
	}
	b := New(radius)
	b.mass = mass
	return b
}

// Mass returns the body's constant mass.
func (b *Body) Mass() float64 { return b.mass }

// Radius returns the body's constant radius.
func (b *Body) Radius() float64 { return b.radius }

// State returns the current response mode.
func (b *Body) State() State { return b.state }

// Force returns the accumulated force.
func (b *Body) Force() mathx.Vec2 { return b.force }

// SetState changes the response mode. Switching to StateStatic zeroes the
// velocity and accumulated force in the same call.
func (b *Body) SetState(s State) {
	b.state = s
	if s == StateStatic {
		b.force.Zero()
		b.Velocity.Zero()
	}
}

// ApplyForce adds (fx, fy) / mass to the velocity. It is a no-op for static
// bodies. Position is not touched.
func (b *Body) ApplyForce(fx, fy float64) {
	if b.state == StateStatic {
		return
	}
	b.force.Set(fx, fy)
	b.Velocity.Add(fx/b.mass, fy/b.mass)
}

// Reset returns the body to its pooled state: static, at the origin, at rest,
// with no bounces recorded.
func (b *Body) Reset() {
	b.force.Zero()
	b.Position.Zero()
	b.Velocity.Zero()
	b.state = StateStatic
	b.Bounces = 0
}
