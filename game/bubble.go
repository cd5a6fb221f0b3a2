package game

import (
	"math"
	"math/rand/v2"

	"github.com/phanxgames/bubbo/audio"
	"github.com/phanxgames/bubbo/mathx"
	"github.com/phanxgames/bubbo/physics"
	"github.com/phanxgames/bubbo/scene"
	"github.com/phanxgames/bubbo/timing"
)

// BubbleTag is the pool tag for bubbles.
const BubbleTag = "bubble"

// LandSound plays when a dropped bubble hits the bounce line.
const LandSound = "audio/bubble-land-sfx.wav"

const impactDuration = 0.075

// GridPos is a bubble's cell on the board. Row J counts up from the bottom.
type GridPos struct {
	I, J int
}

// DefaultX is the cell's x position relative to the board's left edge.
func (p GridPos) DefaultX() float64 {
	return float64(p.I+1) * (BubbleSize / 2)
}

// DefaultY is the cell's y position; rows grow upward.
func (p GridPos) DefaultY() float64 {
	return -float64(p.J) * BubbleSize
}

// Bubble is a board bubble: its grid cell, its physics body and its view.
type Bubble struct {
	GridPos
	UID         int
	DropGroupID int
	View        *scene.Node
	BubbleView  *BubbleView
	Body        *physics.Body

	typ    BubbleType
	sfx    SFXPlayer
	rnd    *rand.Rand
	impact scene.Animation
}

// NewBubble creates an unconnected bubble. Pooled bubbles are created
// through Game.NewBubble instead.
func NewBubble(sfx SFXPlayer, rnd *rand.Rand) *Bubble {
	if sfx == nil {
		sfx = nopSFX{}
	}
	b := &Bubble{
		View:       scene.NewContainer("bubble"),
		BubbleView: NewBubbleView(TypeEmpty),
		Body:       physics.New(BubbleSize / 2),
		sfx:        sfx,
		rnd:        rnd,
	}
	b.View.AddChild(b.BubbleView.View)
	b.Reset(0)
	return b
}

// PoolTag implements pool.Tagged.
func (b *Bubble) PoolTag() string { return BubbleTag }

// Reset prepares the bubble for reuse under uid.
func (b *Bubble) Reset(uid int) {
	b.Body.Reset()
	b.UID = uid
	b.Body.UID = uid
	b.I, b.J = -1, -1
	b.DropGroupID = 0
	b.impact = nil
	b.BubbleView.View.SetPosition(0, 0)
}

// Type returns the bubble's type.
func (b *Bubble) Type() BubbleType { return b.typ }

// SetType changes the type and its view.
func (b *Bubble) SetType(t BubbleType) {
	b.typ = t
	b.BubbleView.SetType(t)
}

// X returns the body's x position.
func (b *Bubble) X() float64 { return b.Body.Position.X }

// SetX moves the body horizontally.
func (b *Bubble) SetX(x float64) { b.Body.Position.X = x }

// Connect pins the bubble to cell (i, j) and makes it static.
func (b *Bubble) Connect(i, j int) {
	b.I, b.J = i, j
	b.Body.SetState(physics.StateStatic)
}

// Drop releases the bubble with a random kick.
func (b *Bubble) Drop() {
	b.impact = nil
	b.BubbleView.View.SetPosition(0, 0)
	b.Body.SetState(physics.StateDynamic)
	b.Body.ApplyForce(mathx.RandomRange(b.rnd, -30, 30), mathx.RandomRange(b.rnd, -20, 0))
}

// Bounce reflects the fall off the bounce line, losing energy to damping.
func (b *Bubble) Bounce() {
	_ = b.sfx.Play(LandSound, audio.WithSpeed(mathx.RandomRange(b.rnd, 0.8, 1.1)))
	b.BubbleView.SetType(TypeGlow)
	body := b.Body
	body.Bounces++
	body.Position.Y -= body.Velocity.Y
	body.Velocity.Y = -math.Abs(body.Velocity.Y * body.Damping)
}

// Step integrates a dynamic bubble by delta frames and bounces it when it
// crosses floor while falling. It reports whether it bounced.
func (b *Bubble) Step(delta, floor float64) bool {
	body := b.Body
	if body.State() != physics.StateDynamic {
		return false
	}
	body.Velocity.Y += physics.Gravity * delta
	body.Position.Add(body.Velocity.X*delta, body.Velocity.Y*delta)
	if body.Position.Y >= floor && body.Velocity.Y > 0 {
		b.Bounce()
		return true
	}
	return false
}

// Impact nudges the view toward (dx, dy) and back, as if hit by a
// neighbour. The animation is also advanced by Update.
func (b *Bubble) Impact(dx, dy float64) scene.Animation {
	v := b.BubbleView.View
	b.impact = scene.NewSequence(
		scene.TweenPosition(v, dx, dy, impactDuration, nil),
		scene.NewDeferred(func() scene.Animation {
			return scene.TweenPosition(v, 0, 0, impactDuration, nil)
		}),
	)
	return b.impact
}

// Update copies the body position onto the view and advances the impact
// animation by delta frames.
func (b *Bubble) Update(delta float64) {
	b.View.SetPosition(b.Body.Position.X, b.Body.Position.Y)
	if b.impact != nil {
		b.impact.Update(float32(timing.DeltaToSeconds(delta)))
		if b.impact.Done() {
			b.impact = nil
		}
	}
}
