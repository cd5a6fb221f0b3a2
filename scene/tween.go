package scene

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Animation is anything advanced once per frame until it reports Done.
// Navigation waits on animations returned by screen Show and Hide.
type Animation interface {
	Update(dt float32)
	Done() bool
}

// Tween animates up to 4 float64 fields of a node at once. The caller drives
// it with Update(dt) each frame; there is no global animation manager. If the
// target node is disposed the tween stops immediately.
type Tween struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	done   bool
	paused bool

	onComplete func()
}

// Update advances the tween by dt seconds and writes the values to the
// target fields.
func (g *Tween) Update(dt float32) {
	if g.done || g.paused {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.finish()
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	if g.target != nil {
		g.target.MarkDirty()
	}
	if allDone {
		g.finish()
	}
}

// Done reports whether every field reached its target.
func (g *Tween) Done() bool { return g.done }

// Pause freezes the tween until Resume.
func (g *Tween) Pause() { g.paused = true }

// Resume continues a paused tween.
func (g *Tween) Resume() { g.paused = false }

// Paused reports whether the tween is frozen.
func (g *Tween) Paused() bool { return g.paused }

// Kill stops the tween where it is without running OnComplete.
func (g *Tween) Kill() {
	g.done = true
	g.onComplete = nil
}

// OnComplete registers fn to run once when the tween finishes.
func (g *Tween) OnComplete(fn func()) *Tween {
	g.onComplete = fn
	return g
}

func (g *Tween) finish() {
	g.done = true
	if fn := g.onComplete; fn != nil {
		g.onComplete = nil
		fn()
	}
}

func newTween(target *Node, duration float32, fn ease.TweenFunc, fields []*float64, to []float64) *Tween {
	if fn == nil {
		fn = ease.Linear
	}
	g := &Tween{count: len(fields), target: target}
	for i, f := range fields {
		g.tweens[i] = gween.New(float32(*f), float32(to[i]), duration, fn)
		g.fields[i] = f
	}
	return g
}

// TweenPosition animates node.X and node.Y.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *Tween {
	return newTween(node, duration, fn, []*float64{&node.X, &node.Y}, []float64{toX, toY})
}

// TweenX animates node.X.
func TweenX(node *Node, to float64, duration float32, fn ease.TweenFunc) *Tween {
	return newTween(node, duration, fn, []*float64{&node.X}, []float64{to})
}

// TweenY animates node.Y.
func TweenY(node *Node, to float64, duration float32, fn ease.TweenFunc) *Tween {
	return newTween(node, duration, fn, []*float64{&node.Y}, []float64{to})
}

// TweenScale animates node.ScaleX and node.ScaleY.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *Tween {
	return newTween(node, duration, fn, []*float64{&node.ScaleX, &node.ScaleY}, []float64{toSX, toSY})
}

// TweenAlpha animates node.Alpha.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *Tween {
	return newTween(node, duration, fn, []*float64{&node.Alpha}, []float64{to})
}

// TweenRotation animates node.Rotation.
func TweenRotation(node *Node, to float64, duration float32, fn ease.TweenFunc) *Tween {
	return newTween(node, duration, fn, []*float64{&node.Rotation}, []float64{to})
}

// TweenValue animates an arbitrary float64 that is not a node field, such as
// a volume level.
func TweenValue(field *float64, to float64, duration float32, fn ease.TweenFunc) *Tween {
	return newTween(nil, duration, fn, []*float64{field}, []float64{to})
}

// Sequence runs animations one after another. A nil step is skipped.
type Sequence struct {
	steps []Animation
	index int
}

// NewSequence creates a Sequence of the given steps.
func NewSequence(steps ...Animation) *Sequence {
	return &Sequence{steps: steps}
}

// Update advances the current step. Leftover time is not carried over.
func (s *Sequence) Update(dt float32) {
	s.skipFinished()
	if s.index < len(s.steps) {
		s.steps[s.index].Update(dt)
	}
	s.skipFinished()
}

// Done reports whether every step finished.
func (s *Sequence) Done() bool {
	s.skipFinished()
	return s.index >= len(s.steps)
}

func (s *Sequence) skipFinished() {
	for s.index < len(s.steps) && (s.steps[s.index] == nil || s.steps[s.index].Done()) {
		s.index++
	}
}

// Parallel runs animations together and finishes when all of them have.
type Parallel struct {
	anims []Animation
}

// NewParallel groups anims. Nil entries are ignored.
func NewParallel(anims ...Animation) *Parallel {
	return &Parallel{anims: anims}
}

// Update advances every unfinished animation.
func (p *Parallel) Update(dt float32) {
	for _, a := range p.anims {
		if a != nil && !a.Done() {
			a.Update(dt)
		}
	}
}

// Done reports whether every animation finished.
func (p *Parallel) Done() bool {
	for _, a := range p.anims {
		if a != nil && !a.Done() {
			return false
		}
	}
	return true
}

// Deferred builds its animation on the first update. Tweens capture their
// start values when built, so a step that must start where the previous
// step ended is wrapped in a Deferred.
type Deferred struct {
	build func() Animation
	anim  Animation
	done  bool
}

// NewDeferred wraps build. A nil animation from build finishes immediately.
func NewDeferred(build func() Animation) *Deferred {
	return &Deferred{build: build}
}

// Update builds the animation if needed and advances it.
func (d *Deferred) Update(dt float32) {
	if d.done {
		return
	}
	if d.anim == nil {
		if d.build != nil {
			d.anim = d.build()
		}
		if d.anim == nil {
			d.done = true
			return
		}
	}
	d.anim.Update(dt)
	d.done = d.anim.Done()
}

// Done reports whether the built animation finished.
func (d *Deferred) Done() bool { return d.done }

// Delay finishes after a fixed number of seconds.
type Delay struct {
	remaining float32
}

// NewDelay creates a Delay of seconds.
func NewDelay(seconds float32) *Delay {
	return &Delay{remaining: seconds}
}

// Update counts down.
func (d *Delay) Update(dt float32) { d.remaining -= dt }

// Done reports whether the delay elapsed.
func (d *Delay) Done() bool { return d.remaining <= 0 }

// Call runs fn once on its first update and is then done.
type Call struct {
	fn   func()
	done bool
}

// NewCall wraps fn as an Animation step.
func NewCall(fn func()) *Call { return &Call{fn: fn} }

// Update runs fn the first time it is called.
func (c *Call) Update(float32) {
	if c.done {
		return
	}
	c.done = true
	if c.fn != nil {
		c.fn()
	}
}

// Done reports whether fn ran.
func (c *Call) Done() bool { return c.done }
