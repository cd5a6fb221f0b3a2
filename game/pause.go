package game

import (
	"github.com/phanxgames/bubbo/scene"
	"github.com/phanxgames/bubbo/sliceutil"
	"github.com/phanxgames/bubbo/timing"
)

// PauseSystemDesc registers the PauseSystem.
var PauseSystemDesc = Descriptor[*PauseSystem]{
	ID:  "pause",
	New: func() *PauseSystem { return &PauseSystem{} },
}

// PauseSystem freezes gameplay animations while the game is paused. Game
// animations are added with AddTween so that they stop together.
type PauseSystem struct {
	SystemBase

	paused    bool
	listening bool
	tweens    []scene.Animation
}

// IsPaused reports whether the game is paused.
func (p *PauseSystem) IsPaused() bool { return p.paused }

// Start begins pausing on focus loss.
func (p *PauseSystem) Start() { p.listening = true }

// End stops pausing on focus loss.
func (p *PauseSystem) End() { p.listening = false }

// Update advances the tracked animations unless paused. Finished ones are
// dropped.
func (p *PauseSystem) Update(delta float64) {
	if p.paused || len(p.tweens) == 0 {
		return
	}
	dt := float32(timing.DeltaToSeconds(delta))
	kept := p.tweens[:0]
	for _, a := range p.tweens {
		a.Update(dt)
		if !a.Done() {
			kept = append(kept, a)
		}
	}
	clear(p.tweens[len(kept):])
	p.tweens = kept
}

// Reset drops every tracked animation and unpauses.
func (p *PauseSystem) Reset() {
	p.tweens = sliceutil.RemoveAll(p.tweens, func(a scene.Animation) {
		if t, ok := a.(*scene.Tween); ok {
			t.Kill()
		}
	})
	p.paused = false
}

// AddTween tracks a so that it only advances while the game runs.
func (p *PauseSystem) AddTween(a scene.Animation) {
	if a != nil {
		p.tweens = append(p.tweens, a)
	}
}

// RemoveTween stops tracking a.
func (p *PauseSystem) RemoveTween(a scene.Animation) {
	p.tweens = sliceutil.Remove(p.tweens, a)
}

// Tweens returns the number of tracked animations.
func (p *PauseSystem) Tweens() int { return len(p.tweens) }

// Pause freezes the game and asks the host to show the pause overlay.
func (p *PauseSystem) Pause() {
	if p.paused {
		return
	}
	p.paused = true
	g := p.Game()
	if g.Hooks.ShowPause != nil {
		g.Hooks.ShowPause(g.Stats.Get(StatScore), p.decide)
	}
}

// Resume unfreezes the game.
func (p *PauseSystem) Resume() { p.paused = false }

// VisibilityChanged pauses a running game when the window loses focus.
func (p *PauseSystem) VisibilityChanged(visible bool) {
	if p.listening && !visible && !p.paused {
		p.Pause()
	}
}

func (p *PauseSystem) decide(c PauseChoice) {
	if c == ChoiceResume {
		p.Resume()
		return
	}
	if quit := p.Game().Hooks.Quit; quit != nil {
		quit()
	}
}
