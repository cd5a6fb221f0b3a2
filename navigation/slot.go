package navigation

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/phanxgames/bubbo/scene"
)

type phase uint8

const (
	phaseStart phase = iota
	phaseHiding
	phaseCheckBundles
	phaseLoading
	phaseLoadHiding
	phasePresent
	phaseShowing
	phaseDone
)

// transition is one queued request on a slot. A nil target only hides.
type transition struct {
	target *Descriptor
	data   any
	req    *Request

	phase    phase
	anim     scene.Animation
	loadShow scene.Animation
	loadCh   <-chan error
	loadErr  error
}

// slot runs the transitions for screens or for overlays, one at a time.
type slot struct {
	nav  *Navigator
	name string
	view *scene.Node

	current   Screen
	currentID string
	loading   bool

	active *transition
	queue  []*transition
}

func (s *slot) busy() bool { return s.active != nil || len(s.queue) > 0 }

func (s *slot) tickKey(id string) string { return s.name + ":" + id }

// advance runs the active transition as far as it can go this frame, then
// starts queued ones.
func (s *slot) advance(dt float32) {
	for {
		if s.active == nil {
			if len(s.queue) == 0 {
				return
			}
			s.active = s.queue[0]
			s.queue[0] = nil
			s.queue = s.queue[1:]
		}
		if !s.step(s.active, dt) {
			return
		}
		// Time was spent on the animation that just finished.
		dt = 0
	}
}

// step moves t through every phase that does not need to wait. It reports
// whether t finished.
func (s *slot) step(t *transition, dt float32) bool {
	for {
		switch t.phase {
		case phaseStart:
			if s.current == nil {
				t.phase = s.afterHide(t)
				continue
			}
			s.detach(s.current, s.currentID)
			t.anim = hideAnim(s.current)
			t.phase = phaseHiding
			s.nav.log.Debug("hiding", zap.String("slot", s.name), zap.String("screen", s.currentID))

		case phaseHiding:
			if !s.wait(t.anim, &dt) {
				return false
			}
			s.current.View().RemoveFromParent()
			s.current, s.currentID = nil, ""
			t.phase = s.afterHide(t)

		case phaseCheckBundles:
			bundles := t.target.Bundles
			if len(bundles) == 0 || s.nav.loader == nil || s.nav.loader.Loaded(bundles...) {
				t.phase = phasePresent
				continue
			}
			if ls := s.nav.loadScreen; ls != nil {
				s.loading = true
				s.attach(ls, s.tickKey("loader"))
				t.loadShow = showAnim(ls)
			}
			s.nav.log.Debug("loading bundles", zap.String("slot", s.name), zap.Strings("bundles", bundles))
			t.loadCh = s.nav.loader.Load(s.nav.ctx, bundles...)
			t.phase = phaseLoading

		case phaseLoading:
			if t.loadShow != nil {
				t.loadShow.Update(dt)
			}
			select {
			case err := <-t.loadCh:
				if err != nil {
					t.loadErr = fmt.Errorf("load bundles for %q: %w", t.target.ID, err)
				}
			default:
				return false
			}
			t.anim = nil
			if s.loading {
				s.nav.ticker.Remove(s.tickKey("loader"))
				t.anim = hideAnim(s.nav.loadScreen)
			}
			t.phase = phaseLoadHiding
			dt = 0

		case phaseLoadHiding:
			if !s.wait(t.anim, &dt) {
				return false
			}
			if s.loading {
				s.nav.loadScreen.View().RemoveFromParent()
				s.loading = false
			}
			if t.loadErr != nil {
				s.nav.log.Error("navigation failed", zap.String("slot", s.name), zap.Error(t.loadErr))
				s.finish(t, t.loadErr)
				return true
			}
			t.phase = phasePresent

		case phasePresent:
			screen, err := s.nav.screen(*t.target)
			if err != nil {
				s.finish(t, err)
				return true
			}
			if p, ok := screen.(Preparer); ok {
				p.Prepare(t.data)
			}
			s.current, s.currentID = screen, t.target.ID
			s.attach(screen, s.tickKey(t.target.ID))
			t.anim = showAnim(screen)
			t.phase = phaseShowing
			s.nav.log.Debug("showing", zap.String("slot", s.name), zap.String("screen", t.target.ID))

		case phaseShowing:
			if !s.wait(t.anim, &dt) {
				return false
			}
			s.finish(t, nil)
			return true

		default:
			return true
		}
	}
}

func (s *slot) afterHide(t *transition) phase {
	if t.target == nil {
		s.finish(t, nil)
		return phaseDone
	}
	return phaseCheckBundles
}

// wait advances a by the remaining frame time and reports whether it is
// done. The frame's time is consumed once.
func (s *slot) wait(a scene.Animation, dt *float32) bool {
	if a == nil {
		return true
	}
	if !a.Done() {
		a.Update(*dt)
		*dt = 0
	}
	return a.Done()
}

func (s *slot) attach(screen Screen, key string) {
	s.view.AddChild(screen.View())
	resize(screen, s.nav.width, s.nav.height)
	if u, ok := screen.(Updater); ok && s.nav.ticker != nil {
		s.nav.ticker.Add(key, u.Update)
	}
}

func (s *slot) detach(screen Screen, id string) {
	if _, ok := screen.(Updater); ok && s.nav.ticker != nil {
		s.nav.ticker.Remove(s.tickKey(id))
	}
}

func (s *slot) finish(t *transition, err error) {
	t.phase = phaseDone
	if s.active == t {
		s.active = nil
	}
	t.req.complete(err)
}

func showAnim(s Screen) scene.Animation {
	if sh, ok := s.(Shower); ok {
		return sh.Show()
	}
	return nil
}

func hideAnim(s Screen) scene.Animation {
	if h, ok := s.(Hider); ok {
		return h.Hide()
	}
	return nil
}
