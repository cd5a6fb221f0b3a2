package screens

import (
	"math"
	"math/rand/v2"

	"github.com/tanema/gween/ease"

	"github.com/phanxgames/bubbo/game"
	"github.com/phanxgames/bubbo/i18n"
	"github.com/phanxgames/bubbo/mathx"
	"github.com/phanxgames/bubbo/scene"
	"github.com/phanxgames/bubbo/timing"
)

var backgroundColor = scene.Hex(0x2a2f52)

// LoadScreen spins a cannon while bundles load.
type LoadScreen struct {
	view       *scene.Node
	background *scene.Node
	spinner    *scene.Node
	bottom     *scene.Node
	header     *scene.Node
	cannon     *game.Cannon

	rnd          *rand.Rand
	targetOffset float64
	tick         float64
}

// NewLoadScreen builds the load screen.
func NewLoadScreen(dict *i18n.Dictionary, rnd *rand.Rand) *LoadScreen {
	s := &LoadScreen{
		view:       scene.NewContainer("load-screen"),
		background: scene.NewRect("load-bg", 64, 64, backgroundColor),
		spinner:    scene.NewRect("load-spinner", 120, 8, scene.Hex(0xffc42c)),
		bottom:     scene.NewContainer("load-bottom"),
		header:     scene.NewText("load-header", dict.T(i18n.LoadingHeader, nil), scene.ColorWhite),
		cannon:     game.NewCannon(),
		rnd:        rnd,
	}
	s.spinner.CenterPivot()
	s.cannon.View.SetScale(0.5, 0.5)
	s.cannon.SetType(game.RandomType(rnd, game.GroupRegular))
	s.header.CenterPivot()
	s.header.SetScale(1.5, 1.5)
	s.bottom.AddChild(s.header)
	s.view.AddChild(s.background, s.spinner, s.cannon.View, s.bottom)
	return s
}

func (s *LoadScreen) View() *scene.Node { return s.view }

// Show fades the screen in.
func (s *LoadScreen) Show() scene.Animation {
	s.view.SetAlpha(0)
	s.bottom.Y = 0
	return scene.TweenAlpha(s.view, 1, fadeDuration, ease.Linear)
}

// Hide drops the footer away and fades out.
func (s *LoadScreen) Hide() scene.Animation {
	return scene.NewSequence(
		scene.TweenY(s.bottom, 100, 0.25, ease.OutQuad),
		scene.NewDelay(0.1),
		scene.NewDeferred(func() scene.Animation {
			return scene.TweenAlpha(s.view, 0, fadeDuration, ease.Linear)
		}),
	)
}

// Update turns the spinner and lets the cannon chase it.
func (s *LoadScreen) Update(delta float64) {
	secs := timing.DeltaToSeconds(delta)
	s.spinner.SetRotation(s.spinner.Rotation - secs)
	s.cannon.SetRotation(mathx.Lerp(s.cannon.Rotation(), s.spinner.Rotation-s.targetOffset, 0.1))
	s.cannon.Update(delta)

	if s.tick <= 0 {
		s.targetOffset = mathx.RandomRange(s.rnd, math.Pi*0.2, math.Pi*0.5)
		s.tick = 1
	} else {
		s.tick -= secs
	}
}

// Resize centers the spinner and pins the header to the bottom.
func (s *LoadScreen) Resize(w, h float64) {
	s.background.Width, s.background.Height = w, h
	s.spinner.SetPosition(w*0.5, h*0.5)
	s.cannon.View.SetPosition(w*0.5, h*0.5)
	s.header.SetPosition(w*0.5, h-55)
}
