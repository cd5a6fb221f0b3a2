package screens

import (
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"

	"github.com/phanxgames/bubbo/game"
	"github.com/phanxgames/bubbo/scene"
)

var spaceColor = scene.Hex(0x0d0f24)

// GameScreen hosts one game.Game and connects it to the navigator.
type GameScreen struct {
	set *Set

	view       *scene.Node
	background *scene.Node
	game       *game.Game
}

// NewGameScreen builds the screen and initializes its game.
func NewGameScreen(set *Set) *GameScreen {
	d := set.deps
	s := &GameScreen{
		set:        set,
		view:       scene.NewContainer("game-screen"),
		background: scene.NewRect("game-bg", 64, 64, spaceColor),
	}
	s.game = game.New(game.Deps{
		Pools:  d.Pools,
		Scores: d.Settings,
		SFX:    d.SFX,
		Dict:   d.Dict,
		Log:    d.Log,
		Rand:   d.Rand,
		Mobile: d.Mobile,
	})
	s.game.Hooks = game.Hooks{
		ShowPause: s.showPause,
		Quit:      s.quit,
		GameOver:  s.gameOver,
	}
	s.game.Init()
	s.view.AddChild(s.background, s.game.Stage)
	return s
}

func (s *GameScreen) View() *scene.Node { return s.view }

// Game returns the hosted game.
func (s *GameScreen) Game() *game.Game { return s.game }

// Show wakes the game, fades in and then starts it.
func (s *GameScreen) Show() scene.Animation {
	s.view.SetAlpha(0)
	s.game.Awake()
	return scene.NewSequence(
		scene.TweenAlpha(s.view, 1, fadeDuration, ease.Linear),
		scene.NewCall(s.game.Start),
	)
}

// Hide stops the game, fades out and resets it for the next round.
func (s *GameScreen) Hide() scene.Animation {
	s.game.End()
	return scene.NewSequence(
		scene.NewDeferred(func() scene.Animation {
			return scene.TweenAlpha(s.view, 0, fadeDuration, ease.Linear)
		}),
		scene.NewCall(s.game.Reset),
	)
}

func (s *GameScreen) Update(delta float64) { s.game.Update(delta) }

func (s *GameScreen) Resize(w, h float64) {
	s.background.Width, s.background.Height = w, h
	s.game.Resize(w, h)
}

func (s *GameScreen) VisibilityChanged(visible bool) { s.game.VisibilityChanged(visible) }

func (s *GameScreen) showPause(score int, decide func(game.PauseChoice)) {
	nav := s.set.deps.Nav
	nav.ShowOverlay(s.set.Pause(), PauseData{
		Score: score,
		Choose: func(c game.PauseChoice) {
			nav.HideOverlay().Then(func(error) { decide(c) })
		},
	})
}

func (s *GameScreen) quit() {
	s.set.deps.Nav.GoToScreen(s.set.Title(), nil)
}

func (s *GameScreen) gameOver(score int) {
	s.set.deps.Log.Info("round finished", zap.Int("score", score))
	s.set.deps.Nav.GoToScreen(s.set.Title(), nil)
}
