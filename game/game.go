// Package game runs one round of bubbo: the scene containers, the system
// runner with its fixed set of systems, and the player's stats.
package game

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/phanxgames/bubbo/audio"
	"github.com/phanxgames/bubbo/i18n"
	"github.com/phanxgames/bubbo/pool"
	"github.com/phanxgames/bubbo/scene"
)

// HighscoreStore persists the best score between sessions.
type HighscoreStore interface {
	Highscore() int
	SetHighscore(score int) error
}

// SFXPlayer plays one-shot sound effects.
type SFXPlayer interface {
	Play(alias string, opts ...audio.PlayOption) error
}

// PauseChoice is what the player picked on the pause overlay.
type PauseChoice uint8

const (
	ChoiceResume PauseChoice = iota
	ChoiceQuit
)

// Hooks connect the game to the screens that host it. Nil hooks are
// skipped.
type Hooks struct {
	// ShowPause presents the pause overlay. The host calls decide once with
	// the player's choice after the overlay is gone.
	ShowPause func(score int, decide func(PauseChoice))
	// Quit leaves the game.
	Quit func()
	// GameOver is told the final score.
	GameOver func(score int)
}

// Deps are the services a game uses. Zero fields get working defaults.
type Deps struct {
	Pools  *pool.Manager
	Scores HighscoreStore
	SFX    SFXPlayer
	Dict   *i18n.Dictionary
	Log    *zap.Logger
	Rand   *rand.Rand
	Mobile bool
}

// Game owns the stage for one round. Stage is added to the hosting screen;
// GameContainer is anchored at the bottom center of the viewport and holds
// the board; HitContainer receives the player's aiming input.
type Game struct {
	Stage         *scene.Node
	GameContainer *scene.Node
	HitContainer  *scene.Node
	Systems       *Runner
	Stats         *Stats
	IsGameOver    bool
	Hooks         Hooks

	hitArea *scene.HitRect
	deps    Deps
	nextUID int
}

type nopSFX struct{}

func (nopSFX) Play(string, ...audio.PlayOption) error { return nil }

// New builds a game and its containers. Call Init before use.
func New(d Deps) *Game {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Pools == nil {
		d.Pools = pool.NewManager()
	}
	if d.SFX == nil {
		d.SFX = nopSFX{}
	}
	if d.Dict == nil {
		d.Dict = i18n.NewEnglish()
	}
	highscore := 0
	if d.Scores != nil {
		highscore = d.Scores.Highscore()
	}

	g := &Game{
		Stage:         scene.NewContainer("stage"),
		GameContainer: scene.NewContainer("game"),
		HitContainer:  scene.NewContainer("hit"),
		hitArea:       &scene.HitRect{},
		deps:          d,
	}
	g.Stage.AddChild(g.GameContainer)
	g.HitContainer.Interactable = true
	g.HitContainer.HitShape = g.hitArea
	g.GameContainer.AddChild(g.HitContainer)

	g.Systems = NewRunner(g)
	g.Stats = NewStats(highscore, d.Log)
	registerPools(g)
	return g
}

// Log returns the game's logger.
func (g *Game) Log() *zap.Logger { return g.deps.Log }

// Pools returns the shared pool manager.
func (g *Game) Pools() *pool.Manager { return g.deps.Pools }

// SFX returns the effect player.
func (g *Game) SFX() SFXPlayer { return g.deps.SFX }

// Dict returns the string dictionary.
func (g *Game) Dict() *i18n.Dictionary { return g.deps.Dict }

// Rand returns the game's random source; nil means the global one.
func (g *Game) Rand() *rand.Rand { return g.deps.Rand }

// Mobile reports whether the game runs on a touch device.
func (g *Game) Mobile() bool { return g.deps.Mobile }

// HitArea returns the input rectangle in GameContainer space.
func (g *Game) HitArea() scene.Rect { return g.hitArea.Rect }

// AddToGame adds nodes to the game container.
func (g *Game) AddToGame(nodes ...*scene.Node) {
	g.GameContainer.AddChild(nodes...)
}

// RemoveFromGame detaches nodes from wherever they are.
func (g *Game) RemoveFromGame(nodes ...*scene.Node) {
	for _, n := range nodes {
		n.RemoveFromParent()
	}
}

// Init registers the fixed system set and initializes it.
func (g *Game) Init() {
	MustAddSystem(g.Systems, PauseSystemDesc)
	MustAddSystem(g.Systems, SpaceDecorSystemDesc)
	MustAddSystem(g.Systems, HudSystemDesc)
	g.Systems.Init()
}

// Awake activates the systems and shows the game.
func (g *Game) Awake() {
	g.Systems.Awake()
	g.GameContainer.Visible = true
}

// Start begins game logic.
func (g *Game) Start() {
	g.Systems.Start()
}

// Update advances every system by delta.
func (g *Game) Update(delta float64) {
	g.Systems.Update(delta)
}

// End stops game logic and drops input listeners.
func (g *Game) End() {
	g.HitContainer.ClearListeners()
	g.Systems.End()
}

// Reset restores the initial state for a new round.
func (g *Game) Reset() {
	g.IsGameOver = false
	g.Stats.Reset()
	g.Systems.Reset()
}

// Resize anchors the board at the bottom center and forwards the size.
func (g *Game) Resize(w, h float64) {
	g.GameContainer.SetPosition(w*0.5, h)
	g.hitArea.Rect = scene.Rect{X: -w / 2, Y: -h, Width: w, Height: h - BounceLine*0.75}
	g.Systems.Resize(w, h)
}

// VisibilityChanged forwards window focus changes to the systems.
func (g *Game) VisibilityChanged(visible bool) {
	g.Systems.VisibilityChanged(visible)
}

// Paused reports whether the pause system has frozen the game.
func (g *Game) Paused() bool {
	p, ok := GetSystem(g.Systems, PauseSystemDesc)
	return ok && p.IsPaused()
}

// GameOver ends the round and stores a new highscore.
func (g *Game) GameOver() {
	if g.IsGameOver {
		return
	}
	g.IsGameOver = true
	score := g.Stats.Get(StatScore)
	if score > g.Stats.Get(StatHighscore) {
		g.Stats.Set(StatHighscore, score)
		if g.deps.Scores != nil {
			if err := g.deps.Scores.SetHighscore(score); err != nil {
				g.deps.Log.Error("save highscore", zap.Int("score", score), zap.Error(err))
			}
		}
	}
	g.deps.Log.Info("game over", zap.Int("score", score), zap.Int("highscore", g.Stats.Get(StatHighscore)))
	if g.Hooks.GameOver != nil {
		g.Hooks.GameOver(score)
	}
}

// AddScore adds points to the score and shows them on the HUD.
func (g *Game) AddScore(points int) {
	g.Stats.Increment(StatScore, points)
	if hud, ok := GetSystem(g.Systems, HudSystemDesc); ok {
		hud.ShowPoints(points)
	}
}

// NewBubble takes a bubble from the pool and gives it a fresh UID.
func (g *Game) NewBubble() *Bubble {
	b := pool.Get[*Bubble](g.deps.Pools, BubbleTag)
	b.Reset(g.nextUID)
	g.nextUID++
	return b
}

// ReleaseBubble detaches b and returns it to the pool.
func (g *Game) ReleaseBubble(b *Bubble) {
	b.View.RemoveFromParent()
	pool.Return(g.deps.Pools, b)
}

func registerPools(g *Game) {
	p := g.deps.Pools
	pool.Register(p, BubbleViewTag, func() *BubbleView { return NewBubbleView(TypeEmpty) })
	pool.Register(p, BubbleTag, func() *Bubble { return NewBubble(g.deps.SFX, g.deps.Rand) })
	pool.Register(p, SatelliteTag, func() *Satellite { return NewSatellite(g.deps.Rand) })
	pool.Register(p, BubbleOrbitTag, func() *BubbleOrbit { return NewBubbleOrbit(p, g.deps.Rand) })
}
