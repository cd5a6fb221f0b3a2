package screens

import (
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/bubbo/game"
	"github.com/phanxgames/bubbo/i18n"
	"github.com/phanxgames/bubbo/scene"
)

const (
	panelWidth     = 300
	panelHeight    = 360
	maxScoreScale  = 5
	minScoreScale  = 1
	scoreScaleStep = 0.25
)

// PauseData is passed to ShowOverlay for the pause overlay. Choose is
// called once with the player's choice.
type PauseData struct {
	Score  int
	Choose func(game.PauseChoice)
}

// PauseOverlay dims the game and offers resume, quit and the sound toggle.
type PauseOverlay struct {
	set *Set

	view       *scene.Node
	background *scene.Node
	panel      *scene.Node
	base       *scene.Node
	header     *scene.Node
	scoreTitle *scene.Node
	score      *scene.Node
	sound      *AudioToggle
	resume     *Button
	quit       *Button

	choose func(game.PauseChoice)
}

// NewPauseOverlay builds the overlay.
func NewPauseOverlay(set *Set) *PauseOverlay {
	dict := set.deps.Dict
	o := &PauseOverlay{
		set:        set,
		view:       scene.NewContainer("pause-overlay"),
		background: scene.NewRect("pause-bg", 50, 50, scene.Color{A: 0.5}),
		panel:      scene.NewContainer("pause-panel"),
		base:       scene.NewRect("pause-base", panelWidth, panelHeight, scene.ColorWhite),
		header:     scene.NewText("pause-title", dict.T(i18n.Paused, nil), scene.ColorWhite),
		scoreTitle: scene.NewText("pause-score-title", dict.T(i18n.Score, nil), scene.Color{A: 1}),
		score:      scene.NewText("pause-score", "", scene.Color{A: 1}),
	}
	// The backdrop swallows taps meant for the game below.
	o.background.Interactable = true
	o.base.CenterPivot()

	o.header.CenterPivot()
	o.header.SetScale(2.5, 2.5)
	o.header.SetPosition(0, -panelHeight*0.5-30)
	o.scoreTitle.CenterPivot()
	o.scoreTitle.SetScale(1.5, 1.5)
	o.scoreTitle.SetPosition(0, -120)
	o.score.SetPosition(0, -70)

	o.sound = NewAudioToggle(dict.T(i18n.Sound, nil), o.toggleSound)
	o.sound.View.SetPosition(0, 10)
	o.resume = NewButton("resume", dict.T(i18n.Resume, nil), 200, 48, scene.Hex(0xffc42c), func() { o.pick(game.ChoiceResume) })
	o.resume.View.SetPosition(0, o.sound.View.Y+60)
	o.quit = NewButton("quit", dict.T(i18n.Quit, nil), 200, 48, scene.Hex(0x49c8ff), func() { o.pick(game.ChoiceQuit) })
	o.quit.View.SetPosition(0, o.resume.View.Y+60)

	o.panel.AddChild(o.base, o.header, o.scoreTitle, o.score, o.sound.View, o.resume.View, o.quit.View)
	o.view.AddChild(o.background, o.panel)
	return o
}

func (o *PauseOverlay) View() *scene.Node { return o.view }

// Prepare takes a PauseData. Anything else shows a zero score and ignores
// the buttons.
func (o *PauseOverlay) Prepare(data any) {
	d, _ := data.(PauseData)
	o.SetScore(d.Score)
	o.choose = d.Choose
	o.sound.ForceSwitch(o.set.deps.Settings.Muted())
}

// SetScore shows score, shrinking it until it fits the panel.
func (o *PauseOverlay) SetScore(score int) {
	o.score.Text = o.set.deps.Dict.Number(score)
	o.score.CenterPivot()
	scale := float64(maxScoreScale)
	for scale > minScoreScale && scene.TextWidth(o.score.Text)*scale > panelWidth {
		scale -= scoreScaleStep
	}
	o.score.SetScale(scale, scale)
}

// ScoreLabel returns the score text.
func (o *PauseOverlay) ScoreLabel() string { return o.score.Text }

// ResumeButton returns the resume button.
func (o *PauseOverlay) ResumeButton() *Button { return o.resume }

// QuitButton returns the quit button.
func (o *PauseOverlay) QuitButton() *Button { return o.quit }

// SoundToggle returns the sound toggle.
func (o *PauseOverlay) SoundToggle() *AudioToggle { return o.sound }

func (o *PauseOverlay) Show() scene.Animation {
	o.view.SetAlpha(0)
	return scene.TweenAlpha(o.view, 1, fadeDuration, ease.Linear)
}

func (o *PauseOverlay) Hide() scene.Animation {
	return scene.NewDeferred(func() scene.Animation {
		return scene.TweenAlpha(o.view, 0, fadeDuration, ease.Linear)
	})
}

func (o *PauseOverlay) Resize(w, h float64) {
	o.background.Width, o.background.Height = w, h
	o.panel.SetPosition(w*0.5, h*0.5)
}

func (o *PauseOverlay) pick(c game.PauseChoice) {
	choose := o.choose
	if choose == nil {
		return
	}
	o.choose = nil
	o.set.playSFX(SecondaryPressSound)
	choose(c)
}

func (o *PauseOverlay) toggleSound() bool {
	muted := o.set.toggleMute()
	if !muted {
		o.set.playSFX(SecondaryPressSound)
	}
	return muted
}
