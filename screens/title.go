package screens

import (
	"math"
	"time"

	"github.com/tanema/gween/ease"
	"go.uber.org/zap"

	"github.com/phanxgames/bubbo/audio"
	"github.com/phanxgames/bubbo/game"
	"github.com/phanxgames/bubbo/i18n"
	"github.com/phanxgames/bubbo/scene"
	"github.com/phanxgames/bubbo/sliceutil"
	"github.com/phanxgames/bubbo/timing"
)

const (
	cannonSoundInterval = 150 * time.Millisecond
	cannonSoundVolume   = 0.2
	aimEpsilon          = math.Pi * 0.0002
	introDuration       = 0.75
)

// TitleScreen shows the logo, a cannon that follows the pointer, the play
// button and the sound toggle.
type TitleScreen struct {
	set *Set

	view       *scene.Node
	background *scene.Node
	hit        *scene.Node
	hitArea    *scene.HitRect
	top        *scene.Node
	mid        *scene.Node
	bottom     *scene.Node

	title    *scene.Node
	subtitle *scene.Node
	best     *scene.Node
	footer   *scene.Node
	cannon   *game.Cannon
	play     *Button
	sound    *AudioToggle

	aimAngle  float64
	throttle  *timing.Throttler
	intro     []scene.Animation
	listening bool
	musicOn   bool
	musicErr  bool
}

// NewTitleScreen builds the title screen.
func NewTitleScreen(set *Set) *TitleScreen {
	d := set.deps
	s := &TitleScreen{
		set:        set,
		view:       scene.NewContainer("title-screen"),
		background: scene.NewRect("title-bg", 64, 64, backgroundColor),
		hit:        scene.NewContainer("title-hit"),
		hitArea:    &scene.HitRect{},
		top:        scene.NewContainer("title-top"),
		mid:        scene.NewContainer("title-mid"),
		bottom:     scene.NewContainer("title-bottom"),
		title:      scene.NewText("title", d.Dict.T(i18n.GameTitle, nil), scene.ColorWhite),
		subtitle:   scene.NewText("subtitle", d.Dict.T(i18n.GameSubtitle, nil), scene.Hex(0xbfc6ff)),
		best:       scene.NewText("best", "", scene.Hex(0xffc42c)),
		cannon:     game.NewCannon(),
		throttle:   timing.NewThrottler(nil),
	}
	s.hit.Interactable = true
	s.hit.HitShape = s.hitArea

	s.title.CenterPivot()
	s.title.SetScale(4, 4)
	s.subtitle.CenterPivot()
	s.subtitle.SetScale(1.5, 1.5)
	s.top.AddChild(s.title, s.subtitle)

	typ := game.RandomType(d.Rand, game.GroupRegular)
	s.footer = scene.NewCircle("title-footer", 125, game.TypeColor(typ))
	s.footer.SetScale(2.4, 1)
	s.cannon.View.SetScale(0.75, 0.75)
	s.cannon.SetType(typ)

	s.play = NewButton("play", d.Dict.T(i18n.TitlePlay, nil), 180, 60, scene.Hex(0xffc42c), s.onPlay)
	s.sound = NewAudioToggle(d.Dict.T(i18n.Sound, nil), set.toggleMute)
	s.mid.AddChild(s.best)
	s.top.AddChild(s.sound.View)
	s.bottom.AddChild(s.footer, s.cannon.View, s.play.View)

	s.view.AddChild(s.background, s.hit, s.top, s.mid, s.bottom)
	return s
}

func (s *TitleScreen) View() *scene.Node { return s.view }

// Prepare moves the panels off screen for the intro and refreshes the best
// score.
func (s *TitleScreen) Prepare(any) {
	s.intro = sliceutil.RemoveAll(s.intro, nil)
	s.top.SetPosition(0, -350)
	s.mid.SetPosition(200, 0)
	s.bottom.SetPosition(0, 350)

	best := s.set.deps.Settings.Highscore()
	s.best.Visible = best > 0
	s.best.Text = s.set.deps.Dict.T(i18n.Best, i18n.Params{"score": s.set.deps.Dict.Number(best)})
	s.best.CenterPivot()
	s.best.SetScale(2, 2)
}

// Show starts listening for aim input, fades in, then springs the panels
// into place.
func (s *TitleScreen) Show() scene.Animation {
	s.hit.OnPointerMove = s.aim
	s.hit.OnPointerTap = s.aim
	s.listening = true
	s.sound.ForceSwitch(s.set.deps.Settings.Muted())
	s.startMusic()

	s.view.SetAlpha(0)
	return scene.NewSequence(
		scene.TweenAlpha(s.view, 1, fadeDuration, ease.Linear),
		scene.NewCall(func() {
			s.intro = append(s.intro,
				scene.TweenPosition(s.top, 0, 0, introDuration, ease.OutElastic),
				scene.TweenPosition(s.mid, 0, 0, introDuration, ease.OutElastic),
				scene.TweenPosition(s.bottom, 0, 0, introDuration, ease.OutElastic),
			)
		}),
	)
}

// Hide stops input and fades out.
func (s *TitleScreen) Hide() scene.Animation {
	s.hit.ClearListeners()
	s.listening = false
	s.intro = sliceutil.RemoveAll(s.intro, nil)
	return scene.NewDeferred(func() scene.Animation {
		return scene.TweenAlpha(s.view, 0, fadeDuration, ease.Linear)
	})
}

// Update runs the intro tweens and the cannon's load animation.
func (s *TitleScreen) Update(delta float64) {
	dt := float32(timing.DeltaToSeconds(delta))
	kept := s.intro[:0]
	for _, a := range s.intro {
		a.Update(dt)
		if !a.Done() {
			kept = append(kept, a)
		}
	}
	clear(s.intro[len(kept):])
	s.intro = kept
	s.cannon.Update(delta)
	if s.listening && !s.musicOn {
		s.startMusic()
	}
}

// Resize lays the screen out for a w by h viewport.
func (s *TitleScreen) Resize(w, h float64) {
	s.background.Width, s.background.Height = w, h

	s.title.SetPosition(w*0.5, 145)
	s.subtitle.SetPosition(w*0.5, 145+40)
	s.best.SetPosition(w*0.5, h*0.45)
	s.sound.View.SetPosition(w-90, 40)

	s.footer.SetPosition(w*0.5, h)
	s.cannon.View.SetPosition(w*0.5, h-125*0.5)
	s.play.View.SetPosition(w*0.5, s.cannon.View.Y-130)

	s.hitArea.Rect = scene.Rect{Width: w, Height: h - game.BounceLine*0.75}
}

// Cannon returns the title cannon.
func (s *TitleScreen) Cannon() *game.Cannon { return s.cannon }

// PlayButton returns the play button.
func (s *TitleScreen) PlayButton() *Button { return s.play }

// SoundToggle returns the sound toggle.
func (s *TitleScreen) SoundToggle() *AudioToggle { return s.sound }

func (s *TitleScreen) aim(e scene.PointerContext) {
	cx, cy := s.cannon.View.GlobalPosition()
	angle := math.Atan2(e.GlobalY-cy, e.GlobalX-cx)
	if math.Abs(s.aimAngle-angle) > aimEpsilon {
		s.throttle.Do("cannon-audio", cannonSoundInterval, func() {
			s.set.playSFX(CannonMoveSound, audio.WithVolume(cannonSoundVolume))
		})
	}
	s.aimAngle = angle
	s.cannon.SetRotation(angle + math.Pi*0.5)
}

func (s *TitleScreen) onPlay() {
	if !s.listening {
		return
	}
	s.set.playSFX(PrimaryPressSound)
	s.set.deps.Nav.GoToScreen(s.set.Game(), nil)
}

// startMusic plays the title track. Update retries until the track is
// registered, since its bundle may still be loading.
func (s *TitleScreen) startMusic() {
	if s.set.deps.Music == nil {
		return
	}
	if err := s.set.deps.Music.Play(MusicTrack); err != nil {
		if !s.musicErr {
			s.musicErr = true
			s.set.deps.Log.Debug("music not ready", zap.Error(err))
		}
		return
	}
	s.musicOn = true
}
