// Package screens holds the navigable screens of bubbo: the load screen,
// the title screen, the game screen and the pause overlay.
package screens

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/phanxgames/bubbo/audio"
	"github.com/phanxgames/bubbo/game"
	"github.com/phanxgames/bubbo/i18n"
	"github.com/phanxgames/bubbo/navigation"
	"github.com/phanxgames/bubbo/pool"
)

// Screen IDs.
const (
	LoadScreenID   = "loader"
	TitleScreenID  = "title"
	GameScreenID   = "game"
	PauseOverlayID = "pause"
)

// Bundle names from the asset manifest.
const (
	PreloadBundle = "images/preload"
	DefaultBundle = "default"
	TitleBundle   = "images/title-screen"
	GameBundle    = "images/game-screen"
	PauseBundle   = "images/pause-overlay"
)

// Sound aliases used by the screens.
const (
	PrimaryPressSound   = "audio/primary-button-press.wav"
	SecondaryPressSound = "audio/secondary-button-press.wav"
	CannonMoveSound     = "audio/cannon-move.wav"
	MusicTrack          = "audio/main-bgm.wav"
)

const fadeDuration = 0.2

// Navigator is the part of navigation.Navigator the screens drive.
type Navigator interface {
	GoToScreen(d navigation.Descriptor, data any) *navigation.Request
	ShowOverlay(d navigation.Descriptor, data any) *navigation.Request
	HideOverlay() *navigation.Request
}

// Settings persists the mute flag and the highscore.
type Settings interface {
	Muted() bool
	SetMuted(muted bool) error
	Highscore() int
	SetHighscore(score int) error
}

// Muter switches all sound on or off.
type Muter interface {
	SetMuted(muted bool)
}

// Music plays a looping background track.
type Music interface {
	Play(alias string, opts ...audio.PlayOption) error
}

// Deps are the services shared by every screen. Nav and Settings are
// required; Sound, SFX and Music may be nil.
type Deps struct {
	Nav      Navigator
	Settings Settings
	Sound    Muter
	SFX      game.SFXPlayer
	Music    Music
	Pools    *pool.Manager
	Dict     *i18n.Dictionary
	Log      *zap.Logger
	Rand     *rand.Rand
	Mobile   bool
}

// Set builds the screen descriptors. Screens reference each other through
// it, so a Set must outlive the navigator's cache.
type Set struct {
	deps Deps
}

type nopSFX struct{}

func (nopSFX) Play(string, ...audio.PlayOption) error { return nil }

// NewSet fills the optional dependencies and returns the set.
func NewSet(d Deps) *Set {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Dict == nil {
		d.Dict = i18n.NewEnglish()
	}
	if d.Pools == nil {
		d.Pools = pool.NewManager()
	}
	if d.SFX == nil {
		d.SFX = nopSFX{}
	}
	return &Set{deps: d}
}

// Load describes the screen shown while bundles load.
func (s *Set) Load() navigation.Descriptor {
	return navigation.Descriptor{
		ID:      LoadScreenID,
		Bundles: []string{PreloadBundle},
		New:     func() navigation.Screen { return NewLoadScreen(s.deps.Dict, s.deps.Rand) },
	}
}

// Title describes the title screen.
func (s *Set) Title() navigation.Descriptor {
	return navigation.Descriptor{
		ID:      TitleScreenID,
		Bundles: []string{TitleBundle},
		New:     func() navigation.Screen { return NewTitleScreen(s) },
	}
}

// Game describes the game screen.
func (s *Set) Game() navigation.Descriptor {
	return navigation.Descriptor{
		ID:      GameScreenID,
		Bundles: []string{GameBundle},
		New:     func() navigation.Screen { return NewGameScreen(s) },
	}
}

// Pause describes the pause overlay. Pass PauseData to ShowOverlay.
func (s *Set) Pause() navigation.Descriptor {
	return navigation.Descriptor{
		ID:      PauseOverlayID,
		Bundles: []string{PauseBundle},
		New:     func() navigation.Screen { return NewPauseOverlay(s) },
	}
}

// Startup bundles must be loaded before the first screen is requested.
func (s *Set) Startup() []string {
	return []string{PreloadBundle, DefaultBundle}
}

func (s *Set) playSFX(alias string, opts ...audio.PlayOption) {
	if err := s.deps.SFX.Play(alias, opts...); err != nil {
		s.deps.Log.Debug("sfx skipped", zap.String("alias", alias), zap.Error(err))
	}
}

// toggleMute flips the stored mute flag and applies it. It returns the new
// state.
func (s *Set) toggleMute() bool {
	muted := !s.deps.Settings.Muted()
	if err := s.deps.Settings.SetMuted(muted); err != nil {
		s.deps.Log.Warn("save mute flag", zap.Error(err))
	}
	if s.deps.Sound != nil {
		s.deps.Sound.SetMuted(muted)
	}
	return muted
}
