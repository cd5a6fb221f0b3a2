package screens

import (
	"context"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/phanxgames/bubbo/audio"
	"github.com/phanxgames/bubbo/game"
	"github.com/phanxgames/bubbo/i18n"
	"github.com/phanxgames/bubbo/navigation"
	"github.com/phanxgames/bubbo/scene"
	"github.com/phanxgames/bubbo/storage"
)

type loadedBundles struct{}

func (loadedBundles) Loaded(...string) bool { return true }
func (loadedBundles) Load(context.Context, ...string) <-chan error {
	ch := make(chan error)
	close(ch)
	return ch
}

type sfxLog struct{ played []string }

func (s *sfxLog) Play(alias string, _ ...audio.PlayOption) error {
	s.played = append(s.played, alias)
	return nil
}

func (s *sfxLog) count(alias string) int {
	n := 0
	for _, p := range s.played {
		if p == alias {
			n++
		}
	}
	return n
}

type fixture struct {
	nav    *navigation.Navigator
	ticker *scene.Ticker
	store  *storage.Store
	sound  *audio.Service
	sfx    *sfxLog
	set    *Set
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		ticker: scene.NewTicker(),
		store:  storage.New(&storage.MemoryBackend{}, nil),
		sound:  audio.New(&audio.MixerOutput{}, nil),
		sfx:    &sfxLog{},
	}
	if err := f.store.Ready(); err != nil {
		t.Fatal(err)
	}
	f.nav = navigation.New(f.ticker, loadedBundles{}, nil)
	f.set = NewSet(Deps{
		Nav:      f.nav,
		Settings: f.store,
		Sound:    f.sound,
		SFX:      f.sfx,
		Music:    f.sound.BGM,
		Rand:     rand.New(rand.NewPCG(3, 4)),
	})
	f.nav.Resize(1000, 900)
	return f
}

// settle runs frames until the navigator is idle.
func (f *fixture) settle(t *testing.T) {
	t.Helper()
	for i := 0; i < 600 && f.nav.Busy(); i++ {
		f.nav.Update(1)
		f.ticker.Tick(1)
	}
	if f.nav.Busy() {
		t.Fatal("navigator still busy")
	}
}

func (f *fixture) cached(t *testing.T, id string) navigation.Screen {
	t.Helper()
	s, ok := f.nav.Cached(id)
	if !ok {
		t.Fatalf("screen %q not built", id)
	}
	return s
}

func (f *fixture) toGame(t *testing.T) *GameScreen {
	t.Helper()
	f.nav.GoToScreen(f.set.Game(), nil)
	f.settle(t)
	return f.cached(t, GameScreenID).(*GameScreen)
}

func TestPlayGoesToGame(t *testing.T) {
	f := newFixture(t)
	f.nav.GoToScreen(f.set.Title(), nil)
	f.settle(t)

	title := f.cached(t, TitleScreenID).(*TitleScreen)
	title.PlayButton().Press()
	f.settle(t)

	if got := f.nav.CurrentScreen(); got != GameScreenID {
		t.Fatalf("current = %q, want %q", got, GameScreenID)
	}
	if f.sfx.count(PrimaryPressSound) != 1 {
		t.Errorf("press sounds = %v", f.sfx.played)
	}
	if title.View().Parent != nil {
		t.Error("title still attached")
	}
}

func TestPauseResume(t *testing.T) {
	f := newFixture(t)
	gs := f.toGame(t)
	g := gs.Game()
	g.Stats.Set(game.StatScore, 1234)

	pause, _ := game.GetSystem(g.Systems, game.PauseSystemDesc)
	pause.Pause()
	f.settle(t)

	if f.nav.CurrentOverlay() != PauseOverlayID {
		t.Fatalf("overlay = %q", f.nav.CurrentOverlay())
	}
	overlay := f.cached(t, PauseOverlayID).(*PauseOverlay)
	if got := overlay.ScoreLabel(); got != "1,234" {
		t.Errorf("score label = %q, want 1,234", got)
	}
	if !g.Paused() {
		t.Fatal("game not paused")
	}

	overlay.ResumeButton().Press()
	if !g.Paused() {
		t.Error("resumed before the overlay was hidden")
	}
	f.settle(t)
	if g.Paused() {
		t.Error("game still paused")
	}
	if f.nav.CurrentOverlay() != "" || f.nav.CurrentScreen() != GameScreenID {
		t.Errorf("screen=%q overlay=%q", f.nav.CurrentScreen(), f.nav.CurrentOverlay())
	}
}

func TestPauseChoiceOnlyOnce(t *testing.T) {
	f := newFixture(t)
	g := f.toGame(t).Game()
	pause, _ := game.GetSystem(g.Systems, game.PauseSystemDesc)
	pause.Pause()
	f.settle(t)

	overlay := f.cached(t, PauseOverlayID).(*PauseOverlay)
	overlay.ResumeButton().Press()
	overlay.QuitButton().Press()
	f.settle(t)

	if f.nav.CurrentScreen() != GameScreenID {
		t.Errorf("second choice was not ignored: screen = %q", f.nav.CurrentScreen())
	}
}

func TestPauseQuitReturnsToTitle(t *testing.T) {
	f := newFixture(t)
	g := f.toGame(t).Game()
	g.Stats.Set(game.StatScore, 50)

	pause, _ := game.GetSystem(g.Systems, game.PauseSystemDesc)
	pause.Pause()
	f.settle(t)
	f.cached(t, PauseOverlayID).(*PauseOverlay).QuitButton().Press()
	f.settle(t)

	if f.nav.CurrentScreen() != TitleScreenID {
		t.Fatalf("current = %q, want title", f.nav.CurrentScreen())
	}
	if f.nav.CurrentOverlay() != "" {
		t.Error("pause overlay left open")
	}
	if got := g.Stats.Get(game.StatScore); got != 0 {
		t.Errorf("score after quit = %d, want 0", got)
	}
	if g.Paused() {
		t.Error("game still paused after reset")
	}
}

func TestGameOverStoresHighscore(t *testing.T) {
	f := newFixture(t)
	g := f.toGame(t).Game()
	g.Stats.Set(game.StatScore, 300)
	g.GameOver()
	f.settle(t)

	if got := f.store.Highscore(); got != 300 {
		t.Errorf("stored highscore = %d, want 300", got)
	}
	if f.nav.CurrentScreen() != TitleScreenID {
		t.Fatalf("current = %q, want title", f.nav.CurrentScreen())
	}
	title := f.cached(t, TitleScreenID).(*TitleScreen)
	if !title.best.Visible || title.best.Text != "Best 300" {
		t.Errorf("best label = %q visible=%v", title.best.Text, title.best.Visible)
	}
}

func TestAudioToggle(t *testing.T) {
	f := newFixture(t)
	f.nav.GoToScreen(f.set.Title(), nil)
	f.settle(t)
	toggle := f.cached(t, TitleScreenID).(*TitleScreen).SoundToggle()

	toggle.Press()
	if !f.store.Muted() || !f.sound.Muted() || !toggle.Muted() {
		t.Fatalf("store=%v sound=%v toggle=%v, want all muted", f.store.Muted(), f.sound.Muted(), toggle.Muted())
	}
	toggle.Press()
	if f.store.Muted() || f.sound.Muted() || toggle.Muted() {
		t.Fatal("second press did not unmute")
	}
}

func TestPauseOverlaySyncsMuteFlag(t *testing.T) {
	f := newFixture(t)
	if err := f.store.SetMuted(true); err != nil {
		t.Fatal(err)
	}
	o := NewPauseOverlay(f.set)
	o.Prepare(PauseData{})
	if !o.SoundToggle().Muted() {
		t.Error("toggle does not show the stored flag")
	}

	o.SoundToggle().Press()
	if f.store.Muted() {
		t.Error("press did not unmute")
	}
	if f.sfx.count(SecondaryPressSound) != 1 {
		t.Errorf("sounds = %v, want one press sound after unmuting", f.sfx.played)
	}
}

func TestPauseScoreFitsPanel(t *testing.T) {
	f := newFixture(t)
	o := NewPauseOverlay(f.set)
	tests := []struct {
		score int
		label string
	}{
		{0, "0"},
		{1234, "1,234"},
		{123456789, "123,456,789"},
	}
	for _, tt := range tests {
		o.SetScore(tt.score)
		if o.ScoreLabel() != tt.label {
			t.Errorf("label = %q, want %q", o.ScoreLabel(), tt.label)
		}
		sx := o.score.ScaleX
		if w := scene.TextWidth(tt.label) * sx; w > panelWidth && sx > minScoreScale {
			t.Errorf("score %d width %v exceeds panel at scale %v", tt.score, w, sx)
		}
	}
}

func TestPauseOverlayIgnoresOtherData(t *testing.T) {
	f := newFixture(t)
	o := NewPauseOverlay(f.set)
	o.Prepare("not pause data")
	if o.ScoreLabel() != "0" {
		t.Errorf("label = %q", o.ScoreLabel())
	}
	o.ResumeButton().Press()
	if len(f.sfx.played) != 0 {
		t.Error("button without a callback played a sound")
	}
}

func TestTitleAimThrottlesSound(t *testing.T) {
	f := newFixture(t)
	s := NewTitleScreen(f.set)
	s.Resize(1000, 900)
	cx, cy := s.cannon.View.GlobalPosition()

	s.aim(scene.PointerContext{GlobalX: cx + 100, GlobalY: cy})
	s.aim(scene.PointerContext{GlobalX: cx, GlobalY: cy - 100})

	if got, want := s.Cannon().Rotation(), 0.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("rotation = %v, want %v", got, want)
	}
	if n := f.sfx.count(CannonMoveSound); n != 1 {
		t.Errorf("cannon sounds = %d, want 1", n)
	}
}

func TestTitlePrepareHidesZeroBest(t *testing.T) {
	f := newFixture(t)
	s := NewTitleScreen(f.set)
	s.Prepare(nil)
	if s.best.Visible {
		t.Error("best score shown without a highscore")
	}
	if s.top.Y != -350 || s.mid.X != 200 || s.bottom.Y != 350 {
		t.Errorf("intro offsets = %v %v %v", s.top.Y, s.mid.X, s.bottom.Y)
	}
}

func TestTitleIntroRunsAfterFade(t *testing.T) {
	f := newFixture(t)
	s := NewTitleScreen(f.set)
	s.Prepare(nil)
	show := s.Show()
	for i := 0; i < 30 && !show.Done(); i++ {
		show.Update(1.0 / 60)
	}
	if len(s.intro) != 3 {
		t.Fatalf("intro tweens = %d, want 3", len(s.intro))
	}
	for range 120 {
		s.Update(1)
	}
	if len(s.intro) != 0 || s.top.Y != 0 || s.mid.X != 0 || s.bottom.Y != 0 {
		t.Errorf("panels not in place: %v %v %v", s.top.Y, s.mid.X, s.bottom.Y)
	}
}

func TestLoadScreen(t *testing.T) {
	s := NewLoadScreen(i18n.NewEnglish(), rand.New(rand.NewPCG(1, 1)))
	s.Resize(400, 800)
	if s.spinner.X != 200 || s.spinner.Y != 400 {
		t.Errorf("spinner at (%v, %v)", s.spinner.X, s.spinner.Y)
	}

	show := s.Show()
	if s.View().Alpha != 0 {
		t.Error("show does not start transparent")
	}
	for i := 0; i < 30 && !show.Done(); i++ {
		show.Update(1.0 / 60)
	}
	if s.View().Alpha != 1 {
		t.Errorf("alpha after show = %v", s.View().Alpha)
	}

	s.Update(60)
	if s.spinner.Rotation >= 0 {
		t.Errorf("spinner rotation = %v, want negative", s.spinner.Rotation)
	}

	hide := s.Hide()
	for i := 0; i < 120 && !hide.Done(); i++ {
		hide.Update(1.0 / 60)
	}
	if !hide.Done() || s.View().Alpha != 0 || s.bottom.Y != 100 {
		t.Errorf("after hide: done=%v alpha=%v bottom=%v", hide.Done(), s.View().Alpha, s.bottom.Y)
	}
}

func TestDescriptors(t *testing.T) {
	set := NewSet(Deps{})
	tests := []struct {
		desc   navigation.Descriptor
		id     string
		bundle string
	}{
		{set.Load(), LoadScreenID, PreloadBundle},
		{set.Title(), TitleScreenID, TitleBundle},
		{set.Game(), GameScreenID, GameBundle},
		{set.Pause(), PauseOverlayID, PauseBundle},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if tt.desc.ID != tt.id || len(tt.desc.Bundles) != 1 || tt.desc.Bundles[0] != tt.bundle {
				t.Errorf("descriptor = %+v", tt.desc)
			}
			if tt.desc.New == nil {
				t.Error("no constructor")
			}
		})
	}
}
