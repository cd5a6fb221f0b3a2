package bubbo

import (
	"context"
	"fmt"
	"path"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"

	"github.com/phanxgames/bubbo/assets"
	"github.com/phanxgames/bubbo/audio"
	"github.com/phanxgames/bubbo/navigation"
	"github.com/phanxgames/bubbo/scene"
	"github.com/phanxgames/bubbo/screens"
	"github.com/phanxgames/bubbo/storage"
	"github.com/phanxgames/bubbo/timing"
)

// App is the ebiten.Game that drives every service once per tick.
type App struct {
	cfg     Config
	log     *zap.Logger
	scene   *scene.Scene
	ticker  *scene.Ticker
	nav     *navigation.Navigator
	loader  *assets.Loader
	audio   *audio.Service
	store   *storage.Store
	screens *screens.Set

	cancel  context.CancelFunc
	focused bool
	width   int
	height  int
	failed  map[string]bool
}

// NewApp wires the services into the scene. Call Start before running it.
func NewApp(
	cfg Config,
	log *zap.Logger,
	sc *scene.Scene,
	ticker *scene.Ticker,
	nav *navigation.Navigator,
	loader *assets.Loader,
	svc *audio.Service,
	store *storage.Store,
	set *screens.Set,
) *App {
	sc.ClearColor = scene.Hex(0x0d0f24)
	sc.Root().AddChild(nav.ScreenView, nav.OverlayView)
	return &App{
		cfg:     cfg,
		log:     log,
		scene:   sc,
		ticker:  ticker,
		nav:     nav,
		loader:  loader,
		audio:   svc,
		store:   store,
		screens: set,
		focused: true,
		failed:  make(map[string]bool),
	}
}

// Start prepares storage, loads the startup bundles, queues the title
// screen and begins loading everything else in the background.
func (a *App) Start(ctx context.Context) error {
	ctx, a.cancel = context.WithCancel(ctx)

	if err := a.store.Ready(); err != nil {
		a.log.Warn("storage unavailable, using defaults", zap.Error(err))
	}
	a.audio.SetMuted(a.store.Muted())

	if err := a.loader.LoadSync(ctx, a.screens.Startup()...); err != nil {
		return fmt.Errorf("load startup bundles: %w", err)
	}
	a.registerSounds()

	if err := a.nav.SetLoadScreen(a.screens.Load()); err != nil {
		return fmt.Errorf("load screen: %w", err)
	}
	a.nav.GoToScreen(a.screens.Title(), nil).Then(func(err error) {
		if err != nil {
			a.log.Error("show title", zap.Error(err))
		}
	})
	a.loader.BackgroundLoad(ctx)
	a.log.Info("app started", zap.Int("width", a.cfg.Width), zap.Int("height", a.cfg.Height))
	return nil
}

// Update implements ebiten.Game.
func (a *App) Update() error {
	a.scene.Update()
	a.step(timing.FramesPerSecond/float64(ebiten.TPS()), ebiten.IsFocused())
	return nil
}

// step advances everything by delta frames and reports focus changes.
func (a *App) step(delta float64, focused bool) {
	if focused != a.focused {
		a.focused = focused
		a.nav.VisibilityChanged(focused)
	}
	a.registerSounds()
	a.nav.Update(delta)
	a.ticker.Tick(delta)
	a.audio.Update(float32(timing.DeltaToSeconds(delta)))
}

// Draw implements ebiten.Game.
func (a *App) Draw(screen *ebiten.Image) {
	a.scene.Draw(screen)
	if a.cfg.Debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

// Layout implements ebiten.Game. The logical size follows the window.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.width || outsideHeight != a.height {
		a.width, a.height = outsideWidth, outsideHeight
		a.nav.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// Close stops background loads and flushes the log.
func (a *App) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	a.nav.Close()
	_ = a.log.Sync()
}

// registerSounds decodes every cached WAV the audio service does not know
// yet. A file that fails to decode is logged once and skipped.
func (a *App) registerSounds() {
	for _, b := range a.loader.Manifest().Bundles {
		for _, asset := range b.Assets {
			if path.Ext(asset.Alias) != ".wav" || a.failed[asset.Alias] || a.audio.Has(asset.Alias) {
				continue
			}
			data, ok := a.loader.Bytes(asset.Alias)
			if !ok {
				continue
			}
			if err := a.audio.LoadWAV(asset.Alias, data); err != nil {
				a.failed[asset.Alias] = true
				a.log.Error("register sound", zap.String("alias", asset.Alias), zap.Error(err))
			}
		}
	}
}
