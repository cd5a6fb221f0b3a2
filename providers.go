package bubbo

import (
	"fmt"
	"io/fs"
	"math/rand/v2"
	"time"

	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/phanxgames/bubbo/assets"
	"github.com/phanxgames/bubbo/audio"
	"github.com/phanxgames/bubbo/i18n"
	"github.com/phanxgames/bubbo/navigation"
	"github.com/phanxgames/bubbo/pool"
	"github.com/phanxgames/bubbo/scene"
	"github.com/phanxgames/bubbo/screens"
	"github.com/phanxgames/bubbo/storage"
)

// ProviderSet builds every service the App needs from a Config and the
// asset file system.
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideManifest,
	ProvideLoader,
	ProvideStore,
	ProvideAudio,
	ProvideScene,
	ProvideTicker,
	ProvideNavigator,
	ProvidePools,
	ProvideDictionary,
	ProvideRand,
	ProvideScreens,
	NewApp,
)

func ProvideLogger(cfg Config) (*zap.Logger, error) {
	return NewLogger(cfg.LogLevel)
}

// ProvideManifest reads cfg.Manifest from fsys.
func ProvideManifest(cfg Config, fsys fs.FS) (*assets.Manifest, error) {
	data, err := fs.ReadFile(fsys, cfg.Manifest)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return assets.ParseManifest(cfg.Manifest, data)
}

func ProvideLoader(fsys fs.FS, m *assets.Manifest, log *zap.Logger) *assets.Loader {
	return assets.NewLoader(fsys, m, log)
}

func ProvideStore(cfg Config, log *zap.Logger) *storage.Store {
	return storage.New(storage.NewFileBackend(cfg.StoragePath), log)
}

// ProvideAudio opens the speaker, or a silent mixer when audio is disabled
// or no device is available.
func ProvideAudio(cfg Config, log *zap.Logger) *audio.Service {
	if !cfg.Audio {
		return audio.New(&audio.MixerOutput{}, log)
	}
	out, err := audio.NewSpeakerOutput()
	if err != nil {
		log.Warn("no audio device, continuing silently", zap.Error(err))
		return audio.New(&audio.MixerOutput{}, log)
	}
	return audio.New(out, log)
}

func ProvideScene() *scene.Scene { return scene.NewScene() }

func ProvideTicker() *scene.Ticker { return scene.NewTicker() }

func ProvideNavigator(t *scene.Ticker, l *assets.Loader, log *zap.Logger) *navigation.Navigator {
	return navigation.New(t, l, log.Named("navigation"))
}

func ProvidePools() *pool.Manager { return pool.NewManager() }

func ProvideDictionary() *i18n.Dictionary { return i18n.NewEnglish() }

// ProvideRand seeds from cfg.Seed, or from the clock when it is zero.
func ProvideRand(cfg Config) *rand.Rand {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

func ProvideScreens(
	cfg Config,
	nav *navigation.Navigator,
	store *storage.Store,
	svc *audio.Service,
	pools *pool.Manager,
	dict *i18n.Dictionary,
	log *zap.Logger,
	rnd *rand.Rand,
) *screens.Set {
	return screens.NewSet(screens.Deps{
		Nav:      nav,
		Settings: store,
		Sound:    svc,
		SFX:      svc.SFX,
		Music:    svc.BGM,
		Pools:    pools,
		Dict:     dict,
		Log:      log,
		Rand:     rnd,
		Mobile:   cfg.Mobile,
	})
}
