package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png" // register decoder for bundle images
	"io/fs"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrUnknownBundle is returned when a bundle name is not in the manifest.
var ErrUnknownBundle = errors.New("assets: unknown bundle")

// DefaultWorkers bounds the number of files fetched concurrently by Load.
const DefaultWorkers = 4

// Loader fetches bundle files from a filesystem and caches them by alias.
// Cache access is safe from the game loop while loads run in the background.
type Loader struct {
	fsys     fs.FS
	manifest *Manifest
	log      *zap.Logger
	workers  int

	mu     sync.RWMutex
	cache  map[string][]byte
	images map[string]*ebiten.Image
}

// NewLoader creates a loader reading the manifest's sources from fsys.
func NewLoader(fsys fs.FS, m *Manifest, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	if m == nil {
		m = &Manifest{}
	}
	return &Loader{
		fsys:     fsys,
		manifest: m,
		log:      log,
		workers:  DefaultWorkers,
		cache:    make(map[string][]byte),
		images:   make(map[string]*ebiten.Image),
	}
}

// SetWorkers changes the fetch concurrency. Values below 1 are ignored.
func (l *Loader) SetWorkers(n int) {
	if n > 0 {
		l.workers = n
	}
}

// Manifest returns the manifest the loader was built with.
func (l *Loader) Manifest() *Manifest { return l.manifest }

// Has reports whether alias is in the cache.
func (l *Loader) Has(alias string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.cache[alias]
	return ok
}

// Loaded reports whether every asset of every named bundle is cached.
// An unknown bundle is never loaded.
func (l *Loader) Loaded(bundles ...string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, name := range bundles {
		b, ok := l.manifest.Bundle(name)
		if !ok {
			return false
		}
		for _, a := range b.Assets {
			if _, ok := l.cache[a.Alias]; !ok {
				return false
			}
		}
	}
	return true
}

// Load fetches the named bundles in the background. The returned channel
// receives exactly one value, nil on success, and is then closed.
func (l *Loader) Load(ctx context.Context, bundles ...string) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- l.LoadSync(ctx, bundles...)
	}()
	return done
}

// LoadSync fetches the named bundles and blocks until they are cached or
// the first failure. Assets already cached are not fetched again.
func (l *Loader) LoadSync(ctx context.Context, bundles ...string) error {
	var pending []Asset
	for _, name := range bundles {
		b, ok := l.manifest.Bundle(name)
		if !ok {
			return fmt.Errorf("load %q: %w", name, ErrUnknownBundle)
		}
		for _, a := range b.Assets {
			if !l.Has(a.Alias) {
				pending = append(pending, a)
			}
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for _, a := range pending {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := fs.ReadFile(l.fsys, a.Src)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", a.Alias, err)
			}
			l.mu.Lock()
			l.cache[a.Alias] = data
			l.mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		l.log.Error("bundle load failed", zap.Strings("bundles", bundles), zap.Error(err))
		return err
	}
	l.log.Debug("bundles loaded", zap.Strings("bundles", bundles), zap.Int("fetched", len(pending)))
	return nil
}

// BackgroundLoad starts loading every bundle in the manifest and logs the
// outcome. It does not block.
func (l *Loader) BackgroundLoad(ctx context.Context) {
	names := l.manifest.BundleNames()
	go func() {
		if err := l.LoadSync(ctx, names...); err != nil {
			l.log.Warn("background load incomplete", zap.Error(err))
		}
	}()
}

// Bytes returns the raw cached file for alias.
func (l *Loader) Bytes(alias string) ([]byte, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	data, ok := l.cache[alias]
	return data, ok
}

// Image decodes the cached file for alias into an ebiten image on first use.
// It must be called from the game loop.
func (l *Loader) Image(alias string) (*ebiten.Image, error) {
	l.mu.RLock()
	img, ok := l.images[alias]
	data, cached := l.cache[alias]
	l.mu.RUnlock()
	if ok {
		return img, nil
	}
	if !cached {
		return nil, fmt.Errorf("image %s: not loaded", alias)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", alias, err)
	}
	img = ebiten.NewImageFromImage(src)

	l.mu.Lock()
	l.images[alias] = img
	l.mu.Unlock()
	return img, nil
}
