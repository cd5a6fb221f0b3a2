package navigation

import (
	"context"

	"github.com/phanxgames/bubbo/scene"
)

// Screen is anything the navigator can put in a slot. It may implement any
// of the optional capability interfaces below.
type Screen interface {
	View() *scene.Node
}

// Preparer receives the data passed to GoToScreen or ShowOverlay before the
// screen is attached.
type Preparer interface{ Prepare(data any) }

// Shower returns the entrance animation. The navigator waits for it.
type Shower interface{ Show() scene.Animation }

// Hider returns the exit animation. The navigator waits for it.
type Hider interface{ Hide() scene.Animation }

// Updater is registered with the ticker while the screen is attached.
type Updater interface{ Update(delta float64) }

// Resizer receives the viewport size on attach and on every resize.
type Resizer interface{ Resize(w, h float64) }

// VisibilityListener is told when the window gains or loses focus.
type VisibilityListener interface{ VisibilityChanged(visible bool) }

// Descriptor identifies a screen, the bundles it needs and how to build it.
// Screens are built once per ID and cached.
type Descriptor struct {
	ID      string
	Bundles []string
	New     func() Screen
}

// Ticker calls registered functions once per frame.
type Ticker interface {
	Add(key string, fn scene.TickFunc)
	Remove(key string)
}

// BundleLoader loads asset bundles in the background. Load delivers one
// result on the returned channel.
type BundleLoader interface {
	Loaded(bundles ...string) bool
	Load(ctx context.Context, bundles ...string) <-chan error
}
