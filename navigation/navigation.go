// Package navigation moves between full screens and overlays.
//
// The navigator owns two independent slots, one for screens and one for
// overlays. Every call queues a transition on its slot; transitions run one
// at a time, advanced by Update once per frame:
//
//	hide current -> load missing bundles behind the load screen -> prepare,
//	attach and show the target
//
// Each step waits for the previous one. Animations returned by Show and Hide
// are polled until done, and bundle loads are polled without blocking.
package navigation

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/phanxgames/bubbo/scene"
	"github.com/phanxgames/bubbo/timing"
)

var (
	// ErrMissingScreenID is returned for a descriptor without an ID.
	ErrMissingScreenID = errors.New("navigation: screen descriptor has no ID")
	// ErrNoConstructor is returned when an uncached screen has no New func.
	ErrNoConstructor = errors.New("navigation: screen descriptor has no constructor")
	// ErrClosed is returned for requests made after Close.
	ErrClosed = errors.New("navigation: navigator closed")
)

// Navigator shows screens and overlays. Add ScreenView and then OverlayView
// to the scene root so overlays draw on top.
type Navigator struct {
	ScreenView  *scene.Node
	OverlayView *scene.Node

	ticker Ticker
	loader BundleLoader
	log    *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
	closed bool

	cache      map[string]Screen
	loadScreen Screen

	width, height float64

	screens  *slot
	overlays *slot
}

// New creates a navigator that registers screen updates with ticker and
// loads bundles with loader.
func New(ticker Ticker, loader BundleLoader, log *zap.Logger) *Navigator {
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	n := &Navigator{
		ScreenView:  scene.NewContainer("screens"),
		OverlayView: scene.NewContainer("overlays"),
		ticker:      ticker,
		loader:      loader,
		log:         log,
		ctx:         ctx,
		cancel:      cancel,
		cache:       make(map[string]Screen),
	}
	n.screens = &slot{nav: n, name: "screen", view: n.ScreenView}
	n.overlays = &slot{nav: n, name: "overlay", view: n.OverlayView}
	return n
}

// SetLoadScreen builds (or reuses) the screen shown while bundles load.
func (n *Navigator) SetLoadScreen(d Descriptor) error {
	s, err := n.screen(d)
	if err != nil {
		return err
	}
	n.loadScreen = s
	return nil
}

// GoToScreen queues a switch of the screen slot to d.
func (n *Navigator) GoToScreen(d Descriptor, data any) *Request {
	return n.enqueue(n.screens, &d, data)
}

// ShowOverlay queues d on the overlay slot. The current screen stays.
func (n *Navigator) ShowOverlay(d Descriptor, data any) *Request {
	return n.enqueue(n.overlays, &d, data)
}

// HideOverlay queues hiding the current overlay. With no overlay it
// completes without doing anything.
func (n *Navigator) HideOverlay() *Request {
	return n.enqueue(n.overlays, nil, nil)
}

// Update advances both slots by the frame-scaled delta.
func (n *Navigator) Update(delta float64) {
	dt := float32(timing.DeltaToSeconds(delta))
	n.screens.advance(dt)
	n.overlays.advance(dt)
}

// Resize stores the viewport size and forwards it to everything attached.
func (n *Navigator) Resize(w, h float64) {
	n.width, n.height = w, h
	for _, s := range []*slot{n.screens, n.overlays} {
		if s.current != nil {
			resize(s.current, w, h)
		}
		if s.loading {
			resize(n.loadScreen, w, h)
		}
	}
}

// VisibilityChanged forwards focus changes to the current screen and
// overlay.
func (n *Navigator) VisibilityChanged(visible bool) {
	for _, s := range []*slot{n.screens, n.overlays} {
		if l, ok := s.current.(VisibilityListener); ok {
			l.VisibilityChanged(visible)
		}
	}
}

// CurrentScreen returns the ID of the screen in the screen slot, or "".
func (n *Navigator) CurrentScreen() string { return n.screens.currentID }

// CurrentOverlay returns the ID of the visible overlay, or "".
func (n *Navigator) CurrentOverlay() string { return n.overlays.currentID }

// Busy reports whether any transition is running or queued.
func (n *Navigator) Busy() bool {
	return n.screens.busy() || n.overlays.busy()
}

// Cached returns the cached screen for id.
func (n *Navigator) Cached(id string) (Screen, bool) {
	s, ok := n.cache[id]
	return s, ok
}

// Close cancels bundle loads in flight and rejects further requests.
func (n *Navigator) Close() {
	n.closed = true
	n.cancel()
}

func (n *Navigator) enqueue(s *slot, d *Descriptor, data any) *Request {
	if n.closed {
		return failedRequest(ErrClosed)
	}
	if d != nil && d.ID == "" {
		return failedRequest(ErrMissingScreenID)
	}
	req := newRequest()
	s.queue = append(s.queue, &transition{target: d, data: data, req: req})
	return req
}

// screen returns the cached instance for d, building it on first use.
func (n *Navigator) screen(d Descriptor) (Screen, error) {
	if d.ID == "" {
		return nil, ErrMissingScreenID
	}
	if s, ok := n.cache[d.ID]; ok {
		return s, nil
	}
	if d.New == nil {
		return nil, fmt.Errorf("screen %q: %w", d.ID, ErrNoConstructor)
	}
	s := d.New()
	n.cache[d.ID] = s
	n.log.Debug("screen built", zap.String("screen", d.ID))
	return s, nil
}

func resize(s Screen, w, h float64) {
	if r, ok := s.(Resizer); ok {
		r.Resize(w, h)
	}
}
