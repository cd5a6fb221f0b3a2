package navigation

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/phanxgames/bubbo/scene"
)

type callLog struct{ calls []string }

func (l *callLog) add(s string) { l.calls = append(l.calls, s) }

func (l *callLog) count(s string) int {
	n := 0
	for _, c := range l.calls {
		if c == s {
			n++
		}
	}
	return n
}

type fakeScreen struct {
	id      string
	log     *callLog
	view    *scene.Node
	showFor float32
	hideFor float32

	data    any
	w, h    float64
	resizes int
	updates int
	visible []bool
}

func (s *fakeScreen) View() *scene.Node { return s.view }
func (s *fakeScreen) Prepare(data any) {
	s.data = data
	s.log.add(s.id + ".prepare")
}
func (s *fakeScreen) Show() scene.Animation {
	s.log.add(s.id + ".show")
	return scene.NewDelay(s.showFor)
}
func (s *fakeScreen) Hide() scene.Animation {
	s.log.add(s.id + ".hide")
	return scene.NewDelay(s.hideFor)
}
func (s *fakeScreen) Update(float64) { s.updates++ }
func (s *fakeScreen) Resize(w, h float64) {
	s.w, s.h = w, h
	s.resizes++
}
func (s *fakeScreen) VisibilityChanged(v bool) { s.visible = append(s.visible, v) }

// plainScreen implements none of the optional interfaces.
type plainScreen struct{ view *scene.Node }

func (s *plainScreen) View() *scene.Node { return s.view }

type fakeLoader struct {
	log    *callLog
	loaded map[string]bool
	ch     chan error
	ctx    context.Context
	calls  int
}

func newFakeLoader(log *callLog) *fakeLoader {
	return &fakeLoader{log: log, loaded: map[string]bool{}}
}

func (l *fakeLoader) Loaded(bundles ...string) bool {
	for _, b := range bundles {
		if !l.loaded[b] {
			return false
		}
	}
	return true
}

func (l *fakeLoader) Load(ctx context.Context, bundles ...string) <-chan error {
	l.log.add("bundleLoad")
	l.calls++
	l.ctx = ctx
	l.ch = make(chan error, 1)
	return l.ch
}

func (l *fakeLoader) finish(err error, bundles ...string) {
	if err == nil {
		for _, b := range bundles {
			l.loaded[b] = true
		}
	}
	l.ch <- err
	close(l.ch)
}

type harness struct {
	log    *callLog
	ticker *scene.Ticker
	loader *fakeLoader
	nav    *Navigator
	built  map[string]int
	screen map[string]*fakeScreen
}

func newHarness() *harness {
	log := &callLog{}
	h := &harness{
		log:    log,
		ticker: scene.NewTicker(),
		loader: newFakeLoader(log),
		built:  map[string]int{},
		screen: map[string]*fakeScreen{},
	}
	h.nav = New(h.ticker, h.loader, nil)
	return h
}

func (h *harness) desc(id string, bundles ...string) Descriptor {
	return Descriptor{
		ID:      id,
		Bundles: bundles,
		New: func() Screen {
			h.built[id]++
			s := &fakeScreen{id: id, log: h.log, view: scene.NewContainer(id), showFor: 0.1, hideFor: 0.1}
			h.screen[id] = s
			return s
		},
	}
}

func (h *harness) run(t *testing.T, req *Request) {
	t.Helper()
	for i := 0; i < 600 && !req.Finished(); i++ {
		h.nav.Update(1)
	}
	if !req.Finished() {
		t.Fatal("request did not finish")
	}
}

func TestGoToScreenWithLoadScreenCallOrder(t *testing.T) {
	h := newHarness()
	if err := h.nav.SetLoadScreen(h.desc("loader")); err != nil {
		t.Fatal(err)
	}
	req := h.nav.GoToScreen(h.desc("game", "images/game"), "payload")

	h.nav.Update(1)
	if req.Finished() {
		t.Fatal("finished before bundles loaded")
	}
	if h.nav.ScreenView.NumChildren() != 1 || h.nav.ScreenView.Children()[0] != h.screen["loader"].view {
		t.Fatal("load screen not attached while loading")
	}
	for range 10 {
		h.nav.Update(1)
	}
	if req.Finished() {
		t.Fatal("finished while load still pending")
	}

	h.loader.finish(nil, "images/game")
	h.run(t, req)

	want := []string{"loader.show", "bundleLoad", "loader.hide", "game.prepare", "game.show"}
	if !slices.Equal(h.log.calls, want) {
		t.Fatalf("calls = %v, want %v", h.log.calls, want)
	}
	if req.Err() != nil {
		t.Fatalf("err = %v", req.Err())
	}
	if h.screen["game"].data != "payload" {
		t.Errorf("prepare data = %v", h.screen["game"].data)
	}
	if h.nav.CurrentScreen() != "game" {
		t.Errorf("current = %q", h.nav.CurrentScreen())
	}
	if h.nav.ScreenView.NumChildren() != 1 || h.nav.ScreenView.Children()[0] != h.screen["game"].view {
		t.Error("screen view should hold only the target")
	}
	if h.ticker.Has("screen:loader") {
		t.Error("load screen still ticking")
	}
}

func TestLoadedBundlesSkipLoadScreen(t *testing.T) {
	h := newHarness()
	h.nav.SetLoadScreen(h.desc("loader"))
	h.loader.loaded["images/game"] = true

	h.run(t, h.nav.GoToScreen(h.desc("game", "images/game"), nil))

	if n := h.log.count("loader.show") + h.log.count("loader.hide"); n != 0 {
		t.Errorf("load screen calls = %d, want 0", n)
	}
	if h.loader.calls != 0 {
		t.Errorf("loader calls = %d, want 0", h.loader.calls)
	}
}

func TestLoadWithoutLoadScreen(t *testing.T) {
	h := newHarness()
	req := h.nav.GoToScreen(h.desc("game", "images/game"), nil)
	h.nav.Update(1)
	h.loader.finish(nil, "images/game")
	h.run(t, req)

	want := []string{"bundleLoad", "game.prepare", "game.show"}
	if !slices.Equal(h.log.calls, want) {
		t.Fatalf("calls = %v, want %v", h.log.calls, want)
	}
}

func TestLoadWaitsForOutgoingHide(t *testing.T) {
	h := newHarness()
	h.run(t, h.nav.GoToScreen(h.desc("title"), nil))
	h.screen["title"].hideFor = 0.5

	req := h.nav.GoToScreen(h.desc("game", "images/game"), nil)
	for range 20 {
		h.nav.Update(1)
		if h.loader.calls != 0 {
			t.Fatal("bundle load started during hide")
		}
	}
	for i := 0; i < 60 && h.loader.calls == 0; i++ {
		h.nav.Update(1)
	}
	if h.loader.calls != 1 {
		t.Fatalf("loader calls = %d, want 1", h.loader.calls)
	}
	if h.screen["title"].view.Parent != nil {
		t.Error("outgoing screen still attached during load")
	}
	h.loader.finish(nil, "images/game")
	h.run(t, req)
}

func TestLoadErrorFailsRequest(t *testing.T) {
	h := newHarness()
	h.nav.SetLoadScreen(h.desc("loader"))
	boom := errors.New("boom")

	var thenErr error
	req := h.nav.GoToScreen(h.desc("game", "images/game"), nil).Then(func(err error) { thenErr = err })
	h.nav.Update(1)
	h.loader.finish(boom)
	h.run(t, req)

	if !errors.Is(req.Err(), boom) {
		t.Fatalf("err = %v, want boom", req.Err())
	}
	if !errors.Is(thenErr, boom) {
		t.Errorf("then err = %v", thenErr)
	}
	if h.log.count("game.prepare") != 0 || h.log.count("game.show") != 0 {
		t.Error("target shown after load error")
	}
	if h.nav.ScreenView.NumChildren() != 0 {
		t.Error("load screen left attached")
	}
	if h.nav.CurrentScreen() != "" {
		t.Errorf("current = %q", h.nav.CurrentScreen())
	}
}

func TestScreensAreCached(t *testing.T) {
	h := newHarness()
	h.run(t, h.nav.GoToScreen(h.desc("a"), nil))
	h.run(t, h.nav.GoToScreen(h.desc("b"), nil))
	h.run(t, h.nav.GoToScreen(h.desc("a"), nil))

	if h.built["a"] != 1 || h.built["b"] != 1 {
		t.Errorf("built = %v", h.built)
	}
	if s, ok := h.nav.Cached("b"); !ok || s != h.screen["b"] {
		t.Error("cached b missing")
	}
}

func TestRequestsQueuePerSlot(t *testing.T) {
	h := newHarness()
	first := h.nav.GoToScreen(h.desc("a"), nil)
	second := h.nav.GoToScreen(h.desc("b"), nil)
	if !h.nav.Busy() {
		t.Fatal("navigator idle with queued requests")
	}
	h.run(t, second)
	if !first.Finished() {
		t.Fatal("first request not finished before second")
	}

	want := []string{"a.prepare", "a.show", "a.hide", "b.prepare", "b.show"}
	if !slices.Equal(h.log.calls, want) {
		t.Fatalf("calls = %v, want %v", h.log.calls, want)
	}
	if h.nav.Busy() {
		t.Error("navigator still busy")
	}
}

func TestOverlayIsIndependent(t *testing.T) {
	h := newHarness()
	h.run(t, h.nav.GoToScreen(h.desc("game"), nil))
	h.run(t, h.nav.ShowOverlay(h.desc("pause"), 120))

	if h.nav.CurrentScreen() != "game" || h.nav.CurrentOverlay() != "pause" {
		t.Fatalf("screen=%q overlay=%q", h.nav.CurrentScreen(), h.nav.CurrentOverlay())
	}
	if h.screen["pause"].view.Parent != h.nav.OverlayView {
		t.Error("overlay not in overlay view")
	}
	if h.log.count("game.hide") != 0 {
		t.Error("overlay hid the screen")
	}

	h.run(t, h.nav.HideOverlay())
	if h.nav.CurrentOverlay() != "" {
		t.Errorf("overlay = %q", h.nav.CurrentOverlay())
	}
	if h.log.count("pause.hide") != 1 {
		t.Error("overlay hide not called")
	}
	if h.nav.CurrentScreen() != "game" || h.nav.OverlayView.NumChildren() != 0 {
		t.Error("hide overlay disturbed the screen slot")
	}
}

func TestHideOverlayWithoutOverlay(t *testing.T) {
	h := newHarness()
	req := h.nav.HideOverlay()
	h.nav.Update(1)
	if !req.Finished() || req.Err() != nil {
		t.Fatalf("finished=%v err=%v", req.Finished(), req.Err())
	}
	if len(h.log.calls) != 0 {
		t.Errorf("calls = %v", h.log.calls)
	}
}

func TestResizeForwarding(t *testing.T) {
	h := newHarness()
	h.nav.Resize(400, 800)
	h.run(t, h.nav.GoToScreen(h.desc("game"), nil))
	h.run(t, h.nav.ShowOverlay(h.desc("pause"), nil))

	g, p := h.screen["game"], h.screen["pause"]
	if g.w != 400 || g.h != 800 || g.resizes != 1 {
		t.Errorf("attach resize = (%v, %v) x%d", g.w, g.h, g.resizes)
	}

	h.nav.Resize(500, 900)
	for _, s := range []*fakeScreen{g, p} {
		if s.w != 500 || s.h != 900 {
			t.Errorf("%s size = (%v, %v), want (500, 900)", s.id, s.w, s.h)
		}
	}

	h.run(t, h.nav.HideOverlay())
	h.nav.Resize(600, 1000)
	if p.w != 500 {
		t.Error("hidden overlay still receives resizes")
	}
}

func TestTickerRegistration(t *testing.T) {
	h := newHarness()
	h.run(t, h.nav.GoToScreen(h.desc("title"), nil))
	if !h.ticker.Has("screen:title") {
		t.Fatal("screen update not registered")
	}
	h.ticker.Tick(1)
	if h.screen["title"].updates != 1 {
		t.Errorf("updates = %d", h.screen["title"].updates)
	}

	h.run(t, h.nav.GoToScreen(h.desc("game"), nil))
	if h.ticker.Has("screen:title") {
		t.Error("old screen still registered")
	}
	if !h.ticker.Has("screen:game") {
		t.Error("new screen not registered")
	}
}

func TestScreenWithoutCapabilities(t *testing.T) {
	h := newHarness()
	v := scene.NewContainer("plain")
	req := h.nav.GoToScreen(Descriptor{ID: "plain", New: func() Screen { return &plainScreen{view: v} }}, nil)
	h.nav.Update(1)
	if !req.Finished() {
		t.Fatal("plain screen should show in one frame")
	}
	if v.Parent != h.nav.ScreenView {
		t.Error("plain screen not attached")
	}
	if h.ticker.Len() != 0 {
		t.Error("plain screen registered a tick")
	}
}

func TestInvalidDescriptors(t *testing.T) {
	h := newHarness()
	tests := []struct {
		name string
		desc Descriptor
		want error
	}{
		{"missing id", Descriptor{}, ErrMissingScreenID},
		{"missing constructor", Descriptor{ID: "x"}, ErrNoConstructor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := h.nav.GoToScreen(tt.desc, nil)
			h.run(t, req)
			if !errors.Is(req.Err(), tt.want) {
				t.Errorf("err = %v, want %v", req.Err(), tt.want)
			}
		})
	}
}

func TestVisibilityForwarding(t *testing.T) {
	h := newHarness()
	h.run(t, h.nav.GoToScreen(h.desc("game"), nil))
	h.nav.VisibilityChanged(false)
	if got := h.screen["game"].visible; len(got) != 1 || got[0] {
		t.Errorf("visible = %v", got)
	}
}

func TestCloseCancelsLoads(t *testing.T) {
	h := newHarness()
	h.nav.GoToScreen(h.desc("game", "images/game"), nil)
	h.nav.Update(1)
	h.nav.Close()
	if h.loader.ctx.Err() == nil {
		t.Error("load context not canceled")
	}
	if req := h.nav.GoToScreen(h.desc("title"), nil); !errors.Is(req.Err(), ErrClosed) {
		t.Errorf("err = %v, want ErrClosed", req.Err())
	}
}

func TestThenAfterFinish(t *testing.T) {
	r := newRequest()
	r.complete(nil)
	called := false
	r.Then(func(error) { called = true })
	if !called {
		t.Error("Then on a finished request did not run")
	}
}
