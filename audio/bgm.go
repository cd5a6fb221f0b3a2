package audio

import (
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	// DefaultBGMVolume is the music channel gain.
	DefaultBGMVolume = 0.15
	// FadeDuration is how long a crossfade takes, in seconds.
	FadeDuration float32 = 1
)

type track struct {
	alias string
	ctrl  *beep.Ctrl
	vol   *effects.Volume
	level float64
	fade  *gween.Tween
}

// BGM plays one looping music track at a time and crossfades on change.
type BGM struct {
	svc      *Service
	volume   float64
	instance float64

	current *track
	fading  []*track
}

// Play switches to alias. Playing the current alias again does nothing.
// The previous track fades out while the new one fades in.
func (b *BGM) Play(alias string, opts ...PlayOption) error {
	if b.current != nil && b.current.alias == alias {
		return nil
	}
	o := playOptions{volume: 1, speed: 1}
	for _, opt := range opts {
		opt(&o)
	}
	buf, err := b.svc.buffer(alias)
	if err != nil {
		return err
	}

	b.fadeOutCurrent()

	vol := &effects.Volume{Streamer: beep.Loop(-1, buf.Streamer(0, buf.Len())), Base: 2, Silent: true}
	t := &track{alias: alias, ctrl: &beep.Ctrl{Streamer: vol}, vol: vol}
	b.instance = o.volume
	t.fade = gween.New(0, float32(b.volume*b.instance), FadeDuration, ease.Linear)
	b.current = t
	b.svc.add(t.ctrl)
	return nil
}

// Stop fades out the current track.
func (b *BGM) Stop() {
	b.fadeOutCurrent()
	b.current = nil
}

// Current returns the alias being played, or "".
func (b *BGM) Current() string {
	if b.current == nil {
		return ""
	}
	return b.current.alias
}

// SetVolume sets the music channel gain and applies it to the current track
// immediately.
func (b *BGM) SetVolume(v float64) {
	b.volume = v
	if b.current == nil {
		return
	}
	b.current.fade = nil
	b.current.level = b.volume * b.instance
	b.svc.out.Lock()
	setGain(b.current.vol, b.current.level)
	b.svc.out.Unlock()
}

// Volume returns the music channel gain.
func (b *BGM) Volume() float64 { return b.volume }

func (b *BGM) fadeOutCurrent() {
	t := b.current
	if t == nil {
		return
	}
	t.fade = gween.New(float32(t.level), 0, FadeDuration, ease.Linear)
	b.fading = append(b.fading, t)
	b.current = nil
}

func (b *BGM) update(dt float32) {
	if b.current == nil && len(b.fading) == 0 {
		return
	}
	b.svc.out.Lock()
	defer b.svc.out.Unlock()

	if t := b.current; t != nil && t.fade != nil {
		v, done := t.fade.Update(dt)
		t.level = float64(v)
		setGain(t.vol, t.level)
		if done {
			t.fade = nil
		}
	}

	kept := b.fading[:0]
	for _, t := range b.fading {
		v, done := t.fade.Update(dt)
		t.level = float64(v)
		setGain(t.vol, t.level)
		if done {
			// A Ctrl without a streamer reports drained and leaves the mixer.
			t.ctrl.Streamer = nil
			continue
		}
		kept = append(kept, t)
	}
	clear(b.fading[len(kept):])
	b.fading = kept
}
