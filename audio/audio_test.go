package audio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// constant yields frames of a fixed value.
type constant struct {
	value float64
	left  int
}

func (c *constant) Stream(samples [][2]float64) (int, bool) {
	if c.left <= 0 {
		return 0, false
	}
	n := min(len(samples), c.left)
	for i := range n {
		samples[i] = [2]float64{c.value, c.value}
	}
	c.left -= n
	return n, true
}

func (c *constant) Err() error { return nil }

func constBuffer(value float64, frames int) *beep.Buffer {
	buf := beep.NewBuffer(beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2})
	buf.Append(&constant{value: value, left: frames})
	return buf
}

func newTestService() (*Service, *MixerOutput) {
	out := &MixerOutput{}
	svc := New(out, nil)
	svc.Register("ping", constBuffer(1, 1000))
	svc.Register("music-a", constBuffer(1, 500))
	svc.Register("music-b", constBuffer(1, 500))
	return svc, out
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestSFXVolumeScales(t *testing.T) {
	svc, out := newTestService()
	if err := svc.SFX.Play("ping", WithVolume(0.5)); err != nil {
		t.Fatal(err)
	}
	got := out.Stream(4)[0][0]
	if want := DefaultSFXVolume * 0.5; !approx(got, want) {
		t.Errorf("sample = %v, want %v", got, want)
	}
}

func TestSFXUnknownSound(t *testing.T) {
	svc, _ := newTestService()
	if err := svc.SFX.Play("missing"); !errors.Is(err, ErrUnknownSound) {
		t.Errorf("err = %v, want ErrUnknownSound", err)
	}
	if err := svc.BGM.Play("missing"); !errors.Is(err, ErrUnknownSound) {
		t.Errorf("bgm err = %v, want ErrUnknownSound", err)
	}
}

func TestSFXZeroVolumeSilent(t *testing.T) {
	svc, out := newTestService()
	_ = svc.SFX.Play("ping", WithVolume(0))
	if got := out.Stream(4)[0][0]; got != 0 {
		t.Errorf("sample = %v, want 0", got)
	}
}

func TestMuteSilencesEverything(t *testing.T) {
	svc, out := newTestService()
	svc.SetMuted(true)
	_ = svc.SFX.Play("ping")
	if got := out.Stream(4)[0][0]; got != 0 {
		t.Errorf("muted sample = %v", got)
	}
	svc.SetMuted(false)
	if got := out.Stream(4)[0][0]; !approx(got, DefaultSFXVolume) {
		t.Errorf("unmuted sample = %v, want %v", got, DefaultSFXVolume)
	}
}

func TestMasterVolumeZeroMutes(t *testing.T) {
	svc, _ := newTestService()
	svc.SetMasterVolume(0)
	if !svc.Muted() {
		t.Error("master volume 0 should mute")
	}
	svc.SetMasterVolume(0.8)
	if svc.Muted() || svc.MasterVolume() != 0.8 {
		t.Error("nonzero master volume should unmute")
	}
}

func TestBGMStartsWhenNothingPlaying(t *testing.T) {
	svc, out := newTestService()
	if err := svc.BGM.Play("music-a"); err != nil {
		t.Fatal(err)
	}
	if svc.BGM.Current() != "music-a" {
		t.Fatalf("Current = %q", svc.BGM.Current())
	}
	if got := out.Stream(1)[0][0]; got != 0 {
		t.Errorf("track not faded in from silence: %v", got)
	}
	svc.Update(FadeDuration)
	if got := out.Stream(1)[0][0]; !approx(got, DefaultBGMVolume) {
		t.Errorf("after fade = %v, want %v", got, DefaultBGMVolume)
	}
}

func TestBGMSameAliasNoop(t *testing.T) {
	svc, _ := newTestService()
	_ = svc.BGM.Play("music-a")
	svc.Update(FadeDuration)
	_ = svc.BGM.Play("music-a")
	if len(svc.BGM.fading) != 0 {
		t.Error("replaying the current track started a fade")
	}
}

func TestBGMCrossfade(t *testing.T) {
	svc, out := newTestService()
	_ = svc.BGM.Play("music-a")
	svc.Update(FadeDuration)
	_ = svc.BGM.Play("music-b")

	svc.Update(FadeDuration / 2)
	mid := out.Stream(1)[0][0]
	if !approx(mid, DefaultBGMVolume) {
		t.Errorf("crossfade midpoint sum = %v, want %v", mid, DefaultBGMVolume)
	}
	svc.Update(FadeDuration / 2)
	if len(svc.BGM.fading) != 0 {
		t.Error("old track not released after fade")
	}
	if svc.BGM.Current() != "music-b" {
		t.Errorf("Current = %q", svc.BGM.Current())
	}
}

func TestBGMSetVolume(t *testing.T) {
	svc, out := newTestService()
	_ = svc.BGM.Play("music-a", WithVolume(0.5))
	svc.BGM.SetVolume(1)
	if got := out.Stream(1)[0][0]; !approx(got, 0.5) {
		t.Errorf("sample = %v, want 0.5", got)
	}
}

func TestLoadWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	format := beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, &constant{value: 0.25, left: 200}, format); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	svc := New(&MixerOutput{}, nil)
	if err := svc.LoadWAV("tone", data); err != nil {
		t.Fatalf("LoadWAV: %v", err)
	}
	if !svc.Has("tone") || svc.sounds["tone"].Len() != 200 {
		t.Errorf("registered frames = %d", svc.sounds["tone"].Len())
	}
	if err := svc.LoadWAV("junk", []byte("not a wav")); err == nil {
		t.Error("expected decode error")
	}
}
