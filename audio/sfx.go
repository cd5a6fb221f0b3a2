package audio

import (
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// DefaultSFXVolume is the effects channel gain.
const DefaultSFXVolume = 0.5

// PlayOption adjusts a single effect playback.
type PlayOption func(*playOptions)

type playOptions struct {
	volume float64
	speed  float64
}

// WithVolume scales this playback on top of the channel volume.
func WithVolume(v float64) PlayOption {
	return func(o *playOptions) { o.volume = v }
}

// WithSpeed changes playback rate and pitch. 1 is unchanged.
func WithSpeed(s float64) PlayOption {
	return func(o *playOptions) { o.speed = s }
}

// SFX plays one-shot effects. Overlapping plays of the same sound mix.
type SFX struct {
	svc    *Service
	volume float64
}

// Play starts alias once.
func (x *SFX) Play(alias string, opts ...PlayOption) error {
	o := playOptions{volume: 1, speed: 1}
	for _, opt := range opts {
		opt(&o)
	}
	buf, err := x.svc.buffer(alias)
	if err != nil {
		return err
	}

	var st beep.Streamer = buf.Streamer(0, buf.Len())
	if o.speed > 0 && o.speed != 1 {
		st = beep.ResampleRatio(4, o.speed, st)
	}
	vol := &effects.Volume{Streamer: st, Base: 2}
	setGain(vol, x.volume*o.volume)
	x.svc.add(vol)
	return nil
}

// SetVolume sets the channel gain for effects started afterwards.
func (x *SFX) SetVolume(v float64) { x.volume = v }

// Volume returns the channel gain.
func (x *SFX) Volume() float64 { return x.volume }
