// Package audio plays named sound effects and looping background music
// through a beep mixer. Sounds are decoded once into memory buffers and
// addressed by the same alias the asset loader uses.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"go.uber.org/zap"
)

// SampleRate is the rate every sound is resampled to on load.
const SampleRate = beep.SampleRate(44100)

// ErrUnknownSound is returned when an alias was never registered.
var ErrUnknownSound = errors.New("audio: unknown sound")

// Output is where the service's master streamer ends up. Lock and Unlock
// guard changes to streamers that are already playing.
type Output interface {
	Play(s beep.Streamer)
	Lock()
	Unlock()
}

// SpeakerOutput plays through the system speaker.
type SpeakerOutput struct{}

// NewSpeakerOutput initializes the speaker at SampleRate with a 100ms buffer.
func NewSpeakerOutput() (SpeakerOutput, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return SpeakerOutput{}, fmt.Errorf("init speaker: %w", err)
	}
	return SpeakerOutput{}, nil
}

func (SpeakerOutput) Play(s beep.Streamer) { speaker.Play(s) }
func (SpeakerOutput) Lock()                { speaker.Lock() }
func (SpeakerOutput) Unlock()              { speaker.Unlock() }

// MixerOutput collects the master streamer without a device. It is used
// when audio is disabled and by tests, which pull samples with Stream.
type MixerOutput struct {
	mixer beep.Mixer
	mu    sync.Mutex
}

func (m *MixerOutput) Play(s beep.Streamer) { m.mixer.Add(s) }
func (m *MixerOutput) Lock()                { m.mu.Lock() }
func (m *MixerOutput) Unlock()              { m.mu.Unlock() }

// Stream pulls n stereo frames from everything played so far.
func (m *MixerOutput) Stream(n int) [][2]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf := make([][2]float64, n)
	m.mixer.Stream(buf)
	return buf
}

// Service owns the sound registry and the master volume. It is shared by
// SFX and BGM.
type Service struct {
	out    Output
	log    *zap.Logger
	mixer  *beep.Mixer
	master *effects.Volume

	sounds       map[string]*beep.Buffer
	muted        bool
	masterVolume float64

	SFX *SFX
	BGM *BGM
}

// New creates a service playing into out.
func New(out Output, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{
		out:          out,
		log:          log,
		mixer:        &beep.Mixer{},
		sounds:       make(map[string]*beep.Buffer),
		masterVolume: 1,
	}
	s.master = &effects.Volume{Streamer: s.mixer, Base: 2}
	s.SFX = &SFX{svc: s, volume: DefaultSFXVolume}
	s.BGM = &BGM{svc: s, volume: DefaultBGMVolume, instance: 1}
	out.Play(s.master)
	return s
}

// Register stores a decoded buffer under alias, replacing any previous one.
func (s *Service) Register(alias string, buf *beep.Buffer) {
	s.sounds[alias] = buf
}

// Has reports whether alias is registered.
func (s *Service) Has(alias string) bool {
	_, ok := s.sounds[alias]
	return ok
}

// LoadWAV decodes a WAV file, resamples it to SampleRate and registers it.
func (s *Service) LoadWAV(alias string, data []byte) error {
	stream, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode %s: %w", alias, err)
	}
	defer stream.Close()

	var src beep.Streamer = stream
	if format.SampleRate != SampleRate {
		src = beep.Resample(4, format.SampleRate, SampleRate, stream)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2})
	buf.Append(src)
	if err := stream.Err(); err != nil {
		return fmt.Errorf("read %s: %w", alias, err)
	}
	s.Register(alias, buf)
	s.log.Debug("sound registered", zap.String("alias", alias), zap.Int("frames", buf.Len()))
	return nil
}

// SetMuted silences or restores everything.
func (s *Service) SetMuted(muted bool) {
	s.out.Lock()
	s.muted = muted
	s.applyMaster()
	s.out.Unlock()
}

// Muted reports the master mute flag.
func (s *Service) Muted() bool { return s.muted }

// SetMasterVolume scales everything. Zero mutes, anything else unmutes.
func (s *Service) SetMasterVolume(v float64) {
	s.out.Lock()
	s.masterVolume = v
	s.muted = v <= 0
	s.applyMaster()
	s.out.Unlock()
}

// MasterVolume returns the master gain.
func (s *Service) MasterVolume() float64 { return s.masterVolume }

// Update advances music fades by dt seconds. Call it once per frame.
func (s *Service) Update(dt float32) {
	s.BGM.update(dt)
}

func (s *Service) applyMaster() {
	if s.muted {
		s.master.Silent = true
		return
	}
	setGain(s.master, s.masterVolume)
}

func (s *Service) buffer(alias string) (*beep.Buffer, error) {
	buf, ok := s.sounds[alias]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSound, alias)
	}
	return buf, nil
}

func (s *Service) add(st beep.Streamer) {
	s.out.Lock()
	s.mixer.Add(st)
	s.out.Unlock()
}

// setGain maps a linear gain onto an effects.Volume with base 2.
func setGain(v *effects.Volume, gain float64) {
	if gain <= 0 {
		v.Silent = true
		return
	}
	v.Silent = false
	v.Volume = math.Log2(gain)
}
