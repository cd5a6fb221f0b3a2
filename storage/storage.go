// Package storage persists the two values the game keeps between sessions:
// the mute flag and the best score. Data lives as one JSON document under a
// single key of a small key-value Backend.
package storage

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Key is the backend key the document is stored under.
const Key = "bubbo-bubbo"

// Data is the persisted document.
type Data struct {
	Muted     bool `json:"muted"`
	Highscore int  `json:"highscore"`
}

// Defaults is written by Ready when nothing is stored yet.
var Defaults = Data{Muted: false, Highscore: 0}

// Backend is a string key-value store. GetItem reports ok=false for a
// missing key.
type Backend interface {
	GetItem(key string) (value string, ok bool, err error)
	SetItem(key, value string) error
}

// Store reads and writes the document through a Backend.
type Store struct {
	backend Backend
	log     *zap.Logger
	mu      sync.Mutex
}

// New creates a Store.
func New(b Backend, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{backend: b, log: log}
}

// Ready writes Defaults if the backend holds no document.
func (s *Store) Ready() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok, err := s.backend.GetItem(Key)
	if err != nil {
		return fmt.Errorf("storage ready: %w", err)
	}
	if ok {
		return nil
	}
	return s.write(Defaults)
}

// Get returns the stored document, or Defaults when none exists.
func (s *Store) Get() (Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Set replaces the whole document.
func (s *Store) Set(d Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(d)
}

// Update applies fn to the current document and stores the result.
func (s *Store) Update(fn func(*Data)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.read()
	if err != nil {
		return err
	}
	fn(&d)
	return s.write(d)
}

// Muted reports the stored mute flag. Read errors are logged and report
// false.
func (s *Store) Muted() bool {
	d, err := s.Get()
	if err != nil {
		s.log.Warn("read muted", zap.Error(err))
	}
	return d.Muted
}

// SetMuted stores the mute flag.
func (s *Store) SetMuted(muted bool) error {
	return s.Update(func(d *Data) { d.Muted = muted })
}

// Highscore reports the stored best score. Read errors are logged and
// report 0.
func (s *Store) Highscore() int {
	d, err := s.Get()
	if err != nil {
		s.log.Warn("read highscore", zap.Error(err))
	}
	return d.Highscore
}

// SetHighscore stores the best score.
func (s *Store) SetHighscore(score int) error {
	return s.Update(func(d *Data) { d.Highscore = score })
}

func (s *Store) read() (Data, error) {
	raw, ok, err := s.backend.GetItem(Key)
	if err != nil {
		return Defaults, fmt.Errorf("storage get: %w", err)
	}
	if !ok {
		return Defaults, nil
	}
	d := Defaults
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return Defaults, fmt.Errorf("storage decode: %w", err)
	}
	return d, nil
}

func (s *Store) write(d Data) error {
	raw, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("storage encode: %w", err)
	}
	if err := s.backend.SetItem(Key, string(raw)); err != nil {
		return fmt.Errorf("storage set: %w", err)
	}
	return nil
}
