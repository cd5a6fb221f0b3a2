package game

import (
	"maps"
	"slices"

	"go.uber.org/zap"
)

// StatKey names a per-game statistic.
type StatKey string

const (
	StatScore         StatKey = "score"
	StatHighscore     StatKey = "highscore"
	StatBubblesPopped StatKey = "bubblesPopped"
	StatBestCombo     StatKey = "bestCombo"
	StatPowerupsUsed  StatKey = "powerupsUsed"
)

var defaultStats = map[StatKey]int{
	StatScore:         0,
	StatHighscore:     0,
	StatBubblesPopped: 0,
	StatBestCombo:     0,
	StatPowerupsUsed:  0,
}

// Stats tracks the player's numbers for the current game. Only the known
// keys exist; writes to any other key are rejected with a warning.
type Stats struct {
	values map[StatKey]int
	log    *zap.Logger
}

// NewStats creates stats at their defaults with the highscore seeded.
func NewStats(highscore int, log *zap.Logger) *Stats {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Stats{values: maps.Clone(defaultStats), log: log}
	s.values[StatHighscore] = highscore
	return s
}

// Get returns the value for k, or 0 for an unknown key.
func (s *Stats) Get(k StatKey) int { return s.values[k] }

// Set stores v for k and returns the stored value.
func (s *Stats) Set(k StatKey, v int) int {
	if _, ok := s.values[k]; !ok {
		s.log.Warn("cannot set unknown stat", zap.String("stat", string(k)))
		return 0
	}
	s.values[k] = v
	return v
}

// Increment adds by to k and returns the new value. An unknown key is left
// alone.
func (s *Stats) Increment(k StatKey, by int) int {
	v, ok := s.values[k]
	if !ok {
		s.log.Warn("cannot increment unknown stat", zap.String("stat", string(k)))
		return 0
	}
	v += by
	s.values[k] = v
	return v
}

// All returns a copy of every stat.
func (s *Stats) All() map[StatKey]int { return maps.Clone(s.values) }

// Keys returns the stat names in sorted order.
func (s *Stats) Keys() []StatKey {
	return slices.Sorted(maps.Keys(s.values))
}

// Reset restores the per-game counters. The highscore carries over.
func (s *Stats) Reset() {
	hs := s.values[StatHighscore]
	s.values = maps.Clone(defaultStats)
	s.values[StatHighscore] = hs
}
