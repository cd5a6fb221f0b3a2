// Package timing converts between wall-clock units and the frame-scaled delta
// used by the game loop, and rate-limits repeated actions.
package timing

import "time"

// FramesPerSecond is the reference rate for frame-scaled deltas: a delta of
// 1 corresponds to one frame at this rate.
const FramesPerSecond = 60

// ToDefaultScalarTime converts milliseconds to frame-scaled time.
func ToDefaultScalarTime(ms float64) float64 {
	return ms * FramesPerSecond / 1000
}

// ToSeconds converts milliseconds to seconds.
func ToSeconds(ms float64) float64 {
	return ms / 1000
}

// DeltaToSeconds converts a frame-scaled delta to seconds.
func DeltaToSeconds(delta float64) float64 {
	return delta / FramesPerSecond
}

// Throttler runs a named action at most once per interval. It is not safe for
// concurrent use; the game loop is its only caller.
type Throttler struct {
	now   func() time.Time
	until map[string]time.Time
}

// NewThrottler creates a Throttler. A nil now defaults to time.Now.
func NewThrottler(now func() time.Time) *Throttler {
	if now == nil {
		now = time.Now
	}
	return &Throttler{now: now, until: make(map[string]time.Time)}
}

// Do calls fn unless name ran less than interval ago. It reports whether fn ran.
func (t *Throttler) Do(name string, interval time.Duration, fn func()) bool {
	now := t.now()
	if until, ok := t.until[name]; ok && now.Before(until) {
		return false
	}
	fn()
	t.until[name] = now.Add(interval)
	return true
}
