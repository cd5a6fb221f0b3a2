package scene

// TickFunc receives the frame-scaled delta (1.0 per frame at 60 TPS).
type TickFunc func(delta float64)

type tickEntry struct {
	key string
	fn  TickFunc
}

// Ticker calls registered update functions once per frame in registration
// order. Entries are keyed so callers can remove them without holding the
// function value.
type Ticker struct {
	entries []tickEntry
	buf     []tickEntry
	speed   float64
	stopped bool
}

// NewTicker creates a running ticker with speed 1.
func NewTicker() *Ticker {
	return &Ticker{speed: 1}
}

// Add registers fn under key. Adding an existing key replaces its function
// and keeps its position.
func (t *Ticker) Add(key string, fn TickFunc) {
	for i := range t.entries {
		if t.entries[i].key == key {
			t.entries[i].fn = fn
			return
		}
	}
	t.entries = append(t.entries, tickEntry{key: key, fn: fn})
}

// Remove unregisters key. Unknown keys are ignored.
func (t *Ticker) Remove(key string) {
	for i := range t.entries {
		if t.entries[i].key == key {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return
		}
	}
}

// Has reports whether key is registered.
func (t *Ticker) Has(key string) bool {
	for _, e := range t.entries {
		if e.key == key {
			return true
		}
	}
	return false
}

// Len returns the number of registered functions.
func (t *Ticker) Len() int { return len(t.entries) }

// SetSpeed scales every delta passed to listeners.
func (t *Ticker) SetSpeed(s float64) { t.speed = s }

// Stop suspends ticking until Start.
func (t *Ticker) Stop() { t.stopped = true }

// Start resumes ticking.
func (t *Ticker) Start() { t.stopped = false }

// Tick calls every registered function with delta scaled by the ticker speed.
// Functions added or removed during a tick take effect on the next tick.
func (t *Ticker) Tick(delta float64) {
	if t.stopped {
		return
	}
	t.buf = append(t.buf[:0], t.entries...)
	d := delta * t.speed
	for _, e := range t.buf {
		e.fn(d)
	}
	clear(t.buf)
}
