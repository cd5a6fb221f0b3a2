package game

import (
	"errors"
	"fmt"
)

// ErrMissingSystemID is returned when a descriptor has an empty ID.
var ErrMissingSystemID = errors.New("game: system descriptor has no ID")

// Runner owns a game's systems and fans lifecycle calls out to them in
// registration order. Panics raised by a system propagate to the caller.
type Runner struct {
	game    *Game
	byID    map[string]System
	order   []System
	resized bool
	width   float64
	height  float64
}

// NewRunner creates an empty runner for g.
func NewRunner(g *Game) *Runner {
	return &Runner{game: g, byID: make(map[string]System)}
}

// AddSystem registers the system described by d and returns it. A known ID
// returns the existing instance without building a new one. If the runner
// has already been resized, the new system receives the stored size before
// AddSystem returns.
func AddSystem[T System](r *Runner, d Descriptor[T]) (T, error) {
	var zero T
	if d.ID == "" {
		return zero, ErrMissingSystemID
	}
	if existing, ok := r.byID[d.ID]; ok {
		sys, ok := existing.(T)
		if !ok {
			return zero, fmt.Errorf("system %q is a %T, not a %T", d.ID, existing, zero)
		}
		return sys, nil
	}
	if d.New == nil {
		return zero, fmt.Errorf("system %q: descriptor has no constructor", d.ID)
	}

	sys := d.New()
	sys.attach(r.game)
	r.byID[d.ID] = sys
	r.order = append(r.order, sys)

	if rs, ok := any(sys).(Resizer); ok && r.resized {
		rs.Resize(r.width, r.height)
	}
	return sys, nil
}

// MustAddSystem is AddSystem for fixed descriptors known to be valid.
func MustAddSystem[T System](r *Runner, d Descriptor[T]) T {
	sys, err := AddSystem(r, d)
	if err != nil {
		panic(err)
	}
	return sys
}

// GetSystem returns the instance registered under d.ID.
func GetSystem[T System](r *Runner, d Descriptor[T]) (T, bool) {
	sys, ok := r.byID[d.ID].(T)
	return sys, ok
}

// Len returns the number of registered systems.
func (r *Runner) Len() int { return len(r.order) }

// Init calls Init on every system that has it.
func (r *Runner) Init() {
	for _, s := range r.order {
		if c, ok := s.(Initer); ok {
			c.Init()
		}
	}
}

// Awake calls Awake on every system that has it.
func (r *Runner) Awake() {
	for _, s := range r.order {
		if c, ok := s.(Awaker); ok {
			c.Awake()
		}
	}
}

// Start calls Start on every system that has it.
func (r *Runner) Start() {
	for _, s := range r.order {
		if c, ok := s.(Starter); ok {
			c.Start()
		}
	}
}

// Update calls Update on every system that has it.
func (r *Runner) Update(delta float64) {
	for _, s := range r.order {
		if c, ok := s.(Updater); ok {
			c.Update(delta)
		}
	}
}

// End calls End on every system that has it.
func (r *Runner) End() {
	for _, s := range r.order {
		if c, ok := s.(Ender); ok {
			c.End()
		}
	}
}

// Reset calls Reset on every system that has it.
func (r *Runner) Reset() {
	for _, s := range r.order {
		if c, ok := s.(Resetter); ok {
			c.Reset()
		}
	}
}

// Resize stores the size for systems added later and forwards it.
func (r *Runner) Resize(w, h float64) {
	r.resized = true
	r.width, r.height = w, h
	for _, s := range r.order {
		if c, ok := s.(Resizer); ok {
			c.Resize(w, h)
		}
	}
}

// VisibilityChanged forwards focus changes.
func (r *Runner) VisibilityChanged(visible bool) {
	for _, s := range r.order {
		if c, ok := s.(VisibilityListener); ok {
			c.VisibilityChanged(visible)
		}
	}
}
