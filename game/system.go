package game

// System is a game subsystem managed by a Runner. Implementations embed
// SystemBase, which carries the back-reference to the owning Game, and opt
// into lifecycle calls by implementing any of the capability interfaces
// below.
type System interface {
	attach(g *Game)
}

// SystemBase is embedded by every system.
type SystemBase struct {
	game *Game
}

func (s *SystemBase) attach(g *Game) { s.game = g }

// Game returns the game the system was added to.
func (s *SystemBase) Game() *Game { return s.game }

// Initer is called once, when the game is initialized.
type Initer interface{ Init() }

// Awaker is called every time the game becomes active.
type Awaker interface{ Awake() }

// Starter is called when game logic starts, after Awake.
type Starter interface{ Start() }

// Updater is called every frame with the frame-scaled delta.
type Updater interface{ Update(delta float64) }

// Ender is called when game logic stops.
type Ender interface{ End() }

// Resetter is called after End to restore the initial state.
type Resetter interface{ Reset() }

// Resizer is called with the new viewport size.
type Resizer interface{ Resize(w, h float64) }

// VisibilityListener is told when the window gains or loses focus.
type VisibilityListener interface{ VisibilityChanged(visible bool) }

// Descriptor names a system and knows how to build it. The ID is the key
// the runner deduplicates on.
type Descriptor[T System] struct {
	ID  string
	New func() T
}
