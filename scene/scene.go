// Package scene is a small retained-mode scene graph over Ebitengine: nodes
// with a transform hierarchy, caller-driven tweens, a keyed ticker, and
// primary-pointer dispatch.
package scene

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene owns the node tree and the pointer state.
type Scene struct {
	root       *Node
	pointer    pointerState
	touchBuf   []ebiten.TouchID
	ClearColor Color
}

// NewScene creates a scene with a pre-created root container.
func NewScene() *Scene {
	root := NewContainer("root")
	return &Scene{root: root}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Update refreshes world transforms and processes pointer input.
func (s *Scene) Update() {
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	s.processInput()
}

// Draw renders the tree to screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	drawNode(screen, s.root)
}
