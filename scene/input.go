package scene

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerEvent identifies a kind of pointer notification.
type PointerEvent uint8

const (
	PointerDown PointerEvent = iota // button or touch pressed
	PointerUp                       // button or touch released
	PointerMove                     // pointer moved without a state change
	PointerTap                      // press and release over the same node
)

// pointerState tracks the single primary pointer (mouse or first touch).
type pointerState struct {
	down     bool
	x, y     float64
	pressed  *Node
	hasMoved bool
	touch    ebiten.TouchID
	touching bool
}

// nodeContainsLocal reports whether the local point hits the node: its
// HitShape if set, otherwise its drawn bounds.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	switch n.Type {
	case NodeTypeRect:
		return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
	case NodeTypeCircle:
		return lx*lx+ly*ly <= n.Radius*n.Radius
	case NodeTypeImage:
		if n.customImage == nil {
			return false
		}
		b := n.customImage.Bounds()
		return lx >= 0 && lx <= float64(b.Dx()) && ly >= 0 && ly <= float64(b.Dy())
	}
	return false
}

// hitTest returns the top-most visible interactable node under the world
// point. Later siblings are drawn on top and therefore win.
func hitTest(n *Node, wx, wy float64) *Node {
	if !n.Visible {
		return nil
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		if hit := hitTest(n.children[i], wx, wy); hit != nil {
			return hit
		}
	}
	if n.Interactable {
		lx, ly := n.WorldToLocal(wx, wy)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

func firePointer(kind PointerEvent, n *Node, wx, wy float64) {
	var fn func(PointerContext)
	switch kind {
	case PointerDown:
		fn = n.OnPointerDown
	case PointerUp:
		fn = n.OnPointerUp
	case PointerMove:
		fn = n.OnPointerMove
	case PointerTap:
		fn = n.OnPointerTap
	}
	if fn == nil {
		return
	}
	lx, ly := n.WorldToLocal(wx, wy)
	fn(PointerContext{Node: n, GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly})
}

// DispatchPointer delivers a pointer state change at world (x, y). Down, up
// and move go to the node under the pointer; a tap fires on release when the
// release lands on the node that received the press.
func (s *Scene) DispatchPointer(kind PointerEvent, x, y float64) {
	updateWorldTransform(s.root, identityTransform, 1, false)
	hit := hitTest(s.root, x, y)
	s.pointer.x, s.pointer.y = x, y

	switch kind {
	case PointerDown:
		s.pointer.down = true
		s.pointer.pressed = hit
	case PointerUp:
		pressed := s.pointer.pressed
		s.pointer.down = false
		s.pointer.pressed = nil
		if hit != nil {
			firePointer(PointerUp, hit, x, y)
		}
		if hit != nil && hit == pressed {
			firePointer(PointerTap, hit, x, y)
		}
		return
	}
	if hit != nil {
		firePointer(kind, hit, x, y)
	}
}

// processInput polls the mouse and the first touch and dispatches changes.
func (s *Scene) processInput() {
	if s.pointer.touching {
		if inpututil.IsTouchJustReleased(s.pointer.touch) {
			s.pointer.touching = false
			s.DispatchPointer(PointerUp, s.pointer.x, s.pointer.y)
			return
		}
		tx, ty := ebiten.TouchPosition(s.pointer.touch)
		s.movePointer(float64(tx), float64(ty))
		return
	}
	s.touchBuf = inpututil.AppendJustPressedTouchIDs(s.touchBuf[:0])
	if len(s.touchBuf) > 0 {
		id := s.touchBuf[0]
		tx, ty := ebiten.TouchPosition(id)
		s.pointer.touch = id
		s.pointer.touching = true
		s.DispatchPointer(PointerDown, float64(tx), float64(ty))
		return
	}

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		s.DispatchPointer(PointerDown, x, y)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		s.DispatchPointer(PointerUp, x, y)
	default:
		s.movePointer(x, y)
	}
}

func (s *Scene) movePointer(x, y float64) {
	if x == s.pointer.x && y == s.pointer.y && s.pointer.hasMoved {
		return
	}
	s.pointer.hasMoved = true
	s.DispatchPointer(PointerMove, x, y)
}
