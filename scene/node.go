package scene

import "github.com/hajimehoshi/ebiten/v2"

// PointerContext carries pointer event data.
type PointerContext struct {
	Node    *Node
	GlobalX float64
	GlobalY float64
	LocalX  float64
	LocalY  float64
}

// nodeIDCounter is a plain counter (no atomic; the scene is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the scene graph element. One flat struct serves every node type.
type Node struct {
	ID   uint32
	Name string
	Type NodeType

	Parent   *Node
	children []*Node

	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	Alpha        float64
	Visible      bool
	Interactable bool

	// Shape fields. Width/Height for rects, Radius for circles.
	Width, Height float64
	Radius        float64
	Color         Color

	// Text fields (NodeTypeText).
	Text string

	customImage *ebiten.Image

	HitShape HitShape

	OnPointerDown func(PointerContext)
	OnPointerUp   func(PointerContext)
	OnPointerMove func(PointerContext)
	OnPointerTap  func(PointerContext)

	disposed bool
}

func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.transformDirty = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewRect creates a solid rectangle anchored at its top-left corner.
func NewRect(name string, w, h float64, c Color) *Node {
	n := &Node{Name: name, Type: NodeTypeRect, Width: w, Height: h}
	nodeDefaults(n)
	n.Color = c
	return n
}

// NewCircle creates a solid circle centered on the node origin.
func NewCircle(name string, radius float64, c Color) *Node {
	n := &Node{Name: name, Type: NodeTypeCircle, Radius: radius}
	nodeDefaults(n)
	n.Color = c
	return n
}

// NewImage creates a node that draws img with its top-left at the origin.
func NewImage(name string, img *ebiten.Image) *Node {
	n := &Node{Name: name, Type: NodeTypeImage, customImage: img}
	nodeDefaults(n)
	return n
}

// NewText creates a text label.
func NewText(name, text string, c Color) *Node {
	n := &Node{Name: name, Type: NodeTypeText, Text: text}
	nodeDefaults(n)
	n.Color = c
	return n
}

// SetImage replaces the image drawn by an image node.
func (n *Node) SetImage(img *ebiten.Image) {
	n.customImage = img
}

// Image returns the image drawn by an image node, or nil.
func (n *Node) Image() *ebiten.Image {
	return n.customImage
}

// AddChild appends child to this node's children, detaching it from any
// previous parent. Panics if child is nil or an ancestor of n.
func (n *Node) AddChild(children ...*Node) {
	for _, child := range children {
		n.AddChildAt(child, len(n.children))
	}
}

// AddChildAt inserts child at index. Same reparenting rules as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("scene: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("scene: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
		if child.Parent == n && index > len(n.children) {
			index = len(n.children)
		}
	}
	if index < 0 || index > len(n.children) {
		panic("scene: child index out of range")
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node. Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("scene: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent. No-op without a parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children. Children are not disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	clear(n.children)
	n.children = n.children[:0]
}

// Children returns the child list. The returned slice must not be mutated.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ClearListeners drops every pointer callback on the node.
func (n *Node) ClearListeners() {
	n.OnPointerDown = nil
	n.OnPointerUp = nil
	n.OnPointerMove = nil
	n.OnPointerTap = nil
}

// Dispose removes the node from its parent and disposes its subtree.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.HitShape = nil
	n.customImage = nil
	n.ClearListeners()
}

// IsDisposed reports whether the node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
