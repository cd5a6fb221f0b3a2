package game

import (
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/bubbo/scene"
	"github.com/phanxgames/bubbo/timing"
)

const (
	cannonBubbleScale = 2.5
	cannonLoadTime    = 0.4
)

// Cannon is the launcher at the bottom of the board. It shows the loaded
// bubble and rotates its barrel toward the aim direction.
type Cannon struct {
	View *scene.Node

	barrel     *scene.Node
	main       *scene.Node
	arrow      *scene.Node
	top        *scene.Node
	bubbleView *BubbleView
	typ        BubbleType
	rotation   float64
	load       scene.Animation
}

// NewCannon builds an empty cannon.
func NewCannon() *Cannon {
	c := &Cannon{
		View:   scene.NewContainer("cannon"),
		barrel: scene.NewRect("cannon-barrel", 34, 90, scene.Hex(0x9aa4c7)),
		main:   scene.NewCircle("cannon-main", 48, scene.ColorWhite),
		arrow:  scene.NewRect("cannon-arrow", 10, 70, scene.ColorWhite),
		top:    scene.NewCircle("cannon-top", 30, scene.Hex(0x2a2f52)),
		typ:    TypeEmpty,
	}
	c.barrel.SetPivot(17, 90)
	c.arrow.SetPivot(5, 110)
	c.View.AddChild(c.barrel, c.main, c.arrow, c.top)

	c.bubbleView = NewBubbleView(TypeEmpty)
	c.bubbleView.View.SetScale(0, 0)
	c.View.AddChild(c.bubbleView.View)
	return c
}

// Type returns the loaded bubble type, or TypeEmpty.
func (c *Cannon) Type() BubbleType { return c.typ }

// Rotation returns the aim angle in radians.
func (c *Cannon) Rotation() float64 { return c.rotation }

// SetRotation aims the barrel and arrow.
func (c *Cannon) SetRotation(r float64) {
	c.rotation = r
	c.barrel.SetRotation(r)
	c.arrow.SetRotation(r)
}

// SetType loads t, tinting the cannon and growing the bubble into place.
// TypeEmpty unloads it.
func (c *Cannon) SetType(t BubbleType) {
	c.bubbleView.View.SetScale(0, 0)
	c.typ = t
	c.load = nil
	if t == TypeEmpty {
		c.arrow.Color = scene.ColorWhite
		c.main.Color = scene.ColorWhite
		return
	}
	color := TypeColor(t)
	c.arrow.Color = color
	c.main.Color = color
	c.bubbleView.SetType(t)
	c.load = scene.TweenScale(c.bubbleView.View, cannonBubbleScale, cannonBubbleScale, cannonLoadTime, ease.OutBack)
}

// Loading reports whether the load animation is still running.
func (c *Cannon) Loading() bool { return c.load != nil && !c.load.Done() }

// Update advances the load animation by delta frames.
func (c *Cannon) Update(delta float64) {
	if c.load == nil {
		return
	}
	c.load.Update(float32(timing.DeltaToSeconds(delta)))
	if c.load.Done() {
		c.load = nil
	}
}
