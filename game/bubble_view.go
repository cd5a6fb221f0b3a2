package game

import (
	"math"

	"github.com/tanema/gween/ease"

	"github.com/phanxgames/bubbo/scene"
)

// BubbleViewTag is the pool tag for bubble views.
const BubbleViewTag = "bubbleView"

const shimmerDuration = 0.1

// BubbleView draws a bubble: a tinted shadow, the body and a shine that
// flashes on shimmer. The view is centered on its origin.
type BubbleView struct {
	View *scene.Node

	shadow *scene.Node
	sprite *scene.Node
	shine  *scene.Node
	typ    BubbleType
}

// NewBubbleView builds a view showing t. TypeEmpty builds a hidden view.
func NewBubbleView(t BubbleType) *BubbleView {
	r := BubbleSize / 2
	v := &BubbleView{
		View:   scene.NewContainer("bubble-view"),
		shadow: scene.NewCircle("bubble-shadow", r*1.1, scene.ColorWhite),
		sprite: scene.NewCircle("bubble-sprite", r, scene.ColorWhite),
		shine:  scene.NewRect("bubble-shine", r*0.5, r*0.2, scene.ColorWhite),
	}
	v.shadow.Y = r * 0.1 * 1.5
	v.shine.CenterPivot()
	v.shine.X, v.shine.Y = -r*0.35, -r*0.45
	v.shine.Alpha = 0
	v.shine.Visible = false
	v.sprite.AddChild(v.shine)
	v.View.AddChild(v.shadow, v.sprite)

	if t == TypeEmpty {
		v.typ = t
		v.sprite.Visible = false
		v.shadow.Visible = false
		return v
	}
	v.SetType(t)
	return v
}

// PoolTag implements pool.Tagged.
func (v *BubbleView) PoolTag() string { return BubbleViewTag }

// Type returns the displayed type.
func (v *BubbleView) Type() BubbleType { return v.typ }

// SetType changes the displayed type. TypeGlow keeps the body lit but hides
// the shadow.
func (v *BubbleView) SetType(t BubbleType) {
	v.typ = t
	c := TypeColor(t)
	switch t {
	case TypeGlow:
		v.sprite.Color = scene.ColorWhite
	case TypeBomb, TypeSuper, TypeTimer:
		v.sprite.Color = scene.Hex(0x2b2b4a)
	default:
		v.sprite.Color = c
	}
	v.shadow.Color = c.WithAlpha(0.6)
	v.sprite.Visible = true
	v.shadow.Visible = t != TypeGlow
}

// Width returns the drawn diameter including the view's scale.
func (v *BubbleView) Width() float64 {
	return BubbleSize * v.View.ScaleX
}

// Shimmer flashes the shine once. The caller advances the returned
// animation.
func (v *BubbleView) Shimmer() scene.Animation {
	v.shine.Rotation = 0
	v.shine.Alpha = 0
	v.shine.Visible = true
	return scene.NewParallel(
		scene.TweenRotation(v.shine, math.Pi, shimmerDuration, ease.OutCubic),
		scene.NewSequence(
			scene.TweenAlpha(v.shine, 1, shimmerDuration*0.6, ease.Linear),
			scene.NewDeferred(func() scene.Animation {
				return scene.TweenAlpha(v.shine, 0, shimmerDuration*0.6, ease.Linear)
			}),
			scene.NewCall(func() { v.shine.Visible = false }),
		),
	)
}
