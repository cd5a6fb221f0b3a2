package scene

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// whitePixel is a 1x1 white image scaled up to draw solid rectangles. It is
// created on first draw so importing the package needs no graphics context.
var whitePixel *ebiten.Image

var labelFace = text.NewGoXFace(basicfont.Face7x13)

func solidImage() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

func colorScale(c Color, alpha float64) ebiten.ColorScale {
	var cs ebiten.ColorScale
	a := c.A * alpha
	cs.Scale(float32(c.R*a), float32(c.G*a), float32(c.B*a), float32(a))
	return cs
}

// drawNode draws n and its subtree. World transforms must be current.
func drawNode(dst *ebiten.Image, n *Node) {
	if !n.Visible || n.worldAlpha <= 0 {
		return
	}
	switch n.Type {
	case NodeTypeRect:
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(n.Width, n.Height)
		op.GeoM.Concat(geoM(n.worldTransform))
		op.ColorScale = colorScale(n.Color, n.worldAlpha)
		dst.DrawImage(solidImage(), op)
	case NodeTypeCircle:
		m := n.worldTransform
		cx, cy := transformPoint(m, 0, 0)
		scale := math.Hypot(m[0], m[1])
		c := n.Color.WithAlpha(n.Color.A * n.worldAlpha)
		vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(n.Radius*scale), c.toRGBA(), true)
	case NodeTypeImage:
		if n.customImage != nil {
			op := &ebiten.DrawImageOptions{}
			op.GeoM = geoM(n.worldTransform)
			op.ColorScale = colorScale(n.Color, n.worldAlpha)
			dst.DrawImage(n.customImage, op)
		}
	case NodeTypeText:
		if n.Text != "" {
			op := &text.DrawOptions{}
			op.GeoM = geoM(n.worldTransform)
			op.ColorScale = colorScale(n.Color, n.worldAlpha)
			text.Draw(dst, n.Text, labelFace, op)
		}
	}
	for _, child := range n.children {
		drawNode(dst, child)
	}
}

// TextWidth returns the unscaled advance of s in the label face.
func TextWidth(s string) float64 {
	w, _ := text.Measure(s, labelFace, 0)
	return w
}

// LineHeight is the height of one line in the label face.
const LineHeight = 13

// CenterPivot moves the pivot of a rect, image or text node to its center so
// position and scale act around the middle.
func (n *Node) CenterPivot() {
	switch n.Type {
	case NodeTypeRect:
		n.SetPivot(n.Width/2, n.Height/2)
	case NodeTypeImage:
		if n.customImage != nil {
			b := n.customImage.Bounds()
			n.SetPivot(float64(b.Dx())/2, float64(b.Dy())/2)
		}
	case NodeTypeText:
		n.SetPivot(TextWidth(n.Text)/2, LineHeight/2)
	}
}
