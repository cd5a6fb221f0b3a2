package game

import (
	"math"
	"math/rand/v2"

	"github.com/phanxgames/bubbo/mathx"
	"github.com/phanxgames/bubbo/pool"
	"github.com/phanxgames/bubbo/scene"
	"github.com/phanxgames/bubbo/timing"
)

// Pool tags for background decor.
const (
	SatelliteTag   = "satellite"
	BubbleOrbitTag = "bubbleOrbit"
)

// maxDecorTries caps the attempts GenerateRandomPoints makes.
const maxDecorTries = 1000

// Satellite is a slowly rocking background sprite.
type Satellite struct {
	View *scene.Node

	rnd       *rand.Rand
	tick      float64
	frequency float64
	swing     float64
}

// NewSatellite builds a satellite.
func NewSatellite(rnd *rand.Rand) *Satellite {
	s := &Satellite{View: scene.NewContainer("satellite"), rnd: rnd, frequency: 1, swing: 0.5}
	body := scene.NewRect("satellite-body", 28, 18, scene.Hex(0xb8c0e0))
	body.CenterPivot()
	panel := scene.NewRect("satellite-panels", 70, 8, scene.Hex(0x4a6cff))
	panel.CenterPivot()
	s.View.AddChild(panel, body)
	return s
}

// PoolTag implements pool.Tagged.
func (s *Satellite) PoolTag() string { return SatelliteTag }

// ChangeView randomizes scale and rocking motion.
func (s *Satellite) ChangeView() {
	sc := mathx.RandomRange(s.rnd, 0.3, 0.9)
	s.View.SetScale(sc, sc)
	s.tick = mathx.RandomRange(s.rnd, -math.Pi*0.01, math.Pi*0.01)
	s.frequency = mathx.RandomRange(s.rnd, 1, 2)
	s.swing = mathx.RandomRange(s.rnd, -math.Pi*0.05, math.Pi*0.05)
}

// Update rocks the satellite.
func (s *Satellite) Update(delta float64) {
	s.tick += timing.DeltaToSeconds(delta)
	s.View.SetRotation(s.swing * math.Sin(s.tick/s.frequency))
}

// Release detaches the satellite.
func (s *Satellite) Release() {
	s.View.RemoveFromParent()
}

type orbiter struct {
	view      *BubbleView
	angle     float64
	direction float64
	radius    float64
	speed     float64
}

// BubbleOrbit is a large background bubble circled by smaller ones. Its
// bubble views come from the shared pool.
type BubbleOrbit struct {
	View *scene.Node

	pools *pool.Manager
	rnd   *rand.Rand
	main  *BubbleView
	subs  []orbiter
}

// NewBubbleOrbit builds an empty orbit drawing views from pools.
func NewBubbleOrbit(pools *pool.Manager, rnd *rand.Rand) *BubbleOrbit {
	return &BubbleOrbit{View: scene.NewContainer("bubble-orbit"), pools: pools, rnd: rnd}
}

// PoolTag implements pool.Tagged.
func (o *BubbleOrbit) PoolTag() string { return BubbleOrbitTag }

// ChangeView rebuilds the orbit with a random main bubble and one to four
// orbiting bubbles.
func (o *BubbleOrbit) ChangeView() {
	if o.main != nil {
		o.Reset()
	}

	o.main = pool.Get[*BubbleView](o.pools, BubbleViewTag)
	o.main.SetType(RandomType(o.rnd, GroupRegular))
	o.main.View.SetPosition(0, 0)
	sc := mathx.RandomRange(o.rnd, 0.7, 2.5)
	o.main.View.SetScale(sc, sc)
	o.View.AddChild(o.main.View)

	n := mathx.RandomInt(o.rnd, 1, 5)
	for range n {
		v := pool.Get[*BubbleView](o.pools, BubbleViewTag)
		v.SetType(RandomType(o.rnd, GroupRegular))
		ss := sc * mathx.RandomRange(o.rnd, 0.3, 0.7)
		v.View.SetScale(ss, ss)
		dir := 1.0
		if mathx.RandomRange(o.rnd, -1, 1) < 0 {
			dir = -1
		}
		o.subs = append(o.subs, orbiter{
			view:      v,
			angle:     mathx.RandomRange(o.rnd, 0, math.Pi),
			direction: dir,
			radius:    o.main.Width()*0.5 + v.Width()*0.5 + 10,
			speed:     ss / sc * 0.5,
		})
		o.View.AddChild(v.View)
	}
}

// Orbiters returns the number of orbiting bubbles.
func (o *BubbleOrbit) Orbiters() int { return len(o.subs) }

// Reset returns every bubble view to the pool.
func (o *BubbleOrbit) Reset() {
	if o.main != nil {
		o.main.View.RemoveFromParent()
		pool.Return(o.pools, o.main)
		o.main = nil
	}
	for i := range o.subs {
		o.subs[i].view.View.RemoveFromParent()
		pool.Return(o.pools, o.subs[i].view)
	}
	clear(o.subs)
	o.subs = o.subs[:0]
}

// Update moves the orbiting bubbles.
func (o *BubbleOrbit) Update(delta float64) {
	dt := timing.DeltaToSeconds(delta)
	for i := range o.subs {
		s := &o.subs[i]
		s.view.View.SetPosition(math.Cos(s.angle)*s.radius, math.Sin(s.angle)*s.radius)
		s.angle += dt * s.speed * s.direction
	}
}

// Release detaches the orbit and returns its bubble views.
func (o *BubbleOrbit) Release() {
	o.View.RemoveFromParent()
	o.Reset()
}

type decor interface {
	root() *scene.Node
	ChangeView()
	Update(delta float64)
	Release()
}

func (s *Satellite) root() *scene.Node   { return s.View }
func (o *BubbleOrbit) root() *scene.Node { return o.View }

// SpaceDecorSystemDesc registers the SpaceDecorSystem.
var SpaceDecorSystemDesc = Descriptor[*SpaceDecorSystem]{
	ID:  "spaceDecor",
	New: func() *SpaceDecorSystem { return &SpaceDecorSystem{View: scene.NewContainer("space-decor")} },
}

// SpaceDecorSystem scatters satellites and bubble orbits in the space left
// and right of the board on wide viewports.
type SpaceDecorSystem struct {
	SystemBase

	View   *scene.Node
	decor  []decor
	width  float64
	height float64
}

// Init puts the decor layer behind everything else on the stage.
func (s *SpaceDecorSystem) Init() {
	s.Game().Stage.AddChildAt(s.View, 0)
}

// Update animates the decor.
func (s *SpaceDecorSystem) Update(delta float64) {
	for _, d := range s.decor {
		d.Update(delta)
	}
}

// Resize rebuilds the decor for the new viewport. Nothing is placed unless
// the viewport is at least twice the board width.
func (s *SpaceDecorSystem) Resize(w, h float64) {
	s.width, s.height = w, h
	s.clear()
	if w <= ContentWidth*2 {
		return
	}
	count := DecorCountDesktop
	if s.Game().Mobile() {
		count = DecorCountMobile
	}
	s.create(s.GenerateRandomPoints(count))
}

// Len returns the number of decor items on screen.
func (s *SpaceDecorSystem) Len() int { return len(s.decor) }

// GenerateRandomPoints returns up to n points inside the viewport, away from
// its edges, outside the board column and apart from each other. It gives
// up after a fixed number of attempts, so fewer points may be returned.
func (s *SpaceDecorSystem) GenerateRandomPoints(n int) []mathx.Vec2 {
	rnd := s.Game().Rand()
	points := make([]mathx.Vec2, 0, n)
	boardHalf := ContentWidth * 0.8

	for tries := 0; len(points) < n && tries < maxDecorTries; tries++ {
		p := mathx.V(
			mathx.RandomRange(rnd, DecorEdgePadding, s.width-DecorEdgePadding),
			mathx.RandomRange(rnd, DecorEdgePadding, s.height-DecorEdgePadding),
		)
		if math.Abs(p.X-s.width/2) < boardHalf {
			continue
		}
		tooClose := false
		for _, q := range points {
			if mathx.Distance(p, q) < DecorMinDistance {
				tooClose = true
				break
			}
		}
		if !tooClose {
			points = append(points, p)
		}
	}
	return points
}

func (s *SpaceDecorSystem) create(points []mathx.Vec2) {
	g := s.Game()
	for _, p := range points {
		var d decor
		if mathx.RandomRange(g.Rand(), 0, 1) < 0.4 {
			d = pool.Get[*Satellite](g.Pools(), SatelliteTag)
		} else {
			d = pool.Get[*BubbleOrbit](g.Pools(), BubbleOrbitTag)
		}
		d.root().SetPosition(p.X, p.Y)
		s.decor = append(s.decor, d)
		s.View.AddChild(d.root())
		d.ChangeView()
	}
}

func (s *SpaceDecorSystem) clear() {
	m := s.Game().Pools()
	for _, d := range s.decor {
		d.Release()
		switch v := d.(type) {
		case *Satellite:
			pool.Return(m, v)
		case *BubbleOrbit:
			pool.Return(m, v)
		}
	}
	clear(s.decor)
	s.decor = s.decor[:0]
}
