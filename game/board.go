package game

import (
	"math/rand/v2"
	"slices"

	"github.com/phanxgames/bubbo/mathx"
	"github.com/phanxgames/bubbo/scene"
)

// BubbleType is a bubble color or power-up.
type BubbleType string

const (
	TypeYellow BubbleType = "yellow"
	TypeGreen  BubbleType = "green"
	TypeRed    BubbleType = "red"
	TypeBlue   BubbleType = "blue"

	TypeBomb  BubbleType = "bomb"
	TypeSuper BubbleType = "super"
	TypeTimer BubbleType = "timer"

	// TypeGlow is a view-only state shown after a bubble lands.
	TypeGlow BubbleType = "glow"
	// TypeEmpty marks a cannon with nothing loaded.
	TypeEmpty BubbleType = "empty"
)

// TypeGroup selects which types RandomType draws from.
type TypeGroup uint8

const (
	GroupRegular TypeGroup = iota
	GroupSpecial
	GroupAll
)

var (
	RegularTypes  = []BubbleType{TypeYellow, TypeGreen, TypeRed, TypeBlue}
	SpecialTypes  = []BubbleType{TypeBomb, TypeSuper, TypeTimer}
	StartingTypes = []BubbleType{TypeRed, TypeGreen, TypeBlue}
	allTypes      = slices.Concat(SpecialTypes, RegularTypes)
)

var typeColors = map[BubbleType]uint32{
	TypeYellow: 0xffca42,
	TypeGreen:  0x58ff2e,
	TypeRed:    0xff5f5f,
	TypeBlue:   0x6473ff,
}

// Board tuning.
const (
	BubblesPerLine = 13
	BubbleSize     = float64(ContentWidth) / BubblesPerLine
	BubbleOverflow = 0.5
	BounceLine     = 145
	ScreenTop      = -ContentHeight

	MinHeterogeneity       = 0.5
	HeterogeneityIncrement = 0.01
	StartingLine           = 10
	SpecialBubbleEvery     = 3
	SpecialBubbleChance    = 0.01

	MaxAimLinesLength = 600
	MaxAimLines       = 2
	ScoreIncrement    = 10

	BlastRadius     = 2
	TimerFreezeTime = 5
)

// NewLine controls how quickly new bubble rows slide in.
var NewLine = struct {
	AnimInTime       float64
	UrgentAnimInTime float64
	UrgentMinLines   int
	AnimInDecrement  float64
	MaxDecrement     float64
	DecrementIn      int
}{
	AnimInTime:       3,
	UrgentAnimInTime: 0.15,
	UrgentMinLines:   8,
	AnimInDecrement:  0.05,
	MaxDecrement:     1.5,
	DecrementIn:      5,
}

// RandomType draws a type from group using r. A nil r uses the global source.
func RandomType(r *rand.Rand, group TypeGroup) BubbleType {
	switch group {
	case GroupAll:
		return mathx.RandomItem(r, allTypes)
	case GroupSpecial:
		return mathx.RandomItem(r, SpecialTypes)
	default:
		return mathx.RandomItem(r, RegularTypes)
	}
}

// IsSpecialType reports whether t is a power-up.
func IsSpecialType(t BubbleType) bool {
	return slices.Contains(SpecialTypes, t)
}

// TypeColor returns the tint for t. Types without a color are grey.
func TypeColor(t BubbleType) scene.Color {
	if c, ok := typeColors[t]; ok {
		return scene.Hex(c)
	}
	return scene.Hex(0x606060)
}
