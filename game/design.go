package game

// Layout constants in design pixels. The board is always ContentWidth wide
// and anchored to the bottom center of the viewport.
const (
	ContentWidth  = 428
	ContentHeight = 925

	BackgroundTileScale = 2

	// Background decor keeps this far from the viewport edges.
	DecorEdgePadding = 100
	// Background decor keeps this far from other decor.
	DecorMinDistance  = 150
	DecorCountDesktop = 6
	DecorCountMobile  = 3
)
