// Package draw renders the game onto terminals and defines the Surface
// abstraction shared by every front-end.
package draw

import "image/color"

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// SpriteKind identifies one of the externally supplied sprite images.
type SpriteKind int

const (
	SpritePlayer SpriteKind = iota
	SpriteEnemy
)

// String returns the sprite name used in logs.
func (k SpriteKind) String() string {
	switch k {
	case SpritePlayer:
		return "player"
	case SpriteEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Surface is a render target in logical canvas coordinates.
// The terminal Canvas and the desktop window both implement it.
type Surface interface {
	// Clear wipes everything drawn during the previous frame.
	Clear()
	// DrawSprite draws the sprite of the given kind in a w*h box centred on (cx, cy).
	// Surfaces without a loaded image for kind draw a placeholder shape instead.
	DrawSprite(kind SpriteKind, cx, cy, w, h float64)
	// FillCircle draws a filled circle.
	FillCircle(cx, cy, r float64, c color.RGBA)
	// Plot sets a single point.
	Plot(x, y float64, c color.RGBA)
	// DrawText draws an overlay string with its baseline at (x, y).
	DrawText(x, y float64, s string)
	// DrawNotice draws a centred message box above everything else.
	DrawNotice(lines []string)
}
