package object

import (
	"image/color"

	"github.com/tomz197/ballrush/internal/draw"
)

// Ball is a collectible worth one point.
type Ball struct {
	X, Y   float64 // Centre
	Radius float64
	Color  color.RGBA
}

// Draw renders the ball as a filled circle.
func (b *Ball) Draw(s draw.Surface) {
	s.FillCircle(b.X, b.Y, b.Radius, b.Color)
}
