package object

import (
	"github.com/tomz197/ballrush/internal/draw"
	"github.com/tomz197/ballrush/internal/physics"
)

// Enemy is a square sprite bouncing around the canvas. X, Y is the sprite centre.
type Enemy struct {
	X, Y   float64 // Position (centre of sprite)
	DX, DY float64 // Velocity per tick
	Size   float64 // Sprite edge length
}

// HalfSize is the enemy's collision radius.
func (e *Enemy) HalfSize() float64 {
	return e.Size / 2
}

// Move integrates velocity, then negates each velocity component whose
// leading edge has left the canvas. Both axes can flip in the same tick.
func (e *Enemy) Move(b Bounds) {
	e.X += e.DX
	e.Y += e.DY

	half := e.Size / 2
	e.DX = physics.Reflect(e.X, e.DX, half, b.Width)
	e.DY = physics.Reflect(e.Y, e.DY, half, b.Height)
}

// Draw renders the enemy sprite centred on its position.
func (e *Enemy) Draw(s draw.Surface) {
	s.DrawSprite(draw.SpriteEnemy, e.X, e.Y, e.Size, e.Size)
}
