package object

import (
	"github.com/tomz197/ballrush/internal/draw"
	"github.com/tomz197/ballrush/internal/input"
	"github.com/tomz197/ballrush/internal/physics"
)

// Player is the keyboard-controlled sprite. X, Y is the sprite centre.
type Player struct {
	X, Y          float64 // Position (centre of sprite)
	Width, Height float64 // Sprite box
	DX, DY        float64 // Velocity per tick
	Speed         float64 // Velocity magnitude set by a key press
}

// NewPlayer creates a stationary player centred at (x, y).
func NewPlayer(x, y, width, height, speed float64) *Player {
	return &Player{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		Speed:  speed,
	}
}

// HalfWidth is the player's collision radius.
func (p *Player) HalfWidth() float64 {
	return p.Width / 2
}

// HandleKey applies a direction key event to the velocity.
// A press sets the matching axis to ±Speed, so the last key pressed wins.
// Releasing either key of an axis stops that axis, even if the opposite key
// is still held.
func (p *Player) HandleKey(ev input.Event) {
	if !ev.Pressed {
		if ev.Dir.Horizontal() {
			p.DX = 0
		} else if ev.Dir != input.DirNone {
			p.DY = 0
		}
		return
	}

	switch ev.Dir {
	case input.DirUp:
		p.DY = -p.Speed
	case input.DirDown:
		p.DY = p.Speed
	case input.DirLeft:
		p.DX = -p.Speed
	case input.DirRight:
		p.DX = p.Speed
	}
}

// Move integrates velocity and clamps the sprite inside the bounds.
func (p *Player) Move(b Bounds) {
	p.X += p.DX
	p.Y += p.DY

	halfW := p.Width / 2
	halfH := p.Height / 2
	p.X = physics.Clamp(p.X, halfW, b.Width-halfW)
	p.Y = physics.Clamp(p.Y, halfH, b.Height-halfH)
}

// Draw renders the player sprite centred on its position.
func (p *Player) Draw(s draw.Surface) {
	s.DrawSprite(draw.SpritePlayer, p.X, p.Y, p.Width, p.Height)
}
