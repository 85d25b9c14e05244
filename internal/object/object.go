// Package object defines the game entities: the player, balls, enemies and particles.
package object

import "github.com/tomz197/ballrush/internal/draw"

// Bounds is the logical canvas every entity lives on. The origin is the top-left corner.
type Bounds struct {
	Width  float64
	Height float64
}

// Drawable is implemented by every entity that renders onto a surface.
type Drawable interface {
	Draw(s draw.Surface)
}
