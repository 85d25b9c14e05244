package object

import (
	"image/color"
	"math/rand"
)

// SpawnBalls places n balls uniformly at random, each fully inside the bounds.
func SpawnBalls(rng *rand.Rand, b Bounds, n int, radius float64, c color.RGBA) []*Ball {
	balls := make([]*Ball, 0, n)
	for i := 0; i < n; i++ {
		balls = append(balls, &Ball{
			X:      rng.Float64()*(b.Width-radius*2) + radius,
			Y:      rng.Float64()*(b.Height-radius*2) + radius,
			Radius: radius,
			Color:  c,
		})
	}
	return balls
}

// SpawnEnemies places n enemies so their whole sprite box is on the canvas.
// The top-left corner is drawn uniformly from [0, W-size] x [0, H-size];
// each velocity component is +speed or -speed with equal probability.
func SpawnEnemies(rng *rand.Rand, b Bounds, n int, size, speed float64) []*Enemy {
	enemies := make([]*Enemy, 0, n)
	for i := 0; i < n; i++ {
		left := rng.Float64() * (b.Width - size)
		top := rng.Float64() * (b.Height - size)
		enemies = append(enemies, &Enemy{
			X:    left + size/2,
			Y:    top + size/2,
			DX:   randomSign(rng) * speed,
			DY:   randomSign(rng) * speed,
			Size: size,
		})
	}
	return enemies
}

func randomSign(rng *rand.Rand) float64 {
	if rng.Float64() > 0.5 {
		return 1
	}
	return -1
}
