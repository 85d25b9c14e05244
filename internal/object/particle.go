package object

import (
	"image/color"
	"math"
	"math/rand"
	"sync"

	"github.com/tomz197/ballrush/internal/draw"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual effect. It never takes part in collisions.
type Particle struct {
	X, Y        float64 // Position
	VX, VY      float64 // Velocity per tick
	Lifetime    int     // Ticks remaining
	MaxLifetime int     // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity factor applied each tick (1.0 = no drag)
	Color       color.RGBA
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy float64, lifetime int, c color.RGBA) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.9
	p.Color = c
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnBurst creates particles in a circular burst pattern around (x, y).
func SpawnBurst(rng *rand.Rand, x, y float64, count int, speed float64, lifetime int, c color.RGBA) []*Particle {
	particles := make([]*Particle, 0, count)
	for i := 0; i < count; i++ {
		// Random direction, 50% to 150% speed, 50% to 100% lifetime
		angle := rng.Float64() * 2 * math.Pi
		spd := speed * (0.5 + rng.Float64())
		life := max(int(float64(lifetime)*(0.5+rng.Float64()*0.5)), 1)

		particles = append(particles, NewParticle(x, y, math.Cos(angle)*spd, math.Sin(angle)*spd, life, c))
	}
	return particles
}

// Update moves the particle one tick. Returns true once it has expired.
func (p *Particle) Update() bool {
	p.Lifetime--
	if p.Lifetime <= 0 {
		return true
	}

	p.VX *= p.Drag
	p.VY *= p.Drag
	p.X += p.VX
	p.Y += p.VY
	return false
}

// Draw renders the particle as a single point.
func (p *Particle) Draw(s draw.Surface) {
	// Skip faded particles (< 25% lifetime)
	if p.MaxLifetime > 0 && float64(p.Lifetime)/float64(p.MaxLifetime) < 0.25 {
		return
	}
	s.Plot(p.X, p.Y, p.Color)
}

// UpdateParticles advances every particle, releasing expired ones to the pool.
// The returned slice reuses the input's backing array.
func UpdateParticles(particles []*Particle) []*Particle {
	kept := particles[:0]
	for _, p := range particles {
		if p.Update() {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	clear(particles[len(kept):])
	return kept
}
