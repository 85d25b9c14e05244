package object

import (
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/tomz197/ballrush/internal/draw"
	"github.com/tomz197/ballrush/internal/input"
)

var canvas = Bounds{Width: 800, Height: 600}

// recordingSurface captures draw calls.
type recordingSurface struct {
	sprites []spriteCall
	circles int
	plots   int
}

type spriteCall struct {
	kind   draw.SpriteKind
	cx, cy float64
	w, h   float64
}

func (r *recordingSurface) Clear() {}
func (r *recordingSurface) DrawSprite(kind draw.SpriteKind, cx, cy, w, h float64) {
	r.sprites = append(r.sprites, spriteCall{kind, cx, cy, w, h})
}
func (r *recordingSurface) FillCircle(float64, float64, float64, color.RGBA) { r.circles++ }
func (r *recordingSurface) Plot(float64, float64, color.RGBA)                { r.plots++ }
func (r *recordingSurface) DrawText(float64, float64, string)                {}
func (r *recordingSurface) DrawNotice([]string)                              {}

func TestPlayerHandleKey(t *testing.T) {
	p := NewPlayer(400, 300, 100, 120, 4)

	p.HandleKey(input.Event{Dir: input.DirRight, Pressed: true})
	if p.DX != 4 {
		t.Fatalf("DX after right = %g, want 4", p.DX)
	}

	// Last key held wins.
	p.HandleKey(input.Event{Dir: input.DirLeft, Pressed: true})
	if p.DX != -4 {
		t.Fatalf("DX after left = %g, want -4", p.DX)
	}

	// Releasing the other key of the axis still stops it.
	p.HandleKey(input.Event{Dir: input.DirRight, Pressed: false})
	if p.DX != 0 {
		t.Fatalf("DX after releasing right while left held = %g, want 0", p.DX)
	}

	p.HandleKey(input.Event{Dir: input.DirUp, Pressed: true})
	if p.DY != -4 {
		t.Fatalf("DY after up = %g, want -4", p.DY)
	}
	p.HandleKey(input.Event{Dir: input.DirDown, Pressed: true})
	if p.DY != 4 {
		t.Fatalf("DY after down = %g, want 4", p.DY)
	}
	p.HandleKey(input.Event{Dir: input.DirUp, Pressed: false})
	if p.DY != 0 {
		t.Fatalf("DY after releasing up = %g, want 0", p.DY)
	}
}

func TestPlayerPressUsesCurrentSpeed(t *testing.T) {
	p := NewPlayer(400, 300, 100, 120, 4)
	p.HandleKey(input.Event{Dir: input.DirDown, Pressed: true})
	p.Speed = 5
	if p.DY != 4 {
		t.Fatalf("speed change must not alter current velocity, DY = %g", p.DY)
	}
	p.HandleKey(input.Event{Dir: input.DirDown, Pressed: true})
	if p.DY != 5 {
		t.Fatalf("repeat press should pick up new speed, DY = %g", p.DY)
	}
}

func TestPlayerMoveStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := NewPlayer(400, 300, 100, 120, 9)

	dirs := []input.Direction{input.DirUp, input.DirDown, input.DirLeft, input.DirRight}
	for tick := 0; tick < 5000; tick++ {
		if tick%25 == 0 {
			p.HandleKey(input.Event{Dir: dirs[rng.Intn(len(dirs))], Pressed: true})
		}
		p.Move(canvas)

		if p.X < 50 || p.X > 750 || p.Y < 60 || p.Y > 540 {
			t.Fatalf("tick %d: player at (%g, %g) left the canvas", tick, p.X, p.Y)
		}
	}
}

func TestPlayerMoveClamps(t *testing.T) {
	p := NewPlayer(52, 62, 100, 120, 4)
	p.DX, p.DY = -4, -4
	p.Move(canvas)
	if p.X != 50 || p.Y != 60 {
		t.Errorf("clamped position = (%g, %g), want (50, 60)", p.X, p.Y)
	}

	p = NewPlayer(748, 538, 100, 120, 4)
	p.DX, p.DY = 4, 4
	p.Move(canvas)
	if p.X != 750 || p.Y != 540 {
		t.Errorf("clamped position = (%g, %g), want (750, 540)", p.X, p.Y)
	}
}

func TestEnemyMoveReflects(t *testing.T) {
	tests := []struct {
		name           string
		enemy          Enemy
		wantDX, wantDY float64
	}{
		{"free flight", Enemy{X: 400, Y: 300, DX: 2, DY: -2, Size: 80}, 2, -2},
		{"right wall", Enemy{X: 759, Y: 300, DX: 2, DY: 2, Size: 80}, -2, 2},
		{"left wall", Enemy{X: 41, Y: 300, DX: -2, DY: 2, Size: 80}, 2, 2},
		{"bottom wall", Enemy{X: 400, Y: 559, DX: 2, DY: 2, Size: 80}, 2, -2},
		{"corner flips both", Enemy{X: 41, Y: 41, DX: -2, DY: -2, Size: 80}, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := tt.enemy
			e.Move(canvas)
			if e.DX != tt.wantDX || e.DY != tt.wantDY {
				t.Errorf("velocity = (%g, %g), want (%g, %g)", e.DX, e.DY, tt.wantDX, tt.wantDY)
			}
			if e.X != tt.enemy.X+tt.enemy.DX || e.Y != tt.enemy.Y+tt.enemy.DY {
				t.Errorf("position = (%g, %g), want position moved by old velocity", e.X, e.Y)
			}
		})
	}
}

func TestSpawnBalls(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	gold := color.RGBA{R: 255, G: 215, A: 255}
	balls := SpawnBalls(rng, canvas, 200, 10, gold)

	if len(balls) != 200 {
		t.Fatalf("len = %d, want 200", len(balls))
	}
	for i, b := range balls {
		if b.X < 10 || b.X > 790 || b.Y < 10 || b.Y > 590 {
			t.Errorf("ball %d at (%g, %g) not fully inside canvas", i, b.X, b.Y)
		}
		if b.Radius != 10 || b.Color != gold {
			t.Errorf("ball %d = %+v, want radius 10 gold", i, b)
		}
	}

	if got := SpawnBalls(rng, canvas, 0, 10, gold); len(got) != 0 {
		t.Errorf("zero count spawned %d balls", len(got))
	}
}

func TestSpawnEnemies(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	enemies := SpawnEnemies(rng, canvas, 100, 80, 2)

	if len(enemies) != 100 {
		t.Fatalf("len = %d, want 100", len(enemies))
	}
	sawNeg, sawPos := false, false
	for i, e := range enemies {
		if e.X-40 < 0 || e.X+40 > 800 || e.Y-40 < 0 || e.Y+40 > 600 {
			t.Errorf("enemy %d at (%g, %g) does not fit on canvas", i, e.X, e.Y)
		}
		if math.Abs(e.DX) != 2 || math.Abs(e.DY) != 2 {
			t.Errorf("enemy %d velocity (%g, %g), want magnitude 2 per axis", i, e.DX, e.DY)
		}
		sawNeg = sawNeg || e.DX < 0
		sawPos = sawPos || e.DX > 0
	}
	if !sawNeg || !sawPos {
		t.Error("expected both velocity signs across 100 enemies")
	}
}

func TestParticlesExpire(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	particles := SpawnBurst(rng, 100, 100, 10, 5, 4, color.RGBA{A: 255})
	if len(particles) != 10 {
		t.Fatalf("burst size = %d, want 10", len(particles))
	}

	for tick := 0; tick < 4; tick++ {
		particles = UpdateParticles(particles)
	}
	if len(particles) != 0 {
		t.Errorf("%d particles outlived their lifetime", len(particles))
	}
}

func TestDraw(t *testing.T) {
	s := &recordingSurface{}
	NewPlayer(400, 300, 100, 120, 4).Draw(s)
	(&Enemy{X: 10, Y: 20, Size: 80}).Draw(s)
	(&Ball{X: 1, Y: 2, Radius: 10}).Draw(s)
	NewParticle(5, 5, 0, 0, 10, color.RGBA{A: 255}).Draw(s)

	want := []spriteCall{
		{draw.SpritePlayer, 400, 300, 100, 120},
		{draw.SpriteEnemy, 10, 20, 80, 80},
	}
	if len(s.sprites) != len(want) {
		t.Fatalf("sprite calls = %v, want %v", s.sprites, want)
	}
	for i := range want {
		if s.sprites[i] != want[i] {
			t.Errorf("sprite call %d = %+v, want %+v", i, s.sprites[i], want[i])
		}
	}
	if s.circles != 1 || s.plots != 1 {
		t.Errorf("circles=%d plots=%d, want 1 and 1", s.circles, s.plots)
	}
}
