// Package desktop plays a session in an ebiten window with real key-up events.
package desktop

import (
	"fmt"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tomz197/ballrush/internal/draw"
	"github.com/tomz197/ballrush/internal/input"
	"github.com/tomz197/ballrush/internal/loop"
	"github.com/tomz197/ballrush/internal/loop/config"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Game adapts a session to ebiten.Game.
type Game struct {
	session  *loop.Session
	surface  *Surface
	keys     keyState
	logger   *log.Logger
	prevMode loop.Mode
}

// Ensure Game satisfies ebiten.Game.
var _ ebiten.Game = (*Game)(nil)

// New creates a window game for session. Sprite kinds missing from sprites
// are drawn as placeholders in the tuning colours. A nil logger discards output.
func New(session *loop.Session, sprites map[draw.SpriteKind]*ebiten.Image, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	t := session.Tuning()
	fallbacks := map[draw.SpriteKind]color.RGBA{
		draw.SpritePlayer: config.MustColor(t.PlayerColor),
		draw.SpriteEnemy:  config.MustColor(t.EnemyColor),
	}
	return &Game{
		session: session,
		surface: NewSurface(sprites, fallbacks),
		logger:  logger,
	}
}

// LoadSprite reads an image file into an ebiten image.
func LoadSprite(path string) (*ebiten.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load sprite %s: %w", path, err)
	}
	return img, nil
}

// Update runs one tick: acknowledge, keys, then the session.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if g.session.State().Mode == loop.ModeGameOver {
			g.keys.forget()
		}
		g.session.Acknowledge()
	}

	var pressed, released []input.Direction
	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.key) {
			pressed = append(pressed, b.dir)
		}
		if inpututil.IsKeyJustReleased(b.key) {
			released = append(released, b.dir)
		}
	}
	for _, ev := range g.keys.events(pressed, released, directionHeld) {
		g.session.HandleEvent(ev)
	}

	g.session.Tick()

	st := g.session.State()
	if st.Mode != g.prevMode && st.Mode == loop.ModeGameOver {
		g.logger.Info("caught by an enemy", "score", st.Notice.Score, "level", st.Notice.Level)
	}
	g.prevMode = st.Mode
	return nil
}

// Draw renders the session onto the window.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.setTarget(screen)
	g.session.Render(g.surface)
}

// Layout keeps the logical canvas size; ebiten scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	t := g.session.Tuning()
	return int(t.CanvasWidth), int(t.CanvasHeight)
}

// directionHeld reports whether any key bound to dir is down.
func directionHeld(dir input.Direction) bool {
	for _, b := range keyBindings {
		if b.dir == dir && ebiten.IsKeyPressed(b.key) {
			return true
		}
	}
	return false
}
