package loop

import (
	"fmt"

	"github.com/tomz197/ballrush/internal/draw"
	"github.com/tomz197/ballrush/internal/object"
)

// HUD text baselines in logical canvas coordinates.
const (
	hudX      = 20
	hudScoreY = 30
	hudLevelY = 50
)

// Render draws the whole frame onto surf: player, balls, enemies, particles,
// then the score overlay and, in game over, the notice on top.
func (s *Session) Render(surf draw.Surface) {
	st := s.state
	surf.Clear()

	st.Player.Draw(surf)
	drawAll(surf, st.Balls)
	drawAll(surf, st.Enemies)
	drawAll(surf, st.Particles)

	surf.DrawText(hudX, hudScoreY, fmt.Sprintf("Score: %d", st.Score))
	surf.DrawText(hudX, hudLevelY, fmt.Sprintf("Level: %d", st.Level))

	if st.Mode == ModeGameOver {
		surf.DrawNotice(st.Notice.Lines())
	}
}

func drawAll[T object.Drawable](surf draw.Surface, items []T) {
	for _, item := range items {
		item.Draw(surf)
	}
}
