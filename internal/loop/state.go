// Package loop holds one game session: its state, the per-tick update and
// rendering onto a draw.Surface. Front-ends own the frame timing.
package loop

import (
	"fmt"

	"github.com/tomz197/ballrush/internal/object"
)

// Mode is the session's phase.
type Mode int

const (
	ModePlaying  Mode = iota // World advances every tick
	ModeGameOver             // World frozen until the notice is acknowledged
)

// String returns the mode name used in logs.
func (m Mode) String() string {
	switch m {
	case ModePlaying:
		return "playing"
	case ModeGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// CaughtMessage is the headline of the game over notice.
const CaughtMessage = "Game Over! You were caught by an enemy!"

// Notice is the game over message together with the run it ended.
type Notice struct {
	Message string
	Score   int // Score reached before the reset
	Level   int // Level reached before the reset
}

// Lines formats the notice for Surface.DrawNotice.
func (n Notice) Lines() []string {
	return []string{
		n.Message,
		fmt.Sprintf("Score: %d  Level: %d", n.Score, n.Level),
		"Press SPACE or ENTER to continue",
	}
}

// State is everything one session knows about its world.
type State struct {
	Bounds    object.Bounds
	Player    *object.Player
	Balls     []*object.Ball
	Enemies   []*object.Enemy
	Particles []*object.Particle

	Score     int
	Level     int
	BallCount int // Balls spawned per level at the current level

	Mode   Mode
	Notice Notice // Valid while Mode is ModeGameOver
	Ticks  uint64 // Playing ticks since the session started
}
