package client

import (
	"time"

	"github.com/tomz197/ballrush/internal/input"
	"github.com/tomz197/ballrush/internal/loop"
)

// ClientState holds the per-connection state that lives outside the game
// session: frame timing, lobby lifecycle and inactivity tracking.
type ClientState struct {
	Input         input.Input
	Running       bool          // Client loop running
	delta         time.Duration // Frame delta time
	prevMode      loop.Mode     // Session mode seen on the previous frame
	shuttingDown  bool          // Server announced shutdown
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Running:  true,
		prevMode: loop.ModePlaying,
	}
}
