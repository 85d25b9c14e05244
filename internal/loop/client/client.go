// Package client drives one game session on a terminal: it reads keys,
// ticks the session at a fixed rate and renders it with a scaled canvas.
package client

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/ballrush/internal/draw"
	"github.com/tomz197/ballrush/internal/input"
	"github.com/tomz197/ballrush/internal/loop"
	"github.com/tomz197/ballrush/internal/loop/config"
	"github.com/tomz197/ballrush/internal/loop/server"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	session      *loop.Session
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
	showLobby    bool
	inactivity   bool
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Tuning       config.Tuning
	Seed         int64                           // Zero seeds from the clock
	Sprites      map[draw.SpriteKind]image.Image // Missing kinds use placeholder shapes
	Logger       *log.Logger                     // Nil discards log output
	ShowLobby    bool                            // Show the connected player count
	Inactivity   bool                            // Warn and disconnect idle clients
}

// NewClient creates a new game session for one terminal and registers it with gs.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) (*Client, error) {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	session, err := loop.NewSession(loop.Options{Tuning: opts.Tuning, Seed: opts.Seed})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	termWidth, termHeight, err := termSizeFunc()
	if err != nil {
		return nil, fmt.Errorf("get terminal size: %w", err)
	}
	tuning := session.Tuning()
	renderWidth, renderHeight, offsetCol, offsetRow := draw.FitCanvas(termWidth, termHeight, tuning.CanvasWidth, tuning.CanvasHeight)

	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, tuning.CanvasWidth, tuning.CanvasHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	canvas.SetSpriteColor(draw.SpritePlayer, config.MustColor(tuning.PlayerColor))
	canvas.SetSpriteColor(draw.SpriteEnemy, config.MustColor(tuning.EnemyColor))
	for kind, img := range opts.Sprites {
		canvas.SetSprite(kind, img)
	}

	return &Client{
		server:       gs,
		handle:       gs.RegisterClient(opts.Username),
		session:      session,
		state:        NewClientState(),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r, config.KeyHoldDuration),
		lastInput:    time.Now(),
		termSizeFunc: termSizeFunc,
		logger:       logger.With("user", opts.Username),
		showLobby:    opts.ShowLobby,
		inactivity:   opts.Inactivity,
	}, nil
}

// Run starts the client loop. Blocks until the player quits, the input ends,
// or the server shutdown countdown runs out.
func (c *Client) Run() error {
	defer c.server.UnregisterClient(c.handle.ID)
	defer c.inputStream.Close()

	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput(frameStart)
		c.processServerEvents()
		c.updateScreen()

		if c.state.shuttingDown {
			c.updateShutdownState()
		}

		c.session.Tick()
		c.observeSession()

		if err := c.drawFrame(); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads pending keys and applies them.
func (c *Client) processInput(now time.Time) {
	c.applyInput(input.ReadInput(c.inputStream), now)
}

// applyInput forwards key events to the session and tracks inactivity.
func (c *Client) applyInput(inp input.Input, now time.Time) {
	c.state.Input = inp

	idle := now.Sub(c.lastInput).Seconds()
	switch {
	case len(inp.Pressed) > 0:
		c.lastInput = now
		c.state.isInactive = false
	case c.inactivity && idle > config.InactivityDisconnectUser:
		c.logger.Info("disconnecting inactive client")
		c.state.Running = false
	case c.inactivity && idle > config.InactivityWarnUser:
		c.state.isInactive = true
	}

	if inp.Quit || inp.Closed {
		c.state.Running = false
	}

	// Confirm first so direction keys sent along with it move the player.
	if inp.Confirm && c.session.State().Mode == loop.ModeGameOver {
		// Keys held through the notice must be pressed again.
		for _, ev := range c.inputStream.ReleaseStale() {
			c.session.HandleEvent(ev)
		}
		c.session.Acknowledge()
	}
	for _, ev := range inp.Events {
		c.session.HandleEvent(ev)
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			if event.Type == server.EventServerShutdown && !c.state.shuttingDown {
				c.state.shuttingDown = true
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// observeSession logs mode transitions of the session.
func (c *Client) observeSession() {
	st := c.session.State()
	if st.Mode == c.state.prevMode {
		return
	}
	if st.Mode == loop.ModeGameOver {
		c.logger.Info("caught by an enemy", "score", st.Notice.Score, "level", st.Notice.Level)
	}
	c.state.prevMode = st.Mode
}

// updateScreen handles terminal resize, keeping the canvas aspect ratio.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := draw.FitCanvas(termWidth, termHeight,
		c.canvas.LogicalWidth(), c.canvas.LogicalHeight())

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.chunkWriter.WriteString("\033[H\033[2J")
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
