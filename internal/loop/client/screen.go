package client

import (
	"fmt"
	"time"

	"github.com/tomz197/ballrush/internal/loop/config"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	c.session.Render(c.canvas)

	// Lifecycle screens replace the game over notice.
	switch {
	case c.state.shuttingDown:
		c.canvas.DrawNotice(c.shutdownLines())
	case c.state.isInactive:
		c.canvas.DrawNotice(c.inactivityLines())
	}

	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}

	// Draw border when the terminal is larger than the canvas
	if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
		return err
	}

	if c.showLobby {
		c.drawLobby()
	}

	return c.chunkWriter.Flush()
}

// drawLobby shows how many players are connected in the bottom-right corner.
func (c *Client) drawLobby() {
	text := fmt.Sprintf("Players online: %d", c.server.Lobby().Players)
	col := max(c.canvas.TerminalWidth()-len(text), 1)
	c.chunkWriter.WriteAt(col, c.canvas.TerminalHeight(), text)
}

// inactivityLines is the inactivity warning.
func (c *Client) inactivityLines() []string {
	remaining := int(config.InactivityDisconnectUser - time.Since(c.lastInput).Seconds())
	return []string{
		"INACTIVITY WARNING",
		fmt.Sprintf("You will be disconnected in %d seconds.", max(remaining, 0)),
		"Press any key to continue",
	}
}

// shutdownLines is the server shutdown notification.
func (c *Client) shutdownLines() []string {
	remaining := int(c.state.shutdownTimer) + 1
	return []string{
		"SERVER SHUTTING DOWN",
		"The server is restarting for maintenance.",
		"Please reconnect in a moment.",
		fmt.Sprintf("Disconnecting in %d seconds...", remaining),
		"Press Q to disconnect now",
	}
}
