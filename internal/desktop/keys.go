package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tomz197/ballrush/internal/input"
)

// keyBindings binds the arrow keys and WASD to directions.
var keyBindings = []struct {
	key ebiten.Key
	dir input.Direction
}{
	{ebiten.KeyArrowUp, input.DirUp},
	{ebiten.KeyW, input.DirUp},
	{ebiten.KeyArrowDown, input.DirDown},
	{ebiten.KeyS, input.DirDown},
	{ebiten.KeyArrowLeft, input.DirLeft},
	{ebiten.KeyA, input.DirLeft},
	{ebiten.KeyArrowRight, input.DirRight},
	{ebiten.KeyD, input.DirRight},
}

// keyState turns per-frame key transitions into session events.
// Keyboards repeat the most recent key while it is held, and each repeat
// re-applies the player's current speed, so the last pressed direction is
// pressed again every frame until released.
type keyState struct {
	last input.Direction
}

// events returns the presses, then the releases, then the repeat of the
// last held direction. held reports whether any key of a direction is down.
func (k *keyState) events(pressed, released []input.Direction, held func(input.Direction) bool) []input.Event {
	var out []input.Event
	repeat := true

	for _, dir := range pressed {
		out = append(out, input.Event{Dir: dir, Pressed: true})
		k.last = dir
		repeat = false
	}
	for _, dir := range released {
		out = append(out, input.Event{Dir: dir, Pressed: false})
	}

	if k.last == input.DirNone {
		return out
	}
	if !held(k.last) {
		k.last = input.DirNone
		return out
	}
	if repeat {
		out = append(out, input.Event{Dir: k.last, Pressed: true})
	}
	return out
}

// forget stops repeating the last key. A key held through the game over
// notice only moves the player once it is pressed again.
func (k *keyState) forget() {
	k.last = input.DirNone
}
