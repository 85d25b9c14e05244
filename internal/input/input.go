// Package input turns keyboard activity into direction key events.
package input

import (
	"bufio"
	"sync"
	"time"
)

// Direction is one of the four logical movement keys.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// numDirections sizes the per-direction state arrays.
const numDirections = 5

// Horizontal reports whether the direction moves along the x axis.
func (d Direction) Horizontal() bool {
	return d == DirLeft || d == DirRight
}

// Event is a key press or release of a direction key.
type Event struct {
	Dir     Direction
	Pressed bool // false means the key was released
}

// Input represents the current frame's input.
type Input struct {
	Events  []Event // Direction key transitions in arrival order
	Quit    bool
	Confirm bool // Space or Enter
	Closed  bool // The underlying reader has ended
	Pressed []byte
}

// Stream delivers input bytes via a channel and synthesises key releases.
// Terminals only report presses (repeated while a key is held), so a
// direction counts as released once it has not been seen for hold.
type Stream struct {
	ch       chan byte
	done     chan struct{}
	stop     sync.Once
	pending  []byte // unfinished escape sequence from the previous read
	hold     time.Duration
	lastSeen [numDirections]time.Time
	held     [numDirections]bool
	fresh    [numDirections]bool // pressed during the latest read
	closed   bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader, hold time.Duration) *Stream {
	s := newStream(hold)
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

func newStream(hold time.Duration) *Stream {
	return &Stream{
		ch:   make(chan byte, 128),
		done: make(chan struct{}),
		hold: hold,
	}
}

// Close stops the reader goroutine once it next receives a byte.
// The underlying reader is not closed.
func (s *Stream) Close() {
	s.stop.Do(func() { close(s.done) })
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and reports a press event for every
// direction byte (including terminal auto-repeats) and a release event for
// every held direction whose hold window expired. An arrow sequence split
// across reads is decoded once its final byte arrives.
func ReadInput(s *Stream) Input {
	return s.read(time.Now())
}

func (s *Stream) read(now time.Time) Input {
	var fresh []byte
	s.fresh = [numDirections]bool{}

	// Drain all available bytes
drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			fresh = append(fresh, b)
		default:
			break drain
		}
	}

	input := Input{Closed: s.closed, Pressed: fresh}
	buf := append(s.pending, fresh...)
	s.pending = nil

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' {
			rest := buf[i+1:]
			if !s.closed && (len(rest) == 0 || (len(rest) == 1 && rest[0] == '[')) {
				// The rest of the sequence arrives with a later read.
				s.pending = append([]byte(nil), buf[i:]...)
				break
			}
			if len(rest) >= 2 && rest[0] == '[' {
				if dir := arrowDirection(rest[1]); dir != DirNone {
					input.Events = append(input.Events, s.press(dir, now))
					i += 2
					continue
				}
			}
		}

		if dir := keyDirection(b); dir != DirNone {
			input.Events = append(input.Events, s.press(dir, now))
			continue
		}

		switch b {
		case 'q', 'Q', '\x03': // Ctrl+C arrives as a byte in raw mode
			input.Quit = true
		case ' ', '\n', '\r':
			input.Confirm = true
		}
	}

	// Release directions that stopped repeating.
	for dir := DirUp; dir <= DirRight; dir++ {
		if s.held[dir] && now.Sub(s.lastSeen[dir]) >= s.hold {
			s.held[dir] = false
			input.Events = append(input.Events, Event{Dir: dir, Pressed: false})
		}
	}

	return input
}

// press records a direction byte and returns its press event.
func (s *Stream) press(dir Direction, now time.Time) Event {
	s.lastSeen[dir] = now
	s.held[dir] = true
	s.fresh[dir] = true
	return Event{Dir: dir, Pressed: true}
}

// ReleaseStale forgets every held key that was not pressed during the
// latest read, returning release events for them.
func (s *Stream) ReleaseStale() []Event {
	var events []Event
	for dir := DirUp; dir <= DirRight; dir++ {
		if s.held[dir] && !s.fresh[dir] {
			s.held[dir] = false
			events = append(events, Event{Dir: dir, Pressed: false})
		}
	}
	return events
}

// arrowDirection maps the final byte of an arrow key CSI sequence.
func arrowDirection(code byte) Direction {
	switch code {
	case 'A':
		return DirUp
	case 'B':
		return DirDown
	case 'C':
		return DirRight
	case 'D':
		return DirLeft
	}
	return DirNone
}

// keyDirection maps the WASD keys.
func keyDirection(b byte) Direction {
	switch b {
	case 'w', 'W':
		return DirUp
	case 's', 'S':
		return DirDown
	case 'a', 'A':
		return DirLeft
	case 'd', 'D':
		return DirRight
	}
	return DirNone
}
