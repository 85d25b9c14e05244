package input

import (
	"bufio"
	"runtime"
	"strings"
	"testing"
	"time"
)

const testHold = 100 * time.Millisecond

func feed(s *Stream, data string) {
	for i := 0; i < len(data); i++ {
		s.ch <- data[i]
	}
}

func TestReadInputArrowsAndWASD(t *testing.T) {
	s := newStream(testHold)
	feed(s, "\x1b[A\x1b[Dsd")
	in := s.read(time.Unix(0, 0))

	want := []Event{
		{Dir: DirUp, Pressed: true},
		{Dir: DirLeft, Pressed: true},
		{Dir: DirDown, Pressed: true},
		{Dir: DirRight, Pressed: true},
	}
	if len(in.Events) != len(want) {
		t.Fatalf("events = %v, want %v", in.Events, want)
	}
	for i := range want {
		if in.Events[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, in.Events[i], want[i])
		}
	}
}

func TestReadInputSynthesisesRelease(t *testing.T) {
	s := newStream(testHold)
	start := time.Unix(100, 0)

	feed(s, "a")
	s.read(start)

	// Still within the hold window: no release.
	if in := s.read(start.Add(testHold / 2)); len(in.Events) != 0 {
		t.Fatalf("unexpected events inside hold window: %v", in.Events)
	}

	// Auto-repeat keeps the key held.
	feed(s, "a")
	in := s.read(start.Add(testHold - time.Millisecond))
	if len(in.Events) != 1 || !in.Events[0].Pressed {
		t.Fatalf("repeat should produce a press event, got %v", in.Events)
	}

	in = s.read(start.Add(3 * testHold))
	if len(in.Events) != 1 || in.Events[0] != (Event{Dir: DirLeft, Pressed: false}) {
		t.Fatalf("expected release of left, got %v", in.Events)
	}

	// Released only once.
	if in := s.read(start.Add(4 * testHold)); len(in.Events) != 0 {
		t.Errorf("release repeated: %v", in.Events)
	}
}

func TestReadInputQuitAndConfirm(t *testing.T) {
	tests := []struct {
		name        string
		data        string
		wantQuit    bool
		wantConfirm bool
	}{
		{"q", "q", true, false},
		{"ctrl-c", "\x03", true, false},
		{"space", " ", false, true},
		{"enter", "\r", false, true},
		{"other", "x", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStream(testHold)
			feed(s, tt.data)
			in := s.read(time.Now())
			if in.Quit != tt.wantQuit || in.Confirm != tt.wantConfirm {
				t.Errorf("Quit=%v Confirm=%v, want %v %v", in.Quit, in.Confirm, tt.wantQuit, tt.wantConfirm)
			}
		})
	}
}

func TestStreamReportsClosed(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("d")), testHold)

	deadline := time.Now().Add(time.Second)
	var in Input
	for time.Now().Before(deadline) {
		in = ReadInput(s)
		if in.Closed {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if !in.Closed {
		t.Fatal("stream should report Closed after reader EOF")
	}
}

func TestReleaseStale(t *testing.T) {
	s := newStream(testHold)
	feed(s, "wd")
	s.read(time.Now())
	feed(s, "a")
	s.read(time.Now())

	events := s.ReleaseStale()
	want := []Event{{Dir: DirUp, Pressed: false}, {Dir: DirRight, Pressed: false}}
	if len(events) != len(want) {
		t.Fatalf("ReleaseStale = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, events[i], want[i])
		}
	}
	if len(s.ReleaseStale()) != 0 {
		t.Error("second ReleaseStale should be empty")
	}
	if !s.held[DirLeft] {
		t.Error("key pressed in the latest read should stay held")
	}
}

func TestReadInputSplitArrow(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  Direction
	}{
		{"after esc", []string{"\x1b", "[D"}, DirLeft},
		{"after bracket", []string{"\x1b[", "D"}, DirLeft},
		{"three reads", []string{"\x1b", "[", "A"}, DirUp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStream(testHold)
			now := time.Unix(0, 0)
			var events []Event
			for _, part := range tt.parts {
				feed(s, part)
				events = append(events, s.read(now).Events...)
			}
			if len(events) != 1 || events[0] != (Event{Dir: tt.want, Pressed: true}) {
				t.Errorf("events = %v, want a single press of %v", events, tt.want)
			}
		})
	}
}

func TestReadInputLoneEscape(t *testing.T) {
	s := newStream(testHold)
	feed(s, "\x1b")
	if in := s.read(time.Now()); len(in.Events) != 0 {
		t.Fatalf("events = %v, want none", in.Events)
	}

	feed(s, "d")
	in := s.read(time.Now())
	if len(in.Events) != 1 || in.Events[0] != (Event{Dir: DirRight, Pressed: true}) {
		t.Errorf("events = %v, want a press of right", in.Events)
	}
}

type endlessReader struct{}

func (endlessReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 'x'
	}
	return len(p), nil
}

func TestCloseStopsReader(t *testing.T) {
	before := runtime.NumGoroutine()
	s := StartStream(bufio.NewReader(endlessReader{}), testHold)
	s.Close()
	s.Close()

	deadline := time.Now().Add(time.Second)
	for runtime.NumGoroutine() > before {
		if time.Now().After(deadline) {
			t.Fatal("reader goroutine still running after Close")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestDirectionHorizontal(t *testing.T) {
	if !DirLeft.Horizontal() || !DirRight.Horizontal() {
		t.Error("left/right should be horizontal")
	}
	if DirUp.Horizontal() || DirDown.Horizontal() {
		t.Error("up/down should not be horizontal")
	}
}
