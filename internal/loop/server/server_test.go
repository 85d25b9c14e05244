package server

import (
	"slices"
	"testing"
	"time"
)

func TestRegisterAndUnregister(t *testing.T) {
	s := NewServer(nil)

	alice := s.RegisterClient("alice")
	bob := s.RegisterClient("bob")
	if alice.ID == bob.ID {
		t.Fatalf("duplicate client ID %d", alice.ID)
	}

	lobby := s.Lobby()
	if lobby.Players != 2 || !slices.Equal(lobby.Usernames, []string{"alice", "bob"}) {
		t.Errorf("lobby = %+v, want alice and bob", lobby)
	}

	s.UnregisterClient(alice.ID)
	if _, ok := <-alice.EventsCh; ok {
		t.Error("events channel should be closed after unregister")
	}
	if got := s.Lobby().Players; got != 1 {
		t.Errorf("players = %d, want 1", got)
	}

	// Unknown and repeated IDs are ignored.
	s.UnregisterClient(alice.ID)
	s.UnregisterClient(999)
	if got := s.Lobby().Players; got != 1 {
		t.Errorf("players = %d, want 1", got)
	}
}

func TestLobbySnapshotIsImmutable(t *testing.T) {
	s := NewServer(nil)
	s.RegisterClient("carol")
	before := s.Lobby()

	s.RegisterClient("dave")
	if before.Players != 1 || len(before.Usernames) != 1 {
		t.Errorf("old snapshot changed: %+v", before)
	}
}

func TestShutdownNotifiesAndWaits(t *testing.T) {
	s := NewServer(nil)
	handle := s.RegisterClient("erin")

	done := make(chan struct{})
	go func() {
		s.Shutdown(5 * time.Second)
		close(done)
	}()

	select {
	case ev := <-handle.EventsCh:
		if ev.Type != EventServerShutdown {
			t.Fatalf("event = %v, want shutdown", ev.Type)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no shutdown event")
	}

	s.UnregisterClient(handle.ID)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown did not return after the last client left")
	}
}

func TestShutdownTimeout(t *testing.T) {
	s := NewServer(nil)
	s.RegisterClient("frank")

	start := time.Now()
	s.Shutdown(300 * time.Millisecond)
	if elapsed := time.Since(start); elapsed < 300*time.Millisecond {
		t.Errorf("Shutdown returned after %v, before the timeout", elapsed)
	}
}

func TestLateJoinerSeesShutdown(t *testing.T) {
	s := NewServer(nil)
	s.Shutdown(0)

	handle := s.RegisterClient("grace")
	select {
	case ev := <-handle.EventsCh:
		if ev.Type != EventServerShutdown {
			t.Errorf("event = %v, want shutdown", ev.Type)
		}
	default:
		t.Error("late joiner got no shutdown event")
	}
}
