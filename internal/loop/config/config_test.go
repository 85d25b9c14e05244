package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func writeTuning(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write tuning: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	got, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if got != Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", got)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeTuning(t, "ball_count: 20\nenemy_speed: 3.5\nball_color: \"#00FF00\"\n")

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got.BallCount != 20 {
		t.Errorf("BallCount = %d, want 20", got.BallCount)
	}
	if got.EnemySpeed != 3.5 {
		t.Errorf("EnemySpeed = %g, want 3.5", got.EnemySpeed)
	}
	if got.PlayerWidth != Default().PlayerWidth {
		t.Errorf("PlayerWidth = %g, want default %g", got.PlayerWidth, Default().PlayerWidth)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	got, err := Load(writeTuning(t, ""))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got != Default() {
		t.Errorf("empty file should yield defaults, got %+v", got)
	}
}

func TestLoadRejectsUnknownField(t *testing.T) {
	if _, err := Load(writeTuning(t, "ball_cuont: 3\n")); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestLoadRejectsInvalidTuning(t *testing.T) {
	_, err := Load(writeTuning(t, "enemy_size: 5000\n"))
	if !errors.Is(err, ErrInvalidTuning) {
		t.Fatalf("Load error = %v, want ErrInvalidTuning", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tuning)
	}{
		{"zero canvas", func(t *Tuning) { t.CanvasWidth = 0 }},
		{"player too wide", func(t *Tuning) { t.PlayerWidth = t.CanvasWidth + 1 }},
		{"ball too big", func(t *Tuning) { t.BallRadius = t.CanvasHeight }},
		{"negative enemies", func(t *Tuning) { t.EnemyCount = -1 }},
		{"no level threshold", func(t *Tuning) { t.PointsPerLevel = 0 }},
		{"bad color", func(t *Tuning) { t.BallColor = "gold" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tun := Default()
			tt.mutate(&tun)
			if err := tun.Validate(); !errors.Is(err, ErrInvalidTuning) {
				t.Errorf("Validate() = %v, want ErrInvalidTuning", err)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	got, err := ParseColor("#FFD700")
	if err != nil {
		t.Fatalf("ParseColor error: %v", err)
	}
	want := color.RGBA{R: 0xFF, G: 0xD7, B: 0x00, A: 0xFF}
	if got != want {
		t.Errorf("ParseColor = %v, want %v", got, want)
	}
}
