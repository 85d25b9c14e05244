// Package config centralizes all tunable game parameters.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Terminal key handling. Terminals only report presses (and auto-repeats),
// so a key counts as released once it has not been seen for this long.
const KeyHoldDuration = 120 * time.Millisecond

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Particle bursts
const (
	CollectBurstParticles = 6
	CaughtBurstParticles  = 24
	BurstSpeed            = 6.0 // Logical units per tick
	BurstLifetime         = 20  // Ticks
)

// ErrInvalidTuning is returned when a tuning value cannot produce a playable game.
var ErrInvalidTuning = errors.New("invalid tuning")

// Tuning holds every gameplay parameter. Units are logical canvas pixels
// and ticks; speeds are applied once per tick.
type Tuning struct {
	CanvasWidth  float64 `yaml:"canvas_width"`
	CanvasHeight float64 `yaml:"canvas_height"`

	PlayerWidth   float64 `yaml:"player_width"`
	PlayerHeight  float64 `yaml:"player_height"`
	PlayerSpeed   float64 `yaml:"player_speed"`
	SpeedPerLevel float64 `yaml:"speed_per_level"`
	PlayerColor   string  `yaml:"player_color"` // Used when no player sprite is loaded

	BallRadius    float64 `yaml:"ball_radius"`
	BallCount     int     `yaml:"ball_count"`
	BallsPerLevel int     `yaml:"balls_per_level"`
	BallColor     string  `yaml:"ball_color"`

	EnemyCount int     `yaml:"enemy_count"`
	EnemySize  float64 `yaml:"enemy_size"`
	EnemySpeed float64 `yaml:"enemy_speed"`
	EnemyColor string  `yaml:"enemy_color"` // Used when no enemy sprite is loaded

	PointsPerLevel int `yaml:"points_per_level"`
}

// Default returns the stock tuning.
func Default() Tuning {
	return Tuning{
		CanvasWidth:  800,
		CanvasHeight: 600,

		PlayerWidth:   100,
		PlayerHeight:  120,
		PlayerSpeed:   4,
		SpeedPerLevel: 1,
		PlayerColor:   "#F8A8D8",

		BallRadius:    10,
		BallCount:     10,
		BallsPerLevel: 5,
		BallColor:     "#FFD700",

		EnemyCount: 3,
		EnemySize:  80,
		EnemySpeed: 2,
		EnemyColor: "#FF6FA8",

		PointsPerLevel: 10,
	}
}

// Load reads a YAML tuning file layered over Default.
// An empty path returns Default unchanged.
func Load(path string) (Tuning, error) {
	t := Default()
	if path == "" {
		return t, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("open tuning file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return Tuning{}, fmt.Errorf("decode tuning file %s: %w", path, err)
	}

	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

// Validate checks that every sprite fits on the canvas and that counts make sense.
func (t Tuning) Validate() error {
	switch {
	case t.CanvasWidth <= 0 || t.CanvasHeight <= 0:
		return fmt.Errorf("%w: canvas must be positive, got %gx%g", ErrInvalidTuning, t.CanvasWidth, t.CanvasHeight)
	case t.PlayerWidth <= 0 || t.PlayerHeight <= 0:
		return fmt.Errorf("%w: player size must be positive", ErrInvalidTuning)
	case t.PlayerWidth > t.CanvasWidth || t.PlayerHeight > t.CanvasHeight:
		return fmt.Errorf("%w: player does not fit on the canvas", ErrInvalidTuning)
	case t.BallRadius <= 0 || 2*t.BallRadius > t.CanvasWidth || 2*t.BallRadius > t.CanvasHeight:
		return fmt.Errorf("%w: ball radius %g does not fit on the canvas", ErrInvalidTuning, t.BallRadius)
	case t.EnemySize <= 0 || t.EnemySize > t.CanvasWidth || t.EnemySize > t.CanvasHeight:
		return fmt.Errorf("%w: enemy size %g does not fit on the canvas", ErrInvalidTuning, t.EnemySize)
	case t.BallCount < 0 || t.BallsPerLevel < 0 || t.EnemyCount < 0:
		return fmt.Errorf("%w: counts must not be negative", ErrInvalidTuning)
	case t.PointsPerLevel < 1:
		return fmt.Errorf("%w: points_per_level must be at least 1", ErrInvalidTuning)
	case t.PlayerSpeed < 0 || t.EnemySpeed < 0:
		return fmt.Errorf("%w: speeds must not be negative", ErrInvalidTuning)
	}

	for name, hex := range map[string]string{
		"player_color": t.PlayerColor,
		"ball_color":   t.BallColor,
		"enemy_color":  t.EnemyColor,
	} {
		if _, err := ParseColor(hex); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidTuning, name, err)
		}
	}
	return nil
}

// ParseColor converts a "#RRGGBB" string into an opaque color.
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// MustColor is ParseColor for tunings that already passed Validate.
func MustColor(hex string) color.RGBA {
	c, err := ParseColor(hex)
	if err != nil {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return c
}
