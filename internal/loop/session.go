package loop

import (
	"image/color"
	"math/rand"
	"time"

	"github.com/tomz197/ballrush/internal/input"
	"github.com/tomz197/ballrush/internal/loop/config"
	"github.com/tomz197/ballrush/internal/object"
	"github.com/tomz197/ballrush/internal/physics"
)

// Options configures a new session.
type Options struct {
	Tuning config.Tuning
	Seed   int64 // Zero seeds from the clock
}

// Session runs one single-player game. It is not safe for concurrent use;
// the front-end that owns it calls every method from one goroutine.
type Session struct {
	tuning      config.Tuning
	rng         *rand.Rand
	state       *State
	ballColor   color.RGBA
	playerColor color.RGBA

	// Broad-phase lookup for ball collection, rebuilt every tick
	ballGrid *physics.SpatialGrid
	hits     []int
}

// NewSession validates the tuning and spawns the first level.
// The player starts stationary in the centre of the canvas.
func NewSession(opts Options) (*Session, error) {
	t := opts.Tuning
	if err := t.Validate(); err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	bounds := object.Bounds{Width: t.CanvasWidth, Height: t.CanvasHeight}
	s := &Session{
		tuning:      t,
		rng:         rand.New(rand.NewSource(seed)),
		ballColor:   config.MustColor(t.BallColor),
		playerColor: config.MustColor(t.PlayerColor),
		// A ball can only be reached from within half the player width plus its radius
		ballGrid: physics.NewSpatialGrid(bounds.Width, bounds.Height, t.PlayerWidth/2+t.BallRadius),
		state: &State{
			Bounds: bounds,
			Player: object.NewPlayer(bounds.Width/2, bounds.Height/2, t.PlayerWidth, t.PlayerHeight, t.PlayerSpeed),
			Mode:   ModePlaying,
		},
	}
	s.resetProgress()
	return s, nil
}

// State returns the live session state. Callers must not modify it.
func (s *Session) State() *State {
	return s.state
}

// Tuning returns the parameters the session was created with.
func (s *Session) Tuning() config.Tuning {
	return s.tuning
}

// HandleEvent applies a direction key event to the player.
// Presses are dropped while the game over notice is up; releases always
// apply so a key let go during the notice does not stick afterwards.
func (s *Session) HandleEvent(ev input.Event) {
	if s.state.Mode == ModeGameOver && ev.Pressed {
		return
	}
	s.state.Player.HandleKey(ev)
}

// Acknowledge dismisses the game over notice. It is a no-op while playing.
func (s *Session) Acknowledge() {
	if s.state.Mode != ModeGameOver {
		return
	}
	s.state.Mode = ModePlaying
	s.state.Notice = Notice{}
}

// Tick advances the session by one frame: move, collide, then level up.
// Particles keep animating while the world is frozen behind the notice.
func (s *Session) Tick() {
	st := s.state
	st.Particles = object.UpdateParticles(st.Particles)

	if st.Mode != ModePlaying {
		return
	}
	st.Ticks++

	st.Player.Move(st.Bounds)
	for _, e := range st.Enemies {
		e.Move(st.Bounds)
	}

	s.collectBalls()
	if s.enemyHit() {
		s.gameOver()
		return
	}
	s.updateLevel()
}

// updateLevel steps at most one level per tick once the score reaches the threshold.
func (s *Session) updateLevel() {
	st := s.state
	if st.Score < st.Level*s.tuning.PointsPerLevel {
		return
	}

	st.Level++
	st.BallCount += s.tuning.BallsPerLevel
	st.Player.Speed += s.tuning.SpeedPerLevel
	s.respawn()
}

// gameOver records the notice, resets progress and freezes the world.
func (s *Session) gameOver() {
	st := s.state
	st.Notice = Notice{
		Message: CaughtMessage,
		Score:   st.Score,
		Level:   st.Level,
	}
	st.Particles = append(st.Particles, object.SpawnBurst(s.rng, st.Player.X, st.Player.Y,
		config.CaughtBurstParticles, config.BurstSpeed, config.BurstLifetime, s.playerColor)...)

	s.resetProgress()
	st.Player.DX, st.Player.DY = 0, 0
	st.Mode = ModeGameOver
}

// resetProgress returns score, level, speed and ball count to their starting
// values and respawns both sets. The player keeps its position.
func (s *Session) resetProgress() {
	st := s.state
	st.Score = 0
	st.Level = 1
	st.BallCount = s.tuning.BallCount
	st.Player.Speed = s.tuning.PlayerSpeed
	s.respawn()
}

// respawn replaces every ball and enemy.
func (s *Session) respawn() {
	st := s.state
	t := s.tuning
	st.Balls = object.SpawnBalls(s.rng, st.Bounds, st.BallCount, t.BallRadius, s.ballColor)
	st.Enemies = object.SpawnEnemies(s.rng, st.Bounds, t.EnemyCount, t.EnemySize, t.EnemySpeed)
}
