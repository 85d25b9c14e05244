package loop

import (
	"slices"

	"github.com/tomz197/ballrush/internal/loop/config"
	"github.com/tomz197/ballrush/internal/object"
	"github.com/tomz197/ballrush/internal/physics"
)

// collectBalls removes every ball within reach of the player and scores one
// point per ball. Hits are gathered first so no ball is skipped by removal.
func (s *Session) collectBalls() {
	st := s.state
	p := st.Player
	reach := p.HalfWidth()

	s.ballGrid.Clear()
	for i, b := range st.Balls {
		s.ballGrid.Insert(b.X, b.Y, i)
	}

	s.hits = s.hits[:0]
	s.ballGrid.QueryAround(p.X, p.Y, func(i int) bool {
		b := st.Balls[i]
		if physics.CirclesOverlap(p.X, p.Y, reach, b.X, b.Y, b.Radius) {
			s.hits = append(s.hits, i)
		}
		return false
	})
	if len(s.hits) == 0 {
		return
	}
	slices.Sort(s.hits)

	kept := st.Balls[:0]
	next := 0
	for i, b := range st.Balls {
		if next < len(s.hits) && s.hits[next] == i {
			next++
			st.Particles = append(st.Particles, object.SpawnBurst(s.rng, b.X, b.Y,
				config.CollectBurstParticles, config.BurstSpeed, config.BurstLifetime, b.Color)...)
			continue
		}
		kept = append(kept, b)
	}
	clear(st.Balls[len(kept):])
	st.Balls = kept
	st.Score += len(s.hits)
}

// enemyHit reports whether any enemy touches the player. One hit is enough.
func (s *Session) enemyHit() bool {
	p := s.state.Player
	for _, e := range s.state.Enemies {
		if physics.CirclesOverlap(p.X, p.Y, p.HalfWidth(), e.X, e.Y, e.HalfSize()) {
			return true
		}
	}
	return false
}
