package runner

import (
	"github.com/vovakirdan/neon-runner/internal/config"
)

// seqRand replays a fixed sequence of values, wrapping around at the end.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

// scriptSpawner emits a fixed obstacle on chosen ticks (1-based, counted
// since the last Reset).
type scriptSpawner struct {
	at   map[int]Obstacle
	tick int
}

func (s *scriptSpawner) Reset(sess *Session) {
	s.tick = 0
	sess.SpawnTimer = 0
}

func (s *scriptSpawner) Tick(*Session) (Obstacle, bool) {
	s.tick++
	o, ok := s.at[s.tick]
	return o, ok
}

func testConfig() config.RunnerConfig {
	return config.DefaultRunnerConfig()
}

// recorder collects controller callbacks.
type recorder struct {
	updates  []int
	gameOver []int
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnScoreUpdate: func(score int) { r.updates = append(r.updates, score) },
		OnGameOver:    func(score int) { r.gameOver = append(r.gameOver, score) },
	}
}
