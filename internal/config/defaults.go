package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the default runner configuration.
// It mirrors defaults/runner.yaml and is used if the embedded file cannot be
// parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Canvas: CanvasConfig{
			Width:   800,
			Height:  500,
			GroundY: 400,
			Tile:    50,
		},
		Physics: PhysicsConfig{
			Gravity: 0.8,
		},
		Player: PlayerConfig{
			X:         100,
			Width:     50,
			Height:    60,
			JumpForce: 16,
		},
		World: WorldConfig{
			BaseSpeed:   7,
			ReportEvery: 100,
		},
		Obstacles: ObstacleConfig{
			SpawnX:             1000,
			DespawnX:           -100,
			Width:              30,
			GroundMinHeight:    40,
			GroundHeightJitter: 40,
			FlyingHeight:       30,
			FlyingMinY:         220,
			FlyingYJitter:      50,
			BeamWidth:          120,
			BeamHeight:         12,
			BeamY:              300,
			Weights: ObstacleWeights{
				Ground: 2,
				Flying: 1,
				Beam:   0,
			},
		},
		Spawner: SpawnerConfig{
			InitialTimer:   0,
			BaseInterval:   80,
			IntervalJitter: 100,
			SpeedFactor:    2,
		},
		Particles: ParticleConfig{
			BurstCount: 15,
			Spread:     10,
			Decay:      0.02,
			Size:       4,
		},
		Milestones: MilestoneConfig{
			First:      1000,
			Step:       1000,
			SuspendFor: 4500 * time.Millisecond,
		},
		Evolution: EvolutionConfig{
			Provider:  "gemini",
			Model:     "gemini-3-flash-preview",
			APIKeyEnv: "API_KEY",
			Timeout:   4 * time.Second,
		},
		Difficulty: DifficultyConfig{
			Enabled:         true,
			InitialLevel:    0.0,
			SpeedMultiplier: 0.5,
			SpeedStep:       0.1,
			StepEvery:       100,
			MaxSpeed:        0,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
