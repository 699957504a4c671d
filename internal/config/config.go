// Package config provides YAML-based configuration loading and difficulty
// management for the runner.
package config

import (
	"errors"
	"fmt"
	"time"
)

// RunnerConfig contains all tunable parameters of the runner.
type RunnerConfig struct {
	Canvas     CanvasConfig     `yaml:"canvas"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	World      WorldConfig      `yaml:"world"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	Spawner    SpawnerConfig    `yaml:"spawner"`
	Particles  ParticleConfig   `yaml:"particles"`
	Milestones MilestoneConfig  `yaml:"milestones"`
	Evolution  EvolutionConfig  `yaml:"evolution"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// CanvasConfig defines the logical drawing surface. All coordinates in the
// simulation are expressed in these units.
type CanvasConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	GroundY float64 `yaml:"ground_y"`
	Tile    float64 `yaml:"tile"` // background grid spacing
}

// PhysicsConfig defines the constant-gravity integrator.
type PhysicsConfig struct {
	Gravity float64 `yaml:"gravity"` // added to dy every tick
}

// PlayerConfig defines the player body.
type PlayerConfig struct {
	X         float64 `yaml:"x"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	JumpForce float64 `yaml:"jump_force"`
}

// WorldConfig defines scrolling speed and score reporting.
type WorldConfig struct {
	BaseSpeed   float64 `yaml:"base_speed"`
	ReportEvery int     `yaml:"report_every"` // ticks between score updates
}

// ObstacleConfig defines obstacle geometry per kind.
type ObstacleConfig struct {
	SpawnX             float64        `yaml:"spawn_x"`
	DespawnX           float64        `yaml:"despawn_x"` // removed once right edge < this
	Width              float64        `yaml:"width"`
	GroundMinHeight    float64        `yaml:"ground_min_height"`
	GroundHeightJitter float64        `yaml:"ground_height_jitter"`
	FlyingHeight       float64        `yaml:"flying_height"`
	FlyingMinY         float64        `yaml:"flying_min_y"`
	FlyingYJitter      float64        `yaml:"flying_y_jitter"`
	BeamWidth          float64        `yaml:"beam_width"`
	BeamHeight         float64        `yaml:"beam_height"`
	BeamY              float64        `yaml:"beam_y"`
	Weights            ObstacleWeights `yaml:"weights"`
}

// ObstacleWeights are the relative odds of each obstacle kind.
type ObstacleWeights struct {
	Ground int `yaml:"ground"`
	Flying int `yaml:"flying"`
	Beam   int `yaml:"beam"`
}

// Total returns the sum of all weights.
func (w ObstacleWeights) Total() int {
	return w.Ground + w.Flying + w.Beam
}

// SpawnerConfig defines the spawn countdown.
// After each spawn the timer is reset to
// BaseInterval + rand*IntervalJitter - speed*SpeedFactor.
type SpawnerConfig struct {
	InitialTimer   float64 `yaml:"initial_timer"`
	BaseInterval   float64 `yaml:"base_interval"`
	IntervalJitter float64 `yaml:"interval_jitter"`
	SpeedFactor    float64 `yaml:"speed_factor"`
}

// ParticleConfig defines burst effects.
type ParticleConfig struct {
	BurstCount int     `yaml:"burst_count"`
	Spread     float64 `yaml:"spread"` // velocity range per axis
	Decay      float64 `yaml:"decay"`  // life lost per tick
	Size       float64 `yaml:"size"`
}

// MilestoneConfig defines evolution milestones.
type MilestoneConfig struct {
	First      int           `yaml:"first"`
	Step       int           `yaml:"step"`
	SuspendFor time.Duration `yaml:"suspend_for"`
}

// EvolutionConfig defines the flavor-content service.
type EvolutionConfig struct {
	Provider  string        `yaml:"provider"` // gemini, static, offline
	Model     string        `yaml:"model"`
	APIKeyEnv string        `yaml:"api_key_env"`
	Timeout   time.Duration `yaml:"timeout"`
}

// DifficultyConfig defines how world speed grows during a run.
type DifficultyConfig struct {
	Enabled         bool    `yaml:"enabled"`
	InitialLevel    float64 `yaml:"initial_level"`    // 0.0 = easy, 1.0 = hard
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // base speed gain at level 1.0
	SpeedStep       float64 `yaml:"speed_step"`       // added every StepEvery ticks
	StepEvery       int     `yaml:"step_every"`
	MaxSpeed        float64 `yaml:"max_speed"` // 0 = unbounded
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string to a preset. Empty input yields the
// empty preset, meaning "use the config file as is".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid runner config")

// Validate rejects configurations the simulation cannot run with.
func (c RunnerConfig) Validate() error {
	switch {
	case c.Canvas.Width <= 0 || c.Canvas.Height <= 0:
		return fmt.Errorf("%w: canvas must have positive size", ErrInvalidConfig)
	case c.Canvas.GroundY <= 0 || c.Canvas.GroundY > c.Canvas.Height:
		return fmt.Errorf("%w: ground_y %.1f outside canvas", ErrInvalidConfig, c.Canvas.GroundY)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("%w: player must have positive size", ErrInvalidConfig)
	case c.Player.Height > c.Canvas.GroundY:
		return fmt.Errorf("%w: player taller than the space above ground", ErrInvalidConfig)
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("%w: gravity must be positive", ErrInvalidConfig)
	case c.World.BaseSpeed <= 0:
		return fmt.Errorf("%w: base_speed must be positive", ErrInvalidConfig)
	case c.Obstacles.Weights.Ground < 0 || c.Obstacles.Weights.Flying < 0 || c.Obstacles.Weights.Beam < 0:
		return fmt.Errorf("%w: obstacle weights must not be negative", ErrInvalidConfig)
	case c.Obstacles.Weights.Total() == 0:
		return fmt.Errorf("%w: at least one obstacle weight must be positive", ErrInvalidConfig)
	case c.Particles.Decay <= 0:
		return fmt.Errorf("%w: particle decay must be positive", ErrInvalidConfig)
	case c.Milestones.First <= 0 || c.Milestones.Step <= 0:
		return fmt.Errorf("%w: milestones must be positive", ErrInvalidConfig)
	}
	return nil
}
