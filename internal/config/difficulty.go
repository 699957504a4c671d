package config

import "math"

// DifficultyManager calculates world speed from the difficulty settings.
//
// A run starts at a base speed raised by the initial level, and gains a fixed
// step every StepEvery ticks while progression is enabled.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether speed progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.StepEvery > 0 && d.cfg.SpeedStep > 0
}

// StartSpeed returns the world speed at the beginning of a run.
func (d *DifficultyManager) StartSpeed(baseSpeed float64) float64 {
	return d.limit(baseSpeed * (1.0 + d.initialLevel*d.cfg.SpeedMultiplier))
}

// Advance returns the world speed after the tick that produced score.
// Speed only ever grows; it never exceeds MaxSpeed when one is set.
func (d *DifficultyManager) Advance(speed float64, score int) float64 {
	if !d.IsEnabled() || score <= 0 || score%d.cfg.StepEvery != 0 {
		return speed
	}
	next := d.limit(speed + d.cfg.SpeedStep)
	return math.Max(speed, next)
}

// SpeedAt returns the speed a run reaches at the given score, assuming it
// started from baseSpeed.
func (d *DifficultyManager) SpeedAt(baseSpeed float64, score int) float64 {
	speed := d.StartSpeed(baseSpeed)
	if !d.IsEnabled() {
		return speed
	}
	steps := score / d.cfg.StepEvery
	return d.limit(speed + float64(steps)*d.cfg.SpeedStep)
}

func (d *DifficultyManager) limit(speed float64) float64 {
	if d.cfg.MaxSpeed > 0 && speed > d.cfg.MaxSpeed {
		return d.cfg.MaxSpeed
	}
	return speed
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
