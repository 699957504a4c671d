package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDifficultyManager_StepsEveryHundredTicks(t *testing.T) {
	d := NewDifficultyManager(DefaultRunnerConfig().Difficulty)

	speed := d.StartSpeed(7)
	assert.Equal(t, 7.0, speed)

	for score := 1; score <= 1000; score++ {
		next := d.Advance(speed, score)
		if score%100 == 0 {
			assert.InDelta(t, speed+0.1, next, 1e-9, "score %d should step speed", score)
		} else {
			assert.Equal(t, speed, next, "score %d should not change speed", score)
		}
		speed = next
	}

	assert.InDelta(t, 8.0, speed, 1e-9)
	assert.InDelta(t, d.SpeedAt(7, 1000), speed, 1e-9)
}

func TestDifficultyManager_InitialLevelRaisesStartSpeed(t *testing.T) {
	cfg := DefaultRunnerConfig().Difficulty
	cfg.InitialLevel = 1.0
	d := NewDifficultyManager(cfg)

	assert.InDelta(t, 10.5, d.StartSpeed(7), 1e-9)

	cfg.InitialLevel = 5 // clamped to 1.0
	assert.InDelta(t, 10.5, NewDifficultyManager(cfg).StartSpeed(7), 1e-9)
}

func TestDifficultyManager_Disabled(t *testing.T) {
	cfg := DefaultRunnerConfig().Difficulty
	cfg.Enabled = false
	d := NewDifficultyManager(cfg)

	assert.False(t, d.IsEnabled())
	assert.Equal(t, 7.0, d.Advance(7, 100))
	assert.Equal(t, 7.0, d.SpeedAt(7, 5000))
}

func TestDifficultyManager_MaxSpeedNeverDecreases(t *testing.T) {
	cfg := DefaultRunnerConfig().Difficulty
	cfg.MaxSpeed = 7.25
	d := NewDifficultyManager(cfg)

	speed := d.Advance(7, 100)
	speed = d.Advance(speed, 200)
	speed = d.Advance(speed, 300)
	assert.Equal(t, 7.25, speed)

	// Already above the cap: the speed must not drop.
	assert.Equal(t, 9.0, d.Advance(9, 400))
}
