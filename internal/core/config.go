package core

// RuntimeConfig contains configuration passed to a frontend at startup.
// The runner simulates on a fixed logical canvas; ScreenW/ScreenH describe
// the physical surface (terminal cells or window pixels) it is mapped onto.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters or pixels
	ScreenH  int   // Screen height in characters or pixels
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}
