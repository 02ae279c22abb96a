package core

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second (default 60)
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

// FrameSeconds returns the simulated duration of one frame.
func (c RuntimeConfig) FrameSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState is what the platform needs to know about the game after each frame.
type GameState struct {
	Score       int
	SecondsLeft int
	Phase       string // session phase name, e.g. "running"
	GameOver    bool
	Paused      bool
}

// StepResult is returned by Game.Step after each frame.
type StepResult struct {
	State GameState
}

// RunSummary describes a finished run for the score history.
type RunSummary struct {
	Layout      string
	Score       int
	Spawned     int
	BenignHits  int
	HostileHits int
	Missed      int // moles that left on their own
	Duration    int // configured run length in seconds
}
