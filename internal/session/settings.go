package session

// Settings holds everything a session needs to know up front.
type Settings struct {
	Duration int // run length in whole seconds
	Slots    int

	SpawnMin float64 // seconds between spawns, lower bound
	SpawnMax float64 // seconds between spawns, upper bound
	Visible  float64 // seconds a mole stays up

	BenignWeight  int
	HostileWeight int
	BenignDelta   int
	HostileDelta  int

	CountdownFrom   int     // first countdown value, counts down to 1
	CountdownStep   float64 // seconds each value is held
	CountdownLeadIn float64 // pause before the first value appears
	RestartDelay    float64 // seconds spent in Restarting

	Schedule []DifficultyStep
}

// DefaultSettings mirrors the reference game: 90 seconds, nine holes, a 2:8
// hostile to benign mix, harder at 30 s and again at 60 s.
func DefaultSettings() Settings {
	return Settings{
		Duration:        90,
		Slots:           9,
		SpawnMin:        0.4,
		SpawnMax:        0.8,
		Visible:         1.0,
		BenignWeight:    8,
		HostileWeight:   2,
		BenignDelta:     10,
		HostileDelta:    -50,
		CountdownFrom:   3,
		CountdownStep:   1.0,
		CountdownLeadIn: 0.5,
		RestartDelay:    0.25,
		Schedule: []DifficultyStep{
			{At: 30, SpawnMax: 0.6, Visible: 0.75},
			{At: 60, SpawnMax: 0.5, Visible: 0.5},
		},
	}
}
