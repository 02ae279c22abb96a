package session

// EffectKind identifies a sound or particle request.
type EffectKind int

const (
	EffectHitSound EffectKind = iota
	EffectBurstGood
	EffectBurstBad
	EffectMusicStart
	EffectMusicStop
)

// String returns the effect name.
func (e EffectKind) String() string {
	switch e {
	case EffectHitSound:
		return "hit-sound"
	case EffectBurstGood:
		return "burst-good"
	case EffectBurstBad:
		return "burst-bad"
	case EffectMusicStart:
		return "music-start"
	case EffectMusicStop:
		return "music-stop"
	default:
		return "unknown"
	}
}

// NoSlot marks effects that are not tied to a hole.
const NoSlot = -1

// Effect is a fire-and-forget request to the host.
type Effect struct {
	Kind EffectKind
	Slot int
}

// DespawnReason tells the host why a mole left its slot.
type DespawnReason int

const (
	DespawnExpired DespawnReason = iota
	DespawnWhacked
	DespawnCleared // the run ended while it was up
)

// String returns the reason name.
func (r DespawnReason) String() string {
	switch r {
	case DespawnExpired:
		return "expired"
	case DespawnWhacked:
		return "whacked"
	case DespawnCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Host is what a rendering backend provides to the controller.
// Every call is a notification; the controller never waits on or checks a result.
type Host interface {
	SpawnMole(m Mole)
	DespawnMole(m Mole, reason DespawnReason)
	PlayEffect(e Effect)
	// ShowCountdown displays a countdown value; an empty string hides it.
	ShowCountdown(text string)
	StateChanged(from, to State)
}

// NopHost ignores every request.
type NopHost struct{}

func (NopHost) SpawnMole(Mole)                  {}
func (NopHost) DespawnMole(Mole, DespawnReason) {}
func (NopHost) PlayEffect(Effect)               {}
func (NopHost) ShowCountdown(string)            {}
func (NopHost) StateChanged(State, State)       {}

// MultiHost forwards every request to each host in order.
type MultiHost []Host

func (m MultiHost) SpawnMole(mole Mole) {
	for _, h := range m {
		h.SpawnMole(mole)
	}
}

func (m MultiHost) DespawnMole(mole Mole, reason DespawnReason) {
	for _, h := range m {
		h.DespawnMole(mole, reason)
	}
}

func (m MultiHost) PlayEffect(e Effect) {
	for _, h := range m {
		h.PlayEffect(e)
	}
}

func (m MultiHost) ShowCountdown(text string) {
	for _, h := range m {
		h.ShowCountdown(text)
	}
}

func (m MultiHost) StateChanged(from, to State) {
	for _, h := range m {
		h.StateChanged(from, to)
	}
}
