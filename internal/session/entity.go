package session

// Kind distinguishes the two spawnable entities.
type Kind int

const (
	Benign Kind = iota
	Hostile
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Benign:
		return "benign"
	case Hostile:
		return "hostile"
	default:
		return "unknown"
	}
}

// Entity is one entry of the weighted draw pool.
type Entity struct {
	Kind       Kind
	ScoreDelta int
	Burst      EffectKind // particle effect played when it is whacked
}

// Mole is a spawned entity sitting in a slot.
type Mole struct {
	ID        uint64
	Kind      Kind
	Slot      int
	SpawnedAt float64
	ExpiresAt float64
}

// buildEntityPool expands the configured weights into a flat draw pool, so a uniform
// pick from it yields the hostile:benign ratio exactly.
func buildEntityPool(s Settings) []Entity {
	pool := make([]Entity, 0, s.HostileWeight+s.BenignWeight)
	for i := 0; i < s.HostileWeight; i++ {
		pool = append(pool, Entity{Kind: Hostile, ScoreDelta: s.HostileDelta, Burst: EffectBurstBad})
	}
	for i := 0; i < s.BenignWeight; i++ {
		pool = append(pool, Entity{Kind: Benign, ScoreDelta: s.BenignDelta, Burst: EffectBurstGood})
	}
	return pool
}
