package session

// Rand is the randomness the controller needs. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// SpawnPool holds the slots still available in the current spawn cycle.
// A slot leaves the pool when something spawns in it; the pool is refilled with the
// full slot set once every slot has been used.
type SpawnPool struct {
	slots     int
	available []int
}

// NewSpawnPool creates a full pool of slots 0..slots-1.
func NewSpawnPool(slots int) *SpawnPool {
	p := &SpawnPool{slots: slots}
	p.Reset()
	return p
}

// Reset refills the pool with every slot, in order.
func (p *SpawnPool) Reset() {
	p.available = p.available[:0]
	for i := 0; i < p.slots; i++ {
		p.available = append(p.available, i)
	}
}

// Len returns how many slots are left in the current cycle.
func (p *SpawnPool) Len() int {
	return len(p.available)
}

// Slots returns the total slot count.
func (p *SpawnPool) Slots() int {
	return p.slots
}

// Contains reports whether slot is still in the current cycle.
func (p *SpawnPool) Contains(slot int) bool {
	for _, s := range p.available {
		if s == slot {
			return true
		}
	}
	return false
}

// Take removes and returns a random pool slot for which free returns true.
// An exhausted pool is refilled first. Slots that are not free stay in the pool.
func (p *SpawnPool) Take(rng Rand, free func(slot int) bool) (int, bool) {
	if p.slots == 0 {
		return 0, false
	}
	if len(p.available) == 0 {
		p.Reset()
	}

	candidates := make([]int, 0, len(p.available))
	for i, s := range p.available {
		if free(s) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}

	idx := candidates[rng.Intn(len(candidates))]
	slot := p.available[idx]
	p.available = append(p.available[:idx], p.available[idx+1:]...)
	return slot, true
}
