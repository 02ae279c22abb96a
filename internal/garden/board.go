package garden

import (
	"github.com/vovakirdan/tui-whackamole/internal/overlay"
	"github.com/vovakirdan/tui-whackamole/internal/session"
)

// Animation timings, in seconds.
const (
	riseTime        = 0.15
	fallTime        = 0.15
	whackTime       = 0.25
	burstTime       = 0.4
	noteTime        = 0.3
	missTime        = 0.2
	restartShowTime = 0.5
)

type spriteMode int

const (
	spriteRising spriteMode = iota
	spriteUp
	spriteFalling
	spriteWhacked
)

type sprite struct {
	kind session.Kind
	mode spriteMode
	age  float64
}

type burst struct {
	slot int
	good bool
	age  float64
}

// board is the garden's session host. It keeps what is on screen: sprites in the
// holes, short-lived effects and the countdown text.
type board struct {
	overlay *overlay.Overlay

	sprites   map[int]*sprite
	bursts    []burst
	misses    map[int]float64
	noteAge   float64
	noteOn    bool
	music     bool
	countdown string

	finished    bool
	finishedFor float64
}

func newBoard(o *overlay.Overlay) *board {
	return &board{
		overlay: o,
		sprites: make(map[int]*sprite),
		misses:  make(map[int]float64),
	}
}

func (b *board) SpawnMole(m session.Mole) {
	b.sprites[m.Slot] = &sprite{kind: m.Kind, mode: spriteRising}
}

func (b *board) DespawnMole(m session.Mole, reason session.DespawnReason) {
	sp, ok := b.sprites[m.Slot]
	if !ok {
		return
	}
	sp.age = 0
	if reason == session.DespawnWhacked {
		sp.mode = spriteWhacked
	} else {
		sp.mode = spriteFalling
	}
}

func (b *board) PlayEffect(e session.Effect) {
	switch e.Kind {
	case session.EffectHitSound:
		b.noteOn = true
		b.noteAge = 0
	case session.EffectBurstGood, session.EffectBurstBad:
		b.bursts = append(b.bursts, burst{slot: e.Slot, good: e.Kind == session.EffectBurstGood})
	case session.EffectMusicStart:
		b.music = true
	case session.EffectMusicStop:
		b.music = false
	}
}

func (b *board) ShowCountdown(text string) {
	b.countdown = text
}

func (b *board) StateChanged(_, to session.State) {
	switch to {
	case session.Placing:
		b.overlay.ShowPlacePrompt(false)
		b.overlay.ShowStats(true)
	case session.Finished:
		b.finished = true
		b.finishedFor = 0
	case session.Restarting:
		b.finished = false
		b.sprites = make(map[int]*sprite)
		b.bursts = b.bursts[:0]
	}
}

func (b *board) miss(slot int) {
	b.misses[slot] = 0
}

func (b *board) restartVisible() bool {
	return b.finished && b.finishedFor >= restartShowTime
}

// update advances every animation by dt.
func (b *board) update(dt float64) {
	for slot, sp := range b.sprites {
		sp.age += dt
		switch sp.mode {
		case spriteRising:
			if sp.age >= riseTime {
				sp.mode = spriteUp
			}
		case spriteFalling:
			if sp.age >= fallTime {
				delete(b.sprites, slot)
			}
		case spriteWhacked:
			if sp.age >= whackTime {
				delete(b.sprites, slot)
			}
		}
	}

	kept := b.bursts[:0]
	for _, bu := range b.bursts {
		bu.age += dt
		if bu.age < burstTime {
			kept = append(kept, bu)
		}
	}
	b.bursts = kept

	for slot, age := range b.misses {
		if age+dt >= missTime {
			delete(b.misses, slot)
		} else {
			b.misses[slot] = age + dt
		}
	}

	if b.noteOn {
		b.noteAge += dt
		if b.noteAge >= noteTime {
			b.noteOn = false
		}
	}

	if b.finished {
		b.finishedFor += dt
	}
}
