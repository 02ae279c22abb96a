package session

import (
	"io"
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-whackamole/internal/core"
)

// secondEpsilon absorbs float drift when many small frames add up to a second.
const secondEpsilon = 1e-9

// Stats counts what happened during the current run.
type Stats struct {
	Spawned     int
	BenignHits  int
	HostileHits int
	Escaped     int // moles that went back down unwhacked
}

// Option configures a Controller.
type Option func(*Controller)

// WithHost sets the rendering backend.
func WithHost(h Host) Option {
	return func(c *Controller) {
		if h != nil {
			c.host = h
		}
	}
}

// WithRand injects the random source used for slot, entity and interval picks.
func WithRand(r Rand) Option {
	return func(c *Controller) {
		if r != nil {
			c.rng = r
		}
	}
}

// WithSeed is shorthand for WithRand with a math/rand source.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// Controller owns all mutable session state.
// It is not safe for concurrent use; the host calls it from its frame loop.
type Controller struct {
	settings Settings
	host     Host
	rng      Rand
	logger   *log.Logger

	state     State
	anchor    core.Pose
	hasAnchor bool

	score            int
	secondsRemaining int
	elapsedRunTime   float64
	secondAcc        float64

	spawnMin      float64
	spawnMax      float64
	visible       float64
	nextSpawnTime float64

	countdownElapsed float64
	countdownText    string
	restartElapsed   float64

	pool     *SpawnPool
	entities []Entity
	schedule *Schedule
	active   []*Mole
	nextID   uint64
	stats    Stats
}

// NewController creates a session in the Idle state.
func NewController(s Settings, opts ...Option) *Controller {
	c := &Controller{
		settings: s,
		host:     NopHost{},
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:   log.New(io.Discard),
		state:    Idle,
		pool:     NewSpawnPool(s.Slots),
		entities: buildEntityPool(s),
		schedule: NewSchedule(s.Schedule),
		active:   make([]*Mole, core.Max(s.Slots, 0)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.reset()
	return c
}

// SetAnchor reports that the host has a surface anchor at pose.
func (c *Controller) SetAnchor(pose core.Pose) {
	c.anchor = pose
	c.hasAnchor = true
}

// ClearAnchor reports that surface tracking lost its anchor.
func (c *Controller) ClearAnchor() {
	c.hasAnchor = false
}

// Anchor returns the last reported anchor and whether it is valid.
func (c *Controller) Anchor() (core.Pose, bool) {
	return c.anchor, c.hasAnchor
}

// OnSurfaceConfirmed commits the play surface at the current anchor.
func (c *Controller) OnSurfaceConfirmed() {
	if c.state != Idle || !c.hasAnchor {
		return
	}
	c.logger.Debug("surface committed",
		"x", c.anchor.Position.X, "y", c.anchor.Position.Y, "z", c.anchor.Position.Z,
		"yaw", c.anchor.YawDegrees())
	c.setState(Placing)
}

// OnStartRequested starts the countdown. Only valid once the surface is placed.
func (c *Controller) OnStartRequested() {
	if c.state != Placing {
		return
	}
	c.enterCountdown()
}

// OnFinishAcknowledged dismisses the finished run and starts over.
func (c *Controller) OnFinishAcknowledged() {
	c.restart()
}

// OnRestartRequested starts over after a finished run.
func (c *Controller) OnRestartRequested() {
	c.restart()
}

// OnTick advances session time by dt seconds.
func (c *Controller) OnTick(dt float64) {
	if !(dt > 0) || math.IsInf(dt, 1) {
		return
	}
	// Each phase consumes what it needs and hands the rest to the next one.
	for dt > 0 {
		switch c.state {
		case CountingDown:
			dt = c.tickCountdown(dt)
		case Running:
			dt = c.tickRun(dt)
		case Restarting:
			dt = c.tickRestart(dt)
		default:
			return
		}
	}
}

// TrySpawn puts a new mole up when the spawn timer has elapsed. now is the host
// clock; mole expiry is measured on the same clock.
func (c *Controller) TrySpawn(now float64) {
	if c.state != Running {
		return
	}

	c.expire(now)

	if !(now > c.nextSpawnTime) {
		return
	}
	if len(c.entities) == 0 {
		return
	}

	slot, ok := c.pool.Take(c.rng, func(s int) bool { return c.active[s] == nil })
	if !ok {
		return
	}
	entity := c.entities[c.rng.Intn(len(c.entities))]

	c.nextID++
	mole := &Mole{
		ID:        c.nextID,
		Kind:      entity.Kind,
		Slot:      slot,
		SpawnedAt: now,
		ExpiresAt: now + c.visible,
	}
	c.active[slot] = mole
	c.stats.Spawned++
	c.host.SpawnMole(*mole)

	c.nextSpawnTime = now + c.spawnMin + c.rng.Float64()*(c.spawnMax-c.spawnMin)
}

// OnHit whacks the mole in slot if it is of the given kind.
// It reports whether the hit counted.
func (c *Controller) OnHit(kind Kind, slot int) bool {
	if c.state != Running || slot < 0 || slot >= len(c.active) {
		return false
	}
	mole := c.active[slot]
	if mole == nil || mole.Kind != kind {
		return false
	}

	entity := c.entityFor(kind)
	c.score += entity.ScoreDelta
	c.active[slot] = nil
	if kind == Hostile {
		c.stats.HostileHits++
	} else {
		c.stats.BenignHits++
	}

	c.host.DespawnMole(*mole, DespawnWhacked)
	c.host.PlayEffect(Effect{Kind: EffectHitSound, Slot: slot})
	c.host.PlayEffect(Effect{Kind: entity.Burst, Slot: slot})
	return true
}

// State returns the current lifecycle phase.
func (c *Controller) State() State { return c.state }

// Score returns the current score. It can be negative.
func (c *Controller) Score() int { return c.score }

// SecondsRemaining returns the whole seconds left in the run.
func (c *Controller) SecondsRemaining() int { return c.secondsRemaining }

// ElapsedRunTime returns seconds spent in Running since the run began.
func (c *Controller) ElapsedRunTime() float64 { return c.elapsedRunTime }

// SpawnInterval returns the current spawn interval range.
func (c *Controller) SpawnInterval() (float64, float64) { return c.spawnMin, c.spawnMax }

// VisibleDuration returns how long new moles stay up.
func (c *Controller) VisibleDuration() float64 { return c.visible }

// CountdownText returns the countdown value on display, or "".
func (c *Controller) CountdownText() string { return c.countdownText }

// Stats returns counters for the current run.
func (c *Controller) Stats() Stats { return c.stats }

// Settings returns the settings the session was built with.
func (c *Controller) Settings() Settings { return c.settings }

// DifficultyLevel returns how many difficulty steps have fired this run.
func (c *Controller) DifficultyLevel() int { return c.schedule.Applied() }

// Occupant returns the mole in slot, if any.
func (c *Controller) Occupant(slot int) (Mole, bool) {
	if slot < 0 || slot >= len(c.active) || c.active[slot] == nil {
		return Mole{}, false
	}
	return *c.active[slot], true
}

// ActiveMoles returns the moles currently up, ordered by slot.
func (c *Controller) ActiveMoles() []Mole {
	var moles []Mole
	for _, m := range c.active {
		if m != nil {
			moles = append(moles, *m)
		}
	}
	return moles
}

func (c *Controller) tickCountdown(dt float64) float64 {
	c.countdownElapsed += dt

	total := c.settings.CountdownLeadIn + float64(c.settings.CountdownFrom)*c.settings.CountdownStep
	if c.countdownElapsed >= total {
		leftover := c.countdownElapsed - total
		c.showCountdown("")
		c.begin()
		return leftover
	}

	text := ""
	if c.countdownElapsed >= c.settings.CountdownLeadIn {
		step := 0
		if c.settings.CountdownStep > 0 {
			step = int((c.countdownElapsed - c.settings.CountdownLeadIn) / c.settings.CountdownStep)
		}
		text = strconv.Itoa(c.settings.CountdownFrom - step)
	}
	c.showCountdown(text)
	return 0
}

func (c *Controller) tickRun(dt float64) float64 {
	c.elapsedRunTime += dt
	for _, step := range c.schedule.Due(c.elapsedRunTime) {
		c.applyStep(step)
	}

	c.secondAcc += dt
	for c.secondAcc >= 1-secondEpsilon && c.secondsRemaining > 0 {
		c.secondAcc--
		c.secondsRemaining--
	}
	if c.secondsRemaining <= 0 {
		c.secondsRemaining = 0
		c.finish()
	}
	return 0
}

func (c *Controller) tickRestart(dt float64) float64 {
	c.restartElapsed += dt
	if c.restartElapsed < c.settings.RestartDelay {
		return 0
	}
	leftover := c.restartElapsed - c.settings.RestartDelay
	c.enterCountdown()
	return leftover
}

func (c *Controller) applyStep(step DifficultyStep) {
	if step.SpawnMin > 0 {
		c.spawnMin = step.SpawnMin
	}
	if step.SpawnMax > 0 {
		c.spawnMax = step.SpawnMax
	}
	if c.spawnMax < c.spawnMin {
		c.spawnMax = c.spawnMin
	}
	if step.Visible > 0 {
		c.visible = step.Visible
	}
	c.logger.Debug("difficulty step",
		"at", step.At, "spawn_min", c.spawnMin, "spawn_max", c.spawnMax, "visible", c.visible)
}

func (c *Controller) enterCountdown() {
	c.countdownElapsed = 0
	c.countdownText = ""
	c.setState(CountingDown)
}

func (c *Controller) begin() {
	c.elapsedRunTime = 0
	c.secondAcc = 0
	c.nextSpawnTime = math.Inf(-1)
	c.setState(Running)
	c.host.PlayEffect(Effect{Kind: EffectMusicStart, Slot: NoSlot})
}

func (c *Controller) finish() {
	for slot, m := range c.active {
		if m == nil {
			continue
		}
		c.active[slot] = nil
		c.host.DespawnMole(*m, DespawnCleared)
	}
	c.setState(Finished)
	c.host.PlayEffect(Effect{Kind: EffectMusicStop, Slot: NoSlot})
	c.logger.Info("run finished", "score", c.score,
		"spawned", c.stats.Spawned, "benign_hits", c.stats.BenignHits, "hostile_hits", c.stats.HostileHits)
}

func (c *Controller) restart() {
	if c.state != Finished {
		return
	}
	c.reset()
	c.restartElapsed = 0
	c.setState(Restarting)
}

// reset restores everything a new run starts from. The state is left alone.
func (c *Controller) reset() {
	c.score = 0
	c.secondsRemaining = c.settings.Duration
	c.elapsedRunTime = 0
	c.secondAcc = 0
	c.spawnMin = c.settings.SpawnMin
	c.spawnMax = c.settings.SpawnMax
	c.visible = c.settings.Visible
	c.nextSpawnTime = math.Inf(-1)
	c.pool.Reset()
	c.schedule.Reset()
	c.stats = Stats{}
}

// expire frees slots whose mole has been up long enough.
func (c *Controller) expire(now float64) {
	for slot, m := range c.active {
		if m == nil || now < m.ExpiresAt {
			continue
		}
		c.active[slot] = nil
		c.stats.Escaped++
		c.host.DespawnMole(*m, DespawnExpired)
	}
}

func (c *Controller) entityFor(kind Kind) Entity {
	for _, e := range c.entities {
		if e.Kind == kind {
			return e
		}
	}
	if kind == Hostile {
		return Entity{Kind: Hostile, ScoreDelta: c.settings.HostileDelta, Burst: EffectBurstBad}
	}
	return Entity{Kind: Benign, ScoreDelta: c.settings.BenignDelta, Burst: EffectBurstGood}
}

func (c *Controller) showCountdown(text string) {
	if text == c.countdownText {
		return
	}
	c.countdownText = text
	c.host.ShowCountdown(text)
}

func (c *Controller) setState(to State) {
	from := c.state
	if from == to {
		return
	}
	c.state = to
	c.logger.Debug("state change", "from", from, "to", to)
	c.host.StateChanged(from, to)
}
