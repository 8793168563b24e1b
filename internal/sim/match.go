package sim

import (
	"math/rand"

	"breach-lab/internal/jobs"
	"breach-lab/internal/shared/input"
)

type Phase int

const (
	PhaseMapSelect Phase = iota
	PhaseMenu
	PhasePlaying
	PhasePaused
	PhaseLevelUp
	PhaseEvolution
	PhaseGameOver
	PhaseVictory
)

func (p Phase) Terminal() bool { return p == PhaseGameOver || p == PhaseVictory }

// maxTickDt caps a single tick so a stalled frame cannot cause a catch-up
// jump through the simulation.
const maxTickDt = float32(0.1)

// Match owns one play-through: the entity collections, the schedulers and the
// phase machine. All mutation happens inside Tick on the caller's goroutine;
// the movement-intent pool only ever works on immutable per-tick snapshots.
type Match struct {
	W, H  float32
	Cfg   Config
	Level Datacenter
	Phase Phase

	Player      Player
	Enemies     []Enemy
	Projectiles []Projectile
	Orbs        []DataOrb
	Particles   []Particle
	Numbers     []DamageNumber

	Elapsed    float32
	Difficulty float32
	spawnTimer float32
	spawnEvery float32
	maxEnemies int
	rampSteps  int

	Choice ChoiceState
	Stats  MatchStats

	// worm splits queued during the damage pass, flushed by cleanup so the
	// enemy slice is never appended to while it is being iterated
	pendingSplits []Enemy

	// set once when the match reaches a terminal phase
	FinalScore int
	Award      int

	// Perm is the meta-progression snapshot the next player is built from.
	Perm PermanentUpgrades

	inbox []Msg
	held  input.State

	rng      *rand.Rand
	rngSeed  int64
	rngCalls uint64

	nextID int

	aiPool    *jobs.IntentPool
	aiTick    uint64
	aiPending map[uint64]jobs.IntentRequest
	aiReady   map[uint64]jobs.IntentResult
}

func NewMatch(w, h float32, perm PermanentUpgrades, seed int64) *Match {
	if seed == 0 {
		seed = 1
	}
	m := &Match{
		W: w, H: h,
		Cfg:   DefaultConfig(),
		Level: Datacenters[0],
		Phase: PhaseMapSelect,

		Enemies:     make([]Enemy, 0, 256),
		Projectiles: make([]Projectile, 0, 256),
		Orbs:        make([]DataOrb, 0, 256),
		Particles:   make([]Particle, 0, 256),
		Numbers:     make([]DamageNumber, 0, 64),

		Perm:    perm,
		rngSeed: seed,

		aiPending: make(map[uint64]jobs.IntentRequest, 8),
		aiReady:   make(map[uint64]jobs.IntentResult, 8),
	}
	m.aiPool = newIntentPool()
	m.ensureRNG()
	return m
}

// Reset returns to map selection, keeping world size, config and the
// permanent-upgrade snapshot.
func (m *Match) Reset() {
	if m.aiPool != nil {
		m.aiPool.Close()
	}
	*m = *NewMatch(m.W, m.H, m.Perm, m.rngSeed)
}

func (m *Match) Close() {
	if m.aiPool != nil {
		m.aiPool.Close()
		m.aiPool = nil
	}
}

func (m *Match) Enqueue(msg Msg) {
	m.inbox = append(m.inbox, msg)
}

// Tick advances the simulation by dt seconds. Outside PLAYING only messages
// are processed: pause and choice states suspend match time entirely, so
// neither duration nor weapon cooldowns accrue while suspended.
func (m *Match) Tick(dt float32) {
	for _, msg := range m.inbox {
		m.applyMsg(msg)
	}
	m.inbox = m.inbox[:0]

	if m.Phase != PhasePlaying {
		return
	}
	if dt <= 0 {
		return
	}
	if dt > maxTickDt {
		dt = maxTickDt
	}

	m.Elapsed += dt

	m.updateDifficulty()
	m.applyHeldInput(dt)
	m.updateWeapons(dt)
	m.updateSpawning(dt)

	m.drainIntentResults()
	intents := m.consumeIntentsForTick(m.aiTick)
	m.updateEnemies(dt, intents)
	m.submitIntentJob(m.aiTick + 1)
	m.aiTick++

	m.updateProjectiles(dt)
	m.resolveProjectileHits()
	m.updateContactDamage(dt)
	m.updateOrbs(dt)
	m.updateFeedback(dt)

	m.cleanup()
	m.endOfTick()
}

func (m *Match) applyMsg(raw Msg) {
	switch msg := raw.(type) {
	case MsgInput:
		m.held = msg.Input

	case MsgSelectLevel:
		if m.Phase != PhaseMapSelect {
			return
		}
		if dc, ok := DatacenterByID(msg.ID); ok {
			m.Level = dc
			m.Phase = PhaseMenu
		}

	case MsgStart:
		if m.Phase == PhaseMenu {
			m.startMatch()
		}

	case MsgChoose:
		if m.Phase == PhaseLevelUp || m.Phase == PhaseEvolution {
			m.applyChoice(msg.Index)
		}

	case MsgTogglePause:
		switch m.Phase {
		case PhasePlaying:
			m.Phase = PhasePaused
		case PhasePaused:
			m.Phase = PhasePlaying
		}

	case MsgRestart:
		if m.Phase.Terminal() || m.Phase == PhasePaused {
			m.Reset()
		}
	}
}

func (m *Match) startMatch() {
	cfg := m.Cfg
	perm := m.Perm

	maxHP := cfg.PlayerMaxHP * (1 + 0.1*float32(perm.Memory))
	m.Player = Player{
		Pos:       Vec2{X: m.W / 2, Y: m.H / 2},
		R:         cfg.PlayerRadius,
		HP:        maxHP,
		MaxHP:     maxHP,
		MoveSpeed: cfg.PlayerSpeed * (1 + 0.1*float32(perm.Cooling)),
		Bandwidth: 1,
		Level:     1,
		XPToNext:  cfg.XPToNext(1),
		Perm:      perm,
	}
	m.Player.Weapons = []Weapon{m.newWeapon(StartingWeapon)}

	m.Enemies = m.Enemies[:0]
	m.Projectiles = m.Projectiles[:0]
	m.Orbs = m.Orbs[:0]
	m.Particles = m.Particles[:0]
	m.Numbers = m.Numbers[:0]

	m.Elapsed = 0
	m.Difficulty = 1
	m.spawnTimer = 0
	m.spawnEvery = cfg.BaseSpawnEvery
	m.maxEnemies = cfg.BaseMaxEnemies
	m.rampSteps = 0

	m.Choice = ChoiceState{}
	m.Stats = MatchStats{}
	m.FinalScore = 0
	m.Award = 0
	m.aiTick = 0
	clear(m.aiPending)
	clear(m.aiReady)

	m.Phase = PhasePlaying
}

func (m *Match) applyHeldInput(dt float32) {
	var dir Vec2
	if m.held.Up {
		dir.Y -= 1
	}
	if m.held.Down {
		dir.Y += 1
	}
	if m.held.Left {
		dir.X -= 1
	}
	if m.held.Right {
		dir.X += 1
	}
	if dir.X == 0 && dir.Y == 0 {
		return
	}

	speed := m.Player.MoveSpeed * (1 + m.passiveBonus(PassiveKernelBoost))
	m.Player.Pos = m.Player.Pos.Add(dir.Norm().Mul(speed * dt))
	m.Player.Pos.X = clamp(m.Player.Pos.X, 0, m.W)
	m.Player.Pos.Y = clamp(m.Player.Pos.Y, 0, m.H)
}

// endOfTick resolves the terminal checks and opens any queued choice state.
// Defeat wins a tie with the survival timer.
func (m *Match) endOfTick() {
	if m.Player.HP <= 0 {
		m.finish(false)
		return
	}
	if m.Elapsed >= m.Level.Duration {
		m.finish(true)
		return
	}
	if m.Choice.Pending > 0 {
		m.openChoice()
	}
}

func (m *Match) finish(victory bool) {
	score := int(m.Stats.XPCollected) + 10*int(m.Elapsed)
	m.FinalScore = score

	if victory {
		m.Award = score + m.Stats.Kills*10 + m.Player.Level*100
		m.Phase = PhaseVictory
		return
	}
	m.Award = int(float64(score+m.Stats.Kills*5) * 0.5)
	m.Phase = PhaseGameOver
}

func (m *Match) nextEntityID() int {
	m.nextID++
	return m.nextID
}
