package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"breach-lab/internal/jobs"
)

const SnapshotVersion = 1

// Snapshot is the full persistable match state. Cosmetic feedback entities
// (particles, damage numbers) are transient and deliberately left out. The
// RNG is restored by replaying the recorded number of draws from the seed.
type Snapshot struct {
	Version int `json:"version"`

	W float32 `json:"w"`
	H float32 `json:"h"`

	Cfg     Config `json:"cfg"`
	LevelID string `json:"level_id"`
	Phase   Phase  `json:"phase"`

	Player      Player       `json:"player"`
	Enemies     []Enemy      `json:"enemies"`
	Projectiles []Projectile `json:"projectiles"`
	Orbs        []DataOrb    `json:"orbs"`

	Elapsed    float32 `json:"elapsed"`
	Difficulty float32 `json:"difficulty"`
	SpawnTimer float32 `json:"spawn_timer"`
	SpawnEvery float32 `json:"spawn_every"`
	MaxEnemies int     `json:"max_enemies"`
	RampSteps  int     `json:"ramp_steps"`

	Choice ChoiceState `json:"choice"`
	Stats  MatchStats  `json:"stats"`

	FinalScore int `json:"final_score"`
	Award      int `json:"award"`

	Perm PermanentUpgrades `json:"perm"`

	NextID int    `json:"next_id"`
	AITick uint64 `json:"ai_tick"`

	RNGSeed  int64  `json:"rng_seed"`
	RNGCalls uint64 `json:"rng_calls"`
}

func (m *Match) BuildSnapshot() Snapshot {
	enemies := make([]Enemy, len(m.Enemies))
	copy(enemies, m.Enemies)

	projectiles := make([]Projectile, len(m.Projectiles))
	copy(projectiles, m.Projectiles)

	orbs := make([]DataOrb, len(m.Orbs))
	copy(orbs, m.Orbs)

	return Snapshot{
		Version: SnapshotVersion,
		W:       m.W,
		H:       m.H,

		Cfg:     m.Cfg,
		LevelID: m.Level.ID,
		Phase:   m.Phase,

		Player:      m.Player,
		Enemies:     enemies,
		Projectiles: projectiles,
		Orbs:        orbs,

		Elapsed:    m.Elapsed,
		Difficulty: m.Difficulty,
		SpawnTimer: m.spawnTimer,
		SpawnEvery: m.spawnEvery,
		MaxEnemies: m.maxEnemies,
		RampSteps:  m.rampSteps,

		Choice: m.Choice,
		Stats:  m.Stats,

		FinalScore: m.FinalScore,
		Award:      m.Award,

		Perm: m.Perm,

		NextID: m.nextID,
		AITick: m.aiTick,

		RNGSeed:  m.rngSeed,
		RNGCalls: m.rngCalls,
	}
}

func (m *Match) ApplySnapshot(s Snapshot) error {
	if s.Version != SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version: got %d want %d", s.Version, SnapshotVersion)
	}
	if s.W <= 0 || s.H <= 0 {
		return fmt.Errorf("invalid world size in snapshot: w=%.3f h=%.3f", s.W, s.H)
	}

	m.W = s.W
	m.H = s.H
	m.Cfg = s.Cfg
	m.Level, _ = DatacenterByID(s.LevelID)
	m.Phase = s.Phase

	m.Player = s.Player
	m.Enemies = make([]Enemy, len(s.Enemies))
	copy(m.Enemies, s.Enemies)
	m.Projectiles = make([]Projectile, len(s.Projectiles))
	copy(m.Projectiles, s.Projectiles)
	m.Orbs = make([]DataOrb, len(s.Orbs))
	copy(m.Orbs, s.Orbs)
	m.Particles = m.Particles[:0]
	m.Numbers = m.Numbers[:0]
	m.pendingSplits = m.pendingSplits[:0]

	m.Elapsed = s.Elapsed
	m.Difficulty = s.Difficulty
	m.spawnTimer = s.SpawnTimer
	m.spawnEvery = s.SpawnEvery
	m.maxEnemies = s.MaxEnemies
	m.rampSteps = s.RampSteps

	m.Choice = s.Choice
	m.Stats = s.Stats

	m.FinalScore = s.FinalScore
	m.Award = s.Award

	m.Perm = s.Perm

	m.nextID = s.NextID
	m.aiTick = s.AITick

	m.rngSeed = s.RNGSeed
	if m.rngSeed == 0 {
		m.rngSeed = 1
	}
	m.rng = nil
	m.rngCalls = 0
	m.ensureRNG()
	for range s.RNGCalls {
		_ = m.randFloat32()
	}

	if m.aiPending == nil {
		m.aiPending = make(map[uint64]jobs.IntentRequest, 8)
	} else {
		clear(m.aiPending)
	}
	if m.aiReady == nil {
		m.aiReady = make(map[uint64]jobs.IntentResult, 8)
	} else {
		clear(m.aiReady)
	}
	if m.aiPool == nil {
		m.aiPool = newIntentPool()
	}

	return nil
}

func (m *Match) SaveSnapshot(path string) error {
	if path == "" {
		return fmt.Errorf("snapshot path is empty")
	}

	s := m.BuildSnapshot()
	blob, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure snapshot dir: %w", err)
		}
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, blob, 0o644); err != nil {
		return fmt.Errorf("write snapshot temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename snapshot temp file: %w", err)
	}

	return nil
}

func (m *Match) LoadSnapshot(path string) error {
	if path == "" {
		return fmt.Errorf("snapshot path is empty")
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read snapshot file: %w", err)
	}

	var s Snapshot
	if err := json.Unmarshal(blob, &s); err != nil {
		return fmt.Errorf("decode snapshot file: %w", err)
	}

	if err := m.ApplySnapshot(s); err != nil {
		return fmt.Errorf("apply snapshot: %w", err)
	}
	return nil
}
