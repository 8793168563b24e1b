package sim

import "testing"

// newTestMatch returns a match already in PLAYING with a fixed seed.
func newTestMatch(t *testing.T, seed int64) *Match {
	t.Helper()

	m := NewMatch(2000, 2000, PermanentUpgrades{}, seed)
	m.Enqueue(MsgSelectLevel{ID: Datacenters[0].ID})
	m.Enqueue(MsgStart{})
	m.Tick(0)

	if m.Phase != PhasePlaying {
		t.Fatalf("match did not start: phase=%d", m.Phase)
	}
	return m
}

func TestMatchTickDeterministicSmoke(t *testing.T) {
	m1 := newTestMatch(t, 42)
	m2 := newTestMatch(t, 42)
	defer m1.Close()
	defer m2.Close()

	const (
		steps = 600
		dt    = float32(1.0 / 60.0)
	)

	for range steps {
		m1.Enqueue(MsgInput{})
		m2.Enqueue(MsgInput{})
		m1.Tick(dt)
		m2.Tick(dt)
	}

	wantTime := float32(steps) * dt
	if !approxEqual(m1.Elapsed, wantTime) {
		t.Fatalf("match did not advance expected time: got %.6f want %.6f", m1.Elapsed, wantTime)
	}

	assertMatchEquivalent(t, m1, m2)
	if len(m1.Enemies) == 0 {
		t.Fatal("smoke check failed: expected spawned enemies after ticking")
	}
}

func TestPauseAndChoiceSuspendMatchTime(t *testing.T) {
	m := newTestMatch(t, 7)
	defer m.Close()

	const dt = float32(1.0 / 60.0)
	for range 60 {
		m.Tick(dt)
	}
	frozen := m.Elapsed

	m.Enqueue(MsgTogglePause{})
	for range 120 {
		m.Tick(dt)
	}
	if m.Phase != PhasePaused {
		t.Fatalf("expected paused phase, got %d", m.Phase)
	}
	if m.Elapsed != frozen {
		t.Fatalf("paused match accrued time: got %.6f want %.6f", m.Elapsed, frozen)
	}

	m.Enqueue(MsgTogglePause{})
	m.Tick(dt)
	if m.Phase != PhasePlaying {
		t.Fatalf("expected playing phase after resume, got %d", m.Phase)
	}
	if !(m.Elapsed > frozen) {
		t.Fatalf("resumed match did not advance: got %.6f frozen %.6f", m.Elapsed, frozen)
	}

	// A pending level-up interrupts the same way.
	m.Choice.Pending = 1
	m.Tick(dt)
	if m.Phase != PhaseLevelUp {
		t.Fatalf("expected level-up phase, got %d", m.Phase)
	}
	frozen = m.Elapsed
	for range 60 {
		m.Tick(dt)
	}
	if m.Elapsed != frozen {
		t.Fatalf("choice state accrued time: got %.6f want %.6f", m.Elapsed, frozen)
	}

	m.Enqueue(MsgChoose{Index: 0})
	m.Tick(0)
	if m.Phase != PhasePlaying {
		t.Fatalf("expected playing phase after choice, got %d", m.Phase)
	}
	if m.Choice.Pending != 0 {
		t.Fatalf("pending levels not consumed: %d", m.Choice.Pending)
	}
}

func TestVictoryAtSurvivalDuration(t *testing.T) {
	m := newTestMatch(t, 3)
	defer m.Close()
	m.Level.Duration = 1

	const dt = float32(1.0 / 60.0)
	for range 70 {
		m.Tick(dt)
	}

	if m.Phase != PhaseVictory {
		t.Fatalf("expected victory phase, got %d", m.Phase)
	}

	// score = collected XP + 10 per survived second; no kills, level 1
	wantScore := 10
	if m.FinalScore != wantScore {
		t.Fatalf("final score mismatch: got %d want %d", m.FinalScore, wantScore)
	}
	wantAward := wantScore + 0*10 + 1*100
	if m.Award != wantAward {
		t.Fatalf("victory award mismatch: got %d want %d", m.Award, wantAward)
	}
}

func TestDefeatAwardHalvesScore(t *testing.T) {
	m := newTestMatch(t, 3)
	defer m.Close()

	m.Elapsed = 10
	m.Stats.XPCollected = 30
	m.Stats.Kills = 4
	m.Player.HP = 0

	m.Tick(0.001)

	if m.Phase != PhaseGameOver {
		t.Fatalf("expected game over phase, got %d", m.Phase)
	}
	wantScore := 30 + 10*10
	if m.FinalScore != wantScore {
		t.Fatalf("final score mismatch: got %d want %d", m.FinalScore, wantScore)
	}
	wantAward := int(float64(wantScore+4*5) * 0.5)
	if m.Award != wantAward {
		t.Fatalf("defeat award mismatch: got %d want %d", m.Award, wantAward)
	}
}

func TestRestartReturnsToMapSelect(t *testing.T) {
	m := newTestMatch(t, 5)
	defer m.Close()

	m.Player.HP = 0
	m.Tick(0.001)
	if !m.Phase.Terminal() {
		t.Fatalf("expected terminal phase, got %d", m.Phase)
	}

	m.Enqueue(MsgRestart{})
	m.Tick(0)

	if m.Phase != PhaseMapSelect {
		t.Fatalf("expected map select after restart, got %d", m.Phase)
	}
	if m.Elapsed != 0 || m.Stats.Kills != 0 {
		t.Fatalf("restart did not clear match state: elapsed=%.3f kills=%d", m.Elapsed, m.Stats.Kills)
	}
}

func TestStartAppliesPermanentUpgrades(t *testing.T) {
	perm := PermanentUpgrades{Processing: 1, Memory: 2, Cooling: 1}
	m := NewMatch(2000, 2000, perm, 11)
	defer m.Close()

	m.Enqueue(MsgSelectLevel{ID: Datacenters[0].ID})
	m.Enqueue(MsgStart{})
	m.Tick(0)

	if !approxEqual(m.Player.MaxHP, 120) {
		t.Fatalf("memory upgrade not applied: maxHP=%.3f", m.Player.MaxHP)
	}
	if !approxEqual(m.Player.MoveSpeed, 242) {
		t.Fatalf("cooling upgrade not applied: speed=%.3f", m.Player.MoveSpeed)
	}
	if len(m.Player.Weapons) != 1 {
		t.Fatalf("expected one starting weapon, got %d", len(m.Player.Weapons))
	}
	if !approxEqual(m.Player.Weapons[0].Damage, 12*1.1) {
		t.Fatalf("processing upgrade not applied: damage=%.3f", m.Player.Weapons[0].Damage)
	}
}

func assertMatchEquivalent(t *testing.T, a, b *Match) {
	t.Helper()

	if !approxEqual(a.Elapsed, b.Elapsed) {
		t.Fatalf("time mismatch: a=%.6f b=%.6f", a.Elapsed, b.Elapsed)
	}
	if a.Phase != b.Phase {
		t.Fatalf("phase mismatch: a=%d b=%d", a.Phase, b.Phase)
	}
	if !approxEqual(a.Difficulty, b.Difficulty) {
		t.Fatalf("difficulty mismatch: a=%.6f b=%.6f", a.Difficulty, b.Difficulty)
	}

	if !approxEqual(a.Player.Pos.X, b.Player.Pos.X) || !approxEqual(a.Player.Pos.Y, b.Player.Pos.Y) {
		t.Fatalf("player position mismatch: a=(%.6f, %.6f) b=(%.6f, %.6f)",
			a.Player.Pos.X, a.Player.Pos.Y, b.Player.Pos.X, b.Player.Pos.Y)
	}
	if !approxEqual(a.Player.HP, b.Player.HP) {
		t.Fatalf("player hp mismatch: a=%.6f b=%.6f", a.Player.HP, b.Player.HP)
	}
	if a.Player.Level != b.Player.Level {
		t.Fatalf("player level mismatch: a=%d b=%d", a.Player.Level, b.Player.Level)
	}
	if !approxEqual(a.Player.XP, b.Player.XP) {
		t.Fatalf("player xp mismatch: a=%.6f b=%.6f", a.Player.XP, b.Player.XP)
	}

	if a.Stats.Kills != b.Stats.Kills {
		t.Fatalf("kills mismatch: a=%d b=%d", a.Stats.Kills, b.Stats.Kills)
	}
	if a.Stats.EnemiesSpawned != b.Stats.EnemiesSpawned {
		t.Fatalf("spawned mismatch: a=%d b=%d", a.Stats.EnemiesSpawned, b.Stats.EnemiesSpawned)
	}
	if !approxEqual(a.Stats.DamageTaken, b.Stats.DamageTaken) {
		t.Fatalf("damage mismatch: a=%.6f b=%.6f", a.Stats.DamageTaken, b.Stats.DamageTaken)
	}

	if len(a.Enemies) != len(b.Enemies) {
		t.Fatalf("enemy count mismatch: a=%d b=%d", len(a.Enemies), len(b.Enemies))
	}
	for i := range a.Enemies {
		ea := a.Enemies[i]
		eb := b.Enemies[i]
		if ea.Kind != eb.Kind {
			t.Fatalf("enemy[%d] kind mismatch: a=%d b=%d", i, ea.Kind, eb.Kind)
		}
		if !approxEqual(ea.Pos.X, eb.Pos.X) || !approxEqual(ea.Pos.Y, eb.Pos.Y) {
			t.Fatalf("enemy[%d] pos mismatch: a=(%.6f, %.6f) b=(%.6f, %.6f)",
				i, ea.Pos.X, ea.Pos.Y, eb.Pos.X, eb.Pos.Y)
		}
		if !approxEqual(ea.HP, eb.HP) {
			t.Fatalf("enemy[%d] hp mismatch: a=%.6f b=%.6f", i, ea.HP, eb.HP)
		}
	}

	if len(a.Orbs) != len(b.Orbs) {
		t.Fatalf("orb count mismatch: a=%d b=%d", len(a.Orbs), len(b.Orbs))
	}
	for i := range a.Orbs {
		oa := a.Orbs[i]
		ob := b.Orbs[i]
		if !approxEqual(oa.Pos.X, ob.Pos.X) || !approxEqual(oa.Pos.Y, ob.Pos.Y) {
			t.Fatalf("orb[%d] pos mismatch: a=(%.6f, %.6f) b=(%.6f, %.6f)",
				i, oa.Pos.X, oa.Pos.Y, ob.Pos.X, ob.Pos.Y)
		}
		if !approxEqual(oa.Value, ob.Value) {
			t.Fatalf("orb[%d] value mismatch: a=%.6f b=%.6f", i, oa.Value, ob.Value)
		}
	}

	if len(a.Projectiles) != len(b.Projectiles) {
		t.Fatalf("projectile count mismatch: a=%d b=%d", len(a.Projectiles), len(b.Projectiles))
	}
	if a.rngCalls != b.rngCalls {
		t.Fatalf("rng call count mismatch: a=%d b=%d", a.rngCalls, b.rngCalls)
	}
}

func approxEqual(a, b float32) bool {
	const eps = 1e-4
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}
