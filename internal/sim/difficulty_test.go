package sim

import "testing"

func TestDifficultyRampAfterNinetySeconds(t *testing.T) {
	m := newTestMatch(t, 1)
	defer m.Close()

	m.Elapsed = 90
	m.updateDifficulty()

	if !approxEqual(m.Difficulty, 1.9) {
		t.Fatalf("difficulty mismatch: got %.4f want 1.9", m.Difficulty)
	}
	want := float32(2.0) * 0.85 * 0.85 * 0.85
	if !approxEqual(m.spawnEvery, want) {
		t.Fatalf("spawn interval mismatch: got %.5f want %.5f", m.spawnEvery, want)
	}
	if m.maxEnemies != 50+3*15 {
		t.Fatalf("enemy cap mismatch: got %d want %d", m.maxEnemies, 50+3*15)
	}
}

func TestDifficultyIsMonotonic(t *testing.T) {
	m := newTestMatch(t, 1)
	defer m.Close()

	m.Elapsed = 90
	m.updateDifficulty()
	diff, every, maxN := m.Difficulty, m.spawnEvery, m.maxEnemies

	// re-running at the same elapsed time must not ratchet again
	m.updateDifficulty()
	if m.Difficulty != diff || m.spawnEvery != every || m.maxEnemies != maxN {
		t.Fatalf("ratchet moved without time passing: diff=%.4f every=%.5f cap=%d",
			m.Difficulty, m.spawnEvery, m.maxEnemies)
	}
}

func TestDifficultyRespectsFloorsAndCeilings(t *testing.T) {
	m := newTestMatch(t, 1)
	defer m.Close()

	m.Elapsed = 3000
	m.updateDifficulty()

	if m.spawnEvery != m.Cfg.MinSpawnEvery {
		t.Fatalf("spawn interval passed its floor: got %.5f want %.5f", m.spawnEvery, m.Cfg.MinSpawnEvery)
	}
	if m.maxEnemies != m.Cfg.MaxEnemiesCap {
		t.Fatalf("enemy cap passed its ceiling: got %d want %d", m.maxEnemies, m.Cfg.MaxEnemiesCap)
	}
}
