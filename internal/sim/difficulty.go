package sim

// updateDifficulty is a monotonic ratchet: every RampEvery seconds of match
// time the global multiplier rises, the spawn interval shrinks toward its
// floor and the enemy cap grows toward its ceiling. Nothing here ever moves
// back down within a match.
func (m *Match) updateDifficulty() {
	cfg := m.Cfg
	if cfg.RampEvery <= 0 {
		return
	}

	steps := int(m.Elapsed / cfg.RampEvery)
	for m.rampSteps < steps {
		m.rampSteps++

		m.Difficulty += cfg.RampDifficulty
		m.spawnEvery = maxf(cfg.MinSpawnEvery, m.spawnEvery*cfg.RampSpawnFactor)

		m.maxEnemies += cfg.MaxEnemiesStep
		if m.maxEnemies > cfg.MaxEnemiesCap {
			m.maxEnemies = cfg.MaxEnemiesCap
		}
	}
}
