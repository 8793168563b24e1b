package sim

// Spawn scheduling: the timer accrues every tick, but an enemy only appears
// when the live count is below the current cap. The cap check sits inside the
// drain loop so the count can never exceed the cap, even transiently.
func (m *Match) updateSpawning(dt float32) {
	m.spawnTimer += dt
	for m.spawnTimer >= m.spawnEvery {
		m.spawnTimer -= m.spawnEvery
		if len(m.Enemies) >= m.maxEnemies {
			continue
		}
		m.spawnEnemy()
	}
}

func (m *Match) spawnEnemy() {
	pos := m.spawnPoint()
	kind := m.pickSpawnKind()
	m.Enemies = append(m.Enemies, m.buildEnemy(kind, pos))
	m.Stats.EnemiesSpawned++
}

// spawnPoint picks one of the four play-area edges uniformly, then a uniform
// position along it, just outside the bounds.
func (m *Match) spawnPoint() Vec2 {
	margin := m.Cfg.SpawnEdgeMargin
	switch m.randIntn(4) {
	case 0: // top
		return Vec2{X: m.randFloat32() * m.W, Y: -margin}
	case 1: // bottom
		return Vec2{X: m.randFloat32() * m.W, Y: m.H + margin}
	case 2: // left
		return Vec2{X: -margin, Y: m.randFloat32() * m.H}
	default: // right
		return Vec2{X: m.W + margin, Y: m.randFloat32() * m.H}
	}
}

func (m *Match) pickSpawnKind() EnemyKind {
	total := m.totalSpawnWeight()
	if total <= 0 {
		return DefaultEnemyKind
	}
	return m.spawnKindForRoll(m.randFloat32() * total)
}

func (m *Match) totalSpawnWeight() float32 {
	var total float32
	for _, kind := range enemyOrder {
		total += m.spawnWeight(kind)
	}
	return total
}

// spawnWeight is the catalog weight times the level modifier, zero when the
// kind is not yet eligible at the current difficulty.
func (m *Match) spawnWeight(kind EnemyKind) float32 {
	def := enemyDefs[kind]
	if def.MinDifficulty > m.Difficulty {
		return 0
	}
	w := def.SpawnWeight * m.Level.weightModifier(kind)
	if w < 0 {
		return 0
	}
	return w
}

// spawnKindForRoll walks the catalog in fixed order subtracting weights until
// the roll is exhausted. Rolls are drawn from [0, totalSpawnWeight).
func (m *Match) spawnKindForRoll(roll float32) EnemyKind {
	for _, kind := range enemyOrder {
		roll -= m.spawnWeight(kind)
		if roll < 0 {
			return kind
		}
	}
	// float leftovers on the last subtraction
	return DefaultEnemyKind
}

// buildEnemy instantiates a kind at the current difficulty. Health, damage
// and XP scale linearly with the multiplier; speed and size only by its
// square root, so enemies get tougher much faster than they get quicker.
func (m *Match) buildEnemy(kind EnemyKind, pos Vec2) Enemy {
	def := EnemyDefFor(kind)
	diff := m.Difficulty
	if diff < 1 {
		diff = 1
	}
	soft := sqrtf(diff)

	hp := def.HP * diff
	return Enemy{
		ID:   m.nextEntityID(),
		Kind: kind,
		Pos:  pos,

		Speed: def.Speed * soft,
		R:     def.R * soft,

		HP:     hp,
		MaxHP:  hp,
		Damage: def.Damage * diff,

		XPValue:  def.XP * diff,
		CanSplit: def.Splits,
	}
}
