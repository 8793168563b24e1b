package sim

import "math"

func (m *Match) newWeapon(kind WeaponKind) Weapon {
	def := WeaponDefFor(kind)
	w := Weapon{
		Kind:      kind,
		Level:     1,
		Damage:    def.Damage * (1 + 0.1*float32(m.Perm.Processing)),
		Cooldown:  def.Cooldown,
		Range:     def.Range,
		ProjSpeed: def.ProjSpeed,
		ProjCount: def.ProjCount,
		Pierce:    def.Pierce,
	}
	if def.Policy == FireOrbitingShield {
		w.ShieldClocks = make(map[int]float32, 16)
	}
	return w
}

// effectiveCooldown folds the bandwidth multiplier and the overclock passive
// into a weapon's base cooldown.
func (m *Match) effectiveCooldown(w *Weapon) float32 {
	cd := w.Cooldown * (1 - m.passiveBonus(PassiveOverclock))
	if m.Player.Bandwidth > 0 {
		cd /= m.Player.Bandwidth
	}
	return maxf(0.05, cd)
}

func (m *Match) effectiveRange(w *Weapon) float32 {
	return w.Range * (1 + m.passiveBonus(PassiveLongRange))
}

func (m *Match) effectiveProjCount(w *Weapon) int {
	n := float32(w.ProjCount) * (1 + m.passiveBonus(PassiveMultithread))
	count := int(n + 0.5)
	if count < 1 {
		count = 1
	}
	return count
}

func (m *Match) updateWeapons(dt float32) {
	now := m.Elapsed
	for i := range m.Player.Weapons {
		w := &m.Player.Weapons[i]

		switch WeaponDefFor(w.Kind).Policy {
		case FireOrbitingShield:
			// Shield points are re-evaluated every tick; the cooldown only
			// gates per-enemy re-hits, never the rotation itself.
			m.updateOrbitingShield(w, dt)

		case FireAimedSingle:
			if now-w.LastFired < m.effectiveCooldown(w) {
				continue
			}
			if m.fireAimed(w) {
				w.LastFired = now
			}

		case FireSpread:
			if now-w.LastFired < m.effectiveCooldown(w) {
				continue
			}
			m.fireSpread(w)
			w.LastFired = now

		case FireAreaPulse:
			if now-w.LastFired < m.effectiveCooldown(w) {
				continue
			}
			m.firePulse(w)
			w.LastFired = now
		}
	}
}

// fireAimed shoots at the nearest enemy inside weapon range. Multiple
// projectiles fan out around the aim with small fixed offsets. Reports false
// when no target exists so the cooldown is not consumed.
func (m *Match) fireAimed(w *Weapon) bool {
	idx := m.nearestEnemy(m.Player.Pos, m.effectiveRange(w))
	if idx < 0 {
		return false
	}

	aim := angleOf(m.Enemies[idx].Pos.Sub(m.Player.Pos))
	count := m.effectiveProjCount(w)
	const step = 0.08
	for i := 0; i < count; i++ {
		off := step * (float32(i) - float32(count-1)/2)
		m.spawnProjectile(w, unitFromAngle(aim+off))
	}
	return true
}

// fireSpread emits projectiles at fixed angular offsets around a base aim:
// toward the nearest enemy anywhere, or a random direction with none alive.
func (m *Match) fireSpread(w *Weapon) {
	var aim float32
	if idx := m.nearestEnemy(m.Player.Pos, float32(math.MaxFloat32)); idx >= 0 {
		aim = angleOf(m.Enemies[idx].Pos.Sub(m.Player.Pos))
	} else {
		aim = m.randFloat32() * 2 * math.Pi
	}

	count := m.effectiveProjCount(w)
	const step = 0.35
	for i := 0; i < count; i++ {
		off := step * (float32(i) - float32(count-1)/2)
		m.spawnProjectile(w, unitFromAngle(aim+off))
	}
}

// firePulse damages every enemy within range of the player directly, with no
// projectile entity.
func (m *Match) firePulse(w *Weapon) {
	rng := m.effectiveRange(w)
	for i := range m.Enemies {
		e := &m.Enemies[i]
		if e.HP <= 0 {
			continue
		}
		if !circlesOverlap(m.Player.Pos, rng, e.Pos, e.R) {
			continue
		}
		m.damageEnemy(e, w.Damage)
	}
	m.spawnParticles(m.Player.Pos, 12)
}

func (m *Match) updateOrbitingShield(w *Weapon, dt float32) {
	w.OrbitPhase += m.Cfg.ShieldSpinSpeed * dt
	if w.OrbitPhase > 2*math.Pi {
		w.OrbitPhase -= 2 * math.Pi
	}
	if w.ShieldClocks == nil {
		w.ShieldClocks = make(map[int]float32, 16)
	}

	now := m.Elapsed
	radius := m.effectiveRange(w)
	count := m.effectiveProjCount(w)
	rehit := m.effectiveCooldown(w)

	for k := 0; k < count; k++ {
		ang := w.OrbitPhase + 2*math.Pi*float32(k)/float32(count)
		point := m.Player.Pos.Add(unitFromAngle(ang).Mul(radius))

		for i := range m.Enemies {
			e := &m.Enemies[i]
			if e.HP <= 0 {
				continue
			}
			if !circlesOverlap(point, m.Cfg.ShieldPointR, e.Pos, e.R) {
				continue
			}
			if now < w.ShieldClocks[e.ID] {
				continue
			}
			w.ShieldClocks[e.ID] = now + rehit
			m.damageEnemy(e, w.Damage)
		}
	}
}

func (m *Match) spawnProjectile(w *Weapon, dir Vec2) {
	m.Projectiles = append(m.Projectiles, Projectile{
		ID:     m.nextEntityID(),
		Weapon: w.Kind,
		Pos:    m.Player.Pos,
		Vel:    dir.Mul(w.ProjSpeed),
		R:      m.Cfg.ProjectileRadius,
		Damage: w.Damage,
		Life:   m.Cfg.ProjectileLife,
		Pierce: w.Pierce,
	})
}

func (m *Match) updateProjectiles(dt float32) {
	for i := range m.Projectiles {
		p := &m.Projectiles[i]
		p.Pos = p.Pos.Add(p.Vel.Mul(dt))
		p.Life -= dt
	}
}

// resolveProjectileHits is the tick-end collision pass. Each projectile keeps
// the set of enemy IDs it already damaged, so one pass through a crowd hits
// each enemy at most once.
func (m *Match) resolveProjectileHits() {
	for pi := range m.Projectiles {
		p := &m.Projectiles[pi]
		if p.Life <= 0 {
			continue
		}
		for ei := range m.Enemies {
			e := &m.Enemies[ei]
			if e.HP <= 0 {
				continue
			}
			if p.Hit[e.ID] {
				continue
			}
			if !circlesOverlap(p.Pos, p.R, e.Pos, e.R) {
				continue
			}

			if p.Hit == nil {
				p.Hit = make(map[int]bool, 4)
			}
			p.Hit[e.ID] = true
			m.damageEnemy(e, p.Damage)

			p.Pierce--
			if p.Pierce <= 0 {
				p.Life = 0
				break
			}
		}
	}
}

// damageEnemy applies a hit scaled by the player's aggregate damage bonus and
// spawns the damage-number/particle feedback. Death is resolved inline; the
// corpse stays in the slice until the cleanup compaction.
func (m *Match) damageEnemy(e *Enemy, amount float32) {
	amount *= 1 + m.passiveBonus(PassiveAmplifier)
	e.HP -= amount
	e.HitT = 0.1

	m.Numbers = append(m.Numbers, DamageNumber{
		Pos:    e.Pos,
		Amount: amount,
		Life:   m.Cfg.DamageNumberLife,
	})
	m.spawnParticles(e.Pos, 4)

	if e.HP <= 0 {
		e.HP = 0
		m.killEnemy(e)
	}
}

func (m *Match) killEnemy(e *Enemy) {
	m.Stats.Kills++
	m.dropOrb(e.Pos, e.XPValue)

	for i := range m.Player.Weapons {
		if m.Player.Weapons[i].ShieldClocks != nil {
			delete(m.Player.Weapons[i].ShieldClocks, e.ID)
		}
	}

	// Worm replication: a fraction of deaths spawn two half-strength copies
	// near the corpse. Copies are built like a fresh spawn at the current
	// difficulty, then halved, and never replicate again themselves.
	if !e.CanSplit {
		return
	}
	if m.randFloat32() >= m.Cfg.WormSplitChance {
		return
	}
	for i := 0; i < 2; i++ {
		off := Vec2{
			X: (m.randFloat32() - 0.5) * 48,
			Y: (m.randFloat32() - 0.5) * 48,
		}
		c := m.buildEnemy(e.Kind, e.Pos.Add(off))
		c.HP /= 2
		c.MaxHP /= 2
		c.R /= 2
		c.CanSplit = false
		m.pendingSplits = append(m.pendingSplits, c)
	}
}

// updateContactDamage applies continuous damage-per-tick from every enemy
// touching the player, scaled down by the permanent firewall upgrade. Health
// is clamped at zero at the point of mutation.
func (m *Match) updateContactDamage(dt float32) {
	reduction := 1 - m.Cfg.FirewallStep*float32(m.Player.Perm.Firewall)
	if reduction < 0 {
		reduction = 0
	}

	for i := range m.Enemies {
		e := &m.Enemies[i]
		if e.HP <= 0 {
			continue
		}
		if !circlesOverlap(m.Player.Pos, m.Player.R, e.Pos, e.R) {
			continue
		}
		dmg := e.Damage * dt * reduction
		m.Player.HP -= dmg
		m.Stats.DamageTaken += dmg
	}

	if m.Player.HP < 0 {
		m.Player.HP = 0
	}
}

func (m *Match) updateEnemies(dt float32, intents map[int]moveIntent) {
	margin := m.Cfg.EnemyBoundMargin
	for i := range m.Enemies {
		e := &m.Enemies[i]
		if e.HP <= 0 {
			continue
		}
		if e.HitT > 0 {
			e.HitT = maxf(0, e.HitT-dt)
		}

		dir := m.Player.Pos.Sub(e.Pos).Norm()
		scale := float32(1)
		if in, ok := intents[e.ID]; ok {
			dir = in.Dir
			scale = clamp(in.SpeedScale, 0.2, 1.5)
		}
		if dir.X == 0 && dir.Y == 0 {
			continue
		}

		e.Pos = e.Pos.Add(dir.Mul(e.Speed * scale * dt))
		e.Pos.X = clamp(e.Pos.X, -margin, m.W+margin)
		e.Pos.Y = clamp(e.Pos.Y, -margin, m.H+margin)
	}
}

func (m *Match) nearestEnemy(p Vec2, maxRange float32) int {
	best := -1
	bestD2 := maxRange * maxRange
	for i := range m.Enemies {
		e := &m.Enemies[i]
		if e.HP <= 0 {
			continue
		}
		d2 := dist2(e.Pos, p)
		if d2 > bestD2 {
			continue
		}
		if best == -1 || d2 < bestD2 {
			best = i
			bestD2 = d2
		}
	}
	return best
}

func (m *Match) spawnParticles(pos Vec2, n int) {
	for i := 0; i < n; i++ {
		ang := m.randFloat32() * 2 * math.Pi
		speed := m.Cfg.ParticleSpeed * (0.5 + m.randFloat32())
		m.Particles = append(m.Particles, Particle{
			Pos:  pos,
			Vel:  unitFromAngle(ang).Mul(speed),
			R:    2,
			Life: m.Cfg.ParticleLife,
		})
	}
}

func (m *Match) updateFeedback(dt float32) {
	for i := range m.Particles {
		p := &m.Particles[i]
		p.Pos = p.Pos.Add(p.Vel.Mul(dt))
		p.Life -= dt
	}
	for i := range m.Numbers {
		n := &m.Numbers[i]
		n.Pos.Y -= 30 * dt
		n.Life -= dt
	}
}

// cleanup is the single compaction pass per tick: queued worm splits join the
// arena (still respecting the enemy cap), then every collection drops its
// dead or expired entries in place.
func (m *Match) cleanup() {
	for _, c := range m.pendingSplits {
		if len(m.Enemies) >= m.maxEnemies {
			break
		}
		m.Enemies = append(m.Enemies, c)
	}
	m.pendingSplits = m.pendingSplits[:0]

	live := m.Enemies[:0]
	for _, e := range m.Enemies {
		if e.HP > 0 {
			live = append(live, e)
		}
	}
	m.Enemies = live

	projs := m.Projectiles[:0]
	for _, p := range m.Projectiles {
		if p.Life > 0 {
			projs = append(projs, p)
		}
	}
	m.Projectiles = projs

	orbs := m.Orbs[:0]
	for _, o := range m.Orbs {
		if !o.Collected && o.Life > 0 {
			orbs = append(orbs, o)
		}
	}
	m.Orbs = orbs

	parts := m.Particles[:0]
	for _, p := range m.Particles {
		if p.Life > 0 {
			parts = append(parts, p)
		}
	}
	m.Particles = parts

	nums := m.Numbers[:0]
	for _, n := range m.Numbers {
		if n.Life > 0 {
			nums = append(nums, n)
		}
	}
	m.Numbers = nums
}
