package sim

import "testing"

func TestProjectileHitsEachEnemyAtMostOnce(t *testing.T) {
	m := newTestMatch(t, 1)
	defer m.Close()

	m.Enemies = []Enemy{
		{ID: 1, Pos: Vec2{X: 500, Y: 500}, R: 10, HP: 100, MaxHP: 100},
	}
	m.Projectiles = []Projectile{
		{ID: 2, Pos: Vec2{X: 500, Y: 500}, R: 5, Damage: 10, Life: 1, Pierce: 5},
	}

	m.resolveProjectileHits()
	if !approxEqual(m.Enemies[0].HP, 90) {
		t.Fatalf("first pass hp: got %.3f want 90", m.Enemies[0].HP)
	}

	// still overlapping next pass, but the hit set blocks a second hit
	m.resolveProjectileHits()
	if !approxEqual(m.Enemies[0].HP, 90) {
		t.Fatalf("enemy damaged twice by one projectile: hp=%.3f", m.Enemies[0].HP)
	}
}

func TestProjectileExpiresWhenPierceRunsOut(t *testing.T) {
	m := newTestMatch(t, 1)
	defer m.Close()

	m.Enemies = []Enemy{
		{ID: 1, Pos: Vec2{X: 500, Y: 500}, R: 10, HP: 100, MaxHP: 100},
		{ID: 2, Pos: Vec2{X: 505, Y: 500}, R: 10, HP: 100, MaxHP: 100},
	}
	m.Projectiles = []Projectile{
		{ID: 3, Pos: Vec2{X: 500, Y: 500}, R: 5, Damage: 10, Life: 1, Pierce: 1},
	}

	m.resolveProjectileHits()

	if !approxEqual(m.Enemies[0].HP, 90) {
		t.Fatalf("first enemy hp: got %.3f want 90", m.Enemies[0].HP)
	}
	if !approxEqual(m.Enemies[1].HP, 100) {
		t.Fatalf("second enemy hit after pierce ran out: hp=%.3f", m.Enemies[1].HP)
	}
	if m.Projectiles[0].Life > 0 {
		t.Fatalf("projectile should expire with pierce exhausted: life=%.3f", m.Projectiles[0].Life)
	}
}

func TestWormSplitSpawnsTwoHalvedCopies(t *testing.T) {
	m := newTestMatch(t, 1)
	defer m.Close()
	m.Cfg.WormSplitChance = 1

	m.Enemies = []Enemy{m.buildEnemy(EnemyWorm, Vec2{X: 500, Y: 500})}
	fullHP := m.Enemies[0].HP

	m.damageEnemy(&m.Enemies[0], fullHP+1)
	m.cleanup()

	if len(m.Enemies) != 2 {
		t.Fatalf("expected 2 split copies, got %d enemies", len(m.Enemies))
	}
	for i, c := range m.Enemies {
		if c.Kind != EnemyWorm {
			t.Fatalf("copy[%d] kind mismatch: %d", i, c.Kind)
		}
		if !approxEqual(c.HP, fullHP/2) {
			t.Fatalf("copy[%d] hp: got %.3f want %.3f", i, c.HP, fullHP/2)
		}
		if c.CanSplit {
			t.Fatalf("copy[%d] can split again", i)
		}
	}

	// killing the copies must not cascade, even at 100% chance
	for i := range m.Enemies {
		m.damageEnemy(&m.Enemies[i], fullHP)
	}
	m.cleanup()
	if len(m.Enemies) != 0 {
		t.Fatalf("split copies replicated: %d enemies left", len(m.Enemies))
	}
}

func TestContactDamageIsContinuous(t *testing.T) {
	m := newTestMatch(t, 1)
	defer m.Close()

	m.Enemies = []Enemy{
		{ID: 1, Pos: m.Player.Pos, R: 10, HP: 100, MaxHP: 100, Damage: 8},
	}

	const dt = float32(1.0 / 60.0)
	for range 300 { // five seconds of contact
		m.updateContactDamage(dt)
	}

	want := m.Player.MaxHP - 8*5
	if d := m.Player.HP - want; d > 0.1 || d < -0.1 {
		t.Fatalf("contact damage drift: hp=%.3f want about %.3f", m.Player.HP, want)
	}
	if !approxEqual(m.Stats.DamageTaken, m.Player.MaxHP-m.Player.HP) {
		t.Fatalf("damage stat mismatch: stat=%.3f taken=%.3f",
			m.Stats.DamageTaken, m.Player.MaxHP-m.Player.HP)
	}
}

func TestFirewallReducesContactDamage(t *testing.T) {
	m := NewMatch(2000, 2000, PermanentUpgrades{Firewall: 5}, 1)
	defer m.Close()
	m.Enqueue(MsgSelectLevel{ID: Datacenters[0].ID})
	m.Enqueue(MsgStart{})
	m.Tick(0)

	m.Enemies = []Enemy{
		{ID: 1, Pos: m.Player.Pos, R: 10, HP: 100, MaxHP: 100, Damage: 8},
	}
	m.updateContactDamage(1)

	want := float32(8) * (1 - 0.08*5)
	if !approxEqual(m.Stats.DamageTaken, want) {
		t.Fatalf("firewall reduction mismatch: got %.3f want %.3f", m.Stats.DamageTaken, want)
	}
}

func TestAimedWeaponHoldsFireWithoutTarget(t *testing.T) {
	m := newTestMatch(t, 1)
	defer m.Close()

	m.Elapsed = 10
	m.updateWeapons(1.0 / 60.0)

	if len(m.Projectiles) != 0 {
		t.Fatalf("weapon fired with no target: %d projectiles", len(m.Projectiles))
	}
	if m.Player.Weapons[0].LastFired != 0 {
		t.Fatal("cooldown consumed without firing")
	}

	m.Enemies = []Enemy{
		{ID: 1, Pos: m.Player.Pos.Add(Vec2{X: 100}), R: 10, HP: 100, MaxHP: 100},
	}
	m.updateWeapons(1.0 / 60.0)

	if len(m.Projectiles) != 1 {
		t.Fatalf("expected one projectile, got %d", len(m.Projectiles))
	}
	if m.Player.Weapons[0].LastFired != m.Elapsed {
		t.Fatalf("cooldown not consumed on fire: lastFired=%.3f", m.Player.Weapons[0].LastFired)
	}
}

func TestOrbitingShieldRehitWindow(t *testing.T) {
	m := newTestMatch(t, 1)
	defer m.Close()

	w := m.newWeapon(WeaponCryptoShield)
	m.Player.Weapons = []Weapon{w}
	shield := &m.Player.Weapons[0]

	// giant enemy covering every shield point
	m.Enemies = []Enemy{
		{ID: 1, Pos: m.Player.Pos, R: 200, HP: 10000, MaxHP: 10000},
	}

	const dt = float32(1.0 / 60.0)
	m.updateOrbitingShield(shield, dt)
	hpAfterFirst := m.Enemies[0].HP
	if !approxEqual(hpAfterFirst, 10000-shield.Damage) {
		t.Fatalf("first shield contact: hp=%.3f want %.3f", hpAfterFirst, 10000-shield.Damage)
	}

	// within the re-hit window nothing more lands
	m.Elapsed += dt
	m.updateOrbitingShield(shield, dt)
	if !approxEqual(m.Enemies[0].HP, hpAfterFirst) {
		t.Fatalf("enemy re-hit inside cooldown window: hp=%.3f", m.Enemies[0].HP)
	}

	// past the window the same enemy is damaged again
	m.Elapsed += m.effectiveCooldown(shield)
	m.updateOrbitingShield(shield, dt)
	if !approxEqual(m.Enemies[0].HP, hpAfterFirst-shield.Damage) {
		t.Fatalf("enemy not re-hit after cooldown: hp=%.3f want %.3f",
			m.Enemies[0].HP, hpAfterFirst-shield.Damage)
	}
}

func TestAreaPulseDamagesEverythingInRange(t *testing.T) {
	m := newTestMatch(t, 1)
	defer m.Close()

	m.Player.Weapons = []Weapon{m.newWeapon(WeaponEMPBurst)}
	pulse := &m.Player.Weapons[0]

	m.Enemies = []Enemy{
		{ID: 1, Pos: m.Player.Pos.Add(Vec2{X: 50}), R: 10, HP: 100, MaxHP: 100},
		{ID: 2, Pos: m.Player.Pos.Add(Vec2{X: -80}), R: 10, HP: 100, MaxHP: 100},
		{ID: 3, Pos: m.Player.Pos.Add(Vec2{X: 500}), R: 10, HP: 100, MaxHP: 100},
	}
	m.firePulse(pulse)

	if !approxEqual(m.Enemies[0].HP, 100-pulse.Damage) {
		t.Fatalf("in-range enemy untouched: hp=%.3f", m.Enemies[0].HP)
	}
	if !approxEqual(m.Enemies[1].HP, 100-pulse.Damage) {
		t.Fatalf("in-range enemy untouched: hp=%.3f", m.Enemies[1].HP)
	}
	if !approxEqual(m.Enemies[2].HP, 100) {
		t.Fatalf("out-of-range enemy damaged: hp=%.3f", m.Enemies[2].HP)
	}
}
