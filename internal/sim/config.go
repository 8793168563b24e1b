package sim

type Config struct {
	// Spawning / difficulty
	BaseSpawnEvery   float32 // seconds between spawns at difficulty 1
	MinSpawnEvery    float32 // spawn-interval floor
	RampEvery        float32 // seconds between difficulty steps
	RampDifficulty   float32 // multiplier gained per step
	RampSpawnFactor  float32 // spawn interval shrink per step
	BaseMaxEnemies   int
	MaxEnemiesStep   int
	MaxEnemiesCap    int
	SpawnEdgeMargin  float32 // how far outside the play area enemies appear
	EnemyBoundMargin float32 // how far outside the play area enemies may roam

	// Player
	PlayerRadius float32
	PlayerSpeed  float32
	PlayerMaxHP  float32
	LevelUpHeal  float32

	// XP / orbs
	XPBaseToNext   float32
	XPGrowth       float32
	PickupRadius   float32
	OrbRadius      float32
	OrbMagnetSpeed float32
	OrbLife        float32

	// Combat
	ProjectileRadius float32
	ProjectileLife   float32
	ShieldPointR     float32
	ShieldSpinSpeed  float32 // radians per second
	WormSplitChance  float32
	FirewallStep     float32 // contact damage reduction per permanent level

	// Feedback entities
	ParticleLife     float32
	ParticleSpeed    float32
	DamageNumberLife float32
}

func DefaultConfig() Config {
	return Config{
		BaseSpawnEvery:   2.0,
		MinSpawnEvery:    0.3,
		RampEvery:        30.0,
		RampDifficulty:   0.3,
		RampSpawnFactor:  0.85,
		BaseMaxEnemies:   50,
		MaxEnemiesStep:   15,
		MaxEnemiesCap:    200,
		SpawnEdgeMargin:  24,
		EnemyBoundMargin: 48,

		PlayerRadius: 12,
		PlayerSpeed:  220,
		PlayerMaxHP:  100,
		LevelUpHeal:  20,

		XPBaseToNext:   10,
		XPGrowth:       1.5,
		PickupRadius:   70,
		OrbRadius:      5,
		OrbMagnetSpeed: 340,
		OrbLife:        30,

		ProjectileRadius: 5,
		ProjectileLife:   2.0,
		ShieldPointR:     10,
		ShieldSpinSpeed:  2.4,
		WormSplitChance:  0.3,
		FirewallStep:     0.08,

		ParticleLife:     0.4,
		ParticleSpeed:    120,
		DamageNumberLife: 0.7,
	}
}

// XPToNext returns the level-up threshold for a given level: base at level 1,
// multiplied by the growth factor on every level gained.
func (c Config) XPToNext(level int) float32 {
	if level < 1 {
		level = 1
	}
	v := c.XPBaseToNext
	for i := 1; i < level; i++ {
		v *= c.XPGrowth
	}
	return v
}
