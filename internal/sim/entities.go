package sim

// PermanentUpgrades is the per-match snapshot of the five meta-progression
// levels (0..5 each), taken when the player is created.
type PermanentUpgrades struct {
	Processing int `json:"processing"` // weapon damage
	Memory     int `json:"memory"`     // max health
	Cooling    int `json:"cooling"`    // move speed
	Storage    int `json:"storage"`    // XP gain
	Firewall   int `json:"firewall"`   // contact damage reduction
}

type Player struct {
	Pos Vec2    `json:"pos"`
	R   float32 `json:"r"`

	HP        float32 `json:"hp"`
	MaxHP     float32 `json:"max_hp"`
	MoveSpeed float32 `json:"move_speed"`

	// Bandwidth is the attack-speed multiplier applied to every weapon's
	// effective cooldown.
	Bandwidth float32 `json:"bandwidth"`

	Level    int     `json:"level"`
	XP       float32 `json:"xp"`
	XPToNext float32 `json:"xp_to_next"`

	Weapons  []Weapon  `json:"weapons"`
	Passives []Passive `json:"passives"`

	Perm PermanentUpgrades `json:"perm"`
}

type Enemy struct {
	ID   int       `json:"id"`
	Kind EnemyKind `json:"kind"`

	Pos   Vec2    `json:"pos"`
	Speed float32 `json:"speed"`
	R     float32 `json:"r"`

	HP     float32 `json:"hp"`
	MaxHP  float32 `json:"max_hp"`
	Damage float32 `json:"damage"`

	XPValue float32 `json:"xp_value"`

	// CanSplit marks a worm that still carries its on-death replication.
	// Split copies are created with CanSplit=false so a kill cascade stays
	// bounded.
	CanSplit bool `json:"can_split"`

	HitT float32 `json:"hit_t"` // hit flash timer, render feedback only
}

type Projectile struct {
	ID     int        `json:"id"`
	Weapon WeaponKind `json:"weapon"`

	Pos Vec2    `json:"pos"`
	Vel Vec2    `json:"vel"`
	R   float32 `json:"r"`

	Damage float32 `json:"damage"`
	Life   float32 `json:"life"`

	// Pierce is the remaining number of enemies this projectile may pass
	// through; reaching zero after a hit expires it immediately.
	Pierce int `json:"pierce"`

	// Hit records enemy IDs already damaged by this projectile so one pass
	// cannot hit the same enemy twice.
	Hit map[int]bool `json:"hit,omitempty"`
}

type DataOrb struct {
	Pos   Vec2    `json:"pos"`
	R     float32 `json:"r"`
	Value float32 `json:"value"`

	Life      float32 `json:"life"`
	Magnet    bool    `json:"magnet"`    // inside pickup radius, pulled each tick
	Collected bool    `json:"collected"` // value consumed, removed at cleanup
}

type Particle struct {
	Pos  Vec2    `json:"pos"`
	Vel  Vec2    `json:"vel"`
	R    float32 `json:"r"`
	Life float32 `json:"life"`
}

type DamageNumber struct {
	Pos    Vec2    `json:"pos"`
	Amount float32 `json:"amount"`
	Life   float32 `json:"life"`
}

type Weapon struct {
	Kind  WeaponKind `json:"kind"`
	Level int        `json:"level"`

	Damage    float32 `json:"damage"`
	Cooldown  float32 `json:"cooldown"`   // seconds, before bandwidth/overclock
	LastFired float32 `json:"last_fired"` // match-time seconds

	Range     float32 `json:"range"`
	ProjSpeed float32 `json:"proj_speed"`
	ProjCount int     `json:"proj_count"`
	Pierce    int     `json:"pierce"`

	Evolved bool `json:"evolved"`

	// Orbiting-shield bookkeeping: current rotation angle and the per-enemy
	// re-hit clocks (match-time seconds of the next allowed hit).
	OrbitPhase   float32         `json:"orbit_phase,omitempty"`
	ShieldClocks map[int]float32 `json:"shield_clocks,omitempty"`
}

type Passive struct {
	Kind  PassiveKind `json:"kind"`
	Level int         `json:"level"`
}

type MatchStats struct {
	EnemiesSpawned int     `json:"enemies_spawned"`
	Kills          int     `json:"kills"`
	DamageTaken    float32 `json:"damage_taken"`
	XPCollected    float32 `json:"xp_collected"`
}
