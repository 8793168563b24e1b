package sim

// Static stat tables. Read-only reference data; the simulation never mutates
// a def, it copies values into live entities at spawn/acquire time.

type EnemyKind int

const (
	EnemyMalware EnemyKind = iota
	EnemyTrojan
	EnemyWorm
	EnemySpyware
	EnemyRansomware
	EnemyBotnet
	EnemyRootkit
	EnemyLogicBomb
)

// DefaultEnemyKind is the fallback when weighted selection has no eligible
// kind (all weights zeroed by a level modifier, for example).
const DefaultEnemyKind = EnemyMalware

type MovePattern int

const (
	MoveDirect MovePattern = iota
	MoveZigzag
	MoveStealth
	MoveSwarm
)

type EnemyDef struct {
	Name          string
	HP            float32
	Speed         float32
	R             float32
	Damage        float32
	XP            float32
	SpawnWeight   float32
	MinDifficulty float32
	Move          MovePattern
	Splits        bool
}

var enemyDefs = map[EnemyKind]EnemyDef{
	EnemyMalware: {
		Name: "Malware", HP: 20, Speed: 90, R: 10, Damage: 8, XP: 5,
		SpawnWeight: 5, MinDifficulty: 1, Move: MoveDirect,
	},
	EnemyTrojan: {
		Name: "Trojan", HP: 35, Speed: 75, R: 12, Damage: 10, XP: 8,
		SpawnWeight: 3, MinDifficulty: 1, Move: MoveZigzag,
	},
	EnemyWorm: {
		Name: "Worm", HP: 28, Speed: 100, R: 9, Damage: 7, XP: 7,
		SpawnWeight: 3, MinDifficulty: 1.3, Move: MoveDirect, Splits: true,
	},
	EnemySpyware: {
		Name: "Spyware", HP: 25, Speed: 115, R: 8, Damage: 9, XP: 9,
		SpawnWeight: 2, MinDifficulty: 1.6, Move: MoveStealth,
	},
	EnemyRansomware: {
		Name: "Ransomware", HP: 120, Speed: 45, R: 18, Damage: 20, XP: 18,
		SpawnWeight: 2, MinDifficulty: 1.9, Move: MoveDirect,
	},
	EnemyBotnet: {
		Name: "Botnet Node", HP: 15, Speed: 105, R: 7, Damage: 6, XP: 4,
		SpawnWeight: 4, MinDifficulty: 2.2, Move: MoveSwarm,
	},
	EnemyRootkit: {
		Name: "Rootkit", HP: 60, Speed: 95, R: 11, Damage: 14, XP: 14,
		SpawnWeight: 1, MinDifficulty: 2.5, Move: MoveStealth,
	},
	EnemyLogicBomb: {
		Name: "Logic Bomb", HP: 45, Speed: 130, R: 10, Damage: 16, XP: 12,
		SpawnWeight: 2, MinDifficulty: 2.8, Move: MoveZigzag,
	},
}

// enemyOrder fixes the iteration order for the weighted draw; map iteration
// order would break seed determinism.
var enemyOrder = []EnemyKind{
	EnemyMalware,
	EnemyTrojan,
	EnemyWorm,
	EnemySpyware,
	EnemyRansomware,
	EnemyBotnet,
	EnemyRootkit,
	EnemyLogicBomb,
}

func EnemyDefFor(kind EnemyKind) EnemyDef {
	if d, ok := enemyDefs[kind]; ok {
		return d
	}
	return enemyDefs[DefaultEnemyKind]
}

// ---------------------------------------------------------------------------

type WeaponKind int

const (
	WeaponPacketCannon WeaponKind = iota
	WeaponForkBomb
	WeaponCryptoShield
	WeaponEMPBurst
	WeaponTraceRoute
)

// StartingWeapon is granted to the player at match start.
const StartingWeapon = WeaponPacketCannon

// FirePolicy selects the firing behavior of a weapon type. Dispatch is an
// exhaustive switch; adding a kind without a policy is a compile-visible gap,
// not a silent fallthrough.
type FirePolicy int

const (
	FireAimedSingle FirePolicy = iota
	FireSpread
	FireOrbitingShield
	FireAreaPulse
)

type WeaponDef struct {
	Name        string
	EvolvedName string
	Policy      FirePolicy

	Damage    float32
	Cooldown  float32 // seconds
	Range     float32
	ProjSpeed float32
	ProjCount int
	Pierce    int
	MaxLevel  int

	// EvolveWith is the passive the player must own at level >= 3, alongside
	// a maxed weapon, for the one-time evolution to be offered.
	EvolveWith PassiveKind
}

var weaponDefs = map[WeaponKind]WeaponDef{
	WeaponPacketCannon: {
		Name: "Packet Cannon", EvolvedName: "Flood Cannon",
		Policy: FireAimedSingle,
		Damage: 12, Cooldown: 0.8, Range: 260, ProjSpeed: 420,
		ProjCount: 1, Pierce: 1, MaxLevel: 8,
		EvolveWith: PassiveOverclock,
	},
	WeaponForkBomb: {
		Name: "Fork Bomb", EvolvedName: "Fork Storm",
		Policy: FireSpread,
		Damage: 8, Cooldown: 1.2, Range: 220, ProjSpeed: 360,
		ProjCount: 3, Pierce: 1, MaxLevel: 8,
		EvolveWith: PassiveMultithread,
	},
	WeaponCryptoShield: {
		Name: "Crypto Shield", EvolvedName: "Quantum Shield",
		Policy: FireOrbitingShield,
		Damage: 10, Cooldown: 0.9, Range: 80, ProjSpeed: 0,
		ProjCount: 2, Pierce: 0, MaxLevel: 8,
		EvolveWith: PassiveBandwidth,
	},
	WeaponEMPBurst: {
		Name: "EMP Burst", EvolvedName: "Blackout Pulse",
		Policy: FireAreaPulse,
		Damage: 14, Cooldown: 2.2, Range: 150, ProjSpeed: 0,
		ProjCount: 1, Pierce: 0, MaxLevel: 8,
		EvolveWith: PassiveAmplifier,
	},
	WeaponTraceRoute: {
		Name: "Trace Route", EvolvedName: "Backbone Lance",
		Policy: FireAimedSingle,
		Damage: 16, Cooldown: 1.4, Range: 320, ProjSpeed: 520,
		ProjCount: 1, Pierce: 3, MaxLevel: 8,
		EvolveWith: PassiveLongRange,
	},
}

var weaponOrder = []WeaponKind{
	WeaponPacketCannon,
	WeaponForkBomb,
	WeaponCryptoShield,
	WeaponEMPBurst,
	WeaponTraceRoute,
}

func WeaponDefFor(kind WeaponKind) WeaponDef {
	if d, ok := weaponDefs[kind]; ok {
		return d
	}
	return weaponDefs[StartingWeapon]
}

// ---------------------------------------------------------------------------

type PassiveKind int

const (
	PassiveBandwidth PassiveKind = iota
	PassiveAmplifier
	PassiveMagnet
	PassiveRedundancy
	PassiveMultithread
	PassiveLongRange
	PassiveOverclock
	PassiveKernelBoost
)

type PassiveDef struct {
	Name     string
	Desc     string
	MaxLevel int
}

// Each passive level grants +10% to its named effect; the bonus is computed
// on demand, never baked into entity stats.
const passiveBonusPerLevel = 0.10

var passiveDefs = map[PassiveKind]PassiveDef{
	PassiveBandwidth:   {Name: "Bandwidth", Desc: "+10% attack speed per level", MaxLevel: 5},
	PassiveAmplifier:   {Name: "Amplifier", Desc: "+10% damage per level", MaxLevel: 5},
	PassiveMagnet:      {Name: "Magnet Coil", Desc: "+10% pickup radius per level", MaxLevel: 5},
	PassiveRedundancy:  {Name: "Redundancy", Desc: "+10% max health per level", MaxLevel: 5},
	PassiveMultithread: {Name: "Multithread", Desc: "+10% projectile count per level", MaxLevel: 5},
	PassiveLongRange:   {Name: "Long Range", Desc: "+10% weapon range per level", MaxLevel: 5},
	PassiveOverclock:   {Name: "Overclock", Desc: "-10% cooldown per level", MaxLevel: 5},
	PassiveKernelBoost: {Name: "Kernel Boost", Desc: "+10% move speed per level", MaxLevel: 5},
}

var passiveOrder = []PassiveKind{
	PassiveBandwidth,
	PassiveAmplifier,
	PassiveMagnet,
	PassiveRedundancy,
	PassiveMultithread,
	PassiveLongRange,
	PassiveOverclock,
	PassiveKernelBoost,
}

func PassiveDefFor(kind PassiveKind) PassiveDef {
	if d, ok := passiveDefs[kind]; ok {
		return d
	}
	return passiveDefs[PassiveBandwidth]
}
