package meta

import "time"

// The four persisted records. Missing or malformed stored data always decodes
// to the documented zero-state below, never to an error the simulation sees.
const (
	KeyPermanentUpgrades = "permanent-upgrades"
	KeyGameStats         = "game-stats"
	KeyLeaderboard       = "leaderboard"
	KeyCurrency          = "currency"
)

const (
	// MaxUpgradeLevel caps every permanent upgrade.
	MaxUpgradeLevel = 5

	// LeaderboardCap bounds the stored entry count.
	LeaderboardCap = 100
)

// PermanentUpgrades holds the five named upgrade levels (0..MaxUpgradeLevel),
// read at player creation and written on any purchase.
type PermanentUpgrades struct {
	Processing int `json:"processing"`
	Memory     int `json:"memory"`
	Cooling    int `json:"cooling"`
	Storage    int `json:"storage"`
	Firewall   int `json:"firewall"`
}

func (u PermanentUpgrades) clamped() PermanentUpgrades {
	c := func(v int) int {
		if v < 0 {
			return 0
		}
		if v > MaxUpgradeLevel {
			return MaxUpgradeLevel
		}
		return v
	}
	return PermanentUpgrades{
		Processing: c(u.Processing),
		Memory:     c(u.Memory),
		Cooling:    c(u.Cooling),
		Storage:    c(u.Storage),
		Firewall:   c(u.Firewall),
	}
}

// UpgradeID names one permanent upgrade for purchase calls.
type UpgradeID string

const (
	UpgradeProcessing UpgradeID = "processing"
	UpgradeMemory     UpgradeID = "memory"
	UpgradeCooling    UpgradeID = "cooling"
	UpgradeStorage    UpgradeID = "storage"
	UpgradeFirewall   UpgradeID = "firewall"
)

var UpgradeIDs = []UpgradeID{
	UpgradeProcessing,
	UpgradeMemory,
	UpgradeCooling,
	UpgradeStorage,
	UpgradeFirewall,
}

// GameStats are the cumulative lifetime totals, written at match end.
type GameStats struct {
	PlayTimeSeconds float64  `json:"play_time_seconds"`
	Kills           int      `json:"kills"`
	XPCollected     float64  `json:"xp_collected"`
	HighestLevel    int      `json:"highest_level"`
	GamesPlayed     int      `json:"games_played"`
	Wins            int      `json:"wins"`
	ClearedLevels   []string `json:"cleared_levels,omitempty"`
}

func (s *GameStats) MarkCleared(levelID string) {
	for _, id := range s.ClearedLevels {
		if id == levelID {
			return
		}
	}
	s.ClearedLevels = append(s.ClearedLevels, levelID)
}

// LeaderboardEntry is one finished match, appended at match end. The stored
// list stays ordered by score descending, capped at LeaderboardCap.
type LeaderboardEntry struct {
	ID           string    `json:"id"`
	At           time.Time `json:"at"`
	LevelID      string    `json:"level_id"`
	Score        int       `json:"score"`
	Kills        int       `json:"kills"`
	PlayerLevel  int       `json:"player_level"`
	TimeSurvived float32   `json:"time_survived"`
	Victory      bool      `json:"victory"`
}

type leaderboardFile struct {
	Entries []LeaderboardEntry `json:"entries"`
}

type currencyFile struct {
	Balance int `json:"balance"`
}
