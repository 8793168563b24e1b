package meta

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"breach-lab/internal/commons/logger_config"
)

// Progress is the meta-progression gateway: typed load/save over the KV port.
// Loads degrade to the zero-state on missing or malformed data; only writes
// surface errors.
type Progress struct {
	kv KV
}

func NewProgress(kv KV) *Progress {
	return &Progress{kv: kv}
}

func (p *Progress) load(key string, v any) bool {
	blob, found, err := p.kv.Get(key)
	if err != nil {
		logger_config.Logger.Warn("meta record read failed, using defaults", "key", key, "err", err)
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal(blob, v); err != nil {
		logger_config.Logger.Warn("meta record malformed, using defaults", "key", key, "err", err)
		return false
	}
	return true
}

func (p *Progress) save(key string, v any) error {
	blob, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := p.kv.Set(key, blob); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// permanent-upgrades

func (p *Progress) LoadUpgrades() PermanentUpgrades {
	var u PermanentUpgrades
	p.load(KeyPermanentUpgrades, &u)
	return u.clamped()
}

func (p *Progress) SaveUpgrades(u PermanentUpgrades) error {
	return p.save(KeyPermanentUpgrades, u.clamped())
}

// UpgradeCost is the price of raising an upgrade from its current level:
// doubling from 150 per level already owned.
func UpgradeCost(currentLevel int) int {
	return 150 << currentLevel
}

func upgradeLevel(u PermanentUpgrades, id UpgradeID) int {
	switch id {
	case UpgradeProcessing:
		return u.Processing
	case UpgradeMemory:
		return u.Memory
	case UpgradeCooling:
		return u.Cooling
	case UpgradeStorage:
		return u.Storage
	case UpgradeFirewall:
		return u.Firewall
	}
	return 0
}

func bumpUpgrade(u PermanentUpgrades, id UpgradeID) PermanentUpgrades {
	switch id {
	case UpgradeProcessing:
		u.Processing++
	case UpgradeMemory:
		u.Memory++
	case UpgradeCooling:
		u.Cooling++
	case UpgradeStorage:
		u.Storage++
	case UpgradeFirewall:
		u.Firewall++
	}
	return u
}

// PurchaseUpgrade spends currency on one permanent upgrade level. Returns
// false without error when the upgrade is maxed or the balance is short.
func (p *Progress) PurchaseUpgrade(id UpgradeID) (bool, error) {
	u := p.LoadUpgrades()
	level := upgradeLevel(u, id)
	if level >= MaxUpgradeLevel {
		return false, nil
	}

	cost := UpgradeCost(level)
	balance := p.Currency()
	if balance < cost {
		return false, nil
	}

	if err := p.SetCurrency(balance - cost); err != nil {
		return false, err
	}
	if err := p.SaveUpgrades(bumpUpgrade(u, id)); err != nil {
		return false, err
	}
	return true, nil
}

// ---------------------------------------------------------------------------
// game-stats

func (p *Progress) LoadStats() GameStats {
	var s GameStats
	p.load(KeyGameStats, &s)
	return s
}

func (p *Progress) SaveStats(s GameStats) error {
	return p.save(KeyGameStats, s)
}

// ---------------------------------------------------------------------------
// leaderboard

func (p *Progress) LoadLeaderboard() []LeaderboardEntry {
	var f leaderboardFile
	p.load(KeyLeaderboard, &f)
	return f.Entries
}

// AddLeaderboardEntry assigns the entry an ID, inserts it in score order and
// trims the list to its cap.
func (p *Progress) AddLeaderboardEntry(e LeaderboardEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}

	entries := append(p.LoadLeaderboard(), e)
	slices.SortStableFunc(entries, func(a, b LeaderboardEntry) int {
		switch {
		case a.Score != b.Score:
			if a.Score > b.Score {
				return -1
			}
			return 1
		case a.Kills != b.Kills:
			if a.Kills > b.Kills {
				return -1
			}
			return 1
		default:
			return 0
		}
	})
	if len(entries) > LeaderboardCap {
		entries = entries[:LeaderboardCap]
	}

	return p.save(KeyLeaderboard, leaderboardFile{Entries: entries})
}

// ---------------------------------------------------------------------------
// currency

func (p *Progress) Currency() int {
	var f currencyFile
	p.load(KeyCurrency, &f)
	if f.Balance < 0 {
		return 0
	}
	return f.Balance
}

func (p *Progress) SetCurrency(balance int) error {
	if balance < 0 {
		balance = 0
	}
	return p.save(KeyCurrency, currencyFile{Balance: balance})
}

func (p *Progress) EarnCurrency(amount int) error {
	if amount <= 0 {
		return nil
	}
	return p.SetCurrency(p.Currency() + amount)
}
