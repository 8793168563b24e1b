package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"breach-lab/internal/audio"
	"breach-lab/internal/commons/logger_config"
	"breach-lab/internal/meta"
	"breach-lab/internal/sim"
	"breach-lab/internal/telemetry"
)

// Game is the ebiten driver around the match: it owns the fixed-step loop,
// translates device input into simulation messages, renders snapshots and
// persists meta-progression at match boundaries. The simulation itself never
// sees ebiten, the clock or the store.
type Game struct {
	match    *sim.Match
	progress *meta.Progress

	// fixed tick
	accum     time.Duration
	last      time.Time
	fixedStep time.Duration

	telemetry *telemetry.Sink
	sound     *audio.Manager

	snapshotPath string

	// cumulative baselines for delta events
	lastKills  int
	lastDamage float32
	lastXP     float32
	lastLevel  int

	levelSel     int
	endPersisted bool
}

func New(progress *meta.Progress, snapshotPath string) *Game {
	perm := progress.LoadUpgrades()

	g := &Game{
		match:        sim.NewMatch(2000, 2000, simUpgrades(perm), time.Now().UnixNano()),
		progress:     progress,
		last:         time.Now(),
		fixedStep:    time.Second / 60,
		telemetry:    telemetry.NewSink(),
		sound:        audio.NewManager(),
		snapshotPath: snapshotPath,
	}
	g.sound.Initialize()
	return g
}

func simUpgrades(u meta.PermanentUpgrades) sim.PermanentUpgrades {
	return sim.PermanentUpgrades{
		Processing: u.Processing,
		Memory:     u.Memory,
		Cooling:    u.Cooling,
		Storage:    u.Storage,
		Firewall:   u.Firewall,
	}
}

func (g *Game) Update() error {
	now := time.Now()
	frameDt := now.Sub(g.last)
	g.last = now

	// avoid a catch-up spiral after long stalls
	if frameDt > 250*time.Millisecond {
		frameDt = 250 * time.Millisecond
	}
	g.send(telemetry.Event{Kind: "frame", F: float32(frameDt.Seconds()), At: now})

	g.readMenuKeys()

	if g.match.Phase == sim.PhasePlaying {
		g.accum += frameDt
		in := ReadInput()
		for g.accum >= g.fixedStep {
			g.match.Enqueue(sim.MsgInput{Input: in})
			g.match.Tick(float32(g.fixedStep.Seconds()))
			g.accum -= g.fixedStep
		}
	} else {
		// Suspended states receive no simulation time at all; messages are
		// still delivered so the player can resume, choose or restart.
		g.accum = 0
		g.match.Tick(0)
	}

	g.emitDeltas(now)
	g.persistMatchEnd()

	return nil
}

// readMenuKeys handles the edge-triggered keys for the current phase.
func (g *Game) readMenuKeys() {
	switch g.match.Phase {
	case sim.PhaseMapSelect:
		if ReadJustLeft() && g.levelSel > 0 {
			g.levelSel--
		}
		if ReadJustRight() && g.levelSel < len(sim.Datacenters)-1 {
			g.levelSel++
		}
		if ReadJustConfirm() {
			g.match.Enqueue(sim.MsgSelectLevel{ID: sim.Datacenters[g.levelSel].ID})
		}

	case sim.PhaseMenu:
		if ReadJustConfirm() {
			g.endPersisted = false
			g.lastKills, g.lastDamage, g.lastXP, g.lastLevel = 0, 0, 0, 1
			g.match.Enqueue(sim.MsgStart{})
		}
		if idx, ok := ReadJustDigit(); ok && idx < len(meta.UpgradeIDs) {
			g.purchase(meta.UpgradeIDs[idx])
		}

	case sim.PhaseLevelUp, sim.PhaseEvolution:
		if idx, ok := ReadJustDigit(); ok {
			g.match.Enqueue(sim.MsgChoose{Index: idx})
		}

	case sim.PhasePlaying, sim.PhasePaused:
		if ReadJustPause() {
			g.match.Enqueue(sim.MsgTogglePause{})
		}
		if ReadJustRestart() {
			g.match.Enqueue(sim.MsgRestart{})
		}
		if ebiten.IsKeyPressed(ebiten.KeyControl) {
			if ReadJustSave() {
				g.saveSnapshot()
			}
			if ReadJustLoad() {
				g.loadSnapshot()
			}
		}

	case sim.PhaseGameOver, sim.PhaseVictory:
		if ReadJustRestart() || ReadJustConfirm() {
			g.match.Enqueue(sim.MsgRestart{})
		}
	}
}

func (g *Game) purchase(id meta.UpgradeID) {
	ok, err := g.progress.PurchaseUpgrade(id)
	if err != nil {
		logger_config.Logger.Warn("upgrade purchase failed", "upgrade", id, "err", err)
		return
	}
	if ok {
		// next match start picks up the new snapshot
		g.match.Perm = simUpgrades(g.progress.LoadUpgrades())
	}
}

func (g *Game) saveSnapshot() {
	if g.snapshotPath == "" {
		return
	}
	if err := g.match.SaveSnapshot(g.snapshotPath); err != nil {
		logger_config.Logger.Warn("snapshot save failed", "err", err)
	}
}

func (g *Game) loadSnapshot() {
	if g.snapshotPath == "" {
		return
	}
	if err := g.match.LoadSnapshot(g.snapshotPath); err != nil {
		logger_config.Logger.Warn("snapshot load failed", "err", err)
	}
}

func (g *Game) emitDeltas(at time.Time) {
	stats := g.match.Stats

	if d := stats.Kills - g.lastKills; d > 0 {
		g.send(telemetry.Event{Kind: "kill", I: d, At: at})
		g.sound.PlayHit()
	}
	g.lastKills = stats.Kills

	if d := stats.DamageTaken - g.lastDamage; d > 0 {
		g.send(telemetry.Event{Kind: "damage", F: d, At: at})
	}
	g.lastDamage = stats.DamageTaken

	if d := stats.XPCollected - g.lastXP; d > 0 {
		g.send(telemetry.Event{Kind: "xp", F: d, At: at})
	}
	g.lastXP = stats.XPCollected

	if g.match.Player.Level > g.lastLevel {
		g.sound.PlayLevelUp()
	}
	g.lastLevel = g.match.Player.Level
}

// persistMatchEnd writes stats, leaderboard and currency exactly once per
// terminal phase, before the player returns to level selection.
func (g *Game) persistMatchEnd() {
	if !g.match.Phase.Terminal() || g.endPersisted {
		return
	}
	g.endPersisted = true

	victory := g.match.Phase == sim.PhaseVictory
	g.sound.PlayMatchEnd(victory)

	stats := g.progress.LoadStats()
	stats.PlayTimeSeconds += float64(g.match.Elapsed)
	stats.Kills += g.match.Stats.Kills
	stats.XPCollected += float64(g.match.Stats.XPCollected)
	stats.GamesPlayed++
	if g.match.Player.Level > stats.HighestLevel {
		stats.HighestLevel = g.match.Player.Level
	}
	if victory {
		stats.Wins++
		stats.MarkCleared(g.match.Level.ID)
	}
	if err := g.progress.SaveStats(stats); err != nil {
		logger_config.Logger.Warn("stats save failed", "err", err)
	}

	err := g.progress.AddLeaderboardEntry(meta.LeaderboardEntry{
		LevelID:      g.match.Level.ID,
		Score:        g.match.FinalScore,
		Kills:        g.match.Stats.Kills,
		PlayerLevel:  g.match.Player.Level,
		TimeSurvived: g.match.Elapsed,
		Victory:      victory,
	})
	if err != nil {
		logger_config.Logger.Warn("leaderboard save failed", "err", err)
	}

	if err := g.progress.EarnCurrency(g.match.Award); err != nil {
		logger_config.Logger.Warn("currency save failed", "err", err)
	}
}

func (g *Game) send(ev telemetry.Event) {
	if g.telemetry == nil {
		return
	}

	select {
	case g.telemetry.In <- ev:
	default:
		// Drop on backpressure to avoid stalling the fixed-step loop.
	}
}

func (g *Game) Layout(outsideW, outsideH int) (int, int) {
	return outsideW, outsideH
}

func (g *Game) Close() {
	if g.telemetry != nil {
		g.telemetry.Close()
		g.telemetry = nil
	}
	if g.sound != nil {
		g.sound.Cleanup()
		g.sound = nil
	}
	if g.match != nil {
		g.match.Close()
		g.match = nil
	}
}
