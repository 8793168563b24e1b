package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"breach-lab/internal/meta"
	"breach-lab/internal/sim"
)

var titleFace = basicfont.Face7x13

var enemyColors = map[sim.EnemyKind]color.RGBA{
	sim.EnemyMalware:    {220, 80, 80, 255},
	sim.EnemyTrojan:     {200, 120, 60, 255},
	sim.EnemyWorm:       {170, 210, 90, 255},
	sim.EnemySpyware:    {150, 110, 200, 255},
	sim.EnemyRansomware: {230, 60, 130, 255},
	sim.EnemyBotnet:     {110, 160, 220, 255},
	sim.EnemyRootkit:    {130, 130, 140, 255},
	sim.EnemyLogicBomb:  {240, 180, 50, 255},
}

func (g *Game) Draw(screen *ebiten.Image) {
	m := g.match

	switch m.Phase {
	case sim.PhaseMapSelect:
		g.drawMapSelect(screen)
		return
	case sim.PhaseMenu:
		g.drawMenu(screen)
		return
	}

	g.drawWorld(screen, m)
	g.drawHUD(screen, m)

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()

	switch m.Phase {
	case sim.PhaseLevelUp, sim.PhaseEvolution:
		g.drawChoice(screen, m, sw, sh)
	case sim.PhasePaused:
		dimScreen(screen, sw, sh, 140)
		drawTitle(screen, "PAUSED", 8, 96)
		ebitenutil.DebugPrintAt(screen, "P to resume, R to restart", 8, 110)
		ebitenutil.DebugPrintAt(screen, "Ctrl+F5 save, Ctrl+F9 load", 8, 126)
	case sim.PhaseGameOver, sim.PhaseVictory:
		g.drawMatchEnd(screen, m, sw, sh)
	}
}

func (g *Game) drawWorld(screen *ebiten.Image, m *sim.Match) {
	screen.Fill(color.RGBA{12, 14, 20, 255})

	// camera centered on player
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	camX := float32(sw)/2 - m.Player.Pos.X
	camY := float32(sh)/2 - m.Player.Pos.Y

	vector.DrawFilledRect(
		screen,
		camX, camY,
		m.W, m.H,
		color.RGBA{24, 28, 38, 255},
		false,
	)

	for _, o := range m.Orbs {
		vector.DrawFilledCircle(
			screen,
			camX+o.Pos.X, camY+o.Pos.Y,
			o.R,
			color.RGBA{90, 220, 230, 255},
			false,
		)
	}

	for _, e := range m.Enemies {
		clr, ok := enemyColors[e.Kind]
		if !ok {
			clr = color.RGBA{220, 80, 80, 255}
		}
		if e.HitT > 0 {
			clr = color.RGBA{255, 230, 230, 255}
		}
		vector.DrawFilledRect(
			screen,
			camX+e.Pos.X-e.R, camY+e.Pos.Y-e.R,
			e.R*2, e.R*2,
			clr,
			false,
		)
	}

	for _, p := range m.Projectiles {
		vector.DrawFilledCircle(
			screen,
			camX+p.Pos.X, camY+p.Pos.Y,
			p.R,
			color.RGBA{255, 245, 150, 255},
			false,
		)
	}

	for _, p := range m.Particles {
		vector.DrawFilledCircle(
			screen,
			camX+p.Pos.X, camY+p.Pos.Y,
			p.R,
			color.RGBA{255, 160, 90, 200},
			false,
		)
	}

	vector.DrawFilledCircle(
		screen,
		camX+m.Player.Pos.X, camY+m.Player.Pos.Y,
		m.Player.R,
		color.RGBA{80, 230, 140, 255},
		false,
	)

	for _, n := range m.Numbers {
		ebitenutil.DebugPrintAt(
			screen,
			fmt.Sprintf("%.0f", n.Amount),
			int(camX+n.Pos.X), int(camY+n.Pos.Y-16),
		)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image, m *sim.Match) {
	remaining := m.Level.Duration - m.Elapsed
	if remaining < 0 {
		remaining = 0
	}

	hud := fmt.Sprintf(
		"%s\nHP: %.0f/%.0f\nLV: %d  XP: %.0f/%.0f\nKills: %d  Threats: %d\nDifficulty: %.1f\nTime left: %.0fs",
		m.Level.Name,
		m.Player.HP, m.Player.MaxHP,
		m.Player.Level, m.Player.XP, m.Player.XPToNext,
		m.Stats.Kills, len(m.Enemies),
		m.Difficulty,
		remaining,
	)
	ebitenutil.DebugPrintAt(screen, hud, 8, 8)

	y := 120
	for _, w := range m.Player.Weapons {
		def := sim.WeaponDefFor(w.Kind)
		name := def.Name
		if w.Evolved {
			name = def.EvolvedName
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s L%d", name, w.Level), 8, y)
		y += 14
	}
	for _, p := range m.Player.Passives {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s L%d", sim.PassiveDefFor(p.Kind).Name, p.Level), 8, y)
		y += 14
	}
}

func (g *Game) drawMapSelect(screen *ebiten.Image) {
	screen.Fill(color.RGBA{12, 14, 20, 255})
	drawTitle(screen, "SELECT TARGET DATACENTER", 8, 40)

	y := 70
	for i, dc := range sim.Datacenters {
		marker := "  "
		if i == g.levelSel {
			marker = "> "
		}
		line := fmt.Sprintf("%s%s  (%.0fs defense)", marker, dc.Name, dc.Duration)
		ebitenutil.DebugPrintAt(screen, line, 8, y)
		y += 18
	}

	ebitenutil.DebugPrintAt(screen, "A/D to choose, Enter to confirm", 8, y+12)
}

func (g *Game) drawMenu(screen *ebiten.Image) {
	screen.Fill(color.RGBA{12, 14, 20, 255})
	drawTitle(screen, g.match.Level.Name, 8, 40)
	ebitenutil.DebugPrintAt(screen, "Enter to deploy", 8, 58)

	u := g.progress.LoadUpgrades()
	balance := g.progress.Currency()

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Credits: %d", balance), 8, 90)

	levels := []int{u.Processing, u.Memory, u.Cooling, u.Storage, u.Firewall}
	y := 110
	for i, id := range meta.UpgradeIDs {
		level := levels[i]
		line := fmt.Sprintf("%d) %-10s L%d/%d", i+1, id, level, meta.MaxUpgradeLevel)
		if level < meta.MaxUpgradeLevel {
			line += fmt.Sprintf("  cost %d", meta.UpgradeCost(level))
		} else {
			line += "  MAX"
		}
		ebitenutil.DebugPrintAt(screen, line, 8, y)
		y += 16
	}
	ebitenutil.DebugPrintAt(screen, "Press a digit to buy an upgrade", 8, y+8)
}

func (g *Game) drawChoice(screen *ebiten.Image, m *sim.Match, sw, sh int) {
	dimScreen(screen, sw, sh, 180)

	title := "LEVEL UP! Choose:"
	if m.Choice.Evolution {
		title = "EVOLUTION AVAILABLE!"
	}
	x, y := 12, 100
	drawTitle(screen, title, x, y)
	y += 20

	for i, opt := range m.Choice.Options {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d) %s", i+1, opt.Title), x, y)
		y += 14
		ebitenutil.DebugPrintAt(screen, "   "+opt.Desc, x, y)
		y += 20
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Press 1-%d", len(m.Choice.Options)), x, y)
}

func (g *Game) drawMatchEnd(screen *ebiten.Image, m *sim.Match, sw, sh int) {
	dimScreen(screen, sw, sh, 180)

	title := "BREACH SUCCESSFUL"
	if m.Phase == sim.PhaseVictory {
		title = "DATACENTER DEFENDED"
	}
	drawTitle(screen, title, 8, 90)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d", m.FinalScore), 8, 110)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Credits earned: %d", m.Award), 8, 126)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Time: %.1fs  Level: %d", m.Elapsed, m.Player.Level), 8, 142)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Kills: %d  Damage taken: %.0f", m.Stats.Kills, m.Stats.DamageTaken), 8, 158)
	ebitenutil.DebugPrintAt(screen, "Press R to return", 8, 182)
}

func dimScreen(screen *ebiten.Image, sw, sh int, alpha uint8) {
	vector.DrawFilledRect(
		screen,
		0, 0,
		float32(sw), float32(sh),
		color.RGBA{0, 0, 0, alpha},
		false,
	)
}

func drawTitle(screen *ebiten.Image, s string, x, y int) {
	text.Draw(screen, s, titleFace, x, y, color.White)
}
