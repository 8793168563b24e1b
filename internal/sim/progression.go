package sim

import "fmt"

type ChoiceKind int

const (
	ChoiceNewWeapon ChoiceKind = iota
	ChoiceWeaponLevel
	ChoiceNewPassive
	ChoicePassiveLevel
	ChoiceEvolution
)

type ChoiceOption struct {
	Kind    ChoiceKind  `json:"kind"`
	Weapon  WeaponKind  `json:"weapon,omitempty"`
	Passive PassiveKind `json:"passive,omitempty"`
	Title   string      `json:"title"`
	Desc    string      `json:"desc"`
}

// ChoiceState is the open level-up or evolution offer. While active the
// match phase sits in LEVEL_UP/EVOLUTION and no ticks advance the sim.
type ChoiceState struct {
	Active    bool           `json:"active"`
	Evolution bool           `json:"evolution"`
	Options   []ChoiceOption `json:"options,omitempty"`
	Pending   int            `json:"pending"`
}

func (m *Match) passiveLevel(kind PassiveKind) int {
	for _, p := range m.Player.Passives {
		if p.Kind == kind {
			return p.Level
		}
	}
	return 0
}

func (m *Match) passiveBonus(kind PassiveKind) float32 {
	return passiveBonusPerLevel * float32(m.passiveLevel(kind))
}

// recomputeDerivedStats refreshes player stats that depend on passive levels.
// Gaining redundancy grants the added max health as current health too.
func (m *Match) recomputeDerivedStats() {
	m.Player.Bandwidth = 1 + m.passiveBonus(PassiveBandwidth)

	base := m.Cfg.PlayerMaxHP * (1 + 0.1*float32(m.Player.Perm.Memory))
	newMax := base * (1 + m.passiveBonus(PassiveRedundancy))
	if d := newMax - m.Player.MaxHP; d > 0 {
		m.Player.HP += d
	}
	m.Player.MaxHP = newMax
	if m.Player.HP > m.Player.MaxHP {
		m.Player.HP = m.Player.MaxHP
	}
}

// ---------------------------------------------------------------------------
// XP orbs

func (m *Match) dropOrb(pos Vec2, value float32) {
	m.Orbs = append(m.Orbs, DataOrb{
		Pos:   pos,
		R:     m.Cfg.OrbRadius + minf(6, value*0.1),
		Value: value,
		Life:  m.Cfg.OrbLife,
	})
}

// updateOrbs magnet-pulls orbs inside the pickup radius and banks their value
// on contact. Each collected orb is one XP event: at most one level is
// resolved per event, matching the single-step leveling rule.
func (m *Match) updateOrbs(dt float32) {
	pickupR := m.Cfg.PickupRadius * (1 + m.passiveBonus(PassiveMagnet))
	storage := 1 + 0.1*float32(m.Player.Perm.Storage)
	p := m.Player.Pos

	for i := range m.Orbs {
		o := &m.Orbs[i]
		if o.Collected {
			continue
		}
		o.Life -= dt

		if !o.Magnet && circlesOverlap(p, pickupR, o.Pos, o.R) {
			o.Magnet = true
		}
		if o.Magnet {
			to := p.Sub(o.Pos)
			step := m.Cfg.OrbMagnetSpeed * dt
			if d := to.Len(); d > step {
				o.Pos = o.Pos.Add(to.Norm().Mul(step))
			} else {
				o.Pos = p
			}
		}

		if !circlesOverlap(p, m.Player.R, o.Pos, o.R) {
			continue
		}
		gained := o.Value * storage
		m.Player.XP += gained
		m.Stats.XPCollected += gained
		o.Collected = true
		o.Value = 0

		m.levelUpOnce()
	}
}

// levelUpOnce advances exactly one level per collection event, even when the
// banked XP could cross several thresholds at once. Surplus XP stays banked
// and resolves on the next event.
func (m *Match) levelUpOnce() {
	pl := &m.Player
	if pl.XP < pl.XPToNext {
		return
	}

	pl.XP -= pl.XPToNext
	pl.XPToNext *= m.Cfg.XPGrowth
	pl.Level++
	pl.HP = minf(pl.MaxHP, pl.HP+m.Cfg.LevelUpHeal)

	m.Choice.Pending++
}

// ---------------------------------------------------------------------------
// Upgrade / evolution offers

// openChoice turns a pending level-up into an offer. Evolution eligibility is
// checked first; otherwise up to four shuffled upgrade options are drawn. A
// fully maxed build yields no options and the pending level is consumed
// silently rather than failing.
func (m *Match) openChoice() {
	if m.Choice.Pending <= 0 || m.Choice.Active {
		return
	}

	if evos := m.eligibleEvolutions(); len(evos) > 0 {
		m.Choice.Active = true
		m.Choice.Evolution = true
		m.Choice.Options = evos
		m.Phase = PhaseEvolution
		return
	}

	opts := m.generateUpgradeOptions()
	if len(opts) == 0 {
		m.Choice.Pending--
		return
	}

	m.Choice.Active = true
	m.Choice.Evolution = false
	m.Choice.Options = opts
	m.Phase = PhaseLevelUp
}

// eligibleEvolutions lists every weapon at max level, not yet evolved, whose
// designated prerequisite passive is owned at level 3 or higher.
func (m *Match) eligibleEvolutions() []ChoiceOption {
	var out []ChoiceOption
	for _, w := range m.Player.Weapons {
		def := WeaponDefFor(w.Kind)
		if w.Level < def.MaxLevel || w.Evolved {
			continue
		}
		if m.passiveLevel(def.EvolveWith) < 3 {
			continue
		}
		out = append(out, ChoiceOption{
			Kind:   ChoiceEvolution,
			Weapon: w.Kind,
			Title:  fmt.Sprintf("Evolve %s", def.Name),
			Desc:   fmt.Sprintf("%s: x2 damage, +2 projectiles, x1.5 range", def.EvolvedName),
		})
	}
	return out
}

func (m *Match) generateUpgradeOptions() []ChoiceOption {
	var pool []ChoiceOption

	for _, kind := range weaponOrder {
		def := weaponDefs[kind]
		if w := m.findWeapon(kind); w != nil {
			if w.Level < def.MaxLevel {
				pool = append(pool, ChoiceOption{
					Kind:   ChoiceWeaponLevel,
					Weapon: kind,
					Title:  fmt.Sprintf("%s Lv %d", def.Name, w.Level+1),
					Desc:   "+20% damage, -10% cooldown",
				})
			}
			continue
		}
		pool = append(pool, ChoiceOption{
			Kind:   ChoiceNewWeapon,
			Weapon: kind,
			Title:  "New: " + def.Name,
			Desc:   def.Name + " at level 1",
		})
	}

	for _, kind := range passiveOrder {
		def := passiveDefs[kind]
		if p := m.findPassive(kind); p != nil {
			if p.Level < def.MaxLevel {
				pool = append(pool, ChoiceOption{
					Kind:    ChoicePassiveLevel,
					Passive: kind,
					Title:   fmt.Sprintf("%s Lv %d", def.Name, p.Level+1),
					Desc:    def.Desc,
				})
			}
			continue
		}
		pool = append(pool, ChoiceOption{
			Kind:    ChoiceNewPassive,
			Passive: kind,
			Title:   "New: " + def.Name,
			Desc:    def.Desc,
		})
	}

	// Fisher-Yates on the injected source, then take the first four.
	for i := len(pool) - 1; i > 0; i-- {
		j := m.randIntn(i + 1)
		pool[i], pool[j] = pool[j], pool[i]
	}
	if len(pool) > 4 {
		pool = pool[:4]
	}
	return pool
}

func (m *Match) applyChoice(idx int) {
	if !m.Choice.Active || idx < 0 || idx >= len(m.Choice.Options) {
		return
	}
	opt := m.Choice.Options[idx]

	switch opt.Kind {
	case ChoiceNewWeapon:
		if m.findWeapon(opt.Weapon) == nil {
			m.Player.Weapons = append(m.Player.Weapons, m.newWeapon(opt.Weapon))
		}

	case ChoiceWeaponLevel:
		if w := m.findWeapon(opt.Weapon); w != nil && w.Level < WeaponDefFor(opt.Weapon).MaxLevel {
			w.Level++
			w.Damage *= 1.2
			w.Cooldown *= 0.9
		}

	case ChoiceNewPassive:
		if m.findPassive(opt.Passive) == nil {
			m.Player.Passives = append(m.Player.Passives, Passive{Kind: opt.Passive, Level: 1})
			m.recomputeDerivedStats()
		}

	case ChoicePassiveLevel:
		if p := m.findPassive(opt.Passive); p != nil && p.Level < PassiveDefFor(opt.Passive).MaxLevel {
			p.Level++
			m.recomputeDerivedStats()
		}

	case ChoiceEvolution:
		if w := m.findWeapon(opt.Weapon); w != nil && !w.Evolved {
			w.Damage *= 2
			w.ProjCount += 2
			w.Range *= 1.5
			w.Evolved = true
		}
	}

	if m.Choice.Pending > 0 {
		m.Choice.Pending--
	}
	m.Choice.Active = false
	m.Choice.Options = nil
	m.Phase = PhasePlaying

	if m.Choice.Pending > 0 {
		m.openChoice()
	}
}

func (m *Match) findWeapon(kind WeaponKind) *Weapon {
	for i := range m.Player.Weapons {
		if m.Player.Weapons[i].Kind == kind {
			return &m.Player.Weapons[i]
		}
	}
	return nil
}

func (m *Match) findPassive(kind PassiveKind) *Passive {
	for i := range m.Player.Passives {
		if m.Player.Passives[i].Kind == kind {
			return &m.Player.Passives[i]
		}
	}
	return nil
}
