package sim

import (
	"runtime"

	"breach-lab/internal/jobs"
)

type moveIntent struct {
	Dir        Vec2
	SpeedScale float32
}

func newIntentPool() *jobs.IntentPool {
	workers := runtime.NumCPU() / 2
	if workers < 1 {
		workers = 1
	}
	if workers > 4 {
		workers = 4
	}

	return jobs.NewIntentPool(workers, 16)
}

func (m *Match) drainIntentResults() {
	if m.aiPool == nil {
		return
	}

	for {
		select {
		case res := <-m.aiPool.Res:
			// Drop stale results older than the previous tick window.
			if res.Tick+1 < m.aiTick {
				continue
			}
			m.aiReady[res.Tick] = res
		default:
			return
		}
	}
}

// consumeIntentsForTick prefers a finished worker result; when workers are
// late it computes synchronously from the exact snapshot submitted for that
// tick, so the outcome is identical either way.
func (m *Match) consumeIntentsForTick(tick uint64) map[int]moveIntent {
	if res, ok := m.aiReady[tick]; ok {
		delete(m.aiReady, tick)
		delete(m.aiPending, tick)
		return intentsFromResult(res)
	}

	if req, ok := m.aiPending[tick]; ok {
		delete(m.aiPending, tick)
		return intentsFromResult(jobs.ComputeIntents(req))
	}

	return nil
}

func (m *Match) submitIntentJob(tick uint64) {
	if m.aiPool == nil || len(m.Enemies) == 0 {
		return
	}

	req := jobs.IntentRequest{
		Tick:    tick,
		Time:    m.Elapsed,
		PlayerX: m.Player.Pos.X,
		PlayerY: m.Player.Pos.Y,
		Enemies: make([]jobs.EnemySnapshot, 0, len(m.Enemies)),
	}

	for _, e := range m.Enemies {
		if e.HP <= 0 {
			continue
		}
		req.Enemies = append(req.Enemies, jobs.EnemySnapshot{
			EnemyID: e.ID,
			Role:    roleFromPattern(EnemyDefFor(e.Kind).Move),
			X:       e.Pos.X,
			Y:       e.Pos.Y,
			Radius:  e.R,
		})
	}

	m.aiPending[tick] = req

	select {
	case m.aiPool.Req <- req:
	default:
		// Queue full: the synchronous fallback handles it at consume time.
	}

	m.pruneIntentState(tick)
}

func (m *Match) pruneIntentState(currentTick uint64) {
	if currentTick <= 8 {
		return
	}

	cutoff := currentTick - 8
	for tick := range m.aiPending {
		if tick < cutoff {
			delete(m.aiPending, tick)
		}
	}
	for tick := range m.aiReady {
		if tick < cutoff {
			delete(m.aiReady, tick)
		}
	}
}

func intentsFromResult(res jobs.IntentResult) map[int]moveIntent {
	if len(res.Intents) == 0 {
		return nil
	}

	out := make(map[int]moveIntent, len(res.Intents))
	for _, in := range res.Intents {
		out[in.EnemyID] = moveIntent{
			Dir:        Vec2{X: in.MoveX, Y: in.MoveY},
			SpeedScale: in.SpeedScale,
		}
	}
	return out
}

func roleFromPattern(p MovePattern) jobs.EnemyRole {
	switch p {
	case MoveZigzag:
		return jobs.RoleZigzag
	case MoveStealth:
		return jobs.RoleStealth
	case MoveSwarm:
		return jobs.RoleSwarm
	default:
		return jobs.RoleDirect
	}
}
