package jobs

import (
	"math"
	"sync"
)

// The intent pool computes per-enemy movement directions off the simulation
// goroutine. Requests carry an immutable snapshot and ComputeIntents is a
// pure function of it, so a late worker and the synchronous fallback produce
// byte-identical results.

type EnemyRole int

const (
	RoleDirect EnemyRole = iota
	RoleZigzag
	RoleStealth
	RoleSwarm
)

type EnemySnapshot struct {
	EnemyID int
	Role    EnemyRole
	X       float32
	Y       float32
	Radius  float32
}

type IntentRequest struct {
	Tick    uint64
	Time    float32 // match-time seconds, drives zigzag phase
	PlayerX float32
	PlayerY float32
	Enemies []EnemySnapshot
}

type EnemyIntent struct {
	EnemyID    int
	MoveX      float32
	MoveY      float32
	SpeedScale float32
}

type IntentResult struct {
	Tick    uint64
	Intents []EnemyIntent
}

type IntentPool struct {
	Req  chan IntentRequest
	Res  chan IntentResult
	quit chan struct{}

	closeOnce sync.Once
	wg        sync.WaitGroup
}

func NewIntentPool(workerCount, queueSize int) *IntentPool {
	if workerCount < 1 {
		workerCount = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	p := &IntentPool{
		Req:  make(chan IntentRequest, queueSize),
		Res:  make(chan IntentResult, queueSize),
		quit: make(chan struct{}),
	}

	p.wg.Add(workerCount)
	for range workerCount {
		go p.worker()
	}

	return p
}

func (p *IntentPool) Close() {
	p.closeOnce.Do(func() {
		close(p.quit)
		p.wg.Wait()
	})
}

func (p *IntentPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.quit:
			return

		case req := <-p.Req:
			res := ComputeIntents(req)

			// Never block worker shutdown on a full result queue.
			select {
			case <-p.quit:
				return
			case p.Res <- res:
			default:
			}
		}
	}
}

// stealthDashRange is the distance at which a stealth enemy drops its slow
// creep and lunges.
const stealthDashRange = 180

// ComputeIntents resolves the movement pattern of every enemy in the
// snapshot. Swarm members blend their chase direction with the swarm
// centroid so they clump while closing in.
func ComputeIntents(req IntentRequest) IntentResult {
	out := IntentResult{
		Tick:    req.Tick,
		Intents: make([]EnemyIntent, len(req.Enemies)),
	}

	var cx, cy float32
	var swarmN int
	for _, e := range req.Enemies {
		if e.Role == RoleSwarm {
			cx += e.X
			cy += e.Y
			swarmN++
		}
	}
	if swarmN > 0 {
		cx /= float32(swarmN)
		cy /= float32(swarmN)
	}

	for i, e := range req.Enemies {
		toX := req.PlayerX - e.X
		toY := req.PlayerY - e.Y
		dist := float32(math.Sqrt(float64(toX*toX + toY*toY)))
		dirX, dirY := normalize(toX, toY)

		scale := float32(1)
		switch e.Role {
		case RoleZigzag:
			// weave: chase direction plus an oscillating perpendicular
			// component, phase-offset per enemy
			phase := float64(req.Time*6) + float64(e.EnemyID)
			weave := float32(math.Sin(phase)) * 0.8
			dirX, dirY = normalize(dirX-dirY*weave, dirY+dirX*weave)

		case RoleStealth:
			if dist > stealthDashRange {
				scale = 0.55
			} else {
				scale = 1.45
			}

		case RoleSwarm:
			if swarmN > 1 {
				cohX, cohY := normalize(cx-e.X, cy-e.Y)
				dirX, dirY = normalize(dirX*0.75+cohX*0.25, dirY*0.75+cohY*0.25)
			}
			scale = 1.05
		}

		out.Intents[i] = EnemyIntent{
			EnemyID:    e.EnemyID,
			MoveX:      dirX,
			MoveY:      dirY,
			SpeedScale: scale,
		}
	}

	return out
}

func normalize(x, y float32) (float32, float32) {
	m2 := x*x + y*y
	if m2 == 0 {
		return 0, 0
	}

	inv := float32(1.0 / math.Sqrt(float64(m2)))
	return x * inv, y * inv
}
