package sim

import "math/rand"

// All randomness flows through one injected, seedable source. The call count
// is tracked so a snapshot can replay the stream to the same position.

func (m *Match) ensureRNG() {
	if m.rng != nil {
		return
	}
	if m.rngSeed == 0 {
		m.rngSeed = 1
	}
	m.rng = rand.New(rand.NewSource(m.rngSeed))
}

func (m *Match) randFloat32() float32 {
	m.ensureRNG()
	m.rngCalls++
	return m.rng.Float32()
}

func (m *Match) randIntn(n int) int {
	m.ensureRNG()
	m.rngCalls++
	return m.rng.Intn(n)
}
