package input

// State holds the movement keys currently held down. The simulation treats
// held keys as continuous directional intent and normalizes diagonals itself.
type State struct {
	Up    bool `json:"up"`
	Down  bool `json:"down"`
	Left  bool `json:"left"`
	Right bool `json:"right"`
}

func (s State) Any() bool {
	return s.Up || s.Down || s.Left || s.Right
}
