package evaluator

import . "github.com/kestrelchess/kestrel/internal/types"

// Score holds a mid-game and end-game centipawn value, blended by
// Evaluator.taper once every phase-dependent term has been accumulated.
type Score struct {
	MidGameValue Value
	EndGameValue Value
}

// Add accumulates other into s.
func (s *Score) Add(other Score) {
	s.MidGameValue += other.MidGameValue
	s.EndGameValue += other.EndGameValue
}

// Sub subtracts other from s.
func (s *Score) Sub(other Score) {
	s.MidGameValue -= other.MidGameValue
	s.EndGameValue -= other.EndGameValue
}
