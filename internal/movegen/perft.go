package movegen

import "github.com/kestrelchess/kestrel/internal/position"

// Perft counts the leaf nodes reachable in exactly depth plies from p,
// playing every legal move at every level. Used by the test suite to
// validate the move generator against known node counts from the standard
// starting position.
func Perft(p *position.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	pseudo := GeneratePseudoLegal(p, false)
	var nodes uint64
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.At(i)
		if !IsLegalMove(p, m) {
			continue
		}
		p.DoMove(m)
		nodes += Perft(p, depth-1)
		p.UndoMove()
	}
	return nodes
}
