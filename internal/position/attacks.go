package position

import (
	"github.com/kestrelchess/kestrel/internal/attacks"
	. "github.com/kestrelchess/kestrel/internal/types"
)

// IsSquareAttacked reports whether any piece of color by attacks sq, given
// the position's current occupancy. Used by the legality filter, both for
// every move (is the king's square attacked after the move?) and for the
// castling check (is the square the king passes through attacked?).
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	occ := p.AllOccupied()

	if attacks.GetPawnAttacks(by.Flip(), sq)&p.pieces[by][Pawn] != 0 {
		return true
	}
	if attacks.GetKnightAttacks(sq)&p.pieces[by][Knight] != 0 {
		return true
	}
	if attacks.GetKingAttacks(sq)&p.pieces[by][King] != 0 {
		return true
	}
	bishopsQueens := p.pieces[by][Bishop] | p.pieces[by][Queen]
	if attacks.GetBishopAttacks(sq, occ)&bishopsQueens != 0 {
		return true
	}
	rooksQueens := p.pieces[by][Rook] | p.pieces[by][Queen]
	if attacks.GetRookAttacks(sq, occ)&rooksQueens != 0 {
		return true
	}
	return false
}

// InCheck reports whether c's king currently sits on an attacked square.
func (p *Position) InCheck(c Color) bool {
	return p.IsSquareAttacked(p.kingSquare[c], c.Flip())
}

// AttackersTo returns every piece of either color attacking sq, given
// occupancy occ. SEE recomputes this after each simulated capture as
// pieces are removed from the board, so occ is passed explicitly rather
// than read from the live position.
func AttackersTo(p *Position, sq Square, occ Bitboard) Bitboard {
	var attackers Bitboard

	if a := attacks.GetPawnAttacks(Black, sq) & p.pieces[White][Pawn] & occ; a != 0 {
		attackers |= a
	}
	if a := attacks.GetPawnAttacks(White, sq) & p.pieces[Black][Pawn] & occ; a != 0 {
		attackers |= a
	}
	knights := (p.pieces[White][Knight] | p.pieces[Black][Knight]) & occ
	attackers |= attacks.GetKnightAttacks(sq) & knights

	kings := (p.pieces[White][King] | p.pieces[Black][King]) & occ
	attackers |= attacks.GetKingAttacks(sq) & kings

	bishopsQueens := (p.pieces[White][Bishop] | p.pieces[White][Queen] | p.pieces[Black][Bishop] | p.pieces[Black][Queen]) & occ
	attackers |= attacks.GetBishopAttacks(sq, occ) & bishopsQueens

	rooksQueens := (p.pieces[White][Rook] | p.pieces[White][Queen] | p.pieces[Black][Rook] | p.pieces[Black][Queen]) & occ
	attackers |= attacks.GetRookAttacks(sq, occ) & rooksQueens

	return attackers
}
