//
// FrankyGo - UCI chess engine in GO for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

package search

import (
	"github.com/kestrelchess/kestrel/internal/attacks"
	"github.com/kestrelchess/kestrel/internal/position"
	. "github.com/kestrelchess/kestrel/internal/types"
)

// see runs the static exchange evaluation for move on p: it simulates the
// full capture sequence on move.To(), least-valuable-attacker first,
// stopping early once continuing can no longer change the final result,
// and returns the net material gain for the side making move (spec
// section 4.6).
func see(p *position.Position, move Move) Value {
	if move.IsEnPassant() {
		return 100
	}

	var gain [32]Value

	ply := 0
	toSquare := move.To()
	fromSquare := move.From()
	movedPiece := p.PieceOn(fromSquare)
	nextPlayer := p.SideToMove()

	occupied := p.AllOccupied()
	remainingAttacks := attacksTo(p, toSquare, White) | attacksTo(p, toSquare, Black)

	gain[ply] = p.PieceOn(toSquare).ValueOf()

	for {
		ply++
		nextPlayer = nextPlayer.Flip()

		if move.IsPromotion() {
			gain[ply] = move.PromotionType().ValueOf() - Pawn.ValueOf() - gain[ply-1]
		} else {
			gain[ply] = movedPiece.ValueOf() - gain[ply-1]
		}

		if max(-gain[ply-1], gain[ply]) < 0 {
			break
		}

		remainingAttacks = remainingAttacks.PopSquare(fromSquare)
		occupied = occupied.PopSquare(fromSquare)

		remainingAttacks |= revealedAttacks(p, toSquare, occupied, White) |
			revealedAttacks(p, toSquare, occupied, Black)

		fromSquare = getLeastValuablePiece(p, remainingAttacks, nextPlayer)
		if fromSquare == SqNone {
			break
		}

		movedPiece = p.PieceOn(fromSquare)
	}

	ply--
	for ply > 0 {
		gain[ply-1] = -max(-gain[ply-1], gain[ply])
		ply--
	}

	return gain[0]
}

// attacksTo returns all of color's pieces attacking square, given the
// current board. En passant is excluded, as the move preceding it is
// never itself a capture.
func attacksTo(p *position.Position, square Square, color Color) Bitboard {
	occupied := p.AllOccupied()
	return (attacks.GetPawnAttacks(color.Flip(), square) & p.PiecesBb(color, Pawn)) |
		(attacks.GetAttacks(Knight, square, occupied) & p.PiecesBb(color, Knight)) |
		(attacks.GetAttacks(King, square, occupied) & p.PiecesBb(color, King)) |
		(attacks.GetAttacks(Rook, square, occupied) & (p.PiecesBb(color, Rook) | p.PiecesBb(color, Queen))) |
		(attacks.GetAttacks(Bishop, square, occupied) & (p.PiecesBb(color, Bishop) | p.PiecesBb(color, Queen)))
}

// revealedAttacks returns sliding attacks to square once occupied no longer
// includes a piece that was just removed - only sliders can be revealed
// this way.
func revealedAttacks(p *position.Position, square Square, occupied Bitboard, color Color) Bitboard {
	return (attacks.GetAttacks(Rook, square, occupied) & (p.PiecesBb(color, Rook) | p.PiecesBb(color, Queen)) & occupied) |
		(attacks.GetAttacks(Bishop, square, occupied) & (p.PiecesBb(color, Bishop) | p.PiecesBb(color, Queen)) & occupied)
}

// getLeastValuablePiece returns the square of color's cheapest attacker in
// bitboard, or SqNone if there isn't one.
func getLeastValuablePiece(p *position.Position, bitboard Bitboard, color Color) Square {
	for pt := Pawn; pt <= King; pt++ {
		if attackers := bitboard & p.PiecesBb(color, pt); attackers != 0 {
			return attackers.Lsb()
		}
	}
	return SqNone
}

func max(x, y Value) Value {
	if x > y {
		return x
	}
	return y
}
