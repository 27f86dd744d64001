// Package movegen produces pseudo-legal moves from a position's bitboards
// and filters them down to legal ones. It depends only on internal/attacks
// and internal/position; move ordering for search (PV move, killers,
// MVV-LVA) is layered on top by internal/search, not here.
package movegen

import (
	"github.com/kestrelchess/kestrel/internal/attacks"
	"github.com/kestrelchess/kestrel/internal/moveslice"
	"github.com/kestrelchess/kestrel/internal/position"
	. "github.com/kestrelchess/kestrel/internal/types"
)

// GeneratePseudoLegal returns every pseudo-legal move for the side to move.
// When capturesOnly is true, only captures (including en-passant and
// promotion captures) are generated - the set quiescence search needs.
// Capture moves are always placed before non-captures in the returned
// slice (each group keeps generation order), so a caller that wants cheap
// "try captures first" ordering without a full sort gets it for free.
func GeneratePseudoLegal(p *position.Position, capturesOnly bool) *moveslice.MoveSlice {
	ml := moveslice.NewMoveSlice(64)
	generatePawnMoves(p, capturesOnly, ml)
	generatePieceMoves(p, Knight, capturesOnly, ml)
	generatePieceMoves(p, Bishop, capturesOnly, ml)
	generatePieceMoves(p, Rook, capturesOnly, ml)
	generatePieceMoves(p, Queen, capturesOnly, ml)
	generateKingMoves(p, capturesOnly, ml)
	if !capturesOnly {
		generateCastling(p, ml)
	}
	ordered := moveslice.NewMoveSlice(ml.Len())
	for _, m := range *ml {
		if m.IsCapture() {
			ordered.PushBack(m)
		}
	}
	for _, m := range *ml {
		if !m.IsCapture() {
			ordered.PushBack(m)
		}
	}
	return ordered
}

// GenerateLegalMoves returns every legal move for the side to move,
// filtering GeneratePseudoLegal's output through IsLegalMove.
func GenerateLegalMoves(p *position.Position, capturesOnly bool) *moveslice.MoveSlice {
	ml := GeneratePseudoLegal(p, capturesOnly)
	ml.Filter(func(i int) bool {
		return IsLegalMove(p, (*ml)[i])
	})
	return ml
}

var promotionPieces = [4]PieceType{Queen, Rook, Bishop, Knight}

func generatePawnMoves(p *position.Position, capturesOnly bool, ml *moveslice.MoveSlice) {
	us := p.SideToMove()
	them := us.Flip()
	pawns := p.PiecesBb(us, Pawn)
	oppOcc := p.Side(them)
	promRank := us.PromotionRank()
	movedPiece := MakePiece(us, Pawn)

	addPawnMove := func(from, to Square, captured Piece, isEP bool) {
		if to.RankOf() == promRank {
			for _, pt := range promotionPieces {
				ml.PushBack(NewMove(from, to, movedPiece, captured, false, pt))
			}
			return
		}
		ml.PushBack(NewMove(from, to, movedPiece, captured, isEP, PtNone))
	}

	// captures, diagonal
	for _, dir := range [2]Direction{Northeast, Northwest} {
		d := dir
		if us == Black {
			if dir == Northeast {
				d = Southeast
			} else {
				d = Southwest
			}
		}
		targets := pawns.Shift(d) & oppOcc
		targets.ForEach(func(to Square) {
			from := to.To(opposite(d))
			addPawnMove(from, to, p.PieceOn(to), false)
		})
	}

	// en-passant
	if ep := p.EnPassantSquare(); ep != SqNone {
		for _, dir := range [2]Direction{Northeast, Northwest} {
			d := dir
			if us == Black {
				if dir == Northeast {
					d = Southeast
				} else {
					d = Southwest
				}
			}
			src := ep.To(opposite(d))
			if src != SqNone && pawns.Has(src) {
				ml.PushBack(NewMove(src, ep, movedPiece, MakePiece(them, Pawn), true, PtNone))
			}
		}
	}

	if capturesOnly {
		return
	}

	// single and double pushes
	fwd := us.PawnDirection()
	empty := p.AllEmpty()
	single := pawns.Shift(fwd) & empty
	single.ForEach(func(to Square) {
		from := to.To(opposite(fwd))
		addPawnMove(from, to, PieceNone, false)
	})
	doubleStart := us.DoublePushStartRank()
	startPawns := pawns & doubleStart.Bb()
	firstStep := startPawns.Shift(fwd) & empty
	double := firstStep.Shift(fwd) & empty
	double.ForEach(func(to Square) {
		from := to.To(opposite(fwd)).To(opposite(fwd))
		ml.PushBack(NewMove(from, to, movedPiece, PieceNone, false, PtNone))
	})
}

func opposite(d Direction) Direction {
	return -d
}

func generatePieceMoves(p *position.Position, pt PieceType, capturesOnly bool, ml *moveslice.MoveSlice) {
	us := p.SideToMove()
	movedPiece := MakePiece(us, pt)
	occ := p.AllOccupied()
	ownOcc := p.Side(us)
	oppOcc := p.Side(us.Flip())

	pieces := p.PiecesBb(us, pt)
	pieces.ForEach(func(from Square) {
		attacksBb := attacks.GetAttacks(pt, from, occ) &^ ownOcc
		captures := attacksBb & oppOcc
		captures.ForEach(func(to Square) {
			ml.PushBack(NewMove(from, to, movedPiece, p.PieceOn(to), false, PtNone))
		})
		if !capturesOnly {
			quiet := attacksBb &^ oppOcc
			quiet.ForEach(func(to Square) {
				ml.PushBack(NewMove(from, to, movedPiece, PieceNone, false, PtNone))
			})
		}
	})
}

func generateKingMoves(p *position.Position, capturesOnly bool, ml *moveslice.MoveSlice) {
	us := p.SideToMove()
	from := p.KingSquare(us)
	movedPiece := MakePiece(us, King)
	ownOcc := p.Side(us)
	oppOcc := p.Side(us.Flip())

	attacksBb := attacks.GetKingAttacks(from) &^ ownOcc
	captures := attacksBb & oppOcc
	captures.ForEach(func(to Square) {
		ml.PushBack(NewMove(from, to, movedPiece, p.PieceOn(to), false, PtNone))
	})
	if !capturesOnly {
		quiet := attacksBb &^ oppOcc
		quiet.ForEach(func(to Square) {
			ml.PushBack(NewMove(from, to, movedPiece, PieceNone, false, PtNone))
		})
	}
}

// castlingSpec describes one castling move: the right required, the
// squares that must be empty, and the king's from/to squares. Whether the
// king is currently in check or crosses an attacked square is checked by
// IsLegalMove, not here, per spec section 4.4.
type castlingSpec struct {
	right      CastlingRights
	emptyMask  Bitboard
	kingFrom   Square
	kingTo     Square
}

var castlingSpecs = [4]castlingSpec{
	{CastlingWhiteKS, SqF1.Bb() | SqG1.Bb(), SqE1, SqG1},
	{CastlingWhiteQS, SqB1.Bb() | SqC1.Bb() | SqD1.Bb(), SqE1, SqC1},
	{CastlingBlackKS, SqF8.Bb() | SqG8.Bb(), SqE8, SqG8},
	{CastlingBlackQS, SqB8.Bb() | SqC8.Bb() | SqD8.Bb(), SqE8, SqC8},
}

func generateCastling(p *position.Position, ml *moveslice.MoveSlice) {
	cr := p.Castling()
	if cr == CastlingNone {
		return
	}
	us := p.SideToMove()
	occ := p.AllOccupied()
	movedPiece := MakePiece(us, King)
	ownKingHome := SqE1
	if us == Black {
		ownKingHome = SqE8
	}
	for _, spec := range castlingSpecs {
		if !cr.Has(spec.right) || spec.kingFrom != ownKingHome {
			continue
		}
		if occ&spec.emptyMask != 0 {
			continue
		}
		ml.PushBack(NewMove(spec.kingFrom, spec.kingTo, movedPiece, PieceNone, false, PtNone))
	}
}

// IsLegalMove applies m on the live position and rejects it if the moving
// side's king ends up attacked, or - for castling - if the king started in
// check or crossed an attacked square.
func IsLegalMove(p *position.Position, m Move) bool {
	us := p.SideToMove()

	if m.MovedPiece().TypeOf() == King && absFile(m.To(), m.From()) == 2 {
		if p.InCheck(us) {
			return false
		}
		crossSq := SquareOf((fileOf(m.From())+fileOf(m.To()))/2, m.From().RankOf())
		if p.IsSquareAttacked(crossSq, us.Flip()) {
			return false
		}
	}

	p.DoMove(m)
	ok := !p.IsSquareAttacked(p.KingSquare(us), us.Flip())
	p.UndoMove()
	return ok
}

func fileOf(sq Square) File { return sq.FileOf() }

func absFile(a, b Square) int {
	fa, fb := int(a.FileOf()), int(b.FileOf())
	if fa > fb {
		return fa - fb
	}
	return fb - fa
}
