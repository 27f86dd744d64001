// Package position represents a chess position: piece bitboards, a mailbox
// board for O(1) piece lookup, castling rights, en-passant target, an
// incremental Zobrist hash, and a move-history stack supporting make/unmake.
//
// Build one with NewPosition() for the standard starting position, or
// NewPositionFromFEN(fen) to load an arbitrary one.
package position

import (
	"fmt"

	. "github.com/kestrelchess/kestrel/internal/types"
)

// StartFen is the FEN of the standard chess starting position.
const StartFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// UndoRecord captures everything DoMove mutates that cannot be recomputed
// from (from, to) alone, so UndoMove can reverse it exactly.
type UndoRecord struct {
	move           Move
	movedPiece     Piece
	capturedPiece  Piece
	wasEnPassant   bool
	promotion      PieceType
	priorCastling  CastlingRights
	priorEnPassant Square
	priorZobrist   uint64
}

// Position is the mutable board state under search.
type Position struct {
	pieces [ColorLength][PtLength]Bitboard
	side   [ColorLength]Bitboard
	board  [SqLength]Piece

	whiteToMove    bool
	castlingRights CastlingRights
	enPassant      Square
	kingSquare     [ColorLength]Square

	history    []UndoRecord
	zobristKey uint64
	pawnKey    uint64
}

// NewPosition returns the standard chess starting position.
func NewPosition() *Position {
	p, err := NewPositionFromFEN(StartFen)
	if err != nil {
		panic(fmt.Sprintf("start position FEN failed to parse: %s", err))
	}
	return p
}

// AllOccupied returns the union of every piece on the board.
func (p *Position) AllOccupied() Bitboard {
	return p.side[White] | p.side[Black]
}

// AllEmpty returns the complement of AllOccupied. This is derived rather
// than stored, so it can never drift out of sync with the piece bitboards.
func (p *Position) AllEmpty() Bitboard {
	return ^p.AllOccupied()
}

// Side returns the occupancy bitboard of color c.
func (p *Position) Side(c Color) Bitboard {
	return p.side[c]
}

// PiecesBb returns the bitboard of piece type pt belonging to color c.
func (p *Position) PiecesBb(c Color, pt PieceType) Bitboard {
	return p.pieces[c][pt]
}

// PieceOn returns the piece occupying sq, or PieceNone if empty.
func (p *Position) PieceOn(sq Square) Piece {
	return p.board[sq]
}

// SideToMove returns the color to move.
func (p *Position) SideToMove() Color {
	if p.whiteToMove {
		return White
	}
	return Black
}

// Castling returns the currently granted castling rights.
func (p *Position) Castling() CastlingRights {
	return p.castlingRights
}

// EnPassantSquare returns the current en-passant target, or SqNone.
func (p *Position) EnPassantSquare() Square {
	return p.enPassant
}

// KingSquare returns the square of color c's king.
func (p *Position) KingSquare(c Color) Square {
	return p.kingSquare[c]
}

// ZobristKey returns the current incremental Zobrist hash.
func (p *Position) ZobristKey() uint64 {
	return p.zobristKey
}

// FullHash recomputes the Zobrist hash from scratch. Tests use it to
// verify the incremental hash maintained by DoMove/UndoMove never drifts.
func (p *Position) FullHash() uint64 {
	return fullHash(p)
}

// PawnKey returns a Zobrist hash over pawns only, incrementally maintained
// the same way as ZobristKey. Positions with identical pawn structure
// (regardless of piece placement elsewhere) share a PawnKey, which the
// evaluator's pawn-structure cache relies on.
func (p *Position) PawnKey() uint64 {
	return p.pawnKey
}

// PlyCount returns the number of half-moves applied since creation, i.e.
// the depth of the undo stack.
func (p *Position) PlyCount() int {
	return len(p.history)
}

// ZobristHistory returns the hash recorded before each move in the undo
// stack, oldest first, followed by the current hash - the sequence
// is_draw_by_threefold_repetition scans for repeated same-side-to-move
// entries.
func (p *Position) ZobristHistory() []uint64 {
	h := make([]uint64, len(p.history)+1)
	for i, ur := range p.history {
		h[i] = ur.priorZobrist
	}
	h[len(p.history)] = p.zobristKey
	return h
}

// GamePhase returns the 0..GamePhaseMax counter derived from remaining
// non-pawn, non-king material (spec section 4.5).
func (p *Position) GamePhase() int {
	phase := 0
	for _, c := range [ColorLength]Color{White, Black} {
		for pt := Knight; pt <= Queen; pt++ {
			phase += p.pieces[c][pt].PopCount() * pt.GamePhaseValue()
		}
	}
	if phase > GamePhaseMax {
		phase = GamePhaseMax
	}
	return phase
}

func (p *Position) putPiece(pc Piece, sq Square) {
	c := pc.ColorOf()
	pt := pc.TypeOf()
	p.pieces[c][pt] = p.pieces[c][pt].PushSquare(sq)
	p.side[c] = p.side[c].PushSquare(sq)
	p.board[sq] = pc
	if pt == King {
		p.kingSquare[c] = sq
	}
	p.zobristKey ^= zobrist.piece[sq][c][pt]
	if pt == Pawn {
		p.pawnKey ^= zobrist.piece[sq][c][pt]
	}
}

func (p *Position) removePiece(pc Piece, sq Square) {
	c := pc.ColorOf()
	pt := pc.TypeOf()
	p.pieces[c][pt] = p.pieces[c][pt].PopSquare(sq)
	p.side[c] = p.side[c].PopSquare(sq)
	p.board[sq] = PieceNone
	p.zobristKey ^= zobrist.piece[sq][c][pt]
	if pt == Pawn {
		p.pawnKey ^= zobrist.piece[sq][c][pt]
	}
}

func (p *Position) movePiece(pc Piece, from, to Square) {
	p.removePiece(pc, from)
	p.putPiece(pc, to)
}

// castlingClearMask holds, for each square, the castling rights forfeited
// the moment a king or corner rook leaves or is captured on that square.
var castlingClearMask [SqLength]CastlingRights

func init() {
	castlingClearMask[SqE1] = CastlingWhiteKS | CastlingWhiteQS
	castlingClearMask[SqE8] = CastlingBlackKS | CastlingBlackQS
	castlingClearMask[SqA1] = CastlingWhiteQS
	castlingClearMask[SqH1] = CastlingWhiteKS
	castlingClearMask[SqA8] = CastlingBlackQS
	castlingClearMask[SqH8] = CastlingBlackKS
}

// castleRookFrom/castleRookTo map a castling king's destination square to
// the rook's from/to squares for the matching rook move.
var castleRookFrom = map[Square]Square{SqG1: SqH1, SqC1: SqA1, SqG8: SqH8, SqC8: SqA8}
var castleRookTo = map[Square]Square{SqG1: SqF1, SqC1: SqD1, SqG8: SqF8, SqC8: SqD8}

// DoMove commits an already-generated, already-legal move. Legality is the
// caller's responsibility; DoMove performs no check of its own.
func (p *Position) DoMove(m Move) {
	from, to := m.From(), m.To()
	movedPiece := p.board[from]
	if movedPiece == PieceNone {
		panic(fmt.Sprintf("DoMove: no piece on %s for move %s", from, m.StringUci()))
	}
	mover := movedPiece.ColorOf()

	capturedPiece := PieceNone
	isEnPassant := movedPiece.TypeOf() == Pawn && p.enPassant != SqNone && to == p.enPassant
	if !isEnPassant {
		capturedPiece = p.board[to]
	}

	promotion := PtNone
	if movedPiece.TypeOf() == Pawn && to.RankOf() == mover.PromotionRank() {
		promotion = m.PromotionType()
		if promotion == PtNone {
			promotion = Queen
		}
	}

	ur := UndoRecord{
		move:           m,
		movedPiece:     movedPiece,
		capturedPiece:  capturedPiece,
		wasEnPassant:   isEnPassant,
		promotion:      promotion,
		priorCastling:  p.castlingRights,
		priorEnPassant: p.enPassant,
		priorZobrist:   p.zobristKey,
	}
	p.history = append(p.history, ur)

	if p.enPassant != SqNone {
		p.zobristKey ^= zobrist.enPassantFile[p.enPassant.FileOf()]
		p.enPassant = SqNone
	}

	isDoublePush := movedPiece.TypeOf() == Pawn && absRank(to.RankOf(), from.RankOf()) == 2

	if isEnPassant {
		capturedSq := to.To(mover.Flip().PawnDirection())
		p.removePiece(MakePiece(mover.Flip(), Pawn), capturedSq)
	} else if capturedPiece != PieceNone {
		p.removePiece(capturedPiece, to)
	}

	p.movePiece(movedPiece, from, to)

	if promotion != PtNone {
		p.removePiece(MakePiece(mover, Pawn), to)
		p.putPiece(MakePiece(mover, promotion), to)
	}

	if movedPiece.TypeOf() == King && absFile(to.FileOf(), from.FileOf()) == 2 {
		p.movePiece(MakePiece(mover, Rook), castleRookFrom[to], castleRookTo[to])
	}

	if p.castlingRights != CastlingNone {
		newRights := p.castlingRights &^ castlingClearMask[from] &^ castlingClearMask[to]
		if newRights != p.castlingRights {
			p.zobristKey ^= castlingKey(p.castlingRights)
			p.zobristKey ^= castlingKey(newRights)
			p.castlingRights = newRights
		}
	}

	if isDoublePush && p.hasAdjacentEnemyPawn(to, mover) {
		p.enPassant = from.To(mover.PawnDirection())
		p.zobristKey ^= zobrist.enPassantFile[to.FileOf()]
	}

	p.whiteToMove = !p.whiteToMove
	p.zobristKey ^= zobrist.sideToMove
}

// hasAdjacentEnemyPawn reports whether an enemy pawn sits beside arrival on
// its own rank, i.e. whether an en-passant capture would actually be
// possible next move. A target square is only recorded when this holds,
// rather than unconditionally after every double push.
func (p *Position) hasAdjacentEnemyPawn(arrival Square, mover Color) bool {
	enemyPawns := p.pieces[mover.Flip()][Pawn]
	f := arrival.FileOf()
	if f > FileA && enemyPawns.Has(SquareOf(f-1, arrival.RankOf())) {
		return true
	}
	if f < FileH && enemyPawns.Has(SquareOf(f+1, arrival.RankOf())) {
		return true
	}
	return false
}

// UndoMove reverses the most recent DoMove. Calling it with no history is a
// programming error and panics.
func (p *Position) UndoMove() {
	n := len(p.history)
	if n == 0 {
		panic("UndoMove: no move to undo")
	}
	ur := p.history[n-1]
	p.history = p.history[:n-1]

	p.whiteToMove = !p.whiteToMove
	mover := p.SideToMove()
	from, to := ur.move.From(), ur.move.To()

	if ur.promotion != PtNone {
		p.removePiece(MakePiece(mover, ur.promotion), to)
		p.putPiece(MakePiece(mover, Pawn), from)
	} else {
		p.movePiece(ur.movedPiece, to, from)
	}

	if ur.movedPiece.TypeOf() == King && absFile(to.FileOf(), from.FileOf()) == 2 {
		p.movePiece(MakePiece(mover, Rook), castleRookTo[to], castleRookFrom[to])
	}

	if ur.wasEnPassant {
		capturedSq := to.To(mover.Flip().PawnDirection())
		p.putPiece(MakePiece(mover.Flip(), Pawn), capturedSq)
	} else if ur.capturedPiece != PieceNone {
		p.putPiece(ur.capturedPiece, to)
	}

	p.castlingRights = ur.priorCastling
	p.enPassant = ur.priorEnPassant
	p.zobristKey = ur.priorZobrist
}

func absFile(a, b File) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func absRank(a, b Rank) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
