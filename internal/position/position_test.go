package position

import (
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/kestrelchess/kestrel/internal/types"
)

// snapshot captures every observable field DoMove/UndoMove touch, so a
// round trip can be checked field by field rather than just "it didn't
// panic".
type snapshot struct {
	zobrist    uint64
	fullHash   uint64
	allOcc     Bitboard
	white      Bitboard
	black      Bitboard
	board      [64]Piece
	castling   CastlingRights
	enPassant  Square
	sideToMove Color
	whiteKing  Square
	blackKing  Square
}

func takeSnapshot(p *Position) snapshot {
	s := snapshot{
		zobrist:    p.ZobristKey(),
		fullHash:   p.FullHash(),
		allOcc:     p.AllOccupied(),
		white:      p.Side(White),
		black:      p.Side(Black),
		castling:   p.Castling(),
		enPassant:  p.EnPassantSquare(),
		sideToMove: p.SideToMove(),
		whiteKing:  p.KingSquare(White),
		blackKing:  p.KingSquare(Black),
	}
	for sq := SqA1; sq < SqNone; sq++ {
		s.board[sq] = p.PieceOn(sq)
	}
	return s
}

func requireOccupancyInvariants(t *testing.T, p *Position) {
	t.Helper()
	require.Equal(t, p.Side(White)|p.Side(Black), p.AllOccupied())
	require.Equal(t, ^p.AllOccupied(), p.AllEmpty())
}

// TestMakeUnmakeRoundTrip drives a capture, a kingside castle, and a
// promotion through DoMove followed by UndoMove in reverse order, checking
// at every step that the incremental Zobrist hash agrees with a from-scratch
// recompute, that occupancy bitboards stay internally consistent, and that
// every field DoMove touched is restored exactly once its matching undo
// runs.
func TestMakeUnmakeRoundTrip(t *testing.T) {
	p, err := NewPositionFromFEN("1r2k3/P6P/8/3p4/4P3/8/8/R3K2R w KQ - 0 1")
	require.NoError(t, err)

	before := takeSnapshot(p)
	require.Equal(t, before.zobrist, before.fullHash, "hash mismatch before any move")
	requireOccupancyInvariants(t, p)

	moves := []Move{
		NewMove(SqE4, SqD5, MakePiece(White, Pawn), MakePiece(Black, Pawn), false, PtNone),
		NewMove(SqE1, SqG1, MakePiece(White, King), PieceNone, false, PtNone),
		NewMove(SqA7, SqA8, MakePiece(White, Pawn), PieceNone, false, Queen),
	}

	var history []snapshot
	for i, m := range moves {
		p.DoMove(m)
		require.Equal(t, p.ZobristKey(), p.FullHash(), "hash drifted after move %d (%s)", i, m.StringUci())
		requireOccupancyInvariants(t, p)
		history = append(history, takeSnapshot(p))
	}

	require.Equal(t, Queen, p.PieceOn(SqA8).TypeOf())
	require.Equal(t, White, p.PieceOn(SqA8).ColorOf())
	require.Equal(t, SqG1, p.KingSquare(White))
	require.Equal(t, MakePiece(White, Rook), p.PieceOn(SqF1))
	require.Equal(t, Black, p.SideToMove())

	for i := len(moves) - 1; i >= 0; i-- {
		p.UndoMove()
		requireOccupancyInvariants(t, p)
		if i == 0 {
			require.Equal(t, before, takeSnapshot(p), "state did not fully restore after undoing every move")
		} else {
			require.Equal(t, history[i-1], takeSnapshot(p), "state did not match pre-move %d snapshot after undo", i)
		}
	}
}

// TestUndoWithEmptyHistoryPanics documents that UndoMove on a fresh position
// is a programming error, not a silently-ignored no-op.
func TestUndoWithEmptyHistoryPanics(t *testing.T) {
	p := NewPosition()
	require.Panics(t, func() { p.UndoMove() })
}
