package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrelchess/kestrel/internal/position"
	. "github.com/kestrelchess/kestrel/internal/types"
)

func mustPosition(t *testing.T, fen string) *position.Position {
	t.Helper()
	p, err := position.NewPositionFromFEN(fen)
	require.NoError(t, err)
	return p
}

func TestSeeUndefendedPawnCapture(t *testing.T) {
	p := mustPosition(t, "k7/8/8/3p4/4P3/8/8/K7 w - - 0 1")
	m := NewMove(SqE4, SqD5, MakePiece(White, Pawn), MakePiece(Black, Pawn), false, PtNone)
	require.EqualValues(t, 100, see(p, m))
}

func TestSeeLosingKnightForDefendedPawn(t *testing.T) {
	p := mustPosition(t, "k7/8/2p1p3/3p4/8/2N5/8/K7 w - - 0 1")
	m := NewMove(SqC3, SqD5, MakePiece(White, Knight), MakePiece(Black, Pawn), false, PtNone)
	require.EqualValues(t, Pawn.ValueOf()-Knight.ValueOf(), see(p, m))
}

func TestSeeRookTradeIsEven(t *testing.T) {
	p := mustPosition(t, "k7/3r4/8/8/8/8/3R4/K7 w - - 0 1")
	m := NewMove(SqD2, SqD7, MakePiece(White, Rook), MakePiece(Black, Rook), false, PtNone)
	require.EqualValues(t, Rook.ValueOf(), see(p, m))
}

// Bishop on a1, queen on b2, versus a defended pawn on d5 (rook on f5, queen
// on d7 behind it). Taking with the queen walks into the rook recapture and
// the queen has no follow-up attacker on d5, so the exchange settles at
// pawn-for-queen regardless of what sits behind the rook.
func TestSeeQueenCapturesDefendedPawnLosesExchange(t *testing.T) {
	p := mustPosition(t, "6k1/3q4/8/3p1r2/8/8/1Q6/B5K1 w - - 0 1")
	m := NewMove(SqB2, SqD5, MakePiece(White, Queen), MakePiece(Black, Pawn), false, PtNone)
	require.EqualValues(t, Pawn.ValueOf()-Queen.ValueOf(), see(p, m))
}

// Same board with the bishop and queen swapped: the rook still recaptures
// the bishop and the bishop has no follow-up attacker on d5 either, so this
// settles the same way - pawn-for-bishop, a smaller loss than pawn-for-queen
// but still a loss since the rook recapture is never actually refuted.
func TestSeeBishopCapturesDefendedPawnStillLosesExchange(t *testing.T) {
	p := mustPosition(t, "6k1/3q4/8/3p1r2/8/8/1B6/Q5K1 w - - 0 1")
	m := NewMove(SqB2, SqD5, MakePiece(White, Bishop), MakePiece(Black, Pawn), false, PtNone)
	require.EqualValues(t, Pawn.ValueOf()-Bishop.ValueOf(), see(p, m))
}

func TestGetLeastValuablePiecePrefersPawn(t *testing.T) {
	p := mustPosition(t, "k7/8/2p1p3/3p4/8/2N5/8/K7 w - - 0 1")
	attackers := p.PiecesBb(Black, Pawn) | p.PiecesBb(Black, Knight)
	lva := getLeastValuablePiece(p, attackers, Black)
	require.True(t, p.PieceOn(lva).TypeOf() == Pawn)
}
