package evaluator

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

// A knight shuffle that returns both sides to their starting squares every
// four plies reaches the starting position for the third time after two
// full cycles, which IsDrawByThreefoldRepetition must catch.
func TestIsDrawByThreefoldRepetition(t *testing.T) {
	p := position.NewPosition()
	require.False(t, IsDrawByThreefoldRepetition(p))

	shuffle := []Move{
		NewMove(SqB1, SqA3, MakePiece(White, Knight), PieceNone, false, PtNone),
		NewMove(SqB8, SqA6, MakePiece(Black, Knight), PieceNone, false, PtNone),
		NewMove(SqA3, SqB1, MakePiece(White, Knight), PieceNone, false, PtNone),
		NewMove(SqA6, SqB8, MakePiece(Black, Knight), PieceNone, false, PtNone),
	}

	for cycle := 0; cycle < 2; cycle++ {
		for _, m := range shuffle {
			p.DoMove(m)
		}
	}
	require.True(t, IsDrawByThreefoldRepetition(p))
}

func TestIsDrawByInsufficientMaterial(t *testing.T) {
	drawn := []string{
		"4k3/8/8/8/8/8/8/4K3 w - - 0 1",    // K vs K
		"4k3/8/8/8/8/8/8/3NK3 w - - 0 1",   // KN vs K
		"4k3/8/8/8/8/8/8/3BK3 w - - 0 1",   // KB vs K
		"2n1k3/8/8/8/8/8/8/3NK3 w - - 0 1", // KN vs KN
	}
	for _, fen := range drawn {
		p := mustPosition(t, fen)
		require.True(t, IsDrawByInsufficientMaterial(p), "expected a draw for %s", fen)
	}

	notDrawn := []string{
		"2b1k3/8/8/8/8/8/3r4/3BK3 w - - 0 1", // an extra rook on the board
		"2b1k3/8/8/8/8/8/3P4/3BK3 w - - 0 1", // an extra pawn on the board
		"2b1k3/8/8/8/8/8/3q4/3BK3 w - - 0 1", // an extra queen on the board
	}
	for _, fen := range notDrawn {
		p := mustPosition(t, fen)
		require.False(t, IsDrawByInsufficientMaterial(p), "expected no draw for %s", fen)
	}
}

// Removing a non-pawn piece from an otherwise-balanced position must lower
// GamePhase (the position is closer to the end game) and Evaluate must keep
// working - no panic, and the score still points at whichever side actually
// holds the surviving material advantage.
func TestGamePhaseMonotonicityOnRemovingANonPawnPiece(t *testing.T) {
	withKnight := mustPosition(t, "r3k3/8/8/8/8/8/8/R2NK3 w - - 0 1")
	withoutKnight := mustPosition(t, "r3k3/8/8/8/8/8/8/R3K3 w - - 0 1")

	require.Greater(t, withKnight.GamePhase(), withoutKnight.GamePhase())
	require.False(t, IsDrawByInsufficientMaterial(withKnight))
	require.False(t, IsDrawByInsufficientMaterial(withoutKnight))

	e := NewEvaluator()
	var scoreWith, scoreWithout Value
	require.NotPanics(t, func() { scoreWith = e.Evaluate(withKnight) })
	require.NotPanics(t, func() { scoreWithout = e.Evaluate(withoutKnight) })

	require.Greater(t, scoreWith, scoreWithout, "white's extra knight on an otherwise-symmetric board should score as an advantage")
}
