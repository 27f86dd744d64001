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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrelchess/kestrel/internal/killers"
	"github.com/kestrelchess/kestrel/internal/position"
	"github.com/kestrelchess/kestrel/internal/transpositiontable"
	. "github.com/kestrelchess/kestrel/internal/types"
)

func mustPosition(t *testing.T, fen string) *position.Position {
	t.Helper()
	p, err := position.NewPositionFromFEN(fen)
	require.NoError(t, err)
	return p
}

func noStopChannel() <-chan string {
	return make(chan string)
}

func TestNegamaxFindsBackRankMateInOne(t *testing.T) {
	s := NewSearch()
	p := mustPosition(t, "6k1/5ppp/8/8/8/8/8/4R1K1 w - - 0 1")
	value := s.negamax(p, 2, -ValueInfinite, ValueInfinite, 0, true, noStopChannel())
	require.EqualValues(t, CheckmateValue, value)
	require.Equal(t, SqE1, s.rootBestMove.From())
	require.Equal(t, SqE8, s.rootBestMove.To())
}

func TestNegamaxDetectsStalemateAsDraw(t *testing.T) {
	s := NewSearch()
	// Black king a8 has no legal move and is not in check.
	p := mustPosition(t, "k7/8/1QK5/8/8/8/8/8 b - - 0 1")
	value := s.negamax(p, 1, -ValueInfinite, ValueInfinite, 0, true, noStopChannel())
	require.EqualValues(t, ValueZero, value)
	require.EqualValues(t, 1, s.statistics.Stalemates)
}

func TestNegamaxDetectsCheckmateAsLoss(t *testing.T) {
	s := NewSearch()
	// White to move, already mated (fool's mate final position).
	p := mustPosition(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	value := s.negamax(p, 1, -ValueInfinite, ValueInfinite, 0, true, noStopChannel())
	require.EqualValues(t, -CheckmateValue, value)
}

func TestQuiesceStandsPatWithNoCaptures(t *testing.T) {
	s := NewSearch()
	p := mustPosition(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	value := s.quiesce(p, -ValueInfinite, ValueInfinite, noStopChannel())
	require.EqualValues(t, s.eval.Evaluate(p), value)
}

func TestQuiesceTakesAFreeHangingQueen(t *testing.T) {
	s := NewSearch()
	p := mustPosition(t, "4k3/8/8/4q3/4R3/8/8/4K3 w - - 0 1")
	standPat := s.eval.Evaluate(p)
	value := s.quiesce(p, -ValueInfinite, ValueInfinite, noStopChannel())
	require.Greater(t, value, standPat)
}

func TestMvvLvaRanksPawnTakesQueenAboveQueenTakesQueen(t *testing.T) {
	pawnTakesQueen := NewMove(SqE4, SqD5, MakePiece(White, Pawn), MakePiece(Black, Queen), false, PtNone)
	queenTakesQueen := NewMove(SqA5, SqD5, MakePiece(White, Queen), MakePiece(Black, Queen), false, PtNone)
	require.Greater(t, mvvLva(pawnTakesQueen), mvvLva(queenTakesQueen))
}

func TestMovePriorityPvMoveOutranksEverything(t *testing.T) {
	kt := killers.NewTable()
	pv := NewMove(SqE2, SqE4, MakePiece(White, Pawn), PieceNone, false, PtNone)
	capture := NewMove(SqD1, SqD8, MakePiece(White, Queen), MakePiece(Black, Queen), false, PtNone)
	require.Greater(t, movePriority(pv, pv, transpositiontable.Exact, kt, 0),
		movePriority(capture, pv, transpositiontable.Exact, kt, 0))
}

func TestMovePriorityKillerOutranksQuietPawnPush(t *testing.T) {
	kt := killers.NewTable()
	killer := NewMove(SqG1, SqF3, MakePiece(White, Knight), PieceNone, false, PtNone)
	kt.Store(3, killer)
	pawnPush := NewMove(SqA2, SqA3, MakePiece(White, Pawn), PieceNone, false, PtNone)
	require.Greater(t, movePriority(killer, NoMove, transpositiontable.NoValueType, kt, 3),
		movePriority(pawnPush, NoMove, transpositiontable.NoValueType, kt, 3))
}
