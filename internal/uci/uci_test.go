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

package uci

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrelchess/kestrel/internal/config"
)

func TestUciCommandRepliesWithIdAndOptionsAndUciOk(t *testing.T) {
	u := NewUciHandler()
	out := u.Command("uci")
	require.Contains(t, out, "id name "+engineName)
	require.Contains(t, out, "id author "+engineAuthor)
	require.Contains(t, out, "option name Hash type spin")
	require.True(t, strings.HasSuffix(strings.TrimSpace(out), "uciok"))
}

func TestIsReadyRepliesReadyOk(t *testing.T) {
	u := NewUciHandler()
	out := u.Command("isready")
	require.Equal(t, "readyok\n", out)
}

func TestPositionStartposThenMovesUpdatesBoard(t *testing.T) {
	u := NewUciHandler()
	u.Command("position startpos moves e2e4 e7e5")
	require.Equal(t, "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 1", u.myPosition.ToFEN())
}

func TestPositionFenSetsExactBoard(t *testing.T) {
	u := NewUciHandler()
	fen := "6k1/5ppp/8/8/8/8/8/4R1K1 w - - 0 1"
	u.Command("position fen " + fen)
	require.Equal(t, fen, u.myPosition.ToFEN())
}

func TestPositionWithInvalidMoveReportsError(t *testing.T) {
	u := NewUciHandler()
	out := u.Command("position startpos moves e2e5")
	require.Contains(t, out, "invalid move")
}

func TestGoDepthLimitedReturnsBestmove(t *testing.T) {
	u := NewUciHandler()
	u.Command("position fen 6k1/5ppp/8/8/8/8/8/4R1K1 w - - 0 1")
	out := u.Command("go depth 3")
	require.Contains(t, out, "bestmove e1e8")
}

func TestSetOptionHashResizesTable(t *testing.T) {
	u := NewUciHandler()
	u.Command("setoption name Hash value 32")
	require.Equal(t, 32, config.Settings.Search.TTSize)
}

func TestUnknownCommandIsReportedNotFatal(t *testing.T) {
	u := NewUciHandler()
	out := u.Command("bogus")
	require.Contains(t, out, "unknown command")
}

func TestDisplayCommandPrintsFenAndZobrist(t *testing.T) {
	u := NewUciHandler()
	out := u.Command("d")
	require.Contains(t, out, "fen:")
	require.Contains(t, out, "zobrist:")
}

func TestQuitReturnsTrueFromDispatch(t *testing.T) {
	u := NewUciHandler()
	quit := u.dispatch("quit", make(chan string))
	require.True(t, quit)
}
