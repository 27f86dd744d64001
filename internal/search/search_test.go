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
	"time"

	"github.com/stretchr/testify/require"

	. "github.com/kestrelchess/kestrel/internal/types"
)

func TestNewSearchIsReady(t *testing.T) {
	s := NewSearch()
	require.NotNil(t, s.tt)
	require.NotNil(t, s.eval)
	require.NotNil(t, s.killerTbl)
	s.IsReady() // no uciHandler installed; must not panic
}

func TestRunFindsLegalBestMoveWithinDepthLimit(t *testing.T) {
	s := NewSearch()
	p := mustPosition(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	sl := &Limits{Depth: 3}
	stopCh := make(chan string)

	result := s.Run(p, sl, stopCh)

	require.NotEqual(t, NoMove, result.BestMove)
	require.Greater(t, s.nodesVisited, uint64(0))
	require.GreaterOrEqual(t, result.SearchDepth, 1)
}

func TestRunFindsBackRankMateInOne(t *testing.T) {
	s := NewSearch()
	p := mustPosition(t, "6k1/5ppp/8/8/8/8/8/4R1K1 w - - 0 1")
	sl := &Limits{Depth: 3}
	stopCh := make(chan string)

	result := s.Run(p, sl, stopCh)

	require.Equal(t, SqE1, result.BestMove.From())
	require.Equal(t, SqE8, result.BestMove.To())
	require.EqualValues(t, CheckmateValue, result.BestValue)
}

func TestRunWithNoLimitsUsesDefaultMoveTime(t *testing.T) {
	s := NewSearch()
	p := mustPosition(t, "8/8/8/4k3/8/8/4P3/4K3 w - - 0 1")
	sl := &Limits{}
	stopCh := make(chan string)

	start := time.Now()
	result := s.Run(p, sl, stopCh)
	elapsed := time.Since(start)

	require.NotEqual(t, NoMove, result.BestMove)
	require.Less(t, elapsed, 3*time.Second)
}

func TestSetupTimeControlUsesExplicitMoveTime(t *testing.T) {
	s := NewSearch()
	p := mustPosition(t, "8/8/8/4k3/8/8/4P3/4K3 w - - 0 1")
	sl := &Limits{TimeControl: true, MoveTime: 1500 * time.Millisecond}
	require.Equal(t, 1500*time.Millisecond, s.setupTimeControl(p, sl))
}

func TestSetupTimeControlDividesRemainingTimeByMovesToGo(t *testing.T) {
	s := NewSearch()
	p := mustPosition(t, "8/8/8/4k3/8/8/4P3/4K3 w - - 0 1")
	sl := &Limits{
		TimeControl: true,
		MovesToGo:   20,
		WhiteTime:   60 * time.Second,
		WhiteInc:    2 * time.Second,
	}
	// 60000/20 + 2000/2 = 3000 + 1000 = 4000ms
	require.Equal(t, 4000*time.Millisecond, s.setupTimeControl(p, sl))
}

func TestSetupTimeControlDefaultsMovesToGoTo25(t *testing.T) {
	s := NewSearch()
	p := mustPosition(t, "8/8/8/4k3/8/8/4P3/4K3 w - - 0 1")
	sl := &Limits{
		TimeControl: true,
		WhiteTime:   60 * time.Second,
		WhiteInc:    2 * time.Second,
	}
	// 60000/25 + 2000/2 = 2400 + 1000 = 3400ms
	require.Equal(t, 3400*time.Millisecond, s.setupTimeControl(p, sl))
}

func TestSetupTimeControlUsesBlackClockWhenBlackToMove(t *testing.T) {
	s := NewSearch()
	p := mustPosition(t, "8/8/8/4k3/8/8/4P3/4K3 b - - 0 1")
	sl := &Limits{
		TimeControl: true,
		MovesToGo:   20,
		BlackTime:   30 * time.Second,
		BlackInc:    0,
	}
	// 30000/20 + 0 = 1500ms
	require.Equal(t, 1500*time.Millisecond, s.setupTimeControl(p, sl))
}

func TestSetupTimeControlClampsToMinimumFloor(t *testing.T) {
	s := NewSearch()
	p := mustPosition(t, "8/8/8/4k3/8/8/4P3/4K3 w - - 0 1")
	sl := &Limits{
		TimeControl: true,
		MovesToGo:   40,
		WhiteTime:   500 * time.Millisecond,
	}
	require.Equal(t, minTimeForMove, s.setupTimeControl(p, sl))
}

func TestSetupTimeControlClampsToSafetyMargin(t *testing.T) {
	s := NewSearch()
	p := mustPosition(t, "8/8/8/4k3/8/8/4P3/4K3 w - - 0 1")
	sl := &Limits{
		TimeControl: true,
		MovesToGo:   1,
		WhiteTime:   120 * time.Millisecond,
		WhiteInc:    2 * time.Second,
	}
	require.Equal(t, 70*time.Millisecond, s.setupTimeControl(p, sl))
}

func TestSetupTimeControlReturnsZeroWithoutTimeControl(t *testing.T) {
	s := NewSearch()
	p := mustPosition(t, "8/8/8/4k3/8/8/4P3/4K3 w - - 0 1")
	require.Equal(t, time.Duration(0), s.setupTimeControl(p, &Limits{}))
}

func TestClampValueBoundsToInfinite(t *testing.T) {
	require.EqualValues(t, ValueInfinite, clampValue(int(ValueInfinite)+10000))
	require.EqualValues(t, -ValueInfinite, clampValue(-int(ValueInfinite)-10000))
	require.EqualValues(t, 42, clampValue(42))
}
