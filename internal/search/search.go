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

// Package search implements the engine's iterative-deepening negamax
// search: principal variation search, quiescence, a transposition table,
// killer-move ordering and aspiration windows. There is deliberately no
// concurrency inside this package - per the engine's two-thread model
// (see internal/uci), a Search runs synchronously on the single engine
// worker goroutine, which polls the command channel for "stop" itself
// every few thousand nodes rather than handing the job to a helper
// goroutine and a timer.
package search

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/op/go-logging"

	"github.com/kestrelchess/kestrel/internal/config"
	"github.com/kestrelchess/kestrel/internal/evaluator"
	"github.com/kestrelchess/kestrel/internal/killers"
	myLogging "github.com/kestrelchess/kestrel/internal/logging"
	"github.com/kestrelchess/kestrel/internal/moveslice"
	"github.com/kestrelchess/kestrel/internal/position"
	"github.com/kestrelchess/kestrel/internal/transpositiontable"
	. "github.com/kestrelchess/kestrel/internal/types"
	"github.com/kestrelchess/kestrel/internal/uciinterface"
	"github.com/kestrelchess/kestrel/internal/util"
)

var out = message.NewPrinter(language.German)

// defaultMovesToGo is the sudden-death "moves to go" heuristic used when
// the client omits movestogo, per spec section 9.
const defaultMovesToGo = 25

// timeSafetyMargin keeps the engine from giving the full remaining clock
// to a single move; the budget always stays at least this far below the
// time actually left. Not numbered in the spec - chosen small enough
// not to cost meaningful search depth on a normal time control.
const timeSafetyMargin = 50 * time.Millisecond

// minTimeForMove floors the computed per-move budget.
const minTimeForMove = 100 * time.Millisecond

// Search holds everything one engine instance needs across its whole
// lifetime: the transposition table, the evaluator, and the killer-move
// table. A single Search is reused call after call; Run resets the
// per-search counters (node count, halt flag, killers) at the start of
// every call.
type Search struct {
	log  *logging.Logger
	slog *logging.Logger

	uciHandler uciinterface.UciDriver

	tt        *transpositiontable.TtTable
	eval      *evaluator.Evaluator
	killerTbl *killers.Table

	statistics   Statistics
	nodesVisited uint64
	haltCounter  int
	halted       bool
	pendingCmd   string

	startTime time.Time
	timeLimit time.Duration

	rootBestMove Move
}

// NewSearch creates a ready-to-use Search, sizing the transposition table
// from config.Settings.Search.TTSize.
func NewSearch() *Search {
	return &Search{
		log:       myLogging.GetLog(),
		slog:      myLogging.GetSearchLog(),
		tt:        transpositiontable.NewTtTable(config.Settings.Search.TTSize),
		eval:      evaluator.NewEvaluator(),
		killerTbl: killers.NewTable(),
	}
}

// NewGame resets state that must not leak across games: the
// transposition table and the killer-move table.
func (s *Search) NewGame() {
	s.tt.Clear()
	s.killerTbl.Clear()
}

// SetUciHandler sets where search progress and results are reported. A
// nil handler is valid; reporting calls are then simply skipped.
func (s *Search) SetUciHandler(h uciinterface.UciDriver) {
	s.uciHandler = h
}

// IsReady signals that the engine has finished whatever setup it needs
// and can accept "go" commands.
func (s *Search) IsReady() {
	if s.uciHandler != nil {
		s.uciHandler.SendReadyOk()
	}
}

// ClearHash clears the transposition table.
func (s *Search) ClearHash() {
	s.tt.Clear()
	if s.uciHandler != nil {
		s.uciHandler.SendInfoString("hash cleared")
	}
}

// ResizeCache resizes (and clears) the transposition table.
func (s *Search) ResizeCache(sizeInMB int) {
	s.tt.Resize(sizeInMB)
	if s.uciHandler != nil {
		s.uciHandler.SendInfoString(out.Sprintf("hash resized: %s", s.tt.String()))
	}
}

// PendingCommand returns the command (if any) that checkHalt observed on
// the stop channel while halting the last Run. The engine worker should
// act on it - "stop" needs no further action, anything else (e.g. "quit")
// should be handled as the next command.
func (s *Search) PendingCommand() string {
	return s.pendingCmd
}

// Statistics returns the counters from the most recent Run.
func (s *Search) Statistics() *Statistics {
	return &s.statistics
}

// NodesVisited returns the node count from the most recent Run.
func (s *Search) NodesVisited() uint64 {
	return s.nodesVisited
}

// Run executes an iterative-deepening search on p under the given
// limits, blocking until the search stops (time/depth exhausted, or a
// command is received on stopCh). p is mutated and restored in place;
// it holds the same value as before Run returns.
func (s *Search) Run(p *position.Position, sl *Limits, stopCh <-chan string) *Result {
	s.startTime = time.Now()
	s.nodesVisited = 0
	s.haltCounter = 0
	s.halted = false
	s.pendingCmd = ""
	s.statistics = Statistics{}
	s.killerTbl.Clear()
	s.rootBestMove = NoMove

	if sl.MoveTime == 0 && !sl.TimeControl && !sl.Infinite && sl.Depth == 0 {
		sl.MoveTime = time.Duration(config.Settings.Search.DefaultMoveTimeMs) * time.Millisecond
		s.log.Infof("go with no limits at all; using default move time %s", sl.MoveTime)
	}

	if sl.Infinite {
		s.timeLimit = 0
	} else {
		s.timeLimit = s.setupTimeControl(p, sl)
	}

	maxDepth := sl.Depth
	if maxDepth <= 0 || maxDepth > MaxDepth {
		maxDepth = MaxDepth
	}

	s.log.Infof("search starting: fen=%s maxDepth=%d timeLimit=%s", p.ToFEN(), maxDepth, s.timeLimit)

	result := s.iterativeDeepening(p, maxDepth, stopCh)
	result.SearchTime = time.Since(s.startTime)

	s.log.Infof("search finished after %s: %s", result.SearchTime, result.String())
	s.log.Debugf("search stats: %s", s.statistics.String())

	if s.uciHandler != nil {
		s.uciHandler.SendResult(result.BestMove, NoMove)
	}
	return result
}

// iterativeDeepening runs negamax at depth 1, 2, 3, ... until the time
// budget, the halt flag, or maxDepth stops it, per spec section 4.8.
func (s *Search) iterativeDeepening(p *position.Position, maxDepth int, stopCh <-chan string) *Result {
	var lastValue Value
	var lastDepth int
	haveResult := false

	for depth := 1; depth <= maxDepth; depth++ {
		if s.timeLimit > 0 && time.Since(s.startTime) > s.timeLimit/2 {
			break
		}

		value := s.searchWithAspiration(p, depth, lastValue, stopCh)
		if s.halted {
			break
		}

		lastValue = value
		lastDepth = depth
		haveResult = true
		s.statistics.CurrentIterationDepth = depth

		if s.uciHandler != nil {
			elapsed := time.Since(s.startTime)
			nodes := s.nodesVisited
			pv := s.extractPV(p)
			s.uciHandler.SendIterationEndInfo(depth, value, nodes, util.Nps(nodes, elapsed), elapsed, *pv)
		}
	}

	result := &Result{PonderMove: NoMove}
	if !haveResult {
		result.BestMove = NoMove
		return result
	}
	result.BestMove = s.rootBestMove
	result.BestValue = lastValue
	result.SearchDepth = lastDepth
	result.Pv = *s.extractPV(p)
	return result
}

// searchWithAspiration runs one iteration's root negamax call, re-
// searching with a widened window on a fail-low or fail-high per spec
// section 4.8. depth 1 (no previous value to center on) always uses the
// full window. Window/alpha/beta arithmetic is done in plain int and
// clamped before each negamax call so repeated doubling cannot overflow
// Value's int16 range.
func (s *Search) searchWithAspiration(p *position.Position, depth int, lastValue Value, stopCh <-chan string) Value {
	infinite := int(ValueInfinite)
	alpha, beta := -infinite, infinite
	window := config.Settings.Search.AspirationWindow
	useAspiration := config.Settings.Search.UseAspiration && depth > 1
	if useAspiration {
		alpha, beta = int(lastValue)-window, int(lastValue)+window
	}

	for {
		value := s.negamax(p, depth, clampValue(alpha), clampValue(beta), 0, true, stopCh)
		if s.halted || !useAspiration {
			return value
		}
		switch {
		case int(value) <= alpha && alpha > -infinite:
			s.statistics.AspirationResearches++
			window *= 2
			alpha = int(lastValue) - window
		case int(value) >= beta && beta < infinite:
			s.statistics.AspirationResearches++
			window *= 2
			beta = int(lastValue) + window
		default:
			return value
		}
	}
}

// clampValue bounds v to Value's alpha-beta window, [-ValueInfinite, ValueInfinite].
func clampValue(v int) Value {
	infinite := int(ValueInfinite)
	if v < -infinite {
		return -ValueInfinite
	}
	if v > infinite {
		return ValueInfinite
	}
	return Value(v)
}

// extractPV walks the transposition table from the current position,
// following Exact entries' best moves until one is missing, not Exact,
// or would repeat a position already seen in this walk (a hash cycle
// guard), then unmakes every move it played to restore p. Per spec
// section 4.8 this runs after the search completes rather than
// maintaining a live triangular PV table during the recursion.
func (s *Search) extractPV(p *position.Position) *moveslice.MoveSlice {
	pv := moveslice.NewMoveSlice(MaxDepth + 1)
	seen := make(map[uint64]bool, MaxDepth+1)
	played := 0

	for {
		key := p.ZobristKey()
		if seen[key] {
			break
		}
		entry, found := s.tt.Probe(key)
		if !found || entry.ValueType() != transpositiontable.Exact || entry.Move() == NoMove {
			break
		}
		seen[key] = true
		pv.PushBack(entry.Move())
		p.DoMove(entry.Move())
		played++
	}

	for i := 0; i < played; i++ {
		p.UndoMove()
	}
	return pv
}

// setupTimeControl computes the soft per-move budget per spec section
// 4.8: time_ms/moves_to_go + increment_ms/2, clamped to at least
// minTimeForMove and to at most time_ms-timeSafetyMargin. An explicit
// movetime overrides this exactly.
func (s *Search) setupTimeControl(p *position.Position, sl *Limits) time.Duration {
	if sl.MoveTime > 0 {
		return sl.MoveTime
	}
	if !sl.TimeControl {
		return 0
	}

	movesToGo := sl.MovesToGo
	if movesToGo <= 0 {
		movesToGo = defaultMovesToGo
	}

	var timeLeft, increment time.Duration
	if p.SideToMove() == White {
		timeLeft, increment = sl.WhiteTime, sl.WhiteInc
	} else {
		timeLeft, increment = sl.BlackTime, sl.BlackInc
	}

	timeForMove := timeLeft/time.Duration(movesToGo) + increment/2
	if timeForMove < minTimeForMove {
		timeForMove = minTimeForMove
	}
	if ceiling := timeLeft - timeSafetyMargin; ceiling > 0 && timeForMove > ceiling {
		timeForMove = ceiling
	}
	return timeForMove
}
