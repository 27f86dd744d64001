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
	"time"

	"github.com/kestrelchess/kestrel/internal/config"
	"github.com/kestrelchess/kestrel/internal/evaluator"
	"github.com/kestrelchess/kestrel/internal/killers"
	"github.com/kestrelchess/kestrel/internal/movegen"
	"github.com/kestrelchess/kestrel/internal/moveslice"
	"github.com/kestrelchess/kestrel/internal/position"
	"github.com/kestrelchess/kestrel/internal/transpositiontable"
	. "github.com/kestrelchess/kestrel/internal/types"
)

// haltCheckInterval is how many node visits pass between a negamax/quiesce
// entry actually checking the clock and polling the command channel.
const haltCheckInterval = 5000

// checkHalt is called on every negamax and quiesce entry. Once every
// haltCheckInterval nodes it checks elapsed time against the search's time
// budget and makes a non-blocking attempt to receive from stopCh. The
// protocol only ever hands this channel a "stop" while a search is
// running, so any command received here halts the search; it is stashed
// in s.pendingCmd for the driving loop to act on once Run returns.
func (s *Search) checkHalt(stopCh <-chan string) bool {
	if s.halted {
		return true
	}
	s.haltCounter++
	if s.haltCounter < haltCheckInterval {
		return false
	}
	s.haltCounter = 0
	if s.timeLimit > 0 && time.Since(s.startTime) >= s.timeLimit {
		s.halted = true
		return true
	}
	select {
	case cmd, ok := <-stopCh:
		if ok {
			s.pendingCmd = cmd
			s.halted = true
		}
	default:
	}
	return s.halted
}

// negamax implements the search's core recursion: fail-soft negamax with a
// transposition-table probe/store, principal variation search for moves
// after the first, and killer-move ordering. root is true only for the
// call made directly from iterativeDeepening, which skips the draw check
// (a repeated root position is not a draw against itself) and records the
// iteration's best move.
func (s *Search) negamax(p *position.Position, depth int, alpha, beta Value, ply int, root bool, stopCh <-chan string) Value {
	if s.checkHalt(stopCh) {
		return ValueZero
	}
	s.nodesVisited++
	s.statistics.Nodes = s.nodesVisited

	key := p.ZobristKey()
	ttMove := NoMove
	ttType := transpositiontable.NoValueType
	if config.Settings.Search.UseTT {
		if entry, found := s.tt.Probe(key); found {
			ttMove = entry.Move()
			ttType = entry.ValueType()
			if int(entry.Depth()) >= depth {
				switch ttType {
				case transpositiontable.Exact:
					s.statistics.TTHit++
					return entry.Value()
				case transpositiontable.Lowerbound:
					if entry.Value() >= beta {
						s.statistics.TTCuts++
						return entry.Value()
					}
				case transpositiontable.Upperbound:
					if entry.Value() <= alpha {
						s.statistics.TTCuts++
						return entry.Value()
					}
				}
			}
		} else {
			s.statistics.TTMiss++
		}
	}

	if !root && (evaluator.IsDrawByThreefoldRepetition(p) || evaluator.IsDrawByInsufficientMaterial(p)) {
		return ValueZero
	}

	if depth <= 0 {
		if config.Settings.Search.UseQuiescence {
			return s.quiesce(p, alpha, beta, stopCh)
		}
		return s.eval.Evaluate(p)
	}

	moves := movegen.GeneratePseudoLegal(p, false)
	scoreMoves(moves, ttMove, ttType, s.killerTbl, ply)
	moves.Sort()

	alphaOriginal := alpha
	bestValue := -ValueInfinite
	bestMove := NoMove
	legalMoveSeen := false
	searchedMoves := 0

	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if !movegen.IsLegalMove(p, m) {
			continue
		}
		legalMoveSeen = true

		p.DoMove(m)
		var value Value
		switch {
		case searchedMoves == 0:
			value = -s.negamax(p, depth-1, -beta, -alpha, ply+1, false, stopCh)
		case config.Settings.Search.UsePVS:
			value = -s.negamax(p, depth-1, -alpha-1, -alpha, ply+1, false, stopCh)
			if value > alpha && value < beta {
				s.statistics.PvsResearches++
				value = -s.negamax(p, depth-1, -beta, -alpha, ply+1, false, stopCh)
			}
		default:
			value = -s.negamax(p, depth-1, -beta, -alpha, ply+1, false, stopCh)
		}
		p.UndoMove()
		searchedMoves++

		if s.halted {
			return ValueZero
		}

		if value > bestValue {
			bestValue = value
			bestMove = m
		}
		if value > alpha {
			alpha = value
		}
		if alpha >= beta {
			s.statistics.BetaCuts++
			if searchedMoves == 1 {
				s.statistics.BetaCuts1st++
			}
			if config.Settings.Search.UseKiller && !m.IsCapture() {
				s.killerTbl.Store(ply, m)
			}
			break
		}
	}

	if !legalMoveSeen {
		if p.InCheck(p.SideToMove()) {
			s.statistics.Checkmates++
			return -CheckmateValue
		}
		s.statistics.Stalemates++
		return ValueZero
	}

	if config.Settings.Search.UseTT {
		var vt transpositiontable.ValueType
		switch {
		case bestValue <= alphaOriginal:
			vt = transpositiontable.Upperbound
		case bestValue >= beta:
			vt = transpositiontable.Lowerbound
		default:
			vt = transpositiontable.Exact
		}
		s.tt.Put(key, bestMove, int8(depth), bestValue, vt, ValueNone)
	}

	if root {
		s.rootBestMove = bestMove
		s.statistics.CurrentBestRootMove = bestMove
		s.statistics.CurrentBestRootValue = bestValue
	}

	return bestValue
}

// quiesce resolves captures until the position is quiet, bounding the
// horizon effect at the bottom of the main search. It never touches the
// transposition table, and checkmate/stalemate are not specially detected
// here - a side with no legal captures simply stands pat.
func (s *Search) quiesce(p *position.Position, alpha, beta Value, stopCh <-chan string) Value {
	if s.checkHalt(stopCh) {
		return ValueZero
	}
	s.nodesVisited++
	s.statistics.Nodes = s.nodesVisited
	s.statistics.LeafsEvaluated++

	standPat := s.eval.Evaluate(p)
	if standPat >= beta {
		return beta
	}
	if int(standPat) < int(alpha)-int(Queen.ValueOf()) {
		return alpha
	}
	if standPat > alpha {
		alpha = standPat
	}

	captures := movegen.GeneratePseudoLegal(p, true)
	for i := 0; i < captures.Len(); i++ {
		m := captures.At(i)
		m.SetPriority(mvvLva(m))
		captures.Set(i, m)
	}
	captures.Sort()

	for i := 0; i < captures.Len(); i++ {
		m := captures.At(i)
		if !movegen.IsLegalMove(p, m) {
			continue
		}
		if config.Settings.Search.UseSEE && see(p, m) < 0 {
			continue
		}

		p.DoMove(m)
		value := -s.quiesce(p, -beta, -alpha, stopCh)
		p.UndoMove()

		if s.halted {
			return ValueZero
		}

		if value >= beta {
			return beta
		}
		if value > alpha {
			alpha = value
		}
	}

	return alpha
}

// Move-ordering priority classes, highest first: PV move from an Exact TT
// entry, a cutoff move from a Lowerbound TT entry, promotions, captures
// (ranked by MVV-LVA), killers, pawn pushes, then everything else. Only
// the highest matching class applies - killers don't stack with captures.
const (
	priorityPvMove      = 600
	priorityTTCutoff    = 500
	priorityPromotion   = 400
	priorityCaptureBase = 300
	priorityKiller      = 200
	priorityPawnPush    = 100
)

func scoreMoves(ml *moveslice.MoveSlice, ttMove Move, ttType transpositiontable.ValueType, kt *killers.Table, ply int) {
	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i)
		m.SetPriority(movePriority(m, ttMove, ttType, kt, ply))
		ml.Set(i, m)
	}
}

func movePriority(m Move, ttMove Move, ttType transpositiontable.ValueType, kt *killers.Table, ply int) int32 {
	switch {
	case ttType == transpositiontable.Exact && m == ttMove:
		return priorityPvMove
	case ttType == transpositiontable.Lowerbound && m == ttMove:
		return priorityTTCutoff
	case m.IsPromotion():
		return priorityPromotion
	case m.IsCapture():
		return priorityCaptureBase + mvvLva(m)
	case kt.IsKiller(ply, m):
		return priorityKiller
	case m.MovedPiece().TypeOf() == Pawn:
		return priorityPawnPush
	default:
		return 0
	}
}

// mvvLva ranks a capture by most-valuable-victim, least-valuable-attacker:
// 6*victim_rank + (5-attacker_rank), so pawn-takes-queen outranks
// queen-takes-queen. PieceType's own Pawn..King ordering is the rank.
func mvvLva(m Move) int32 {
	victim := m.CapturedPiece().TypeOf()
	if m.IsEnPassant() {
		victim = Pawn
	}
	attacker := m.MovedPiece().TypeOf()
	return int32(6*int(victim) + (5 - int(attacker)))
}
