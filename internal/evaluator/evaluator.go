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

// Package evaluator computes a tapered static score for a position:
// material plus piece-square tables, bishop pair, pawn structure, passed
// pawns and castling rights, blended between a mid-game and an end-game
// evaluation by how much material remains on the board.
package evaluator

import (
	"strings"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kestrelchess/kestrel/internal/config"
	myLogging "github.com/kestrelchess/kestrel/internal/logging"
	"github.com/kestrelchess/kestrel/internal/position"
	. "github.com/kestrelchess/kestrel/internal/types"
)

var out = message.NewPrinter(language.German)

// Evaluator computes static_eval(position) (spec section 4.5): material and
// piece-square values, tempo, bishop pair, pawn structure, passed pawns and
// castling rights, tapered by game phase and returned from the side to
// move's perspective.
type Evaluator struct {
	log       *logging.Logger
	pawnCache *pawnCache
}

// NewEvaluator creates an Evaluator with a pawn-structure cache sized from
// configuration.
func NewEvaluator() *Evaluator {
	e := &Evaluator{log: myLogging.GetLog()}
	if config.Settings.Eval.UsePawnCache {
		e.pawnCache = newPawnCache(config.Settings.Eval.PawnCacheSize)
	}
	return e
}

// lazyThreshold scales the lazy-eval early-exit bound by game phase: deeper
// into the end game, material/PST alone is less conclusive, so the bound
// widens towards LazyEvalThreshold*2.
func lazyThreshold(phase int) Value {
	base := int(config.Settings.Eval.LazyEvalThreshold)
	return Value(base + base*(GamePhaseMax-phase)/GamePhaseMax)
}

// Evaluate returns static_eval(p) from the side-to-move's perspective.
func (e *Evaluator) Evaluate(p *position.Position) Value {
	if IsDrawByInsufficientMaterial(p) {
		return ValueZero
	}

	us := p.SideToMove()
	phase := p.GamePhase()

	var score Score
	score.Add(materialAndPst(p, White))
	score.Sub(materialAndPst(p, Black))

	if phase > 0 {
		score.MidGameValue += config.Settings.Eval.Tempo * tempoSign(us)
	}

	if config.Settings.Eval.UseLazyEval {
		blended := taper(score, phase)
		if abs16(int16(blended)) > int16(lazyThreshold(phase)) {
			return orient(blended, us)
		}
	}

	score.Add(bishopPairScore(p, White))
	score.Sub(bishopPairScore(p, Black))

	score.Add(e.evaluatePawns(p))

	score.Add(castlingRightsScore(p, White))
	score.Sub(castlingRightsScore(p, Black))

	return orient(taper(score, phase), us)
}

func tempoSign(us Color) int16 {
	if us == White {
		return 1
	}
	return -1
}

// taper blends s's mid-game and end-game halves by phase, a 0..GamePhaseMax
// counter where GamePhaseMax is a full, untouched set of officers.
func taper(s Score, phase int) Value {
	scaled := (phase * 256) / GamePhaseMax
	return Value((int(s.MidGameValue)*scaled + int(s.EndGameValue)*(256-scaled)) / 256)
}

// orient flips a White-relative score to the side to move's perspective.
func orient(v Value, us Color) Value {
	if us == Black {
		return -v
	}
	return v
}

func abs16(v int16) int16 {
	if v < 0 {
		return -v
	}
	return v
}

// materialAndPst sums piece value plus piece-square value for every piece
// of color c, all from White's point of view (Black pieces look up the
// vertically mirrored square).
func materialAndPst(p *position.Position, c Color) Score {
	var score Score
	for pt := Pawn; pt <= King; pt++ {
		p.PiecesBb(c, pt).ForEach(func(sq Square) {
			pstSq := sq
			if c == Black {
				pstSq = sq.FlipVertical()
			}
			material := pt.ValueOf()
			score.MidGameValue += material + PstMid(pt, pstSq)
			score.EndGameValue += material + PstEnd(pt, pstSq)
		})
	}
	return score
}

func bishopPairScore(p *position.Position, c Color) Score {
	if p.PiecesBb(c, Bishop).PopCount() < 2 {
		return Score{}
	}
	bonus := config.Settings.Eval.BishopPairBonus
	return Score{MidGameValue: bonus, EndGameValue: bonus}
}

// castlingRightsScore penalizes a side that has neither castled nor retains
// any castling right: king safety was never secured and never will be.
func castlingRightsScore(p *position.Position, c Color) Score {
	rights := p.Castling()
	hasRights := rights.Has(KingSide(c)) || rights.Has(QueenSide(c))
	if hasRights || hasCastledAway(p, c) {
		return Score{}
	}
	malus := -config.Settings.Eval.CastlingRightsBonus
	return Score{MidGameValue: malus, EndGameValue: malus / 2}
}

// hasCastledAway reports whether c's king sits off its home square. It does
// not check how the king got there: a king that castled and a king that
// walked off e1/e8 are treated alike.
func hasCastledAway(p *position.Position, c Color) bool {
	home := SqE1
	if c == Black {
		home = SqE8
	}
	return p.KingSquare(c) != home
}

// IsDrawByInsufficientMaterial reports whether neither side has enough
// material to force mate: no pawns, rooks or queens, and at most one minor
// piece per side (spec section 4.5).
func IsDrawByInsufficientMaterial(p *position.Position) bool {
	for _, c := range [ColorLength]Color{White, Black} {
		if p.PiecesBb(c, Pawn) != 0 || p.PiecesBb(c, Rook) != 0 || p.PiecesBb(c, Queen) != 0 {
			return false
		}
		minors := p.PiecesBb(c, Knight).PopCount() + p.PiecesBb(c, Bishop).PopCount()
		if minors > 1 {
			return false
		}
	}
	return true
}

// IsDrawByThreefoldRepetition reports whether the current Zobrist hash
// recurs at least three times among same-side-to-move history entries
// (spec section 4.5): the history alternates side to move every ply, so
// only every other entry can repeat the current position.
func IsDrawByThreefoldRepetition(p *position.Position) bool {
	history := p.ZobristHistory()
	current := p.ZobristKey()
	count := 0
	for i := len(history) - 1; i >= 0; i -= 2 {
		if history[i] == current {
			count++
			if count >= 3 {
				return true
			}
		}
	}
	return false
}

// Report renders a human-readable breakdown of the evaluation, used by the
// UCI adapter's debug "d"/"display" command.
func (e *Evaluator) Report(p *position.Position) string {
	var report strings.Builder
	report.WriteString("Evaluation Report\n")
	report.WriteString("=============================================\n")
	report.WriteString(out.Sprintf("Side to move : %s\n", p.SideToMove()))
	report.WriteString(out.Sprintf("Game phase   : %d/%d\n", p.GamePhase(), GamePhaseMax))
	report.WriteString(out.Sprintf("Eval value   : %d (side to move's perspective)\n", e.Evaluate(p)))
	return report.String()
}
