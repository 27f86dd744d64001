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

package evaluator

import (
	"github.com/kestrelchess/kestrel/internal/attacks"
	"github.com/kestrelchess/kestrel/internal/config"
	"github.com/kestrelchess/kestrel/internal/position"
	. "github.com/kestrelchess/kestrel/internal/types"
)

// evaluatePawns returns the pawn-structure score (isolated, doubled, passed)
// from White's perspective, checking the pawn cache first since pawn shape
// rarely changes between sibling search nodes.
func (e *Evaluator) evaluatePawns(p *position.Position) Score {
	key := p.PawnKey()
	if config.Settings.Eval.UsePawnCache {
		if s, ok := e.pawnCache.get(key); ok {
			return s
		}
	}

	var score Score
	score.Add(pawnFileScore(p, White))
	score.Sub(pawnFileScore(p, Black))
	score.Add(passedPawnScore(p, White))
	score.Sub(passedPawnScore(p, Black))

	if config.Settings.Eval.UsePawnCache {
		e.pawnCache.put(key, score)
	}
	return score
}

// pawnFileScore applies the isolated- and doubled-pawn penalties, counted
// per file as spec section 4.5 describes.
func pawnFileScore(p *position.Position, c Color) Score {
	pawns := p.PiecesBb(c, Pawn)
	var score Score
	for f := FileA; f <= FileH; f++ {
		onFile := (pawns & f.Bb()).PopCount()
		if onFile == 0 {
			continue
		}
		isolated := true
		if f > FileA && pawns&(f-1).Bb() != 0 {
			isolated = false
		}
		if f < FileH && pawns&(f+1).Bb() != 0 {
			isolated = false
		}
		if isolated {
			score.MidGameValue += Value(onFile) * config.Settings.Eval.PawnIsolatedMidMalus
			score.EndGameValue += Value(onFile) * config.Settings.Eval.PawnIsolatedEndMalus
		}
		if onFile > 1 {
			score.MidGameValue += Value(onFile-1) * config.Settings.Eval.PawnDoubledMidMalus
			score.EndGameValue += Value(onFile-1) * config.Settings.Eval.PawnDoubledEndMalus
		}
	}
	return score
}

// passedPawnScore credits each pawn whose front span (its own file and the
// two adjacent files, ahead of it) contains no enemy pawn, scaled by how
// far it has already advanced.
func passedPawnScore(p *position.Position, c Color) Score {
	enemyPawns := p.PiecesBb(c.Flip(), Pawn)
	var score Score
	p.PiecesBb(c, Pawn).ForEach(func(sq Square) {
		if attacks.GetPawnFrontSpan(c, sq)&enemyPawns != 0 {
			return
		}
		rowsAdvanced := rowsAdvancedFor(c, sq)
		bonus := Value(16 * rowsAdvanced)
		score.MidGameValue += bonus
		score.EndGameValue += bonus
	})
	return score
}

func rowsAdvancedFor(c Color, sq Square) int {
	if c == White {
		return int(sq.RankOf()) - int(Rank1) + 1
	}
	return int(Rank8) - int(sq.RankOf()) + 1
}
