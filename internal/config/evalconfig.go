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

package config

// evalConfiguration holds the tunables of the tapered static evaluator.
// PawnPassedMidBonus and PawnPassedEndBonus are not read by the evaluator:
// the passed-pawn term uses a fixed bonus per rank advanced.
type evalConfiguration struct {
	UseLazyEval       bool
	LazyEvalThreshold int16

	Tempo int16

	BishopPairBonus int16

	PawnIsolatedMidMalus int16
	PawnIsolatedEndMalus int16
	PawnDoubledMidMalus  int16
	PawnDoubledEndMalus  int16
	PawnPassedMidBonus   int16
	PawnPassedEndBonus   int16

	CastlingRightsBonus int16

	UsePawnCache  bool
	PawnCacheSize int
}

// sets defaults which might be overwritten by config file.
func init() {
	Settings.Eval.UseLazyEval = false
	Settings.Eval.LazyEvalThreshold = 700

	Settings.Eval.Tempo = 28

	Settings.Eval.BishopPairBonus = 28

	Settings.Eval.PawnIsolatedMidMalus = -10
	Settings.Eval.PawnIsolatedEndMalus = -20
	Settings.Eval.PawnDoubledMidMalus = -10
	Settings.Eval.PawnDoubledEndMalus = -30
	Settings.Eval.PawnPassedMidBonus = 20
	Settings.Eval.PawnPassedEndBonus = 40

	Settings.Eval.CastlingRightsBonus = 10

	Settings.Eval.UsePawnCache = true
	Settings.Eval.PawnCacheSize = 4
}

// set defaults for configurations here in case a configuration
// is not available from the config file.
func setupEval() {
}
