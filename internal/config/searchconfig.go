/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package config

// searchConfiguration is a data structure to hold the configuration of an
// instance of a search. Fields track only what the iterative-deepening
// negamax/PVS/quiescence search this engine runs actually consults - no
// opening book, pondering, null-move pruning, search extensions, or late
// move reductions are implemented, so none of those knobs live here.
type searchConfiguration struct {
	// Quiescence search
	UseQuiescence bool
	UseSEE        bool

	// Move ordering
	UsePVS    bool
	UseKiller bool

	// Transposition Table
	UseTT  bool
	TTSize int

	// Aspiration windows
	UseAspiration    bool
	AspirationWindow int

	// DefaultMoveTimeMs is the budget used for a "go" with no limits at
	// all (no wtime/movetime/depth/infinite) - treated the same as an
	// explicit movetime.
	DefaultMoveTimeMs int
}

// sets defaults which might be overwritten by config file
func init() {
	Settings.Search.UseQuiescence = true
	Settings.Search.UseSEE = true

	Settings.Search.UsePVS = true
	Settings.Search.UseKiller = true

	Settings.Search.UseTT = true
	Settings.Search.TTSize = 128

	Settings.Search.UseAspiration = true
	Settings.Search.AspirationWindow = 25

	Settings.Search.DefaultMoveTimeMs = 2000
}

// set defaults for configurations here in case a configuration
// is not available from the config file
func setupSearch() {
}
