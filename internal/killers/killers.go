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

// Package killers holds the search's killer-move table: two non-capturing
// moves per ply that caused a beta cutoff there before, tried early in
// later searches of the same ply since they tend to cut off again.
package killers

import (
	"strconv"
	"strings"

	. "github.com/kestrelchess/kestrel/internal/types"
)

// MaxPly bounds how many ply-indexed killer slots the table keeps.
const MaxPly = MaxDepth + 1

// Table holds two killer-move slots per ply, indexed by distance from the
// search root (spec section 4.8).
type Table struct {
	slots [MaxPly][2]Move
}

// NewTable creates an empty killer table.
func NewTable() *Table {
	return &Table{}
}

// Clear resets every ply's slots, done once at the start of each search.
func (t *Table) Clear() {
	for i := range t.slots {
		t.slots[i] = [2]Move{}
	}
}

// Primary returns ply's primary killer move, or NoMove if none is set.
func (t *Table) Primary(ply int) Move {
	return t.slots[ply][0]
}

// Secondary returns ply's secondary killer move, or NoMove if none is set.
func (t *Table) Secondary(ply int) Move {
	return t.slots[ply][1]
}

// IsKiller reports whether m is either of ply's killer moves.
func (t *Table) IsKiller(ply int, m Move) bool {
	return m == t.slots[ply][0] || m == t.slots[ply][1]
}

// Store records a cutoff move at ply. Per spec section 4.8 this is only
// called for non-capturing moves that caused a beta cutoff; a move that
// already is the primary killer is left alone, otherwise it becomes the
// new primary and bumps the old primary down to secondary.
func (t *Table) Store(ply int, m Move) {
	if m == t.slots[ply][0] {
		return
	}
	t.slots[ply][1] = t.slots[ply][0]
	t.slots[ply][0] = m
}

func (t *Table) String() string {
	var sb strings.Builder
	for ply, pair := range t.slots {
		if pair[0] == NoMove && pair[1] == NoMove {
			continue
		}
		sb.WriteString("ply ")
		sb.WriteString(strconv.Itoa(ply))
		sb.WriteString(": ")
		sb.WriteString(pair[0].StringUci())
		sb.WriteString(" ")
		sb.WriteString(pair[1].StringUci())
		sb.WriteString("\n")
	}
	return sb.String()
}
