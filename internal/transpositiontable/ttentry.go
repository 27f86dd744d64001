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

package transpositiontable

import (
	. "github.com/kestrelchess/kestrel/internal/types"
)

// ValueType records whether a stored search value is exact or a bound, per
// the alpha-beta cutoff that produced it (spec section 4.7).
type ValueType uint8

const (
	// NoValueType marks an empty or not-yet-filled slot.
	NoValueType ValueType = iota
	Exact
	Lowerbound
	Upperbound
)

// TtEntrySize is the approximate per-entry footprint used to size the table
// from a megabyte budget; Move is a small value struct rather than the
// bit-packed uint32 a more space-conscious engine would use.
const TtEntrySize = 24

// TtEntry is one transposition table slot: the position it was computed
// for, the search value at the depth it was stored, and the best move found
// (kept for move ordering even when depth is too shallow to trust the
// value itself).
type TtEntry struct {
	key       uint64
	move      Move
	value     Value
	depth     int8
	valueType ValueType
}

func (e *TtEntry) Key() uint64       { return e.key }
func (e *TtEntry) Move() Move        { return e.move }
func (e *TtEntry) Value() Value      { return e.value }
func (e *TtEntry) Depth() int8       { return e.depth }
func (e *TtEntry) ValueType() ValueType { return e.valueType }
