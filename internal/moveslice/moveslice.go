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

// Package moveslice provides a growable container of types.Move with the
// insertion-sort-based ordering the search and move generator need: moves
// carry a Priority set by the generator/search, and Sort arranges the
// slice from highest priority to lowest.
package moveslice

import (
	"fmt"
	"strings"
	"sync"

	. "github.com/kestrelchess/kestrel/internal/types"
)

// MoveSlice is a slice of Move with ordering and swap-remove helpers used
// throughout move generation and search.
type MoveSlice []Move

// NewMoveSlice creates a new move slice with the given capacity and 0
// elements. Equivalent to MoveSlice(make([]Move, 0, cap)).
func NewMoveSlice(cap int) *MoveSlice {
	moves := make([]Move, 0, cap)
	return (*MoveSlice)(&moves)
}

// Len returns the number of moves currently stored in the slice.
func (ms *MoveSlice) Len() int {
	return len(*ms)
}

// Cap returns the capacity of the slice.
func (ms *MoveSlice) Cap() int {
	return cap(*ms)
}

// PushBack appends a move to the end of the slice.
func (ms *MoveSlice) PushBack(m Move) {
	*ms = append(*ms, m)
}

// PopBack removes and returns the move from the back of the slice. Panics
// if the slice is empty.
func (ms *MoveSlice) PopBack() Move {
	if len(*ms) <= 0 {
		panic("MoveSlice: PopBack() called on empty slice")
	}
	backMove := (*ms)[len(*ms)-1]
	*ms = (*ms)[:len(*ms)-1]
	return backMove
}

// Front returns the move at the front of the slice. Panics if empty.
func (ms *MoveSlice) Front() Move {
	if len(*ms) <= 0 {
		panic("MoveSlice: Front() called when empty")
	}
	return (*ms)[0]
}

// Back returns the move at the back of the slice. Panics if empty.
func (ms *MoveSlice) Back() Move {
	if len(*ms) <= 0 {
		panic("MoveSlice: Back() called when empty")
	}
	return (*ms)[len(*ms)-1]
}

// At returns the move at index i without removing it. Panics if out of
// bounds.
func (ms *MoveSlice) At(i int) Move {
	if len(*ms) == 0 || i < 0 || i >= len(*ms) {
		panic("MoveSlice: index out of bounds")
	}
	return (*ms)[i]
}

// Set overwrites the move at index i. Panics if out of bounds.
func (ms *MoveSlice) Set(i int, move Move) {
	if len(*ms) == 0 || i < 0 || i >= len(*ms) {
		panic("MoveSlice: index out of bounds")
	}
	(*ms)[i] = move
}

// RemoveSwap removes the move at index i in O(1) by swapping it with the
// last element, so the order of the remaining moves is not preserved. (The
// legality filter in movegen uses Filter, which keeps order.)
func (ms *MoveSlice) RemoveSwap(i int) {
	last := len(*ms) - 1
	(*ms)[i] = (*ms)[last]
	*ms = (*ms)[:last]
}

// Filter rebuilds the slice in place, keeping only elements for which f
// returns true, reusing the underlying array.
func (ms *MoveSlice) Filter(f func(index int) bool) {
	b := (*ms)[:0]
	for i, x := range *ms {
		if f(i) {
			b = append(b, x)
		}
	}
	*ms = b
}

// Clone copies the MoveSlice into a newly created MoveSlice.
func (ms *MoveSlice) Clone() *MoveSlice {
	dest := make([]Move, ms.Len(), ms.Cap())
	copy(dest, *ms)
	return (*MoveSlice)(&dest)
}

// Equals reports whether ms and other hold the same moves in the same
// order.
func (ms *MoveSlice) Equals(other *MoveSlice) bool {
	if ms.Len() != other.Len() {
		return false
	}
	for i, m := range *ms {
		if m != (*other)[i] {
			return false
		}
	}
	return true
}

// ForEach calls f once per index, in stored order.
func (ms *MoveSlice) ForEach(f func(index int)) {
	for index := range *ms {
		f(index)
	}
}

// ForEachParallel calls f once per index from its own goroutine and waits
// for all to finish. f is responsible for its own synchronization if it
// touches shared state.
func (ms *MoveSlice) ForEachParallel(f func(index int)) {
	var wg sync.WaitGroup
	wg.Add(len(*ms))
	for index := range *ms {
		go func(i int) {
			defer wg.Done()
			f(i)
		}(index)
	}
	wg.Wait()
}

// Clear empties the slice while retaining its capacity, so a MoveSlice
// reused every node during search does not churn the garbage collector.
func (ms *MoveSlice) Clear() {
	*ms = (*ms)[:0]
}

// Sort orders moves from highest Priority to lowest using a stable
// insertion sort: move lists generated per node are small and already
// close to sorted once move priorities are applied, so insertion
// sort beats a general-purpose sort in practice.
func (ms *MoveSlice) Sort() {
	l := len(*ms)
	for i := 1; i < l; i++ {
		tmp := (*ms)[i]
		j := i
		for j > 0 && tmp.Priority() > (*ms)[j-1].Priority() {
			(*ms)[j] = (*ms)[j-1]
			j--
		}
		(*ms)[j] = tmp
	}
}

// String renders the slice for debugging, one move per UCI token.
func (ms *MoveSlice) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "MoveSlice: [%d] { ", len(*ms))
	for i, m := range *ms {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(m.String())
	}
	sb.WriteString(" }")
	return sb.String()
}

// StringUci renders the slice as a space-separated list of UCI move
// tokens, the format used for e.g. a "pv" field.
func (ms *MoveSlice) StringUci() string {
	var sb strings.Builder
	for i, m := range *ms {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(m.StringUci())
	}
	return sb.String()
}
