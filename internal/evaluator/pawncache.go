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
	"math"
	"unsafe"

	"github.com/op/go-logging"

	myLogging "github.com/kestrelchess/kestrel/internal/logging"
	. "github.com/kestrelchess/kestrel/internal/types"
)

// MaxPawnCacheMB bounds how large a pawn structure cache a user can request.
const MaxPawnCacheMB = 1_024

type pawnCacheEntry struct {
	key   uint64
	score Score
}

// pawnCache memoizes evaluatePawns by PawnKey, since pawn structure changes
// far less often than the position as a whole - most nodes reuse the
// parent's pawn shape.
type pawnCache struct {
	log         *logging.Logger
	data        []pawnCacheEntry
	hashMask    uint64
	entries     uint64
	hits        uint64
	misses      uint64
}

func newPawnCache(sizeInMByte int) *pawnCache {
	pc := &pawnCache{log: myLogging.GetLog()}
	pc.resize(sizeInMByte)
	return pc
}

func (pc *pawnCache) resize(sizeInMByte int) {
	if sizeInMByte > MaxPawnCacheMB {
		sizeInMByte = MaxPawnCacheMB
	}
	entrySize := uint64(unsafe.Sizeof(pawnCacheEntry{}))
	sizeInByte := uint64(sizeInMByte) * MB
	numEntries := uint64(0)
	if sizeInByte >= entrySize {
		numEntries = 1 << uint64(math.Floor(math.Log2(float64(sizeInByte/entrySize))))
	}
	pc.hashMask = numEntries - 1
	pc.data = make([]pawnCacheEntry, numEntries)
	pc.log.Infof("pawn cache sized to %d MB, %d entries", sizeInMByte, numEntries)
}

func (pc *pawnCache) get(key uint64) (Score, bool) {
	if len(pc.data) == 0 {
		return Score{}, false
	}
	e := &pc.data[key&pc.hashMask]
	if e.key == key {
		pc.hits++
		return e.score, true
	}
	pc.misses++
	return Score{}, false
}

func (pc *pawnCache) put(key uint64, score Score) {
	if len(pc.data) == 0 {
		return
	}
	e := &pc.data[key&pc.hashMask]
	if e.key == 0 {
		pc.entries++
	}
	e.key = key
	e.score = score
}

// clear empties the cache, keeping its current capacity.
func (pc *pawnCache) clear() {
	pc.data = make([]pawnCacheEntry, len(pc.data))
	pc.entries, pc.hits, pc.misses = 0, 0, 0
}
