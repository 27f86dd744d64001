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

// Package transpositiontable implements the search's position cache: a
// fixed-size, power-of-2-sized array of TtEntry slots addressed by the
// low bits of the Zobrist key. It is not thread safe; Resize and Clear
// must not run concurrently with a search probing or filling the table.
package transpositiontable

import (
	"math"
	"unsafe"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	myLogging "github.com/kestrelchess/kestrel/internal/logging"
	. "github.com/kestrelchess/kestrel/internal/types"
	"github.com/kestrelchess/kestrel/internal/util"
)

var out = message.NewPrinter(language.German)

// MaxSizeInMB is the largest table Resize builds; larger requests, including
// UCI Hash values above it, are reduced to this size with an error log.
const MaxSizeInMB = 65_536

// TtTable is the transposition table.
type TtTable struct {
	log                *logging.Logger
	data               []TtEntry
	sizeInByte         uint64
	hashKeyMask        uint64
	maxNumberOfEntries uint64
	numberOfEntries    uint64
	Stats              TtStats
}

// TtStats holds statistical data on tt usage.
type TtStats struct {
	numberOfPuts       uint64
	numberOfCollisions uint64
	numberOfOverwrites uint64
	numberOfUpdates    uint64
	numberOfProbes     uint64
	numberOfHits       uint64
	numberOfMisses     uint64
}

// NewTtTable creates a table sized to at most sizeInMByte megabytes.
func NewTtTable(sizeInMByte int) *TtTable {
	tt := TtTable{log: myLogging.GetLog()}
	tt.Resize(sizeInMByte)
	return &tt
}

// Resize rebuilds the table with a new capacity, discarding all entries.
func (tt *TtTable) Resize(sizeInMByte int) {
	if sizeInMByte > MaxSizeInMB {
		tt.log.Error(out.Sprintf("Requested size for TT of %d MB reduced to max of %d MB", sizeInMByte, MaxSizeInMB))
		sizeInMByte = MaxSizeInMB
	}

	tt.sizeInByte = uint64(sizeInMByte) * MB
	tt.maxNumberOfEntries = 0
	if tt.sizeInByte >= TtEntrySize {
		tt.maxNumberOfEntries = 1 << uint64(math.Floor(math.Log2(float64(tt.sizeInByte/TtEntrySize))))
	}
	tt.hashKeyMask = 0
	if tt.maxNumberOfEntries > 0 {
		tt.hashKeyMask = tt.maxNumberOfEntries - 1
	}
	tt.sizeInByte = tt.maxNumberOfEntries * TtEntrySize

	tt.data = make([]TtEntry, tt.maxNumberOfEntries)
	tt.numberOfEntries = 0

	tt.log.Info(out.Sprintf("TT size %d MByte, capacity %d entries (entry size %d Byte, requested %d MByte)",
		tt.sizeInByte/MB, tt.maxNumberOfEntries, unsafe.Sizeof(TtEntry{}), sizeInMByte))
	tt.log.Debug(util.MemStat())
}

// Probe looks up key. It returns the stored entry and true on a hit, or
// the zero entry and false on a miss.
func (tt *TtTable) Probe(key uint64) (TtEntry, bool) {
	tt.Stats.numberOfProbes++
	if tt.maxNumberOfEntries == 0 {
		tt.Stats.numberOfMisses++
		return TtEntry{}, false
	}
	e := &tt.data[tt.hash(key)]
	if e.key == key && e.valueType != NoValueType {
		tt.Stats.numberOfHits++
		return *e, true
	}
	tt.Stats.numberOfMisses++
	return TtEntry{}, false
}

// Put stores a search result, subject to the replacement policy (spec
// section 4.7): prefer to replace an Upperbound entry; a Lowerbound may
// replace an Upperbound or a shallower Lowerbound; an Exact entry replaces
// anything non-Exact or a shallower Exact. A hit on the same key always
// updates in place, keeping the existing move when none is supplied.
func (tt *TtTable) Put(key uint64, move Move, depth int8, value Value, valueType ValueType, eval Value) {
	if tt.maxNumberOfEntries == 0 {
		return
	}

	entry := &tt.data[tt.hash(key)]
	tt.Stats.numberOfPuts++

	if entry.valueType == NoValueType {
		tt.numberOfEntries++
		*entry = TtEntry{key: key, move: move, value: value, depth: depth, valueType: valueType}
		_ = eval
		return
	}

	if entry.key != key {
		tt.Stats.numberOfCollisions++
		if shouldReplace(entry.valueType, entry.depth, valueType, depth) {
			tt.Stats.numberOfOverwrites++
			*entry = TtEntry{key: key, move: move, value: value, depth: depth, valueType: valueType}
		}
		return
	}

	tt.Stats.numberOfUpdates++
	if move != NoMove {
		entry.move = move
	}
	if depth >= entry.depth {
		entry.depth = depth
		entry.value = value
		entry.valueType = valueType
	}
}

// shouldReplace decides whether a new result (newType, newDepth) should
// overwrite an existing slot holding (oldType, oldDepth).
func shouldReplace(oldType ValueType, oldDepth int8, newType ValueType, newDepth int8) bool {
	switch oldType {
	case Upperbound:
		return true
	case Lowerbound:
		return newType == Exact || (newType == Lowerbound && newDepth >= oldDepth)
	case Exact:
		return newType == Exact && newDepth >= oldDepth
	default:
		return true
	}
}

// Clear empties the table, keeping its current capacity.
func (tt *TtTable) Clear() {
	tt.data = make([]TtEntry, tt.maxNumberOfEntries)
	tt.numberOfEntries = 0
	tt.Stats = TtStats{}
}

// Hashfull reports how full the table is, in permill, as UCI's "hashfull" expects.
func (tt *TtTable) Hashfull() int {
	if tt.maxNumberOfEntries == 0 {
		return 0
	}
	return int((1000 * tt.numberOfEntries) / tt.maxNumberOfEntries)
}

func (tt *TtTable) String() string {
	return out.Sprintf("TT: size %d MB max entries %d of size %d Bytes entries %d (%d%%) puts %d "+
		"updates %d collisions %d overwrites %d probes %d hits %d (%d%%) misses %d (%d%%)",
		tt.sizeInByte/MB, tt.maxNumberOfEntries, unsafe.Sizeof(TtEntry{}), tt.numberOfEntries, tt.Hashfull()/10,
		tt.Stats.numberOfPuts, tt.Stats.numberOfUpdates, tt.Stats.numberOfCollisions, tt.Stats.numberOfOverwrites, tt.Stats.numberOfProbes,
		tt.Stats.numberOfHits, (tt.Stats.numberOfHits*100)/(1+tt.Stats.numberOfProbes),
		tt.Stats.numberOfMisses, (tt.Stats.numberOfMisses*100)/(1+tt.Stats.numberOfProbes))
}

// Len returns the number of occupied entries.
func (tt *TtTable) Len() uint64 {
	return tt.numberOfEntries
}

func (tt *TtTable) hash(key uint64) uint64 {
	return key & tt.hashKeyMask
}
