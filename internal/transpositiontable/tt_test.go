package transpositiontable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/kestrelchess/kestrel/internal/types"
)

func TestResizeIsPowerOfTwoEntries(t *testing.T) {
	tt := NewTtTable(1)
	require.Greater(t, tt.maxNumberOfEntries, uint64(0))
	assert.Equal(t, tt.maxNumberOfEntries&(tt.maxNumberOfEntries-1), uint64(0))
	assert.Equal(t, tt.hashKeyMask, tt.maxNumberOfEntries-1)
}

func TestPutAndProbeRoundTrip(t *testing.T) {
	tt := NewTtTable(1)
	move := NewMove(SqE2, SqE4, MakePiece(White, Pawn), PieceNone, false, PtNone)
	tt.Put(12345, move, 4, 50, Exact, 48)

	e, found := tt.Probe(12345)
	require.True(t, found)
	assert.Equal(t, uint64(12345), e.Key())
	assert.Equal(t, move, e.Move())
	assert.EqualValues(t, 50, e.Value())
	assert.Equal(t, Exact, e.ValueType())
	assert.EqualValues(t, 4, e.Depth())
}

func TestProbeMiss(t *testing.T) {
	tt := NewTtTable(1)
	_, found := tt.Probe(999)
	assert.False(t, found)
}

func TestUpperboundAlwaysYieldsToAnything(t *testing.T) {
	tt := NewTtTable(1)
	tt.Resize(1)
	key := uint64(7) & tt.hashKeyMask
	tt.Put(key, NoMove, 2, 10, Upperbound, 10)
	tt.Put(key+tt.maxNumberOfEntries, NoMove, 1, 20, Lowerbound, 20)

	e, found := tt.Probe(key + tt.maxNumberOfEntries)
	require.True(t, found)
	assert.Equal(t, Lowerbound, e.ValueType())
}

func TestExactOfLesserDepthDoesNotReplaceDeeperExact(t *testing.T) {
	tt := NewTtTable(1)
	key := uint64(3) & tt.hashKeyMask
	tt.Put(key, NoMove, 6, 30, Exact, 30)
	tt.Put(key+tt.maxNumberOfEntries, NoMove, 2, 99, Exact, 99)

	e, found := tt.Probe(key)
	require.True(t, found)
	assert.EqualValues(t, 30, e.Value())
	assert.EqualValues(t, 6, e.Depth())
}

func TestSameKeyUpdateKeepsMoveWhenNoneSupplied(t *testing.T) {
	tt := NewTtTable(1)
	move := NewMove(SqD2, SqD4, MakePiece(White, Pawn), PieceNone, false, PtNone)
	tt.Put(55, move, 3, 10, Lowerbound, 10)
	tt.Put(55, NoMove, 5, 15, Exact, 15)

	e, found := tt.Probe(55)
	require.True(t, found)
	assert.Equal(t, move, e.Move())
	assert.Equal(t, Exact, e.ValueType())
}

func TestClearResetsStatsAndEntries(t *testing.T) {
	tt := NewTtTable(1)
	tt.Put(1, NoMove, 1, 1, Exact, 1)
	require.Equal(t, uint64(1), tt.Len())
	tt.Clear()
	assert.Equal(t, uint64(0), tt.Len())
	_, found := tt.Probe(1)
	assert.False(t, found)
}

func TestHashfullZeroSize(t *testing.T) {
	tt := NewTtTable(0)
	assert.Equal(t, 0, tt.Hashfull())
	tt.Put(1, NoMove, 1, 1, Exact, 1)
	_, found := tt.Probe(1)
	assert.False(t, found)
}
