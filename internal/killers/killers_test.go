package killers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/kestrelchess/kestrel/internal/types"
)

func move(from, to Square) Move {
	return NewMove(from, to, MakePiece(White, Pawn), PieceNone, false, PtNone)
}

func TestStoreSetsPrimary(t *testing.T) {
	kt := NewTable()
	m := move(SqE2, SqE4)
	kt.Store(3, m)
	assert.Equal(t, m, kt.Primary(3))
	assert.Equal(t, NoMove, kt.Secondary(3))
}

func TestStoreShiftsPrimaryToSecondary(t *testing.T) {
	kt := NewTable()
	first := move(SqE2, SqE4)
	second := move(SqD2, SqD4)
	kt.Store(1, first)
	kt.Store(1, second)
	assert.Equal(t, second, kt.Primary(1))
	assert.Equal(t, first, kt.Secondary(1))
}

func TestStoreIgnoresRepeatOfPrimary(t *testing.T) {
	kt := NewTable()
	m := move(SqE2, SqE4)
	kt.Store(2, m)
	kt.Store(2, m)
	assert.Equal(t, m, kt.Primary(2))
	assert.Equal(t, NoMove, kt.Secondary(2))
}

func TestIsKiller(t *testing.T) {
	kt := NewTable()
	m := move(SqG1, SqF3)
	kt.Store(5, m)
	assert.True(t, kt.IsKiller(5, m))
	assert.False(t, kt.IsKiller(5, move(SqB1, SqC3)))
	assert.False(t, kt.IsKiller(6, m))
}

func TestClearResetsAllPlies(t *testing.T) {
	kt := NewTable()
	kt.Store(0, move(SqE2, SqE4))
	kt.Clear()
	assert.Equal(t, NoMove, kt.Primary(0))
}
