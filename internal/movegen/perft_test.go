package movegen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrelchess/kestrel/internal/position"
)

func TestPerftStartingPosition(t *testing.T) {
	p, err := position.NewPositionFromFEN(position.StartFen)
	require.NoError(t, err)

	cases := []struct {
		depth int
		nodes uint64
	}{
		{0, 1},
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
		{5, 4865609},
		{6, 119060324},
	}
	for _, c := range cases {
		require.EqualValues(t, c.nodes, Perft(p, c.depth), "depth %d", c.depth)
	}
}

// Kiwipete: a well-known perft stress position exercising castling, en
// passant, and promotions simultaneously.
func TestPerftKiwipete(t *testing.T) {
	p, err := position.NewPositionFromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	cases := []struct {
		depth int
		nodes uint64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}
	for _, c := range cases {
		require.EqualValues(t, c.nodes, Perft(p, c.depth), "depth %d", c.depth)
	}
}

// Position exercising a discovered-check-only-via-en-passant edge case.
func TestPerftEnPassantPosition(t *testing.T) {
	p, err := position.NewPositionFromFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	require.NoError(t, err)

	cases := []struct {
		depth int
		nodes uint64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
	}
	for _, c := range cases {
		require.EqualValues(t, c.nodes, Perft(p, c.depth), "depth %d", c.depth)
	}
}
