package position

import (
	. "github.com/kestrelchess/kestrel/internal/types"
)

// zobristKeys holds the random keys used to build and incrementally update
// a position's Zobrist hash: one key per (square, color, piece), one for
// the side to move, one per castling right, and one per en-passant file.
type zobristKeys struct {
	piece          [SqLength][ColorLength][PtLength]uint64
	sideToMove     uint64
	castling       [4]uint64
	enPassantFile  [FileLength]uint64
}

var zobrist zobristKeys

// prng is a small xorshift64* generator, the same family used by the
// teacher's magic-bitboard initializer, repurposed here to seed Zobrist
// keys deterministically at process start.
type prng struct{ s uint64 }

func newPrng(seed uint64) *prng { return &prng{s: seed} }

func (r *prng) next() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * 2685821657736338717
}

func init() {
	rng := newPrng(1070372)
	for sq := SqA1; sq < SqNone; sq++ {
		for c := 0; c < ColorLength; c++ {
			for pt := 0; pt < PtLength; pt++ {
				zobrist.piece[sq][c][pt] = rng.next()
			}
		}
	}
	zobrist.sideToMove = rng.next()
	for i := range zobrist.castling {
		zobrist.castling[i] = rng.next()
	}
	for f := FileA; f < FileNone; f++ {
		zobrist.enPassantFile[f] = rng.next()
	}
}

// castlingKey XORs in exactly the keys for the rights currently set in cr.
// Used both to add and (XOR being its own inverse) to remove a combination
// of rights from the running hash.
func castlingKey(cr CastlingRights) uint64 {
	var k uint64
	bits := [4]CastlingRights{CastlingWhiteKS, CastlingWhiteQS, CastlingBlackKS, CastlingBlackQS}
	for i, b := range bits {
		if cr.Has(b) {
			k ^= zobrist.castling[i]
		}
	}
	return k
}

// fullHash computes the Zobrist hash of p from scratch: the XOR of every
// set piece's key, the side key if Black is to move, the keys of every
// granted castling right, and the en-passant file key if a target is set.
func fullHash(p *Position) uint64 {
	var h uint64
	for c := 0; c < ColorLength; c++ {
		for pt := 0; pt < PtLength; pt++ {
			bb := p.pieces[c][pt]
			bb.ForEach(func(sq Square) {
				h ^= zobrist.piece[sq][c][pt]
			})
		}
	}
	if !p.whiteToMove {
		h ^= zobrist.sideToMove
	}
	h ^= castlingKey(p.castlingRights)
	if p.enPassant != SqNone {
		h ^= zobrist.enPassantFile[p.enPassant.FileOf()]
	}
	return h
}
