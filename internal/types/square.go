package types

import "fmt"

// File is a chess board file, a-h.
type File uint8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
	FileNone
	FileLength = int(FileNone)
)

// IsValid reports whether f is a-h.
func (f File) IsValid() bool {
	return f < FileNone
}

const fileLabels = "abcdefgh"

func (f File) String() string {
	if !f.IsValid() {
		return "-"
	}
	return string(fileLabels[f])
}

// Rank is a chess board rank, 1-8. Rank1 is White's back rank.
type Rank uint8

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	RankNone
	RankLength = int(RankNone)
)

// IsValid reports whether r is 1-8.
func (r Rank) IsValid() bool {
	return r < RankNone
}

const rankLabels = "12345678"

func (r Rank) String() string {
	if !r.IsValid() {
		return "-"
	}
	return string(rankLabels[r])
}

// Direction is a compass offset expressed in squares, using the
// least-significant-file mapping (North == +8).
type Direction int8

const (
	North     Direction = 8
	East      Direction = 1
	South     Direction = -North
	West      Direction = -East
	Northeast Direction = North + East
	Southeast Direction = South + East
	Southwest Direction = South + West
	Northwest Direction = North + West
)

// Square is a board square, 0..63, using LSF mapping: square = rank*8 + file.
type Square uint8

const (
	SqA1 Square = iota
	SqB1
	SqC1
	SqD1
	SqE1
	SqF1
	SqG1
	SqH1
	SqA2
	SqB2
	SqC2
	SqD2
	SqE2
	SqF2
	SqG2
	SqH2
	SqA3
	SqB3
	SqC3
	SqD3
	SqE3
	SqF3
	SqG3
	SqH3
	SqA4
	SqB4
	SqC4
	SqD4
	SqE4
	SqF4
	SqG4
	SqH4
	SqA5
	SqB5
	SqC5
	SqD5
	SqE5
	SqF5
	SqG5
	SqH5
	SqA6
	SqB6
	SqC6
	SqD6
	SqE6
	SqF6
	SqG6
	SqH6
	SqA7
	SqB7
	SqC7
	SqD7
	SqE7
	SqF7
	SqG7
	SqH7
	SqA8
	SqB8
	SqC8
	SqD8
	SqE8
	SqF8
	SqG8
	SqH8
	SqNone
	SqLength = int(SqNone)
)

// IsValid reports whether sq is 0..63.
func (sq Square) IsValid() bool {
	return sq < SqNone
}

// FileOf returns the file of sq.
func (sq Square) FileOf() File {
	return File(sq & 7)
}

// RankOf returns the rank of sq.
func (sq Square) RankOf() Rank {
	return Rank(sq >> 3)
}

// SquareOf builds a square from a file and rank; returns SqNone if either is invalid.
func SquareOf(f File, r Rank) Square {
	if !f.IsValid() || !r.IsValid() {
		return SqNone
	}
	return Square(int(r)<<3 + int(f))
}

// MakeSquare parses a square from algebraic notation (e.g. "e4").
func MakeSquare(s string) Square {
	if len(s) != 2 {
		return SqNone
	}
	f := File(s[0] - 'a')
	r := Rank(s[1] - '1')
	if !f.IsValid() || !r.IsValid() {
		return SqNone
	}
	return SquareOf(f, r)
}

func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return sq.FileOf().String() + sq.RankOf().String()
}

// FlipVertical mirrors a square across the board's horizontal midline.
// Used to look up Black's piece-square table entries against White's tables.
func (sq Square) FlipVertical() Square {
	return sq ^ 56
}

var squareToDir [SqLength][8]Square

func init() {
	dirs := [8]Direction{North, East, South, West, Northeast, Southeast, Southwest, Northwest}
	for sq := SqA1; sq < SqNone; sq++ {
		for i, d := range dirs {
			squareToDir[sq][i] = computeTo(sq, d)
		}
	}
}

func computeTo(sq Square, d Direction) Square {
	switch d {
	case North, South:
	case East, Northeast, Southeast:
		if sq.FileOf() == FileH {
			return SqNone
		}
	case West, Southwest, Northwest:
		if sq.FileOf() == FileA {
			return SqNone
		}
	default:
		panic(fmt.Sprintf("invalid direction %d", d))
	}
	r := int(sq) + int(d)
	if r < 0 || r > int(SqH8) {
		return SqNone
	}
	return Square(r)
}

// To returns the square reached by stepping one square in direction d,
// or SqNone if that would leave the board.
func (sq Square) To(d Direction) Square {
	switch d {
	case North:
		return squareToDir[sq][0]
	case East:
		return squareToDir[sq][1]
	case South:
		return squareToDir[sq][2]
	case West:
		return squareToDir[sq][3]
	case Northeast:
		return squareToDir[sq][4]
	case Southeast:
		return squareToDir[sq][5]
	case Southwest:
		return squareToDir[sq][6]
	case Northwest:
		return squareToDir[sq][7]
	default:
		panic(fmt.Sprintf("invalid direction %d", d))
	}
}
