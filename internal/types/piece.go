package types

import "strings"

// PieceType enumerates the six chess piece kinds, independent of color.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	PtNone
	PtLength = int(PtNone)
)

// IsValid reports whether pt is one of the six piece kinds.
func (pt PieceType) IsValid() bool {
	return pt < PtNone
}

// IsSlider reports whether pt moves along open rays (bishop, rook, queen).
func (pt PieceType) IsSlider() bool {
	return pt == Bishop || pt == Rook || pt == Queen
}

var pieceTypeValue = [PtLength]Value{100, 320, 330, 500, 900, 20000}

// ValueOf returns the static material value of the piece type in centipawns.
func (pt PieceType) ValueOf() Value {
	return pieceTypeValue[pt]
}

// gamePhaseValue is how much each non-pawn, non-king piece type contributes
// to the 0..24 game-phase counter (spec section 4.5).
var gamePhaseValue = [PtLength]int{0, 1, 1, 2, 4, 0}

// GamePhaseValue returns pt's contribution to the game-phase counter.
func (pt PieceType) GamePhaseValue() int {
	return gamePhaseValue[pt]
}

// GamePhaseMax is the game-phase counter's value on a full board: 2 knights
// + 2 bishops + 2 rooks*2 + 1 queen*4, per side, summed over both sides.
const GamePhaseMax = 24

var pieceTypeToString = [PtLength]string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}

func (pt PieceType) String() string {
	if !pt.IsValid() {
		return "None"
	}
	return pieceTypeToString[pt]
}

const pieceTypeChars = "PNBRQK"

// Char returns the single upper-case letter for pt, used for FEN/LAN.
func (pt PieceType) Char() string {
	if !pt.IsValid() {
		return "-"
	}
	return string(pieceTypeChars[pt])
}

// PieceTypeFromChar parses an upper-case piece letter (as used for
// promotion suffixes); returns PtNone for an unrecognized or empty input.
func PieceTypeFromChar(c byte) PieceType {
	idx := strings.IndexByte(pieceTypeChars, c)
	if idx < 0 {
		return PtNone
	}
	return PieceType(idx)
}

// Piece combines a Color and a PieceType into a single value, used as the
// contents of a board square.
type Piece uint8

const PieceNone Piece = Piece(ColorLength * PtLength)

// MakePiece builds a Piece from a color and piece type.
func MakePiece(c Color, pt PieceType) Piece {
	return Piece(int(c)*PtLength + int(pt))
}

// ColorOf returns the color of p. Only valid when p != PieceNone.
func (p Piece) ColorOf() Color {
	return Color(int(p) / PtLength)
}

// TypeOf returns the piece type of p. Only valid when p != PieceNone.
func (p Piece) TypeOf() PieceType {
	return PieceType(int(p) % PtLength)
}

// IsValid reports whether p names an actual piece (not PieceNone).
func (p Piece) IsValid() bool {
	return p < PieceNone
}

// ValueOf returns the static material value of p.
func (p Piece) ValueOf() Value {
	return p.TypeOf().ValueOf()
}

func (p Piece) String() string {
	if !p.IsValid() {
		return "-"
	}
	s := p.TypeOf().Char()
	if p.ColorOf() == Black {
		return strings.ToLower(s)
	}
	return s
}

// PieceFromChar parses a FEN piece letter (upper case = White, lower = Black).
// Returns PieceNone for "-" or an unrecognized character.
func PieceFromChar(c byte) Piece {
	upper := c
	if c >= 'a' && c <= 'z' {
		upper = c - 'a' + 'A'
	}
	pt := PieceTypeFromChar(upper)
	if pt == PtNone {
		return PieceNone
	}
	color := White
	if c >= 'a' && c <= 'z' {
		color = Black
	}
	return MakePiece(color, pt)
}
