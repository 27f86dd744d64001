package types

import "strings"

// Move packs everything make_move/unmake_move/ordering need without having
// to re-derive it from the board: the two squares, the moved piece, the
// piece captured (if any), whether this is an en-passant capture, the
// promotion piece type (if any), and an ordering priority filled in by the
// move generator / search at sort time. It is a plain value, copied into
// MoveSlice by value the same way the teacher's packed uint32 Move was -
// no heap allocation, no pointer graph.
type Move struct {
	from      Square
	to        Square
	moved     Piece
	captured  Piece
	enPassant bool
	promotion PieceType
	priority  int32
}

// NoMove is the zero Move, used to report "no move found".
var NoMove = Move{from: SqNone, to: SqNone, moved: PieceNone, captured: PieceNone, promotion: PtNone}

// NewMove builds a move. promotion should be PtNone for non-promoting moves.
func NewMove(from, to Square, moved, captured Piece, enPassant bool, promotion PieceType) Move {
	return Move{from: from, to: to, moved: moved, captured: captured, enPassant: enPassant, promotion: promotion}
}

func (m Move) From() Square            { return m.from }
func (m Move) To() Square              { return m.to }
func (m Move) MovedPiece() Piece       { return m.moved }
func (m Move) CapturedPiece() Piece    { return m.captured }
func (m Move) IsEnPassant() bool       { return m.enPassant }
func (m Move) PromotionType() PieceType { return m.promotion }
func (m Move) IsPromotion() bool       { return m.promotion != PtNone }
func (m Move) IsCapture() bool         { return m.captured != PieceNone || m.enPassant }
func (m Move) Priority() int32         { return m.priority }

// SetPriority stores the ordering priority computed by the move generator.
func (m *Move) SetPriority(p int32) { m.priority = p }

// IsValid reports whether m names real squares. NoMove is not valid.
func (m Move) IsValid() bool {
	return m.from.IsValid() && m.to.IsValid() && m.from != m.to
}

// StringUci renders the move in long algebraic notation, e.g. "e2e4" or
// "e7e8q". Per spec section 9, the PV/bestmove emitter may default an
// unspecified promotion to queen, but here the promotion piece actually
// chosen by the generator/search is always carried and printed.
func (m Move) StringUci() string {
	if m == NoMove {
		return "0000"
	}
	var sb strings.Builder
	sb.WriteString(m.from.String())
	sb.WriteString(m.to.String())
	if m.IsPromotion() {
		sb.WriteString(strings.ToLower(m.promotion.Char()))
	}
	return sb.String()
}

func (m Move) String() string {
	return m.StringUci()
}
