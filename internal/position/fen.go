package position

import (
	"fmt"
	"strings"

	. "github.com/kestrelchess/kestrel/internal/types"
)

// NewPositionFromFEN parses a Forsyth-Edwards string into a Position. The
// halfmove-clock and fullmove-number fields are accepted but not retained:
// no fifty-move counting exists, and repetition detection relies only on
// the Zobrist keys recorded as moves are made on this Position.
//
// The en-passant field supplied in the FEN is ignored and the parsed
// position starts with no en-passant target, so an en-passant capture that
// the FEN's field would allow on the first move is not generated. From then
// on DoMove records a target only when the capture is actually available
// (an enemy pawn beside the arrival square), which a FEN's own en-passant
// field does not guarantee - many tools emit one after any double push.
func NewPositionFromFEN(fen string) (*Position, error) {
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) < 4 {
		return nil, fmt.Errorf("fen: need at least 4 fields, got %d", len(fields))
	}

	p := &Position{enPassant: SqNone}
	for sq := range p.board {
		p.board[sq] = PieceNone
	}

	if err := p.parsePlacement(fields[0]); err != nil {
		return nil, err
	}

	switch fields[1] {
	case "w":
		p.whiteToMove = true
	case "b":
		p.whiteToMove = false
	default:
		return nil, fmt.Errorf("fen: invalid side to move %q", fields[1])
	}

	cr, err := parseCastling(fields[2])
	if err != nil {
		return nil, err
	}
	p.castlingRights = cr

	p.zobristKey = fullHash(p)
	return p, nil
}

func (p *Position) parsePlacement(placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("fen: piece placement needs 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := Rank(7 - i)
		file := FileA
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += File(ch - '0')
				continue
			}
			if !file.IsValid() {
				return fmt.Errorf("fen: rank %s overflows the board", rank)
			}
			pc := PieceFromChar(byte(ch))
			if pc == PieceNone {
				return fmt.Errorf("fen: unrecognized piece character %q", ch)
			}
			p.putPiece(pc, SquareOf(file, rank))
			file++
		}
		if int(file) != 8 {
			return fmt.Errorf("fen: rank %s does not sum to 8 files", rank)
		}
	}
	return nil
}

func parseCastling(s string) (CastlingRights, error) {
	if s == "-" {
		return CastlingNone, nil
	}
	var cr CastlingRights
	for _, ch := range s {
		switch ch {
		case 'K':
			cr |= CastlingWhiteKS
		case 'Q':
			cr |= CastlingWhiteQS
		case 'k':
			cr |= CastlingBlackKS
		case 'q':
			cr |= CastlingBlackQS
		default:
			return 0, fmt.Errorf("fen: invalid castling character %q", ch)
		}
	}
	return cr, nil
}

// ToFEN renders the position back to Forsyth-Edwards notation. The
// halfmove clock and fullmove number are not tracked internally (see
// NewPositionFromFEN), so they are always emitted as "0 1".
func (p *Position) ToFEN() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := FileA; f < FileNone; f++ {
			pc := p.board[SquareOf(f, Rank(r))]
			if pc == PieceNone {
				empty++
				continue
			}
			if empty > 0 {
				fmt.Fprintf(&sb, "%d", empty)
				empty = 0
			}
			sb.WriteString(pc.String())
		}
		if empty > 0 {
			fmt.Fprintf(&sb, "%d", empty)
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')
	sb.WriteString(p.SideToMove().String())
	sb.WriteByte(' ')
	sb.WriteString(p.castlingRights.String())
	sb.WriteByte(' ')
	if p.enPassant != SqNone {
		sb.WriteString(p.enPassant.String())
	} else {
		sb.WriteByte('-')
	}
	sb.WriteString(" 0 1")
	return sb.String()
}
