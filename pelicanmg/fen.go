package pelicanmg

import (
	"fmt"
	"strconv"
	"strings"
)

// Startpos is the standard chess starting position.
const Startpos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func pieceFromChar(ch byte) (Color, PieceType, bool) {
	c := White
	if ch >= 'a' && ch <= 'z' {
		c = Black
		ch -= 'a' - 'A'
	}
	switch ch {
	case 'P':
		return c, Pawn, true
	case 'N':
		return c, Knight, true
	case 'B':
		return c, Bishop, true
	case 'R':
		return c, Rook, true
	case 'Q':
		return c, Queen, true
	case 'K':
		return c, King, true
	}
	return c, NoPieceType, false
}

var pieceChars = [2][7]byte{
	{Pawn: 'P', Knight: 'N', Bishop: 'B', Rook: 'R', Queen: 'Q', King: 'K'},
	{Pawn: 'p', Knight: 'n', Bishop: 'b', Rook: 'r', Queen: 'q', King: 'k'},
}

// ParseFEN builds a fresh Board from a FEN string. The history stacks
// start empty; moves applied afterwards accumulate on top of it.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("fen %q: want at least 4 fields, got %d", fen, len(fields))
	}

	b := &Board{}
	s := &b.state
	s.EnPassant = NoSquare

	// Piece placement, rank 8 first.
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("fen %q: want 8 ranks, got %d", fen, len(ranks))
	}
	for r := 0; r < 8; r++ {
		rank := 7 - r
		file := 0
		for i := 0; i < len(ranks[r]); i++ {
			ch := ranks[r][i]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			c, pt, ok := pieceFromChar(ch)
			if !ok || file > 7 {
				return nil, fmt.Errorf("fen %q: bad rank %q", fen, ranks[r])
			}
			s.put(SquareOf(file, rank), c, pt)
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("fen %q: rank %q does not fill 8 files", fen, ranks[r])
		}
	}
	if PopCount(s.Pieces[White][King]) != 1 || PopCount(s.Pieces[Black][King]) != 1 {
		return nil, fmt.Errorf("fen %q: each side needs exactly one king", fen)
	}

	// Side to move.
	switch fields[1] {
	case "w":
		s.SideToMove = White
	case "b":
		s.SideToMove = Black
	default:
		return nil, fmt.Errorf("fen %q: bad side to move %q", fen, fields[1])
	}

	// Castling rights.
	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			switch fields[2][i] {
			case 'K':
				s.Castling |= CastleWhiteKing
			case 'Q':
				s.Castling |= CastleWhiteQueen
			case 'k':
				s.Castling |= CastleBlackKing
			case 'q':
				s.Castling |= CastleBlackQueen
			default:
				return nil, fmt.Errorf("fen %q: bad castling field %q", fen, fields[2])
			}
		}
	}

	// En passant target.
	if fields[3] != "-" {
		if len(fields[3]) != 2 {
			return nil, fmt.Errorf("fen %q: bad en passant field %q", fen, fields[3])
		}
		file, rank := int(fields[3][0]-'a'), int(fields[3][1]-'1')
		if file < 0 || file > 7 || (rank != 2 && rank != 5) {
			return nil, fmt.Errorf("fen %q: bad en passant field %q", fen, fields[3])
		}
		s.EnPassant = SquareOf(file, rank)
	}

	// Clocks are optional in practice.
	if len(fields) > 4 {
		hm, err := strconv.Atoi(fields[4])
		if err != nil || hm < 0 {
			return nil, fmt.Errorf("fen %q: bad halfmove clock %q", fen, fields[4])
		}
		s.HalfmoveClock = hm
	}
	fullmove := 1
	if len(fields) > 5 {
		fm, err := strconv.Atoi(fields[5])
		if err != nil || fm < 1 {
			return nil, fmt.Errorf("fen %q: bad fullmove number %q", fen, fields[5])
		}
		fullmove = fm
	}
	s.Ply = (fullmove - 1) * 2
	if s.SideToMove == Black {
		s.Ply++
	}

	s.Key = s.ComputeKey()
	return b, nil
}

// ToFEN renders the current position as a FEN string.
func (b *Board) ToFEN() string {
	s := &b.state
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := SquareOf(file, rank)
			pt := s.Mailbox[sq]
			if pt == NoPieceType {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pieceChars[s.ColorOn(sq)][pt])
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if s.SideToMove == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	if s.Castling == 0 {
		sb.WriteByte('-')
	} else {
		if s.Castling&CastleWhiteKing != 0 {
			sb.WriteByte('K')
		}
		if s.Castling&CastleWhiteQueen != 0 {
			sb.WriteByte('Q')
		}
		if s.Castling&CastleBlackKing != 0 {
			sb.WriteByte('k')
		}
		if s.Castling&CastleBlackQueen != 0 {
			sb.WriteByte('q')
		}
	}

	sb.WriteByte(' ')
	if s.EnPassant == NoSquare {
		sb.WriteByte('-')
	} else {
		sb.WriteByte(byte('a' + FileOf(s.EnPassant)))
		sb.WriteByte(byte('1' + RankOf(s.EnPassant)))
	}

	fmt.Fprintf(&sb, " %d %d", s.HalfmoveClock, b.FullmoveNumber())
	return sb.String()
}
