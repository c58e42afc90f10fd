package pelicanmg

import "fmt"

// Move packs a move into 17 bits: from (6), to (6), promotion piece
// type (3) and a flag (2). Everything else about the move is derivable
// from the board it applies to.
type Move uint32

// NullMove is the reserved sentinel; no real move has from == to.
const NullMove Move = 0

// Move flags.
const (
	MoveNormal     uint8 = 0
	MoveCastle     uint8 = 1
	MoveEnPassant  uint8 = 2
	MoveDoublePush uint8 = 3
)

const (
	moveToShift    = 6
	movePromoShift = 12
	moveFlagShift  = 15
)

// NewMove constructs a Move from its components.
func NewMove(from, to Square, promo PieceType, flag uint8) Move {
	return Move(uint32(from&0x3F) |
		uint32(to&0x3F)<<moveToShift |
		uint32(promo&0x7)<<movePromoShift |
		uint32(flag&0x3)<<moveFlagShift)
}

// From returns the source square.
func (m Move) From() Square { return Square(uint32(m) & 0x3F) }

// To returns the destination square.
func (m Move) To() Square { return Square(uint32(m) >> moveToShift & 0x3F) }

// Promotion returns the promotion piece type, NoPieceType when none.
func (m Move) Promotion() PieceType { return PieceType(uint32(m) >> movePromoShift & 0x7) }

// Flag returns the special-move flag.
func (m Move) Flag() uint8 { return uint8(uint32(m) >> moveFlagShift & 0x3) }

var promoChars = [7]byte{Knight: 'n', Bishop: 'b', Rook: 'r', Queen: 'q'}

// String renders the move in UCI coordinate notation, e.g. "e2e4" or
// "e7e8q".
func (m Move) String() string {
	if m == NullMove {
		return "0000"
	}
	from, to := m.From(), m.To()
	buf := []byte{
		byte('a' + FileOf(from)), byte('1' + RankOf(from)),
		byte('a' + FileOf(to)), byte('1' + RankOf(to)),
	}
	if p := m.Promotion(); p != NoPieceType {
		buf = append(buf, promoChars[p])
	}
	return string(buf)
}

// IsCapture reports whether the move takes a piece on this board.
func (b *Board) IsCapture(m Move) bool {
	return b.state.Mailbox[m.To()] != NoPieceType || m.Flag() == MoveEnPassant
}

// ParseMove converts a UCI coordinate string into a Move for the
// current position, deriving the castle/en-passant/double-push flags
// from the board. The move is not checked for legality.
func (b *Board) ParseMove(uci string) (Move, error) {
	if len(uci) < 4 || len(uci) > 5 {
		return NullMove, fmt.Errorf("malformed move %q", uci)
	}
	ff, fr := int(uci[0]-'a'), int(uci[1]-'1')
	tf, tr := int(uci[2]-'a'), int(uci[3]-'1')
	if ff < 0 || ff > 7 || fr < 0 || fr > 7 || tf < 0 || tf > 7 || tr < 0 || tr > 7 {
		return NullMove, fmt.Errorf("malformed move %q", uci)
	}
	from, to := SquareOf(ff, fr), SquareOf(tf, tr)

	promo := NoPieceType
	if len(uci) == 5 {
		switch uci[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NullMove, fmt.Errorf("bad promotion in %q", uci)
		}
	}

	flag := MoveNormal
	switch b.state.Mailbox[from] {
	case King:
		if ff-tf == 2 || tf-ff == 2 {
			flag = MoveCastle
		}
	case Pawn:
		switch {
		case to == b.state.EnPassant && ff != tf:
			flag = MoveEnPassant
		case fr-tr == 2 || tr-fr == 2:
			flag = MoveDoublePush
		}
	}
	return NewMove(from, to, promo, flag), nil
}
