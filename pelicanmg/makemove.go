package pelicanmg

// castlingMask[sq] holds the rights that survive a piece moving from or
// to sq. King and rook home squares strip their rights; everything else
// leaves the full set.
var castlingMask [64]CastlingRights

func init() {
	for sq := range castlingMask {
		castlingMask[sq] = CastleWhiteKing | CastleWhiteQueen | CastleBlackKing | CastleBlackQueen
	}
	castlingMask[0] &^= CastleWhiteQueen
	castlingMask[4] &^= CastleWhiteKing | CastleWhiteQueen
	castlingMask[7] &^= CastleWhiteKing
	castlingMask[56] &^= CastleBlackQueen
	castlingMask[60] &^= CastleBlackKing | CastleBlackQueen
	castlingMask[63] &^= CastleBlackKing
}

// MakeMove applies a pseudo-legal move, pushing a snapshot of the prior
// state so UnmakeMove is a plain restore. Legality (own king left in
// check) is the caller's concern.
func (b *Board) MakeMove(m Move) {
	b.history[b.historyCount] = b.state
	b.keyHistory[b.historyCount] = b.state.Key
	b.historyCount++

	s := &b.state
	us := s.SideToMove
	them := us.Flip()
	from, to := m.From(), m.To()
	promo, flag := m.Promotion(), m.Flag()
	pt := s.Mailbox[from]
	fromBB, toBB := SquareBB(from), SquareBB(to)
	newHalfmove := s.HalfmoveClock + 1

	s.Key ^= zobristPiece[us][pt][from]

	// The old en passant contribution leaves the key before anything
	// moves; epKey still sees the configuration it was folded in with.
	s.Key ^= s.epKey()
	s.EnPassant = NoSquare

	if captured := s.Mailbox[to]; captured != NoPieceType {
		s.Pieces[them][captured] &^= toBB
		s.Occupancy[them] &^= toBB
		s.Key ^= zobristPiece[them][captured][to]
		newHalfmove = 0
	}

	if pt == Pawn {
		newHalfmove = 0
		switch flag {
		case MoveEnPassant:
			capSq := to - 8
			if us == Black {
				capSq = to + 8
			}
			capBB := SquareBB(capSq)
			s.Pieces[them][Pawn] &^= capBB
			s.Occupancy[them] &^= capBB
			s.Mailbox[capSq] = NoPieceType
			s.Key ^= zobristPiece[them][Pawn][capSq]
		case MoveDoublePush:
			s.EnPassant = from + (to-from)/2
			// Its key contribution is folded in after the turn flips,
			// once "opposing pawn" means the right side.
		}
	}

	s.Pieces[us][pt] &^= fromBB
	s.Occupancy[us] ^= fromBB | toBB
	s.Mailbox[from] = NoPieceType
	if promo != NoPieceType {
		s.Pieces[us][promo] |= toBB
		s.Mailbox[to] = promo
		s.Key ^= zobristPiece[us][promo][to]
	} else {
		s.Pieces[us][pt] |= toBB
		s.Mailbox[to] = pt
		s.Key ^= zobristPiece[us][pt][to]
	}

	if flag == MoveCastle {
		var rookFrom, rookTo Square
		switch to {
		case 6:
			rookFrom, rookTo = 7, 5
		case 2:
			rookFrom, rookTo = 0, 3
		case 62:
			rookFrom, rookTo = 63, 61
		case 58:
			rookFrom, rookTo = 56, 59
		}
		rookMove := SquareBB(rookFrom) | SquareBB(rookTo)
		s.Pieces[us][Rook] ^= rookMove
		s.Occupancy[us] ^= rookMove
		s.Mailbox[rookFrom] = NoPieceType
		s.Mailbox[rookTo] = Rook
		s.Key ^= zobristPiece[us][Rook][rookFrom] ^ zobristPiece[us][Rook][rookTo]
	}

	if old := s.Castling; old != 0 {
		s.Castling &= castlingMask[from] & castlingMask[to]
		if s.Castling != old {
			s.Key ^= zobristCastle[old] ^ zobristCastle[s.Castling]
		}
	}

	s.SideToMove = them
	s.Key ^= zobristSide
	s.Key ^= s.epKey()

	s.Ply++
	s.HalfmoveClock = newHalfmove
	s.LastMove = m
}

// UnmakeMove restores the position before the most recent make. O(1),
// cannot fail while makes and unmakes stay paired.
func (b *Board) UnmakeMove() {
	b.historyCount--
	b.state = b.history[b.historyCount]
}

// MakeNullMove passes the turn: only the side key and any en passant
// contribution toggle. Used by null-move pruning; forbidden in check.
func (b *Board) MakeNullMove() {
	b.history[b.historyCount] = b.state
	b.keyHistory[b.historyCount] = b.state.Key
	b.historyCount++

	s := &b.state
	s.Key ^= s.epKey()
	s.EnPassant = NoSquare
	s.SideToMove = s.SideToMove.Flip()
	s.Key ^= zobristSide
	s.Ply++
	s.LastMove = NullMove
}

// UnmakeNullMove undoes MakeNullMove.
func (b *Board) UnmakeNullMove() {
	b.historyCount--
	b.state = b.history[b.historyCount]
}

// HasNonPawnMaterial reports whether c owns any piece besides pawns and
// the king; the searcher's zugzwang guard for null-move pruning.
func (b *Board) HasNonPawnMaterial(c Color) bool {
	s := &b.state
	return s.Pieces[c][Knight]|s.Pieces[c][Bishop]|s.Pieces[c][Rook]|s.Pieces[c][Queen] != 0
}

// IsDraw reports fifty-move, repetition or insufficient-material draws.
// Inside search a single prior occurrence of the current key counts: a
// line that repeats any earlier position is taken as drawn.
func (b *Board) IsDraw() bool {
	s := &b.state
	if s.HalfmoveClock >= 100 {
		return true
	}

	// Only positions since the last irreversible move can repeat.
	low := b.historyCount - s.HalfmoveClock
	if low < 0 {
		low = 0
	}
	for i := b.historyCount - 2; i >= low; i-- {
		if b.keyHistory[i] == s.Key {
			return true
		}
	}

	if s.Pieces[White][Pawn]|s.Pieces[Black][Pawn]|
		s.Pieces[White][Rook]|s.Pieces[Black][Rook]|
		s.Pieces[White][Queen]|s.Pieces[Black][Queen] != 0 {
		return false
	}
	whiteMinor := insufficientMinors(s, White)
	blackMinor := insufficientMinors(s, Black)
	return whiteMinor && blackMinor
}

func insufficientMinors(s *BoardState, c Color) bool {
	knights := PopCount(s.Pieces[c][Knight])
	bishops := PopCount(s.Pieces[c][Bishop])
	return (bishops == 0 && knights <= 1) || (knights == 0 && bishops <= 1)
}
