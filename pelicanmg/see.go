package pelicanmg

// SeeValue holds the integer centipawn values SEE trades with. The king
// value only matters as a tiebreaker; the algorithm never lets it be
// captured.
var SeeValue = [7]int{
	Pawn:   100,
	Knight: 300,
	Bishop: 300,
	Rook:   500,
	Queen:  900,
	King:   20000,
}

// See simulates the complete capture sequence on the move's target
// square, cheapest attacker first, and returns the material balance for
// the side making the move. Sliders revealed by earlier captures join
// the exchange because attackers are recomputed on the shrinking
// occupancy. The king only ever captures last: it never recaptures into
// a defended square.
func (b *Board) See(m Move) int {
	s := &b.state
	target := m.To()
	occ := s.Occupied()

	var gain [32]int
	victim := s.Mailbox[target]
	if m.Flag() == MoveEnPassant {
		victim = Pawn
		capSq := target - 8
		if s.SideToMove == Black {
			capSq = target + 8
		}
		occ &^= SquareBB(capSq)
	}
	gain[0] = SeeValue[victim]

	attacker := s.Mailbox[m.From()]
	if promo := m.Promotion(); promo != NoPieceType {
		gain[0] += SeeValue[promo] - SeeValue[Pawn]
		attacker = promo
	}
	occ &^= SquareBB(m.From())

	side := s.SideToMove.Flip()
	depth := 0
	for {
		depth++
		gain[depth] = SeeValue[attacker] - gain[depth-1]
		if maxInt(-gain[depth-1], gain[depth]) < 0 {
			break
		}

		fromBB, pt := leastValuableAttacker(s, target, side, occ)
		if fromBB == 0 {
			break
		}
		if pt == King {
			// A king cannot capture while the square stays defended.
			if s.AttackersTo(target, side.Flip(), occ&^fromBB)&(occ&^fromBB) != 0 {
				break
			}
		}
		occ &^= fromBB
		attacker = pt
		side = side.Flip()
	}

	for depth--; depth > 0; depth-- {
		gain[depth-1] = -maxInt(-gain[depth-1], gain[depth])
	}
	return gain[0]
}

// SeeGE reports whether the capture sequence started by m nets the
// moving side at least threshold centipawns.
func (b *Board) SeeGE(m Move, threshold int) bool {
	return b.See(m) >= threshold
}

func leastValuableAttacker(s *BoardState, target Square, side Color, occ uint64) (uint64, PieceType) {
	attackers := s.AttackersTo(target, side, occ) & occ
	if attackers == 0 {
		return 0, NoPieceType
	}
	for pt := Pawn; pt <= King; pt++ {
		if subset := attackers & s.Pieces[side][pt]; subset != 0 {
			return subset & -subset, pt
		}
	}
	return 0, NoPieceType
}

func maxInt(x, y int) int {
	if x > y {
		return x
	}
	return y
}
