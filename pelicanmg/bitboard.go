package pelicanmg

import "math/bits"

// File and rank masks.
const (
	FileABB uint64 = 0x0101010101010101
	FileBBB uint64 = FileABB << 1
	FileGBB uint64 = FileABB << 6
	FileHBB uint64 = FileABB << 7

	Rank1BB uint64 = 0x00000000000000FF
	Rank2BB uint64 = Rank1BB << 8
	Rank3BB uint64 = Rank1BB << 16
	Rank4BB uint64 = Rank1BB << 24
	Rank5BB uint64 = Rank1BB << 32
	Rank6BB uint64 = Rank1BB << 40
	Rank7BB uint64 = Rank1BB << 48
	Rank8BB uint64 = Rank1BB << 56
)

// FileBB returns the mask of the given file (0 = file a).
func FileBB(file int) uint64 { return FileABB << uint(file) }

// SquareBB returns a bitboard with only the given square set.
func SquareBB(sq Square) uint64 { return 1 << uint(sq) }

// Compass shifts. The originating file is masked off before shifting so
// pieces never wrap around the board edge.
func ShiftNorth(b uint64) uint64     { return b << 8 }
func ShiftSouth(b uint64) uint64     { return b >> 8 }
func ShiftEast(b uint64) uint64      { return (b &^ FileHBB) << 1 }
func ShiftWest(b uint64) uint64      { return (b &^ FileABB) >> 1 }
func ShiftNorthEast(b uint64) uint64 { return (b &^ FileHBB) << 9 }
func ShiftNorthWest(b uint64) uint64 { return (b &^ FileABB) << 7 }
func ShiftSouthEast(b uint64) uint64 { return (b &^ FileHBB) >> 7 }
func ShiftSouthWest(b uint64) uint64 { return (b &^ FileABB) >> 9 }

// LSB returns the index of the least significant set bit. Undefined on 0.
func LSB(b uint64) int { return bits.TrailingZeros64(b) }

// MSB returns the index of the most significant set bit. Undefined on 0.
func MSB(b uint64) int { return 63 - bits.LeadingZeros64(b) }

// PopLSB removes the least significant set bit from the mask and returns
// its index.
func PopLSB(mask *uint64) int {
	idx := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return idx
}

// PopCount returns the number of set bits.
func PopCount(b uint64) int { return bits.OnesCount64(b) }
