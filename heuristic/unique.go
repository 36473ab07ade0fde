package heuristic

import "github.com/lepinkainen/texturetool/texture"

// packedTableBytes is the size of the 24-bit colour bitset.
const packedTableBytes = (1 << 24) / 8

// UniqueColors counts distinct RGB colours, ignoring alpha. Large images use
// a bitset indexed by the packed 24-bit colour; when the 2 MiB table would
// outweigh a packed copy of the image, an exact map-based set is used instead.
func UniqueColors(buf *texture.PixelBuffer) int {
	pix := buf.NRGBA().Pix
	pixels := len(pix) / 4
	if pixels*4 < packedTableBytes {
		return uniqueColorsSet(pix)
	}
	return uniqueColorsPacked(pix)
}

func packRGB(pix []uint8, i int) uint32 {
	return uint32(pix[i])<<16 | uint32(pix[i+1])<<8 | uint32(pix[i+2])
}

func uniqueColorsPacked(pix []uint8) int {
	table := make([]uint64, packedTableBytes/8)
	count := 0
	for i := 0; i+3 < len(pix); i += 4 {
		key := packRGB(pix, i)
		word, bit := key>>6, uint64(1)<<(key&63)
		if table[word]&bit == 0 {
			table[word] |= bit
			count++
		}
	}
	return count
}

func uniqueColorsSet(pix []uint8) int {
	seen := make(map[uint32]struct{})
	for i := 0; i+3 < len(pix); i += 4 {
		seen[packRGB(pix, i)] = struct{}{}
	}
	return len(seen)
}
