package main

// packBits writes the low nbits of value into buf starting at bit
// position pos, most significant bit first. The 7-byte address records
// and the packed tile grids use explicit bit positions instead of
// native integer layout so the store file reads identically on any
// platform.
func packBits(buf []byte, pos, nbits int, value uint32) {
	for i := nbits - 1; i >= 0; i-- {
		bit := byte(value>>uint(i)) & 1
		shift := uint(7 - pos%8)
		buf[pos/8] &^= 1 << shift
		buf[pos/8] |= bit << shift
		pos++
	}
}

// unpackBits is the inverse of packBits.
func unpackBits(buf []byte, pos, nbits int) uint32 {
	var v uint32
	for i := 0; i < nbits; i++ {
		v <<= 1
		v |= uint32(buf[pos/8]>>uint(7-pos%8)) & 1
		pos++
	}
	return v
}

// packedSize is the byte length of a bit-packed side×side grid.
func packedSize(side int) int {
	return (side*side + 7) / 8
}

// packGrid serialises a grid to one bit per cell (1 = land), MSB first,
// row-major from the south-west corner moving west to east then south
// to north. Trailing bits of the last byte stay zero.
func packGrid(g *Grid) []byte {
	buf := make([]byte, packedSize(g.Side))
	for pos, land := range g.cells {
		if land {
			buf[pos/8] |= 1 << uint(7-pos%8)
		}
	}
	return buf
}

// unpackGrid reverses packGrid bit for bit.
func unpackGrid(buf []byte, side int) *Grid {
	g := NewGrid(side)
	for pos := range g.cells {
		g.cells[pos] = buf[pos/8]>>uint(7-pos%8)&1 == 1
	}
	return g
}
