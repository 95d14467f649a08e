package main

import (
	"math/rand"
	"testing"
)

func TestPackBitsRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		pos   int
		nbits int
		value uint32
	}{
		{"byte aligned", 0, 8, 0xA5},
		{"full offset field", 0, 32, 460704},
		{"length field after offset", 32, 24, 1234},
		{"max 24 bit", 32, 24, 1<<24 - 1},
		{"unaligned", 3, 13, 0x1FFF},
		{"single bit", 17, 1, 1},
		{"zero", 0, 32, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, 8)
			packBits(buf, tt.pos, tt.nbits, tt.value)
			if got := unpackBits(buf, tt.pos, tt.nbits); got != tt.value {
				t.Errorf("unpackBits = %d, want %d", got, tt.value)
			}
		})
	}
}

func TestPackBitsOverwrites(t *testing.T) {
	buf := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	packBits(buf, 0, 32, 2)
	if got := unpackBits(buf, 0, 32); got != 2 {
		t.Errorf("offset field = %d, want 2 after overwrite", got)
	}
	// the length field keeps its previous bits
	if got := unpackBits(buf, 32, 24); got != 1<<24-1 {
		t.Errorf("length field = %d, want %d", got, 1<<24-1)
	}
}

func TestAddressRecordLayout(t *testing.T) {
	// a record packs into exactly 7 bytes with no endianness dependency
	var rec [entrySize]byte
	packBits(rec[:], 0, 32, 0x01020304)
	packBits(rec[:], 32, 24, 0x050607)
	want := [entrySize]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}
	if rec != want {
		t.Errorf("record = %x, want %x", rec, want)
	}
}

func TestPackedSize(t *testing.T) {
	for r := range resolutions {
		side := 3600 / r
		if side*r != 3600 {
			t.Errorf("resolution %d does not divide 3600", r)
		}
		want := (side*side + 7) / 8
		if got := packedSize(side); got != want {
			t.Errorf("packedSize(%d) = %d, want %d", side, got, want)
		}
	}
	if got := packedSize(60); got != 450 {
		t.Errorf("packedSize(60) = %d, want 450", got)
	}
	if got := packedSize(3600); got != 1620000 {
		t.Errorf("packedSize(3600) = %d, want 1620000", got)
	}
}

func TestPackGridBitOrder(t *testing.T) {
	g := NewGrid(60)
	g.Set(0, 0, true) // south-west corner is the MSB of the first byte
	g.Set(0, 7, true)
	g.Set(1, 0, true) // second row starts at bit 60

	buf := packGrid(g)
	if buf[0] != 0x81 {
		t.Errorf("first byte = %#02x, want 0x81", buf[0])
	}
	if bit := buf[60/8] >> uint(7-60%8) & 1; bit != 1 {
		t.Errorf("bit 60 not set for cell (1,0)")
	}
}

func TestGridPackRoundTrip(t *testing.T) {
	for _, side := range []int{60, 120, 360} {
		rng := rand.New(rand.NewSource(int64(side)))
		g := NewGrid(side)
		for i := range g.cells {
			g.cells[i] = rng.Intn(2) == 1
		}
		buf := packGrid(g)
		if len(buf) != packedSize(side) {
			t.Fatalf("side %d: packed length %d, want %d", side, len(buf), packedSize(side))
		}
		got := unpackGrid(buf, side)
		for i := range g.cells {
			if got.cells[i] != g.cells[i] {
				t.Fatalf("side %d: cell %d differs after round trip", side, i)
			}
		}
	}
}

func TestPackGridZeroTail(t *testing.T) {
	// 60x60 = 3600 bits fills its bytes exactly; use an odd side to get
	// a partial final byte
	g := NewGrid(30)
	for i := range g.cells {
		g.cells[i] = true
	}
	buf := packGrid(g)
	// 900 bits: final byte holds 4 data bits, tail must stay zero
	if last := buf[len(buf)-1]; last != 0xF0 {
		t.Errorf("last byte = %#02x, want 0xf0", last)
	}
}
