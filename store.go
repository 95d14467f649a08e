package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

const (
	headerSize   = 16384
	tableEntries = 64800 // 180 x 360 one-degree tiles
	entrySize    = 7
	tableSize    = tableEntries * entrySize

	formatVersion = "landmask V1.00"
)

// Address record sentinels. Any other 32-bit value is the file offset
// of a compressed block.
const (
	maskUndefined = 0
	maskAllLand   = 1
	maskAllWater  = 2
)

// maxBlockSize is the largest compressed block the 24-bit length field
// of an address record can describe.
const maxBlockSize = 1<<24 - 1

// TileKey identifies a one-degree tile by the integer latitude and
// longitude of its south-west corner.
type TileKey struct {
	Lat int // [-90, 89]
	Lon int // [-180, 179]
}

func (k TileKey) valid() bool {
	return k.Lat >= -90 && k.Lat < 90 && k.Lon >= -180 && k.Lon < 180
}

// tableIndex maps the key to its address record slot. Records run
// south to north, west to east within each latitude row, starting at
// 90S 180W.
func (k TileKey) tableIndex() int {
	return (k.Lat+90)*360 + (k.Lon + 180)
}

func (k TileKey) String() string {
	return fmt.Sprintf("%d,%d", k.Lat, k.Lon)
}

// Store writes a compressed land mask file: a fixed ASCII header, the
// 64800-entry address table and an append-only run of deflated blocks.
// Blocks land at the end of the file in tile order, so the table never
// points past the bytes already on disk.
type Store struct {
	f          *os.File
	resolution int
}

func CreateStore(path string, resolution int) (*Store, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}
	s := &Store{f: f, resolution: resolution}
	if err := s.writeHeader(); err != nil {
		f.Close()
		return nil, err
	}
	// an all-zero table marks every tile undefined until it is built
	if _, err := f.Write(make([]byte, tableSize)); err != nil {
		f.Close()
		return nil, fmt.Errorf("create store: %w", err)
	}
	return s, nil
}

func (s *Store) writeHeader() error {
	meta := fmt.Sprintf("[HEADER SIZE] = %d\n", headerSize) +
		fmt.Sprintf("[VERSION] = %s\n", formatVersion) +
		fmt.Sprintf("[ZLIB VERSION] = %s\n", compressorVersion) +
		fmt.Sprintf("[CREATION DATE] = %s\n", time.Now().UTC().Format(time.ANSIC)) +
		fmt.Sprintf("[RESOLUTION] = %d\n", s.resolution) +
		"[END OF HEADER]\n"
	hdr := make([]byte, headerSize)
	copy(hdr, meta)
	if _, err := s.f.WriteAt(hdr, 0); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

func (s *Store) writeEntry(key TileKey, addr, length uint32) error {
	if !key.valid() {
		return fmt.Errorf("tile %v out of range", key)
	}
	var rec [entrySize]byte
	packBits(rec[:], 0, 32, addr)
	packBits(rec[:], 32, 24, length)
	if _, err := s.f.WriteAt(rec[:], int64(headerSize+key.tableIndex()*entrySize)); err != nil {
		return fmt.Errorf("write address record %v: %w", key, err)
	}
	return nil
}

// MarkUndefined records that no data of any kind exists for the tile.
func (s *Store) MarkUndefined(key TileKey) error {
	return s.writeEntry(key, maskUndefined, 0)
}

// MarkUniform records a tile as all land or all water without a block.
func (s *Store) MarkUniform(key TileKey, land bool) error {
	if land {
		return s.writeEntry(key, maskAllLand, 0)
	}
	return s.writeEntry(key, maskAllWater, 0)
}

// WriteBlock appends a compressed block at the end of the file and then
// back-patches the tile's address record with its offset and length.
func (s *Store) WriteBlock(key TileKey, block []byte) error {
	if len(block) > maxBlockSize {
		return fmt.Errorf("compressed block for tile %v is %d bytes, exceeds the 24-bit length field", key, len(block))
	}
	offset, err := s.f.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("seek to end: %w", err)
	}
	if _, err := s.f.Write(block); err != nil {
		return fmt.Errorf("append block %v: %w", key, err)
	}
	return s.writeEntry(key, uint32(offset), uint32(len(block)))
}

func (s *Store) Close() error {
	return s.f.Close()
}

// StoreReader gives random access to a finished land mask file.
type StoreReader struct {
	f          *os.File
	resolution int
	side       int
}

func OpenStore(path string) (*StoreReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	hdr := make([]byte, headerSize)
	if _, err := io.ReadFull(f, hdr); err != nil {
		f.Close()
		return nil, fmt.Errorf("read header: %w", err)
	}
	res, err := parseHeader(hdr)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &StoreReader{f: f, resolution: res, side: 3600 / res}, nil
}

func parseHeader(hdr []byte) (int, error) {
	var size, res int
	for _, line := range strings.Split(string(hdr), "\n") {
		switch {
		case strings.HasPrefix(line, "[HEADER SIZE]"):
			fmt.Sscanf(line, "[HEADER SIZE] = %d", &size)
		case strings.HasPrefix(line, "[RESOLUTION]"):
			fmt.Sscanf(line, "[RESOLUTION] = %d", &res)
		case strings.HasPrefix(line, "[END OF HEADER]"):
			if size != headerSize {
				return 0, fmt.Errorf("unexpected header size %d", size)
			}
			if !resolutions[res] {
				return 0, fmt.Errorf("unsupported resolution %d in header", res)
			}
			return res, nil
		}
	}
	return 0, fmt.Errorf("end of header marker not found")
}

func (r *StoreReader) Resolution() int {
	return r.resolution
}

func (r *StoreReader) readEntry(key TileKey) (addr, length uint32, err error) {
	if !key.valid() {
		return 0, 0, fmt.Errorf("tile %v out of range", key)
	}
	var rec [entrySize]byte
	if _, err := r.f.ReadAt(rec[:], int64(headerSize+key.tableIndex()*entrySize)); err != nil {
		return 0, 0, fmt.Errorf("read address record %v: %w", key, err)
	}
	return unpackBits(rec[:], 0, 32), unpackBits(rec[:], 32, 24), nil
}

// ReadGrid reconstructs the tile's grid. The second return value is
// false when the tile is undefined. Uniform tiles come back as filled
// grids without touching the block region.
func (r *StoreReader) ReadGrid(key TileKey) (*Grid, bool, error) {
	addr, length, err := r.readEntry(key)
	if err != nil {
		return nil, false, err
	}
	switch addr {
	case maskUndefined:
		return nil, false, nil
	case maskAllLand:
		g := NewGrid(r.side)
		for i := range g.cells {
			g.cells[i] = true
		}
		return g, true, nil
	case maskAllWater:
		return NewGrid(r.side), true, nil
	}
	block := make([]byte, length)
	if _, err := r.f.ReadAt(block, int64(addr)); err != nil {
		return nil, false, fmt.Errorf("read block %v: %w", key, err)
	}
	raw, err := decompressBlock(block, packedSize(r.side))
	if err != nil {
		return nil, false, fmt.Errorf("tile %v: %w", key, err)
	}
	return unpackGrid(raw, r.side), true, nil
}

func (r *StoreReader) Close() error {
	return r.f.Close()
}
