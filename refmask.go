package main

import (
	"fmt"
	"os"
)

// The reference mask only carries data between these tile latitudes.
// Tiles outside the band with no boundary data stay undefined.
const (
	refBandMinLat = -57
	refBandMaxLat = 59
)

// ReferenceMask is the coarse pre-existing land/water raster consulted
// for tiles that have no boundary data at all.
type ReferenceMask interface {
	// Covers reports whether the mask is valid at the given tile
	// latitude. SampleLandWater must not be called outside the band.
	Covers(lat int) bool
	// SampleLandWater returns true for land at (lat, lon) degrees.
	SampleLandWater(lat, lon float64) (bool, error)
}

// fileMask reads single bits out of a packed global mask file without
// loading the raster into memory. The file is one bit per cell, MSB
// first, row-major from 90S 180W moving west to east then south to
// north, at a fixed cell size in arc seconds.
type fileMask struct {
	f    *os.File
	step float64
	rows int
	cols int
}

func OpenReferenceMask(path string, resolutionSec int) (*fileMask, error) {
	if resolutionSec <= 0 || 3600%resolutionSec != 0 {
		return nil, fmt.Errorf("unsupported reference mask resolution %d", resolutionSec)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reference mask: %w", err)
	}
	rows := 180 * 3600 / resolutionSec
	cols := 360 * 3600 / resolutionSec
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("reference mask: %w", err)
	}
	if want := int64((rows*cols + 7) / 8); fi.Size() < want {
		f.Close()
		return nil, fmt.Errorf("reference mask %s truncated: %d bytes, want %d", path, fi.Size(), want)
	}
	return &fileMask{
		f:    f,
		step: float64(resolutionSec) / 3600.0,
		rows: rows,
		cols: cols,
	}, nil
}

func (m *fileMask) Covers(lat int) bool {
	return lat >= refBandMinLat && lat <= refBandMaxLat
}

func (m *fileMask) SampleLandWater(lat, lon float64) (bool, error) {
	row := int((lat + 90.0) / m.step)
	col := int((lon + 180.0) / m.step)
	if row < 0 {
		row = 0
	}
	if row >= m.rows {
		row = m.rows - 1
	}
	if col < 0 {
		col = 0
	}
	if col >= m.cols {
		col = m.cols - 1
	}
	pos := row*m.cols + col
	var b [1]byte
	if _, err := m.f.ReadAt(b[:], int64(pos/8)); err != nil {
		return false, fmt.Errorf("reference mask read: %w", err)
	}
	return b[0]>>uint(7-pos%8)&1 == 1, nil
}

func (m *fileMask) Close() error {
	return m.f.Close()
}
