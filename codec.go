package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// compressorVersion is recorded in the store header so readers can tell
// which deflate implementation produced the blocks.
const compressorVersion = "klauspost/compress zlib"

// compressBlock deflates a bit-packed tile at maximum compression.
func compressBlock(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("compressing block: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compressing block: %w", err)
	}
	return buf.Bytes(), nil
}

// decompressBlock inflates a stored block. size must be the exact
// uncompressed length; the store format carries no size field, callers
// derive it from the resolution.
func decompressBlock(data []byte, size int) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decompressing block: %w", err)
	}
	defer zr.Close()
	out := make([]byte, size)
	if _, err := io.ReadFull(zr, out); err != nil {
		return nil, fmt.Errorf("block shorter than %d bytes: %w", size, err)
	}
	if n, _ := zr.Read(make([]byte, 1)); n != 0 {
		return nil, fmt.Errorf("block longer than %d bytes", size)
	}
	return out, nil
}
