package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// VectorSource hands out the water-body boundary rings covering one
// tile. A nil ring slice with a nil error means no data exists.
type VectorSource interface {
	PolygonsForTile(key TileKey) ([]orb.Ring, error)
}

// datasetSuffixes are the per-continent cell file suffixes of the
// source dataset, probed in order until a file is found.
var datasetSuffixes = []string{"a", "e", "f", "i", "n", "s"}

// boundaryDir reads per-tile GeoJSON boundary files named after the
// tile's south-west corner, e.g. e124n10a.geojson.
type boundaryDir struct {
	dir string
}

func NewBoundaryDir(dir string) (*boundaryDir, error) {
	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("boundary directory %s not available", dir)
	}
	return &boundaryDir{dir: dir}, nil
}

func tileBaseName(key TileKey) string {
	lonHem, latHem := 'e', 'n'
	lon, lat := key.Lon, key.Lat
	if lon < 0 {
		lonHem = 'w'
		lon = -lon
	}
	if lat < 0 {
		latHem = 's'
		lat = -lat
	}
	return fmt.Sprintf("%c%03d%c%02d", lonHem, lon, latHem, lat)
}

func (b *boundaryDir) PolygonsForTile(key TileKey) ([]orb.Ring, error) {
	for _, suffix := range datasetSuffixes {
		name := filepath.Join(b.dir, tileBaseName(key)+suffix+".geojson")
		data, err := os.ReadFile(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		log.Debugf("reading %s", name)
		return collectRings(data)
	}
	return nil, nil
}

// collectRings flattens every polygonal geometry in a feature
// collection into a single ring list. Outer and inner rings are not
// distinguished, the parity rule resolves nesting on its own.
func collectRings(data []byte) ([]orb.Ring, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("unable to unmarshal feature: %w", err)
	}
	var rings []orb.Ring
	for _, f := range fc.Features {
		switch geom := f.Geometry.(type) {
		case orb.Ring:
			rings = append(rings, geom)
		case orb.Polygon:
			rings = append(rings, geom...)
		case orb.MultiPolygon:
			for _, poly := range geom {
				rings = append(rings, poly...)
			}
		}
	}
	return rings, nil
}
