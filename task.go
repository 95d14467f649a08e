package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/teris-io/shortid"
	pb "gopkg.in/cheggaaa/pb.v1"
)

func InitBuild() {
	start := time.Now()

	root := conf.Data.Root
	source, err := NewBoundaryDir(filepath.Join(root, conf.Data.BoundaryDir))
	if err != nil {
		log.Fatalf("%v", err)
	}
	refMask, err := OpenReferenceMask(filepath.Join(root, conf.Data.ReferenceMask), conf.Data.ReferenceResolution)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer refMask.Close()

	outDir := filepath.Join(root, conf.Output.Directory)
	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		log.Fatalf("output directory: %v", err)
	}
	outFile := filepath.Join(outDir, fmt.Sprintf("swbd_mask_%02d_second.clm", resolution))

	build, err := NewBuild(outFile, resolution, workerCount, source, refMask)
	if err != nil {
		log.Fatalf("%v", err)
	}
	// interrupting the scan leaves a half-written store behind
	SafeExitInst.Register(build.AbortFun)

	log.Infof("build %s: %d second mask, %d workers, %s", build.ID, resolution, workerCount, outFile)
	if err := build.Run(); err != nil {
		log.Fatalf("build failed: %v", err)
	}
	log.Infof("%.3fs finished...", time.Since(start).Seconds())
}

// Build drives the global one-degree grid scan. Tiles are processed one
// at a time in scan order; parallelism exists only inside the
// rasterizer pool.
type Build struct {
	ID         string
	File       string
	resolution int
	side       int
	store      *Store
	pool       *rasterPool
	source     VectorSource
	refMask    ReferenceMask
	report     *Report
	bar        *pb.ProgressBar
}

func NewBuild(path string, resolution, workers int, source VectorSource, refMask ReferenceMask) (*Build, error) {
	if !resolutions[resolution] {
		return nil, fmt.Errorf("unsupported resolution %d", resolution)
	}
	side := 3600 / resolution
	// reject worker counts that would leave grid cells unassigned
	if _, err := partition(side, workers); err != nil {
		return nil, err
	}
	store, err := CreateStore(path, resolution)
	if err != nil {
		return nil, err
	}
	id, _ := shortid.Generate()
	return &Build{
		ID:         id,
		File:       path,
		resolution: resolution,
		side:       side,
		store:      store,
		pool:       newRasterPool(workers),
		source:     source,
		refMask:    refMask,
		report:     NewReport(),
	}, nil
}

func (b *Build) AbortFun() {
	b.store.Close()
	log.Warnf("build %s interrupted, %s is incomplete and must be discarded", b.ID, b.File)
}

// Run scans latitude rows south to north, tiles west to east within
// each row, and writes every address record exactly once.
func (b *Build) Run() error {
	defer b.pool.Close()

	b.bar = pb.New(tableEntries).Prefix(fmt.Sprintf("Build %s : ", b.ID))
	b.bar.SetRefreshRate(time.Second)
	b.bar.Start()

	for lat := -90; lat < 90; lat++ {
		for lon := -180; lon < 180; lon++ {
			if err := b.buildTile(TileKey{Lat: lat, Lon: lon}); err != nil {
				return fmt.Errorf("tile %d,%d: %w", lat, lon, err)
			}
			b.bar.Increment()
		}
	}

	if err := b.store.Close(); err != nil {
		return fmt.Errorf("closing store: %w", err)
	}
	b.bar.FinishPrint(fmt.Sprintf("Build %s finished ~", b.ID))
	log.Infof("%s", b.report.Finish())
	return nil
}

// buildTile resolves one tile: rasterize its boundary set if it has
// one, otherwise classify the whole tile from the reference mask, or
// mark it undefined outside the mask's band.
func (b *Build) buildTile(key TileKey) error {
	rings, err := b.source.PolygonsForTile(key)
	if err != nil {
		return err
	}

	if len(rings) == 0 {
		if !b.refMask.Covers(key.Lat) {
			b.report.Add(tileResult{key: key, kind: resultUndefined})
			return b.store.MarkUndefined(key)
		}
		land, err := b.refMask.SampleLandWater(float64(key.Lat)+0.5, float64(key.Lon)+0.5)
		if err != nil {
			return err
		}
		b.report.Add(tileResult{key: key, kind: resultUniform})
		return b.store.MarkUniform(key, land)
	}

	grid, err := b.pool.Rasterize(rings, float64(key.Lat), float64(key.Lon), b.side)
	if err != nil {
		return err
	}
	block, err := compressBlock(packGrid(grid))
	if err != nil {
		return err
	}
	if err := b.store.WriteBlock(key, block); err != nil {
		return err
	}
	b.report.Add(tileResult{key: key, kind: resultBlock, size: len(block)})
	return nil
}
