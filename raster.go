package main

import (
	"fmt"
	"math"
	"sync"

	"github.com/paulmach/orb"
)

// Grid is a square land/water raster covering one one-degree tile.
// Cell (0, 0) is the south-west corner; rows run south to north and
// columns west to east. true is land, false is water.
type Grid struct {
	Side  int
	cells []bool
}

func NewGrid(side int) *Grid {
	return &Grid{Side: side, cells: make([]bool, side*side)}
}

func (g *Grid) At(row, col int) bool {
	return g.cells[row*g.Side+col]
}

func (g *Grid) Set(row, col int, land bool) {
	g.cells[row*g.Side+col] = land
}

// subRegion is one worker's share of a tile grid.
type subRegion struct {
	startRow, startCol int
	rows, cols         int
}

// partition splits a side×side grid into k×k contiguous blocks where
// k = sqrt(workers). workers must be a perfect square and k must divide
// side evenly, otherwise remainder rows and columns would never be
// assigned to any worker.
func partition(side, workers int) ([]subRegion, error) {
	k := int(math.Round(math.Sqrt(float64(workers))))
	if k < 1 || k*k != workers {
		return nil, fmt.Errorf("worker count %d is not a perfect square", workers)
	}
	if side%k != 0 {
		return nil, fmt.Errorf("partition factor %d does not divide grid side %d", k, side)
	}
	block := side / k
	regions := make([]subRegion, 0, workers)
	for p := 0; p < workers; p++ {
		regions = append(regions, subRegion{
			startRow: (p / k) * block,
			startCol: (p % k) * block,
			rows:     block,
			cols:     block,
		})
	}
	return regions, nil
}

// rasterTask is the message handed to a pool worker: classify one
// sub-region of the shared grid against the tile's boundary rings.
type rasterTask struct {
	grid   *Grid
	region subRegion
	rings  []orb.Ring
	swLat  float64
	swLon  float64
	wg     *sync.WaitGroup
}

// rasterPool is a fixed set of workers reused across tiles. Within a
// tile the workers write disjoint sub-squares of the shared grid, so
// the grid itself needs no locking.
type rasterPool struct {
	workers int
	tasks   chan rasterTask
}

func newRasterPool(workers int) *rasterPool {
	p := &rasterPool{
		workers: workers,
		tasks:   make(chan rasterTask, workers),
	}
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *rasterPool) worker() {
	for t := range p.tasks {
		rasterizeRegion(t)
		t.wg.Done()
	}
}

func (p *rasterPool) Close() {
	close(p.tasks)
}

// Rasterize classifies every cell of the tile whose south-west corner
// is (swLat, swLon) and blocks until all workers have finished their
// sub-squares.
func (p *rasterPool) Rasterize(rings []orb.Ring, swLat, swLon float64, side int) (*Grid, error) {
	regions, err := partition(side, p.workers)
	if err != nil {
		return nil, err
	}
	grid := NewGrid(side)
	var wg sync.WaitGroup
	wg.Add(len(regions))
	for _, region := range regions {
		p.tasks <- rasterTask{
			grid:   grid,
			region: region,
			rings:  rings,
			swLat:  swLat,
			swLon:  swLon,
			wg:     &wg,
		}
	}
	wg.Wait()
	return grid, nil
}

// rasterizeRegion samples the parity test at each sub-cell center.
func rasterizeRegion(t rasterTask) {
	side := float64(t.grid.Side)
	for i := t.region.startRow; i < t.region.startRow+t.region.rows; i++ {
		lat := t.swLat + (float64(i)+0.5)/side
		for j := t.region.startCol; j < t.region.startCol+t.region.cols; j++ {
			lon := t.swLon + (float64(j)+0.5)/side
			t.grid.Set(i, j, classifyPoint(orb.Point{lon, lat}, t.rings))
		}
	}
}
