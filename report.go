package main

import "fmt"

type resultKind int

const (
	resultBlock resultKind = iota
	resultUniform
	resultUndefined
)

// tileResult is one finished tile, sent to the reporter as the scan
// advances.
type tileResult struct {
	key  TileKey
	kind resultKind
	size int
}

// Report keeps the running build counters off the scan loop. Results
// arrive over a channel and are folded in by a single goroutine, so the
// counters need no locking.
type Report struct {
	results chan tileResult
	done    chan struct{}

	blocks    int
	uniform   int
	undefined int
	bytes     int64

	isClose bool
}

func NewReport() *Report {
	r := &Report{
		results: make(chan tileResult, 64),
		done:    make(chan struct{}),
	}
	go r.start()
	return r
}

func (r *Report) Add(res tileResult) {
	if r.isClose {
		return
	}
	r.results <- res
}

func (r *Report) start() {
	for res := range r.results {
		switch res.kind {
		case resultBlock:
			r.blocks++
			r.bytes += int64(res.size)
			log.Debugf("%d blocks, average block size = %.2f", r.blocks, float64(r.bytes)/float64(r.blocks))
		case resultUniform:
			r.uniform++
		case resultUndefined:
			r.undefined++
		}
	}
	close(r.done)
}

// Finish drains the reporter and returns the final summary line.
func (r *Report) Finish() string {
	r.isClose = true
	close(r.results)
	<-r.done
	avg := 0.0
	if r.blocks > 0 {
		avg = float64(r.bytes) / float64(r.blocks)
	}
	return fmt.Sprintf("%d blocks (average %.2f bytes), %d uniform tiles, %d undefined tiles",
		r.blocks, avg, r.uniform, r.undefined)
}
