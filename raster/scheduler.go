package raster

import (
	"github.com/bdwalton/dsrender/geom"
	"github.com/bdwalton/dsrender/vram"
)

// renderTileRange draws scanlines [start, end) in line order.
func renderTileRange(s *State, vmem *vram.View, polys []*geom.Polygon, start, end int) {
	for line := start; line < end; line++ {
		DrawScanline(s, vmem, polys, line)
	}
}

// tileScheduler owns four long-lived worker goroutines, one per tile,
// parked on their start channel between frames rather than spawned per
// frame. This follows the shape of gogpu-gg's WorkerPool: goroutines
// started once and blocked on a channel until given work, reused
// across many calls. It drops that pool's generic queue and
// work-stealing, since this renderer's partition is fixed (worker i
// always renders tile i), leaving nothing to steal or balance.
type tileScheduler struct {
	start [TileCount]chan []*geom.Polygon
	done  [TileCount]chan struct{}
}

// newTileScheduler starts the four tile workers. Called at most once
// per Renderer, the first time a frame is threaded.
func newTileScheduler(s *State, vmem *vram.View) *tileScheduler {
	ts := &tileScheduler{}
	for t := 0; t < TileCount; t++ {
		start := make(chan []*geom.Polygon)
		done := make(chan struct{})
		ts.start[t] = start
		ts.done[t] = done
		tile := t
		go func() {
			for polys := range start {
				renderTileRange(s, vmem, polys, tile*TileHeight, (tile+1)*TileHeight)
				done <- struct{}{}
			}
		}()
	}
	return ts
}

// startFrame signals every tile worker to begin rendering polys. It
// never spawns a goroutine; it hands work to the ones newTileScheduler
// already started.
func (ts *tileScheduler) startFrame(polys []*geom.Polygon) {
	for t := 0; t < TileCount; t++ {
		ts.start[t] <- polys
	}
}

// join blocks until tile's worker has finished the frame started by
// the most recent startFrame call.
func (ts *tileScheduler) join(tile int) {
	<-ts.done[tile]
}
