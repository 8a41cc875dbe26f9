package renderer

import (
	"image"
	"math/rand"
	"sync"
)

const defaultTileSize = 64

// tile is a rectangular region of the frame with its own deterministic
// random stream, so renders are reproducible regardless of worker scheduling
type tile struct {
	bounds image.Rectangle
	seed   int64
}

// generateTiles splits the frame into a grid of tiles. Each tile's seed is
// derived from the frame seed and the tile position.
func generateTiles(width, height, tileSize int, seed int64) []tile {
	var tiles []tile
	index := int64(0)
	for y := 0; y < height; y += tileSize {
		for x := 0; x < width; x += tileSize {
			maxX := x + tileSize
			if maxX > width {
				maxX = width
			}
			maxY := y + tileSize
			if maxY > height {
				maxY = height
			}
			tiles = append(tiles, tile{
				bounds: image.Rect(x, y, maxX, maxY),
				seed:   seed*((1<<31)-1) + index,
			})
			index++
		}
	}
	return tiles
}

// tileTask pairs a tile with the shared pixel array it writes into
type tileTask struct {
	tile       tile
	pixelStats [][]PixelStats
}

// tileResult reports the sampling statistics of one finished tile
type tileResult struct {
	stats RenderStats
	err   error
}

// workerPool renders tiles in parallel. Tiles own disjoint pixel regions,
// so workers write to the shared stats array without locking.
type workerPool struct {
	raytracer *Raytracer
	tasks     chan tileTask
	results   chan tileResult
	wg        sync.WaitGroup
	workers   int
}

func newWorkerPool(rt *Raytracer, workers, capacity int) *workerPool {
	if workers <= 0 {
		workers = 1
	}
	return &workerPool{
		raytracer: rt,
		tasks:     make(chan tileTask, capacity),
		results:   make(chan tileResult, capacity),
		workers:   workers,
	}
}

func (wp *workerPool) start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.run()
	}
}

func (wp *workerPool) run() {
	defer wp.wg.Done()
	for task := range wp.tasks {
		random := rand.New(rand.NewSource(task.tile.seed))
		stats := wp.raytracer.renderBounds(task.tile.bounds, task.pixelStats, random)
		wp.results <- tileResult{stats: stats}
	}
}

func (wp *workerPool) submit(task tileTask) {
	wp.tasks <- task
}

// finish closes the queue, waits for all workers and seals the results
// channel so callers can range over it
func (wp *workerPool) finish() {
	close(wp.tasks)
	wp.wg.Wait()
	close(wp.results)
}
