package render

import (
	"sync"

	"github.com/JoeJoeTV/picture-perfector/pkg/core"
	"github.com/JoeJoeTV/picture-perfector/pkg/integrator"
	"github.com/JoeJoeTV/picture-perfector/pkg/sampler"
)

// tileTask is one unit of work submitted to the worker pool.
type tileTask struct {
	tile  Tile
	index int
}

// tileResult reports a finished tile back to the driver goroutine so it can
// invoke the caller's progress callback in completion order.
type tileResult struct {
	tile  Tile
	index int
}

// TileCallback is invoked once per completed tile, from a single goroutine
// (the driver's own), so calls never overlap one another. fb is the same
// framebuffer Render will eventually return, already updated with every tile
// completed so far, suitable for streaming a live preview; workers may still
// be writing the pixels of unfinished tiles into it while the callback runs.
type TileCallback func(tile Tile, completed, total int, fb *Framebuffer)

// Driver renders a scene tile by tile across a pool of worker goroutines,
// one per CPU by default, visiting tiles in an outward spiral from the
// image center so a live preview fills in from the middle first.
type Driver struct {
	scene       core.Scene
	integ       integrator.Integrator
	cfg         Config
	baseSampler core.Sampler
}

// NewDriver builds a render driver for the given scene and integrator. seed
// is the base seed every per-tile sampler is cloned from, so repeated
// renders of the same scene/config are bit-identical regardless of how
// tiles happen to be scheduled across workers.
func NewDriver(scene core.Scene, integ integrator.Integrator, cfg Config, seed uint64) *Driver {
	return &Driver{scene: scene, integ: integ, cfg: cfg, baseSampler: sampler.NewRandomSampler(seed)}
}

// Render runs the full image to completion and returns the accumulated
// framebuffer. onTile, if non-nil, is called after every tile finishes.
func (d *Driver) Render(onTile TileCallback) *Framebuffer {
	fb := NewFramebuffer(d.cfg.Width, d.cfg.Height)
	tiles := SpiralTiles(d.cfg.Width, d.cfg.Height, d.cfg.TileSize)

	numWorkers := d.cfg.numWorkers()
	taskQueue := make(chan tileTask, len(tiles))
	resultQueue := make(chan tileResult, len(tiles))

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go d.worker(&wg, taskQueue, resultQueue, fb)
	}

	for i, tile := range tiles {
		taskQueue <- tileTask{tile: tile, index: i}
	}
	close(taskQueue)

	go func() {
		wg.Wait()
		close(resultQueue)
	}()

	completed := 0
	for result := range resultQueue {
		completed++
		if onTile != nil {
			onTile(result.tile, completed, len(tiles), fb)
		}
	}

	return fb
}

func (d *Driver) worker(wg *sync.WaitGroup, tasks <-chan tileTask, results chan<- tileResult, fb *Framebuffer) {
	defer wg.Done()
	for task := range tasks {
		d.renderTile(task.tile, fb)
		results <- tileResult{tile: task.tile, index: task.index}
	}
}

// renderTile samples every pixel of the tile independently: the tile's
// sampler is a fresh clone of the driver's base sampler, reseeded per
// pixel/sample pair, so no two goroutines ever share a *rand.Rand and a
// tile's result does not depend on which worker rendered it or what order
// its pixels were visited in.
func (d *Driver) renderTile(tile Tile, fb *Framebuffer) {
	smp := d.baseSampler.Clone()
	cam := d.scene.Camera()
	spp := d.cfg.SamplesPerPixel

	for y := tile.MinY; y < tile.MaxY; y++ {
		for x := tile.MinX; x < tile.MaxX; x++ {
			accum := core.Zero
			for s := 0; s < spp; s++ {
				smp.Seed([2]int{x, y}, s)
				jx, jy := smp.Next2D()
				ray, weight := cam.SampleRay(float64(x)+jx, float64(y)+jy, smp)
				radiance := d.integ.Li(ray, d.scene, smp)
				accum = accum.Add(radiance.Multiply(weight))
			}
			if spp > 0 {
				accum = accum.Multiply(1 / float64(spp))
			}
			fb.Set(x, y, accum)
		}
	}
}
