package render

import "runtime"

// Config groups the tunables of a single render invocation: image size,
// per-pixel sampling budget, tiling granularity, and worker count. It is
// immutable once a Driver is built from it.
type Config struct {
	Width, Height int

	SamplesPerPixel int
	MaxDepth        int

	RussianRouletteMinBounces int
	RussianRouletteMinSamples int

	TileSize int // side length of a square tile; the teacher's 64 is standard
	Workers  int // 0 selects runtime.NumCPU()
}

// Default returns the sampling parameters this codebase's example scenes
// use (150 samples, depth 40, Russian roulette after 4 bounces/6 samples),
// with a 64-pixel tile and one worker goroutine per CPU.
func Default(width, height int) Config {
	return Config{
		Width:                      width,
		Height:                     height,
		SamplesPerPixel:            150,
		MaxDepth:                   40,
		RussianRouletteMinBounces:  4,
		RussianRouletteMinSamples:  6,
		TileSize:                   64,
		Workers:                    0,
	}
}

func (c Config) numWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}
