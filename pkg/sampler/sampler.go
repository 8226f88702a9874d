// Package sampler implements the seedable per-pixel, per-sample random
// stream (core.Sampler) and the warping utilities integrators and BSDFs use
// to turn uniform draws into cosine/sphere/disk/VNDF-distributed directions.
package sampler

import (
	"math/rand"

	"github.com/JoeJoeTV/picture-perfector/pkg/core"
)

// RandomSampler is the default core.Sampler, backed by math/rand and reseeded
// deterministically from (baseSeed, pixel, sampleIndex) on every Seed call so
// that, per the determinism contract, a fixed seed reproduces a bit-identical
// stream regardless of which worker happens to process a given tile.
type RandomSampler struct {
	baseSeed uint64
	rng      *rand.Rand
}

// NewRandomSampler constructs a sampler seeded from baseSeed. Call Seed
// before the first draw of every pixel sample.
func NewRandomSampler(baseSeed uint64) *RandomSampler {
	return &RandomSampler{baseSeed: baseSeed, rng: rand.New(rand.NewSource(int64(baseSeed)))}
}

// splitmix64 mixes one 64-bit value into a well-distributed one; Seed chains
// it over baseSeed, the pixel coordinates and sampleIndex to derive an
// independent rand.Source per pixel sample without correlating neighboring
// pixels.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}

func (s *RandomSampler) Seed(pixel [2]int, sampleIndex int) {
	h := s.baseSeed
	h = splitmix64(h ^ uint64(int64(pixel[0])))
	h = splitmix64(h ^ uint64(int64(pixel[1])))
	h = splitmix64(h ^ uint64(int64(sampleIndex)))
	s.rng = rand.New(rand.NewSource(int64(h)))
}

func (s *RandomSampler) Next() float64 { return s.rng.Float64() }

func (s *RandomSampler) Next2D() (float64, float64) {
	return s.rng.Float64(), s.rng.Float64()
}

// Clone returns an independent sampler derived from this one's base seed, so
// that a worker's clone reproduces the same per-pixel streams as any other
// worker would for the same pixel and sample index.
func (s *RandomSampler) Clone() core.Sampler {
	return NewRandomSampler(splitmix64(s.baseSeed ^ 0xC0FFEE))
}

var _ core.Sampler = (*RandomSampler)(nil)
