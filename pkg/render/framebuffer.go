package render

import "github.com/JoeJoeTV/picture-perfector/pkg/core"

// Framebuffer accumulates the mean color of every pixel of a render. Each
// tile owns a disjoint rectangle of it, so concurrent writers never race.
type Framebuffer struct {
	Width, Height int
	pixels        []core.Vec3
}

func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{Width: width, Height: height, pixels: make([]core.Vec3, width*height)}
}

func (f *Framebuffer) Set(x, y int, c core.Vec3) {
	f.pixels[y*f.Width+x] = c
}

func (f *Framebuffer) At(x, y int) core.Vec3 {
	return f.pixels[y*f.Width+x]
}
