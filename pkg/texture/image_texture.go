package texture

import (
	"image"
	"io"
	"math"

	// Registers additional decoders (bmp, tiff, webp) beyond the stdlib's
	// png/jpeg/gif so that a texture or normal map supplied in one of those
	// formats still decodes through the same image.Decode call.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/JoeJoeTV/picture-perfector/pkg/core"
)

// ImageTexture samples a decoded raster image as a ColorSource, with
// bilinear-free nearest-neighbor lookup and repeat wrapping on both axes.
// V=0 is the bottom of the image, matching the rest of this codebase's
// uv convention.
type ImageTexture struct {
	Width, Height int
	Pixels        []core.Vec3 // row-major, Pixels[y*Width+x], y=0 at the top
	Gamma         float64     // decode gamma applied once at load; 1 = linear
}

// LoadImageTexture decodes an image from r (any format registered with the
// image package, including the extra formats above) into an ImageTexture.
func LoadImageTexture(r io.Reader, gamma float64) (*ImageTexture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	if gamma == 0 {
		gamma = 1
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]core.Vec3, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r16, g16, b16, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			c := core.NewVec3(float64(r16)/0xffff, float64(g16)/0xffff, float64(b16)/0xffff)
			if gamma != 1 {
				c = core.NewVec3(math.Pow(c.X, gamma), math.Pow(c.Y, gamma), math.Pow(c.Z, gamma))
			}
			pixels[y*w+x] = c
		}
	}
	return &ImageTexture{Width: w, Height: h, Pixels: pixels, Gamma: gamma}, nil
}

func (t *ImageTexture) Evaluate(uv [2]float64, point core.Vec3) core.Vec3 {
	u := wrap01(uv[0])
	v := wrap01(uv[1])

	x := int(u * float64(t.Width))
	y := int((1.0 - v) * float64(t.Height))
	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return t.Pixels[y*t.Width+x]
}

func wrap01(v float64) float64 {
	v -= math.Floor(v)
	return v
}

var _ ColorSource = (*ImageTexture)(nil)
