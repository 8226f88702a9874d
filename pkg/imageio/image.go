// Package imageio turns a render's linear-light framebuffer into an 8-bit
// image and writes it to disk, with an optional downscaled preview path for
// streaming progress snapshots.
package imageio

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/JoeJoeTV/picture-perfector/pkg/render"
	"golang.org/x/image/draw"
)

// ToRGBA tone-maps a linear framebuffer to a gamma-encoded 8-bit image.
// Exposure scales linear radiance before the sRGB-ish gamma curve is
// applied; 1.0 leaves values unscaled.
func ToRGBA(fb *render.Framebuffer, exposure float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.At(x, y).Multiply(exposure)
			img.SetRGBA(x, y, color.RGBA{
				R: toByte(c.X),
				G: toByte(c.Y),
				B: toByte(c.Z),
				A: 255,
			})
		}
	}
	return img
}

func toByte(linear float64) uint8 {
	if linear <= 0 {
		return 0
	}
	gammaEncoded := math.Pow(linear, 1/2.2)
	if gammaEncoded >= 1 {
		return 255
	}
	return uint8(gammaEncoded*255 + 0.5)
}

// SavePNG tone-maps the framebuffer and writes it as a PNG to path.
func SavePNG(path string, fb *render.Framebuffer, exposure float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, ToRGBA(fb, exposure))
}

// Thumbnail downscales img to fit within maxWidth x maxHeight, preserving
// aspect ratio, using a high-quality Catmull-Rom resampler — cheap enough to
// regenerate on every tile callback for a live streaming preview.
func Thumbnail(img *image.RGBA, maxWidth, maxHeight int) *image.RGBA {
	srcBounds := img.Bounds()
	srcW, srcH := srcBounds.Dx(), srcBounds.Dy()
	if srcW == 0 || srcH == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}

	scale := math.Min(float64(maxWidth)/float64(srcW), float64(maxHeight)/float64(srcH))
	if scale >= 1 {
		return img
	}

	dstW := int(float64(srcW) * scale)
	dstH := int(float64(srcH) * scale)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, srcBounds, draw.Over, nil)
	return dst
}

// SaveThumbnailPNG tone-maps fb, downscales it to fit within
// maxWidth x maxHeight, and writes the result to path — the driver's
// streaming preview path, called after every tile so the file on disk
// always reflects the latest partial render.
func SaveThumbnailPNG(path string, fb *render.Framebuffer, exposure float64, maxWidth, maxHeight int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	thumb := Thumbnail(ToRGBA(fb, exposure), maxWidth, maxHeight)
	return png.Encode(f, thumb)
}
