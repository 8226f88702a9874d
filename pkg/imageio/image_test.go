package imageio

import (
	"testing"

	"github.com/JoeJoeTV/picture-perfector/pkg/core"
	"github.com/JoeJoeTV/picture-perfector/pkg/render"
)

func TestToRGBA_ClampsAndGammaEncodes(t *testing.T) {
	fb := render.NewFramebuffer(2, 1)
	fb.Set(0, 0, core.Zero)
	fb.Set(1, 0, core.NewVec3(4, 4, 4)) // over-bright, should clamp to 255

	img := ToRGBA(fb, 1.0)
	if r, _, _, a := img.RGBAAt(0, 0).RGBA(); r != 0 || a == 0 {
		t.Errorf("black pixel R = %v, want 0", r)
	}
	c := img.RGBAAt(1, 0)
	if c.R != 255 || c.G != 255 || c.B != 255 {
		t.Errorf("over-bright pixel = %+v, want (255,255,255)", c)
	}
}

func TestThumbnail_PreservesAspectRatioAndShrinks(t *testing.T) {
	fb := render.NewFramebuffer(400, 200)
	img := ToRGBA(fb, 1.0)

	thumb := Thumbnail(img, 100, 100)
	b := thumb.Bounds()
	if b.Dx() != 100 || b.Dy() != 50 {
		t.Errorf("thumbnail = %dx%d, want 100x50", b.Dx(), b.Dy())
	}
}

func TestThumbnail_NoUpscaling(t *testing.T) {
	fb := render.NewFramebuffer(10, 10)
	img := ToRGBA(fb, 1.0)

	thumb := Thumbnail(img, 1000, 1000)
	b := thumb.Bounds()
	if b.Dx() != 10 || b.Dy() != 10 {
		t.Errorf("thumbnail = %dx%d, want unchanged 10x10", b.Dx(), b.Dy())
	}
}
