package draw

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// alphaThreshold is the minimum alpha for a sprite pixel to be drawn on the
// terminal canvas, which has no partial transparency.
const alphaThreshold = 128

// LoadSprite decodes an image file (PNG, JPEG, GIF, BMP or WebP).
func LoadSprite(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sprite: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode sprite %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decode sprite %s: empty %s image", path, format)
	}
	return img, nil
}

// sprite caches one source image scaled to the size it was last drawn at.
type sprite struct {
	src    image.Image
	scaled *image.NRGBA
}

// scaledTo returns the source image resampled to w*h pixels.
// The result is reused until the requested size changes (e.g. on resize).
func (s *sprite) scaledTo(w, h int) *image.NRGBA {
	if s.scaled != nil && s.scaled.Rect.Dx() == w && s.scaled.Rect.Dy() == h {
		return s.scaled
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), s.src, s.src.Bounds(), xdraw.Src, nil)
	s.scaled = dst
	return dst
}
