package retroscreen

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
)

// ErrTextureSize is returned when pixel data does not match a texture's
// dimensions.
var ErrTextureSize = errors.New("pixel data does not match texture size")

// Texture owns one RGBA8 texture on the device.
type Texture struct {
	dev    Device
	id     uint32
	width  int
	height int
}

// NewTexture allocates a width×height texture. pix may be nil to allocate
// empty storage; otherwise it must hold 4*width*height bytes.
func NewTexture(dev Device, width, height int, pix []byte) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid texture size %dx%d", width, height)
	}
	if pix != nil && len(pix) != 4*width*height {
		return nil, fmt.Errorf("new texture %dx%d with %d bytes: %w", width, height, len(pix), ErrTextureSize)
	}
	return &Texture{
		dev:    dev,
		id:     dev.CreateTexture(width, height, pix),
		width:  width,
		height: height,
	}, nil
}

// TextureFromImage uploads img, converting it to non-premultiplied RGBA
// when needed.
func TextureFromImage(dev Device, img image.Image) (*Texture, error) {
	rgba := toNRGBA(img)
	b := rgba.Bounds()
	return NewTexture(dev, b.Dx(), b.Dy(), rgba.Pix)
}

// Update re-uploads the full texture. The dimensions never change.
func (t *Texture) Update(pix []byte) error {
	if len(pix) != 4*t.width*t.height {
		return fmt.Errorf("update texture %dx%d with %d bytes: %w", t.width, t.height, len(pix), ErrTextureSize)
	}
	t.dev.UpdateTexture(t.id, t.width, t.height, pix)
	return nil
}

// ID returns the device handle.
func (t *Texture) ID() uint32 { return t.id }

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.height }

// toNRGBA returns img as a tightly packed *image.NRGBA anchored at the origin.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) && n.Stride == 4*n.Rect.Dx() {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
