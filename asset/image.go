package asset

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// imageFormats are the sniffed extensions image.Decode has a decoder for.
var imageFormats = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"bmp":  true,
	"tif":  true,
	"tiff": true,
	"webp": true,
}

// Image is a decoded still image.
type Image struct {
	image.Image

	Name string
	Path string
	// Format is the decoder that read the file ("png", "bmp", ...).
	Format string
}

// Width returns the image width in pixels.
func (i *Image) Width() int { return i.Bounds().Dx() }

// Height returns the image height in pixels.
func (i *Image) Height() int { return i.Bounds().Dy() }

func decodeImage(name, path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if ext := sniff(data, path); !imageFormats[ext] {
		return nil, fmt.Errorf("%w: %q is not an image", ErrUnsupported, ext)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return &Image{Image: img, Name: name, Path: path, Format: format}, nil
}
