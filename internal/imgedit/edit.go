// Package imgedit implements the elementary raster operations offered by the
// editor tab: grayscale conversion, resize to explicit dimensions, and
// integer-factor upscale-by-resize. All operations are direct calls into the
// imaging library; there is no custom pixel work here.
package imgedit

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Dimension bounds mirror the limits the editor form enforces.
const (
	MinDimension = 50
	MaxDimension = 2000
)

// Supported upscale factors. Anything else is rejected.
const (
	MinScale = 2
	MaxScale = 3
)

// Decode reads an uploaded JPEG or PNG into a raster image.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Grayscale converts the image into its pencil-sketch grayscale form.
func Grayscale(img image.Image) image.Image {
	return imaging.Grayscale(img)
}

// Resize scales the image to the exact width and height given.
func Resize(img image.Image, width, height int) (image.Image, error) {
	if width < MinDimension || width > MaxDimension || height < MinDimension || height > MaxDimension {
		return nil, fmt.Errorf("dimensions must be between %d and %d, got %dx%d",
			MinDimension, MaxDimension, width, height)
	}
	return imaging.Resize(img, width, height, imaging.Lanczos), nil
}

// Upscale enlarges the image by an integer factor via plain interpolation.
// This is upscale-by-resize, not super-resolution.
func Upscale(img image.Image, scale int) (image.Image, error) {
	if scale < MinScale || scale > MaxScale {
		return nil, fmt.Errorf("scale must be %d or %d, got %d", MinScale, MaxScale, scale)
	}
	bounds := img.Bounds()
	return imaging.Resize(img, bounds.Dx()*scale, bounds.Dy()*scale, imaging.Lanczos), nil
}

// EncodePNG serializes the image as PNG bytes for display and download.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename builds a unique download name for an image artifact.
func Filename(prefix string) string {
	return fmt.Sprintf("%s_%s.png", prefix, uuid.NewString())
}
