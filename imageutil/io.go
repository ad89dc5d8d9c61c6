package imageutil

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/wbrown/floatimg"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// LoadImage decodes the image file at path.
// Supports PNG, JPEG, GIF, BMP, TIFF and WebP.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	floatimg.Logger().Debug("decoded image",
		slog.String("path", path), slog.String("format", format),
		slog.Int("width", img.Bounds().Dx()), slog.Int("height", img.Bounds().Dy()))
	return img, nil
}

// LoadBuffer decodes the image file at path into a buffer with samples
// in [0, 1].
func LoadBuffer(path string) (*floatimg.Buffer, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return FromImage(img), nil
}

// SaveImage saves an image to the specified path.
// Format is determined by file extension (png, jpg/jpeg, gif, bmp,
// tif/tiff); anything else is written as PNG.
func SaveImage(img image.Image, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	case ".gif":
		err = gif.Encode(f, img, nil)
	case ".bmp":
		err = bmp.Encode(f, img)
	case ".tif", ".tiff":
		err = tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

// SaveBuffer quantizes a one- or three-channel buffer to 8 bits and saves
// it to path.
func SaveBuffer(b *floatimg.Buffer, path string) error {
	img, err := ToImage(b)
	if err != nil {
		return err
	}
	return SaveImage(img, path)
}
