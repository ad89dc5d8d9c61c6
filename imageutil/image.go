// Package imageutil converts between floatimg buffers and the standard
// library's image types, and loads and saves them as image files.
package imageutil

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/wbrown/floatimg"
	"golang.org/x/image/draw"
)

// FromImage converts img to a buffer with samples in [0, 1].
// *image.Gray and *image.Gray16 become single-channel buffers; anything
// else becomes three RGB channels. Alpha is dropped after unpremultiplying.
func FromImage(img image.Image) *floatimg.Buffer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	switch src := img.(type) {
	case *image.Gray:
		b, _ := floatimg.New(w, h, 1)
		for y := 0; y < h; y++ {
			row := b.Row(y, 0)
			for x := range row {
				row[x] = float32(src.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y) / 0xff
			}
		}
		return b
	case *image.Gray16:
		b, _ := floatimg.New(w, h, 1)
		for y := 0; y < h; y++ {
			row := b.Row(y, 0)
			for x := range row {
				row[x] = float32(src.Gray16At(bounds.Min.X+x, bounds.Min.Y+y).Y) / 0xffff
			}
		}
		return b
	}

	nrgba := image.NewNRGBA64(image.Rect(0, 0, w, h))
	draw.Copy(nrgba, image.Point{}, img, bounds, draw.Src, nil)

	b, _ := floatimg.New(w, h, 3)
	r, g, bl := b.Channel(0), b.Channel(1), b.Channel(2)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := nrgba.NRGBA64At(x, y)
			i := y*w + x
			r[i] = float32(c.R) / 0xffff
			g[i] = float32(c.G) / 0xffff
			bl[i] = float32(c.B) / 0xffff
		}
	}
	return b
}

// ToImage converts a buffer to an 8-bit image, clamping samples to [0, 1].
// One channel gives *image.Gray and three give an opaque *image.RGBA.
func ToImage(b *floatimg.Buffer) (image.Image, error) {
	w, h := b.Width(), b.Height()
	switch b.Channels() {
	case 1:
		gray := image.NewGray(b.Bounds())
		for y := 0; y < h; y++ {
			for x, v := range b.Row(y, 0) {
				gray.Pix[y*gray.Stride+x] = quantize(v)
			}
		}
		return gray, nil
	case 3:
		rgba := image.NewRGBA(b.Bounds())
		r, g, bl := b.Channel(0), b.Channel(1), b.Channel(2)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				i := y*w + x
				rgba.SetRGBA(x, y, color.RGBA{
					R: quantize(r[i]),
					G: quantize(g[i]),
					B: quantize(bl[i]),
					A: 0xff,
				})
			}
		}
		return rgba, nil
	default:
		return nil, fmt.Errorf("image from %v: %w", b, floatimg.ErrInvalidChannelCount)
	}
}

// ToRGBA converts a one- or three-channel buffer to *image.RGBA,
// replicating gray samples into all three colour channels.
func ToRGBA(b *floatimg.Buffer) (*image.RGBA, error) {
	img, err := ToImage(b)
	if err != nil {
		return nil, err
	}
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Copy(rgba, image.Point{}, img, img.Bounds(), draw.Src, nil)
	return rgba, nil
}

// quantize clamps v to [0, 1] and rounds it to 8 bits.
func quantize(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(math.Round(float64(v) * 0xff))
}
