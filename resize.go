package floatimg

import (
	"fmt"
	"math"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationLinear blends the four surrounding samples.
	InterpolationLinear Interpolation = iota

	// InterpolationNearest picks the closest sample.
	// Fastest, and exact when the size does not change.
	InterpolationNearest
)

// String returns the lower-case name used by the command line tool.
func (i Interpolation) String() string {
	switch i {
	case InterpolationLinear:
		return "bilinear"
	case InterpolationNearest:
		return "nearest"
	default:
		return fmt.Sprintf("Interpolation(%d)", int(i))
	}
}

// NearestInterpolate returns the sample of channel ch nearest to the
// fractional coordinate (x, y). Halves round away from zero.
func NearestInterpolate(im *Buffer, x, y float64, ch int) float32 {
	nx := clampInt(int(math.Round(x)), 0, im.w-1)
	ny := clampInt(int(math.Round(y)), 0, im.h-1)
	return im.At(nx, ny, ch)
}

// BilinearInterpolate blends the four samples around (x, y), first along
// x and then along y. Neighbours past the border are edge clamped.
func BilinearInterpolate(im *Buffer, x, y float64, ch int) float32 {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	dx := x - float64(x0)
	dy := y - float64(y0)

	q00 := float64(im.At(x0, y0, ch))
	q10 := float64(im.At(x0+1, y0, ch))
	q01 := float64(im.At(x0, y0+1, ch))
	q11 := float64(im.At(x0+1, y0+1, ch))

	top := (1-dx)*q00 + dx*q10
	bottom := (1-dx)*q01 + dx*q11
	return float32((1-dy)*top + dy*bottom)
}

// ResizeNearest resamples im to w×h with nearest-neighbour lookup. Each
// axis is scaled independently by src/dst. Resizing to the same size
// returns an exact copy.
func ResizeNearest(im *Buffer, w, h int) (*Buffer, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("nearest resize %v to %dx%d: %w", im, w, h, ErrInvalidDimension)
	}
	out := alloc(w, h, im.c)
	sx := float64(im.w) / float64(w)
	sy := float64(im.h) / float64(h)

	forEachBand(h, func(y0, y1 int) {
		for ch := 0; ch < im.c; ch++ {
			for y := y0; y < y1; y++ {
				row := out.Row(y, ch)
				fy := float64(y) * sy
				for x := range row {
					row[x] = NearestInterpolate(im, float64(x)*sx, fy, ch)
				}
			}
		}
	})
	return out, nil
}

// ResizeBilinear resamples im to w×h with bilinear interpolation. The
// scale on each axis is (src-1)/dst, so output pixels land on the grid
// spanned by the source pixel centres.
func ResizeBilinear(im *Buffer, w, h int) (*Buffer, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("bilinear resize %v to %dx%d: %w", im, w, h, ErrInvalidDimension)
	}
	out := alloc(w, h, im.c)
	sx := float64(im.w-1) / float64(w)
	sy := float64(im.h-1) / float64(h)

	forEachBand(h, func(y0, y1 int) {
		for ch := 0; ch < im.c; ch++ {
			for y := y0; y < y1; y++ {
				row := out.Row(y, ch)
				fy := float64(y) * sy
				for x := range row {
					row[x] = BilinearInterpolate(im, float64(x)*sx, fy, ch)
				}
			}
		}
	})
	return out, nil
}

// Resize resizes im to w×h using the given interpolation method.
// Unknown methods fall back to bilinear.
func Resize(im *Buffer, w, h int, interp Interpolation) (*Buffer, error) {
	switch interp {
	case InterpolationNearest:
		return ResizeNearest(im, w, h)
	default:
		return ResizeBilinear(im, w, h)
	}
}

// ResizeToWidth resizes im to the given width, keeping the aspect ratio.
func ResizeToWidth(im *Buffer, width int, interp Interpolation) (*Buffer, error) {
	if im.w == 0 || im.h == 0 {
		return nil, fmt.Errorf("resize empty %v: %w", im, ErrInvalidDimension)
	}
	aspectRatio := float64(im.w) / float64(im.h)
	height := max(1, int(float64(width)/aspectRatio))
	return Resize(im, width, height, interp)
}

// ResizeToHeight resizes im to the given height, keeping the aspect ratio.
func ResizeToHeight(im *Buffer, height int, interp Interpolation) (*Buffer, error) {
	if im.w == 0 || im.h == 0 {
		return nil, fmt.Errorf("resize empty %v: %w", im, ErrInvalidDimension)
	}
	aspectRatio := float64(im.w) / float64(im.h)
	width := max(1, int(float64(height)*aspectRatio))
	return Resize(im, width, height, interp)
}

// Thumbnail shrinks im by an integer factor. It averages with a
// factor×factor box filter before nearest-neighbour downsampling so the
// result does not alias. An even factor is rounded up to the next odd
// box size.
func Thumbnail(im *Buffer, factor int) (*Buffer, error) {
	if factor <= 0 {
		return nil, fmt.Errorf("thumbnail factor %d: %w", factor, ErrInvalidDimension)
	}
	size := factor
	if size%2 == 0 {
		size++
	}
	box, err := BoxFilter(size)
	if err != nil {
		return nil, err
	}
	blurred, err := Convolve(im, box, true)
	if err != nil {
		return nil, err
	}
	return ResizeNearest(blurred, max(1, im.w/factor), max(1, im.h/factor))
}
