package floatimg

import "fmt"

// Convolve applies kernel to im and returns a new buffer of the same width
// and height. Border samples come from edge replication, the same clamp
// rule At uses, so no padding is allocated.
//
// The kernel must be square with an odd edge length k, and have either one
// channel or as many channels as im. With r = k/2, output sample (x, y)
// of a channel is
//
//	sum over i, j in [-r, r] of kernel(j+r, i+r) * im(x+j, y+i)
//
// i.e. the kernel is correlated with the image, not flipped.
//
// When preserve is true every channel is filtered on its own and the
// result has im's channel count. When preserve is false the per-channel
// responses are summed into a single output channel.
func Convolve(im, kernel *Buffer, preserve bool) (*Buffer, error) {
	if err := checkKernel(im, kernel); err != nil {
		return nil, err
	}

	outC := 1
	if preserve {
		outC = im.c
	}
	out := alloc(im.w, im.h, outC)
	if im.w == 0 || im.h == 0 {
		return out, nil
	}

	forEachBand(im.h, func(y0, y1 int) {
		for ch := 0; ch < im.c; ch++ {
			dst := out.Channel(0)
			if preserve {
				dst = out.Channel(ch)
			}
			kplane := kernel.Channel(min(ch, kernel.c-1))
			correlatePlane(dst, im.Channel(ch), kplane, im.w, im.h, kernel.w, y0, y1)
		}
	})
	return out, nil
}

func checkKernel(im, kernel *Buffer) error {
	switch {
	case kernel.w != kernel.h:
		return fmt.Errorf("kernel %v is not square: %w", kernel, ErrInvalidKernel)
	case kernel.w%2 == 0:
		return fmt.Errorf("kernel %v has even size: %w", kernel, ErrInvalidKernel)
	case kernel.c != 1 && kernel.c != im.c:
		return fmt.Errorf("kernel %v does not match %v: %w", kernel, im, ErrInvalidKernel)
	}
	return nil
}

// correlatePlane adds the response of the k×k kernel plane over src to
// dst for rows [y0, y1). Both planes are w×h.
func correlatePlane(dst, src, kplane []float32, w, h, k, y0, y1 int) {
	r := k / 2
	for y := y0; y < y1; y++ {
		drow := dst[y*w : (y+1)*w]
		for x := range drow {
			var sum float64
			for i := -r; i <= r; i++ {
				srow := src[clampInt(y+i, 0, h-1)*w:]
				krow := kplane[(i+r)*k:]
				for j := -r; j <= r; j++ {
					sum += float64(krow[j+r]) * float64(srow[clampInt(x+j, 0, w-1)])
				}
			}
			drow[x] += float32(sum)
		}
	}
}
