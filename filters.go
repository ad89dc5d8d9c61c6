package floatimg

import (
	"fmt"
	"math"
	"strings"
)

// maxKernelSize bounds the edge length of synthesized kernels.
const maxKernelSize = 1 << 15

// kernel3x3 builds a single-channel 3×3 kernel from row-major weights.
func kernel3x3(weights [9]float32) *Buffer {
	k := alloc(3, 3, 1)
	copy(k.Pix, weights[:])
	return k
}

// IdentityFilter returns the 1×1 kernel of weight 1.
func IdentityFilter() *Buffer {
	k := alloc(1, 1, 1)
	k.Pix[0] = 1
	return k
}

// BoxFilter returns a size×size averaging kernel whose weights sum to 1.
// size must be in [1, 32768].
func BoxFilter(size int) (*Buffer, error) {
	if size <= 0 || size > maxKernelSize {
		return nil, fmt.Errorf("box filter of size %d: %w", size, ErrInvalidDimension)
	}
	k := alloc(size, size, 1)
	k.Fill(float32(1 / float64(size*size)))
	return k, nil
}

// GaussianFilter returns a square Gaussian kernel for the given standard
// deviation. The edge length is ceil(6*sigma) bumped to the next odd
// number so the kernel has a centre sample. 6*sigma may not exceed
// 32768.
//
// Weights come from the 2D Gaussian density and are not renormalized;
// the truncated tails make the sum slightly less than 1. Call NormalizeL1
// on the result when an exact unit sum matters.
func GaussianFilter(sigma float64) (*Buffer, error) {
	if !(sigma > 0) || !(6*sigma <= maxKernelSize) {
		return nil, fmt.Errorf("gaussian filter with sigma %g: %w", sigma, ErrInvalidDimension)
	}
	size := int(math.Ceil(6 * sigma))
	if size%2 == 0 {
		size++
	}
	r := size / 2
	k := alloc(size, size, 1)

	twoSigmaSq := 2 * sigma * sigma
	norm := 1 / (math.Pi * twoSigmaSq)
	for y := 0; y < size; y++ {
		dy := float64(y - r)
		for x := 0; x < size; x++ {
			dx := float64(x - r)
			k.Pix[y*size+x] = float32(norm * math.Exp(-(dx*dx+dy*dy)/twoSigmaSq))
		}
	}
	return k, nil
}

// HighpassFilter returns the 4-neighbour Laplacian kernel. Its weights
// sum to 0, so flat areas go to 0 and edges remain.
func HighpassFilter() *Buffer {
	return kernel3x3([9]float32{
		0, -1, 0,
		-1, 4, -1,
		0, -1, 0,
	})
}

// SharpenFilter returns the highpass kernel plus identity.
func SharpenFilter() *Buffer {
	return kernel3x3([9]float32{
		0, -1, 0,
		-1, 5, -1,
		0, -1, 0,
	})
}

// EmbossFilter returns a diagonal relief kernel lit from the top left.
func EmbossFilter() *Buffer {
	return kernel3x3([9]float32{
		-2, -1, 0,
		-1, 1, 1,
		0, 1, 2,
	})
}

// GradientXFilter returns the horizontal Sobel kernel.
func GradientXFilter() *Buffer {
	return kernel3x3([9]float32{
		-1, 0, 1,
		-2, 0, 2,
		-1, 0, 1,
	})
}

// GradientYFilter returns the vertical Sobel kernel.
func GradientYFilter() *Buffer {
	return kernel3x3([9]float32{
		-1, -2, -1,
		0, 0, 0,
		1, 2, 1,
	})
}

// FilterNames lists the names accepted by NamedFilter.
var FilterNames = []string{"box", "gaussian", "highpass", "sharpen", "emboss", "gx", "gy", "identity"}

// NamedFilter builds a kernel by name. param is the edge length for box
// and sigma for gaussian; the fixed kernels ignore it.
func NamedFilter(name string, param float64) (*Buffer, error) {
	switch strings.ToLower(name) {
	case "box":
		return BoxFilter(int(param))
	case "gaussian", "gauss":
		return GaussianFilter(param)
	case "highpass":
		return HighpassFilter(), nil
	case "sharpen":
		return SharpenFilter(), nil
	case "emboss":
		return EmbossFilter(), nil
	case "gx":
		return GradientXFilter(), nil
	case "gy":
		return GradientYFilter(), nil
	case "identity":
		return IdentityFilter(), nil
	default:
		return nil, fmt.Errorf("filter %q (want one of %s): %w",
			name, strings.Join(FilterNames, ", "), ErrUnknownFilter)
	}
}

// PreservesChannels reports whether a named filter is normally applied
// per channel. Blurs and sharpening keep colour; the edge kernels give a
// single response map.
func PreservesChannels(name string) bool {
	switch strings.ToLower(name) {
	case "highpass", "gx", "gy":
		return false
	default:
		return true
	}
}
