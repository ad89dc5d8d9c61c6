package floatimg

import (
	"fmt"
	"math"
)

// Default Canny parameters for images with samples in [0, 1]. The
// thresholds correspond to the common 50/150 pair on 8-bit data.
const (
	DefaultCannySigma = 1.4
	DefaultCannyLow   = 50.0 / 255
	DefaultCannyHigh  = 150.0 / 255
)

// Canny performs Canny edge detection and returns a single-channel map
// holding 1 on edges and 0 elsewhere. RGB input is converted to grayscale
// first; other channel counts than 1 and 3 are rejected.
//
// The image is smoothed with a normalized Gaussian of the given sigma.
// low and high are gradient magnitude thresholds in sample units.
func Canny(im *Buffer, sigma, low, high float64) (*Buffer, error) {
	gray := im
	switch im.c {
	case 1:
	case 3:
		var err error
		if gray, err = ToGrayscale(im); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("canny on %v: %w", im, ErrInvalidChannelCount)
	}

	// Step 1: Gaussian blur to reduce noise
	kernel, err := GaussianFilter(sigma)
	if err != nil {
		return nil, err
	}
	kernel.NormalizeL1()
	blurred, err := Convolve(gray, kernel, true)
	if err != nil {
		return nil, err
	}

	// Step 2: magnitude and direction
	grad, err := Sobel(blurred)
	if err != nil {
		return nil, err
	}

	// Step 3: non-maximum suppression
	suppressed := nonMaxSuppression(grad)

	// Step 4: double threshold and hysteresis
	return hysteresis(suppressed, float32(low), float32(high)), nil
}

// CannyDefault runs Canny with DefaultCannySigma, DefaultCannyLow and
// DefaultCannyHigh.
func CannyDefault(im *Buffer) (*Buffer, error) {
	return Canny(im, DefaultCannySigma, DefaultCannyLow, DefaultCannyHigh)
}

// nonMaxSuppression keeps only pixels that are local maxima along the
// gradient direction. The one-pixel border is always suppressed.
func nonMaxSuppression(grad GradientPair) *Buffer {
	mag, dir := grad.Magnitude, grad.Orientation
	w, h := mag.w, mag.h
	out := alloc(w, h, 1)

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			m := mag.Pix[y*w+x]

			// Quantize to 0, 45, 90 or 135 degrees.
			angle := float64(dir.Pix[y*w+x]) * 180 / math.Pi
			if angle < 0 {
				angle += 180
			}

			var q, r float32
			switch {
			case angle < 22.5 || angle >= 157.5:
				q, r = mag.Pix[y*w+x+1], mag.Pix[y*w+x-1]
			case angle < 67.5:
				q, r = mag.Pix[(y+1)*w+x+1], mag.Pix[(y-1)*w+x-1]
			case angle < 112.5:
				q, r = mag.Pix[(y+1)*w+x], mag.Pix[(y-1)*w+x]
			default:
				q, r = mag.Pix[(y+1)*w+x-1], mag.Pix[(y-1)*w+x+1]
			}

			if m >= q && m >= r {
				out.Pix[y*w+x] = m
			}
		}
	}
	return out
}

// hysteresis marks pixels at or above high as edges, then grows edges
// into 8-connected pixels at or above low. Suppressed (zero) pixels are
// never edges.
func hysteresis(suppressed *Buffer, low, high float32) *Buffer {
	w, h := suppressed.w, suppressed.h
	edges := alloc(w, h, 1)

	var stack []int
	for i, v := range suppressed.Pix {
		if v > 0 && v >= high {
			edges.Pix[i] = 1
			stack = append(stack, i)
		}
	}

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%w, i/w
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				j := ny*w + nx
				if edges.Pix[j] == 0 && suppressed.Pix[j] > 0 && suppressed.Pix[j] >= low {
					edges.Pix[j] = 1
					stack = append(stack, j)
				}
			}
		}
	}
	return edges
}
