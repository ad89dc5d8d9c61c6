package floatimg

import "fmt"

// SplitFrequencies separates im into a low-frequency part, im blurred
// with a unit-sum Gaussian of the given sigma, and the high-frequency
// residual im - low. Adding the two parts back reconstructs im up to
// float rounding.
func SplitFrequencies(im *Buffer, sigma float64) (low, high *Buffer, err error) {
	kernel, err := GaussianFilter(sigma)
	if err != nil {
		return nil, nil, err
	}
	kernel.NormalizeL1()
	if low, err = Convolve(im, kernel, true); err != nil {
		return nil, nil, err
	}
	if high, err = Sub(im, low); err != nil {
		return nil, nil, err
	}
	return low, high, nil
}

// Hybrid builds a hybrid image from the low frequencies of near and the
// high frequencies of far. Up close the detail of far dominates; from a
// distance only near's coarse structure remains. The result is clamped
// to [0, 1].
func Hybrid(near, far *Buffer, sigmaLow, sigmaHigh float64) (*Buffer, error) {
	if !near.SameShape(far) {
		return nil, fmt.Errorf("hybrid of %v and %v: %w", near, far, ErrShapeMismatch)
	}
	low, _, err := SplitFrequencies(near, sigmaLow)
	if err != nil {
		return nil, err
	}
	_, high, err := SplitFrequencies(far, sigmaHigh)
	if err != nil {
		return nil, err
	}
	out, err := Add(low, high)
	if err != nil {
		return nil, err
	}
	out.ClampUnit()
	return out, nil
}
