package floatimg

import "math"

// GradientPair holds the per-pixel gradient of an image as two
// single-channel buffers of the image's size.
type GradientPair struct {
	// Magnitude is sqrt(gx² + gy²).
	Magnitude *Buffer
	// Orientation is atan2(gy, gx) in radians, in (-π, π].
	Orientation *Buffer
}

// Sobel computes the gradient of im with the Sobel kernels. Multi-channel
// images are collapsed: each direction's responses are summed over
// channels before magnitude and orientation are taken.
func Sobel(im *Buffer) (GradientPair, error) {
	gx, err := Convolve(im, GradientXFilter(), false)
	if err != nil {
		return GradientPair{}, err
	}
	gy, err := Convolve(im, GradientYFilter(), false)
	if err != nil {
		return GradientPair{}, err
	}

	mag := alloc(im.w, im.h, 1)
	theta := alloc(im.w, im.h, 1)
	for i := range mag.Pix {
		x, y := float64(gx.Pix[i]), float64(gy.Pix[i])
		mag.Pix[i] = float32(math.Hypot(x, y))
		theta.Pix[i] = float32(math.Atan2(y, x))
	}
	return GradientPair{Magnitude: mag, Orientation: theta}, nil
}

// ColorizeSobel renders the gradient of im as an RGB image: hue follows
// the edge orientation, while saturation and brightness follow its
// strength. Flat regions come out mid gray.
func ColorizeSobel(im *Buffer) (*Buffer, error) {
	grad, err := Sobel(im)
	if err != nil {
		return nil, err
	}
	if im.w == 0 || im.h == 0 {
		return alloc(im.w, im.h, 3), nil
	}

	// The magnitude map already has im's size, so this resample is an
	// identity. It stays so a reduced-resolution gradient can be dropped in.
	mag, err := ResizeNearest(grad.Magnitude, im.w, im.h)
	if err != nil {
		return nil, err
	}

	hsv := alloc(im.w, im.h, 3)
	hue, sat, val := hsv.Channel(0), hsv.Channel(1), hsv.Channel(2)
	for i, theta := range grad.Orientation.Pix {
		h := (float64(theta) + math.Pi) / (2 * math.Pi)
		if h >= 1 {
			h -= 1
		}
		m := clampUnit(mag.Pix[i])
		hue[i] = hueFraction(h)
		sat[i] = m
		val[i] = clampUnit(0.5 + 0.5*m)
	}
	if err := HSVToRGB(hsv); err != nil {
		return nil, err
	}
	return hsv, nil
}
