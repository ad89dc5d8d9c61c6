package floatimg

import (
	"fmt"
	"log/slog"
)

// BT.601 luma weights.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// ToGrayscale converts a 3-channel RGB buffer to a single-channel buffer
// using Y = 0.299*R + 0.587*G + 0.114*B.
func ToGrayscale(im *Buffer) (*Buffer, error) {
	if im.c != 3 {
		return nil, fmt.Errorf("grayscale of %v: %w", im, ErrInvalidChannelCount)
	}
	gray := alloc(im.w, im.h, 1)
	r, g, b := im.Channel(0), im.Channel(1), im.Channel(2)
	for i := range gray.Pix {
		gray.Pix[i] = lumaR*r[i] + lumaG*g[i] + lumaB*b[i]
	}
	return gray, nil
}

// GrayscaleToRGB replicates a single-channel buffer into three channels.
func GrayscaleToRGB(gray *Buffer) (*Buffer, error) {
	if gray.c != 1 {
		return nil, fmt.Errorf("rgb from %v: %w", gray, ErrInvalidChannelCount)
	}
	rgb := alloc(gray.w, gray.h, 3)
	for ch := 0; ch < 3; ch++ {
		copy(rgb.Channel(ch), gray.Pix)
	}
	return rgb, nil
}

// ShiftChannel adds delta to every sample of channel ch in place.
func (b *Buffer) ShiftChannel(ch int, delta float32) error {
	plane := b.Channel(ch)
	if plane == nil {
		return fmt.Errorf("shift channel %d of %v: %w", ch, b, ErrInvalidChannelCount)
	}
	for i := range plane {
		plane[i] += delta
	}
	return nil
}

// ScaleChannel multiplies every sample of channel ch by factor in place.
func (b *Buffer) ScaleChannel(ch int, factor float32) error {
	plane := b.Channel(ch)
	if plane == nil {
		return fmt.Errorf("scale channel %d of %v: %w", ch, b, ErrInvalidChannelCount)
	}
	for i := range plane {
		plane[i] *= factor
	}
	return nil
}

// ClampUnit clamps every sample to [0, 1] in place.
func (b *Buffer) ClampUnit() {
	for i, v := range b.Pix {
		b.Pix[i] = clampUnit(v)
	}
}

// NormalizeL1 divides every sample by the sum of all samples so that the
// buffer sums to 1. A zero sum cannot be normalized; every sample is set
// to 0 instead.
func (b *Buffer) NormalizeL1() {
	sum := b.Sum()
	if sum == 0 {
		Logger().Warn("l1 normalize of zero-sum buffer, zeroing",
			slog.String("buffer", b.String()))
		b.Fill(0)
		return
	}
	inv := 1 / sum
	for i, v := range b.Pix {
		b.Pix[i] = float32(float64(v) * inv)
	}
}

// CheckFeatureRange reports ErrDegenerateRange when b is empty or
// constant, the cases where NormalizeFeatureRange falls back to zeros.
func (b *Buffer) CheckFeatureRange() error {
	if lo, hi := b.Range(); !(hi > lo) {
		return fmt.Errorf("feature range of %v is [%g, %g]: %w", b, lo, hi, ErrDegenerateRange)
	}
	return nil
}

// NormalizeFeatureRange rescales all samples jointly so the global
// minimum maps to 0 and the maximum to 1. A constant buffer becomes all
// zeros.
func (b *Buffer) NormalizeFeatureRange() {
	if b.Empty() {
		return
	}
	lo, hi := b.Range()
	span := hi - lo
	if span == 0 {
		Logger().Debug("feature normalize of constant buffer, zeroing",
			slog.String("buffer", b.String()), slog.Float64("value", float64(lo)))
		b.Fill(0)
		return
	}
	for i, v := range b.Pix {
		b.Pix[i] = (v - lo) / span
	}
}

func clampUnit(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
