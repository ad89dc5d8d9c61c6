package floatimg

import "errors"

var (
	// ErrInvalidDimension reports a negative buffer dimension, a
	// non-positive resize target or a non-positive kernel parameter.
	ErrInvalidDimension = errors.New("floatimg: invalid dimension")

	// ErrInvalidChannelCount reports an operation applied to a buffer
	// with the wrong number of channels, or a channel index out of range.
	ErrInvalidChannelCount = errors.New("floatimg: invalid channel count")

	// ErrOutOfBounds reports a write outside the buffer. The write is
	// dropped and the buffer is left untouched.
	ErrOutOfBounds = errors.New("floatimg: write out of bounds")

	// ErrInvalidKernel reports a kernel that is not square, has an even
	// edge length or has a channel count incompatible with the image.
	ErrInvalidKernel = errors.New("floatimg: invalid kernel")

	// ErrDegenerateRange reports a normalization whose divisor is zero.
	// The in-place normalizers never return it; they fall back to an
	// all-zero buffer. CheckFeatureRange reports it ahead of time.
	ErrDegenerateRange = errors.New("floatimg: degenerate range")

	// ErrShapeMismatch reports two buffers that must share a shape but
	// do not.
	ErrShapeMismatch = errors.New("floatimg: shape mismatch")

	// ErrUnknownFilter reports an unrecognized name passed to NamedFilter.
	ErrUnknownFilter = errors.New("floatimg: unknown filter")
)
