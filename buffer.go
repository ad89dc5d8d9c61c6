package floatimg

import (
	"fmt"
	"image"
	"log/slog"
	"math"
)

// Buffer is a w×h image with c float32 channels stored channel-major:
// the sample at (x, y, ch) lives at Pix[ch*w*h + y*w + x].
//
// A Buffer used as a convolution kernel is indexed the same way, with
// x and y running over the kernel's columns and rows.
type Buffer struct {
	// Pix holds all samples. len(Pix) == Width()*Height()*Channels().
	Pix []float32

	w, h, c int
}

// New allocates a zero-filled buffer. Any negative dimension is an error.
func New(w, h, c int) (*Buffer, error) {
	if w < 0 || h < 0 || c < 0 {
		return nil, fmt.Errorf("new %dx%dx%d: %w", w, h, c, ErrInvalidDimension)
	}
	return alloc(w, h, c), nil
}

// alloc is New for dimensions already known to be valid.
func alloc(w, h, c int) *Buffer {
	return &Buffer{
		Pix: make([]float32, w*h*c),
		w:   w,
		h:   h,
		c:   c,
	}
}

// FromPlanes builds a buffer from channel-major sample data. The slice is
// used directly, not copied.
func FromPlanes(w, h, c int, pix []float32) (*Buffer, error) {
	if w < 0 || h < 0 || c < 0 {
		return nil, fmt.Errorf("from planes %dx%dx%d: %w", w, h, c, ErrInvalidDimension)
	}
	if len(pix) != w*h*c {
		return nil, fmt.Errorf("from planes %dx%dx%d with %d samples: %w",
			w, h, c, len(pix), ErrInvalidDimension)
	}
	return &Buffer{Pix: pix, w: w, h: h, c: c}, nil
}

// Width returns the number of columns.
func (b *Buffer) Width() int { return b.w }

// Height returns the number of rows.
func (b *Buffer) Height() int { return b.h }

// Channels returns the number of channels.
func (b *Buffer) Channels() int { return b.c }

// Bounds returns the buffer's extent as an image rectangle at the origin.
func (b *Buffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.w, b.h) }

// Len returns the total number of samples.
func (b *Buffer) Len() int { return len(b.Pix) }

// Empty reports whether the buffer holds no samples.
func (b *Buffer) Empty() bool { return len(b.Pix) == 0 }

// SameShape reports whether b and o have identical width, height and
// channel count.
func (b *Buffer) SameShape(o *Buffer) bool {
	return b.w == o.w && b.h == o.h && b.c == o.c
}

// String describes the buffer's shape.
func (b *Buffer) String() string {
	return fmt.Sprintf("Buffer(%dx%dx%d)", b.w, b.h, b.c)
}

func (b *Buffer) index(x, y, ch int) int {
	return ch*b.w*b.h + y*b.w + x
}

// At returns the sample at (x, y, ch). Each coordinate is clamped into
// range first, so reads past an edge return the nearest edge sample.
// An empty buffer reads as 0.
func (b *Buffer) At(x, y, ch int) float32 {
	if len(b.Pix) == 0 {
		return 0
	}
	x = clampInt(x, 0, b.w-1)
	y = clampInt(y, 0, b.h-1)
	ch = clampInt(ch, 0, b.c-1)
	return b.Pix[b.index(x, y, ch)]
}

// Set stores v at (x, y, ch). A write outside the buffer is dropped and
// reported as ErrOutOfBounds.
func (b *Buffer) Set(x, y, ch int, v float32) error {
	if x < 0 || x >= b.w || y < 0 || y >= b.h || ch < 0 || ch >= b.c {
		Logger().Debug("dropped out-of-bounds write",
			slog.Int("x", x), slog.Int("y", y), slog.Int("ch", ch),
			slog.String("buffer", b.String()))
		return fmt.Errorf("set (%d,%d,%d) on %v: %w", x, y, ch, b, ErrOutOfBounds)
	}
	b.Pix[b.index(x, y, ch)] = v
	return nil
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	clone := alloc(b.w, b.h, b.c)
	copy(clone.Pix, b.Pix)
	return clone
}

// Fill sets every sample to v.
func (b *Buffer) Fill(v float32) {
	for i := range b.Pix {
		b.Pix[i] = v
	}
}

// Channel returns the contiguous plane of channel ch. The slice aliases
// the buffer. It returns nil when ch is out of range.
func (b *Buffer) Channel(ch int) []float32 {
	if ch < 0 || ch >= b.c {
		return nil
	}
	n := b.w * b.h
	return b.Pix[ch*n : (ch+1)*n : (ch+1)*n]
}

// Row returns row y of channel ch as a slice aliasing the buffer, or nil
// when either index is out of range.
func (b *Buffer) Row(y, ch int) []float32 {
	plane := b.Channel(ch)
	if plane == nil || y < 0 || y >= b.h {
		return nil
	}
	return plane[y*b.w : (y+1)*b.w : (y+1)*b.w]
}

// Range returns the smallest and largest sample across all channels.
// An empty buffer returns (+Inf, -Inf).
func (b *Buffer) Range() (lo, hi float32) {
	lo = float32(math.Inf(1))
	hi = float32(math.Inf(-1))
	for _, v := range b.Pix {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Sum returns the sum of every sample, accumulated in float64.
func (b *Buffer) Sum() float64 {
	var sum float64
	for _, v := range b.Pix {
		sum += float64(v)
	}
	return sum
}

// clampInt clamps an integer to the given range.
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
