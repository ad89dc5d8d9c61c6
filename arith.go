package floatimg

import "fmt"

// Add returns a+b sample by sample. The buffers must share a shape.
func Add(a, b *Buffer) (*Buffer, error) {
	if !a.SameShape(b) {
		return nil, fmt.Errorf("add %v and %v: %w", a, b, ErrShapeMismatch)
	}
	out := alloc(a.w, a.h, a.c)
	for i := range out.Pix {
		out.Pix[i] = a.Pix[i] + b.Pix[i]
	}
	return out, nil
}

// Sub returns a-b sample by sample. The buffers must share a shape.
func Sub(a, b *Buffer) (*Buffer, error) {
	if !a.SameShape(b) {
		return nil, fmt.Errorf("sub %v and %v: %w", a, b, ErrShapeMismatch)
	}
	out := alloc(a.w, a.h, a.c)
	for i := range out.Pix {
		out.Pix[i] = a.Pix[i] - b.Pix[i]
	}
	return out, nil
}
