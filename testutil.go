package floatimg

import "math"

// CreateGradient creates a horizontal gradient from 0 at the left edge to
// 1 at the right edge, identical in every channel.
func CreateGradient(width, height, channels int) *Buffer {
	b := alloc(width, height, channels)
	for ch := 0; ch < channels; ch++ {
		for y := 0; y < height; y++ {
			row := b.Row(y, ch)
			for x := range row {
				if width > 1 {
					row[x] = float32(x) / float32(width-1)
				}
			}
		}
	}
	return b
}

// CreateVerticalGradient creates a vertical gradient from 0 at the top to
// 1 at the bottom.
func CreateVerticalGradient(width, height, channels int) *Buffer {
	b := alloc(width, height, channels)
	for ch := 0; ch < channels; ch++ {
		for y := 0; y < height; y++ {
			var v float32
			if height > 1 {
				v = float32(y) / float32(height-1)
			}
			row := b.Row(y, ch)
			for x := range row {
				row[x] = v
			}
		}
	}
	return b
}

// CreateCheckerboard creates a black and white checkerboard with the
// given square size, white in the top-left square. Sizes below 1 are
// treated as 1.
func CreateCheckerboard(width, height, channels, squareSize int) *Buffer {
	squareSize = max(1, squareSize)
	b := alloc(width, height, channels)
	for ch := 0; ch < channels; ch++ {
		for y := 0; y < height; y++ {
			row := b.Row(y, ch)
			for x := range row {
				if ((x/squareSize)+(y/squareSize))%2 == 0 {
					row[x] = 1
				}
			}
		}
	}
	return b
}

// CreateSolid creates a buffer with every channel set to the matching
// entry of values. The channel count is len(values).
func CreateSolid(width, height int, values ...float32) *Buffer {
	b := alloc(width, height, len(values))
	for ch, v := range values {
		plane := b.Channel(ch)
		for i := range plane {
			plane[i] = v
		}
	}
	return b
}

// CreateColorBars creates an RGB color bars test pattern.
func CreateColorBars(width, height int) *Buffer {
	colors := [][3]float32{
		{1, 1, 1}, // White
		{1, 1, 0}, // Yellow
		{0, 1, 1}, // Cyan
		{0, 1, 0}, // Green
		{1, 0, 1}, // Magenta
		{1, 0, 0}, // Red
		{0, 0, 1}, // Blue
		{0, 0, 0}, // Black
	}

	b := alloc(width, height, 3)
	barWidth := max(1, width/len(colors))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := colors[min(x/barWidth, len(colors)-1)]
			for ch := 0; ch < 3; ch++ {
				b.Pix[b.index(x, y, ch)] = c[ch]
			}
		}
	}
	return b
}

// CreateEdge creates an RGB image with sharp edges for testing edge
// detection: a gray background, a white rectangle in the centre and a
// black diagonal line.
func CreateEdge(width, height int) *Buffer {
	b := CreateSolid(width, height, 0.5, 0.5, 0.5)

	rx1, ry1 := width/4, height/4
	rx2, ry2 := 3*width/4, 3*height/4
	for ch := 0; ch < 3; ch++ {
		for y := ry1; y < ry2; y++ {
			row := b.Row(y, ch)
			for x := rx1; x < rx2; x++ {
				row[x] = 1
			}
		}
		for i := 0; i < min(width, height)/2; i++ {
			b.Pix[b.index(i, i, ch)] = 0
		}
	}
	return b
}

// CalculateMSE returns the mean squared error between two buffers of the
// same shape, or +Inf when the shapes differ.
func CalculateMSE(a, b *Buffer) float64 {
	if !a.SameShape(b) {
		return math.Inf(1)
	}
	if a.Empty() {
		return 0
	}
	var sumSq float64
	for i := range a.Pix {
		d := float64(a.Pix[i]) - float64(b.Pix[i])
		sumSq += d * d
	}
	return sumSq / float64(len(a.Pix))
}

// CalculateMaxDiff returns the largest absolute sample difference between
// two buffers of the same shape, or +Inf when the shapes differ.
func CalculateMaxDiff(a, b *Buffer) float64 {
	if !a.SameShape(b) {
		return math.Inf(1)
	}
	var maxDiff float64
	for i := range a.Pix {
		maxDiff = max(maxDiff, math.Abs(float64(a.Pix[i])-float64(b.Pix[i])))
	}
	return maxDiff
}
