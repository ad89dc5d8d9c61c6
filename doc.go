// Package floatimg provides image processing on dense float32 pixel
// buffers: clamped pixel access, point operations, HSV conversion,
// nearest and bilinear resizing, kernel synthesis, convolution and
// gradient analysis.
//
// Buffers are stored channel-major. Every sample of channel 0 comes
// before channel 1, and within a channel samples are laid out row by row.
// Samples are usually in [0, 1] but nothing clamps them unless asked.
//
// Reads never fail. Coordinates outside the buffer are clamped to the
// nearest edge, and the same rule supplies border values for convolution
// and interpolation:
//
//	im, _ := floatimg.New(640, 480, 3)
//	k, _ := floatimg.GaussianFilter(2)
//	k.NormalizeL1()
//	blurred, err := floatimg.Convolve(im, k, true)
//
// Decoding and encoding image files lives in the imageutil subpackage.
package floatimg
