package floatimg

import (
	"errors"
	"math"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// rgbGrid returns an n*n*n x 1 RGB buffer covering [0,1]^3 in steps of
// 1/(n-1).
func rgbGrid(n int) *Buffer {
	b := alloc(n*n*n, 1, 3)
	i := 0
	for r := 0; r < n; r++ {
		for g := 0; g < n; g++ {
			for bl := 0; bl < n; bl++ {
				b.Pix[i] = float32(r) / float32(n-1)
				b.Pix[b.w+i] = float32(g) / float32(n-1)
				b.Pix[2*b.w+i] = float32(bl) / float32(n-1)
				i++
			}
		}
	}
	return b
}

// hueDistance is the distance between two hues on the unit circle.
func hueDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	return math.Min(d, 1-d)
}

func TestHSVRoundTrip(t *testing.T) {
	src := rgbGrid(11)
	hsv := src.Clone()
	if err := RGBToHSV(hsv); err != nil {
		t.Fatalf("RGBToHSV failed: %v", err)
	}
	for i, h := range hsv.Channel(0) {
		if h < 0 || h >= 1 {
			t.Fatalf("Hue %f at %d outside [0, 1)", h, i)
		}
	}

	rgb := hsv.Clone()
	if err := HSVToRGB(rgb); err != nil {
		t.Fatalf("HSVToRGB failed: %v", err)
	}
	if d := CalculateMaxDiff(src, rgb); d > 1e-4 {
		t.Errorf("RGB -> HSV -> RGB max diff %g", d)
	}
}

func TestRGBToHSVKnownColors(t *testing.T) {
	testCases := []struct {
		name    string
		r, g, b float64
		h, s, v float64
	}{
		{"Red", 1, 0, 0, 0, 1, 1},
		{"Yellow", 1, 1, 0, 1.0 / 6, 1, 1},
		{"Green", 0, 1, 0, 2.0 / 6, 1, 1},
		{"Cyan", 0, 1, 1, 3.0 / 6, 1, 1},
		{"Blue", 0, 0, 1, 4.0 / 6, 1, 1},
		{"Magenta", 1, 0, 1, 5.0 / 6, 1, 1},
		{"Black", 0, 0, 0, 0, 0, 0},
		{"Gray", 0.5, 0.5, 0.5, 0, 0, 0.5},
		{"Rose", 1, 0, 0.5, 11.0 / 12, 1, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, s, v := rgbToHSV(tc.r, tc.g, tc.b)
			if hueDistance(h, tc.h) > 1e-9 || math.Abs(s-tc.s) > 1e-9 || math.Abs(v-tc.v) > 1e-9 {
				t.Errorf("rgbToHSV(%g,%g,%g) = (%g,%g,%g), want (%g,%g,%g)",
					tc.r, tc.g, tc.b, h, s, v, tc.h, tc.s, tc.v)
			}
		})
	}
}

// Every sector boundary and the middle of every sector.
func TestHSVToRGBSectors(t *testing.T) {
	testCases := []struct {
		h       float64
		r, g, b float64
	}{
		{0, 1, 0, 0},
		{1.0 / 12, 1, 0.5, 0},
		{1.0 / 6, 1, 1, 0},
		{3.0 / 12, 0.5, 1, 0},
		{2.0 / 6, 0, 1, 0},
		{5.0 / 12, 0, 1, 0.5},
		{3.0 / 6, 0, 1, 1},
		{7.0 / 12, 0, 0.5, 1},
		{4.0 / 6, 0, 0, 1},
		{9.0 / 12, 0.5, 0, 1},
		{5.0 / 6, 1, 0, 1},
		{11.0 / 12, 1, 0, 0.5},
		{1, 1, 0, 0},
		{-1.0 / 6, 1, 0, 1},
	}

	for _, tc := range testCases {
		r, g, b := hsvToRGB(tc.h, 1, 1)
		if math.Abs(r-tc.r) > 1e-9 || math.Abs(g-tc.g) > 1e-9 || math.Abs(b-tc.b) > 1e-9 {
			t.Errorf("hsvToRGB(%g,1,1) = (%g,%g,%g), want (%g,%g,%g)",
				tc.h, r, g, b, tc.r, tc.g, tc.b)
		}
	}
}

func TestHSVMatchesColorful(t *testing.T) {
	src := rgbGrid(7)
	hsv := src.Clone()
	if err := RGBToHSV(hsv); err != nil {
		t.Fatalf("RGBToHSV failed: %v", err)
	}

	for x := 0; x < src.Width(); x++ {
		c := colorful.Color{
			R: float64(src.At(x, 0, 0)),
			G: float64(src.At(x, 0, 1)),
			B: float64(src.At(x, 0, 2)),
		}
		wantH, wantS, wantV := c.Hsv()
		gotH, gotS, gotV := float64(hsv.At(x, 0, 0)), float64(hsv.At(x, 0, 1)), float64(hsv.At(x, 0, 2))

		// Hue is undefined without chroma.
		if wantS > 0 && hueDistance(wantH/360, gotH) > 1e-5 {
			t.Errorf("%v: hue %g, colorful %g", c, gotH, wantH/360)
		}
		if math.Abs(wantS-gotS) > 1e-5 || math.Abs(wantV-gotV) > 1e-5 {
			t.Errorf("%v: s,v = %g,%g, colorful %g,%g", c, gotS, gotV, wantS, wantV)
		}

		back := colorful.Hsv(gotH*360, gotS, gotV)
		if !back.AlmostEqualRgb(c) {
			t.Errorf("%v: colorful.Hsv of our HSV gives %v", c, back)
		}
	}
}

// The float32 hue of a colour just short of a full turn wraps to 0.
func TestRGBToHSVHueBelowOne(t *testing.T) {
	b := CreateSolid(1, 1, 1, 0, 1e-8)
	if err := RGBToHSV(b); err != nil {
		t.Fatalf("RGBToHSV failed: %v", err)
	}
	if h := b.At(0, 0, 0); h < 0 || h >= 1 {
		t.Errorf("Hue %f outside [0, 1)", h)
	}
	if s, v := b.At(0, 0, 1), b.At(0, 0, 2); s != 1 || v != 1 {
		t.Errorf("Expected s=1 v=1, got s=%f v=%f", s, v)
	}
}

func TestHueFraction(t *testing.T) {
	for _, h := range []float64{0, 0.5, math.Nextafter(1, 0), 1 - 1e-9} {
		if got := hueFraction(h); got < 0 || got >= 1 {
			t.Errorf("hueFraction(%v) = %v, outside [0, 1)", h, got)
		}
	}
}

func TestHSVChannelCount(t *testing.T) {
	b := CreateSolid(2, 2, 0.5)
	if err := RGBToHSV(b); !errors.Is(err, ErrInvalidChannelCount) {
		t.Errorf("Expected ErrInvalidChannelCount, got %v", err)
	}
	if err := HSVToRGB(b); !errors.Is(err, ErrInvalidChannelCount) {
		t.Errorf("Expected ErrInvalidChannelCount, got %v", err)
	}
}
