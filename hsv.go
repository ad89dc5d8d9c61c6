package floatimg

import (
	"fmt"
	"math"
)

// RGBToHSV converts a 3-channel RGB buffer to HSV in place. Hue is stored
// as a fraction of a full turn in [0, 1), saturation and value in [0, 1]
// for RGB input in [0, 1].
func RGBToHSV(im *Buffer) error {
	if im.c != 3 {
		return fmt.Errorf("rgb to hsv on %v: %w", im, ErrInvalidChannelCount)
	}
	c0, c1, c2 := im.Channel(0), im.Channel(1), im.Channel(2)
	for i := range c0 {
		h, s, v := rgbToHSV(float64(c0[i]), float64(c1[i]), float64(c2[i]))
		c0[i], c1[i], c2[i] = hueFraction(h), float32(s), float32(v)
	}
	return nil
}

// HSVToRGB converts a 3-channel HSV buffer, as produced by RGBToHSV, back
// to RGB in place. Hue values outside [0, 1) wrap around.
func HSVToRGB(im *Buffer) error {
	if im.c != 3 {
		return fmt.Errorf("hsv to rgb on %v: %w", im, ErrInvalidChannelCount)
	}
	c0, c1, c2 := im.Channel(0), im.Channel(1), im.Channel(2)
	for i := range c0 {
		r, g, b := hsvToRGB(float64(c0[i]), float64(c1[i]), float64(c2[i]))
		c0[i], c1[i], c2[i] = float32(r), float32(g), float32(b)
	}
	return nil
}

// hueFraction narrows a hue in [0, 1) to float32. Hues within half an
// ulp of 1 round up to 1.0 and wrap to 0.
func hueFraction(h float64) float32 {
	hf := float32(h)
	if hf >= 1 {
		hf = 0
	}
	return hf
}

func rgbToHSV(r, g, b float64) (h, s, v float64) {
	v = max(r, g, b)
	chroma := v - min(r, g, b)
	if v != 0 {
		s = chroma / v
	}
	if chroma == 0 {
		return 0, s, v
	}

	var sector float64
	switch v {
	case r:
		sector = (g - b) / chroma
	case g:
		sector = (b-r)/chroma + 2
	default:
		sector = (r-g)/chroma + 4
	}
	h = sector / 6
	if h < 0 {
		h++
	}
	// (g-b)/chroma can round to exactly -0 or land on 1 after the wrap.
	if h >= 1 {
		h = 0
	}
	return h, s, v
}

// hsvToRGB walks the six hue sectors of H' = 6h. The sector boundaries
// map to the primaries and secondaries exactly.
func hsvToRGB(h, s, v float64) (r, g, b float64) {
	h -= math.Floor(h)
	chroma := s * v
	m := v - chroma
	hp := 6 * h

	switch {
	case hp > 0 && hp < 1:
		return v, hp*chroma + m, m
	case hp == 1:
		return v, v, m
	case hp > 1 && hp < 2:
		return (2-hp)*chroma + m, v, m
	case hp == 2:
		return m, v, m
	case hp > 2 && hp < 3:
		return m, v, (hp-2)*chroma + m
	case hp == 3:
		return m, v, v
	case hp > 3 && hp < 4:
		return m, (4-hp)*chroma + m, v
	case hp == 4:
		return m, m, v
	case hp > 4 && hp < 5:
		return (hp-4)*chroma + m, m, v
	case hp == 5:
		return v, m, v
	case hp > 5 && hp < 6:
		return v, m, (6-hp)*chroma + m
	default:
		return v, m, m
	}
}
