package floatimg

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConvolveIdentity(t *testing.T) {
	src := CreateEdge(31, 17)
	box1, _ := BoxFilter(1)

	for _, kernel := range []*Buffer{box1, IdentityFilter()} {
		out, err := Convolve(src, kernel, true)
		if err != nil {
			t.Fatalf("Convolve failed: %v", err)
		}
		if diff := cmp.Diff(src.Pix, out.Pix); diff != "" {
			t.Errorf("1x1 unit kernel should be exact (-want +got):\n%s", diff)
		}
	}
}

// With edge clamping a constant image stays constant, scaled by the
// kernel sum, all the way to the border.
func TestConvolveConstantImage(t *testing.T) {
	src := CreateSolid(4, 4, 1)
	kernel, _ := GaussianFilter(1)
	out, err := Convolve(src, kernel, true)
	if err != nil {
		t.Fatalf("Convolve failed: %v", err)
	}

	want := float32(kernel.Sum())
	for i, v := range out.Pix {
		if math.Abs(float64(v-want)) > 1e-6 {
			t.Errorf("Pix[%d] = %f, want kernel sum %f", i, v, want)
		}
	}
}

func TestConvolveKnownValues(t *testing.T) {
	src, _ := FromPlanes(3, 3, 1, []float32{
		0, 1, 2,
		3, 4, 5,
		6, 7, 8,
	})
	out, err := Convolve(src, HighpassFilter(), true)
	if err != nil {
		t.Fatalf("Convolve failed: %v", err)
	}
	// Centre: 4*4 - (1+3+5+7). Corner: 4*0 - (0+0+1+3) with clamped
	// neighbours above and to the left.
	if got := out.At(1, 1, 0); got != 0 {
		t.Errorf("Centre: got %f, want 0", got)
	}
	if got := out.At(0, 0, 0); got != -4 {
		t.Errorf("Corner: got %f, want -4", got)
	}
	if got := out.At(2, 2, 0); got != 4 {
		t.Errorf("Opposite corner: got %f, want 4", got)
	}
}

// The kernel is correlated, not flipped.
func TestConvolveIsCorrelation(t *testing.T) {
	src := CreateGradient(5, 3, 1)
	out, err := Convolve(src, GradientXFilter(), true)
	if err != nil {
		t.Fatalf("Convolve failed: %v", err)
	}
	// Interior: (0.5 per two columns) * (1+2+1). Borders see one clamped
	// neighbour, so half the step.
	want := []float32{1, 2, 2, 2, 1}
	for y := 0; y < 3; y++ {
		if diff := cmp.Diff(want, out.Row(y, 0), approx); diff != "" {
			t.Errorf("Row %d mismatch (-want +got):\n%s", y, diff)
		}
	}
}

func TestConvolveNonPreserveSumsChannels(t *testing.T) {
	src := CreateCheckerboard(12, 10, 3, 3)
	if err := src.ScaleChannel(1, 0.5); err != nil {
		t.Fatal(err)
	}
	if err := src.ShiftChannel(2, 0.25); err != nil {
		t.Fatal(err)
	}
	box, _ := BoxFilter(3)

	collapsed, err := Convolve(src, box, false)
	if err != nil {
		t.Fatalf("Convolve failed: %v", err)
	}
	if collapsed.Channels() != 1 {
		t.Fatalf("Expected one channel, got %d", collapsed.Channels())
	}

	perChannel, err := Convolve(src, box, true)
	if err != nil {
		t.Fatalf("Convolve failed: %v", err)
	}
	for i, got := range collapsed.Pix {
		want := perChannel.Channel(0)[i] + perChannel.Channel(1)[i] + perChannel.Channel(2)[i]
		if math.Abs(float64(got-want)) > 1e-5 {
			t.Fatalf("Pix[%d] = %f, want per-channel sum %f", i, got, want)
		}
	}
}

func TestConvolvePerChannelKernel(t *testing.T) {
	src := CreateSolid(5, 5, 1, 1)
	kernel := CreateSolid(3, 3, 1, 2)

	out, err := Convolve(src, kernel, true)
	if err != nil {
		t.Fatalf("Convolve failed: %v", err)
	}
	if d := CalculateMaxDiff(CreateSolid(5, 5, 9, 18), out); d > 1e-6 {
		t.Errorf("Each channel should use its own kernel plane, max diff %g", d)
	}
}

func TestConvolveInvalidKernel(t *testing.T) {
	src := CreateSolid(8, 8, 0, 0, 0)
	notSquare, _ := New(3, 1, 1)
	even, _ := New(4, 4, 1)
	twoChannels, _ := New(3, 3, 2)

	for name, kernel := range map[string]*Buffer{
		"NotSquare":   notSquare,
		"Even":        even,
		"TwoChannels": twoChannels,
	} {
		if _, err := Convolve(src, kernel, true); !errors.Is(err, ErrInvalidKernel) {
			t.Errorf("%s: expected ErrInvalidKernel, got %v", name, err)
		}
	}
}

func TestConvolveEmptyImage(t *testing.T) {
	src, _ := New(0, 4, 2)
	out, err := Convolve(src, SharpenFilter(), false)
	if err != nil {
		t.Fatalf("Convolve failed: %v", err)
	}
	if out.Width() != 0 || out.Height() != 4 || out.Channels() != 1 {
		t.Errorf("Expected 0x4x1, got %v", out)
	}
}

func TestConvolveDoesNotModifySource(t *testing.T) {
	src := CreateEdge(20, 20)
	orig := src.Clone()
	if _, err := Convolve(src, EmbossFilter(), true); err != nil {
		t.Fatal(err)
	}
	if CalculateMaxDiff(orig, src) != 0 {
		t.Error("Convolve modified its source")
	}
}
