package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/wbrown/floatimg"
	"github.com/wbrown/floatimg/imageutil"
)

// options holds the parsed command line.
type options struct {
	input, input2 string
	output        string
	op            string
	filter        string
	sigma, sigma2 float64
	size          int
	width, height int
	interp        floatimg.Interpolation
	preserve      bool
	preserveSet   bool
	normalize     bool
	low, high     float64
	hue, sat      float64
	sheet         string
}

type operation struct {
	help string
	run  func(im *floatimg.Buffer, o *options) (*floatimg.Buffer, error)
}

var operations = map[string]operation{
	"resize":    {"resize to -width x -height (either may be 0 to keep aspect)", opResize},
	"filter":    {"convolve with -filter (box uses -size, gaussian uses -sigma)", opFilter},
	"magnitude": {"Sobel gradient magnitude, feature normalized", opMagnitude},
	"sobel":     {"alias for magnitude", opMagnitude},
	"colorize":  {"orientation/magnitude colour map of the Sobel gradient", opColorize},
	"canny":     {"Canny edges with -sigma, -low and -high", opCanny},
	"gray":      {"luma grayscale", opGray},
	"hsv-shift": {"rotate hue by -hue turns and scale saturation by -sat", opHSVShift},
	"hybrid":    {"low frequencies of -input with high frequencies of -input2", opHybrid},
	"thumb":     {"box-filtered thumbnail shrunk by -size", opThumb},
	"lowfreq":   {"Gaussian low-pass with -sigma", opLowFreq},
	"highfreq":  {"residual of the Gaussian low-pass, offset to mid gray", opHighFreq},
}

func main() {
	var o options
	var interp string
	var verbose bool
	var workers int

	flag.StringVar(&o.input, "input", "",
		"Path to the input image file (required)")
	flag.StringVar(&o.input2, "input2", "",
		"Second input image, used by -op hybrid")
	flag.StringVar(&o.output, "output", "",
		"Path to save the result (required); the extension picks the format")
	flag.StringVar(&o.op, "op", "filter",
		"Operation: "+strings.Join(operationNames(), ", "))
	flag.StringVar(&o.filter, "filter", "gaussian",
		"Kernel for -op filter: "+strings.Join(floatimg.FilterNames, ", "))
	flag.Float64Var(&o.sigma, "sigma", 2,
		"Gaussian standard deviation in pixels")
	flag.Float64Var(&o.sigma2, "sigma2", 3,
		"Gaussian standard deviation for the high-frequency image of -op hybrid")
	flag.IntVar(&o.size, "size", 7,
		"Box filter size, or shrink factor for -op thumb")
	flag.IntVar(&o.width, "width", 0,
		"Target width for -op resize")
	flag.IntVar(&o.height, "height", 0,
		"Target height for -op resize")
	flag.StringVar(&interp, "interp", "bilinear",
		"Interpolation for -op resize: nearest or bilinear")
	flag.BoolVar(&o.preserve, "preserve", true,
		"Filter each channel separately (default depends on -filter)")
	flag.BoolVar(&o.normalize, "normalize", false,
		"Feature normalize the result to [0,1] before saving")
	flag.Float64Var(&o.low, "low", floatimg.DefaultCannyLow,
		"Canny low threshold")
	flag.Float64Var(&o.high, "high", floatimg.DefaultCannyHigh,
		"Canny high threshold")
	flag.Float64Var(&o.hue, "hue", 0,
		"Hue rotation in turns for -op hsv-shift")
	flag.Float64Var(&o.sat, "sat", 1,
		"Saturation factor for -op hsv-shift")
	flag.StringVar(&o.sheet, "sheet", "",
		"Also write a labelled input/result contact sheet to this path")
	flag.IntVar(&workers, "workers", 0,
		"Goroutines per operation, 0 for GOMAXPROCS")
	flag.BoolVar(&verbose, "v", false,
		"Verbose (debug) logging")
	flag.Usage = usage
	flag.Parse()

	// Only override the per-filter default if -preserve was given.
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "preserve" {
			o.preserveSet = true
		}
	})

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	floatimg.SetLogger(logger)
	floatimg.SetParallelism(workers)

	if o.input == "" || o.output == "" {
		fmt.Println("Please provide the image using the -input and -output flags")
		flag.Usage()
		os.Exit(2)
	}

	switch strings.ToLower(interp) {
	case "nearest", "nn":
		o.interp = floatimg.InterpolationNearest
	case "bilinear", "linear":
		o.interp = floatimg.InterpolationLinear
	default:
		fmt.Println("Invalid interpolation, options are nearest or bilinear")
		os.Exit(2)
	}

	if err := run(&o, logger); err != nil {
		logger.Error("failed", slog.String("op", o.op), slog.Any("err", err))
		os.Exit(1)
	}
}

func run(o *options, logger *slog.Logger) error {
	op, ok := operations[strings.ToLower(o.op)]
	if !ok {
		return fmt.Errorf("unknown operation %q, options are %s",
			o.op, strings.Join(operationNames(), ", "))
	}

	im, err := imageutil.LoadBuffer(o.input)
	if err != nil {
		return err
	}
	logger.Info("loaded", slog.String("path", o.input), slog.String("buffer", im.String()))

	begin := time.Now()
	result, err := op.run(im, o)
	if err != nil {
		return err
	}
	if o.normalize {
		if err := result.CheckFeatureRange(); err != nil {
			logger.Warn("normalized result is blank", slog.Any("err", err))
		}
		result.NormalizeFeatureRange()
	}
	logger.Info("processed", slog.String("op", o.op), slog.String("buffer", result.String()),
		slog.Duration("elapsed", time.Since(begin)))

	if err := imageutil.SaveBuffer(result, o.output); err != nil {
		return err
	}
	logger.Info("saved", slog.String("path", o.output))

	if o.sheet != "" {
		if err := writeSheet(im, result, o); err != nil {
			return err
		}
		logger.Info("saved contact sheet", slog.String("path", o.sheet))
	}
	return nil
}

func writeSheet(in, out *floatimg.Buffer, o *options) error {
	if in.Channels() == 3 && out.Channels() == 1 {
		var err error
		if out, err = floatimg.GrayscaleToRGB(out); err != nil {
			return err
		}
	}
	inImg, err := imageutil.ToImage(in)
	if err != nil {
		return err
	}
	outImg, err := imageutil.ToImage(out)
	if err != nil {
		return err
	}
	sheet, err := imageutil.ContactSheet([]imageutil.Panel{
		{Label: "input", Image: inImg},
		{Label: describe(o), Image: outImg},
	}, 2)
	if err != nil {
		return err
	}
	return imageutil.SaveImage(sheet, o.sheet)
}

func describe(o *options) string {
	switch strings.ToLower(o.op) {
	case "filter":
		return fmt.Sprintf("%s %s", o.op, o.filter)
	case "resize":
		return fmt.Sprintf("%s %s", o.op, o.interp)
	default:
		return o.op
	}
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage of %s:\n", os.Args[0])
	flag.PrintDefaults()
	fmt.Fprintln(out, "\nOperations:")
	for _, name := range operationNames() {
		fmt.Fprintf(out, "  %-10s %s\n", name, operations[name].help)
	}
}

func operationNames() []string {
	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func opResize(im *floatimg.Buffer, o *options) (*floatimg.Buffer, error) {
	switch {
	case o.width > 0 && o.height > 0:
		return floatimg.Resize(im, o.width, o.height, o.interp)
	case o.width > 0:
		return floatimg.ResizeToWidth(im, o.width, o.interp)
	case o.height > 0:
		return floatimg.ResizeToHeight(im, o.height, o.interp)
	default:
		return nil, errors.New("resize needs -width and/or -height")
	}
}

func opFilter(im *floatimg.Buffer, o *options) (*floatimg.Buffer, error) {
	param := o.sigma
	if strings.EqualFold(o.filter, "box") {
		param = float64(o.size)
	}
	kernel, err := floatimg.NamedFilter(o.filter, param)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(strings.ToLower(o.filter), "gauss") {
		kernel.NormalizeL1()
	}
	preserve := floatimg.PreservesChannels(o.filter)
	if o.preserveSet {
		preserve = o.preserve
	}
	out, err := floatimg.Convolve(im, kernel, preserve)
	if err != nil {
		return nil, err
	}
	out.ClampUnit()
	return out, nil
}

func opMagnitude(im *floatimg.Buffer, _ *options) (*floatimg.Buffer, error) {
	grad, err := floatimg.Sobel(im)
	if err != nil {
		return nil, err
	}
	grad.Magnitude.NormalizeFeatureRange()
	return grad.Magnitude, nil
}

func opColorize(im *floatimg.Buffer, _ *options) (*floatimg.Buffer, error) {
	return floatimg.ColorizeSobel(im)
}

func opCanny(im *floatimg.Buffer, o *options) (*floatimg.Buffer, error) {
	return floatimg.Canny(im, o.sigma, o.low, o.high)
}

func opGray(im *floatimg.Buffer, _ *options) (*floatimg.Buffer, error) {
	return floatimg.ToGrayscale(im)
}

func opHSVShift(im *floatimg.Buffer, o *options) (*floatimg.Buffer, error) {
	out := im.Clone()
	if err := floatimg.RGBToHSV(out); err != nil {
		return nil, err
	}
	if err := out.ShiftChannel(0, float32(o.hue)); err != nil {
		return nil, err
	}
	if err := out.ScaleChannel(1, float32(o.sat)); err != nil {
		return nil, err
	}
	// Hue wraps on the way back; saturation must stay a fraction.
	sat := out.Channel(1)
	for i, v := range sat {
		sat[i] = min(max(v, 0), 1)
	}
	if err := floatimg.HSVToRGB(out); err != nil {
		return nil, err
	}
	out.ClampUnit()
	return out, nil
}

func opHybrid(im *floatimg.Buffer, o *options) (*floatimg.Buffer, error) {
	if o.input2 == "" {
		return nil, errors.New("hybrid needs -input2")
	}
	far, err := imageutil.LoadBuffer(o.input2)
	if err != nil {
		return nil, err
	}
	if !far.SameShape(im) {
		if far, err = floatimg.ResizeBilinear(far, im.Width(), im.Height()); err != nil {
			return nil, err
		}
	}
	return floatimg.Hybrid(im, far, o.sigma, o.sigma2)
}

func opThumb(im *floatimg.Buffer, o *options) (*floatimg.Buffer, error) {
	return floatimg.Thumbnail(im, o.size)
}

func opLowFreq(im *floatimg.Buffer, o *options) (*floatimg.Buffer, error) {
	low, _, err := floatimg.SplitFrequencies(im, o.sigma)
	return low, err
}

func opHighFreq(im *floatimg.Buffer, o *options) (*floatimg.Buffer, error) {
	_, high, err := floatimg.SplitFrequencies(im, o.sigma)
	if err != nil {
		return nil, err
	}
	for ch := 0; ch < high.Channels(); ch++ {
		if err := high.ShiftChannel(ch, 0.5); err != nil {
			return nil, err
		}
	}
	high.ClampUnit()
	return high, nil
}
