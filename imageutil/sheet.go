package imageutil

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	labelSize    = 14.0 // points at 72 DPI, so also pixels
	labelPadding = 4
)

// Panel is one labelled tile of a contact sheet.
type Panel struct {
	Label string
	Image image.Image
}

var labelFont = sync.OnceValues(func() (*truetype.Font, error) {
	return freetype.ParseFont(goregular.TTF)
})

// ContactSheet lays panels out left to right in rows of cols tiles, each
// with its label drawn underneath on a dark background. Every cell is as
// large as the largest panel.
func ContactSheet(panels []Panel, cols int) (*image.RGBA, error) {
	if len(panels) == 0 {
		return nil, errors.New("contact sheet: no panels")
	}
	if cols <= 0 {
		cols = len(panels)
	}
	cols = min(cols, len(panels))
	rows := (len(panels) + cols - 1) / cols

	var cellW, cellH int
	for _, p := range panels {
		cellW = max(cellW, p.Image.Bounds().Dx())
		cellH = max(cellH, p.Image.Bounds().Dy())
	}
	labelH := int(labelSize) + 2*labelPadding
	stepY := cellH + labelH

	sheet := image.NewRGBA(image.Rect(0, 0, cols*cellW, rows*stepY))
	draw.Draw(sheet, sheet.Bounds(), image.NewUniform(color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}),
		image.Point{}, draw.Src)

	for i, p := range panels {
		x0 := (i % cols) * cellW
		y0 := (i / cols) * stepY
		src := p.Image.Bounds()
		draw.Copy(sheet, image.Pt(x0, y0), p.Image, src, draw.Src, nil)

		if p.Label == "" {
			continue
		}
		clip := image.Rect(x0, y0+cellH, x0+cellW, y0+stepY)
		if err := drawLabel(sheet, clip, p.Label); err != nil {
			return nil, fmt.Errorf("contact sheet label %q: %w", p.Label, err)
		}
	}
	return sheet, nil
}

// drawLabel renders text in white inside clip, left aligned.
func drawLabel(dst *image.RGBA, clip image.Rectangle, text string) error {
	f, err := labelFont()
	if err != nil {
		return err
	}

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(labelSize)
	ctx.SetClip(clip)
	ctx.SetDst(dst)
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)

	baseline := clip.Min.Y + labelPadding + int(ctx.PointToFixed(labelSize)>>6)
	_, err = ctx.DrawString(text, freetype.Pt(clip.Min.X+labelPadding, baseline))
	return err
}
