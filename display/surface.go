package display

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Sampling selects how a source image is resampled when drawn scaled.
type Sampling int

const (
	// SamplingNearest picks the closest source pixel. The LCD is a low
	// resolution bitmap and is always drawn this way.
	SamplingNearest Sampling = iota

	// SamplingSmooth uses high quality interpolation, for artwork.
	SamplingSmooth
)

func (s Sampling) String() string {
	switch s {
	case SamplingNearest:
		return "nearest"
	case SamplingSmooth:
		return "smooth"
	}
	return "unknown"
}

// Surface is a drawing target in backing pixels. The sampling mode passed
// to Draw applies to that call only, so draws never depend on each other's
// order.
type Surface interface {
	Bounds() image.Rectangle
	Fill(r image.Rectangle, c color.Color)
	Draw(src image.Image, dst image.Rectangle, sampling Sampling)
	// Text draws s centred on the given point with the given pixel size.
	Text(s string, center image.Point, size float64, c color.Color)
}

// Canvas is a CPU Surface backed by an RGBA image.
type Canvas struct {
	img   *image.RGBA
	faces map[float64]font.Face
}

// NewCanvas creates a transparent canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		faces: make(map[float64]font.Face),
	}
}

// Image returns the canvas contents.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Bounds implements Surface.
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// Fill implements Surface.
func (c *Canvas) Fill(r image.Rectangle, col color.Color) {
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Over)
}

// Draw implements Surface.
func (c *Canvas) Draw(src image.Image, dst image.Rectangle, sampling Sampling) {
	var scaler xdraw.Scaler = xdraw.NearestNeighbor
	if sampling == SamplingSmooth {
		scaler = xdraw.CatmullRom
	}
	scaler.Scale(c.img, dst, src, src.Bounds(), xdraw.Over, nil)
}

// Text implements Surface.
func (c *Canvas) Text(s string, center image.Point, size float64, col color.Color) {
	face, err := c.face(size)
	if err != nil {
		return
	}

	m := face.Metrics()
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
	}
	width := d.MeasureString(s)
	d.Dot = fixed.Point26_6{
		X: fixed.I(center.X) - width/2,
		Y: fixed.I(center.Y) + (m.Ascent-m.Descent)/2,
	}
	d.DrawString(s)
}

func (c *Canvas) face(size float64) (font.Face, error) {
	if f, ok := c.faces[size]; ok {
		return f, nil
	}

	ft, err := legendFont()
	if err != nil {
		return nil, err
	}
	f, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	c.faces[size] = f
	return f, nil
}

var (
	legendFontOnce sync.Once
	legendFontVal  *opentype.Font
	legendFontErr  error
)

// legendFont parses the bundled Go Regular font on first use.
func legendFont() (*opentype.Font, error) {
	legendFontOnce.Do(func() {
		legendFontVal, legendFontErr = opentype.Parse(goregular.TTF)
	})
	return legendFontVal, legendFontErr
}

// LegendFontTTF returns the raw font used for button legends, for surfaces
// that shape text themselves.
func LegendFontTTF() *bytes.Reader {
	return bytes.NewReader(goregular.TTF)
}
