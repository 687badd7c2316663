package display

import (
	"image"
	"image/color"
)

var (
	backgroundColor = color.RGBA{0xd2, 0xd2, 0xd2, 0xff}
	silkscreenColor = color.RGBA{0xbb, 0xbb, 0xbb, 0xff}
	legendColor     = color.Black
)

// legend is one labelled application button in the strip below the
// silkscreen, in logical coordinates.
type legend struct {
	label string
	x, y  float64
}

var buttonLegends = []legend{
	{"D", 15, 235},
	{"P", 45, 235},
	{"T", 115, 235},
	{"N", 145, 235},
}

// rule is an axis aligned line in logical coordinates.
type rule struct {
	x0, y0, x1, y1 float64
}

var buttonRules = []rule{
	{0, ActiveHeight, LogicalWidth, ActiveHeight},
	{30, ActiveHeight, 30, LogicalHeight},
	{60, ActiveHeight, 60, LogicalHeight},
	{130, ActiveHeight, 130, LogicalHeight},
	{100, ActiveHeight, 100, LogicalHeight},
	{60, 235, 100, 235},
}

// clearLCD paints the LCD region with the background tone.
func clearLCD(s Surface, scale ScaleFactor) {
	s.Fill(scale.LCDRect(), backgroundColor)
}

// drawSilkscreen paints the silkscreen area. A nil image leaves only the
// backing fill.
func drawSilkscreen(s Surface, scale ScaleFactor, img image.Image) {
	r := scale.SilkscreenRect()
	s.Fill(r, silkscreenColor)
	if img != nil {
		s.Draw(img, r, SamplingSmooth)
	}
}

// drawButtonLegends paints the application button strip.
func drawButtonLegends(s Surface, scale ScaleFactor) {
	s.Fill(scale.ButtonStripRect(), backgroundColor)

	width := scale.Px(0.5)
	if width < 1 {
		width = 1
	}
	for _, r := range buttonRules {
		s.Fill(ruleRect(scale, r, width), legendColor)
	}

	size := 10 * float64(scale)
	for _, l := range buttonLegends {
		s.Text(l.label, image.Pt(scale.Px(l.x), scale.Px(l.y)), size, legendColor)
	}
}

// ruleRect turns a line into a rectangle of the given backing width centred
// on the line.
func ruleRect(scale ScaleFactor, r rule, width int) image.Rectangle {
	x0, y0 := scale.Px(r.x0), scale.Px(r.y0)
	x1, y1 := scale.Px(r.x1), scale.Px(r.y1)
	half := width / 2
	if y0 == y1 {
		return image.Rect(x0, y0-half, x1, y0-half+width)
	}
	return image.Rect(x0-half, y0, x0-half+width, y1)
}
