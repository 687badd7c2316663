// Package display owns the emulated device's drawing surface: the mapping
// between window coordinates and the logical device surface, the static
// chrome below the LCD, and the compositor that blits frames from the core.
package display

import (
	"image"
	"math"
)

// Logical surface of the device, in device pixels.
const (
	LogicalWidth  = 160
	LogicalHeight = 250
	ActiveHeight  = 220 // rows below this are chrome and never take pointer input
	LCDHeight     = 160 // rows of the live LCD frame
)

// Magnification is the fixed zoom applied on top of the device pixel ratio.
const Magnification = 3

// ViewportRect is the on-screen bounding box of the display surface in
// window (CSS) pixels. It must be read fresh per event since layout can
// change between events.
type ViewportRect struct {
	Left, Top     float64
	Width, Height float64
}

// Point is a position in window pixels.
type Point struct {
	X, Y float64
}

// DeviceCoordinate is a position on the active region of the logical surface.
// Valid values satisfy 0 <= X < LogicalWidth and 0 <= Y < ActiveHeight.
type DeviceCoordinate struct {
	X, Y int
}

// ContentRect returns the sub-rectangle of vp that holds the logical surface
// once its aspect ratio is preserved. The surface is stretched to fill its
// container non-uniformly, so the content box is letterboxed or pillarboxed
// inside vp.
func ContentRect(vp ViewportRect) ViewportRect {
	if vp.Width*LogicalHeight > vp.Height*LogicalWidth {
		w := vp.Height * LogicalWidth / LogicalHeight
		return ViewportRect{
			Left:   vp.Left + (vp.Width-w)/2,
			Top:    vp.Top,
			Width:  w,
			Height: vp.Height,
		}
	}

	h := vp.Width * LogicalHeight / LogicalWidth
	return ViewportRect{
		Left:   vp.Left,
		Top:    vp.Top + (vp.Height-h)/2,
		Width:  vp.Width,
		Height: h,
	}
}

// MapToDeviceCoordinate maps a window point to the device's logical
// coordinates. The bool is false when the point falls outside the active
// region, including the chrome strip at the bottom.
func MapToDeviceCoordinate(vp ViewportRect, p Point) (DeviceCoordinate, bool) {
	if !(vp.Width > 0) || !(vp.Height > 0) || math.IsInf(vp.Width, 0) || math.IsInf(vp.Height, 0) {
		return DeviceCoordinate{}, false
	}

	c := ContentRect(vp)

	fx := math.Floor((p.X - c.Left) / c.Width * LogicalWidth)
	fy := math.Floor((p.Y - c.Top) / c.Height * LogicalHeight)

	// Comparisons on the float values keep NaN and huge values out
	if !(fx >= 0 && fx < LogicalWidth && fy >= 0 && fy < ActiveHeight) {
		return DeviceCoordinate{}, false
	}

	return DeviceCoordinate{X: int(fx), Y: int(fy)}, true
}

// ScaleFactor is the number of backing pixels per logical pixel. It is fixed
// for the lifetime of a display surface.
type ScaleFactor float64

// NewScaleFactor derives the scale from the device pixel ratio. Invalid
// ratios fall back to 1.
func NewScaleFactor(devicePixelRatio float64) ScaleFactor {
	if !(devicePixelRatio > 0) || math.IsInf(devicePixelRatio, 0) {
		devicePixelRatio = 1
	}
	return ScaleFactor(Magnification * devicePixelRatio)
}

// Px converts a logical length to backing pixels.
func (s ScaleFactor) Px(v float64) int {
	return int(math.Round(v * float64(s)))
}

// Rect converts a logical rectangle to backing pixels.
func (s ScaleFactor) Rect(x0, y0, x1, y1 float64) image.Rectangle {
	return image.Rect(s.Px(x0), s.Px(y0), s.Px(x1), s.Px(y1))
}

// CanvasSize returns the backing size of the whole logical surface.
func (s ScaleFactor) CanvasSize() (width, height int) {
	return s.Px(LogicalWidth), s.Px(LogicalHeight)
}

// LCDRect returns the live frame region in backing pixels.
func (s ScaleFactor) LCDRect() image.Rectangle {
	return s.Rect(0, 0, LogicalWidth, LCDHeight)
}

// SilkscreenRect returns the silkscreen region in backing pixels.
func (s ScaleFactor) SilkscreenRect() image.Rectangle {
	return s.Rect(0, LCDHeight, LogicalWidth, ActiveHeight)
}

// ButtonStripRect returns the application button strip in backing pixels.
func (s ScaleFactor) ButtonStripRect() image.Rectangle {
	return s.Rect(0, ActiveHeight, LogicalWidth, LogicalHeight)
}
