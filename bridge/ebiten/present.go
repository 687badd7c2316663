package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/user-none/empalm/display"
)

// Presenter draws the display surface into the window, letterboxed to the
// device aspect ratio.
type Presenter struct {
	viewport display.ViewportRect
	drawOpts ebiten.DrawImageOptions // Pre-allocated draw options to avoid per-frame allocation
}

// Viewport returns the window rectangle covered by the surface at the last
// Present, in screen pixels.
func (p *Presenter) Viewport() display.ViewportRect {
	return p.viewport
}

// Present draws s onto screen. The surface is already at backing
// resolution, so linear filtering only matters when the window is not an
// exact multiple.
func (p *Presenter) Present(screen *ebiten.Image, s *Surface) {
	b := screen.Bounds()
	p.viewport = display.ContentRect(display.ViewportRect{
		Left:   float64(b.Min.X),
		Top:    float64(b.Min.Y),
		Width:  float64(b.Dx()),
		Height: float64(b.Dy()),
	})

	src := s.Image().Bounds()
	if src.Dx() == 0 || src.Dy() == 0 || p.viewport.Width <= 0 || p.viewport.Height <= 0 {
		return
	}

	p.drawOpts = ebiten.DrawImageOptions{}
	p.drawOpts.GeoM.Scale(p.viewport.Width/float64(src.Dx()), p.viewport.Height/float64(src.Dy()))
	p.drawOpts.GeoM.Translate(p.viewport.Left, p.viewport.Top)
	p.drawOpts.Filter = ebiten.FilterLinear
	screen.DrawImage(s.Image(), &p.drawOpts)
}

// Layout returns the screen size in device pixels for a window of the given
// logical size.
func Layout(outsideWidth, outsideHeight int, dpr float64) (int, int) {
	if dpr <= 0 {
		dpr = 1
	}
	return int(float64(outsideWidth) * dpr), int(float64(outsideHeight) * dpr)
}

// DeviceScaleFactor returns the device pixel ratio of the current monitor.
func DeviceScaleFactor() float64 {
	if m := ebiten.Monitor(); m != nil {
		return m.DeviceScaleFactor()
	}
	return 1
}
