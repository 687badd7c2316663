// Package ebiten provides the Ebiten-specific display surface, input polling
// and window presentation.
package ebiten

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/user-none/empalm/display"
)

var _ display.Surface = (*Surface)(nil)

// Surface is a display.Surface backed by an offscreen ebiten image at the
// display's backing resolution.
type Surface struct {
	offscreen *ebiten.Image
	drawOpts  ebiten.DrawImageOptions // Reused to avoid per-frame allocation

	// Upload textures for CPU images, reused per size so the LCD frame
	// is written in place every frame
	textures map[image.Point]*ebiten.Image

	faceSource *text.GoTextFaceSource
	faces      map[float64]*text.GoTextFace
}

// NewSurface creates a surface of the given backing size.
func NewSurface(width, height int) (*Surface, error) {
	src, err := text.NewGoTextFaceSource(display.LegendFontTTF())
	if err != nil {
		return nil, err
	}
	return &Surface{
		offscreen:  ebiten.NewImage(width, height),
		textures:   make(map[image.Point]*ebiten.Image),
		faceSource: src,
		faces:      make(map[float64]*text.GoTextFace),
	}, nil
}

// Image returns the offscreen image.
func (s *Surface) Image() *ebiten.Image {
	return s.offscreen
}

// Bounds implements display.Surface.
func (s *Surface) Bounds() image.Rectangle {
	return s.offscreen.Bounds()
}

// Fill implements display.Surface.
func (s *Surface) Fill(r image.Rectangle, c color.Color) {
	vector.DrawFilledRect(s.offscreen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), c, false)
}

// Draw implements display.Surface. The filter is set on this call's options
// only.
func (s *Surface) Draw(src image.Image, dst image.Rectangle, sampling display.Sampling) {
	tex := s.texture(src)
	if tex == nil {
		return
	}

	b := tex.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}

	s.drawOpts = ebiten.DrawImageOptions{}
	s.drawOpts.GeoM.Scale(float64(dst.Dx())/float64(b.Dx()), float64(dst.Dy())/float64(b.Dy()))
	s.drawOpts.GeoM.Translate(float64(dst.Min.X), float64(dst.Min.Y))
	s.drawOpts.Filter = ebiten.FilterNearest
	if sampling == display.SamplingSmooth {
		s.drawOpts.Filter = ebiten.FilterLinear
	}
	s.offscreen.DrawImage(tex, &s.drawOpts)
}

// Text implements display.Surface.
func (s *Surface) Text(str string, center image.Point, size float64, c color.Color) {
	face, ok := s.faces[size]
	if !ok {
		face = &text.GoTextFace{Source: s.faceSource, Size: size}
		s.faces[size] = face
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(center.X), float64(center.Y))
	op.ColorScale.ScaleWithColor(c)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(s.offscreen, str, face, op)
}

// texture returns a GPU image holding src.
func (s *Surface) texture(src image.Image) *ebiten.Image {
	switch img := src.(type) {
	case *ebiten.Image:
		return img
	case *image.RGBA:
		size := img.Rect.Size()
		if img.Rect.Min != (image.Point{}) || img.Stride != size.X*4 {
			return ebiten.NewImageFromImage(img)
		}
		tex, ok := s.textures[size]
		if !ok {
			tex = ebiten.NewImage(size.X, size.Y)
			s.textures[size] = tex
		}
		tex.WritePixels(img.Pix[:size.X*size.Y*4])
		return tex
	case nil:
		return nil
	default:
		return ebiten.NewImageFromImage(src)
	}
}
