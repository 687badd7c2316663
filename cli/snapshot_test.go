package cli

import (
	"context"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/user-none/empalm/display"
	"github.com/user-none/empalm/skin"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestRenderSnapshot_Layers(t *testing.T) {
	scale := display.NewScaleFactor(1)
	img, err := RenderSnapshot(testContext(t), skin.HandEra330, scale)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w, h := scale.CanvasSize()
	if b := img.Bounds(); b.Dx() != w || b.Dy() != h {
		t.Fatalf("expected %dx%d, got %v", w, h, b)
	}

	if got := img.RGBAAt(10, 10); got != (color.RGBA{0x9c, 0xaa, 0x8c, 0xff}) {
		t.Errorf("expected LCD background at (10,10), got %v", got)
	}

	// No silkscreen image for this device, only the backing fill
	ss := scale.SilkscreenRect()
	if got := img.RGBAAt(ss.Min.X+ss.Dx()/2, ss.Min.Y+ss.Dy()/2); got != (color.RGBA{0xbb, 0xbb, 0xbb, 0xff}) {
		t.Errorf("expected silkscreen fill, got %v", got)
	}

	if got := img.RGBAAt(scale.Px(2), scale.Px(248)); got != (color.RGBA{0xd2, 0xd2, 0xd2, 0xff}) {
		t.Errorf("expected button strip background, got %v", got)
	}
}

func TestRenderSnapshot_Silkscreen(t *testing.T) {
	scale := display.NewScaleFactor(1)
	img, err := RenderSnapshot(testContext(t), skin.PalmV, scale)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fill := color.RGBA{0xbb, 0xbb, 0xbb, 0xff}
	ss := scale.SilkscreenRect()
	drawn := false
	for y := ss.Min.Y; y < ss.Max.Y && !drawn; y++ {
		for x := ss.Min.X; x < ss.Max.X; x++ {
			if img.RGBAAt(x, y) != fill {
				drawn = true
				break
			}
		}
	}
	if !drawn {
		t.Error("expected silkscreen artwork in the silkscreen area")
	}
}

func TestRenderSnapshot_UnknownDevice(t *testing.T) {
	if _, err := RenderSnapshot(testContext(t), skin.Device("Newton"), display.NewScaleFactor(1)); err == nil {
		t.Error("expected error for unknown device")
	}
}

func TestWriteSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := WriteSnapshot(testContext(t), path, skin.PalmIIIc, display.NewScaleFactor(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read snapshot: %v", err)
	}
	if len(data) < 8 || string(data[1:4]) != "PNG" {
		t.Error("expected a PNG file")
	}
}

func TestSilkscreenChrome_NoKey(t *testing.T) {
	load := SilkscreenChrome(skin.NewCache(skin.EmbeddedSource{}), skin.KeyNone, display.NewScaleFactor(1))
	img, err := load(testContext(t))
	if err != nil || img != nil {
		t.Errorf("expected no image and no error, got %v, %v", img, err)
	}
}

func TestSilkscreenChrome_Size(t *testing.T) {
	scale := display.NewScaleFactor(2)
	load := SilkscreenChrome(skin.NewCache(skin.EmbeddedSource{}), skin.SilkscreenM500, scale)
	img, err := load(testContext(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := img.Bounds().Size(), scale.SilkscreenRect().Size(); got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSilkscreenChrome_Failure(t *testing.T) {
	errBroken := errors.New("broken")
	src := skin.SourceFunc(func(skin.Key) ([]byte, error) { return nil, errBroken })
	load := SilkscreenChrome(skin.NewCache(src), skin.SilkscreenV, display.NewScaleFactor(1))

	if _, err := load(testContext(t)); !errors.Is(err, errBroken) {
		t.Errorf("expected wrapped source error, got %v", err)
	}
}
