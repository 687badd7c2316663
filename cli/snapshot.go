package cli

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/user-none/empalm/display"
	"github.com/user-none/empalm/emu"
	"github.com/user-none/empalm/event"
	"github.com/user-none/empalm/skin"
)

// RenderSnapshot composes one frame of the device display offline: the
// chrome for device plus a single loopback core frame.
func RenderSnapshot(ctx context.Context, device skin.Device, scale display.ScaleFactor) (*image.RGBA, error) {
	sk, ok := skin.SkinFor(device)
	if !ok {
		return nil, fmt.Errorf("unknown device %q", device)
	}

	w, h := scale.CanvasSize()
	canvas := display.NewCanvas(w, h)

	var frames event.Source[image.Image]
	cache := skin.NewCache(skin.EmbeddedSource{})
	comp := display.NewCompositor(canvas, &frames, SilkscreenChrome(cache, sk.Silkscreen, scale), scale)
	defer comp.Dispose()

	if err := comp.Attach(); err != nil {
		return nil, err
	}
	if err := comp.Settle(ctx); err != nil {
		return nil, err
	}

	core := emu.NewLoopback()
	core.RunFrame()
	frame := &image.RGBA{
		Pix:    core.Framebuffer(),
		Stride: core.Stride(),
		Rect:   image.Rect(0, 0, emu.ScreenWidth, emu.ScreenHeight),
	}
	frames.Dispatch(frame)

	return canvas.Image(), nil
}

// WriteSnapshot renders a snapshot and writes it to path as PNG.
func WriteSnapshot(ctx context.Context, path string, device skin.Device, scale display.ScaleFactor) error {
	img, err := RenderSnapshot(ctx, device, scale)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return f.Close()
}
