// Package cli provides the windowed runner. It wires the emulation session,
// the input normalizer and the display compositor into an Ebiten game.
package cli

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	emubridge "github.com/user-none/empalm/bridge/ebiten"
	"github.com/user-none/empalm/core"
	"github.com/user-none/empalm/display"
	"github.com/user-none/empalm/emu"
	"github.com/user-none/empalm/input"
	"github.com/user-none/empalm/skin"
	"github.com/user-none/empalm/ui"
)

// keyBindings maps keyboard keys to hardware buttons.
var keyBindings = []struct {
	key    ebiten.Key
	button core.Button
}{
	{ebiten.KeyP, core.ButtonPower},
	{ebiten.KeyF1, core.ButtonDateBook},
	{ebiten.KeyF2, core.ButtonAddress},
	{ebiten.KeyF3, core.ButtonToDo},
	{ebiten.KeyF4, core.ButtonNotes},
	{ebiten.KeyArrowUp, core.ButtonUp},
	{ebiten.KeyArrowDown, core.ButtonDown},
}

// Runner is the ebiten.Game for windowed mode. The core runs on the
// session's goroutine; everything else runs on the Ebiten thread.
type Runner struct {
	session    *ui.Session
	speaker    *ui.Speaker
	surface    *emubridge.Surface
	compositor *display.Compositor
	normalizer *input.Normalizer
	poller     emubridge.Poller
	presenter  emubridge.Presenter

	dpr     float64
	focused bool
}

// NewRunner creates a runner for device at the given device pixel ratio.
// Audio initialization failure is non-fatal; the runner works without sound.
func NewRunner(device skin.Device, dpr float64, mute bool) (*Runner, error) {
	sk, ok := skin.SkinFor(device)
	if !ok {
		return nil, fmt.Errorf("unknown device %q", device)
	}

	scale := display.NewScaleFactor(dpr)
	w, h := scale.CanvasSize()
	surface, err := emubridge.NewSurface(w, h)
	if err != nil {
		return nil, fmt.Errorf("failed to create surface: %w", err)
	}

	var opts []ui.Option
	var speaker *ui.Speaker
	if !mute {
		speaker, err = ui.NewSpeaker(1.0)
		if err != nil {
			log.Printf("Warning: audio initialization failed: %v", err)
		} else {
			opts = append(opts, ui.WithAudio(speaker))
		}
	}

	session := ui.NewSession(emu.NewLoopback(), opts...)
	cache := skin.NewCache(skin.EmbeddedSource{})

	r := &Runner{
		session:    session,
		speaker:    speaker,
		surface:    surface,
		compositor: display.NewCompositor(surface, session.NewFrame(), SilkscreenChrome(cache, sk.Silkscreen, scale), scale),
		dpr:        dpr,
		focused:    true,
	}
	r.normalizer = input.NewNormalizer(session, r.presenter.Viewport)

	if err := r.compositor.Attach(); err != nil {
		r.Close()
		return nil, err
	}

	return r, nil
}

// Close stops the core and releases the compositor and audio.
func (r *Runner) Close() {
	r.compositor.Dispose()
	r.session.Close()
	if r.speaker != nil {
		r.speaker.Close()
		r.speaker = nil
	}
}

// Update implements ebiten.Game.
func (r *Runner) Update() error {
	r.compositor.Update()

	focused := ebiten.IsFocused()
	if focused != r.focused {
		r.setFocused(focused)
	}
	if !focused {
		return nil
	}

	for _, ev := range r.poller.Poll() {
		if _, err := r.normalizer.Handle(ev); err != nil {
			log.Printf("Warning: %v", err)
		}
	}
	r.pollKeys()

	r.session.Poll()
	return nil
}

// Draw implements ebiten.Game.
func (r *Runner) Draw(screen *ebiten.Image) {
	r.presenter.Present(screen, r.surface)
}

// Layout implements ebiten.Game.
func (r *Runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	return emubridge.Layout(outsideWidth, outsideHeight, r.dpr)
}

func (r *Runner) setFocused(focused bool) {
	r.focused = focused
	if !focused {
		r.compositor.Detach()
		r.session.Pause()
		r.releaseAll()
		return
	}
	if err := r.compositor.Attach(); err != nil {
		log.Printf("Warning: display attach failed: %v", err)
	}
	r.session.Resume()
}

// pollKeys forwards key edges as button transitions.
func (r *Runner) pollKeys() {
	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.key) {
			r.session.HandleButtonDown(b.button)
		}
		if inpututil.IsKeyJustReleased(b.key) {
			r.session.HandleButtonUp(b.button)
		}
	}
}

// releaseAll lifts the pen and every bound button so nothing stays held
// across a focus change.
func (r *Runner) releaseAll() {
	r.session.HandlePointerUp()
	for _, b := range keyBindings {
		r.session.HandleButtonUp(b.button)
	}
}
