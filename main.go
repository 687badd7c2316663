package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	emubridge "github.com/user-none/empalm/bridge/ebiten"
	"github.com/user-none/empalm/cli"
	"github.com/user-none/empalm/display"
	"github.com/user-none/empalm/emu"
	"github.com/user-none/empalm/skin"
)

func main() {
	deviceFlag := flag.String("device", string(skin.PalmV), "device model id")
	dprFlag := flag.Float64("dpr", 0, "device pixel ratio (0 uses the monitor's)")
	snapshotPath := flag.String("snapshot", "", "render one composed frame to this PNG path and exit")
	tps := flag.Int("tps", 60, "UI updates per second")
	mute := flag.Bool("mute", false, "disable audio")
	flag.Parse()

	device, err := skin.ParseDevice(*deviceFlag)
	if err != nil {
		names := make([]string, 0)
		for _, d := range skin.Devices() {
			names = append(names, string(d))
		}
		log.Fatalf("Invalid device: %v (use one of %s)", err, strings.Join(names, ", "))
	}

	dpr := *dprFlag
	if *snapshotPath != "" {
		if dpr <= 0 {
			dpr = 1
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := cli.WriteSnapshot(ctx, *snapshotPath, device, display.NewScaleFactor(dpr)); err != nil {
			log.Fatalf("Failed to write snapshot: %v", err)
		}
		return
	}

	if dpr <= 0 {
		dpr = emubridge.DeviceScaleFactor()
	}

	ebiten.SetWindowSize(display.LogicalWidth*display.Magnification, display.LogicalHeight*display.Magnification)
	ebiten.SetWindowTitle(emu.Name + " - " + string(device))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(display.LogicalWidth, display.LogicalHeight, -1, -1)
	ebiten.SetTPS(*tps)

	runner, err := cli.NewRunner(device, dpr, *mute)
	if err != nil {
		log.Fatalf("Failed to initialize runner: %v", err)
	}
	defer runner.Close()

	if err := ebiten.RunGame(runner); err != nil {
		log.Fatal(err)
	}
}
