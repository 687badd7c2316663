package skin

import (
	"fmt"
	"sort"
)

// Device identifies an emulated device model.
type Device string

const (
	PalmPilot  Device = "PalmPilot"
	Pilot      Device = "Pilot"
	PalmIII    Device = "PalmIII"
	PalmVx     Device = "PalmVx"
	PalmV      Device = "PalmV"
	PalmVII    Device = "PalmVII"
	PalmVIIEZ  Device = "PalmVIIEZ"
	PalmVIIx   Device = "PalmVIIx"
	PalmIIIc   Device = "PalmIIIc"
	PalmIIIx   Device = "PalmIIIx"
	PalmIIIxe  Device = "PalmIIIxe"
	PalmIIIe   Device = "PalmIIIe"
	PalmM500   Device = "PalmM500"
	PalmM505   Device = "PalmM505"
	PalmM515   Device = "PalmM515"
	PalmM100   Device = "PalmM100"
	PalmM105   Device = "PalmM105"
	PalmM125   Device = "PalmM125"
	PalmM130   Device = "PalmM130"
	Palmi705   Device = "Palmi705"
	PalmI710   Device = "PalmI710"
	HandEra330 Device = "HandEra330"
	PegS300    Device = "PEG-S300"
	PegS320    Device = "PEG-S320"
)

// Skin names the assets that make up a device's faceplate. KeyNone means
// the device has no such asset.
type Skin struct {
	Silkscreen  Key
	HardButtons Key
}

var deviceSkins = map[Device]Skin{
	PalmPilot:  {SilkscreenPilot, HardButtonsPilot},
	Pilot:      {SilkscreenPilot, HardButtonsPilot},
	PalmIII:    {SilkscreenV, HardButtonsIIIX},
	PalmVx:     {SilkscreenV, HardButtonsPalmV},
	PalmV:      {SilkscreenV, HardButtonsPalmV},
	PalmVII:    {SilkscreenV, HardButtonsIIIX},
	PalmVIIEZ:  {SilkscreenV, HardButtonsIIIX},
	PalmVIIx:   {SilkscreenV, HardButtonsIIIX},
	PalmIIIc:   {SilkscreenIIIC, HardButtonsIIIC},
	PalmIIIx:   {SilkscreenV, HardButtonsIIIX},
	PalmIIIxe:  {SilkscreenV, HardButtonsIIIE},
	PalmIIIe:   {SilkscreenV, HardButtonsIIIE},
	PalmM500:   {SilkscreenM500, HardButtonsM500},
	PalmM505:   {SilkscreenM500, HardButtonsM500},
	PalmM515:   {SilkscreenM515, HardButtonsM515},
	PalmM100:   {SilkscreenM100, HardButtonsM100},
	PalmM105:   {SilkscreenM100, HardButtonsM100},
	PalmM125:   {SilkscreenM100, HardButtonsM125},
	PalmM130:   {SilkscreenM130, HardButtonsM130},
	Palmi705:   {SilkscreenI705, HardButtonsI705},
	PalmI710:   {SilkscreenI705, HardButtonsI705},
	HandEra330: {KeyNone, HardButtonsHandEra330},
	PegS300:    {SilkscreenPegS300, HardButtonsPegS300},
	PegS320:    {SilkscreenPegS300, HardButtonsPegS320},
}

// SkinFor returns the skin of a device.
func SkinFor(d Device) (Skin, bool) {
	s, ok := deviceSkins[d]
	return s, ok
}

// ParseDevice validates a device id.
func ParseDevice(id string) (Device, error) {
	d := Device(id)
	if _, ok := deviceSkins[d]; !ok {
		return "", fmt.Errorf("unknown device %q", id)
	}
	return d, nil
}

// Devices returns all known device ids, sorted.
func Devices() []Device {
	out := make([]Device, 0, len(deviceSkins))
	for d := range deviceSkins {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
