package skin

import (
	"fmt"
	"strings"
)

// Key names one vector asset of a skin.
type Key int

// Silkscreen overlays are drawn below the LCD; hard button overlays show
// the device's application buttons.
const (
	KeyNone Key = iota

	SilkscreenV
	SilkscreenM500
	SilkscreenM515
	SilkscreenIIIC
	SilkscreenM100
	SilkscreenM130
	SilkscreenTungstenW
	SilkscreenPilot
	SilkscreenI705
	SilkscreenPegS300
	SilkscreenPegS500
	SilkscreenPegT415
	SilkscreenPegN610
	SilkscreenPegT600

	HardButtonsPalmV
	HardButtonsM515
	HardButtonsM500
	HardButtonsIIIC
	HardButtonsIIIX
	HardButtonsIIIE
	HardButtonsM100
	HardButtonsM125
	HardButtonsM130
	HardButtonsTungstenW
	HardButtonsPilot
	HardButtonsI705
	HardButtonsHandEra330
	HardButtonsPegS300
	HardButtonsPegS500
	HardButtonsPegS320
	HardButtonsPegT415
	HardButtonsPegN610
	HardButtonsPegN700
	HardButtonsPegNR70
)

var keyNames = [...]string{
	SilkscreenV:           "SILKSCREEN_V",
	SilkscreenM500:        "SILKSCREEN_M500",
	SilkscreenM515:        "SILKSCREEN_M515",
	SilkscreenIIIC:        "SILKSCREEN_IIIC",
	SilkscreenM100:        "SILKSCREEN_M100",
	SilkscreenM130:        "SILKSCREEN_M130",
	SilkscreenTungstenW:   "SILKSCREEN_TUNGSTEN_W",
	SilkscreenPilot:       "SILKSCREEN_PILOT",
	SilkscreenI705:        "SILKSCREEN_I705",
	SilkscreenPegS300:     "SILKSCREEN_PEG_S300",
	SilkscreenPegS500:     "SILKSCREEN_PEG_S500",
	SilkscreenPegT415:     "SILKSCREEN_PEG_T415",
	SilkscreenPegN610:     "SILKSCREEN_PEG_N610",
	SilkscreenPegT600:     "SILKSCREEN_PEG_T600",
	HardButtonsPalmV:      "HARD_BUTTONS_PALM_V",
	HardButtonsM515:       "HARD_BUTTONS_M515",
	HardButtonsM500:       "HARD_BUTTONS_M500",
	HardButtonsIIIC:       "HARD_BUTTONS_IIIC",
	HardButtonsIIIX:       "HARD_BUTTONS_IIIX",
	HardButtonsIIIE:       "HARD_BUTTONS_IIIE",
	HardButtonsM100:       "HARD_BUTTONS_M100",
	HardButtonsM125:       "HARD_BUTTONS_M125",
	HardButtonsM130:       "HARD_BUTTONS_M130",
	HardButtonsTungstenW:  "HARD_BUTTONS_TUNGSTEN_W",
	HardButtonsPilot:      "HARD_BUTTONS_PILOT",
	HardButtonsI705:       "HARD_BUTTONS_I705",
	HardButtonsHandEra330: "HARD_BUTTONS_HANDERA330",
	HardButtonsPegS300:    "HARD_BUTTONS_PEG_S300",
	HardButtonsPegS500:    "HARD_BUTTONS_PEG_S500",
	HardButtonsPegS320:    "HARD_BUTTONS_PEG_S320",
	HardButtonsPegT415:    "HARD_BUTTONS_PEG_T415",
	HardButtonsPegN610:    "HARD_BUTTONS_PEG_N610",
	HardButtonsPegN700:    "HARD_BUTTONS_PEG_N700",
	HardButtonsPegNR70:    "HARD_BUTTONS_PEG_NR70",
}
// Keys returns every asset key in declaration order.
func Keys() []Key {
	keys := make([]Key, 0, len(keyNames)-1)
	for k := KeyNone + 1; int(k) < len(keyNames); k++ {
		keys = append(keys, k)
	}
	return keys
}

func (k Key) String() string {
	if k > KeyNone && int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// Valid reports whether k names a known asset.
func (k Key) Valid() bool {
	return k > KeyNone && int(k) < len(keyNames)
}

// ParseKey returns the key with the given name, e.g. "SILKSCREEN_V".
func ParseKey(name string) (Key, error) {
	for k := KeyNone + 1; int(k) < len(keyNames); k++ {
		if keyNames[k] == name {
			return k, nil
		}
	}
	return KeyNone, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

// fileName is the asset's name in the embedded asset directory.
func (k Key) fileName() string {
	return strings.ToLower(keyNames[k]) + ".svg"
}
