package skin

import (
	"errors"
	"testing"
)

func TestKeys_Complete(t *testing.T) {
	keys := Keys()
	if len(keys) != 34 {
		t.Fatalf("expected 34 keys, got %d", len(keys))
	}

	seen := make(map[string]bool)
	for _, k := range keys {
		name := k.String()
		if seen[name] {
			t.Errorf("duplicate key name %s", name)
		}
		seen[name] = true

		parsed, err := ParseKey(name)
		if err != nil || parsed != k {
			t.Errorf("round trip of %s gave %v, %v", name, parsed, err)
		}
	}
}

func TestParseKey_Unknown(t *testing.T) {
	if _, err := ParseKey("SILKSCREEN_NEWTON"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("expected ErrUnknownKey, got %v", err)
	}
	if KeyNone.Valid() || Key(-1).Valid() {
		t.Error("expected sentinel keys to be invalid")
	}
	if got := Key(77).String(); got != "Key(77)" {
		t.Errorf("expected Key(77), got %s", got)
	}
}

func TestSkinFor(t *testing.T) {
	s, ok := SkinFor(PalmV)
	if !ok || s.Silkscreen != SilkscreenV || s.HardButtons != HardButtonsPalmV {
		t.Errorf("unexpected PalmV skin %+v ok=%v", s, ok)
	}

	s, ok = SkinFor(HandEra330)
	if !ok || s.Silkscreen != KeyNone {
		t.Errorf("expected HandEra330 without silkscreen, got %+v", s)
	}

	for _, d := range Devices() {
		s, _ := SkinFor(d)
		if s.Silkscreen != KeyNone && !s.Silkscreen.Valid() {
			t.Errorf("%s: invalid silkscreen key", d)
		}
		if !s.HardButtons.Valid() {
			t.Errorf("%s: invalid hard buttons key", d)
		}
	}
}

func TestParseDevice(t *testing.T) {
	d, err := ParseDevice("PEG-S320")
	if err != nil || d != PegS320 {
		t.Errorf("expected PEG-S320, got %q, %v", d, err)
	}
	if _, err := ParseDevice("Newton"); err == nil {
		t.Error("expected an error for an unknown device")
	}
}
