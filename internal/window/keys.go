package window

import (
	"fmt"
	"sort"
)

// X11 keysym values for the combos the viewer can inject into the guest.
const (
	KeysymControlL  uint32 = 0xffe3
	KeysymAltL      uint32 = 0xffe9
	KeysymDelete    uint32 = 0xffff
	KeysymBackSpace uint32 = 0xff08
	KeysymPrint     uint32 = 0xff61
	KeysymF1        uint32 = 0xffbe // F1..F12 are consecutive
)

// keyCombos maps combo names accepted on the control surface (CLI, IPC,
// MCP) to the keysym sequences sent to the guest.
var keyCombos = func() map[string][]uint32 {
	combos := map[string][]uint32{
		"ctrl+alt+del":       {KeysymControlL, KeysymAltL, KeysymDelete},
		"ctrl+alt+backspace": {KeysymControlL, KeysymAltL, KeysymBackSpace},
		"printscreen":        {KeysymPrint},
	}
	for fn := 1; fn <= 12; fn++ {
		name := fmt.Sprintf("ctrl+alt+f%d", fn)
		combos[name] = []uint32{KeysymControlL, KeysymAltL, KeysymF1 + uint32(fn-1)}
	}
	return combos
}()

// KeyCombo resolves a named combo to its keysym sequence.
func KeyCombo(name string) ([]uint32, bool) {
	keys, ok := keyCombos[name]
	return keys, ok
}

// KeyComboNames lists the supported combo names, sorted.
func KeyComboNames() []string {
	names := make([]string, 0, len(keyCombos))
	for name := range keyCombos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SendKeyCombo sends a named key combination to the guest.
func (c *Controller) SendKeyCombo(name string) error {
	keys, ok := KeyCombo(name)
	if !ok {
		return fmt.Errorf("unknown key combo %q", name)
	}
	return c.SendKeys(keys)
}
