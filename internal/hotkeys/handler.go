// Package hotkeys registers global X11 keyboard shortcuts and groups
// them into detachable accelerator bundles.
package hotkeys

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

var ignoreModsOnce sync.Once

// Binding pairs a key sequence in xgbutil grammar (e.g. "Control-Mod1-f")
// with its callback.
type Binding struct {
	Sequence string
	Callback func()
}

// Group is a bundle of hotkeys that can be detached and re-attached as a
// unit. Detaching does not ungrab the keys: xgbutil's Detach would tear
// down every binding on the window, so the group gates its callbacks on
// an active flag instead.
type Group struct {
	xu       *xgbutil.XUtil
	win      xproto.Window
	bindings []Binding

	// connected is only touched from the event loop; active is also read
	// from the xevent goroutine, hence atomic.
	connected bool
	active    atomic.Bool
}

// NewGroup creates an inactive, unconnected group bound to win.
func NewGroup(xu *xgbutil.XUtil, win xproto.Window, bindings []Binding) *Group {
	ignoreModsOnce.Do(func() {
		configureIgnoreMods(xu)
	})

	return &Group{
		xu:       xu,
		win:      win,
		bindings: bindings,
	}
}

// Attach activates the group, grabbing its keys on first use.
func (g *Group) Attach() error {
	if !g.connected {
		for _, b := range g.bindings {
			b := b
			err := keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
				if g.active.Load() {
					b.Callback()
				}
			}).Connect(g.xu, g.win, b.Sequence, true)
			if err != nil {
				return fmt.Errorf("failed to bind %q: %w", b.Sequence, err)
			}
		}
		g.connected = true
	}

	g.active.Store(true)
	return nil
}

// Detach deactivates the group. Keys stay grabbed but their callbacks no
// longer fire.
func (g *Group) Detach() {
	g.active.Store(false)
}

// Active reports whether the group currently fires its callbacks.
func (g *Group) Active() bool { return g.active.Load() }

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	unique := make(map[uint16]struct{})
	add := func(mask uint16) {
		unique[mask] = struct{}{}
	}

	add(0)
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		add(mask)
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}

	xevent.IgnoreMods = ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
