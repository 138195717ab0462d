// Package display defines the capability surface a guest display backend
// exposes to the window controller: desktop geometry, zoom, fullscreen and
// monitor directives, readiness hints, input forwarding and grab signals.
package display

import "image"

// Hint is the readiness bitmask a display reports before it should be
// shown or zoomed.
type Hint uint32

const (
	// HintReady is set once the backend has received its first frame and
	// can be meaningfully displayed.
	HintReady Hint = 1 << iota
	// HintDisabled marks a display the guest has turned off.
	HintDisabled
)

// Handlers carries the event callbacks a subscriber wants to receive.
// Nil fields are skipped. All callbacks fire synchronously on the thread
// that emitted the event.
type Handlers struct {
	PointerGrab     func()
	PointerUngrab   func()
	KeyboardGrab    func()
	KeyboardUngrab  func()
	DesktopResize   func()
	ShowHintChanged func()
}

// Display is a rendered guest display surface. The window controller holds
// at most one at a time and is its only mutator for zoom/fullscreen/monitor
// directives.
type Display interface {
	// DesktopSize returns the guest desktop size in pixels.
	DesktopSize() (width, height int)

	ZoomLevel() int
	SetZoomLevel(level int)

	SetFullscreen(fullscreen bool)
	SetMonitor(monitor int)

	ShowHint() Hint

	Enabled() bool
	Enable()
	Disable()

	// SendKeys forwards a key combination (X11 keysyms) to the guest.
	SendKeys(keysyms []uint32) error

	// Snapshot returns the current framebuffer contents.
	Snapshot() (image.Image, error)

	// Subscribe registers event handlers and returns a cancel function
	// that removes them. Cancel is idempotent.
	Subscribe(h Handlers) (cancel func())
}
