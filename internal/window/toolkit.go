package window

// Rect is a monitor or window geometry in root-window coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Toolkit is the windowing surface the controller drives. The X11 adapter
// in internal/x11 is the production implementation; tests use fakes.
type Toolkit interface {
	// Mapped reports whether the window has been mapped by the window
	// manager at least once. Fullscreen effects are deferred until then.
	Mapped() bool
	// Visible reports whether the window is currently shown.
	Visible() bool

	Show()
	Hide()

	Fullscreen()
	Unfullscreen()

	Move(x, y int)
	// SetSizeRequest pins the window to an explicit size; ClearSizeRequest
	// removes the pin so natural sizing takes over again.
	SetSizeRequest(width, height int)
	ClearSizeRequest()
	// ResizeToNatural shrinks the window back to its natural (fit-to-
	// content) size.
	ResizeToNatural()

	MonitorGeometry(monitor int) (Rect, error)

	SetTitle(title string)

	// Fullscreen overlay chrome: the header bar shown only in fullscreen
	// and the auto-hiding revealer strip that exposes it.
	ShowFullscreenHeader()
	HideFullscreenHeader()
	ForceReveal(reveal bool)

	// Page switching between the attached display and the placeholder
	// shown while no display is ready.
	ShowDisplayPage()
	ShowStatusPage()

	// ChromeWidth is the natural width of the window's top chrome; the
	// window may never be narrower than it.
	ChromeWidth() int
	// DisplayAllocation is the pixel size currently allocated to the
	// display widget.
	DisplayAllocation() (width, height int)

	// OnceMapped registers a one-shot callback invoked the next time the
	// window is mapped. The returned cancel removes it if it has not
	// fired yet; both firing and cancel detach the callback.
	OnceMapped(fn func()) (cancel func())

	// Global toolkit settings saved and restored by the modifier
	// arbitration: the menu-bar activation accel and mnemonic underlines.
	MenuBarAccel() string
	SetMenuBarAccel(accel string)
	MnemonicsEnabled() bool
	SetMnemonicsEnabled(enabled bool)

	// SetKeyHandler routes raw window key presses (X11 keysyms) to the
	// handler; nil uninstalls it.
	SetKeyHandler(fn func(keysym uint32))
}

// App is the application context a window consults for cross-window
// policy.
type App interface {
	// GlobalFullscreen reports whether the application-level fullscreen
	// policy is on (all windows fullscreen).
	GlobalFullscreen() bool
	SetGlobalFullscreen(fullscreen bool)

	// AccelsEnabled reports whether the application keeps its designated
	// accelerator group active even while modifiers are disabled.
	AccelsEnabled() bool

	// ReleaseCursorAccel is the human-readable label of the release-
	// pointer shortcut, e.g. "Ctrl+Alt". Empty when unbound.
	ReleaseCursorAccel() string

	// Name is the application name used in window titles.
	Name() string
}

// AccelGroup is a detachable bundle of global keyboard shortcuts.
type AccelGroup interface {
	Attach() error
	Detach()
}
