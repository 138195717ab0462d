// Package window implements the viewer's main window controller: the
// state machine coordinating fullscreen transitions, zoom level, keyboard
// modifier routing and display attachment on top of a Toolkit.
package window

import (
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/guestview/guestview/internal/display"
)

// ErrNoDisplay is returned by operations that need an attached display.
var ErrNoDisplay = errors.New("no display attached")

// fullscreenMode is the window's visual-mode state machine. Entering
// fullscreen before the window is mapped parks in modeEnteringPendingMap
// until the window manager maps the window; leaving from there is a clean
// cancellation with no display side effects.
type fullscreenMode int

const (
	modeNormal fullscreenMode = iota
	modeEnteringPendingMap
	modeFullscreen
)

// state is the controller-owned mutable window state. Nothing outside the
// controller mutates it.
type state struct {
	mode                 fullscreenMode
	fullscreenMonitor    int // -1 = unset/primary
	zoomLevel            int
	grabbed              bool
	accelEnabled         bool
	kiosk                bool
	initialZoomSet       bool
	desktopResizePending bool
}

// Status is a read-only snapshot of the window state for reporting.
type Status struct {
	Fullscreen        bool `json:"fullscreen"`
	FullscreenMonitor int  `json:"fullscreen_monitor"`
	ZoomLevel         int  `json:"zoom_level"`
	Grabbed           bool `json:"grabbed"`
	AccelEnabled      bool `json:"accel_enabled"`
	Kiosk             bool `json:"kiosk"`
	DisplayAttached   bool `json:"display_attached"`
	Visible           bool `json:"visible"`
}

// Controller owns the window state machine. All methods must be called
// from the event loop; the controller itself never spawns goroutines.
type Controller struct {
	app App
	tk  Toolkit

	display     display.Display
	unsubscribe func()

	accelGroups []AccelGroup
	exemptGroup AccelGroup

	savedMenuBarAccel string
	savedMnemonics    bool

	cancelMapped func()

	subtitle string

	st state
}

// New returns a controller in its initial state: windowed, zoom 100%,
// modifiers enabled, no display.
func New(app App, tk Toolkit) *Controller {
	c := &Controller{
		app: app,
		tk:  tk,
	}
	c.st.fullscreenMonitor = -1
	c.st.zoomLevel = NormalZoom
	c.st.accelEnabled = true
	c.updateTitle()
	return c
}

// SetAccelGroups hands the controller the window's accelerator groups and
// the one group exempt from modifier suppression (the release-cursor
// shortcut must keep working while the keyboard is grabbed).
func (c *Controller) SetAccelGroups(groups []AccelGroup, exempt AccelGroup) {
	c.accelGroups = groups
	c.exemptGroup = exempt
}

// Display returns the attached display, or nil.
func (c *Controller) Display() display.Display {
	return c.display
}

// Status reports the current window state.
func (c *Controller) Status() Status {
	return Status{
		Fullscreen:        c.st.mode != modeNormal,
		FullscreenMonitor: c.st.fullscreenMonitor,
		ZoomLevel:         c.st.zoomLevel,
		Grabbed:           c.st.grabbed,
		AccelEnabled:      c.st.accelEnabled,
		Kiosk:             c.st.kiosk,
		DisplayAttached:   c.display != nil,
		Visible:           c.tk.Visible(),
	}
}

// SetDisplay attaches a display, evicting any previous one. All event
// subscriptions bound to the old display are removed before the new
// display's are installed. Passing nil just detaches.
func (c *Controller) SetDisplay(d display.Display) {
	if c.display != nil {
		if c.unsubscribe != nil {
			c.unsubscribe()
			c.unsubscribe = nil
		}
		c.tk.SetKeyHandler(nil)
		c.tk.ShowStatusPage()
		c.display = nil
	}

	if d == nil {
		return
	}

	c.display = d

	// Propagate current window state onto the new display immediately.
	d.SetMonitor(c.st.fullscreenMonitor)
	d.SetFullscreen(c.st.mode == modeFullscreen)

	c.tk.ShowDisplayPage()
	c.tk.SetKeyHandler(func(keysym uint32) {
		if err := d.SendKeys([]uint32{keysym}); err != nil {
			log.Printf("key forward failed: %v", err)
		}
	})

	// Switch back to the placeholder until the display is ready.
	if d.ShowHint()&display.HintReady == 0 {
		c.tk.ShowStatusPage()
	}

	c.unsubscribe = d.Subscribe(display.Handlers{
		PointerGrab:     c.pointerGrab,
		PointerUngrab:   c.pointerUngrab,
		KeyboardGrab:    c.keyboardGrab,
		KeyboardUngrab:  c.keyboardUngrab,
		DesktopResize:   c.desktopResize,
		ShowHintChanged: c.showHintChanged,
	})

	c.showHintChanged()

	if d.Enabled() {
		c.desktopResize()
	}
}

// Show makes the window visible, enabling the display and flushing any
// resize deferred while hidden.
func (c *Controller) Show() {
	if c.display != nil && !c.display.Enabled() {
		c.display.Enable()
	}

	if c.st.desktopResizePending {
		c.queueResize()
		c.st.desktopResizePending = false
	}

	c.tk.Show()

	if c.st.kiosk {
		c.enableKiosk()
	}

	if c.st.mode != modeNormal {
		c.moveToMonitor()
	}
}

// Hide hides the window and disables the display. Rejected in kiosk mode.
func (c *Controller) Hide() {
	if c.st.kiosk {
		log.Printf("can't hide windows in kiosk mode")
		return
	}

	c.tk.Hide()

	if c.display != nil {
		c.display.Disable()
	}
}

// SetKiosk switches kiosk mode on. Switching it back off is not
// implemented: modifier suppression stays in place (known limitation).
func (c *Controller) SetKiosk(enabled bool) {
	if c.st.kiosk == enabled {
		return
	}

	c.st.kiosk = enabled

	if enabled {
		c.enableKiosk()
	} else {
		log.Printf("disabling kiosk mode not implemented")
	}
}

func (c *Controller) enableKiosk() {
	c.tk.ForceReveal(false)
	c.disableModifiers()
}

// SetSubtitle sets the window subtitle (typically the guest name).
func (c *Controller) SetSubtitle(subtitle string) {
	c.subtitle = subtitle
	c.updateTitle()
}

// Snapshot returns the attached display's current framebuffer.
func (c *Controller) Snapshot() (image.Image, error) {
	if c.display == nil {
		return nil, ErrNoDisplay
	}
	return c.display.Snapshot()
}

// SendKeys forwards a key combination to the guest.
func (c *Controller) SendKeys(keysyms []uint32) error {
	if c.display == nil {
		return ErrNoDisplay
	}
	return c.display.SendKeys(keysyms)
}

func (c *Controller) pointerGrab() {
	c.st.grabbed = true
	c.updateTitle()
}

func (c *Controller) pointerUngrab() {
	c.st.grabbed = false
	c.updateTitle()
}

func (c *Controller) keyboardGrab() {
	c.disableModifiers()
}

func (c *Controller) keyboardUngrab() {
	c.enableModifiers()
}

// desktopResize reacts to a guest desktop size change. Resizing an
// unmapped window is unreliable, so the resize is deferred until the
// window is next shown.
func (c *Controller) desktopResize() {
	if !c.tk.Visible() {
		c.st.desktopResizePending = true
		return
	}
	c.queueResize()
}

// showHintChanged tracks display readiness: the placeholder page is shown
// until the first frame arrives, and the configured zoom level is applied
// exactly once when the display first becomes ready and enabled.
func (c *Controller) showHintChanged() {
	if c.display == nil {
		return
	}

	ready := c.display.ShowHint()&display.HintReady != 0
	if ready {
		c.tk.ShowDisplayPage()
	} else {
		c.tk.ShowStatusPage()
	}

	if !c.st.initialZoomSet && ready && c.display.Enabled() {
		c.st.initialZoomSet = true
		c.SetZoomLevel(c.st.zoomLevel)
	}
}

func (c *Controller) updateTitle() {
	var ungrab string
	if c.st.grabbed {
		label := c.app.ReleaseCursorAccel()
		if label == "" {
			label = "Ctrl+Alt"
		}
		ungrab = fmt.Sprintf("(Press %s to release pointer)", label)
	}

	var title string
	switch {
	case ungrab == "" && c.subtitle == "":
		title = c.app.Name()
	case ungrab != "" && c.subtitle != "":
		title = fmt.Sprintf("%s %s - %s", ungrab, c.subtitle, c.app.Name())
	default:
		title = fmt.Sprintf("%s%s - %s", ungrab, c.subtitle, c.app.Name())
	}

	c.tk.SetTitle(title)
}
