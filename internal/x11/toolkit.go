package x11

import (
	"fmt"
	"log"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/guestview/guestview/internal/window"
)

const (
	defaultWidth  = 1024
	defaultHeight = 768

	// Height of the fullscreen header bar while it is revealed.
	headerHeight = 32
)

// Toolkit is the X11 implementation of window.Toolkit. X events arrive on
// the xevent.Main goroutine and are posted onto the event loop, so all
// state here is only touched from the loop.
type Toolkit struct {
	conn *Connection
	win  *xwindow.Window
	loop *window.Loop

	mapped  bool
	visible bool

	headerShown bool
	revealed    bool
	statusPage  bool

	allocW int
	allocH int

	menuBarAccel string
	mnemonics    bool

	keyHandler  func(keysym uint32)
	naturalSize func() (width, height int)

	nextMappedID int
	onceMapped   map[int]func()
}

// NewToolkit creates the viewer window (initially unmapped) and hooks its
// X events into the event loop.
func NewToolkit(conn *Connection, loop *window.Loop) (*Toolkit, error) {
	win, err := xwindow.Generate(conn.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate window id: %w", err)
	}

	err = win.CreateChecked(conn.Root, 0, 0, defaultWidth, defaultHeight,
		xproto.CwBackPixel|xproto.CwEventMask,
		0x000000,
		xproto.EventMaskStructureNotify|xproto.EventMaskKeyPress|xproto.EventMaskExposure)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	t := &Toolkit{
		conn:       conn,
		win:        win,
		loop:       loop,
		allocW:     defaultWidth,
		allocH:     defaultHeight,
		mnemonics:  true,
		onceMapped: map[int]func(){},
	}
	t.connectEvents()

	// Let the window manager close the window gracefully.
	win.WMGracefulClose(func(w *xwindow.Window) {
		xevent.Quit(conn.XUtil)
	})

	return t, nil
}

// WindowID returns the X window id, used by hotkey registration.
func (t *Toolkit) WindowID() xproto.Window {
	return t.win.Id
}

func (t *Toolkit) connectEvents() {
	xevent.MapNotifyFun(func(xu *xgbutil.XUtil, ev xevent.MapNotifyEvent) {
		t.loop.Do(t.handleMapped)
	}).Connect(t.conn.XUtil, t.win.Id)

	xevent.UnmapNotifyFun(func(xu *xgbutil.XUtil, ev xevent.UnmapNotifyEvent) {
		t.loop.Do(func() { t.visible = false })
	}).Connect(t.conn.XUtil, t.win.Id)

	xevent.ConfigureNotifyFun(func(xu *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
		w, h := int(ev.Width), int(ev.Height)
		t.loop.Do(func() {
			t.allocW = w
			t.allocH = h
		})
	}).Connect(t.conn.XUtil, t.win.Id)

	xevent.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		keysym := uint32(keybind.KeysymGet(xu, ev.Detail, 0))
		t.loop.Do(func() {
			if t.keyHandler != nil {
				t.keyHandler(keysym)
			}
		})
	}).Connect(t.conn.XUtil, t.win.Id)
}

func (t *Toolkit) handleMapped() {
	t.mapped = true
	t.visible = true

	if len(t.onceMapped) == 0 {
		return
	}
	callbacks := t.onceMapped
	t.onceMapped = map[int]func(){}
	for _, fn := range callbacks {
		fn()
	}
}

func (t *Toolkit) Mapped() bool  { return t.mapped }
func (t *Toolkit) Visible() bool { return t.visible }

func (t *Toolkit) Show() {
	t.win.Map()
	t.visible = true
}

func (t *Toolkit) Hide() {
	t.win.Unmap()
	t.visible = false
}

func (t *Toolkit) Fullscreen() {
	if err := ewmh.WmStateReq(t.conn.XUtil, t.win.Id, 1, "_NET_WM_STATE_FULLSCREEN"); err != nil {
		log.Printf("fullscreen request failed: %v", err)
	}
}

func (t *Toolkit) Unfullscreen() {
	if err := ewmh.WmStateReq(t.conn.XUtil, t.win.Id, 0, "_NET_WM_STATE_FULLSCREEN"); err != nil {
		log.Printf("unfullscreen request failed: %v", err)
	}
}

func (t *Toolkit) Move(x, y int) {
	t.win.Move(x, y)
}

func (t *Toolkit) SetSizeRequest(width, height int) {
	hints := icccm.NormalHints{
		Flags:     icccm.SizeHintPMinSize,
		MinWidth:  uint(width),
		MinHeight: uint(height),
	}
	if err := icccm.WmNormalHintsSet(t.conn.XUtil, t.win.Id, &hints); err != nil {
		log.Printf("failed to set size hints: %v", err)
	}
	t.win.Resize(width, height)
}

func (t *Toolkit) ClearSizeRequest() {
	hints := icccm.NormalHints{
		Flags:     icccm.SizeHintPMinSize,
		MinWidth:  1,
		MinHeight: 1,
	}
	if err := icccm.WmNormalHintsSet(t.conn.XUtil, t.win.Id, &hints); err != nil {
		log.Printf("failed to clear size hints: %v", err)
	}
}

// SetNaturalSizeFunc installs the callback that reports the window's
// fit-to-content size. Wired by cmd from the display's desktop size and
// the current zoom.
func (t *Toolkit) SetNaturalSizeFunc(fn func() (width, height int)) {
	t.naturalSize = fn
}

func (t *Toolkit) ResizeToNatural() {
	if t.naturalSize == nil {
		return
	}
	w, h := t.naturalSize()
	if w <= 0 || h <= 0 {
		return
	}
	if t.headerShown {
		h += headerHeight
	}
	t.win.Resize(w, h)
}

func (t *Toolkit) MonitorGeometry(monitor int) (window.Rect, error) {
	monitors, err := t.conn.GetMonitors()
	if err != nil {
		return window.Rect{}, err
	}
	if monitor < 0 || monitor >= len(monitors) {
		return window.Rect{}, fmt.Errorf("monitor %d out of range (%d monitors)", monitor, len(monitors))
	}
	m := monitors[monitor]
	return window.Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height}, nil
}

func (t *Toolkit) SetTitle(title string) {
	if err := ewmh.WmNameSet(t.conn.XUtil, t.win.Id, title); err != nil {
		log.Printf("failed to set window title: %v", err)
	}
}

func (t *Toolkit) ShowFullscreenHeader() { t.headerShown = true }
func (t *Toolkit) HideFullscreenHeader() { t.headerShown = false }

func (t *Toolkit) ForceReveal(reveal bool) { t.revealed = reveal }

func (t *Toolkit) ShowDisplayPage() { t.statusPage = false }
func (t *Toolkit) ShowStatusPage()  { t.statusPage = true }

// ChromeWidth is zero: the X11 surface draws no side chrome, so the
// minimum window width is the display minimum alone.
func (t *Toolkit) ChromeWidth() int { return 0 }

func (t *Toolkit) DisplayAllocation() (width, height int) {
	h := t.allocH
	if t.headerShown && t.revealed {
		h -= headerHeight
	}
	if h < 0 {
		h = 0
	}
	return t.allocW, h
}

func (t *Toolkit) OnceMapped(fn func()) (cancel func()) {
	id := t.nextMappedID
	t.nextMappedID++
	t.onceMapped[id] = fn
	return func() { delete(t.onceMapped, id) }
}

func (t *Toolkit) MenuBarAccel() string             { return t.menuBarAccel }
func (t *Toolkit) SetMenuBarAccel(accel string)     { t.menuBarAccel = accel }
func (t *Toolkit) MnemonicsEnabled() bool           { return t.mnemonics }
func (t *Toolkit) SetMnemonicsEnabled(enabled bool) { t.mnemonics = enabled }

func (t *Toolkit) SetKeyHandler(fn func(keysym uint32)) {
	t.keyHandler = fn
}
