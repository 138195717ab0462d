package window

import "log"

// EnterFullscreen puts the window fullscreen on the given monitor
// (-1 = primary/unset). Switching monitors goes through a full leave
// first: window-manager fullscreen geometry is monitor-specific, so there
// is no direct monitor-to-monitor transition. Entering on the monitor the
// window is already fullscreen on is a no-op.
//
// If the window has not been mapped yet, only the target monitor is
// recorded and the window pre-positioned; the remaining effects run once
// the window manager maps the window. Pre-positioning before the map
// avoids races where the window manager reports stale geometry before the
// first allocation.
func (c *Controller) EnterFullscreen(monitor int) {
	if c.st.mode != modeNormal && c.st.fullscreenMonitor != monitor {
		c.LeaveFullscreen()
	}

	if c.st.mode != modeNormal {
		return
	}

	c.st.fullscreenMonitor = monitor

	if !c.tk.Mapped() {
		c.st.mode = modeEnteringPendingMap
		c.moveToMonitor()
		c.cancelMapped = c.tk.OnceMapped(func() {
			c.cancelMapped = nil
			c.st.mode = modeNormal
			c.EnterFullscreen(c.st.fullscreenMonitor)
		})
		return
	}

	c.st.mode = modeFullscreen

	c.tk.ShowFullscreenHeader()
	c.tk.ForceReveal(true)

	if c.display != nil {
		c.display.SetMonitor(monitor)
		c.display.SetFullscreen(true)
	}

	c.moveToMonitor()
	c.tk.Fullscreen()
}

// LeaveFullscreen returns the window to normal mode. Entering and leaving
// fullscreen before the window is ever mapped is a clean cancellation:
// the pending map continuation is detached and the display never hears
// about either transition.
func (c *Controller) LeaveFullscreen() {
	if c.cancelMapped != nil {
		c.cancelMapped()
		c.cancelMapped = nil
	}

	if c.st.mode == modeEnteringPendingMap {
		c.st.mode = modeNormal
		c.st.fullscreenMonitor = -1
		c.tk.ClearSizeRequest()
		return
	}

	if c.st.mode != modeFullscreen {
		return
	}

	c.st.mode = modeNormal
	c.st.fullscreenMonitor = -1

	if c.display != nil {
		c.display.SetMonitor(-1)
		c.display.SetFullscreen(false)
	}

	c.tk.ForceReveal(false)
	c.tk.HideFullscreenHeader()
	c.tk.ClearSizeRequest()
	c.tk.Unfullscreen()
}

// ToggleFullscreen flips the fullscreen state. Leaving fullscreen clears
// the application-wide fullscreen policy when it is active, so all
// windows leave together.
func (c *Controller) ToggleFullscreen() {
	c.setFullscreen(c.st.mode == modeNormal)
}

func (c *Controller) setFullscreen(fullscreen bool) {
	if fullscreen {
		c.EnterFullscreen(-1)
		return
	}

	if c.app.GlobalFullscreen() {
		c.app.SetGlobalFullscreen(false)
	} else {
		c.LeaveFullscreen()
	}
}

// Fullscreen reports whether the window is in (or entering) fullscreen.
func (c *Controller) Fullscreen() bool {
	return c.st.mode != modeNormal
}

func (c *Controller) moveToMonitor() {
	monitor := c.st.fullscreenMonitor
	if monitor == -1 {
		return
	}

	geom, err := c.tk.MonitorGeometry(monitor)
	if err != nil {
		log.Printf("monitor %d geometry unavailable: %v", monitor, err)
		return
	}

	c.tk.Move(geom.X, geom.Y)
	c.tk.SetSizeRequest(geom.Width, geom.Height)
}
