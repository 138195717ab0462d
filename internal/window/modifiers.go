package window

import "log"

// disableModifiers suppresses toolkit-level keyboard handling while the
// display surface owns raw input (keyboard grab) or kiosk mode is active:
// the menu-bar activation accel is blanked, global accelerator groups are
// detached and mnemonic underlines are disabled. Idempotent.
//
// One group stays attached when the application accel policy is on: the
// designated exempt group, which carries the release-pointer shortcut.
func (c *Controller) disableModifiers() {
	if !c.st.accelEnabled {
		return
	}

	c.savedMenuBarAccel = c.tk.MenuBarAccel()
	c.tk.SetMenuBarAccel("")

	for _, g := range c.accelGroups {
		if c.app.AccelsEnabled() && g == c.exemptGroup {
			continue
		}
		g.Detach()
	}

	c.savedMnemonics = c.tk.MnemonicsEnabled()
	c.tk.SetMnemonicsEnabled(false)

	c.st.accelEnabled = false
}

// enableModifiers is the exact inverse of disableModifiers: restores the
// saved menu-bar accel, re-attaches the detached groups under the same
// exemption rule and restores the mnemonics setting. Idempotent.
func (c *Controller) enableModifiers() {
	if c.st.accelEnabled {
		return
	}

	c.tk.SetMenuBarAccel(c.savedMenuBarAccel)

	for _, g := range c.accelGroups {
		if c.app.AccelsEnabled() && g == c.exemptGroup {
			continue
		}
		if err := g.Attach(); err != nil {
			log.Printf("re-attaching accelerator group failed: %v", err)
		}
	}

	c.tk.SetMnemonicsEnabled(c.savedMnemonics)

	c.st.accelEnabled = true
}
