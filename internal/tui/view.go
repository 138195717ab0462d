package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	onStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("guestview control"))
	b.WriteString("\n\n")

	if m.statusErr != "" {
		b.WriteString(errStyle.Render(m.statusErr))
		b.WriteString("\n")
	} else if m.status != nil {
		b.WriteString(m.renderStatus())
	}

	b.WriteString("\n")
	b.WriteString(m.monitors.View())
	b.WriteString("\n")

	if m.zoomEditing {
		b.WriteString(labelStyle.Render("zoom: "))
		b.WriteString(m.zoomInput.View())
		b.WriteString("\n")
	} else if m.actionText != "" {
		b.WriteString(valueStyle.Render(m.actionText))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("f toggle fs • enter fs on monitor • l leave fs • z/+/-/0 zoom • s screenshot • r refresh • q quit"))

	return b.String()
}

func (m model) renderStatus() string {
	st := m.status

	flag := func(name string, v bool) string {
		if v {
			return onStyle.Render(name)
		}
		return labelStyle.Render(name)
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render("guest "))
	b.WriteString(valueStyle.Render(st.GuestName))
	b.WriteString(labelStyle.Render("  zoom "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d%%", st.Window.ZoomLevel)))
	b.WriteString("  ")
	b.WriteString(flag("fullscreen", st.Window.Fullscreen))
	if st.Window.Fullscreen && st.Window.FullscreenMonitor >= 0 {
		b.WriteString(valueStyle.Render(fmt.Sprintf("@%d", st.Window.FullscreenMonitor)))
	}
	b.WriteString("  ")
	b.WriteString(flag("grabbed", st.Window.Grabbed))
	b.WriteString("  ")
	b.WriteString(flag("kiosk", st.Window.Kiosk))
	b.WriteString("  ")
	b.WriteString(flag("visible", st.Window.Visible))
	b.WriteString("\n")
	return b.String()
}

// listHeight is the space left for the monitor list after the fixed rows.
func (m model) listHeight() int {
	// title (1) + blank (1) + status (1) + blank (1) + action (1) + help (1)
	h := m.height - 6
	if h < 3 {
		h = 3
	}
	return h
}
