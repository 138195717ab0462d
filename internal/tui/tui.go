// Package tui is an interactive control panel for a running viewer,
// talking to it over the IPC socket.
package tui

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/guestview/guestview/internal/ipc"
)

// client is the slice of the IPC client the panel uses; tests substitute
// a fake.
type client interface {
	GetStatus() (*ipc.StatusData, error)
	GetMonitors() (*ipc.MonitorsData, error)
	SetZoom(level int) (int, error)
	ZoomIn() (int, error)
	ZoomOut() (int, error)
	ZoomNormal() (int, error)
	EnterFullscreen(monitor int) error
	LeaveFullscreen() error
	ToggleFullscreen() error
	Screenshot(path string) (string, error)
}

// Run starts the control panel. It requires an interactive terminal.
func Run() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	m := newModel(ipc.NewClient())
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// monitorItem implements list.Item for the monitor picker.
type monitorItem struct {
	id     int
	name   string
	width  int
	height int
}

func (i monitorItem) Title() string {
	return fmt.Sprintf("%d: %s", i.id, i.name)
}

func (i monitorItem) Description() string {
	return fmt.Sprintf("%dx%d", i.width, i.height)
}

func (i monitorItem) FilterValue() string { return i.name }

// statusMsg carries a refreshed viewer status.
type statusMsg struct {
	status *ipc.StatusData
	err    error
}

// monitorsMsg carries the refreshed monitor layout.
type monitorsMsg struct {
	monitors *ipc.MonitorsData
	err      error
}

// actionMsg reports the outcome of a control action.
type actionMsg struct {
	text string
	err  error
}

// clearActionMsg clears the action line after a delay.
type clearActionMsg struct{}

// tickMsg drives the periodic status refresh.
type tickMsg struct{}

// model is the root bubbletea model for the control panel.
type model struct {
	client client

	status    *ipc.StatusData
	statusErr string

	monitors list.Model

	zoomInput   textinput.Model
	zoomEditing bool

	actionText string

	width  int
	height int
}

func newModel(c client) model {
	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(0)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Monitors"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	zi := textinput.New()
	zi.Placeholder = "zoom %"
	zi.CharLimit = 4
	zi.Width = 8

	return model{
		client:    c,
		monitors:  l,
		zoomInput: zi,
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return tea.Batch(m.refreshStatus(), m.refreshMonitors(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m model) refreshStatus() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		status, err := c.GetStatus()
		return statusMsg{status: status, err: err}
	}
}

func (m model) refreshMonitors() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		monitors, err := c.GetMonitors()
		return monitorsMsg{monitors: monitors, err: err}
	}
}

func (m model) action(run func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		text, err := run()
		return actionMsg{text: text, err: err}
	}
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The zoom input captures all keys while editing.
	if m.zoomEditing {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "esc":
				m.zoomEditing = false
				m.zoomInput.Blur()
				return m, nil
			case "enter":
				m.zoomEditing = false
				m.zoomInput.Blur()
				value := m.zoomInput.Value()
				level, err := strconv.Atoi(value)
				if err != nil {
					m.actionText = fmt.Sprintf("invalid zoom %q", value)
					return m, clearAfterDelay()
				}
				return m, tea.Batch(m.action(func() (string, error) {
					applied, err := m.client.SetZoom(level)
					return fmt.Sprintf("zoom set to %d%%", applied), err
				}), m.refreshStatus())
			}
		}
		var cmd tea.Cmd
		m.zoomInput, cmd = m.zoomInput.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "f":
			return m, tea.Batch(m.action(func() (string, error) {
				return "fullscreen toggled", m.client.ToggleFullscreen()
			}), m.refreshStatus())

		case "enter":
			item, ok := m.monitors.SelectedItem().(monitorItem)
			if !ok {
				return m, nil
			}
			return m, tea.Batch(m.action(func() (string, error) {
				err := m.client.EnterFullscreen(item.id)
				return fmt.Sprintf("fullscreen on %s", item.name), err
			}), m.refreshStatus())

		case "l":
			return m, tea.Batch(m.action(func() (string, error) {
				return "left fullscreen", m.client.LeaveFullscreen()
			}), m.refreshStatus())

		case "z":
			m.zoomEditing = true
			m.zoomInput.SetValue("")
			m.zoomInput.Focus()
			return m, nil

		case "+", "=":
			return m, tea.Batch(m.action(func() (string, error) {
				level, err := m.client.ZoomIn()
				return fmt.Sprintf("zoom %d%%", level), err
			}), m.refreshStatus())

		case "-":
			return m, tea.Batch(m.action(func() (string, error) {
				level, err := m.client.ZoomOut()
				return fmt.Sprintf("zoom %d%%", level), err
			}), m.refreshStatus())

		case "0":
			return m, tea.Batch(m.action(func() (string, error) {
				level, err := m.client.ZoomNormal()
				return fmt.Sprintf("zoom %d%%", level), err
			}), m.refreshStatus())

		case "s":
			return m, m.action(func() (string, error) {
				path, err := m.client.Screenshot("")
				return fmt.Sprintf("saved %s", path), err
			})

		case "r":
			return m, tea.Batch(m.refreshStatus(), m.refreshMonitors())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.monitors.SetSize(msg.Width, m.listHeight())
		return m, nil

	case statusMsg:
		if msg.err != nil {
			m.status = nil
			m.statusErr = msg.err.Error()
		} else {
			m.status = msg.status
			m.statusErr = ""
		}
		return m, nil

	case monitorsMsg:
		if msg.err == nil && msg.monitors != nil {
			items := make([]list.Item, len(msg.monitors.Monitors))
			for i, mon := range msg.monitors.Monitors {
				items[i] = monitorItem{
					id:     mon.ID,
					name:   mon.Name,
					width:  mon.Width,
					height: mon.Height,
				}
			}
			m.monitors.SetItems(items)
		}
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.actionText = msg.err.Error()
		} else {
			m.actionText = msg.text
		}
		return m, clearAfterDelay()

	case clearActionMsg:
		m.actionText = ""
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.refreshStatus(), tick())
	}

	var cmd tea.Cmd
	m.monitors, cmd = m.monitors.Update(msg)
	return m, cmd
}

func clearAfterDelay() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearActionMsg{}
	})
}
