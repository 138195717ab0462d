package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/guestview/guestview/internal/ipc"
	"github.com/guestview/guestview/internal/window"
)

type fakeClient struct {
	zoom       int
	fullscreen bool
	monitor    int
	shots      int
}

func (c *fakeClient) GetStatus() (*ipc.StatusData, error) {
	return &ipc.StatusData{
		GuestName: "test-guest",
		Window: window.Status{
			Fullscreen:        c.fullscreen,
			FullscreenMonitor: c.monitor,
			ZoomLevel:         c.zoom,
		},
	}, nil
}

func (c *fakeClient) GetMonitors() (*ipc.MonitorsData, error) {
	return &ipc.MonitorsData{Monitors: []ipc.MonitorInfo{
		{ID: 0, Name: "DP-1", Width: 1920, Height: 1080},
		{ID: 1, Name: "HDMI-1", Width: 1280, Height: 1024},
	}}, nil
}

func (c *fakeClient) SetZoom(level int) (int, error) {
	c.zoom = level
	return level, nil
}

func (c *fakeClient) ZoomIn() (int, error)  { c.zoom += 10; return c.zoom, nil }
func (c *fakeClient) ZoomOut() (int, error) { c.zoom -= 10; return c.zoom, nil }
func (c *fakeClient) ZoomNormal() (int, error) {
	c.zoom = window.NormalZoom
	return c.zoom, nil
}

func (c *fakeClient) EnterFullscreen(monitor int) error {
	c.fullscreen = true
	c.monitor = monitor
	return nil
}

func (c *fakeClient) LeaveFullscreen() error {
	c.fullscreen = false
	c.monitor = -1
	return nil
}

func (c *fakeClient) ToggleFullscreen() error {
	c.fullscreen = !c.fullscreen
	return nil
}

func (c *fakeClient) Screenshot(path string) (string, error) {
	c.shots++
	return "shot.png", nil
}

// drain runs a command tree and feeds its messages back through Update,
// mimicking the bubbletea runtime for deterministic tests. Tick commands
// are dropped.
func drain(t *testing.T, m model, cmd tea.Cmd) model {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = drain(t, m, c)
		}
		return m
	case nil:
		return m
	default:
		// Delayed ticks would block; skip anything that is not an
		// immediate data message.
		switch msg.(type) {
		case statusMsg, monitorsMsg, actionMsg:
			next, cmd := m.Update(msg)
			m = next.(model)
			if _, isAction := msg.(actionMsg); isAction {
				// clearAfterDelay is time-based; drop it.
				_ = cmd
				return m
			}
			return drain(t, m, cmd)
		}
		return m
	}
}

func newTestModel(t *testing.T) (model, *fakeClient) {
	t.Helper()
	c := &fakeClient{zoom: 100, monitor: -1}
	m := newModel(c)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(model)
	m = drain(t, m, m.refreshStatus())
	m = drain(t, m, m.refreshMonitors())
	return m, c
}

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{}
}

func press(t *testing.T, m model, s string) model {
	t.Helper()
	next, cmd := m.Update(key(s))
	return drain(t, next.(model), cmd)
}

func TestInitialStatusLoaded(t *testing.T) {
	m, _ := newTestModel(t)
	if m.status == nil || m.status.GuestName != "test-guest" {
		t.Fatalf("status = %+v", m.status)
	}
	if len(m.monitors.Items()) != 2 {
		t.Fatalf("monitors = %d items", len(m.monitors.Items()))
	}
}

func TestToggleFullscreenKey(t *testing.T) {
	m, c := newTestModel(t)

	m = press(t, m, "f")
	if !c.fullscreen {
		t.Fatal("f did not toggle fullscreen")
	}
	if !m.status.Window.Fullscreen {
		t.Fatal("status not refreshed after toggle")
	}
}

func TestEnterFullscreenOnSelectedMonitor(t *testing.T) {
	m, c := newTestModel(t)

	m.monitors.Select(1)
	m = press(t, m, "enter")
	if !c.fullscreen || c.monitor != 1 {
		t.Fatalf("fullscreen = %v, monitor = %d", c.fullscreen, c.monitor)
	}

	m = press(t, m, "l")
	if c.fullscreen {
		t.Fatal("l did not leave fullscreen")
	}
}

func TestZoomKeys(t *testing.T) {
	m, c := newTestModel(t)

	m = press(t, m, "+")
	if c.zoom != 110 {
		t.Fatalf("zoom = %d after +", c.zoom)
	}
	m = press(t, m, "-")
	m = press(t, m, "-")
	if c.zoom != 90 {
		t.Fatalf("zoom = %d after --", c.zoom)
	}
	m = press(t, m, "0")
	if c.zoom != window.NormalZoom {
		t.Fatalf("zoom = %d after 0", c.zoom)
	}
}

func TestZoomEntry(t *testing.T) {
	m, c := newTestModel(t)

	next, _ := m.Update(key("z"))
	m = next.(model)
	if !m.zoomEditing {
		t.Fatal("z did not open the zoom input")
	}

	for _, r := range "150" {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(model)
	}
	m = press(t, m, "enter")

	if m.zoomEditing {
		t.Fatal("enter did not close the zoom input")
	}
	if c.zoom != 150 {
		t.Fatalf("zoom = %d, want 150", c.zoom)
	}
}

func TestZoomEntryRejectsGarbage(t *testing.T) {
	m, c := newTestModel(t)

	next, _ := m.Update(key("z"))
	m = next.(model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m = next.(model)
	m = press(t, m, "enter")

	if c.zoom != 100 {
		t.Fatalf("zoom = %d, want unchanged 100", c.zoom)
	}
	if m.actionText == "" {
		t.Fatal("no error shown for invalid zoom")
	}
}

func TestScreenshotKey(t *testing.T) {
	m, c := newTestModel(t)

	m = press(t, m, "s")
	if c.shots != 1 {
		t.Fatalf("shots = %d", c.shots)
	}
	if m.actionText == "" {
		t.Fatal("no confirmation shown")
	}
}
