package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/guestview/guestview/internal/ipc"
	"github.com/guestview/guestview/internal/window"
)

// fakeClient stands in for the IPC client.
type fakeClient struct {
	status     ipc.StatusData
	monitors   []ipc.MonitorInfo
	zoom       int
	fullscreen bool
	monitor    int
	shots      []string
	combos     []string
	err        error
}

func (c *fakeClient) GetStatus() (*ipc.StatusData, error) {
	if c.err != nil {
		return nil, c.err
	}
	st := c.status
	st.Window.Fullscreen = c.fullscreen
	st.Window.FullscreenMonitor = c.monitor
	return &st, nil
}

func (c *fakeClient) GetMonitors() (*ipc.MonitorsData, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &ipc.MonitorsData{Monitors: c.monitors}, nil
}

func (c *fakeClient) SetZoom(level int) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	if level > window.MaxZoom {
		level = window.MaxZoom
	}
	if level < window.MinZoom {
		level = window.MinZoom
	}
	c.zoom = level
	return level, nil
}

func (c *fakeClient) EnterFullscreen(monitor int) error {
	if c.err != nil {
		return c.err
	}
	c.fullscreen = true
	c.monitor = monitor
	return nil
}

func (c *fakeClient) LeaveFullscreen() error {
	c.fullscreen = false
	c.monitor = -1
	return c.err
}

func (c *fakeClient) ToggleFullscreen() error {
	c.fullscreen = !c.fullscreen
	return c.err
}

func (c *fakeClient) Screenshot(path string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	if path == "" {
		path = "guest-auto.png"
	}
	c.shots = append(c.shots, path)
	return path, nil
}

func (c *fakeClient) SendKeys(combo string) error {
	if c.err != nil {
		return c.err
	}
	c.combos = append(c.combos, combo)
	return nil
}

func TestViewerStatusTool(t *testing.T) {
	client := &fakeClient{
		status: ipc.StatusData{
			GuestName: "dev-vm",
			Window:    window.Status{ZoomLevel: 150, Grabbed: true},
		},
	}
	s := newServer(client)

	_, out, err := s.handleViewerStatus(context.Background(), nil, ViewerStatusInput{})
	if err != nil {
		t.Fatalf("viewer_status: %v", err)
	}
	if out.GuestName != "dev-vm" || out.ZoomLevel != 150 || !out.Grabbed {
		t.Fatalf("out = %+v", out)
	}
}

func TestSetZoomToolReportsClampedLevel(t *testing.T) {
	s := newServer(&fakeClient{})

	_, out, err := s.handleSetZoom(context.Background(), nil, SetZoomInput{Level: 9000})
	if err != nil {
		t.Fatalf("set_zoom: %v", err)
	}
	if out.Level != window.MaxZoom {
		t.Fatalf("Level = %d, want %d", out.Level, window.MaxZoom)
	}
}

func TestFullscreenTools(t *testing.T) {
	client := &fakeClient{monitor: -1}
	s := newServer(client)

	mon := 1
	_, out, err := s.handleEnterFullscreen(context.Background(), nil, EnterFullscreenInput{Monitor: &mon})
	if err != nil {
		t.Fatalf("enter_fullscreen: %v", err)
	}
	if !out.Fullscreen || out.Monitor != 1 {
		t.Fatalf("out = %+v", out)
	}

	_, out, err = s.handleLeaveFullscreen(context.Background(), nil, LeaveFullscreenInput{})
	if err != nil {
		t.Fatalf("leave_fullscreen: %v", err)
	}
	if out.Fullscreen {
		t.Fatalf("out = %+v", out)
	}

	// Toggle reports the state the viewer settled on.
	_, out, err = s.handleToggleFullscreen(context.Background(), nil, ToggleFullscreenInput{})
	if err != nil {
		t.Fatalf("toggle_fullscreen: %v", err)
	}
	if !out.Fullscreen {
		t.Fatalf("out = %+v", out)
	}
}

func TestEnterFullscreenDefaultsToCurrentMonitor(t *testing.T) {
	client := &fakeClient{}
	s := newServer(client)

	_, out, err := s.handleEnterFullscreen(context.Background(), nil, EnterFullscreenInput{})
	if err != nil {
		t.Fatal(err)
	}
	if out.Monitor != -1 {
		t.Fatalf("Monitor = %d, want -1", out.Monitor)
	}
}

func TestListMonitorsTool(t *testing.T) {
	client := &fakeClient{
		monitors: []ipc.MonitorInfo{
			{ID: 0, Name: "DP-1", Width: 1920, Height: 1080},
			{ID: 1, Name: "HDMI-1", X: 1920, Width: 1280, Height: 1024},
		},
	}
	s := newServer(client)

	_, out, err := s.handleListMonitors(context.Background(), nil, ListMonitorsInput{})
	if err != nil {
		t.Fatalf("list_monitors: %v", err)
	}
	if len(out.Monitors) != 2 || out.Monitors[1].Name != "HDMI-1" {
		t.Fatalf("out = %+v", out)
	}
}

func TestToolErrorsPropagate(t *testing.T) {
	client := &fakeClient{err: errors.New("viewer not running")}
	s := newServer(client)

	if _, _, err := s.handleViewerStatus(context.Background(), nil, ViewerStatusInput{}); err == nil {
		t.Fatal("viewer_status swallowed the error")
	}
	if _, _, err := s.handleSendKeys(context.Background(), nil, SendKeysInput{Combo: "ctrl+alt+del"}); err == nil {
		t.Fatal("send_keys swallowed the error")
	}
}

func TestSendKeysTool(t *testing.T) {
	client := &fakeClient{}
	s := newServer(client)

	_, out, err := s.handleSendKeys(context.Background(), nil, SendKeysInput{Combo: "ctrl+alt+del"})
	if err != nil {
		t.Fatalf("send_keys: %v", err)
	}
	if out.Sent != "ctrl+alt+del" || len(client.combos) != 1 {
		t.Fatalf("out = %+v, combos = %v", out, client.combos)
	}
}
