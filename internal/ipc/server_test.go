package ipc

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/guestview/guestview/internal/window"
)

// fakeViewer records calls; it is only ever touched from the loop
// goroutine, mirroring the real controller.
type fakeViewer struct {
	zoom       int
	fullscreen bool
	visible    bool
	combos     []string
	comboErr   error
}

func (v *fakeViewer) Status() window.Status {
	return window.Status{
		Fullscreen: v.fullscreen,
		ZoomLevel:  v.zoom,
	}
}

func (v *fakeViewer) SetZoomLevel(level int) {
	if level < window.MinZoom {
		level = window.MinZoom
	}
	if level > window.MaxZoom {
		level = window.MaxZoom
	}
	v.zoom = level
}

func (v *fakeViewer) ZoomIn()                 { v.SetZoomLevel(v.zoom + window.ZoomStep) }
func (v *fakeViewer) ZoomOut()                { v.SetZoomLevel(v.zoom - window.ZoomStep) }
func (v *fakeViewer) ZoomNormal()             { v.zoom = window.NormalZoom }
func (v *fakeViewer) ZoomLevel() int          { return v.zoom }
func (v *fakeViewer) EnterFullscreen(mon int) { v.fullscreen = true }
func (v *fakeViewer) LeaveFullscreen()        { v.fullscreen = false }
func (v *fakeViewer) ToggleFullscreen()       { v.fullscreen = !v.fullscreen }
func (v *fakeViewer) Show()                   { v.visible = true }
func (v *fakeViewer) Hide()                   { v.visible = false }

func (v *fakeViewer) SendKeyCombo(name string) error {
	if v.comboErr != nil {
		return v.comboErr
	}
	v.combos = append(v.combos, name)
	return nil
}

func (v *fakeViewer) Snapshot() (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

func startTestServer(t *testing.T, viewer *fakeViewer) (*Client, *window.Loop) {
	t.Helper()
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	loop := window.NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go loop.Run(ctx)

	monitors := func() ([]MonitorInfo, error) {
		return []MonitorInfo{
			{ID: 0, Name: "DP-1", Width: 1920, Height: 1080},
			{ID: 1, Name: "HDMI-1", X: 1920, Width: 1280, Height: 1024},
		}, nil
	}

	srv, err := NewServer("test-guest", viewer, monitors, loop, t.TempDir())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(srv.Stop)

	return NewClient(), loop
}

func TestGetStatusRoundTrip(t *testing.T) {
	viewer := &fakeViewer{zoom: 100}
	client, _ := startTestServer(t, viewer)

	status, err := client.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if status.GuestName != "test-guest" {
		t.Fatalf("GuestName = %q", status.GuestName)
	}
	if status.Window.ZoomLevel != 100 {
		t.Fatalf("ZoomLevel = %d", status.Window.ZoomLevel)
	}
}

func TestGetMonitorsRoundTrip(t *testing.T) {
	client, _ := startTestServer(t, &fakeViewer{})

	monitors, err := client.GetMonitors()
	if err != nil {
		t.Fatalf("GetMonitors: %v", err)
	}
	if len(monitors.Monitors) != 2 {
		t.Fatalf("Monitors = %+v", monitors.Monitors)
	}
	if monitors.Monitors[1].Name != "HDMI-1" || monitors.Monitors[1].X != 1920 {
		t.Fatalf("Monitors[1] = %+v", monitors.Monitors[1])
	}
}

func TestZoomCommands(t *testing.T) {
	viewer := &fakeViewer{zoom: 100}
	client, _ := startTestServer(t, viewer)

	level, err := client.SetZoom(150)
	if err != nil {
		t.Fatalf("SetZoom: %v", err)
	}
	if level != 150 {
		t.Fatalf("SetZoom returned %d, want 150", level)
	}

	// Out-of-range requests report the clamped result.
	level, err = client.SetZoom(9000)
	if err != nil {
		t.Fatalf("SetZoom: %v", err)
	}
	if level != window.MaxZoom {
		t.Fatalf("SetZoom returned %d, want %d", level, window.MaxZoom)
	}

	if level, err = client.ZoomOut(); err != nil || level != window.MaxZoom-window.ZoomStep {
		t.Fatalf("ZoomOut = %d, %v", level, err)
	}
	if level, err = client.ZoomNormal(); err != nil || level != window.NormalZoom {
		t.Fatalf("ZoomNormal = %d, %v", level, err)
	}
	if level, err = client.ZoomIn(); err != nil || level != window.NormalZoom+window.ZoomStep {
		t.Fatalf("ZoomIn = %d, %v", level, err)
	}
}

func TestFullscreenCommands(t *testing.T) {
	viewer := &fakeViewer{}
	client, _ := startTestServer(t, viewer)

	if err := client.EnterFullscreen(1); err != nil {
		t.Fatalf("EnterFullscreen: %v", err)
	}
	status, err := client.GetStatus()
	if err != nil {
		t.Fatal(err)
	}
	if !status.Window.Fullscreen {
		t.Fatal("viewer not fullscreen after ENTER_FULLSCREEN")
	}

	if err := client.LeaveFullscreen(); err != nil {
		t.Fatalf("LeaveFullscreen: %v", err)
	}
	if err := client.ToggleFullscreen(); err != nil {
		t.Fatalf("ToggleFullscreen: %v", err)
	}
	status, err = client.GetStatus()
	if err != nil {
		t.Fatal(err)
	}
	if !status.Window.Fullscreen {
		t.Fatal("toggle did not re-enter fullscreen")
	}
}

func TestScreenshotWritesFile(t *testing.T) {
	client, _ := startTestServer(t, &fakeViewer{})

	path, err := client.Screenshot("shot.png")
	if err != nil {
		t.Fatalf("Screenshot: %v", err)
	}
	if filepath.Base(path) != "shot.png" {
		t.Fatalf("path = %q", path)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("stat %q: %v", path, err)
	}
}

func TestSendKeysErrorsPropagate(t *testing.T) {
	viewer := &fakeViewer{comboErr: errors.New("no display attached")}
	client, _ := startTestServer(t, viewer)

	err := client.SendKeys("ctrl+alt+del")
	if err == nil {
		t.Fatal("SendKeys succeeded, want error")
	}

	viewer.comboErr = nil
	if err := client.SendKeys("ctrl+alt+del"); err != nil {
		t.Fatalf("SendKeys: %v", err)
	}
}

func TestUnknownCommandRejected(t *testing.T) {
	client, _ := startTestServer(t, &fakeViewer{})

	_, err := client.sendRequest(&Request{Command: CommandType("BOGUS")})
	if err == nil {
		t.Fatal("BOGUS command accepted")
	}
	if !strings.Contains(err.Error(), "Unknown command") {
		t.Fatalf("error = %v", err)
	}
}
