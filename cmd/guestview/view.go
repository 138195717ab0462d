package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/guestview/guestview/internal/app"
	"github.com/guestview/guestview/internal/config"
	"github.com/guestview/guestview/internal/display"
	"github.com/guestview/guestview/internal/hotkeys"
	"github.com/guestview/guestview/internal/ipc"
	"github.com/guestview/guestview/internal/screenshot"
	"github.com/guestview/guestview/internal/window"
	"github.com/guestview/guestview/internal/x11"
)

func runView(args []string) int {
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "config file path (default: ~/.config/guestview/config.yaml)")
	nameFlag := fs.String("name", "", "guest name")
	fullscreenFlag := fs.Bool("fullscreen", false, "start in fullscreen")
	monitorFlag := fs.Int("monitor", -1, "monitor index for fullscreen (-1 = current)")
	kioskFlag := fs.Bool("kiosk", false, "kiosk mode (fullscreen, no escape)")
	zoomFlag := fs.Int("zoom", window.NormalZoom, "initial zoom level in percent")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: guestview view [options]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Open the viewer window in the foreground. Flags override the")
		fmt.Fprintln(os.Stderr, "corresponding config file settings.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	load := config.Load
	if *configPath != "" {
		load = func() (*config.Config, error) { return config.LoadFromPath(*configPath) }
	}
	cfg, err := load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Flags beat the config file, but only the ones actually given.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			cfg.GuestName = *nameFlag
		case "fullscreen":
			cfg.Fullscreen = *fullscreenFlag
		case "monitor":
			cfg.Monitor = *monitorFlag
		case "kiosk":
			cfg.Kiosk = *kioskFlag
		case "zoom":
			cfg.Zoom = *zoomFlag
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Kiosk implies fullscreen.
	if cfg.Kiosk {
		cfg.Fullscreen = true
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	conn, err := x11.NewConnection()
	if err != nil {
		log.Fatalf("Failed to connect to display: %v", err)
	}
	defer conn.Close()

	loop := window.NewLoop()

	tk, err := x11.NewToolkit(conn, loop)
	if err != nil {
		log.Fatalf("Failed to create viewer window: %v", err)
	}

	a := app.New(
		app.WithAccels(cfg.EnableAccels),
		app.WithReleaseCursorAccel(accelLabel(cfg.Hotkeys.ReleaseCursor)),
		app.WithFullscreen(cfg.Fullscreen),
	)

	// -1 means "whatever monitor the pointer is on right now".
	resolveMonitor := func() int {
		if cfg.Monitor != -1 {
			return cfg.Monitor
		}
		m, err := conn.PointerMonitor()
		if err != nil {
			return -1
		}
		return m.ID
	}

	ctrl := window.New(a, tk)
	a.OnFullscreenChange(func(fullscreen bool) {
		if fullscreen {
			ctrl.EnterFullscreen(resolveMonitor())
		} else {
			ctrl.LeaveFullscreen()
		}
	})

	d := display.NewTestPattern(cfg.DesktopSize.Width, cfg.DesktopSize.Height)
	ctrl.SetDisplay(d)

	tk.SetNaturalSizeFunc(func() (int, int) {
		w, h := d.DesktopSize()
		zoom := ctrl.ZoomLevel()
		return w * zoom / 100, h * zoom / 100
	})

	mainGroup, releaseGroup := buildHotkeyGroups(cfg, conn, tk, loop, ctrl, d)
	ctrl.SetAccelGroups([]window.AccelGroup{mainGroup, releaseGroup}, releaseGroup)
	if err := mainGroup.Attach(); err != nil {
		log.Printf("Warning: Failed to register hotkeys: %v", err)
	}
	if err := releaseGroup.Attach(); err != nil {
		log.Printf("Warning: Failed to register release-cursor hotkey: %v", err)
	}

	ctrl.SetSubtitle(cfg.GuestName)
	ctrl.SetZoomLevel(cfg.Zoom)
	if cfg.Kiosk {
		ctrl.SetKiosk(true)
	}

	ctrl.Show()
	if cfg.Fullscreen {
		ctrl.EnterFullscreen(resolveMonitor())
	}

	d.Ready()

	loopCtx, cancelLoop := context.WithCancel(context.Background())
	defer cancelLoop()
	go loop.Run(loopCtx)

	monitorsFunc := func() ([]ipc.MonitorInfo, error) {
		ms, err := conn.GetMonitors()
		if err != nil {
			return nil, err
		}
		infos := make([]ipc.MonitorInfo, len(ms))
		for i, m := range ms {
			infos[i] = ipc.MonitorInfo{
				ID:     m.ID,
				Name:   m.Name,
				X:      m.X,
				Y:      m.Y,
				Width:  m.Width,
				Height: m.Height,
			}
		}
		return infos, nil
	}

	ipcServer, err := ipc.NewServer(cfg.GuestName, ctrl, monitorsFunc, loop, cfg.ScreenshotDir)
	if err != nil {
		log.Fatalf("Failed to create IPC server: %v", err)
	}
	if err := ipcServer.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}
	defer ipcServer.Stop()

	slog.Info("viewer started", "guest", cfg.GuestName, "zoom", cfg.Zoom, "fullscreen", cfg.Fullscreen, "kiosk", cfg.Kiosk)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		for sig := range sigCh {
			switch sig {
			case syscall.SIGHUP:
				log.Println("Received SIGHUP, reloading config...")
				newCfg, err := load()
				if err != nil {
					log.Printf("Config reload failed: %v", err)
					continue
				}
				loop.Do(func() {
					ctrl.SetSubtitle(newCfg.GuestName)
					ctrl.SetZoomLevel(newCfg.Zoom)
				})
				log.Println("Config reloaded")

			case os.Interrupt, syscall.SIGTERM:
				log.Println("Shutting down viewer...")
				ipcServer.Stop()
				cancelLoop()
				os.Exit(0)
			}
		}
	}()

	// Blocks until the window is closed.
	conn.EventLoop()
	return 0
}

// buildHotkeyGroups wires the configured key sequences into two groups:
// the main group and the release-cursor group, which stays attached while
// the main group is suppressed during keyboard grabs.
func buildHotkeyGroups(cfg *config.Config, conn *x11.Connection, tk *x11.Toolkit, loop *window.Loop, ctrl *window.Controller, d *display.TestPattern) (*hotkeys.Group, *hotkeys.Group) {
	onLoop := func(fn func()) func() {
		return func() { loop.Do(fn) }
	}

	var main []hotkeys.Binding
	add := func(sequence string, fn func()) {
		if sequence == "" {
			return
		}
		main = append(main, hotkeys.Binding{Sequence: sequence, Callback: onLoop(fn)})
	}

	add(cfg.Hotkeys.ToggleFullscreen, ctrl.ToggleFullscreen)
	add(cfg.Hotkeys.ZoomIn, ctrl.ZoomIn)
	add(cfg.Hotkeys.ZoomOut, ctrl.ZoomOut)
	add(cfg.Hotkeys.ZoomReset, ctrl.ZoomNormal)
	add(cfg.Hotkeys.Screenshot, func() {
		img, err := ctrl.Snapshot()
		if err != nil {
			log.Printf("screenshot failed: %v", err)
			return
		}
		name := fmt.Sprintf("%s-%s.png", cfg.GuestName, time.Now().Format("20060102-150405"))
		path := filepath.Join(cfg.ScreenshotDir, name)
		// Encoding stays off the event loop.
		go func() {
			written, err := screenshot.Save(img, path)
			if err != nil {
				log.Printf("screenshot failed: %v", err)
				return
			}
			slog.Info("screenshot saved", "path", written)
		}()
	})

	var release []hotkeys.Binding
	if cfg.Hotkeys.ReleaseCursor != "" {
		release = append(release, hotkeys.Binding{Sequence: cfg.Hotkeys.ReleaseCursor, Callback: onLoop(func() {
			d.EmitKeyboardUngrab()
			d.EmitPointerUngrab()
		})})
	}

	win := tk.WindowID()
	return hotkeys.NewGroup(conn.XUtil, win, main), hotkeys.NewGroup(conn.XUtil, win, release)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// accelLabel turns an xgbutil key sequence like "Control-Mod1-r" into the
// label shown in the window title, e.g. "Ctrl+Alt+R".
func accelLabel(sequence string) string {
	if sequence == "" {
		return ""
	}

	parts := strings.Split(sequence, "-")
	for i, p := range parts {
		switch strings.ToLower(p) {
		case "control", "ctrl":
			parts[i] = "Ctrl"
		case "mod1", "alt":
			parts[i] = "Alt"
		case "mod4", "super":
			parts[i] = "Super"
		case "shift":
			parts[i] = "Shift"
		default:
			if len(p) == 1 {
				parts[i] = strings.ToUpper(p)
			}
		}
	}
	return strings.Join(parts, "+")
}
