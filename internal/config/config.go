// Package config loads and validates the viewer configuration from
// ~/.config/guestview/config.yaml.
package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/guestview/guestview/internal/window"
)

// Hotkeys maps viewer actions to X11 key sequences in xgbutil keybind
// grammar, e.g. "Control-Mod1-f".
type Hotkeys struct {
	ToggleFullscreen string `yaml:"toggle_fullscreen"`
	ReleaseCursor    string `yaml:"release_cursor"`
	ZoomIn           string `yaml:"zoom_in"`
	ZoomOut          string `yaml:"zoom_out"`
	ZoomReset        string `yaml:"zoom_reset"`
	Screenshot       string `yaml:"screenshot"`
}

// DesktopSize is the guest desktop geometry used by the built-in test
// pattern display.
type DesktopSize struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Config is the effective viewer configuration.
type Config struct {
	// GuestName appears in window titles and status output.
	GuestName string `yaml:"guest_name"`

	// Zoom is the startup zoom level in percent.
	Zoom int `yaml:"zoom"`

	// Fullscreen starts the viewer in fullscreen on Monitor.
	Fullscreen bool `yaml:"fullscreen"`
	// Monitor selects the fullscreen output; -1 means the current one.
	Monitor int `yaml:"monitor"`

	// Kiosk locks the viewer to the screen and suppresses all chrome.
	Kiosk bool `yaml:"kiosk"`

	// EnableAccels keeps the release-cursor accelerator active while the
	// display holds the keyboard grab.
	EnableAccels bool `yaml:"enable_accels"`

	Hotkeys Hotkeys `yaml:"hotkeys"`

	// ScreenshotDir is where SCREENSHOT saves images when the request
	// carries a relative path.
	ScreenshotDir string `yaml:"screenshot_dir"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	DesktopSize DesktopSize `yaml:"desktop_size"`
}

// ValidationError reports a config field that failed validation.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("config: %s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		GuestName:    "guest",
		Zoom:         window.NormalZoom,
		Monitor:      -1,
		EnableAccels: true,
		Hotkeys: Hotkeys{
			ToggleFullscreen: "Control-Mod1-f",
			ReleaseCursor:    "Control-Mod1-r",
			ZoomIn:           "Control-Mod1-plus",
			ZoomOut:          "Control-Mod1-minus",
			ZoomReset:        "Control-Mod1-0",
			Screenshot:       "Control-Mod1-s",
		},
		LogLevel:    "info",
		DesktopSize: DesktopSize{Width: 1024, Height: 768},
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.GuestName) == "" {
		return &ValidationError{Path: "guest_name", Err: fmt.Errorf("guest_name must not be empty")}
	}
	if c.Zoom < window.MinZoom || c.Zoom > window.MaxZoom {
		return &ValidationError{Path: "zoom", Err: fmt.Errorf("zoom must be between %d and %d", window.MinZoom, window.MaxZoom)}
	}
	if c.Monitor < -1 {
		return &ValidationError{Path: "monitor", Err: fmt.Errorf("monitor must be -1 (current) or a monitor index")}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}
	if c.DesktopSize.Width <= 0 || c.DesktopSize.Height <= 0 {
		return &ValidationError{Path: "desktop_size", Err: fmt.Errorf("desktop_size dimensions must be > 0")}
	}
	return nil
}

// Marshal renders the config as YAML, used by `config print`.
func (c *Config) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return out, nil
}
