package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/guestview/guestview/internal/config"
	"github.com/guestview/guestview/internal/ipc"
	"github.com/guestview/guestview/internal/tui"
	"github.com/guestview/guestview/internal/window"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "view":
		os.Exit(runView(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "zoom":
		os.Exit(runZoom(os.Args[2:]))
	case "fullscreen":
		os.Exit(runFullscreen(os.Args[2:]))
	case "monitors":
		os.Exit(runMonitors(os.Args[2:]))
	case "screenshot":
		os.Exit(runScreenshot(os.Args[2:]))
	case "keys":
		os.Exit(runKeys(os.Args[2:]))
	case "show":
		os.Exit(runShow(os.Args[2:]))
	case "hide":
		os.Exit(runHide(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: guestview <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  view                Open the viewer window (foreground)")
	fmt.Fprintln(w, "  status              Show viewer status")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  zoom <level>        Set zoom level in percent")
	fmt.Fprintln(w, "  zoom in|out|reset   Step or reset the zoom")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  fullscreen enter    Enter fullscreen (--monitor N)")
	fmt.Fprintln(w, "  fullscreen leave    Leave fullscreen")
	fmt.Fprintln(w, "  fullscreen toggle   Toggle fullscreen")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  monitors            List host monitors")
	fmt.Fprintln(w, "  screenshot [path]   Capture the guest display")
	fmt.Fprintln(w, "  keys <combo>        Send a key combination to the guest")
	fmt.Fprintln(w, "  keys list           List available key combinations")
	fmt.Fprintln(w, "  show                Map the viewer window")
	fmt.Fprintln(w, "  hide                Withdraw the viewer window")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                 Open the interactive control panel")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'guestview <command> --help' for command-specific options.")
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: guestview status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show viewer status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("guest:              %s\n", status.GuestName)
	fmt.Printf("visible:            %v\n", status.Window.Visible)
	fmt.Printf("fullscreen:         %v\n", status.Window.Fullscreen)
	if status.Window.Fullscreen && status.Window.FullscreenMonitor >= 0 {
		fmt.Printf("fullscreen_monitor: %d\n", status.Window.FullscreenMonitor)
	}
	fmt.Printf("zoom_level:         %d%%\n", status.Window.ZoomLevel)
	fmt.Printf("grabbed:            %v\n", status.Window.Grabbed)
	fmt.Printf("kiosk:              %v\n", status.Window.Kiosk)
	fmt.Printf("display_attached:   %v\n", status.Window.DisplayAttached)
	return 0
}

func runZoom(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage: guestview zoom <level>|in|out|reset")
		if len(args) == 0 {
			return 2
		}
		return 0
	}

	client := ipc.NewClient()

	var (
		level int
		err   error
	)
	switch args[0] {
	case "in":
		level, err = client.ZoomIn()
	case "out":
		level, err = client.ZoomOut()
	case "reset":
		level, err = client.ZoomNormal()
	default:
		requested, convErr := strconv.Atoi(strings.TrimSuffix(args[0], "%"))
		if convErr != nil {
			fmt.Fprintf(os.Stderr, "invalid zoom level %q\n", args[0])
			return 2
		}
		level, err = client.SetZoom(requested)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Printf("zoom: %d%%\n", level)
	return 0
}

func runFullscreen(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage: guestview fullscreen enter [--monitor N] | leave | toggle")
		if len(args) == 0 {
			return 2
		}
		return 0
	}

	client := ipc.NewClient()

	switch args[0] {
	case "enter":
		fs := flag.NewFlagSet("enter", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		monitor := fs.Int("monitor", -1, "monitor index to fullscreen on (-1 = current)")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if err := client.EnterFullscreen(*monitor); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	case "leave":
		if err := client.LeaveFullscreen(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	case "toggle":
		if err := client.ToggleFullscreen(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown fullscreen command: %s\n", args[0])
		return 2
	}
	return 0
}

func runMonitors(args []string) int {
	fs := flag.NewFlagSet("monitors", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	client := ipc.NewClient()
	monitors, err := client.GetMonitors()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	for _, m := range monitors.Monitors {
		fmt.Printf("%d: %s %dx%d+%d+%d\n", m.ID, m.Name, m.Width, m.Height, m.X, m.Y)
	}
	return 0
}

func runScreenshot(args []string) int {
	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stderr, "Usage: guestview screenshot [path]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Capture the guest display. The format follows the extension")
		fmt.Fprintln(os.Stderr, "(.png, .jpg, .gif); without a path the viewer picks a name.")
		return 0
	}

	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	client := ipc.NewClient()
	written, err := client.Screenshot(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Println(written)
	return 0
}

func runKeys(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage: guestview keys <combo> | list")
		if len(args) == 0 {
			return 2
		}
		return 0
	}

	if args[0] == "list" {
		for _, name := range window.KeyComboNames() {
			fmt.Println(name)
		}
		return 0
	}

	client := ipc.NewClient()
	if err := client.SendKeys(args[0]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runShow(args []string) int {
	client := ipc.NewClient()
	if err := client.Show(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runHide(args []string) int {
	client := ipc.NewClient()
	if err := client.Hide(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage: guestview config validate|print [--config path]")
		if len(args) == 0 {
			return 2
		}
		return 0
	}

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "config file path (default: ~/.config/guestview/config.yaml)")
	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	load := config.Load
	if *path != "" {
		load = func() (*config.Config, error) { return config.LoadFromPath(*path) }
	}

	switch args[0] {
	case "validate":
		if _, err := load(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config ok")
	case "print":
		cfg, err := load()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		out, err := cfg.Marshal()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		os.Stdout.Write(out)
	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		return 2
	}
	return 0
}

func runTUI(args []string) int {
	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stderr, "Usage: guestview tui")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Open an interactive control panel for a running viewer.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keys:")
		fmt.Fprintln(os.Stderr, "  f          Toggle fullscreen")
		fmt.Fprintln(os.Stderr, "  Enter      Fullscreen on selected monitor")
		fmt.Fprintln(os.Stderr, "  l          Leave fullscreen")
		fmt.Fprintln(os.Stderr, "  z, +, -, 0 Zoom controls")
		fmt.Fprintln(os.Stderr, "  s          Screenshot")
		fmt.Fprintln(os.Stderr, "  r          Refresh")
		fmt.Fprintln(os.Stderr, "  q, Ctrl+C  Quit")
		return 0
	}

	if err := tui.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
