// Package mcp exposes a running viewer to MCP clients over stdio. Each
// tool is a thin wrapper around the viewer's control socket.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/guestview/guestview/internal/ipc"
)

const (
	ServerName    = "guestview"
	ServerVersion = "0.1.0"
)

// viewerClient is the slice of the IPC client the tools use; tests
// substitute a fake.
type viewerClient interface {
	GetStatus() (*ipc.StatusData, error)
	GetMonitors() (*ipc.MonitorsData, error)
	SetZoom(level int) (int, error)
	EnterFullscreen(monitor int) error
	LeaveFullscreen() error
	ToggleFullscreen() error
	Screenshot(path string) (string, error)
	SendKeys(combo string) error
}

// Server is the MCP server bridging tools to the viewer IPC socket.
type Server struct {
	mcpServer *mcpsdk.Server
	client    viewerClient
}

// NewServer creates an MCP server talking to the local viewer.
func NewServer() *Server {
	return newServer(ipc.NewClient())
}

func newServer(client viewerClient) *Server {
	s := &Server{
		client: client,
		mcpServer: mcpsdk.NewServer(
			&mcpsdk.Implementation{
				Name:    ServerName,
				Version: ServerVersion,
			},
			nil,
		),
	}
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "viewer_status",
		Description: "Get the viewer's current window state: fullscreen, zoom level, input grab, kiosk mode and visibility.",
	}, s.handleViewerStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_zoom",
		Description: "Set the guest display zoom level in percent (10-400). The viewer clamps out-of-range values and may raise the level to keep the window above its minimum size; returns the level actually applied.",
	}, s.handleSetZoom)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "enter_fullscreen",
		Description: "Put the viewer into fullscreen, optionally on a specific monitor. Switching monitors while already fullscreen leaves and re-enters automatically.",
	}, s.handleEnterFullscreen)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "leave_fullscreen",
		Description: "Return the viewer to windowed mode.",
	}, s.handleLeaveFullscreen)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toggle_fullscreen",
		Description: "Flip the viewer between fullscreen and windowed mode.",
	}, s.handleToggleFullscreen)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List the host monitors with their geometry, for choosing a fullscreen target.",
	}, s.handleListMonitors)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "take_screenshot",
		Description: "Capture the guest display to an image file and return the path written.",
	}, s.handleTakeScreenshot)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "send_keys",
		Description: "Send a predefined key combination to the guest (e.g. ctrl+alt+del). The combination bypasses the host window manager entirely.",
	}, s.handleSendKeys)
}
