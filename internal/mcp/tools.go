package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) handleViewerStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ ViewerStatusInput) (*mcpsdk.CallToolResult, ViewerStatusOutput, error) {
	status, err := s.client.GetStatus()
	if err != nil {
		return nil, ViewerStatusOutput{}, err
	}

	out := ViewerStatusOutput{
		GuestName:         status.GuestName,
		Fullscreen:        status.Window.Fullscreen,
		FullscreenMonitor: status.Window.FullscreenMonitor,
		ZoomLevel:         status.Window.ZoomLevel,
		Grabbed:           status.Window.Grabbed,
		Kiosk:             status.Window.Kiosk,
		DisplayAttached:   status.Window.DisplayAttached,
		Visible:           status.Window.Visible,
	}
	return nil, out, nil
}

func (s *Server) handleSetZoom(_ context.Context, _ *mcpsdk.CallToolRequest, args SetZoomInput) (*mcpsdk.CallToolResult, SetZoomOutput, error) {
	level, err := s.client.SetZoom(args.Level)
	if err != nil {
		return nil, SetZoomOutput{}, err
	}
	return nil, SetZoomOutput{Level: level}, nil
}

func (s *Server) handleEnterFullscreen(_ context.Context, _ *mcpsdk.CallToolRequest, args EnterFullscreenInput) (*mcpsdk.CallToolResult, FullscreenOutput, error) {
	monitor := -1
	if args.Monitor != nil {
		monitor = *args.Monitor
	}

	if err := s.client.EnterFullscreen(monitor); err != nil {
		return nil, FullscreenOutput{}, err
	}
	return nil, FullscreenOutput{Fullscreen: true, Monitor: monitor}, nil
}

func (s *Server) handleLeaveFullscreen(_ context.Context, _ *mcpsdk.CallToolRequest, _ LeaveFullscreenInput) (*mcpsdk.CallToolResult, FullscreenOutput, error) {
	if err := s.client.LeaveFullscreen(); err != nil {
		return nil, FullscreenOutput{}, err
	}
	return nil, FullscreenOutput{Fullscreen: false, Monitor: -1}, nil
}

func (s *Server) handleToggleFullscreen(_ context.Context, _ *mcpsdk.CallToolRequest, _ ToggleFullscreenInput) (*mcpsdk.CallToolResult, FullscreenOutput, error) {
	if err := s.client.ToggleFullscreen(); err != nil {
		return nil, FullscreenOutput{}, err
	}

	status, err := s.client.GetStatus()
	if err != nil {
		return nil, FullscreenOutput{}, err
	}
	return nil, FullscreenOutput{
		Fullscreen: status.Window.Fullscreen,
		Monitor:    status.Window.FullscreenMonitor,
	}, nil
}

func (s *Server) handleListMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListMonitorsInput) (*mcpsdk.CallToolResult, ListMonitorsOutput, error) {
	monitors, err := s.client.GetMonitors()
	if err != nil {
		return nil, ListMonitorsOutput{}, err
	}

	entries := make([]MonitorEntry, len(monitors.Monitors))
	for i, m := range monitors.Monitors {
		entries[i] = MonitorEntry{
			ID:     m.ID,
			Name:   m.Name,
			X:      m.X,
			Y:      m.Y,
			Width:  m.Width,
			Height: m.Height,
		}
	}
	return nil, ListMonitorsOutput{Monitors: entries}, nil
}

func (s *Server) handleTakeScreenshot(_ context.Context, _ *mcpsdk.CallToolRequest, args TakeScreenshotInput) (*mcpsdk.CallToolResult, TakeScreenshotOutput, error) {
	path, err := s.client.Screenshot(args.Path)
	if err != nil {
		return nil, TakeScreenshotOutput{}, err
	}
	return nil, TakeScreenshotOutput{Path: path}, nil
}

func (s *Server) handleSendKeys(_ context.Context, _ *mcpsdk.CallToolRequest, args SendKeysInput) (*mcpsdk.CallToolResult, SendKeysOutput, error) {
	if err := s.client.SendKeys(args.Combo); err != nil {
		return nil, SendKeysOutput{}, err
	}
	return nil, SendKeysOutput{Sent: args.Combo}, nil
}
