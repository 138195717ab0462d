package mcp

// ViewerStatusInput is the input for the viewer_status tool.
type ViewerStatusInput struct{}

// ViewerStatusOutput is the output for the viewer_status tool.
type ViewerStatusOutput struct {
	GuestName         string `json:"guest_name"`
	Fullscreen        bool   `json:"fullscreen"`
	FullscreenMonitor int    `json:"fullscreen_monitor"`
	ZoomLevel         int    `json:"zoom_level"`
	Grabbed           bool   `json:"grabbed"`
	Kiosk             bool   `json:"kiosk"`
	DisplayAttached   bool   `json:"display_attached"`
	Visible           bool   `json:"visible"`
}

// SetZoomInput is the input for the set_zoom tool.
type SetZoomInput struct {
	Level int `json:"level" jsonschema:"required,Zoom level in percent (10-400). Values outside the range are clamped."`
}

// SetZoomOutput is the output for the set_zoom tool.
type SetZoomOutput struct {
	Level int `json:"level"`
}

// EnterFullscreenInput is the input for the enter_fullscreen tool.
type EnterFullscreenInput struct {
	Monitor *int `json:"monitor,omitempty" jsonschema:"Monitor index to fullscreen on. Omit for the monitor the window currently occupies."`
}

// FullscreenOutput reports the fullscreen state after the transition.
type FullscreenOutput struct {
	Fullscreen bool `json:"fullscreen"`
	Monitor    int  `json:"monitor"`
}

// LeaveFullscreenInput is the input for the leave_fullscreen tool.
type LeaveFullscreenInput struct{}

// ToggleFullscreenInput is the input for the toggle_fullscreen tool.
type ToggleFullscreenInput struct{}

// ListMonitorsInput is the input for the list_monitors tool.
type ListMonitorsInput struct{}

// MonitorEntry describes one host monitor.
type MonitorEntry struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ListMonitorsOutput is the output for the list_monitors tool.
type ListMonitorsOutput struct {
	Monitors []MonitorEntry `json:"monitors"`
}

// TakeScreenshotInput is the input for the take_screenshot tool.
type TakeScreenshotInput struct {
	Path string `json:"path,omitempty" jsonschema:"Output file path. Format follows the extension (.png, .jpg, .gif); relative paths resolve against the viewer's screenshot directory. Omit for an auto-generated name."`
}

// TakeScreenshotOutput is the output for the take_screenshot tool.
type TakeScreenshotOutput struct {
	Path string `json:"path"`
}

// SendKeysInput is the input for the send_keys tool.
type SendKeysInput struct {
	Combo string `json:"combo" jsonschema:"required,Predefined key combination to send to the guest, e.g. ctrl+alt+del, ctrl+alt+f2, printscreen"`
}

// SendKeysOutput is the output for the send_keys tool.
type SendKeysOutput struct {
	Sent string `json:"sent"`
}
