package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/guestview/guestview/internal/window"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetStatus        CommandType = "GET_STATUS"
	CommandGetMonitors      CommandType = "GET_MONITORS"
	CommandSetZoom          CommandType = "SET_ZOOM"
	CommandZoomIn           CommandType = "ZOOM_IN"
	CommandZoomOut          CommandType = "ZOOM_OUT"
	CommandZoomNormal       CommandType = "ZOOM_NORMAL"
	CommandEnterFullscreen  CommandType = "ENTER_FULLSCREEN"
	CommandLeaveFullscreen  CommandType = "LEAVE_FULLSCREEN"
	CommandToggleFullscreen CommandType = "TOGGLE_FULLSCREEN"
	CommandShow             CommandType = "SHOW"
	CommandHide             CommandType = "HIDE"
	CommandScreenshot       CommandType = "SCREENSHOT"
	CommandSendKeys         CommandType = "SEND_KEYS"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData is returned by GET_STATUS. It wraps the window status with
// viewer identity.
type StatusData struct {
	GuestName string        `json:"guest_name"`
	Window    window.Status `json:"window"`
}

// MonitorInfo represents information about a single monitor
type MonitorInfo struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// MonitorsData represents the data returned by GET_MONITORS
type MonitorsData struct {
	Monitors []MonitorInfo `json:"monitors"`
}

// SetZoomPayload carries the SET_ZOOM level in percent.
type SetZoomPayload struct {
	Level int `json:"level"`
}

// ZoomData is returned by the zoom commands.
type ZoomData struct {
	Level int `json:"level"`
}

// EnterFullscreenPayload selects the fullscreen output; -1 means the
// monitor the window currently occupies.
type EnterFullscreenPayload struct {
	Monitor int `json:"monitor"`
}

// ScreenshotPayload names the output file. A relative path is resolved
// against the configured screenshot directory.
type ScreenshotPayload struct {
	Path string `json:"path"`
}

// ScreenshotData reports where the screenshot was written.
type ScreenshotData struct {
	Path string `json:"path"`
}

// SendKeysPayload names a predefined key combination, e.g.
// "ctrl+alt+del".
type SendKeysPayload struct {
	Combo string `json:"combo"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
