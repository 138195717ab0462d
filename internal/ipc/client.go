package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/guestview/guestview/internal/runtimepath"
)

// Client handles IPC communication with a running viewer
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}

	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to viewer: %w (is the viewer running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("viewer error: %s", resp.Error)
	}

	return &resp, nil
}

// GetStatus retrieves the viewer status
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}

	return &status, nil
}

// GetMonitors retrieves the host monitor layout
func (c *Client) GetMonitors() (*MonitorsData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetMonitors})
	if err != nil {
		return nil, err
	}

	var monitors MonitorsData
	if err := json.Unmarshal(resp.Data, &monitors); err != nil {
		return nil, fmt.Errorf("failed to parse monitors data: %w", err)
	}

	return &monitors, nil
}

// SetZoom sets the zoom level in percent and returns the level the
// viewer settled on after clamping.
func (c *Client) SetZoom(level int) (int, error) {
	payload, err := json.Marshal(SetZoomPayload{Level: level})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal zoom payload: %w", err)
	}

	return c.zoomRequest(&Request{Command: CommandSetZoom, Payload: payload})
}

// ZoomIn raises the zoom by one step.
func (c *Client) ZoomIn() (int, error) {
	return c.zoomRequest(&Request{Command: CommandZoomIn})
}

// ZoomOut lowers the zoom by one step.
func (c *Client) ZoomOut() (int, error) {
	return c.zoomRequest(&Request{Command: CommandZoomOut})
}

// ZoomNormal resets the zoom to 100%.
func (c *Client) ZoomNormal() (int, error) {
	return c.zoomRequest(&Request{Command: CommandZoomNormal})
}

func (c *Client) zoomRequest(req *Request) (int, error) {
	resp, err := c.sendRequest(req)
	if err != nil {
		return 0, err
	}

	var data ZoomData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return 0, fmt.Errorf("failed to parse zoom data: %w", err)
	}
	return data.Level, nil
}

// EnterFullscreen puts the viewer into fullscreen on the given monitor;
// -1 targets the monitor the window currently occupies.
func (c *Client) EnterFullscreen(monitor int) error {
	payload, err := json.Marshal(EnterFullscreenPayload{Monitor: monitor})
	if err != nil {
		return fmt.Errorf("failed to marshal fullscreen payload: %w", err)
	}

	_, err = c.sendRequest(&Request{Command: CommandEnterFullscreen, Payload: payload})
	return err
}

// LeaveFullscreen returns the viewer to windowed mode.
func (c *Client) LeaveFullscreen() error {
	_, err := c.sendRequest(&Request{Command: CommandLeaveFullscreen})
	return err
}

// ToggleFullscreen flips the fullscreen state.
func (c *Client) ToggleFullscreen() error {
	_, err := c.sendRequest(&Request{Command: CommandToggleFullscreen})
	return err
}

// Show maps the viewer window.
func (c *Client) Show() error {
	_, err := c.sendRequest(&Request{Command: CommandShow})
	return err
}

// Hide withdraws the viewer window.
func (c *Client) Hide() error {
	_, err := c.sendRequest(&Request{Command: CommandHide})
	return err
}

// Screenshot captures the guest display to path and returns the file
// actually written. An empty path lets the viewer pick a name.
func (c *Client) Screenshot(path string) (string, error) {
	payload, err := json.Marshal(ScreenshotPayload{Path: path})
	if err != nil {
		return "", fmt.Errorf("failed to marshal screenshot payload: %w", err)
	}

	resp, err := c.sendRequest(&Request{Command: CommandScreenshot, Payload: payload})
	if err != nil {
		return "", err
	}

	var data ScreenshotData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return "", fmt.Errorf("failed to parse screenshot data: %w", err)
	}
	return data.Path, nil
}

// SendKeys forwards a predefined key combination to the guest, e.g.
// "ctrl+alt+del".
func (c *Client) SendKeys(combo string) error {
	payload, err := json.Marshal(SendKeysPayload{Combo: combo})
	if err != nil {
		return fmt.Errorf("failed to marshal send-keys payload: %w", err)
	}

	_, err = c.sendRequest(&Request{Command: CommandSendKeys, Payload: payload})
	return err
}

// Ping checks if the viewer is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
