package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/guestview/guestview/internal/runtimepath"
	"github.com/guestview/guestview/internal/screenshot"
	"github.com/guestview/guestview/internal/window"
)

// Viewer is the window surface the server drives. Every call is
// dispatched onto the event loop, so implementations need no locking.
type Viewer interface {
	Status() window.Status
	SetZoomLevel(level int)
	ZoomIn()
	ZoomOut()
	ZoomNormal()
	ZoomLevel() int
	EnterFullscreen(monitor int)
	LeaveFullscreen()
	ToggleFullscreen()
	Show()
	Hide()
	SendKeyCombo(name string) error
	Snapshot() (image.Image, error)
}

// Server handles IPC requests from control clients
type Server struct {
	socketPath    string
	listener      net.Listener
	guestName     string
	viewer        Viewer
	monitors      func() ([]MonitorInfo, error)
	loop          *window.Loop
	screenshotDir string
	shuttingDown  bool
	shutdownMu    sync.Mutex
}

// NewServer creates a new IPC server. The monitors callback reports the
// host monitor layout; it too runs on the event loop.
func NewServer(guestName string, viewer Viewer, monitors func() ([]MonitorInfo, error), loop *window.Loop, screenshotDir string) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath:    socketPath,
		guestName:     guestName,
		viewer:        viewer,
		monitors:      monitors,
		loop:          loop,
		screenshotDir: screenshotDir,
	}, nil
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	// Accept connections
	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	// Parse request
	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Handle command
	resp := s.handleCommand(req)

	// Send response
	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetMonitors:
		return s.handleGetMonitors()
	case CommandSetZoom:
		return s.handleSetZoom(req.Payload)
	case CommandZoomIn:
		return s.handleZoomStep(s.viewer.ZoomIn)
	case CommandZoomOut:
		return s.handleZoomStep(s.viewer.ZoomOut)
	case CommandZoomNormal:
		return s.handleZoomStep(s.viewer.ZoomNormal)
	case CommandEnterFullscreen:
		return s.handleEnterFullscreen(req.Payload)
	case CommandLeaveFullscreen:
		return s.handleLeaveFullscreen()
	case CommandToggleFullscreen:
		return s.handleToggleFullscreen()
	case CommandShow:
		return s.handleShow()
	case CommandHide:
		return s.handleHide()
	case CommandScreenshot:
		return s.handleScreenshot(req.Payload)
	case CommandSendKeys:
		return s.handleSendKeys(req.Payload)
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

// call runs fn on the event loop and reports whether it ran.
func (s *Server) call(fn func()) *Response {
	if !s.loop.Call(fn) {
		return NewErrorResponse("viewer is shutting down")
	}
	return nil
}

func (s *Server) handleGetStatus() *Response {
	var st window.Status
	if errResp := s.call(func() { st = s.viewer.Status() }); errResp != nil {
		return errResp
	}

	resp, _ := NewOKResponse(StatusData{GuestName: s.guestName, Window: st})
	return resp
}

func (s *Server) handleGetMonitors() *Response {
	var (
		infos []MonitorInfo
		err   error
	)
	if errResp := s.call(func() { infos, err = s.monitors() }); errResp != nil {
		return errResp
	}
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to get monitors: %v", err))
	}

	resp, _ := NewOKResponse(MonitorsData{Monitors: infos})
	return resp
}

func (s *Server) handleSetZoom(payload json.RawMessage) *Response {
	var req SetZoomPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid zoom payload: %v", err))
	}

	var level int
	if errResp := s.call(func() {
		s.viewer.SetZoomLevel(req.Level)
		level = s.viewer.ZoomLevel()
	}); errResp != nil {
		return errResp
	}

	resp, _ := NewOKResponse(ZoomData{Level: level})
	return resp
}

func (s *Server) handleZoomStep(step func()) *Response {
	var level int
	if errResp := s.call(func() {
		step()
		level = s.viewer.ZoomLevel()
	}); errResp != nil {
		return errResp
	}

	resp, _ := NewOKResponse(ZoomData{Level: level})
	return resp
}

func (s *Server) handleEnterFullscreen(payload json.RawMessage) *Response {
	monitor := -1
	if len(payload) > 0 {
		var req EnterFullscreenPayload
		if err := json.Unmarshal(payload, &req); err != nil {
			return NewErrorResponse(fmt.Sprintf("Invalid fullscreen payload: %v", err))
		}
		monitor = req.Monitor
	}

	if errResp := s.call(func() { s.viewer.EnterFullscreen(monitor) }); errResp != nil {
		return errResp
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleLeaveFullscreen() *Response {
	if errResp := s.call(func() { s.viewer.LeaveFullscreen() }); errResp != nil {
		return errResp
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleToggleFullscreen() *Response {
	if errResp := s.call(func() { s.viewer.ToggleFullscreen() }); errResp != nil {
		return errResp
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleShow() *Response {
	if errResp := s.call(func() { s.viewer.Show() }); errResp != nil {
		return errResp
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleHide() *Response {
	if errResp := s.call(func() { s.viewer.Hide() }); errResp != nil {
		return errResp
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleScreenshot(payload json.RawMessage) *Response {
	var req ScreenshotPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &req); err != nil {
			return NewErrorResponse(fmt.Sprintf("Invalid screenshot payload: %v", err))
		}
	}

	path := req.Path
	if path == "" {
		path = fmt.Sprintf("%s-%s.png", s.guestName, time.Now().Format("20060102-150405"))
	}
	if !filepath.IsAbs(path) && s.screenshotDir != "" {
		path = filepath.Join(s.screenshotDir, path)
	}

	var (
		img image.Image
		err error
	)
	if errResp := s.call(func() { img, err = s.viewer.Snapshot() }); errResp != nil {
		return errResp
	}
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to capture display: %v", err))
	}

	// Encoding happens off the event loop.
	written, err := screenshot.Save(img, path)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to save screenshot: %v", err))
	}

	resp, _ := NewOKResponse(ScreenshotData{Path: written})
	return resp
}

func (s *Server) handleSendKeys(payload json.RawMessage) *Response {
	var req SendKeysPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid send-keys payload: %v", err))
	}
	if req.Combo == "" {
		return NewErrorResponse("combo is required")
	}

	var err error
	if errResp := s.call(func() { err = s.viewer.SendKeyCombo(req.Combo) }); errResp != nil {
		return errResp
	}
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to send keys: %v", err))
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
