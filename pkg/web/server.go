// Package web provides a live preview dashboard for followcam: the zoomed
// output feed over websocket plus the session state, so a headless capture
// box can be monitored from a browser. Presentation only; the tracking
// core never depends on this package.
package web

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"followcam/internal/log"
	"followcam/pkg/hub"
)

// FollowState is the session state pushed to dashboard clients.
type FollowState struct {
	State     string  `json:"state"`
	TrackID   string  `json:"track_id"`
	Backend   string  `json:"backend"`
	Zoom      float64 `json:"zoom"`
	Smoothing float64 `json:"smoothing"`
	FocusX    float64 `json:"focus_x"`
	FocusY    float64 `json:"focus_y"`
	FPS       float64 `json:"fps"`
	Frames    int     `json:"frames"`
}

// Server is the preview dashboard server
type Server struct {
	app  *fiber.App
	addr string

	state   FollowState
	stateMu sync.RWMutex

	// Hubs for websocket broadcast
	statusHub  *hub.Hub
	previewHub *hub.Hub
}

// NewServer creates a new dashboard server listening on addr.
func NewServer(addr string) *Server {
	s := &Server{
		addr:       addr,
		statusHub:  hub.New("status"),
		previewHub: hub.New("preview"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "followcam preview",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	app.Get("/", s.handleIndex)

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/status", websocket.New(s.handleStatusWS))
	app.Get("/ws/preview", websocket.New(s.handlePreviewWS))

	s.app = app
	return s
}

// Start starts the web server and blocks.
func (s *Server) Start() error {
	log.Info("preview dashboard listening", "addr", s.addr)

	go s.statusHub.Run()
	go s.previewHub.Run()

	return s.app.Listen(s.addr)
}

// StartAsync starts the web server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("preview server error", "err", err)
		}
	}()
}

// UpdateState applies an update to the session state and broadcasts the
// result to status clients.
func (s *Server) UpdateState(update func(*FollowState)) {
	s.stateMu.Lock()
	update(&s.state)
	state := s.state // Copy for broadcast
	s.stateMu.Unlock()

	if err := s.statusHub.BroadcastJSON(state); err != nil {
		log.Debug("status broadcast failed", "err", err)
	}
}

// PublishFrame sends a JPEG-encoded output frame to all preview clients.
// Never blocks the frame loop; slow clients are dropped by the hub.
func (s *Server) PublishFrame(jpegData []byte) {
	s.previewHub.BroadcastBinary(jpegData)
}

// Viewers returns the number of connected preview clients.
func (s *Server) Viewers() int {
	return s.previewHub.ClientCount()
}

// Shutdown gracefully stops the web server and both hub loops.
func (s *Server) Shutdown() error {
	s.statusHub.Stop()
	s.previewHub.Stop()
	return s.app.Shutdown()
}
