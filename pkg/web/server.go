// Package web serves the browser render host: the static front-end,
// the tuning and status API, and the websocket streams that carry the
// per-tick camera parameters, the preview video, and live logs.
package web

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/portalbox/go-portal/internal/log"
	"github.com/portalbox/go-portal/pkg/camera"
	"github.com/portalbox/go-portal/pkg/hub"
	"github.com/portalbox/go-portal/pkg/parallax"
	"github.com/portalbox/go-portal/pkg/visitors"
)

// PoseFrame is the per-tick message on /ws/pose. The browser render
// host rebuilds its projection matrix from the six frustum bounds,
// moves its camera to the eye position, and keeps rotation at identity.
type PoseFrame struct {
	Frustum  parallax.Frustum `json:"frustum"`
	Eye      parallax.Eye     `json:"eye"`
	FPS      float64          `json:"fps"`
	Tracking bool             `json:"tracking"`
	TS       int64            `json:"ts_ms"`
}

// LogEntry represents a log line for the dashboard
type LogEntry struct {
	Time    string `json:"time"`
	Type    string `json:"type"` // info, face, camera, error
	Message string `json:"message"`
}

// Server is the portal web server.
type Server struct {
	app  *fiber.App
	port string

	driver    *parallax.Driver
	cameraMgr *camera.Manager
	counter   *visitors.Counter

	// Log buffer (last 500 entries)
	logs   []LogEntry
	logsMu sync.RWMutex

	// Hubs for websocket broadcast
	poseHub  *hub.Hub
	videoHub *hub.Hub
	logHub   *hub.Hub

	// StaticDir is the front-end directory served at /.
	StaticDir string
}

// NewServer creates the portal web server.
func NewServer(port string, driver *parallax.Driver, cameraMgr *camera.Manager, counter *visitors.Counter) *Server {
	s := &Server{
		port:      port,
		driver:    driver,
		cameraMgr: cameraMgr,
		counter:   counter,
		logs:      make([]LogEntry, 0, 500),
		poseHub:   hub.New("pose"),
		videoHub:  hub.New("video"),
		logHub:    hub.New("logs"),
		StaticDir: "./web",
	}

	app := fiber.New(fiber.Config{
		AppName:               "Portal",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	// API routes
	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/tuning", s.handleGetTuning)
	api.Post("/tuning", s.handleSetTuning)
	api.Post("/orientation", s.handleOrientation)
	api.Post("/recenter", s.handleRecenter)
	api.Get("/camera", s.handleGetCamera)
	api.Post("/camera", s.handleSetCamera)
	api.Get("/visitors", s.handleVisitors)
	api.Get("/logs", s.handleGetLogs)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// WebSocket routes
	app.Get("/ws/pose", websocket.New(s.handlePoseWS))
	app.Get("/ws/video", websocket.New(s.handleVideoWS))
	app.Get("/ws/logs", websocket.New(s.handleLogsWS))

	s.app = app
	return s
}

// Start starts the web server. The static front-end is mounted here so
// StaticDir can still be overridden after NewServer.
func (s *Server) Start() error {
	s.app.Static("/", s.StaticDir)

	log.Info("portal server listening", "port", s.port)

	go s.poseHub.Run()
	go s.videoHub.Run()
	go s.logHub.Run()

	return s.app.Listen(":" + s.port)
}

// StartAsync starts the web server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("web server failed", "error", err)
		}
	}()
}

// Apply implements parallax.CameraRig: every tick's solved camera
// parameters fan out to the connected render hosts.
func (s *Server) Apply(f parallax.Frustum, eye parallax.Eye) {
	frame := PoseFrame{
		Frustum: f,
		Eye:     eye,
		TS:      time.Now().UnixMilli(),
	}
	if s.driver != nil {
		frame.FPS = s.driver.FPS()
		frame.Tracking = s.driver.Tracking()
	}
	s.poseHub.BroadcastJSON(frame)
}

// SendVideoFrame sends a preview frame to all connected clients.
func (s *Server) SendVideoFrame(jpeg []byte) {
	// Skip encoding work when nobody is watching.
	if s.videoHub.ClientCount() == 0 {
		return
	}
	s.videoHub.BroadcastBinary(jpeg)
}

// AddLog adds a log entry and broadcasts it to dashboard clients.
func (s *Server) AddLog(logType, message string) {
	entry := LogEntry{
		Time:    time.Now().Format("15:04:05"),
		Type:    logType,
		Message: message,
	}

	s.logsMu.Lock()
	s.logs = append(s.logs, entry)
	if len(s.logs) > 500 {
		s.logs = s.logs[1:]
	}
	s.logsMu.Unlock()

	s.logHub.BroadcastJSON(entry)
}

// logSnapshot copies the log buffer so callers can iterate it without
// holding the lock across network writes.
func (s *Server) logSnapshot() []LogEntry {
	s.logsMu.RLock()
	defer s.logsMu.RUnlock()
	out := make([]LogEntry, len(s.logs))
	copy(out, s.logs)
	return out
}

// Shutdown gracefully stops the web server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
