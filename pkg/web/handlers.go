package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/portalbox/go-portal/pkg/hub"
	"github.com/portalbox/go-portal/pkg/parallax"
)

// statusResponse is the /api/status payload.
type statusResponse struct {
	Driver   parallax.Status `json:"driver"`
	Clients  int             `json:"pose_clients"`
	Visitors int64           `json:"visitors"`
}

// handleStatus returns the driver snapshot and connection counts.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	resp := statusResponse{
		Clients: s.poseHub.ClientCount(),
	}
	if s.driver != nil {
		resp.Driver = s.driver.Snapshot()
	}
	if s.counter != nil {
		resp.Visitors = s.counter.Count()
	}
	return c.JSON(resp)
}

// handleGetTuning returns the current tuning parameters.
func (s *Server) handleGetTuning(c *fiber.Ctx) error {
	return c.JSON(s.driver.GetTuningParams())
}

// handleSetTuning applies tuning parameters. Zero-valued fields are
// left untouched; everything else is clamped to its documented bound.
func (s *Server) handleSetTuning(c *fiber.Ctx) error {
	var params parallax.TuningParams
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid tuning payload",
		})
	}

	s.driver.SetTuningParams(params)
	s.AddLog("info", "tuning updated")

	return c.JSON(s.driver.GetTuningParams())
}

// orientationRequest toggles the axis conventions.
type orientationRequest struct {
	MirrorX bool `json:"mirror_x"`
	InvertY bool `json:"invert_y"`
}

// handleOrientation sets the mirror and inversion flags.
func (s *Server) handleOrientation(c *fiber.Ctx) error {
	var req orientationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid orientation payload",
		})
	}

	s.driver.SetOrientation(req.MirrorX, req.InvertY)
	return c.JSON(fiber.Map{"mirror_x": req.MirrorX, "invert_y": req.InvertY})
}

// handleRecenter snaps the eye state back to the origin.
func (s *Server) handleRecenter(c *fiber.Ctx) error {
	s.driver.Recenter()
	s.AddLog("info", "recentered")
	return c.JSON(fiber.Map{"ok": true})
}

// handleGetCamera returns the current camera configuration.
func (s *Server) handleGetCamera(c *fiber.Ctx) error {
	return c.JSON(s.cameraMgr.GetConfigJSON())
}

// handleSetCamera updates camera parameters by name.
func (s *Server) handleSetCamera(c *fiber.Ctx) error {
	var params map[string]interface{}
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid camera payload",
		})
	}

	if err := s.cameraMgr.UpdateConfig(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	s.AddLog("camera", "camera config updated")
	return c.JSON(s.cameraMgr.GetConfigJSON())
}

// handleVisitors returns the cached visitor count.
func (s *Server) handleVisitors(c *fiber.Ctx) error {
	var count int64
	if s.counter != nil {
		count = s.counter.Count()
	}
	return c.JSON(fiber.Map{"count": count})
}

// handleGetLogs returns recent log entries.
func (s *Server) handleGetLogs(c *fiber.Ctx) error {
	return c.JSON(s.logSnapshot())
}

// handlePoseWS streams per-tick camera parameters to a render host.
func (s *Server) handlePoseWS(c *websocket.Conn) {
	hub.NewClient(s.poseHub, c).Run()
}

// handleVideoWS streams preview JPEG frames to the dashboard.
func (s *Server) handleVideoWS(c *websocket.Conn) {
	hub.NewClient(s.videoHub, c).Run()
}

// handleLogsWS streams log entries; recent history is replayed first.
// The replay walks a snapshot so a slow dashboard client cannot stall
// AddLog writers behind the buffer lock.
func (s *Server) handleLogsWS(c *websocket.Conn) {
	for _, entry := range s.logSnapshot() {
		c.WriteJSON(entry)
	}

	hub.NewClient(s.logHub, c).Run()
}
