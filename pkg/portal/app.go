// Package portal wires the capture, detection, projection, and web
// layers into one application.
package portal

import (
	"context"
	"fmt"

	"github.com/portalbox/go-portal/internal/log"
	"github.com/portalbox/go-portal/pkg/camera"
	"github.com/portalbox/go-portal/pkg/debug"
	"github.com/portalbox/go-portal/pkg/detect"
	"github.com/portalbox/go-portal/pkg/parallax"
	"github.com/portalbox/go-portal/pkg/visitors"
	"github.com/portalbox/go-portal/pkg/web"
)

// App is the portal application. Construct with New, open hardware
// with Init, then Run. The frame driver stays idle until every
// collaborator came up, so a failed Init leaves the dashboard
// reachable with a visible error instead of a half-running pipeline.
type App struct {
	config Config

	driver    *parallax.Driver
	webServer *web.Server
	cameraMgr *camera.Manager
	counter   *visitors.Counter

	webcam   *camera.Webcam
	detector *detect.YuNet
	runner   *detect.Runner

	initErr error
}

// New creates the application from config. Hardware is not touched
// here; call Init for that.
func New(cfg Config) (*App, error) {
	cfg.LoadEnvConfig()

	if cfg.Debug {
		log.Init("debug")
	} else {
		log.Init("info")
	}
	debug.Enabled = cfg.Debug
	debug.Tracking = cfg.DebugTracking

	driver, err := parallax.New(cfg.Window, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid window config: %w", err)
	}

	cameraMgr := camera.NewManager()
	if err := cameraMgr.SetConfig(cfg.Camera); err != nil {
		return nil, fmt.Errorf("invalid camera config: %w", err)
	}

	counter := visitors.New(cfg.CounterURL)

	server := web.NewServer(cfg.Port, driver, cameraMgr, counter)
	if cfg.StaticDir != "" {
		server.StaticDir = cfg.StaticDir
	}

	// The server is the camera rig: solved frustums go out over the
	// pose websocket.
	driver.SetRig(server)

	return &App{
		config:    cfg,
		driver:    driver,
		webServer: server,
		cameraMgr: cameraMgr,
		counter:   counter,
	}, nil
}

// Init opens the webcam and loads the face detector. On failure the
// error is kept so Run can surface it on the dashboard.
func (a *App) Init() error {
	log.Info("initializing portal",
		"camera_id", a.config.CameraID,
		"model", a.config.Detect.ModelPath)

	webcam, err := camera.OpenWebcam(a.config.CameraID, a.cameraMgr.GetConfig())
	if err != nil {
		a.initErr = fmt.Errorf("open webcam: %w", err)
		return a.initErr
	}
	a.webcam = webcam
	a.cameraMgr.OnConfigChange = webcam.ApplyConfig

	detector, err := detect.NewYuNet(a.config.Detect)
	if err != nil {
		webcam.Close()
		a.webcam = nil
		a.initErr = fmt.Errorf("load detector: %w", err)
		return a.initErr
	}
	a.detector = detector

	runner := detect.NewRunner(webcam, detector, a.config.DetectInterval)
	runner.OnFace = func(x, y float64) {
		a.driver.SetTarget(parallax.Sample{CenterX: x, CenterY: y})
	}
	runner.OnFrame = a.webServer.SendVideoFrame
	a.runner = runner

	log.Info("portal initialized")
	return nil
}

// Run starts the web server and, when Init succeeded, the detection
// and frame loops. It blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	a.webServer.StartAsync()

	go func() {
		if n := a.counter.Hit(); n > 0 {
			log.Info("visitor counted", "total", n)
		}
	}()

	if a.initErr != nil {
		// Degraded mode: dashboard up, driver idle.
		log.Error("running without tracking", "error", a.initErr)
		a.webServer.AddLog("error", fmt.Sprintf("init failed: %v", a.initErr))
		<-ctx.Done()
		return a.initErr
	}

	a.webServer.AddLog("info", "portal running")

	go a.runner.Run(ctx)
	a.driver.Run(ctx)
	return nil
}

// Shutdown releases hardware and stops the web server.
func (a *App) Shutdown() {
	log.Info("shutting down portal")

	if a.detector != nil {
		a.detector.Close()
	}
	if a.webcam != nil {
		a.webcam.Close()
	}
	if err := a.webServer.Shutdown(); err != nil {
		log.Warn("web server shutdown", "error", err)
	}
}
