// Portal runs the head-tracked window service: webcam face tracking
// feeds an off-axis projection solver, and solved camera frustums
// stream to the browser renderer over websockets.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/portalbox/go-portal/pkg/portal"
)

func main() {
	cfg := parseFlags()

	app, err := portal.New(cfg)
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	if err := app.Init(); err != nil {
		// Keep serving so the dashboard can show what went wrong.
		log.Printf("initialization failed: %v", err)
	}
	defer app.Shutdown()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx); err != nil {
		log.Printf("exited with error: %v", err)
	}
}

// parseFlags parses command line flags and returns configuration.
func parseFlags() portal.Config {
	cfg := portal.DefaultConfig()

	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	debugTracking := flag.Bool("debug-tracking", false, "Enable very noisy per-detection logs")
	port := flag.String("port", cfg.Port, "HTTP port for the dashboard and websockets")
	cameraID := flag.Int("camera", cfg.CameraID, "Capture device index")
	model := flag.String("model", cfg.Detect.ModelPath, "Path to the YuNet face detection model")
	preset := flag.String("preset", portal.PresetDefault, "Window preset: default, steady, responsive")
	strength := flag.Float64("strength", 0, "Parallax strength override (0 keeps the preset value)")
	smoothing := flag.Float64("smoothing", 0, "Smoothing factor override (0 keeps the preset value)")
	detectHz := flag.Float64("detect-hz", 30, "Detection attempts per second")
	static := flag.String("static", cfg.StaticDir, "Directory served as the dashboard front-end")
	counterURL := flag.String("counter-url", "", "Visitor counter endpoint (overrides PORTAL_COUNTER_URL)")
	flag.Parse()

	cfg.Debug, cfg.DebugTracking = *debug, *debugTracking
	cfg.Port = *port
	cfg.CameraID = *cameraID
	cfg.Detect.ModelPath = *model
	cfg.StaticDir = *static

	cfg.Window = portal.WindowPreset(*preset)
	if *strength > 0 {
		cfg.Window.Projection.Strength = *strength
	}
	if *smoothing > 0 {
		cfg.Window.Smoothing = *smoothing
	}
	if *detectHz > 0 {
		cfg.DetectInterval = time.Duration(float64(time.Second) / *detectHz)
	}
	if *counterURL != "" {
		cfg.CounterURL = *counterURL
	}
	return cfg
}
