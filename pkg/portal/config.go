package portal

import (
	"os"
	"time"

	"github.com/portalbox/go-portal/internal/config"
	"github.com/portalbox/go-portal/pkg/camera"
	"github.com/portalbox/go-portal/pkg/detect"
	"github.com/portalbox/go-portal/pkg/parallax"
)

// Preset names accepted by the -preset flag.
const (
	PresetDefault    = "default"
	PresetSteady     = "steady"
	PresetResponsive = "responsive"
)

// Config holds all application configuration.
// Flag parsing is done in cmd/portal/main.go.
type Config struct {
	// Window is the projection and smoothing configuration.
	Window parallax.Config

	// Detection pipeline.
	CameraID       int
	Camera         camera.Config
	Detect         detect.Config
	DetectInterval time.Duration

	// Web server.
	Port      string
	StaticDir string

	// CounterURL is the external visitor counter endpoint. Empty
	// disables visitor counting.
	CounterURL string

	Debug         bool
	DebugTracking bool
}

// DefaultConfig returns the standard desk-window setup.
func DefaultConfig() Config {
	return Config{
		Window:         parallax.DefaultConfig(),
		CameraID:       0,
		Camera:         camera.DefaultConfig(),
		Detect:         detect.DefaultConfig(),
		DetectInterval: 33 * time.Millisecond,
		Port:           "8090",
		StaticDir:      "./web",
	}
}

// WindowPreset returns the parallax config for a named preset.
// Unknown names fall back to the default.
func WindowPreset(name string) parallax.Config {
	switch name {
	case PresetSteady:
		return parallax.SteadyConfig()
	case PresetResponsive:
		return parallax.ResponsiveConfig()
	default:
		return parallax.DefaultConfig()
	}
}

// LoadEnvConfig applies environment variable overrides. Only variables
// that are actually set win over flag values.
func (c *Config) LoadEnvConfig() {
	if _, ok := os.LookupEnv("PORTAL_PORT"); ok {
		c.Port = config.Port()
	}
	if _, ok := os.LookupEnv("PORTAL_CAMERA"); ok {
		c.CameraID = config.CameraID()
	}
	if _, ok := os.LookupEnv("PORTAL_MODEL"); ok {
		c.Detect.ModelPath = config.ModelPath()
	}
	if url := config.CounterURL(); url != "" {
		c.CounterURL = url
	}
}
