// Package camera provides webcam capture and runtime-configurable
// camera settings. This follows the same pattern as pkg/parallax for
// tunable parameters.
package camera

// Config holds all camera configuration parameters.
// These can be modified via the camera API at runtime.
type Config struct {
	// === Resolution ===
	Width     int `json:"width"`     // Frame width in pixels
	Height    int `json:"height"`    // Frame height in pixels
	Framerate int `json:"framerate"` // Target FPS
	Quality   int `json:"quality"`   // JPEG quality 1-100

	// MirrorPreview flips the preview frames horizontally so the
	// dashboard feed behaves like a mirror. Detection always runs on
	// the unflipped frame; the math-level mirror convention lives in
	// the parallax config.
	MirrorPreview bool `json:"mirror_preview"`
}

// Capture limits for common UVC webcams.
const (
	MaxWidth     = 3840
	MaxHeight    = 2160
	MaxFramerate = 120
)

// DefaultConfig returns the recommended capture configuration.
// 1280x720 keeps YuNet inference fast while faces stay large enough.
func DefaultConfig() Config {
	return Config{
		Width:         1280,
		Height:        720,
		Framerate:     30,
		Quality:       85,
		MirrorPreview: true,
	}
}

// LowResConfig returns a 640x480 configuration for constrained hosts.
func LowResConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 640
	cfg.Height = 480
	return cfg
}

// Validate checks if the config values are within valid ranges.
// Returns a list of validation errors, or nil if valid.
func (c *Config) Validate() []string {
	var errors []string

	if c.Width < 160 || c.Width > MaxWidth {
		errors = append(errors, "width must be between 160 and 3840")
	}
	if c.Height < 120 || c.Height > MaxHeight {
		errors = append(errors, "height must be between 120 and 2160")
	}
	if c.Framerate < 1 || c.Framerate > MaxFramerate {
		errors = append(errors, "framerate must be between 1 and 120")
	}
	if c.Quality < 1 || c.Quality > 100 {
		errors = append(errors, "quality must be between 1 and 100")
	}

	return errors
}
