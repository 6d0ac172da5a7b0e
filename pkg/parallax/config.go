// Package parallax implements the off-axis projection core for the
// head-tracked window effect: a smoothed eye state, a pure frustum
// solver, and the per-tick driver that feeds a render host.
package parallax

import (
	"fmt"
	"time"
)

// ScreenExtent holds the half-dimensions, in scene units, of the plane
// representing the physical display. Fixed for the lifetime of a scene
// unless the scene is explicitly rebuilt.
type ScreenExtent struct {
	HalfWidth  float64 `json:"half_width"`
	HalfHeight float64 `json:"half_height"`
}

// ExtentForAspect builds a screen extent from a width and an aspect ratio
// (width / height).
func ExtentForAspect(halfWidth, aspect float64) ScreenExtent {
	return ScreenExtent{
		HalfWidth:  halfWidth,
		HalfHeight: halfWidth / aspect,
	}
}

// ProjectionConfig holds the solver tunables. Strength scales how hard
// head movement maps to eye displacement; it is a design choice, not a
// physical measurement of the display.
type ProjectionConfig struct {
	EyeDistance float64 `json:"eye_distance"` // eye-to-screen distance in scene units
	NearClip    float64 `json:"near_clip"`
	FarClip     float64 `json:"far_clip"`
	Strength    float64 `json:"strength"` // parallax strength, ~0.1-2.0
}

// Config holds all tunable parameters for the window effect.
type Config struct {
	Screen     ScreenExtent     `json:"screen"`
	Projection ProjectionConfig `json:"projection"`

	// Smoothing is the exponential smoothing factor applied once per
	// tick: current += (target - current) * Smoothing. Range (0, 1].
	Smoothing float64 `json:"smoothing"`

	// MirrorX is true when the camera feed is horizontally mirrored
	// (the usual webcam convention). InvertY flips the vertical axis
	// for scenes built with a rotated world.
	MirrorX bool `json:"mirror_x"`
	InvertY bool `json:"invert_y"`

	// TickInterval is how often the driver advances and re-solves.
	TickInterval time.Duration `json:"-"`
}

// DefaultConfig returns the recommended configuration for a 16:9 display.
func DefaultConfig() Config {
	return Config{
		Screen: ExtentForAspect(2.0, 16.0/9.0),
		Projection: ProjectionConfig{
			EyeDistance: 5.0,
			NearClip:    0.1,
			FarClip:     1000.0,
			Strength:    0.4,
		},
		Smoothing:    0.15,
		MirrorX:      true,
		InvertY:      false,
		TickInterval: 16 * time.Millisecond, // ~60 Hz
	}
}

// SteadyConfig returns a configuration for slower, calmer motion.
// Useful for unstable detections or long viewing distances.
func SteadyConfig() Config {
	cfg := DefaultConfig()
	cfg.Smoothing = 0.08
	cfg.Projection.Strength = 0.25
	return cfg
}

// ResponsiveConfig returns a configuration that tracks head movement
// aggressively at the cost of visible jitter on noisy detections.
func ResponsiveConfig() Config {
	cfg := DefaultConfig()
	cfg.Smoothing = 0.35
	cfg.Projection.Strength = 0.8
	return cfg
}

// Validate checks the config values. Returns a list of violations, or
// nil if valid. Degenerate distances and clip planes are rejected here,
// never clamped inside the solver.
func (c *Config) Validate() []string {
	var errs []string

	if c.Screen.HalfWidth <= 0 {
		errs = append(errs, "screen half_width must be positive")
	}
	if c.Screen.HalfHeight <= 0 {
		errs = append(errs, "screen half_height must be positive")
	}
	if c.Projection.EyeDistance <= 0 {
		errs = append(errs, "eye_distance must be positive")
	}
	if c.Projection.NearClip <= 0 {
		errs = append(errs, "near_clip must be positive")
	}
	if c.Projection.FarClip <= c.Projection.NearClip {
		errs = append(errs, "far_clip must be greater than near_clip")
	}
	if c.Projection.Strength <= 0 {
		errs = append(errs, "strength must be positive")
	}
	if c.Smoothing <= 0 || c.Smoothing > 1 {
		errs = append(errs, "smoothing must be in (0, 1]")
	}
	if c.TickInterval <= 0 {
		errs = append(errs, "tick interval must be positive")
	}

	return errs
}

// Err returns a single error describing all validation failures, or nil.
func (c *Config) Err() error {
	if errs := c.Validate(); len(errs) > 0 {
		return fmt.Errorf("invalid config: %v", errs)
	}
	return nil
}
