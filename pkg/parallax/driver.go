package parallax

import (
	"context"
	"sync"
	"time"

	"github.com/portalbox/go-portal/internal/log"
)

// CameraRig receives the solved camera parameters once per tick. An
// implementation replaces its projection with the frustum and moves the
// camera to the eye position, keeping rotation at identity.
type CameraRig interface {
	Apply(f Frustum, eye Eye)
}

// Renderer draws one frame after the rig has been updated. Optional:
// a browser render host draws on its own refresh and needs no delegate.
type Renderer interface {
	Render()
}

// fpsWindow measures ticks over a rolling ~500ms window.
const fpsWindow = 500 * time.Millisecond

// trackingTimeout is how long after the last detection the driver still
// reports the viewer as tracked.
const trackingTimeout = 2 * time.Second

// Status is a snapshot of the driver for the status API.
type Status struct {
	Running  bool     `json:"running"`
	Tracking bool     `json:"tracking"`
	FPS      float64  `json:"fps"`
	Position Position `json:"position"`
	Eye      Eye      `json:"eye"`
	Frustum  Frustum  `json:"frustum"`
}

// Driver sequences the per-tick update: advance the eye state, run the
// solver, apply the result to the camera rig, delegate the draw call.
//
// Detections arrive asynchronously via SetTarget; the driver serializes
// them against the tick with a mutex, so at most one target write is
// visible per Advance and the last write wins. There is no queue; the
// signal is continuously re-sampled, not transactional.
type Driver struct {
	mu  sync.Mutex
	cfg Config
	eye *EyeState
	rig CameraRig

	renderer Renderer

	// Last solved output, for status snapshots.
	lastFrustum Frustum
	lastEye     Eye

	// Tracking state
	lastDetection time.Time
	running       bool

	// FPS bookkeeping
	tickCount   int
	windowStart time.Time
	fps         float64

	// Runtime tick-rate changes land here (non-blocking).
	tickReset chan time.Duration
}

// New creates a driver. The config is validated here; a degenerate
// projection is a setup error, not something the solver clamps later.
func New(cfg Config, rig CameraRig) (*Driver, error) {
	if err := cfg.Err(); err != nil {
		return nil, err
	}
	return &Driver{
		cfg:       cfg,
		eye:       NewEyeState(cfg.MirrorX, cfg.InvertY),
		rig:       rig,
		tickReset: make(chan time.Duration, 1),
	}, nil
}

// SetRig attaches or replaces the camera rig after construction. Useful
// when the rig (e.g. the web server) itself needs the driver to exist.
func (d *Driver) SetRig(rig CameraRig) {
	d.mu.Lock()
	d.rig = rig
	d.mu.Unlock()
}

// SetRenderer sets the optional draw delegate.
func (d *Driver) SetRenderer(r Renderer) {
	d.mu.Lock()
	d.renderer = r
	d.mu.Unlock()
}

// SetTarget feeds a detection sample to the eye state. Called from the
// detection goroutine whenever a face is found; a frame with no face
// simply never calls this, leaving the last smoothed value in effect.
func (d *Driver) SetTarget(sample Sample) {
	d.mu.Lock()
	d.eye.SetTarget(sample)
	d.lastDetection = time.Now()
	d.mu.Unlock()
}

// Tick performs one update cycle. Called once per display refresh by
// Run, or directly by hosts that own their own loop.
func (d *Driver) Tick(dt time.Duration) {
	d.mu.Lock()

	current := d.eye.Advance(d.cfg.Smoothing)
	frustum, eye := Solve(current, d.cfg.Screen, d.cfg.Projection)
	d.lastFrustum, d.lastEye = frustum, eye

	d.tickCount++
	if d.windowStart.IsZero() {
		d.windowStart = time.Now()
	} else if elapsed := time.Since(d.windowStart); elapsed >= fpsWindow {
		d.fps = float64(d.tickCount) / elapsed.Seconds()
		d.tickCount = 0
		d.windowStart = time.Now()
	}

	rig := d.rig
	renderer := d.renderer
	d.mu.Unlock()

	if rig != nil {
		rig.Apply(frustum, eye)
	}
	if renderer != nil {
		renderer.Render()
	}
}

// Run drives Tick at the configured rate until the context is canceled.
// The driver is Idle until Run is called (collaborator setup happens
// first); once running it never returns to idle on its own.
func (d *Driver) Run(ctx context.Context) {
	d.mu.Lock()
	interval := d.cfg.TickInterval
	d.running = true
	d.mu.Unlock()

	log.Info("frame driver started",
		"tick_interval", interval,
		"smoothing", d.cfg.Smoothing,
		"strength", d.cfg.Projection.Strength)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			d.mu.Lock()
			d.running = false
			d.mu.Unlock()
			return

		case newInterval := <-d.tickReset:
			interval = newInterval
			ticker.Reset(interval)
			log.Info("tick rate changed", "tick_interval", interval)

		case now := <-ticker.C:
			d.Tick(now.Sub(last))
			last = now
		}
	}
}

// FPS returns the most recent rolling-window frame rate.
func (d *Driver) FPS() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fps
}

// Tracking reports whether a detection arrived recently.
func (d *Driver) Tracking() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tracking()
}

func (d *Driver) tracking() bool {
	return !d.lastDetection.IsZero() && time.Since(d.lastDetection) < trackingTimeout
}

// Recenter snaps the eye state back to the origin.
func (d *Driver) Recenter() {
	d.mu.Lock()
	d.eye.Reset()
	d.mu.Unlock()
}

// Snapshot returns the current driver state for the status API.
func (d *Driver) Snapshot() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Status{
		Running:  d.running,
		Tracking: d.tracking(),
		FPS:      d.fps,
		Position: d.eye.Current(),
		Eye:      d.lastEye,
		Frustum:  d.lastFrustum,
	}
}

// Config returns a copy of the active configuration.
func (d *Driver) Config() Config {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg
}

// setTickInterval requests a tick-rate change from the run loop without
// blocking; if a previous change is still pending this one is skipped.
func (d *Driver) setTickInterval(interval time.Duration) {
	select {
	case d.tickReset <- interval:
	default:
	}
}
