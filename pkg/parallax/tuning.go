package parallax

import "time"

// Tuning bounds. The user-facing controls clamp here so that contract
// violations never reach EyeState.Advance or the solver.
const (
	MinStrength  = 0.1
	MaxStrength  = 2.0
	MinSmoothing = 0.01
	MaxSmoothing = 0.5
	MinTickHz    = 10.0
	MaxTickHz    = 120.0
)

// TuningParams holds the real-time adjustable window parameters. These
// can be modified via the tuning API without restarting the service.
type TuningParams struct {
	Strength    float64 `json:"strength"`     // parallax strength (0.1-2.0)
	Smoothing   float64 `json:"smoothing"`    // EMA factor (0.01-0.5)
	EyeDistance float64 `json:"eye_distance"` // eye-to-screen distance (scene units)
	TickHz      float64 `json:"tick_hz"`      // driver tick rate (10-120 Hz)
}

// GetTuningParams returns the current tuning parameters.
func (d *Driver) GetTuningParams() TuningParams {
	d.mu.Lock()
	defer d.mu.Unlock()

	return TuningParams{
		Strength:    d.cfg.Projection.Strength,
		Smoothing:   d.cfg.Smoothing,
		EyeDistance: d.cfg.Projection.EyeDistance,
		TickHz:      1.0 / d.cfg.TickInterval.Seconds(),
	}
}

// SetTuningParams updates tuning parameters at runtime. Only non-zero
// values are applied, each clamped to its bound. Changes take effect on
// the next tick.
func (d *Driver) SetTuningParams(params TuningParams) {
	d.mu.Lock()

	if params.Strength > 0 {
		d.cfg.Projection.Strength = clamp(params.Strength, MinStrength, MaxStrength)
	}
	if params.Smoothing > 0 {
		d.cfg.Smoothing = clamp(params.Smoothing, MinSmoothing, MaxSmoothing)
	}
	if params.EyeDistance > 0 {
		d.cfg.Projection.EyeDistance = params.EyeDistance
	}
	d.mu.Unlock()

	// Tick rate is handled outside the lock via the reset channel.
	if params.TickHz > 0 {
		hz := clamp(params.TickHz, MinTickHz, MaxTickHz)
		interval := time.Duration(float64(time.Second) / hz)
		d.mu.Lock()
		d.cfg.TickInterval = interval
		d.mu.Unlock()
		d.setTickInterval(interval)
	}
}

// SetOrientation updates the mirror and inversion flags at runtime.
func (d *Driver) SetOrientation(mirrorX, invertY bool) {
	d.mu.Lock()
	d.cfg.MirrorX = mirrorX
	d.cfg.InvertY = invertY
	d.eye.SetOrientation(mirrorX, invertY)
	d.mu.Unlock()
}
