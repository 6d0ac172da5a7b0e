package parallax

// Sample is the raw detector output for one processed frame: the face
// center normalized to [0,1] in both axes. Ephemeral; each new detection
// overwrites the previous one, nothing is queued.
type Sample struct {
	CenterX float64 `json:"center_x"`
	CenterY float64 `json:"center_y"`
}

// Position is a face displacement from frame center, both axes in [-1,1].
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// EyeState converts the noisy, asynchronously-arriving detection stream
// into a temporally stable signal. It holds the latest normalized target
// and an exponentially smoothed current position.
//
// EyeState is not safe for concurrent use; the Driver serializes access.
type EyeState struct {
	target  Position
	current Position

	mirrorX bool
	invertY bool
}

// NewEyeState creates an eye state at rest (target and current at origin).
func NewEyeState(mirrorX, invertY bool) *EyeState {
	return &EyeState{mirrorX: mirrorX, invertY: invertY}
}

// SetTarget stores a new detection target. The sample is mapped from
// [0,1] frame coordinates to a [-1,1] displacement from frame center;
// out-of-range samples are clamped at this boundary. Last writer wins.
//
// With mirrorX set (the webcam convention) the horizontal sign is kept
// as-is so that the solver's X negation lines up with the mirrored feed;
// an unmirrored feed flips it here rather than inside the solver.
func (s *EyeState) SetTarget(sample Sample) {
	x := (clamp(sample.CenterX, 0, 1) - 0.5) * 2
	y := (clamp(sample.CenterY, 0, 1) - 0.5) * 2

	if !s.mirrorX {
		x = -x
	}
	if s.invertY {
		y = -y
	}

	s.target = Position{X: x, Y: y}
}

// Advance moves current toward target by the given smoothing factor and
// returns the new current position. Call exactly once per tick.
//
// The update is a convex combination, so current stays within [-1,1]
// whenever target and the starting current are, and converges to a held
// target with first-order lag and no overshoot. Alpha outside (0,1] is a
// caller contract violation; the config boundary clamps it, not this.
func (s *EyeState) Advance(alpha float64) Position {
	s.current.X += (s.target.X - s.current.X) * alpha
	s.current.Y += (s.target.Y - s.current.Y) * alpha
	return s.current
}

// Current returns the smoothed position without advancing it.
func (s *EyeState) Current() Position {
	return s.current
}

// Target returns the most recent detection target.
func (s *EyeState) Target() Position {
	return s.target
}

// SetOrientation updates the mirror and inversion flags. Takes effect
// on the next SetTarget; the current smoothed value is left alone.
func (s *EyeState) SetOrientation(mirrorX, invertY bool) {
	s.mirrorX = mirrorX
	s.invertY = invertY
}

// Reset recenters both target and current. Used when tracking is lost
// long enough that snapping back to center reads better than drifting.
func (s *EyeState) Reset() {
	s.target = Position{}
	s.current = Position{}
}

// clamp limits a value to a range.
func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
