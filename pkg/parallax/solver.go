package parallax

import "github.com/go-gl/mathgl/mgl32"

// Frustum holds asymmetric view frustum bounds at the near plane.
// Invariant: Left < Right and Bottom < Top for every valid config.
type Frustum struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Top    float64 `json:"top"`
	Near   float64 `json:"near"`
	Far    float64 `json:"far"`
}

// Matrix returns the projection matrix for this frustum. Native render
// hosts consume the matrix directly; the browser host rebuilds it from
// the six bounds.
func (f Frustum) Matrix() mgl32.Mat4 {
	return mgl32.Frustum(
		float32(f.Left), float32(f.Right),
		float32(f.Bottom), float32(f.Top),
		float32(f.Near), float32(f.Far),
	)
}

// Eye is the camera position in scene space. Orientation stays identity:
// only the frustum shape and eye position ever change. Rotating the
// camera instead would unlock the screen plane from the physical bezel
// and break the window illusion.
type Eye struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Solve derives the asymmetric frustum and eye position for a smoothed
// face displacement. Pure: identical inputs yield identical outputs.
//
// The screen lies on the z=0 plane with the eye at z=EyeDistance. The
// lateral eye offset is the displacement scaled into scene units by the
// screen half-extents and the parallax strength; the X negation matches
// the mirrored-feed sign convention established by EyeState. Similar
// triangles between the near plane and the eye-to-screen distance give
// the scale factor k = NearClip / EyeDistance, and the frustum edges are
// the screen corners seen from the displaced eye, scaled by k. As the
// eye moves right the right bound shrinks and the left bound grows,
// shifting the visible volume to reveal what lies left of the screen
// plane.
//
// Callers must validate the config first; Solve never clamps.
func Solve(current Position, ext ScreenExtent, cfg ProjectionConfig) (Frustum, Eye) {
	eyeX := -current.X * ext.HalfWidth * cfg.Strength
	eyeY := current.Y * ext.HalfHeight * cfg.Strength

	k := cfg.NearClip / cfg.EyeDistance

	f := Frustum{
		Left:   (-ext.HalfWidth - eyeX) * k,
		Right:  (ext.HalfWidth - eyeX) * k,
		Bottom: (-ext.HalfHeight - eyeY) * k,
		Top:    (ext.HalfHeight - eyeY) * k,
		Near:   cfg.NearClip,
		Far:    cfg.FarClip,
	}

	return f, Eye{X: eyeX, Y: eyeY, Z: cfg.EyeDistance}
}
