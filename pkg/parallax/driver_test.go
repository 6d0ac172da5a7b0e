package parallax

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"
)

// mockRig records every Apply call.
type mockRig struct {
	mu      sync.Mutex
	applied int
	frustum Frustum
	eye     Eye
}

func (m *mockRig) Apply(f Frustum, eye Eye) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applied++
	m.frustum = f
	m.eye = eye
}

func (m *mockRig) last() (int, Frustum, Eye) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.applied, m.frustum, m.eye
}

type mockRenderer struct {
	mu     sync.Mutex
	frames int
}

func (m *mockRenderer) Render() {
	m.mu.Lock()
	m.frames++
	m.mu.Unlock()
}

func TestDriver_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Projection.EyeDistance = 0

	if _, err := New(cfg, &mockRig{}); err == nil {
		t.Error("expected error for degenerate eye distance")
	}
}

func TestDriver_TickAppliesSolvedCamera(t *testing.T) {
	rig := &mockRig{}
	renderer := &mockRenderer{}

	d, err := New(DefaultConfig(), rig)
	if err != nil {
		t.Fatal(err)
	}
	d.SetRenderer(renderer)

	// No detection yet: first tick produces the centered frustum.
	d.Tick(16 * time.Millisecond)

	applied, f, eye := rig.last()
	if applied != 1 {
		t.Fatalf("expected 1 apply, got %d", applied)
	}
	if f.Left != -f.Right || f.Bottom != -f.Top {
		t.Errorf("expected symmetric frustum before any detection: %+v", f)
	}
	if eye.X != 0 || eye.Y != 0 {
		t.Errorf("expected centered eye, got %+v", eye)
	}

	renderer.mu.Lock()
	frames := renderer.frames
	renderer.mu.Unlock()
	if frames != 1 {
		t.Errorf("expected render delegate called once, got %d", frames)
	}

	// Feed a detection off to one side; the smoothed position lags
	// toward it and the frustum skews.
	d.SetTarget(Sample{CenterX: 1, CenterY: 0.5})
	for i := 0; i < 50; i++ {
		d.Tick(16 * time.Millisecond)
	}

	_, f, eye = rig.last()
	if eye.X >= 0 {
		t.Errorf("expected negative eyeX for right-of-frame face, got %v", eye.X)
	}
	if math.Abs(f.Left) >= math.Abs(f.Right) {
		t.Errorf("expected frustum shifted right, got %+v", f)
	}
}

func TestDriver_LastWriteWins(t *testing.T) {
	rig := &mockRig{}
	d, err := New(DefaultConfig(), rig)
	if err != nil {
		t.Fatal(err)
	}

	// Several detections between two ticks: only the last is observed.
	d.SetTarget(Sample{CenterX: 0.1, CenterY: 0.5})
	d.SetTarget(Sample{CenterX: 0.9, CenterY: 0.5})
	d.SetTarget(Sample{CenterX: 1.0, CenterY: 0.5})

	if got := d.Snapshot().Position; got.X != 0 {
		t.Fatalf("target must not move current before a tick, got %+v", got)
	}

	d.Tick(16 * time.Millisecond)

	// One advance at alpha toward x=1.
	want := DefaultConfig().Smoothing * 1.0
	if got := d.Snapshot().Position.X; math.Abs(got-want) > tol {
		t.Errorf("expected current.x %v after one tick, got %v", want, got)
	}
}

func TestDriver_FPSWindow(t *testing.T) {
	d, err := New(DefaultConfig(), &mockRig{})
	if err != nil {
		t.Fatal(err)
	}

	// Tick steadily past the rolling window; the computed rate must be
	// finite and positive (the window recomputes only after >=500ms of
	// elapsed time, so the divisor is never zero).
	deadline := time.Now().Add(700 * time.Millisecond)
	for time.Now().Before(deadline) {
		d.Tick(5 * time.Millisecond)
		time.Sleep(5 * time.Millisecond)
	}

	fps := d.FPS()
	if fps <= 0 || math.IsInf(fps, 0) || math.IsNaN(fps) {
		t.Errorf("expected finite positive fps, got %v", fps)
	}
}

func TestDriver_RunTransitions(t *testing.T) {
	d, err := New(DefaultConfig(), &mockRig{})
	if err != nil {
		t.Fatal(err)
	}

	if d.Snapshot().Running {
		t.Error("driver must start idle")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	time.Sleep(60 * time.Millisecond)
	if !d.Snapshot().Running {
		t.Error("expected running after Run starts")
	}

	cancel()
	<-done
	if d.Snapshot().Running {
		t.Error("expected idle after context cancel")
	}
}

func TestDriver_Tracking(t *testing.T) {
	d, err := New(DefaultConfig(), &mockRig{})
	if err != nil {
		t.Fatal(err)
	}

	if d.Tracking() {
		t.Error("must not report tracking before any detection")
	}

	d.SetTarget(Sample{CenterX: 0.5, CenterY: 0.5})
	if !d.Tracking() {
		t.Error("expected tracking right after a detection")
	}
}

func TestDriver_TuningClamps(t *testing.T) {
	d, err := New(DefaultConfig(), &mockRig{})
	if err != nil {
		t.Fatal(err)
	}

	d.SetTuningParams(TuningParams{Strength: 99, Smoothing: 99})

	got := d.GetTuningParams()
	if got.Strength != MaxStrength {
		t.Errorf("expected strength clamped to %v, got %v", MaxStrength, got.Strength)
	}
	if got.Smoothing != MaxSmoothing {
		t.Errorf("expected smoothing clamped to %v, got %v", MaxSmoothing, got.Smoothing)
	}

	// Zero values leave the current setting untouched.
	d.SetTuningParams(TuningParams{EyeDistance: 7.5})
	got = d.GetTuningParams()
	if got.Strength != MaxStrength || got.EyeDistance != 7.5 {
		t.Errorf("unexpected params after partial update: %+v", got)
	}
}

func TestDriver_Recenter(t *testing.T) {
	d, err := New(DefaultConfig(), &mockRig{})
	if err != nil {
		t.Fatal(err)
	}

	d.SetTarget(Sample{CenterX: 1, CenterY: 1})
	for i := 0; i < 10; i++ {
		d.Tick(16 * time.Millisecond)
	}
	if d.Snapshot().Position.X == 0 {
		t.Fatal("expected displaced position before recenter")
	}

	d.Recenter()
	if d.Snapshot().Position != (Position{}) {
		t.Errorf("expected origin after recenter, got %+v", d.Snapshot().Position)
	}
}
