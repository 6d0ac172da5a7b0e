package parallax

import (
	"math"
	"testing"
)

func TestEyeState_SetTarget(t *testing.T) {
	tests := []struct {
		name    string
		mirrorX bool
		invertY bool
		sample  Sample
		want    Position
	}{
		{
			name:    "frame center maps to origin",
			mirrorX: true,
			sample:  Sample{CenterX: 0.5, CenterY: 0.5},
			want:    Position{0, 0},
		},
		{
			name:    "top-left corner",
			mirrorX: true,
			sample:  Sample{CenterX: 0, CenterY: 0},
			want:    Position{-1, -1},
		},
		{
			name:    "bottom-right corner",
			mirrorX: true,
			sample:  Sample{CenterX: 1, CenterY: 1},
			want:    Position{1, 1},
		},
		{
			name:    "unmirrored feed flips x",
			mirrorX: false,
			sample:  Sample{CenterX: 1, CenterY: 0.5},
			want:    Position{-1, 0},
		},
		{
			name:    "inverted y flips vertical",
			mirrorX: true,
			invertY: true,
			sample:  Sample{CenterX: 0.5, CenterY: 1},
			want:    Position{0, -1},
		},
		{
			name:    "out of range sample is clamped",
			mirrorX: true,
			sample:  Sample{CenterX: 1.7, CenterY: -0.3},
			want:    Position{1, -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewEyeState(tt.mirrorX, tt.invertY)
			s.SetTarget(tt.sample)
			got := s.Target()
			if math.Abs(got.X-tt.want.X) > tol || math.Abs(got.Y-tt.want.Y) > tol {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEyeState_AdvanceConverges(t *testing.T) {
	s := NewEyeState(true, false)
	s.SetTarget(Sample{CenterX: 1, CenterY: 0.5}) // target x = 1

	// With alpha=0.15 the residual after n steps is (1-0.15)^n;
	// 20 steps leaves 0.85^20 ≈ 0.039, so current must exceed 0.95.
	for i := 0; i < 20; i++ {
		s.Advance(0.15)
	}

	if s.Current().X <= 0.95 {
		t.Errorf("expected current.x > 0.95 after 20 steps, got %v", s.Current().X)
	}
}

func TestEyeState_AdvanceNoOvershoot(t *testing.T) {
	s := NewEyeState(true, false)
	s.SetTarget(Sample{CenterX: 1, CenterY: 1})

	prev := s.Current().X
	for i := 0; i < 200; i++ {
		cur := s.Advance(0.35)
		if cur.X > 1+tol || cur.Y > 1+tol {
			t.Fatalf("current escaped [-1,1]: %+v", cur)
		}
		if cur.X < prev-tol {
			t.Fatalf("current moved away from a held target at step %d", i)
		}
		prev = cur.X
	}
}

func TestEyeState_AdvanceBounded(t *testing.T) {
	s := NewEyeState(true, false)

	// Alternate the target between the extremes; current must stay
	// inside [-1,1] because every update is a convex combination.
	for i := 0; i < 100; i++ {
		if i%2 == 0 {
			s.SetTarget(Sample{CenterX: 1, CenterY: 1})
		} else {
			s.SetTarget(Sample{CenterX: 0, CenterY: 0})
		}
		cur := s.Advance(0.5)
		if math.Abs(cur.X) > 1+tol || math.Abs(cur.Y) > 1+tol {
			t.Fatalf("current escaped [-1,1]: %+v", cur)
		}
	}
}

func TestEyeState_NoDetectionHoldsTarget(t *testing.T) {
	s := NewEyeState(true, false)

	// No SetTarget yet: target stays at origin, advance is a no-op.
	cur := s.Advance(0.15)
	if cur.X != 0 || cur.Y != 0 {
		t.Errorf("expected origin before first detection, got %+v", cur)
	}

	s.SetTarget(Sample{CenterX: 0.75, CenterY: 0.5})
	s.Advance(0.15)
	mid := s.Current()

	// A frame with no face never calls SetTarget; the state keeps
	// converging toward the last target.
	s.Advance(0.15)
	if s.Current().X <= mid.X {
		t.Error("expected continued convergence toward held target")
	}
}

func TestEyeState_Reset(t *testing.T) {
	s := NewEyeState(true, false)
	s.SetTarget(Sample{CenterX: 0.9, CenterY: 0.9})
	s.Advance(0.5)
	s.Reset()

	if s.Current() != (Position{}) || s.Target() != (Position{}) {
		t.Errorf("expected origin after reset, got cur=%+v tgt=%+v", s.Current(), s.Target())
	}
}
