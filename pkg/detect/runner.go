package detect

import (
	"context"
	"time"

	"github.com/portalbox/go-portal/internal/log"
)

// FrameSource supplies frames for detection.
type FrameSource interface {
	CaptureJPEG() ([]byte, error)
}

// Runner drives detection at a fixed rate: capture a frame, detect,
// pick the best face, and report its eye midpoint. A frame with no face
// reports nothing; the consumer keeps its last value (missing detection
// is graceful degradation, not an error).
type Runner struct {
	source   FrameSource
	detector Detector
	interval time.Duration

	// OnFace receives the normalized face center ([0,1] both axes)
	// for the best face of each processed frame.
	OnFace func(x, y float64)

	// OnFrame, when set, receives every captured frame. Used to feed
	// the dashboard preview without a second capture stream.
	OnFrame func(jpeg []byte)

	consecutiveMisses int
}

// NewRunner creates a detection runner.
func NewRunner(source FrameSource, detector Detector, interval time.Duration) *Runner {
	return &Runner{
		source:   source,
		detector: detector,
		interval: interval,
	}
}

// Run processes frames until the context is canceled.
func (r *Runner) Run(ctx context.Context) {
	log.Info("detection runner started", "interval", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.step()
		}
	}
}

// step processes a single frame. Split out for testing.
func (r *Runner) step() {
	frame, err := r.source.CaptureJPEG()
	if err != nil {
		log.Debug("frame capture failed", "error", err)
		return
	}

	if r.OnFrame != nil {
		r.OnFrame(frame)
	}

	faces, err := r.detector.Detect(frame)
	if err != nil {
		log.Warn("detection failed", "error", err)
		r.miss()
		return
	}

	best := SelectBest(faces)
	if best == nil {
		r.miss()
		return
	}

	r.consecutiveMisses = 0
	x, y := best.EyeMidpoint()
	if r.OnFace != nil {
		r.OnFace(x, y)
	}
}

func (r *Runner) miss() {
	r.consecutiveMisses++
	if r.consecutiveMisses == 5 {
		log.Info("lost face", "consecutive_misses", r.consecutiveMisses)
	}
}

// ConsecutiveMisses returns how many detections in a row found no face.
func (r *Runner) ConsecutiveMisses() int {
	return r.consecutiveMisses
}
