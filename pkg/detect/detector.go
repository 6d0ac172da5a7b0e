// Package detect provides face detection for the window effect.
// The rest of the system consumes only the normalized face center of
// the best detection; everything else here exists to produce it well.
package detect

// Face represents a detected face. Coordinates are normalized to [0,1]
// relative to the source frame.
type Face struct {
	X, Y       float64 // Top-left of the bounding box
	W, H       float64 // Width and height
	Confidence float64 // Detection confidence (0-1)

	// Eye landmark positions, when the backend provides them.
	RightEyeX, RightEyeY float64
	LeftEyeX, LeftEyeY   float64
	HasLandmarks         bool
}

// Center returns the center point of the bounding box.
func (f Face) Center() (x, y float64) {
	return f.X + f.W/2, f.Y + f.H/2
}

// EyeMidpoint returns the point between the two eyes when landmarks are
// available, falling back to the bounding-box center otherwise. For a
// head-coupled display this is a closer proxy for the viewer's eye than
// the box center, which sits nearer the nose.
func (f Face) EyeMidpoint() (x, y float64) {
	if !f.HasLandmarks {
		return f.Center()
	}
	return (f.RightEyeX + f.LeftEyeX) / 2, (f.RightEyeY + f.LeftEyeY) / 2
}

// Area returns the area of the bounding box.
func (f Face) Area() float64 {
	return f.W * f.H
}

// Detector is the interface for face detection backends.
type Detector interface {
	// Detect finds faces in a JPEG frame and returns their positions.
	Detect(jpeg []byte) ([]Face, error)

	// Close releases resources.
	Close() error
}

// Config holds detector configuration.
type Config struct {
	ModelPath        string  // Path to ONNX model
	ConfidenceThresh float64 // Minimum confidence (default 0.5)
	InputWidth       int     // Model input width
	InputHeight      int     // Model input height
}

// DefaultConfig returns production defaults for YuNet.
func DefaultConfig() Config {
	return Config{
		ModelPath:        "models/face_detection_yunet.onnx",
		ConfidenceThresh: 0.5,
		InputWidth:       320,
		InputHeight:      320,
	}
}

// SelectBest picks the face to track from multiple detections.
// Priority: confidence * 0.7 + relative area * 0.3. The closest
// confident face wins, which is the viewer standing at the display.
// Additional faces are ignored entirely.
func SelectBest(faces []Face) *Face {
	if len(faces) == 0 {
		return nil
	}

	if len(faces) == 1 {
		return &faces[0]
	}

	maxArea := 0.0
	for _, f := range faces {
		if f.Area() > maxArea {
			maxArea = f.Area()
		}
	}

	bestScore := -1.0
	var best *Face

	for i := range faces {
		score := faces[i].Confidence*0.7 + (faces[i].Area()/maxArea)*0.3
		if score > bestScore {
			bestScore = score
			best = &faces[i]
		}
	}

	return best
}
