package detect

import (
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"github.com/portalbox/go-portal/pkg/debug"
)

// YuNet uses OpenCV's FaceDetectorYN for face detection.
type YuNet struct {
	detector gocv.FaceDetectorYN
	config   Config
	mu       sync.Mutex // Protects inference
}

// NewYuNet creates a YuNet face detector using GoCV's built-in
// FaceDetectorYN. Fails fast if the model file is missing.
func NewYuNet(cfg Config) (*YuNet, error) {
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", cfg.ModelPath)
	}

	detector := gocv.NewFaceDetectorYNWithParams(
		cfg.ModelPath,
		"", // No config file needed for ONNX
		image.Pt(cfg.InputWidth, cfg.InputHeight),
		float32(cfg.ConfidenceThresh),
		0.3,  // NMS threshold
		5000, // Top K
		int(gocv.NetBackendDefault),
		int(gocv.NetTargetCPU),
	)

	return &YuNet{
		detector: detector,
		config:   cfg,
	}, nil
}

// Detect finds faces in the JPEG frame.
func (d *YuNet) Detect(jpeg []byte) ([]Face, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	img, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	defer img.Close()

	if img.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	imgW := float64(img.Cols())
	imgH := float64(img.Rows())

	// Match the detector input size to the frame
	d.detector.SetInputSize(image.Pt(img.Cols(), img.Rows()))

	faces := gocv.NewMat()
	defer faces.Close()

	d.detector.Detect(img, &faces)

	// YuNet output format (15 columns):
	// 0-3: x, y, w, h (bounding box in pixels)
	// 4-5: right eye, 6-7: left eye, 8-13: nose and mouth corners
	// 14: face score
	var found []Face
	for r := 0; r < faces.Rows(); r++ {
		found = append(found, Face{
			X:            float64(faces.GetFloatAt(r, 0)) / imgW,
			Y:            float64(faces.GetFloatAt(r, 1)) / imgH,
			W:            float64(faces.GetFloatAt(r, 2)) / imgW,
			H:            float64(faces.GetFloatAt(r, 3)) / imgH,
			RightEyeX:    float64(faces.GetFloatAt(r, 4)) / imgW,
			RightEyeY:    float64(faces.GetFloatAt(r, 5)) / imgH,
			LeftEyeX:     float64(faces.GetFloatAt(r, 6)) / imgW,
			LeftEyeY:     float64(faces.GetFloatAt(r, 7)) / imgH,
			HasLandmarks: true,
			Confidence:   float64(faces.GetFloatAt(r, 14)),
		})
	}

	if len(found) > 0 {
		debug.TrackLog("YuNet found %d face(s)\n", len(found))
	}

	return found, nil
}

// Close releases the detector resources.
func (d *YuNet) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.detector.Close()
	return nil
}
