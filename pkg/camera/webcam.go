package camera

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// Webcam captures JPEG frames from a local video device via OpenCV.
// One capture stream feeds both detection and the dashboard preview;
// MirrorPreview is surfaced through the camera API for the front-end
// to apply, so detection always sees the frame as captured.
type Webcam struct {
	mu     sync.Mutex
	cap    *gocv.VideoCapture
	frame  gocv.Mat
	config Config
}

// OpenWebcam opens the capture device and applies the config.
func OpenWebcam(deviceID int, cfg Config) (*Webcam, error) {
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid camera config: %v", errs)
	}

	cap, err := gocv.OpenVideoCapture(deviceID)
	if err != nil {
		return nil, fmt.Errorf("open device %d: %w", deviceID, err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return nil, fmt.Errorf("device %d did not open", deviceID)
	}

	cap.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	cap.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	cap.Set(gocv.VideoCaptureFPS, float64(cfg.Framerate))

	return &Webcam{
		cap:    cap,
		frame:  gocv.NewMat(),
		config: cfg,
	}, nil
}

// CaptureJPEG grabs the next frame and returns it JPEG-encoded.
func (w *Webcam) CaptureJPEG() ([]byte, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cap == nil {
		return nil, fmt.Errorf("webcam closed")
	}

	if ok := w.cap.Read(&w.frame); !ok || w.frame.Empty() {
		return nil, fmt.Errorf("no frame from device")
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, w.frame,
		[]int{gocv.IMWriteJpegQuality, w.config.Quality})
	if err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	defer buf.Close()

	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())
	return data, nil
}

// ApplyConfig updates the capture settings on the open device.
func (w *Webcam) ApplyConfig(cfg Config) error {
	if errs := cfg.Validate(); len(errs) > 0 {
		return fmt.Errorf("invalid camera config: %v", errs)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cap == nil {
		return fmt.Errorf("webcam closed")
	}

	w.cap.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	w.cap.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	w.cap.Set(gocv.VideoCaptureFPS, float64(cfg.Framerate))
	w.config = cfg

	return nil
}

// Close releases the device and frame buffer.
func (w *Webcam) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cap == nil {
		return nil
	}

	err := w.cap.Close()
	w.frame.Close()
	w.cap = nil
	return err
}
