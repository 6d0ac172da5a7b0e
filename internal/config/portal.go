// Package config provides configuration helpers for go-portal commands.
package config

import (
	"os"
	"strconv"
)

// Defaults for the portal service.
const (
	DefaultPort      = "8090"
	DefaultModelPath = "models/face_detection_yunet.onnx"
	DefaultCameraID  = 0
)

// Port returns the HTTP port from PORTAL_PORT, or the default.
func Port() string {
	if p := os.Getenv("PORTAL_PORT"); p != "" {
		return p
	}
	return DefaultPort
}

// ModelPath returns the face detection model path from PORTAL_MODEL,
// or the default.
func ModelPath() string {
	if p := os.Getenv("PORTAL_MODEL"); p != "" {
		return p
	}
	return DefaultModelPath
}

// CameraID returns the capture device index from PORTAL_CAMERA, or the
// default. Non-numeric values fall back to the default.
func CameraID() int {
	if v := os.Getenv("PORTAL_CAMERA"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			return id
		}
	}
	return DefaultCameraID
}

// CounterURL returns the visitor counter endpoint from
// PORTAL_COUNTER_URL. Empty disables the counter.
func CounterURL() string {
	return os.Getenv("PORTAL_COUNTER_URL")
}
