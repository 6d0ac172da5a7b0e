package portal

import (
	"testing"
)

func TestWindowPreset(t *testing.T) {
	def := WindowPreset(PresetDefault)
	steady := WindowPreset(PresetSteady)
	responsive := WindowPreset(PresetResponsive)

	if steady.Smoothing >= def.Smoothing {
		t.Errorf("steady smoothing %v should be below default %v", steady.Smoothing, def.Smoothing)
	}
	if responsive.Smoothing <= def.Smoothing {
		t.Errorf("responsive smoothing %v should be above default %v", responsive.Smoothing, def.Smoothing)
	}
	if got := WindowPreset("no-such-preset"); got != def {
		t.Errorf("unknown preset should fall back to default, got %+v", got)
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Window.Err(); err != nil {
		t.Fatalf("default window config invalid: %v", err)
	}
	if errs := cfg.Camera.Validate(); len(errs) > 0 {
		t.Fatalf("default camera config invalid: %v", errs)
	}
	if cfg.DetectInterval <= 0 {
		t.Fatal("detect interval must be positive")
	}
}

func TestLoadEnvConfigOverrides(t *testing.T) {
	t.Setenv("PORTAL_PORT", "9000")
	t.Setenv("PORTAL_CAMERA", "2")
	t.Setenv("PORTAL_MODEL", "/tmp/model.onnx")
	t.Setenv("PORTAL_COUNTER_URL", "http://counter.local/hit")

	cfg := DefaultConfig()
	cfg.LoadEnvConfig()

	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.CameraID != 2 {
		t.Errorf("CameraID = %d, want 2", cfg.CameraID)
	}
	if cfg.Detect.ModelPath != "/tmp/model.onnx" {
		t.Errorf("ModelPath = %q", cfg.Detect.ModelPath)
	}
	if cfg.CounterURL != "http://counter.local/hit" {
		t.Errorf("CounterURL = %q", cfg.CounterURL)
	}
}

func TestLoadEnvConfigKeepsFlagValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Port = "7777"
	cfg.LoadEnvConfig()

	if cfg.Port != "7777" {
		t.Errorf("unset env clobbered flag value, Port = %q", cfg.Port)
	}
}
