package config

import (
	"path/filepath"
	"testing"
)

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.VR.PixelsPerTanUnit = 384
	cfg.Graphics.VSync = false

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}

	if loaded.VR.PixelsPerTanUnit != 384 {
		t.Errorf("expected 384 pixels per tan unit, got %f", loaded.VR.PixelsPerTanUnit)
	}
	if loaded.Graphics.VSync {
		t.Error("expected vsync false after round trip")
	}
}
