// Package config handles demo configuration loading and management.
package config

// Config holds all demo settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	VR       VRConfig       `yaml:"vr"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings for the mirror window.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	// MirrorDivisor scales the eye buffer down to the window mirror.
	MirrorDivisor int `yaml:"mirror_divisor"`
}

// VRConfig holds emulated headset settings.
type VRConfig struct {
	// PixelsPerTanUnit converts fov tangent units to eye buffer pixels.
	PixelsPerTanUnit float32 `yaml:"pixels_per_tan_unit"`
	SwapChainLength  int     `yaml:"swap_chain_length"`
	HeadMotion       bool    `yaml:"head_motion"`
	HandMotion       bool    `yaml:"hand_motion"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:         1280,
			Height:        720,
			Fullscreen:    false,
			VSync:         true,
			MirrorDivisor: 4,
		},
		VR: VRConfig{
			PixelsPerTanUnit: 512,
			SwapChainLength:  3,
			HeadMotion:       true,
			HandMotion:       true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
