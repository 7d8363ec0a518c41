package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagNoVSync    = flag.Bool("novsync", false, "Disable VSync")
	flagDensity    = flag.Float64("density", 0, "Eye buffer pixels per fov tangent unit")
	flagStaticHead = flag.Bool("static-head", false, "Disable the synthetic head motion")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagNoVSync {
		cfg.Graphics.VSync = false
	}
	if *flagDensity > 0 {
		cfg.VR.PixelsPerTanUnit = float32(*flagDensity)
	}
	if *flagStaticHead {
		cfg.VR.HeadMotion = false
	}
}
