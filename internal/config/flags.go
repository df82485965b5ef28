package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed    = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen  = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth       = flag.Int("width", 0, "Window width")
	flagHeight      = flag.Int("height", 0, "Window height")
	flagSeed        = flag.Int64("seed", 0, "RNG seed for prop scattering and whale wander (0 = time-based)")
	flagWorldRadius = flag.Float64("world-radius", 0, "Radius of the explorable disc")
	flagFrames      = flag.Int("frames", 0, "Frames to simulate in trace mode")
	flagOut         = flag.String("out", "", "Trace output path")
	flagCompress    = flag.Bool("compress", false, "zstd-compress the trace")
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
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagSeed != 0 {
		cfg.World.Seed = *flagSeed
	}
	if *flagWorldRadius > 0 {
		cfg.World.Radius = float32(*flagWorldRadius)
	}
	if *flagFrames > 0 {
		cfg.Trace.Frames = *flagFrames
	}
	if *flagOut != "" {
		cfg.Trace.Output = *flagOut
	}
	if *flagCompress {
		cfg.Trace.Compress = true
	}
}
