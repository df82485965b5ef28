package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Graphics
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}

	// World
	if cfg.World.Radius != 250 {
		t.Errorf("expected world radius 250, got %f", cfg.World.Radius)
	}
	if cfg.World.MaxFrameDT != 0.033 {
		t.Errorf("expected max frame dt 0.033, got %f", cfg.World.MaxFrameDT)
	}

	// Whale
	if cfg.Whale.Speed != 9 {
		t.Errorf("expected whale speed 9, got %f", cfg.Whale.Speed)
	}
	if cfg.Whale.AltitudeMin >= cfg.Whale.AltitudeMax {
		t.Errorf("expected altitude band min < max, got [%f, %f]", cfg.Whale.AltitudeMin, cfg.Whale.AltitudeMax)
	}

	// Props
	total := 0
	for _, s := range cfg.Props.Spawns {
		total += s.Count
	}
	if total != 375 {
		t.Errorf("expected 375 props in default spawn table, got %d", total)
	}

	// Logging
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true

world:
  radius: 120
  seed: 42

whale:
  speed: 6.5
  load_delay: 2s

props:
  spawns:
    - model: kelp
      count: 12
      scale_min: 4
      scale_max: 6

logging:
  level: "debug"
  log_file: "seabed.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.World.Radius != 120 {
		t.Errorf("expected radius 120, got %f", cfg.World.Radius)
	}
	if cfg.World.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.World.Seed)
	}
	if cfg.Whale.Speed != 6.5 {
		t.Errorf("expected whale speed 6.5, got %f", cfg.Whale.Speed)
	}
	if cfg.Whale.LoadDelay != 2*time.Second {
		t.Errorf("expected load delay 2s, got %v", cfg.Whale.LoadDelay)
	}
	// Untouched fields keep their defaults
	if cfg.Whale.TurnRate != 2.6 {
		t.Errorf("expected default turn rate 2.6, got %f", cfg.Whale.TurnRate)
	}
	if len(cfg.Props.Spawns) != 1 || cfg.Props.Spawns[0].Count != 12 {
		t.Errorf("expected spawn table replaced by file, got %+v", cfg.Props.Spawns)
	}
	if cfg.Logging.LogFile != "seabed.log" {
		t.Errorf("expected log file 'seabed.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
world:
  radius: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero radius", func(c *Config) { c.World.Radius = 0 }, true},
		{"negative max dt", func(c *Config) { c.World.MaxFrameDT = -1 }, true},
		{"zero player radius", func(c *Config) { c.Player.Radius = 0 }, true},
		{"inverted player band", func(c *Config) { c.Player.MinY, c.Player.MaxY = 50, 10 }, true},
		{"inverted whale band", func(c *Config) { c.Whale.AltitudeMin, c.Whale.AltitudeMax = 40, 20 }, true},
		{"degenerate whale band", func(c *Config) { c.Whale.AltitudeMin, c.Whale.AltitudeMax = 20, 20 }, false},
		{"player start below band", func(c *Config) { c.Player.Start[1] = 0.5 }, true},
		{"player start above band", func(c *Config) { c.Player.Start[1] = 90 }, true},
		{"player start outside world", func(c *Config) { c.Player.Start = [3]float32{200, 20, 200} }, true},
		{"player start on boundary", func(c *Config) { c.Player.Start = [3]float32{250, 20, 0} }, false},
		{"empty spawn model", func(c *Config) { c.Props.Spawns[0].Model = "" }, true},
		{"inverted spawn scale", func(c *Config) { c.Props.Spawns[1].ScaleMin = 200 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.World.Seed = 7
	cfg.Whale.LoadDelay = 3 * time.Second
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.World.Seed != 7 {
		t.Errorf("expected seed 7 after reload, got %d", loaded.World.Seed)
	}
	if loaded.Whale.LoadDelay != 3*time.Second {
		t.Errorf("expected load delay 3s after reload, got %v", loaded.Whale.LoadDelay)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "seed flag",
			setup: func() { *flagSeed = 99 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.World.Seed != 99 {
					t.Errorf("expected seed 99, got %d", cfg.World.Seed)
				}
			},
			teardown: func() { *flagSeed = 0 },
		},
		{
			name:  "world radius flag",
			setup: func() { *flagWorldRadius = 80 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.World.Radius != 80 {
					t.Errorf("expected radius 80, got %f", cfg.World.Radius)
				}
			},
			teardown: func() { *flagWorldRadius = 0 },
		},
		{
			name: "trace flags",
			setup: func() {
				*flagFrames = 120
				*flagOut = "out/run.csv.zst"
				*flagCompress = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Trace.Frames != 120 {
					t.Errorf("expected 120 frames, got %d", cfg.Trace.Frames)
				}
				if cfg.Trace.Output != "out/run.csv.zst" {
					t.Errorf("expected output override, got %s", cfg.Trace.Output)
				}
				if !cfg.Trace.Compress {
					t.Error("expected compression enabled")
				}
			},
			teardown: func() {
				*flagFrames = 0
				*flagOut = ""
				*flagCompress = false
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
world:
  radius: 150
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from flag, height and radius from file
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
	if cfg.World.Radius != 150 {
		t.Errorf("expected radius 150 from file, got %f", cfg.World.Radius)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("player:\n  min_y: 90\n  max_y: 10\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected Load to reject inverted player band")
	}
}
