// Package config handles scene configuration loading and management.
package config

import (
	"errors"
	"fmt"
	gomath "math"
	"time"
)

// Config holds all scene settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	World    WorldConfig    `yaml:"world"`
	Player   PlayerConfig   `yaml:"player"`
	Whale    WhaleConfig    `yaml:"whale"`
	Props    PropsConfig    `yaml:"props"`
	Logging  LoggingConfig  `yaml:"logging"`
	Trace    TraceConfig    `yaml:"trace"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FOV        float32 `yaml:"fov"` // Vertical field of view in degrees
}

// WorldConfig holds the bounds of the explorable disc.
type WorldConfig struct {
	Radius     float32 `yaml:"radius"`
	SeafloorY  float32 `yaml:"seafloor_y"`
	MaxFrameDT float32 `yaml:"max_frame_dt"` // Upper bound on a single simulation step, seconds
	Seed       int64   `yaml:"seed"`         // 0 = time-based
}

// PlayerConfig holds first-person movement settings.
type PlayerConfig struct {
	Start           [3]float32 `yaml:"start"`
	Radius          float32    `yaml:"radius"` // Collision radius against props
	Speed           float32    `yaml:"speed"`
	VertSpeed       float32    `yaml:"vert_speed"`
	MinY            float32    `yaml:"min_y"`
	MaxY            float32    `yaml:"max_y"`
	LookSensitivity float32    `yaml:"look_sensitivity"` // Radians per pixel of mouse motion
}

// WhaleConfig holds the wandering whale settings.
type WhaleConfig struct {
	Start                 [3]float32    `yaml:"start"`
	InitialVelocity       [3]float32    `yaml:"initial_velocity"`
	Speed                 float32       `yaml:"speed"`
	TurnRate              float32       `yaml:"turn_rate"`
	AltitudeMin           float32       `yaml:"altitude_min"`
	AltitudeMax           float32       `yaml:"altitude_max"`
	WobbleAmplitude       float32       `yaml:"wobble_amplitude"`
	GroundClearanceMargin float32       `yaml:"ground_clearance_margin"`
	Scale                 float32       `yaml:"scale"`
	LoadDelay             time.Duration `yaml:"load_delay"` // Simulated asset latency before the whale appears
}

// PropsConfig holds seabed prop scattering settings.
type PropsConfig struct {
	Extent          float32       `yaml:"extent"`           // Props spawn in [-extent, extent] on X and Z
	FootprintFactor float32       `yaml:"footprint_factor"` // Collision radius = max(size.x, size.z) * factor
	Spawns          []SpawnConfig `yaml:"spawns"`
}

// SpawnConfig describes one batch of identical props.
type SpawnConfig struct {
	Model    string  `yaml:"model"`
	Count    int     `yaml:"count"`
	ScaleMin float32 `yaml:"scale_min"`
	ScaleMax float32 `yaml:"scale_max"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// TraceConfig holds headless trace settings.
type TraceConfig struct {
	Frames   int     `yaml:"frames"`
	FrameDT  float32 `yaml:"frame_dt"`
	Output   string  `yaml:"output"`
	Compress bool    `yaml:"compress"`
	TurnRate float32 `yaml:"turn_rate"` // Scripted camera yaw rate, radians per second
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FOV:        70,
		},
		World: WorldConfig{
			Radius:     250,
			SeafloorY:  0,
			MaxFrameDT: 0.033,
		},
		Player: PlayerConfig{
			Start:           [3]float32{0, 20, 0},
			Radius:          1.5,
			Speed:           12,
			VertSpeed:       9,
			MinY:            1.6,
			MaxY:            70,
			LookSensitivity: 0.002,
		},
		Whale: WhaleConfig{
			Start:                 [3]float32{0, 16, 0},
			InitialVelocity:       [3]float32{1, 2, 0},
			Speed:                 9,
			TurnRate:              2.6,
			AltitudeMin:           10,
			AltitudeMax:           30,
			WobbleAmplitude:       0.015,
			GroundClearanceMargin: 0.8,
			Scale:                 3.2,
			LoadDelay:             500 * time.Millisecond,
		},
		Props: PropsConfig{
			Extent:          200,
			FootprintFactor: 0.4,
			Spawns: []SpawnConfig{
				{Model: "kelp", Count: 200, ScaleMin: 5, ScaleMax: 5},
				{Model: "rock1", Count: 40, ScaleMin: 50, ScaleMax: 100},
				{Model: "rock2", Count: 40, ScaleMin: 50, ScaleMax: 100},
				{Model: "rock3", Count: 40, ScaleMin: 50, ScaleMax: 100},
				{Model: "coral1", Count: 15, ScaleMin: 30, ScaleMax: 50},
				{Model: "coral2", Count: 10, ScaleMin: 10, ScaleMax: 25},
				{Model: "starfish", Count: 30, ScaleMin: 1, ScaleMax: 1},
			},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Trace: TraceConfig{
			Frames:   3600,
			FrameDT:  1.0 / 60,
			Output:   "trace.csv",
			Compress: false,
			TurnRate: 0.35,
		},
	}
}

// Validate reports settings the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.World.Radius <= 0 {
		errs = append(errs, fmt.Errorf("world.radius must be positive, got %v", c.World.Radius))
	}
	if c.World.MaxFrameDT <= 0 {
		errs = append(errs, fmt.Errorf("world.max_frame_dt must be positive, got %v", c.World.MaxFrameDT))
	}
	if c.Player.Radius <= 0 {
		errs = append(errs, fmt.Errorf("player.radius must be positive, got %v", c.Player.Radius))
	}
	if c.Player.MinY > c.Player.MaxY {
		errs = append(errs, fmt.Errorf("player.min_y (%v) exceeds player.max_y (%v)", c.Player.MinY, c.Player.MaxY))
	}
	if y := c.Player.Start[1]; y < c.Player.MinY || y > c.Player.MaxY {
		errs = append(errs, fmt.Errorf("player.start height %v is outside [%v, %v]", y, c.Player.MinY, c.Player.MaxY))
	}
	if d := gomath.Hypot(float64(c.Player.Start[0]), float64(c.Player.Start[2])); d > float64(c.World.Radius) {
		errs = append(errs, fmt.Errorf("player.start is %.2f from the centre, beyond world.radius %v", d, c.World.Radius))
	}
	if c.Whale.AltitudeMin > c.Whale.AltitudeMax {
		errs = append(errs, fmt.Errorf("whale.altitude_min (%v) exceeds whale.altitude_max (%v)", c.Whale.AltitudeMin, c.Whale.AltitudeMax))
	}
	if c.Whale.Scale <= 0 {
		errs = append(errs, fmt.Errorf("whale.scale must be positive, got %v", c.Whale.Scale))
	}
	for i, s := range c.Props.Spawns {
		if s.Model == "" {
			errs = append(errs, fmt.Errorf("props.spawns[%d]: model name is empty", i))
		}
		if s.ScaleMin > s.ScaleMax {
			errs = append(errs, fmt.Errorf("props.spawns[%d] (%s): scale_min exceeds scale_max", i, s.Model))
		}
	}

	return errors.Join(errs...)
}
