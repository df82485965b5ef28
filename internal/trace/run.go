package trace

import (
	gomath "math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/seabed/internal/assets"
	"github.com/Faultbox/seabed/internal/config"
	"github.com/Faultbox/seabed/internal/logger"
	"github.com/Faultbox/seabed/internal/scene"
	"github.com/Faultbox/seabed/internal/sim"
	"github.com/Faultbox/seabed/internal/whale"
	"github.com/Faultbox/seabed/internal/world"
	"github.com/Faultbox/seabed/pkg/math"
)

// Script is the scripted pilot of a headless run: it always swims forward
// with the pointer captured while turning at a constant yaw rate.
type Script struct {
	TurnRate float32 // Radians per second
	yaw      float32
}

// Next returns the input for a frame of dt seconds.
func (s *Script) Next(dt float32) world.Input {
	s.yaw += s.TurnRate * dt
	sin, cos := gomath.Sincos(float64(s.yaw))
	return world.Input{
		Forward:  true,
		Captured: true,
		// Yaw zero faces -Z, matching the interactive camera.
		Facing: math.Vec3{X: float32(-sin), Z: float32(-cos)},
	}
}

// Run simulates cfg.Trace.Frames fixed steps and records each one. Props
// are scattered up front; the whale model is delivered once the simulated
// clock passes the configured load delay.
func Run(cfg *config.Config, rec *Recorder) error {
	log := logger.Named("trace")

	seed := cfg.World.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	models := assets.NewManager(0)
	ctx := sim.New(cfg, rand.New(rand.NewSource(seed)))

	placements, err := scene.Scatter(cfg.Props, cfg.World.SeafloorY, models, rand.New(rand.NewSource(seed+1)))
	if err != nil {
		return err
	}
	sc := scene.New()
	sc.Populate(placements, ctx.Registry)

	whaleModel, err := models.Load("whale")
	if err != nil {
		return err
	}
	delay := float32(cfg.Whale.LoadDelay.Seconds())

	log.Info("running",
		zap.Int64("seed", seed),
		zap.Int("frames", cfg.Trace.Frames),
		zap.Int("obstacles", ctx.Registry.Len()),
		zap.Strings("models", models.Names()),
	)

	script := Script{TurnRate: cfg.Trace.TurnRate}
	for i := 0; i < cfg.Trace.Frames; i++ {
		if ctx.Whale.State == whale.Unloaded && ctx.Elapsed >= delay {
			ctx.Deliver(whale.NewBundle(whaleModel, cfg.Whale.Scale))
		}

		dt := ctx.Frame(cfg.Trace.FrameDT, script.Next(cfg.Trace.FrameDT))
		if err := rec.Record(ctx.Snapshot(dt)); err != nil {
			return err
		}
	}

	log.Debug("finished", zap.Int("retargets", ctx.Whale.Retargets), zap.Stringer("player", ctx.Player))
	return nil
}
