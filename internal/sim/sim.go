// Package sim drives one seabed session frame by frame.
package sim

import (
	"github.com/Faultbox/seabed/internal/config"
	"github.com/Faultbox/seabed/internal/whale"
	"github.com/Faultbox/seabed/internal/world"
	"github.com/Faultbox/seabed/pkg/math"
)

// Context is the complete mutable state of a session. Nothing outside it is
// touched by Frame, so several sessions can coexist.
type Context struct {
	Registry *world.Registry
	Mover    *world.Mover
	Whale    *whale.Agent

	Player math.Vec3

	Elapsed float32 // Simulated seconds
	Frames  int

	maxDT float32
}

// New builds a session from cfg. rng drives the whale's waypoints.
func New(cfg *config.Config, rng whale.Rand) *Context {
	reg := world.NewRegistry(cfg.Player.Radius)
	mover := world.NewMover(world.MoveParams{
		Speed:       cfg.Player.Speed,
		VertSpeed:   cfg.Player.VertSpeed,
		MinY:        cfg.Player.MinY,
		MaxY:        cfg.Player.MaxY,
		WorldRadius: cfg.World.Radius,
	}, reg)

	w := cfg.Whale
	agent := whale.New(whale.Params{
		Speed:                 w.Speed,
		TurnRate:              w.TurnRate,
		AltitudeMin:           w.AltitudeMin,
		AltitudeMax:           w.AltitudeMax,
		WobbleAmplitude:       w.WobbleAmplitude,
		GroundClearanceMargin: w.GroundClearanceMargin,
		WorldRadius:           cfg.World.Radius,
		SeafloorY:             cfg.World.SeafloorY,
	}, vec(w.Start), vec(w.InitialVelocity), rng)

	return &Context{
		Registry: reg,
		Mover:    mover,
		Whale:    agent,
		Player:   vec(cfg.Player.Start),
		maxDT:    cfg.World.MaxFrameDT,
	}
}

// Deliver hands the loaded whale bundle to the agent. Only the first
// delivery takes effect.
func (c *Context) Deliver(b whale.Bundle) bool {
	return c.Whale.Ready(b)
}

// Frame advances the session by rawDT seconds of wall time and returns the
// step actually simulated. The step is clamped to [0, MaxFrameDT]. Order:
// whale animation, whale steering, then the player.
func (c *Context) Frame(rawDT float32, in world.Input) float32 {
	dt := math.Clamp(rawDT, 0, c.maxDT)
	c.Elapsed += dt
	c.Frames++

	if b := c.Whale.Bundle; b != nil && b.Animation != nil {
		b.Animation.Advance(dt)
	}
	c.Whale.Step(dt, c.Elapsed)
	c.Player = c.Mover.Step(c.Player, in, dt)

	return dt
}

// Snapshot is a read-only view of one frame for rendering and tracing.
type Snapshot struct {
	Frame       int
	Elapsed     float32
	DT          float32
	WhaleState  whale.State
	WhalePos    math.Vec3
	WhaleVel    math.Vec3
	WhaleTarget math.Vec3
	WhaleFacing math.Vec3
	Player      math.Vec3
}

// Snapshot captures the current poses. dt is the step last returned by Frame.
func (c *Context) Snapshot(dt float32) Snapshot {
	return Snapshot{
		Frame:       c.Frames,
		Elapsed:     c.Elapsed,
		DT:          dt,
		WhaleState:  c.Whale.State,
		WhalePos:    c.Whale.Position,
		WhaleVel:    c.Whale.Velocity,
		WhaleTarget: c.Whale.Target,
		WhaleFacing: c.Whale.Facing,
		Player:      c.Player,
	}
}

func vec(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
