// Package whale steers the autonomous whale around the seabed.
//
// The agent starts Unloaded and does nothing until its visual bundle is
// delivered. From then on it wanders between random waypoints inside the
// world disc, easing its velocity toward each one and bobbing gently while
// staying inside its altitude band and above the seabed.
package whale

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/seabed/internal/animation"
	"github.com/Faultbox/seabed/internal/assets"
	"github.com/Faultbox/seabed/internal/logger"
	"github.com/Faultbox/seabed/pkg/math"
)

// State is the lifecycle phase of the agent.
type State int

const (
	Unloaded State = iota
	Wandering
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Wandering:
		return "wandering"
	default:
		return "unknown"
	}
}

// Steering constants.
const (
	ArriveDistance = 5.0  // Retarget when closer than this to the target
	WanderDisc     = 0.85 // Waypoints lie within this fraction of the world radius
	EscapeDisc     = 0.97 // Beyond this fraction the agent turns back inward
	HomeDisc       = 0.15 // Escape targets lie within this fraction of the world radius

	retargetMin = 1.2
	retargetMax = 5.2
	escapeMin   = 0.5
	escapeMax   = 1.5

	escapeAltitudeJitter = 4.0
	wobbleFrequency      = 1.6
	facingEpsilon        = 1e-4
	seekEpsilon          = 1e-4
)

// Params are the tunable steering values.
type Params struct {
	Speed                 float32
	TurnRate              float32 // Velocity easing rate, 1/s
	AltitudeMin           float32
	AltitudeMax           float32
	WobbleAmplitude       float32
	GroundClearanceMargin float32
	WorldRadius           float32
	SeafloorY             float32
}

// Bundle is everything the agent needs once its model has loaded. It is
// delivered exactly once.
type Bundle struct {
	Model        *assets.Model
	BottomOffset float32 // Distance from the pivot down to the lowest point, after scale
	Animation    animation.Player
}

// NewBundle prepares a bundle for model drawn at a uniform scale, playing the
// swim clip.
func NewBundle(model *assets.Model, scale float32) Bundle {
	return Bundle{
		Model:        model,
		BottomOffset: model.BottomOffset(scale),
		Animation:    animation.NewLooper(animation.Swim()),
	}
}

// Rand is the random source used for waypoints. *rand.Rand satisfies it.
type Rand interface {
	Float32() float32
}

// Agent is the whale's steering state.
type Agent struct {
	Params Params
	State  State

	Position      math.Vec3
	Velocity      math.Vec3
	Target        math.Vec3
	Facing        math.Vec3
	RetargetTimer float32
	WobblePhase   float32
	BottomOffset  float32

	Bundle *Bundle

	// Retargets counts waypoint picks, escapes included.
	Retargets int

	rng Rand
	log *zap.Logger
}

// New creates an unloaded agent at start moving with vel.
func New(p Params, start, vel math.Vec3, rng Rand) *Agent {
	facing := vel.Normalize()
	if facing.LengthSq() == 0 {
		facing = math.Vec3{Z: 1}
	}
	return &Agent{
		Params:   p,
		State:    Unloaded,
		Position: start,
		Velocity: vel,
		Target:   start,
		Facing:   facing,
		rng:      rng,
		log:      logger.Named("whale"),
	}
}

// Ready delivers the loaded bundle and starts wandering. It returns false and
// changes nothing if a bundle was already delivered.
func (a *Agent) Ready(b Bundle) bool {
	if a.State != Unloaded {
		a.log.Warn("bundle delivered twice, ignoring")
		return false
	}

	a.Bundle = &b
	a.BottomOffset = b.BottomOffset
	a.WobblePhase = a.rng.Float32() * 2 * gomath.Pi
	a.Retarget()
	a.State = Wandering

	a.log.Info("whale ready",
		zap.Float32("bottomOffset", a.BottomOffset),
		zap.Float32("floor", a.MinAllowedY()),
		zap.Stringer("target", a.Target))
	return true
}

// Step advances the agent by dt seconds. elapsed is the total simulated
// time and drives the wobble. Step does nothing while Unloaded.
func (a *Agent) Step(dt, elapsed float32) {
	if a.State != Wandering {
		return
	}
	p := &a.Params

	a.RetargetTimer -= dt
	if a.Position.Distance(a.Target) < ArriveDistance || a.RetargetTimer <= 0 {
		a.Retarget()
	}

	var desired math.Vec3
	if to := a.Target.Sub(a.Position); to.Length() > seekEpsilon {
		desired = to.Normalize().Scale(p.Speed)
	}
	blend := float32(1 - gomath.Exp(float64(-p.TurnRate*dt)))
	a.Velocity = a.Velocity.Add(desired.Sub(a.Velocity).Scale(blend))

	a.Position = a.Position.Add(a.Velocity.Scale(dt))

	if a.Position.XZ().Length() > EscapeDisc*p.WorldRadius {
		a.escape()
	}

	a.Position.Y += float32(gomath.Sin(float64(elapsed*wobbleFrequency+a.WobblePhase))) * p.WobbleAmplitude
	a.Position.Y = math.Clamp(a.Position.Y, p.AltitudeMin, p.AltitudeMax)
	if floor := a.MinAllowedY(); a.Position.Y < floor {
		a.Position.Y = floor
	}

	if a.Velocity.Length() > facingEpsilon {
		a.Facing = a.Velocity.Normalize()
	}
}

// MinAllowedY is the lowest pivot height that keeps the model off the seabed.
func (a *Agent) MinAllowedY() float32 {
	return a.Params.SeafloorY + a.BottomOffset + a.Params.GroundClearanceMargin
}

// Retarget picks a new waypoint uniformly inside the wander disc and resets
// the retarget timer.
func (a *Agent) Retarget() {
	p := &a.Params
	r := WanderDisc * p.WorldRadius * float32(gomath.Sqrt(float64(a.rng.Float32())))
	theta := a.rng.Float32() * 2 * gomath.Pi

	a.Target = math.Vec3{
		X: r * float32(gomath.Cos(float64(theta))),
		Y: p.AltitudeMin + a.rng.Float32()*(p.AltitudeMax-p.AltitudeMin),
		Z: r * float32(gomath.Sin(float64(theta))),
	}
	a.RetargetTimer = retargetMin + a.rng.Float32()*(retargetMax-retargetMin)
	a.Retargets++
}

// escape turns the agent back toward the middle of the world.
func (a *Agent) escape() {
	p := &a.Params
	r := HomeDisc * p.WorldRadius * float32(gomath.Sqrt(float64(a.rng.Float32())))
	theta := a.rng.Float32() * 2 * gomath.Pi
	dy := (a.rng.Float32()*2 - 1) * escapeAltitudeJitter

	a.Target = math.Vec3{
		X: r * float32(gomath.Cos(float64(theta))),
		Y: math.Clamp(a.Position.Y+dy, p.AltitudeMin, p.AltitudeMax),
		Z: r * float32(gomath.Sin(float64(theta))),
	}
	a.RetargetTimer = escapeMin + a.rng.Float32()*(escapeMax-escapeMin)
	a.Retargets++

	a.log.Debug("whale escaping boundary", zap.Stringer("pos", a.Position), zap.Stringer("target", a.Target))
}

// Transform returns the model matrix placing the whale at its position and
// facing. scale is the uniform model scale.
func (a *Agent) Transform(scale float32) math.Mat4 {
	t := math.Translate(a.Position.X, a.Position.Y, a.Position.Z)
	return t.Mul(math.Orient(a.Facing, math.Up)).Mul(math.Scale(scale, scale, scale))
}
