// Package camera provides the first-person view used to swim around.
package camera

import (
	gomath "math"

	"github.com/Faultbox/seabed/pkg/math"
)

// FirstPerson looks out from Position along Yaw and Pitch.
// Yaw zero faces -Z; positive pitch looks up.
type FirstPerson struct {
	Position math.Vec3
	Yaw      float32 // Radians
	Pitch    float32 // Radians

	MaxPitch    float32
	Sensitivity float32 // Radians per pixel of pointer motion

	FOV  float32 // Vertical field of view in degrees
	Near float32
	Far  float32
}

// NewFirstPerson creates a camera at pos with sensible limits.
func NewFirstPerson(pos math.Vec3, fov, sensitivity float32) *FirstPerson {
	return &FirstPerson{
		Position:    pos,
		MaxPitch:    1.5,
		Sensitivity: sensitivity,
		FOV:         fov,
		Near:        0.1,
		Far:         2000,
	}
}

// Look turns the camera by a pointer delta in pixels.
func (c *FirstPerson) Look(dx, dy float32) {
	c.Yaw -= dx * c.Sensitivity
	c.Pitch = math.Clamp(c.Pitch-dy*c.Sensitivity, -c.MaxPitch, c.MaxPitch)
	c.Yaw = float32(gomath.Remainder(float64(c.Yaw), 2*gomath.Pi))
}

// Forward returns the unit look direction.
func (c *FirstPerson) Forward() math.Vec3 {
	cp := float32(gomath.Cos(float64(c.Pitch)))
	return math.Vec3{
		X: -float32(gomath.Sin(float64(c.Yaw))) * cp,
		Y: float32(gomath.Sin(float64(c.Pitch))),
		Z: -float32(gomath.Cos(float64(c.Yaw))) * cp,
	}
}

// ViewMatrix returns the world-to-view transform.
func (c *FirstPerson) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.Forward()), math.Up)
}

// ProjectionMatrix returns the perspective projection for a viewport aspect.
func (c *FirstPerson) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(c.FOV*gomath.Pi/180, aspect, c.Near, c.Far)
}
