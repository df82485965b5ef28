package scene

import (
	"github.com/Faultbox/seabed/internal/assets"
	"github.com/Faultbox/seabed/pkg/math"
)

// Transform places a prop in the world.
type Transform struct {
	Position math.Vec3
	Yaw      float32 // Radians about +Y
	Scale    float32
}

// Matrix returns the model matrix: scale, then yaw, then translation.
func (t Transform) Matrix() math.Mat4 {
	return math.Translate(t.Position.X, t.Position.Y, t.Position.Z).
		Mul(math.RotateY(t.Yaw)).
		Mul(math.Scale(t.Scale, t.Scale, t.Scale))
}

// Footprint is the collision cylinder derived from a prop's world bounds.
type Footprint struct {
	Center math.Vec3
	Radius float32
	Height float32
}

// Prop links an entity to the model it draws.
type Prop struct {
	Model *assets.Model
}
