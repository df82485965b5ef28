package world

import (
	"github.com/Faultbox/seabed/pkg/math"
)

// boundaryEpsilon keeps the boundary reprojection finite at the origin.
const boundaryEpsilon = 1e-6

// Input is one frame of player intent. It is passed by value.
type Input struct {
	Forward, Back, Left, Right bool
	Ascend, Descend            bool

	// Captured is set while the pointer is locked to the view. No movement
	// happens without it.
	Captured bool

	// Facing is the camera's world-space look direction.
	Facing math.Vec3
}

// Moving reports whether any movement key is held.
func (in Input) Moving() bool {
	return in.Forward || in.Back || in.Left || in.Right || in.Ascend || in.Descend
}

// MoveParams are the player locomotion constants.
type MoveParams struct {
	Speed       float32 // Horizontal units per second
	VertSpeed   float32 // Vertical units per second
	MinY        float32
	MaxY        float32
	WorldRadius float32
}

// Blocker answers point collision queries. *Registry implements it.
type Blocker interface {
	Blocked(p math.Vec3) bool
}

// Mover applies player input against a set of obstacles.
type Mover struct {
	Params  MoveParams
	Blocker Blocker
}

// NewMover creates a mover that collides against b.
func NewMover(params MoveParams, b Blocker) *Mover {
	return &Mover{Params: params, Blocker: b}
}

// Step returns the player position after one frame of input. A zero dt
// still clamps altitude and pulls the player back inside the world.
func (m *Mover) Step(pos math.Vec3, in Input, dt float32) math.Vec3 {
	if !in.Captured {
		return pos
	}
	if dt < 0 {
		dt = 0
	}

	var vertical float32
	if in.Ascend {
		vertical += m.Params.VertSpeed * dt
	}
	if in.Descend {
		vertical -= m.Params.VertSpeed * dt
	}

	return m.Move(pos, m.Wish(in).Scale(m.Params.Speed*dt), vertical)
}

// Wish returns the unit horizontal direction the held keys ask for, or zero.
func (m *Mover) Wish(in Input) math.Vec3 {
	forward := in.Facing.Horizontal().Normalize()
	right := forward.Cross(math.Up).Normalize()

	var wish math.Vec3
	if in.Forward {
		wish = wish.Add(forward)
	}
	if in.Back {
		wish = wish.Sub(forward)
	}
	if in.Right {
		wish = wish.Add(right)
	}
	if in.Left {
		wish = wish.Sub(right)
	}
	return wish.Normalize()
}

// Move resolves a horizontal displacement and a vertical offset from pos.
// A blocked move slides along whichever axis stays clear. The result is
// clamped to the altitude band and pulled back inside the world disc.
func (m *Mover) Move(pos, displacement math.Vec3, vertical float32) math.Vec3 {
	next := pos

	if displacement.X != 0 || displacement.Z != 0 {
		nx := pos.X + displacement.X
		nz := pos.Z + displacement.Z
		if !m.blocked(math.Vec3{X: nx, Y: pos.Y, Z: nz}) {
			next.X, next.Z = nx, nz
		} else {
			if !m.blocked(math.Vec3{X: nx, Y: pos.Y, Z: pos.Z}) {
				next.X = nx
			}
			if !m.blocked(math.Vec3{X: pos.X, Y: pos.Y, Z: nz}) {
				next.Z = nz
			}
		}
	}

	next.Y = math.Clamp(pos.Y+vertical, m.Params.MinY, m.Params.MaxY)

	if d := next.XZ().Length(); d > m.Params.WorldRadius {
		s := m.Params.WorldRadius / (d + boundaryEpsilon)
		next.X *= s
		next.Z *= s
	}
	return next
}

func (m *Mover) blocked(p math.Vec3) bool {
	return m.Blocker != nil && m.Blocker.Blocked(p)
}
