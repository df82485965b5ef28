package assets

import (
	gomath "math"

	"github.com/Faultbox/seabed/pkg/math"
)

// Part is a group of line segments sharing one pivot. Parts with a joint name
// are rotated about their pivot by the animation player.
type Part struct {
	Joint    string
	Parent   string // Joint this part's joint hangs from, if any
	Pivot    math.Vec3
	Segments []math.Vec3 // Pairs of endpoints
}

// Model is a wireframe mesh in model space.
type Model struct {
	Name   string
	Color  [3]float32
	Parts  []Part
	Bounds Bounds
}

// Part returns the part animated by joint.
func (m *Model) Part(joint string) (*Part, bool) {
	for i := range m.Parts {
		if m.Parts[i].Joint == joint {
			return &m.Parts[i], true
		}
	}
	return nil, false
}

// Bounds is an axis-aligned box.
type Bounds struct {
	Min, Max math.Vec3
}

// EmptyBounds returns an inverted box that any point will expand.
func EmptyBounds() Bounds {
	inf := float32(gomath.Inf(1))
	return Bounds{
		Min: math.Vec3{X: inf, Y: inf, Z: inf},
		Max: math.Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

// Expand grows the box to include p.
func (b *Bounds) Expand(p math.Vec3) {
	b.Min.X = min(b.Min.X, p.X)
	b.Min.Y = min(b.Min.Y, p.Y)
	b.Min.Z = min(b.Min.Z, p.Z)
	b.Max.X = max(b.Max.X, p.X)
	b.Max.Y = max(b.Max.Y, p.Y)
	b.Max.Z = max(b.Max.Z, p.Z)
}

// Size returns the box extents.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the box midpoint.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Offset returns the box moved by d.
func (b Bounds) Offset(d math.Vec3) Bounds {
	return Bounds{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// Vertices calls fn for every segment endpoint of the model.
func (m *Model) Vertices(fn func(p math.Vec3)) {
	for i := range m.Parts {
		for _, v := range m.Parts[i].Segments {
			fn(v)
		}
	}
}

// VertexCount returns the number of segment endpoints.
func (m *Model) VertexCount() int {
	n := 0
	for i := range m.Parts {
		n += len(m.Parts[i].Segments)
	}
	return n
}

// WorldBounds returns the tight box around the model's vertices after
// applying transform.
func (m *Model) WorldBounds(transform math.Mat4) Bounds {
	b := EmptyBounds()
	m.Vertices(func(p math.Vec3) {
		b.Expand(transform.TransformVec3(p))
	})
	return b
}

// BottomOffset is the distance from the pivot down to the model's lowest
// point once uniformly scaled.
func (m *Model) BottomOffset(scale float32) float32 {
	return -m.Bounds.Min.Y * scale
}

// finish computes model-space bounds.
func (m *Model) finish() *Model {
	m.Bounds = EmptyBounds()
	m.Vertices(m.Bounds.Expand)
	return m
}
