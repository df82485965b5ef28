// Package debug builds wireframe line geometry for the renderer.
package debug

import (
	gomath "math"

	"github.com/Faultbox/seabed/pkg/math"
)

// FloatsPerVertex is the interleaved layout: x, y, z, r, g, b.
const FloatsPerVertex = 6

// BoxVertexCount is the number of vertices in a box wireframe (12 edges x 2).
const BoxVertexCount = 24

// Color is linear RGB.
type Color [3]float32

// Lines accumulates line-list vertices.
type Lines struct {
	Data []float32
}

// Reset empties the buffer, keeping its capacity.
func (l *Lines) Reset() {
	l.Data = l.Data[:0]
}

// Count returns the number of vertices.
func (l *Lines) Count() int {
	return len(l.Data) / FloatsPerVertex
}

// Segment appends one line from a to b.
func (l *Lines) Segment(a, b math.Vec3, c Color) {
	l.Data = append(l.Data,
		a.X, a.Y, a.Z, c[0], c[1], c[2],
		b.X, b.Y, b.Z, c[0], c[1], c[2],
	)
}

// Box appends the 12 edges of an axis-aligned box.
func (l *Lines) Box(min, max math.Vec3, c Color) {
	corner := func(i int) math.Vec3 {
		p := min
		if i&1 != 0 {
			p.X = max.X
		}
		if i&2 != 0 {
			p.Y = max.Y
		}
		if i&4 != 0 {
			p.Z = max.Z
		}
		return p
	}
	// Corner pairs differing in exactly one bit
	for i := 0; i < 8; i++ {
		for bit := 1; bit < 8; bit <<= 1 {
			if i&bit == 0 {
				l.Segment(corner(i), corner(i|bit), c)
			}
		}
	}
}

// Circle appends a horizontal circle around center.
func (l *Lines) Circle(center math.Vec3, radius float32, segments int, c Color) {
	prev := circlePoint(center, radius, 0, segments)
	for i := 1; i <= segments; i++ {
		next := circlePoint(center, radius, i, segments)
		l.Segment(prev, next, c)
		prev = next
	}
}

// Cylinder appends an upright cylinder of the given height centred on center.
func (l *Lines) Cylinder(center math.Vec3, radius, height float32, segments int, c Color) {
	half := height / 2
	bottom := math.Vec3{X: center.X, Y: center.Y - half, Z: center.Z}
	top := math.Vec3{X: center.X, Y: center.Y + half, Z: center.Z}
	l.Circle(bottom, radius, segments, c)
	l.Circle(top, radius, segments, c)
	for i := 0; i < 4; i++ {
		k := i * segments / 4
		l.Segment(circlePoint(bottom, radius, k, segments), circlePoint(top, radius, k, segments), c)
	}
}

// Grid appends a square grid on the plane y, spanning [-extent, extent].
func (l *Lines) Grid(extent, step, y float32, c Color) {
	if step <= 0 {
		return
	}
	n := int(extent / step)
	for i := -n; i <= n; i++ {
		v := float32(i) * step
		l.Segment(math.Vec3{X: v, Y: y, Z: -extent}, math.Vec3{X: v, Y: y, Z: extent}, c)
		l.Segment(math.Vec3{X: -extent, Y: y, Z: v}, math.Vec3{X: extent, Y: y, Z: v}, c)
	}
}

// Transformed appends segments (pairs of endpoints) after applying m.
func (l *Lines) Transformed(segments []math.Vec3, m math.Mat4, c Color) {
	for i := 0; i+1 < len(segments); i += 2 {
		l.Segment(m.TransformVec3(segments[i]), m.TransformVec3(segments[i+1]), c)
	}
}

func circlePoint(center math.Vec3, radius float32, i, segments int) math.Vec3 {
	a := float64(i) / float64(segments) * 2 * gomath.Pi
	return math.Vec3{
		X: center.X + radius*float32(gomath.Cos(a)),
		Y: center.Y,
		Z: center.Z + radius*float32(gomath.Sin(a)),
	}
}
