package assets

import (
	gomath "math"
	"math/rand"

	"github.com/Faultbox/seabed/pkg/math"
)

// Builder produces a fresh model.
type Builder func() *Model

// Builtin returns the procedural models shipped with the scene.
func Builtin() map[string]Builder {
	return map[string]Builder{
		"whale":    Whale,
		"kelp":     Kelp,
		"rock1":    func() *Model { return Rock("rock1", 1, 6) },
		"rock2":    func() *Model { return Rock("rock2", 2, 8) },
		"rock3":    func() *Model { return Rock("rock3", 3, 5) },
		"coral1":   func() *Model { return Coral("coral1", 11, 0.1, [3]float32{0.95, 0.45, 0.45}) },
		"coral2":   func() *Model { return Coral("coral2", 12, 0.3, [3]float32{0.85, 0.55, 0.9}) },
		"starfish": Starfish,
	}
}

// Whale builds a whale facing +Z with an animated tail and flukes.
func Whale() *Model {
	const rings = 9
	const sides = 10
	const length = 5.0

	var hull []math.Vec3
	prev := make([]math.Vec3, 0, sides)
	for i := 0; i <= rings; i++ {
		t := float64(i) / rings
		z := float32((0.5 - t) * length * 0.7) // Head at +Z
		girth := float32(gomath.Sin(gomath.Pi * (0.15 + 0.85*t)))
		ring := ellipse(math.Vec3{Z: z}, 0.7*girth, 0.55*girth, sides)
		hull = append(hull, loop(ring)...)
		if len(prev) > 0 {
			for k := range ring {
				hull = append(hull, prev[k], ring[k])
			}
		}
		prev = ring
	}

	// Pectoral fins
	fin := func(side float32) []math.Vec3 {
		root := math.Vec3{X: 0.55 * side, Y: -0.3, Z: 0.6}
		tip := math.Vec3{X: 1.4 * side, Y: -0.7, Z: 0.1}
		back := math.Vec3{X: 0.5 * side, Y: -0.3, Z: 0.2}
		return []math.Vec3{root, tip, tip, back}
	}
	hull = append(hull, fin(1)...)
	hull = append(hull, fin(-1)...)

	tailStart := float32(-length * 0.35)
	tail := []math.Vec3{
		{X: 0.2, Z: tailStart}, {X: 0.05, Z: tailStart - 0.9},
		{X: -0.2, Z: tailStart}, {X: -0.05, Z: tailStart - 0.9},
		{Y: 0.18, Z: tailStart}, {Y: 0.05, Z: tailStart - 0.9},
		{Y: -0.18, Z: tailStart}, {Y: -0.05, Z: tailStart - 0.9},
	}

	flukeRoot := math.Vec3{Z: tailStart - 0.9}
	flukes := []math.Vec3{
		flukeRoot, {X: 0.9, Z: flukeRoot.Z - 0.5},
		{X: 0.9, Z: flukeRoot.Z - 0.5}, {X: 0.2, Z: flukeRoot.Z - 0.35},
		{X: 0.2, Z: flukeRoot.Z - 0.35}, flukeRoot,
		flukeRoot, {X: -0.9, Z: flukeRoot.Z - 0.5},
		{X: -0.9, Z: flukeRoot.Z - 0.5}, {X: -0.2, Z: flukeRoot.Z - 0.35},
		{X: -0.2, Z: flukeRoot.Z - 0.35}, flukeRoot,
	}

	m := &Model{
		Name:  "whale",
		Color: [3]float32{0.55, 0.65, 0.8},
		Parts: []Part{
			{Segments: hull},
			{Joint: "tail", Pivot: math.Vec3{Z: tailStart}, Segments: tail},
			{Joint: "flukes", Parent: "tail", Pivot: flukeRoot, Segments: flukes},
		},
	}
	return m.finish()
}

// Kelp builds a swaying strand two units tall rooted at the origin.
func Kelp() *Model {
	const nodes = 12
	var segs []math.Vec3
	var prev math.Vec3
	for i := 1; i <= nodes; i++ {
		y := float32(i) * 2 / nodes
		p := math.Vec3{
			X: 0.08 * float32(gomath.Sin(float64(y)*3)),
			Y: y,
			Z: 0.05 * float32(gomath.Cos(float64(y)*2)),
		}
		segs = append(segs, prev, p)
		// Leaf
		leaf := math.Vec3{X: p.X + 0.12*float32(1-2*(i%2)), Y: p.Y - 0.05, Z: p.Z}
		segs = append(segs, p, leaf)
		prev = p
	}
	m := &Model{Name: "kelp", Color: [3]float32{0.3, 0.75, 0.35}, Parts: []Part{{Segments: segs}}}
	return m.finish()
}

// Rock builds a lumpy boulder about a tenth of a unit across. seed picks the
// shape and facets controls how round it looks.
func Rock(name string, seed int64, facets int) *Model {
	rng := rand.New(rand.NewSource(seed))
	const size = 0.05

	lump := func() float32 { return size * (0.75 + 0.5*rng.Float32()) }

	var segs []math.Vec3
	mid := make([]math.Vec3, facets)
	top := make([]math.Vec3, facets)
	for i := 0; i < facets; i++ {
		a := float64(i) / float64(facets) * 2 * gomath.Pi
		r := lump()
		mid[i] = math.Vec3{X: r * float32(gomath.Cos(a)), Y: size * 0.4, Z: r * float32(gomath.Sin(a))}
		r *= 0.6
		top[i] = math.Vec3{X: r * float32(gomath.Cos(a+0.3)), Y: size * (0.8 + 0.3*rng.Float32()), Z: r * float32(gomath.Sin(a+0.3))}
	}
	base := circleXZ(math.Vec3{}, size, facets)
	segs = append(segs, loop(base)...)
	segs = append(segs, loop(mid)...)
	segs = append(segs, loop(top)...)
	for i := 0; i < facets; i++ {
		segs = append(segs, base[i], mid[i], mid[i], top[i])
	}

	gray := 0.4 + 0.1*float32(seed%3)
	m := &Model{Name: name, Color: [3]float32{gray, gray, gray * 0.95}, Parts: []Part{{Segments: segs}}}
	return m.finish()
}

// Coral builds a branching coral of roughly the given height.
func Coral(name string, seed int64, height float32, color [3]float32) *Model {
	rng := rand.New(rand.NewSource(seed))
	var segs []math.Vec3

	var branch func(from, dir math.Vec3, length float32, depth int)
	branch = func(from, dir math.Vec3, length float32, depth int) {
		to := from.Add(dir.Scale(length))
		segs = append(segs, from, to)
		if depth == 0 {
			return
		}
		for k := 0; k < 2; k++ {
			spread := math.Vec3{X: rng.Float32() - 0.5, Y: 0.6, Z: rng.Float32() - 0.5}
			branch(to, dir.Add(spread).Normalize(), length*0.7, depth-1)
		}
	}
	branch(math.Vec3{}, math.Up, height*0.35, 3)

	m := &Model{Name: name, Color: color, Parts: []Part{{Segments: segs}}}
	return m.finish()
}

// Starfish builds a flat five-armed star lying on the seabed.
func Starfish() *Model {
	const arms = 5
	const outer, inner = 0.35, 0.12
	pts := make([]math.Vec3, 0, arms*2)
	for i := 0; i < arms*2; i++ {
		r := float32(outer)
		if i%2 == 1 {
			r = inner
		}
		a := float64(i) / float64(arms*2) * 2 * gomath.Pi
		pts = append(pts, math.Vec3{X: r * float32(gomath.Cos(a)), Y: 0.03, Z: r * float32(gomath.Sin(a))})
	}
	segs := loop(pts)
	for i := 0; i < arms*2; i += 2 {
		segs = append(segs, math.Vec3{}, pts[i])
	}
	m := &Model{Name: "starfish", Color: [3]float32{0.95, 0.6, 0.2}, Parts: []Part{{Segments: segs}}}
	return m.finish()
}

// ellipse returns n points on an ellipse around c in the XY plane.
func ellipse(c math.Vec3, rx, ry float32, n int) []math.Vec3 {
	pts := make([]math.Vec3, n)
	for i := range pts {
		a := float64(i) / float64(n) * 2 * gomath.Pi
		pts[i] = math.Vec3{
			X: c.X + rx*float32(gomath.Cos(a)),
			Y: c.Y + ry*float32(gomath.Sin(a)),
			Z: c.Z,
		}
	}
	return pts
}

// circleXZ returns n points on a horizontal circle around c.
func circleXZ(c math.Vec3, r float32, n int) []math.Vec3 {
	pts := make([]math.Vec3, n)
	for i := range pts {
		a := float64(i) / float64(n) * 2 * gomath.Pi
		pts[i] = math.Vec3{
			X: c.X + r*float32(gomath.Cos(a)),
			Y: c.Y,
			Z: c.Z + r*float32(gomath.Sin(a)),
		}
	}
	return pts
}

// loop turns a closed polyline into segment pairs.
func loop(pts []math.Vec3) []math.Vec3 {
	segs := make([]math.Vec3, 0, len(pts)*2)
	for i := range pts {
		segs = append(segs, pts[i], pts[(i+1)%len(pts)])
	}
	return segs
}
