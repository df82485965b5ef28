// Package world holds the static obstacles of the seabed and moves the player
// through them.
package world

import (
	"github.com/dhconnelly/rtreego"

	"github.com/Faultbox/seabed/pkg/math"
)

const (
	// minExtent keeps degenerate footprints insertable into the R-tree, which
	// rejects zero-length rectangles.
	minExtent = 1e-3

	// querySlack widens the broadphase box so float32 rounding in the exact
	// test never meets a candidate the index already dropped.
	querySlack = 1e-2
)

// Obstacle is an upright cylinder the player cannot enter.
type Obstacle struct {
	Center math.Vec3
	Radius float32 // Horizontal radius on the XZ plane
	Height float32 // Full vertical extent, centred on Center.Y
}

// Contains reports whether p lies inside the obstacle once grown by pad.
// Points outside the vertical extent never collide.
func (o Obstacle) Contains(p math.Vec3, pad float32) bool {
	half := o.Height / 2
	if p.Y < o.Center.Y-half || p.Y > o.Center.Y+half {
		return false
	}
	dx := p.X - o.Center.X
	dz := p.Z - o.Center.Z
	r := pad + o.Radius
	return dx*dx+dz*dz < r*r
}

// entry adapts an obstacle to the rtreego.Spatial interface.
type entry struct {
	Obstacle
	rect rtreego.Rect
}

func (e *entry) Bounds() rtreego.Rect {
	return e.rect
}

// Registry is an append-only set of obstacles indexed on the XZ plane.
type Registry struct {
	playerRadius float32
	obstacles    []Obstacle
	index        *rtreego.Rtree
}

// NewRegistry creates an empty registry. playerRadius is the collision
// radius used by every Blocked query.
func NewRegistry(playerRadius float32) *Registry {
	return &Registry{
		playerRadius: playerRadius,
		index:        rtreego.NewTree(2, 25, 50),
	}
}

// PlayerRadius returns the radius shared by all queries.
func (r *Registry) PlayerRadius() float32 {
	return r.playerRadius
}

// Insert appends an obstacle. Obstacles are never updated or removed.
func (r *Registry) Insert(center math.Vec3, radius, height float32) {
	o := Obstacle{Center: center, Radius: radius, Height: height}
	r.obstacles = append(r.obstacles, o)
	r.index.Insert(&entry{Obstacle: o, rect: planarRect(center, radius)})
}

// All returns a copy of every obstacle in insertion order.
func (r *Registry) All() []Obstacle {
	out := make([]Obstacle, len(r.obstacles))
	copy(out, r.obstacles)
	return out
}

// Len returns the number of obstacles.
func (r *Registry) Len() int {
	return len(r.obstacles)
}

// Blocked reports whether a player centred at p would overlap any obstacle.
func (r *Registry) Blocked(p math.Vec3) bool {
	if len(r.obstacles) == 0 {
		return false
	}

	hit := false
	r.index.SearchIntersect(planarRect(p, r.playerRadius+querySlack), func(_ []rtreego.Spatial, s rtreego.Spatial) (refuse, abort bool) {
		if s.(*entry).Contains(p, r.playerRadius) {
			hit = true
			return false, true
		}
		return true, false
	})
	return hit
}

// planarRect returns the XZ square of half-size radius around center.
func planarRect(center math.Vec3, radius float32) rtreego.Rect {
	side := float64(2 * radius)
	if side < minExtent {
		side = minExtent
	}
	half := side / 2
	rect, err := rtreego.NewRect(
		rtreego.Point{float64(center.X) - half, float64(center.Z) - half},
		[]float64{side, side},
	)
	if err != nil {
		// Only reachable with non-positive lengths, which the clamp above rules out.
		panic(err)
	}
	return rect
}
