// Package scene scatters static props over the seabed and keeps them in an
// entity world.
package scene

import (
	"github.com/mlange-42/ark/ecs"
	"go.uber.org/zap"

	"github.com/Faultbox/seabed/internal/logger"
	"github.com/Faultbox/seabed/pkg/math"
)

// Obstacles receives the collision footprint of each prop.
// *world.Registry implements it.
type Obstacles interface {
	Insert(center math.Vec3, radius, height float32)
}

// Scene owns the prop entities.
type Scene struct {
	world  *ecs.World
	props  *ecs.Map3[Transform, Footprint, Prop]
	filter *ecs.Filter3[Transform, Footprint, Prop]
	count  int
}

// New creates an empty scene.
func New() *Scene {
	world := ecs.NewWorld()
	return &Scene{
		world:  world,
		props:  ecs.NewMap3[Transform, Footprint, Prop](world),
		filter: ecs.NewFilter3[Transform, Footprint, Prop](world),
	}
}

// Add creates an entity for p and registers its footprint as an obstacle.
func (s *Scene) Add(p Placement, obstacles Obstacles) ecs.Entity {
	e := s.props.NewEntity(&p.Transform, &p.Footprint, &p.Prop)
	if obstacles != nil {
		obstacles.Insert(p.Footprint.Center, p.Footprint.Radius, p.Footprint.Height)
	}
	s.count++
	return e
}

// Populate adds every placement.
func (s *Scene) Populate(ps []Placement, obstacles Obstacles) {
	for _, p := range ps {
		s.Add(p, obstacles)
	}
	logger.Info("props populated", zap.Int("added", len(ps)), zap.Int("total", s.count))
}

// Len returns the number of props.
func (s *Scene) Len() int {
	return s.count
}

// Each calls fn for every prop. fn must not add props.
func (s *Scene) Each(fn func(t *Transform, f *Footprint, p *Prop)) {
	query := s.filter.Query()
	for query.Next() {
		fn(query.Get())
	}
}
