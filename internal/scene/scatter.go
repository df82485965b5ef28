package scene

import (
	"fmt"
	gomath "math"
	"math/rand"

	"github.com/Faultbox/seabed/internal/assets"
	"github.com/Faultbox/seabed/internal/config"
	"github.com/Faultbox/seabed/pkg/math"
)

// ModelSource resolves model names. *assets.Manager implements it.
type ModelSource interface {
	Load(name string) (*assets.Model, error)
}

// Placement is one scattered prop, ready to become an entity.
type Placement struct {
	Prop      Prop
	Transform Transform
	Footprint Footprint
	Bounds    assets.Bounds // World-space, after grounding
}

// Scatter places every prop of the spawn table at a random position and yaw
// and rests it on the seafloor.
func Scatter(cfg config.PropsConfig, seafloorY float32, models ModelSource, rng *rand.Rand) ([]Placement, error) {
	total := 0
	for _, s := range cfg.Spawns {
		total += s.Count
	}
	out := make([]Placement, 0, total)

	for _, s := range cfg.Spawns {
		model, err := models.Load(s.Model)
		if err != nil {
			return nil, fmt.Errorf("scattering %s: %w", s.Model, err)
		}
		for i := 0; i < s.Count; i++ {
			t := Transform{
				Position: math.Vec3{
					X: (rng.Float32()*2 - 1) * cfg.Extent,
					Z: (rng.Float32()*2 - 1) * cfg.Extent,
				},
				Yaw:   rng.Float32() * 2 * gomath.Pi,
				Scale: s.ScaleMin + rng.Float32()*(s.ScaleMax-s.ScaleMin),
			}
			out = append(out, Place(model, t, seafloorY, cfg.FootprintFactor))
		}
	}
	return out, nil
}

// Place grounds a model at t so its lowest point touches seafloorY and
// derives its footprint. t.Position.Y is ignored.
func Place(model *assets.Model, t Transform, seafloorY, footprintFactor float32) Placement {
	t.Position.Y = 0
	b := model.WorldBounds(t.Matrix())

	lift := seafloorY - b.Min.Y
	t.Position.Y = lift
	b = b.Offset(math.Vec3{Y: lift})

	size := b.Size()
	return Placement{
		Prop:      Prop{Model: model},
		Transform: t,
		Footprint: Footprint{
			Center: b.Center(),
			Radius: max(size.X, size.Z) * footprintFactor,
			Height: size.Y,
		},
		Bounds: b,
	}
}
