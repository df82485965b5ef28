package scene

import (
	"errors"
	gomath "math"
	"math/rand"
	"testing"

	"github.com/Faultbox/seabed/internal/assets"
	"github.com/Faultbox/seabed/internal/config"
	"github.com/Faultbox/seabed/internal/world"
	"github.com/Faultbox/seabed/pkg/math"
)

func near(a, b, eps float32) bool {
	return gomath.Abs(float64(a-b)) <= float64(eps)
}

func TestPlaceGrounds(t *testing.T) {
	box := assets.Rock("box", 1, 4)
	p := Place(box, Transform{Position: math.Vec3{X: 5, Y: 99, Z: -3}, Scale: 50}, 2, 0.4)

	if !near(p.Bounds.Min.Y, 2, 1e-4) {
		t.Errorf("expected prop resting on seafloor 2, min Y %f", p.Bounds.Min.Y)
	}
	size := p.Bounds.Size()
	if !near(p.Footprint.Height, size.Y, 1e-5) {
		t.Errorf("expected footprint height %f, got %f", size.Y, p.Footprint.Height)
	}
	if want := max(size.X, size.Z) * 0.4; !near(p.Footprint.Radius, want, 1e-5) {
		t.Errorf("expected footprint radius %f, got %f", want, p.Footprint.Radius)
	}
	if c := p.Bounds.Center(); p.Footprint.Center != c {
		t.Errorf("expected footprint centred on bounds %v, got %v", c, p.Footprint.Center)
	}
}

func TestScatterTable(t *testing.T) {
	cfg := config.Default().Props
	models := assets.NewManager(0)

	ps, err := Scatter(cfg, 0, models, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("scatter failed: %v", err)
	}
	if len(ps) != 375 {
		t.Fatalf("expected 375 placements, got %d", len(ps))
	}

	counts := map[string]int{}
	for _, p := range ps {
		counts[p.Prop.Model.Name]++
		pos := p.Transform.Position
		if pos.X < -cfg.Extent || pos.X > cfg.Extent || pos.Z < -cfg.Extent || pos.Z > cfg.Extent {
			t.Errorf("%s placed outside extent at %v", p.Prop.Model.Name, pos)
		}
		if !near(p.Bounds.Min.Y, 0, 1e-3) {
			t.Errorf("%s not grounded, min Y %f", p.Prop.Model.Name, p.Bounds.Min.Y)
		}
		if p.Footprint.Height <= 0 {
			t.Errorf("%s has non-positive footprint height", p.Prop.Model.Name)
		}
	}
	if counts["kelp"] != 200 || counts["starfish"] != 30 || counts["rock2"] != 40 {
		t.Errorf("unexpected spawn counts %v", counts)
	}
}

func TestScatterUnknownModel(t *testing.T) {
	cfg := config.PropsConfig{Extent: 10, Spawns: []config.SpawnConfig{{Model: "anemone", Count: 1, ScaleMin: 1, ScaleMax: 1}}}
	_, err := Scatter(cfg, 0, assets.NewManager(0), rand.New(rand.NewSource(1)))
	if !errors.Is(err, assets.ErrUnknownModel) {
		t.Errorf("expected ErrUnknownModel, got %v", err)
	}
}

func TestPopulateFeedsRegistry(t *testing.T) {
	cfg := config.PropsConfig{
		Extent:          50,
		FootprintFactor: 0.4,
		Spawns:          []config.SpawnConfig{{Model: "rock1", Count: 12, ScaleMin: 50, ScaleMax: 100}},
	}
	ps, err := Scatter(cfg, 0, assets.NewManager(0), rand.New(rand.NewSource(9)))
	if err != nil {
		t.Fatalf("scatter failed: %v", err)
	}

	reg := world.NewRegistry(1.5)
	s := New()
	s.Populate(ps, reg)

	if s.Len() != 12 || reg.Len() != 12 {
		t.Fatalf("expected 12 props and obstacles, got %d and %d", s.Len(), reg.Len())
	}

	seen := 0
	s.Each(func(tr *Transform, f *Footprint, p *Prop) {
		seen++
		if p.Model == nil || p.Model.Name != "rock1" {
			t.Errorf("unexpected model on entity: %+v", p.Model)
		}
		if !reg.Blocked(f.Center) {
			t.Errorf("expected registry to block the centre of prop at %v", tr.Position)
		}
	})
	if seen != 12 {
		t.Errorf("expected to visit 12 entities, visited %d", seen)
	}
}
