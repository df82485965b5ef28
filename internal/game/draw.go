package game

import (
	"github.com/Faultbox/seabed/internal/assets"
	"github.com/Faultbox/seabed/internal/engine/debug"
	"github.com/Faultbox/seabed/internal/scene"
	"github.com/Faultbox/seabed/internal/whale"
	"github.com/Faultbox/seabed/pkg/math"
)

var (
	seabedColor    = debug.Color{0.16, 0.3, 0.38}
	boundaryColor  = debug.Color{0.9, 0.8, 0.35}
	footprintColor = debug.Color{1, 0.25, 0.25}
	targetColor    = debug.Color{0.3, 1, 0.9}
)

const (
	gridStep        = 10
	circleSegments  = 96
	cylinderSegment = 12
)

// poser is implemented by animation players that expose joint rotations.
type poser interface {
	Pose(joint string) math.Quat
}

// buildStatic writes the seabed grid, world boundary and every prop.
func buildStatic(l *debug.Lines, sc *scene.Scene, radius, seafloorY float32, footprints bool) {
	l.Reset()
	l.Grid(radius, gridStep, seafloorY, seabedColor)
	l.Circle(math.Vec3{Y: seafloorY}, radius, circleSegments, boundaryColor)

	if sc == nil {
		return
	}
	sc.Each(func(t *scene.Transform, f *scene.Footprint, p *scene.Prop) {
		m := t.Matrix()
		for i := range p.Model.Parts {
			l.Transformed(p.Model.Parts[i].Segments, m, debug.Color(p.Model.Color))
		}
		if footprints {
			l.Cylinder(f.Center, f.Radius, f.Height, cylinderSegment, footprintColor)
		}
	})
}

// buildWhale writes the whale hull with its animated joints. It draws
// nothing until the whale's bundle has arrived.
func buildWhale(l *debug.Lines, a *whale.Agent, scale float32, showTarget bool) {
	l.Reset()
	if a.Bundle == nil || a.Bundle.Model == nil {
		return
	}
	model := a.Bundle.Model
	base := a.Transform(scale)
	pose, _ := a.Bundle.Animation.(poser)

	for i := range model.Parts {
		part := &model.Parts[i]
		m := base.Mul(jointMatrix(model, part, pose))
		l.Transformed(part.Segments, m, debug.Color(model.Color))
	}

	if showTarget {
		l.Segment(a.Position, a.Target, targetColor)
	}
}

// jointMatrix returns the model-space transform of part, composing the
// rotations of its joint chain about their pivots.
func jointMatrix(model *assets.Model, part *assets.Part, pose poser) math.Mat4 {
	if part.Joint == "" || pose == nil {
		return math.Identity()
	}

	local := math.Translate(part.Pivot.X, part.Pivot.Y, part.Pivot.Z).
		Mul(pose.Pose(part.Joint).ToMat4()).
		Mul(math.Translate(-part.Pivot.X, -part.Pivot.Y, -part.Pivot.Z))

	if part.Parent == "" {
		return local
	}
	parent, ok := model.Part(part.Parent)
	if !ok || parent == part {
		return local
	}
	return jointMatrix(model, parent, pose).Mul(local)
}
