package animation

import (
	gomath "math"

	"github.com/Faultbox/seabed/pkg/math"
)

// Joint names driven by the swim clip.
const (
	JointTail   = "tail"
	JointFlukes = "flukes"
)

// SwimDuration is the length of one tail stroke in seconds.
const SwimDuration = 2.4

// Swim builds the looping tail stroke used by the whale. The tail pitches
// about X and the flukes follow a quarter cycle behind.
func Swim() *Clip {
	const steps = 8
	tail := make([]RotKey, 0, steps+1)
	flukes := make([]RotKey, 0, steps+1)

	right := math.Vec3{X: 1}
	for i := 0; i <= steps; i++ {
		phase := float64(i) / steps * 2 * gomath.Pi
		t := float32(i) / steps * SwimDuration

		tail = append(tail, RotKey{
			Time:     t,
			Rotation: math.QuatFromAxisAngle(right, 0.22*float32(gomath.Sin(phase))),
		})
		flukes = append(flukes, RotKey{
			Time:     t,
			Rotation: math.QuatFromAxisAngle(right, 0.35*float32(gomath.Sin(phase-gomath.Pi/2))),
		})
	}

	return &Clip{
		Name:     "Swim",
		Duration: SwimDuration,
		Tracks: []Track{
			{Joint: JointTail, Keys: tail},
			{Joint: JointFlukes, Keys: flukes},
		},
	}
}
