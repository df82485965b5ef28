package animation

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/seabed/pkg/math"
)

func quatNear(a, b math.Quat) bool {
	// q and -q are the same rotation
	d := gomath.Abs(float64(a.Dot(b)))
	return d > 1-1e-4
}

func TestSampleRotationEdges(t *testing.T) {
	if q := SampleRotation(nil, 1); q != math.QuatIdentity() {
		t.Errorf("expected identity for no keys, got %v", q)
	}

	a := math.QuatFromAxisAngle(math.Up, 0)
	b := math.QuatFromAxisAngle(math.Up, 1)
	keys := []RotKey{{Time: 1, Rotation: a}, {Time: 3, Rotation: b}}

	if q := SampleRotation(keys, 0); !quatNear(q, a) {
		t.Errorf("expected first key before start, got %v", q)
	}
	if q := SampleRotation(keys, 10); !quatNear(q, b) {
		t.Errorf("expected last key after end, got %v", q)
	}
	mid := math.QuatFromAxisAngle(math.Up, 0.5)
	if q := SampleRotation(keys, 2); !quatNear(q, mid) {
		t.Errorf("expected halfway rotation at t=2, got %v", q)
	}
}

func TestLooperWraps(t *testing.T) {
	l := NewLooper(Swim())

	l.Advance(SwimDuration * 0.5)
	if got := l.Time(); gomath.Abs(float64(got-SwimDuration*0.5)) > 1e-4 {
		t.Errorf("expected time %f, got %f", SwimDuration*0.5, got)
	}

	l.Advance(SwimDuration)
	if got := l.Time(); gomath.Abs(float64(got-SwimDuration*0.5)) > 1e-4 {
		t.Errorf("expected time to wrap back to %f, got %f", SwimDuration*0.5, got)
	}
}

func TestSwimLoopsSeamlessly(t *testing.T) {
	clip := Swim()
	if clip.Name != "Swim" {
		t.Errorf("expected clip name Swim, got %s", clip.Name)
	}
	for _, tr := range clip.Tracks {
		first := tr.Keys[0].Rotation
		last := tr.Keys[len(tr.Keys)-1].Rotation
		if !quatNear(first, last) {
			t.Errorf("track %s: first and last keys differ, loop would pop", tr.Joint)
		}
	}
}

func TestPoseUnknownJoint(t *testing.T) {
	l := NewLooper(Swim())
	l.Advance(0.3)
	if q := l.Pose("fin"); q != math.QuatIdentity() {
		t.Errorf("expected identity for unanimated joint, got %v", q)
	}
	if q := l.Pose(JointTail); quatNear(q, math.QuatIdentity()) {
		t.Error("expected tail to be rotated mid-stroke")
	}
}

func TestLooperNilClip(t *testing.T) {
	l := NewLooper(nil)
	l.Advance(1) // Must not panic
	if l.Time() != 0 {
		t.Errorf("expected time 0, got %f", l.Time())
	}
}
