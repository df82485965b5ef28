// Package animation plays looping keyframe clips of joint rotations.
package animation

import (
	gomath "math"

	"github.com/Faultbox/seabed/pkg/math"
)

// Player advances an animation by a time step. The frame driver calls it once
// per frame and reads nothing back.
type Player interface {
	Advance(dt float32)
}

// RotKey is a rotation keyframe. Time is in seconds from the clip start.
type RotKey struct {
	Time     float32
	Rotation math.Quat
}

// Track animates one named joint.
type Track struct {
	Joint string
	Keys  []RotKey // Sorted by Time
}

// Clip is a named set of tracks sharing one duration.
type Clip struct {
	Name     string
	Duration float32
	Tracks   []Track
}

// SampleRotation returns the rotation of keys at time t. Times before the
// first key or after the last hold the nearest key.
func SampleRotation(keys []RotKey, t float32) math.Quat {
	switch len(keys) {
	case 0:
		return math.QuatIdentity()
	case 1:
		return keys[0].Rotation
	}

	if t <= keys[0].Time {
		return keys[0].Rotation
	}

	for i := 1; i < len(keys); i++ {
		k1 := keys[i]
		if t > k1.Time {
			continue
		}
		k0 := keys[i-1]
		span := k1.Time - k0.Time
		if span <= 0 {
			return k1.Rotation
		}
		return k0.Rotation.Slerp(k1.Rotation, (t-k0.Time)/span)
	}

	return keys[len(keys)-1].Rotation
}

// Looper plays a single clip on repeat.
type Looper struct {
	clip  *Clip
	time  float32
	Speed float32 // Playback rate multiplier
}

// NewLooper creates a player for clip starting at time zero.
func NewLooper(clip *Clip) *Looper {
	return &Looper{clip: clip, Speed: 1}
}

// Advance moves playback forward by dt seconds, wrapping at the clip end.
func (l *Looper) Advance(dt float32) {
	if l.clip == nil || l.clip.Duration <= 0 {
		return
	}
	l.time = float32(gomath.Mod(float64(l.time+dt*l.Speed), float64(l.clip.Duration)))
	if l.time < 0 {
		l.time += l.clip.Duration
	}
}

// Time returns the current playback position in seconds.
func (l *Looper) Time() float32 {
	return l.time
}

// Clip returns the clip being played.
func (l *Looper) Clip() *Clip {
	return l.clip
}

// Pose returns the current rotation of a joint, or identity if the clip does
// not animate it.
func (l *Looper) Pose(joint string) math.Quat {
	if l.clip == nil {
		return math.QuatIdentity()
	}
	for i := range l.clip.Tracks {
		if l.clip.Tracks[i].Joint == joint {
			return SampleRotation(l.clip.Tracks[i].Keys, l.time)
		}
	}
	return math.QuatIdentity()
}
