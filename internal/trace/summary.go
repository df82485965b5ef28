package trace

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarises one series.
type Stats struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// MarshalLogObject lets Stats be logged with zap.Object.
func (s Stats) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddFloat64("mean", s.Mean)
	enc.AddFloat64("std", s.StdDev)
	enc.AddFloat64("min", s.Min)
	enc.AddFloat64("max", s.Max)
	return nil
}

// Summary aggregates a whole trace.
type Summary struct {
	Frames        int
	WanderFrames  int // Frames with the whale wandering
	WhaleAltitude Stats
	WhaleSpeed    Stats
	PlayerRadius  Stats
}

// Log writes the summary at info level.
func (s Summary) Log(l *zap.Logger) {
	l.Info("trace summary",
		zap.Int("frames", s.Frames),
		zap.Int("wanderFrames", s.WanderFrames),
		zap.Object("whaleAltitude", s.WhaleAltitude),
		zap.Object("whaleSpeed", s.WhaleSpeed),
		zap.Object("playerRadius", s.PlayerRadius))
}

type samples struct {
	frames     int
	whaleY     []float64
	whaleSpeed []float64
	playerR    []float64
}

func (s *samples) add(wandering bool, row Row) {
	s.frames++
	if wandering {
		s.whaleY = append(s.whaleY, float64(row.WhaleY))
		s.whaleSpeed = append(s.whaleSpeed, float64(row.WhaleSpeed))
	}
	s.playerR = append(s.playerR, float64(row.PlayerRadius))
}

func (s *samples) summary() Summary {
	return Summary{
		Frames:        s.frames,
		WanderFrames:  len(s.whaleY),
		WhaleAltitude: describe(s.whaleY),
		WhaleSpeed:    describe(s.whaleSpeed),
		PlayerRadius:  describe(s.playerR),
	}
}

func describe(x []float64) Stats {
	if len(x) == 0 {
		return Stats{}
	}
	st := Stats{
		Mean: stat.Mean(x, nil),
		Min:  floats.Min(x),
		Max:  floats.Max(x),
	}
	if len(x) > 1 {
		st.StdDev = stat.StdDev(x, nil)
	}
	return st
}
