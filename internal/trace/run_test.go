package trace

import (
	"bytes"
	gomath "math"
	"testing"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/Faultbox/seabed/internal/config"
)

func TestScriptFacing(t *testing.T) {
	s := Script{}
	in := s.Next(1)
	if !in.Forward || !in.Captured {
		t.Error("expected captured forward input")
	}
	if in.Facing.Z != -1 || in.Facing.X != 0 {
		t.Errorf("expected -Z facing without turning, got %v", in.Facing)
	}

	s = Script{TurnRate: gomath.Pi / 2}
	in = s.Next(1)
	if gomath.Abs(float64(in.Facing.X+1)) > 1e-5 || gomath.Abs(float64(in.Facing.Z)) > 1e-5 {
		t.Errorf("expected -X facing after a quarter turn, got %v", in.Facing)
	}
}

func TestRun(t *testing.T) {
	cfg := config.Default()
	cfg.World.Seed = 11
	cfg.Trace.Frames = 300
	cfg.Whale.LoadDelay = time.Second

	var buf bytes.Buffer
	rec := NewRecorder(&buf)
	if err := Run(cfg, rec); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	var rows []Row
	if err := gocsv.UnmarshalBytes(buf.Bytes(), &rows); err != nil {
		t.Fatalf("failed to parse trace: %v", err)
	}
	if len(rows) != 300 {
		t.Fatalf("expected 300 rows, got %d", len(rows))
	}

	// The whale arrives after one simulated second.
	if rows[0].WhaleState != "unloaded" {
		t.Errorf("expected unloaded whale at start, got %s", rows[0].WhaleState)
	}
	if rows[299].WhaleState != "wandering" {
		t.Errorf("expected wandering whale at end, got %s", rows[299].WhaleState)
	}
	if rows[50].WhaleState != "unloaded" {
		t.Errorf("whale delivered before its delay at frame %d", rows[50].Frame)
	}

	for _, row := range rows {
		if row.PlayerRadius > cfg.World.Radius+1e-3 {
			t.Fatalf("frame %d: player left the world (r=%f)", row.Frame, row.PlayerRadius)
		}
	}

	sum := rec.Summary()
	if sum.Frames != 300 {
		t.Errorf("expected 300 summarised frames, got %d", sum.Frames)
	}
	if sum.WanderFrames == 0 || sum.WanderFrames >= 300 {
		t.Errorf("unexpected wander frame count %d", sum.WanderFrames)
	}
}
