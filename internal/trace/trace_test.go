package trace

import (
	"bytes"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/klauspost/compress/zstd"

	"github.com/Faultbox/seabed/internal/assets"
	"github.com/Faultbox/seabed/internal/config"
	"github.com/Faultbox/seabed/internal/sim"
	"github.com/Faultbox/seabed/internal/whale"
	"github.com/Faultbox/seabed/internal/world"
	"github.com/Faultbox/seabed/pkg/math"
)

func runSession(t *testing.T, r *Recorder, frames int) *sim.Context {
	t.Helper()
	cfg := config.Default()
	ctx := sim.New(cfg, rand.New(rand.NewSource(4)))

	in := world.Input{Forward: true, Captured: true, Facing: math.Vec3{Z: -1}}
	for i := 0; i < frames; i++ {
		if i == 10 {
			ctx.Deliver(whale.NewBundle(assets.Whale(), cfg.Whale.Scale))
		}
		dt := ctx.Frame(1.0/60, in)
		if err := r.Record(ctx.Snapshot(dt)); err != nil {
			t.Fatalf("frame %d: record failed: %v", i, err)
		}
	}
	return ctx
}

func TestRecorderCSV(t *testing.T) {
	var buf bytes.Buffer
	r := NewRecorder(&buf)
	runSession(t, r, 600)
	if err := r.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	if !strings.HasPrefix(buf.String(), "frame,time,dt,whale_state,") {
		t.Errorf("expected CSV header, got %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}

	var rows []Row
	if err := gocsv.UnmarshalBytes(buf.Bytes(), &rows); err != nil {
		t.Fatalf("failed to parse trace: %v", err)
	}
	if len(rows) != 600 {
		t.Fatalf("expected 600 rows, got %d", len(rows))
	}
	if rows[0].WhaleState != "unloaded" || rows[599].WhaleState != "wandering" {
		t.Errorf("expected whale to go from unloaded to wandering, got %s then %s", rows[0].WhaleState, rows[599].WhaleState)
	}
	if rows[599].Frame != 600 {
		t.Errorf("expected last frame 600, got %d", rows[599].Frame)
	}
}

func TestSummary(t *testing.T) {
	r := NewRecorder(io.Discard)
	runSession(t, r, 300)
	s := r.Summary()

	if s.Frames != 300 {
		t.Errorf("expected 300 frames, got %d", s.Frames)
	}
	if s.WanderFrames != 290 {
		t.Errorf("expected 290 wandering frames, got %d", s.WanderFrames)
	}

	cfg := config.Default()
	if s.WhaleAltitude.Min < float64(cfg.Whale.AltitudeMin) || s.WhaleAltitude.Max > float64(cfg.Whale.AltitudeMax) {
		t.Errorf("whale altitude range [%f, %f] outside band", s.WhaleAltitude.Min, s.WhaleAltitude.Max)
	}
	if s.WhaleAltitude.Mean < s.WhaleAltitude.Min || s.WhaleAltitude.Mean > s.WhaleAltitude.Max {
		t.Errorf("mean %f outside [%f, %f]", s.WhaleAltitude.Mean, s.WhaleAltitude.Min, s.WhaleAltitude.Max)
	}
	if s.PlayerRadius.Max > float64(cfg.World.Radius)+1e-3 {
		t.Errorf("player left the world disc: %f", s.PlayerRadius.Max)
	}
	_ = r.Close()
}

func TestDescribeEmpty(t *testing.T) {
	if st := describe(nil); st != (Stats{}) {
		t.Errorf("expected zero stats for empty series, got %+v", st)
	}
	st := describe([]float64{2, 4, 6})
	if st.Mean != 4 || st.Min != 2 || st.Max != 6 {
		t.Errorf("unexpected stats %+v", st)
	}
}

func TestCreateCompressed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "trace.csv.zst")
	r, err := Create(path, true)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	runSession(t, r, 50)
	if err := r.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		t.Fatalf("zstd reader failed: %v", err)
	}
	defer dec.Close()

	data, err := io.ReadAll(dec)
	if err != nil {
		t.Fatalf("decompress failed: %v", err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 51 {
		t.Errorf("expected header plus 50 rows, got %d lines", lines)
	}
}
