// Package trace records per-frame poses of a session as CSV.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/klauspost/compress/zstd"

	"github.com/Faultbox/seabed/internal/sim"
	"github.com/Faultbox/seabed/internal/whale"
)

// flushEvery is how many rows are buffered before they are encoded.
const flushEvery = 256

// Row is one CSV line.
type Row struct {
	Frame        int     `csv:"frame"`
	Time         float32 `csv:"time"`
	DT           float32 `csv:"dt"`
	WhaleState   string  `csv:"whale_state"`
	WhaleX       float32 `csv:"whale_x"`
	WhaleY       float32 `csv:"whale_y"`
	WhaleZ       float32 `csv:"whale_z"`
	WhaleSpeed   float32 `csv:"whale_speed"`
	TargetX      float32 `csv:"target_x"`
	TargetY      float32 `csv:"target_y"`
	TargetZ      float32 `csv:"target_z"`
	PlayerX      float32 `csv:"player_x"`
	PlayerY      float32 `csv:"player_y"`
	PlayerZ      float32 `csv:"player_z"`
	PlayerRadius float32 `csv:"player_radius"` // Planar distance from the world origin
}

// RowFrom flattens a snapshot.
func RowFrom(s sim.Snapshot) Row {
	return Row{
		Frame:        s.Frame,
		Time:         s.Elapsed,
		DT:           s.DT,
		WhaleState:   s.WhaleState.String(),
		WhaleX:       s.WhalePos.X,
		WhaleY:       s.WhalePos.Y,
		WhaleZ:       s.WhalePos.Z,
		WhaleSpeed:   s.WhaleVel.Length(),
		TargetX:      s.WhaleTarget.X,
		TargetY:      s.WhaleTarget.Y,
		TargetZ:      s.WhaleTarget.Z,
		PlayerX:      s.Player.X,
		PlayerY:      s.Player.Y,
		PlayerZ:      s.Player.Z,
		PlayerRadius: s.Player.XZ().Length(),
	}
}

// Recorder writes rows and accumulates summary samples.
type Recorder struct {
	buf    *bufio.Writer
	closer []io.Closer

	pending       []Row
	headerWritten bool

	samples samples
}

// NewRecorder writes uncompressed CSV to w. Close flushes but does not close w.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{buf: bufio.NewWriter(w)}
}

// Create opens path for writing, zstd-compressing the CSV when compress is
// set. Parent directories are created as needed.
func Create(path string, compress bool) (*Recorder, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating trace directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating trace file: %w", err)
	}

	if !compress {
		r := NewRecorder(f)
		r.closer = []io.Closer{f}
		return r, nil
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	r := NewRecorder(enc)
	// Encoder before file so the zstd frame is complete on disk.
	r.closer = []io.Closer{enc, f}
	return r, nil
}

// Record appends one frame.
func (r *Recorder) Record(s sim.Snapshot) error {
	row := RowFrom(s)
	r.pending = append(r.pending, row)
	r.samples.add(s.WhaleState == whale.Wandering, row)

	if len(r.pending) >= flushEvery {
		return r.flush()
	}
	return nil
}

func (r *Recorder) flush() error {
	if len(r.pending) == 0 {
		return nil
	}

	if !r.headerWritten {
		if err := gocsv.Marshal(r.pending, r.buf); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
		r.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(r.pending, r.buf); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
	}
	r.pending = r.pending[:0]
	return nil
}

// Close flushes buffered rows and closes the underlying file, if any.
func (r *Recorder) Close() error {
	err := r.flush()
	if ferr := r.buf.Flush(); err == nil && ferr != nil {
		err = fmt.Errorf("flushing trace: %w", ferr)
	}
	for _, c := range r.closer {
		if cerr := c.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing trace: %w", cerr)
		}
	}
	r.closer = nil
	return err
}

// Summary returns statistics over every recorded frame.
func (r *Recorder) Summary() Summary {
	return r.samples.summary()
}
