package assets

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/Faultbox/seabed/pkg/math"
)

func TestLoadCaches(t *testing.T) {
	m := NewManager(0)

	a, err := m.Load("kelp")
	if err != nil {
		t.Fatalf("failed to load kelp: %v", err)
	}
	b, err := m.Load("kelp")
	if err != nil {
		t.Fatalf("failed to reload kelp: %v", err)
	}
	if a != b {
		t.Error("expected the second load to return the cached model")
	}

	hits, misses := m.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %d hits %d misses", hits, misses)
	}
}

func TestLoadUnknown(t *testing.T) {
	m := NewManager(0)
	_, err := m.Load("kraken")
	if !errors.Is(err, ErrUnknownModel) {
		t.Errorf("expected ErrUnknownModel, got %v", err)
	}
}

func TestNames(t *testing.T) {
	names := NewManager(0).Names()
	if !sort.StringsAreSorted(names) {
		t.Errorf("expected sorted names, got %v", names)
	}

	// Every model the default spawn table and the whale ask for is available.
	want := []string{"coral1", "coral2", "kelp", "rock1", "rock2", "rock3", "starfish", "whale"}
	if len(names) != len(want) {
		t.Fatalf("expected %d models, got %v", len(want), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected %s at %d, got %s", want[i], i, names[i])
		}
	}
}

func TestBuiltinModelsHaveBounds(t *testing.T) {
	m := NewManager(0)
	for _, name := range m.Names() {
		model, err := m.Load(name)
		if err != nil {
			t.Fatalf("failed to load %s: %v", name, err)
		}
		if model.VertexCount() == 0 || model.VertexCount()%2 != 0 {
			t.Errorf("%s: expected an even, non-zero vertex count, got %d", name, model.VertexCount())
		}
		size := model.Bounds.Size()
		if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
			t.Errorf("%s: expected positive bounds, got %v", name, size)
		}
	}
}

func TestWhaleBottomOffset(t *testing.T) {
	whale := Whale()
	if whale.Bounds.Min.Y >= 0 {
		t.Fatalf("expected whale to extend below its pivot, min Y %f", whale.Bounds.Min.Y)
	}
	off := whale.BottomOffset(3.2)
	if want := -whale.Bounds.Min.Y * 3.2; off != want {
		t.Errorf("expected bottom offset %f, got %f", want, off)
	}

	joints := map[string]bool{}
	for _, p := range whale.Parts {
		joints[p.Joint] = true
	}
	if !joints["tail"] || !joints["flukes"] {
		t.Errorf("expected tail and flukes joints, got %v", joints)
	}
}

func TestWorldBounds(t *testing.T) {
	model := &Model{Parts: []Part{{Segments: []math.Vec3{{X: -1, Y: 0, Z: -2}, {X: 1, Y: 3, Z: 2}}}}}
	model.finish()

	b := model.WorldBounds(math.Translate(10, 0, 0).Mul(math.Scale(2, 2, 2)))
	if b.Min.X != 8 || b.Max.X != 12 {
		t.Errorf("expected X range [8, 12], got [%f, %f]", b.Min.X, b.Max.X)
	}
	if b.Max.Y != 6 {
		t.Errorf("expected max Y 6, got %f", b.Max.Y)
	}
	if c := b.Center(); c.X != 10 || c.Y != 3 || c.Z != 0 {
		t.Errorf("expected centre (10, 3, 0), got %v", c)
	}
}

func TestLoadAsync(t *testing.T) {
	m := NewManager(20 * time.Millisecond)

	start := time.Now()
	res := <-m.LoadAsync(context.Background(), "whale")
	if res.Err != nil {
		t.Fatalf("async load failed: %v", res.Err)
	}
	if res.Model == nil || res.Model.Name != "whale" {
		t.Fatalf("expected whale model, got %+v", res.Model)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("expected load to honour delay, finished after %v", elapsed)
	}
}

func TestLoadAsyncCancelled(t *testing.T) {
	m := NewManager(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	ch := m.LoadAsync(ctx, "whale")
	cancel()

	res := <-ch
	if !errors.Is(res.Err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", res.Err)
	}
	if _, ok := <-ch; ok {
		t.Error("expected channel closed after one result")
	}
}
