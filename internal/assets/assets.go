// Package assets builds and caches the scene's wireframe models.
package assets

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/seabed/internal/logger"
)

// ErrUnknownModel is returned when no builder is registered for a name.
var ErrUnknownModel = errors.New("unknown model")

// Manager resolves model names to built models. Models are built once and
// shared afterwards, so callers must treat them as read-only. The builder
// table is fixed at construction, so lookups need no lock.
type Manager struct {
	builders map[string]Builder
	cache    *Cache
	delay    time.Duration
}

// NewManager creates a manager preloaded with the builtin models. delay is
// added before every asynchronous load completes.
func NewManager(delay time.Duration) *Manager {
	return &Manager{
		builders: Builtin(),
		cache:    NewCache(),
		delay:    delay,
	}
}

// Load returns the named model, building it on first use.
func (m *Manager) Load(name string) (*Model, error) {
	if model, ok := m.cache.Get(name); ok {
		return model, nil
	}

	build, ok := m.builders[name]
	if !ok {
		return nil, fmt.Errorf("loading %q: %w", name, ErrUnknownModel)
	}

	model := build()
	m.cache.Set(name, model)
	logger.Debug("model built",
		zap.String("name", name),
		zap.Int("vertices", model.VertexCount()),
		zap.Stringer("min", model.Bounds.Min),
		zap.Stringer("max", model.Bounds.Max))
	return model, nil
}

// Result is the outcome of an asynchronous load.
type Result struct {
	Model *Model
	Err   error
}

// LoadAsync loads the named model on a separate goroutine after the
// manager's delay. The returned channel yields exactly one result and is
// then closed. Cancelling ctx before the delay elapses yields ctx.Err().
func (m *Manager) LoadAsync(ctx context.Context, name string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)

		if m.delay > 0 {
			timer := time.NewTimer(m.delay)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				ch <- Result{Err: fmt.Errorf("loading %q: %w", name, ctx.Err())}
				return
			case <-timer.C:
			}
		}

		model, err := m.Load(name)
		ch <- Result{Model: model, Err: err}
	}()
	return ch
}

// Names returns every registered model name in sorted order.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.builders))
	for name := range m.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stats returns cache statistics.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Cache is a concurrency-safe map of built models.
type Cache struct {
	data map[string]*Model
	mu   sync.Mutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*Model),
	}
}

// Get retrieves a model from the cache.
func (c *Cache) Get(key string) (*Model, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	model, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return model, ok
}

// Set stores a model in the cache.
func (c *Cache) Set(key string, model *Model) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = model
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
