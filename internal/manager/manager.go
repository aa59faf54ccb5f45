package manager

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"glinerd/internal/gliner"
)

// labelSet is the fixed set of entity types every request asks for.
var labelSet = [...]string{"person", "email", "phone", "address", "organization"}

// DefaultLabels returns a copy of the fixed label set, in order.
func DefaultLabels() []string {
	out := make([]string, len(labelSet))
	copy(out, labelSet[:])
	return out
}

// Manager holds the model slot and serializes inference against it.
type Manager struct {
	mu        sync.RWMutex
	state     State
	engine    gliner.Engine
	err       string
	attempted bool
	loadedAt  time.Time

	modelID string
	labels  []string

	// genCh has capacity 1 and guards the engine call.
	genCh   chan struct{}
	waiting atomic.Int64

	inferences atomic.Uint64
	failures   atomic.Uint64

	pub       EventPublisher
	log       zerolog.Logger
	now       func() time.Time
	startTime time.Time
}

// New returns a Manager for modelID with default settings.
func New(modelID string) *Manager {
	return NewWithConfig(ManagerConfig{ModelID: modelID})
}

// ModelID returns the configured model identifier.
func (m *Manager) ModelID() string { return m.modelID }

// Labels returns a copy of the labels used for every request.
func (m *Manager) Labels() []string {
	out := make([]string, len(m.labels))
	copy(out, m.labels)
	return out
}

// Ready reports whether the engine is loaded.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == StateLoaded
}

// Close waits for any in-flight inference, then releases the engine. The slot
// stays loaded; later requests get an inference error from the closed engine.
func (m *Manager) Close(ctx context.Context) error {
	select {
	case m.genCh <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-m.genCh }()
	m.mu.RLock()
	eng := m.engine
	m.mu.RUnlock()
	if eng == nil {
		return nil
	}
	return eng.Close()
}
