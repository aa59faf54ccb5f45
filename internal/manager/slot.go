package manager

import (
	"context"
	"errors"
	"fmt"

	"glinerd/internal/gliner"
)

// Initialize runs load exactly once. On success the slot becomes loaded for
// the rest of the process lifetime. On failure it records the error, the slot
// stays without an engine, and every later call reports that initialization
// was already attempted. Initialize never panics.
func (m *Manager) Initialize(ctx context.Context, load Loader) error {
	m.mu.Lock()
	if m.attempted {
		m.mu.Unlock()
		return initError{msg: "model initialization already attempted"}
	}
	m.attempted = true
	m.state = StateLoading
	m.mu.Unlock()

	start := m.now()
	m.pub.Publish(Event{Name: EventModelLoadStarted, ModelID: m.modelID})
	m.log.Info().Str("model", m.modelID).Msg("loading model")

	eng, err := safeLoad(ctx, load)
	if err == nil && eng == nil {
		err = errors.New("loader returned no engine")
	}
	elapsed := m.now().Sub(start)
	if err != nil {
		ierr := initError{msg: "failed to initialize model " + m.modelID, cause: err}
		m.mu.Lock()
		m.state = StateFailed
		m.err = ierr.Error()
		m.mu.Unlock()
		modelLoaded.Set(0)
		m.pub.Publish(Event{Name: EventModelLoadFailed, ModelID: m.modelID, Fields: map[string]any{"error": err.Error()}})
		m.log.Error().Err(err).Str("model", m.modelID).Msg("model initialization failed; serving without a model")
		return ierr
	}

	m.mu.Lock()
	m.engine = eng
	m.state = StateLoaded
	m.loadedAt = m.now()
	m.mu.Unlock()
	modelLoaded.Set(1)
	m.pub.Publish(Event{Name: EventModelLoaded, ModelID: m.modelID, Fields: map[string]any{"duration_ms": elapsed.Milliseconds()}})
	m.log.Info().Str("model", m.modelID).Dur("took", elapsed).Msg("model loaded")
	return nil
}

func safeLoad(ctx context.Context, load Loader) (eng gliner.Engine, err error) {
	if load == nil {
		return nil, errors.New("no loader configured")
	}
	defer func() {
		if r := recover(); r != nil {
			eng, err = nil, fmt.Errorf("loader panic: %v", r)
		}
	}()
	return load(ctx)
}

// Get returns the engine if the slot is loaded.
func (m *Manager) Get() (gliner.Engine, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != StateLoaded || m.engine == nil {
		return nil, false
	}
	return m.engine, true
}

// State returns the current slot state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}
